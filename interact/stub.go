package interact

import "github.com/rs/zerolog"

// Stub logs every callback and counts them.
type Stub struct {
	Name string

	Focused    int
	LostFocus  int
	Interacted int

	log zerolog.Logger
}

func NewStub(name string, log zerolog.Logger) *Stub {
	return &Stub{Name: name, log: log}
}

func (s *Stub) OnFocus() {
	s.Focused++
	s.log.Info().Str("target", s.Name).Msg("looking at target")
}

func (s *Stub) OnLoseFocus() {
	s.LostFocus++
	s.log.Info().Str("target", s.Name).Msg("stopped looking at target")
}

func (s *Stub) OnInteract() {
	s.Interacted++
	s.log.Info().Str("target", s.Name).Msg("interacted with target")
}
