package interact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/rs/zerolog"
)

var ErrNilScript = errors.New("interact: nil script runtime")

const scriptDispatch = `
if __phase == "focus" {
	onFocus(__target, __state)
} else if __phase == "lose_focus" {
	onLoseFocus(__target, __state)
} else if __phase == "interact" {
	onInteract(__target, __state)
}
`

// Scripted forwards the focus callbacks to a tengo script that defines
// onFocus, onLoseFocus and onInteract, each taking (target, state).
type Scripted struct {
	Name string

	// OnEmit receives names passed to the script's target.emit.
	OnEmit func(name string)

	compiled *tengo.Compiled
	state    *tengo.Map
	log      zerolog.Logger
}

// NewScripted compiles src for a target called name.
func NewScripted(name string, src []byte, log zerolog.Logger) (*Scripted, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + scriptDispatch))
	_ = script.Add("__phase", "")
	_ = script.Add("__target", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("interact: compile %s: %w", name, err)
	}
	return &Scripted{
		Name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		log:      log,
	}, nil
}

func (s *Scripted) OnFocus() { s.run("focus") }
func (s *Scripted) OnLoseFocus() { s.run("lose_focus") }
func (s *Scripted) OnInteract() { s.run("interact") }

// State returns a value the script stored in its state map.
func (s *Scripted) State(key string) any {
	if s == nil || s.state == nil {
		return nil
	}
	obj, ok := s.state.Value[key]
	if !ok {
		return nil
	}
	return objectToAny(obj)
}

func (s *Scripted) run(phase string) {
	if err := s.runPhase(phase); err != nil {
		s.log.Error().Err(err).Str("target", s.Name).Str("phase", phase).Msg("script hook failed")
	}
}

func (s *Scripted) runPhase(phase string) error {
	if s == nil || s.compiled == nil {
		return ErrNilScript
	}
	if err := s.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := s.compiled.Set("__target", s.targetAPI()); err != nil {
		return err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return err
	}
	return s.compiled.Run()
}

func (s *Scripted) targetAPI() *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"name": &tengo.String{Value: s.Name},
	}
	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		s.log.Info().Str("target", s.Name).Msg(strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}
	values["emit"] = &tengo.UserFunction{Name: "emit", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 || s.OnEmit == nil {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		s.OnEmit(name)
		return tengo.TrueValue, nil
	}}
	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Undefined:
		return nil
	case nil:
		return nil
	default:
		return v.String()
	}
}
