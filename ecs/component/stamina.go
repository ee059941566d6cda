package component

import "math"

// Stamina is spent by sprinting and recovers after an idle window.
type Stamina struct {
	Max     float64
	Current float64
	// CanSprint drops when stamina is drained to zero and returns on the
	// first regeneration increment.
	CanSprint bool

	UseRate       float64
	RegenDelay    float64
	RegenInterval float64
	RegenAmount   float64
	Regen         *RegenerationTimer
}

func NewStamina(max float64) *Stamina {
	return &Stamina{Max: max, Current: max, CanSprint: true}
}

// Drain spends amount, cancelling any pending regeneration, and returns
// the new value. NaN and infinite amounts leave stamina untouched.
func (s *Stamina) Drain(amount float64) float64 {
	if !Finite(amount) {
		return s.Current
	}
	s.Regen = nil
	s.Current = math.Max(s.Current-amount, 0)
	if s.Current <= 0 {
		s.CanSprint = false
	}
	return s.Current
}

// Restore adds amount up to Max and returns the new value.
func (s *Stamina) Restore(amount float64) float64 {
	s.Current = math.Min(s.Current+amount, s.Max)
	if s.Current > 0 {
		s.CanSprint = true
	}
	return s.Current
}

func (s *Stamina) Regenerating() bool {
	return s.Regen != nil && !s.Regen.Idle()
}

func (s *Stamina) Full() bool {
	return s.Current >= s.Max
}

var StaminaComponent = NewComponent[Stamina]()
