package component

import "math"

// Health is the character's hit points with idle-triggered regeneration.
type Health struct {
	Max     float64
	Current float64
	Dead    bool

	RegenDelay    float64
	RegenInterval float64
	RegenAmount   float64
	// Regen is nil while no regeneration is pending.
	Regen *RegenerationTimer
}

// NewHealth creates a Health component with current set to max.
func NewHealth(max float64) *Health {
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether the character is alive.
func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// ApplyDamage subtracts |amount| and reports whether it was applied and
// whether it killed the character. A surviving hit restarts regeneration.
// NaN and infinite amounts are ignored.
func (h *Health) ApplyDamage(amount float64) (applied, died bool) {
	if !h.IsAlive() || !Finite(amount) {
		return false, false
	}
	h.Current -= math.Abs(amount)
	h.Regen = nil
	if h.Current <= 0 {
		h.Current = 0
		h.Dead = true
		return true, true
	}
	h.Regen = NewRegenerationTimer(h.RegenDelay, h.RegenInterval)
	return true, false
}

// Heal restores health up to Max and returns the new value.
func (h *Health) Heal(amount float64) float64 {
	if h == nil || h.Dead {
		return 0
	}
	h.Current = math.Min(h.Current+amount, h.Max)
	return h.Current
}

// Regenerating reports whether increments are being applied, as opposed to
// waiting out the idle window or having nothing pending.
func (h *Health) Regenerating() bool {
	return h.Regen != nil && !h.Regen.Idle()
}

func (h *Health) Full() bool {
	return h != nil && h.Current >= h.Max
}

var HealthComponent = NewComponent[Health]()

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
