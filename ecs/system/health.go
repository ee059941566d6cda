package system

import (
	"github.com/milk9111/fpscontroller/ecs"
	"github.com/milk9111/fpscontroller/ecs/component"
	"github.com/rs/zerolog"
)

// ApplyDamage hurts e by |amount|, publishing DamageApplied and, on the
// killing hit, Died. It reports whether the damage was applied.
func ApplyDamage(w *ecs.World, e ecs.Entity, amount float64, log zerolog.Logger) bool {
	ch, ok := ecs.Get(w, e, component.CharacterComponent)
	if !ok {
		return false
	}
	if !ch.Modules.Health {
		log.Warn().Stringer("character", ch.ID).Float64("amount", amount).Msg("damage ignored, health disabled")
		return false
	}
	h, ok := ecs.Get(w, e, component.HealthComponent)
	if !ok {
		return false
	}

	applied, died := h.ApplyDamage(amount)
	if !applied {
		return false
	}
	w.Events().Publish(ecs.Event{
		Type: ecs.EventDamageApplied,
		Data: ecs.VitalsChanged{Character: ch.ID, Value: h.Current},
	})
	if died {
		log.Info().Stringer("character", ch.ID).Msg("character died")
		w.Events().Publish(ecs.Event{Type: ecs.EventDied, Data: ecs.Died{Character: ch.ID}})
	}
	return true
}

// HealthRegenSystem advances pending health regeneration.
type HealthRegenSystem struct{}

func NewHealthRegenSystem() *HealthRegenSystem {
	return &HealthRegenSystem{}
}

func (s *HealthRegenSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.CharacterComponent, component.HealthComponent, func(e ecs.Entity, ch *component.Character, h *component.Health) {
		if !ch.Modules.Health || h.Dead || h.Regen == nil {
			return
		}
		regen := h.Regen
		for n := regen.Advance(dt); n > 0 && h.Regen == regen; n-- {
			if h.Full() {
				h.Regen = nil
				break
			}
			w.Events().Publish(ecs.Event{
				Type: ecs.EventHealed,
				Data: ecs.VitalsChanged{Character: ch.ID, Value: h.Heal(h.RegenAmount)},
			})
			if h.Full() {
				h.Regen = nil
			}
		}
	})
}
