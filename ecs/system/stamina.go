package system

import (
	"github.com/milk9111/fpscontroller/ecs"
	"github.com/milk9111/fpscontroller/ecs/component"
)

// StaminaSystem drains stamina while sprinting and regenerates it after an
// idle window. Draining runs before the regeneration check.
type StaminaSystem struct{}

func NewStaminaSystem() *StaminaSystem {
	return &StaminaSystem{}
}

func (s *StaminaSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.CharacterComponent, component.StaminaComponent, func(e ecs.Entity, ch *component.Character, st *component.Stamina) {
		if !ch.Modules.Stamina {
			return
		}

		// A timer started this tick waits for the next one.
		regen := st.Regen
		if ch.CanMove {
			in, _ := ecs.Get(w, e, component.InputComponent)
			running := sprinting(w, e, ch, in)
			if running && in.Moving() {
				publishStamina(w, ch, st.Drain(st.UseRate*dt))
				regen = nil
			}
			if !running && !st.Full() && st.Regen == nil {
				st.Regen = component.NewRegenerationTimer(st.RegenDelay, st.RegenInterval)
			}
		}

		for n := regen.Advance(dt); n > 0 && st.Regen == regen; n-- {
			publishStamina(w, ch, st.Restore(st.RegenAmount))
			if st.Full() {
				st.Regen = nil
			}
		}
	})
}

func publishStamina(w *ecs.World, ch *component.Character, value float64) {
	w.Events().Publish(ecs.Event{
		Type: ecs.EventStaminaChanged,
		Data: ecs.VitalsChanged{Character: ch.ID, Value: value},
	})
}
