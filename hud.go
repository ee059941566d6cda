package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/fpscontroller/controller"
	"github.com/milk9111/fpscontroller/ecs"
)

// HUD keeps the on-screen vitals text in sync with the character's
// notifications.
type HUD struct {
	Health  string
	Stamina string
	Status  string
	Step    string
	Message string

	bus  *ecs.EventBus
	subs []ecs.Subscription
}

func NewHUD(bus *ecs.EventBus, state controller.CharacterState) *HUD {
	h := &HUD{
		Health:  formatVital(state.Health),
		Stamina: formatVital(state.Stamina),
		bus:     bus,
	}
	vital := func(dst *string) ecs.Handler {
		return func(evt ecs.Event) {
			if v, ok := evt.Data.(ecs.VitalsChanged); ok {
				*dst = formatVital(v.Value)
			}
		}
	}
	h.subs = append(h.subs,
		bus.Subscribe(ecs.EventDamageApplied, vital(&h.Health)),
		bus.Subscribe(ecs.EventHealed, vital(&h.Health)),
		bus.Subscribe(ecs.EventStaminaChanged, vital(&h.Stamina)),
		bus.Subscribe(ecs.EventDied, func(ecs.Event) { h.Status = "DEAD" }),
		bus.Subscribe(ecs.EventFootstep, func(evt ecs.Event) {
			if f, ok := evt.Data.(ecs.Footstep); ok {
				h.Step = f.Surface
			}
		}),
	)
	return h
}

func (h *HUD) Close() {
	for _, s := range h.subs {
		h.bus.Unsubscribe(s)
	}
	h.subs = nil
}

func formatVital(v float64) string {
	return fmt.Sprintf("%02.0f", v)
}

func (h *HUD) Draw(screen *ebiten.Image, s controller.CharacterState) {
	var b strings.Builder
	fmt.Fprintf(&b, "Health: %s\n", h.Health)
	fmt.Fprintf(&b, "Stamina: %s\n", h.Stamina)
	fmt.Fprintf(&b, "Crouch: %s  Zoom: %s  FOV: %.1f\n", s.Crouch, s.Zoom, s.FieldOfView)
	fmt.Fprintf(&b, "Grounded: %v  Pitch: %.0f  Yaw: %.0f\n", s.Grounded, s.Pitch, s.Yaw)
	if h.Step != "" {
		fmt.Fprintf(&b, "Footstep: %s\n", h.Step)
	}
	if h.Status != "" {
		fmt.Fprintf(&b, "%s\n", h.Status)
	}
	if h.Message != "" {
		fmt.Fprintf(&b, "%s\n", h.Message)
	}
	ebitenutil.DebugPrintAt(screen, b.String(), 10, 24)
}
