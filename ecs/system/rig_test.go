package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/milk9111/fpscontroller/camera"
	"github.com/milk9111/fpscontroller/ecs"
	"github.com/milk9111/fpscontroller/ecs/component"
	"github.com/milk9111/fpscontroller/physics/physicstest"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const interactLayer = 6

// rig is a fully equipped character in its own world and bus.
type rig struct {
	w      *ecs.World
	e      ecs.Entity
	col    *physicstest.Collider
	scene  *physicstest.Scene
	cam    *camera.Lens
	in     *component.InputSnapshot
	ch     *component.Character
	look   *component.Look
	motion *component.Motion
	crouch *component.Crouch
	zoom   *component.Zoom
	health *component.Health
	stam   *component.Stamina
	steps  *component.Footsteps
	bob    *component.Headbob
	focus  *component.Focus

	events []ecs.Event
}

// tickOrder returns every system in controller order.
func tickOrder() []ecs.System {
	log := zerolog.Nop()
	return []ecs.System{
		NewLookSystem(),
		NewLocomotionSystem(),
		NewCrouchSystem(log),
		NewHeadbobSystem(),
		NewZoomSystem(),
		NewInteractionSystem(),
		NewFootstepSystem(log),
		NewStaminaSystem(),
		NewHealthRegenSystem(),
		NewApplyMotionSystem(),
	}
}

func newRig(t *testing.T, systems ...ecs.System) *rig {
	t.Helper()

	bus := ecs.NewEventBus()
	r := &rig{
		w:     ecs.NewWorld(bus),
		col:   physicstest.NewCollider(),
		scene: physicstest.NewScene(),
		cam:   camera.NewLens(mgl64.Vec3{0, 1.6, 0}, 60),
		in:    &component.InputSnapshot{},
		ch:    &component.Character{ID: uuid.New(), Modules: component.AllModules(), CanMove: true},
		look:  &component.Look{HorizontalSpeed: 2, VerticalSpeed: 2, UpperLimit: 80, LowerLimit: 80},
		motion: &component.Motion{
			DefaultSpeed: 4, SprintSpeed: 8, CrouchSpeed: 2,
			SlideSpeed: 8, JumpForce: 8, Gravity: 30,
		},
		crouch: component.NewCrouch(
			component.CrouchPose{Height: 2},
			component.CrouchPose{Height: 0.5, Center: mgl64.Vec3{0, 0.5, 0}},
			0.25,
		),
		zoom:   component.NewZoom(60, 30, 0.3),
		health: component.NewHealth(100),
		stam:   component.NewStamina(100),
		steps:  &component.Footsteps{BaseInterval: 0.5, CrouchMultiplier: 1.5, SprintMultiplier: 0.6, ProbeDistance: 3},
		bob: &component.Headbob{
			Walk:     component.Bob{Speed: 14, Amount: 0.05},
			Sprint:   component.Bob{Speed: 18, Amount: 0.1},
			Crouch:   component.Bob{Speed: 8, Amount: 0.025},
			DefaultY: 1.6,
		},
		focus: &component.Focus{Distance: 2, Layer: interactLayer},
	}
	r.health.RegenDelay, r.health.RegenInterval, r.health.RegenAmount = 3, 0.1, 1
	r.stam.UseRate, r.stam.RegenDelay, r.stam.RegenInterval, r.stam.RegenAmount = 5, 5, 0.1, 2

	r.e = r.w.CreateEntity()
	body := &component.Body{Collider: r.col, Scene: r.scene, Targets: r.scene, Camera: r.cam}
	require.NoError(t, ecs.Add(r.w, r.e, component.CharacterComponent, r.ch))
	require.NoError(t, ecs.Add(r.w, r.e, component.BodyComponent, body))
	require.NoError(t, ecs.Add(r.w, r.e, component.InputComponent, r.in))
	require.NoError(t, ecs.Add(r.w, r.e, component.LookComponent, r.look))
	require.NoError(t, ecs.Add(r.w, r.e, component.MotionComponent, r.motion))
	require.NoError(t, ecs.Add(r.w, r.e, component.CrouchComponent, r.crouch))
	require.NoError(t, ecs.Add(r.w, r.e, component.ZoomComponent, r.zoom))
	require.NoError(t, ecs.Add(r.w, r.e, component.HealthComponent, r.health))
	require.NoError(t, ecs.Add(r.w, r.e, component.StaminaComponent, r.stam))
	require.NoError(t, ecs.Add(r.w, r.e, component.FootstepsComponent, r.steps))
	require.NoError(t, ecs.Add(r.w, r.e, component.HeadbobComponent, r.bob))
	require.NoError(t, ecs.Add(r.w, r.e, component.FocusComponent, r.focus))

	for _, typ := range []ecs.EventType{
		ecs.EventDamageApplied, ecs.EventHealed, ecs.EventStaminaChanged,
		ecs.EventDied, ecs.EventFootstep,
	} {
		bus.Subscribe(typ, func(evt ecs.Event) { r.events = append(r.events, evt) })
	}

	for _, s := range systems {
		r.w.AddSystem(s)
	}
	return r
}

func (r *rig) tick(in component.InputSnapshot, dt float64) {
	*r.in = in
	r.w.Update(dt)
}

func (r *rig) ticks(n int, in component.InputSnapshot, dt float64) {
	for i := 0; i < n; i++ {
		r.tick(in, dt)
	}
}

// values returns the payload values of every recorded event of typ.
func (r *rig) values(typ ecs.EventType) []float64 {
	var out []float64
	for _, evt := range r.events {
		if evt.Type != typ {
			continue
		}
		if v, ok := evt.Data.(ecs.VitalsChanged); ok {
			out = append(out, v.Value)
		}
	}
	return out
}

func (r *rig) count(typ ecs.EventType) int {
	n := 0
	for _, evt := range r.events {
		if evt.Type == typ {
			n++
		}
	}
	return n
}

var (
	idle    = component.InputSnapshot{}
	forward = component.InputSnapshot{Move: mgl64.Vec2{0, 1}}
	sprint  = component.InputSnapshot{Move: mgl64.Vec2{0, 1}, Sprint: true}
)
