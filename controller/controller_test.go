package controller

import (
	"bytes"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/milk9111/fpscontroller/camera"
	"github.com/milk9111/fpscontroller/ecs"
	"github.com/milk9111/fpscontroller/ecs/component"
	"github.com/milk9111/fpscontroller/interact"
	"github.com/milk9111/fpscontroller/physics"
	"github.com/milk9111/fpscontroller/physics/arena"
	"github.com/milk9111/fpscontroller/physics/physicstest"
	"github.com/milk9111/fpscontroller/prefabs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	c      *Controller
	col    *physicstest.Collider
	scene  *physicstest.Scene
	cam    *camera.Lens
	bus    *ecs.EventBus
	events []ecs.Event
}

func loadSpec(t *testing.T) *prefabs.CharacterSpec {
	t.Helper()
	spec, err := prefabs.LoadCharacterSpec("character.yaml")
	require.NoError(t, err)
	return spec
}

func newFixture(t *testing.T, spec *prefabs.CharacterSpec) *fixture {
	t.Helper()
	f := &fixture{
		col:   physicstest.NewCollider(),
		scene: physicstest.NewScene(),
		cam:   camera.NewLens(mgl64.Vec3{0, 1.6, 0}, 60),
		bus:   ecs.NewEventBus(),
	}
	f.scene.Ground = physicstest.Flat(1, "Footsteps/WOOD")

	c, err := New(spec, Deps{Collider: f.col, Camera: f.cam, Scene: f.scene, Targets: f.scene, Bus: f.bus})
	require.NoError(t, err)
	f.c = c

	for _, typ := range []ecs.EventType{ecs.EventDamageApplied, ecs.EventHealed, ecs.EventDied} {
		f.bus.Subscribe(typ, func(evt ecs.Event) { f.events = append(f.events, evt) })
	}
	return f
}

func (f *fixture) count(typ ecs.EventType) int {
	n := 0
	for _, evt := range f.events {
		if evt.Type == typ {
			n++
		}
	}
	return n
}

func (f *fixture) run(n int, dt float64, in component.InputSnapshot) {
	for i := 0; i < n; i++ {
		f.c.Tick(dt, in)
	}
}

func TestNewMissingDeps(t *testing.T) {
	spec := loadSpec(t)
	full := Deps{Collider: physicstest.NewCollider(), Camera: camera.NewLens(mgl64.Vec3{}, 60), Scene: physicstest.NewScene()}

	cases := []struct {
		name string
		deps func(d Deps) Deps
		want error
	}{
		{"collider", func(d Deps) Deps { d.Collider = nil; return d }, ErrMissingCollider},
		{"camera", func(d Deps) Deps { d.Camera = nil; return d }, ErrMissingCamera},
		{"scene", func(d Deps) Deps { d.Scene = nil; return d }, ErrMissingSceneQuery},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := New(spec, tc.deps(full))
			assert.Nil(t, c)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := New(spec, Deps{})
	assert.ErrorIs(t, err, ErrMissingCollider)
	assert.ErrorIs(t, err, ErrMissingCamera)
	assert.ErrorIs(t, err, ErrMissingSceneQuery)
}

func TestNewRejectsInvalidSpec(t *testing.T) {
	deps := Deps{Collider: physicstest.NewCollider(), Camera: camera.NewLens(mgl64.Vec3{}, 60), Scene: physicstest.NewScene()}

	spec := loadSpec(t)
	spec.Health.Max = 0
	_, err := New(spec, deps)
	assert.ErrorIs(t, err, prefabs.ErrInvalidSpec)
	assert.Contains(t, err.Error(), "health.max")

	_, err = New(nil, deps)
	assert.ErrorIs(t, err, prefabs.ErrInvalidSpec)
}

func TestSpawnState(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	spec := loadSpec(t)
	c, err := New(spec, Deps{
		Collider: physicstest.NewCollider(),
		Camera:   camera.NewLens(mgl64.Vec3{0, 1.6, 0}, 75),
		Scene:    physicstest.NewScene(),
		Bus:      ecs.NewEventBus(),
		Logger:   &logger,
	})
	require.NoError(t, err)

	s := c.State()
	assert.Equal(t, c.ID(), s.ID)
	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, 100.0, s.Health)
	assert.Equal(t, 100.0, s.Stamina)
	assert.True(t, s.CanSprint)
	assert.True(t, s.CanMove)
	assert.Equal(t, component.Standing, s.Crouch)
	assert.Equal(t, 2.0, s.CrouchPose.Height)
	assert.False(t, s.HealthRegen)
	assert.False(t, s.StaminaRegen)
	assert.Equal(t, component.ZoomDefault, s.Zoom)
	assert.Equal(t, 75.0, s.ZoomTarget, "default fov read from the camera")
	assert.False(t, c.Enabled())
	assert.Contains(t, buf.String(), "character spawned")
	assert.Contains(t, buf.String(), `"character":"player"`)
	assert.Contains(t, buf.String(), `"systems":["look","locomotion","crouch","headbob","zoom","interaction","footstep","stamina","healthregen","applymotion"]`)
}

func TestWalkForward(t *testing.T) {
	f := newFixture(t, loadSpec(t))

	f.run(10, 0.1, component.InputSnapshot{Move: mgl64.Vec2{0, 1}})

	s := f.c.State()
	assert.InDelta(t, 3, s.Position.Z(), 1e-9)
	assert.InDelta(t, 0, s.Position.X(), 1e-9)
	assert.InDelta(t, 3, s.Velocity.Z(), 1e-9)
}

func TestSetCanMoveFreezesInput(t *testing.T) {
	f := newFixture(t, loadSpec(t))
	f.c.SetCanMove(false)

	f.run(10, 0.1, component.InputSnapshot{Move: mgl64.Vec2{0, 1}, Look: mgl64.Vec2{5, 5}})

	s := f.c.State()
	assert.False(t, s.CanMove)
	assert.Equal(t, mgl64.Vec3{}, s.Position)
	assert.Equal(t, 0.0, s.Yaw)
	assert.Empty(t, f.col.Moves)

	f.c.SetCanMove(true)
	f.c.Tick(0.1, component.InputSnapshot{Move: mgl64.Vec2{0, 1}})
	assert.Len(t, f.col.Moves, 1)
}

func TestDamageScenario(t *testing.T) {
	f := newFixture(t, loadSpec(t))
	f.c.Enable()
	require.True(t, f.c.Enabled())

	for _, amount := range []float64{60, 20, 20} {
		f.bus.Publish(ecs.Event{Type: ecs.EventTakeDamage, Data: ecs.DamageRequest{Amount: amount}})
	}
	assert.Equal(t, 0.0, f.c.State().Health)
	assert.True(t, f.c.State().Dead)
	assert.Equal(t, 3, f.count(ecs.EventDamageApplied))
	assert.Equal(t, 1, f.count(ecs.EventDied))

	assert.False(t, f.c.ApplyDamage(10), "dead characters take no damage")
	f.run(100, 0.1, component.InputSnapshot{})
	assert.Equal(t, 0.0, f.c.State().Health)
	assert.Equal(t, 1, f.count(ecs.EventDied))
	assert.Zero(t, f.count(ecs.EventHealed))
}

func TestTakeDamageRouting(t *testing.T) {
	f := newFixture(t, loadSpec(t))

	request := func(target uuid.UUID) {
		f.bus.Publish(ecs.Event{Type: ecs.EventTakeDamage, Data: ecs.DamageRequest{Target: target, Amount: 10}})
	}

	request(uuid.Nil)
	assert.Equal(t, 100.0, f.c.State().Health, "not enabled")

	f.c.Enable()
	f.c.Enable()
	request(uuid.Nil)
	assert.Equal(t, 90.0, f.c.State().Health, "one subscription")

	request(f.c.ID())
	assert.Equal(t, 80.0, f.c.State().Health)

	request(uuid.New())
	assert.Equal(t, 80.0, f.c.State().Health, "addressed to someone else")

	f.c.Disable()
	assert.False(t, f.c.Enabled())
	request(uuid.Nil)
	assert.Equal(t, 80.0, f.c.State().Health)
	assert.Zero(t, f.bus.Count(ecs.EventTakeDamage))
}

func TestHealthRegenToFull(t *testing.T) {
	spec := loadSpec(t)
	spec.Health.TimeIncrement = 0.25
	f := newFixture(t, spec)

	require.True(t, f.c.ApplyDamage(15))
	f.run(11, 0.25, component.InputSnapshot{})
	assert.Zero(t, f.count(ecs.EventHealed), "still idle")
	assert.False(t, f.c.State().HealthRegen)

	f.run(2, 0.25, component.InputSnapshot{})
	assert.True(t, f.c.State().HealthRegen)

	f.run(38, 0.25, component.InputSnapshot{})
	assert.Equal(t, 15, f.count(ecs.EventHealed))
	assert.Equal(t, 100.0, f.c.State().Health)
	assert.False(t, f.c.State().HealthRegen)
}

func TestApplyDamageRejectsNonFinite(t *testing.T) {
	for _, tc := range []struct {
		name   string
		amount float64
	}{
		{"nan", math.NaN()},
		{"inf", math.Inf(1)},
		{"negative inf", math.Inf(-1)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, loadSpec(t))
			f.c.Enable()

			assert.False(t, f.c.ApplyDamage(tc.amount))
			f.bus.Publish(ecs.Event{Type: ecs.EventTakeDamage, Data: ecs.DamageRequest{Amount: tc.amount}})

			s := f.c.State()
			assert.Equal(t, 100.0, s.Health)
			assert.False(t, s.Dead)
			assert.Zero(t, f.count(ecs.EventDamageApplied))
			assert.Zero(t, f.count(ecs.EventDied))
		})
	}
}

func TestCrouchAndZoom(t *testing.T) {
	f := newFixture(t, loadSpec(t))
	dt := 1.0 / 16

	f.c.Tick(dt, component.InputSnapshot{Crouch: true, Zoom: component.Edge{Fired: true, Value: true}})
	s := f.c.State()
	assert.Equal(t, component.TransitioningToCrouch, s.Crouch)
	assert.Equal(t, component.ZoomTransitioning, s.Zoom)

	f.run(8, dt, component.InputSnapshot{Crouch: true})
	s = f.c.State()
	assert.Equal(t, component.Crouching, s.Crouch)
	assert.Equal(t, 0.5, f.col.H)
	assert.Equal(t, mgl64.Vec3{0, 0.5, 0}, f.col.C)
	assert.Equal(t, component.CrouchPose{Height: 0.5, Center: mgl64.Vec3{0, 0.5, 0}}, s.CrouchPose)
	assert.Equal(t, component.ZoomZoomed, s.Zoom)
	assert.Equal(t, 30.0, s.FieldOfView)
}

func TestReloadKeepsRuntimeState(t *testing.T) {
	spec := loadSpec(t)
	f := newFixture(t, spec)
	require.True(t, f.c.ApplyDamage(30))

	next := *spec
	next.Movement.DefaultSpeed = 5
	next.Health.Max = 50
	require.NoError(t, f.c.Reload(&next))

	s := f.c.State()
	assert.Equal(t, 50.0, s.MaxHealth)
	assert.Equal(t, 50.0, s.Health, "clamped to the new max")

	f.run(1, 0.1, component.InputSnapshot{Move: mgl64.Vec2{0, 1}})
	assert.InDelta(t, 0.5, f.c.State().Position.Z(), 1e-9)

	bad := next
	bad.Zoom.TimeToZoom = 0
	assert.ErrorIs(t, f.c.Reload(&bad), prefabs.ErrInvalidSpec)
	assert.Equal(t, 50.0, f.c.State().MaxHealth, "rejected reload changes nothing")
}

func TestReloadDisablingInteractDropsFocus(t *testing.T) {
	spec := loadSpec(t)
	f := newFixture(t, spec)
	stub := interact.NewStub("door", zerolog.Nop())
	f.scene.Targets[7] = stub
	f.scene.Ahead = &physics.Hit{Collider: 7, Layer: physics.Layer(spec.Interaction.Layer), Distance: 1}

	f.c.Tick(0.1, component.InputSnapshot{})
	require.Same(t, stub, f.c.State().FocusTarget)

	next := *spec
	next.Modules.Interact = false
	require.NoError(t, f.c.Reload(&next))
	f.c.Tick(0.1, component.InputSnapshot{})

	s := f.c.State()
	assert.Nil(t, s.FocusTarget)
	assert.Zero(t, s.FocusCollider)
	assert.Equal(t, 1, stub.LostFocus)
}

func TestDespawn(t *testing.T) {
	f := newFixture(t, loadSpec(t))
	f.c.Enable()

	f.c.Despawn()
	f.c.Despawn()

	assert.True(t, f.c.State().Despawned)
	assert.False(t, f.c.Enabled())
	assert.Zero(t, f.bus.Count(ecs.EventTakeDamage))
	assert.False(t, f.c.ApplyDamage(10))
	assert.ErrorIs(t, f.c.Reload(loadSpec(t)), ErrDespawned)

	f.run(5, 0.1, component.InputSnapshot{Move: mgl64.Vec2{0, 1}})
	assert.Empty(t, f.col.Moves)
}

func TestArenaWalkIntoWall(t *testing.T) {
	w := arena.NewWorld(zerolog.Nop())
	_, err := w.AddBox(arena.BoxSpec{Name: "floor", Min: mgl64.Vec2{-10, -10}, Max: mgl64.Vec2{10, 10}, Bottom: -1, Top: 0, Tag: "Footsteps/WOOD"})
	require.NoError(t, err)
	_, err = w.AddWall(arena.WallSpec{Name: "wall", From: mgl64.Vec2{-10, 3}, To: mgl64.Vec2{10, 3}, Thickness: 0.2, Bottom: 0, Top: 3})
	require.NoError(t, err)

	col, err := w.NewCapsule(arena.CapsuleSpec{Position: mgl64.Vec3{0, 1.5, 0}, Height: 2, Radius: 0.5, SlopeLimit: 45, StepOffset: 0.3})
	require.NoError(t, err)
	bus := ecs.NewEventBus()
	var steps []ecs.Footstep
	bus.Subscribe(ecs.EventFootstep, func(evt ecs.Event) { steps = append(steps, evt.Data.(ecs.Footstep)) })

	c, err := New(loadSpec(t), Deps{Collider: col, Camera: camera.NewLens(mgl64.Vec3{0, 0.6, 0}, 60), Scene: w, Targets: w, Bus: bus})
	require.NoError(t, err)

	for i := 0; i < 120; i++ {
		c.Tick(1.0/60, component.InputSnapshot{Move: mgl64.Vec2{0, 1}})
	}

	s := c.State()
	assert.True(t, s.Grounded)
	assert.InDelta(t, 1, s.Position.Y(), 1e-6)
	assert.Less(t, s.Position.Z(), 2.9-0.5+1e-6, "stopped by the wall")
	assert.Greater(t, s.Position.Z(), 2.0)
	require.NotEmpty(t, steps)
	assert.Equal(t, "wood", steps[0].Surface)
}
