// Package controller assembles a first-person character from its tuning
// spec and external collaborators and advances it once per tick.
package controller

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/milk9111/fpscontroller/camera"
	"github.com/milk9111/fpscontroller/ecs"
	"github.com/milk9111/fpscontroller/ecs/component"
	"github.com/milk9111/fpscontroller/ecs/system"
	"github.com/milk9111/fpscontroller/interact"
	"github.com/milk9111/fpscontroller/physics"
	"github.com/milk9111/fpscontroller/prefabs"
	"github.com/rs/zerolog"
)

var (
	ErrMissingCollider   = errors.New("controller: missing collider")
	ErrMissingCamera     = errors.New("controller: missing camera")
	ErrMissingSceneQuery = errors.New("controller: missing scene query")
	ErrDespawned         = errors.New("controller: despawned")
)

// Deps are the collaborators a controller drives. Collider, Camera and
// Scene are required.
type Deps struct {
	Collider physics.Collider
	Camera   camera.Rig
	Scene    physics.SceneQuery
	// Targets resolves focused colliders to interactables. Optional.
	Targets physics.TargetResolver
	// Bus receives notifications. Nil uses ecs.DefaultBus.
	Bus *ecs.EventBus
	// Logger of nil discards output.
	Logger *zerolog.Logger
}

func (d Deps) validate() error {
	var errs []error
	if d.Collider == nil {
		errs = append(errs, ErrMissingCollider)
	}
	if d.Camera == nil {
		errs = append(errs, ErrMissingCamera)
	}
	if d.Scene == nil {
		errs = append(errs, ErrMissingSceneQuery)
	}
	return errors.Join(errs...)
}

// Controller owns one character entity and the systems that move it.
type Controller struct {
	id     uuid.UUID
	world  *ecs.World
	entity ecs.Entity
	bus    *ecs.EventBus
	log    zerolog.Logger
	spec   prefabs.CharacterSpec

	sub       ecs.Subscription
	despawned bool

	body    *component.Body
	ch      *component.Character
	input   *component.InputSnapshot
	look    *component.Look
	motion  *component.Motion
	crouch  *component.Crouch
	zoom    *component.Zoom
	health  *component.Health
	stamina *component.Stamina
	steps   *component.Footsteps
	bob     *component.Headbob
	focus   *component.Focus
}

// New validates spec and deps and spawns the character with full health
// and stamina, standing and unzoomed. It does not subscribe to damage
// requests until Enable is called.
func New(spec *prefabs.CharacterSpec, deps Deps) (*Controller, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if spec == nil {
		return nil, fmt.Errorf("%w: nil character spec", prefabs.ErrInvalidSpec)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	bus := deps.Bus
	if bus == nil {
		bus = ecs.DefaultBus
	}
	c := &Controller{
		id:    uuid.New(),
		world: ecs.NewWorld(bus),
		bus:   bus,
		spec:  *spec,
		body: &component.Body{
			Collider: deps.Collider,
			Scene:    deps.Scene,
			Targets:  deps.Targets,
			Camera:   deps.Camera,
		},
		input: &component.InputSnapshot{},
	}
	log := zerolog.Nop()
	if deps.Logger != nil {
		log = *deps.Logger
	}
	c.log = log.With().Str("character", spec.Name).Stringer("id", c.id).Logger()

	c.world.AddSystem(system.NewLookSystem())
	c.world.AddSystem(system.NewLocomotionSystem())
	c.world.AddSystem(system.NewCrouchSystem(c.log))
	c.world.AddSystem(system.NewHeadbobSystem())
	c.world.AddSystem(system.NewZoomSystem())
	c.world.AddSystem(system.NewInteractionSystem())
	c.world.AddSystem(system.NewFootstepSystem(c.log))
	c.world.AddSystem(system.NewStaminaSystem())
	c.world.AddSystem(system.NewHealthRegenSystem())
	c.world.AddSystem(system.NewApplyMotionSystem())

	if err := c.spawn(); err != nil {
		return nil, fmt.Errorf("controller: spawn: %w", err)
	}
	c.log.Info().Strs("systems", c.world.Systems()).Msg("character spawned")
	return c, nil
}

func (c *Controller) spawn() error {
	col, cam := c.body.Collider, c.body.Camera

	c.ch = &component.Character{ID: c.id, CanMove: true}
	c.look = &component.Look{}
	c.motion = &component.Motion{}
	c.crouch = component.NewCrouch(component.CrouchPose{Height: col.Height(), Center: col.Center()}, component.CrouchPose{}, 0)
	c.zoom = component.NewZoom(cam.FieldOfView(), 0, 0)
	c.health = &component.Health{}
	c.stamina = &component.Stamina{CanSprint: true}
	c.steps = &component.Footsteps{}
	c.bob = &component.Headbob{DefaultY: cam.LocalPosition().Y()}
	c.focus = &component.Focus{}

	c.apply(&c.spec)
	c.health.Current = c.health.Max
	c.stamina.Current = c.stamina.Max

	c.entity = c.world.CreateEntity()
	w, e := c.world, c.entity
	return errors.Join(
		ecs.Add(w, e, component.CharacterComponent, c.ch),
		ecs.Add(w, e, component.BodyComponent, c.body),
		ecs.Add(w, e, component.InputComponent, c.input),
		ecs.Add(w, e, component.LookComponent, c.look),
		ecs.Add(w, e, component.MotionComponent, c.motion),
		ecs.Add(w, e, component.CrouchComponent, c.crouch),
		ecs.Add(w, e, component.ZoomComponent, c.zoom),
		ecs.Add(w, e, component.HealthComponent, c.health),
		ecs.Add(w, e, component.StaminaComponent, c.stamina),
		ecs.Add(w, e, component.FootstepsComponent, c.steps),
		ecs.Add(w, e, component.HeadbobComponent, c.bob),
		ecs.Add(w, e, component.FocusComponent, c.focus),
	)
}

// apply copies tuning from spec onto the components, leaving runtime
// state alone.
func (c *Controller) apply(spec *prefabs.CharacterSpec) {
	c.ch.Modules = spec.Modules

	c.look.HorizontalSpeed = spec.Look.HorizontalSpeed
	c.look.VerticalSpeed = spec.Look.VerticalSpeed
	c.look.UpperLimit = spec.Look.UpperLimit
	c.look.LowerLimit = spec.Look.LowerLimit

	m := spec.Movement
	c.motion.DefaultSpeed = m.DefaultSpeed
	c.motion.SprintSpeed = m.SprintSpeed
	c.motion.CrouchSpeed = m.CrouchSpeed
	c.motion.SlideSpeed = m.SlopeSlideSpeed
	c.motion.JumpForce = m.JumpForce
	c.motion.Gravity = m.Gravity

	if spec.Crouch.StandingHeight > 0 {
		c.crouch.Standing = spec.Crouch.StandingPose()
	}
	c.crouch.Crouched = spec.Crouch.CrouchingPose()
	c.crouch.Duration = spec.Crouch.TimeToCrouch
	c.crouch.OverheadDistance = spec.Crouch.OverheadDistance

	c.bob.Walk = spec.Headbob.Walk.Bob()
	c.bob.Sprint = spec.Headbob.Sprint.Bob()
	c.bob.Crouch = spec.Headbob.Crouch.Bob()

	if spec.Zoom.DefaultFOV > 0 {
		c.zoom.DefaultFOV = spec.Zoom.DefaultFOV
	}
	c.zoom.ZoomFOV = spec.Zoom.ZoomFOV
	c.zoom.Duration = spec.Zoom.TimeToZoom

	c.focus.Distance = spec.Interaction.Distance
	c.focus.Layer = physics.Layer(spec.Interaction.Layer)

	f := spec.Footsteps
	c.steps.BaseInterval = f.BaseInterval
	c.steps.CrouchMultiplier = f.CrouchMultiplier
	c.steps.SprintMultiplier = f.SprintMultiplier
	c.steps.ProbeDistance = f.ProbeDistance
	c.steps.Surfaces = f.Surfaces

	h := spec.Health
	c.health.Max = h.Max
	c.health.Current = math.Min(c.health.Current, h.Max)
	c.health.RegenDelay = h.TimeBeforeRegen
	c.health.RegenInterval = h.TimeIncrement
	c.health.RegenAmount = h.ValueIncrement

	s := spec.Stamina
	c.stamina.Max = s.Max
	c.stamina.Current = math.Min(c.stamina.Current, s.Max)
	c.stamina.UseRate = s.UseMultiplier
	c.stamina.RegenDelay = s.TimeBeforeRegen
	c.stamina.RegenInterval = s.TimeIncrement
	c.stamina.RegenAmount = s.ValueIncrement
}

func (c *Controller) ID() uuid.UUID {
	return c.id
}

// Bus returns the bus the controller publishes on.
func (c *Controller) Bus() *ecs.EventBus {
	return c.bus
}

// Enable subscribes the controller to TakeDamage requests addressed to it
// or to every character.
func (c *Controller) Enable() {
	if c.despawned || c.sub.Valid() {
		return
	}
	c.sub = c.bus.Subscribe(ecs.EventTakeDamage, func(evt ecs.Event) {
		req, ok := evt.Data.(ecs.DamageRequest)
		if !ok || (req.Target != uuid.Nil && req.Target != c.id) {
			return
		}
		c.ApplyDamage(req.Amount)
	})
}

// Disable drops the TakeDamage subscription.
func (c *Controller) Disable() {
	if !c.sub.Valid() {
		return
	}
	c.bus.Unsubscribe(c.sub)
	c.sub = ecs.Subscription{}
}

func (c *Controller) Enabled() bool {
	return c.sub.Valid()
}

// Tick advances the character by dt seconds using in as this tick's input.
func (c *Controller) Tick(dt float64, in component.InputSnapshot) {
	if c.despawned {
		return
	}
	*c.input = in
	c.world.Update(dt)
}

// ApplyDamage subtracts |amount| from health. It reports false when the
// character is dead or despawned, when health is disabled, or when amount
// is not a finite number.
func (c *Controller) ApplyDamage(amount float64) bool {
	if c.despawned {
		return false
	}
	if !component.Finite(amount) {
		c.log.Warn().Float64("amount", amount).Msg("damage ignored, amount not finite")
		return false
	}
	return system.ApplyDamage(c.world, c.entity, amount, c.log)
}

// SetCanMove freezes or releases every input-driven behaviour. Running
// transitions and regeneration continue while frozen.
func (c *Controller) SetCanMove(v bool) {
	c.ch.CanMove = v
}

// Reload swaps in new tuning without resetting health, stamina or any
// running transition.
func (c *Controller) Reload(spec *prefabs.CharacterSpec) error {
	if c.despawned {
		return ErrDespawned
	}
	if spec == nil {
		return fmt.Errorf("%w: nil character spec", prefabs.ErrInvalidSpec)
	}
	if err := spec.Validate(); err != nil {
		c.log.Warn().Err(err).Msg("reload rejected")
		return err
	}
	c.spec = *spec
	c.apply(spec)
	c.log.Info().Msg("tuning reloaded")
	return nil
}

// Despawn unsubscribes the controller and destroys its entity. Later
// calls are no-ops.
func (c *Controller) Despawn() {
	if c.despawned {
		return
	}
	c.Disable()
	if c.focus.Target != nil {
		c.focus.Target.OnLoseFocus()
	}
	c.world.DestroyEntity(c.entity)
	c.despawned = true
	c.log.Info().Msg("character despawned")
}

// CharacterState is a read-only snapshot of a character.
type CharacterState struct {
	ID           uuid.UUID
	Position     mgl64.Vec3
	Velocity     mgl64.Vec3
	Grounded     bool
	GroundNormal mgl64.Vec3
	Pitch        float64
	Yaw          float64

	Health     float64
	MaxHealth  float64
	Stamina    float64
	MaxStamina float64
	CanSprint  bool
	Dead       bool

	// HealthRegen and StaminaRegen are set while increments are flowing.
	HealthRegen  bool
	StaminaRegen bool

	Crouch      component.CrouchState
	CrouchPose  component.CrouchPose
	Zoom        component.ZoomState
	ZoomTarget  float64
	FieldOfView float64

	FocusCollider physics.ColliderID
	FocusTarget   interact.Focusable

	FootstepTimer float64
	HeadbobPhase  float64
	CanMove       bool
	Despawned     bool
}

func (c *Controller) State() CharacterState {
	col, cam := c.body.Collider, c.body.Camera
	return CharacterState{
		ID:            c.id,
		Position:      col.Position(),
		Velocity:      col.Velocity(),
		Grounded:      col.IsGrounded(),
		GroundNormal:  c.motion.GroundNormal,
		Pitch:         c.look.Pitch,
		Yaw:           c.look.Yaw,
		Health:        c.health.Current,
		MaxHealth:     c.health.Max,
		Stamina:       c.stamina.Current,
		MaxStamina:    c.stamina.Max,
		CanSprint:     c.stamina.CanSprint,
		Dead:          !c.health.IsAlive(),
		HealthRegen:   c.health.Regenerating(),
		StaminaRegen:  c.stamina.Regenerating(),
		Crouch:        c.crouch.State,
		CrouchPose:    c.crouch.Pose(),
		Zoom:          c.zoom.State,
		ZoomTarget:    c.zoom.Target(),
		FieldOfView:   cam.FieldOfView(),
		FocusCollider: c.focus.Collider,
		FocusTarget:   c.focus.Target,
		FootstepTimer: c.steps.Timer,
		HeadbobPhase:  c.bob.Phase,
		CanMove:       c.ch.CanMove,
		Despawned:     c.despawned,
	}
}
