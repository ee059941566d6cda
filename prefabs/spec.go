package prefabs

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpscontroller/ecs/component"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// CharacterSpec is the full tuning of one first-person character.
type CharacterSpec struct {
	Name        string            `yaml:"name"`
	Modules     component.Modules `yaml:"modules"`
	Movement    MovementSpec      `yaml:"movement"`
	Look        LookSpec          `yaml:"look"`
	Crouch      CrouchSpec        `yaml:"crouch"`
	Headbob     HeadbobSpec       `yaml:"headbob"`
	Zoom        ZoomSpec          `yaml:"zoom"`
	Interaction InteractionSpec   `yaml:"interaction"`
	Footsteps   FootstepsSpec     `yaml:"footsteps"`
	Health      HealthSpec        `yaml:"health"`
	Stamina     StaminaSpec       `yaml:"stamina"`
}

type MovementSpec struct {
	DefaultSpeed    float64 `yaml:"default_speed"`
	SprintSpeed     float64 `yaml:"sprint_speed"`
	CrouchSpeed     float64 `yaml:"crouch_speed"`
	SlopeSlideSpeed float64 `yaml:"slope_slide_speed"`
	JumpForce       float64 `yaml:"jump_force"`
	Gravity         float64 `yaml:"gravity"`
}

type LookSpec struct {
	HorizontalSpeed float64 `yaml:"horizontal_speed"`
	VerticalSpeed   float64 `yaml:"vertical_speed"`
	UpperLimit      float64 `yaml:"upper_limit"`
	LowerLimit      float64 `yaml:"lower_limit"`
}

type CrouchSpec struct {
	StandingHeight   float64    `yaml:"standing_height"`
	CrouchingHeight  float64    `yaml:"crouching_height"`
	StandingCenter   [3]float64 `yaml:"standing_center"`
	CrouchingCenter  [3]float64 `yaml:"crouching_center"`
	TimeToCrouch     float64    `yaml:"time_to_crouch"`
	OverheadDistance float64    `yaml:"overhead_distance"`
}

// StandingPose returns the standing collider pose. A zero height means the
// collider's own pose is used.
func (c CrouchSpec) StandingPose() component.CrouchPose {
	return component.CrouchPose{Height: c.StandingHeight, Center: mgl64.Vec3(c.StandingCenter)}
}

func (c CrouchSpec) CrouchingPose() component.CrouchPose {
	return component.CrouchPose{Height: c.CrouchingHeight, Center: mgl64.Vec3(c.CrouchingCenter)}
}

type BobSpec struct {
	Speed  float64 `yaml:"speed"`
	Amount float64 `yaml:"amount"`
}

func (b BobSpec) Bob() component.Bob {
	return component.Bob{Speed: b.Speed, Amount: b.Amount}
}

type HeadbobSpec struct {
	Walk   BobSpec `yaml:"walk"`
	Sprint BobSpec `yaml:"sprint"`
	Crouch BobSpec `yaml:"crouch"`
}

type ZoomSpec struct {
	TimeToZoom float64 `yaml:"time_to_zoom"`
	ZoomFOV    float64 `yaml:"zoom_fov"`
	// DefaultFOV of zero is read from the camera at spawn.
	DefaultFOV float64 `yaml:"default_fov"`
}

type InteractionSpec struct {
	Distance float64 `yaml:"distance"`
	Layer    int     `yaml:"layer"`
}

type FootstepsSpec struct {
	BaseInterval     float64           `yaml:"base_interval"`
	CrouchMultiplier float64           `yaml:"crouch_multiplier"`
	SprintMultiplier float64           `yaml:"sprint_multiplier"`
	ProbeDistance    float64           `yaml:"probe_distance"`
	Surfaces         map[string]string `yaml:"surfaces"`
}

type HealthSpec struct {
	Max             float64 `yaml:"max"`
	TimeBeforeRegen float64 `yaml:"time_before_regen"`
	TimeIncrement   float64 `yaml:"time_increment"`
	ValueIncrement  float64 `yaml:"value_increment"`
}

type StaminaSpec struct {
	Max             float64 `yaml:"max"`
	UseMultiplier   float64 `yaml:"use_multiplier"`
	TimeBeforeRegen float64 `yaml:"time_before_regen"`
	TimeIncrement   float64 `yaml:"time_increment"`
	ValueIncrement  float64 `yaml:"value_increment"`
}

// LoadCharacterSpec reads and validates a character spec.
func LoadCharacterSpec(filename string) (*CharacterSpec, error) {
	spec, err := LoadSpec[CharacterSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

// Validate reports every field that cannot drive a character. Each error
// wraps ErrInvalidSpec.
func (s *CharacterSpec) Validate() error {
	var errs []error
	finite := func(field string, v float64) bool {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%w: %s must be finite, got %g", ErrInvalidSpec, field, v))
			return false
		}
		return true
	}
	positive := func(field string, v float64) {
		if finite(field, v) && v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidSpec, field, v))
		}
	}
	nonNegative := func(field string, v float64) {
		if finite(field, v) && v < 0 {
			errs = append(errs, fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalidSpec, field, v))
		}
	}

	nonNegative("movement.default_speed", s.Movement.DefaultSpeed)
	nonNegative("movement.sprint_speed", s.Movement.SprintSpeed)
	nonNegative("movement.crouch_speed", s.Movement.CrouchSpeed)
	nonNegative("movement.slope_slide_speed", s.Movement.SlopeSlideSpeed)
	nonNegative("movement.jump_force", s.Movement.JumpForce)
	nonNegative("movement.gravity", s.Movement.Gravity)

	finite("look.horizontal_speed", s.Look.HorizontalSpeed)
	finite("look.vertical_speed", s.Look.VerticalSpeed)
	nonNegative("look.upper_limit", s.Look.UpperLimit)
	nonNegative("look.lower_limit", s.Look.LowerLimit)

	positive("crouch.time_to_crouch", s.Crouch.TimeToCrouch)
	nonNegative("crouch.standing_height", s.Crouch.StandingHeight)
	positive("crouch.crouching_height", s.Crouch.CrouchingHeight)
	positive("crouch.overhead_distance", s.Crouch.OverheadDistance)
	for i := range 3 {
		finite(fmt.Sprintf("crouch.standing_center[%d]", i), s.Crouch.StandingCenter[i])
		finite(fmt.Sprintf("crouch.crouching_center[%d]", i), s.Crouch.CrouchingCenter[i])
	}

	for name, bob := range map[string]BobSpec{"walk": s.Headbob.Walk, "sprint": s.Headbob.Sprint, "crouch": s.Headbob.Crouch} {
		nonNegative("headbob."+name+".speed", bob.Speed)
		nonNegative("headbob."+name+".amount", bob.Amount)
	}

	positive("zoom.time_to_zoom", s.Zoom.TimeToZoom)
	positive("zoom.zoom_fov", s.Zoom.ZoomFOV)
	nonNegative("zoom.default_fov", s.Zoom.DefaultFOV)

	if s.Modules.Interact {
		positive("interaction.distance", s.Interaction.Distance)
	}
	if s.Interaction.Layer < 0 || s.Interaction.Layer > 63 {
		errs = append(errs, fmt.Errorf("%w: interaction.layer must be in [0, 63], got %d", ErrInvalidSpec, s.Interaction.Layer))
	}

	positive("footsteps.base_interval", s.Footsteps.BaseInterval)
	positive("footsteps.crouch_multiplier", s.Footsteps.CrouchMultiplier)
	positive("footsteps.sprint_multiplier", s.Footsteps.SprintMultiplier)
	positive("footsteps.probe_distance", s.Footsteps.ProbeDistance)

	positive("health.max", s.Health.Max)
	positive("health.time_before_regen", s.Health.TimeBeforeRegen)
	positive("health.time_increment", s.Health.TimeIncrement)
	nonNegative("health.value_increment", s.Health.ValueIncrement)

	positive("stamina.max", s.Stamina.Max)
	nonNegative("stamina.use_multiplier", s.Stamina.UseMultiplier)
	positive("stamina.time_before_regen", s.Stamina.TimeBeforeRegen)
	positive("stamina.time_increment", s.Stamina.TimeIncrement)
	nonNegative("stamina.value_increment", s.Stamina.ValueIncrement)

	return errors.Join(errs...)
}
