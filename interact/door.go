package interact

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
)

const (
	defaultDoorCloseCheck    = 3.0
	defaultDoorCloseDistance = 3.0
	defaultDoorSwingTime     = 0.5
)

// Door toggles open on interaction and closes itself once the player has
// walked away. Interaction is locked while the door swings.
type Door struct {
	Name     string
	Position mgl64.Vec3
	// Forward is the side the door opens away from.
	Forward mgl64.Vec3

	SwingTime     float64
	CloseCheck    float64
	CloseDistance float64

	Open bool
	// Side is the dot of Forward with the direction to the player when the
	// door was last toggled; the sign picks the swing direction.
	Side float64

	player     func() mgl64.Vec3
	swingLeft  float64
	closeTimer float64
	log        zerolog.Logger
}

// NewDoor creates a closed door. player reports the interacting character's position.
func NewDoor(name string, pos, forward mgl64.Vec3, player func() mgl64.Vec3, log zerolog.Logger) *Door {
	return &Door{
		Name:          name,
		Position:      pos,
		Forward:       forward,
		SwingTime:     defaultDoorSwingTime,
		CloseCheck:    defaultDoorCloseCheck,
		CloseDistance: defaultDoorCloseDistance,
		player:        player,
		log:           log,
	}
}

func (d *Door) OnFocus() {}
func (d *Door) OnLoseFocus() {}

// Locked reports whether the swing animation still blocks interaction.
func (d *Door) Locked() bool {
	return d.swingLeft > 0
}

func (d *Door) OnInteract() {
	if d.Locked() {
		return
	}
	d.Open = !d.Open
	d.Side = 0
	if d.player != nil {
		d.Side = d.Forward.Dot(d.player().Sub(d.Position))
	}
	d.swingLeft = d.SwingTime
	d.closeTimer = d.CloseCheck
	d.log.Debug().Str("door", d.Name).Bool("open", d.Open).Float64("side", d.Side).Msg("door toggled")
}

// Tick advances the swing lock and the auto-close check.
func (d *Door) Tick(dt float64) {
	if d.swingLeft > 0 {
		d.swingLeft -= dt
	}
	if !d.Open {
		return
	}
	d.closeTimer -= dt
	if d.closeTimer > 0 {
		return
	}
	d.closeTimer = d.CloseCheck
	if d.player == nil || d.player().Sub(d.Position).Len() > d.CloseDistance {
		d.Open = false
		d.Side = 0
		d.swingLeft = d.SwingTime
		d.log.Debug().Str("door", d.Name).Msg("door closed itself")
	}
}
