package arena

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/fpscontroller/physics"
)

const (
	// skin is the contact tolerance for ground and ceiling checks.
	skin = 0.01
	// maxPushIterations bounds the depenetration passes per substep.
	maxPushIterations = 4
)

// CapsuleSpec configures a character capsule.
type CapsuleSpec struct {
	Position   mgl64.Vec3
	Height     float64
	Radius     float64
	Center     mgl64.Vec3
	SlopeLimit float64
	StepOffset float64
	// Mask selects the layers the capsule collides with.
	Mask physics.LayerMask
}

// Capsule is an upright character collider moved by sweeps through a World.
type Capsule struct {
	world *World

	pos        mgl64.Vec3
	height     float64
	radius     float64
	center     mgl64.Vec3
	slopeLimit float64
	stepOffset float64
	mask       physics.LayerMask

	grounded bool
	velocity mgl64.Vec3
}

func (w *World) NewCapsule(spec CapsuleSpec) (*Capsule, error) {
	if !(spec.Radius > 0) || math.IsInf(spec.Radius, 0) {
		return nil, fmt.Errorf("%w, got %g", ErrBadRadius, spec.Radius)
	}
	if spec.Mask == 0 {
		spec.Mask = physics.AllLayers
	}
	return &Capsule{
		world:      w,
		pos:        spec.Position,
		height:     spec.Height,
		radius:     spec.Radius,
		center:     spec.Center,
		slopeLimit: spec.SlopeLimit,
		stepOffset: spec.StepOffset,
		mask:       spec.Mask,
	}, nil
}

func (c *Capsule) Position() mgl64.Vec3 { return c.pos }
func (c *Capsule) IsGrounded() bool { return c.grounded }
func (c *Capsule) Height() float64 { return c.height }
func (c *Capsule) SetHeight(h float64) { c.height = h }
func (c *Capsule) Center() mgl64.Vec3 { return c.center }
func (c *Capsule) SetCenter(v mgl64.Vec3) { c.center = v }
func (c *Capsule) Radius() float64 { return c.radius }
func (c *Capsule) SlopeLimit() float64 { return c.slopeLimit }
func (c *Capsule) Velocity() mgl64.Vec3 { return c.velocity }

// Teleport places the capsule without sweeping.
func (c *Capsule) Teleport(p mgl64.Vec3) {
	c.pos = p
	c.velocity = mgl64.Vec3{}
	c.grounded = false
}

func (c *Capsule) halfHeight() float64 {
	return math.Max(c.height, 2*c.radius) / 2
}

// Feet returns the world height of the capsule's lowest point.
func (c *Capsule) Feet() float64 {
	return c.pos.Y() + c.center.Y() - c.halfHeight()
}

// Head returns the world height of the capsule's highest point.
func (c *Capsule) Head() float64 {
	return c.pos.Y() + c.center.Y() + c.halfHeight()
}

// Move sweeps the capsule horizontally with sliding, then resolves the
// vertical motion against floors and ceilings.
func (c *Capsule) Move(motion mgl64.Vec3, dt float64) {
	start := c.pos

	c.moveHorizontal(motion.X(), motion.Z())
	c.moveVertical(motion.Y())

	if dt > 0 {
		c.velocity = c.pos.Sub(start).Mul(1 / dt)
	} else {
		c.velocity = mgl64.Vec3{}
	}
}

func (c *Capsule) moveHorizontal(dx, dz float64) {
	dist := math.Hypot(dx, dz)
	if dist == 0 {
		return
	}
	steps := int(math.Ceil(dist / (c.radius / 2)))
	sx, sz := dx/float64(steps), dz/float64(steps)
	for i := 0; i < steps; i++ {
		c.pos[0] += sx
		c.pos[2] += sz
		c.depenetrate()
	}
}

// depenetrate pushes the capsule out of every blocking footprint.
func (c *Capsule) depenetrate() {
	for i := 0; i < maxPushIterations; i++ {
		p := cp.Vector{X: c.pos.X(), Y: c.pos.Z()}
		bb := newBB(p.X-c.radius, p.Y-c.radius, p.X+c.radius, p.Y+c.radius)
		pushed := false
		for _, s := range c.world.query(bb, c.mask) {
			if !c.blockedBy(s) {
				continue
			}
			info := s.shape.PointQuery(p)
			if info.Distance >= c.radius {
				continue
			}
			// a negative distance means the center is inside; the gradient
			// still points out
			out := info.Gradient
			push := c.radius - info.Distance
			c.pos[0] += out.X * push
			c.pos[2] += out.Y * push
			p = cp.Vector{X: c.pos.X(), Y: c.pos.Z()}
			pushed = true
		}
		if !pushed {
			return
		}
	}
}

// blockedBy reports whether s acts as a wall at the capsule's height.
func (c *Capsule) blockedBy(s *Solid) bool {
	feet, head := c.Feet(), c.Head()
	if s.Bottom >= head-skin {
		return false
	}
	top := s.TopAt(c.pos.X(), c.pos.Z())
	if top <= feet+skin {
		return false
	}
	if top-feet <= c.stepOffset && s.Slope() <= c.slopeLimit {
		return false
	}
	return true
}

func (c *Capsule) moveVertical(dy float64) {
	wasGrounded := c.grounded
	head := c.Head()
	feet := c.Feet()
	ground, hasGround := c.groundBelow(feet + c.stepOffset)

	c.pos[1] += dy
	newFeet := c.Feet()

	switch {
	case hasGround && newFeet <= ground+skin:
		c.pos[1] += ground - newFeet
		c.grounded = true
	case hasGround && wasGrounded && dy <= 0 && newFeet-ground <= c.stepOffset:
		// follow the ground down gentle slopes and steps
		c.pos[1] += ground - newFeet
		c.grounded = true
	default:
		c.grounded = false
	}

	if ceiling, ok := c.ceilingAbove(head); ok && c.Head() > ceiling {
		c.pos[1] -= c.Head() - ceiling
	}
}

// groundBelow returns the highest top under the capsule's center that is
// no higher than limit.
func (c *Capsule) groundBelow(limit float64) (float64, bool) {
	x, z := c.pos.X(), c.pos.Z()
	best, found := math.Inf(-1), false
	bb := newBB(x-skin, z-skin, x+skin, z+skin)
	for _, s := range c.world.query(bb, c.mask) {
		if !s.Contains(x, z) {
			continue
		}
		top := s.TopAt(x, z)
		if top <= limit && top > best {
			best, found = top, true
		}
	}
	return best, found
}

// ceilingAbove returns the lowest solid bottom above head under the
// capsule's center.
func (c *Capsule) ceilingAbove(head float64) (float64, bool) {
	x, z := c.pos.X(), c.pos.Z()
	best, found := math.Inf(1), false
	bb := newBB(x-skin, z-skin, x+skin, z+skin)
	for _, s := range c.world.query(bb, c.mask) {
		if !s.Contains(x, z) {
			continue
		}
		if s.Bottom >= head-skin && s.Bottom < best {
			best, found = s.Bottom, true
		}
	}
	return best, found
}
