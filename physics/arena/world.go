// Package arena is a static 3D collision world for first-person
// characters. Solids are vertical prisms: a 2D footprint in a chipmunk
// space over the XZ plane, a flat bottom and a top plane that may slope.
package arena

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/fpscontroller/common"
	"github.com/milk9111/fpscontroller/interact"
	"github.com/milk9111/fpscontroller/physics"
	"github.com/rs/zerolog"
)

var (
	ErrBadFootprint = errors.New("arena: footprint has no area")
	ErrBadExtent    = errors.New("arena: top must be above bottom")
	ErrSteepTop     = errors.New("arena: top plane is too steep")
	ErrUnknownSolid = errors.New("arena: unknown solid")
	ErrBadRadius    = errors.New("arena: capsule radius must be positive")
)

// minTopNormalY bounds how steep a top plane may be. Steeper tops would be
// walls and should be modelled as footprints instead.
const minTopNormalY = 0.1

const rayEpsilon = 1e-6

// Solid is one static prism in the world.
type Solid struct {
	ID     physics.ColliderID
	Name   string
	Layer  physics.Layer
	Tag    string
	Bottom float64

	// The top surface is the plane through TopAnchor with normal TopNormal.
	TopAnchor mgl64.Vec3
	TopNormal mgl64.Vec3

	shape  *cp.Shape
	bounds cp.BB
}

// TopAt returns the height of the top plane above (x, z).
func (s *Solid) TopAt(x, z float64) float64 {
	n, a := s.TopNormal, s.TopAnchor
	return a.Y() - (n.X()*(x-a.X())+n.Z()*(z-a.Z()))/n.Y()
}

// Contains reports whether (x, z) lies within the footprint.
func (s *Solid) Contains(x, z float64) bool {
	return s.shape.PointQuery(cp.Vector{X: x, Y: z}).Distance <= 0
}

// Bounds returns the footprint's bounding box in XZ.
func (s *Solid) Bounds() (min, max mgl64.Vec2) {
	return mgl64.Vec2{s.bounds.L, s.bounds.B}, mgl64.Vec2{s.bounds.R, s.bounds.T}
}

// Slope returns the angle of the top plane in degrees.
func (s *Solid) Slope() float64 {
	return common.AngleFromUp(s.TopNormal)
}

// World holds the solids and the focusable targets attached to them.
type World struct {
	space   *cp.Space
	solids  map[physics.ColliderID]*Solid
	order   []*Solid
	targets map[physics.ColliderID]interact.Focusable
	nextID  physics.ColliderID
	log     zerolog.Logger
}

func NewWorld(log zerolog.Logger) *World {
	return &World{
		space:   cp.NewSpace(),
		solids:  make(map[physics.ColliderID]*Solid),
		targets: make(map[physics.ColliderID]interact.Focusable),
		log:     log,
	}
}

// BoxSpec describes an axis-aligned block with a flat top.
type BoxSpec struct {
	Name   string
	Min    mgl64.Vec2 // XZ
	Max    mgl64.Vec2
	Bottom float64
	Top    float64
	Layer  physics.Layer
	Tag    string
}

func (w *World) AddBox(spec BoxSpec) (*Solid, error) {
	return w.AddRamp(RampSpec{BoxSpec: spec})
}

// RampSpec is a box whose top rises by Rise along Direction (XZ) across
// its footprint, starting at Top on the low side.
type RampSpec struct {
	BoxSpec
	Direction mgl64.Vec2
	Rise      float64
}

func (w *World) AddRamp(spec RampSpec) (*Solid, error) {
	if spec.Max.X() <= spec.Min.X() || spec.Max.Y() <= spec.Min.Y() {
		return nil, ErrBadFootprint
	}
	if spec.Top <= spec.Bottom {
		return nil, ErrBadExtent
	}
	bb := newBB(spec.Min.X(), spec.Min.Y(), spec.Max.X(), spec.Max.Y())
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)

	center := spec.Min.Add(spec.Max).Mul(0.5)
	anchor := mgl64.Vec3{center.X(), spec.Top, center.Y()}
	normal := common.Up
	if spec.Rise != 0 && spec.Direction.Len() > 0 {
		d := spec.Direction.Normalize()
		// run along d across the footprint
		run := math.Abs(d.X())*(spec.Max.X()-spec.Min.X()) + math.Abs(d.Y())*(spec.Max.Y()-spec.Min.Y())
		slope := spec.Rise / run
		normal = mgl64.Vec3{-d.X() * slope, 1, -d.Y() * slope}.Normalize()
		anchor[1] = spec.Top + spec.Rise/2
	}
	return w.add(spec.BoxSpec, shape, bb, anchor, normal)
}

// PillarSpec is a round column.
type PillarSpec struct {
	Name   string
	Center mgl64.Vec2 // XZ
	Radius float64
	Bottom float64
	Top    float64
	Layer  physics.Layer
	Tag    string
}

func (w *World) AddPillar(spec PillarSpec) (*Solid, error) {
	if spec.Radius <= 0 {
		return nil, ErrBadFootprint
	}
	if spec.Top <= spec.Bottom {
		return nil, ErrBadExtent
	}
	c := cp.Vector{X: spec.Center.X(), Y: spec.Center.Y()}
	shape := cp.NewCircle(w.space.StaticBody, spec.Radius, c)
	bb := newBB(c.X-spec.Radius, c.Y-spec.Radius, c.X+spec.Radius, c.Y+spec.Radius)
	box := BoxSpec{Name: spec.Name, Bottom: spec.Bottom, Top: spec.Top, Layer: spec.Layer, Tag: spec.Tag}
	return w.add(box, shape, bb, mgl64.Vec3{c.X, spec.Top, c.Y}, common.Up)
}

// WallSpec is a thin wall between two XZ points.
type WallSpec struct {
	Name      string
	From, To  mgl64.Vec2
	Thickness float64
	Bottom    float64
	Top       float64
	Layer     physics.Layer
	Tag       string
}

func (w *World) AddWall(spec WallSpec) (*Solid, error) {
	if spec.From == spec.To || spec.Thickness <= 0 {
		return nil, ErrBadFootprint
	}
	if spec.Top <= spec.Bottom {
		return nil, ErrBadExtent
	}
	a := cp.Vector{X: spec.From.X(), Y: spec.From.Y()}
	b := cp.Vector{X: spec.To.X(), Y: spec.To.Y()}
	r := spec.Thickness / 2
	shape := cp.NewSegment(w.space.StaticBody, a, b, r)
	bb := newBB(math.Min(a.X, b.X)-r, math.Min(a.Y, b.Y)-r, math.Max(a.X, b.X)+r, math.Max(a.Y, b.Y)+r)
	mid := a.Add(b).Mult(0.5)
	box := BoxSpec{Name: spec.Name, Bottom: spec.Bottom, Top: spec.Top, Layer: spec.Layer, Tag: spec.Tag}
	return w.add(box, shape, bb, mgl64.Vec3{mid.X, spec.Top, mid.Y}, common.Up)
}

func (w *World) add(spec BoxSpec, shape *cp.Shape, bb cp.BB, anchor, normal mgl64.Vec3) (*Solid, error) {
	if normal.Y() < minTopNormalY {
		return nil, ErrSteepTop
	}
	w.nextID++
	s := &Solid{
		ID:        w.nextID,
		Name:      spec.Name,
		Layer:     spec.Layer,
		Tag:       spec.Tag,
		Bottom:    spec.Bottom,
		TopAnchor: anchor,
		TopNormal: normal,
		shape:     shape,
		bounds:    bb,
	}
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(spec.Layer.Mask()), cp.ALL_CATEGORIES))
	shape.UserData = s
	w.space.AddShape(shape)

	w.solids[s.ID] = s
	w.order = append(w.order, s)
	w.log.Debug().Str("solid", s.Name).Uint64("id", uint64(s.ID)).Msg("solid added")
	return s, nil
}

// Attach links a focusable target to a solid.
func (w *World) Attach(id physics.ColliderID, target interact.Focusable) error {
	if _, ok := w.solids[id]; !ok {
		return ErrUnknownSolid
	}
	w.targets[id] = target
	return nil
}

func (w *World) Target(id physics.ColliderID) (interact.Focusable, bool) {
	t, ok := w.targets[id]
	return t, ok
}

func (w *World) Solid(id physics.ColliderID) (*Solid, bool) {
	s, ok := w.solids[id]
	return s, ok
}

// Solids returns every solid in insertion order.
func (w *World) Solids() []*Solid {
	return append([]*Solid(nil), w.order...)
}

// Tick advances every attached target that animates.
func (w *World) Tick(dt float64) {
	for _, s := range w.order {
		if t, ok := w.targets[s.ID].(interact.Ticker); ok {
			t.Tick(dt)
		}
	}
}

// query collects the solids whose footprint bounds touch bb on a layer in mask.
func (w *World) query(bb cp.BB, mask physics.LayerMask) []*Solid {
	var out []*Solid
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
	w.space.BBQuery(bb, filter, func(shape *cp.Shape, _ interface{}) {
		if s, ok := shape.UserData.(*Solid); ok {
			out = append(out, s)
		}
	}, nil)
	return out
}

func newBB(l, b, r, t float64) cp.BB {
	return cp.BB{L: l, B: b, R: r, T: t}
}

func segmentBB(a, b cp.Vector, pad float64) cp.BB {
	return newBB(math.Min(a.X, b.X)-pad, math.Min(a.Y, b.Y)-pad, math.Max(a.X, b.X)+pad, math.Max(a.Y, b.Y)+pad)
}

// Raycast returns the nearest solid surface along the ray.
func (w *World) Raycast(origin, dir mgl64.Vec3, maxDist float64, mask physics.LayerMask) (physics.Hit, bool) {
	if maxDist <= 0 || dir.Len() == 0 {
		return physics.Hit{}, false
	}
	dir = dir.Normalize()
	end := origin.Add(dir.Mul(maxDist))
	a := cp.Vector{X: origin.X(), Y: origin.Z()}
	b := cp.Vector{X: end.X(), Y: end.Z()}

	var (
		best  physics.Hit
		found bool
	)
	for _, s := range w.query(segmentBB(a, b, 0.01), mask) {
		t, n, ok := s.intersect(origin, dir, maxDist, a, b)
		if !ok || (found && t >= best.Distance) {
			continue
		}
		best = physics.Hit{
			Point:    origin.Add(dir.Mul(t)),
			Normal:   n,
			Distance: t,
			Collider: s.ID,
			Layer:    s.Layer,
			Tag:      s.Tag,
		}
		found = true
	}
	return best, found
}

// intersect finds where the ray enters the prism.
func (s *Solid) intersect(origin, dir mgl64.Vec3, maxDist float64, a, b cp.Vector) (float64, mgl64.Vec3, bool) {
	best := math.Inf(1)
	var normal mgl64.Vec3

	try := func(t float64, n mgl64.Vec3) {
		if t >= 0 && t <= maxDist && t < best {
			best, normal = t, n
		}
	}

	// sides
	if a.Distance(b) > rayEpsilon && !s.Contains(origin.X(), origin.Z()) {
		var info cp.SegmentQueryInfo
		if s.shape.SegmentQuery(a, b, 0, &info) {
			t := info.Alpha * maxDist
			p := origin.Add(dir.Mul(t))
			if p.Y() >= s.Bottom && p.Y() <= s.TopAt(p.X(), p.Z()) {
				try(t, mgl64.Vec3{info.Normal.X, 0, info.Normal.Y})
			}
		}
	}

	// top plane, from above
	if denom := dir.Dot(s.TopNormal); denom < -rayEpsilon {
		t := s.TopAnchor.Sub(origin).Dot(s.TopNormal) / denom
		p := origin.Add(dir.Mul(t))
		if s.Contains(p.X(), p.Z()) {
			try(t, s.TopNormal)
		}
	}

	// bottom, from below
	if dir.Y() > rayEpsilon {
		t := (s.Bottom - origin.Y()) / dir.Y()
		p := origin.Add(dir.Mul(t))
		if s.Contains(p.X(), p.Z()) {
			try(t, mgl64.Vec3{0, -1, 0})
		}
	}

	return best, normal, !math.IsInf(best, 1)
}
