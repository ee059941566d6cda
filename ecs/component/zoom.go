package component

import "github.com/milk9111/fpscontroller/common"

type ZoomState uint8

const (
	ZoomDefault ZoomState = iota
	ZoomZoomed
	ZoomTransitioning
)

func (s ZoomState) String() string {
	switch s {
	case ZoomDefault:
		return "default"
	case ZoomZoomed:
		return "zoomed"
	case ZoomTransitioning:
		return "transitioning"
	}
	return "unknown"
}

// Zoom animates the camera field of view between two values.
type Zoom struct {
	DefaultFOV float64
	ZoomFOV    float64
	Duration   float64

	State ZoomState
	// Entering is the direction of the running or last transition.
	Entering   bool
	Transition Transition[float64]
}

func NewZoom(defaultFOV, zoomFOV, duration float64) *Zoom {
	return &Zoom{
		DefaultFOV: defaultFOV,
		ZoomFOV:    zoomFOV,
		Duration:   duration,
		Transition: NewTransition(common.Lerp),
	}
}

// Target returns the FOV the zoom is heading to.
func (z *Zoom) Target() float64 {
	if z.Entering {
		return z.ZoomFOV
	}
	return z.DefaultFOV
}

var ZoomComponent = NewComponent[Zoom]()
