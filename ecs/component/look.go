package component

// Look holds mouse-look tuning and the accumulated view angles in degrees.
type Look struct {
	HorizontalSpeed float64
	VerticalSpeed   float64
	UpperLimit      float64
	LowerLimit      float64

	Pitch float64
	Yaw   float64
}

var LookComponent = NewComponent[Look]()
