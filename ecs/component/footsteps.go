package component

// Footsteps paces step events while the character walks.
type Footsteps struct {
	BaseInterval     float64
	CrouchMultiplier float64
	SprintMultiplier float64
	ProbeDistance    float64
	// Surfaces maps collider tags to surface names. Unmapped tags are
	// reported as-is.
	Surfaces map[string]string

	Timer float64
}

var FootstepsComponent = NewComponent[Footsteps]()
