package component

// Bob is the speed and amplitude of the head bob for one gait.
type Bob struct {
	Speed  float64
	Amount float64
}

// Headbob oscillates the camera height while walking.
type Headbob struct {
	Walk   Bob
	Sprint Bob
	Crouch Bob

	DefaultY float64
	Phase    float64
}

var HeadbobComponent = NewComponent[Headbob]()
