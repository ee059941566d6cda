// Package interact holds the focus/interaction capability and the concrete
// targets shipped with the controller.
package interact

// Focusable is implemented by scene objects the interaction probe can select.
type Focusable interface {
	OnFocus()
	OnLoseFocus()
	OnInteract()
}

// Ticker is implemented by targets that keep their own timers.
type Ticker interface {
	Tick(dt float64)
}
