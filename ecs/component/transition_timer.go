package component

// Transition interpolates a value between two endpoints over a fixed
// duration, advanced once per tick. Starting it again discards the
// previous run.
type Transition[T any] struct {
	From     T
	To       T
	Elapsed  float64
	Duration float64
	Active   bool

	lerp func(a, b T, t float64) T
}

func NewTransition[T any](lerp func(a, b T, t float64) T) Transition[T] {
	return Transition[T]{lerp: lerp}
}

// Start begins a run from from to to. The starting tick does not advance.
func (tr *Transition[T]) Start(from, to T, duration float64) {
	tr.From = from
	tr.To = to
	tr.Elapsed = 0
	tr.Duration = duration
	tr.Active = true
}

func (tr *Transition[T]) Cancel() {
	tr.Active = false
}

// Value returns the interpolated value at the current elapsed time.
func (tr *Transition[T]) Value() T {
	if !tr.Active || tr.Elapsed >= tr.Duration || tr.lerp == nil {
		return tr.To
	}
	return tr.lerp(tr.From, tr.To, tr.Progress())
}

// Progress returns elapsed/duration clamped to [0, 1].
func (tr *Transition[T]) Progress() float64 {
	if tr.Duration <= 0 {
		return 1
	}
	p := tr.Elapsed / tr.Duration
	if p > 1 {
		return 1
	}
	return p
}

// Advance moves the run forward by dt. On the tick the duration is reached
// it returns exactly To, reports done and deactivates.
func (tr *Transition[T]) Advance(dt float64) (T, bool) {
	if !tr.Active {
		return tr.To, false
	}
	tr.Elapsed += dt
	if tr.Elapsed >= tr.Duration {
		tr.Active = false
		return tr.To, true
	}
	return tr.lerp(tr.From, tr.To, tr.Progress()), false
}
