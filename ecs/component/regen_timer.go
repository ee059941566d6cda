package component

// RegenerationTimer waits out an idle window, then yields one increment
// immediately and another every TickInterval seconds.
type RegenerationTimer struct {
	IdleElapsed     float64
	IdleThreshold   float64
	TickInterval    float64
	TickAccumulator float64
	// Ticking is set once the idle window has closed.
	Ticking bool
	Running bool
}

func NewRegenerationTimer(idle, interval float64) *RegenerationTimer {
	return &RegenerationTimer{
		IdleThreshold: idle,
		TickInterval:  interval,
		Running:       true,
	}
}

// Idle reports whether the idle window is still open.
func (r *RegenerationTimer) Idle() bool {
	return r != nil && !r.Ticking
}

// Advance moves the timer by dt and returns how many increments are due.
func (r *RegenerationTimer) Advance(dt float64) int {
	if r == nil || !r.Running {
		return 0
	}
	if !r.Ticking {
		r.IdleElapsed += dt
		if r.IdleElapsed < r.IdleThreshold {
			return 0
		}
		r.Ticking = true
		r.TickAccumulator = r.IdleElapsed - r.IdleThreshold
		return 1 + r.drain()
	}
	r.TickAccumulator += dt
	return r.drain()
}

func (r *RegenerationTimer) drain() int {
	if r.TickInterval <= 0 {
		r.TickAccumulator = 0
		return 1
	}
	n := 0
	for r.TickAccumulator >= r.TickInterval {
		r.TickAccumulator -= r.TickInterval
		n++
	}
	return n
}

func (r *RegenerationTimer) Stop() {
	if r != nil {
		r.Running = false
	}
}
