package canopy

// Timer is a reversible clock over [0, Duration]. It advances toward
// Duration while increasing and toward 0 otherwise, one Update call per
// frame. Reaching the end stops it and fires OnComplete exactly once.
//
// Timers do nothing on their own; call Update each frame or hand them to a
// Scene's Animator.
type Timer struct {
	duration   float64
	time       float64
	timeScale  float64
	increasing bool
	running    bool

	// infinite timers never complete by reaching Duration; their owner
	// decides when they are done. Used by EaseGroup.
	infinite bool

	// hook runs before OnIteration; Ease uses it to recompute its value.
	hook func()

	// OnIteration runs after every advance, including the one ForceRun does.
	OnIteration func()
	// OnComplete runs once when the timer reaches its end naturally or by
	// ForceRun. Stop never fires it.
	OnComplete func()
}

// NewTimer creates a stopped, increasing timer with time scale 1.
// A negative duration is logged and treated as 0.
func NewTimer(duration float64) *Timer {
	t := &Timer{timeScale: 1, increasing: true}
	if err := t.SetDuration(duration); err != nil {
		t.duration = 0
	}
	return t
}

// Duration returns the length of the timer in seconds.
func (t *Timer) Duration() float64 { return t.duration }

// Time returns the current position in [0, Duration].
func (t *Timer) Time() float64 { return t.time }

// TimeScale returns the multiplier applied to dt.
func (t *Timer) TimeScale() float64 { return t.timeScale }

// Increasing reports the direction of travel.
func (t *Timer) Increasing() bool { return t.increasing }

// Running reports whether Update advances the timer.
func (t *Timer) Running() bool { return t.running }

// Progress returns Time/Duration, or the direction's end when Duration is 0.
func (t *Timer) Progress() float64 {
	if t.duration == 0 {
		if t.increasing {
			return 1
		}
		return 0
	}
	return t.time / t.duration
}

// SetDuration changes the length, clamping the current time into range.
// Negative values are rejected: the call logs, returns ErrNegativeDuration
// and leaves the timer unchanged.
func (t *Timer) SetDuration(d float64) error {
	if d < 0 {
		logWarnf("Timer.SetDuration", "rejected negative duration %v", d)
		return ErrNegativeDuration
	}
	t.duration = d
	t.time = clamp(t.time, 0, d)
	return nil
}

// SetTimeScale sets the multiplier applied to dt. Negative values are
// rejected with ErrNegativeTimeScale and leave the scale unchanged.
func (t *Timer) SetTimeScale(s float64) error {
	if s < 0 {
		logWarnf("Timer.SetTimeScale", "rejected negative time scale %v", s)
		return ErrNegativeTimeScale
	}
	t.timeScale = s
	return nil
}

// SetIncreasing sets the direction without touching the current time.
func (t *Timer) SetIncreasing(increasing bool) {
	t.increasing = increasing
}

// SetTime moves the clock, clamped to [0, Duration]. Callbacks do not fire.
func (t *Timer) SetTime(v float64) {
	t.time = clamp(v, 0, t.duration)
}

// Reverse flips the direction without altering the time, so a running timer
// continues smoothly from where it is.
func (t *Timer) Reverse() {
	t.increasing = !t.increasing
}

func (t *Timer) target() float64 {
	if t.increasing {
		return t.duration
	}
	return 0
}

// Start begins running toward the end implied by the direction. With a zero
// duration the timer collapses to that end at once, firing OnIteration and
// OnComplete without waiting for a tick.
func (t *Timer) Start() {
	t.running = true
	if t.duration == 0 {
		t.finish()
	}
}

// Stop halts the timer where it is. OnComplete is not fired.
func (t *Timer) Stop() {
	t.running = false
}

// ForceRun skips the interpolation: the time jumps to the end, one iteration
// runs, then completion. Use it to apply an end state without animating.
func (t *Timer) ForceRun() {
	t.running = true
	t.finish()
}

func (t *Timer) finish() {
	t.time = t.target()
	t.iterate()
	t.running = false
	t.complete()
}

func (t *Timer) iterate() {
	if t.hook != nil {
		t.hook()
	}
	if t.OnIteration != nil {
		safeCall("Timer.OnIteration", t.OnIteration)
	}
}

func (t *Timer) complete() {
	if t.OnComplete != nil {
		safeCall("Timer.OnComplete", t.OnComplete)
	}
}

// advance moves the clock by dt in the current direction and clamps it.
func (t *Timer) advance(dt float64) {
	step := dt * t.timeScale
	if t.increasing {
		t.time = min(t.time+step, t.duration)
	} else {
		t.time = max(t.time-step, 0)
	}
}

// Update advances a running timer by dt seconds scaled by TimeScale. It
// returns true on the tick the timer completes.
func (t *Timer) Update(dt float64) bool {
	if !t.running {
		return false
	}
	if dt < 0 {
		dt = 0
	}
	t.advance(dt)
	t.iterate()
	if !t.running || t.infinite || t.time != t.target() {
		return false
	}
	t.running = false
	t.complete()
	return true
}
