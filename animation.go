package canopy

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Ease interpolates a scalar between two endpoints over a Timer. The curve
// is any gween easing function; its output is clamped to the endpoint range
// so overshooting curves (back, elastic) never leave it.
type Ease struct {
	Timer

	minValue float64
	maxValue float64
	value    float64
	curve    ease.TweenFunc
	tween    *gween.Tween

	// OnValue receives the new value after every iteration, before
	// OnIteration runs.
	OnValue func(v float64)
}

// NewEase creates a stopped, increasing ease from minValue to maxValue.
// A nil curve means ease.Linear.
func NewEase(minValue, maxValue, duration float64, curve ease.TweenFunc) *Ease {
	e := &Ease{minValue: minValue, maxValue: maxValue, curve: curve}
	if e.curve == nil {
		e.curve = ease.Linear
	}
	e.timeScale = 1
	e.increasing = true
	if duration < 0 {
		logWarnf("NewEase", "rejected negative duration %v", duration)
		duration = 0
	}
	e.duration = duration
	e.hook = e.refresh
	e.rebuild()
	return e
}

// Value returns the current interpolated value.
func (e *Ease) Value() float64 { return e.value }

// MinValue returns the value at time 0.
func (e *Ease) MinValue() float64 { return e.minValue }

// MaxValue returns the value at time Duration.
func (e *Ease) MaxValue() float64 { return e.maxValue }

// EasingIn reports whether the ease is running toward MaxValue.
func (e *Ease) EasingIn() bool { return e.running && e.increasing }

// EasingOut reports whether the ease is running toward MinValue.
func (e *Ease) EasingOut() bool { return e.running && !e.increasing }

// SetValues changes both endpoints and recomputes the value at the current
// time.
func (e *Ease) SetValues(minValue, maxValue float64) {
	e.minValue, e.maxValue = minValue, maxValue
	e.rebuild()
}

// SetDuration changes the length, keeping the time clamped into range.
func (e *Ease) SetDuration(d float64) error {
	if err := e.Timer.SetDuration(d); err != nil {
		return err
	}
	e.rebuild()
	return nil
}

// SetCurve replaces the easing function. A nil curve means ease.Linear.
func (e *Ease) SetCurve(curve ease.TweenFunc) {
	if curve == nil {
		curve = ease.Linear
	}
	e.curve = curve
	e.rebuild()
}

// SetTime moves the clock and recomputes the value without firing callbacks.
func (e *Ease) SetTime(v float64) {
	e.Timer.SetTime(v)
	e.computeValue()
}

// EaseIn starts running toward MaxValue from the current time.
func (e *Ease) EaseIn() {
	e.increasing = true
	e.Start()
}

// EaseOut starts running toward MinValue from the current time.
func (e *Ease) EaseOut() {
	e.increasing = false
	e.Start()
}

func (e *Ease) rebuild() {
	e.tween = gween.New(float32(e.minValue), float32(e.maxValue), float32(e.duration), e.curve)
	e.computeValue()
}

func (e *Ease) computeValue() {
	lo, hi := min(e.minValue, e.maxValue), max(e.minValue, e.maxValue)
	switch {
	case e.duration == 0:
		if e.increasing {
			e.value = e.maxValue
		} else {
			e.value = e.minValue
		}
	case e.time <= 0:
		e.value = e.minValue
	case e.time >= e.duration:
		e.value = e.maxValue
	default:
		v, _ := e.tween.Set(float32(e.time))
		e.value = clamp(float64(v), lo, hi)
	}
}

func (e *Ease) refresh() {
	e.computeValue()
	if e.OnValue != nil {
		v := e.value
		safeCall("Ease.OnValue", func() { e.OnValue(v) })
	}
}

// NewFade creates an ease over the node's alpha from 0 to opacity. Every
// iteration writes the value into node.Alpha.
func NewFade(node *Node, opacity, duration float64, curve ease.TweenFunc) *Ease {
	f := NewEase(0, opacity, duration, curve)
	f.OnValue = node.SetAlpha
	return f
}

// --- EaseGroup ---

// EaseGroup drives several eases to a joint completion. Every Update
// advances all members by the same dt, whatever their own durations;
// members with shorter durations clamp at their end early.
//
// While increasing, the group completes on the tick every member reaches its
// MaxValue. While decreasing it completes only when the group's own clock,
// whose duration is the longest member's, reaches 0.
type EaseGroup struct {
	Timer
	members []*Ease
}

// NewEaseGroup creates a stopped, increasing group over the given eases.
func NewEaseGroup(eases ...*Ease) *EaseGroup {
	g := &EaseGroup{}
	g.timeScale = 1
	g.increasing = true
	g.infinite = true
	for _, e := range eases {
		g.Add(e)
	}
	return g
}

// Add makes e a member. Adding the same ease twice is ignored.
// Members must not also be updated on their own.
func (g *EaseGroup) Add(e *Ease) {
	for _, m := range g.members {
		if m == e {
			logDebugf("EaseGroup.Add", "ease already in group, ignoring")
			return
		}
	}
	g.members = append(g.members, e)
	g.syncDuration()
}

// Remove drops e from the group. No-op if it is not a member.
func (g *EaseGroup) Remove(e *Ease) {
	for i, m := range g.members {
		if m == e {
			g.members = append(g.members[:i], g.members[i+1:]...)
			g.syncDuration()
			return
		}
	}
}

// Members returns the member list. The returned slice MUST NOT be mutated.
func (g *EaseGroup) Members() []*Ease {
	return g.members
}

// Finished reports whether the group is increasing and every member sits at
// its MaxValue. It is never true while decreasing.
func (g *EaseGroup) Finished() bool {
	if !g.increasing {
		return false
	}
	for _, m := range g.members {
		if m.value != m.maxValue {
			return false
		}
	}
	return true
}

func (g *EaseGroup) syncDuration() {
	d := 0.0
	for _, m := range g.members {
		d = max(d, m.duration)
	}
	g.duration = d
	g.time = clamp(g.time, 0, d)
}

func (g *EaseGroup) setMembersRunning(running bool) {
	for _, m := range g.members {
		m.increasing = g.increasing
		m.running = running
	}
}

// Start runs every member in the group's direction. A group whose members
// all have zero duration collapses to its end at once.
func (g *EaseGroup) Start() {
	g.syncDuration()
	g.running = true
	g.setMembersRunning(true)
	if g.duration == 0 {
		g.ForceRun()
	}
}

// Stop halts the group and its members without firing completion.
func (g *EaseGroup) Stop() {
	g.running = false
	g.setMembersRunning(false)
}

// ForceRun jumps every member and the group clock to the end of the current
// direction, runs one iteration each, then fires the group's completion.
func (g *EaseGroup) ForceRun() {
	for _, m := range g.members {
		m.increasing = g.increasing
		m.time = m.target()
		m.iterate()
	}
	g.setMembersRunning(false)
	g.Timer.ForceRun()
}

// Update advances all members and the group clock by dt. It returns true on
// the tick the group completes.
func (g *EaseGroup) Update(dt float64) bool {
	if !g.running {
		return false
	}
	if dt < 0 {
		dt = 0
	}
	step := dt * g.timeScale
	for _, m := range g.members {
		m.increasing = g.increasing
		m.advance(step)
		m.iterate()
	}
	g.advance(dt)
	g.iterate()
	if !g.running {
		return false
	}
	done := g.Finished()
	if !g.increasing {
		done = g.time == 0
	}
	if !done {
		return false
	}
	g.running = false
	g.setMembersRunning(false)
	g.complete()
	return true
}
