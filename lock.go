package canopy

import "time"

// holdSet aggregates many independent holders into one boolean. The
// aggregate is recomputed once per frame by update; listeners hear only the
// false→true and true→false edges, however many holders come and go in
// between.
type holdSet struct {
	kind    string // "lock" or "pause", for log lines
	holders []*handle
	active  bool // aggregate as of the last update

	enter []sceneHandler
	exit  []sceneHandler

	// edge forwards transitions to the owning scene's EntityStore.
	edge func(active bool)
}

// handle is the state shared by Lock and PauseHandle.
type handle struct {
	set       *holdSet
	label     string
	held      bool
	timed     bool
	remaining float64 // seconds left on a timed hold
}

func (s *holdSet) register(h *handle) {
	if h.held {
		logDebugf(s.kind+".Register", "%s %q already registered, ignoring", s.kind, h.label)
		return
	}
	h.set = s
	h.held = true
	s.holders = append(s.holders, h)
}

func (s *holdSet) unregister(h *handle) {
	if !h.held {
		return
	}
	h.held = false
	h.timed = false
	h.remaining = 0
	for i, x := range s.holders {
		if x == h {
			copy(s.holders[i:], s.holders[i+1:])
			s.holders[len(s.holders)-1] = nil
			s.holders = s.holders[:len(s.holders)-1]
			return
		}
	}
}

func (s *holdSet) holdFor(h *handle, d time.Duration) error {
	if d < 0 {
		logWarnf(s.kind+".HoldFor", "rejected negative duration %v for %q", d, h.label)
		return ErrNegativeDuration
	}
	s.register(h)
	h.timed = true
	h.remaining = d.Seconds()
	return nil
}

// update ticks timed holders, recomputes the aggregate and fires the edge
// listeners on a transition.
func (s *holdSet) update(dt float64) {
	for i := 0; i < len(s.holders); {
		h := s.holders[i]
		if h.timed {
			h.remaining -= dt
			if h.remaining <= 0 {
				s.unregister(h)
				continue
			}
		}
		i++
	}

	now := len(s.holders) > 0
	if now == s.active {
		return
	}
	s.active = now
	list := s.exit
	if now {
		list = s.enter
	}
	for _, l := range append([]sceneHandler(nil), list...) {
		safeCallFor(s.kind+".Update", s.kind+" edge listener", func() { l.fn(nil) })
	}
	if s.edge != nil {
		s.edge(now)
	}
}

func (s *holdSet) listen(list *[]sceneHandler, fn func()) ListenerHandle {
	handlerIDCounter++
	id := handlerIDCounter
	*list = append(*list, sceneHandler{id: id, fn: func(*Event) { fn() }})
	return ListenerHandle{id: id, list: list}
}

// ListenerHandle removes an edge listener registered on a LockHandler or
// PauseHandler.
type ListenerHandle struct {
	id   uint32
	list *[]sceneHandler
}

// Remove unregisters the listener. Removing twice is harmless.
func (h ListenerHandle) Remove() {
	if h.list != nil {
		*h.list = removeSceneHandler(*h.list, h.id)
	}
}

func (h *handle) close() {
	if h.set != nil {
		h.set.unregister(h)
	}
}

// --- Locks ---

// LockHandler collapses any number of Locks into the single "input locked"
// state the host polls each frame.
type LockHandler struct {
	set holdSet
}

// NewLockHandler creates an unlocked handler.
func NewLockHandler() *LockHandler {
	return &LockHandler{set: holdSet{kind: "lock"}}
}

// Lock is a token held by something that wants host input suppressed.
type Lock struct {
	handle
}

// Acquire creates and registers a lock. The label only appears in logs.
func (lh *LockHandler) Acquire(label string) *Lock {
	l := &Lock{handle{label: label}}
	lh.set.register(&l.handle)
	return l
}

// Register adds l to the handler. Registering a held lock is ignored.
func (lh *LockHandler) Register(l *Lock) { lh.set.register(&l.handle) }

// Unregister removes l. No-op if it is not held.
func (lh *LockHandler) Unregister(l *Lock) { lh.set.unregister(&l.handle) }

// HoldFor registers l and releases it automatically after d of frame time.
// A negative d is logged and rejected with ErrNegativeDuration.
func (lh *LockHandler) HoldFor(l *Lock, d time.Duration) error {
	return lh.set.holdFor(&l.handle, d)
}

// IsLocked reports the aggregate as of the last Update.
func (lh *LockHandler) IsLocked() bool { return lh.set.active }

// Count returns the number of locks currently held.
func (lh *LockHandler) Count() int { return len(lh.set.holders) }

// OnLock registers fn to run when the aggregate goes from unlocked to locked.
func (lh *LockHandler) OnLock(fn func()) ListenerHandle { return lh.set.listen(&lh.set.enter, fn) }

// OnUnlock registers fn to run when the last lock is released.
func (lh *LockHandler) OnUnlock(fn func()) ListenerHandle { return lh.set.listen(&lh.set.exit, fn) }

// Update recomputes the aggregate. Call it once per frame after all other
// mutations; Scene.Tick does.
func (lh *LockHandler) Update(dt float64) { lh.set.update(dt) }

// Close releases the lock. Closing twice is harmless.
func (l *Lock) Close() { l.close() }

// Held reports whether the lock is registered.
func (l *Lock) Held() bool { return l.held }

// --- Pauses ---

// PauseHandler collapses any number of PauseHandles into the single "host
// paused" state.
type PauseHandler struct {
	set holdSet
}

// NewPauseHandler creates an unpaused handler.
func NewPauseHandler() *PauseHandler {
	return &PauseHandler{set: holdSet{kind: "pause"}}
}

// PauseHandle is a token held by something that wants the host paused.
type PauseHandle struct {
	handle
}

// Acquire creates and registers a pause handle.
func (ph *PauseHandler) Acquire(label string) *PauseHandle {
	p := &PauseHandle{handle{label: label}}
	ph.set.register(&p.handle)
	return p
}

// Register adds p to the handler. Registering a held handle is ignored.
func (ph *PauseHandler) Register(p *PauseHandle) { ph.set.register(&p.handle) }

// Unregister removes p. No-op if it is not held.
func (ph *PauseHandler) Unregister(p *PauseHandle) { ph.set.unregister(&p.handle) }

// HoldFor registers p and releases it automatically after d of frame time.
func (ph *PauseHandler) HoldFor(p *PauseHandle, d time.Duration) error {
	return ph.set.holdFor(&p.handle, d)
}

// IsPaused reports the aggregate as of the last Update.
func (ph *PauseHandler) IsPaused() bool { return ph.set.active }

// Count returns the number of handles currently held.
func (ph *PauseHandler) Count() int { return len(ph.set.holders) }

// OnPause registers fn to run when the aggregate goes from running to paused.
func (ph *PauseHandler) OnPause(fn func()) ListenerHandle { return ph.set.listen(&ph.set.enter, fn) }

// OnResume registers fn to run when the last handle is released.
func (ph *PauseHandler) OnResume(fn func()) ListenerHandle { return ph.set.listen(&ph.set.exit, fn) }

// Update recomputes the aggregate. Call it once per frame after all other
// mutations.
func (ph *PauseHandler) Update(dt float64) { ph.set.update(dt) }

// Close releases the handle. Closing twice is harmless.
func (p *PauseHandle) Close() { p.close() }

// Held reports whether the handle is registered.
func (p *PauseHandle) Held() bool { return p.held }
