package canopy

// Ticker is anything advanced once per frame. Timer, Ease and EaseGroup all
// satisfy it.
type Ticker interface {
	Update(dt float64) bool
}

// Animator advances a list of Tickers once per frame. A Scene owns one and
// ticks it after input is processed, so animation sees the frame's final
// input state. Tickers stay registered after they complete and resume
// ticking whenever they are started again.
type Animator struct {
	tickers []Ticker
	ticking bool
	pending []Ticker // added during a tick; merged afterwards
}

// Add registers t. Adding the same ticker twice is ignored.
func (a *Animator) Add(t Ticker) {
	if a.Has(t) {
		logDebugf("Animator.Add", "ticker already registered, ignoring")
		return
	}
	if a.ticking {
		a.pending = append(a.pending, t)
		return
	}
	a.tickers = append(a.tickers, t)
}

// Remove unregisters t. No-op if it is not registered.
func (a *Animator) Remove(t Ticker) {
	for i, x := range a.tickers {
		if x == t {
			// Nil out in place while ticking so the loop index stays valid.
			if a.ticking {
				a.tickers[i] = nil
				return
			}
			a.tickers = append(a.tickers[:i], a.tickers[i+1:]...)
			return
		}
	}
	for i, x := range a.pending {
		if x == t {
			a.pending = append(a.pending[:i], a.pending[i+1:]...)
			return
		}
	}
}

// Has reports whether t is registered.
func (a *Animator) Has(t Ticker) bool {
	for _, x := range a.tickers {
		if x == t {
			return true
		}
	}
	for _, x := range a.pending {
		if x == t {
			return true
		}
	}
	return false
}

// Len returns the number of registered tickers.
func (a *Animator) Len() int {
	n := len(a.pending)
	for _, t := range a.tickers {
		if t != nil {
			n++
		}
	}
	return n
}

// Update advances every registered ticker by dt. A panicking ticker is
// logged and the rest still run.
func (a *Animator) Update(dt float64) {
	a.ticking = true
	for _, t := range a.tickers {
		if t != nil {
			safeCall("Animator.Update", func() { t.Update(dt) })
		}
	}
	a.ticking = false

	live := a.tickers[:0]
	for _, t := range a.tickers {
		if t != nil {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(a.tickers); i++ {
		a.tickers[i] = nil
	}
	a.tickers = append(live, a.pending...)
	a.pending = a.pending[:0]
}
