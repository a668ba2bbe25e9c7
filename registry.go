package canopy

// OverlayRegistry keeps overlays in stacking order and hands out dense
// stacking indices in [base, base+n). The last overlay in the list is on
// top. Each index is written into the overlay surface's ZIndex, which drives
// both paint order and hit-test order.
type OverlayRegistry struct {
	base     int
	overlays []*Overlay
}

// NewOverlayRegistry creates an empty registry whose bottom index is base.
func NewOverlayRegistry(base int) *OverlayRegistry {
	return &OverlayRegistry{base: base}
}

// Base returns the stacking index of the bottom overlay.
func (r *OverlayRegistry) Base() int { return r.base }

// Len returns the number of registered overlays.
func (r *OverlayRegistry) Len() int { return len(r.overlays) }

// Overlays returns the overlays bottom to top. The returned slice MUST NOT be
// mutated by the caller.
func (r *OverlayRegistry) Overlays() []*Overlay {
	return r.overlays
}

// Top returns the front-most overlay, or nil when the registry is empty.
func (r *OverlayRegistry) Top() *Overlay {
	if len(r.overlays) == 0 {
		return nil
	}
	return r.overlays[len(r.overlays)-1]
}

// Register puts o on top with index base+count. Registering twice is ignored.
func (r *OverlayRegistry) Register(o *Overlay) {
	if r.position(o) >= 0 {
		logDebugf("OverlayRegistry.Register", "overlay %q already registered, ignoring", o.Name())
		return
	}
	r.overlays = append(r.overlays, o)
	o.registry = r
	o.setIndex(r.base + len(r.overlays) - 1)
}

// Unregister brings o to the front and then drops it, so the relative order
// of the rest is untouched. No-op when o is not registered.
func (r *OverlayRegistry) Unregister(o *Overlay) {
	if r.position(o) < 0 {
		return
	}
	r.BringToFront(o)
	r.overlays[len(r.overlays)-1] = nil
	r.overlays = r.overlays[:len(r.overlays)-1]
	o.registry = nil
	o.index = -1
}

// BringToFront moves o to the top of the stack. Every overlay above it
// shifts down by one, so indices stay dense. No-op when o is absent.
func (r *OverlayRegistry) BringToFront(o *Overlay) {
	i := r.position(o)
	if i < 0 {
		return
	}
	last := len(r.overlays) - 1
	if i == last {
		return
	}
	for j := i + 1; j <= last; j++ {
		above := r.overlays[j]
		above.setIndex(above.index - 1)
		r.overlays[j-1] = above
	}
	r.overlays[last] = o
	o.setIndex(r.base + last)
}

// Index returns o's stacking index, or -1 when it is not registered.
func (r *OverlayRegistry) Index(o *Overlay) int {
	if r.position(o) < 0 {
		return -1
	}
	return o.index
}

func (r *OverlayRegistry) position(o *Overlay) int {
	for i, x := range r.overlays {
		if x == o {
			return i
		}
	}
	return -1
}
