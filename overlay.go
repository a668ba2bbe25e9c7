package canopy

// OverlayState is the visibility phase of an overlay.
type OverlayState uint8

const (
	OverlayHidden    OverlayState = iota // inactive and fully transparent
	OverlayFadingIn                      // active, fade running toward full opacity
	OverlayVisible                       // active at full opacity
	OverlayFadingOut                     // active, fade running toward transparent; takes no input
)

func (s OverlayState) String() string {
	switch s {
	case OverlayHidden:
		return "Hidden"
	case OverlayFadingIn:
		return "FadingIn"
	case OverlayVisible:
		return "Visible"
	case OverlayFadingOut:
		return "FadingOut"
	}
	return "OverlayState(?)"
}

// Overlay is a node on its own stacking surface with fade-driven show and
// hide. The surface fills the viewport and is ordered against other overlays
// by the scene's OverlayRegistry; the overlay's root node sits on it and is
// positioned like any other node.
//
// Overlays start hidden.
type Overlay struct {
	scene   *Scene
	surface *Node
	root    *Node
	fade    *Ease
	pause   *PauseHandle

	registry  *OverlayRegistry
	index     int
	destroyed bool

	// AutoPause makes Show acquire a PauseHandle that Hide and Destroy
	// release.
	AutoPause bool

	// OnShown runs when the fade-in completes. OnHidden runs when the
	// fade-out completes and the overlay has been deactivated.
	OnShown  func()
	OnHidden func()
}

// NewOverlay creates a hidden overlay whose root node is a panel in the
// theme's overlay color, anchored at the middle of the viewport.
func (s *Scene) NewOverlay(name string) *Overlay {
	o := &Overlay{scene: s, index: -1}
	o.init(name, NewPanel(name, s.theme.OverlayColor))
	return o
}

func (o *Overlay) init(name string, root *Node) {
	s := o.scene
	o.root = root
	o.root.Interactable = true

	o.surface = NewNode(name + ".surface")
	o.surface.SetFill(FillAll)
	o.surface.SetActive(false)
	o.surface.SetAlpha(0)
	o.surface.attach(o.root)
	s.overlayLayer.attach(o.surface)

	o.fade = NewFade(o.surface, s.theme.OverlayOpacity, s.theme.FadeDuration, s.theme.FadeCurve())
	o.fade.OnComplete = o.fadeDone
	s.animator.Add(o.fade)

	s.overlays.Register(o)

	o.surface.OnDestroy(o.teardown)
	o.root.OnDestroy(o.Destroy)
}

// Name returns the root node's name.
func (o *Overlay) Name() string { return o.root.Name }

// Root returns the overlay's content node.
func (o *Overlay) Root() *Node { return o.root }

// Surface returns the full-viewport stacking node the root sits on.
func (o *Overlay) Surface() *Node { return o.surface }

// Fade returns the opacity ease driving show and hide.
func (o *Overlay) Fade() *Ease { return o.fade }

// PauseHandle returns the handle held because of AutoPause, or nil.
func (o *Overlay) PauseHandle() *PauseHandle { return o.pause }

// Index returns the stacking index, or -1 once destroyed.
func (o *Overlay) Index() int { return o.index }

// Add places child under the overlay's root (or the root's content target).
func (o *Overlay) Add(child *Node) { o.root.Add(child) }

// IsDestroyed reports whether Destroy has run.
func (o *Overlay) IsDestroyed() bool { return o.destroyed }

func (o *Overlay) setIndex(i int) {
	o.index = i
	o.surface.SetZIndex(i)
}

// State derives the visibility phase from the fade and the surface. A
// destroyed overlay is Hidden.
func (o *Overlay) State() OverlayState {
	switch {
	case o.destroyed:
		return OverlayHidden
	case o.fade.EasingIn():
		return OverlayFadingIn
	case o.fade.EasingOut():
		return OverlayFadingOut
	case o.surface.Active():
		return OverlayVisible
	}
	return OverlayHidden
}

// Visible reports whether the overlay is shown or fading in.
func (o *Overlay) Visible() bool {
	st := o.State()
	return st == OverlayVisible || st == OverlayFadingIn
}

// Show activates the overlay at once and starts the fade-in from the current
// opacity. It brings the overlay to the front and, with AutoPause, replaces
// any held PauseHandle with a fresh one.
func (o *Overlay) Show() {
	if o.destroyed {
		logWarnf("Overlay.Show", "overlay %q is destroyed", o.Name())
		return
	}
	o.surface.SetActive(true)
	o.surface.inputBlocked = false
	o.BringToFront()
	if o.AutoPause {
		o.releasePause()
		o.pause = o.scene.pauses.Acquire(o.Name())
	}
	o.fade.EaseIn()
}

// Hide starts the fade-out. The overlay stays active, and ignores input,
// until the fade completes. A held PauseHandle is released now.
func (o *Overlay) Hide() {
	if o.destroyed {
		return
	}
	o.releasePause()
	if o.State() == OverlayHidden {
		return
	}
	o.surface.inputBlocked = true
	o.fade.EaseOut()
}

// ToggleVisibility shows a hidden or fading-out overlay and hides any other.
func (o *Overlay) ToggleVisibility() {
	switch o.State() {
	case OverlayHidden, OverlayFadingOut:
		o.Show()
	default:
		o.Hide()
	}
}

// ShowImmediate shows the overlay at full opacity without animating.
func (o *Overlay) ShowImmediate() {
	o.Show()
	if !o.destroyed {
		o.fade.ForceRun()
	}
}

// HideImmediate hides the overlay without animating. No-op when already
// hidden.
func (o *Overlay) HideImmediate() {
	if o.destroyed {
		return
	}
	o.releasePause()
	if o.State() == OverlayHidden {
		return
	}
	o.fade.SetIncreasing(false)
	o.fade.ForceRun()
}

// BringToFront raises the overlay above every other overlay.
func (o *Overlay) BringToFront() {
	if o.registry != nil {
		o.registry.BringToFront(o)
	}
}

// Destroy unregisters the overlay, releases its pause handle, stops the fade
// and destroys the surface with everything on it. Calling it again is a
// no-op.
func (o *Overlay) Destroy() {
	if o.destroyed {
		return
	}
	o.surface.Destroy()
}

func (o *Overlay) teardown() {
	o.destroyed = true
	if o.registry != nil {
		o.registry.Unregister(o)
	}
	o.index = -1
	o.releasePause()
	o.fade.Stop()
	o.scene.animator.Remove(o.fade)
}

func (o *Overlay) releasePause() {
	if o.pause != nil {
		o.pause.Close()
		o.pause = nil
	}
}

func (o *Overlay) fadeDone() {
	if o.fade.Increasing() {
		if o.OnShown != nil {
			safeCall("Overlay.OnShown", o.OnShown)
		}
		return
	}
	o.surface.SetActive(false)
	o.surface.inputBlocked = false
	if o.OnHidden != nil {
		safeCall("Overlay.OnHidden", o.OnHidden)
	}
}
