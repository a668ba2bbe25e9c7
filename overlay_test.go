package canopy

import "testing"

// settle ticks the scene long enough for any default fade to finish.
func settle(s *Scene) {
	for i := 0; i < 30; i++ {
		s.Tick(frame)
	}
}

func TestOverlayStartsHidden(t *testing.T) {
	s := NewScene(800, 600)
	o := s.NewOverlay("menu")
	if o.State() != OverlayHidden || o.Visible() {
		t.Errorf("State = %v, want Hidden", o.State())
	}
	if o.Surface().Active() || o.Surface().Alpha != 0 {
		t.Error("hidden overlay surface should be inactive and transparent")
	}
	if !s.Animator().Has(o.Fade()) {
		t.Error("overlay fade should be registered with the scene animator")
	}
}

func TestOverlayShowHideStateMachine(t *testing.T) {
	s := NewScene(800, 600)
	o := s.NewOverlay("menu")
	shown, hidden := 0, 0
	o.OnShown = func() { shown++ }
	o.OnHidden = func() { hidden++ }

	o.Show()
	if o.State() != OverlayFadingIn || !o.Surface().Active() {
		t.Fatalf("after Show: %v, active %v", o.State(), o.Surface().Active())
	}
	s.Tick(frame)
	if o.State() != OverlayFadingIn {
		t.Fatalf("mid fade-in: %v", o.State())
	}
	if a := o.Surface().Alpha; a <= 0 || a >= 1 {
		t.Errorf("mid fade-in alpha = %v", a)
	}
	settle(s)
	if o.State() != OverlayVisible || o.Surface().Alpha != 1 || shown != 1 {
		t.Fatalf("after fade-in: %v alpha %v shown %d", o.State(), o.Surface().Alpha, shown)
	}

	o.Hide()
	if o.State() != OverlayFadingOut || !o.Surface().Active() {
		t.Fatalf("after Hide: %v, active %v", o.State(), o.Surface().Active())
	}
	settle(s)
	if o.State() != OverlayHidden || o.Surface().Active() || hidden != 1 {
		t.Errorf("after fade-out: %v active %v hidden %d", o.State(), o.Surface().Active(), hidden)
	}
}

func TestOverlayHideWhenHiddenIsNoop(t *testing.T) {
	s := NewScene(800, 600)
	o := s.NewOverlay("menu")
	hidden := 0
	o.OnHidden = func() { hidden++ }
	o.Hide()
	settle(s)
	if o.State() != OverlayHidden || hidden != 0 {
		t.Errorf("state %v hidden callbacks %d", o.State(), hidden)
	}
}

func TestOverlayToggleDuringFadeOutRestartsFadeIn(t *testing.T) {
	s := NewScene(800, 600)
	o := s.NewOverlay("menu")
	o.ShowImmediate()
	o.Hide()
	s.Tick(frame)
	mid := o.Surface().Alpha

	o.ToggleVisibility()
	if o.State() != OverlayFadingIn {
		t.Fatalf("State = %v, want FadingIn", o.State())
	}
	if o.Surface().Alpha != mid {
		t.Errorf("fade-in snapped alpha from %v to %v", mid, o.Surface().Alpha)
	}
	o.ToggleVisibility()
	if o.State() != OverlayFadingOut {
		t.Errorf("State = %v, want FadingOut", o.State())
	}
}

func TestOverlayFadingOutBlocksInput(t *testing.T) {
	s := NewScene(800, 600)
	o := s.NewOverlay("menu")
	o.ShowImmediate()
	if s.HitTest(400, 300) != o.Root() {
		t.Fatal("visible overlay root should be hit")
	}
	o.Hide()
	if s.HitTest(400, 300) != nil {
		t.Error("fading-out overlay should not take input")
	}
	o.Show()
	if s.HitTest(400, 300) != o.Root() {
		t.Error("re-shown overlay should take input again")
	}
}

func TestOverlayImmediate(t *testing.T) {
	s := NewScene(800, 600)
	o := s.NewOverlay("menu")
	o.ShowImmediate()
	if o.State() != OverlayVisible || o.Surface().Alpha != 1 {
		t.Errorf("ShowImmediate: %v alpha %v", o.State(), o.Surface().Alpha)
	}
	o.HideImmediate()
	if o.State() != OverlayHidden || o.Surface().Alpha != 0 || o.Surface().Active() {
		t.Errorf("HideImmediate: %v alpha %v", o.State(), o.Surface().Alpha)
	}
}

func TestOverlayOpacityFromTheme(t *testing.T) {
	s := NewScene(800, 600)
	th := DefaultTheme()
	th.OverlayOpacity = 0.5
	if err := s.SetTheme(th); err != nil {
		t.Fatal(err)
	}
	o := s.NewOverlay("dim")
	o.ShowImmediate()
	if o.Surface().Alpha != 0.5 {
		t.Errorf("alpha = %v, want 0.5", o.Surface().Alpha)
	}
}

func TestOverlayAutoPause(t *testing.T) {
	s := NewScene(800, 600)
	o := s.NewOverlay("menu")
	o.AutoPause = true

	o.Show()
	o.Show()
	if s.Pauses().Count() != 1 || o.PauseHandle() == nil {
		t.Fatalf("Count = %d after two Shows, want 1", s.Pauses().Count())
	}
	s.Tick(frame)
	if !s.Pauses().IsPaused() {
		t.Fatal("scene should be paused while the overlay is up")
	}

	o.Hide()
	if s.Pauses().Count() != 0 || o.PauseHandle() != nil {
		t.Errorf("Hide should release the pause at once, Count = %d", s.Pauses().Count())
	}
	s.Tick(frame)
	if s.Pauses().IsPaused() {
		t.Error("scene should resume on the frame after Hide, not when the fade ends")
	}
}

func TestOverlaysPauseIndependently(t *testing.T) {
	s := NewScene(800, 600)
	a := s.NewOverlay("a")
	b := s.NewOverlay("b")
	a.AutoPause, b.AutoPause = true, true
	a.Show()
	b.Show()
	s.Tick(frame)
	a.Hide()
	s.Tick(frame)
	if !s.Pauses().IsPaused() {
		t.Error("one overlay still holds a pause")
	}
	b.Hide()
	s.Tick(frame)
	if s.Pauses().IsPaused() {
		t.Error("no overlay holds a pause")
	}
}

func TestOverlayShowBringsToFront(t *testing.T) {
	s := NewScene(800, 600)
	a := s.NewOverlay("a")
	b := s.NewOverlay("b")
	a.ShowImmediate()
	b.ShowImmediate()
	if s.HitTest(400, 300) != b.Root() {
		t.Fatal("last shown overlay should be on top")
	}
	a.Show()
	if s.Overlays().Top() != a || s.HitTest(400, 300) != a.Root() {
		t.Error("Show should raise the overlay above the others")
	}
}

func TestOverlayPaintsAboveRoot(t *testing.T) {
	s := NewScene(800, 600)
	panel := NewPanel("panel", ColorWhite)
	panel.Interactable = true
	panel.SetZIndex(100)
	s.Root().Add(panel)
	o := s.NewOverlay("menu")
	o.ShowImmediate()
	if s.HitTest(400, 300) != o.Root() {
		t.Error("overlay should sit above root content whatever its ZIndex")
	}
}

func TestOverlayDestroy(t *testing.T) {
	s := NewScene(800, 600)
	o := s.NewOverlay("menu")
	o.AutoPause = true
	child := NewNode("child")
	o.Add(child)
	o.Show()

	o.Destroy()
	if !o.IsDestroyed() || o.Index() != -1 || s.Overlays().Len() != 0 {
		t.Errorf("destroyed %v index %d registry %d", o.IsDestroyed(), o.Index(), s.Overlays().Len())
	}
	if s.Pauses().Count() != 0 {
		t.Error("destroying an overlay must release its pause handle")
	}
	if s.Animator().Has(o.Fade()) || o.Fade().Running() {
		t.Error("fade should be stopped and unregistered")
	}
	if !child.IsDestroyed() || !o.Root().IsDestroyed() {
		t.Error("overlay content should be destroyed")
	}
	if s.overlayLayer.NumChildren() != 0 {
		t.Error("surface should be removed from the overlay layer")
	}

	withLogCapture(t)
	o.Show()
	o.Destroy()
	if o.State() != OverlayHidden {
		t.Errorf("destroyed overlay State = %v", o.State())
	}
}

func TestOverlayDestroyViaRoot(t *testing.T) {
	s := NewScene(800, 600)
	o := s.NewOverlay("menu")
	o.Root().Destroy()
	if !o.IsDestroyed() || s.Overlays().Len() != 0 || s.overlayLayer.NumChildren() != 0 {
		t.Errorf("destroying the root should tear down the overlay")
	}
}

func TestOverlayStateString(t *testing.T) {
	want := map[OverlayState]string{
		OverlayHidden:    "Hidden",
		OverlayFadingIn:  "FadingIn",
		OverlayVisible:   "Visible",
		OverlayFadingOut: "FadingOut",
	}
	for st, s := range want {
		if st.String() != s {
			t.Errorf("%d.String() = %q, want %q", st, st.String(), s)
		}
	}
}

func TestOverlayHideImmediateWhenHiddenIsNoop(t *testing.T) {
	s := NewScene(800, 600)
	o := s.NewOverlay("menu")
	hidden := 0
	o.OnHidden = func() { hidden++ }

	o.HideImmediate()
	if hidden != 0 {
		t.Errorf("OnHidden fired %d times for an overlay never shown", hidden)
	}
	o.ShowImmediate()
	o.HideImmediate()
	o.HideImmediate()
	if hidden != 1 || o.State() != OverlayHidden {
		t.Errorf("hidden %d state %v, want one callback", hidden, o.State())
	}
}
