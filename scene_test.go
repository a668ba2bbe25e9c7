package canopy

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

func TestNewScene(t *testing.T) {
	s := NewScene(800, 600)
	if s.Root().Name != "root" || s.Root().Parent != s.top {
		t.Fatalf("root = %q under %v", s.Root().Name, s.Root().Parent)
	}
	if s.overlayLayer.Parent != s.top {
		t.Fatal("overlay layer should sit beside root")
	}
	if s.top.ChildAt(0) != s.root || s.top.ChildAt(1) != s.overlayLayer {
		t.Error("overlay layer must paint after root")
	}
	if w, h := s.Viewport(); w != 800 || h != 600 {
		t.Errorf("Viewport = %vx%v", w, h)
	}
	assertRect(t, "root", s.Root().Rect(), Rect{0, 0, 800, 600})
	if s.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", s.NodeCount())
	}
}

func TestSceneSetViewport(t *testing.T) {
	s := NewScene(800, 600)
	bg := NewNode("bg")
	bg.SetFill(FillAll)
	s.Root().Add(bg)
	w := s.NewWindow("w", 200, 200)
	w.ShowImmediate()
	w.BeginFullscreen()

	s.SetViewport(1024, 768)
	assertRect(t, "bg", bg.Rect(), Rect{0, 0, 1024, 768})
	assertRect(t, "fullscreen window", w.Root().Rect(), Rect{0, 0, 1024, 768})
}

func TestSceneNodeCountIncludesOverlays(t *testing.T) {
	s := NewScene(800, 600)
	s.Root().Add(NewNode("a"))
	s.NewOverlay("o")
	if got := s.NodeCount(); got != 6 {
		t.Errorf("NodeCount = %d, want 6", got)
	}
}

func TestSceneTickNegativeDt(t *testing.T) {
	buf := withLogCapture(t)
	s := NewScene(800, 600)
	s.Tick(0.5)
	s.Tick(-1)
	if s.Clock() != 0.5 {
		t.Errorf("Clock = %v, want 0.5", s.Clock())
	}
	if buf.Len() == 0 {
		t.Error("negative dt should be logged")
	}
}

func TestSceneTickPauseAcquiredByHandlerSameFrame(t *testing.T) {
	s := NewScene(800, 600)
	box := newBox("box", 0, 0, 100, 100)
	s.Root().Add(box)
	box.On(EventPointerDown, func(*Event) bool {
		s.Pauses().Acquire("menu")
		return true
	})

	s.InjectPress(10, 10)
	s.Tick(frame)
	if !s.Pauses().IsPaused() {
		t.Error("aggregates update after input, so a pause taken in a handler shows the same frame")
	}
}

func TestSceneTickEaseStartedByHandlerAdvancesSameFrame(t *testing.T) {
	s := NewScene(800, 600)
	box := newBox("box", 0, 0, 100, 100)
	s.Root().Add(box)
	e := NewEase(0, 1, 1, ease.Linear)
	s.Animator().Add(e)
	box.On(EventPointerDown, func(*Event) bool {
		e.EaseIn()
		return true
	})

	s.InjectPress(10, 10)
	s.Tick(0.25)
	assertNear(t, "value", e.Value(), 0.25)
}

func TestSceneSetTheme(t *testing.T) {
	withLogCapture(t)
	s := NewScene(800, 600)
	bad := DefaultTheme()
	bad.OverlayOpacity = 2
	if err := s.SetTheme(bad); !errors.Is(err, ErrInvalidTheme) {
		t.Fatalf("err = %v, want ErrInvalidTheme", err)
	}
	if s.Theme().OverlayOpacity != 1 {
		t.Error("rejected theme must not be applied")
	}
	good := DefaultTheme()
	good.TitleHeight = 30
	if err := s.SetTheme(good); err != nil {
		t.Fatal(err)
	}
	w := s.NewWindow("w", 200, 200)
	if _, h := w.TitleBar().Size(); h != 30 {
		t.Errorf("title height = %v, want 30", h)
	}
}

func TestSceneEmitsStateEdges(t *testing.T) {
	s := NewScene(800, 600)
	store := &mockStore{}
	s.SetEntityStore(store)

	l := s.Locks().Acquire("load")
	p := s.Pauses().Acquire("menu")
	s.Tick(frame)
	l.Close()
	p.Close()
	s.Tick(frame)

	want := []StateEvent{
		{StateLocked, true},
		{StatePaused, true},
		{StateLocked, false},
		{StatePaused, false},
	}
	if len(store.states) != len(want) {
		t.Fatalf("states = %v, want %v", store.states, want)
	}
	for i := range want {
		if store.states[i] != want[i] {
			t.Errorf("state %d = %v, want %v", i, store.states[i], want[i])
		}
	}
}

func TestSceneShortcuts(t *testing.T) {
	s := NewScene(800, 600)
	in := newFakeInput()
	s.SetInput(in)
	plain, shifted := 0, 0
	s.Shortcuts().Register(NewShortcut("menu", ebiten.KeyEscape, 0, func() { plain++ }))
	s.Shortcuts().Register(NewShortcut("all", ebiten.KeyEscape, ModShift, func() { shifted++ }))

	in.just[ebiten.KeyEscape] = true
	s.Tick(frame)
	in.held[ebiten.KeyShift] = true
	s.Tick(frame)
	in.just[ebiten.KeyEscape] = false
	s.Tick(frame)

	if plain != 1 || shifted != 1 {
		t.Errorf("plain %d shifted %d, want 1 and 1", plain, shifted)
	}
}

func TestStateKindString(t *testing.T) {
	if StateLocked.String() != "Locked" || StatePaused.String() != "Paused" {
		t.Errorf("got %q %q", StateLocked, StatePaused)
	}
}
