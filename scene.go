package canopy

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events and lock/pause transitions are
// forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
	EmitState(event StateEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	EntityID  uint32
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
	// Drag fields (valid for EventDragStart, EventDrag, EventDragEnd)
	StartX float64
	StartY float64
	DeltaX float64
	DeltaY float64
	// Wheel fields (valid for EventScroll)
	WheelX float64
	WheelY float64
}

// StateKind names an aggregated host state.
type StateKind uint8

const (
	StateLocked StateKind = iota // LockHandler aggregate
	StatePaused                  // PauseHandler aggregate
)

func (k StateKind) String() string {
	if k == StatePaused {
		return "Paused"
	}
	return "Locked"
}

// StateEvent reports an edge of the lock or pause aggregate.
type StateEvent struct {
	Kind   StateKind
	Active bool
}

// Scene is the UI root. It owns the node tree, the overlay stack, the lock
// and pause aggregates, the animator and input state, and runs them in a
// fixed order once per frame.
type Scene struct {
	top          *Node // viewport-sized; parent of root and overlayLayer
	root         *Node
	overlayLayer *Node

	theme     Theme
	overlays  *OverlayRegistry
	locks     *LockHandler
	pauses    *PauseHandler
	animator  Animator
	shortcuts ShortcutSet

	store         EntityStore
	debug         bool
	savedLogLevel LogLevel // restored when debug mode is turned off
	clock         float64  // seconds of scene time

	// Input state
	input        InputSource
	handlers     handlerRegistry
	captured     *Node
	pointer      pointerState
	dragDeadZone float64
	injectQueue  []syntheticEvent
	injectMods   KeyModifiers
	testRunner   *TestRunner
}

// NewScene creates a scene with the default theme and a viewport of the
// given size.
func NewScene(width, height float64) *Scene {
	s := &Scene{
		theme:        DefaultTheme(),
		overlays:     NewOverlayRegistry(0),
		locks:        NewLockHandler(),
		pauses:       NewPauseHandler(),
		dragDeadZone: defaultDragDeadZone,
	}

	s.top = NewNode("canopy")
	s.top.SetAnchor(AnchorTopLeft)
	s.top.SetSize(width, height)

	s.root = NewNode("root")
	s.root.SetFill(FillAll)
	s.top.attach(s.root)

	s.overlayLayer = NewNode("overlays")
	s.overlayLayer.SetFill(FillAll)
	s.top.attach(s.overlayLayer)

	s.locks.set.edge = func(active bool) { s.emitState(StateLocked, active) }
	s.pauses.set.edge = func(active bool) { s.emitState(StatePaused, active) }
	return s
}

// Root returns the node ordinary UI content hangs from. Overlays are stacked
// above everything under it.
func (s *Scene) Root() *Node { return s.root }

// Viewport returns the scene's size.
func (s *Scene) Viewport() (width, height float64) { return s.top.Size() }

// SetViewport resizes the scene. Anything stretched to the viewport,
// including fullscreen windows, follows.
func (s *Scene) SetViewport(width, height float64) {
	if w, h := s.top.Size(); w == width && h == height {
		return
	}
	s.top.SetSize(width, height)
}

// Theme returns the theme new overlays and windows are built from.
func (s *Scene) Theme() Theme { return s.theme }

// SetTheme replaces the theme used by overlays and windows created from now
// on. An invalid theme is logged and rejected.
func (s *Scene) SetTheme(t Theme) error {
	if err := t.Validate(); err != nil {
		logWarnf("Scene.SetTheme", "%v", err)
		return err
	}
	s.theme = t
	return nil
}

// Overlays returns the overlay stack.
func (s *Scene) Overlays() *OverlayRegistry { return s.overlays }

// Locks returns the scene's input-lock aggregate.
func (s *Scene) Locks() *LockHandler { return s.locks }

// Pauses returns the scene's pause aggregate.
func (s *Scene) Pauses() *PauseHandler { return s.pauses }

// Animator returns the ticker list advanced every frame.
func (s *Scene) Animator() *Animator { return &s.animator }

// Shortcuts returns the scene's keyboard shortcuts.
func (s *Scene) Shortcuts() *ShortcutSet { return &s.shortcuts }

// SetInput sets the device the scene reads each frame. Nil disables device
// input; synthetic injection still works.
func (s *Scene) SetInput(in InputSource) { s.input = in }

// Clock returns the seconds of scene time elapsed across all Ticks.
func (s *Scene) Clock() float64 { return s.clock }

// NodeCount returns the number of nodes in the scene, overlays included.
func (s *Scene) NodeCount() int { return countNodes(s.top) }

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

func (s *Scene) emitState(kind StateKind, active bool) {
	if s.store != nil {
		s.store.EmitState(StateEvent{Kind: kind, Active: active})
	}
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, the log
// level drops to LevelDebug and per-frame timing stats are logged.
// Disabling restores the log level in effect before it was enabled.
func (s *Scene) SetDebugMode(enabled bool) {
	switch {
	case enabled && !s.debug:
		s.savedLogLevel = logLevel
		SetLogLevel(LevelDebug)
	case !enabled && s.debug:
		SetLogLevel(s.savedLogLevel)
	}
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// Update advances the scene by one ebiten tick.
func (s *Scene) Update() {
	s.Tick(1.0 / float64(ebiten.TPS()))
}

// Tick runs one frame: the test runner, then input (shortcuts, pointer,
// wheel), then every registered animation, and finally the lock and pause
// aggregates, so they reflect the frame's final state. Negative dt is logged
// and treated as 0.
func (s *Scene) Tick(dt float64) {
	if dt < 0 {
		logWarnf("Scene.Tick", "negative dt %v treated as 0", dt)
		dt = 0
	}
	s.clock += dt

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()

	if s.debug {
		stats.inputTime = time.Since(t0)
		t0 = time.Now()
	}

	s.animator.Update(dt)

	if s.debug {
		stats.animateTime = time.Since(t0)
		t0 = time.Now()
	}

	s.locks.Update(dt)
	s.pauses.Update(dt)

	if s.debug {
		stats.holdTime = time.Since(t0)
		stats.tickers = s.animator.Len()
		stats.overlays = s.overlays.Len()
		s.debugLog(stats)
	}
}
