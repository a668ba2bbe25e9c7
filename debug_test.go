package canopy

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// withDebug turns debug mode on for the test and captures the log.
func withDebug(t *testing.T, s *Scene) *bytes.Buffer {
	t.Helper()
	buf := withLogCapture(t)
	s.SetDebugMode(true)
	t.Cleanup(func() { s.SetDebugMode(false) })
	return buf
}

func TestDebugModeSetsLogLevel(t *testing.T) {
	withLogCapture(t)
	SetLogLevel(LevelWarn)
	s := NewScene(800, 600)
	s.SetDebugMode(true)
	s.SetDebugMode(true)
	if CurrentLogLevel() != LevelDebug || !globalDebug {
		t.Errorf("level %v debug %v", CurrentLogLevel(), globalDebug)
	}
	s.SetDebugMode(false)
	if CurrentLogLevel() != LevelWarn || globalDebug {
		t.Errorf("after disabling: level %v debug %v, want WARN and false", CurrentLogLevel(), globalDebug)
	}
	s.SetDebugMode(false)
	if CurrentLogLevel() != LevelWarn {
		t.Errorf("disabling twice changed the level to %v", CurrentLogLevel())
	}
}

func TestDebugModeDestroyedNodePanics(t *testing.T) {
	tests := []struct {
		name string
		run  func(parent, child *Node)
	}{
		{"destroyed child", func(parent, child *Node) {
			child.Destroy()
			parent.Add(child)
		}},
		{"destroyed parent", func(parent, child *Node) {
			parent.Destroy()
			parent.Add(child)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene(800, 600)
			withDebug(t, s)
			parent := NewNode("parent")
			s.Root().Add(parent)
			child := NewNode("child")

			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected a panic")
				}
				if msg := fmt.Sprint(r); !strings.Contains(msg, "disposed") {
					t.Errorf("panic %q should mention disposed", msg)
				}
			}()
			tt.run(parent, child)
		})
	}
}

func TestReleaseModeDestroyedNodeNoPanic(t *testing.T) {
	s := NewScene(800, 600)
	child := NewNode("child")
	child.Destroy()
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("release mode panicked: %v", r)
		}
	}()
	s.Root().Add(child)
}

func TestDebugModeTreeDepthWarning(t *testing.T) {
	s := NewScene(800, 600)
	buf := withDebug(t, s)

	cur := s.Root()
	for i := 0; i < debugMaxTreeDepth+5; i++ {
		child := NewNode(fmt.Sprintf("depth_%d", i))
		cur.Add(child)
		cur = child
	}
	if !strings.Contains(buf.String(), "debug.TreeDepth: tree depth") {
		t.Errorf("expected a tree depth warning, got:\n%s", buf.String())
	}
}

func TestDebugModeChildCountWarning(t *testing.T) {
	s := NewScene(800, 600)
	buf := withDebug(t, s)

	parent := NewNode("many")
	s.Root().Add(parent)
	for i := 0; i < debugMaxChildCount+1; i++ {
		parent.Add(NewNode(fmt.Sprintf("c_%d", i)))
	}
	if !strings.Contains(buf.String(), `node "many" has 1001 children`) {
		t.Errorf("expected a child count warning, got:\n%s", buf.String())
	}
}

func TestDebugModeLogsFrameStats(t *testing.T) {
	s := NewScene(800, 600)
	s.NewOverlay("o")
	buf := withDebug(t, s)

	s.Tick(frame)
	out := buf.String()
	if !strings.Contains(out, "DEBUG Scene.Tick: input:") || !strings.Contains(out, "overlays: 1") {
		t.Errorf("missing frame stats:\n%s", out)
	}
}

func TestNoFrameStatsOutsideDebugMode(t *testing.T) {
	s := NewScene(800, 600)
	buf := withLogCapture(t)
	s.Tick(frame)
	if strings.Contains(buf.String(), "Scene.Tick") {
		t.Errorf("unexpected stats:\n%s", buf.String())
	}
}

func TestCountNodes(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	root.Add(a)
	a.Add(NewNode("b"))
	root.Add(NewNode("c"))
	if got := countNodes(root); got != 4 {
		t.Errorf("countNodes = %d, want 4", got)
	}
}
