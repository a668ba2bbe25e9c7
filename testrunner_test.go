package canopy

import (
	"strings"
	"testing"
)

func TestLoadTestScriptYAML(t *testing.T) {
	data := []byte(`
steps:
  - action: click
    x: 100
    y: 200
  - action: wait
    frames: 3
  - action: drag
    fromX: 10
    fromY: 20
    toX: 30
    toY: 40
    frames: 5
    modifiers: alt+shift
  - action: wheel
    x: 5
    y: 5
    dy: -1
`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if st := runner.steps[0]; st.Action != "click" || st.X != 100 || st.Y != 200 {
		t.Errorf("step 0 mismatch: %+v", st)
	}
	if st := runner.steps[2]; st.FromY != 20 || st.ToX != 30 || st.Frames != 5 || st.Modifiers != "alt+shift" {
		t.Errorf("step 2 mismatch: %+v", st)
	}
	if st := runner.steps[3]; st.DY != -1 {
		t.Errorf("step 3 mismatch: %+v", st)
	}
}

func TestLoadTestScriptJSON(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "hover", "x": 1, "y": 2},
			{"action": "click", "x": 100, "y": 200}
		]
	}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 2 || runner.steps[1].X != 100 {
		t.Errorf("steps = %+v", runner.steps)
	}
}

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"not a script", `not json`, "parse test script"},
		{"empty", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "screenshot"}]}`, `unknown action "screenshot"`},
		{"bad modifier", `{"steps": [{"action": "click", "modifiers": "hyper"}]}`, `unknown modifier "hyper"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseModifiers(t *testing.T) {
	tests := []struct {
		in   string
		want KeyModifiers
	}{
		{"", 0},
		{"alt", ModAlt},
		{"Alt+Shift", ModAlt | ModShift},
		{"ctrl + meta", ModCtrl | ModMeta},
		{"option+cmd", ModAlt | ModMeta},
	}
	for _, tt := range tests {
		got, err := parseModifiers(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("parseModifiers(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestRunnerStepClick(t *testing.T) {
	s := NewScene(800, 600)
	box := newBox("box", 0, 0, 200, 200)
	s.Root().Add(box)
	clicks := 0
	box.On(EventClick, func(*Event) bool { clicks++; return true })

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 50, "y": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	s.Tick(frame)
	if runner.Done() {
		t.Error("runner should not be done while inject queue has events")
	}
	s.Tick(frame)
	s.Tick(frame)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestRunnerWaitFrames(t *testing.T) {
	s := NewScene(800, 600)
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "wait", "frames": 3}, {"action": "hover", "x": 1, "y": 1}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	for i := 0; i < 3; i++ {
		s.Tick(frame)
		if runner.cursor != 1 {
			t.Fatalf("frame %d: cursor %d, want to still be waiting", i, runner.cursor)
		}
	}
	s.Tick(frame)
	if runner.cursor != 2 {
		t.Errorf("cursor = %d, want the hover step run on frame 4", runner.cursor)
	}
}

func TestRunnerModifierDragMovesWindow(t *testing.T) {
	s := NewScene(800, 600)
	w := s.NewWindow("w", 200, 200)
	w.ShowImmediate()

	// Alt held: drag anywhere on the window body moves it.
	runner, err := LoadTestScript([]byte(`
steps:
  - action: drag
    fromX: 400
    fromY: 300
    toX: 450
    toY: 340
    frames: 6
    modifiers: alt
`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)
	for i := 0; i < 10 && !runner.Done(); i++ {
		s.Tick(frame)
	}
	if !runner.Done() {
		t.Fatal("runner did not finish")
	}
	assertRect(t, "window", w.Root().Rect(), Rect{350, 240, 200, 200})
}
