package catalog

import (
	"strings"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "screenshot", "label": "after-click"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	_, err := LoadTestScript([]byte(`not json`))
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": []}`))
	if err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestLoadTestScript_UnknownAction(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": [{"action": "drag"}]}`))
	if err == nil || !strings.Contains(err.Error(), `"drag"`) {
		t.Errorf("expected unknown action error, got %v", err)
	}
}

func TestRunnerStep_Click(t *testing.T) {
	s := newTestScene(t)
	btn := mustWidget(t, s, InvalidHandle, 0, 0, 200, 200)
	s.Catalog().Update()

	data := []byte(`{"steps": [{"action": "click", "x": 50, "y": 50}]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	// First step call: click queues press+release (2 events).
	runner.step(s)
	if len(s.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(s.injectQueue))
	}
	// Injections are still pending.
	if runner.Done() {
		t.Error("runner should not be done while inject queue has events")
	}

	// Drain injections.
	s.processInput()
	s.processInput()
	if s.Focused() != btn {
		t.Errorf("Focused() = %v, want %v", s.Focused(), btn)
	}

	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	s := newTestScene(t)

	data := []byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "done"}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	// Frame 1: execute wait (waitCount becomes 2).
	runner.step(s)
	if runner.Done() {
		t.Error("should not be done during wait")
	}

	// Frame 2: waitCount 2 to 1.
	runner.step(s)
	if runner.Done() {
		t.Error("should not be done during wait countdown")
	}

	// Frame 3: waitCount 1 to 0.
	runner.step(s)
	if runner.Done() {
		t.Error("should not be done before the screenshot step")
	}

	// Frame 4: execute screenshot step, runner finishes.
	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after screenshot step")
	}

	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "done" {
		t.Errorf("expected screenshot 'done', got %v", s.screenshotQueue)
	}
}

func TestRunnerStep_MovePressRelease(t *testing.T) {
	s := newTestScene(t)

	data := []byte(`{"steps": [
		{"action": "move", "x": 5, "y": 5},
		{"action": "press", "x": 10, "y": 10},
		{"action": "release", "x": 20, "y": 20}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	want := []bool{false, true, false}
	for i, pressed := range want {
		runner.step(s)
		if len(s.injectQueue) != 1 {
			t.Fatalf("step %d: expected 1 queued event, got %d", i, len(s.injectQueue))
		}
		if s.injectQueue[0].pressed != pressed {
			t.Errorf("step %d: pressed = %v, want %v", i, s.injectQueue[0].pressed, pressed)
		}
		s.processInjectedInput()
	}
	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerDone(t *testing.T) {
	s := newTestScene(t)

	data := []byte(`{"steps": [{"action": "screenshot", "label": "only"}]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	if runner.Done() {
		t.Error("runner should not be done before any steps")
	}

	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after single screenshot step")
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	s := newTestScene(t)

	data := []byte(`{"steps": [
		{"action": "click", "x": 50, "y": 50},
		{"action": "screenshot", "label": "after"}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	// Step 1: click queues 2 events.
	runner.step(s)
	if len(s.injectQueue) != 2 {
		t.Fatalf("expected 2 events, got %d", len(s.injectQueue))
	}

	// The inject queue is not drained, so the runner holds.
	runner.step(s)
	if runner.cursor != 1 {
		t.Errorf("cursor should still be 1, got %d", runner.cursor)
	}

	s.injectQueue = s.injectQueue[:0]

	runner.step(s)
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "after" {
		t.Errorf("expected screenshot 'after', got %v", s.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestSceneUpdateDrivesRunner(t *testing.T) {
	s := newTestScene(t)
	btn := mustWidget(t, s, InvalidHandle, 0, 0, 100, 100)

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 10, "y": 10}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	// Frame 1 queues the click and consumes the press; frame 2 the release.
	s.Update()
	s.Update()
	if ev, _ := s.Events(btn); !ev.Has(EventClick) {
		t.Errorf("events = %b, want click", ev)
	}
	if runner.Done() {
		t.Error("runner finishes on the frame after the queue drains")
	}
	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done once the click is consumed")
	}
}
