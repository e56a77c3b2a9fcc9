package catalog

import "testing"

func TestInjectClick(t *testing.T) {
	s := newTestScene(t)
	btn := mustWidget(t, s, InvalidHandle, 0, 0, 100, 100)
	s.Catalog().Update()

	s.InjectClick(50, 50)
	if len(s.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(s.injectQueue))
	}

	// Frame 1: press
	s.processInput()
	if len(s.injectQueue) != 1 {
		t.Fatalf("expected 1 remaining event after frame 1, got %d", len(s.injectQueue))
	}
	if ev, _ := s.Events(btn); ev.Has(EventClick) {
		t.Error("click should not fire on press frame")
	}

	// Frame 2: release, click fires
	s.processInput()
	if len(s.injectQueue) != 0 {
		t.Fatalf("expected 0 remaining events after frame 2, got %d", len(s.injectQueue))
	}
	if ev, _ := s.Events(btn); !ev.Has(EventClick) {
		t.Error("click should fire on release frame")
	}
	if s.Focused() != btn {
		t.Errorf("Focused() = %v, want %v", s.Focused(), btn)
	}
}

func TestInjectQueueOrder(t *testing.T) {
	s := newTestScene(t)

	s.InjectPress(10, 20)
	s.InjectMove(30, 40)
	s.InjectRelease(50, 60)

	if len(s.injectQueue) != 3 {
		t.Fatalf("expected 3 events, got %d", len(s.injectQueue))
	}

	// Verify order: press, move, release.
	if !s.injectQueue[0].pressed || s.injectQueue[0].x != 10 {
		t.Error("first event should be press at (10,20)")
	}
	if s.injectQueue[1].pressed || s.injectQueue[1].x != 30 {
		t.Error("second event should be move at (30,40)")
	}
	if s.injectQueue[2].pressed || s.injectQueue[2].x != 50 {
		t.Error("third event should be release at (50,60)")
	}
}

func TestInjectMoveHovers(t *testing.T) {
	s := newTestScene(t)
	btn := mustWidget(t, s, InvalidHandle, 0, 0, 100, 100)

	s.InjectMove(50, 50)
	s.Update()
	ev, err := s.Events(btn)
	if err != nil {
		t.Fatal(err)
	}
	if !ev.Has(EventEnter) || ev.Has(EventPress) {
		t.Errorf("events = %b, want enter only", ev)
	}
}

func TestProcessInjectedInput(t *testing.T) {
	s := newTestScene(t)
	rec := &recordingStore{}
	s.SetEntityStore(rec)
	mustWidget(t, s, InvalidHandle, 0, 0, 100, 100)
	s.Catalog().Update()

	s.InjectPress(50, 50)
	consumed := s.processInjectedInput()
	if !consumed {
		t.Error("expected processInjectedInput to consume an event")
	}
	var downFired bool
	for _, e := range rec.events {
		if e.Type == EventPress {
			downFired = true
			if e.GlobalX != 50 || e.GlobalY != 50 {
				t.Errorf("expected global (50,50), got (%v,%v)", e.GlobalX, e.GlobalY)
			}
		}
	}
	if !downFired {
		t.Error("press should have fired")
	}
	if len(s.injectQueue) != 0 {
		t.Errorf("queue should be empty, got %d", len(s.injectQueue))
	}
}

func TestProcessInjectedInput_EmptyQueue(t *testing.T) {
	s := newTestScene(t)
	consumed := s.processInjectedInput()
	if consumed {
		t.Error("should not consume when queue is empty")
	}
}
