package catalog

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// pointerState tracks the mouse between frames.
type pointerState struct {
	down    bool
	button  MouseButton
	pressed Handle // widget under the pointer when the button went down
	hover   Handle
}

// --- Hit testing ---

// HitTest returns the topmost interactable widget whose world bounds contain
// (x, y), using the z order of the last Update. Between equal z values the
// later row wins, matching paint order.
func (s *Scene) HitTest(x, y float64) Handle {
	i := s.hitTestIndex(x, y)
	if i < 0 {
		return InvalidHandle
	}
	return s.catalog.store.handleAt(i)
}

func (s *Scene) hitTestIndex(x, y float64) int {
	sp := s.catalog
	on := s.interactable.Values()
	zs := sp.worldZ.Values()
	best := -1
	for i := range on {
		if !on[i] || !sp.boundsAt(i).Contains(x, y) {
			continue
		}
		if best < 0 || zs[i] >= zs[best] {
			best = i
		}
	}
	return best
}

// --- Input processing ---

// processInput is called from Scene.Update to handle mouse input. Injected
// events take priority over the real mouse for the frame they are consumed.
func (s *Scene) processInput() {
	s.clearEvents()

	if s.processInjectedInput() {
		return
	}

	mx, my := ebiten.CursorPosition()
	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}
	s.processPointer(float64(mx), float64(my), pressed, button)
}

// clearEvents resets every widget's event flags for the new frame.
func (s *Scene) clearEvents() {
	flags := s.events.Values()
	for i := range flags {
		flags[i] = 0
	}
}

// processPointer runs the pointer state machine for one frame.
func (s *Scene) processPointer(x, y float64, pressed bool, button MouseButton) {
	ps := &s.pointer
	target := s.HitTest(x, y)

	// Handles held across frames may have been removed since.
	if ps.hover.Valid() && !s.catalog.Contains(ps.hover) {
		ps.hover = InvalidHandle
	}
	if ps.pressed.Valid() && !s.catalog.Contains(ps.pressed) {
		ps.pressed = InvalidHandle
	}

	if target != ps.hover {
		s.fire(EventLeave, ps.hover, x, y, button)
		s.fire(EventEnter, target, x, y, button)
		ps.hover = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.pressed = target
		s.fire(EventPress, target, x, y, button)
		if button == MouseButtonLeft {
			s.setFocus(target, x, y)
		}
	case !pressed && ps.down:
		s.fire(EventRelease, target, x, y, ps.button)
		if ps.pressed.Valid() && ps.pressed == target {
			s.fire(EventClick, target, x, y, ps.button)
		}
		ps.down = false
		ps.pressed = InvalidHandle
	}
}

// setFocus blurs the focused widget and focuses h. An invalid h just blurs.
func (s *Scene) setFocus(h Handle, x, y float64) {
	if h == s.focused {
		return
	}
	if s.focused.Valid() && s.catalog.Contains(s.focused) {
		s.fire(EventBlur, s.focused, x, y, MouseButtonLeft)
	}
	s.focused = h
	s.fire(EventFocus, h, x, y, MouseButtonLeft)
}

// fire sets the event flag on h and forwards the event to the EntityStore.
// Invalid or removed handles are ignored.
func (s *Scene) fire(t EventType, h Handle, x, y float64, button MouseButton) {
	if !h.Valid() {
		return
	}
	i, err := s.catalog.store.alloc.Get(h)
	if err != nil {
		return
	}
	*s.events.At(i) |= t.Flag()

	if s.store == nil {
		return
	}
	w := *s.catalog.world.At(i)
	s.store.EmitEvent(InteractionEvent{
		Type:    t,
		Handle:  h,
		GlobalX: x,
		GlobalY: y,
		LocalX:  x - w.X,
		LocalY:  y - w.Y,
		Button:  button,
	})
}
