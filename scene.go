package catalog

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type    EventType
	Handle  Handle
	GlobalX float64
	GlobalY float64
	LocalX  float64
	LocalY  float64
	Button  MouseButton
}

const defaultCommandCap = 256

// Scene is the widget layer over a Spatial catalog. Every widget is one
// catalog node; its color, interactability and per-frame event flags live in
// columns of the same store, keyed by the same handle.
type Scene struct {
	catalog      *Spatial
	color        *Column[Color]
	interactable *Column[bool]
	events       *Column[EventFlags]

	store      EntityStore
	log        Logger
	defaultLog *DefaultLogger
	debug      bool

	// ClearColor fills the screen before widgets are drawn. The zero value
	// leaves the screen untouched.
	ClearColor Color

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	// Render state
	commands []PaintCommand
	sortBuf  []PaintCommand

	// Input state
	focused         Handle
	pointer         pointerState
	injectQueue     []syntheticPointerEvent
	testRunner      *TestRunner
	screenshotQueue []string
	pixelBuf        []byte
}

// NewScene creates a scene with an empty catalog configured by cfg.
func NewScene(cfg Config) *Scene {
	ownLogger := cfg.Logger == nil
	cfg = cfg.withDefaults()
	sp := NewSpatial(cfg)
	s := &Scene{
		catalog:       sp,
		color:         NewColumn[Color](sp.Store()),
		interactable:  NewColumn[bool](sp.Store()),
		events:        NewColumn[EventFlags](sp.Store()),
		log:           cfg.Logger,
		debug:         cfg.Debug,
		ScreenshotDir: "screenshots",
		commands:      make([]PaintCommand, 0, defaultCommandCap),
		sortBuf:       make([]PaintCommand, 0, defaultCommandCap),
	}
	if ownLogger {
		s.defaultLog, _ = cfg.Logger.(*DefaultLogger)
	}
	return s
}

// Catalog returns the scene's spatial catalog.
func (s *Scene) Catalog() *Spatial {
	return s.catalog
}

// AddWidget adds an interactable widget under parent (InvalidHandle for a
// top-level widget) at the given parent-relative position.
func (s *Scene) AddWidget(parent Handle, position, size Vec2, color Color) (Handle, error) {
	h, err := s.catalog.Add(parent, position, size)
	if err != nil {
		return InvalidHandle, err
	}
	i := s.catalog.store.indexOf(h)
	*s.color.At(i) = color
	*s.interactable.At(i) = true
	return h, nil
}

// Remove disposes the widget h and all widgets nested in it.
func (s *Scene) Remove(h Handle) error {
	if err := s.catalog.Remove(h); err != nil {
		return err
	}
	if s.focused.Valid() && !s.catalog.Contains(s.focused) {
		s.focused = InvalidHandle
	}
	return nil
}

// Color returns the fill color of h.
func (s *Scene) Color(h Handle) (Color, error) { return s.color.Value(h) }

// SetColor sets the fill color of h.
func (s *Scene) SetColor(h Handle, c Color) error { return s.color.Set(h, c) }

// SetInteractable controls whether h takes part in hit testing.
func (s *Scene) SetInteractable(h Handle, on bool) error { return s.interactable.Set(h, on) }

// Events returns the events h received during the last Update.
func (s *Scene) Events(h Handle) (EventFlags, error) { return s.events.Value(h) }

// Focused returns the focused widget, or InvalidHandle.
func (s *Scene) Focused() Handle {
	return s.focused
}

// Focus moves focus to h, raising blur and focus events as a press would.
func (s *Scene) Focus(h Handle) error {
	if h.Valid() && !s.catalog.Contains(h) {
		return errors.Wrapf(ErrInvalidHandle, "focus %v", h)
	}
	s.setFocus(h, 0, 0)
	return nil
}

// Update refreshes the catalog's derived attributes, then processes input.
// Event flags read after Update describe this frame.
func (s *Scene) Update() {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	// Refresh world positions first so hit testing sees this frame's layout.
	s.catalog.Update()

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()

	if s.debug {
		s.log.Debug("scene update", "widgets", s.catalog.Len(), "elapsed", time.Since(t0))
	}
}

// Draw paints every widget onto screen in ascending z order.
func (s *Scene) Draw(screen *ebiten.Image) {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.ClearColor != (Color{}) {
		screen.Fill(s.ClearColor.toRGBA())
	}
	s.buildPaintList()

	if s.debug {
		stats.buildTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	s.submit(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		s.debugLog(stats)
	}

	s.flushScreenshots(screen)
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, tree shape
// warnings and per-frame timing stats are logged. A logger supplied through
// Config keeps its own level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	s.catalog.cfg.Debug = enabled
	s.catalog.store.cfg.Debug = enabled
	if s.defaultLog != nil {
		s.defaultLog.SetLevel(defaultLogLevel(enabled))
	}
}
