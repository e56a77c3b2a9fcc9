package catalog

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 attributes of one catalog row
// simultaneously. Create one via the convenience constructors (TweenPosition,
// TweenExtent, TweenColor) and call Update(dt) each frame. Values are written
// through the row's handle; once the handle goes stale the group stops.
//
// There is no global animation manager; callers drive Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	apply  func(vals [4]float64) error
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target row. If the row has been removed, Done is set and nothing is written.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	var vals [4]float64
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	if err := g.apply(vals); err != nil {
		g.Done = true
		return
	}
	g.Done = allDone
}

// TweenPosition creates a TweenGroup that moves h to the parent-relative
// position to over duration seconds using the easing function.
func TweenPosition(sp *Spatial, h Handle, to Vec2, duration float32, fn ease.TweenFunc) (*TweenGroup, error) {
	from, err := sp.Position(h)
	if err != nil {
		return nil, err
	}
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(from.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(from.Y), float32(to.Y), duration, fn)
	g.apply = func(v [4]float64) error {
		return sp.SetPosition(h, Vec2{v[0], v[1]})
	}
	return g, nil
}

// TweenExtent creates a TweenGroup that resizes h to to over duration seconds
// using the easing function.
func TweenExtent(sp *Spatial, h Handle, to Vec2, duration float32, fn ease.TweenFunc) (*TweenGroup, error) {
	from, err := sp.Extent(h)
	if err != nil {
		return nil, err
	}
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(from.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(from.Y), float32(to.Y), duration, fn)
	g.apply = func(v [4]float64) error {
		return sp.SetExtent(h, Vec2{v[0], v[1]})
	}
	return g, nil
}

// TweenColor creates a TweenGroup that animates all four components of the
// widget's color to the target color over the specified duration.
func TweenColor(s *Scene, h Handle, to Color, duration float32, fn ease.TweenFunc) (*TweenGroup, error) {
	from, err := s.Color(h)
	if err != nil {
		return nil, err
	}
	g := &TweenGroup{count: 4}
	g.tweens[0] = gween.New(float32(from.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(from.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(from.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(from.A), float32(to.A), duration, fn)
	g.apply = func(v [4]float64) error {
		return s.SetColor(h, Color{v[0], v[1], v[2], v[3]})
	}
	return g, nil
}
