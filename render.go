package catalog

import "github.com/hajimehoshi/ebiten/v2"

// PaintCommand is one solid rectangle to draw, in world coordinates.
type PaintCommand struct {
	Handle Handle
	Bounds Rect
	Color  Color
	Z      int
	row    int // catalog position, breaks ties between equal Z for a stable sort
}

// PaintList returns the scene's paint commands sorted ascending by world z,
// as of the last Update. Fully transparent widgets are skipped.
func (s *Scene) PaintList() []PaintCommand {
	s.buildPaintList()
	out := make([]PaintCommand, len(s.commands))
	copy(out, s.commands)
	return out
}

// buildPaintList fills s.commands from the catalog columns and sorts them.
func (s *Scene) buildPaintList() {
	s.commands = s.commands[:0]
	sp := s.catalog
	colors := s.color.Values()
	zs := sp.worldZ.Values()
	for i := range colors {
		if colors[i].A <= 0 {
			continue
		}
		s.commands = append(s.commands, PaintCommand{
			Handle: sp.store.handleAt(i),
			Bounds: sp.boundsAt(i),
			Color:  colors[i],
			Z:      zs[i],
			row:    i,
		})
	}
	s.mergeSort()
}

// submit draws each command by scaling and tinting WhitePixel.
func (s *Scene) submit(target *ebiten.Image) {
	var op ebiten.DrawImageOptions
	for i := range s.commands {
		cmd := &s.commands[i]
		if cmd.Bounds.Width <= 0 || cmd.Bounds.Height <= 0 {
			continue
		}
		op.GeoM.Reset()
		op.GeoM.Scale(cmd.Bounds.Width, cmd.Bounds.Height)
		op.GeoM.Translate(cmd.Bounds.X, cmd.Bounds.Y)
		op.ColorScale.Reset()
		a := float32(cmd.Color.A)
		op.ColorScale.Scale(float32(cmd.Color.R)*a, float32(cmd.Color.G)*a, float32(cmd.Color.B)*a, a)
		target.DrawImage(WhitePixel, &op)
	}
}

// --- Merge sort ---

// commandLessOrEqual returns true if a should sort before or at the same position as b.
// Using <= for row ensures stability.
func commandLessOrEqual(a, b PaintCommand) bool {
	if a.Z != b.Z {
		return a.Z < b.Z
	}
	return a.row <= b.row
}

// mergeSort sorts s.commands in-place using s.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches high-water mark.
func (s *Scene) mergeSort() {
	n := len(s.commands)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]PaintCommand, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a := s.commands
	b := s.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(s.commands, s.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []PaintCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}
