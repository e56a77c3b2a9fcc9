package catalog

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Spatial is a hierarchical catalog: a tree of rectangles kept in one Store
// in depth-first pre-order, so every node's descendants occupy the contiguous
// block of rows right after it. Child lists are not stored; first and last
// child are read off array adjacency and the sibling links.
//
// Sibling order always equals array order. A new child becomes the last child
// of its parent; a new root is inserted at row 0 and becomes the first root.
//
// World positions and z order are derived and only refreshed by Update.
type Spatial struct {
	cfg   Config
	log   Logger
	store *Store

	parent *Column[Handle]
	prev   *Column[Handle]
	next   *Column[Handle]

	position *Column[Vec2]
	extent   *Column[Vec2]
	world    *Column[Vec2]

	zOffset *Column[int]
	depth   *Column[int]
	worldZ  *Column[int]
	band    *Column[int]

	updateDuration prometheus.Observer
}

// NewSpatial creates an empty hierarchical catalog. Further columns keyed by
// the same handles can be registered on Store() before the first Add.
func NewSpatial(cfg Config) *Spatial {
	cfg = cfg.withDefaults()
	s := NewStore(cfg)
	return &Spatial{
		cfg:            cfg,
		log:            cfg.Logger,
		store:          s,
		parent:         NewColumn[Handle](s),
		prev:           NewColumn[Handle](s),
		next:           NewColumn[Handle](s),
		position:       NewColumn[Vec2](s),
		extent:         NewColumn[Vec2](s),
		world:          NewColumn[Vec2](s),
		zOffset:        NewColumn[int](s),
		depth:          NewColumn[int](s),
		worldZ:         NewColumn[int](s),
		band:           NewColumn[int](s),
		updateDuration: SpatialUpdateDuration.WithLabelValues(cfg.Name),
	}
}

// Store returns the underlying packed store.
func (sp *Spatial) Store() *Store { return sp.store }

// Len returns the number of nodes.
func (sp *Spatial) Len() int { return sp.store.Len() }

// Contains reports whether h names a live node.
func (sp *Spatial) Contains(h Handle) bool { return sp.store.Contains(h) }

// Add inserts a node under parent with the configured default depth and no z
// offset. position is relative to the parent. An InvalidHandle parent adds a
// root.
func (sp *Spatial) Add(parent Handle, position, extent Vec2) (Handle, error) {
	return sp.AddWithDepth(parent, position, extent, 0, sp.cfg.DefaultDepth)
}

// AddWithDepth is Add with an explicit z offset and z budget. A depth of 0
// sizes the node's z band to fit its subtree.
func (sp *Spatial) AddWithDepth(parent Handle, position, extent Vec2, zOffset, depth int) (Handle, error) {
	if zOffset < 0 || depth < 0 {
		return InvalidHandle, errors.Wrapf(ErrPreconditionViolated, "negative z offset %d or depth %d", zOffset, depth)
	}

	var pos int
	prevSibling, nextSibling := InvalidHandle, InvalidHandle
	if parent.Valid() {
		pi, err := sp.store.Index(parent)
		if err != nil {
			return InvalidHandle, errors.WithMessage(err, "add: parent")
		}
		if last := sp.lastChildIndex(pi); last >= 0 {
			prevSibling = sp.store.handleAt(last)
		}
		pos = sp.subtreeEnd(pi)
	} else if sp.store.Len() > 0 {
		nextSibling = sp.store.handleAt(0)
	}

	hs, err := sp.store.Insert(pos, 1)
	if err != nil {
		return InvalidHandle, errors.WithMessage(err, "add")
	}
	h := hs[0]

	*sp.parent.At(pos) = parent
	*sp.prev.At(pos) = prevSibling
	*sp.next.At(pos) = nextSibling
	*sp.position.At(pos) = position
	*sp.extent.At(pos) = extent
	*sp.zOffset.At(pos) = zOffset
	*sp.depth.At(pos) = depth
	if prevSibling.Valid() {
		*sp.next.At(sp.store.indexOf(prevSibling)) = h
	}
	if nextSibling.Valid() {
		*sp.prev.At(sp.store.indexOf(nextSibling)) = h
	}

	if sp.cfg.Debug {
		sp.debugCheckTreeDepth(h)
		if parent.Valid() {
			sp.debugCheckChildCount(parent)
		}
	}
	return h, nil
}

// Remove deletes the node named by h together with its whole subtree. Every
// handle in the subtree becomes stale.
func (sp *Spatial) Remove(h Handle) error {
	i, err := sp.store.Index(h)
	if err != nil {
		return errors.WithMessage(err, "remove")
	}
	end := sp.subtreeEnd(i)

	prevSibling, nextSibling := *sp.prev.At(i), *sp.next.At(i)
	if prevSibling.Valid() {
		*sp.next.At(sp.store.indexOf(prevSibling)) = nextSibling
	}
	if nextSibling.Valid() {
		*sp.prev.At(sp.store.indexOf(nextSibling)) = prevSibling
	}
	return sp.store.RemoveRange(i, end-i)
}

// --- Tree queries ---

// Parent returns the parent of h, or InvalidHandle for a root.
func (sp *Spatial) Parent(h Handle) (Handle, error) { return sp.parent.Value(h) }

// Next returns the next sibling of h, or InvalidHandle for the last one.
func (sp *Spatial) Next(h Handle) (Handle, error) { return sp.next.Value(h) }

// Prev returns the previous sibling of h, or InvalidHandle for the first one.
func (sp *Spatial) Prev(h Handle) (Handle, error) { return sp.prev.Value(h) }

// FirstChild returns the row right after h if h is its parent, else
// InvalidHandle.
func (sp *Spatial) FirstChild(h Handle) (Handle, error) {
	i, err := sp.store.Index(h)
	if err != nil {
		return InvalidHandle, err
	}
	return sp.handleOrInvalid(sp.firstChildIndex(i)), nil
}

// LastChild returns the last direct child of h, or InvalidHandle.
// O(number of direct children).
func (sp *Spatial) LastChild(h Handle) (Handle, error) {
	i, err := sp.store.Index(h)
	if err != nil {
		return InvalidHandle, err
	}
	return sp.handleOrInvalid(sp.lastChildIndex(i)), nil
}

// HasChildren reports whether h has at least one child.
func (sp *Spatial) HasChildren(h Handle) (bool, error) {
	i, err := sp.store.Index(h)
	if err != nil {
		return false, err
	}
	return sp.firstChildIndex(i) >= 0, nil
}

// Children returns the direct children of h in sibling order.
func (sp *Spatial) Children(h Handle) ([]Handle, error) {
	i, err := sp.store.Index(h)
	if err != nil {
		return nil, err
	}
	var out []Handle
	for c := sp.firstChildIndex(i); c >= 0; c = sp.nextIndex(c) {
		out = append(out, sp.store.handleAt(c))
	}
	return out, nil
}

// Roots returns the top-level nodes in sibling order.
func (sp *Spatial) Roots() []Handle {
	if sp.store.Len() == 0 {
		return nil
	}
	var out []Handle
	for i := 0; i >= 0; i = sp.nextIndex(i) {
		out = append(out, sp.store.handleAt(i))
	}
	return out
}

// SubtreeRange returns the half-open row range [start, end) holding h and
// all of its descendants.
func (sp *Spatial) SubtreeRange(h Handle) (start, end int, err error) {
	i, err := sp.store.Index(h)
	if err != nil {
		return -1, -1, err
	}
	return i, sp.subtreeEnd(i), nil
}

// --- Attributes ---

// Position returns the parent-relative position of h.
func (sp *Spatial) Position(h Handle) (Vec2, error) { return sp.position.Value(h) }

// SetPosition sets the parent-relative position of h.
func (sp *Spatial) SetPosition(h Handle, v Vec2) error { return sp.position.Set(h, v) }

// Extent returns the size of h.
func (sp *Spatial) Extent(h Handle) (Vec2, error) { return sp.extent.Value(h) }

// SetExtent sets the size of h.
func (sp *Spatial) SetExtent(h Handle, v Vec2) error { return sp.extent.Set(h, v) }

// WorldPosition returns the position of h accumulated through its ancestors
// as of the last Update.
func (sp *Spatial) WorldPosition(h Handle) (Vec2, error) { return sp.world.Value(h) }

// Bounds returns the world-space rectangle of h as of the last Update.
func (sp *Spatial) Bounds(h Handle) (Rect, error) {
	i, err := sp.store.Index(h)
	if err != nil {
		return Rect{}, err
	}
	return sp.boundsAt(i), nil
}

// ZOffset returns the authored z offset of h within its parent's band.
func (sp *Spatial) ZOffset(h Handle) (int, error) { return sp.zOffset.Value(h) }

// SetZOffset sets the z offset of h. Negative offsets are rejected.
func (sp *Spatial) SetZOffset(h Handle, z int) error {
	if z < 0 {
		return errors.Wrapf(ErrPreconditionViolated, "negative z offset %d", z)
	}
	return sp.zOffset.Set(h, z)
}

// Depth returns the authored z budget of h.
func (sp *Spatial) Depth(h Handle) (int, error) { return sp.depth.Value(h) }

// SetDepth sets the z budget of h. Zero sizes the band to the subtree.
func (sp *Spatial) SetDepth(h Handle, d int) error {
	if d < 0 {
		return errors.Wrapf(ErrPreconditionViolated, "negative depth %d", d)
	}
	return sp.depth.Set(h, d)
}

// WorldZ returns the paint order of h as of the last Update. Higher values
// paint later.
func (sp *Spatial) WorldZ(h Handle) (int, error) { return sp.worldZ.Value(h) }

// ZBand returns the size of the z band reserved for h and its subtree as of
// the last Update. It is the authored depth unless the subtree needed more.
func (sp *Spatial) ZBand(h Handle) (int, error) { return sp.band.Value(h) }

// --- Update ---

// Update recomputes world positions and z order for every node. Call it after
// a batch of mutations and before reading derived attributes.
func (sp *Spatial) Update() {
	start := time.Now()
	sp.updateWorldPositions()
	sp.updateWorldZ()
	elapsed := time.Since(start)
	sp.updateDuration.Observe(elapsed.Seconds())

	if sp.cfg.Debug {
		sp.debugCheckColumns()
		sp.log.Debug("update", "catalog", sp.cfg.Name, "nodes", sp.store.Len(), "elapsed", elapsed)
	}
}

// updateWorldPositions is a single forward scan. Pre-order layout puts every
// ancestor at a lower row than its descendants, so a parent's world position
// is always final before its children read it.
func (sp *Spatial) updateWorldPositions() {
	parents := sp.parent.Values()
	local := sp.position.Values()
	world := sp.world.Values()
	for i := range local {
		w := local[i]
		if p := parents[i]; p.Valid() {
			w = w.Add(world[sp.store.indexOf(p)])
		}
		world[i] = w
	}
}

// updateWorldZ walks roots along their sibling links.
func (sp *Spatial) updateWorldZ() {
	if sp.store.Len() == 0 {
		return
	}
	offset := 0
	for i := 0; i >= 0; i = sp.nextIndex(i) {
		offset += sp.assignZ(i, offset)
	}
}

// assignZ gives row i the z value base+zOffset and lays its children out
// after it inside its band. It returns how far the caller's running offset
// advances: the node's z offset plus its band.
func (sp *Spatial) assignZ(i, base int) int {
	zOff := *sp.zOffset.At(i)
	z := base + zOff
	*sp.worldZ.At(i) = z

	used := 1
	for c := sp.firstChildIndex(i); c >= 0; c = sp.nextIndex(c) {
		used += sp.assignZ(c, z+used)
	}

	band := *sp.depth.At(i)
	if used > band {
		if band != 0 && sp.cfg.Debug {
			sp.debugZBandOverflow(i, band, used)
		}
		band = used
	}
	*sp.band.At(i) = band
	return zOff + band
}

// --- Row helpers ---

func (sp *Spatial) firstChildIndex(i int) int {
	c := i + 1
	if c < sp.store.Len() && *sp.parent.At(c) == sp.store.handleAt(i) {
		return c
	}
	return -1
}

func (sp *Spatial) lastChildIndex(i int) int {
	c := sp.firstChildIndex(i)
	if c < 0 {
		return -1
	}
	for n := sp.nextIndex(c); n >= 0; n = sp.nextIndex(c) {
		c = n
	}
	return c
}

func (sp *Spatial) nextIndex(i int) int {
	n := *sp.next.At(i)
	if !n.Valid() {
		return -1
	}
	return sp.store.indexOf(n)
}

// subtreeEnd returns the row just past the last descendant of row i, found by
// following last children down to the deepest right-most node.
func (sp *Spatial) subtreeEnd(i int) int {
	for {
		last := sp.lastChildIndex(i)
		if last < 0 {
			return i + 1
		}
		i = last
	}
}

func (sp *Spatial) handleOrInvalid(i int) Handle {
	if i < 0 {
		return InvalidHandle
	}
	return sp.store.handleAt(i)
}

func (sp *Spatial) boundsAt(i int) Rect {
	w := *sp.world.At(i)
	e := *sp.extent.At(i)
	return Rect{X: w.X, Y: w.Y, Width: e.X, Height: e.Y}
}
