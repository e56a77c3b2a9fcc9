package catalog

import (
	"slices"

	"github.com/pkg/errors"
)

// column is the untyped view a Store keeps of each registered Column so that
// inserts and removes shift every column in lockstep.
type column interface {
	insertRows(pos, count int)
	removeRows(pos, count int)
	rowCount() int
}

// Store is a packed structure-of-arrays table addressed through handles.
// Rows live at dense positions [0, Len) in every registered Column; a handle
// keeps naming the same logical row while inserts and removes shift it.
//
// Inserting or removing in the middle rebinds every handle after the
// affected position, which is O(rows after it). That is fine for UI-sized
// tables and does not scale to large ones.
type Store struct {
	cfg      Config
	log      Logger
	alloc    *HandleAllocator
	handleOf []Handle
	columns  []column
	metrics  storeMetrics
}

// NewStore creates an empty store. Register columns with NewColumn before
// adding rows.
func NewStore(cfg Config) *Store {
	cfg = cfg.withDefaults()
	return &Store{
		cfg:     cfg,
		log:     cfg.Logger,
		alloc:   NewHandleAllocator(cfg.Capacity),
		metrics: newStoreMetrics(cfg.Name),
	}
}

// Name returns the catalog name from the store's Config.
func (s *Store) Name() string { return s.cfg.Name }

// Len returns the number of rows.
func (s *Store) Len() int { return len(s.handleOf) }

// Cap returns the maximum number of rows.
func (s *Store) Cap() int { return s.alloc.Cap() }

// Add appends one zero-valued row and returns its handle.
func (s *Store) Add() (Handle, error) {
	hs, err := s.Insert(len(s.handleOf), 1)
	if err != nil {
		return InvalidHandle, err
	}
	return hs[0], nil
}

// Insert opens count zero-valued rows at position pos and returns their
// handles in row order. Rows previously at pos or later move up by count.
// On error nothing is changed.
func (s *Store) Insert(pos, count int) ([]Handle, error) {
	if pos < 0 || pos > len(s.handleOf) {
		return nil, s.metrics.failed(errors.Wrapf(ErrPreconditionViolated,
			"insert position %d outside [0, %d]", pos, len(s.handleOf)))
	}
	if count < 1 {
		return nil, s.metrics.failed(errors.Wrapf(ErrPreconditionViolated, "insert count %d", count))
	}
	if s.alloc.Available() < count {
		return nil, s.metrics.failed(errors.Wrapf(ErrCapacityExceeded,
			"insert %d rows with %d of %d handles free", count, s.alloc.Available(), s.alloc.Cap()))
	}

	for _, c := range s.columns {
		c.insertRows(pos, count)
	}
	handles := make([]Handle, count)
	for i := range handles {
		h, err := s.alloc.Add(pos + i)
		if err != nil {
			// Available was checked above.
			panic("catalog: allocator refused a reserved handle: " + err.Error())
		}
		handles[i] = h
	}
	s.handleOf = slices.Insert(s.handleOf, pos, handles...)
	s.rebind(pos + count)
	s.metrics.rows.Set(float64(len(s.handleOf)))

	if s.cfg.Debug {
		s.log.Debug("insert", "catalog", s.cfg.Name, "pos", pos, "count", count, "moved", len(s.handleOf)-pos-count)
	}
	return handles, nil
}

// Remove deletes the row named by h. Later rows move down by one and h
// becomes stale.
func (s *Store) Remove(h Handle) error {
	i, err := s.Index(h)
	if err != nil {
		return err
	}
	return s.RemoveRange(i, 1)
}

// RemoveRange deletes count rows starting at position pos and releases their
// handles. On error nothing is changed.
func (s *Store) RemoveRange(pos, count int) error {
	if pos < 0 || count < 1 || pos+count > len(s.handleOf) {
		return s.metrics.failed(errors.Wrapf(ErrPreconditionViolated,
			"remove [%d, %d) outside [0, %d)", pos, pos+count, len(s.handleOf)))
	}
	for _, h := range s.handleOf[pos : pos+count] {
		if err := s.alloc.Remove(h); err != nil {
			panic("catalog: row bound to a dead handle: " + err.Error())
		}
	}
	for _, c := range s.columns {
		c.removeRows(pos, count)
	}
	s.handleOf = slices.Delete(s.handleOf, pos, pos+count)
	s.rebind(pos)
	s.metrics.rows.Set(float64(len(s.handleOf)))
	return nil
}

// Index returns the current position of the row named by h.
func (s *Store) Index(h Handle) (int, error) {
	i, err := s.alloc.Get(h)
	if err != nil {
		return -1, s.metrics.failed(err)
	}
	return i, nil
}

// Handle returns the handle of the row at position i.
func (s *Store) Handle(i int) (Handle, error) {
	if i < 0 || i >= len(s.handleOf) {
		return InvalidHandle, s.metrics.failed(errors.Wrapf(ErrPreconditionViolated,
			"position %d outside [0, %d)", i, len(s.handleOf)))
	}
	return s.handleOf[i], nil
}

// Contains reports whether h names a live row.
func (s *Store) Contains(h Handle) bool {
	return s.alloc.Contains(h)
}

// Handles returns the handles of all rows in position order. The returned
// slice MUST NOT be mutated and is only valid until the next insert or remove.
func (s *Store) Handles() []Handle {
	return s.handleOf
}

// handleAt is Handle without the bounds error, for traversal code that
// already knows i is in range.
func (s *Store) handleAt(i int) Handle {
	return s.handleOf[i]
}

// indexOf is Index for handles already known to be live.
func (s *Store) indexOf(h Handle) int {
	i, err := s.alloc.Get(h)
	if err != nil {
		panic("catalog: link to a dead handle: " + err.Error())
	}
	return i
}

// rebind points every handle at or after position from back at its row.
func (s *Store) rebind(from int) {
	for i := from; i < len(s.handleOf); i++ {
		if err := s.alloc.Change(s.handleOf[i], i); err != nil {
			panic("catalog: row bound to a dead handle: " + err.Error())
		}
	}
	if moved := len(s.handleOf) - from; moved > 0 {
		s.metrics.rebound.Add(float64(moved))
	}
}
