package catalog

import "slices"

// Column is one typed attribute of every row in a Store, kept as its own
// dense slice. All columns of a store have the same length and order.
type Column[T any] struct {
	store *Store
	data  []T
}

// NewColumn registers a new column on s. Columns are part of the store's
// fixed schema, so registering one after rows exist panics.
func NewColumn[T any](s *Store) *Column[T] {
	if s == nil {
		panic("catalog: NewColumn on nil store")
	}
	if s.Len() > 0 {
		panic("catalog: column registered on a non-empty store")
	}
	c := &Column[T]{store: s}
	s.columns = append(s.columns, c)
	return c
}

// Get returns a pointer to the value of the row named by h. The pointer is
// only valid until the next insert or remove on the store.
func (c *Column[T]) Get(h Handle) (*T, error) {
	i, err := c.store.Index(h)
	if err != nil {
		return nil, err
	}
	return &c.data[i], nil
}

// Value returns a copy of the value of the row named by h.
func (c *Column[T]) Value(h Handle) (T, error) {
	p, err := c.Get(h)
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

// Set stores v in the row named by h.
func (c *Column[T]) Set(h Handle, v T) error {
	p, err := c.Get(h)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// At returns a pointer to the value at position i. Panics if i is out of range.
func (c *Column[T]) At(i int) *T {
	return &c.data[i]
}

// Values returns the column in row order. The slice MUST NOT be resized.
func (c *Column[T]) Values() []T {
	return c.data
}

// Len returns the number of rows.
func (c *Column[T]) Len() int { return len(c.data) }

func (c *Column[T]) insertRows(pos, count int) {
	c.data = slices.Insert(c.data, pos, make([]T, count)...)
}

func (c *Column[T]) removeRows(pos, count int) {
	c.data = slices.Delete(c.data, pos, pos+count)
}

func (c *Column[T]) rowCount() int { return len(c.data) }
