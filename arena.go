package spatial

import "golang.org/x/exp/constraints"

// PropertyArena is per-node attribute storage addressed by a tree's stable
// NodeIndex. Each named property is backed by a typed Column[T], resolved
// through a type assertion on lookup: a mismatched type returns an invalid
// handle rather than panicking.
type PropertyArena struct {
	columns map[string]growable
	size    int
}

// NewPropertyArena builds an arena sized for n existing nodes; columns added
// later via GetOrAddColumn/AddColumn start pre-grown to the same size.
func NewPropertyArena(n int) *PropertyArena {
	return &PropertyArena{columns: make(map[string]growable), size: n}
}

// growable lets the arena grow every column uniformly on Grow without
// knowing each column's element type.
type growable interface {
	grow(n int)
}

// Column is a single named property's backing storage: one T per node
// index, index-stable as the arena grows (append-only, never reslices
// existing elements out from under a previously observed index).
type Column[T any] struct {
	values []T
}

func newColumn[T any](n int) *Column[T] {
	return &Column[T]{values: make([]T, n)}
}

func (c *Column[T]) grow(n int) {
	if n <= len(c.values) {
		return
	}
	grown := make([]T, n)
	copy(grown, c.values)
	c.values = grown
}

// Get returns the value at idx and whether idx is in range.
func (c *Column[T]) Get(idx NodeIndex) (T, bool) {
	var zero T
	if idx < 0 || int(idx) >= len(c.values) {
		return zero, false
	}
	return c.values[idx], true
}

// Set stores value at idx, growing the column if idx is beyond its current
// length.
func (c *Column[T]) Set(idx NodeIndex, value T) {
	if int(idx) >= len(c.values) {
		c.grow(int(idx) + 1)
	}
	c.values[idx] = value
}

func (c *Column[T]) Len() int { return len(c.values) }

// AddColumn creates a new named column of type T, sized to the arena's
// current node count. Overwrites any existing column of the same name.
func AddColumn[T any](a *PropertyArena, name string) *Column[T] {
	col := newColumn[T](a.size)
	a.columns[name] = col
	return col
}

// GetColumn looks up a named column, returning ok=false on a missing name
// or a type mismatch against T rather than panicking.
func GetColumn[T any](a *PropertyArena, name string) (*Column[T], bool) {
	raw, exists := a.columns[name]
	if !exists {
		return nil, false
	}
	col, ok := raw.(*Column[T])
	return col, ok
}

// GetOrAddColumn returns the named column of type T, creating it (sized to
// the arena's current node count) if absent. Idempotent.
func GetOrAddColumn[T any](a *PropertyArena, name string) *Column[T] {
	if col, ok := GetColumn[T](a, name); ok {
		return col
	}
	return AddColumn[T](a, name)
}

// HasColumn is the existence probe.
func (a *PropertyArena) HasColumn(name string) bool {
	_, ok := a.columns[name]
	return ok
}

// RemoveColumn deletes a named column entirely.
func (a *PropertyArena) RemoveColumn(name string) {
	delete(a.columns, name)
}

// Clear removes every column, resetting the arena to empty.
func (a *PropertyArena) Clear() {
	a.columns = make(map[string]growable)
	a.size = 0
}

// Grow extends every column to hold at least n nodes, preserving existing
// indices. Trees call this after a Build grows the node count.
func (a *PropertyArena) Grow(n int) {
	if n <= a.size {
		return
	}
	a.size = n
	for _, col := range a.columns {
		col.grow(n)
	}
}

func (a *PropertyArena) Size() int { return a.size }

// number is the constraint shared by the arena's small set of numeric
// aggregate helpers, grounded on the pack's use of golang.org/x/exp's
// generics-era constraint packages for this kind of numeric type parameter.
type number interface {
	constraints.Integer | constraints.Float
}

// SumColumn totals every value in a numeric column, a diagnostic aggregate
// over per-node properties (e.g. summing a "subtree triangle count" column).
func SumColumn[T number](c *Column[T]) T {
	var total T
	for _, v := range c.values {
		total += v
	}
	return total
}

// MinColumn returns the smallest value in a numeric column and whether the
// column is non-empty.
func MinColumn[T number](c *Column[T]) (T, bool) {
	if len(c.values) == 0 {
		var zero T
		return zero, false
	}
	min := c.values[0]
	for _, v := range c.values[1:] {
		if v < min {
			min = v
		}
	}
	return min, true
}
