package spatial

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPropertyArenaColumnLifecycle(t *testing.T) {
	arena := NewPropertyArena(4)

	col := GetOrAddColumn[float32](arena, "mass")
	col.Set(0, 1.5)
	col.Set(2, 3.5)

	got, ok := col.Get(0)
	require.True(t, ok)
	if got != 1.5 {
		t.Errorf("expected 1.5, got %v", got)
	}

	if _, ok := col.Get(1); !ok {
		t.Error("expected zero-value slot at index 1 to still report ok=true")
	}

	if _, ok := col.Get(-1); ok {
		t.Error("expected negative index to report ok=false")
	}
	if _, ok := col.Get(100); ok {
		t.Error("expected out-of-range index to report ok=false")
	}

	if !arena.HasColumn("mass") {
		t.Error("expected HasColumn to find the column just added")
	}
}

func TestGetOrAddColumnIsIdempotent(t *testing.T) {
	arena := NewPropertyArena(2)

	a := GetOrAddColumn[int](arena, "count")
	a.Set(0, 7)

	b := GetOrAddColumn[int](arena, "count")
	got, ok := b.Get(0)
	require.True(t, ok)
	if got != 7 {
		t.Errorf("expected second GetOrAddColumn to return the same column, got %v", got)
	}
}

func TestGetColumnTypeMismatchReturnsFalse(t *testing.T) {
	arena := NewPropertyArena(2)
	AddColumn[int](arena, "label")

	if _, ok := GetColumn[string](arena, "label"); ok {
		t.Error("expected type-mismatched lookup to report ok=false rather than panic")
	}
	if _, ok := GetColumn[int](arena, "missing"); ok {
		t.Error("expected missing-name lookup to report ok=false")
	}
}

func TestColumnSetGrowsPastInitialSize(t *testing.T) {
	arena := NewPropertyArena(1)
	col := GetOrAddColumn[int](arena, "tag")

	col.Set(5, 99)
	if col.Len() != 6 {
		t.Errorf("expected column to grow to length 6, got %d", col.Len())
	}
	got, ok := col.Get(5)
	require.True(t, ok)
	if got != 99 {
		t.Errorf("expected 99 at index 5, got %v", got)
	}
}

func TestArenaGrowPreservesExistingIndices(t *testing.T) {
	arena := NewPropertyArena(2)
	col := GetOrAddColumn[int](arena, "id")
	col.Set(0, 10)
	col.Set(1, 20)

	arena.Grow(10)
	if arena.Size() != 10 {
		t.Errorf("expected arena size 10, got %d", arena.Size())
	}
	if col.Len() != 10 {
		t.Errorf("expected column grown alongside arena, got len %d", col.Len())
	}

	v0, _ := col.Get(0)
	v1, _ := col.Get(1)
	if v0 != 10 || v1 != 20 {
		t.Errorf("expected prior values preserved, got %v %v", v0, v1)
	}

	// Growing to a smaller size than current is a no-op.
	arena.Grow(3)
	if arena.Size() != 10 {
		t.Errorf("expected Grow with smaller n to be a no-op, got size %d", arena.Size())
	}
}

func TestArenaRemoveAndClear(t *testing.T) {
	arena := NewPropertyArena(4)
	GetOrAddColumn[int](arena, "a")
	GetOrAddColumn[int](arena, "b")

	arena.RemoveColumn("a")
	if arena.HasColumn("a") {
		t.Error("expected column a to be removed")
	}
	if !arena.HasColumn("b") {
		t.Error("expected column b to remain")
	}

	arena.Clear()
	if arena.HasColumn("b") {
		t.Error("expected Clear to remove every column")
	}
	if arena.Size() != 0 {
		t.Errorf("expected Clear to reset size to 0, got %d", arena.Size())
	}
}

func TestSumAndMinColumn(t *testing.T) {
	arena := NewPropertyArena(4)
	col := GetOrAddColumn[float32](arena, "weight")
	col.Set(0, 3)
	col.Set(1, 1)
	col.Set(2, 4)
	col.Set(3, 1.5)

	if sum := SumColumn(col); sum != 9.5 {
		t.Errorf("expected sum 9.5, got %v", sum)
	}

	min, ok := MinColumn(col)
	require.True(t, ok)
	if min != 1 {
		t.Errorf("expected min 1, got %v", min)
	}

	empty := newColumn[float32](0)
	if _, ok := MinColumn(empty); ok {
		t.Error("expected MinColumn on an empty column to report ok=false")
	}
}
