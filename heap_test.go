package spatial

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoundedHeap(t *testing.T) {
	t.Run("CapacityZeroDiscardsEverything", func(t *testing.T) {
		h := NewBoundedHeap[ScoredIndex](0)
		h.Push(ScoredIndex{Dist: 1, Index: 0})
		h.Push(ScoredIndex{Dist: 2, Index: 1})
		if h.Size() != 0 {
			t.Errorf("expected size 0, got %d", h.Size())
		}
	})

	t.Run("PushSequenceKeepsKSmallest", func(t *testing.T) {
		h := NewBoundedHeap[ScoredIndex](3)
		values := []float32{5, 1, 4, 2, 3}
		expectedSizes := []int{1, 2, 3, 3, 3}

		for i, v := range values {
			h.Push(ScoredIndex{Dist: v, Index: i})
			if h.Size() != expectedSizes[i] {
				t.Errorf("after push %d: expected size %d, got %d", i, expectedSizes[i], h.Size())
			}
		}

		sorted := h.Sorted()
		require.Len(t, sorted, 3)
		dists := make([]float32, len(sorted))
		for i, s := range sorted {
			dists[i] = s.Dist
		}
		if dists[0] != 1 || dists[1] != 2 || dists[2] != 3 {
			t.Errorf("expected sorted [1 2 3], got %v", dists)
		}

		top, ok := h.Top()
		if !ok {
			t.Fatal("expected Top to report a non-empty heap")
		}
		if top.Dist != 3 {
			t.Errorf("expected top (worst retained) = 3, got %v", top.Dist)
		}
	})

	t.Run("SortedDoesNotMutateHeap", func(t *testing.T) {
		h := NewBoundedHeap[ScoredIndex](2)
		h.Push(ScoredIndex{Dist: 10, Index: 0})
		h.Push(ScoredIndex{Dist: 20, Index: 1})
		_ = h.Sorted()
		if h.Size() != 2 {
			t.Errorf("Sorted mutated heap size: got %d", h.Size())
		}
		top, ok := h.Top()
		require.True(t, ok)
		if top.Dist != 20 {
			t.Errorf("expected worst still 20 after Sorted, got %v", top.Dist)
		}
	})

	t.Run("ClearResetsState", func(t *testing.T) {
		h := NewBoundedHeap[ScoredIndex](2)
		h.Push(ScoredIndex{Dist: 1, Index: 0})
		h.Clear()
		if h.Size() != 0 {
			t.Errorf("expected size 0 after Clear, got %d", h.Size())
		}
		if _, ok := h.Top(); ok {
			t.Error("expected Top to report empty after Clear")
		}
	})
}
