package spatial

import "container/heap"

// ScoredIndex pairs a distance with a node/point index, the type the k-NN
// traversals in KdTree and Octree bound through BoundedHeap.
type ScoredIndex struct {
	Dist  float32
	Index int
}

// Less orders by Dist ascending, with Index as a tiebreak for equal distances.
func (a ScoredIndex) Less(b ScoredIndex) bool {
	if a.Dist != b.Dist {
		return a.Dist < b.Dist
	}
	return a.Index < b.Index
}

// BoundedHeap keeps the k smallest T by Less, grounded on the reference
// engine's bounded_heap.hpp: a fixed-capacity max-heap where push replaces
// the current worst element once the heap is full. Built on top of the
// standard library's container/heap the way the rest of this pack reaches
// for it, rather than hand-rolling heap-sift logic.
type BoundedHeap[T interface{ Less(T) bool }] struct {
	capacity int
	items    maxHeap[T]
}

// NewBoundedHeap builds a heap retaining at most capacity items. capacity
// zero discards every push rather than panicking.
func NewBoundedHeap[T interface{ Less(T) bool }](capacity int) *BoundedHeap[T] {
	h := &BoundedHeap[T]{capacity: capacity}
	h.items = make(maxHeap[T], 0, capacity)
	return h
}

// Push adds item, discarding it if the heap is full and it is not strictly
// better than the current worst.
func (h *BoundedHeap[T]) Push(item T) {
	if h.capacity == 0 {
		return
	}
	if len(h.items) < h.capacity {
		heap.Push(&h.items, item)
		return
	}
	if item.Less(h.items[0]) {
		h.items[0] = item
		heap.Fix(&h.items, 0)
	}
}

// Top returns the current worst (largest) retained item and whether the
// heap is non-empty.
func (h *BoundedHeap[T]) Top() (T, bool) {
	var zero T
	if len(h.items) == 0 {
		return zero, false
	}
	return h.items[0], true
}

func (h *BoundedHeap[T]) Size() int     { return len(h.items) }
func (h *BoundedHeap[T]) Capacity() int { return h.capacity }
func (h *BoundedHeap[T]) Empty() bool   { return len(h.items) == 0 }
func (h *BoundedHeap[T]) Clear()        { h.items = h.items[:0] }

// Sorted returns the retained items in ascending order (best first) without
// disturbing the heap.
func (h *BoundedHeap[T]) Sorted() []T {
	out := make([]T, len(h.items))
	copy(out, h.items)
	insertionSortByLess(out)
	return out
}

func insertionSortByLess[T interface{ Less(T) bool }](items []T) {
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j].Less(items[j-1]); j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
}

// maxHeap implements container/heap.Interface as a max-heap over T (largest
// at the root), so a full BoundedHeap can evict its worst element in O(log
// k) via heap.Fix.
type maxHeap[T interface{ Less(T) bool }] []T

func (m maxHeap[T]) Len() int            { return len(m) }
func (m maxHeap[T]) Less(i, j int) bool  { return m[j].Less(m[i]) } // reversed: max-heap
func (m maxHeap[T]) Swap(i, j int)       { m[i], m[j] = m[j], m[i] }
func (m *maxHeap[T]) Push(x interface{}) { *m = append(*m, x.(T)) }
func (m *maxHeap[T]) Pop() interface{} {
	old := *m
	n := len(old)
	item := old[n-1]
	*m = old[:n-1]
	return item
}
