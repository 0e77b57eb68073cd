package spatial

import "container/heap"

// traversalItem is a (lower-bound distance, node) pair used by the
// best-first traversals in KdTree and Octree, mirroring the reference
// engine's std::priority_queue<std::pair<float, NodeHandle>, ..., greater<>>
// (a min-heap ordered by distance).
type traversalItem struct {
	dist float32
	node NodeIndex
}

type traversalQueue []traversalItem

func (q traversalQueue) Len() int            { return len(q) }
func (q traversalQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q traversalQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *traversalQueue) Push(x interface{}) { *q = append(*q, x.(traversalItem)) }
func (q *traversalQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

func newTraversalQueue() *traversalQueue {
	q := make(traversalQueue, 0, 32)
	return &q
}

func (q *traversalQueue) push(dist float32, node NodeIndex) {
	heap.Push(q, traversalItem{dist: dist, node: node})
}

func (q *traversalQueue) pop() (traversalItem, bool) {
	if q.Len() == 0 {
		return traversalItem{}, false
	}
	return heap.Pop(q).(traversalItem), true
}
