package spatial

import "math"

// kdNode is a single k-d tree node: its bounding box over the point span it
// owns, that span as a [first, first+count) range into the tree's index
// permutation, and (for internal nodes) the split axis/position plus the
// two child indices.
type kdNode struct {
	bounds       AABB
	firstPoint   int
	numPoints    int
	children     [2]NodeIndex
	splitAxis    int
	splitPos     float32
	isLeaf       bool
}

// KdTree is a static k-d tree over a caller-owned slice of points. Build
// partitions an index permutation in place; the tree holds only the slice
// header handed to Build and never copies or owns the backing array.
type KdTree struct {
	nodes        []kdNode
	pointIndices []int
	positions    []Vec3
	maxPerLeaf   int
	maxDepth     int
	Properties   *PropertyArena
}

// Build (re)constructs the tree over positions. Returns false (leaving the
// tree empty) if positions is empty, rather than panicking on empty input.
func (t *KdTree) Build(positions []Vec3, maxPerLeaf, maxDepth int) bool {
	t.positions = positions
	if maxPerLeaf < 1 {
		maxPerLeaf = 1
	}
	if maxDepth < 1 {
		maxDepth = 1
	}
	t.maxPerLeaf = maxPerLeaf
	t.maxDepth = maxDepth

	n := len(positions)
	if n == 0 {
		t.nodes = nil
		t.pointIndices = nil
		t.Properties = nil
		return false
	}

	t.nodes = make([]kdNode, 0, n*2)
	t.pointIndices = make([]int, n)
	for i := range t.pointIndices {
		t.pointIndices[i] = i
	}
	t.Properties = NewPropertyArena(0)

	root := t.createNode()
	t.buildNode(root, 0, 0, n)
	return true
}

func (t *KdTree) createNode() NodeIndex {
	t.nodes = append(t.nodes, kdNode{children: [2]NodeIndex{InvalidNodeIndex, InvalidNodeIndex}, isLeaf: true})
	t.Properties.Grow(len(t.nodes))
	return NodeIndex(len(t.nodes) - 1)
}

func (t *KdTree) computeBounds(first, count int) AABB {
	if count == 0 {
		return AABB{}
	}
	box := MakeAABBFromPoint(t.positions[t.pointIndices[first]])
	for i := 1; i < count; i++ {
		box = box.MergePoint(t.positions[t.pointIndices[first+i]])
	}
	return box
}

func (t *KdTree) buildNode(nodeIdx NodeIndex, depth, begin, end int) {
	count := end - begin
	node := &t.nodes[nodeIdx]
	node.firstPoint = begin
	node.numPoints = count
	node.bounds = t.computeBounds(begin, count)

	if depth >= t.maxDepth || count <= t.maxPerLeaf {
		node.isLeaf = true
		return
	}

	axis := node.bounds.LongestAxis()
	extent := node.bounds.Size()
	// float32 machine epsilon (2^-23).
	if extent.Get(axis) <= math.Nextafter32(1, 2)-1 {
		node.isLeaf = true
		return
	}

	mid := begin + count/2
	nthElementByAxis(t.pointIndices[begin:end], mid-begin, axis, t.positions)

	leftCount := mid - begin
	rightCount := end - mid
	if leftCount == 0 || rightCount == 0 {
		node.isLeaf = true
		return
	}

	node.isLeaf = false
	node.splitAxis = axis
	medianIndex := t.pointIndices[mid]
	node.splitPos = t.positions[medianIndex].Get(axis)

	left := t.createNode()
	t.nodes[nodeIdx].children[0] = left
	t.buildNode(left, depth+1, begin, mid)

	right := t.createNode()
	t.nodes[nodeIdx].children[1] = right
	t.buildNode(right, depth+1, mid, end)
}

// nthElementByAxis partitions indices so that indices[k] holds the element
// that would sit at position k were indices fully sorted by
// positions[idx].Get(axis), with every earlier element <= it and every
// later element >=. Implements the same contract as std::nth_element via
// Hoare partitioning.
func nthElementByAxis(indices []int, k, axis int, positions []Vec3) {
	lo, hi := 0, len(indices)-1
	key := func(i int) float32 { return positions[indices[i]].Get(axis) }
	for lo < hi {
		pivot := key((lo + hi) / 2)
		i, j := lo, hi
		for i <= j {
			for key(i) < pivot {
				i++
			}
			for key(j) > pivot {
				j--
			}
			if i <= j {
				indices[i], indices[j] = indices[j], indices[i]
				i++
				j--
			}
		}
		if k <= j {
			hi = j
		} else if k >= i {
			lo = i
		} else {
			break
		}
	}
}

// QueryAABB appends the index of every point contained in region to result,
// pruning subtrees whose bounds do not intersect it.
func (t *KdTree) QueryAABB(region AABB, result []int) []int {
	result = result[:0]
	if len(t.nodes) == 0 {
		return result
	}

	stack := acquireIntStack()
	defer func() { releaseIntStack(stack) }()
	stack = append(stack, 0)

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &t.nodes[idx]

		if !node.bounds.IntersectsAABB(region) {
			continue
		}

		if node.isLeaf {
			for i := 0; i < node.numPoints; i++ {
				pi := t.pointIndices[node.firstPoint+i]
				if region.ContainsPoint(t.positions[pi]) {
					result = append(result, pi)
				}
			}
			continue
		}
		for _, c := range node.children {
			if c.Valid() {
				stack = append(stack, int(c))
			}
		}
	}
	return result
}

// QueryRadius appends the index of every point within radius of queryPoint.
func (t *KdTree) QueryRadius(queryPoint Vec3, radius float32, result []int) []int {
	result = result[:0]
	if len(t.nodes) == 0 || radius < 0 {
		return result
	}
	radiusSq := radius * radius

	stack := acquireIntStack()
	defer func() { releaseIntStack(stack) }()
	stack = append(stack, 0)

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &t.nodes[idx]

		if float32(node.bounds.SquaredDistance(queryPoint)) > radiusSq {
			continue
		}

		if node.isLeaf {
			for i := 0; i < node.numPoints; i++ {
				pi := t.pointIndices[node.firstPoint+i]
				if DistanceSquared(t.positions[pi], queryPoint) <= radiusSq {
					result = append(result, pi)
				}
			}
			continue
		}
		for _, c := range node.children {
			if c.Valid() {
				stack = append(stack, int(c))
			}
		}
	}
	return result
}

// QueryKNN returns the indices of the k closest points to queryPoint, nearest
// first, via best-first traversal bounded by a BoundedHeap[ScoredIndex] and
// pruned once a node's lower-bound distance exceeds the current kth-best
// (tau).
func (t *KdTree) QueryKNN(queryPoint Vec3, k int) []int {
	if len(t.nodes) == 0 || k == 0 {
		return nil
	}

	bounded := NewBoundedHeap[ScoredIndex](k)
	pq := newTraversalQueue()
	pq.push(float32(t.nodes[0].bounds.SquaredDistance(queryPoint)), 0)

	tau := float32(math.Inf(1))
	updateTau := func() {
		if bounded.Size() == k {
			worst, _ := bounded.Top()
			tau = worst.Dist
		}
	}

	for {
		item, ok := pq.pop()
		if !ok {
			break
		}
		if bounded.Size() == k && item.dist > tau {
			break
		}

		node := &t.nodes[item.node]
		if node.isLeaf {
			for i := 0; i < node.numPoints; i++ {
				pi := t.pointIndices[node.firstPoint+i]
				dist := DistanceSquared(t.positions[pi], queryPoint)
				candidate := ScoredIndex{Dist: dist, Index: pi}
				if worst, _ := bounded.Top(); bounded.Size() < k || candidate.Less(worst) {
					bounded.Push(candidate)
					updateTau()
				}
			}
			continue
		}
		for _, c := range node.children {
			if !c.Valid() {
				continue
			}
			childDist := float32(t.nodes[c].bounds.SquaredDistance(queryPoint))
			if childDist <= tau {
				pq.push(childDist, c)
			}
		}
	}

	sorted := bounded.Sorted()
	result := make([]int, len(sorted))
	for i, s := range sorted {
		result[i] = s.Index
	}
	return result
}

// QueryNearest returns the index of the closest point, or (-1, false) on an
// empty tree.
func (t *KdTree) QueryNearest(queryPoint Vec3) (int, bool) {
	if len(t.nodes) == 0 {
		return -1, false
	}

	bestDistSq := math.Inf(1)
	bestIdx := -1

	pq := newTraversalQueue()
	pq.push(float32(t.nodes[0].bounds.SquaredDistance(queryPoint)), 0)

	for {
		item, ok := pq.pop()
		if !ok {
			break
		}
		if float64(item.dist) >= bestDistSq {
			break
		}

		node := &t.nodes[item.node]
		if node.isLeaf {
			for i := 0; i < node.numPoints; i++ {
				pi := t.pointIndices[node.firstPoint+i]
				d := float64(DistanceSquared(t.positions[pi], queryPoint))
				if d < bestDistSq {
					bestDistSq = d
					bestIdx = pi
				}
			}
			continue
		}
		for _, c := range node.children {
			if !c.Valid() {
				continue
			}
			childDist := float32(t.nodes[c].bounds.SquaredDistance(queryPoint))
			if float64(childDist) < bestDistSq {
				pq.push(childDist, c)
			}
		}
	}

	if bestIdx < 0 {
		return -1, false
	}
	return bestIdx, true
}

// ValidateStructure checks the span-partition invariant across every node:
// a leaf's span is consistent with its bookkeeping, and an internal node's
// two children exactly and contiguously partition its own span.
func (t *KdTree) ValidateStructure() bool {
	if len(t.nodes) == 0 {
		return len(t.pointIndices) == 0
	}
	return t.validateNode(0)
}

func (t *KdTree) validateNode(idx NodeIndex) bool {
	node := &t.nodes[idx]
	if node.firstPoint+node.numPoints > len(t.pointIndices) {
		return false
	}
	if node.isLeaf {
		return true
	}

	left, right := node.children[0], node.children[1]
	if !left.Valid() || !right.Valid() {
		return false
	}
	leftNode, rightNode := &t.nodes[left], &t.nodes[right]

	if leftNode.firstPoint != node.firstPoint {
		return false
	}
	if leftNode.firstPoint+leftNode.numPoints != rightNode.firstPoint {
		return false
	}
	if rightNode.firstPoint+rightNode.numPoints != node.firstPoint+node.numPoints {
		return false
	}

	return t.validateNode(left) && t.validateNode(right)
}

// NodeCount returns the number of nodes in the arena (0 for an empty tree).
func (t *KdTree) NodeCount() int { return len(t.nodes) }

// PointIndices exposes the current index permutation, mainly for tests.
func (t *KdTree) PointIndices() []int { return t.pointIndices }
