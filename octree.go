package spatial

import "math"

// SplitPoint selects how an octree node's subdivision point is chosen.
type SplitPoint int

const (
	SplitPointCenter SplitPoint = iota
	SplitPointMean
	SplitPointMedian
)

// SplitPolicy configures how each internal octree node picks its split
// point and whether child boxes are tightened to their actual contents.
type SplitPolicy struct {
	SplitPoint     SplitPoint
	TightChildren  bool
	Epsilon        float32
}

type octNode struct {
	bounds       AABB
	firstElement int
	numStraddlers int
	numElements  int
	children     [8]NodeIndex
	isLeaf       bool
}

// Octree is a loose octree over a caller-owned slice of AABBs (an element
// may be a point, i.e. Min == Max). Elements that straddle more than one
// child's box are kept at the
// front of the owning node's span rather than forced down, and subdivision
// stops early if every element would straddle.
type Octree struct {
	nodes           []octNode
	elementIndices  []int
	elementAABBs    []AABB
	splitPolicy     SplitPolicy
	maxPerNode      int
	maxDepth        int
	Properties      *PropertyArena
}

func (p SplitPolicy) splitPointFor(o *Octree, node *octNode) Vec3 {
	fallback := node.bounds.Center()
	switch p.SplitPoint {
	case SplitPointMean:
		return o.computeMeanCenter(node.firstElement, node.numElements, fallback)
	case SplitPointMedian:
		return o.computeMedianCenter(node.firstElement, node.numElements, fallback)
	default:
		return fallback
	}
}

func (o *Octree) computeMeanCenter(first, size int, fallback Vec3) Vec3 {
	if size == 0 {
		return fallback
	}
	var acc Vec3
	for i := 0; i < size; i++ {
		idx := o.elementIndices[first+i]
		acc = acc.Add(o.elementAABBs[idx].Center())
	}
	return acc.Scale(1 / float32(size))
}

func (o *Octree) computeMedianCenter(first, size int, fallback Vec3) Vec3 {
	if size == 0 {
		return fallback
	}
	centers := make([]Vec3, size)
	for i := 0; i < size; i++ {
		centers[i] = o.elementAABBs[o.elementIndices[first+i]].Center()
	}
	medianIdx := size / 2

	kth := func(dim int) float32 {
		idxs := make([]int, size)
		for i := range idxs {
			idxs[i] = i
		}
		nthElementGeneric(idxs, medianIdx, func(i int) float32 { return centers[i].Get(dim) })
		return centers[idxs[medianIdx]].Get(dim)
	}
	return Vec3{kth(0), kth(1), kth(2)}
}

// nthElementGeneric is nthElementByAxis generalized over an arbitrary key
// function instead of positions[idx].Get(axis), used by the octree's
// median split-point selection.
func nthElementGeneric(indices []int, k int, key func(int) float32) {
	lo, hi := 0, len(indices)-1
	for lo < hi {
		pivot := key(indices[(lo+hi)/2])
		i, j := lo, hi
		for i <= j {
			for key(indices[i]) < pivot {
				i++
			}
			for key(indices[j]) > pivot {
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

// Build (re)constructs the octree over aabbs (one per element, points
// represented as Min==Max). Returns false on empty input.
func (o *Octree) Build(aabbs []AABB, policy SplitPolicy, maxPerNode, maxDepth int) bool {
	o.elementAABBs = aabbs
	o.splitPolicy = policy
	o.maxPerNode = maxPerNode
	o.maxDepth = maxDepth

	n := len(aabbs)
	if n == 0 {
		o.nodes = nil
		o.elementIndices = nil
		o.Properties = nil
		return false
	}

	o.elementIndices = make([]int, n)
	for i := range o.elementIndices {
		o.elementIndices[i] = i
	}
	o.nodes = make([]octNode, 0, n*2)
	o.Properties = NewPropertyArena(0)

	root := o.createNode()
	o.nodes[root].firstElement = 0
	o.nodes[root].numElements = n
	o.nodes[root].bounds = boundingAABBOfSpans(aabbs)

	o.subdivide(root, 0)
	return true
}

func boundingAABBOfSpans(aabbs []AABB) AABB {
	box := aabbs[0]
	for _, a := range aabbs[1:] {
		box = box.Merge(a)
	}
	return box
}

func (o *Octree) createNode() NodeIndex {
	o.nodes = append(o.nodes, octNode{isLeaf: true})
	for i := range o.nodes[len(o.nodes)-1].children {
		o.nodes[len(o.nodes)-1].children[i] = InvalidNodeIndex
	}
	o.Properties.Grow(len(o.nodes))
	return NodeIndex(len(o.nodes) - 1)
}

// subdivide partitions a node's element span into up to 8 octants plus a
// straddler prefix, exactly mirroring subdivide_volume's element-assignment
// and index-rearrangement logic.
func (o *Octree) subdivide(nodeIdx NodeIndex, depth int) {
	node := &o.nodes[nodeIdx]

	if depth >= o.maxDepth || node.numElements <= o.maxPerNode {
		node.isLeaf = true
		return
	}

	sp := o.splitPolicy.splitPointFor(o, node)
	for axis := 0; axis < 3; axis++ {
		lo, hi := node.bounds.Min.Get(axis), node.bounds.Max.Get(axis)
		s := sp.Get(axis)
		if s <= lo || s >= hi {
			s = 0.5 * (lo + hi)
		}
		if s == lo {
			s = nextAfter32(s, hi)
		} else if s == hi {
			s = nextAfter32(s, lo)
		}
		sp = sp.Set(axis, s)
	}

	var octantAABBs [8]AABB
	for j := 0; j < 8; j++ {
		childMin := Vec3{pick(j, 0, sp.X, node.bounds.Min.X), pick(j, 1, sp.Y, node.bounds.Min.Y), pick(j, 2, sp.Z, node.bounds.Min.Z)}
		childMax := Vec3{pickInv(j, 0, node.bounds.Max.X, sp.X), pickInv(j, 1, node.bounds.Max.Y, sp.Y), pickInv(j, 2, node.bounds.Max.Z, sp.Z)}
		octantAABBs[j] = AABB{Min: childMin, Max: childMax}
	}

	var childElements [8][]int
	var straddlers []int

	for i := 0; i < node.numElements; i++ {
		elemIdx := o.elementIndices[node.firstElement+i]
		elemAABB := o.elementAABBs[elemIdx]
		foundChild := -1

		if elemAABB.IsPoint() {
			p := elemAABB.Min
			code := 0
			if p.X >= sp.X {
				code |= 1
			}
			if p.Y >= sp.Y {
				code |= 2
			}
			if p.Z >= sp.Z {
				code |= 4
			}
			childElements[code] = append(childElements[code], elemIdx)
			continue
		}

		for j := 0; j < 8; j++ {
			if octantAABBs[j].ContainsAABB(elemAABB) {
				if foundChild == -1 {
					foundChild = j
				} else {
					foundChild = -1
					break
				}
			}
		}

		if foundChild != -1 {
			childElements[foundChild] = append(childElements[foundChild], elemIdx)
			continue
		}

		if o.splitPolicy.TightChildren {
			c := elemAABB.Center()
			code := 0
			if c.X >= sp.X {
				code |= 1
			}
			if c.Y >= sp.Y {
				code |= 2
			}
			if c.Z >= sp.Z {
				code |= 4
			}
			childElements[code] = append(childElements[code], elemIdx)
		} else {
			straddlers = append(straddlers, elemIdx)
		}
	}

	if len(straddlers) == node.numElements {
		node.isLeaf = true
		return
	}

	if len(straddlers) == 0 {
		nonEmpty := 0
		for i := 0; i < 8; i++ {
			if len(childElements[i]) > 0 {
				nonEmpty++
			}
		}
		if nonEmpty == 1 {
			node.isLeaf = true
			return
		}
	}

	currentPos := node.firstElement
	for _, idx := range straddlers {
		o.elementIndices[currentPos] = idx
		currentPos++
	}
	var childStarts [8]int
	for i := 0; i < 8; i++ {
		childStarts[i] = currentPos
		for _, idx := range childElements[i] {
			o.elementIndices[currentPos] = idx
			currentPos++
		}
	}

	node.isLeaf = false
	node.numStraddlers = len(straddlers)

	for i := 0; i < 8; i++ {
		if len(childElements[i]) == 0 {
			continue
		}
		childIdx := o.createNode()
		o.nodes[nodeIdx].children[i] = childIdx

		child := &o.nodes[childIdx]
		child.firstElement = childStarts[i]
		child.numElements = len(childElements[i])

		if o.splitPolicy.TightChildren {
			child.bounds = o.tightChildAABB(childElements[i], o.splitPolicy.Epsilon)
		} else {
			child.bounds = octantAABBs[i]
		}

		o.subdivide(childIdx, depth+1)
	}
}

func pick(j, bit int, splitVal, minVal float32) float32 {
	if j&(1<<uint(bit)) != 0 {
		return splitVal
	}
	return minVal
}

func pickInv(j, bit int, maxVal, splitVal float32) float32 {
	if j&(1<<uint(bit)) != 0 {
		return maxVal
	}
	return splitVal
}

func nextAfter32(from, to float32) float32 {
	return float32(math.Nextafter(float64(from), float64(to)))
}

func (o *Octree) tightChildAABB(elems []int, eps float32) AABB {
	if len(elems) == 0 {
		return AABB{}
	}
	box := o.elementAABBs[elems[0]]
	for _, idx := range elems[1:] {
		box = box.Merge(o.elementAABBs[idx])
	}
	if eps > 0 {
		box = box.Expand(eps)
	}
	return box
}

// QueryAABB appends the index of every element intersecting region,
// short-circuiting into a whole-subtree bulk emit when region strictly
// contains a node's bounds and is itself larger by volume: every element in
// the subtree can then be emitted without a per-element test.
func (o *Octree) QueryAABB(region AABB, result []int) []int {
	result = result[:0]
	if len(o.nodes) == 0 {
		return result
	}
	queryVolume := region.Volume()

	stack := acquireIntStack()
	defer func() { releaseIntStack(stack) }()
	stack = append(stack, 0)

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &o.nodes[idx]

		if !node.bounds.IntersectsAABB(region) {
			continue
		}

		nodeVolume := node.bounds.Volume()
		if queryVolume > nodeVolume && region.ContainsAABB(node.bounds) {
			for i := 0; i < node.numElements; i++ {
				result = append(result, o.elementIndices[node.firstElement+i])
			}
			continue
		}

		if node.isLeaf {
			for i := 0; i < node.numElements; i++ {
				ei := o.elementIndices[node.firstElement+i]
				if o.elementAABBs[ei].IntersectsAABB(region) {
					result = append(result, ei)
				}
			}
			continue
		}

		for i := 0; i < node.numStraddlers; i++ {
			ei := o.elementIndices[node.firstElement+i]
			if o.elementAABBs[ei].IntersectsAABB(region) {
				result = append(result, ei)
			}
		}
		for _, c := range node.children {
			if c.Valid() && o.nodes[c].bounds.IntersectsAABB(region) {
				stack = append(stack, int(c))
			}
		}
	}
	return result
}

// QuerySphere appends the index of every element intersecting querySphere,
// with the same bulk-emit fast path as QueryAABB.
func (o *Octree) QuerySphere(querySphere Sphere, result []int) []int {
	result = result[:0]
	if len(o.nodes) == 0 {
		return result
	}
	queryVolume := querySphere.Volume()

	stack := acquireIntStack()
	defer func() { releaseIntStack(stack) }()
	stack = append(stack, 0)

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &o.nodes[idx]

		if !node.bounds.IntersectsSphere(querySphere) {
			continue
		}

		nodeVolume := node.bounds.Volume()
		if queryVolume > nodeVolume && querySphere.ContainsAABB(node.bounds) {
			for i := 0; i < node.numElements; i++ {
				result = append(result, o.elementIndices[node.firstElement+i])
			}
			continue
		}

		if node.isLeaf {
			for i := 0; i < node.numElements; i++ {
				ei := o.elementIndices[node.firstElement+i]
				if o.elementAABBs[ei].IntersectsSphere(querySphere) {
					result = append(result, ei)
				}
			}
			continue
		}

		for i := 0; i < node.numStraddlers; i++ {
			ei := o.elementIndices[node.firstElement+i]
			if o.elementAABBs[ei].IntersectsSphere(querySphere) {
				result = append(result, ei)
			}
		}
		for _, c := range node.children {
			if c.Valid() && o.nodes[c].bounds.IntersectsSphere(querySphere) {
				stack = append(stack, int(c))
			}
		}
	}
	return result
}

// QueryKNN returns the indices of the k elements whose AABB is closest to
// queryPoint, nearest first, scoring straddlers at every internal node and
// descending into children best-first.
func (o *Octree) QueryKNN(queryPoint Vec3, k int) []int {
	if len(o.nodes) == 0 || k == 0 {
		return nil
	}

	bounded := NewBoundedHeap[ScoredIndex](k)
	pq := newTraversalQueue()
	pq.push(float32(o.nodes[0].bounds.SquaredDistance(queryPoint)), 0)

	tau := float32(math.Inf(1))
	updateTau := func() {
		if bounded.Size() == k {
			worst, _ := bounded.Top()
			tau = worst.Dist
		}
	}

	scoreElement := func(ei int) {
		dist := float32(o.elementAABBs[ei].SquaredDistance(queryPoint))
		candidate := ScoredIndex{Dist: dist, Index: ei}
		if worst, _ := bounded.Top(); bounded.Size() < k || candidate.Less(worst) {
			bounded.Push(candidate)
			updateTau()
		}
	}

	for {
		item, ok := pq.pop()
		if !ok {
			break
		}
		if bounded.Size() == k && item.dist >= tau {
			break
		}

		node := &o.nodes[item.node]
		if node.isLeaf {
			for i := 0; i < node.numElements; i++ {
				scoreElement(o.elementIndices[node.firstElement+i])
			}
			continue
		}
		for i := 0; i < node.numStraddlers; i++ {
			scoreElement(o.elementIndices[node.firstElement+i])
		}
		for _, c := range node.children {
			if !c.Valid() {
				continue
			}
			cd := float32(o.nodes[c].bounds.SquaredDistance(queryPoint))
			if cd < tau {
				pq.push(cd, c)
			}
		}
	}

	sorted := bounded.Sorted()
	out := make([]int, len(sorted))
	for i, s := range sorted {
		out[i] = s.Index
	}
	return out
}

// QueryNearest returns the index of the element whose AABB is closest to
// queryPoint, or (-1, false) on an empty tree.
func (o *Octree) QueryNearest(queryPoint Vec3) (int, bool) {
	if len(o.nodes) == 0 {
		return -1, false
	}

	minDistSq := math.Inf(1)
	result := -1

	pq := newTraversalQueue()
	pq.push(float32(o.nodes[0].bounds.SquaredDistance(queryPoint)), 0)

	for {
		item, ok := pq.pop()
		if !ok {
			break
		}
		if float64(item.dist) >= minDistSq {
			break
		}

		node := &o.nodes[item.node]
		scoreAt := func(ei int) {
			d := o.elementAABBs[ei].SquaredDistance(queryPoint)
			if d < minDistSq {
				minDistSq = d
				result = ei
			}
		}

		if node.isLeaf {
			for i := 0; i < node.numElements; i++ {
				scoreAt(o.elementIndices[node.firstElement+i])
			}
			continue
		}
		for i := 0; i < node.numStraddlers; i++ {
			scoreAt(o.elementIndices[node.firstElement+i])
		}
		for _, c := range node.children {
			if !c.Valid() {
				continue
			}
			cd := o.nodes[c].bounds.SquaredDistance(queryPoint)
			if cd < minDistSq {
				pq.push(float32(cd), c)
			}
		}
	}

	if result < 0 {
		return -1, false
	}
	return result, true
}

// ValidateStructure checks the straddler/children span-partition invariant
// across every node.
func (o *Octree) ValidateStructure() bool {
	if len(o.nodes) == 0 {
		return len(o.elementIndices) == 0
	}
	return o.validateNode(0)
}

func (o *Octree) validateNode(idx NodeIndex) bool {
	node := &o.nodes[idx]
	if node.firstElement > len(o.elementIndices) {
		return false
	}
	if node.firstElement+node.numElements > len(o.elementIndices) {
		return false
	}

	if node.isLeaf {
		return node.numStraddlers == 0
	}

	accumulated := node.firstElement + node.numStraddlers
	childTotal := 0
	for _, c := range node.children {
		if !c.Valid() {
			continue
		}
		child := &o.nodes[c]
		if child.firstElement != accumulated {
			return false
		}
		if child.numElements == 0 {
			return false
		}
		if child.firstElement+child.numElements > node.firstElement+node.numElements {
			return false
		}
		if !o.validateNode(c) {
			return false
		}
		accumulated += child.numElements
		childTotal += child.numElements
	}

	return accumulated == node.firstElement+node.numElements &&
		childTotal+node.numStraddlers == node.numElements
}

// NodeCount returns the number of nodes in the arena (0 for an empty tree).
func (o *Octree) NodeCount() int { return len(o.nodes) }

// ElementIndices exposes the current index permutation, mainly for tests.
func (o *Octree) ElementIndices() []int { return o.elementIndices }
