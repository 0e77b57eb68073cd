package spatial

import "sync"

// scratchIntSlicePool recycles []int buffers used as traversal stacks
// across independent query calls on possibly many different
// trees, using a package-level sync.Pool of reusable slices sized for the
// node-index stacks this package's DFS traversals use.
var scratchIntSlicePool = sync.Pool{
	New: func() interface{} {
		s := make([]int, 0, 64)
		return &s
	},
}

// acquireIntStack borrows a zero-length []int with spare capacity.
func acquireIntStack() []int {
	p := scratchIntSlicePool.Get().(*[]int)
	return (*p)[:0]
}

// releaseIntStack returns a []int to the pool for reuse by a later query.
func releaseIntStack(s []int) {
	s = s[:0]
	scratchIntSlicePool.Put(&s)
}
