package spatial

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOctreeBuild(t *testing.T) {
	t.Run("EmptyInputReturnsFalse", func(t *testing.T) {
		var tree Octree
		policy := SplitPolicy{SplitPoint: SplitPointCenter}
		if tree.Build(nil, policy, 4, 8) {
			t.Error("expected Build on empty input to return false")
		}
		if tree.NodeCount() != 0 {
			t.Errorf("expected empty tree, got %d nodes", tree.NodeCount())
		}
	})

	t.Run("ValidatesAfterBuild", func(t *testing.T) {
		var tree Octree
		boxes := make([]AABB, 64)
		for i := range boxes {
			c := Vec3{float32(i % 4), float32((i / 4) % 4), float32(i / 16)}
			boxes[i] = MakeAABBFromCenterExtent(c, Vec3{0.1, 0.1, 0.1})
		}
		policy := SplitPolicy{SplitPoint: SplitPointCenter}
		require.True(t, tree.Build(boxes, policy, 4, 8))
		if !tree.ValidateStructure() {
			t.Error("expected valid octree structure")
		}
	})
}

// latticeCubeAABBs builds 27 unit cubes centered at integer lattice points
// in [0,2]^3, per the straddler-range scenario.
func latticeCubeAABBs() []AABB {
	var boxes []AABB
	for x := 0; x <= 2; x++ {
		for y := 0; y <= 2; y++ {
			for z := 0; z <= 2; z++ {
				c := Vec3{float32(x), float32(y), float32(z)}
				boxes = append(boxes, MakeAABBFromCenterExtent(c, Vec3{0.5, 0.5, 0.5}))
			}
		}
	}
	return boxes
}

func bruteForceAABBIntersect(boxes []AABB, region AABB) []int {
	var out []int
	for i, b := range boxes {
		if b.IntersectsAABB(region) {
			out = append(out, i)
		}
	}
	return out
}

func TestOctreeQueryAABBMatchesBruteForce(t *testing.T) {
	boxes := latticeCubeAABBs()
	var tree Octree
	policy := SplitPolicy{SplitPoint: SplitPointCenter, TightChildren: false}
	require.True(t, tree.Build(boxes, policy, 4, 8))

	region := AABB{Min: Vec3{0.4, 0.4, 0.4}, Max: Vec3{0.6, 0.6, 0.6}}
	got := tree.QueryAABB(region, nil)
	want := bruteForceAABBIntersect(boxes, region)

	gotSet := make(map[int]bool, len(got))
	for _, i := range got {
		gotSet[i] = true
	}
	for _, i := range want {
		if !gotSet[i] {
			t.Errorf("brute-force index %d missing from octree result %v", i, got)
		}
	}
	if len(got) != len(want) {
		t.Errorf("expected %d indices (brute force %v), got %d: %v", len(want), want, len(got), got)
	}
	// The center cube at (1,1,1) must always be present.
	centerIdx := 13 // 3*3*1 + 3*1 + 1 = zero-based index in x,y,z nested-loop order
	found := false
	for _, i := range got {
		if i == centerIdx {
			found = true
		}
	}
	if !found {
		t.Errorf("expected center cube index %d in result %v", centerIdx, got)
	}
}

func TestOctreeQuerySphere(t *testing.T) {
	boxes := latticeCubeAABBs()
	var tree Octree
	policy := SplitPolicy{SplitPoint: SplitPointCenter}
	require.True(t, tree.Build(boxes, policy, 4, 8))

	sphere := Sphere{Center: Vec3{1, 1, 1}, Radius: 0.6}
	got := tree.QuerySphere(sphere, nil)

	var want []int
	for i, b := range boxes {
		if b.IntersectsSphere(sphere) {
			want = append(want, i)
		}
	}
	if len(got) < len(want) {
		t.Errorf("expected at least the brute-force intersecting set (%d), got %d", len(want), len(got))
	}
}

func disjointCubesOnAxis() []AABB {
	var boxes []AABB
	for i := 0; i < 5; i++ {
		c := Vec3{float32(i * 4), 0, 0}
		boxes = append(boxes, MakeAABBFromCenterExtent(c, Vec3{0.5, 0.5, 0.5}))
	}
	return boxes
}

func TestOctreeQueryKNN(t *testing.T) {
	boxes := disjointCubesOnAxis()
	var tree Octree
	policy := SplitPolicy{SplitPoint: SplitPointCenter}
	require.True(t, tree.Build(boxes, policy, 1, 8))

	// Cube faces nearest (9,0,0): index 2 (center x=8) at squared distance
	// 0.25, then index 3 (center x=12) at squared distance 6.25.
	result := tree.QueryKNN(Vec3{9, 0, 0}, 2)
	require.Len(t, result, 2)
	if result[0] != 2 || result[1] != 3 {
		t.Errorf("expected [2 3], got %v", result)
	}
}

func TestOctreeQueryKNNTieBreaksOnIndex(t *testing.T) {
	// Four unit boxes equidistant from the origin; the bounded heap must
	// retain the two lowest indices among ties rather than whichever
	// traversal happens to visit first.
	boxes := []AABB{
		MakeAABBFromCenterExtent(Vec3{5, 0, 0}, Vec3{0.5, 0.5, 0.5}),
		MakeAABBFromCenterExtent(Vec3{-5, 0, 0}, Vec3{0.5, 0.5, 0.5}),
		MakeAABBFromCenterExtent(Vec3{0, 5, 0}, Vec3{0.5, 0.5, 0.5}),
		MakeAABBFromCenterExtent(Vec3{0, -5, 0}, Vec3{0.5, 0.5, 0.5}),
	}
	var tree Octree
	policy := SplitPolicy{SplitPoint: SplitPointCenter}
	require.True(t, tree.Build(boxes, policy, 1, 8))

	result := tree.QueryKNN(Vec3{0, 0, 0}, 2)
	require.Len(t, result, 2)
	if result[0] != 0 || result[1] != 1 {
		t.Errorf("expected the lowest-index pair [0 1] among ties, got %v", result)
	}
}

func TestOctreeQueryNearestMatchesKNNOne(t *testing.T) {
	boxes := disjointCubesOnAxis()
	var tree Octree
	policy := SplitPolicy{SplitPoint: SplitPointCenter}
	require.True(t, tree.Build(boxes, policy, 1, 8))

	nearest, ok := tree.QueryNearest(Vec3{9, 0, 0})
	require.True(t, ok)

	knn := tree.QueryKNN(Vec3{9, 0, 0}, 1)
	require.Len(t, knn, 1)
	if nearest != knn[0] {
		t.Errorf("QueryNearest (%d) disagrees with QueryKNN(k=1) (%d)", nearest, knn[0])
	}
}

func TestOctreeQueryOnEmptyTree(t *testing.T) {
	var tree Octree
	if result := tree.QueryAABB(AABB{}, nil); len(result) != 0 {
		t.Errorf("expected empty result on empty tree, got %v", result)
	}
	if _, ok := tree.QueryNearest(Vec3{}); ok {
		t.Error("expected ok=false for QueryNearest on empty tree")
	}
}

func TestOctreePartitionCompleteness(t *testing.T) {
	boxes := make([]AABB, 200)
	for i := range boxes {
		c := Vec3{float32(i*7%23) * 0.3, float32(i*13%17) * 0.3, float32(i*3%11) * 0.3}
		boxes[i] = MakeAABBFromCenterExtent(c, Vec3{0.2, 0.2, 0.2})
	}
	var tree Octree
	policy := SplitPolicy{SplitPoint: SplitPointMedian, TightChildren: true, Epsilon: 0.01}
	require.True(t, tree.Build(boxes, policy, 4, 10))
	if !tree.ValidateStructure() {
		t.Fatal("expected span-partition invariant to hold across the whole tree")
	}
	if got := len(tree.ElementIndices()); got != len(boxes) {
		t.Errorf("expected permutation of length %d, got %d", len(boxes), got)
	}
}

func TestOctreeMeanSplitPolicy(t *testing.T) {
	boxes := latticeCubeAABBs()
	var tree Octree
	policy := SplitPolicy{SplitPoint: SplitPointMean}
	require.True(t, tree.Build(boxes, policy, 4, 8))
	if !tree.ValidateStructure() {
		t.Error("expected valid structure under Mean split policy")
	}
}
