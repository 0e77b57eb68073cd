package spatial

import "testing"

func benchAABBs(n int) []AABB {
	boxes := make([]AABB, n)
	for i := range boxes {
		c := Vec3{
			float32(i*7%101) * 0.37,
			float32(i*13%97) * 0.41,
			float32(i*29%89) * 0.53,
		}
		boxes[i] = MakeAABBFromCenterExtent(c, Vec3{0.25, 0.25, 0.25})
	}
	return boxes
}

func BenchmarkOctreeBuild(b *testing.B) {
	boxes := benchAABBs(5000)
	policy := SplitPolicy{SplitPoint: SplitPointMedian, TightChildren: true}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var tree Octree
		tree.Build(boxes, policy, 8, 24)
	}
}

func BenchmarkOctreeQueryAABB(b *testing.B) {
	boxes := benchAABBs(5000)
	policy := SplitPolicy{SplitPoint: SplitPointMedian, TightChildren: true}
	var tree Octree
	tree.Build(boxes, policy, 8, 24)
	region := AABB{Min: Vec3{5, 5, 5}, Max: Vec3{15, 15, 15}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.QueryAABB(region, nil)
	}
}

func BenchmarkOctreeQueryKNN(b *testing.B) {
	boxes := benchAABBs(5000)
	policy := SplitPolicy{SplitPoint: SplitPointMedian, TightChildren: true}
	var tree Octree
	tree.Build(boxes, policy, 8, 24)
	query := Vec3{10, 10, 10}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res := tree.QueryKNN(query, 16)
		if len(res) == 0 {
			b.Fatal("expected non-empty result")
		}
	}
}
