package spatial

import "testing"

func benchPositions(n int) []Vec3 {
	positions := make([]Vec3, n)
	for i := range positions {
		positions[i] = Vec3{
			float32(i*7%101) * 0.37,
			float32(i*13%97) * 0.41,
			float32(i*29%89) * 0.53,
		}
	}
	return positions
}

func BenchmarkKdTreeBuild(b *testing.B) {
	positions := benchPositions(5000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var tree KdTree
		tree.Build(positions, 8, 24)
	}
}

func BenchmarkKdTreeQueryKNN(b *testing.B) {
	positions := benchPositions(5000)
	var tree KdTree
	tree.Build(positions, 8, 24)
	query := Vec3{10, 10, 10}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res := tree.QueryKNN(query, 16)
		if len(res) == 0 {
			b.Fatal("expected non-empty result")
		}
	}
}

func BenchmarkKdTreeQueryRadius(b *testing.B) {
	positions := benchPositions(5000)
	var tree KdTree
	tree.Build(positions, 8, 24)
	query := Vec3{10, 10, 10}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.QueryRadius(query, 5, nil)
	}
}
