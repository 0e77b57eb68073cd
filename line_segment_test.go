package spatial

import "testing"

func TestLineProjectPoint(t *testing.T) {
	line := NewLine(Vec3{0, 0, 0}, Vec3{1, 0, 0})

	cp := line.ProjectPoint(Vec3{5, 3, 0})
	if cp != (Vec3{5, 0, 0}) {
		t.Errorf("expected (5,0,0), got %v", cp)
	}

	degenerate := Line{Point: Vec3{1, 1, 1}, Direction: Vec3{}}
	p := Vec3{9, 9, 9}
	if degenerate.ProjectPoint(p) != p {
		t.Errorf("expected degenerate line to return input point unchanged, got %v", degenerate.ProjectPoint(p))
	}
}

func TestClosestParamsBetweenLinesSkew(t *testing.T) {
	s, tParam, ok := closestParamsBetweenLines(
		Vec3{0, 0, 0}, Vec3{1, 0, 0},
		Vec3{0, 0, 1}, Vec3{0, 1, 0},
	)
	if !ok {
		t.Fatal("expected skew lines to report ok=true")
	}
	if s != 0 || tParam != 0 {
		t.Errorf("expected closest params (0,0) for these perpendicular skew lines, got (%v, %v)", s, tParam)
	}
}

func TestClosestParamsBetweenLinesParallel(t *testing.T) {
	_, _, ok := closestParamsBetweenLines(
		Vec3{0, 0, 0}, Vec3{1, 0, 0},
		Vec3{0, 1, 0}, Vec3{1, 0, 0},
	)
	if ok {
		t.Error("expected parallel lines to report ok=false")
	}
}

func TestSegmentClosestPoint(t *testing.T) {
	seg := NewSegment(Vec3{0, 0, 0}, Vec3{10, 0, 0})

	// Perpendicular from a point above the segment's midpoint.
	cp := seg.ClosestPoint(Vec3{5, 3, 0})
	if cp != (Vec3{5, 0, 0}) {
		t.Errorf("expected (5,0,0), got %v", cp)
	}

	// A point beyond the end clamps to the endpoint.
	cp = seg.ClosestPoint(Vec3{20, 0, 0})
	if cp != (Vec3{10, 0, 0}) {
		t.Errorf("expected clamp to end (10,0,0), got %v", cp)
	}

	cp = seg.ClosestPoint(Vec3{-5, 0, 0})
	if cp != (Vec3{0, 0, 0}) {
		t.Errorf("expected clamp to start (0,0,0), got %v", cp)
	}
}

func TestSegmentBoundingAABB(t *testing.T) {
	seg := NewSegment(Vec3{3, -1, 0}, Vec3{-2, 5, 1})
	box := seg.BoundingAABB()
	if box.Min != (Vec3{-2, -1, 0}) || box.Max != (Vec3{3, 5, 1}) {
		t.Errorf("unexpected bounding box %v", box)
	}
}
