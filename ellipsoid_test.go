package spatial

import "testing"

func TestEllipsoidContainsPoint(t *testing.T) {
	ell := NewEllipsoid(Vec3{0, 0, 0}, Vec3{2, 1, 1})

	if !ell.ContainsPoint(Vec3{0, 0, 0}) {
		t.Error("expected center to be contained")
	}
	if !ell.ContainsPoint(Vec3{1.9, 0, 0}) {
		t.Error("expected point just inside the long axis to be contained")
	}
	if ell.ContainsPoint(Vec3{0, 1.1, 0}) {
		t.Error("expected point beyond the short axis to not be contained")
	}
}

func TestEllipsoidClosestPointOnSphere(t *testing.T) {
	// A sphere is a degenerate ellipsoid; closest point is the simple radial
	// projection, useful as a sanity check on the Newton iteration.
	ell := NewEllipsoid(Vec3{0, 0, 0}, Vec3{1, 1, 1})

	cp := ell.ClosestPoint(Vec3{5, 0, 0})
	want := Vec3{1, 0, 0}
	if DistanceSquared(cp, want) > 1e-6 {
		t.Errorf("expected closest point near %v, got %v", want, cp)
	}

	inside := Vec3{0.3, 0.3, 0.3}
	if ell.ClosestPoint(inside) != inside {
		t.Errorf("expected interior point returned unchanged, got %v", ell.ClosestPoint(inside))
	}
}

func TestEllipsoidClosestPointAnisotropic(t *testing.T) {
	ell := NewEllipsoid(Vec3{0, 0, 0}, Vec3{2, 1, 1})
	cp := ell.ClosestPoint(Vec3{0, 5, 0})

	// The nearest surface point along the short Y axis should land at y=1.
	if diff := cp.Y - 1; diff > 1e-3 || diff < -1e-3 {
		t.Errorf("expected closest point at y=1, got %v", cp)
	}
	if !ell.ContainsPoint(cp) {
		t.Error("expected the closest surface point to satisfy the containment test (boundary case)")
	}
}

func TestEllipsoidVolume(t *testing.T) {
	ell := NewEllipsoid(Vec3{0, 0, 0}, Vec3{1, 1, 1})
	want := float32(4.0 / 3.0 * 3.14159265)
	if diff := ell.Volume() - want; diff > 1e-3 || diff < -1e-3 {
		t.Errorf("expected unit-sphere volume ~%v, got %v", want, ell.Volume())
	}
}

func TestEllipsoidBoundingAABBAxisAligned(t *testing.T) {
	ell := NewEllipsoid(Vec3{1, 2, 3}, Vec3{2, 1, 0.5})
	box := ell.BoundingAABB()

	want := AABB{Min: Vec3{-1, 1, 2.5}, Max: Vec3{3, 3, 3.5}}
	if box.Min != want.Min || box.Max != want.Max {
		t.Errorf("expected axis-aligned bounding box %v, got %v", want, box)
	}
}

func TestEllipsoidFromQuaternion(t *testing.T) {
	q := QuaternionFromAxisAngle(Vec3{0, 0, 1}, 1.5707963267948966) // 90 degrees about Z
	ell := NewEllipsoidFromQuaternion(Vec3{}, Vec3{2, 1, 1}, q)

	// Rotating the local +X axis by 90 degrees about +Z should land close to +Y.
	worldX := ell.Orientation.Col(0)
	if worldX.Y < 0.9 || absF32(worldX.X) > 0.2 {
		t.Errorf("expected local X axis rotated toward +Y, got %v", worldX)
	}
}

func TestEllipsoidSquaredDistance(t *testing.T) {
	ell := NewEllipsoid(Vec3{0, 0, 0}, Vec3{1, 1, 1})
	if d := ell.SquaredDistance(Vec3{0, 0, 0}); d != 0 {
		t.Errorf("expected 0 distance for interior point, got %v", d)
	}
	if d := ell.SquaredDistance(Vec3{2, 0, 0}); d <= 0 {
		t.Errorf("expected positive distance for exterior point, got %v", d)
	}
}
