package spatial

import "math"

// Ellipsoid is a solid ellipsoid: center, three principal radii and an
// orthonormal orientation.
type Ellipsoid struct {
	Center      Vec3
	Radii       Vec3 // principal semi-axes, >= 0
	Orientation Mat3
}

func NewEllipsoid(center, radii Vec3) Ellipsoid {
	return Ellipsoid{Center: center, Radii: radii, Orientation: Identity3()}
}

// NewEllipsoidFromQuaternion builds an ellipsoid oriented by q, for callers
// carrying orientation as a rotation rather than a raw basis matrix.
func NewEllipsoidFromQuaternion(center, radii Vec3, q Quaternion) Ellipsoid {
	return Ellipsoid{Center: center, Radii: radii, Orientation: q.Normalize().ToMat3()}
}

func (e Ellipsoid) Volume() float32 {
	return float32(4.0 / 3.0 * math.Pi * float64(e.Radii.X) * float64(e.Radii.Y) * float64(e.Radii.Z))
}

func (e Ellipsoid) toLocal(p Vec3) Vec3 {
	return e.Orientation.Transpose().MulVec3(p.Sub(e.Center))
}

func (e Ellipsoid) fromLocal(p Vec3) Vec3 {
	return e.Center.Add(e.Orientation.MulVec3(p))
}

func (e Ellipsoid) ContainsPoint(p Vec3) bool {
	local := e.toLocal(p)
	rx, ry, rz := float64(e.Radii.X), float64(e.Radii.Y), float64(e.Radii.Z)
	if rx <= 0 || ry <= 0 || rz <= 0 {
		return local == Vec3{}
	}
	x, y, z := float64(local.X)/rx, float64(local.Y)/ry, float64(local.Z)/rz
	return x*x+y*y+z*z <= 1.0
}

// ClosestPoint finds the nearest point on/in the ellipsoid surface to p using
// a bounded Newton iteration on the Lagrange multiplier lambda >= 0 (<=32
// iterations, stopping when |f(lambda)| <= 1e-7 or |delta lambda| <= 1e-7).
// Performed in float64 for numerical stability of the iteration.
func (e Ellipsoid) ClosestPoint(p Vec3) Vec3 {
	local := e.toLocal(p)

	a := [3]float64{float64(e.Radii.X), float64(e.Radii.Y), float64(e.Radii.Z)}
	y := [3]float64{float64(local.X), float64(local.Y), float64(local.Z)}

	if e.containsLocal(y, a) {
		return p
	}

	lambda := 0.0
	for iter := 0; iter < 32; iter++ {
		f := 0.0
		fp := 0.0
		for i := 0; i < 3; i++ {
			if a[i] <= 0 {
				continue
			}
			denom := a[i]*a[i] + lambda
			term := a[i] * y[i] / denom
			f += term * term
			fp += -2 * a[i] * a[i] * y[i] * y[i] / (denom * denom * denom)
		}
		f -= 1.0
		if math.Abs(f) <= 1e-7 || fp == 0 {
			break
		}
		delta := f / fp
		lambda -= delta
		if lambda < 0 {
			lambda = 0
		}
		if math.Abs(delta) <= 1e-7 {
			break
		}
	}

	var x [3]float64
	for i := 0; i < 3; i++ {
		if a[i] <= 0 {
			x[i] = 0
			continue
		}
		x[i] = a[i] * a[i] * y[i] / (a[i]*a[i] + lambda)
	}

	localClosest := Vec3{float32(x[0]), float32(x[1]), float32(x[2])}
	return e.fromLocal(localClosest)
}

func (e Ellipsoid) containsLocal(y [3]float64, a [3]float64) bool {
	sum := 0.0
	for i := 0; i < 3; i++ {
		if a[i] <= 0 {
			if y[i] != 0 {
				return false
			}
			continue
		}
		v := y[i] / a[i]
		sum += v * v
	}
	return sum <= 1.0
}

func (e Ellipsoid) SquaredDistance(p Vec3) float64 {
	if e.ContainsPoint(p) {
		return 0
	}
	cp := e.ClosestPoint(p)
	return float64(DistanceSquared(cp, p))
}

// BoundingAABB returns the tight axis-aligned box around the oriented
// ellipsoid.
func (e Ellipsoid) BoundingAABB() AABB {
	// The world-space half-extent along axis k is sqrt(sum_i (R[k][i]*radii[i])^2).
	var halfExtent Vec3
	for k := 0; k < 3; k++ {
		sum := float64(0)
		for i := 0; i < 3; i++ {
			v := float64(e.Orientation.At(k, i)) * float64(e.Radii.Get(i))
			sum += v * v
		}
		halfExtent = halfExtent.Set(k, float32(math.Sqrt(sum)))
	}
	return AABB{Min: e.Center.Sub(halfExtent), Max: e.Center.Add(halfExtent)}
}
