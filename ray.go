package spatial

import "math"

// Ray is a half-line: origin plus a unit-length direction, t >= 0.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

func (r Ray) PointAt(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

func (r Ray) ProjectPoint(p Vec3) Vec3 {
	if r.Direction.LengthSquared() <= IntersectionEpsilon {
		return p
	}
	t := Dot(p.Sub(r.Origin), r.Direction)
	if t < 0 {
		t = 0
	}
	return r.PointAt(t)
}

func (r Ray) ClosestPoint(p Vec3) Vec3 {
	return r.ProjectPoint(p)
}

func (r Ray) SquaredDistance(p Vec3) float64 {
	return float64(DistanceSquared(r.ProjectPoint(p), p))
}

// IntersectsAABB implements the slab test with an infinity-safe branch for
// near-zero direction components.
func (r Ray) IntersectsAABB(box AABB) Result {
	tMin := float32(math.Inf(-1))
	tMax := float32(math.Inf(1))

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	bmin := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	bmax := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	for i := 0; i < 3; i++ {
		if absF32(dir[i]) < SeparationEpsilon {
			if origin[i] < bmin[i] || origin[i] > bmax[i] {
				return MissResult()
			}
			continue
		}
		t1 := (bmin[i] - origin[i]) / dir[i]
		t2 := (bmax[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return MissResult()
		}
	}

	if tMax < 0 {
		return MissResult()
	}
	if tMin < 0 {
		return HitResult(tMax)
	}
	return SpanResult(tMin, tMax)
}

func (r Ray) IntersectsSphere(s Sphere) Result {
	oc := r.Origin.Sub(s.Center)
	b := Dot(oc, r.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return MissResult()
	}
	sq := float32(math.Sqrt(float64(disc)))
	t1, t2 := -b-sq, -b+sq
	if t2 < 0 {
		return MissResult()
	}
	if t1 < 0 {
		return HitResult(t2)
	}
	return SpanResult(t1, t2)
}

func (r Ray) IntersectsTriangle(t Triangle) Result {
	return t.IntersectsRay(r)
}
