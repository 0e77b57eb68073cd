package spatial

import "math"

// Triangle is an ordered 3-vertex triangle, stripped of rendering-only
// fields (material,
// explicit normal override, legacy char tag).
type Triangle struct {
	A, B, C Vec3
}

// IsDegenerate reports whether the triangle's area is effectively zero,
// via |cross(b-a, c-a)|^2 <= epsilon.
func (t Triangle) IsDegenerate() bool {
	e1 := t.B.Sub(t.A)
	e2 := t.C.Sub(t.A)
	return Cross(e1, e2).LengthSquared() <= IntersectionEpsilon
}

func (t Triangle) Center() Vec3 {
	return t.A.Add(t.B).Add(t.C).Scale(1.0 / 3.0)
}

// Normal returns the (non-unit-length-guaranteed on degenerate input, but
// normalized otherwise) face normal via the right-hand rule over (b-a, c-a).
func (t Triangle) Normal() Vec3 {
	e1 := t.B.Sub(t.A)
	e2 := t.C.Sub(t.A)
	return Cross(e1, e2).Normalize()
}

func (t Triangle) Area() float32 {
	e1 := t.B.Sub(t.A)
	e2 := t.C.Sub(t.A)
	return Cross(e1, e2).Length() * 0.5
}

func (t Triangle) BoundingAABB() AABB {
	box := AABB{Min: t.A, Max: t.A}
	box = box.MergePoint(t.B)
	box = box.MergePoint(t.C)
	return box
}

// closestPointOnSegment returns the closest point to p on segment [a,b],
// used both by Segment.ClosestPoint and as the degenerate-triangle fallback.
func closestPointOnSegment(a, b, p Vec3) Vec3 {
	ab := b.Sub(a)
	lenSq := ab.LengthSquared()
	if lenSq <= IntersectionEpsilon {
		return a
	}
	t := clampF32(Dot(p.Sub(a), ab)/lenSq, 0, 1)
	return a.Add(ab.Scale(t))
}

// ClosestPoint returns the closest point on the (solid, filled) triangle to
// p, via barycentric region tests. Degenerate triangles fall back to the
// closest point among their three edges.
func (t Triangle) ClosestPoint(p Vec3) Vec3 {
	if t.IsDegenerate() {
		best := closestPointOnSegment(t.A, t.B, p)
		bestDist := DistanceSquared(best, p)
		for _, cand := range [2]Vec3{closestPointOnSegment(t.B, t.C, p), closestPointOnSegment(t.C, t.A, p)} {
			if d := DistanceSquared(cand, p); d < bestDist {
				best, bestDist = cand, d
			}
		}
		return best
	}

	ab := t.B.Sub(t.A)
	ac := t.C.Sub(t.A)
	ap := p.Sub(t.A)

	d1 := Dot(ab, ap)
	d2 := Dot(ac, ap)
	if d1 <= 0 && d2 <= 0 {
		return t.A
	}

	bp := p.Sub(t.B)
	d3 := Dot(ab, bp)
	d4 := Dot(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		return t.B
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return t.A.Add(ab.Scale(v))
	}

	cp := p.Sub(t.C)
	d5 := Dot(ab, cp)
	d6 := Dot(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		return t.C
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return t.A.Add(ac.Scale(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return t.B.Add(t.C.Sub(t.B).Scale(w))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return t.A.Add(ab.Scale(v)).Add(ac.Scale(w))
}

func (t Triangle) SquaredDistance(p Vec3) float64 {
	return float64(DistanceSquared(t.ClosestPoint(p), p))
}

// IntersectsRay implements the Möller–Trumbore algorithm with a 1e-4
// tolerance on barycentric bounds, as specified for ray-vs-triangle.
func (t Triangle) IntersectsRay(r Ray) Result {
	const barycentricTolerance = 1e-4

	edge1 := t.B.Sub(t.A)
	edge2 := t.C.Sub(t.A)
	h := Cross(r.Direction, edge2)
	a := Dot(edge1, h)
	if math.Abs(float64(a)) < IntersectionEpsilon {
		return MissResult()
	}

	f := 1 / a
	s := r.Origin.Sub(t.A)
	u := f * Dot(s, h)
	if u < -barycentricTolerance || u > 1+barycentricTolerance {
		return MissResult()
	}

	q := Cross(s, edge1)
	v := f * Dot(r.Direction, q)
	if v < -barycentricTolerance || u+v > 1+barycentricTolerance {
		return MissResult()
	}

	tHit := f * Dot(edge2, q)
	if tHit < 0 {
		return MissResult()
	}
	return HitResult(tHit)
}
