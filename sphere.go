package spatial

import "math"

// Sphere is a bounding sphere: center plus a non-negative radius.
type Sphere struct {
	Center Vec3
	Radius float32
}

// NewBoundingSphereFromPoints computes a simple center+max-distance bounding
// sphere.
func NewBoundingSphereFromPoints(points []Vec3) Sphere {
	if len(points) == 0 {
		return Sphere{}
	}
	var center Vec3
	for _, p := range points {
		center = center.Add(p)
	}
	center = center.Scale(1 / float32(len(points)))

	maxDistSq := float32(0)
	for _, p := range points {
		d := p.Sub(center).LengthSquared()
		if d > maxDistSq {
			maxDistSq = d
		}
	}
	return Sphere{Center: center, Radius: float32(math.Sqrt(float64(maxDistSq)))}
}

func (s Sphere) ContainsPoint(p Vec3) bool {
	return DistanceSquared(s.Center, p) <= s.Radius*s.Radius
}

func (s Sphere) ContainsSphere(inner Sphere) bool {
	d := s.Center.Sub(inner.Center).Length()
	return d+inner.Radius <= s.Radius
}

func (s Sphere) IntersectsSphere(o Sphere) bool {
	rs := s.Radius + o.Radius
	return DistanceSquared(s.Center, o.Center) <= rs*rs
}

func (s Sphere) SurfaceArea() float32 {
	return 4 * math.Pi * s.Radius * s.Radius
}

func (s Sphere) Volume() float32 {
	return (4.0 / 3.0) * math.Pi * s.Radius * s.Radius * s.Radius
}

func (s Sphere) ClosestPoint(p Vec3) Vec3 {
	dir := p.Sub(s.Center)
	l := dir.Length()
	if l <= IntersectionEpsilon {
		return s.Center.Add(Vec3{s.Radius, 0, 0})
	}
	return s.Center.Add(dir.Scale(s.Radius / l))
}

func (s Sphere) SquaredDistance(p Vec3) float64 {
	d := math.Sqrt(float64(DistanceSquared(s.Center, p))) - float64(s.Radius)
	if d < 0 {
		return 0
	}
	return d * d
}

// BoundingAABB returns the minimal AABB enclosing the sphere.
func (s Sphere) BoundingAABB() AABB {
	r := Vec3{s.Radius, s.Radius, s.Radius}
	return AABB{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}
