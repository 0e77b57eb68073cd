package spatial

// Plane is the implicit surface dot(n, x) + d = 0, with n a unit normal.
type Plane struct {
	Normal Vec3
	D      float32
}

// NewPlaneFromPointNormal builds a plane through point with the given
// (not-necessarily unit) normal.
func NewPlaneFromPointNormal(point, normal Vec3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, D: -Dot(n, point)}
}

// NewPlaneFromTriangle builds the plane containing a triangle's face.
func NewPlaneFromTriangle(t Triangle) Plane {
	return NewPlaneFromPointNormal(t.A, t.Normal())
}

// SignedDistance returns dot(n,x)+d: positive on the side the normal points
// to, negative on the other, zero on the plane.
func (p Plane) SignedDistance(point Vec3) float32 {
	return Dot(p.Normal, point) + p.D
}

// ProjectPoint returns the closest point on the plane to point.
func (p Plane) ProjectPoint(point Vec3) Vec3 {
	return point.Sub(p.Normal.Scale(p.SignedDistance(point)))
}

func (p Plane) ClosestPoint(point Vec3) Vec3 {
	return p.ProjectPoint(point)
}

func (p Plane) SquaredDistance(point Vec3) float64 {
	d := float64(p.SignedDistance(point))
	return d * d
}

// IntersectsSphere reports whether the plane touches or crosses the sphere.
func (p Plane) IntersectsSphere(s Sphere) bool {
	d := p.SignedDistance(s.Center)
	if d < 0 {
		d = -d
	}
	return d <= s.Radius
}

// IntersectsAABB reports whether the plane crosses the box, via the
// standard "project box half-extent onto the plane normal" test.
func (p Plane) IntersectsAABB(box AABB) bool {
	extent := box.Extent()
	r := absF32(p.Normal.X)*extent.X + absF32(p.Normal.Y)*extent.Y + absF32(p.Normal.Z)*extent.Z
	s := p.SignedDistance(box.Center())
	return absF32(s) <= r
}
