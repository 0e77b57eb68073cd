package spatial

import "math"

// Cylinder is a finite right circular cylinder: center, unit-length axis,
// radius and half-height.
type Cylinder struct {
	Center    Vec3
	Axis      Vec3 // unit-length
	Radius    float32
	HalfHeight float32
}

// NewCylinder normalizes axis defensively rather than trusting the caller.
func NewCylinder(center, axis Vec3, radius, halfHeight float32) Cylinder {
	return Cylinder{Center: center, Axis: axis.Normalize(), Radius: radius, HalfHeight: halfHeight}
}

// NewCylinderFromQuaternion builds a cylinder whose axis is q applied to the
// +Y reference axis, for callers that track orientation as a rotation rather
// than a raw direction vector.
func NewCylinderFromQuaternion(center Vec3, q Quaternion, radius, halfHeight float32) Cylinder {
	axis := q.Normalize().ToMat3().MulVec3(Vec3{0, 1, 0})
	return Cylinder{Center: center, Axis: axis.Normalize(), Radius: radius, HalfHeight: halfHeight}
}

func (c Cylinder) TopCenter() Vec3 {
	return c.Center.Add(c.Axis.Scale(c.HalfHeight))
}

func (c Cylinder) BottomCenter() Vec3 {
	return c.Center.Sub(c.Axis.Scale(c.HalfHeight))
}

func (c Cylinder) Volume() float32 {
	return math.Pi * c.Radius * c.Radius * (2 * c.HalfHeight)
}

func (c Cylinder) SurfaceArea() float32 {
	return 2*math.Pi*c.Radius*c.Radius + 2*math.Pi*c.Radius*(2*c.HalfHeight)
}

// axialOffset decomposes p-center into (along-axis scalar, radial vector).
func (c Cylinder) axialOffset(p Vec3) (along float32, radial Vec3) {
	d := p.Sub(c.Center)
	along = Dot(d, c.Axis)
	radial = d.Sub(c.Axis.Scale(along))
	return
}

func (c Cylinder) ContainsPoint(p Vec3) bool {
	along, radial := c.axialOffset(p)
	if absF32(along) > c.HalfHeight {
		return false
	}
	return radial.LengthSquared() <= c.Radius*c.Radius
}

// ClosestPoint projects p onto the cylinder's surface/interior: clamp the
// axial component to the half-height, clamp the radial component to the
// radius.
func (c Cylinder) ClosestPoint(p Vec3) Vec3 {
	along, radial := c.axialOffset(p)
	clampedAlong := clampF32(along, -c.HalfHeight, c.HalfHeight)

	radialLen := radial.Length()
	var radialClamped Vec3
	if radialLen > c.Radius {
		radialClamped = radial.Scale(c.Radius / radialLen)
	} else {
		radialClamped = radial
	}
	return c.Center.Add(c.Axis.Scale(clampedAlong)).Add(radialClamped)
}

func (c Cylinder) SquaredDistance(p Vec3) float64 {
	return float64(DistanceSquared(c.ClosestPoint(p), p))
}

// BoundingAABB computes the minimal axis-aligned box around the cylinder by
// bounding the two end caps: each cap disc extends around its center and the
// box is the min/max over both discs.
func (c Cylinder) BoundingAABB() AABB {
	top, bottom := c.TopCenter(), c.BottomCenter()
	// Radius contributes sqrt(1-axis_i^2)*radius along each world axis.
	var r Vec3
	for i := 0; i < 3; i++ {
		a := float64(c.Axis.Get(i))
		r = r.Set(i, c.Radius*float32(math.Sqrt(math.Max(0, 1-a*a))))
	}
	box := AABB{Min: MinVec3(top.Sub(r), bottom.Sub(r)), Max: MaxVec3(top.Add(r), bottom.Add(r))}
	return box
}

// lateralSamples returns 8 points evenly spaced around the cylinder's
// circumference at its mid-height, used by cylinder-in-AABB containment
// sampling per the shape kernel's §4.1 "cylinder⊂AABB via caps and 8
// lateral samples" rule.
func (c Cylinder) lateralSamples() [8]Vec3 {
	// Build an orthonormal basis (u, v) perpendicular to the axis.
	u := Cross(c.Axis, Vec3{0, 1, 0})
	if u.LengthSquared() < IntersectionEpsilon {
		u = Cross(c.Axis, Vec3{1, 0, 0})
	}
	u = u.Normalize()
	v := Cross(c.Axis, u)

	var samples [8]Vec3
	for i := 0; i < 8; i++ {
		theta := float64(i) * (math.Pi / 4)
		offset := u.Scale(float32(math.Cos(theta)) * c.Radius).Add(v.Scale(float32(math.Sin(theta)) * c.Radius))
		samples[i] = c.Center.Add(offset)
	}
	return samples
}

// CapAndLateralSamplePoints returns the 2 cap centers plus 16 samples (8 per
// cap circumference), the full sample set used by cylinder⊂AABB and
// cylinder⊂OBB containment checks.
func (c Cylinder) CapAndLateralSamplePoints() []Vec3 {
	top, bottom := c.TopCenter(), c.BottomCenter()
	lateral := c.lateralSamples()

	points := make([]Vec3, 0, 2+16)
	points = append(points, top, bottom)
	for _, s := range lateral {
		topRim := s.Add(c.Axis.Scale(c.HalfHeight))
		bottomRim := s.Add(c.Axis.Scale(-c.HalfHeight))
		points = append(points, topRim, bottomRim)
	}
	return points
}
