package spatial

// OBB is an oriented bounding box: center, half-extents and an orthonormal
// orientation frame.
type OBB struct {
	Center      Vec3
	HalfSizes   Vec3
	Orientation Mat3
}

// NewOBBFromAABB builds an axis-aligned OBB matching the given box.
func NewOBBFromAABB(box AABB) OBB {
	return OBB{Center: box.Center(), HalfSizes: box.Extent(), Orientation: Identity3()}
}

// NewOBBFromCenterHalfSizes builds an axis-aligned OBB.
func NewOBBFromCenterHalfSizes(center, halfSizes Vec3) OBB {
	return OBB{Center: center, HalfSizes: halfSizes, Orientation: Identity3()}
}

// NewOBBFromQuaternion builds an OBB whose orientation frame is the rotation
// encoded by q, for callers that track orientation as a quaternion (e.g. a
// physics body's pose) rather than a raw basis matrix.
func NewOBBFromQuaternion(center, halfSizes Vec3, q Quaternion) OBB {
	return OBB{Center: center, HalfSizes: halfSizes, Orientation: q.Normalize().ToMat3()}
}

func (o OBB) Size() Vec3   { return o.HalfSizes.Scale(2) }
func (o OBB) Extent() Vec3 { return o.HalfSizes }

// toLocal expresses a world-space point in the box's local frame.
func (o OBB) toLocal(p Vec3) Vec3 {
	return o.Orientation.Transpose().MulVec3(p.Sub(o.Center))
}

func (o OBB) ContainsPoint(p Vec3) bool {
	local := o.toLocal(p)
	return absF32(local.X) <= o.HalfSizes.X &&
		absF32(local.Y) <= o.HalfSizes.Y &&
		absF32(local.Z) <= o.HalfSizes.Z
}

// Corners returns the 8 world-space vertices of the box.
func (o OBB) Corners() [8]Vec3 {
	var result [8]Vec3
	idx := 0
	for _, sx := range [2]float32{-1, 1} {
		for _, sy := range [2]float32{-1, 1} {
			for _, sz := range [2]float32{-1, 1} {
				local := Vec3{sx * o.HalfSizes.X, sy * o.HalfSizes.Y, sz * o.HalfSizes.Z}
				result[idx] = o.Center.Add(o.Orientation.MulVec3(local))
				idx++
			}
		}
	}
	return result
}

func (o OBB) ContainsOBB(inner OBB) bool {
	for _, c := range inner.Corners() {
		if !o.ContainsPoint(c) {
			return false
		}
	}
	return true
}

func (o OBB) ContainsAABB(inner AABB) bool {
	for _, c := range inner.Corners() {
		if !o.ContainsPoint(c) {
			return false
		}
	}
	return true
}

func (o OBB) ContainsSphere(inner Sphere) bool {
	local := o.toLocal(inner.Center)
	return absF32(local.X)+inner.Radius <= o.HalfSizes.X &&
		absF32(local.Y)+inner.Radius <= o.HalfSizes.Y &&
		absF32(local.Z)+inner.Radius <= o.HalfSizes.Z
}

func (o OBB) IntersectsSphere(s Sphere) bool {
	local := o.toLocal(s.Center)
	clamped := Vec3{
		clampF32(local.X, -o.HalfSizes.X, o.HalfSizes.X),
		clampF32(local.Y, -o.HalfSizes.Y, o.HalfSizes.Y),
		clampF32(local.Z, -o.HalfSizes.Z, o.HalfSizes.Z),
	}
	return local.Sub(clamped).LengthSquared() <= s.Radius*s.Radius
}

func (o OBB) IntersectsAABB(box AABB) bool {
	return IntersectsOBBOBB(o, NewOBBFromAABB(box))
}

// IntersectsOBBOBB implements the 15-axis separating-axis test (3+3+9),
// including the AbsR[i][j]+SeparationEpsilon fudge against near-parallel
// edge pairs.
func IntersectsOBBOBB(a, b OBB) bool {
	R := a.Orientation.Transpose().Mul(b.Orientation)
	var absR Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			absR.Rows[i] = absR.Rows[i].Set(j, absF32(R.At(i, j))+SeparationEpsilon)
		}
	}

	tWorld := b.Center.Sub(a.Center)
	t := a.Orientation.Transpose().MulVec3(tWorld)

	ah := [3]float32{a.HalfSizes.X, a.HalfSizes.Y, a.HalfSizes.Z}
	bh := [3]float32{b.HalfSizes.X, b.HalfSizes.Y, b.HalfSizes.Z}
	tv := [3]float32{t.X, t.Y, t.Z}

	for i := 0; i < 3; i++ {
		ra := ah[i]
		rb := bh[0]*absR.At(i, 0) + bh[1]*absR.At(i, 1) + bh[2]*absR.At(i, 2)
		if absF32(tv[i]) > ra+rb {
			return false
		}
	}

	for j := 0; j < 3; j++ {
		ra := ah[0]*absR.At(0, j) + ah[1]*absR.At(1, j) + ah[2]*absR.At(2, j)
		rb := bh[j]
		tProj := tv[0]*R.At(0, j) + tv[1]*R.At(1, j) + tv[2]*R.At(2, j)
		if absF32(tProj) > ra+rb {
			return false
		}
	}

	for i := 0; i < 3; i++ {
		i1, i2 := (i+1)%3, (i+2)%3
		for j := 0; j < 3; j++ {
			j1, j2 := (j+1)%3, (j+2)%3
			ra := ah[i1]*absR.At(i2, j) + ah[i2]*absR.At(i1, j)
			rb := bh[j1]*absR.At(i, j2) + bh[j2]*absR.At(i, j1)
			tval := absF32(tv[i2]*R.At(i1, j) - tv[i1]*R.At(i2, j))
			if tval > ra+rb {
				return false
			}
		}
	}

	return true
}

// BoundingAABB returns the minimal AABB enclosing the oriented box, via
// 8-corner min/max.
func (o OBB) BoundingAABB() AABB {
	corners := o.Corners()
	box := AABB{Min: corners[0], Max: corners[0]}
	for _, c := range corners[1:] {
		box.Min = MinVec3(box.Min, c)
		box.Max = MaxVec3(box.Max, c)
	}
	return box
}

// ClosestPoint returns the point on/in the box nearest to p, clamping the
// local-frame coordinates to the half-extents.
func (o OBB) ClosestPoint(p Vec3) Vec3 {
	local := o.toLocal(p)
	clamped := Vec3{
		clampF32(local.X, -o.HalfSizes.X, o.HalfSizes.X),
		clampF32(local.Y, -o.HalfSizes.Y, o.HalfSizes.Y),
		clampF32(local.Z, -o.HalfSizes.Z, o.HalfSizes.Z),
	}
	return o.Center.Add(o.Orientation.MulVec3(clamped))
}

func (o OBB) SquaredDistance(p Vec3) float64 {
	cp := o.ClosestPoint(p)
	return float64(DistanceSquared(cp, p))
}
