package spatial

import "math"

// AABB is an axis-aligned bounding box with float32 coordinates.
type AABB struct {
	Min, Max Vec3
}

// MakeAABBFromPoint builds a degenerate AABB containing a single point.
func MakeAABBFromPoint(p Vec3) AABB {
	return AABB{Min: p, Max: p}
}

// MakeAABBFromCenterExtent builds an AABB from its center and half-extents.
func MakeAABBFromCenterExtent(center, extent Vec3) AABB {
	return AABB{Min: center.Sub(extent), Max: center.Add(extent)}
}

// NewAABBFromPoints computes the minimal AABB enclosing a set of points.
func NewAABBFromPoints(points []Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = MinVec3(box.Min, p)
		box.Max = MaxVec3(box.Max, p)
	}
	return box
}

func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

func (b AABB) Extent() Vec3 {
	return b.Size().Scale(0.5)
}

func (b AABB) SurfaceArea() float32 {
	s := b.Size()
	return 2 * (s.X*s.Y + s.Y*s.Z + s.X*s.Z)
}

func (b AABB) Volume() float32 {
	s := b.Size()
	return s.X * s.Y * s.Z
}

// LongestAxis returns the axis (0,1,2) with the largest extent, used by the
// kd-tree builder to choose its split axis.
func (b AABB) LongestAxis() int {
	s := b.Size()
	axis := 0
	best := s.X
	if s.Y > best {
		axis, best = 1, s.Y
	}
	if s.Z > best {
		axis = 2
	}
	return axis
}

// ContainsPoint reports whether p lies within the box, inclusive of the
// boundary.
func (b AABB) ContainsPoint(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// ContainsAABB reports whether inner lies entirely within b.
func (b AABB) ContainsAABB(inner AABB) bool {
	return inner.Min.X >= b.Min.X && inner.Max.X <= b.Max.X &&
		inner.Min.Y >= b.Min.Y && inner.Max.Y <= b.Max.Y &&
		inner.Min.Z >= b.Min.Z && inner.Max.Z <= b.Max.Z
}

// IntersectsAABB reports whether two AABBs overlap (touching counts as
// overlap).
func (b AABB) IntersectsAABB(o AABB) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}

// Merge returns the union of two AABBs.
func (b AABB) Merge(o AABB) AABB {
	return AABB{Min: MinVec3(b.Min, o.Min), Max: MaxVec3(b.Max, o.Max)}
}

// MergePoint returns a copy of b grown to include point; b is unchanged.
func (b AABB) MergePoint(p Vec3) AABB {
	return AABB{Min: MinVec3(b.Min, p), Max: MaxVec3(b.Max, p)}
}

// Expand pads the box by amount on every side.
func (b AABB) Expand(amount float32) AABB {
	pad := Vec3{amount, amount, amount}
	return AABB{Min: b.Min.Sub(pad), Max: b.Max.Add(pad)}
}

// ClosestPoint returns the point on/in the box nearest to p.
func (b AABB) ClosestPoint(p Vec3) Vec3 {
	return Vec3{
		X: clampF32(p.X, b.Min.X, b.Max.X),
		Y: clampF32(p.Y, b.Min.Y, b.Max.Y),
		Z: clampF32(p.Z, b.Min.Z, b.Max.Z),
	}
}

// SquaredDistance returns the squared distance from p to the box, zero if p
// lies inside. Computed in float64 for precision at large coordinate magnitudes.
func (b AABB) SquaredDistance(p Vec3) float64 {
	dx := math.Max(math.Max(float64(b.Min.X-p.X), 0), float64(p.X-b.Max.X))
	dy := math.Max(math.Max(float64(b.Min.Y-p.Y), 0), float64(p.Y-b.Max.Y))
	dz := math.Max(math.Max(float64(b.Min.Z-p.Z), 0), float64(p.Z-b.Max.Z))
	return dx*dx + dy*dy + dz*dz
}

// Corners returns the 8 vertices of the box, ordered by bit pattern
// (bit0=X, bit1=Y, bit2=Z).
func (b AABB) Corners() [8]Vec3 {
	var v [8]Vec3
	for i := 0; i < 8; i++ {
		x := b.Min.X
		if i&1 != 0 {
			x = b.Max.X
		}
		y := b.Min.Y
		if i&2 != 0 {
			y = b.Max.Y
		}
		z := b.Min.Z
		if i&4 != 0 {
			z = b.Max.Z
		}
		v[i] = Vec3{x, y, z}
	}
	return v
}

// IsPoint reports whether the box has zero volume in every axis, the
// degenerate case the octree builder treats specially when assigning
// elements to octants.
func (b AABB) IsPoint() bool {
	return b.Min == b.Max
}
