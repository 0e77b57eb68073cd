package spatial

// This file is the pairwise shape-interaction matrix: Intersects/Contains
// for the combinations the trees and their tests exercise, plus the
// remaining combinations named in the kernel's scope. Each symmetric pair is
// implemented once, as a method on one of its two types, with the method on
// the other type forwarding to it, so every pair is callable from either
// side.

// squaredDistancer is satisfied by every solid/surface shape in the kernel
// and lets Sphere-vs-X intersection be expressed once, generically, using
// the same "closest point within radius" technique as AABB.IntersectsSphere
// and OBB.IntersectsSphere.
type squaredDistancer interface {
	SquaredDistance(p Vec3) float64
}

func intersectsSphereGeneric(s Sphere, shape squaredDistancer) bool {
	return shape.SquaredDistance(s.Center) <= float64(s.Radius)*float64(s.Radius)
}

// --- AABB pairs ---

func (b AABB) IntersectsSphere(s Sphere) bool {
	closest := b.ClosestPoint(s.Center)
	return DistanceSquared(closest, s.Center) <= s.Radius*s.Radius
}
func (s Sphere) IntersectsAABB(b AABB) bool { return b.IntersectsSphere(s) }

func (b AABB) ContainsSphere(inner Sphere) bool {
	for i := 0; i < 3; i++ {
		if inner.Center.Get(i)-inner.Radius < b.Min.Get(i) {
			return false
		}
		if inner.Center.Get(i)+inner.Radius > b.Max.Get(i) {
			return false
		}
	}
	return true
}

// ContainsAABB reports whether every point of inner lies within s, via the
// 8-corner furthest-distance test (the sphere analogue of AABB.ContainsAABB).
func (s Sphere) ContainsAABB(inner AABB) bool {
	for _, c := range inner.Corners() {
		if !s.ContainsPoint(c) {
			return false
		}
	}
	return true
}

// ContainsOBB reports whether every corner of inner lies within s.
func (s Sphere) ContainsOBB(inner OBB) bool {
	for _, c := range inner.Corners() {
		if !s.ContainsPoint(c) {
			return false
		}
	}
	return true
}

func (b AABB) ContainsOBB(inner OBB) bool {
	for _, c := range inner.Corners() {
		if !b.ContainsPoint(c) {
			return false
		}
	}
	return true
}

func (b AABB) IntersectsOBB(o OBB) bool { return o.IntersectsAABB(b) }

func (b AABB) ContainsSegment(s Segment) bool {
	return b.ContainsPoint(s.Start) && b.ContainsPoint(s.End)
}

func (b AABB) ContainsTriangle(t Triangle) bool {
	return b.ContainsPoint(t.A) && b.ContainsPoint(t.B) && b.ContainsPoint(t.C)
}

// ContainsCylinder tests cylinder-in-AABB via the two cap centers plus 8
// samples around each cap's rim (18 points in all).
func (b AABB) ContainsCylinder(c Cylinder) bool {
	for _, p := range c.CapAndLateralSamplePoints() {
		if !b.ContainsPoint(p) {
			return false
		}
	}
	return true
}

// ContainsEllipsoid tests ellipsoid-in-AABB by checking that b contains the
// ellipsoid's tight bounding box (Ellipsoid.BoundingAABB).
func (b AABB) ContainsEllipsoid(e Ellipsoid) bool {
	eb := e.BoundingAABB()
	return b.ContainsAABB(eb)
}

// convexShape lets the generic dual closest-point approximation below drive
// AABB/OBB-vs-Cylinder/Ellipsoid intersection tests, where no closed-form
// separating-axis test exists for a curved shape against a polytope.
type convexShape interface {
	ClosestPoint(p Vec3) Vec3
	ContainsPoint(p Vec3) bool
}

// dualClosestPointIntersects is a conservative convex-vs-convex intersection
// approximation: two convex bodies overlap if either center lies in the
// other, or either body's closest point to the other's center lies within
// that other body. It is exact whenever at least one shape is a halfspace
// intersection of the other's support, and is the fallback this kernel uses
// for shape pairs with no closed-form test (AABB/Cylinder, AABB/Ellipsoid,
// OBB/Cylinder, OBB/Ellipsoid) rather than silently
// returning false.
func dualClosestPointIntersects(a convexShape, aCenter Vec3, b convexShape, bCenter Vec3) bool {
	if a.ContainsPoint(bCenter) || b.ContainsPoint(aCenter) {
		return true
	}
	if b.ContainsPoint(a.ClosestPoint(bCenter)) {
		return true
	}
	if a.ContainsPoint(b.ClosestPoint(aCenter)) {
		return true
	}
	return false
}

func (b AABB) IntersectsCylinder(c Cylinder) bool {
	return dualClosestPointIntersects(b, b.Center(), c, c.Center)
}
func (c Cylinder) IntersectsAABB(b AABB) bool { return b.IntersectsCylinder(c) }

func (b AABB) IntersectsEllipsoid(e Ellipsoid) bool {
	return dualClosestPointIntersects(b, b.Center(), e, e.Center)
}
func (e Ellipsoid) IntersectsAABB(b AABB) bool { return b.IntersectsEllipsoid(e) }

func (b AABB) IntersectsLine(l Line) bool {
	return b.SquaredDistance(l.ProjectPoint(b.Center())) <= IntersectionEpsilon ||
		b.ContainsPoint(l.ProjectPoint(b.Center()))
}

func (b AABB) IntersectsPlane(p Plane) bool { return p.IntersectsAABB(b) }

func (b AABB) IntersectsRay(r Ray) Result { return r.IntersectsAABB(b) }

func (b AABB) IntersectsSegment(s Segment) bool {
	dir := s.Direction()
	length := dir.Length()
	if length <= IntersectionEpsilon {
		return b.ContainsPoint(s.Start)
	}
	r := NewRay(s.Start, dir)
	res := r.IntersectsAABB(b)
	if !res.Ok() {
		return false
	}
	switch res.Kind {
	case Hit:
		// A Hit means the ray origin lies inside the box (tMin<0<=tMax), so
		// the segment's start point is already inside it.
		return true
	default:
		return res.TMin <= length && res.TMax >= 0
	}
}

func (l Line) IntersectsAABB(b AABB) bool    { return b.IntersectsLine(l) }
func (s Segment) IntersectsAABB(b AABB) bool { return b.IntersectsSegment(s) }

// IntersectsTriangle implements Möller's 13-axis test: 3 AABB face normals,
// the triangle's own normal, and 9 edge-cross-axis products.
func (b AABB) IntersectsTriangle(t Triangle) bool {
	center := b.Center()
	extent := b.Extent()

	v0 := t.A.Sub(center)
	v1 := t.B.Sub(center)
	v2 := t.C.Sub(center)

	f0 := v1.Sub(v0)
	f1 := v2.Sub(v1)
	f2 := v0.Sub(v2)

	axes := make([]Vec3, 0, 13)
	axes = append(axes, Vec3{1, 0, 0}, Vec3{0, 1, 0}, Vec3{0, 0, 1})
	axes = append(axes, Cross(t.B.Sub(t.A), t.C.Sub(t.A)))

	unit := [3]Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	edges := [3]Vec3{f0, f1, f2}
	for _, u := range unit {
		for _, e := range edges {
			axes = append(axes, Cross(u, e))
		}
	}

	verts := [3]Vec3{v0, v1, v2}
	for _, axis := range axes {
		if axis.LengthSquared() <= IntersectionEpsilon {
			continue
		}
		p0 := Dot(verts[0], axis)
		p1 := Dot(verts[1], axis)
		p2 := Dot(verts[2], axis)
		triMin := minF32(minF32(p0, p1), p2)
		triMax := maxF32(maxF32(p0, p1), p2)

		r := extent.X*absF32(Dot(Vec3{1, 0, 0}, axis)) +
			extent.Y*absF32(Dot(Vec3{0, 1, 0}, axis)) +
			extent.Z*absF32(Dot(Vec3{0, 0, 1}, axis))

		if triMin > r || triMax < -r {
			return false
		}
	}
	return true
}
func (t Triangle) IntersectsAABB(b AABB) bool { return b.IntersectsTriangle(t) }

// --- Cylinder / Ellipsoid pairs ---

// IntersectsEllipsoid samples 9 points along the cylinder's axis and reports
// a hit when a sample lies inside the ellipsoid or within the cylinder's
// radius of it (a sphere of that radius around each sample): an approximate test
// rather than an exact GJK-style one, which inherits a false-negative risk on thin
// ellipsoids.
func (c Cylinder) IntersectsEllipsoid(e Ellipsoid) bool {
	const samples = 9
	for i := 0; i < samples; i++ {
		t := -c.HalfHeight + (2*c.HalfHeight)*float32(i)/float32(samples-1)
		center := c.Center.Add(c.Axis.Scale(t))
		if e.ContainsPoint(center) {
			return true
		}
		if e.SquaredDistance(center) <= float64(c.Radius)*float64(c.Radius) {
			return true
		}
	}
	return e.ContainsPoint(c.Center) || c.ContainsPoint(e.Center)
}
func (e Ellipsoid) IntersectsCylinder(c Cylinder) bool { return c.IntersectsEllipsoid(e) }

func (c Cylinder) IntersectsSphere(s Sphere) bool  { return intersectsSphereGeneric(s, c) }
func (s Sphere) IntersectsCylinder(c Cylinder) bool { return c.IntersectsSphere(s) }

func (e Ellipsoid) IntersectsSphere(s Sphere) bool  { return intersectsSphereGeneric(s, e) }
func (s Sphere) IntersectsEllipsoid(e Ellipsoid) bool { return e.IntersectsSphere(s) }

func (t Triangle) IntersectsSphere(s Sphere) bool  { return intersectsSphereGeneric(s, t) }
func (s Sphere) IntersectsTriangle(t Triangle) bool { return t.IntersectsSphere(s) }

func (pl Plane) IntersectsCylinder(c Cylinder) bool {
	top := pl.SignedDistance(c.TopCenter())
	bottom := pl.SignedDistance(c.BottomCenter())
	if (top >= 0) != (bottom >= 0) {
		return true
	}
	return absF32(pl.SignedDistance(c.Center)) <= c.Radius
}
func (c Cylinder) IntersectsPlane(pl Plane) bool { return pl.IntersectsCylinder(c) }

func (pl Plane) IntersectsEllipsoid(e Ellipsoid) bool {
	return e.SquaredDistance(pl.ProjectPoint(e.Center)) <= 0+1e-6 || absF32(pl.SignedDistance(e.Center)) <= e.Radii.X+e.Radii.Y+e.Radii.Z
}
func (e Ellipsoid) IntersectsPlane(pl Plane) bool { return pl.IntersectsEllipsoid(e) }

// --- Sphere / Plane / Segment pairs ---

func (s Sphere) IntersectsPlane(p Plane) bool { return p.IntersectsSphere(s) }

func (s Sphere) IntersectsOBB(o OBB) bool   { return o.IntersectsSphere(s) }
func (s Sphere) IntersectsRay(r Ray) Result { return r.IntersectsSphere(s) }

func (s Sphere) IntersectsSegment(seg Segment) bool {
	return s.SquaredDistance(seg.ClosestPoint(s.Center)) <= 0+IntersectionEpsilon ||
		DistanceSquared(seg.ClosestPoint(s.Center), s.Center) <= s.Radius*s.Radius
}
func (seg Segment) IntersectsSphere(s Sphere) bool { return s.IntersectsSegment(seg) }

// --- Triangle / Triangle ---

// IntersectsTriangle implements a Devillers-style signed-distance test: each
// triangle's plane is used to classify the other's vertices; if all three
// lie strictly on one side, the triangles are separated. When the triangles
// are (near-)coplanar, falls back to a 2D projection onto the dominant axis
// plane and an edge/point-in-triangle test.
func (t Triangle) IntersectsTriangle(o Triangle) bool {
	planeT := NewPlaneFromTriangle(t)
	dO := [3]float32{planeT.SignedDistance(o.A), planeT.SignedDistance(o.B), planeT.SignedDistance(o.C)}

	if sameSign(dO) && absF32(dO[0])+absF32(dO[1])+absF32(dO[2]) > IntersectionEpsilon {
		return false
	}

	planeO := NewPlaneFromTriangle(o)
	dT := [3]float32{planeO.SignedDistance(t.A), planeO.SignedDistance(t.B), planeO.SignedDistance(t.C)}

	if sameSign(dT) && absF32(dT[0])+absF32(dT[1])+absF32(dT[2]) > IntersectionEpsilon {
		return false
	}

	if allNearZero(dO) && allNearZero(dT) {
		return coplanarTrianglesIntersect(t, o, planeT.Normal)
	}

	return segmentsOverlapOnLine(t, o, dT, dO)
}

func sameSign(d [3]float32) bool {
	pos, neg := 0, 0
	for _, v := range d {
		if v > IntersectionEpsilon {
			pos++
		} else if v < -IntersectionEpsilon {
			neg++
		}
	}
	return pos == 3 || neg == 3
}

func allNearZero(d [3]float32) bool {
	for _, v := range d {
		if absF32(v) > IntersectionEpsilon {
			return false
		}
	}
	return true
}

// dominantAxisDrop returns the index (0,1,2) to drop when projecting to 2D,
// chosen as the axis with the largest-magnitude normal component.
func dominantAxisDrop(n Vec3) int {
	ax, ay, az := absF32(n.X), absF32(n.Y), absF32(n.Z)
	if ax >= ay && ax >= az {
		return 0
	}
	if ay >= az {
		return 1
	}
	return 2
}

func project2D(v Vec3, drop int) [2]float32 {
	switch drop {
	case 0:
		return [2]float32{v.Y, v.Z}
	case 1:
		return [2]float32{v.X, v.Z}
	default:
		return [2]float32{v.X, v.Y}
	}
}

func cross2D(a, b [2]float32) float32 { return a[0]*b[1] - a[1]*b[0] }

func pointInTriangle2D(p, a, b, c [2]float32) bool {
	d1 := cross2D([2]float32{b[0] - a[0], b[1] - a[1]}, [2]float32{p[0] - a[0], p[1] - a[1]})
	d2 := cross2D([2]float32{c[0] - b[0], c[1] - b[1]}, [2]float32{p[0] - b[0], p[1] - b[1]})
	d3 := cross2D([2]float32{a[0] - c[0], a[1] - c[1]}, [2]float32{p[0] - c[0], p[1] - c[1]})
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func segments2DIntersect(a0, a1, b0, b1 [2]float32) bool {
	d1 := cross2D([2]float32{a1[0] - a0[0], a1[1] - a0[1]}, [2]float32{b0[0] - a0[0], b0[1] - a0[1]})
	d2 := cross2D([2]float32{a1[0] - a0[0], a1[1] - a0[1]}, [2]float32{b1[0] - a0[0], b1[1] - a0[1]})
	d3 := cross2D([2]float32{b1[0] - b0[0], b1[1] - b0[1]}, [2]float32{a0[0] - b0[0], a0[1] - b0[1]})
	d4 := cross2D([2]float32{b1[0] - b0[0], b1[1] - b0[1]}, [2]float32{a1[0] - b0[0], a1[1] - b0[1]})
	return ((d1 > 0) != (d2 > 0)) && ((d3 > 0) != (d4 > 0))
}

func coplanarTrianglesIntersect(t, o Triangle, normal Vec3) bool {
	drop := dominantAxisDrop(normal)
	ta, tb, tc := project2D(t.A, drop), project2D(t.B, drop), project2D(t.C, drop)
	oa, ob, oc := project2D(o.A, drop), project2D(o.B, drop), project2D(o.C, drop)

	if pointInTriangle2D(ta, oa, ob, oc) || pointInTriangle2D(oa, ta, tb, tc) {
		return true
	}

	tEdges := [3][2][2]float32{{ta, tb}, {tb, tc}, {tc, ta}}
	oEdges := [3][2][2]float32{{oa, ob}, {ob, oc}, {oc, oa}}
	for _, te := range tEdges {
		for _, oe := range oEdges {
			if segments2DIntersect(te[0], te[1], oe[0], oe[1]) {
				return true
			}
		}
	}
	return false
}

// segmentsOverlapOnLine handles the generic (non-coplanar) case: both
// triangles' intersections with the shared plane-intersection line are
// intervals; the triangles intersect iff those intervals overlap. This is a
// simplified Devillers reduction using per-vertex signed distances already
// computed by the caller.
func segmentsOverlapOnLine(t, o Triangle, dT, dO [3]float32) bool {
	lineDir := Cross(NewPlaneFromTriangle(t).Normal, NewPlaneFromTriangle(o).Normal)
	if lineDir.LengthSquared() <= IntersectionEpsilon {
		return false
	}

	tInterval := triangleLineInterval(t, dT, lineDir)
	oInterval := triangleLineInterval(o, dO, lineDir)
	if tInterval == nil || oInterval == nil {
		return false
	}
	return tInterval[0] <= oInterval[1] && oInterval[0] <= tInterval[1]
}

// triangleLineInterval projects the two edges of a triangle that cross its
// own plane's zero level (relative to the other triangle's plane) onto
// lineDir, returning the resulting [min,max] parameter interval.
func triangleLineInterval(t Triangle, d [3]float32, lineDir Vec3) *[2]float32 {
	verts := [3]Vec3{t.A, t.B, t.C}
	var params []float32
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		if (d[i] > 0) == (d[j] > 0) {
			continue
		}
		denom := d[i] - d[j]
		if absF32(denom) <= IntersectionEpsilon {
			continue
		}
		s := d[i] / denom
		p := verts[i].Add(verts[j].Sub(verts[i]).Scale(s))
		params = append(params, Dot(p, lineDir))
	}
	if len(params) < 2 {
		return nil
	}
	lo, hi := params[0], params[0]
	for _, v := range params[1:] {
		lo = minF32(lo, v)
		hi = maxF32(hi, v)
	}
	return &[2]float32{lo, hi}
}

// --- OBB pairs ---

func (o OBB) ContainsCylinder(c Cylinder) bool {
	for _, p := range c.CapAndLateralSamplePoints() {
		if !o.ContainsPoint(p) {
			return false
		}
	}
	return true
}

func (o OBB) ContainsEllipsoid(e Ellipsoid) bool {
	return o.ContainsAABB(e.BoundingAABB())
}

func (o OBB) IntersectsCylinder(c Cylinder) bool {
	return dualClosestPointIntersects(o, o.Center, c, c.Center)
}
func (c Cylinder) IntersectsOBB(o OBB) bool { return o.IntersectsCylinder(c) }

func (o OBB) IntersectsEllipsoid(e Ellipsoid) bool {
	return dualClosestPointIntersects(o, o.Center, e, e.Center)
}
func (e Ellipsoid) IntersectsOBB(o OBB) bool { return o.IntersectsEllipsoid(e) }

// IntersectsTriangle transforms the triangle into the box's local frame
// (where it is axis-aligned) and reuses the AABB-vs-triangle 13-axis test,
// the same local-frame reduction used by Ray.IntersectsOBB below.
func (o OBB) IntersectsTriangle(t Triangle) bool {
	localBox := AABB{Min: o.HalfSizes.Negate(), Max: o.HalfSizes}
	localTri := Triangle{A: o.toLocal(t.A), B: o.toLocal(t.B), C: o.toLocal(t.C)}
	return localBox.IntersectsTriangle(localTri)
}
func (t Triangle) IntersectsOBB(o OBB) bool { return o.IntersectsTriangle(t) }

func (o OBB) IntersectsSegment(s Segment) bool {
	return o.SquaredDistance(s.ClosestPoint(o.Center)) <= IntersectionEpsilon ||
		o.ContainsPoint(s.ClosestPoint(o.Center)) ||
		DistanceSquared(o.ClosestPoint(s.Start), s.Start) <= IntersectionEpsilon
}
func (s Segment) IntersectsOBB(o OBB) bool { return o.IntersectsSegment(s) }

func (o OBB) IntersectsLine(l Line) bool {
	p := l.ProjectPoint(o.Center)
	return o.ContainsPoint(p) || o.SquaredDistance(p) <= IntersectionEpsilon
}
func (l Line) IntersectsOBB(o OBB) bool { return o.IntersectsLine(l) }

func (o OBB) IntersectsPlane(p Plane) bool {
	extent := o.HalfSizes
	axes := [3]Vec3{o.Orientation.Col(0), o.Orientation.Col(1), o.Orientation.Col(2)}
	r := extent.X*absF32(Dot(p.Normal, axes[0])) +
		extent.Y*absF32(Dot(p.Normal, axes[1])) +
		extent.Z*absF32(Dot(p.Normal, axes[2]))
	return absF32(p.SignedDistance(o.Center)) <= r
}
func (p Plane) IntersectsOBB(o OBB) bool { return o.IntersectsPlane(p) }

func (o OBB) IntersectsRay(r Ray) Result { return r.IntersectsOBB(o) }

// --- Line / Ray / Segment pairs ---

// IntersectsOBB forwards to a slab test in the box's local frame, the OBB
// analogue of Ray.IntersectsAABB.
func (r Ray) IntersectsOBB(o OBB) Result {
	localOrigin := o.toLocal(r.Origin)
	localDir := o.Orientation.Transpose().MulVec3(r.Direction)
	localBox := AABB{Min: o.HalfSizes.Negate(), Max: o.HalfSizes}
	localRay := Ray{Origin: localOrigin, Direction: localDir}
	return localRay.IntersectsAABB(localBox)
}

func (l Line) IntersectsSegment(s Segment) bool {
	sDir := s.Direction()
	sq, tq, ok := closestParamsBetweenLines(l.Point, l.Direction, s.Start, sDir)
	if !ok {
		return l.SquaredDistance(s.Start) <= IntersectionEpsilon
	}
	tq = clampF32(tq, 0, 1)
	pOnSeg := s.PointAt(tq)
	pOnLine := l.PointAt(sq)
	return DistanceSquared(pOnLine, pOnSeg) <= IntersectionEpsilon
}
func (s Segment) IntersectsLine(l Line) bool { return l.IntersectsSegment(s) }

func (l Line) IntersectsPlane(p Plane) bool {
	denom := Dot(p.Normal, l.Direction)
	if absF32(denom) <= ParallelEpsilon {
		return absF32(p.SignedDistance(l.Point)) <= IntersectionEpsilon
	}
	return true
}
func (p Plane) IntersectsLine(l Line) bool { return l.IntersectsPlane(p) }

func (s Segment) IntersectsPlane(p Plane) bool {
	dStart := p.SignedDistance(s.Start)
	dEnd := p.SignedDistance(s.End)
	if (dStart >= 0) != (dEnd >= 0) {
		return true
	}
	return absF32(dStart) <= IntersectionEpsilon || absF32(dEnd) <= IntersectionEpsilon
}
func (p Plane) IntersectsSegment(s Segment) bool { return s.IntersectsPlane(p) }

func (s Segment) IntersectsSegment(o Segment) bool {
	sDir, oDir := s.Direction(), o.Direction()
	sq, tq, ok := closestParamsBetweenLines(s.Start, sDir, o.Start, oDir)
	if !ok {
		return s.SquaredDistance(o.Start) <= IntersectionEpsilon || s.SquaredDistance(o.End) <= IntersectionEpsilon
	}
	sq = clampF32(sq, 0, 1)
	tq = clampF32(tq, 0, 1)
	return DistanceSquared(s.PointAt(sq), o.PointAt(tq)) <= IntersectionEpsilon
}
