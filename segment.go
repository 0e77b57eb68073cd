package spatial

// Segment is a bounded line: start and end points, t in [0,1].
type Segment struct {
	Start, End Vec3
}

func NewSegment(start, end Vec3) Segment {
	return Segment{Start: start, End: end}
}

func (s Segment) Direction() Vec3 {
	return s.End.Sub(s.Start)
}

func (s Segment) PointAt(t float32) Vec3 {
	return s.Start.Add(s.Direction().Scale(t))
}

func (s Segment) ClosestPoint(p Vec3) Vec3 {
	return closestPointOnSegment(s.Start, s.End, p)
}

func (s Segment) SquaredDistance(p Vec3) float64 {
	return float64(DistanceSquared(s.ClosestPoint(p), p))
}

func (s Segment) BoundingAABB() AABB {
	return AABB{Min: MinVec3(s.Start, s.End), Max: MaxVec3(s.Start, s.End)}
}
