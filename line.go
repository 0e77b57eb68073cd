package spatial

import "math"

// Line is an infinite line: a point plus a (assumed unit-length) direction.
type Line struct {
	Point     Vec3
	Direction Vec3
}

func NewLine(point, direction Vec3) Line {
	return Line{Point: point, Direction: direction.Normalize()}
}

// PointAt evaluates point + t*direction; t is unconstrained for a Line.
func (l Line) PointAt(t float32) Vec3 {
	return l.Point.Add(l.Direction.Scale(t))
}

// ProjectPoint returns the closest point on the infinite line to p. A
// zero-length direction (degenerate line) returns p itself rather than
// dividing by zero.
func (l Line) ProjectPoint(p Vec3) Vec3 {
	if l.Direction.LengthSquared() <= IntersectionEpsilon {
		return p
	}
	t := Dot(p.Sub(l.Point), l.Direction)
	return l.PointAt(t)
}

func (l Line) ClosestPoint(p Vec3) Vec3 {
	return l.ProjectPoint(p)
}

func (l Line) SquaredDistance(p Vec3) float64 {
	return float64(DistanceSquared(l.ProjectPoint(p), p))
}

// closestParamsBetweenLines solves the classic two-line closest-point system
// and returns (s, t) such that pointA+s*dirA and pointB+t*dirB are nearest.
// Returns ok=false when the lines are parallel within ParallelEpsilon.
func closestParamsBetweenLines(pointA, dirA, pointB, dirB Vec3) (s, t float32, ok bool) {
	r := pointA.Sub(pointB)
	a := Dot(dirA, dirA)
	e := Dot(dirB, dirB)
	f := Dot(dirB, r)

	if a <= IntersectionEpsilon && e <= IntersectionEpsilon {
		return 0, 0, true
	}
	if a <= IntersectionEpsilon {
		return 0, f / e, true
	}
	c := Dot(dirA, r)
	if e <= IntersectionEpsilon {
		return -c / a, 0, true
	}

	b := Dot(dirA, dirB)
	denom := a*e - b*b
	if math.Abs(float64(denom)) <= ParallelEpsilon {
		return 0, 0, false
	}

	s = (b*f - c*e) / denom
	t = (a*f - b*c) / denom
	return s, t, true
}
