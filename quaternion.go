package spatial

import "math"

// Quaternion represents a rotation, trimmed to what the shape kernel needs:
// constructing an orthonormal Mat3 orientation frame for OBB/Ellipsoid/
// Cylinder from a unit quaternion. Euler angle and Slerp helpers are not
// needed here and are omitted.
type Quaternion struct {
	W, X, Y, Z float32
}

func IdentityQuaternion() Quaternion {
	return Quaternion{W: 1}
}

func (q Quaternion) Normalize() Quaternion {
	length := float32(math.Sqrt(float64(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)))
	if length < IntersectionEpsilon {
		return IdentityQuaternion()
	}
	return Quaternion{W: q.W / length, X: q.X / length, Y: q.Y / length, Z: q.Z / length}
}

// QuaternionFromAxisAngle builds a unit quaternion rotating by angle radians
// around axis.
func QuaternionFromAxisAngle(axis Vec3, angle float32) Quaternion {
	axis = axis.Normalize()
	if axis.LengthSquared() == 0 {
		return IdentityQuaternion()
	}
	half := angle * 0.5
	s := float32(math.Sin(float64(half)))
	return Quaternion{W: float32(math.Cos(float64(half))), X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s}
}

// ToMat3 converts a unit quaternion to its equivalent orthonormal rotation
// matrix, used to build OBB/Ellipsoid orientation frames.
func (q Quaternion) ToMat3() Mat3 {
	xx, yy, zz := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	wx, wy, wz := q.W*q.X, q.W*q.Y, q.W*q.Z

	return Mat3{Rows: [3]Vec3{
		{1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy)},
		{2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx)},
		{2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy)},
	}}
}
