package spatial

// Mat3 is a 3x3 matrix stored row-major, used as the orientation frame for
// OBB and ellipsoid shapes. Rows are expected to be orthonormal for valid
// orientations, matching the source engine's contract.
type Mat3 struct {
	Rows [3]Vec3
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{Rows: [3]Vec3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}}
}

// Col returns column i of the matrix.
func (m Mat3) Col(i int) Vec3 {
	return Vec3{m.Rows[0].Get(i), m.Rows[1].Get(i), m.Rows[2].Get(i)}
}

// MulVec3 applies the matrix to a column vector: m * v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		X: Dot(m.Rows[0], v),
		Y: Dot(m.Rows[1], v),
		Z: Dot(m.Rows[2], v),
	}
}

// Transpose returns the transpose of m.
func (m Mat3) Transpose() Mat3 {
	return Mat3{Rows: [3]Vec3{
		{m.Rows[0].X, m.Rows[1].X, m.Rows[2].X},
		{m.Rows[0].Y, m.Rows[1].Y, m.Rows[2].Y},
		{m.Rows[0].Z, m.Rows[1].Z, m.Rows[2].Z},
	}}
}

// Mul returns the matrix product m * o.
func (m Mat3) Mul(o Mat3) Mat3 {
	ot := o.Transpose()
	return Mat3{Rows: [3]Vec3{
		{Dot(m.Rows[0], ot.Rows[0]), Dot(m.Rows[0], ot.Rows[1]), Dot(m.Rows[0], ot.Rows[2])},
		{Dot(m.Rows[1], ot.Rows[0]), Dot(m.Rows[1], ot.Rows[1]), Dot(m.Rows[1], ot.Rows[2])},
		{Dot(m.Rows[2], ot.Rows[0]), Dot(m.Rows[2], ot.Rows[1]), Dot(m.Rows[2], ot.Rows[2])},
	}}
}

// At returns element (row, col).
func (m Mat3) At(row, col int) float32 {
	return m.Rows[row].Get(col)
}

// FromAxes builds an orientation matrix whose columns are the given (assumed
// orthonormal) basis vectors expressed in world space.
func FromAxes(axisX, axisY, axisZ Vec3) Mat3 {
	return Mat3{Rows: [3]Vec3{
		{axisX.X, axisY.X, axisZ.X},
		{axisX.Y, axisY.Y, axisZ.Y},
		{axisX.Z, axisY.Z, axisZ.Z},
	}}
}
