package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix4 is a row-major 4×4 matrix acting on column [Point4] values, so
// that (A.Mul(B)).MulPoint4(p) == A.MulPoint4(B.MulPoint4(p)).
type Matrix4 [4][4]float64

// Identity4 is the 4×4 identity matrix.
var Identity4 = Matrix4{
	{1, 0, 0, 0},
	{0, 1, 0, 0},
	{0, 0, 1, 0},
	{0, 0, 0, 1},
}

// Matrix4FromRows returns the matrix whose rows are the given points.
func Matrix4FromRows(r0, r1, r2, r3 Point4) Matrix4 {
	return Matrix4{
		{r0.X, r0.Y, r0.Z, r0.W},
		{r1.X, r1.Y, r1.Z, r1.W},
		{r2.X, r2.Y, r2.Z, r2.W},
		{r3.X, r3.Y, r3.Z, r3.W},
	}
}

// Matrix4FromColumns returns the matrix whose columns are the given points.
func Matrix4FromColumns(c0, c1, c2, c3 Point4) Matrix4 {
	return Matrix4FromRows(c0, c1, c2, c3).Transpose()
}

func (m Matrix4) Row(i int) Point4 {
	return Point4{m[i][0], m[i][1], m[i][2], m[i][3]}
}

func (m Matrix4) Column(j int) Point4 {
	return Point4{m[0][j], m[1][j], m[2][j], m[3][j]}
}

func (m Matrix4) Mul(o Matrix4) Matrix4 {
	var r Matrix4
	for i := range 4 {
		for j := range 4 {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j] + m[i][3]*o[3][j]
		}
	}
	return r
}

func (m Matrix4) Transpose() Matrix4 {
	var r Matrix4
	for i := range 4 {
		for j := range 4 {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// MulPoint4 returns m·p.
func (m Matrix4) MulPoint4(p Point4) Point4 {
	return Point4{
		m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]*p.W,
		m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]*p.W,
		m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]*p.W,
		m[3][0]*p.X + m[3][1]*p.Y + m[3][2]*p.Z + m[3][3]*p.W,
	}
}

// MulPoint4Transposed returns mᵀ·p. This is how covectors such as planes
// are carried through a matrix.
func (m Matrix4) MulPoint4Transposed(p Point4) Point4 {
	return Point4{
		m[0][0]*p.X + m[1][0]*p.Y + m[2][0]*p.Z + m[3][0]*p.W,
		m[0][1]*p.X + m[1][1]*p.Y + m[2][1]*p.Z + m[3][1]*p.W,
		m[0][2]*p.X + m[1][2]*p.Y + m[2][2]*p.Z + m[3][2]*p.W,
		m[0][3]*p.X + m[1][3]*p.Y + m[2][3]*p.Z + m[3][3]*p.W,
	}
}

func (m Matrix4) dense() *mat.Dense {
	data := make([]float64, 0, 16)
	for i := range 4 {
		data = append(data, m[i][:]...)
	}
	return mat.NewDense(4, 4, data)
}

// Determinant computes the determinant.
func (m Matrix4) Determinant() float64 {
	return mat.Det(m.dense())
}

// rowScale returns the product of the row magnitudes, which bounds the
// absolute value of the determinant.
func (m Matrix4) rowScale() float64 {
	s := 1.0
	for i := range 4 {
		s *= m.Row(i).Magnitude()
	}
	return s
}

// IsSingular reports whether the determinant is negligible relative to the
// magnitude of the rows.
func (m Matrix4) IsSingular() bool {
	s := m.rowScale()
	if s == 0 {
		return true
	}
	return math.Abs(m.Determinant()) <= SingularRelTol*s
}

// Invert computes the algebraic inverse. It reports false if m is singular,
// in which case the returned matrix is meaningless.
func (m Matrix4) Invert() (Matrix4, bool) {
	if m.IsSingular() {
		return Matrix4{}, false
	}
	var inv mat.Dense
	if err := inv.Inverse(m.dense()); err != nil {
		return Matrix4{}, false
	}
	var r Matrix4
	for i := range 4 {
		for j := range 4 {
			r[i][j] = inv.At(i, j)
		}
	}
	return r, true
}

// IsAffine reports whether the bottom row is (0, 0, 0, 1).
func (m Matrix4) IsAffine() bool {
	return m[3][0] == 0 && m[3][1] == 0 && m[3][2] == 0 && m[3][3] == 1
}

// IsPerspective reports whether m is a non-singular, non-affine matrix, i.e.
// one whose bottom row mixes weights into the result.
func (m Matrix4) IsPerspective() bool {
	return !m.IsAffine() && !m.IsSingular()
}

// IsIdentity reports whether m is the identity within a small tolerance.
func (m Matrix4) IsIdentity() bool {
	return m.AlmostEqual(Identity4, matrixTol)
}

// AlmostEqual reports whether all entries differ by no more than tol.
func (m Matrix4) AlmostEqual(o Matrix4, tol float64) bool {
	for i := range 4 {
		for j := range 4 {
			if math.Abs(m[i][j]-o[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

// MaxAbsDiff returns the largest entry-wise absolute difference.
func (m Matrix4) MaxAbsDiff(o Matrix4) float64 {
	var d float64
	for i := range 4 {
		for j := range 4 {
			d = max(d, math.Abs(m[i][j]-o[i][j]))
		}
	}
	return d
}

func (m Matrix4) String() string {
	return fmt.Sprintf("[%v %v %v %v]", m[0], m[1], m[2], m[3])
}
