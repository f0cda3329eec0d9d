package geom

import (
	"iter"
	"math"

	"github.com/golang/geo/r3"
)

// Transform3 describes a 3D affine transform as a 3×3 matrix followed by a
// translation:
//
//	| m00 m01 m02 tx |
//	| m10 m11 m12 ty |
//	| m20 m21 m22 tz |
//	|  0   0   0   1 |
//
// Like [Matrix4], transforms act on column vectors, so that
// (A.Mul(B)).Apply(p) == A.Apply(B.Apply(p)).
//
// A Transform3 is also used as a coordinate frame: the columns of the matrix
// are the frame's axes and the translation is its origin, mapping local
// coordinates to world coordinates.
type Transform3 struct {
	M [3][3]float64
	T r3.Vector
}

// Identity3 is the identity transform.
var Identity3 = Transform3{M: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}

// Translate3 creates a transform representing translation by v.
func Translate3(v r3.Vector) Transform3 {
	t := Identity3
	t.T = v
	return t
}

// Scale3 creates a transform representing non-uniform scaling.
func Scale3(x, y, z float64) Transform3 {
	return Transform3{M: [3][3]float64{{x, 0, 0}, {0, y, 0}, {0, 0, z}}}
}

// Rotate3 creates a transform representing a right-handed rotation of th
// radians about axis. A zero axis yields the identity.
func Rotate3(axis r3.Vector, th float64) Transform3 {
	mag := axis.Norm()
	if mag == 0 {
		return Identity3
	}
	k := axis.Mul(1 / mag)
	s, c := math.Sincos(th)
	v := 1 - c
	return Transform3{M: [3][3]float64{
		{c + k.X*k.X*v, k.X*k.Y*v - k.Z*s, k.X*k.Z*v + k.Y*s},
		{k.Y*k.X*v + k.Z*s, c + k.Y*k.Y*v, k.Y*k.Z*v - k.X*s},
		{k.Z*k.X*v - k.Y*s, k.Z*k.Y*v + k.X*s, c + k.Z*k.Z*v},
	}}
}

// Frame3 creates the transform whose matrix columns are x, y and z and whose
// translation is origin. The axes need not be orthogonal.
func Frame3(origin, x, y, z r3.Vector) Transform3 {
	return Transform3{
		M: [3][3]float64{
			{x.X, y.X, z.X},
			{x.Y, y.Y, z.Y},
			{x.Z, y.Z, z.Z},
		},
		T: origin,
	}
}

// Axis returns column i of the matrix part.
func (t Transform3) Axis(i int) r3.Vector {
	return r3.Vector{X: t.M[0][i], Y: t.M[1][i], Z: t.M[2][i]}
}

func (t Transform3) Mul(o Transform3) Transform3 {
	var r Transform3
	for i := range 3 {
		for j := range 3 {
			r.M[i][j] = t.M[i][0]*o.M[0][j] + t.M[i][1]*o.M[1][j] + t.M[i][2]*o.M[2][j]
		}
	}
	r.T = t.Apply(o.T)
	return r
}

// PreTranslate creates a translation of v followed by t.
//
// Equivalent to "t * Translate3(v)"
func (t Transform3) PreTranslate(v r3.Vector) Transform3 {
	return t.Mul(Translate3(v))
}

// ThenTranslate creates t followed by a translation of v.
//
// Equivalent to "Translate3(v) * t"
func (t Transform3) ThenTranslate(v r3.Vector) Transform3 {
	t.T = t.T.Add(v)
	return t
}

// PreScale creates a scale by (x, y, z) followed by t.
//
// Equivalent to "t * Scale3(x, y, z)"
func (t Transform3) PreScale(x, y, z float64) Transform3 {
	return t.Mul(Scale3(x, y, z))
}

// ThenScale creates t followed by a scale of (x, y, z).
//
// Equivalent to "Scale3(x, y, z) * t"
func (t Transform3) ThenScale(x, y, z float64) Transform3 {
	return Scale3(x, y, z).Mul(t)
}

// PreRotate creates a rotation of th about axis followed by t.
//
// Equivalent to "t * Rotate3(axis, th)"
func (t Transform3) PreRotate(axis r3.Vector, th float64) Transform3 {
	return t.Mul(Rotate3(axis, th))
}

// ThenRotate creates t followed by a rotation of th about axis.
//
// Equivalent to "Rotate3(axis, th) * t"
func (t Transform3) ThenRotate(axis r3.Vector, th float64) Transform3 {
	return Rotate3(axis, th).Mul(t)
}

// Apply transforms the point p.
func (t Transform3) Apply(p r3.Vector) r3.Vector {
	return t.ApplyVector(p).Add(t.T)
}

// ApplyVector transforms the direction v, ignoring the translation.
func (t Transform3) ApplyVector(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: t.M[0][0]*v.X + t.M[0][1]*v.Y + t.M[0][2]*v.Z,
		Y: t.M[1][0]*v.X + t.M[1][1]*v.Y + t.M[1][2]*v.Z,
		Z: t.M[2][0]*v.X + t.M[2][1]*v.Y + t.M[2][2]*v.Z,
	}
}

// Determinant computes the determinant of the matrix part.
func (t Transform3) Determinant() float64 {
	m := &t.M
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Invert computes the inverse transform. It reports false if the matrix part
// is singular.
func (t Transform3) Invert() (Transform3, bool) {
	det := t.Determinant()
	scale := t.Axis(0).Norm() * t.Axis(1).Norm() * t.Axis(2).Norm()
	if scale == 0 || math.Abs(det) <= SingularRelTol*scale {
		return Transform3{}, false
	}
	m := &t.M
	inv := 1 / det
	var r Transform3
	r.M[0][0] = inv * (m[1][1]*m[2][2] - m[1][2]*m[2][1])
	r.M[0][1] = inv * (m[0][2]*m[2][1] - m[0][1]*m[2][2])
	r.M[0][2] = inv * (m[0][1]*m[1][2] - m[0][2]*m[1][1])
	r.M[1][0] = inv * (m[1][2]*m[2][0] - m[1][0]*m[2][2])
	r.M[1][1] = inv * (m[0][0]*m[2][2] - m[0][2]*m[2][0])
	r.M[1][2] = inv * (m[0][2]*m[1][0] - m[0][0]*m[1][2])
	r.M[2][0] = inv * (m[1][0]*m[2][1] - m[1][1]*m[2][0])
	r.M[2][1] = inv * (m[0][1]*m[2][0] - m[0][0]*m[2][1])
	r.M[2][2] = inv * (m[0][0]*m[1][1] - m[0][1]*m[1][0])
	r.T = r.ApplyVector(t.T).Mul(-1)
	return r, true
}

// Matrix4 returns t as a 4×4 matrix with bottom row (0, 0, 0, 1).
func (t Transform3) Matrix4() Matrix4 {
	return Matrix4{
		{t.M[0][0], t.M[0][1], t.M[0][2], t.T.X},
		{t.M[1][0], t.M[1][1], t.M[1][2], t.T.Y},
		{t.M[2][0], t.M[2][1], t.M[2][2], t.T.Z},
		{0, 0, 0, 1},
	}
}

// AlmostEqual reports whether all coefficients differ by no more than tol.
func (t Transform3) AlmostEqual(o Transform3, tol float64) bool {
	for i := range 3 {
		for j := range 3 {
			if math.Abs(t.M[i][j]-o.M[i][j]) > tol {
				return false
			}
		}
	}
	return math.Abs(t.T.X-o.T.X) <= tol &&
		math.Abs(t.T.Y-o.T.Y) <= tol &&
		math.Abs(t.T.Z-o.T.Z) <= tol
}

func (t Transform3) IsNaN() bool {
	for i := range 3 {
		for j := range 3 {
			if math.IsNaN(t.M[i][j]) {
				return true
			}
		}
	}
	return math.IsNaN(t.T.X) || math.IsNaN(t.T.Y) || math.IsNaN(t.T.Z)
}

// TransformBoxBoundingBox returns the minimal [Box3] that encloses the given
// box after transformation. If the transform is axis-aligned, the result is
// tight.
func (t Transform3) TransformBoxBoundingBox(b Box3) Box3 {
	out := Box3{t.Apply(b.Low), t.Apply(b.Low)}
	for i := 1; i < 8; i++ {
		c := b.Low
		if i&1 != 0 {
			c.X = b.High.X
		}
		if i&2 != 0 {
			c.Y = b.High.Y
		}
		if i&4 != 0 {
			c.Z = b.High.Z
		}
		out = out.UnionPoint(t.Apply(c))
	}
	return out
}

// TransformPoints applies t to every point of seq.
func TransformPoints(seq iter.Seq[r3.Vector], t Transform3) iter.Seq[r3.Vector] {
	return func(yield func(r3.Vector) bool) {
		for v := range seq {
			if !yield(t.Apply(v)) {
				break
			}
		}
	}
}
