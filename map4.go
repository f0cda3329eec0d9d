package geom

import (
	"math"

	"github.com/golang/geo/r3"
)

// Map4 is a projective transform carried together with its inverse.
//
// M0 is the forward matrix and M1 its inverse. InverseValid is false if M0
// is singular, in which case M1 must not be used. Maps are built by the
// constructors below, which compute the inverse in closed form whenever
// possible, so that composing maps never needs a numerical inversion.
type Map4 struct {
	M0, M1       Matrix4
	InverseValid bool
}

// IdentityMap4 is the identity map.
var IdentityMap4 = Map4{M0: Identity4, M1: Identity4, InverseValid: true}

// Map4FromMatrix returns the map with forward matrix m, computing the
// inverse numerically. InverseValid is false if m is singular.
func Map4FromMatrix(m Matrix4) Map4 {
	inv, ok := m.Invert()
	return Map4{M0: m, M1: inv, InverseValid: ok}
}

// Map4FromMatrices returns the map with the given forward and inverse
// matrices. The caller is responsible for minv actually being the inverse.
func Map4FromMatrices(m, minv Matrix4) Map4 {
	return Map4{M0: m, M1: minv, InverseValid: true}
}

// Map4FromTransform3 returns the map of the affine transform t.
func Map4FromTransform3(t Transform3) Map4 {
	inv, ok := t.Invert()
	return Map4{M0: t.Matrix4(), M1: inv.Matrix4(), InverseValid: ok}
}

// ScaleMap4 creates a map representing non-uniform scaling. The inverse is
// invalid if any factor is zero.
func ScaleMap4(x, y, z float64) Map4 {
	m := Map4{
		M0: Matrix4{{x, 0, 0, 0}, {0, y, 0, 0}, {0, 0, z, 0}, {0, 0, 0, 1}},
	}
	if x != 0 && y != 0 && z != 0 {
		m.M1 = Matrix4{{1 / x, 0, 0, 0}, {0, 1 / y, 0, 0}, {0, 0, 1 / z, 0}, {0, 0, 0, 1}}
		m.InverseValid = true
	}
	return m
}

// TranslateMap4 creates a map representing translation by (x, y, z).
func TranslateMap4(x, y, z float64) Map4 {
	return Map4{
		M0:           Matrix4{{1, 0, 0, x}, {0, 1, 0, y}, {0, 0, 1, z}, {0, 0, 0, 1}},
		M1:           Matrix4{{1, 0, 0, -x}, {0, 1, 0, -y}, {0, 0, 1, -z}, {0, 0, 0, 1}},
		InverseValid: true,
	}
}

// RotateMap4 creates a map representing a right-handed rotation of th
// radians about axis. The inverse is the transpose.
func RotateMap4(axis r3.Vector, th float64) Map4 {
	m := Rotate3(axis, th).Matrix4()
	return Map4{M0: m, M1: m.Transpose(), InverseValid: true}
}

// BoxMap4 creates the map that takes the box from onto the box to, corner
// to corner: from.Low goes to to.Low and from.High to to.High. It reports
// false if either box has a zero extent along any axis.
func BoxMap4(from, to Box3) (Map4, bool) {
	a := from.Size()
	b := to.Size()
	if a.X == 0 || a.Y == 0 || a.Z == 0 || b.X == 0 || b.Y == 0 || b.Z == 0 {
		return IdentityMap4, false
	}
	s := r3.Vector{X: b.X / a.X, Y: b.Y / a.Y, Z: b.Z / a.Z}
	// to.Low + s*(p - from.Low)
	t := r3.Vector{
		X: to.Low.X - s.X*from.Low.X,
		Y: to.Low.Y - s.Y*from.Low.Y,
		Z: to.Low.Z - s.Z*from.Low.Z,
	}
	// from.Low + (q - to.Low)/s
	u := r3.Vector{
		X: from.Low.X - to.Low.X/s.X,
		Y: from.Low.Y - to.Low.Y/s.Y,
		Z: from.Low.Z - to.Low.Z/s.Z,
	}
	return Map4{
		M0: Matrix4{
			{s.X, 0, 0, t.X},
			{0, s.Y, 0, t.Y},
			{0, 0, s.Z, t.Z},
			{0, 0, 0, 1},
		},
		M1: Matrix4{
			{1 / s.X, 0, 0, u.X},
			{0, 1 / s.Y, 0, u.Y},
			{0, 0, 1 / s.Z, u.Z},
			{0, 0, 0, 1},
		},
		InverseValid: true,
	}, true
}

// TaperMap4 creates the perspective map that leaves the plane z = 0 fixed
// and shrinks the plane z = 1 by the factor taper about the z axis, while
// keeping z = 1 at z = 1. The unit cube maps to a frustum. It reports false
// if taper is zero.
func TaperMap4(taper float64) (Map4, bool) {
	if taper == 0 || math.IsInf(1/taper, 0) {
		return IdentityMap4, false
	}
	a := 1/taper - 1
	// w' = 1 + a*z and z' = (1+a)*z, so z' / w' is 0 at z = 0 and 1 at z = 1.
	// The inverse is z = z' / (1+a) and w = w' - a*z.
	b := 1 + a
	return Map4{
		M0: Matrix4{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, b, 0},
			{0, 0, a, 1},
		},
		M1: Matrix4{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 1 / b, 0},
			{0, 0, -a / b, 1},
		},
		InverseValid: true,
	}, true
}

// FrustumMap4 creates a camera projection that maps the viewing frustum with
// its eye at the origin, looking down the negative z axis, onto the cube
// [-1, 1]³. left, right, bottom and top describe the frustum's cross-section
// at the near plane z = -near; the far plane is z = -far. It reports false
// for an empty cross-section or unless 0 < near < far.
func FrustumMap4(left, right, bottom, top, near, far float64) (Map4, bool) {
	if right == left || top == bottom || near <= 0 || far <= near {
		return IdentityMap4, false
	}
	rl := right - left
	tb := top - bottom
	fn := far - near
	m := Matrix4{
		{2 * near / rl, 0, (right + left) / rl, 0},
		{0, 2 * near / tb, (top + bottom) / tb, 0},
		{0, 0, -(far + near) / fn, -2 * far * near / fn},
		{0, 0, -1, 0},
	}
	minv := Matrix4{
		{rl / (2 * near), 0, 0, (right + left) / (2 * near)},
		{0, tb / (2 * near), 0, (top + bottom) / (2 * near)},
		{0, 0, 0, -1},
		{0, 0, -fn / (2 * far * near), (far + near) / (2 * far * near)},
	}
	return Map4{M0: m, M1: minv, InverseValid: true}, true
}

// SkewFrameMap4 creates the map from the local coordinates of the frame
// (origin, x, y, z) to world coordinates. The axes need not be orthogonal or
// of unit length. It reports false if the axes are linearly dependent.
func SkewFrameMap4(origin, x, y, z r3.Vector) (Map4, bool) {
	m := Map4FromTransform3(Frame3(origin, x, y, z))
	if !m.InverseValid {
		return IdentityMap4, false
	}
	return m, true
}

// Inverse returns the inverse map by swapping the forward and inverse
// matrices. The result is meaningless unless m.InverseValid.
func (m Map4) Inverse() Map4 {
	return Map4{M0: m.M1, M1: m.M0, InverseValid: m.InverseValid}
}

// Invert re-derives the inverse of M0 numerically. The caller must check
// [Map4.IsSingular] first; for a singular map the result has InverseValid
// false and M1 is meaningless.
func (m Map4) Invert() Map4 {
	return Map4FromMatrix(m.M0)
}

// Mul returns the composition m·o, i.e. o followed by m.
func (m Map4) Mul(o Map4) Map4 {
	return Map4{
		M0:           m.M0.Mul(o.M0),
		M1:           o.M1.Mul(m.M1),
		InverseValid: m.InverseValid && o.InverseValid,
	}
}

// MulInverted composes a and b, using the inverse of a if invertA and the
// inverse of b if invertB. The inverses are taken from the stored inverse
// matrices, never recomputed.
func MulInverted(a Map4, invertA bool, b Map4, invertB bool) Map4 {
	if invertA {
		a = a.Inverse()
	}
	if invertB {
		b = b.Inverse()
	}
	return a.Mul(b)
}

// Sandwich returns C·B⁻¹·A·B·C⁻¹, the map a expressed through the change of
// coordinates b and then c. The inverse is assembled from the stored
// inverses of the operands.
func Sandwich(a, b, c Map4) Map4 {
	return c.Mul(b.Inverse()).Mul(a).Mul(b).Mul(c.Inverse())
}

// Apply maps the homogeneous point p through M0.
func (m Map4) Apply(p Point4) Point4 {
	return m.M0.MulPoint4(p)
}

// ApplyInverse maps p through M1. The result is meaningless unless
// m.InverseValid.
func (m Map4) ApplyInverse(p Point4) Point4 {
	return m.M1.MulPoint4(p)
}

// ApplyPoint3 maps the cartesian point p (weight 1) through M0.
func (m Map4) ApplyPoint3(p r3.Vector) Point4 {
	return m.M0.MulPoint4(Point4FromPoint(p))
}

// ApplyPlane maps the homogeneous plane pl so that for every point p,
// m.ApplyPlane(pl)·m.Apply(p) == pl·p. It uses the transposed inverse and
// reports false if the inverse is invalid.
func (m Map4) ApplyPlane(pl Point4) (Point4, bool) {
	if !m.InverseValid {
		return pl, false
	}
	return m.M1.MulPoint4Transposed(pl), true
}

func (m Map4) IsSingular() bool    { return !m.InverseValid || m.M0.IsSingular() }
func (m Map4) IsAffine() bool      { return m.M0.IsAffine() }
func (m Map4) IsPerspective() bool { return m.M0.IsPerspective() }
func (m Map4) IsIdentity() bool    { return m.M0.IsIdentity() }

// AlmostEqual reports whether both matrices of m and o agree within tol.
func (m Map4) AlmostEqual(o Map4, tol float64) bool {
	return m.InverseValid == o.InverseValid &&
		m.M0.AlmostEqual(o.M0, tol) &&
		(!m.InverseValid || m.M1.AlmostEqual(o.M1, tol))
}
