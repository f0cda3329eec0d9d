package geom

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Point4 is a homogeneous point (x, y, z, w).
//
// With w == 1 it is a cartesian point, with w == 0 a vector (or a point at
// infinity), and otherwise a projective point whose cartesian image is
// (x/w, y/w, z/w). The same type is used for homogeneous planes, in which
// case (x, y, z) is the plane normal and w the negated offset.
type Point4 struct {
	X, Y, Z, W float64
}

// Pt4 returns the homogeneous point (x, y, z, w).
func Pt4(x, y, z, w float64) Point4 {
	return Point4{X: x, Y: y, Z: z, W: w}
}

// Point4FromPoint returns the cartesian point p with weight 1.
func Point4FromPoint(p r3.Vector) Point4 {
	return Point4{p.X, p.Y, p.Z, 1}
}

// Point4FromVector returns the direction v with weight 0.
func Point4FromVector(v r3.Vector) Point4 {
	return Point4{v.X, v.Y, v.Z, 0}
}

// Point4FromPointWeight returns the weighted point (w*p, w), as used for the
// poles of rational curves.
func Point4FromPointWeight(p r3.Vector, w float64) Point4 {
	return Point4{p.X * w, p.Y * w, p.Z * w, w}
}

func (p Point4) Splat() (float64, float64, float64, float64) {
	return p.X, p.Y, p.Z, p.W
}

func (p Point4) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", p.X, p.Y, p.Z, p.W)
}

// XYZ returns the first three components, without dividing by w.
func (p Point4) XYZ() r3.Vector {
	return r3.Vector{X: p.X, Y: p.Y, Z: p.Z}
}

func (p Point4) Add(o Point4) Point4 {
	return Point4{p.X + o.X, p.Y + o.Y, p.Z + o.Z, p.W + o.W}
}

func (p Point4) Sub(o Point4) Point4 {
	return Point4{p.X - o.X, p.Y - o.Y, p.Z - o.Z, p.W - o.W}
}

func (p Point4) Mul(f float64) Point4 {
	return Point4{p.X * f, p.Y * f, p.Z * f, p.W * f}
}

// Lerp linearly interpolates all four components between p and o.
func (p Point4) Lerp(o Point4, t float64) Point4 {
	return Point4{
		X: p.X + t*(o.X-p.X),
		Y: p.Y + t*(o.Y-p.Y),
		Z: p.Z + t*(o.Z-p.Z),
		W: p.W + t*(o.W-p.W),
	}
}

// DotProduct returns the full four component inner product.
func (p Point4) DotProduct(o Point4) float64 {
	return p.X*o.X + p.Y*o.Y + p.Z*o.Z + p.W*o.W
}

// DotProductXYZ returns the inner product of the x, y and z components.
func (p Point4) DotProductXYZ(o Point4) float64 {
	return p.X*o.X + p.Y*o.Y + p.Z*o.Z
}

// DotProductXYW returns the inner product of the x, y and w components.
func (p Point4) DotProductXYW(o Point4) float64 {
	return p.X*o.X + p.Y*o.Y + p.W*o.W
}

// DotProductPoint evaluates p, interpreted as a plane, at the cartesian
// point q (weight 1).
func (p Point4) DotProductPoint(q r3.Vector) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z + p.W
}

// Magnitude returns the four component euclidean length.
func (p Point4) Magnitude() float64 {
	return math.Sqrt(p.DotProduct(p))
}

// Projected returns the cartesian image (x/w, y/w, z/w). It reports false,
// and returns the unscaled xyz part, if w is zero.
func (p Point4) Projected() (r3.Vector, bool) {
	if p.W == 0 {
		return p.XYZ(), false
	}
	a := 1 / p.W
	return r3.Vector{X: p.X * a, Y: p.Y * a, Z: p.Z * a}, true
}

// NormalizeWeight divides all components by w, leaving w == 1. It reports
// false and leaves p unchanged if w is zero.
func (p *Point4) NormalizeWeight() bool {
	if p.W == 0 {
		return false
	}
	a := 1 / p.W
	p.X *= a
	p.Y *= a
	p.Z *= a
	p.W = 1
	return true
}

// AlmostEqual reports whether all components of p and o differ by no more
// than tol.
func (p Point4) AlmostEqual(o Point4, tol float64) bool {
	return math.Abs(p.X-o.X) <= tol &&
		math.Abs(p.Y-o.Y) <= tol &&
		math.Abs(p.Z-o.Z) <= tol &&
		math.Abs(p.W-o.W) <= tol
}

// IsInf reports whether at least one component is infinite.
func (p Point4) IsInf() bool {
	return math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) || math.IsInf(p.Z, 0) || math.IsInf(p.W, 0)
}

// IsNaN reports whether at least one component is NaN.
func (p Point4) IsNaN() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) || math.IsNaN(p.W)
}

// PlaneFromOriginAndNormal returns the homogeneous plane (n, -n·origin)
// through origin with the given normal. The normal is scaled to unit length.
// It reports false if the normal is zero.
func PlaneFromOriginAndNormal(origin, normal r3.Vector) (Point4, bool) {
	mag := normal.Norm()
	if mag == 0 {
		return Point4{}, false
	}
	n := normal.Mul(1 / mag)
	return Point4{n.X, n.Y, n.Z, -n.Dot(origin)}, true
}

// PlaneFromOriginAndVectors returns the plane through origin spanned by the
// in-plane vectors u and v. Its normal is u×v. It reports false if u and v
// are zero or parallel.
func PlaneFromOriginAndVectors(origin, u, v r3.Vector) (Point4, bool) {
	n := u.Cross(v)
	if n.Norm() <= SmallAngle*u.Norm()*v.Norm() {
		return Point4{}, false
	}
	return PlaneFromOriginAndNormal(origin, n)
}

// PlaneFrom3Points returns the plane through p0, p1 and p2, with the normal
// (p1-p0)×(p2-p0). It reports false if the points are collinear.
func PlaneFrom3Points(p0, p1, p2 r3.Vector) (Point4, bool) {
	return PlaneFromOriginAndVectors(p0, p1.Sub(p0), p2.Sub(p0))
}
