package geom

import (
	"math"

	"github.com/golang/geo/r3"
)

// MaxOrder is the largest curve order a [BCurveSegment] can hold.
const MaxOrder = 26

// BCurveSegment is a single Bézier piece of a B-spline curve.
//
// It holds exactly Order homogeneous poles and 2*Order local knots in fixed
// size arrays. The poles are in Bézier form: the segment is the polynomial
// (or rational) piece of the parent curve on the knot interval [UMin, UMax],
// reparametrized to the fraction range [0, 1].
//
// A segment copies the values it is built from and never refers back to the
// parent curve's storage.
type BCurveSegment struct {
	poles [MaxOrder]Point4
	knots [2 * MaxOrder]float64
	order int

	// UMin and UMax bound the knot interval of the parent curve that this
	// segment represents.
	UMin, UMax float64
	// Index is the span index within the parent curve.
	Index int
	// IsNullU is set if the knot interval has zero length. The poles of
	// such a segment are not saturated and don't describe a curve.
	IsNullU bool
}

// NewBCurveSegment builds a Bézier segment from order B-spline poles and the
// 2*order knots that start at the same index in the parent curve. The knot
// interval of the segment is [knots[order-1], knots[order]].
//
// It reports false if order is less than 1 or larger than [MaxOrder], or if
// the number of knots doesn't match.
func NewBCurveSegment(poles []Point4, knots []float64) (BCurveSegment, bool) {
	k := len(poles)
	if k < 1 || k > MaxOrder || len(knots) != 2*k {
		return BCurveSegment{}, false
	}
	var seg BCurveSegment
	seg.order = k
	copy(seg.poles[:k], poles)
	copy(seg.knots[:2*k], knots)
	seg.UMin = knots[k-1]
	seg.UMax = knots[k]
	if seg.UMax-seg.UMin <= knotTolerance(knots[0], knots[2*k-1]) {
		seg.IsNullU = true
		return seg, true
	}
	seg.saturate()
	return seg, true
}

// NewBezierSegment returns the segment with the given Bézier poles on the
// knot interval [u0, u1].
func NewBezierSegment(poles []Point4, u0, u1 float64) (BCurveSegment, bool) {
	k := len(poles)
	if k < 1 || k > MaxOrder {
		return BCurveSegment{}, false
	}
	var seg BCurveSegment
	seg.order = k
	copy(seg.poles[:k], poles)
	for i := range k {
		seg.knots[i] = u0
		seg.knots[k+i] = u1
	}
	seg.UMin, seg.UMax = u0, u1
	seg.IsNullU = u1 == u0
	return seg, true
}

// saturate converts the poles to Bézier form by inserting UMin and UMax
// until both have multiplicity order-1 in the local knots.
func (seg *BCurveSegment) saturate() {
	k := seg.order
	if k < 2 {
		return
	}
	a, b := seg.UMin, seg.UMax
	p := seg.poles[:k]
	t := seg.knots[:2*k]

	// Insert a; the leftmost pole and knot drop out of the window.
	for n := 0; t[1] < a && n < k; n++ {
		var q [MaxOrder]Point4
		for i := 1; i < k; i++ {
			alpha := (a - t[i]) / (t[i+k-1] - t[i])
			q[i-1] = p[i-1].Lerp(p[i], alpha)
		}
		q[k-1] = p[k-1]
		copy(p, q[:k])
		copy(t[0:k-1], t[1:k])
		t[k-1] = a
	}

	// Insert b; the rightmost pole and knot drop out of the window.
	for n := 0; t[2*k-2] > b && n < k; n++ {
		var q [MaxOrder]Point4
		q[0] = p[0]
		for i := 1; i < k; i++ {
			alpha := (b - t[i]) / (t[i+k-1] - t[i])
			q[i] = p[i-1].Lerp(p[i], alpha)
		}
		copy(p, q[:k])
		copy(t[k+1:2*k], t[k:2*k-1])
		t[k] = b
	}

	for i := range k {
		t[i] = a
		t[k+i] = b
	}
}

// Order returns the number of poles.
func (seg *BCurveSegment) Order() int { return seg.order }

// Poles returns the Bézier poles. The slice aliases the segment's storage.
func (seg *BCurveSegment) Poles() []Point4 { return seg.poles[:seg.order] }

// Knots returns the 2*Order local knots. The slice aliases the segment's
// storage.
func (seg *BCurveSegment) Knots() []float64 { return seg.knots[:2*seg.order] }

// FractionToKnot maps a fraction of the segment to the parent's knot value.
func (seg *BCurveSegment) FractionToKnot(f float64) float64 {
	return seg.UMin + f*(seg.UMax-seg.UMin)
}

// KnotToFraction maps a knot value of the parent to a fraction of the
// segment. It returns 0 for null segments.
func (seg *BCurveSegment) KnotToFraction(u float64) float64 {
	if seg.IsNullU {
		return 0
	}
	return (u - seg.UMin) / (seg.UMax - seg.UMin)
}

// FractionToPoint evaluates the segment at fraction f using de Casteljau's
// algorithm on the homogeneous poles.
func (seg *BCurveSegment) FractionToPoint(f float64) Point4 {
	pt, _ := seg.FractionToPointAndDerivative(f)
	return pt
}

// FractionToPointAndDerivative evaluates the segment and its derivative with
// respect to the fraction, both in homogeneous form.
func (seg *BCurveSegment) FractionToPointAndDerivative(f float64) (Point4, Point4) {
	k := seg.order
	switch k {
	case 0:
		return Point4{}, Point4{}
	case 1:
		return seg.poles[0], Point4{}
	}
	var q [MaxOrder]Point4
	copy(q[:k], seg.poles[:k])
	for n := k - 1; n > 1; n-- {
		for i := 0; i < n; i++ {
			q[i] = q[i].Lerp(q[i+1], f)
		}
	}
	pt := q[0].Lerp(q[1], f)
	d := q[1].Sub(q[0]).Mul(float64(k - 1))
	return pt, d
}

// FractionToPoint3 evaluates the segment at fraction f and projects the
// result to cartesian coordinates. It reports false if the weight is zero.
func (seg *BCurveSegment) FractionToPoint3(f float64) (r3.Vector, bool) {
	return seg.FractionToPoint(f).Projected()
}

// FractionToPoint3AndTangent returns the cartesian point at fraction f and
// its derivative with respect to the fraction, applying the quotient rule
// for rational segments. It reports false if the weight is zero.
func (seg *BCurveSegment) FractionToPoint3AndTangent(f float64) (r3.Vector, r3.Vector, bool) {
	pt, d := seg.FractionToPointAndDerivative(f)
	if pt.W == 0 {
		return r3.Vector{}, r3.Vector{}, false
	}
	a := 1 / pt.W
	x := pt.XYZ().Mul(a)
	// (X' w - X w') / w²
	tan := d.XYZ().Sub(x.Mul(d.W)).Mul(a)
	return x, tan, true
}

// Subdivide splits the segment at fraction f, using de Casteljau.
func (seg *BCurveSegment) Subdivide(f float64) (BCurveSegment, BCurveSegment) {
	k := seg.order
	var left, right [MaxOrder]Point4
	var q [MaxOrder]Point4
	copy(q[:k], seg.poles[:k])
	for n := k; n > 0; n-- {
		left[k-n] = q[0]
		right[n-1] = q[n-1]
		for i := 0; i < n-1; i++ {
			q[i] = q[i].Lerp(q[i+1], f)
		}
	}
	u := seg.FractionToKnot(f)
	s0, _ := NewBezierSegment(left[:k], seg.UMin, u)
	s1, _ := NewBezierSegment(right[:k], u, seg.UMax)
	s0.Index, s1.Index = seg.Index, seg.Index
	return s0, s1
}

// Arclen returns the arc length of the projected segment, using adaptive
// Legendre-Gauss quadrature of the tangent magnitude. Null segments and
// segments with zero weights have length 0.
func (seg *BCurveSegment) Arclen(accuracy float64) float64 {
	if seg.IsNullU || seg.order < 2 {
		return 0
	}
	l := integrateAdaptive(0, 1, accuracy, func(f float64) float64 {
		_, tan, ok := seg.FractionToPoint3AndTangent(f)
		if !ok {
			return 0
		}
		return tan.Norm()
	})
	if math.IsNaN(l) {
		return 0
	}
	return l
}
