package geom

import (
	"iter"

	"github.com/golang/geo/r3"
)

// BsplineCurve is a (possibly rational) B-spline curve.
//
// Knots is the full knot vector, with len(Knots) == len(Poles)+Order.
// Rational curves carry their weights in the W component of the poles,
// which are stored weighted, i.e. as (w*x, w*y, w*z, w). Polynomial curves
// have W == 1 throughout.
//
// A closed curve is stored in its opened form: the wrapped poles and the
// matching knots are explicitly present. Closed only records the intent.
type BsplineCurve struct {
	Poles  []Point4
	Knots  []float64
	Order  int
	Closed bool
}

// NewPolynomialBsplineCurve returns the non-rational curve with the given
// cartesian poles.
func NewPolynomialBsplineCurve(poles []r3.Vector, knots []float64, order int) *BsplineCurve {
	c := &BsplineCurve{
		Poles: make([]Point4, len(poles)),
		Knots: knots,
		Order: order,
	}
	for i, p := range poles {
		c.Poles[i] = Point4FromPoint(p)
	}
	return c
}

// UniformClampedKnots returns the knot vector of a spline with numPoles
// poles whose interior knots are 1, 2, … and whose end knots have full
// multiplicity, so that the curve starts and ends at its end poles.
func UniformClampedKnots(numPoles, order int) []float64 {
	knots := make([]float64, numPoles+order)
	last := float64(numPoles - order + 1)
	for i := range knots {
		switch {
		case i < order:
			knots[i] = 0
		case i >= numPoles:
			knots[i] = last
		default:
			knots[i] = float64(i - order + 1)
		}
	}
	return knots
}

// NumBeziers returns the number of polynomial spans of c, including spans
// of zero length at repeated knots.
func (c *BsplineCurve) NumBeziers() int {
	return max(0, len(c.Poles)-c.Order+1)
}

// ActiveKnotRange returns the parameter range on which c is defined.
func (c *BsplineCurve) ActiveKnotRange() (float64, float64) {
	return c.Knots[c.Order-1], c.Knots[len(c.Poles)]
}

// GetBezier extracts span sel of c as a Bézier segment. It reports false if
// sel is out of range or if the curve's order exceeds [MaxOrder]. Spans of
// zero length yield a segment with IsNullU set, which callers should skip.
func (c *BsplineCurve) GetBezier(sel int) (BCurveSegment, bool) {
	if sel < 0 || sel >= c.NumBeziers() || len(c.Knots) < sel+2*c.Order {
		return BCurveSegment{}, false
	}
	seg, ok := NewBCurveSegment(c.Poles[sel:sel+c.Order], c.Knots[sel:sel+2*c.Order])
	if !ok {
		return BCurveSegment{}, false
	}
	seg.Index = sel
	return seg, true
}

// Beziers yields the non-null Bézier segments of c in parameter order. The
// segments are located through the knot multiplicities, so null spans are
// never extracted.
func (c *BsplineCurve) Beziers() iter.Seq[BCurveSegment] {
	return func(yield func(BCurveSegment) bool) {
		kd, ok := LoadCurveKnots(c)
		if !ok {
			return
		}
		for i := range kd.NumActiveIntervals() {
			s, ok := kd.SpanIndexOfActiveInterval(i)
			if !ok {
				return
			}
			seg, ok := c.GetBezier(s)
			if !ok {
				return
			}
			if seg.IsNullU {
				continue
			}
			if !yield(seg) {
				return
			}
		}
	}
}

// findSpan returns the span index s such that Knots[s+Order-1] <= u <
// Knots[s+Order], clamping u to the active range. At the right end of the
// range, the last non-null span is used.
func (c *BsplineCurve) findSpan(u float64) int {
	k := c.Order
	n := len(c.Poles)
	s := 0
	for s < n-k && c.Knots[s+k] <= u {
		s++
	}
	for s > 0 && c.Knots[s+k] == c.Knots[s+k-1] {
		s--
	}
	return s
}

// KnotToPoint evaluates c at the knot value u using de Boor's algorithm.
// The result is homogeneous; see [Point4.Projected].
func (c *BsplineCurve) KnotToPoint(u float64) Point4 {
	k := c.Order
	if k < 1 || k > MaxOrder || len(c.Poles) < k || len(c.Knots) != len(c.Poles)+k {
		return Point4{}
	}
	s := c.findSpan(u)
	if k == 1 {
		return c.Poles[s]
	}
	var d [MaxOrder]Point4
	copy(d[:k], c.Poles[s:s+k])
	t := c.Knots
	p := k - 1
	l := s + p
	for r := 1; r <= p; r++ {
		for j := p; j >= r; j-- {
			lo := t[j+l-p]
			hi := t[j+1+l-r]
			a := 0.0
			if hi > lo {
				a = (u - lo) / (hi - lo)
			}
			d[j] = d[j-1].Lerp(d[j], a)
		}
	}
	return d[p]
}

// BsplineSurface is a (possibly rational) tensor product B-spline surface.
// Poles is stored u-major: the pole at (i, j) is Poles[j*NumU+i].
type BsplineSurface struct {
	Poles   []Point4
	NumU    int
	NumV    int
	UOrder  int
	VOrder  int
	UKnots  []float64
	VKnots  []float64
	UClosed bool
	VClosed bool
}

// Pole returns the pole at column i and row j.
func (s *BsplineSurface) Pole(i, j int) Point4 {
	return s.Poles[j*s.NumU+i]
}

// URow returns row j of the pole grid as a curve in the u direction.
func (s *BsplineSurface) URow(j int) *BsplineCurve {
	return &BsplineCurve{
		Poles:  s.Poles[j*s.NumU : (j+1)*s.NumU],
		Knots:  s.UKnots,
		Order:  s.UOrder,
		Closed: s.UClosed,
	}
}

// VColumn returns column i of the pole grid as a curve in the v direction.
// The poles are copied.
func (s *BsplineSurface) VColumn(i int) *BsplineCurve {
	poles := make([]Point4, s.NumV)
	for j := range poles {
		poles[j] = s.Pole(i, j)
	}
	return &BsplineCurve{
		Poles:  poles,
		Knots:  s.VKnots,
		Order:  s.VOrder,
		Closed: s.VClosed,
	}
}

// KnotToPoint evaluates s at (u, v) by first evaluating every u row at u
// and then the resulting v curve at v.
func (s *BsplineSurface) KnotToPoint(u, v float64) Point4 {
	col := &BsplineCurve{
		Poles: make([]Point4, s.NumV),
		Knots: s.VKnots,
		Order: s.VOrder,
	}
	for j := range s.NumV {
		col.Poles[j] = s.URow(j).KnotToPoint(u)
	}
	return col.KnotToPoint(v)
}
