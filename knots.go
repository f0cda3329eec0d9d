package geom

import (
	"iter"
	"slices"
)

// KnotData is an analyzed view of a B-spline knot vector.
//
// AllKnots is the full, non-decreasing knot vector. CompressedKnots holds its
// distinct values and Multiplicities how often each occurs, so that the
// multiplicities sum to len(AllKnots). Knots closer than the knot tolerance
// (see [KnotRelTol]) are treated as one knot.
//
// The active range of the spline, where a full set of basis functions is
// defined, is CompressedKnots[LeftIndex] to CompressedKnots[RightIndex].
// Accessors that take an "active index" count from LeftIndex.
//
// A KnotData copies the knot values it is loaded from and does not retain
// the source slice.
type KnotData struct {
	AllKnots        []float64
	Order           int
	Closed          bool
	CompressedKnots []float64
	Multiplicities  []int
	LeftIndex       int
	RightIndex      int
}

// LoadKnots analyzes a full knot vector for a spline of the given order.
// It reports false if order is less than 1, if there are fewer than 2*order
// knots, or if the knots decrease anywhere.
func LoadKnots(knots []float64, order int, closed bool) (KnotData, bool) {
	if order < 1 || len(knots) < 2*order {
		return KnotData{}, false
	}
	for i := 1; i < len(knots); i++ {
		if knots[i] < knots[i-1] {
			return KnotData{}, false
		}
	}
	kd := KnotData{
		AllKnots: slices.Clone(knots),
		Order:    order,
		Closed:   closed,
	}
	tol := knotTolerance(knots[0], knots[len(knots)-1])
	for i, u := range knots {
		n := len(kd.CompressedKnots)
		if n > 0 && u-kd.CompressedKnots[n-1] <= tol {
			kd.Multiplicities[n-1]++
		} else {
			kd.CompressedKnots = append(kd.CompressedKnots, u)
			kd.Multiplicities = append(kd.Multiplicities, 1)
		}
		if i == order-1 {
			kd.LeftIndex = len(kd.CompressedKnots) - 1
		}
		if i == len(knots)-order {
			kd.RightIndex = len(kd.CompressedKnots) - 1
		}
	}
	if kd.LeftIndex >= kd.RightIndex {
		// The whole active range collapses onto one knot.
		return KnotData{}, false
	}
	return kd, true
}

// LoadCurveKnots analyzes the knots of c. It reports false if the curve has
// no order or if the number of knots isn't len(c.Poles)+c.Order.
func LoadCurveKnots(c *BsplineCurve) (KnotData, bool) {
	if c.Order < 1 || len(c.Knots) != len(c.Poles)+c.Order {
		return KnotData{}, false
	}
	return LoadKnots(c.Knots, c.Order, c.Closed)
}

// LoadSurfaceUKnots analyzes the u direction knots of s.
func LoadSurfaceUKnots(s *BsplineSurface) (KnotData, bool) {
	if s.UOrder < 1 || len(s.UKnots) != s.NumU+s.UOrder {
		return KnotData{}, false
	}
	return LoadKnots(s.UKnots, s.UOrder, s.UClosed)
}

// LoadSurfaceVKnots analyzes the v direction knots of s.
func LoadSurfaceVKnots(s *BsplineSurface) (KnotData, bool) {
	if s.VOrder < 1 || len(s.VKnots) != s.NumV+s.VOrder {
		return KnotData{}, false
	}
	return LoadKnots(s.VKnots, s.VOrder, s.VClosed)
}

// IsWellOrdered checks the structural invariants of kd: positive order, at
// least 2*Order knots, non-decreasing knots, multiplicities that sum to the
// knot count, and a non-empty active range.
func (kd *KnotData) IsWellOrdered() bool {
	if kd.Order < 1 {
		return false
	}
	if len(kd.AllKnots) < 2*kd.Order {
		return false
	}
	for i := 1; i < len(kd.AllKnots); i++ {
		if kd.AllKnots[i] < kd.AllKnots[i-1] {
			return false
		}
	}
	if len(kd.Multiplicities) != len(kd.CompressedKnots) {
		return false
	}
	sum := 0
	for _, m := range kd.Multiplicities {
		if m < 1 {
			return false
		}
		sum += m
	}
	if sum != len(kd.AllKnots) {
		return false
	}
	return 0 <= kd.LeftIndex && kd.LeftIndex < kd.RightIndex && kd.RightIndex < len(kd.CompressedKnots)
}

func (kd *KnotData) tolerance() float64 {
	return knotTolerance(kd.AllKnots[0], kd.AllKnots[len(kd.AllKnots)-1])
}

// FindKnotMultiplicity snaps u to the nearest distinct knot within the knot
// tolerance and returns that knot and its multiplicity. If no knot is close
// enough, u is returned unchanged with multiplicity 0.
func (kd *KnotData) FindKnotMultiplicity(u float64) (float64, int) {
	if len(kd.CompressedKnots) == 0 {
		return u, 0
	}
	tol := kd.tolerance()
	i, _ := slices.BinarySearch(kd.CompressedKnots, u)
	best := -1
	bestDist := tol
	for _, j := range [2]int{i - 1, i} {
		if j < 0 || j >= len(kd.CompressedKnots) {
			continue
		}
		d := u - kd.CompressedKnots[j]
		if d < 0 {
			d = -d
		}
		if d <= bestDist {
			best, bestDist = j, d
		}
	}
	if best < 0 {
		return u, 0
	}
	return kd.CompressedKnots[best], kd.Multiplicities[best]
}

// NumActiveIntervals returns the number of distinct knot intervals in the
// active range.
func (kd *KnotData) NumActiveIntervals() int {
	return kd.RightIndex - kd.LeftIndex
}

// ActiveRange returns the first and last knot of the active range.
func (kd *KnotData) ActiveRange() (float64, float64) {
	return kd.CompressedKnots[kd.LeftIndex], kd.CompressedKnots[kd.RightIndex]
}

// KnotByActiveIndex returns the i-th distinct knot of the active range and
// its multiplicity. It reports false if i is negative or past the right end
// of the active range.
func (kd *KnotData) KnotByActiveIndex(i int) (float64, int, bool) {
	j := kd.LeftIndex + i
	if i < 0 || j > kd.RightIndex {
		return 0, 0, false
	}
	return kd.CompressedKnots[j], kd.Multiplicities[j], true
}

// KnotIntervalByActiveIndex returns the bounds of the i-th interval of the
// active range. It reports false if there is no such interval.
func (kd *KnotData) KnotIntervalByActiveIndex(i int) (float64, float64, bool) {
	j := kd.LeftIndex + i
	if i < 0 || j+1 > kd.RightIndex {
		return 0, 0, false
	}
	return kd.CompressedKnots[j], kd.CompressedKnots[j+1], true
}

// LongestActiveKnotInterval returns the active index and bounds of the
// longest interval of the active range. Ties go to the first one.
func (kd *KnotData) LongestActiveKnotInterval() (int, float64, float64, bool) {
	best := -1
	var a, b float64
	for i := 0; ; i++ {
		u0, u1, ok := kd.KnotIntervalByActiveIndex(i)
		if !ok {
			break
		}
		if best < 0 || u1-u0 > b-a {
			best, a, b = i, u0, u1
		}
	}
	return best, a, b, best >= 0
}

// CollectHighMultiplicityActiveKnots returns, in increasing order, the
// active knots whose multiplicity is at least target. With includeEnds, the
// two ends of the active range are always included. For a spline of order k,
// target k-1 finds the points where the curve is only C0 and may have a
// corner.
func (kd *KnotData) CollectHighMultiplicityActiveKnots(target int, includeEnds bool) []float64 {
	var out []float64
	for j := kd.LeftIndex; j <= kd.RightIndex; j++ {
		isEnd := j == kd.LeftIndex || j == kd.RightIndex
		if kd.Multiplicities[j] >= target || (includeEnds && isEnd) {
			out = append(out, kd.CompressedKnots[j])
		}
	}
	return out
}

// SpanIndexOfActiveInterval returns the index of the first pole that
// influences the i-th active interval. That pole, the following Order-1
// poles, and the 2*Order knots starting at the same index describe the
// interval's polynomial piece.
func (kd *KnotData) SpanIndexOfActiveInterval(i int) (int, bool) {
	j := kd.LeftIndex + i
	if i < 0 || j+1 > kd.RightIndex {
		return 0, false
	}
	cum := 0
	for _, m := range kd.Multiplicities[:j+1] {
		cum += m
	}
	s := cum - kd.Order
	if s < 0 || s+2*kd.Order > len(kd.AllKnots) {
		return 0, false
	}
	return s, true
}

// ActiveIntervals yields the active index and bounds of every active knot
// interval.
func (kd *KnotData) ActiveIntervals() iter.Seq2[int, [2]float64] {
	return func(yield func(int, [2]float64) bool) {
		for i := 0; ; i++ {
			a, b, ok := kd.KnotIntervalByActiveIndex(i)
			if !ok || !yield(i, [2]float64{a, b}) {
				return
			}
		}
	}
}
