package geom

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Box3 is an axis-aligned box given by two corners. The corners are not
// required to be ordered; use [Box3.Abs] to normalize them.
type Box3 struct {
	Low, High r3.Vector
}

// NewBox3FromPoints returns the box with the extents of p0 and p1, ensuring
// that all sizes are non-negative.
func NewBox3FromPoints(p0, p1 r3.Vector) Box3 {
	return Box3{p0, p1}.Abs()
}

// Abs returns a new box with the same extents as b, but ensuring that all
// sizes are non-negative.
func (b Box3) Abs() Box3 {
	return Box3{
		Low: r3.Vector{
			X: min(b.Low.X, b.High.X),
			Y: min(b.Low.Y, b.High.Y),
			Z: min(b.Low.Z, b.High.Z),
		},
		High: r3.Vector{
			X: max(b.Low.X, b.High.X),
			Y: max(b.Low.Y, b.High.Y),
			Z: max(b.Low.Z, b.High.Z),
		},
	}
}

// Size returns High − Low. Components may be negative.
func (b Box3) Size() r3.Vector {
	return b.High.Sub(b.Low)
}

func (b Box3) Center() r3.Vector {
	return b.Low.Add(b.High).Mul(0.5)
}

// IsEmpty reports whether any extent is zero or negative.
func (b Box3) IsEmpty() bool {
	s := b.Size()
	return s.X <= 0 || s.Y <= 0 || s.Z <= 0
}

// Contains reports whether pt lies in the closed box. Results are valid only
// if all sizes are non-negative.
func (b Box3) Contains(pt r3.Vector) bool {
	return pt.X >= b.Low.X && pt.X <= b.High.X &&
		pt.Y >= b.Low.Y && pt.Y <= b.High.Y &&
		pt.Z >= b.Low.Z && pt.Z <= b.High.Z
}

// Union returns the smallest box enclosing b and o.
//
// Results are valid only if all sizes are non-negative.
func (b Box3) Union(o Box3) Box3 {
	return Box3{
		Low: r3.Vector{
			X: min(b.Low.X, o.Low.X),
			Y: min(b.Low.Y, o.Low.Y),
			Z: min(b.Low.Z, o.Low.Z),
		},
		High: r3.Vector{
			X: max(b.High.X, o.High.X),
			Y: max(b.High.Y, o.High.Y),
			Z: max(b.High.Z, o.High.Z),
		},
	}
}

// UnionPoint computes the union with one point. A succession of UnionPoint
// operations starting from a degenerate box at the first point yields the
// enclosing box of all points.
func (b Box3) UnionPoint(pt r3.Vector) Box3 {
	return b.Union(Box3{pt, pt})
}

func (b Box3) String() string {
	return fmt.Sprintf("%v–%v", b.Low, b.High)
}
