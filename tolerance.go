package geom

import "math"

// Numeric tolerances used throughout the package. They live in one place so
// that call sites don't invent their own.
const (
	// SmallAngle is the angular tolerance, in radians, below which two
	// angles are considered equal. It decides, among other things, whether
	// a sweep covers the full circle.
	SmallAngle = 1e-11

	// KnotRelTol is the relative tolerance for treating two knot values as
	// the same knot. It is scaled by the magnitude of the knot range.
	KnotRelTol = 1e-10

	// SingularRelTol is the relative tolerance for declaring a matrix
	// singular, measured against the product of its row magnitudes.
	SingularRelTol = 1e-14

	// DefaultAccuracy is a default value for methods that take an accuracy
	// argument.
	DefaultAccuracy = 1e-9

	// matrixTol is the absolute tolerance for entry-by-entry matrix
	// comparisons, such as identity or affine tests.
	matrixTol = 1e-12
)

// knotTolerance returns the absolute tolerance for comparing knots whose
// values span [a, b].
func knotTolerance(a, b float64) float64 {
	return KnotRelTol * (1 + math.Abs(a) + math.Abs(b))
}

