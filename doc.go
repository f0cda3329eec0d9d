// Package geom provides numerical kernels for 3D geometry: projective maps,
// B-spline to Bézier extraction, half-space clip trees and mass moment
// integrals. It is intended as a building block for modelers and
// geometry-processing tools, not as a complete geometry library.
//
// Points and vectors in 3D are [r3.Vector] values from the S2 geometry
// library. Everything else is a plain value type.
//
// # Homogeneous points and projective maps
//
// [Point4] is a homogeneous point (x, y, z, w) and doubles as the
// representation of a plane: the plane (a, b, c, d) contains the points X
// with a·x + b·y + c·z + d·w = 0. [Matrix4] acts on homogeneous points as
// column vectors.
//
// [Map4] pairs a 4×4 matrix with its inverse. Constructors such as
// [ScaleMap4], [RotateMap4], [TaperMap4] and [FrustumMap4] compute the
// inverse in closed form; [Map4.Invert] falls back to a numeric inverse.
// Points are transformed by [Map4.Apply] and planes by [Map4.ApplyPlane],
// which uses the transpose of the inverse so that plane tests are preserved.
//
// [Transform3] is the affine subset, and also serves as a coordinate frame.
//
// # B-splines and Bézier extraction
//
// [BsplineCurve] and [BsplineSurface] hold rational B-splines with weighted
// poles. [KnotData] analyzes a knot vector: it groups knots that agree within
// [KnotRelTol], records multiplicities, and locates the active range of the
// parameter.
//
// [BsplineCurve.GetBezier] extracts the span of a curve as a
// [BCurveSegment]: a fixed-capacity copy of the poles, saturated by knot
// insertion until the span is an ordinary Bézier curve, which is then
// evaluated with de Casteljau's algorithm. Spans of zero length are marked
// with [BCurveSegment.IsNullU]. [BsplineCurve.Beziers] iterates the non-null
// spans.
//
// # Clip trees
//
// [RCTree] is a boolean stack machine over a small set of planes. Its program
// combines half-space tests with AND and OR into an inside/outside
// classification, and [RCTree.InitPatchClip] builds the programs that bound
// parameter sectors of cylinders and spheres. Trees move with their geometry
// via [RCTree.Transform].
//
// # Moments
//
// [Moments3] accumulates mass, first moments and second moments of point
// masses, wires, triangles and curved wires in a local frame. Moments of
// disjoint bodies in the same frame add with [FromSumOf].
// [Moments3.PrincipalMoments] diagonalizes the inertia tensor using
// [Jacobi3x3].
//
// # Tolerances
//
// The package doesn't invent tolerances at call sites. The named constants
// [SmallAngle], [KnotRelTol] and [SingularRelTol] decide when angles, knots
// and determinants are considered equal or zero.
//
// # Errors
//
// Most operations report failure with a boolean, in the style of map lookups:
// a singular frame, a zero weight or an invalid knot vector yields false and
// leaves the inputs unchanged. Operations on [RCTree], which can fail in
// several distinct ways, return sentinel errors such as [ErrTooManyPlanes].
//
// # Literature
//
//   - [A Primer on Bézier Curves]
//   - [The NURBS Book] by Piegl and Tiller
//   - [Jacobi eigenvalue algorithm]
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
// [The NURBS Book]: https://doi.org/10.1007/978-3-642-59223-2
// [Jacobi eigenvalue algorithm]: https://en.wikipedia.org/wiki/Jacobi_eigenvalue_algorithm
package geom
