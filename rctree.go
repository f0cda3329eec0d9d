package geom

import (
	"errors"
	"fmt"
	"math"
)

// Capacity limits of an [RCTree].
const (
	MaxTreePlanes = 16
	MaxTreeOps    = 32
)

var (
	ErrTooManyPlanes  = errors.New("geom: plane tree has no room for another plane")
	ErrTooManyOps     = errors.New("geom: plane tree has no room for another op")
	ErrBadPlaneIndex  = errors.New("geom: plane tree op refers to a missing plane")
	ErrStackUnderflow = errors.New("geom: plane tree op needs more operands than are on the stack")
	ErrStackOverflow  = errors.New("geom: plane tree stack overflow")
	ErrSurfaceTest    = errors.New("geom: plane tree surface tests are not supported")
	ErrUnbalanced     = errors.New("geom: plane tree program doesn't leave exactly one result")
	ErrBadPatchKind   = errors.New("geom: unknown patch kind")
	ErrSingularMap    = errors.New("geom: map has no valid inverse")
)

// OpKind is the kind of an instruction of an [RCTree] program.
type OpKind uint8

const (
	// OpPushPlane pushes whether the point is on the inner side of a plane.
	OpPushPlane OpKind = iota + 1
	// OpPushSurf pushes the result of a curved surface test. Trees that
	// contain it can be built but not evaluated.
	OpPushSurf
	// OpAnd pops two results and pushes their conjunction.
	OpAnd
	// OpOr pops two results and pushes their disjunction.
	OpOr
	// OpPushTrue pushes true.
	OpPushTrue
)

func (k OpKind) String() string {
	switch k {
	case OpPushPlane:
		return "PUSH_PLANE"
	case OpPushSurf:
		return "PUSH_SURF"
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	case OpPushTrue:
		return "PUSH_1"
	default:
		return fmt.Sprintf("OpKind(%d)", k)
	}
}

// Op is one instruction. Plane is the plane index for OpPushPlane and is
// ignored otherwise.
type Op struct {
	Kind  OpKind
	Plane int
}

func (op Op) String() string {
	if op.Kind == OpPushPlane {
		return fmt.Sprintf("%s(%d)", op.Kind, op.Plane)
	}
	return op.Kind.String()
}

// PushPlane returns the instruction that tests plane i.
func PushPlane(i int) Op { return Op{Kind: OpPushPlane, Plane: i} }

var (
	opAnd      = Op{Kind: OpAnd}
	opOr       = Op{Kind: OpOr}
	opPushTrue = Op{Kind: OpPushTrue}
)

// RCTree is a clip tree: a set of homogeneous planes and a program for a
// boolean stack machine that combines the per-plane half-space tests into
// an inside/outside classification.
//
// A point X is on the inner side of plane P if (P·X)·sign(X.w) <= 0, so
// points exactly on a plane count as inside.
//
// The zero value is an empty tree, which has no valid program.
type RCTree struct {
	planes  [MaxTreePlanes]Point4
	nPlanes int
	ops     [MaxTreeOps]Op
	nOps    int
}

// Reset empties the tree.
func (t *RCTree) Reset() {
	t.nPlanes = 0
	t.nOps = 0
}

// Planes returns the planes of the tree. The slice aliases the tree.
func (t *RCTree) Planes() []Point4 { return t.planes[:t.nPlanes] }

// Ops returns the program of the tree. The slice aliases the tree.
func (t *RCTree) Ops() []Op { return t.ops[:t.nOps] }

// AddPlane appends a plane and returns its index.
func (t *RCTree) AddPlane(p Point4) (int, error) {
	if t.nPlanes >= MaxTreePlanes {
		return -1, ErrTooManyPlanes
	}
	t.planes[t.nPlanes] = p
	t.nPlanes++
	return t.nPlanes - 1, nil
}

// AddOp appends an instruction to the program.
func (t *RCTree) AddOp(op Op) error {
	if t.nOps >= MaxTreeOps {
		return ErrTooManyOps
	}
	if op.Kind == OpPushPlane && (op.Plane < 0 || op.Plane >= t.nPlanes) {
		return ErrBadPlaneIndex
	}
	t.ops[t.nOps] = op
	t.nOps++
	return nil
}

// addPlaneTest adds a plane and the instruction that tests it.
func (t *RCTree) addPlaneTest(p Point4) error {
	i, err := t.AddPlane(p)
	if err != nil {
		return err
	}
	return t.AddOp(PushPlane(i))
}

// ClassifyPoint runs the program for the homogeneous point x and reports
// whether x is inside. Malformed programs, including ones with surface
// tests, classify every point as outside and return an error.
func (t *RCTree) ClassifyPoint(x Point4) (bool, error) {
	var stack [MaxTreeOps]bool
	n := 0
	ws := 1.0
	if x.W < 0 {
		ws = -1
	}
	for _, op := range t.ops[:t.nOps] {
		switch op.Kind {
		case OpPushPlane:
			if op.Plane < 0 || op.Plane >= t.nPlanes {
				return false, ErrBadPlaneIndex
			}
			if n >= len(stack) {
				return false, ErrStackOverflow
			}
			f := t.planes[op.Plane].DotProduct(x)
			stack[n] = f*ws <= 0
			n++
		case OpPushTrue:
			if n >= len(stack) {
				return false, ErrStackOverflow
			}
			stack[n] = true
			n++
		case OpAnd, OpOr:
			if n < 2 {
				return false, ErrStackUnderflow
			}
			a, b := stack[n-2], stack[n-1]
			n--
			if op.Kind == OpAnd {
				stack[n-1] = a && b
			} else {
				stack[n-1] = a || b
			}
		case OpPushSurf:
			return false, ErrSurfaceTest
		default:
			panic(fmt.Sprintf("invalid OpKind %v", op.Kind))
		}
	}
	if n != 1 {
		return false, ErrUnbalanced
	}
	return stack[0], nil
}

// Transform re-expresses the planes of t for points mapped by m, so that
// classifying m.Apply(x) against the result gives the same answer as
// classifying x against t. Planes are covectors: they are multiplied by the
// transpose of the inverse matrix. t is unchanged if m has no valid inverse.
func (t *RCTree) Transform(m Map4) error {
	if !m.InverseValid {
		return ErrSingularMap
	}
	for i := range t.nPlanes {
		t.planes[i], _ = m.ApplyPlane(t.planes[i])
	}
	return nil
}

// PatchKind selects the parametric surface bounded by [RCTree.InitPatchClip].
type PatchKind uint8

const (
	// PatchCylinder is the unit cylinder (cos θ, sin θ, z), with the first
	// parameter θ and the second z.
	PatchCylinder PatchKind = iota + 1
	// PatchSphere is the unit sphere (cos φ cos θ, cos φ sin θ, sin φ), with
	// the first parameter the longitude θ and the second the latitude φ.
	PatchSphere
)

// InitPatchClip replaces the contents of t with the planes and program that
// bound a sector of a cylinder or sphere patch in its local coordinates.
//
// If uLimits is set, the first parameter is limited to [u0, u1] (an angular
// sweep, which may run in either direction); if vLimits is set, the second
// parameter is limited to [v0, v1]. Limits that don't restrict anything,
// such as a sweep of a full turn or a latitude at a pole, don't produce
// planes. A tree without any limits accepts every point.
//
// The latitude planes of a sphere patch are exact for points on the sphere.
func (t *RCTree) InitPatchClip(kind PatchKind, uLimits bool, u0, u1 float64, vLimits bool, v0, v1 float64) error {
	if kind != PatchCylinder && kind != PatchSphere {
		return ErrBadPatchKind
	}
	t.Reset()
	terms := 0
	and := func() error {
		terms++
		if terms > 1 {
			return t.AddOp(opAnd)
		}
		return nil
	}

	if uLimits {
		added, err := t.addSectorClip(u0, u1)
		if err != nil {
			return err
		}
		if added {
			if err := and(); err != nil {
				return err
			}
		}
	}

	if vLimits {
		lo, hi := min(v0, v1), max(v0, v1)
		if kind == PatchSphere {
			if lo > -math.Pi/2+SmallAngle {
				// sin φ >= sin lo
				if err := t.addPlaneTest(Pt4(0, 0, -1, math.Sin(lo))); err != nil {
					return err
				}
				if err := and(); err != nil {
					return err
				}
			}
			if hi < math.Pi/2-SmallAngle {
				if err := t.addPlaneTest(Pt4(0, 0, 1, -math.Sin(hi))); err != nil {
					return err
				}
				if err := and(); err != nil {
					return err
				}
			}
		} else {
			if err := t.addPlaneTest(Pt4(0, 0, -1, lo)); err != nil {
				return err
			}
			if err := and(); err != nil {
				return err
			}
			if err := t.addPlaneTest(Pt4(0, 0, 1, -hi)); err != nil {
				return err
			}
			if err := and(); err != nil {
				return err
			}
		}
	}

	if terms == 0 {
		return t.AddOp(opPushTrue)
	}
	return nil
}

// addSectorClip adds the program for the angular sector from θ0 to θ1 about
// the z axis. It reports false, adding nothing, if the sweep is a full turn.
func (t *RCTree) addSectorClip(th0, th1 float64) (bool, error) {
	if th1 < th0 {
		th0, th1 = th1, th0
	}
	sweep := th1 - th0
	if sweep >= 2*math.Pi-SmallAngle {
		return false, nil
	}
	s0, c0 := math.Sincos(th0)
	s1, c1 := math.Sincos(th1)
	// Left of the ray at θ0 and right of the ray at θ1.
	if err := t.addPlaneTest(Pt4(s0, -c0, 0, 0)); err != nil {
		return false, err
	}
	if err := t.addPlaneTest(Pt4(-s1, c1, 0, 0)); err != nil {
		return false, err
	}
	if sweep <= math.Pi {
		return true, t.AddOp(opAnd)
	}
	return true, t.AddOp(opOr)
}
