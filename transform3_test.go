package geom

import (
	"math"
	"slices"
	"testing"

	"github.com/golang/geo/r3"
)

func TestTransform3Basic(t *testing.T) {
	const epsilon = 1e-12
	p := r3.Vector{X: 3, Y: 4, Z: 5}

	assertNear(t, Identity3.Apply(p), p, epsilon)
	assertNear(t, Scale3(2, 2, 2).Apply(p), r3.Vector{X: 6, Y: 8, Z: 10}, epsilon)
	assertNear(t, Rotate3(r3.Vector{Z: 1}, 0).Apply(p), p, epsilon)
	assertNear(t, Rotate3(r3.Vector{Z: 1}, math.Pi/2).Apply(p), r3.Vector{X: -4, Y: 3, Z: 5}, epsilon)
	assertNear(t, Rotate3(r3.Vector{X: 2}, math.Pi/2).Apply(p), r3.Vector{X: 3, Y: -5, Z: 4}, epsilon)
	assertNear(t, Rotate3(r3.Vector{}, 1).Apply(p), p, epsilon)
	assertNear(t, Translate3(r3.Vector{X: 5, Y: 6, Z: 7}).Apply(p), r3.Vector{X: 8, Y: 10, Z: 12}, epsilon)
	assertNear(t, Translate3(r3.Vector{X: 5}).ApplyVector(p), p, epsilon)
}

func TestTransform3Mul(t *testing.T) {
	const epsilon = 1e-12
	a1 := Frame3(r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{X: 1, Y: 2}, r3.Vector{Y: 1, Z: 3}, r3.Vector{X: 4, Z: 1})
	a2 := Frame3(r3.Vector{X: -0.5}, r3.Vector{X: 0.1, Y: 1.2, Z: 2.3}, r3.Vector{X: 3.4, Y: 4.5}, r3.Vector{Z: 5.6})

	for _, p := range []r3.Vector{{X: 1}, {Y: 1}, {Z: 1}, {X: 1, Y: 1, Z: 1}} {
		assertNear(t, a1.Apply(a2.Apply(p)), a1.Mul(a2).Apply(p), epsilon)
	}

	v := r3.Vector{X: 1, Y: -2, Z: 0.5}
	assertNear(t, a1.PreTranslate(v).Apply(r3.Vector{}), a1.Apply(v), epsilon)
	assertNear(t, a1.ThenTranslate(v).Apply(r3.Vector{}), a1.Apply(r3.Vector{}).Add(v), epsilon)
	assertNear(t, a1.PreScale(2, 3, 4).Apply(r3.Vector{X: 1, Y: 1, Z: 1}), a1.Apply(r3.Vector{X: 2, Y: 3, Z: 4}), epsilon)
	assertNear(t, a1.ThenScale(2, 3, 4).Apply(r3.Vector{}), r3.Vector{X: 2, Y: 6, Z: 12}, epsilon)
	rot := Rotate3(r3.Vector{Y: 1}, 0.3)
	assertNear(t, a1.PreRotate(r3.Vector{Y: 1}, 0.3).Apply(v), a1.Apply(rot.Apply(v)), epsilon)
	assertNear(t, a1.ThenRotate(r3.Vector{Y: 1}, 0.3).Apply(v), rot.Apply(a1.Apply(v)), epsilon)
}

func TestTransform3Invert(t *testing.T) {
	const epsilon = 1e-12
	a := Frame3(r3.Vector{X: 5, Y: -1, Z: 2}, r3.Vector{X: 0.1, Y: 1.2, Z: 2.3}, r3.Vector{X: 3.4, Y: 4.5}, r3.Vector{X: 1, Z: 5.6})
	aInv, ok := a.Invert()
	if !ok {
		t.Fatal("invert failed")
	}
	for _, p := range []r3.Vector{{X: 1}, {Y: 1}, {X: 1, Y: 1, Z: 1}} {
		assertNear(t, a.Apply(aInv.Apply(p)), p, epsilon)
		assertNear(t, aInv.Apply(a.Apply(p)), p, epsilon)
	}
	if !a.Mul(aInv).AlmostEqual(Identity3, epsilon) {
		t.Errorf("a * a⁻¹ = %v", a.Mul(aInv))
	}
	assertNearFloat(t, "det", a.Determinant()*aInv.Determinant(), 1, epsilon)

	flat := Frame3(r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1}, r3.Vector{X: 1, Y: 1})
	if _, ok := flat.Invert(); ok {
		t.Error("inverting a flat frame succeeded")
	}
}

func TestTransform3Matrix4(t *testing.T) {
	a := Translate3(r3.Vector{X: 1, Y: 2, Z: 3}).Mul(Rotate3(r3.Vector{X: 1, Y: 1}, 0.7)).Mul(Scale3(1, 2, 3))
	m := Map4FromTransform3(a)
	if !m.InverseValid || !m.IsAffine() {
		t.Fatal("map of an affine transform")
	}
	p := r3.Vector{X: -1, Y: 0.5, Z: 4}
	assertNear(t, mustProject(t, m.ApplyPoint3(p)), a.Apply(p), 1e-12)
	assertMapIsIdentity(t, m.M0.Mul(m.M1), 1e-12)
	assertNearFloat(t, "det", m.M0.Determinant(), a.Determinant(), 1e-12)
}

func TestTransformBoxBoundingBox(t *testing.T) {
	b := Box3{r3.Vector{X: -1, Y: -1, Z: -1}, r3.Vector{X: 1, Y: 1, Z: 1}}
	got := Rotate3(r3.Vector{Z: 1}, math.Pi/4).TransformBoxBoundingBox(b)
	s := math.Sqrt2
	want := Box3{r3.Vector{X: -s, Y: -s, Z: -1}, r3.Vector{X: s, Y: s, Z: 1}}
	diff(t, want, got, approx(1e-12))

	got = Scale3(2, -1, 1).ThenTranslate(r3.Vector{Z: 3}).TransformBoxBoundingBox(b)
	want = Box3{r3.Vector{X: -2, Y: -1, Z: 2}, r3.Vector{X: 2, Y: 1, Z: 4}}
	diff(t, want, got)
}

func TestTransformPoints(t *testing.T) {
	pts := []r3.Vector{{X: 1}, {Y: 1}, {Z: 1}}
	tr := Translate3(r3.Vector{X: 1, Y: 1, Z: 1})
	got := slices.Collect(TransformPoints(slices.Values(pts), tr))
	diff(t, []r3.Vector{{X: 2, Y: 1, Z: 1}, {X: 1, Y: 2, Z: 1}, {X: 1, Y: 1, Z: 2}}, got)

	// Early exit.
	for p := range TransformPoints(slices.Values(pts), tr) {
		diff(t, r3.Vector{X: 2, Y: 1, Z: 1}, p)
		break
	}
}

func TestBox3(t *testing.T) {
	b := NewBox3FromPoints(r3.Vector{X: 2, Y: 0, Z: 5}, r3.Vector{X: 0, Y: 3, Z: 1})
	diff(t, Box3{r3.Vector{X: 0, Y: 0, Z: 1}, r3.Vector{X: 2, Y: 3, Z: 5}}, b)
	diff(t, r3.Vector{X: 2, Y: 3, Z: 4}, b.Size())
	diff(t, r3.Vector{X: 1, Y: 1.5, Z: 3}, b.Center())
	if b.IsEmpty() {
		t.Error("box is empty")
	}
	if !b.Contains(r3.Vector{X: 2, Y: 0, Z: 3}) {
		t.Error("box doesn't contain a point on its boundary")
	}
	if b.Contains(r3.Vector{X: 2.5, Y: 1, Z: 3}) {
		t.Error("box contains an outside point")
	}

	u := b.UnionPoint(r3.Vector{X: -1, Y: 1, Z: 10})
	diff(t, Box3{r3.Vector{X: -1, Y: 0, Z: 1}, r3.Vector{X: 2, Y: 3, Z: 10}}, u)

	flat := Box3{r3.Vector{}, r3.Vector{X: 1, Y: 1}}
	if !flat.IsEmpty() {
		t.Error("flat box isn't empty")
	}
}
