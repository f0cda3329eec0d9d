package geom

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

func assertMapIsIdentity(t *testing.T, m Matrix4, epsilon float64) {
	t.Helper()
	if d := m.MaxAbsDiff(Identity4); d > epsilon {
		t.Fatalf("product differs from identity by %g: %v", d, m)
	}
}

func TestMap4InverseLaw(t *testing.T) {
	const epsilon = 1e-12
	maps := []struct {
		name string
		m    Map4
	}{
		{"identity", IdentityMap4},
		{"scale", ScaleMap4(2, 3, 4)},
		{"translate", TranslateMap4(1, 2, 3)},
		{"rotate", RotateMap4(r3.Vector{Z: 1}, math.Pi/2)},
		{"rotate oblique", RotateMap4(r3.Vector{X: 1, Y: 2, Z: 3}, 0.7)},
	}
	for _, tt := range maps {
		t.Run(tt.name, func(t *testing.T) {
			if tt.m.IsSingular() {
				t.Fatal("map is singular")
			}
			// Stored inverse.
			assertMapIsIdentity(t, tt.m.M0.Mul(tt.m.M1), epsilon)
			assertMapIsIdentity(t, tt.m.M1.Mul(tt.m.M0), epsilon)
			// Numerical inverse.
			inv := tt.m.Invert()
			if !inv.InverseValid {
				t.Fatal("numerical inverse failed")
			}
			assertMapIsIdentity(t, tt.m.M0.Mul(inv.M1), epsilon)
			// Composition with the swapped map.
			assertMapIsIdentity(t, tt.m.Mul(tt.m.Inverse()).M0, epsilon)
		})
	}
}

func TestMap4Constructors(t *testing.T) {
	const epsilon = 1e-12
	p := r3.Vector{X: 3, Y: 4, Z: 5}
	tests := []struct {
		name string
		m    Map4
		want r3.Vector
	}{
		{"identity", IdentityMap4, p},
		{"scale", ScaleMap4(2, 3, 4), r3.Vector{X: 6, Y: 12, Z: 20}},
		{"translate", TranslateMap4(1, 2, 3), r3.Vector{X: 4, Y: 6, Z: 8}},
		{"rotate", RotateMap4(r3.Vector{Z: 1}, math.Pi/2), r3.Vector{X: -4, Y: 3, Z: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.m.ApplyPoint3(p).Projected()
			if !ok {
				t.Fatal("zero weight")
			}
			assertNear(t, got, tt.want, epsilon)
			back, _ := tt.m.ApplyInverse(Point4FromPoint(got)).Projected()
			assertNear(t, back, p, epsilon)
		})
	}
}

func TestBoxMap4(t *testing.T) {
	from := Box3{r3.Vector{X: 1, Y: 1, Z: 1}, r3.Vector{X: 3, Y: 5, Z: 2}}
	to := Box3{r3.Vector{X: -1, Y: 0, Z: 10}, r3.Vector{X: 1, Y: 1, Z: 20}}
	m, ok := BoxMap4(from, to)
	if !ok {
		t.Fatal("box map failed")
	}
	lo, _ := m.ApplyPoint3(from.Low).Projected()
	hi, _ := m.ApplyPoint3(from.High).Projected()
	assertNear(t, lo, to.Low, 1e-12)
	assertNear(t, hi, to.High, 1e-12)
	assertNear(t, mustProject(t, m.ApplyPoint3(from.Center())), to.Center(), 1e-12)
	assertMapIsIdentity(t, m.M0.Mul(m.M1), 1e-12)
	if !m.IsAffine() || m.IsPerspective() {
		t.Error("box map should be affine")
	}

	flat := Box3{r3.Vector{}, r3.Vector{X: 1, Y: 1}}
	if _, ok := BoxMap4(flat, to); ok {
		t.Error("box map from flat box succeeded")
	}
	if _, ok := BoxMap4(to, flat); ok {
		t.Error("box map to flat box succeeded")
	}
}

func mustProject(t *testing.T, p Point4) r3.Vector {
	t.Helper()
	v, ok := p.Projected()
	if !ok {
		t.Fatalf("%v has zero weight", p)
	}
	return v
}

func TestTaperMap4(t *testing.T) {
	m, ok := TaperMap4(0.5)
	if !ok {
		t.Fatal("taper failed")
	}
	if !m.IsPerspective() || m.IsAffine() {
		t.Error("taper should be perspective")
	}
	assertMapIsIdentity(t, m.M0.Mul(m.M1), 1e-12)
	assertNear(t, mustProject(t, m.ApplyPoint3(r3.Vector{X: 1, Y: 1})), r3.Vector{X: 1, Y: 1}, 1e-12)
	assertNear(t, mustProject(t, m.ApplyPoint3(r3.Vector{X: 1, Y: 1, Z: 1})), r3.Vector{X: 0.5, Y: 0.5, Z: 1}, 1e-12)

	if _, ok := TaperMap4(0); ok {
		t.Error("zero taper succeeded")
	}
}

func TestFrustumMap4(t *testing.T) {
	m, ok := FrustumMap4(-1, 1, -1, 1, 1, 10)
	if !ok {
		t.Fatal("frustum failed")
	}
	assertMapIsIdentity(t, m.M0.Mul(m.M1), 1e-12)
	assertNear(t, mustProject(t, m.ApplyPoint3(r3.Vector{X: 1, Y: 1, Z: -1})), r3.Vector{X: 1, Y: 1, Z: -1}, 1e-12)
	assertNear(t, mustProject(t, m.ApplyPoint3(r3.Vector{X: -10, Y: 10, Z: -10})), r3.Vector{X: -1, Y: 1, Z: 1}, 1e-12)

	for _, args := range [][6]float64{
		{0, 0, -1, 1, 1, 10},
		{-1, 1, -1, 1, 0, 10},
		{-1, 1, -1, 1, 5, 5},
	} {
		if _, ok := FrustumMap4(args[0], args[1], args[2], args[3], args[4], args[5]); ok {
			t.Errorf("frustum %v succeeded", args)
		}
	}
}

func TestSkewFrameMap4(t *testing.T) {
	origin := r3.Vector{X: 1, Y: 2, Z: 3}
	x := r3.Vector{X: 1, Y: 1}
	y := r3.Vector{Y: 2}
	z := r3.Vector{X: 1, Z: 1}
	m, ok := SkewFrameMap4(origin, x, y, z)
	if !ok {
		t.Fatal("skew frame failed")
	}
	assertNear(t, mustProject(t, m.ApplyPoint3(r3.Vector{X: 1, Y: 1, Z: 1})), origin.Add(x).Add(y).Add(z), 1e-12)
	assertMapIsIdentity(t, m.M0.Mul(m.M1), 1e-12)

	if _, ok := SkewFrameMap4(origin, x, y, x.Add(y)); ok {
		t.Error("skew frame with dependent axes succeeded")
	}
}

func TestMap4Classification(t *testing.T) {
	if !IdentityMap4.IsIdentity() || !IdentityMap4.IsAffine() || IdentityMap4.IsPerspective() {
		t.Error("identity misclassified")
	}
	if TranslateMap4(1, 0, 0).IsIdentity() {
		t.Error("translation classified as identity")
	}
	sing := ScaleMap4(1, 0, 1)
	if !sing.IsSingular() || sing.InverseValid {
		t.Error("zero scale should be singular")
	}
	if !sing.M0.IsSingular() {
		t.Error("zero scale matrix should be singular")
	}
	persp := Map4FromMatrix(Matrix4{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 1, 1}})
	if !persp.IsPerspective() || persp.IsSingular() {
		t.Error("perspective map misclassified")
	}
}

func TestMulInvertedAndSandwich(t *testing.T) {
	const epsilon = 1e-12
	a := RotateMap4(r3.Vector{Z: 1}, 0.3)
	b := TranslateMap4(1, 2, 3)
	c := ScaleMap4(2, 2, 2)

	got := MulInverted(a, true, b, false)
	want := Map4FromMatrix(a.M1.Mul(b.M0))
	if !got.AlmostEqual(want, epsilon) {
		t.Errorf("MulInverted = %v, want %v", got, want)
	}

	s := Sandwich(a, b, c)
	wantM := c.M0.Mul(b.M1).Mul(a.M0).Mul(b.M0).Mul(c.M1)
	if d := s.M0.MaxAbsDiff(wantM); d > epsilon {
		t.Errorf("sandwich differs by %g", d)
	}
	assertMapIsIdentity(t, s.M0.Mul(s.M1), epsilon)

	// A rotation conjugated by a translation fixes the translated origin.
	p := r3.Vector{X: 1, Y: 2, Z: 3}
	rot := Sandwich(a, b.Inverse(), IdentityMap4)
	assertNear(t, mustProject(t, rot.ApplyPoint3(p)), p, epsilon)
}

func TestMatrix4Invert(t *testing.T) {
	m := Matrix4{
		{1, 3, 5, 0},
		{2, 4, 7, 1},
		{1, 1, 0, 2},
		{0, 1, 0, 1},
	}
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("invert failed")
	}
	assertMapIsIdentity(t, m.Mul(inv), 1e-12)

	var zero Matrix4
	if _, ok := zero.Invert(); ok {
		t.Error("inverting zero matrix succeeded")
	}
	if d := Identity4.Determinant(); math.Abs(d-1) > 1e-15 {
		t.Errorf("det(I) = %g", d)
	}
}
