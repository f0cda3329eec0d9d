package geom

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

func TestPoint4DotProducts(t *testing.T) {
	a := Pt4(1, 2, 3, 4)
	b := Pt4(5, 6, 7, 8)
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"xyzw", a.DotProduct(b), 5 + 12 + 21 + 32},
		{"xyz", a.DotProductXYZ(b), 5 + 12 + 21},
		{"xyw", a.DotProductXYW(b), 5 + 12 + 32},
		{"point", a.DotProductPoint(r3.Vector{X: 1, Y: 1, Z: 1}), 1 + 2 + 3 + 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestPoint4Projected(t *testing.T) {
	p, ok := Pt4(2, 4, 6, 2).Projected()
	if !ok {
		t.Fatal("projection of finite point failed")
	}
	diff(t, r3.Vector{X: 1, Y: 2, Z: 3}, p)

	if _, ok := Pt4(1, 2, 3, 0).Projected(); ok {
		t.Error("projection of zero-weight point succeeded")
	}
}

func TestPoint4NormalizeWeight(t *testing.T) {
	p := Pt4(2, 4, 6, -2)
	if !p.NormalizeWeight() {
		t.Fatal("normalize failed")
	}
	diff(t, Pt4(-1, -2, -3, 1), p)

	q := Pt4(1, 2, 3, 0)
	if q.NormalizeWeight() {
		t.Error("normalize of zero-weight point succeeded")
	}
	diff(t, Pt4(1, 2, 3, 0), q)
}

func TestPoint4Lerp(t *testing.T) {
	a := Pt4(0, 0, 0, 1)
	b := Pt4(2, 4, 6, 3)
	diff(t, Pt4(1, 2, 3, 2), a.Lerp(b, 0.5))
	diff(t, a, a.Lerp(b, 0))
	diff(t, b, a.Lerp(b, 1))
}

func TestPlaneFromOriginAndNormal(t *testing.T) {
	origin := r3.Vector{X: 1, Y: 2, Z: 3}
	pl, ok := PlaneFromOriginAndNormal(origin, r3.Vector{Z: 5})
	if !ok {
		t.Fatal("plane construction failed")
	}
	diff(t, Pt4(0, 0, 1, -3), pl)
	if f := pl.DotProductPoint(origin); f != 0 {
		t.Errorf("origin evaluates to %g", f)
	}
	if f := pl.DotProductPoint(r3.Vector{Z: 10}); f != 7 {
		t.Errorf("point above evaluates to %g, want 7", f)
	}

	if _, ok := PlaneFromOriginAndNormal(origin, r3.Vector{}); ok {
		t.Error("plane with zero normal succeeded")
	}
}

func TestPlaneFrom3Points(t *testing.T) {
	p0 := r3.Vector{X: 1, Y: 1, Z: 2}
	p1 := r3.Vector{X: 3, Y: 1, Z: 2}
	p2 := r3.Vector{X: 1, Y: 4, Z: 2}
	pl, ok := PlaneFrom3Points(p0, p1, p2)
	if !ok {
		t.Fatal("plane construction failed")
	}
	diff(t, Pt4(0, 0, 1, -2), pl, approx(1e-15))
	for _, p := range []r3.Vector{p0, p1, p2} {
		if f := pl.DotProductPoint(p); math.Abs(f) > 1e-14 {
			t.Errorf("%v evaluates to %g", p, f)
		}
	}

	collinear := []r3.Vector{p0, p1, p0.Add(p1.Sub(p0).Mul(3))}
	if _, ok := PlaneFrom3Points(collinear[0], collinear[1], collinear[2]); ok {
		t.Error("plane through collinear points succeeded")
	}
	if _, ok := PlaneFromOriginAndVectors(p0, r3.Vector{X: 1}, r3.Vector{}); ok {
		t.Error("plane with zero vector succeeded")
	}
}
