package geom

import (
	"math"

	"github.com/golang/geo/r3"
)

// Moments3 accumulates the mass integrals of a body in a local frame:
//
//	Mass    = ∫ dm
//	Moment1 = (∫x dm, ∫y dm, ∫z dm)
//	Ixx     = ∫x² dm, Ixy = ∫xy dm, and so on
//
// The second moments are the raw products of coordinates, not the inertia
// tensor; see [Moments3.InertiaTensorAtCentroid] for the latter.
//
// LocalToWorld is the frame the integrals are expressed in, and
// WorldToLocal its inverse, which is only meaningful if InverseValid.
//
// Methods named Add* mutate the receiver. Methods named With* and
// [FromSumOf] return new values and leave their inputs unchanged.
type Moments3 struct {
	Mass    float64
	Moment1 r3.Vector

	Ixx, Iyy, Izz float64
	Ixy, Iyz, Izx float64

	LocalToWorld Transform3
	WorldToLocal Transform3
	InverseValid bool
}

// NewMoments3 returns empty moments in the given frame.
func NewMoments3(frame Transform3) Moments3 {
	var m Moments3
	m.SetFrame(frame)
	return m
}

// SetFrame replaces the frame without touching the integrals. It reports
// whether the frame is invertible.
func (m *Moments3) SetFrame(frame Transform3) bool {
	m.LocalToWorld = frame
	m.WorldToLocal, m.InverseValid = frame.Invert()
	return m.InverseValid
}

// Clear zeroes the integrals, keeping the frame.
func (m *Moments3) Clear() {
	m.Mass = 0
	m.Moment1 = r3.Vector{}
	m.Ixx, m.Iyy, m.Izz = 0, 0, 0
	m.Ixy, m.Iyz, m.Izx = 0, 0, 0
}

// SecondMomentMatrix returns the symmetric matrix ∫ x xᵀ dm.
func (m *Moments3) SecondMomentMatrix() [3][3]float64 {
	return [3][3]float64{
		{m.Ixx, m.Ixy, m.Izx},
		{m.Ixy, m.Iyy, m.Iyz},
		{m.Izx, m.Iyz, m.Izz},
	}
}

func (m *Moments3) setSecondMoments(s [3][3]float64) {
	m.Ixx, m.Iyy, m.Izz = s[0][0], s[1][1], s[2][2]
	m.Ixy, m.Iyz, m.Izx = s[0][1], s[1][2], s[0][2]
}

func (m *Moments3) toLocal(transform bool, pts ...*r3.Vector) bool {
	if !transform {
		return true
	}
	if !m.InverseValid {
		return false
	}
	for _, p := range pts {
		*p = m.WorldToLocal.Apply(*p)
	}
	return true
}

// AddConcentratedMass adds a point mass at p. If transformToLocal, p is in
// world coordinates and is first mapped into the local frame. It reports
// false, leaving m unchanged, if that mapping is requested but the frame
// isn't invertible.
func (m *Moments3) AddConcentratedMass(p r3.Vector, mass float64, transformToLocal bool) bool {
	if !m.toLocal(transformToLocal, &p) {
		return false
	}
	m.Mass += mass
	m.Moment1 = m.Moment1.Add(p.Mul(mass))
	m.Ixx += mass * p.X * p.X
	m.Iyy += mass * p.Y * p.Y
	m.Izz += mass * p.Z * p.Z
	m.Ixy += mass * p.X * p.Y
	m.Iyz += mass * p.Y * p.Z
	m.Izx += mass * p.Z * p.X
	return true
}

// AddWireMass adds a straight wire from p0 to p1 with the given mass per
// unit length. The integrals are exact. See [Moments3.AddConcentratedMass]
// for transformToLocal.
func (m *Moments3) AddWireMass(p0, p1 r3.Vector, density float64, transformToLocal bool) bool {
	if !m.toLocal(transformToLocal, &p0, &p1) {
		return false
	}
	d := p1.Sub(p0)
	mass := density * d.Norm()
	// P(t) = p0 + t*d on [0, 1]: ∫1 = 1, ∫t = 1/2, ∫t² = 1/3.
	prod := func(a0, ad, b0, bd float64) float64 {
		return a0*b0 + (a0*bd+ad*b0)/2 + ad*bd/3
	}
	m.Mass += mass
	m.Moment1 = m.Moment1.Add(p0.Add(d.Mul(0.5)).Mul(mass))
	m.Ixx += mass * prod(p0.X, d.X, p0.X, d.X)
	m.Iyy += mass * prod(p0.Y, d.Y, p0.Y, d.Y)
	m.Izz += mass * prod(p0.Z, d.Z, p0.Z, d.Z)
	m.Ixy += mass * prod(p0.X, d.X, p0.Y, d.Y)
	m.Iyz += mass * prod(p0.Y, d.Y, p0.Z, d.Z)
	m.Izx += mass * prod(p0.Z, d.Z, p0.X, d.X)
	return true
}

// AddTriangleMass adds the triangle p0, p1, p2 with the given mass per unit
// area. The integrals are exact. See [Moments3.AddConcentratedMass] for
// transformToLocal.
func (m *Moments3) AddTriangleMass(p0, p1, p2 r3.Vector, density float64, transformToLocal bool) bool {
	if !m.toLocal(transformToLocal, &p0, &p1, &p2) {
		return false
	}
	u := p1.Sub(p0)
	v := p2.Sub(p0)
	jac := u.Cross(v).Norm()
	mass := density * jac / 2
	// P(s, t) = p0 + s*u + t*v over the unit triangle, whose integrals are
	// ∫1 = 1/2, ∫s = 1/6, ∫s² = 1/12 and ∫st = 1/24. Dividing by 1/2
	// normalizes them to mass fractions.
	prod := func(a0, au, av, b0, bu, bv float64) float64 {
		return a0*b0 +
			(a0*(bu+bv)+b0*(au+av))/3 +
			(au*bu+av*bv)/6 +
			(au*bv+av*bu)/12
	}
	m.Mass += mass
	m.Moment1 = m.Moment1.Add(p0.Add(u.Add(v).Mul(1.0 / 3)).Mul(mass))
	m.Ixx += mass * prod(p0.X, u.X, v.X, p0.X, u.X, v.X)
	m.Iyy += mass * prod(p0.Y, u.Y, v.Y, p0.Y, u.Y, v.Y)
	m.Izz += mass * prod(p0.Z, u.Z, v.Z, p0.Z, u.Z, v.Z)
	m.Ixy += mass * prod(p0.X, u.X, v.X, p0.Y, u.Y, v.Y)
	m.Iyz += mass * prod(p0.Y, u.Y, v.Y, p0.Z, u.Z, v.Z)
	m.Izx += mass * prod(p0.Z, u.Z, v.Z, p0.X, u.X, v.X)
	return true
}

// AddBezierWireMass adds the curve of seg as a wire with the given mass per
// unit length, integrating along the curve with adaptive Legendre-Gauss
// quadrature to the given accuracy. Null segments add nothing. See
// [Moments3.AddConcentratedMass] for transformToLocal.
func (m *Moments3) AddBezierWireMass(seg *BCurveSegment, density, accuracy float64, transformToLocal bool) bool {
	if transformToLocal && !m.InverseValid {
		return false
	}
	if seg.IsNullU {
		return true
	}
	eval := func(f float64) (r3.Vector, float64) {
		x, tan, ok := seg.FractionToPoint3AndTangent(f)
		if !ok {
			return r3.Vector{}, 0
		}
		if transformToLocal {
			x = m.WorldToLocal.Apply(x)
			tan = m.WorldToLocal.ApplyVector(tan)
		}
		return x, density * tan.Norm()
	}
	var acc Moments3
	acc.Mass = integrateAdaptive(0, 1, accuracy, func(f float64) float64 {
		_, w := eval(f)
		return w
	})
	component := func(g func(x r3.Vector) float64) float64 {
		return integrateAdaptive(0, 1, accuracy, func(f float64) float64 {
			x, w := eval(f)
			return w * g(x)
		})
	}
	acc.Moment1 = r3.Vector{
		X: component(func(x r3.Vector) float64 { return x.X }),
		Y: component(func(x r3.Vector) float64 { return x.Y }),
		Z: component(func(x r3.Vector) float64 { return x.Z }),
	}
	acc.Ixx = component(func(x r3.Vector) float64 { return x.X * x.X })
	acc.Iyy = component(func(x r3.Vector) float64 { return x.Y * x.Y })
	acc.Izz = component(func(x r3.Vector) float64 { return x.Z * x.Z })
	acc.Ixy = component(func(x r3.Vector) float64 { return x.X * x.Y })
	acc.Iyz = component(func(x r3.Vector) float64 { return x.Y * x.Z })
	acc.Izx = component(func(x r3.Vector) float64 { return x.Z * x.X })
	m.addScaled(&acc, 1)
	return true
}

func (m *Moments3) addScaled(o *Moments3, s float64) {
	m.Mass += s * o.Mass
	m.Moment1 = m.Moment1.Add(o.Moment1.Mul(s))
	m.Ixx += s * o.Ixx
	m.Iyy += s * o.Iyy
	m.Izz += s * o.Izz
	m.Ixy += s * o.Ixy
	m.Iyz += s * o.Iyz
	m.Izx += s * o.Izx
}

// FromSumOf returns sa*a + sb*b. The frame of a is kept. It reports false if
// a and b are not in the same frame, as the sum would be meaningless.
func FromSumOf(a *Moments3, sa float64, b *Moments3, sb float64) (Moments3, bool) {
	if !a.LocalToWorld.AlmostEqual(b.LocalToWorld, matrixTol) {
		return Moments3{}, false
	}
	r := NewMoments3(a.LocalToWorld)
	r.addScaled(a, sa)
	r.addScaled(b, sb)
	return r, true
}

// withAffine returns the integrals of the geometry mapped by x -> M x + t,
// with every integral scaled by jac.
func (m *Moments3) withAffine(t Transform3, jac float64) Moments3 {
	r := *m
	mm := t.M
	s := m.SecondMomentMatrix()
	c := m.Moment1
	tr := t.T

	// ∫(Mx+t)(Mx+t)ᵀ = M S Mᵀ + M c tᵀ + t cᵀ Mᵀ + mass t tᵀ
	var ms [3][3]float64
	for i := range 3 {
		for j := range 3 {
			ms[i][j] = mm[i][0]*s[0][j] + mm[i][1]*s[1][j] + mm[i][2]*s[2][j]
		}
	}
	mc := t.ApplyVector(c)
	mcv := [3]float64{mc.X, mc.Y, mc.Z}
	tv := [3]float64{tr.X, tr.Y, tr.Z}
	var out [3][3]float64
	for i := range 3 {
		for j := range 3 {
			msm := ms[i][0]*mm[j][0] + ms[i][1]*mm[j][1] + ms[i][2]*mm[j][2]
			out[i][j] = jac * (msm + mcv[i]*tv[j] + tv[i]*mcv[j] + m.Mass*tv[i]*tv[j])
		}
	}
	r.setSecondMoments(out)
	r.Moment1 = mc.Add(tr.Mul(m.Mass)).Mul(jac)
	r.Mass = jac * m.Mass
	return r
}

// WithTransformAppliedToGeometry returns the moments of the body after it
// has been moved by t, expressed in the same frame. The integrals are
// treated as volume integrals, so they are scaled by |det t|.
//
// Contrast with [Moments3.WithNewFrame], which keeps the body and moves the
// observer.
func (m *Moments3) WithTransformAppliedToGeometry(t Transform3) Moments3 {
	return m.withAffine(t, math.Abs(t.Determinant()))
}

// WithNewFrame returns the moments of the same body expressed in frame. It
// reports false if frame isn't invertible.
func (m *Moments3) WithNewFrame(frame Transform3) (Moments3, bool) {
	inv, ok := frame.Invert()
	if !ok {
		return Moments3{}, false
	}
	r := m.withAffine(inv.Mul(m.LocalToWorld), 1)
	r.LocalToWorld = frame
	r.WorldToLocal = inv
	r.InverseValid = true
	return r, true
}

// Centroid returns Moment1/Mass. It reports false for zero mass.
func (m *Moments3) Centroid() (r3.Vector, bool) {
	if m.Mass == 0 {
		return r3.Vector{}, false
	}
	return m.Moment1.Mul(1 / m.Mass), true
}

// InertiaTensorAtCentroid returns the inertia tensor about the centroid,
//
//	I = tr(S)·Id − S,  S = ∫(x−c)(x−c)ᵀ dm,
//
// in local coordinates. It reports false for zero mass.
func (m *Moments3) InertiaTensorAtCentroid() ([3][3]float64, bool) {
	c, ok := m.Centroid()
	if !ok {
		return [3][3]float64{}, false
	}
	s := m.SecondMomentMatrix()
	cv := [3]float64{c.X, c.Y, c.Z}
	for i := range 3 {
		for j := range 3 {
			s[i][j] -= m.Mass * cv[i] * cv[j]
		}
	}
	tr := s[0][0] + s[1][1] + s[2][2]
	var inertia [3][3]float64
	for i := range 3 {
		for j := range 3 {
			inertia[i][j] = -s[i][j]
		}
		inertia[i][i] += tr
	}
	return inertia, true
}

// PrincipalAxes describes the principal moments of inertia of a body in
// local coordinates. Axes[i] is the unit axis of Moments[i]; the moments are
// in increasing order and the axes form a right-handed system.
type PrincipalAxes struct {
	Centroid r3.Vector
	Axes     [3]r3.Vector
	Moments  [3]float64
}

// Frame returns the frame with origin at the centroid and the principal axes
// as its axes.
func (pa PrincipalAxes) Frame() Transform3 {
	return Frame3(pa.Centroid, pa.Axes[0], pa.Axes[1], pa.Axes[2])
}

// PrincipalMoments diagonalizes the inertia tensor about the centroid. It
// reports false for zero mass.
func (m *Moments3) PrincipalMoments() (PrincipalAxes, bool) {
	inertia, ok := m.InertiaTensorAtCentroid()
	if !ok {
		return PrincipalAxes{}, false
	}
	c, _ := m.Centroid()
	values, vectors := Jacobi3x3(inertia)
	pa := PrincipalAxes{Centroid: c, Moments: values}
	for i := range 3 {
		pa.Axes[i] = r3.Vector{X: vectors[0][i], Y: vectors[1][i], Z: vectors[2][i]}
	}
	return pa, true
}
