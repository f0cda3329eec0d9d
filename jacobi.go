package geom

import (
	"math"
	"sort"
)

const maxJacobiSweeps = 50

// Jacobi3x3 computes the eigenvalues and eigenvectors of the symmetric
// matrix a using cyclic Jacobi rotations. Only the upper triangle of a is
// read. The eigenvalues are returned in increasing order, and column i of
// the returned matrix is the unit eigenvector of eigenvalue i. The
// eigenvector matrix is a proper rotation.
func Jacobi3x3(a [3][3]float64) ([3]float64, [3][3]float64) {
	m := [3][3]float64{
		{a[0][0], a[0][1], a[0][2]},
		{a[0][1], a[1][1], a[1][2]},
		{a[0][2], a[1][2], a[2][2]},
	}
	v := [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	for sweep := 0; sweep < maxJacobiSweeps; sweep++ {
		off := math.Abs(m[0][1]) + math.Abs(m[0][2]) + math.Abs(m[1][2])
		diag := math.Abs(m[0][0]) + math.Abs(m[1][1]) + math.Abs(m[2][2])
		if off == 0 || off <= 1e-15*diag {
			break
		}
		for p := 0; p < 2; p++ {
			for q := p + 1; q < 3; q++ {
				if m[p][q] == 0 {
					continue
				}
				// Rotation angle that zeroes m[p][q].
				theta := (m[q][q] - m[p][p]) / (2 * m[p][q])
				t := math.Copysign(1, theta) / (math.Abs(theta) + math.Sqrt(theta*theta+1))
				c := 1 / math.Sqrt(t*t+1)
				s := t * c
				for k := range 3 {
					mkp, mkq := m[k][p], m[k][q]
					m[k][p] = c*mkp - s*mkq
					m[k][q] = s*mkp + c*mkq
				}
				for k := range 3 {
					mpk, mqk := m[p][k], m[q][k]
					m[p][k] = c*mpk - s*mqk
					m[q][k] = s*mpk + c*mqk
				}
				m[p][q], m[q][p] = 0, 0
				for k := range 3 {
					vkp, vkq := v[k][p], v[k][q]
					v[k][p] = c*vkp - s*vkq
					v[k][q] = s*vkp + c*vkq
				}
			}
		}
	}

	idx := [3]int{0, 1, 2}
	sort.Slice(idx[:], func(i, j int) bool { return m[idx[i]][idx[i]] < m[idx[j]][idx[j]] })
	var values [3]float64
	var vectors [3][3]float64
	for col, i := range idx {
		values[col] = m[i][i]
		for k := range 3 {
			vectors[k][col] = v[k][i]
		}
	}
	det := vectors[0][0]*(vectors[1][1]*vectors[2][2]-vectors[1][2]*vectors[2][1]) -
		vectors[0][1]*(vectors[1][0]*vectors[2][2]-vectors[1][2]*vectors[2][0]) +
		vectors[0][2]*(vectors[1][0]*vectors[2][1]-vectors[1][1]*vectors[2][0])
	if det < 0 {
		for k := range 3 {
			vectors[k][2] = -vectors[k][2]
		}
	}
	return values, vectors
}
