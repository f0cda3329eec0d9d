package geom

// Tables of Legendre-Gauss quadrature coefficients as (weight, abscissa)
// pairs on [-1, 1], adapted from:
// <https://pomax.github.io/bezierinfo/legendre-gauss.html>

var gaussLegendreCoeffs8 = [...][2]float64{
	{0.3626837833783620, -0.1834346424956498},
	{0.3626837833783620, 0.1834346424956498},
	{0.3137066458778873, -0.5255324099163290},
	{0.3137066458778873, 0.5255324099163290},
	{0.2223810344533745, -0.7966664774136267},
	{0.2223810344533745, 0.7966664774136267},
	{0.1012285362903763, -0.9602898564975363},
	{0.1012285362903763, 0.9602898564975363},
}

var gaussLegendreCoeffs16 = [...][2]float64{
	{0.1894506104550685, -0.0950125098376374},
	{0.1894506104550685, 0.0950125098376374},
	{0.1826034150449236, -0.2816035507792589},
	{0.1826034150449236, 0.2816035507792589},
	{0.1691565193950025, -0.4580167776572274},
	{0.1691565193950025, 0.4580167776572274},
	{0.1495959888165767, -0.6178762444026438},
	{0.1495959888165767, 0.6178762444026438},
	{0.1246289712555339, -0.7554044083550030},
	{0.1246289712555339, 0.7554044083550030},
	{0.0951585116824928, -0.8656312023878318},
	{0.0951585116824928, 0.8656312023878318},
	{0.0622535239386479, -0.9445750230732326},
	{0.0622535239386479, 0.9445750230732326},
	{0.0271524594117541, -0.9894009349916499},
	{0.0271524594117541, 0.9894009349916499},
}

// gaussLegendre integrates f over [a, b] with the given rule.
func gaussLegendre(coeffs [][2]float64, a, b float64, f func(float64) float64) float64 {
	half := 0.5 * (b - a)
	mid := 0.5 * (a + b)
	var sum float64
	for _, c := range coeffs {
		sum += c[0] * f(mid+half*c[1])
	}
	return sum * half
}

// integrateAdaptive integrates f over [a, b], comparing the 8 and 16 point
// rules and bisecting until they agree to within accuracy.
func integrateAdaptive(a, b, accuracy float64, f func(float64) float64) float64 {
	return integrateAdaptiveDepth(a, b, accuracy, f, 0)
}

func integrateAdaptiveDepth(a, b, accuracy float64, f func(float64) float64, depth int) float64 {
	est8 := gaussLegendre(gaussLegendreCoeffs8[:], a, b, f)
	est16 := gaussLegendre(gaussLegendreCoeffs16[:], a, b, f)
	if d := est16 - est8; (d <= accuracy && d >= -accuracy) || depth >= 20 {
		return est16
	}
	m := 0.5 * (a + b)
	return integrateAdaptiveDepth(a, m, accuracy*0.5, f, depth+1) +
		integrateAdaptiveDepth(m, b, accuracy*0.5, f, depth+1)
}
