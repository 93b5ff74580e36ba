package effect

import "math"

// Opacity fades linearly from 1 at x=0 to 0 at the particle's longevity l
func Opacity(l, x float64) float64 {
	if x <= 0 {
		return 1
	}
	if x <= l {
		return 1 - x/l
	}
	return 0
}

// Position eases from xStart towards xEnd as x approaches l, and stays at xEnd after
func Position(xStart, xEnd, l, x float64) float64 {
	return (xStart-xEnd)*ease(l, x) + xEnd
}

// ease is an exponential ease-out weight: 1-2^-10 at x=0, 0 from x=l on
func ease(l, x float64) float64 {
	if x < l {
		return 1 - math.Pow(2, 10*(x/l)-10)
	}
	return 0
}
