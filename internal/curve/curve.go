// Package curve provides the piecewise-linear table lookup shared by the
// fish productivity and regeneration curves.
package curve

// Curve is an ordered set of (threshold, value) control points over the
// population ratio axis 0..1. Lookups clamp below the first threshold and
// above the last one, and interpolate linearly in between.
type Curve struct {
	xs []float64
	ys []float64
}

// thresholds is the ratio axis shared by every stock curve: 0.0 to 1.0
// in steps of 0.1.
var thresholds = []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}

var (
	// ProductivityDeep is the deep-sea catch efficiency per ship as a
	// function of population ratio. Saturates at 25 fish per ship.
	ProductivityDeep = Curve{xs: thresholds, ys: []float64{0, 5, 10, 15, 20, 25, 25, 25, 25, 25, 25}}

	// ProductivityCoast is the coastal catch efficiency per ship.
	// Saturates at 15 fish per ship.
	ProductivityCoast = Curve{xs: thresholds, ys: []float64{0, 3, 6, 9, 12, 15, 15, 15, 15, 15, 15}}

	// Regeneration is the shared shape of the yearly regrowth curve.
	// Callers scale it by the per-area multiplier (50 deep, 30 coastal)
	// and floor the result.
	Regeneration = Curve{xs: thresholds, ys: []float64{0, 1, 2, 4, 7, 10, 11, 9.5, 5.5, 3, 0}}
)

// New builds a curve from parallel threshold/value slices. Thresholds must
// be strictly increasing; callers own that invariant.
func New(xs, ys []float64) Curve {
	return Curve{xs: xs, ys: ys}
}

// Eval returns the interpolated value at x. Below the first threshold it
// returns the first value, above the last threshold the last value, and at
// an interior control point exactly that point's value.
func (c Curve) Eval(x float64) float64 {
	n := len(c.xs)
	if x <= c.xs[0] {
		return c.ys[0]
	}
	if x > c.xs[n-1] {
		return c.ys[n-1]
	}
	for i := 1; i < n; i++ {
		if x <= c.xs[i] {
			x0, x1 := c.xs[i-1], c.xs[i]
			y0, y1 := c.ys[i-1], c.ys[i]
			return y0 + (y1-y0)*(x-x0)/(x1-x0)
		}
	}
	return c.ys[n-1]
}
