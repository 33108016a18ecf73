package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvalClamps(t *testing.T) {
	c := New([]float64{0, 0.5, 1.0}, []float64{2, 8, 4})

	assert.Equal(t, 2.0, c.Eval(-1))
	assert.Equal(t, 2.0, c.Eval(0))
	assert.Equal(t, 4.0, c.Eval(1.0))
	assert.Equal(t, 4.0, c.Eval(2.5))
}

func TestEvalAtControlPoints(t *testing.T) {
	for i, x := range thresholds {
		assert.Equal(t, Regeneration.ys[i], Regeneration.Eval(x), "x=%v", x)
	}
}

func TestEvalInterpolates(t *testing.T) {
	c := New([]float64{0, 1}, []float64{0, 10})

	assert.InDelta(t, 2.5, c.Eval(0.25), 1e-9)
	assert.InDelta(t, 5.0, c.Eval(0.5), 1e-9)
	assert.InDelta(t, 7.5, c.Eval(0.75), 1e-9)
}

func TestProductivitySaturates(t *testing.T) {
	// Both productivity curves are flat above half capacity.
	assert.Equal(t, 25.0, ProductivityDeep.Eval(0.5))
	assert.Equal(t, 25.0, ProductivityDeep.Eval(0.83))
	assert.Equal(t, 15.0, ProductivityCoast.Eval(0.5))
	assert.Equal(t, 15.0, ProductivityCoast.Eval(0.9))
}

func TestRegenerationPeaksAndCollapses(t *testing.T) {
	// Regrowth peaks at 60% density and vanishes at both extremes.
	assert.Equal(t, 11.0, Regeneration.Eval(0.6))
	assert.Equal(t, 0.0, Regeneration.Eval(0))
	assert.Equal(t, 0.0, Regeneration.Eval(1.0))
	assert.Greater(t, Regeneration.Eval(0.6), Regeneration.Eval(0.9))
}
