// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/curioloop/autodiff/costfn"
	"github.com/curioloop/autodiff/jet"
)

// parabola samples (x - 4.5)² at 0..9.
func parabola(t *testing.T) *Cubic {
	values := make([]float64, 10)
	for i := range values {
		values[i] = (float64(i) - 4.5) * (float64(i) - 4.5)
	}
	c, err := NewCubic(values, 0)
	require.NoError(t, err)
	return c
}

func TestCubicSamples(t *testing.T) {
	c := parabola(t)
	lo, hi := c.Domain()
	require.Equal(t, 0.0, lo)
	require.Equal(t, 9.0, hi)

	for i := 0; i < 10; i++ {
		y, _ := c.Value(float64(i))
		require.InDelta(t, (float64(i)-4.5)*(float64(i)-4.5), y, 1e-12)
	}

	// clamped tangent at the first sample
	_, dy := c.Value(0)
	require.InDelta(t, (12.25-20.25)/2, dy, 1e-12)
}

func TestCubicReproducesQuadratic(t *testing.T) {
	c := parabola(t)
	for _, x := range []float64{1.3, 2, 4.5, 6.75, 7.9} {
		y, dy := c.Value(x)
		require.InDelta(t, (x-4.5)*(x-4.5), y, 1e-12, "x=%v", x)
		require.InDelta(t, 2*(x-4.5), dy, 1e-12, "x=%v", x)
	}
}

func TestCubicSetup(t *testing.T) {
	_, err := NewCubic([]float64{1}, 0)
	require.Error(t, err)

	c, err := NewCubic([]float64{1, 3}, -2)
	require.NoError(t, err)
	y, dy := c.Value(-1.5)
	require.InDelta(t, 2, y, 1e-12)
	require.InDelta(t, 1, dy, 1e-12)
}

func TestCubicInsideFunctor(t *testing.T) {
	c := parabola(t)

	cost, err := costfn.NewSized(costfn.Functor[[1]float64]{
		Real: func(f jet.Field[float64], p [][]float64, r []float64) bool {
			r[0] = Evaluate(c, f, p[0][0])
			return true
		},
		Jet: func(f jet.Field[jet.Jet[float64, [1]float64]], p [][]jet.Jet[float64, [1]float64], r []jet.Jet[float64, [1]float64]) bool {
			r[0] = Evaluate(c, f, p[0][0])
			return true
		},
	}, nil, 1, 1)
	require.NoError(t, err)

	res := make([]float64, 1)
	jac := [][]float64{make([]float64, 1)}
	require.True(t, cost.Evaluate([][]float64{{3.25}}, res, jac))
	require.InDelta(t, 1.5625, res[0], 1e-12)
	require.InDelta(t, -2.5, jac[0][0], 1e-12)

	require.True(t, cost.Evaluate([][]float64{{3.25}}, res, nil))
	require.InDelta(t, 1.5625, res[0], 1e-12)
}
