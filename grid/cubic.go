// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid interpolates sampled functions so that they could be used inside residual functors.
//
// # Reference:
//
//   - https://en.wikipedia.org/wiki/Cubic_Hermite_spline#Catmull%E2%80%93Rom_spline
//   - http://ceres-solver.org/nnls_modeling.html#cubicinterpolator
package grid

import (
	"errors"

	"gonum.org/v1/gonum/interp"

	"github.com/curioloop/autodiff/jet"
)

// Cubic is a Catmull-Rom spline through values sampled at the integers 𝒃, 𝒃+1, ..., 𝒃+n-1.
//
// The tangent at sample 𝒊 is (𝒇ᵢ₊₁ - 𝒇ᵢ₋₁)/2 with the samples clamped at both ends,
// so the spline is 𝐂¹ and reproduces quadratics away from the ends.
type Cubic struct {
	begin, end int
	spline     interp.PiecewiseCubic
}

// NewCubic fits the spline through values sampled from begin.
func NewCubic(values []float64, begin int) (*Cubic, error) {

	n := len(values)
	if n < 2 {
		return nil, errors.New("at least 2 samples are required")
	}

	xs := make([]float64, n)
	dydx := make([]float64, n)
	for i := range values {
		xs[i] = float64(begin + i)
		lo, hi := max(i-1, 0), min(i+1, n-1)
		dydx[i] = (values[hi] - values[lo]) / 2
	}

	c := &Cubic{begin: begin, end: begin + n - 1}
	c.spline.FitWithDerivatives(xs, values, dydx)
	return c, nil
}

// Domain returns the first and the last sample position.
func (c *Cubic) Domain() (lo, hi float64) {
	return float64(c.begin), float64(c.end)
}

// Value returns the spline and its derivative at x, which should lie within the domain.
func (c *Cubic) Value(x float64) (f, dfdx float64) {
	return c.spline.Predict(x), c.spline.PredictDerivative(x)
}

// Evaluate interpolates at x through the field f, so the partials of x are carried by the spline derivative:
//
//	𝒚 + 𝒚′𝐱ϵ
func Evaluate[S any](c *Cubic, f jet.Field[S], x S) S {
	v := f.Value(x)
	y, dy := c.Value(v)
	return f.Add(f.Const(y), f.Scale(dy, f.Sub(x, f.Const(v))))
}
