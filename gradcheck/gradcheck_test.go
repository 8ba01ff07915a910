// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gradcheck

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/curioloop/autodiff/costfn"
	"github.com/curioloop/autodiff/jet"
)

// rosen is the two dimensional Rosenbrock residual split over blocks x(1), y(1) plus an unused block of size 0.
//
//	𝒓₀ = 10(y - x²)
//	𝒓₁ = 1 - x
func rosen[S any](f jet.Field[S], p [][]S, r []S) bool {
	x, y := p[0][0], p[1][0]
	r[0] = f.Scale(10, f.Sub(y, f.Mul(x, x)))
	r[1] = f.Sub(f.Const(1), x)
	return true
}

// analytic has the same residuals as rosen, its Jacobian of y is scaled by gain.
type analytic struct {
	costfn.Registry
	gain float64
	fail bool
}

func newAnalytic(gain float64) *analytic {
	a := &analytic{gain: gain}
	a.AddParameterBlock(1)
	a.AddParameterBlock(1)
	a.AddParameterBlock(0)
	a.SetNumResiduals(2)
	return a
}

func (a *analytic) Evaluate(params [][]float64, residuals []float64, jacobians [][]float64) bool {
	a.Validate(params, residuals, jacobians)
	if a.fail && jacobians == nil {
		return false
	}
	x, y := params[0][0], params[1][0]
	residuals[0] = 10 * (y - x*x)
	residuals[1] = 1 - x
	if jacobians == nil {
		return true
	}
	if jacobians[0] != nil {
		jacobians[0][0], jacobians[0][1] = -20*x, -1
	}
	if jacobians[1] != nil {
		jacobians[1][0], jacobians[1][1] = 10*a.gain, 0
	}
	return true
}

var origin = [][]float64{{-1.2}, {1}, {}}

func TestProbeDynamic(t *testing.T) {

	cost, err := costfn.NewSized(costfn.Functor[[2]float64]{
		Real: rosen[float64],
		Jet:  rosen[jet.Jet[float64, [2]float64]],
	}, nil, 2, 1, 1, 0)
	require.NoError(t, err)

	c := Checker{Cost: cost}
	res, err := c.Probe(origin)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{-4.4, 2.2}, res.Residuals, 1e-12)
	require.Nil(t, res.Jacobians[2])
	require.Nil(t, res.Reference[2])
	require.InDelta(t, 24, res.Jacobians[0].At(0, 0), 1e-12)
	require.InDelta(t, 24, res.Reference[0].At(0, 0), 1e-6)
	require.Less(t, res.MaxRelativeError, 1e-7)
	require.Contains(t, res.String(), "block 1")
}

func TestProbeAnalytic(t *testing.T) {

	c := Checker{Cost: newAnalytic(1), Settings: Settings{Formula: fd.Forward, Tolerance: 1e-5}}
	_, err := c.Probe(origin)
	require.NoError(t, err)

	c.Cost = newAnalytic(1.01)
	res, err := c.Probe(origin)
	require.Error(t, err)
	require.NotNil(t, res)
	require.Equal(t, 1, res.Block)
	require.Equal(t, 0, res.Row)
	require.Equal(t, 0, res.Col)
	require.InDelta(t, 0.1/10.1, res.MaxRelativeError, 1e-6)
}

func TestProbeFailure(t *testing.T) {

	a := newAnalytic(1)
	a.fail = true
	c := Checker{Cost: a}
	_, err := c.Probe(origin)
	require.ErrorContains(t, err, "finite differences")

	_, err = c.Probe(origin[:2])
	require.Error(t, err)

	_, err = (&Checker{}).Probe(origin)
	require.Error(t, err)
}
