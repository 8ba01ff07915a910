// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package costfn

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/curioloop/autodiff/jet"
)

// product is an analytic cost function with blocks x(2), y(2):
//
//	𝒓₀ = x₀·y₀
//	𝒓₁ = x₁ + y₁
type product struct {
	Registry
	calls int
}

func newProduct() *product {
	p := new(product)
	p.AddParameterBlock(2)
	p.AddParameterBlock(2)
	p.SetNumResiduals(2)
	return p
}

func (p *product) Evaluate(params [][]float64, residuals []float64, jacobians [][]float64) bool {
	p.calls++
	x, y := params[0], params[1]
	residuals[0] = x[0] * y[0]
	residuals[1] = x[1] + y[1]
	if jacobians == nil {
		return true
	}
	if jacobians[0] != nil {
		copy(jacobians[0], []float64{y[0], 0, 0, 1})
	}
	if jacobians[1] != nil {
		copy(jacobians[1], []float64{x[0], 0, 0, 1})
	}
	return true
}

// scaled multiplies the residuals of inner by z₀.
func scaled[S any](f jet.Field[S], inner Residual[S], p [][]S, r []S) bool {
	t := make([]S, 2)
	if !inner(f, p[:2], t) {
		return false
	}
	r[0] = f.Mul(t[0], p[2][0])
	r[1] = f.Mul(t[1], p[2][0])
	return true
}

func TestCostFunctionInsideFunctor(t *testing.T) {
	type J = jet.Jet[float64, [2]float64]

	inner := newProduct()
	reals, jets := ToReal(inner), ToJet[[2]float64](inner)

	functor := Functor[[2]float64]{
		Real: func(f jet.Field[float64], p [][]float64, r []float64) bool { return scaled(f, reals, p, r) },
		Jet:  func(f jet.Field[J], p [][]J, r []J) bool { return scaled(f, jets, p, r) },
	}
	cost, err := NewSized(functor, nil, 2, 2, 2, 1)
	require.NoError(t, err)

	x, y, z := []float64{1.5, -2}, []float64{3, 0.25}, []float64{-4}
	params := [][]float64{x, y, z}

	res := make([]float64, 2)
	jac := jacobianBuffers(cost)
	require.True(t, cost.Evaluate(params, res, jac))

	require.Equal(t, []float64{x[0] * y[0] * z[0], (x[1] + y[1]) * z[0]}, res)
	require.Equal(t, []float64{y[0] * z[0], 0, 0, z[0]}, jac[0])
	require.Equal(t, []float64{x[0] * z[0], 0, 0, z[0]}, jac[1])
	require.Equal(t, []float64{x[0] * y[0], x[1] + y[1]}, jac[2])

	// 5 parameters with stride 2
	require.Equal(t, 3, inner.calls)

	inner.calls = 0
	require.True(t, cost.Evaluate(params, res, nil))
	require.Equal(t, 1, inner.calls)
}

func TestToJetFailure(t *testing.T) {
	type J = jet.Jet[float64, [1]float64]
	failing := Functor[[1]float64]{
		Real: func(jet.Field[float64], [][]float64, []float64) bool { return false },
		Jet:  func(jet.Field[J], [][]J, []J) bool { return false },
	}
	cost, err := NewSized(failing, nil, 1, 1)
	require.NoError(t, err)

	params := [][]float64{{1}}
	require.False(t, ToReal(cost)(jet.Reals{}, params, make([]float64, 1)))
	require.False(t, ToJet[[1]float64](cost)(jet.Jets[float64, [1]float64]{}, [][]J{{jet.Variable[float64, [1]float64](1, 0)}}, make([]J, 1)))
}

func TestToJetLateSetup(t *testing.T) {
	type J = jet.Jet[float64, [2]float64]

	inner := new(product)
	jets := ToJet[[2]float64](inner)
	inner.AddParameterBlock(2)
	inner.AddParameterBlock(2)
	inner.SetNumResiduals(2)

	x := []J{jet.Variable[float64, [2]float64](2, 0), jet.Variable[float64, [2]float64](1, 1)}
	y := []J{jet.Const[float64, [2]float64](5), jet.Const[float64, [2]float64](3)}
	r := make([]J, 2)
	require.True(t, jets(jet.Jets[float64, [2]float64]{}, [][]J{x, y}, r))
	require.Equal(t, 10.0, r[0].A)
	require.Equal(t, [2]float64{5, 0}, r[0].V)
	require.Equal(t, [2]float64{0, 1}, r[1].V)
}
