// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package costfn

import "github.com/curioloop/autodiff/jet"

// ToReal adapts a cost function into a residual functor over plain values.
func ToReal(cost CostFunction) Residual[float64] {
	return func(_ jet.Field[float64], params [][]float64, residuals []float64) bool {
		return cost.Evaluate(params, residuals, nil)
	}
}

// ToJet adapts a cost function into a residual functor over jets,
// so that an analytic cost function could be called from inside an automatically differentiated one.
// The layout of cost is read on every call, so it may be set up after the adapter is made.
// The partials of the residuals are given by the chain rule
//
//	𝐫ₖ.𝐯 = Σᵢ Σⱼ (∂𝒓ₖ/∂𝒙ᵢⱼ) 𝐱ᵢⱼ.𝐯
func ToJet[D jet.Partials[float64]](cost CostFunction) Residual[jet.Jet[float64, D]] {
	return func(_ jet.Field[jet.Jet[float64, D]], params [][]jet.Jet[float64, D], residuals []jet.Jet[float64, D]) bool {

		m, sizes := cost.NumResiduals(), cost.ParameterBlockSizes()
		if len(params) != len(sizes) || len(residuals) != m {
			panic("functor dimension not match cost function")
		}

		x := make([][]float64, len(sizes))
		jac := make([][]float64, len(sizes))
		for i, n := range sizes {
			x[i] = make([]float64, n)
			for j := range x[i] {
				x[i][j] = params[i][j].A
			}
			jac[i] = make([]float64, m*n)
		}

		r := make([]float64, m)
		if !cost.Evaluate(x, r, jac) {
			return false
		}

		for k := range residuals {
			out := jet.Const[float64, D](r[k])
			for i, n := range sizes {
				row := jac[i][k*n : (k+1)*n]
				for j, dr := range row {
					v := params[i][j].V
					for s := 0; s < len(out.V); s++ {
						out.V[s] += dr * v[s]
					}
				}
			}
			residuals[k] = out
		}
		return true
	}
}
