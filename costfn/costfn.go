// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package costfn evaluates residual functions and their exact Jacobians by forward-mode automatic differentiation
// over parameter blocks whose number and sizes are only known at run time.
//
// Derivatives are computed with jets of a fixed width N (the stride).
// A cost function with 𝒑 requested parameters is differentiated in ⌈𝒑/N⌉ passes,
// each seeding the next N requested parameters, so the result does not depend on N.
//
// # Reference:
//
//   - http://ceres-solver.org/nnls_modeling.html#dynamicautodiffcostfunction
//   - https://github.com/ceres-solver/ceres-solver/blob/master/include/ceres/dynamic_autodiff_cost_function.h
//
// # License
//
//   - https://github.com/ceres-solver/ceres-solver/blob/master/LICENSE
package costfn

import "github.com/curioloop/autodiff/jet"

// CostFunction computes residuals 𝒓(𝐱₁,...,𝐱ₖ) ∈ ℝᵐ and optionally the Jacobians ∂𝒓/∂𝐱ᵢ.
//
// The i-th Jacobian is row-major with m × len(𝐱ᵢ) elements.
// A nil jacobians or a nil jacobians[i] means the Jacobian is not requested,
// and the corresponding buffer must not be touched.
type CostFunction interface {
	NumResiduals() int
	ParameterBlockSizes() []int
	Evaluate(params [][]float64, residuals []float64, jacobians [][]float64) bool
}

// Residual is a residual functor instantiated over the scalar type S.
// It reports false when the residuals could not be evaluated at params.
type Residual[S any] func(f jet.Field[S], params [][]S, residuals []S) bool

// Functor holds one residual functor body instantiated twice:
// over float64 for value-only evaluation and over jets of width len(D) for derivatives.
//
//	func circle[S any](f jet.Field[S], x [][]S, r []S) bool {
//		r[0] = f.Sub(f.Hypot(x[0][0], x[0][1]), x[1][0])
//		return true
//	}
//
//	functor := costfn.Functor[[4]float64]{
//		Real: circle[float64],
//		Jet:  circle[jet.Jet[float64, [4]float64]],
//	}
type Functor[D jet.Partials[float64]] struct {
	Real Residual[float64]
	Jet  Residual[jet.Jet[float64, D]]
}
