// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package costfn

import "github.com/curioloop/autodiff/jet"

// FirstOrder is a scalar objective 𝒇(𝐱) whose gradient is the single-row Jacobian of a Dynamic cost function.
//
// The parameters are passed flattened, the gradient shares their layout,
// so every block of the gradient is written in place by the jet passes.
type FirstOrder[D jet.Partials[float64]] struct {
	cost  *Dynamic[D]
	sizes []int
	total int
}

// NewFirstOrder creates an objective over parameter blocks of the given sizes.
// The functor writes the objective into its only residual.
func NewFirstOrder[D jet.Partials[float64]](functor Functor[D], opt *Options, sizes ...int) (*FirstOrder[D], error) {
	cost, err := NewSized(functor, opt, 1, sizes...)
	if err != nil {
		return nil, err
	}
	return &FirstOrder[D]{
		cost:  cost,
		sizes: cost.ParameterBlockSizes(),
		total: cost.NumParameters(),
	}, nil
}

// NumParameters returns the length of the flattened parameters.
func (fo *FirstOrder[D]) NumParameters() int {
	return fo.total
}

// Evaluate returns 𝒇(𝐱) and writes ∇𝒇(𝐱) when gradient is not nil.
// The gradient must be discarded when ok is false.
func (fo *FirstOrder[D]) Evaluate(x, gradient []float64) (cost float64, ok bool) {

	if len(x) != fo.total || (gradient != nil && len(gradient) != fo.total) {
		panic("parameter dimension not match objective")
	}

	params := make([][]float64, len(fo.sizes))
	var jac [][]float64
	if gradient != nil {
		jac = make([][]float64, len(fo.sizes))
	}
	start := 0
	for i, n := range fo.sizes {
		end := start + n
		params[i] = x[start:end:end]
		if jac != nil {
			jac[i] = gradient[start:end:end]
		}
		start = end
	}

	r := make([]float64, 1)
	ok = fo.cost.Evaluate(params, r, jac)
	return r[0], ok
}
