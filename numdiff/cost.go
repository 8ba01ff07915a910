// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numdiff

import (
	"errors"
	"slices"

	"github.com/curioloop/autodiff/costfn"
	"github.com/curioloop/autodiff/jet"
)

// Options configures the finite differences of a CostFunction.
type Options struct {
	Method  Method
	RelStep float64
	AbsStep float64
}

// CostFunction is a costfn.CostFunction whose Jacobians are estimated by finite differences.
// Each requested block is perturbed on its own while the other blocks are held fixed.
type CostFunction struct {
	costfn.Registry
	functor costfn.Residual[float64]
	opts    Options
}

// New creates a numerically differentiated cost function for the given functor.
func New(functor costfn.Residual[float64], opt *Options) (cost *CostFunction, err error) {

	var opts Options
	if opt != nil {
		opts = *opt
	}

	switch {
	case functor == nil:
		err = errors.New("functor is required")
	case opts.Method != Forward && opts.Method != Central:
		err = errors.New("unknown method")
	case opts.RelStep < 0:
		err = errors.New("relative step must not less than 0")
	}
	if err != nil {
		return
	}

	cost = &CostFunction{functor: functor, opts: opts}
	return
}

// Evaluate computes the residuals and estimates the requested Jacobians at params.
func (c *CostFunction) Evaluate(params [][]float64, residuals []float64, jacobians [][]float64) bool {

	c.Validate(params, residuals, jacobians)

	if !c.functor(jet.Reals{}, params, residuals) {
		return false
	}
	if jacobians == nil {
		return true
	}

	// perturb copies, the caller's parameters stay untouched
	x := make([][]float64, len(params))
	for i, p := range params {
		x[i] = slices.Clone(p)
	}

	m := c.NumResiduals()
	for i, jac := range jacobians {
		if jac == nil || len(x[i]) == 0 {
			continue
		}
		as := ApproxSpec{
			N: len(x[i]), M: m,
			Method:      c.opts.Method,
			RelStep:     c.opts.RelStep,
			AbsStep:     c.opts.AbsStep,
			OriginValue: residuals,
			Object: func(xi, y []float64) bool {
				return c.functor(jet.Reals{}, x, y)
			},
		}
		if err := as.Diff(x[i], jac); err != nil {
			return false
		}
	}
	return true
}
