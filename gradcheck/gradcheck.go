// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gradcheck verifies the Jacobians of a cost function against finite differences.
package gradcheck

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/curioloop/autodiff/costfn"
)

// Settings of the gradient checker.
type Settings struct {
	// Tolerance on the relative error |𝐉ᵢⱼ - 𝐉̃ᵢⱼ| / 𝚖𝚊𝚡(1, |𝐉ᵢⱼ|, |𝐉̃ᵢⱼ|), 1e-7 when zero.
	Tolerance float64
	// Finite difference formula, fd.Central when zero.
	Formula fd.Formula
	// Step of the finite difference formula, the formula default when zero.
	Step float64
}

// Checker compares the Jacobians computed by a cost function with finite difference estimates.
type Checker struct {
	Cost     costfn.CostFunction
	Settings Settings
}

// Result of one probe.
type Result struct {
	Residuals []float64
	// Jacobians computed by the cost function, nil for empty blocks.
	Jacobians []*mat.Dense
	// Jacobians estimated by finite differences, nil for empty blocks.
	Reference []*mat.Dense
	// Maximum relative error over all blocks.
	MaxRelativeError float64
	// Location of the maximum relative error.
	Block, Row, Col int
}

// Probe evaluates the cost function at params and compares every Jacobian with its estimate.
// The error is non-nil when the cost function fails, writes invalid values or exceeds the tolerance,
// the result is returned in the last case for inspection.
func (c *Checker) Probe(params [][]float64) (*Result, error) {

	if c.Cost == nil {
		return nil, errors.New("cost function is required")
	}

	set := c.Settings
	if set.Tolerance == 0 {
		set.Tolerance = 1e-7
	}
	if set.Formula.Stencil == nil {
		set.Formula = fd.Central
	}

	m, sizes := c.Cost.NumResiduals(), c.Cost.ParameterBlockSizes()
	if len(params) != len(sizes) {
		return nil, errors.Errorf("expect %d parameter blocks, got %d", len(sizes), len(params))
	}

	res := &Result{
		Residuals: make([]float64, m),
		Jacobians: make([]*mat.Dense, len(sizes)),
		Reference: make([]*mat.Dense, len(sizes)),
	}

	jac := make([][]float64, len(sizes))
	for i, n := range sizes {
		jac[i] = make([]float64, m*n)
		costfn.InvalidateArray(jac[i])
	}
	costfn.InvalidateArray(res.Residuals)

	if !c.Cost.Evaluate(params, res.Residuals, jac) {
		return nil, errors.New("cost function evaluation failed")
	}
	if !costfn.IsArrayValid(res.Residuals) {
		return nil, errors.Errorf("invalid residuals: %s", costfn.AppendArray(nil, m, res.Residuals))
	}
	for i, n := range sizes {
		if k := costfn.FindInvalidValue(jac[i]); k < len(jac[i]) {
			return nil, errors.Errorf("invalid jacobian of block %d at row %d: %s",
				i, k/n, costfn.AppendArray(nil, n, jac[i][k/n*n:(k/n+1)*n]))
		}
	}

	for i, n := range sizes {
		if n == 0 {
			continue
		}
		ref, err := c.estimate(params, i, m, n, set)
		if err != nil {
			return nil, errors.Wrapf(err, "block %d", i)
		}
		res.Jacobians[i] = mat.NewDense(m, n, jac[i])
		res.Reference[i] = ref
		res.compare(i)
	}

	if res.MaxRelativeError > set.Tolerance {
		return res, errors.Errorf("jacobian of block %d mismatch at (%d, %d): relative error %g exceeds %g",
			res.Block, res.Row, res.Col, res.MaxRelativeError, set.Tolerance)
	}
	return res, nil
}

// estimate differentiates the residuals with respect to block i, holding the other blocks fixed.
func (c *Checker) estimate(params [][]float64, i, m, n int, set Settings) (*mat.Dense, error) {

	x := make([][]float64, len(params))
	copy(x, params)

	failed := false
	f := func(y, xi []float64) {
		x[i] = xi
		if !c.Cost.Evaluate(x, y, nil) {
			failed = true
			for k := range y {
				y[k] = math.NaN()
			}
		}
	}

	dst := mat.NewDense(m, n, nil)
	fd.Jacobian(dst, f, slices.Clone(params[i]), &fd.JacobianSettings{
		Formula: set.Formula,
		Step:    set.Step,
	})
	if failed {
		return nil, errors.New("cost function evaluation failed during finite differences")
	}
	return dst, nil
}

func (r *Result) compare(block int) {
	a, b := r.Jacobians[block], r.Reference[block]
	rows, cols := a.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			u, v := a.At(i, j), b.At(i, j)
			e := math.Abs(u-v) / math.Max(1, math.Max(math.Abs(u), math.Abs(v)))
			if e > r.MaxRelativeError {
				r.MaxRelativeError = e
				r.Block, r.Row, r.Col = block, i, j
			}
		}
	}
}

// String formats the computed and estimated Jacobians side by side.
func (r *Result) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "residuals: %s\n", costfn.AppendArray(nil, len(r.Residuals), r.Residuals))
	for i, j := range r.Jacobians {
		if j == nil {
			continue
		}
		fmt.Fprintf(&b, "block %d\n  computed  = %.6v\n  estimated = %.6v\n", i,
			mat.Formatted(j, mat.Prefix("              ")),
			mat.Formatted(r.Reference[i], mat.Prefix("              ")))
	}
	fmt.Fprintf(&b, "max relative error %g at block %d (%d, %d)\n", r.MaxRelativeError, r.Block, r.Row, r.Col)
	return b.String()
}
