// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numdiff

import (
	"errors"
	"math"

	pkgerrors "github.com/pkg/errors"
)

var sqrtEps = math.Sqrt(math.Nextafter(1, 2) - 1)
var cubeEps = math.Pow(math.Nextafter(1, 2)-1, float64(1)/3)

// ErrObject reports that the object function failed to evaluate.
var ErrObject = errors.New("object evaluation failed")

type Method int

const (
	// Forward use the first order accuracy forward difference.
	Forward Method = iota
	// Central use central difference in interior points and the second order accuracy
	// forward or backward difference near the boundary.
	Central
)

type Bound [2]float64

// ApproxSpec represents a numerical differentiation algorithms to estimate the derivative of a mathematical function.
//
// # Reference:
//
//   - https://en.wikipedia.org/wiki/Finite_difference
//   - https://github.com/scipy/scipy/blob/main/scipy/optimize/_numdiff.py
//
// # License
//
//   - https://github.com/scipy/scipy/blob/main/LICENSE.txt
type ApproxSpec struct {
	N, M int
	// Function of which to estimate the derivatives.
	// The argument x passed to this function is an n-vector.
	// The result is store in an m-vector y.
	// It reports false when the function could not be evaluated at x.
	Object func(x, y []float64) bool
	// Finite difference method to use.
	Method Method
	// Lower and upper bounds on independent variables.
	// Use it to limit the range of function evaluation.
	Bounds []Bound
	// Relative step size used to compute absolute step size.
	// The default absolute step size is computed as h = RelStep * sign(x0) * max(1, abs(x0)) with RelStep being selected automatically.
	// Otherwise, absolute step size is computed as h = RelStep * sign(x0) * abs(x0) when RelStep is provided.
	RelStep float64
	// Absolute step size to use, possibly adjusted to fit into the bounds.
	// The RelStep is used when AbsStep is not provide.
	// For Central method the sign of AbsStep is ignored.
	AbsStep float64
	// Known function value at x0, saving one evaluation when provided.
	OriginValue []float64
	// Don't check if x0 is out of bounds.
	NotChkBnd bool
	// Whether transpose the Jacobian matrix.
	TransJac bool
	approxCtx
}

type approxCtx struct {
	f0, fx  []float64
	absStep []float64
	oneSide []bool
}

// Check the parameters and initialize approxCtx.
func (as *ApproxSpec) Check(x0, diff []float64) (err error) {

	switch {
	case as.N <= 0 || as.M <= 0:
		err = errors.New("negative dimensions")
	case as.Method != Forward && as.Method != Central:
		err = errors.New("unknown method")
	case as.Object == nil:
		err = errors.New("object function is required")
	case as.N != len(x0):
		err = errors.New("invalid x0 dimensions")
	case as.N*as.M != len(diff):
		err = errors.New("invalid diff dimensions")
	case as.OriginValue != nil && len(as.OriginValue) != as.M:
		err = errors.New("invalid origin value dimensions")
	case as.Bounds != nil:
		err = as.checkBounds(x0)
	}
	if err != nil {
		return
	}

	if len(as.fx) != as.M*(int(as.Method)+1) {
		as.f0 = make([]float64, as.M)
		as.fx = make([]float64, as.M*(int(as.Method)+1))
	}
	if len(as.absStep) != as.N {
		as.absStep = make([]float64, as.N)
	}
	if len(as.oneSide) != as.N*int(as.Method) {
		as.oneSide = make([]bool, as.N*int(as.Method))
	}
	return
}

func (as *ApproxSpec) checkBounds(x0 []float64) error {
	if len(as.Bounds) != len(x0) {
		return errors.New("invalid bound dimension")
	}
	for i := range as.Bounds {
		bound := &as.Bounds[i]
		if math.IsNaN(bound[0]) {
			bound[0] = math.Inf(-1)
		}
		if math.IsNaN(bound[1]) {
			bound[1] = math.Inf(1)
		}
		if bound[0] > bound[1] {
			return errors.New("invalid bound range")
		}
		if !as.NotChkBnd && (x0[i] < bound[0] || x0[i] > bound[1]) {
			return errors.New("x0 violates bound constraints")
		}
	}
	return nil
}

// Diff calculate approximation of derivatives by finite differences.
// The x0 is restored before return, even when the object function fails.
func (as *ApproxSpec) Diff(x0, diff []float64) error {

	if err := as.Check(x0, diff); err != nil {
		return err
	}

	bnd := false
	for _, bound := range as.Bounds {
		l, u := bound[0], bound[1]
		if bnd = !(math.IsInf(l, 0) && math.IsInf(u, 0)); bnd {
			break
		}
	}

	as.absoluteStep(x0)
	as.adjustToBounds(x0, bnd)

	if as.OriginValue != nil {
		copy(as.f0, as.OriginValue)
	} else if !as.Object(x0, as.f0) {
		return pkgerrors.Wrap(ErrObject, "origin")
	}

	if as.Method == Central {
		return as.approxCentral(x0, diff)
	}
	return as.approxForward(x0, diff)
}

func (as *ApproxSpec) adjustToBounds(x0 []float64, bnd bool) {
	h, o := as.absStep, as.oneSide
	if as.Method == Central {
		for i, v := range h {
			h[i] = math.Abs(v)
		}
		for i := range o {
			o[i] = false
		}
	}

	if !bnd {
		return
	}

	b := as.Bounds
	if len(x0) != len(b) || len(x0) != len(h) {
		panic("bound check error")
	}

	if as.Method == Forward {
		for i, x0 := range x0 {
			ld, ud := x0-b[i][0], b[i][1]-x0
			x := x0 + h[i]
			violated := x < b[i][0] || x > b[i][1]
			fitting := math.Abs(h[i]) < math.Max(ld, ud)
			switch {
			case violated && fitting:
				h[i] = -h[i]
			case !fitting && ud >= ld:
				h[i] = ud
			case !fitting:
				h[i] = -ld
			}
		}
		return
	}

	if len(x0) != len(o) {
		panic("bound check error")
	}
	for i, x0 := range x0 {
		ld, ud := x0-b[i][0], b[i][1]-x0
		central := ld >= h[i] && ud >= h[i]
		if !central {
			if ud >= ld {
				h[i] = math.Min(h[i], 0.5*ud)
			} else {
				h[i] = -math.Min(h[i], 0.5*ld)
			}
			o[i] = true
		}
		minDist := math.Min(ud, ld)
		if !central && math.Abs(h[i]) <= minDist {
			h[i] = minDist
			o[i] = false
		}
	}
}

func (as *ApproxSpec) absoluteStep(x0 []float64) {
	h := as.absStep
	if len(h) != len(x0) {
		panic("bound check error")
	}

	var eps float64
	switch as.Method {
	case Forward:
		eps = sqrtEps
	case Central:
		eps = cubeEps
	default:
		panic("unknown method")
	}

	auto := func(v float64) float64 {
		return math.Copysign(eps, v) * math.Max(1.0, math.Abs(v))
	}

	abs, rel := as.AbsStep, as.RelStep
	for i, v := range x0 {
		if abs == 0 && rel == 0 {
			h[i] = auto(v)
			continue
		}
		s := abs
		if s == 0 {
			s = math.Copysign(rel, v) * math.Abs(v)
		}
		// a step vanishing in floating point falls back to the automatic one
		if (v+s)-v == 0 {
			s = auto(v)
		}
		h[i] = s
	}
}

// store writes column i of the Jacobian from the differences (fx - f0)·d.
func (as *ApproxSpec) store(df []float64, i int, col func(j int) float64) {
	n, m := as.N, as.M
	if as.TransJac {
		t := df[i*m : (i+1)*m]
		for j := range t {
			t[j] = col(j)
		}
		return
	}
	for j := 0; j < m; j++ {
		df[i+j*n] = col(j)
	}
}

func (as *ApproxSpec) approxForward(x0, df []float64) error {

	f0, fx, h := as.f0, as.fx, as.absStep
	if len(h) != len(x0) || len(f0) != len(fx) {
		panic("bound check error")
	}

	for i, s := range h {
		t := x0[i]
		x0[i] = t + s
		ok := as.Object(x0, fx)
		x0[i] = t
		if !ok {
			return pkgerrors.Wrapf(ErrObject, "forward step at %d", i)
		}
		d := 1.0 / s
		as.store(df, i, func(j int) float64 {
			return (fx[j] - f0[j]) * d
		})
	}
	return nil
}

func (as *ApproxSpec) approxCentral(x0, df []float64) error {

	f0, h, o, m := as.f0, as.absStep, as.oneSide, as.M
	f1, f2 := as.fx[:m], as.fx[m:]
	if len(h) != len(x0) || len(h) != len(o) || len(f0) != len(f1) || len(f0) != len(f2) {
		panic("bound check error")
	}

	for i, s := range h {
		x := x0[i]
		d := 1.0 / (2 * s)
		// one-sided: f(x+s), f(x+2s); otherwise f(x-s), f(x+s)
		lo, hi := x-s, x+s
		if o[i] {
			lo, hi = x+s, x+2*s
		}
		x0[i] = lo
		ok := as.Object(x0, f1)
		if ok {
			x0[i] = hi
			ok = as.Object(x0, f2)
		}
		x0[i] = x
		if !ok {
			return pkgerrors.Wrapf(ErrObject, "central step at %d", i)
		}
		if o[i] {
			as.store(df, i, func(j int) float64 {
				return (4*f1[j] - 3*f0[j] - f2[j]) * d
			})
		} else {
			as.store(df, i, func(j int) float64 {
				return (f2[j] - f1[j]) * d
			})
		}
	}
	return nil
}
