// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package costfn

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Registry records the parameter block sizes and the residual number of a cost function.
// Both are set up before the first evaluation and are read-only afterwards,
// so a sealed registry could be shared by concurrent evaluations.
type Registry struct {
	sizes     []int
	residuals int
	sealed    atomic.Bool
	once      sync.Once
	layout    layout
}

// span locates a parameter block in the flattened parameter vector.
type span struct {
	start, size int
}

// layout is the index table of a sealed registry.
type layout struct {
	blocks []span
	owner  []int // raw parameter index → block index
	total  int
}

// AddParameterBlock appends a parameter block of given size.
func (r *Registry) AddParameterBlock(size int) {
	if r.sealed.Load() {
		panic("parameter blocks are fixed after the first evaluation")
	}
	if size < 0 {
		panic("parameter block size must not less than 0")
	}
	r.sizes = append(r.sizes, size)
}

// SetNumResiduals fixes the number of residuals.
func (r *Registry) SetNumResiduals(n int) {
	if r.sealed.Load() {
		panic("residual number is fixed after the first evaluation")
	}
	if n <= 0 {
		panic("residual number must greater than 0")
	}
	r.residuals = n
}

func (r *Registry) NumResiduals() int {
	return r.residuals
}

func (r *Registry) ParameterBlockSizes() []int {
	return slices.Clone(r.sizes)
}

// NumParameters returns the total number of raw parameters.
func (r *Registry) NumParameters() (n int) {
	for _, s := range r.sizes {
		n += s
	}
	return
}

// Validate freezes the registry and panics when it is incomplete
// or when the buffers do not match it.
func (r *Registry) Validate(params [][]float64, residuals []float64, jacobians [][]float64) {
	r.validate(params, residuals, jacobians)
}

func (r *Registry) validate(params [][]float64, residuals []float64, jacobians [][]float64) *layout {
	if r.residuals <= 0 {
		panic("SetNumResiduals must be called before Evaluate")
	}
	l := r.seal()
	l.check(params, residuals, jacobians, r.residuals)
	return l
}

// seal freezes the registry and returns its index table.
func (r *Registry) seal() *layout {
	r.sealed.Store(true)
	r.once.Do(func() {
		l := &r.layout
		l.blocks = make([]span, len(r.sizes))
		for i, s := range r.sizes {
			l.blocks[i] = span{start: l.total, size: s}
			l.total += s
		}
		l.owner = make([]int, 0, l.total)
		for i, s := range r.sizes {
			for range s {
				l.owner = append(l.owner, i)
			}
		}
	})
	return &r.layout
}

// check panics when buffers do not match the layout.
func (l *layout) check(params [][]float64, residuals []float64, jacobians [][]float64, m int) {
	if len(params) != len(l.blocks) {
		panic("parameter block number not match registry")
	}
	for i, b := range l.blocks {
		if len(params[i]) != b.size {
			panic("parameter block size not match registry")
		}
	}
	if len(residuals) != m {
		panic("residual dimension not match registry")
	}
	if jacobians == nil {
		return
	}
	if len(jacobians) != len(l.blocks) {
		panic("jacobian block number not match registry")
	}
	for i, b := range l.blocks {
		if jacobians[i] != nil && len(jacobians[i]) != m*b.size {
			panic("jacobian block size not match registry")
		}
	}
}
