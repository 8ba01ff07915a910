// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package costfn

import (
	"errors"
	"os"

	"github.com/curioloop/autodiff/jet"
)

// Options configures the evaluator.
type Options struct {
	Logger  *Logger  // Optional logger, nothing is logged by default.
	Summary *Summary // Optional execution statistics.
}

// Dynamic is a CostFunction differentiated by jets of width len(D).
//
// The parameter blocks and the residual number are set up through the embedded Registry
// before the first call to Evaluate. Every evaluation allocates its own scratch space,
// so concurrent evaluations are safe once the setup is done.
type Dynamic[D jet.Partials[float64]] struct {
	Registry
	functor Functor[D]
	logger  Logger
	summary *Summary
}

// NewDynamic creates a cost function that owns the given functor.
func NewDynamic[D jet.Partials[float64]](functor Functor[D], opt *Options) (cost *Dynamic[D], err error) {

	switch {
	case functor.Real == nil:
		err = errors.New("real functor is required")
	case functor.Jet == nil:
		err = errors.New("jet functor is required")
	}
	if err != nil {
		return
	}

	cost = &Dynamic[D]{functor: functor}
	cost.logger.Level = LogNoop
	if opt != nil {
		if opt.Logger != nil {
			cost.logger = *opt.Logger
		}
		cost.summary = opt.Summary
	}
	if cost.logger.Msg == nil {
		cost.logger.Msg = os.Stdout
	}
	return
}

// NewSized creates a cost function whose layout is known at construction.
func NewSized[D jet.Partials[float64]](functor Functor[D], opt *Options, residuals int, sizes ...int) (*Dynamic[D], error) {
	cost, err := NewDynamic(functor, opt)
	if err != nil {
		return nil, err
	}
	if residuals <= 0 {
		return nil, errors.New("residual number must greater than 0")
	}
	for _, s := range sizes {
		if s < 0 {
			return nil, errors.New("parameter block size must not less than 0")
		}
		cost.AddParameterBlock(s)
	}
	cost.SetNumResiduals(residuals)
	return cost, nil
}

// Functor returns the functor owned by the cost function.
func (d *Dynamic[D]) Functor() Functor[D] {
	return d.functor
}

// Stride returns the number of derivatives evaluated by one functor call.
func (d *Dynamic[D]) Stride() int {
	return jet.Width[float64, D]()
}

// Evaluate computes the residuals and the requested Jacobians at params.
//
// The functor is called once with plain values when no Jacobian is requested,
// otherwise once per stride of requested parameters.
// It returns false as soon as one functor call fails, in which case all outputs must be discarded.
func (d *Dynamic[D]) Evaluate(params [][]float64, residuals []float64, jacobians [][]float64) bool {

	l := d.validate(params, residuals, jacobians)
	m := d.NumResiduals()

	defer d.summary.timer("Evaluate")()
	events := d.logger.events("Evaluate")
	defer events.flush()

	var s sections
	if jacobians != nil {
		active := make([]bool, len(l.blocks))
		for i := range active {
			active[i] = jacobians[i] != nil
		}
		s = planSections(d.sizes, active)
	}
	events.add("Plan")

	if s.active == 0 {
		ok := d.callReal(params, residuals)
		if d.logger.enable(LogEval) {
			d.logger.log("evaluate: blocks=%d active=0 passes=0 ok=%t\n", len(l.blocks), ok)
		}
		return ok
	}

	e := evaluation[D]{
		layout: l,
		in:     make([]jet.Jet[float64, D], l.total),
		out:    make([]jet.Jet[float64, D], m),
		views:  make([][]jet.Jet[float64, D], len(l.blocks)),
	}
	for i, b := range l.blocks {
		e.views[i] = e.in[b.start : b.start+b.size : b.start+b.size]
	}

	stride := d.Stride()
	passes := (s.active + stride - 1) / stride
	window := make([]int, 0, stride)

	var c cursor
	for pass := 0; pass < passes; pass++ {
		window = c.next(&s, stride, window)
		if d.logger.enable(LogPass) {
			d.logger.log("pass %d/%d: seed %v\n", pass+1, passes, window)
		}

		e.seed(params, window)
		if !d.callJet(e.views, e.out) {
			if d.logger.enable(LogEval) {
				d.logger.log("evaluate: functor failed at pass %d/%d\n", pass+1, passes)
			}
			return false
		}
		e.extract(jacobians, window)

		// The value is the same in every pass, only copy it once.
		if pass == passes-1 {
			e.finalize(residuals)
		}
		events.add("Pass")
	}

	if !c.done(&s) {
		panic("derivative sections not exhausted")
	}
	if d.logger.enable(LogEval) {
		d.logger.log("evaluate: blocks=%d active=%d passes=%d ok=true\n", len(l.blocks), s.active, passes)
	}
	return true
}

func (d *Dynamic[D]) callReal(params [][]float64, residuals []float64) bool {
	defer d.summary.timer("Functor")()
	return d.functor.Real(jet.Reals{}, params, residuals)
}

func (d *Dynamic[D]) callJet(params [][]jet.Jet[float64, D], residuals []jet.Jet[float64, D]) bool {
	defer d.summary.timer("Functor")()
	return d.functor.Jet(jet.Jets[float64, D]{}, params, residuals)
}

// evaluation is the scratch space of one Evaluate call.
type evaluation[D jet.Partials[float64]] struct {
	layout *layout
	in     []jet.Jet[float64, D]   // flattened input jets
	out    []jet.Jet[float64, D]   // residual jets
	views  [][]jet.Jet[float64, D] // per-block views of in
}

// seed sets every input jet to its parameter value with zero partials,
// then puts a unit partial at slot s for the s-th index of the window.
func (e *evaluation[D]) seed(params [][]float64, window []int) {
	for i, b := range e.layout.blocks {
		x := e.views[i]
		for j := 0; j < b.size; j++ {
			x[j].Seed(params[i][j])
		}
	}
	for s, k := range window {
		e.in[k].V[s] = 1
	}
}

// extract copies partial s of every residual into the Jacobian of the block owning the s-th index of the window.
// Only blocks owning a seeded index are written.
func (e *evaluation[D]) extract(jacobians [][]float64, window []int) {
	for s, k := range window {
		i := e.layout.owner[k]
		b := e.layout.blocks[i]
		jac, j := jacobians[i], k-b.start
		for r := range e.out {
			jac[r*b.size+j] = e.out[r].V[s]
		}
	}
}

func (e *evaluation[D]) finalize(residuals []float64) {
	for r := range e.out {
		residuals[r] = e.out[r].A
	}
}
