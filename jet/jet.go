// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jet implements fixed-width dual numbers for forward-mode automatic differentiation.
//
// A jet 𝒂 + 𝐯ϵ carries a value 𝒂 and N partials 𝐯 with ϵ² = 0, so that
//
//	𝒇(𝒂 + 𝐯ϵ) = 𝒇(𝒂) + 𝒇′(𝒂)𝐯ϵ
//
// Every elementary function below computes partial i as 𝒇′(𝒂)·vᵢ (or 𝒇ₐ·aᵢ + 𝒇ᵦ·bᵢ),
// so partial i never depends on the width N.
//
// # Reference:
//
//   - https://en.wikipedia.org/wiki/Dual_number
//   - http://ceres-solver.org/automatic_derivatives.html
package jet

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Partials is the set of fixed-width derivative vectors a Jet may carry.
type Partials[T constraints.Float] interface {
	[1]T | [2]T | [3]T | [4]T | [5]T | [6]T | [7]T | [8]T | [16]T
}

// Jet is a dual number with value A and partials V.
type Jet[T constraints.Float, D Partials[T]] struct {
	A T
	V D
}

// Width returns the number of partials carried by jets of type D.
func Width[T constraints.Float, D Partials[T]]() int {
	var v D
	return len(v)
}

// Const returns a jet with value c and all partials zero.
func Const[T constraints.Float, D Partials[T]](c T) Jet[T, D] {
	return Jet[T, D]{A: c}
}

// Variable returns a jet with value a and a unit partial at i.
func Variable[T constraints.Float, D Partials[T]](a T, i int) Jet[T, D] {
	j := Jet[T, D]{A: a}
	j.V[i] = 1
	return j
}

// Seed resets j to value a with every partial cleared.
func (j *Jet[T, D]) Seed(a T) {
	var z D
	j.A, j.V = a, z
}

// chain returns f + df·𝐚ϵ
func chain[T constraints.Float, D Partials[T]](a Jet[T, D], f, df T) Jet[T, D] {
	r := Jet[T, D]{A: f}
	for i := 0; i < len(r.V); i++ {
		r.V[i] = df * a.V[i]
	}
	return r
}

// chain2 returns f + (dfa·𝐚 + dfb·𝐛)ϵ
func chain2[T constraints.Float, D Partials[T]](a, b Jet[T, D], f, dfa, dfb T) Jet[T, D] {
	r := Jet[T, D]{A: f}
	for i := 0; i < len(r.V); i++ {
		r.V[i] = dfa*a.V[i] + dfb*b.V[i]
	}
	return r
}

func Add[T constraints.Float, D Partials[T]](a, b Jet[T, D]) Jet[T, D] {
	r := Jet[T, D]{A: a.A + b.A}
	for i := 0; i < len(r.V); i++ {
		r.V[i] = a.V[i] + b.V[i]
	}
	return r
}

func Sub[T constraints.Float, D Partials[T]](a, b Jet[T, D]) Jet[T, D] {
	r := Jet[T, D]{A: a.A - b.A}
	for i := 0; i < len(r.V); i++ {
		r.V[i] = a.V[i] - b.V[i]
	}
	return r
}

func Neg[T constraints.Float, D Partials[T]](a Jet[T, D]) Jet[T, D] {
	r := Jet[T, D]{A: -a.A}
	for i := 0; i < len(r.V); i++ {
		r.V[i] = -a.V[i]
	}
	return r
}

// Mul returns 𝒂𝒃 + (𝒃𝐚 + 𝒂𝐛)ϵ
func Mul[T constraints.Float, D Partials[T]](a, b Jet[T, D]) Jet[T, D] {
	return chain2(a, b, a.A*b.A, b.A, a.A)
}

// Div returns 𝒂/𝒃 + (𝐚 - 𝒂/𝒃·𝐛)/𝒃 ϵ
func Div[T constraints.Float, D Partials[T]](a, b Jet[T, D]) Jet[T, D] {
	inv := 1 / b.A
	q := a.A * inv
	r := Jet[T, D]{A: q}
	for i := 0; i < len(r.V); i++ {
		r.V[i] = (a.V[i] - q*b.V[i]) * inv
	}
	return r
}

// Inv returns 1/𝒂 - 𝐚/𝒂² ϵ
func Inv[T constraints.Float, D Partials[T]](a Jet[T, D]) Jet[T, D] {
	inv := 1 / a.A
	return chain(a, inv, -inv*inv)
}

// Scale returns c𝒂 + c𝐚ϵ
func Scale[T constraints.Float, D Partials[T]](c T, a Jet[T, D]) Jet[T, D] {
	return chain(a, c*a.A, c)
}

// AddConst returns (𝒂 + c) + 𝐚ϵ
func AddConst[T constraints.Float, D Partials[T]](a Jet[T, D], c T) Jet[T, D] {
	a.A += c
	return a
}

// Cmp compares the value of a with a plain scalar c, ignoring the partials.
func Cmp[T constraints.Float, D Partials[T]](a Jet[T, D], c T) int {
	switch {
	case a.A < c:
		return -1
	case a.A > c:
		return 1
	}
	return 0
}

func IsFinite[T constraints.Float, D Partials[T]](a Jet[T, D]) bool {
	if !finite(a.A) {
		return false
	}
	for i := 0; i < len(a.V); i++ {
		if !finite(a.V[i]) {
			return false
		}
	}
	return true
}

func IsNaN[T constraints.Float, D Partials[T]](a Jet[T, D]) bool {
	if math.IsNaN(float64(a.A)) {
		return true
	}
	for i := 0; i < len(a.V); i++ {
		if math.IsNaN(float64(a.V[i])) {
			return true
		}
	}
	return false
}

func finite[T constraints.Float](x T) bool {
	return !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0)
}
