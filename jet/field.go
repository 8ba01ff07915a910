// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jet

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Field is the arithmetic a residual functor is written against.
// A functor body written once over Field[S] is instantiated for float64 with Reals
// and for jets with Jets, so the value path and the derivative path share one definition.
type Field[S any] interface {
	// Const lifts a plain scalar, with zero partials for jets.
	Const(c float64) S
	// Value drops the partials.
	Value(a S) float64
	// Cmp compares the value of a with a plain scalar c.
	Cmp(a S, c float64) int

	Add(a, b S) S
	Sub(a, b S) S
	Mul(a, b S) S
	Div(a, b S) S
	Neg(a S) S
	Scale(c float64, a S) S

	Sqrt(a S) S
	Exp(a S) S
	Log(a S) S
	Pow(a, b S) S
	PowReal(a S, p float64) S
	Sin(a S) S
	Cos(a S) S
	Tan(a S) S
	Atan(a S) S
	Atan2(y, x S) S
	Tanh(a S) S
	Abs(a S) S
	Hypot(a, b S) S
}

// Reals is the Field of plain float64 values.
type Reals struct{}

func (Reals) Const(c float64) float64 { return c }
func (Reals) Value(a float64) float64 { return a }
func (Reals) Add(a, b float64) float64 { return a + b }
func (Reals) Sub(a, b float64) float64 { return a - b }
func (Reals) Mul(a, b float64) float64 { return a * b }
func (Reals) Div(a, b float64) float64 { return a / b }
func (Reals) Neg(a float64) float64 { return -a }
func (Reals) Sqrt(a float64) float64 { return math.Sqrt(a) }
func (Reals) Exp(a float64) float64 { return math.Exp(a) }
func (Reals) Log(a float64) float64 { return math.Log(a) }
func (Reals) Pow(a, b float64) float64 { return math.Pow(a, b) }
func (Reals) Sin(a float64) float64 { return math.Sin(a) }
func (Reals) Cos(a float64) float64 { return math.Cos(a) }
func (Reals) Tan(a float64) float64 { return math.Tan(a) }
func (Reals) Atan(a float64) float64 { return math.Atan(a) }
func (Reals) Tanh(a float64) float64 { return math.Tanh(a) }
func (Reals) Abs(a float64) float64 { return math.Abs(a) }
func (Reals) Hypot(a, b float64) float64 { return math.Hypot(a, b) }

func (Reals) Atan2(y, x float64) float64 { return math.Atan2(y, x) }

func (Reals) Scale(c float64, a float64) float64 { return c * a }

func (Reals) PowReal(a float64, p float64) float64 {
	if p == 0 {
		return 1
	}
	return math.Pow(a, p)
}

func (Reals) Cmp(a float64, c float64) int {
	switch {
	case a < c:
		return -1
	case a > c:
		return 1
	}
	return 0
}

// Jets is the Field of jets with scalar T and partials D.
type Jets[T constraints.Float, D Partials[T]] struct{}

func (Jets[T, D]) Const(c float64) Jet[T, D] { return Const[T, D](T(c)) }
func (Jets[T, D]) Value(a Jet[T, D]) float64 { return float64(a.A) }
func (Jets[T, D]) Cmp(a Jet[T, D], c float64) int { return Cmp(a, T(c)) }
func (Jets[T, D]) Add(a, b Jet[T, D]) Jet[T, D] { return Add(a, b) }
func (Jets[T, D]) Sub(a, b Jet[T, D]) Jet[T, D] { return Sub(a, b) }
func (Jets[T, D]) Mul(a, b Jet[T, D]) Jet[T, D] { return Mul(a, b) }
func (Jets[T, D]) Div(a, b Jet[T, D]) Jet[T, D] { return Div(a, b) }
func (Jets[T, D]) Neg(a Jet[T, D]) Jet[T, D] { return Neg(a) }
func (Jets[T, D]) Sqrt(a Jet[T, D]) Jet[T, D] { return Sqrt(a) }
func (Jets[T, D]) Exp(a Jet[T, D]) Jet[T, D] { return Exp(a) }
func (Jets[T, D]) Log(a Jet[T, D]) Jet[T, D] { return Log(a) }
func (Jets[T, D]) Pow(a, b Jet[T, D]) Jet[T, D] { return Pow(a, b) }
func (Jets[T, D]) Sin(a Jet[T, D]) Jet[T, D] { return Sin(a) }
func (Jets[T, D]) Cos(a Jet[T, D]) Jet[T, D] { return Cos(a) }
func (Jets[T, D]) Tan(a Jet[T, D]) Jet[T, D] { return Tan(a) }
func (Jets[T, D]) Atan(a Jet[T, D]) Jet[T, D] { return Atan(a) }
func (Jets[T, D]) Atan2(y, x Jet[T, D]) Jet[T, D] { return Atan2(y, x) }
func (Jets[T, D]) Tanh(a Jet[T, D]) Jet[T, D] { return Tanh(a) }
func (Jets[T, D]) Abs(a Jet[T, D]) Jet[T, D] { return Abs(a) }
func (Jets[T, D]) Hypot(a, b Jet[T, D]) Jet[T, D] { return Hypot(a, b) }

func (Jets[T, D]) Scale(c float64, a Jet[T, D]) Jet[T, D] { return Scale(T(c), a) }

func (Jets[T, D]) PowReal(a Jet[T, D], p float64) Jet[T, D] { return PowReal(a, T(p)) }
