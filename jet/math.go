// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jet

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Sqrt returns √𝒂 + 𝐚/(2√𝒂) ϵ
func Sqrt[T constraints.Float, D Partials[T]](a Jet[T, D]) Jet[T, D] {
	s := T(math.Sqrt(float64(a.A)))
	return chain(a, s, 1/(2*s))
}

// Cbrt returns ∛𝒂 + 𝐚/(3∛𝒂²) ϵ
func Cbrt[T constraints.Float, D Partials[T]](a Jet[T, D]) Jet[T, D] {
	c := T(math.Cbrt(float64(a.A)))
	return chain(a, c, 1/(3*c*c))
}

func Exp[T constraints.Float, D Partials[T]](a Jet[T, D]) Jet[T, D] {
	e := T(math.Exp(float64(a.A)))
	return chain(a, e, e)
}

func Expm1[T constraints.Float, D Partials[T]](a Jet[T, D]) Jet[T, D] {
	x := float64(a.A)
	return chain(a, T(math.Expm1(x)), T(math.Exp(x)))
}

func Log[T constraints.Float, D Partials[T]](a Jet[T, D]) Jet[T, D] {
	return chain(a, T(math.Log(float64(a.A))), 1/a.A)
}

func Log1p[T constraints.Float, D Partials[T]](a Jet[T, D]) Jet[T, D] {
	return chain(a, T(math.Log1p(float64(a.A))), 1/(1+a.A))
}

func Log10[T constraints.Float, D Partials[T]](a Jet[T, D]) Jet[T, D] {
	return chain(a, T(math.Log10(float64(a.A))), 1/(a.A*math.Ln10))
}

// PowReal returns 𝒂ᵖ + p𝒂ᵖ⁻¹𝐚 ϵ
func PowReal[T constraints.Float, D Partials[T]](a Jet[T, D], p T) Jet[T, D] {
	if p == 0 {
		return Const[T, D](1)
	}
	x, y := float64(a.A), float64(p)
	return chain(a, T(math.Pow(x, y)), p*T(math.Pow(x, y-1)))
}

// Pow returns 𝒂ᵇ + (𝒃𝒂ᵇ⁻¹𝐚 + 𝒂ᵇ𝚕𝚗𝒂𝐛) ϵ
//
// The 𝐛 term is dropped when 𝒂 = 0 and 𝒃 ≥ 1, where 𝒂ᵇ is flat in 𝒃.
// For 𝒂 < 0 and integer 𝒃 the 𝐛 term is undefined, for 𝒂 = 0 and 𝒃 < 1 both terms are,
// and only the slots seeded along an undefined term become NaN.
func Pow[T constraints.Float, D Partials[T]](a, b Jet[T, D]) Jet[T, D] {
	x, y := float64(a.A), float64(b.A)
	f := T(math.Pow(x, y))
	switch {
	case x == 0 && y >= 1:
		return chain(a, f, b.A*T(math.Pow(x, y-1)))
	case x == 0:
		r := Jet[T, D]{A: f}
		for i := 0; i < len(r.V); i++ {
			if a.V[i] != 0 || b.V[i] != 0 {
				r.V[i] = T(math.NaN())
			}
		}
		return r
	case x < 0 && y == math.Floor(y):
		r := chain(a, f, b.A*T(math.Pow(x, y-1)))
		for i := 0; i < len(r.V); i++ {
			if b.V[i] != 0 {
				r.V[i] = T(math.NaN())
			}
		}
		return r
	}
	return chain2(a, b, f, b.A*T(math.Pow(x, y-1)), f*T(math.Log(x)))
}

func Sin[T constraints.Float, D Partials[T]](a Jet[T, D]) Jet[T, D] {
	s, c := math.Sincos(float64(a.A))
	return chain(a, T(s), T(c))
}

func Cos[T constraints.Float, D Partials[T]](a Jet[T, D]) Jet[T, D] {
	s, c := math.Sincos(float64(a.A))
	return chain(a, T(c), T(-s))
}

func Tan[T constraints.Float, D Partials[T]](a Jet[T, D]) Jet[T, D] {
	t := T(math.Tan(float64(a.A)))
	return chain(a, t, 1+t*t)
}

func Asin[T constraints.Float, D Partials[T]](a Jet[T, D]) Jet[T, D] {
	x := float64(a.A)
	return chain(a, T(math.Asin(x)), T(1/math.Sqrt(1-x*x)))
}

func Acos[T constraints.Float, D Partials[T]](a Jet[T, D]) Jet[T, D] {
	x := float64(a.A)
	return chain(a, T(math.Acos(x)), T(-1/math.Sqrt(1-x*x)))
}

func Atan[T constraints.Float, D Partials[T]](a Jet[T, D]) Jet[T, D] {
	return chain(a, T(math.Atan(float64(a.A))), 1/(1+a.A*a.A))
}

// Atan2 returns 𝚊𝚝𝚊𝚗𝟸(𝒚, 𝒙) + (𝒙𝐲 - 𝒚𝐱)/(𝒙² + 𝒚²) ϵ
func Atan2[T constraints.Float, D Partials[T]](y, x Jet[T, D]) Jet[T, D] {
	d := x.A*x.A + y.A*y.A
	return chain2(y, x, T(math.Atan2(float64(y.A), float64(x.A))), x.A/d, -y.A/d)
}

func Sinh[T constraints.Float, D Partials[T]](a Jet[T, D]) Jet[T, D] {
	x := float64(a.A)
	return chain(a, T(math.Sinh(x)), T(math.Cosh(x)))
}

func Cosh[T constraints.Float, D Partials[T]](a Jet[T, D]) Jet[T, D] {
	x := float64(a.A)
	return chain(a, T(math.Cosh(x)), T(math.Sinh(x)))
}

func Tanh[T constraints.Float, D Partials[T]](a Jet[T, D]) Jet[T, D] {
	t := T(math.Tanh(float64(a.A)))
	return chain(a, t, 1-t*t)
}

// Abs takes the derivative from the right at zero.
func Abs[T constraints.Float, D Partials[T]](a Jet[T, D]) Jet[T, D] {
	if a.A < 0 {
		return Neg(a)
	}
	return a
}

// Hypot returns √(𝒂² + 𝒃²) + (𝒂𝐚 + 𝒃𝐛)/√(𝒂² + 𝒃²) ϵ
func Hypot[T constraints.Float, D Partials[T]](a, b Jet[T, D]) Jet[T, D] {
	h := T(math.Hypot(float64(a.A), float64(b.A)))
	return chain2(a, b, h, a.A/h, b.A/h)
}

// Erf returns 𝚎𝚛𝚏(𝒂) + 2/√π 𝚎⁻ᵃ² 𝐚 ϵ
func Erf[T constraints.Float, D Partials[T]](a Jet[T, D]) Jet[T, D] {
	x := float64(a.A)
	return chain(a, T(math.Erf(x)), T(2/math.SqrtPi*math.Exp(-x*x)))
}
