// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jet

import "gonum.org/v1/gonum/num/dual"

// Scalar is a single-direction jet, equivalent to a gonum dual number.
type Scalar = Jet[float64, [1]float64]

// FromDual converts a gonum dual number into a single-direction jet.
func FromDual(d dual.Number) Scalar {
	return Scalar{A: d.Real, V: [1]float64{d.Emag}}
}

// ToDual converts a single-direction jet into a gonum dual number.
func ToDual(j Scalar) dual.Number {
	return dual.Number{Real: j.A, Emag: j.V[0]}
}
