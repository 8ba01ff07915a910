// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package costfn

import (
	"math"
	"strconv"
)

// ImpossibleValue marks array entries that have not been written.
const ImpossibleValue = 1e302

// IsArrayValid reports whether every entry of x is finite and written.
// A nil array is valid.
func IsArrayValid(x []float64) bool {
	return FindInvalidValue(x) == len(x)
}

// FindInvalidValue returns the index of the first entry that is not finite or not written,
// or len(x) when there is none.
func FindInvalidValue(x []float64) int {
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) || v == ImpossibleValue {
			return i
		}
	}
	return len(x)
}

// InvalidateArray fills x with ImpossibleValue.
func InvalidateArray(x []float64) {
	for i := range x {
		x[i] = ImpossibleValue
	}
}

// AppendArray appends the size entries of x to dst as a fixed-width table row.
// A nil x is shown as not computed.
func AppendArray(dst []byte, size int, x []float64) []byte {
	for i := 0; i < size; i++ {
		switch {
		case x == nil:
			dst = append(dst, "Not Computed  "...)
		case x[i] == ImpossibleValue:
			dst = append(dst, "Uninitialized "...)
		default:
			s := strconv.FormatFloat(x[i], 'g', 6, 64)
			for n := len(s); n < 12; n++ {
				dst = append(dst, ' ')
			}
			dst = append(dst, s...)
			dst = append(dst, ' ')
		}
	}
	return dst
}
