// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package costfn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArrayValidity(t *testing.T) {
	x := []float64{1, 2, 3}
	require.True(t, IsArrayValid(x))
	require.True(t, IsArrayValid(nil))
	require.Equal(t, 3, FindInvalidValue(x))

	x[1] = math.NaN()
	require.False(t, IsArrayValid(x))
	require.Equal(t, 1, FindInvalidValue(x))

	x[1], x[2] = 2, math.Inf(1)
	require.Equal(t, 2, FindInvalidValue(x))

	InvalidateArray(x)
	require.Equal(t, []float64{ImpossibleValue, ImpossibleValue, ImpossibleValue}, x)
	require.Equal(t, 0, FindInvalidValue(x))
}

func TestAppendArray(t *testing.T) {
	got := string(AppendArray(nil, 3, []float64{1, ImpossibleValue, 2.5}))
	require.Equal(t, "           1 Uninitialized          2.5 ", got)

	got = string(AppendArray([]byte("r: "), 2, nil))
	require.Equal(t, "r: Not Computed  Not Computed  ", got)
}
