// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package costfn

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventLogVerbatim(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{Level: LogEvent, Msg: &buf}

	e := l.events("load 5%")
	e.add("step %d")
	e.flush()

	out := buf.String()
	require.Contains(t, out, "load 5%\n")
	require.Contains(t, out, "step %d :")
	require.Contains(t, out, "Total :")
	require.NotContains(t, out, "%!")
}

func TestEventLogDisabled(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{Level: LogPass, Msg: &buf}

	e := l.events("Evaluate")
	require.Nil(t, e)
	e.add("Plan")
	e.flush()
	require.Zero(t, buf.Len())
}
