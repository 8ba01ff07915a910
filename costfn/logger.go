// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package costfn

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// LogLevel controls the frequency and type of logger output
type LogLevel int

const (
	// LogNoop no output is generated (level < 0)
	LogNoop LogLevel = -1
	// LogEval print one line for every evaluation
	LogEval LogLevel = 0
	// LogPass print also the seeded parameter indices of every pass
	LogPass LogLevel = 1
	// LogEvent print also the elapsed time of every evaluation stage
	LogEvent LogLevel = 2
)

// Logger handles logging output for the evaluator.
// Note the writer must be thread-safe.
type Logger struct {
	Level LogLevel
	Msg   io.Writer // Writer to output log messages.
}

func (l *Logger) enable(level LogLevel) bool {
	return l.Level >= level
}

func (l *Logger) log(format string, a ...any) {
	if len(a) > 0 {
		_, _ = fmt.Fprintf(l.Msg, format, a...)
	} else {
		_, _ = fmt.Fprint(l.Msg, format)
	}
}

// eventLog accumulates the delta and cumulative time of named events and writes them at once.
// A nil eventLog discards everything.
type eventLog struct {
	logger      *Logger
	start, last time.Time
	events      strings.Builder
}

func (l *Logger) events(name string) *eventLog {
	if !l.enable(LogEvent) {
		return nil
	}
	e := &eventLog{logger: l, start: time.Now()}
	e.last = e.start
	_, _ = fmt.Fprintf(&e.events, "\n%s\n%40s   %10s\n", name, "Delta", "Cumulative")
	return e
}

func (e *eventLog) add(name string) {
	if e == nil {
		return
	}
	now := time.Now()
	_, _ = fmt.Fprintf(&e.events, "  %30s : %10.5f   %10.5f\n", name,
		now.Sub(e.last).Seconds(), now.Sub(e.start).Seconds())
	e.last = now
}

func (e *eventLog) flush() {
	if e == nil {
		return
	}
	e.add("Total")
	e.logger.log("%s", e.events.String())
}
