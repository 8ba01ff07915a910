// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package costfn

import (
	"maps"
	"sync"
	"time"
)

// CallStatistics accumulates the calls and the time spent under one name.
type CallStatistics struct {
	Time  time.Duration
	Calls int
}

// Summary collects execution statistics of evaluations.
// It is safe to share one summary between goroutines.
type Summary struct {
	mu    sync.Mutex
	stats map[string]CallStatistics
}

// IncrementTimeBy adds one call lasting delta to name.
func (s *Summary) IncrementTimeBy(name string, delta time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stats == nil {
		s.stats = make(map[string]CallStatistics)
	}
	c := s.stats[name]
	c.Time += delta
	c.Calls++
	s.stats[name] = c
}

// Statistics returns a snapshot of the collected statistics.
func (s *Summary) Statistics() map[string]CallStatistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.stats)
}

// timer starts timing name, the returned func stops it.
// A nil summary records nothing.
func (s *Summary) timer(name string) func() {
	if s == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		s.IncrementTimeBy(name, time.Since(start))
	}
}
