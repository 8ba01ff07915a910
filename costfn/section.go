// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package costfn

// sections lists the derivative sections of an evaluation:
// maximal runs of raw parameter indices whose blocks all request a Jacobian.
type sections struct {
	// section start offsets, followed by the total parameter number as sentinel.
	starts []int
	// section lengths, one less entry than starts.
	sizes []int
	// total number of active parameters.
	active int
}

// planSections scans the blocks from left to right and opens a new section
// whenever an active block follows an inactive one (or starts the layout).
// No section is built when nothing is active.
func planSections(sizes []int, active []bool) (s sections) {
	if len(sizes) != len(active) {
		panic("bound check error")
	}

	in, cursor := false, 0
	for i, n := range sizes {
		if active[i] {
			if !in {
				s.starts = append(s.starts, cursor)
				s.sizes = append(s.sizes, 0)
				in = true
			}
			s.sizes[len(s.sizes)-1] += n
			s.active += n
		} else {
			in = false
		}
		cursor += n
	}

	if s.active == 0 {
		return sections{}
	}

	// The sentinel is appended even when the last block is inactive,
	// so the cursor never indexes past the list.
	s.starts = append(s.starts, cursor)
	return
}

// total returns the sentinel, the total parameter number.
func (s *sections) total() int {
	return s.starts[len(s.starts)-1]
}

// cursor tracks where the seeding stopped between passes.
type cursor struct {
	section int // current section
	offset  int // offset within the current section
	emitted int // active indices seeded so far
}

// next returns the raw indices seeded by the next pass: the following up-to-stride active indices
// in left-to-right order, crossing into the next section when the current one is exhausted.
func (c *cursor) next(s *sections, stride int, dst []int) []int {
	dst = dst[:0]
	for len(dst) < stride && c.section < len(s.starts)-1 {
		if c.offset == s.sizes[c.section] {
			c.section++
			c.offset = 0
			continue
		}
		k := s.starts[c.section] + c.offset
		if k >= s.total() {
			panic("derivative section overflow")
		}
		dst = append(dst, k)
		c.offset++
		c.emitted++
	}
	return dst
}

// done reports whether every active index has been seeded.
func (c *cursor) done(s *sections) bool {
	return c.emitted == s.active
}
