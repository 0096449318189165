// Copyright (c) 2018 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package search

import (
	"github.com/m3db/m3ninx/index"
)

// StatesCache holds the per segment state of a prepared query. It is filled
// while preparing and only read afterwards, which makes concurrent Find safe.
type StatesCache[T any] struct {
	states map[index.SegmentReader]*T
}

// NewStatesCache returns a cache sized for the given number of segments.
func NewStatesCache[T any](size int) *StatesCache[T] {
	return &StatesCache[T]{states: make(map[index.SegmentReader]*T, size)}
}

// Insert returns the state of the segment, creating it if needed.
func (c *StatesCache[T]) Insert(seg index.SegmentReader) *T {
	if st, ok := c.states[seg]; ok {
		return st
	}
	st := new(T)
	c.states[seg] = st
	return st
}

// Find returns the state of the segment if any.
func (c *StatesCache[T]) Find(seg index.SegmentReader) (*T, bool) {
	st, ok := c.states[seg]
	return st, ok
}

// Len returns the number of segments with a state.
func (c *StatesCache[T]) Len() int {
	return len(c.states)
}
