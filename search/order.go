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
	"fmt"

	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/postings"
)

// ScoreFunc returns the score of the current document of the iterator it
// was created for.
type ScoreFunc func() float64

// FieldCollector accumulates per field statistics across segments.
type FieldCollector interface {
	Collect(seg index.SegmentReader, field index.FieldReader)
}

// TermCollector accumulates per term statistics across segments.
type TermCollector interface {
	Collect(seg index.SegmentReader, field index.FieldReader, meta index.TermMeta)
}

// Sort is a scoring function together with the statistics it needs.
type Sort interface {
	// Features returns the postings data the scorer reads.
	Features() index.Features

	// StatsSize returns the size of the statistics buffer of the sort.
	StatsSize() int

	// PrepareStats initializes a statistics buffer.
	PrepareStats(stats []byte)

	// NewFieldCollector returns a new field statistics collector.
	NewFieldCollector() FieldCollector

	// NewTermCollector returns a new term statistics collector.
	NewTermCollector() TermCollector

	// Collect merges the collected statistics into the buffer.
	Collect(stats []byte, fc FieldCollector, tc TermCollector)

	// NewScorer returns a function scoring the current document of it.
	NewScorer(
		seg index.SegmentReader,
		field index.FieldReader,
		stats []byte,
		it postings.Iterator,
		boost float64,
	) ScoreFunc
}

// Order is an ordered set of sorts. The zero value is the empty order,
// which disables scoring.
type Order struct {
	sorts    []Sort
	offsets  []int
	size     int
	features index.Features
}

// NewOrder returns an order made of the given sorts.
func NewOrder(sorts ...Sort) Order {
	o := Order{
		sorts:   sorts,
		offsets: make([]int, 0, len(sorts)),
	}
	for _, s := range sorts {
		o.offsets = append(o.offsets, o.size)
		o.size += s.StatsSize()
		o.features |= s.Features()
	}
	return o
}

// Empty reports whether the order disables scoring.
func (o Order) Empty() bool {
	return len(o.sorts) == 0
}

// Features returns the union of the features of every sort.
func (o Order) Features() index.Features {
	return o.features
}

// StatsSize returns the size of a statistics buffer of the order.
func (o Order) StatsSize() int {
	return o.size
}

// NewStats returns a prepared statistics buffer, nil for the empty order.
func (o Order) NewStats() []byte {
	if o.Empty() {
		return nil
	}
	stats := make([]byte, o.size)
	for i, s := range o.sorts {
		s.PrepareStats(o.slice(stats, i))
	}
	return stats
}

func (o Order) slice(stats []byte, i int) []byte {
	return stats[o.offsets[i] : o.offsets[i]+o.sorts[i].StatsSize()]
}

func (o Order) checkStats(stats []byte) {
	if len(stats) != o.size {
		panic(fmt.Sprintf("invalid stats buffer: size %d, expected %d", len(stats), o.size))
	}
}

// NewScorer returns the sum of the scorers of every sort, nil for the empty
// order.
func (o Order) NewScorer(
	seg index.SegmentReader,
	field index.FieldReader,
	stats []byte,
	it postings.Iterator,
	boost float64,
) ScoreFunc {
	if o.Empty() {
		return nil
	}
	o.checkStats(stats)
	if len(o.sorts) == 1 {
		return o.sorts[0].NewScorer(seg, field, stats, it, boost)
	}
	scorers := make([]ScoreFunc, 0, len(o.sorts))
	for i, s := range o.sorts {
		scorers = append(scorers, s.NewScorer(seg, field, o.slice(stats, i), it, boost))
	}
	return func() float64 {
		var score float64
		for _, fn := range scorers {
			score += fn()
		}
		return score
	}
}

// FieldCollectors holds one field collector per sort of an order.
type FieldCollectors struct {
	collectors []FieldCollector
}

// NewFieldCollectors returns field collectors for every sort of the order.
func (o Order) NewFieldCollectors() *FieldCollectors {
	fc := &FieldCollectors{collectors: make([]FieldCollector, 0, len(o.sorts))}
	for _, s := range o.sorts {
		fc.collectors = append(fc.collectors, s.NewFieldCollector())
	}
	return fc
}

// Collect collects the statistics of the field in the segment.
func (fc *FieldCollectors) Collect(seg index.SegmentReader, field index.FieldReader) {
	for _, c := range fc.collectors {
		c.Collect(seg, field)
	}
}

// TermCollectors holds term collectors per sort for a number of slots, a
// slot being a term or a phrase position.
type TermCollectors struct {
	ord   Order
	slots [][]TermCollector
}

// NewTermCollectors returns term collectors for the given number of slots.
func (o Order) NewTermCollectors(size int) *TermCollectors {
	tc := &TermCollectors{ord: o, slots: make([][]TermCollector, size)}
	for i := range tc.slots {
		tc.slots[i] = make([]TermCollector, 0, len(o.sorts))
		for _, s := range o.sorts {
			tc.slots[i] = append(tc.slots[i], s.NewTermCollector())
		}
	}
	return tc
}

// Len returns the number of slots.
func (tc *TermCollectors) Len() int {
	return len(tc.slots)
}

// Collect collects the statistics of a term into the slot.
func (tc *TermCollectors) Collect(
	idx int,
	seg index.SegmentReader,
	field index.FieldReader,
	meta index.TermMeta,
) {
	for _, c := range tc.slots[idx] {
		c.Collect(seg, field, meta)
	}
}

// Finish merges the statistics of the slot and the field collectors into
// the statistics buffer.
func (tc *TermCollectors) Finish(stats []byte, idx int, fields *FieldCollectors) {
	if tc.ord.Empty() {
		return
	}
	tc.ord.checkStats(stats)
	for i, s := range tc.ord.sorts {
		s.Collect(tc.ord.slice(stats, i), fields.collectors[i], tc.slots[idx][i])
	}
}
