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

// Package scorer provides the relevance sorts of search orders.
package scorer

import (
	"encoding/binary"
	"math"

	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/postings"
	"github.com/m3db/m3ninx/search"
)

// fieldCollector accumulates the document count and total length of a field
// across segments.
type fieldCollector struct {
	docs        uint64
	totalLength uint64
}

func (c *fieldCollector) Collect(_ index.SegmentReader, field index.FieldReader) {
	c.docs += uint64(field.DocsCount())
	c.totalLength += field.TotalLength()
}

// termCollector accumulates the document frequency of a term across
// segments.
type termCollector struct {
	docs uint64
}

func (c *termCollector) Collect(_ index.SegmentReader, _ index.FieldReader, meta index.TermMeta) {
	c.docs += uint64(meta.DocsCount)
}

func getFloat(stats []byte, i int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(stats[i*8:]))
}

func putFloat(stats []byte, i int, v float64) {
	binary.LittleEndian.PutUint64(stats[i*8:], math.Float64bits(v))
}

// frequencyOf returns the frequency of the current document of it, 1 if the
// iterator does not track frequencies.
func frequencyOf(it postings.Iterator) func() float64 {
	fi, ok := it.(postings.FrequencyIterator)
	if !ok {
		return func() float64 { return 1 }
	}
	return func() float64 { return float64(fi.Frequency()) }
}

func collectors(fc search.FieldCollector, tc search.TermCollector) (*fieldCollector, *termCollector) {
	return fc.(*fieldCollector), tc.(*termCollector)
}
