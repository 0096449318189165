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

package query

import (
	"context"
	"encoding/binary"
	"fmt"
	"sort"
	"testing"

	"github.com/m3db/m3ninx/doc"
	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/index/segment"
	"github.com/m3db/m3ninx/index/segment/builder"
	"github.com/m3db/m3ninx/postings"
	"github.com/m3db/m3ninx/search"

	"github.com/stretchr/testify/require"
)

// freqSort scores a document with its frequency times the number of
// documents of the collected terms.
type freqSort struct{}

type freqTermCollector struct{ docs uint64 }

func (c *freqTermCollector) Collect(_ index.SegmentReader, _ index.FieldReader, meta index.TermMeta) {
	c.docs += uint64(meta.DocsCount)
}

type noopFieldCollector struct{}

func (noopFieldCollector) Collect(index.SegmentReader, index.FieldReader) {}

func (freqSort) Features() index.Features                 { return index.FeatureFrequency }
func (freqSort) StatsSize() int                           { return 8 }
func (freqSort) PrepareStats(stats []byte)                { binary.LittleEndian.PutUint64(stats, 0) }
func (freqSort) NewFieldCollector() search.FieldCollector { return noopFieldCollector{} }
func (freqSort) NewTermCollector() search.TermCollector   { return &freqTermCollector{} }

func (freqSort) Collect(stats []byte, _ search.FieldCollector, tc search.TermCollector) {
	curr := binary.LittleEndian.Uint64(stats)
	binary.LittleEndian.PutUint64(stats, curr+tc.(*freqTermCollector).docs)
}

func (freqSort) NewScorer(
	_ index.SegmentReader,
	_ index.FieldReader,
	stats []byte,
	it postings.Iterator,
	boost float64,
) search.ScoreFunc {
	docs := float64(binary.LittleEndian.Uint64(stats))
	fi, ok := it.(postings.FrequencyIterator)
	return func() float64 {
		freq := 1.0
		if ok {
			freq = float64(fi.Frequency())
		}
		return docs * freq * boost
	}
}

var scoring = search.NewOrder(freqSort{})

type hit struct {
	seg   int
	id    postings.ID
	score float64
}

func newSegment(t *testing.T, opts builder.Options, id segment.ID, docs ...doc.Document) segment.Segment {
	b := builder.NewBuilder(opts.SetConcurrency(2))
	require.NoError(t, b.InsertBatch(docs))
	seg, err := b.Seal(id)
	require.NoError(t, err)
	return seg
}

func bodies(values ...string) []doc.Document {
	docs := make([]doc.Document, 0, len(values))
	for i, v := range values {
		docs = append(docs, doc.Document{
			ID:     []byte(fmt.Sprintf("doc-%d", i)),
			Fields: doc.Fields{{Name: []byte("body"), Value: []byte(v)}},
		})
	}
	return docs
}

// newTestReader returns a reader over two segments of the body field.
func newTestReader(t *testing.T) index.Reader {
	opts := builder.NewOptions()
	return index.NewReader(
		newSegment(t, opts, 1, bodies(
			"the quick brown fox",
			"lazy brown dog",
			"quick quick brick",
		)...),
		newSegment(t, opts, 2, bodies(
			"brown quick fox",
			"quick brown brick quick brick",
		)...),
	)
}

func prepare(t *testing.T, r index.Reader, f search.Filter, ord search.Order, boost float64) search.Prepared {
	p, err := f.Prepare(context.Background(), r, ord, boost)
	require.NoError(t, err)
	return p
}

func execute(t *testing.T, r index.Reader, p search.Prepared, ord search.Order) []hit {
	var hits []hit
	for i, seg := range r.Segments() {
		it, err := p.Execute(context.Background(), seg, ord)
		require.NoError(t, err)
		for it.Next() {
			hits = append(hits, hit{seg: i, id: it.Current(), score: it.Score()})
		}
	}
	return hits
}

func run(t *testing.T, r index.Reader, f search.Filter, ord search.Order) []hit {
	return execute(t, r, prepare(t, r, f, ord, 1), ord)
}

// matches returns the matching documents as segment index and ID pairs.
func matches(t *testing.T, r index.Reader, f search.Filter) [][2]int {
	var out [][2]int
	for _, h := range run(t, r, f, search.Order{}) {
		out = append(out, [2]int{h.seg, int(h.id)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}
