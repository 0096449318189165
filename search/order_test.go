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
	"context"
	"encoding/binary"
	"testing"

	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/postings"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

// docsCountSort scores every document with the number of documents
// containing the collected terms.
type docsCountSort struct{}

type docsCountTermCollector struct{ docs uint64 }

func (c *docsCountTermCollector) Collect(_ index.SegmentReader, _ index.FieldReader, meta index.TermMeta) {
	c.docs += uint64(meta.DocsCount)
}

type noopFieldCollector struct{}

func (noopFieldCollector) Collect(index.SegmentReader, index.FieldReader) {}

func (docsCountSort) Features() index.Features          { return index.FeatureFrequency }
func (docsCountSort) StatsSize() int                    { return 8 }
func (docsCountSort) PrepareStats(stats []byte)         { binary.LittleEndian.PutUint64(stats, 0) }
func (docsCountSort) NewFieldCollector() FieldCollector { return noopFieldCollector{} }
func (docsCountSort) NewTermCollector() TermCollector   { return &docsCountTermCollector{} }

func (docsCountSort) Collect(stats []byte, _ FieldCollector, tc TermCollector) {
	curr := binary.LittleEndian.Uint64(stats)
	binary.LittleEndian.PutUint64(stats, curr+tc.(*docsCountTermCollector).docs)
}

func (docsCountSort) NewScorer(
	_ index.SegmentReader,
	_ index.FieldReader,
	stats []byte,
	_ postings.Iterator,
	boost float64,
) ScoreFunc {
	v := float64(binary.LittleEndian.Uint64(stats)) * boost
	return func() float64 { return v }
}

func TestEmptyOrder(t *testing.T) {
	var ord Order
	require.True(t, ord.Empty())
	require.Equal(t, index.NoFeatures, ord.Features())
	require.Nil(t, ord.NewStats())
	require.Nil(t, ord.NewScorer(nil, nil, nil, nil, 1))

	tc := ord.NewTermCollectors(2)
	require.Equal(t, 2, tc.Len())
	tc.Collect(0, nil, nil, index.TermMeta{DocsCount: 3})
	tc.Finish(nil, 0, ord.NewFieldCollectors())
}

func TestOrderCollectAndScore(t *testing.T) {
	ord := NewOrder(docsCountSort{}, docsCountSort{})
	require.False(t, ord.Empty())
	require.Equal(t, 16, ord.StatsSize())
	require.Equal(t, index.FeatureFrequency, ord.Features())

	fields := ord.NewFieldCollectors()
	terms := ord.NewTermCollectors(2)
	terms.Collect(0, nil, nil, index.TermMeta{DocsCount: 3})
	terms.Collect(0, nil, nil, index.TermMeta{DocsCount: 2})
	terms.Collect(1, nil, nil, index.TermMeta{DocsCount: 7})

	stats := ord.NewStats()
	terms.Finish(stats, 0, fields)
	score := ord.NewScorer(nil, nil, stats, nil, 2)
	// Two sorts each scoring 5 docs with boost 2.
	require.Equal(t, 20.0, score())

	require.Panics(t, func() {
		terms.Finish(make([]byte, 3), 1, fields)
	})
}

func TestStatesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	segA := index.NewMockSegmentReader(ctrl)
	segB := index.NewMockSegmentReader(ctrl)

	cache := NewStatesCache[int](2)
	st := cache.Insert(segA)
	*st = 42
	require.Equal(t, st, cache.Insert(segA))
	require.Equal(t, 1, cache.Len())

	found, ok := cache.Find(segA)
	require.True(t, ok)
	require.Equal(t, 42, *found)

	_, ok = cache.Find(segB)
	require.False(t, ok)
}

func TestFilterBoost(t *testing.T) {
	var b FilterBoost
	require.Equal(t, 1.0, b.Boost())
	b.SetBoost(0)
	require.Equal(t, 0.0, b.Boost())
	b.SetBoost(2.5)
	require.Equal(t, 2.5, b.Boost())
}

func TestEmptyPrepared(t *testing.T) {
	p := Empty()
	require.True(t, IsEmpty(p))
	require.Equal(t, 1.0, p.Boost())

	it, err := p.Execute(context.Background(), nil, Order{})
	require.NoError(t, err)
	require.Equal(t, EmptyIterator(), it)
	require.False(t, it.Next())
	require.Equal(t, postings.EOFID, it.Current())
}

func TestScoredIterator(t *testing.T) {
	it := NewScoredIterator(postings.NewSliceIterator([]postings.ID{4}), nil)
	require.True(t, it.Next())
	require.Equal(t, 0.0, it.Score())

	it = NewScoredIterator(postings.NewSliceIterator([]postings.ID{4}), func() float64 { return 1.5 })
	require.Equal(t, 1.5, it.Score())
}
