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

package scorer

import (
	"context"
	"math"
	"sort"
	"testing"

	"github.com/m3db/m3ninx/doc"
	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/index/segment/builder"
	"github.com/m3db/m3ninx/postings"
	"github.com/m3db/m3ninx/search"
	"github.com/m3db/m3ninx/search/query"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

type freqIterator struct {
	postings.Iterator

	freq uint32
}

func (it freqIterator) Frequency() uint32 { return it.freq }

func newField(ctrl *gomock.Controller, docs uint32, totalLength uint64, norm uint32) *index.MockFieldReader {
	f := index.NewMockFieldReader(ctrl)
	f.EXPECT().DocsCount().Return(docs).AnyTimes()
	f.EXPECT().TotalLength().Return(totalLength).AnyTimes()
	f.EXPECT().Norm(gomock.Any()).Return(norm).AnyTimes()
	return f
}

func collect(s search.Sort, field index.FieldReader, termDocs ...uint32) []byte {
	stats := make([]byte, s.StatsSize())
	s.PrepareStats(stats)
	fc := s.NewFieldCollector()
	fc.Collect(nil, field)
	for _, docs := range termDocs {
		tc := s.NewTermCollector()
		tc.Collect(nil, field, index.TermMeta{DocsCount: docs})
		s.Collect(stats, fc, tc)
	}
	return stats
}

func positioned(freq uint32) postings.Iterator {
	it := postings.NewSliceIterator([]postings.ID{1})
	it.Next()
	return freqIterator{Iterator: it, freq: freq}
}

func TestBM25Score(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var (
		field = newField(ctrl, 10, 50, 5)
		s     = NewBM25(DefaultK1, DefaultB)
		stats = collect(s, field, 2)
	)
	require.Equal(t, index.FeatureFrequency, s.Features())
	require.Equal(t, 16, s.StatsSize())

	score := s.NewScorer(nil, field, stats, positioned(3), 2)
	idf := math.Log(1 + (10-2+0.5)/(2+0.5))
	expected := 2 * idf * 3 * (DefaultK1 + 1) / (3 + DefaultK1)
	require.InDelta(t, expected, score(), 1e-9)

	// Without frequencies every match counts once.
	plain := postings.NewSliceIterator([]postings.ID{1})
	plain.Next()
	score = s.NewScorer(nil, field, stats, plain, 1)
	require.InDelta(t, idf*(DefaultK1+1)/(1+DefaultK1), score(), 1e-9)
}

func TestBM25AccumulatesTerms(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var (
		field = newField(ctrl, 10, 50, 5)
		s     = NewBM25(DefaultK1, DefaultB)
		one   = collect(s, field, 2)
		two   = collect(s, field, 2, 4)
	)
	idf4 := math.Log(1 + (10-4+0.5)/(4+0.5))
	require.InDelta(t, getFloat(one, bm25IDF)+idf4, getFloat(two, bm25IDF), 1e-9)
	require.Equal(t, 5.0, getFloat(two, bm25AvgLength))
}

func TestBM25LengthNormalization(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var (
		s     = NewBM25(DefaultK1, DefaultB)
		short = newField(ctrl, 10, 50, 2)
		long  = newField(ctrl, 10, 50, 20)
		stats = collect(s, short, 2)
	)
	require.Greater(t,
		s.NewScorer(nil, short, stats, positioned(1), 1)(),
		s.NewScorer(nil, long, stats, positioned(1), 1)())
}

func TestTFIDFScore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var (
		field = newField(ctrl, 9, 50, 4)
		idf   = 1 + math.Log(10.0/3.0)
	)
	stats := collect(NewTFIDF(false), field, 2)
	require.InDelta(t, 2*idf*3, NewTFIDF(false).NewScorer(nil, field, stats, positioned(9), 2)(), 1e-9)
	require.InDelta(t, 2*idf*3/2, NewTFIDF(true).NewScorer(nil, field, stats, positioned(9), 2)(), 1e-9)
}

func TestBM25Ranking(t *testing.T) {
	b := builder.NewBuilder(builder.NewOptions())
	for _, body := range []string{
		"fox",
		"fox fox fox",
		"the quick brown fox jumps over the lazy dog",
		"dog",
	} {
		_, err := b.Insert(doc.Document{
			ID:     []byte(body),
			Fields: doc.Fields{{Name: []byte("body"), Value: []byte(body)}},
		})
		require.NoError(t, err)
	}
	seg, err := b.Seal(1)
	require.NoError(t, err)
	r := index.NewReader(seg)

	ord := search.NewOrder(NewBM25(DefaultK1, DefaultB))
	p, err := query.NewTermFilter("body", []byte("fox")).Prepare(context.Background(), r, ord, 1)
	require.NoError(t, err)
	it, err := p.Execute(context.Background(), seg, ord)
	require.NoError(t, err)

	type hit struct {
		id    postings.ID
		score float64
	}
	var hits []hit
	for it.Next() {
		hits = append(hits, hit{id: it.Current(), score: it.Score()})
	}
	require.Len(t, hits, 3)
	sort.Slice(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	// Frequent and short beat long.
	require.Equal(t, []postings.ID{2, 1, 3}, []postings.ID{hits[0].id, hits[1].id, hits[2].id})
}
