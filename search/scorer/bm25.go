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
	"math"

	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/postings"
	"github.com/m3db/m3ninx/search"
)

const (
	// DefaultK1 is the default term frequency saturation of BM25.
	DefaultK1 = 1.2
	// DefaultB is the default length normalization of BM25.
	DefaultB = 0.75
)

const (
	bm25IDF = iota
	bm25AvgLength
	bm25Size
)

var _ search.Sort = (*BM25)(nil)

// BM25 is the Okapi BM25 relevance sort.
type BM25 struct {
	k1 float64
	b  float64
}

// NewBM25 returns a BM25 sort with the given saturation and length
// normalization.
func NewBM25(k1, b float64) *BM25 {
	return &BM25{k1: k1, b: b}
}

func (s *BM25) Features() index.Features {
	return index.FeatureFrequency
}

func (s *BM25) StatsSize() int {
	return bm25Size * 8
}

func (s *BM25) PrepareStats(stats []byte) {
	putFloat(stats, bm25IDF, 0)
	putFloat(stats, bm25AvgLength, 1)
}

func (s *BM25) NewFieldCollector() search.FieldCollector {
	return &fieldCollector{}
}

func (s *BM25) NewTermCollector() search.TermCollector {
	return &termCollector{}
}

// Collect adds the inverse document frequency of the term to the statistics.
// The average length is that of the last collected field.
func (s *BM25) Collect(stats []byte, fc search.FieldCollector, tc search.TermCollector) {
	field, term := collectors(fc, tc)
	if field.docs == 0 {
		return
	}

	var (
		n   = float64(field.docs)
		df  = float64(term.docs)
		idf = math.Log(1 + (n-df+0.5)/(df+0.5))
	)
	putFloat(stats, bm25IDF, getFloat(stats, bm25IDF)+idf)
	putFloat(stats, bm25AvgLength, float64(field.totalLength)/n)
}

func (s *BM25) NewScorer(
	_ index.SegmentReader,
	field index.FieldReader,
	stats []byte,
	it postings.Iterator,
	boost float64,
) search.ScoreFunc {
	var (
		idf    = getFloat(stats, bm25IDF) * boost
		avg    = getFloat(stats, bm25AvgLength)
		freq   = frequencyOf(it)
		k1, b  = s.k1, s.b
		scored = idf != 0
	)
	if avg <= 0 {
		avg = 1
	}
	return func() float64 {
		if !scored {
			return 0
		}
		tf := freq()
		length := float64(field.Norm(it.Current()))
		return idf * tf * (k1 + 1) / (tf + k1*(1-b+b*length/avg))
	}
}
