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

var _ search.Sort = (*TFIDF)(nil)

// TFIDF is the classic term frequency, inverse document frequency sort.
type TFIDF struct {
	withNorms bool
}

// NewTFIDF returns a TFIDF sort, dividing scores by the square root of the
// field length of the document when withNorms is set.
func NewTFIDF(withNorms bool) *TFIDF {
	return &TFIDF{withNorms: withNorms}
}

func (s *TFIDF) Features() index.Features                 { return index.FeatureFrequency }
func (s *TFIDF) StatsSize() int                           { return 8 }
func (s *TFIDF) PrepareStats(stats []byte)                { putFloat(stats, 0, 0) }
func (s *TFIDF) NewFieldCollector() search.FieldCollector { return &fieldCollector{} }
func (s *TFIDF) NewTermCollector() search.TermCollector   { return &termCollector{} }

// Collect adds the inverse document frequency of the term to the statistics.
func (s *TFIDF) Collect(stats []byte, fc search.FieldCollector, tc search.TermCollector) {
	field, term := collectors(fc, tc)
	idf := 1 + math.Log(float64(field.docs+1)/float64(term.docs+1))
	putFloat(stats, 0, getFloat(stats, 0)+idf)
}

func (s *TFIDF) NewScorer(
	_ index.SegmentReader,
	field index.FieldReader,
	stats []byte,
	it postings.Iterator,
	boost float64,
) search.ScoreFunc {
	var (
		idf  = getFloat(stats, 0) * boost
		freq = frequencyOf(it)
	)
	return func() float64 {
		score := math.Sqrt(freq()) * idf
		if s.withNorms {
			if norm := field.Norm(it.Current()); norm > 0 {
				score /= math.Sqrt(float64(norm))
			}
		}
		return score
	}
}
