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
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/postings"
	"github.com/m3db/m3ninx/search"
	"github.com/m3db/m3ninx/search/searcher"
)

// FieldTerm is a term of a field.
type FieldTerm struct {
	Field string
	Term  []byte
}

var _ search.Filter = (*SamePositionFilter)(nil)

// SamePositionFilter matches documents where every term occurs in its field
// at one common position.
type SamePositionFilter struct {
	search.FilterBoost

	Terms []FieldTerm
}

// NewSamePositionFilter constructs a new SamePositionFilter.
func NewSamePositionFilter(terms ...FieldTerm) *SamePositionFilter {
	return &SamePositionFilter{Terms: terms}
}

func (f *SamePositionFilter) Kind() search.Kind {
	return search.KindSamePosition
}

func (f *SamePositionFilter) Prepare(
	ctx context.Context,
	r index.Reader,
	ord search.Order,
	boost float64,
) (search.Prepared, error) {
	if len(f.Terms) == 0 {
		return search.Empty(), nil
	}
	for _, t := range f.Terms {
		if t.Field == "" {
			return search.Empty(), nil
		}
	}

	var (
		segs   = r.Segments()
		states = search.NewStatesCache[samePositionState](len(segs))
		fields = ord.NewFieldCollectors()
		terms  = ord.NewTermCollectors(len(f.Terms))
	)
	for _, seg := range segs {
		var (
			readers = make([]index.FieldReader, len(f.Terms))
			cookies = make([]index.Cookie, len(f.Terms))
			missing bool
		)
		for i, t := range f.Terms {
			fr, ok := seg.Field(t.Field)
			if !ok || !fr.Features().Has(index.FeaturePositions) {
				missing = true
				if ord.Empty() {
					break
				}
				continue
			}
			fields.Collect(seg, fr)

			it := fr.Terms()
			found := it.Seek(t.Term)
			if found {
				terms.Collect(i, seg, fr, it.Meta())
				readers[i] = fr
				cookies[i] = it.Cookie()
			}
			if err := closeTerms(it, t.Field); err != nil {
				return nil, err
			}
			if !found {
				missing = true
				if ord.Empty() {
					break
				}
			}
		}
		if missing {
			continue
		}

		st := states.Insert(seg)
		st.fields = readers
		st.cookies = cookies
	}

	if states.Len() == 0 {
		return search.Empty(), nil
	}

	var stats [][]byte
	if !ord.Empty() {
		stats = make([][]byte, len(f.Terms))
		for i := range stats {
			stats[i] = ord.NewStats()
			terms.Finish(stats[i], i, fields)
		}
	}
	return &samePositionQuery{
		states: states,
		stats:  stats,
		boost:  boost * f.Boost(),
	}, nil
}

// Equal reports whether the filters match the same terms in the same order.
func (f *SamePositionFilter) Equal(o search.Filter) bool {
	inner, ok := o.(*SamePositionFilter)
	if !ok || len(f.Terms) != len(inner.Terms) {
		return false
	}
	for i, t := range f.Terms {
		if t.Field != inner.Terms[i].Field || !bytes.Equal(t.Term, inner.Terms[i].Term) {
			return false
		}
	}
	return true
}

func (f *SamePositionFilter) Hash() uint64 {
	h := newHasher(search.KindSamePosition)
	for _, t := range f.Terms {
		h.string(t.Field)
		h.bytes(t.Term)
	}
	return h.sum()
}

func (f *SamePositionFilter) String() string {
	terms := make([]string, 0, len(f.Terms))
	for _, t := range f.Terms {
		terms = append(terms, fmt.Sprintf("%s:%s", t.Field, t.Term))
	}
	return "same_position(" + strings.Join(terms, ", ") + ")"
}

type samePositionState struct {
	fields  []index.FieldReader
	cookies []index.Cookie
}

type samePositionQuery struct {
	states *search.StatesCache[samePositionState]
	stats  [][]byte
	boost  float64
}

func (q *samePositionQuery) Boost() float64 {
	return q.boost
}

// Execute returns the documents of the segment where every term shares a
// position, scored by the sum of the scores of the terms.
func (q *samePositionQuery) Execute(
	ctx context.Context,
	seg index.SegmentReader,
	ord search.Order,
) (search.DocIterator, error) {
	st, ok := q.states.Find(seg)
	if !ok {
		return search.EmptyIterator(), nil
	}

	sources := make([]postings.PositionsIterator, 0, len(st.cookies))
	for i, cookie := range st.cookies {
		reader := newTermsReader(st.fields[i])
		pl, ok, err := reader.positions(cookie, ord.Features())
		if cerr := reader.close(); err == nil {
			err = cerr
		}
		if err != nil {
			return nil, err
		}
		if !ok {
			return search.EmptyIterator(), nil
		}
		sources = append(sources, pl)
	}

	it := searcher.NewSamePositionIterator(searcher.NewConjunction(sources), sources)
	if ord.Empty() {
		return search.NewScoredIterator(it, nil), nil
	}

	scorers := make([]search.ScoreFunc, 0, len(sources))
	for i := range sources {
		scorers = append(scorers, ord.NewScorer(seg, st.fields[i], q.stats[i], sources[i], q.boost))
	}
	return search.NewScoredIterator(it, func() float64 {
		var score float64
		for _, fn := range scorers {
			score += fn()
		}
		return score
	}), nil
}
