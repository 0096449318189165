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

	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/search"
)

var _ search.Filter = (*TermFilter)(nil)

// TermFilter matches documents containing a term exactly.
type TermFilter struct {
	search.FilterBoost

	Field string
	Term  []byte
}

// NewTermFilter constructs a new TermFilter for the given field and term.
func NewTermFilter(field string, term []byte) *TermFilter {
	return &TermFilter{
		Field: field,
		Term:  term,
	}
}

func (f *TermFilter) Kind() search.Kind {
	return search.KindTerm
}

// Prepare returns a query over the segments containing the term.
func (f *TermFilter) Prepare(
	ctx context.Context,
	r index.Reader,
	ord search.Order,
	boost float64,
) (search.Prepared, error) {
	if f.Field == "" {
		return search.Empty(), nil
	}
	return prepareTerm(r, ord, f.Boost()*boost, f.Field, f.Term)
}

// Equal reports whether f is equivalent to o.
func (f *TermFilter) Equal(o search.Filter) bool {
	inner, ok := o.(*TermFilter)
	if !ok {
		return false
	}
	return f.Field == inner.Field && bytes.Equal(f.Term, inner.Term)
}

func (f *TermFilter) Hash() uint64 {
	h := newHasher(search.KindTerm)
	h.string(f.Field)
	h.bytes(f.Term)
	return h.sum()
}

func (f *TermFilter) String() string {
	return fmt.Sprintf("term(%s, %s)", f.Field, f.Term)
}

type termState struct {
	field  index.FieldReader
	cookie index.Cookie
}

type termQuery struct {
	states *search.StatesCache[termState]
	stats  []byte
	boost  float64
}

func prepareTerm(
	r index.Reader,
	ord search.Order,
	boost float64,
	field string,
	term []byte,
) (search.Prepared, error) {
	var (
		segs   = r.Segments()
		states = search.NewStatesCache[termState](len(segs))
		fields = ord.NewFieldCollectors()
		terms  = ord.NewTermCollectors(1)
	)
	for _, seg := range segs {
		fr, ok := seg.Field(field)
		if !ok {
			continue
		}
		fields.Collect(seg, fr)

		it := fr.Terms()
		if it.Seek(term) {
			terms.Collect(0, seg, fr, it.Meta())
			st := states.Insert(seg)
			st.field = fr
			st.cookie = it.Cookie()
		}
		if err := closeTerms(it, field); err != nil {
			return nil, err
		}
	}

	if states.Len() == 0 {
		return search.Empty(), nil
	}

	stats := ord.NewStats()
	terms.Finish(stats, 0, fields)
	return &termQuery{
		states: states,
		stats:  stats,
		boost:  boost,
	}, nil
}

func (q *termQuery) Boost() float64 {
	return q.boost
}

func (q *termQuery) Execute(
	ctx context.Context,
	seg index.SegmentReader,
	ord search.Order,
) (search.DocIterator, error) {
	st, ok := q.states.Find(seg)
	if !ok {
		return search.EmptyIterator(), nil
	}

	reader := newTermsReader(st.field)
	pl, ok, err := reader.postings(st.cookie, ord.Features())
	if cerr := reader.close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return search.EmptyIterator(), nil
	}
	return search.NewScoredIterator(pl, ord.NewScorer(seg, st.field, q.stats, pl, q.boost)), nil
}
