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
	"sort"

	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/search"
	"github.com/m3db/m3ninx/search/searcher"

	"github.com/couchbase/vellum"
)

type scoredCookie struct {
	cookie   index.Cookie
	statsIdx int
}

type multiTermState struct {
	field    index.FieldReader
	scored   []scoredCookie
	unscored []index.Cookie
}

// termEnumerator visits the candidate terms of a field. The iterator passed
// to visit is only valid for the duration of the call.
type termEnumerator interface {
	enumerate(field index.FieldReader, visit func(it index.TermIterator)) error
}

type prefixEnumerator struct {
	prefix []byte
}

func (e prefixEnumerator) enumerate(field index.FieldReader, visit func(index.TermIterator)) error {
	it := field.Terms()
	for ok := it.SeekGE(e.prefix) != index.SeekEnd; ok; ok = it.Next() {
		if !bytes.HasPrefix(it.Current(), e.prefix) {
			break
		}
		visit(it)
	}
	return closeTerms(it, field.Name())
}

type automatonEnumerator struct {
	automaton vellum.Automaton
}

func (e automatonEnumerator) enumerate(field index.FieldReader, visit func(index.TermIterator)) error {
	it := field.Search(e.automaton)
	for it.Next() {
		visit(it)
	}
	return closeTerms(it, field.Name())
}

// setEnumerator visits an explicit set of terms, which must be sorted
// without duplicates.
type setEnumerator struct {
	terms [][]byte
}

func newSetEnumerator(terms [][]byte) setEnumerator {
	sorted := make([][]byte, 0, len(terms))
	sorted = append(sorted, terms...)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i], sorted[j]) < 0
	})
	unique := sorted[:0]
	for _, t := range sorted {
		if len(unique) > 0 && bytes.Equal(unique[len(unique)-1], t) {
			continue
		}
		unique = append(unique, t)
	}
	return setEnumerator{terms: unique}
}

func (e setEnumerator) enumerate(field index.FieldReader, visit func(index.TermIterator)) error {
	it := field.Terms()
	for _, term := range e.terms {
		if it.Seek(term) {
			visit(it)
		}
	}
	return closeTerms(it, field.Name())
}

type rangeEnumerator struct {
	rng Range
}

func (e rangeEnumerator) enumerate(field index.FieldReader, visit func(index.TermIterator)) error {
	var (
		it    = field.Terms()
		lower = e.rng.Min
		ok    bool
	)
	if lower.Type == BoundUnbounded {
		ok = it.Next()
	} else {
		ok = it.SeekGE(lower.Term) != index.SeekEnd
		if ok && lower.Type == BoundExclusive && bytes.Equal(it.Current(), lower.Term) {
			ok = it.Next()
		}
	}
	for ; ok; ok = it.Next() {
		if !e.rng.Max.admitsFromAbove(it.Current()) {
			break
		}
		visit(it)
	}
	return closeTerms(it, field.Name())
}

// prepareMultiTerm offers every candidate the enumerator yields in each
// segment to a term selector and prepares a query over all of them.
func prepareMultiTerm(
	r index.Reader,
	ord search.Order,
	boost float64,
	field string,
	kind SelectorKind,
	limit int,
	enum termEnumerator,
) (search.Prepared, error) {
	var (
		segs     = r.Segments()
		states   = search.NewStatesCache[multiTermState](len(segs))
		fields   = ord.NewFieldCollectors()
		selector = newTermSelector(kind, limit)
	)
	for i, seg := range segs {
		fr, ok := seg.Field(field)
		if !ok {
			continue
		}
		fields.Collect(seg, fr)

		err := enum.enumerate(fr, func(it index.TermIterator) {
			selector.insert(candidate{
				segIdx: i,
				seg:    seg,
				field:  fr,
				term:   append([]byte(nil), it.Current()...),
				cookie: it.Cookie(),
				meta:   it.Meta(),
			})
		})
		if err != nil {
			return nil, err
		}
	}

	if len(selector.candidates) == 0 {
		return search.Empty(), nil
	}

	stats := selector.build(ord, fields, states)
	return &multiTermQuery{
		states: states,
		stats:  stats,
		boost:  boost,
	}, nil
}

type multiTermQuery struct {
	states *search.StatesCache[multiTermState]
	stats  [][]byte
	boost  float64
}

func (q *multiTermQuery) Boost() float64 {
	return q.boost
}

// Execute returns the union of the postings of every candidate of the
// segment, scored by the sum of the scores of the scored candidates.
func (q *multiTermQuery) Execute(
	ctx context.Context,
	seg index.SegmentReader,
	ord search.Order,
) (search.DocIterator, error) {
	st, ok := q.states.Find(seg)
	if !ok {
		return search.EmptyIterator(), nil
	}

	var (
		reader = newTermsReader(st.field)
		its    = make([]search.DocIterator, 0, len(st.scored)+len(st.unscored))
	)
	for _, sc := range st.scored {
		pl, ok, err := reader.postings(sc.cookie, ord.Features())
		if err != nil {
			_ = reader.close()
			return nil, err
		}
		if ok {
			scorer := ord.NewScorer(seg, st.field, q.stats[sc.statsIdx], pl, q.boost)
			its = append(its, search.NewScoredIterator(pl, scorer))
		}
	}
	for _, cookie := range st.unscored {
		pl, ok, err := reader.postings(cookie, index.NoFeatures)
		if err != nil {
			_ = reader.close()
			return nil, err
		}
		if ok {
			its = append(its, search.NewScoredIterator(pl, nil))
		}
	}
	if err := reader.close(); err != nil {
		return nil, err
	}
	return searcher.NewScoredDisjunction(its), nil
}
