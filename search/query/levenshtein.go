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
	"sync"
	"unicode/utf8"

	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/search"

	"github.com/couchbase/vellum"
	"github.com/couchbase/vellum/levenshtein"
	"github.com/pkg/errors"
)

// MaxLevenshteinDistance is the largest supported edit distance.
const MaxLevenshteinDistance = 2

type levenshteinKey struct {
	distance      uint8
	transposition bool
}

var levenshteinBuilders = struct {
	sync.Mutex
	builders map[levenshteinKey]*levenshtein.LevenshteinAutomatonBuilder
}{
	builders: make(map[levenshteinKey]*levenshtein.LevenshteinAutomatonBuilder),
}

// levenshteinBuilder returns the shared automaton builder of the parameters,
// building the tables on first use.
func levenshteinBuilder(distance uint8, transposition bool) (*levenshtein.LevenshteinAutomatonBuilder, error) {
	key := levenshteinKey{distance: distance, transposition: transposition}

	levenshteinBuilders.Lock()
	defer levenshteinBuilders.Unlock()

	if b, ok := levenshteinBuilders.builders[key]; ok {
		return b, nil
	}
	b, err := levenshtein.NewLevenshteinAutomatonBuilder(distance, transposition)
	if err != nil {
		return nil, errors.Wrapf(err, "could not build levenshtein tables for distance %d", distance)
	}
	levenshteinBuilders.builders[key] = b
	return b, nil
}

// compileLevenshtein returns an automaton accepting the terms within the
// distance of term.
func compileLevenshtein(term []byte, distance uint8, transposition bool) (vellum.Automaton, error) {
	b, err := levenshteinBuilder(distance, transposition)
	if err != nil {
		return nil, err
	}
	dfa, err := b.BuildDfa(string(term), distance)
	if err != nil {
		return nil, errors.Wrapf(err, "could not build levenshtein automaton for %s", term)
	}
	return dfa, nil
}

// levenshteinEnumerator returns the enumerator of the terms within distance,
// nil if no term can match.
func levenshteinEnumerator(term []byte, distance uint8, transposition bool) (termEnumerator, error) {
	if distance > MaxLevenshteinDistance || !utf8.Valid(term) {
		return nil, nil
	}
	if distance == 0 {
		return newSetEnumerator([][]byte{term}), nil
	}
	a, err := compileLevenshtein(term, distance, transposition)
	if err != nil {
		return nil, err
	}
	return automatonEnumerator{automaton: a}, nil
}

var _ search.Filter = (*LevenshteinFilter)(nil)

// LevenshteinFilter matches documents containing any term within an edit
// distance of a term.
type LevenshteinFilter struct {
	search.FilterBoost

	Field       string
	Term        []byte
	MaxDistance uint8
	// WithTranspositions counts the transposition of two adjacent
	// characters as a single edit.
	WithTranspositions bool
	// ScoredTermsLimit bounds the significance keys the selector retains,
	// a limit less than 1 scores every candidate.
	ScoredTermsLimit int
	Selector         SelectorKind
}

// NewLevenshteinFilter constructs a new LevenshteinFilter with the default
// selector.
func NewLevenshteinFilter(field string, term []byte, maxDistance uint8) *LevenshteinFilter {
	return &LevenshteinFilter{
		Field:            field,
		Term:             term,
		MaxDistance:      maxDistance,
		ScoredTermsLimit: DefaultScoredTermsLimit,
		Selector:         SelectByPostingsLength,
	}
}

func (f *LevenshteinFilter) Kind() search.Kind {
	return search.KindLevenshtein
}

func (f *LevenshteinFilter) Prepare(
	ctx context.Context,
	r index.Reader,
	ord search.Order,
	boost float64,
) (search.Prepared, error) {
	if f.Field == "" {
		return search.Empty(), nil
	}
	if f.MaxDistance == 0 {
		return prepareTerm(r, ord, f.Boost()*boost, f.Field, f.Term)
	}
	enum, err := levenshteinEnumerator(f.Term, f.MaxDistance, f.WithTranspositions)
	if err != nil {
		return nil, err
	}
	if enum == nil {
		return search.Empty(), nil
	}
	return prepareMultiTerm(r, ord, f.Boost()*boost, f.Field,
		f.Selector, f.ScoredTermsLimit, enum)
}

func (f *LevenshteinFilter) Equal(o search.Filter) bool {
	inner, ok := o.(*LevenshteinFilter)
	if !ok {
		return false
	}
	return f.Field == inner.Field &&
		bytes.Equal(f.Term, inner.Term) &&
		f.MaxDistance == inner.MaxDistance &&
		f.WithTranspositions == inner.WithTranspositions &&
		f.ScoredTermsLimit == inner.ScoredTermsLimit &&
		f.Selector == inner.Selector
}

func (f *LevenshteinFilter) Hash() uint64 {
	h := newHasher(search.KindLevenshtein)
	h.string(f.Field)
	h.bytes(f.Term)
	h.uint64(uint64(f.MaxDistance))
	h.bool(f.WithTranspositions)
	h.uint64(uint64(f.ScoredTermsLimit))
	h.uint64(uint64(f.Selector))
	return h.sum()
}

func (f *LevenshteinFilter) String() string {
	return fmt.Sprintf("levenshtein(%s, %s, %d)", f.Field, f.Term, f.MaxDistance)
}
