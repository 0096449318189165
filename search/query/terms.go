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
	"github.com/m3db/m3ninx/search"
)

var _ search.Filter = (*TermsFilter)(nil)

// TermsFilter matches documents containing any term of an explicit set.
type TermsFilter struct {
	search.FilterBoost

	Field string
	Terms [][]byte
	// ScoredTermsLimit bounds the significance keys the selector retains,
	// a limit less than 1 scores every candidate.
	ScoredTermsLimit int
	Selector         SelectorKind
}

// NewTermsFilter constructs a new TermsFilter with the default selector.
func NewTermsFilter(field string, terms ...[]byte) *TermsFilter {
	return &TermsFilter{
		Field:            field,
		Terms:            terms,
		ScoredTermsLimit: DefaultScoredTermsLimit,
		Selector:         SelectByPostingsLength,
	}
}

func (f *TermsFilter) Kind() search.Kind {
	return search.KindTerms
}

func (f *TermsFilter) Prepare(
	ctx context.Context,
	r index.Reader,
	ord search.Order,
	boost float64,
) (search.Prepared, error) {
	if f.Field == "" {
		return search.Empty(), nil
	}
	enum := newSetEnumerator(f.Terms)
	switch len(enum.terms) {
	case 0:
		return search.Empty(), nil
	case 1:
		return prepareTerm(r, ord, f.Boost()*boost, f.Field, enum.terms[0])
	}
	return prepareMultiTerm(r, ord, f.Boost()*boost, f.Field,
		f.Selector, f.ScoredTermsLimit, enum)
}

// Equal reports whether the filters match the same set of terms, the order
// of the terms is not significant.
func (f *TermsFilter) Equal(o search.Filter) bool {
	inner, ok := o.(*TermsFilter)
	if !ok {
		return false
	}
	return f.Field == inner.Field &&
		f.ScoredTermsLimit == inner.ScoredTermsLimit &&
		f.Selector == inner.Selector &&
		equalTermSets(f.Terms, inner.Terms)
}

func (f *TermsFilter) Hash() uint64 {
	h := newHasher(search.KindTerms)
	h.string(f.Field)
	h.uint64(uint64(f.ScoredTermsLimit))
	h.uint64(uint64(f.Selector))
	for _, t := range newSetEnumerator(f.Terms).terms {
		h.bytes(t)
	}
	return h.sum()
}

func (f *TermsFilter) String() string {
	terms := make([]string, 0, len(f.Terms))
	for _, t := range f.Terms {
		terms = append(terms, string(t))
	}
	return fmt.Sprintf("terms(%s, [%s])", f.Field, strings.Join(terms, ", "))
}

// equalTermSets reports whether the slices hold the same set of terms.
func equalTermSets(a, b [][]byte) bool {
	x, y := newSetEnumerator(a).terms, newSetEnumerator(b).terms
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !bytes.Equal(x[i], y[i]) {
			return false
		}
	}
	return true
}
