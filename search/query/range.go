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

// BoundType is the kind of a range bound.
type BoundType uint8

const (
	// BoundUnbounded admits every term on its side.
	BoundUnbounded BoundType = iota
	// BoundInclusive admits the bound term.
	BoundInclusive
	// BoundExclusive excludes the bound term.
	BoundExclusive
)

// Bound is one side of a lexicographic range of terms.
type Bound struct {
	Term []byte
	Type BoundType
}

// Inclusive returns an inclusive bound.
func Inclusive(term []byte) Bound { return Bound{Term: term, Type: BoundInclusive} }

// Exclusive returns an exclusive bound.
func Exclusive(term []byte) Bound { return Bound{Term: term, Type: BoundExclusive} }

// Unbounded returns a bound admitting every term.
func Unbounded() Bound { return Bound{} }

// admitsFromAbove reports whether an upper bound admits the term.
func (b Bound) admitsFromAbove(term []byte) bool {
	switch b.Type {
	case BoundInclusive:
		return bytes.Compare(term, b.Term) <= 0
	case BoundExclusive:
		return bytes.Compare(term, b.Term) < 0
	default:
		return true
	}
}

func (b Bound) equal(o Bound) bool {
	if b.Type != o.Type {
		return false
	}
	return b.Type == BoundUnbounded || bytes.Equal(b.Term, o.Term)
}

func (b Bound) hash(h *hasher) {
	h.uint64(uint64(b.Type))
	if b.Type != BoundUnbounded {
		h.bytes(b.Term)
	}
}

// Range is a lexicographic range of terms.
type Range struct {
	Min Bound
	Max Bound
}

// empty reports whether no term can fall within the range.
func (r Range) empty() bool {
	if r.Min.Type == BoundUnbounded || r.Max.Type == BoundUnbounded {
		return false
	}
	c := bytes.Compare(r.Min.Term, r.Max.Term)
	if c > 0 {
		return true
	}
	return c == 0 && (r.Min.Type == BoundExclusive || r.Max.Type == BoundExclusive)
}

// single returns the only term within the range, if any.
func (r Range) single() ([]byte, bool) {
	if r.Min.Type != BoundInclusive || r.Max.Type != BoundInclusive {
		return nil, false
	}
	if !bytes.Equal(r.Min.Term, r.Max.Term) {
		return nil, false
	}
	return r.Min.Term, true
}

func (r Range) equal(o Range) bool {
	return r.Min.equal(o.Min) && r.Max.equal(o.Max)
}

func (r Range) hash(h *hasher) {
	r.Min.hash(h)
	r.Max.hash(h)
}

func (r Range) String() string {
	var lower, upper string
	switch r.Min.Type {
	case BoundInclusive:
		lower = "[" + string(r.Min.Term)
	case BoundExclusive:
		lower = "(" + string(r.Min.Term)
	default:
		lower = "(*"
	}
	switch r.Max.Type {
	case BoundInclusive:
		upper = string(r.Max.Term) + "]"
	case BoundExclusive:
		upper = string(r.Max.Term) + ")"
	default:
		upper = "*)"
	}
	return lower + ", " + upper
}

var _ search.Filter = (*RangeFilter)(nil)

// RangeFilter matches documents containing any term within a range.
type RangeFilter struct {
	search.FilterBoost

	Field string
	Range Range
	// ScoredTermsLimit bounds the significance keys the selector retains,
	// a limit less than 1 scores every candidate.
	ScoredTermsLimit int
	Selector         SelectorKind
}

// NewRangeFilter constructs a new RangeFilter with the default selector.
func NewRangeFilter(field string, lower, upper Bound) *RangeFilter {
	return &RangeFilter{
		Field:            field,
		Range:            Range{Min: lower, Max: upper},
		ScoredTermsLimit: DefaultScoredTermsLimit,
		Selector:         SelectByPostingsLength,
	}
}

func (f *RangeFilter) Kind() search.Kind {
	return search.KindRange
}

func (f *RangeFilter) Prepare(
	ctx context.Context,
	r index.Reader,
	ord search.Order,
	boost float64,
) (search.Prepared, error) {
	if f.Field == "" || f.Range.empty() {
		return search.Empty(), nil
	}
	if term, ok := f.Range.single(); ok {
		return prepareTerm(r, ord, f.Boost()*boost, f.Field, term)
	}
	return prepareMultiTerm(r, ord, f.Boost()*boost, f.Field,
		f.Selector, f.ScoredTermsLimit, rangeEnumerator{rng: f.Range})
}

func (f *RangeFilter) Equal(o search.Filter) bool {
	inner, ok := o.(*RangeFilter)
	if !ok {
		return false
	}
	return f.Field == inner.Field &&
		f.Range.equal(inner.Range) &&
		f.ScoredTermsLimit == inner.ScoredTermsLimit &&
		f.Selector == inner.Selector
}

func (f *RangeFilter) Hash() uint64 {
	h := newHasher(search.KindRange)
	h.string(f.Field)
	f.Range.hash(h)
	h.uint64(uint64(f.ScoredTermsLimit))
	h.uint64(uint64(f.Selector))
	return h.sum()
}

func (f *RangeFilter) String() string {
	return fmt.Sprintf("range(%s, %s)", f.Field, f.Range)
}
