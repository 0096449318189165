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
	"fmt"

	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/postings"
)

// Kind is the discriminant of a Filter.
type Kind uint8

const (
	// KindEmpty matches nothing.
	KindEmpty Kind = iota
	// KindTerm matches a single term exactly.
	KindTerm
	// KindTerms matches any term of an explicit set.
	KindTerms
	// KindPrefix matches every term with a prefix.
	KindPrefix
	// KindWildcard matches terms against a wildcard pattern.
	KindWildcard
	// KindLevenshtein matches terms within an edit distance.
	KindLevenshtein
	// KindRange matches terms within lexicographic bounds.
	KindRange
	// KindPhrase matches terms at relative positions.
	KindPhrase
	// KindSamePosition matches terms of several fields at the same position.
	KindSamePosition
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindTerm:
		return "term"
	case KindTerms:
		return "terms"
	case KindPrefix:
		return "prefix"
	case KindWildcard:
		return "wildcard"
	case KindLevenshtein:
		return "levenshtein"
	case KindRange:
		return "range"
	case KindPhrase:
		return "phrase"
	case KindSamePosition:
		return "same_position"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Filter is a description of a match condition. Filters carry no index bound
// state, Prepare compiles them against an index snapshot. A filter must not be
// mutated once prepared through a PreparedCache.
type Filter interface {
	fmt.Stringer

	// Kind returns the discriminant of the filter.
	Kind() Kind

	// Boost returns the multiplicative boost of the filter, 1 by default.
	Boost() float64

	// Prepare compiles the filter against the snapshot. The returned query
	// carries the filter boost multiplied by boost.
	Prepare(ctx context.Context, r index.Reader, ord Order, boost float64) (Prepared, error)

	// Equal reports whether the filters are structurally equal. The boost
	// is not part of the structure.
	Equal(other Filter) bool

	// Hash returns a structural hash consistent with Equal.
	Hash() uint64
}

// Prepared is a filter compiled against an index snapshot. Execute may be
// called concurrently for different segments of the snapshot it was prepared
// against and must never be used with any other snapshot.
type Prepared interface {
	// Boost returns the effective boost of the query.
	Boost() float64

	// Execute returns the matching documents of the segment.
	Execute(ctx context.Context, seg index.SegmentReader, ord Order) (DocIterator, error)
}

// DocIterator is a scored postings iterator. It is not safe for concurrent use.
type DocIterator interface {
	postings.Iterator

	// Score returns the score of the current document, 0 when not scoring.
	Score() float64
}

// FilterBoost implements the boost of a filter and is meant to be embedded.
type FilterBoost struct {
	value float64
	set   bool
}

// Boost returns the boost, 1 if it was never set.
func (b FilterBoost) Boost() float64 {
	if !b.set {
		return 1
	}
	return b.value
}

// SetBoost sets the boost.
func (b *FilterBoost) SetBoost(v float64) {
	b.value = v
	b.set = true
}
