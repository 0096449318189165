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
	"fmt"
	"strings"

	"github.com/m3db/m3ninx/search"
)

// PhrasePart is the term matcher at one position of a phrase. The set of
// parts is closed: TermPart, PrefixPart, WildcardPart, LevenshteinPart,
// SetPart and RangePart.
type PhrasePart interface {
	fmt.Stringer

	equal(o PhrasePart) bool
	hash(h *hasher)

	// filter returns the equivalent standalone filter on the field.
	filter(field string) search.Filter

	// enumerator returns the candidates of the part, nil if the part can
	// never match.
	enumerator() (termEnumerator, error)

	// limit returns the scored terms limit of the part, less than 1 when
	// every candidate is scored.
	limit() int
}

const (
	partTerm uint64 = iota
	partPrefix
	partWildcard
	partLevenshtein
	partSet
	partRange
)

// TermPart matches a single term.
type TermPart struct {
	Term []byte
}

func (p TermPart) equal(o PhrasePart) bool {
	inner, ok := o.(TermPart)
	return ok && bytes.Equal(p.Term, inner.Term)
}

func (p TermPart) hash(h *hasher) {
	h.uint64(partTerm)
	h.bytes(p.Term)
}

func (p TermPart) filter(field string) search.Filter {
	return NewTermFilter(field, p.Term)
}

func (p TermPart) enumerator() (termEnumerator, error) {
	return newSetEnumerator([][]byte{p.Term}), nil
}

func (p TermPart) limit() int     { return 0 }
func (p TermPart) String() string { return string(p.Term) }

// PrefixPart matches every term with a prefix.
type PrefixPart struct {
	Prefix           []byte
	ScoredTermsLimit int
}

func (p PrefixPart) equal(o PhrasePart) bool {
	inner, ok := o.(PrefixPart)
	return ok && bytes.Equal(p.Prefix, inner.Prefix) && p.ScoredTermsLimit == inner.ScoredTermsLimit
}

func (p PrefixPart) hash(h *hasher) {
	h.uint64(partPrefix)
	h.bytes(p.Prefix)
	h.uint64(uint64(p.ScoredTermsLimit))
}

func (p PrefixPart) filter(field string) search.Filter {
	f := NewPrefixFilter(field, p.Prefix)
	f.ScoredTermsLimit = p.ScoredTermsLimit
	return f
}

func (p PrefixPart) enumerator() (termEnumerator, error) {
	return prefixEnumerator{prefix: p.Prefix}, nil
}

func (p PrefixPart) limit() int     { return p.ScoredTermsLimit }
func (p PrefixPart) String() string { return string(p.Prefix) + "*" }

// WildcardPart matches every term matching a wildcard pattern.
type WildcardPart struct {
	Pattern          []byte
	ScoredTermsLimit int
}

func (p WildcardPart) equal(o PhrasePart) bool {
	inner, ok := o.(WildcardPart)
	return ok && bytes.Equal(p.Pattern, inner.Pattern) && p.ScoredTermsLimit == inner.ScoredTermsLimit
}

func (p WildcardPart) hash(h *hasher) {
	h.uint64(partWildcard)
	h.bytes(p.Pattern)
	h.uint64(uint64(p.ScoredTermsLimit))
}

func (p WildcardPart) filter(field string) search.Filter {
	f := NewWildcardFilter(field, p.Pattern)
	f.ScoredTermsLimit = p.ScoredTermsLimit
	return f
}

func (p WildcardPart) enumerator() (termEnumerator, error) {
	return wildcardEnumerator(p.Pattern)
}

func (p WildcardPart) limit() int     { return p.ScoredTermsLimit }
func (p WildcardPart) String() string { return "wildcard(" + string(p.Pattern) + ")" }

// LevenshteinPart matches every term within an edit distance of a term.
type LevenshteinPart struct {
	Term               []byte
	MaxDistance        uint8
	WithTranspositions bool
	ScoredTermsLimit   int
}

func (p LevenshteinPart) equal(o PhrasePart) bool {
	inner, ok := o.(LevenshteinPart)
	return ok &&
		bytes.Equal(p.Term, inner.Term) &&
		p.MaxDistance == inner.MaxDistance &&
		p.WithTranspositions == inner.WithTranspositions &&
		p.ScoredTermsLimit == inner.ScoredTermsLimit
}

func (p LevenshteinPart) hash(h *hasher) {
	h.uint64(partLevenshtein)
	h.bytes(p.Term)
	h.uint64(uint64(p.MaxDistance))
	h.bool(p.WithTranspositions)
	h.uint64(uint64(p.ScoredTermsLimit))
}

func (p LevenshteinPart) filter(field string) search.Filter {
	f := NewLevenshteinFilter(field, p.Term, p.MaxDistance)
	f.WithTranspositions = p.WithTranspositions
	f.ScoredTermsLimit = p.ScoredTermsLimit
	return f
}

func (p LevenshteinPart) enumerator() (termEnumerator, error) {
	return levenshteinEnumerator(p.Term, p.MaxDistance, p.WithTranspositions)
}

func (p LevenshteinPart) limit() int { return p.ScoredTermsLimit }

func (p LevenshteinPart) String() string {
	return fmt.Sprintf("%s~%d", p.Term, p.MaxDistance)
}

// SetPart matches any term of an explicit set.
type SetPart struct {
	Terms [][]byte
}

func (p SetPart) equal(o PhrasePart) bool {
	inner, ok := o.(SetPart)
	return ok && equalTermSets(p.Terms, inner.Terms)
}

func (p SetPart) hash(h *hasher) {
	h.uint64(partSet)
	for _, t := range newSetEnumerator(p.Terms).terms {
		h.bytes(t)
	}
}

func (p SetPart) filter(field string) search.Filter {
	return NewTermsFilter(field, p.Terms...)
}

func (p SetPart) enumerator() (termEnumerator, error) {
	enum := newSetEnumerator(p.Terms)
	if len(enum.terms) == 0 {
		return nil, nil
	}
	return enum, nil
}

func (p SetPart) limit() int { return 0 }

func (p SetPart) String() string {
	terms := make([]string, 0, len(p.Terms))
	for _, t := range p.Terms {
		terms = append(terms, string(t))
	}
	return "{" + strings.Join(terms, "|") + "}"
}

// RangePart matches every term within a range.
type RangePart struct {
	Range            Range
	ScoredTermsLimit int
}

func (p RangePart) equal(o PhrasePart) bool {
	inner, ok := o.(RangePart)
	return ok && p.Range.equal(inner.Range) && p.ScoredTermsLimit == inner.ScoredTermsLimit
}

func (p RangePart) hash(h *hasher) {
	h.uint64(partRange)
	p.Range.hash(h)
	h.uint64(uint64(p.ScoredTermsLimit))
}

func (p RangePart) filter(field string) search.Filter {
	f := NewRangeFilter(field, p.Range.Min, p.Range.Max)
	f.ScoredTermsLimit = p.ScoredTermsLimit
	return f
}

func (p RangePart) enumerator() (termEnumerator, error) {
	if p.Range.empty() {
		return nil, nil
	}
	return rangeEnumerator{rng: p.Range}, nil
}

func (p RangePart) limit() int     { return p.ScoredTermsLimit }
func (p RangePart) String() string { return p.Range.String() }
