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
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/search"

	"github.com/couchbase/vellum"
	vregexp "github.com/couchbase/vellum/regexp"
	"github.com/pkg/errors"
)

const (
	wildcardAnySequence = '%'
	wildcardAnyChar     = '_'
	wildcardEscape      = '\\'
)

// WildcardType is the cheapest way a wildcard pattern can be matched.
type WildcardType uint8

const (
	// WildcardInvalid patterns match nothing.
	WildcardInvalid WildcardType = iota
	// WildcardTerm patterns match a single literal term.
	WildcardTerm
	// WildcardMatchAll patterns match every term.
	WildcardMatchAll
	// WildcardPrefix patterns match every term with a literal prefix.
	WildcardPrefix
	// WildcardGeneral patterns require an automaton.
	WildcardGeneral
)

func (t WildcardType) String() string {
	switch t {
	case WildcardInvalid:
		return "invalid"
	case WildcardTerm:
		return "term"
	case WildcardMatchAll:
		return "match_all"
	case WildcardPrefix:
		return "prefix"
	case WildcardGeneral:
		return "wildcard"
	default:
		return fmt.Sprintf("wildcard_type(%d)", uint8(t))
	}
}

// ClassifyWildcard classifies a pattern where '%' matches any sequence of
// characters, '_' matches a single character and '\' escapes the following
// character. The unescaped literal is returned for term and prefix patterns.
func ClassifyWildcard(pattern []byte) (WildcardType, []byte) {
	if !utf8.Valid(pattern) {
		return WildcardInvalid, nil
	}

	var (
		literal      = make([]byte, 0, len(pattern))
		literalDone  bool
		sawAnyChar   bool
		sawAnySeq    bool
		trailingOnly = true
		escaped      bool
	)
	for _, c := range string(pattern) {
		if escaped {
			escaped = false
			if literalDone {
				trailingOnly = false
			}
			literal = utf8.AppendRune(literal, c)
			continue
		}
		switch c {
		case wildcardEscape:
			escaped = true
		case wildcardAnyChar:
			sawAnyChar = true
			literalDone = true
		case wildcardAnySequence:
			sawAnySeq = true
			literalDone = true
		default:
			if literalDone {
				trailingOnly = false
			}
			literal = utf8.AppendRune(literal, c)
		}
	}
	if escaped {
		if literalDone {
			trailingOnly = false
		}
		literal = append(literal, wildcardEscape)
	}

	switch {
	case !sawAnyChar && !sawAnySeq:
		return WildcardTerm, literal
	case sawAnyChar || !trailingOnly:
		return WildcardGeneral, nil
	case len(literal) == 0:
		return WildcardMatchAll, nil
	default:
		return WildcardPrefix, literal
	}
}

// wildcardToRegexp translates a raw wildcard pattern to a regular expression
// matching whole terms.
func wildcardToRegexp(pattern []byte) string {
	var (
		b       strings.Builder
		escaped bool
	)
	b.WriteString("(?s)")
	for _, c := range string(pattern) {
		if escaped {
			escaped = false
			b.WriteString(regexp.QuoteMeta(string(c)))
			continue
		}
		switch c {
		case wildcardEscape:
			escaped = true
		case wildcardAnyChar:
			b.WriteString(".")
		case wildcardAnySequence:
			b.WriteString(".*")
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	if escaped {
		b.WriteString(regexp.QuoteMeta(string(wildcardEscape)))
	}
	return b.String()
}

func compileWildcard(pattern []byte) (vellum.Automaton, error) {
	expr := wildcardToRegexp(pattern)
	re, err := vregexp.New(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "could not compile wildcard %s", pattern)
	}
	return re, nil
}

// wildcardEnumerator returns the cheapest enumerator of a pattern, nil if the
// pattern cannot match.
func wildcardEnumerator(pattern []byte) (termEnumerator, error) {
	typ, literal := ClassifyWildcard(pattern)
	switch typ {
	case WildcardTerm:
		return newSetEnumerator([][]byte{literal}), nil
	case WildcardMatchAll:
		return prefixEnumerator{}, nil
	case WildcardPrefix:
		return prefixEnumerator{prefix: literal}, nil
	case WildcardGeneral:
		a, err := compileWildcard(pattern)
		if err != nil {
			return nil, err
		}
		return automatonEnumerator{automaton: a}, nil
	default:
		return nil, nil
	}
}

var _ search.Filter = (*WildcardFilter)(nil)

// WildcardFilter matches documents containing any term matching a wildcard
// pattern.
type WildcardFilter struct {
	search.FilterBoost

	Field   string
	Pattern []byte
	// ScoredTermsLimit bounds the significance keys the selector retains,
	// a limit less than 1 scores every candidate.
	ScoredTermsLimit int
	Selector         SelectorKind
}

// NewWildcardFilter constructs a new WildcardFilter with the default selector.
func NewWildcardFilter(field string, pattern []byte) *WildcardFilter {
	return &WildcardFilter{
		Field:            field,
		Pattern:          pattern,
		ScoredTermsLimit: DefaultScoredTermsLimit,
		Selector:         SelectByPostingsLength,
	}
}

func (f *WildcardFilter) Kind() search.Kind {
	return search.KindWildcard
}

// Prepare redirects the pattern to the cheapest applicable query.
func (f *WildcardFilter) Prepare(
	ctx context.Context,
	r index.Reader,
	ord search.Order,
	boost float64,
) (search.Prepared, error) {
	if f.Field == "" {
		return search.Empty(), nil
	}

	boost *= f.Boost()
	typ, literal := ClassifyWildcard(f.Pattern)
	switch typ {
	case WildcardTerm:
		return prepareTerm(r, ord, boost, f.Field, literal)
	case WildcardMatchAll, WildcardPrefix:
		return prepareMultiTerm(r, ord, boost, f.Field,
			f.Selector, f.ScoredTermsLimit, prefixEnumerator{prefix: literal})
	case WildcardGeneral:
		a, err := compileWildcard(f.Pattern)
		if err != nil {
			return nil, err
		}
		return prepareMultiTerm(r, ord, boost, f.Field,
			f.Selector, f.ScoredTermsLimit, automatonEnumerator{automaton: a})
	default:
		return search.Empty(), nil
	}
}

func (f *WildcardFilter) Equal(o search.Filter) bool {
	inner, ok := o.(*WildcardFilter)
	if !ok {
		return false
	}
	return f.Field == inner.Field &&
		bytes.Equal(f.Pattern, inner.Pattern) &&
		f.ScoredTermsLimit == inner.ScoredTermsLimit &&
		f.Selector == inner.Selector
}

func (f *WildcardFilter) Hash() uint64 {
	h := newHasher(search.KindWildcard)
	h.string(f.Field)
	h.bytes(f.Pattern)
	h.uint64(uint64(f.ScoredTermsLimit))
	h.uint64(uint64(f.Selector))
	return h.sum()
}

func (f *WildcardFilter) String() string {
	return fmt.Sprintf("wildcard(%s, %s)", f.Field, f.Pattern)
}
