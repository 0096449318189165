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

package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/m3db/m3ninx/search"
	"github.com/m3db/m3ninx/search/query"
)

var (
	errEmptyExpression = errors.New("empty filter expression")
	errEmptyValue      = errors.New("empty filter value")
	errEmptyPhrase     = errors.New("phrase has no terms")
)

type valueKind int

const (
	valueTerm valueKind = iota
	valuePrefix
	valueWildcard
	valueFuzzy
	valueSet
	valueRange
)

// value is a parsed term expression, usable as a filter or a phrase part.
type value struct {
	kind     valueKind
	term     []byte
	distance uint8
	terms    [][]byte
	rng      query.Range
}

// parser turns filter expressions into filters. Multi term filters select
// the terms they score with the configured selector and limit.
//
//	field:term            term
//	field:pre*            prefix
//	field:w%ld_card       wildcard, \ escapes % and _
//	field:term~2          levenshtein, distance 1 when omitted
//	field:{a,b,c}         any term of a set
//	field:[a..b)          range, * for an unbounded side
//	field:"a b* ? c"      phrase, ? skips a position
//	same(f:a, g:b)        terms at the same position
//
// Any expression may end with ^boost.
type parser struct {
	selector query.SelectorKind
	limit    int
}

func (p parser) parse(expr string) (search.Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, errEmptyExpression
	}
	expr, boost, err := splitBoost(expr)
	if err != nil {
		return nil, err
	}

	var f search.Filter
	if strings.HasPrefix(expr, "same(") && strings.HasSuffix(expr, ")") {
		f, err = p.parseSamePosition(expr[len("same(") : len(expr)-1])
	} else {
		f, err = p.parseField(expr)
	}
	if err != nil {
		return nil, err
	}
	if boost != nil {
		f.(interface{ SetBoost(float64) }).SetBoost(*boost)
	}
	return f, nil
}

func splitBoost(expr string) (string, *float64, error) {
	idx := strings.LastIndexByte(expr, '^')
	if idx < 0 || strings.ContainsAny(expr[idx:], "\"])}") {
		return expr, nil, nil
	}
	boost, err := strconv.ParseFloat(expr[idx+1:], 64)
	if err != nil {
		return "", nil, fmt.Errorf("invalid boost %q: %v", expr[idx+1:], err)
	}
	if boost < 0 {
		return "", nil, fmt.Errorf("negative boost: %v", boost)
	}
	return expr[:idx], &boost, nil
}

func splitField(expr string) (string, string, error) {
	idx := strings.IndexByte(expr, ':')
	if idx <= 0 {
		return "", "", fmt.Errorf("missing field in %q", expr)
	}
	return expr[:idx], expr[idx+1:], nil
}

func (p parser) parseSamePosition(expr string) (search.Filter, error) {
	var terms []query.FieldTerm
	for _, clause := range strings.Split(expr, ",") {
		field, term, err := splitField(strings.TrimSpace(clause))
		if err != nil {
			return nil, err
		}
		if term == "" {
			return nil, errEmptyValue
		}
		terms = append(terms, query.FieldTerm{Field: field, Term: []byte(term)})
	}
	return query.NewSamePositionFilter(terms...), nil
}

func (p parser) parseField(expr string) (search.Filter, error) {
	field, rest, err := splitField(expr)
	if err != nil {
		return nil, err
	}
	if len(rest) >= 2 && strings.HasPrefix(rest, `"`) && strings.HasSuffix(rest, `"`) {
		return p.parsePhrase(field, rest[1:len(rest)-1])
	}
	v, err := parseValue(rest)
	if err != nil {
		return nil, err
	}
	return p.filter(field, v), nil
}

func (p parser) parsePhrase(field, body string) (search.Filter, error) {
	var (
		f   = query.NewPhraseFilter(field)
		inc uint32
	)
	for _, tok := range strings.Fields(body) {
		if tok == "?" {
			inc++
			continue
		}
		v, err := parseValue(tok)
		if err != nil {
			return nil, err
		}
		if f.Empty() {
			inc = 0
		}
		f.Push(p.part(v), inc)
		inc = 1
	}
	if f.Empty() {
		return nil, errEmptyPhrase
	}
	return f, nil
}

func parseValue(s string) (value, error) {
	switch {
	case s == "":
		return value{}, errEmptyValue
	case len(s) >= 2 && s[0] == '{' && s[len(s)-1] == '}':
		var terms [][]byte
		for _, t := range strings.Split(s[1:len(s)-1], ",") {
			if t = strings.TrimSpace(t); t != "" {
				terms = append(terms, []byte(t))
			}
		}
		return value{kind: valueSet, terms: terms}, nil
	case isRange(s):
		return parseRange(s)
	}

	if idx := strings.LastIndexByte(s, '~'); idx > 0 {
		distance := uint64(1)
		if d := s[idx+1:]; d != "" {
			var err error
			if distance, err = strconv.ParseUint(d, 10, 8); err != nil {
				return value{}, fmt.Errorf("invalid edit distance %q: %v", d, err)
			}
		}
		if distance > query.MaxLevenshteinDistance {
			return value{}, fmt.Errorf("edit distance %d exceeds %d", distance, query.MaxLevenshteinDistance)
		}
		return value{kind: valueFuzzy, term: []byte(s[:idx]), distance: uint8(distance)}, nil
	}

	if prefix := strings.TrimSuffix(s, "*"); prefix != s && !strings.ContainsAny(prefix, `*%_\`) {
		return value{kind: valuePrefix, term: []byte(prefix)}, nil
	}
	if strings.ContainsAny(s, `%_\`) {
		return value{kind: valueWildcard, term: []byte(s)}, nil
	}
	return value{kind: valueTerm, term: []byte(s)}, nil
}

func isRange(s string) bool {
	return len(s) >= 4 &&
		(s[0] == '[' || s[0] == '(') &&
		(s[len(s)-1] == ']' || s[len(s)-1] == ')') &&
		strings.Contains(s, "..")
}

func parseRange(s string) (value, error) {
	bounds := strings.SplitN(s[1:len(s)-1], "..", 2)
	lower := parseBound(bounds[0], s[0] == '[')
	upper := parseBound(bounds[1], s[len(s)-1] == ']')
	return value{kind: valueRange, rng: query.Range{Min: lower, Max: upper}}, nil
}

func parseBound(s string, inclusive bool) query.Bound {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || s == "*":
		return query.Unbounded()
	case inclusive:
		return query.Inclusive([]byte(s))
	default:
		return query.Exclusive([]byte(s))
	}
}

func (p parser) filter(field string, v value) search.Filter {
	switch v.kind {
	case valuePrefix:
		f := query.NewPrefixFilter(field, v.term)
		f.Selector, f.ScoredTermsLimit = p.selector, p.limit
		return f
	case valueWildcard:
		f := query.NewWildcardFilter(field, v.term)
		f.Selector, f.ScoredTermsLimit = p.selector, p.limit
		return f
	case valueFuzzy:
		f := query.NewLevenshteinFilter(field, v.term, v.distance)
		f.Selector, f.ScoredTermsLimit = p.selector, p.limit
		return f
	case valueSet:
		f := query.NewTermsFilter(field, v.terms...)
		f.Selector, f.ScoredTermsLimit = p.selector, p.limit
		return f
	case valueRange:
		f := query.NewRangeFilter(field, v.rng.Min, v.rng.Max)
		f.Selector, f.ScoredTermsLimit = p.selector, p.limit
		return f
	default:
		return query.NewTermFilter(field, v.term)
	}
}

func (p parser) part(v value) query.PhrasePart {
	switch v.kind {
	case valuePrefix:
		return query.PrefixPart{Prefix: v.term, ScoredTermsLimit: p.limit}
	case valueWildcard:
		return query.WildcardPart{Pattern: v.term, ScoredTermsLimit: p.limit}
	case valueFuzzy:
		return query.LevenshteinPart{Term: v.term, MaxDistance: v.distance, ScoredTermsLimit: p.limit}
	case valueSet:
		return query.SetPart{Terms: v.terms}
	case valueRange:
		return query.RangePart{Range: v.rng, ScoredTermsLimit: p.limit}
	default:
		return query.TermPart{Term: v.term}
	}
}
