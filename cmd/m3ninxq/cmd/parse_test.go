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
	"fmt"
	"testing"

	"github.com/m3db/m3ninx/search/query"

	"github.com/stretchr/testify/require"
)

func TestParserParse(t *testing.T) {
	p := parser{selector: query.SelectByPostingsLength, limit: query.DefaultScoredTermsLimit}
	tests := []struct {
		expr     string
		expected string
	}{
		{expr: "body:fox", expected: "term(body, fox)"},
		{expr: "body:qu*", expected: "prefix(body, qu)"},
		{expr: "body:f_x", expected: "wildcard(body, f_x)"},
		{expr: `body:f\_x`, expected: `wildcard(body, f\_x)`},
		{expr: "body:%o*", expected: "wildcard(body, %o*)"},
		{expr: "body:fxo~", expected: "levenshtein(body, fxo, 1)"},
		{expr: "body:fxo~2", expected: "levenshtein(body, fxo, 2)"},
		{expr: "body:{fox, dog}", expected: "terms(body, [fox, dog])"},
		{expr: "body:[a..c)", expected: "range(body, [a, c))"},
		{expr: "body:(*..c]", expected: "range(body, (*, c])"},
		{expr: `body:"quick b* fox"`, expected: `phrase(body, "quick b* fox")`},
		{expr: `body:"{lazy,the} brown"`, expected: `phrase(body, "{lazy|the} brown")`},
		{expr: "same(a:x, b:y)", expected: "same_position(a:x, b:y)"},
		{expr: "  body:fox^2.5 ", expected: "term(body, fox)"},
	}
	for _, test := range tests {
		t.Run(test.expr, func(t *testing.T) {
			f, err := p.parse(test.expr)
			require.NoError(t, err)
			require.Equal(t, test.expected, fmt.Sprint(f))
		})
	}
}

func TestParserParseErrors(t *testing.T) {
	p := parser{}
	tests := []struct {
		name string
		expr string
	}{
		{name: "empty", expr: "  "},
		{name: "missing field", expr: "fox"},
		{name: "empty value", expr: "body:"},
		{name: "empty phrase", expr: `body:" ? "`},
		{name: "distance", expr: "body:fox~3"},
		{name: "boost", expr: "body:fox^loud"},
		{name: "same position missing field", expr: "same(a:x, y)"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := p.parse(test.expr)
			require.Error(t, err)
		})
	}
}

func TestParserBoost(t *testing.T) {
	f, err := parser{}.parse("body:fox^2.5")
	require.NoError(t, err)
	require.Equal(t, 2.5, f.Boost())

	f, err = parser{}.parse("body:fox")
	require.NoError(t, err)
	require.Equal(t, 1.0, f.Boost())
}

func TestParserPhrasePositions(t *testing.T) {
	f, err := parser{}.parse(`body:"? new ? ? york"`)
	require.NoError(t, err)

	parts := f.(*query.PhraseFilter).Parts()
	require.Len(t, parts, 2)
	require.Equal(t, uint32(0), parts[0].Position)
	require.Equal(t, query.TermPart{Term: []byte("new")}, parts[0].Part)
	require.Equal(t, uint32(3), parts[1].Position)
}

func TestParserSelector(t *testing.T) {
	p := parser{selector: query.SelectBySegmentLiveDocs, limit: 4}

	f, err := p.parse("body:qu*")
	require.NoError(t, err)
	prefix := f.(*query.PrefixFilter)
	require.Equal(t, query.SelectBySegmentLiveDocs, prefix.Selector)
	require.Equal(t, 4, prefix.ScoredTermsLimit)

	f, err = p.parse(`body:"qu* fox"`)
	require.NoError(t, err)
	part := f.(*query.PhraseFilter).Parts()[0].Part
	require.Equal(t, query.PrefixPart{Prefix: []byte("qu"), ScoredTermsLimit: 4}, part)
}
