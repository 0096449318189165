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
	"testing"

	"github.com/m3db/m3ninx/doc"
	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/index/segment/builder"
	"github.com/m3db/m3ninx/search"

	"github.com/stretchr/testify/require"
)

func pairs(values ...[2]string) []doc.Document {
	docs := make([]doc.Document, 0, len(values))
	for _, v := range values {
		docs = append(docs, doc.Document{
			ID: []byte(v[0] + "/" + v[1]),
			Fields: doc.Fields{
				{Name: []byte("a"), Value: []byte(v[0])},
				{Name: []byte("b"), Value: []byte(v[1])},
			},
		})
	}
	return docs
}

func newPairsReader(t *testing.T) index.Reader {
	opts := builder.NewOptions()
	return index.NewReader(
		newSegment(t, opts, 1, pairs(
			[2]string{"p q r s t x", "p q r s t y"},
			[2]string{"p q r s t x", "p q r s t u y"},
			[2]string{"x", "y z"},
		)...),
		newSegment(t, opts, 2, pairs(
			[2]string{"x", "z"},
		)...),
	)
}

func TestSamePositionFilter(t *testing.T) {
	r := newPairsReader(t)

	tests := []struct {
		name     string
		filter   *SamePositionFilter
		expected [][2]int
	}{
		{
			name: "pairs",
			filter: NewSamePositionFilter(
				FieldTerm{Field: "a", Term: []byte("x")},
				FieldTerm{Field: "b", Term: []byte("y")},
			),
			expected: [][2]int{{0, 1}, {0, 3}},
		},
		{
			name: "same field",
			filter: NewSamePositionFilter(
				FieldTerm{Field: "a", Term: []byte("x")},
				FieldTerm{Field: "a", Term: []byte("x")},
			),
			expected: [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 1}},
		},
		{
			name: "single",
			filter: NewSamePositionFilter(
				FieldTerm{Field: "b", Term: []byte("z")},
			),
			expected: [][2]int{{0, 3}, {1, 1}},
		},
		{
			name: "missing term",
			filter: NewSamePositionFilter(
				FieldTerm{Field: "a", Term: []byte("x")},
				FieldTerm{Field: "b", Term: []byte("w")},
			),
		},
		{
			name: "missing field",
			filter: NewSamePositionFilter(
				FieldTerm{Field: "a", Term: []byte("x")},
				FieldTerm{Field: "c", Term: []byte("y")},
			),
		},
		{
			name: "empty field name",
			filter: NewSamePositionFilter(
				FieldTerm{Field: "", Term: []byte("x")},
			),
		},
		{
			name:   "no terms",
			filter: NewSamePositionFilter(),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, matches(t, r, test.filter))
		})
	}
}

func TestSamePositionScores(t *testing.T) {
	r := newPairsReader(t)

	f := NewSamePositionFilter(
		FieldTerm{Field: "a", Term: []byte("x")},
		FieldTerm{Field: "b", Term: []byte("y")},
	)
	f.SetBoost(2)

	// x occurs in 4 documents and y in 3, every frequency is 1.
	hits := run(t, r, f, scoring)
	require.Equal(t, []hit{
		{seg: 0, id: 1, score: 2 * (4 + 3)},
		{seg: 0, id: 3, score: 2 * (4 + 3)},
	}, hits)

	p := prepare(t, r, f, search.Order{}, 3)
	require.Equal(t, 6.0, p.Boost())
}

func TestSamePositionEqualAndHash(t *testing.T) {
	a := NewSamePositionFilter(FieldTerm{Field: "a", Term: []byte("x")}, FieldTerm{Field: "b", Term: []byte("y")})
	b := NewSamePositionFilter(FieldTerm{Field: "a", Term: []byte("x")}, FieldTerm{Field: "b", Term: []byte("y")})
	c := NewSamePositionFilter(FieldTerm{Field: "b", Term: []byte("y")}, FieldTerm{Field: "a", Term: []byte("x")})

	require.True(t, a.Equal(b))
	require.Equal(t, a.Hash(), b.Hash())
	require.False(t, a.Equal(c))
	require.Equal(t, "same_position(a:x, b:y)", a.String())
}
