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

package searcher

import (
	"testing"

	"github.com/m3db/m3ninx/postings"
	"github.com/m3db/m3ninx/search"

	"github.com/stretchr/testify/require"
)

func TestConjunction(t *testing.T) {
	tests := []struct {
		name     string
		inputs   [][]postings.ID
		expected []postings.ID
	}{
		{
			name:     "single",
			inputs:   [][]postings.ID{{1, 2, 3}},
			expected: []postings.ID{1, 2, 3},
		},
		{
			name:     "overlapping",
			inputs:   [][]postings.ID{{1, 2, 3, 5, 8}, {2, 3, 8, 9}, {3, 4, 8}},
			expected: []postings.ID{3, 8},
		},
		{
			name:     "disjoint",
			inputs:   [][]postings.ID{{1, 3, 5}, {2, 4, 6}},
			expected: nil,
		},
		{
			name:     "one empty",
			inputs:   [][]postings.ID{{1, 3, 5}, {}},
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			its := make([]postings.Iterator, 0, len(test.inputs))
			for _, in := range test.inputs {
				its = append(its, postings.NewSliceIterator(in))
			}
			require.Equal(t, test.expected, collect(t, NewConjunction(its)))
		})
	}
}

func TestConjunctionSeek(t *testing.T) {
	conj := NewConjunction([]postings.Iterator{
		postings.NewSliceIterator([]postings.ID{1, 4, 6, 10, 12}),
		postings.NewSliceIterator([]postings.ID{2, 4, 7, 10, 12}),
	})
	require.Equal(t, uint64(5), conj.Cost())
	require.Equal(t, postings.ID(10), conj.Seek(5))
	require.Equal(t, postings.ID(10), conj.Seek(3))
	require.True(t, conj.Next())
	require.Equal(t, postings.ID(12), conj.Current())
	require.Equal(t, postings.EOFID, conj.Seek(13))
	require.False(t, conj.Next())
}

func TestConjunctionVisit(t *testing.T) {
	a, b := newDocs(1, 2), newDocs(2, 3)
	conj := NewConjunction([]*positional{a, b})
	require.True(t, conj.Next())
	require.Equal(t, postings.ID(2), conj.Current())

	var visited int
	conj.Visit(func(p *positional) bool {
		require.Equal(t, postings.ID(2), p.Current())
		visited++
		return true
	})
	require.Equal(t, 2, visited)
}

func TestDisjunction(t *testing.T) {
	tests := []struct {
		name     string
		inputs   [][]postings.ID
		expected []postings.ID
	}{
		{
			name:     "empty",
			inputs:   nil,
			expected: nil,
		},
		{
			name:     "overlapping",
			inputs:   [][]postings.ID{{1, 3, 5}, {3, 4}, {5, 9}},
			expected: []postings.ID{1, 3, 4, 5, 9},
		},
		{
			name:     "with empty",
			inputs:   [][]postings.ID{{}, {2, 7}},
			expected: []postings.ID{2, 7},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			its := make([]postings.Iterator, 0, len(test.inputs))
			for _, in := range test.inputs {
				its = append(its, postings.NewSliceIterator(in))
			}
			require.Equal(t, test.expected, collect(t, NewDisjunction(its)))
		})
	}
}

func TestDisjunctionSeek(t *testing.T) {
	disj := NewDisjunction([]postings.Iterator{
		postings.NewSliceIterator([]postings.ID{1, 6, 20}),
		postings.NewSliceIterator([]postings.ID{3, 8}),
	})
	require.Equal(t, uint64(5), disj.Cost())
	require.Equal(t, postings.ID(6), disj.Seek(4))
	require.True(t, disj.Next())
	require.Equal(t, postings.ID(8), disj.Current())
	require.Equal(t, postings.ID(20), disj.Seek(9))
	require.Equal(t, postings.EOFID, disj.Seek(21))
}

func TestScoredDisjunctionSumsMatchingScores(t *testing.T) {
	a, b, c := newDocs(1, 2), newDocs(2, 3), newDocs(2)
	a.score, b.score, c.score = 1, 2, 4

	it := NewScoredDisjunction([]search.DocIterator{a, b, c})
	var (
		ids    []postings.ID
		scores []float64
	)
	for it.Next() {
		ids = append(ids, it.Current())
		scores = append(scores, it.Score())
	}
	require.Equal(t, []postings.ID{1, 2, 3}, ids)
	require.Equal(t, []float64{1, 7, 2}, scores)
}

func TestPositionsDisjunctionMergesPositions(t *testing.T) {
	a := newPositional(map[postings.ID][]uint32{1: {0, 4}, 2: {1}})
	b := newPositional(map[postings.ID][]uint32{1: {2}})

	it := NewPositionsDisjunction([]postings.PositionsIterator{a, b})
	require.True(t, it.Next())
	pos := it.Positions()

	var actual []uint32
	for pos.Next() {
		actual = append(actual, pos.Current())
	}
	require.Equal(t, []uint32{0, 2, 4}, actual)
}
