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

package postings

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSliceIterator(t *testing.T) {
	it := NewSliceIterator([]ID{1, 3, 5, 8})
	require.Equal(t, InvalidID, it.Current())
	require.Equal(t, uint64(4), it.Cost())
	require.True(t, it.Next())
	require.Equal(t, ID(1), it.Current())
	require.Equal(t, ID(5), it.Seek(4))
	require.Equal(t, ID(5), it.Seek(2))
	require.True(t, it.Next())
	require.Equal(t, ID(8), it.Current())
	require.False(t, it.Next())
	require.Equal(t, EOFID, it.Current())
	require.Equal(t, EOFID, it.Seek(100))
}

func TestEmptyIterator(t *testing.T) {
	it := EmptyIterator()
	require.False(t, it.Next())
	require.Equal(t, EOFID, it.Current())
	require.Equal(t, EOFID, it.Seek(MinID))
	require.Equal(t, uint64(0), it.Cost())
}

func TestPositionIterator(t *testing.T) {
	it := NewPositionIterator([]uint32{0, 2, 7})
	require.Equal(t, PosInvalid, it.Current())
	require.Equal(t, uint32(2), it.Seek(1))
	require.Equal(t, uint32(2), it.Seek(2))
	require.Equal(t, uint32(7), it.Seek(3))
	require.Equal(t, PosEOF, it.Seek(8))

	it.Reset()
	require.True(t, it.Next())
	require.Equal(t, uint32(0), it.Current())
}

func TestMergePositions(t *testing.T) {
	tests := []struct {
		name     string
		inputs   [][]uint32
		expected []uint32
	}{
		{
			name:     "disjoint",
			inputs:   [][]uint32{{1, 5}, {2, 3}},
			expected: []uint32{1, 2, 3, 5},
		},
		{
			name:     "overlapping",
			inputs:   [][]uint32{{1, 4}, {1, 2, 4}, {9}},
			expected: []uint32{1, 2, 4, 9},
		},
		{
			name:     "empty",
			inputs:   [][]uint32{{}, {}},
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			its := make([]PositionIterator, 0, len(test.inputs))
			for _, in := range test.inputs {
				its = append(its, NewPositionIterator(in))
			}
			merged := MergePositions(its)

			var actual []uint32
			for merged.Next() {
				actual = append(actual, merged.Current())
			}
			require.Equal(t, test.expected, actual)
		})
	}
}
