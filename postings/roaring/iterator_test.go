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

package roaring

import (
	"testing"

	"github.com/m3db/m3ninx/postings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/require"
)

type testPayload [][]uint32

func (p testPayload) Frequency(rank int) uint32   { return uint32(len(p[rank])) }
func (p testPayload) Positions(rank int) []uint32 { return p[rank] }

func TestIterator(t *testing.T) {
	b := roaring.BitmapOf(1, 2, 4, 3)
	iter := NewIterator(b, nil)
	require.Equal(t, postings.InvalidID, iter.Current())
	require.Equal(t, uint64(4), iter.Cost())
	require.True(t, iter.Next())
	require.Equal(t, postings.ID(1), iter.Current())
	require.True(t, iter.Next())
	require.Equal(t, postings.ID(2), iter.Current())
	require.True(t, iter.Next())
	require.Equal(t, postings.ID(3), iter.Current())
	require.True(t, iter.Next())
	require.Equal(t, postings.ID(4), iter.Current())
	require.False(t, iter.Next())
	require.Equal(t, postings.EOFID, iter.Current())
}

func TestIteratorSeek(t *testing.T) {
	b := roaring.BitmapOf(2, 5, 9, 70000)
	iter := NewIterator(b, nil)
	require.Equal(t, postings.ID(5), iter.Seek(3))
	require.Equal(t, postings.ID(5), iter.Seek(1))
	require.Equal(t, postings.ID(70000), iter.Seek(10))
	require.Equal(t, postings.EOFID, iter.Seek(70001))
	require.False(t, iter.Next())
}

func TestIteratorPayload(t *testing.T) {
	b := roaring.BitmapOf(3, 7, 8)
	payload := testPayload{{0}, {1, 4, 6}, {2, 3}}
	iter := NewIterator(b, payload)

	freqs, ok := iter.(postings.FrequencyIterator)
	require.True(t, ok)
	positional, ok := iter.(postings.PositionsIterator)
	require.True(t, ok)

	require.Equal(t, postings.ID(7), iter.Seek(5))
	require.Equal(t, uint32(3), freqs.Frequency())

	pos := positional.Positions()
	require.Equal(t, uint32(4), pos.Seek(2))
	require.True(t, pos.Next())
	require.Equal(t, uint32(6), pos.Current())
	require.False(t, pos.Next())
	require.Equal(t, postings.PosEOF, pos.Current())

	require.True(t, iter.Next())
	require.Equal(t, uint32(2), freqs.Frequency())
}
