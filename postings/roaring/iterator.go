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
	"github.com/m3db/m3ninx/postings"

	"github.com/RoaringBitmap/roaring/v2"
)

// Payload supplies the occurrence data of a postings list, addressed by the
// rank of a document within the list.
type Payload interface {
	// Frequency returns the number of occurrences in the document at rank.
	Frequency(rank int) uint32

	// Positions returns the ascending positions within the document at rank.
	Positions(rank int) []uint32
}

var (
	_ postings.Iterator          = (*iterator)(nil)
	_ postings.FrequencyIterator = (*payloadIterator)(nil)
	_ postings.PositionsIterator = (*payloadIterator)(nil)
)

type iterator struct {
	bitmap *roaring.Bitmap
	iter   roaring.IntPeekable
	curr   postings.ID
}

// NewIterator returns a postings iterator over the bitmap. When payload is
// non-nil the iterator also implements postings.FrequencyIterator and
// postings.PositionsIterator.
func NewIterator(b *roaring.Bitmap, payload Payload) postings.Iterator {
	it := iterator{
		bitmap: b,
		iter:   b.Iterator(),
		curr:   postings.InvalidID,
	}
	if payload == nil {
		return &it
	}
	return &payloadIterator{iterator: it, payload: payload}
}

func (it *iterator) Current() postings.ID {
	return it.curr
}

func (it *iterator) Next() bool {
	if it.curr == postings.EOFID {
		return false
	}
	if !it.iter.HasNext() {
		it.curr = postings.EOFID
		return false
	}
	it.curr = postings.ID(it.iter.Next())
	return true
}

func (it *iterator) Seek(target postings.ID) postings.ID {
	if it.curr == postings.EOFID {
		return it.curr
	}
	if it.curr != postings.InvalidID && target <= it.curr {
		return it.curr
	}
	it.iter.AdvanceIfNeeded(uint32(target))
	it.Next()
	return it.curr
}

func (it *iterator) Cost() uint64 {
	return it.bitmap.GetCardinality()
}

type payloadIterator struct {
	iterator

	payload Payload
	rankFor postings.ID
	rank    int
}

func (it *payloadIterator) currentRank() int {
	if it.rankFor != it.curr {
		// Rank counts the values less than or equal to curr.
		it.rank = int(it.bitmap.Rank(uint32(it.curr))) - 1
		it.rankFor = it.curr
	}
	return it.rank
}

func (it *payloadIterator) Frequency() uint32 {
	if it.curr == postings.InvalidID || it.curr == postings.EOFID {
		return 0
	}
	return it.payload.Frequency(it.currentRank())
}

func (it *payloadIterator) Positions() postings.PositionIterator {
	if it.curr == postings.InvalidID || it.curr == postings.EOFID {
		return postings.NewPositionIterator(nil)
	}
	return postings.NewPositionIterator(it.payload.Positions(it.currentRank()))
}
