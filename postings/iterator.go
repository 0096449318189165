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
	"sort"
)

type emptyIterator struct{}

var emptyIter Iterator = emptyIterator{}

// EmptyIterator returns an iterator that yields no documents.
func EmptyIterator() Iterator { return emptyIter }

func (emptyIterator) Current() ID       { return EOFID }
func (emptyIterator) Next() bool        { return false }
func (emptyIterator) Seek(target ID) ID { return EOFID }
func (emptyIterator) Cost() uint64      { return 0 }

type sliceIterator struct {
	ids  []ID
	idx  int
	curr ID
}

// NewSliceIterator returns an iterator over the given IDs, which must be sorted
// in ascending order without duplicates.
func NewSliceIterator(ids []ID) Iterator {
	return &sliceIterator{ids: ids, idx: -1, curr: InvalidID}
}

func (it *sliceIterator) Current() ID { return it.curr }

func (it *sliceIterator) Next() bool {
	if it.curr == EOFID {
		return false
	}
	it.idx++
	if it.idx >= len(it.ids) {
		it.curr = EOFID
		return false
	}
	it.curr = it.ids[it.idx]
	return true
}

func (it *sliceIterator) Seek(target ID) ID {
	if it.curr != InvalidID && target <= it.curr {
		return it.curr
	}
	start := it.idx + 1
	n := sort.Search(len(it.ids)-start, func(i int) bool {
		return it.ids[start+i] >= target
	})
	it.idx = start + n
	if it.idx >= len(it.ids) {
		it.curr = EOFID
		return it.curr
	}
	it.curr = it.ids[it.idx]
	return it.curr
}

func (it *sliceIterator) Cost() uint64 { return uint64(len(it.ids)) }

type positionIterator struct {
	positions []uint32
	idx       int
	curr      uint32
}

// NewPositionIterator returns a position cursor over the given positions, which
// must be sorted in ascending order.
func NewPositionIterator(positions []uint32) PositionIterator {
	return &positionIterator{positions: positions, idx: -1, curr: PosInvalid}
}

func (it *positionIterator) Current() uint32 { return it.curr }

func (it *positionIterator) Next() bool {
	if it.curr == PosEOF {
		return false
	}
	it.idx++
	if it.idx >= len(it.positions) {
		it.curr = PosEOF
		return false
	}
	it.curr = it.positions[it.idx]
	return true
}

func (it *positionIterator) Seek(target uint32) uint32 {
	if it.curr != PosInvalid && it.curr >= target {
		return it.curr
	}
	for it.Next() {
		if it.curr >= target {
			return it.curr
		}
	}
	return PosEOF
}

func (it *positionIterator) Reset() {
	it.idx = -1
	it.curr = PosInvalid
}

// MergePositions returns a position cursor over the sorted union of the given
// cursors. Each cursor is consumed from its current state.
func MergePositions(its []PositionIterator) PositionIterator {
	if len(its) == 1 {
		return its[0]
	}
	var merged []uint32
	for _, it := range its {
		if c := it.Current(); c != PosInvalid && c != PosEOF {
			merged = append(merged, c)
		}
		for it.Next() {
			merged = append(merged, it.Current())
		}
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i] < merged[j] })
	out := merged[:0]
	for _, p := range merged {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	return NewPositionIterator(out)
}
