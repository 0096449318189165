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
	"github.com/m3db/m3ninx/postings"
)

// SamePositionIterator filters the documents of a conjunction down to those
// where every source has a position in common. It is not safe for concurrent
// use.
type SamePositionIterator struct {
	docs    postings.Iterator
	sources []postings.PositionsIterator
}

// NewSamePositionIterator returns a same position iterator over docs, which
// must only yield documents every source is positioned at.
func NewSamePositionIterator(
	docs postings.Iterator,
	sources []postings.PositionsIterator,
) *SamePositionIterator {
	return &SamePositionIterator{docs: docs, sources: sources}
}

func (it *SamePositionIterator) Current() postings.ID {
	return it.docs.Current()
}

func (it *SamePositionIterator) Next() bool {
	for it.docs.Next() {
		if it.match() {
			return true
		}
	}
	return false
}

func (it *SamePositionIterator) Seek(target postings.ID) postings.ID {
	curr := it.docs.Current()
	if curr == postings.EOFID || (curr != postings.InvalidID && target <= curr) {
		return curr
	}
	if it.docs.Seek(target) == postings.EOFID {
		return postings.EOFID
	}
	if it.match() {
		return it.docs.Current()
	}
	it.Next()
	return it.docs.Current()
}

func (it *SamePositionIterator) Cost() uint64 {
	return it.docs.Cost()
}

func (it *SamePositionIterator) match() bool {
	cursors := make([]postings.PositionIterator, 0, len(it.sources))
	for _, src := range it.sources {
		cursors = append(cursors, src.Positions())
	}

	target := postings.MinPosition
	for {
		agreed := true
		for _, cursor := range cursors {
			got := cursor.Seek(target)
			if got == postings.PosEOF {
				return false
			}
			if got != target {
				target = got
				agreed = false
				break
			}
		}
		if agreed {
			return true
		}
	}
}
