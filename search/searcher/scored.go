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
	"github.com/m3db/m3ninx/search"
)

// NewScoredDisjunction returns the union of the iterators scored by the sum
// of the scores of the sub iterators positioned at the current document.
func NewScoredDisjunction(its []search.DocIterator) search.DocIterator {
	switch len(its) {
	case 0:
		return search.EmptyIterator()
	case 1:
		return its[0]
	}
	return &scoredDisjunction{Disjunction: NewDisjunction(its)}
}

type scoredDisjunction struct {
	*Disjunction[search.DocIterator]
}

func (d *scoredDisjunction) Score() float64 {
	var score float64
	d.Visit(func(it search.DocIterator) bool {
		score += it.Score()
		return true
	})
	return score
}

// NewPositionsDisjunction returns the union of positional iterators whose
// position cursor merges the positions of every sub iterator at the current
// document.
func NewPositionsDisjunction(its []postings.PositionsIterator) postings.PositionsIterator {
	if len(its) == 1 {
		return its[0]
	}
	return &positionsDisjunction{Disjunction: NewDisjunction(its)}
}

type positionsDisjunction struct {
	*Disjunction[postings.PositionsIterator]
}

func (d *positionsDisjunction) Positions() postings.PositionIterator {
	var cursors []postings.PositionIterator
	d.Visit(func(it postings.PositionsIterator) bool {
		cursors = append(cursors, it.Positions())
		return true
	})
	if len(cursors) == 0 {
		return postings.NewPositionIterator(nil)
	}
	return postings.MergePositions(cursors)
}
