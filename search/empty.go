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

package search

import (
	"context"

	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/postings"
)

var (
	emptyPrepared Prepared    = emptyQuery{}
	emptyIterator DocIterator = emptyDocIterator{}
)

// Empty returns the prepared query matching nothing.
func Empty() Prepared {
	return emptyPrepared
}

// IsEmpty reports whether p is the prepared query matching nothing.
func IsEmpty(p Prepared) bool {
	return p == emptyPrepared
}

// EmptyIterator returns the exhausted document iterator.
func EmptyIterator() DocIterator {
	return emptyIterator
}

type emptyQuery struct{}

func (emptyQuery) Boost() float64 { return 1 }

func (emptyQuery) Execute(context.Context, index.SegmentReader, Order) (DocIterator, error) {
	return emptyIterator, nil
}

type emptyDocIterator struct{}

func (emptyDocIterator) Current() postings.ID         { return postings.EOFID }
func (emptyDocIterator) Next() bool                   { return false }
func (emptyDocIterator) Seek(postings.ID) postings.ID { return postings.EOFID }
func (emptyDocIterator) Cost() uint64                 { return 0 }
func (emptyDocIterator) Score() float64               { return 0 }

type scoredIterator struct {
	postings.Iterator

	score ScoreFunc
}

// NewScoredIterator attaches a score to a postings iterator. A nil score
// scores every document 0.
func NewScoredIterator(it postings.Iterator, score ScoreFunc) DocIterator {
	return &scoredIterator{Iterator: it, score: score}
}

func (it *scoredIterator) Score() float64 {
	if it.score == nil {
		return 0
	}
	return it.score()
}
