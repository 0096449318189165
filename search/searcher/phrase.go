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

// PhrasePosition is a position of a phrase: its offset from the first
// position and the positions source of the iterator matching it.
type PhrasePosition struct {
	Offset uint32
	Source postings.PositionsIterator
}

var _ postings.FrequencyIterator = (*PhraseIterator)(nil)

// PhraseIterator filters the documents of a conjunction down to those where
// the positions of the phrase occur at their offsets. It is not safe for
// concurrent use.
type PhraseIterator struct {
	docs      postings.Iterator
	positions []PhrasePosition
	countAll  bool
	freq      uint32
	cursors   []postings.PositionIterator
}

// NewPhraseIterator returns a phrase iterator over docs, which must only
// yield documents every position source is positioned at. The first position
// must have offset 0 and offsets must be ascending. When countAll is false
// matching stops at the first window of a document, otherwise every window is
// counted into the frequency.
func NewPhraseIterator(
	docs postings.Iterator,
	positions []PhrasePosition,
	countAll bool,
) *PhraseIterator {
	return &PhraseIterator{
		docs:      docs,
		positions: positions,
		countAll:  countAll,
		cursors:   make([]postings.PositionIterator, len(positions)),
	}
}

func (it *PhraseIterator) Current() postings.ID {
	return it.docs.Current()
}

func (it *PhraseIterator) Next() bool {
	for it.docs.Next() {
		if it.match() {
			return true
		}
	}
	it.freq = 0
	return false
}

func (it *PhraseIterator) Seek(target postings.ID) postings.ID {
	curr := it.docs.Current()
	if curr == postings.EOFID || (curr != postings.InvalidID && target <= curr) {
		return curr
	}
	if it.docs.Seek(target) == postings.EOFID {
		it.freq = 0
		return postings.EOFID
	}
	if it.match() {
		return it.docs.Current()
	}
	it.Next()
	return it.docs.Current()
}

func (it *PhraseIterator) Cost() uint64 {
	return it.docs.Cost()
}

// Frequency returns the number of windows matched in the current document.
func (it *PhraseIterator) Frequency() uint32 {
	return it.freq
}

func (it *PhraseIterator) match() bool {
	for i, p := range it.positions {
		it.cursors[i] = p.Source.Positions()
	}

	var (
		lead = it.cursors[0]
		freq uint32
	)
lead:
	for lead.Next() {
		base := uint64(lead.Current())
		for i, cursor := range it.cursors[1:] {
			// Windows past the last valid position never match, nor do those
			// of any later lead position.
			target := base + uint64(it.positions[i+1].Offset)
			if target >= uint64(postings.PosEOF) {
				break lead
			}
			got := cursor.Seek(uint32(target))
			if got == postings.PosEOF {
				break lead
			}
			if uint64(got) != target {
				continue lead
			}
		}
		freq++
		if !it.countAll {
			break
		}
	}

	it.freq = freq
	return freq > 0
}
