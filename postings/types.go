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
	"math"
)

// ID is the unique identifier of a document within a segment.
type ID uint32

const (
	// InvalidID is the value an iterator reports before it is advanced.
	InvalidID ID = 0
	// MinID is the smallest valid document ID.
	MinID ID = 1
	// EOFID is the value an iterator reports once it is exhausted.
	EOFID ID = math.MaxUint32
)

const (
	// MinPosition is the smallest term position within a document.
	MinPosition uint32 = 0
	// PosInvalid is the value a position iterator reports before it is advanced.
	PosInvalid uint32 = math.MaxUint32
	// PosEOF is the value a position iterator reports once it is exhausted.
	PosEOF uint32 = math.MaxUint32 - 1
)

// Iterator is a cursor over an ascending sequence of document IDs.
type Iterator interface {
	// Current returns the current document ID, InvalidID before the first
	// call to Next and EOFID once the iterator is exhausted.
	Current() ID

	// Next advances the iterator and reports whether a document is available.
	Next() bool

	// Seek advances the iterator to the first document greater than or equal
	// to target and returns it, or EOFID if no such document exists. Seeking
	// backwards is a no-op that returns the current document.
	Seek(target ID) ID

	// Cost returns an upper bound on the number of documents the iterator yields.
	Cost() uint64
}

// FrequencyIterator is an Iterator able to report how often the matched
// element occurs in the current document.
type FrequencyIterator interface {
	Iterator

	// Frequency returns the number of occurrences within the current document.
	Frequency() uint32
}

// PositionsIterator is an Iterator able to report the term positions of the
// current document.
type PositionsIterator interface {
	Iterator

	// Positions returns a fresh position cursor over the current document.
	Positions() PositionIterator
}

// PositionIterator is a cursor over the ascending term positions of a document.
type PositionIterator interface {
	// Current returns the current position, PosInvalid before the first call
	// to Next and PosEOF once exhausted.
	Current() uint32

	// Next advances to the next position.
	Next() bool

	// Seek advances to the first position greater than or equal to target and
	// returns it, or PosEOF if no such position exists.
	Seek(target uint32) uint32

	// Reset rewinds the cursor to before the first position.
	Reset()
}
