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
	"sort"
	"testing"

	"github.com/m3db/m3ninx/postings"
	"github.com/m3db/m3ninx/search"

	"github.com/stretchr/testify/require"
)

// positional is a postings iterator with positions backed by a map.
type positional struct {
	postings.Iterator

	positions map[postings.ID][]uint32
	score     float64
}

func newPositional(positions map[postings.ID][]uint32) *positional {
	ids := make([]postings.ID, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return &positional{
		Iterator:  postings.NewSliceIterator(ids),
		positions: positions,
	}
}

func newDocs(ids ...postings.ID) *positional {
	positions := make(map[postings.ID][]uint32, len(ids))
	for _, id := range ids {
		positions[id] = nil
	}
	return newPositional(positions)
}

func (p *positional) Positions() postings.PositionIterator {
	return postings.NewPositionIterator(p.positions[p.Current()])
}

func (p *positional) Score() float64 {
	return p.score
}

func collect(t *testing.T, it postings.Iterator) []postings.ID {
	var ids []postings.ID
	for it.Next() {
		ids = append(ids, it.Current())
	}
	require.Equal(t, postings.EOFID, it.Current())
	return ids
}

var (
	_ postings.PositionsIterator = (*positional)(nil)
	_ search.DocIterator         = (*positional)(nil)
)
