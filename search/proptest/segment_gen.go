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

package proptest

import (
	"context"
	"sort"

	"github.com/m3db/m3ninx/doc"
	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/index/segment"
	"github.com/m3db/m3ninx/index/segment/builder"
	"github.com/m3db/m3ninx/search"
	"github.com/m3db/m3ninx/search/executor"
)

// newReader builds one segment per distinct value of the layout, each with
// the corpus documents assigned to it in corpus order. Documents past the
// end of the layout go to the first segment.
func newReader(layout []int) (index.Reader, error) {
	groups := make(map[int][]doc.Document)
	for i, d := range testCorpus.docs {
		var seg int
		if i < len(layout) {
			seg = layout[i]
		}
		groups[seg] = append(groups[seg], d)
	}
	keys := make([]int, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	b := builder.NewBuilder(builder.NewOptions())
	segs := make([]index.SegmentReader, 0, len(keys))
	for _, k := range keys {
		if err := b.InsertBatch(groups[k]); err != nil {
			return nil, err
		}
		seg, err := b.Seal(segment.ID(k + 1))
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
	}
	return index.NewReader(segs...), nil
}

// newSingleSegmentReader returns a reader over a single segment of the
// whole corpus.
func newSingleSegmentReader() (index.Reader, error) {
	return newReader(make([]int, len(testCorpus.docs)))
}

// match is a matched document by its ID.
type match struct {
	id    string
	score float64
}

// execute runs the filter and returns its matches ordered by document ID.
func execute(e *executor.Executor, r index.Reader, f search.Filter) ([]match, error) {
	res, err := e.Execute(context.Background(), r, f)
	if err != nil {
		return nil, err
	}
	segs := r.Segments()
	matches := make([]match, 0, len(res.Hits))
	for _, h := range res.Hits {
		d, err := segs[h.Segment].Document(h.ID)
		if err != nil {
			return nil, err
		}
		matches = append(matches, match{id: string(d.ID), score: h.Score})
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].id < matches[j].id
	})
	return matches, nil
}
