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

package query

import (
	"bytes"
	"context"
	"fmt"

	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/search"
)

var _ search.Filter = (*PrefixFilter)(nil)

// PrefixFilter matches documents containing any term starting with a
// prefix. An empty prefix matches every term of the field.
type PrefixFilter struct {
	search.FilterBoost

	Field  string
	Prefix []byte
	// ScoredTermsLimit bounds the significance keys the selector retains,
	// a limit less than 1 scores every candidate.
	ScoredTermsLimit int
	Selector         SelectorKind
}

// NewPrefixFilter constructs a new PrefixFilter with the default selector.
func NewPrefixFilter(field string, prefix []byte) *PrefixFilter {
	return &PrefixFilter{
		Field:            field,
		Prefix:           prefix,
		ScoredTermsLimit: DefaultScoredTermsLimit,
		Selector:         SelectByPostingsLength,
	}
}

func (f *PrefixFilter) Kind() search.Kind {
	return search.KindPrefix
}

func (f *PrefixFilter) Prepare(
	ctx context.Context,
	r index.Reader,
	ord search.Order,
	boost float64,
) (search.Prepared, error) {
	if f.Field == "" {
		return search.Empty(), nil
	}
	return prepareMultiTerm(r, ord, f.Boost()*boost, f.Field,
		f.Selector, f.ScoredTermsLimit, prefixEnumerator{prefix: f.Prefix})
}

func (f *PrefixFilter) Equal(o search.Filter) bool {
	inner, ok := o.(*PrefixFilter)
	if !ok {
		return false
	}
	return f.Field == inner.Field &&
		bytes.Equal(f.Prefix, inner.Prefix) &&
		f.ScoredTermsLimit == inner.ScoredTermsLimit &&
		f.Selector == inner.Selector
}

func (f *PrefixFilter) Hash() uint64 {
	h := newHasher(search.KindPrefix)
	h.string(f.Field)
	h.bytes(f.Prefix)
	h.uint64(uint64(f.ScoredTermsLimit))
	h.uint64(uint64(f.Selector))
	return h.sum()
}

func (f *PrefixFilter) String() string {
	return fmt.Sprintf("prefix(%s, %s)", f.Field, f.Prefix)
}
