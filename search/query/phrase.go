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
	"context"
	"sort"
	"strings"

	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/postings"
	"github.com/m3db/m3ninx/search"
	"github.com/m3db/m3ninx/search/searcher"
)

// PhraseEntry is a part of a phrase at a position.
type PhraseEntry struct {
	Position uint32
	Part     PhrasePart
}

var _ search.Filter = (*PhraseFilter)(nil)

// PhraseFilter matches documents where the parts of a phrase occur at their
// relative positions. Only the differences between positions are significant.
type PhraseFilter struct {
	search.FilterBoost

	Field   string
	entries []PhraseEntry
}

// NewPhraseFilter constructs a new empty PhraseFilter on the field.
func NewPhraseFilter(field string) *PhraseFilter {
	return &PhraseFilter{Field: field}
}

// Insert sets the part at the position, replacing any part already there.
func (f *PhraseFilter) Insert(pos uint32, part PhrasePart) *PhraseFilter {
	i := sort.Search(len(f.entries), func(i int) bool {
		return f.entries[i].Position >= pos
	})
	if i < len(f.entries) && f.entries[i].Position == pos {
		f.entries[i].Part = part
		return f
	}
	f.entries = append(f.entries, PhraseEntry{})
	copy(f.entries[i+1:], f.entries[i:])
	f.entries[i] = PhraseEntry{Position: pos, Part: part}
	return f
}

// Push appends the part increment positions after the last part, or at
// increment for the first part.
func (f *PhraseFilter) Push(part PhrasePart, increment uint32) *PhraseFilter {
	pos := increment
	if n := len(f.entries); n > 0 {
		pos += f.entries[n-1].Position
	}
	return f.Insert(pos, part)
}

// Parts returns the parts ordered by position.
func (f *PhraseFilter) Parts() []PhraseEntry {
	return f.entries
}

func (f *PhraseFilter) Len() int {
	return len(f.entries)
}

func (f *PhraseFilter) Empty() bool {
	return len(f.entries) == 0
}

func (f *PhraseFilter) Kind() search.Kind {
	return search.KindPhrase
}

// fixed reports whether every part is a single term.
func (f *PhraseFilter) fixed() bool {
	for _, e := range f.entries {
		if _, ok := e.Part.(TermPart); !ok {
			return false
		}
	}
	return true
}

// Prepare compiles the phrase. A phrase of a single part is prepared as the
// filter of the part.
func (f *PhraseFilter) Prepare(
	ctx context.Context,
	r index.Reader,
	ord search.Order,
	boost float64,
) (search.Prepared, error) {
	if f.Field == "" || f.Empty() {
		return search.Empty(), nil
	}
	boost *= f.Boost()
	if len(f.entries) == 1 {
		return f.entries[0].Part.filter(f.Field).Prepare(ctx, r, ord, boost)
	}

	var (
		base    = f.entries[0].Position
		offsets = make([]uint32, len(f.entries))
		enums   = make([]termEnumerator, len(f.entries))
	)
	for i, e := range f.entries {
		offsets[i] = e.Position - base
		enum, err := e.Part.enumerator()
		if err != nil {
			return nil, err
		}
		if enum == nil {
			return search.Empty(), nil
		}
		enums[i] = enum
	}

	var (
		segs      = r.Segments()
		states    = search.NewStatesCache[phraseState](len(segs))
		fields    = ord.NewFieldCollectors()
		selectors = make([]*termSelector, len(f.entries))
	)
	for i, e := range f.entries {
		selectors[i] = newTermSelector(SelectByPostingsLength, e.Part.limit())
	}
	for segIdx, seg := range segs {
		fr, ok := seg.Field(f.Field)
		if !ok || !fr.Features().Has(index.FeaturePositions) {
			continue
		}
		fields.Collect(seg, fr)

		var (
			cookies = make([][]index.Cookie, len(f.entries))
			missing bool
		)
		for i, enum := range enums {
			err := enum.enumerate(fr, func(it index.TermIterator) {
				cookie := it.Cookie()
				cookies[i] = append(cookies[i], cookie)
				if ord.Empty() {
					return
				}
				selectors[i].insert(candidate{
					segIdx: segIdx,
					seg:    seg,
					field:  fr,
					term:   append([]byte(nil), it.Current()...),
					cookie: cookie,
					meta:   it.Meta(),
				})
			})
			if err != nil {
				return nil, err
			}
			if len(cookies[i]) == 0 {
				missing = true
				if ord.Empty() {
					break
				}
			}
		}
		if missing {
			continue
		}

		st := states.Insert(seg)
		st.field = fr
		st.cookies = cookies
	}

	if states.Len() == 0 {
		return search.Empty(), nil
	}

	stats := ord.NewStats()
	terms := ord.NewTermCollectors(len(f.entries))
	for i, sel := range selectors {
		for idx, c := range sel.candidates {
			if sel.retained(idx) {
				terms.Collect(i, c.seg, c.field, c.meta)
			}
		}
		terms.Finish(stats, i, fields)
	}

	return &phraseQuery{
		states:   states,
		offsets:  offsets,
		variadic: !f.fixed(),
		stats:    stats,
		boost:    boost,
	}, nil
}

func (f *PhraseFilter) Equal(o search.Filter) bool {
	inner, ok := o.(*PhraseFilter)
	if !ok || f.Field != inner.Field || len(f.entries) != len(inner.entries) {
		return false
	}
	if len(f.entries) == 0 {
		return true
	}
	base, innerBase := f.entries[0].Position, inner.entries[0].Position
	for i, e := range f.entries {
		other := inner.entries[i]
		if e.Position-base != other.Position-innerBase || !e.Part.equal(other.Part) {
			return false
		}
	}
	return true
}

func (f *PhraseFilter) Hash() uint64 {
	h := newHasher(search.KindPhrase)
	h.string(f.Field)
	for _, e := range f.entries {
		h.uint64(uint64(e.Position - f.entries[0].Position))
		e.Part.hash(h)
	}
	return h.sum()
}

func (f *PhraseFilter) String() string {
	parts := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		parts = append(parts, e.Part.String())
	}
	return "phrase(" + f.Field + ", \"" + strings.Join(parts, " ") + "\")"
}

// phraseState holds the candidates of every phrase position in a segment.
type phraseState struct {
	field   index.FieldReader
	cookies [][]index.Cookie
}

type phraseQuery struct {
	states   *search.StatesCache[phraseState]
	offsets  []uint32
	variadic bool
	stats    []byte
	boost    float64
}

func (q *phraseQuery) Boost() float64 {
	return q.boost
}

// Execute returns the documents of the segment where a window of the phrase
// occurs. When scoring, every window is counted into the frequency.
func (q *phraseQuery) Execute(
	ctx context.Context,
	seg index.SegmentReader,
	ord search.Order,
) (search.DocIterator, error) {
	st, ok := q.states.Find(seg)
	if !ok {
		return search.EmptyIterator(), nil
	}

	var (
		reader    = newTermsReader(st.field)
		features  = ord.Features() | index.FeaturePositions
		sources   = make([]postings.PositionsIterator, 0, len(st.cookies))
		positions = make([]searcher.PhrasePosition, 0, len(st.cookies))
	)
	for i, cookies := range st.cookies {
		its := make([]postings.PositionsIterator, 0, len(cookies))
		for _, cookie := range cookies {
			pl, ok, err := reader.positions(cookie, features)
			if err != nil {
				_ = reader.close()
				return nil, err
			}
			if ok {
				its = append(its, pl)
			}
		}
		if len(its) == 0 {
			return search.EmptyIterator(), reader.close()
		}

		var src postings.PositionsIterator
		if q.variadic {
			src = searcher.NewPositionsDisjunction(its)
		} else {
			src = its[0]
		}
		sources = append(sources, src)
		positions = append(positions, searcher.PhrasePosition{
			Offset: q.offsets[i],
			Source: src,
		})
	}
	if err := reader.close(); err != nil {
		return nil, err
	}

	it := searcher.NewPhraseIterator(searcher.NewConjunction(sources), positions, !ord.Empty())
	return search.NewScoredIterator(it, ord.NewScorer(seg, st.field, q.stats, it, q.boost)), nil
}
