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
	"container/heap"
	"fmt"
	"strings"

	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/search"
)

// DefaultScoredTermsLimit is the default number of significance keys a term
// selector retains.
const DefaultScoredTermsLimit = 1024

// SelectorKind is the strategy selecting which candidate terms of a multi
// term filter are scored. Terms that are not selected still match, with a
// score of 0.
type SelectorKind uint8

const (
	// SelectAll scores every candidate.
	SelectAll SelectorKind = iota
	// SelectByFieldSize scores the candidates of the field readers, one per
	// segment, with the most terms.
	SelectByFieldSize
	// SelectByPostingsLength scores the candidates with the largest document
	// frequency.
	SelectByPostingsLength
	// SelectBySegmentLiveDocs scores the candidates of the segments with the
	// most live documents.
	SelectBySegmentLiveDocs
)

var selectorKindNames = map[SelectorKind]string{
	SelectAll:               "all",
	SelectByFieldSize:       "field_size",
	SelectByPostingsLength:  "postings_length",
	SelectBySegmentLiveDocs: "segment_live_docs",
}

func (k SelectorKind) String() string {
	if name, ok := selectorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("selector(%d)", uint8(k))
}

// ParseSelectorKind parses the name of a selector kind.
func ParseSelectorKind(s string) (SelectorKind, error) {
	for k, name := range selectorKindNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown term selector: %s", s)
}

// UnmarshalYAML unmarshals a selector kind from its name.
func (k *SelectorKind) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		*k = SelectByPostingsLength
		return nil
	}
	parsed, err := ParseSelectorKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalYAML marshals a selector kind to its name.
func (k SelectorKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

type candidate struct {
	segIdx int
	seg    index.SegmentReader
	field  index.FieldReader
	term   []byte
	cookie index.Cookie
	meta   index.TermMeta
	group  *selectorGroup
}

// selectorGroup is a significance key shared by candidates, the field reader
// of a segment or the segment depending on the strategy.
type selectorGroup struct {
	name    string
	segIdx  int
	key     uint64
	heapIdx int
	evicted bool
}

// termSelector bounds the number of scored candidates. The strategies are a
// closed set dispatched on kind.
type termSelector struct {
	kind  SelectorKind
	limit int

	candidates []candidate
	terms      candidateHeap
	groups     map[groupID]*selectorGroup
	tracked    groupHeap
	evicted    []uint64
}

type groupID struct {
	name   string
	segIdx int
}

func newTermSelector(kind SelectorKind, limit int) *termSelector {
	if limit <= 0 {
		kind = SelectAll
	}
	s := &termSelector{kind: kind, limit: limit}
	s.terms.candidates = &s.candidates
	s.groups = make(map[groupID]*selectorGroup)
	return s
}

// insert offers a candidate to the selector.
func (s *termSelector) insert(c candidate) {
	idx := len(s.candidates)
	switch s.kind {
	case SelectByPostingsLength:
		s.candidates = append(s.candidates, c)
		heap.Push(&s.terms, idx)
		if s.terms.Len() > s.limit {
			evicted := heap.Pop(&s.terms).(int)
			s.evicted = append(s.evicted, uint64(s.candidates[evicted].meta.DocsCount))
		}
	case SelectByFieldSize:
		id := groupID{name: c.field.Name(), segIdx: c.segIdx}
		g, ok := s.groups[id]
		if !ok {
			g = s.group(id)
			g.key = c.field.TermsCount()
			heap.Fix(&s.tracked, g.heapIdx)
		}
		c.group = g
		s.candidates = append(s.candidates, c)
		s.maybeEvictGroup()
	case SelectBySegmentLiveDocs:
		g, ok := s.groups[groupID{segIdx: c.segIdx}]
		if !ok {
			g = s.group(groupID{segIdx: c.segIdx})
			g.key = uint64(c.seg.LiveDocsCount())
			heap.Fix(&s.tracked, g.heapIdx)
		}
		c.group = g
		s.candidates = append(s.candidates, c)
		s.maybeEvictGroup()
	default:
		s.candidates = append(s.candidates, c)
	}
}

// group returns the group of the id, tracking it if new.
func (s *termSelector) group(id groupID) *selectorGroup {
	if g, ok := s.groups[id]; ok {
		return g
	}
	g := &selectorGroup{name: id.name, segIdx: id.segIdx}
	s.groups[id] = g
	heap.Push(&s.tracked, g)
	return g
}

func (s *termSelector) maybeEvictGroup() {
	if s.tracked.Len() <= s.limit {
		return
	}
	g := heap.Pop(&s.tracked).(*selectorGroup)
	g.evicted = true
	s.evicted = append(s.evicted, g.key)
}

// retained reports whether the candidate at idx is scored.
func (s *termSelector) retained(idx int) bool {
	switch s.kind {
	case SelectByPostingsLength:
		return s.terms.contains(idx)
	case SelectByFieldSize, SelectBySegmentLiveDocs:
		return !s.candidates[idx].group.evicted
	default:
		return true
	}
}

// trackedKeys returns the significance keys currently retained.
func (s *termSelector) trackedKeys() []uint64 {
	var keys []uint64
	switch s.kind {
	case SelectByPostingsLength:
		for _, idx := range s.terms.indices {
			keys = append(keys, uint64(s.candidates[idx].meta.DocsCount))
		}
	case SelectByFieldSize, SelectBySegmentLiveDocs:
		for _, g := range s.tracked {
			keys = append(keys, g.key)
		}
	}
	return keys
}

// build records every candidate into the states of its segment and returns
// one statistics buffer per distinct scored term.
func (s *termSelector) build(
	ord search.Order,
	fields *search.FieldCollectors,
	states *search.StatesCache[multiTermState],
) [][]byte {
	var (
		slots    = make(map[string]int)
		slotOf   = make([]int, len(s.candidates))
		distinct [][]byte
	)
	for i := range s.candidates {
		slotOf[i] = -1
		if ord.Empty() || !s.retained(i) {
			continue
		}
		term := s.candidates[i].term
		slot, ok := slots[string(term)]
		if !ok {
			slot = len(distinct)
			slots[string(term)] = slot
			distinct = append(distinct, term)
		}
		slotOf[i] = slot
	}

	terms := ord.NewTermCollectors(len(distinct))
	for i, c := range s.candidates {
		if slotOf[i] >= 0 {
			terms.Collect(slotOf[i], c.seg, c.field, c.meta)
		}
	}
	stats := make([][]byte, len(distinct))
	for i := range stats {
		stats[i] = ord.NewStats()
		terms.Finish(stats[i], i, fields)
	}

	for i, c := range s.candidates {
		st := states.Insert(c.seg)
		st.field = c.field
		if slotOf[i] >= 0 {
			st.scored = append(st.scored, scoredCookie{cookie: c.cookie, statsIdx: slotOf[i]})
		} else {
			st.unscored = append(st.unscored, c.cookie)
		}
	}
	return stats
}

// candidateHeap is a min heap of candidate indices by document frequency.
type candidateHeap struct {
	candidates *[]candidate
	indices    []int
	members    map[int]struct{}
}

func (h *candidateHeap) contains(idx int) bool {
	_, ok := h.members[idx]
	return ok
}

func (h candidateHeap) Len() int { return len(h.indices) }

func (h candidateHeap) Less(i, j int) bool {
	a, b := (*h.candidates)[h.indices[i]], (*h.candidates)[h.indices[j]]
	if a.meta.DocsCount != b.meta.DocsCount {
		return a.meta.DocsCount < b.meta.DocsCount
	}
	if c := bytes.Compare(a.term, b.term); c != 0 {
		return c > 0
	}
	return a.segIdx > b.segIdx
}

func (h candidateHeap) Swap(i, j int) { h.indices[i], h.indices[j] = h.indices[j], h.indices[i] }

func (h *candidateHeap) Push(x interface{}) {
	if h.members == nil {
		h.members = make(map[int]struct{})
	}
	idx := x.(int)
	h.members[idx] = struct{}{}
	h.indices = append(h.indices, idx)
}

func (h *candidateHeap) Pop() interface{} {
	n := len(h.indices)
	idx := h.indices[n-1]
	h.indices = h.indices[:n-1]
	delete(h.members, idx)
	return idx
}

// groupHeap is a min heap of groups by significance key.
type groupHeap []*selectorGroup

func (h groupHeap) Len() int { return len(h) }

func (h groupHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.key != b.key {
		return a.key < b.key
	}
	if a.name != b.name {
		return a.name > b.name
	}
	return a.segIdx > b.segIdx
}

func (h groupHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIdx = i
	h[j].heapIdx = j
}

func (h *groupHeap) Push(x interface{}) {
	g := x.(*selectorGroup)
	g.heapIdx = len(*h)
	*h = append(*h, g)
}

func (h *groupHeap) Pop() interface{} {
	old := *h
	n := len(old)
	g := old[n-1]
	*h = old[:n-1]
	g.heapIdx = -1
	return g
}
