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
	"encoding/binary"
	"sort"
	"testing"

	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/index/segment/builder"
	"github.com/m3db/m3ninx/search"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

func newMockField(ctrl *gomock.Controller, name string, terms uint64) *index.MockFieldReader {
	f := index.NewMockFieldReader(ctrl)
	f.EXPECT().Name().Return(name).AnyTimes()
	f.EXPECT().TermsCount().Return(terms).AnyTimes()
	return f
}

func newMockSegment(ctrl *gomock.Controller, live uint32) *index.MockSegmentReader {
	s := index.NewMockSegmentReader(ctrl)
	s.EXPECT().LiveDocsCount().Return(live).AnyTimes()
	return s
}

func sortedKeys(s *termSelector) []uint64 {
	keys := s.trackedKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func TestSelectorByPostingsLength(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var (
		seg   = newMockSegment(ctrl, 10)
		field = newMockField(ctrl, "body", 5)
		s     = newTermSelector(SelectByPostingsLength, 2)
	)
	for i, docs := range []uint32{5, 1, 3, 7, 2} {
		s.insert(candidate{
			seg:   seg,
			field: field,
			term:  []byte{byte('a' + i)},
			meta:  index.TermMeta{DocsCount: docs},
		})
	}

	require.Equal(t, []uint64{5, 7}, sortedKeys(s))
	require.Equal(t, []bool{true, false, false, true, false}, retainedOf(s))
	for _, evicted := range s.evicted {
		require.True(t, evicted <= 5)
	}
}

func TestSelectorByFieldSize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var (
		seg0 = newMockSegment(ctrl, 10)
		seg1 = newMockSegment(ctrl, 10)
		s    = newTermSelector(SelectByFieldSize, 1)
	)
	s.insert(candidate{segIdx: 0, seg: seg0, field: newMockField(ctrl, "a", 10), term: []byte("x")})
	s.insert(candidate{segIdx: 0, seg: seg0, field: newMockField(ctrl, "b", 3), term: []byte("y")})
	s.insert(candidate{segIdx: 1, seg: seg1, field: newMockField(ctrl, "a", 5), term: []byte("z")})
	s.insert(candidate{segIdx: 1, seg: seg1, field: newMockField(ctrl, "a", 5), term: []byte("w")})

	// Each segment's field reader is its own group.
	require.Equal(t, []uint64{10}, sortedKeys(s))
	require.Equal(t, []uint64{3, 5}, s.evicted)
	require.Equal(t, []bool{true, false, false, false}, retainedOf(s))
}

func TestSelectorByFieldSizeAcrossSegments(t *testing.T) {
	var (
		opts = builder.NewOptions()
		// The body field has 7 distinct terms in large and 4 in small.
		large = newSegment(t, opts, 1, bodies(
			"the quick brown fox",
			"lazy brown dog",
			"quick quick brick",
		)...)
		small = newSegment(t, opts, 2, bodies(
			"brown quick fox",
			"quick brown brick quick brick",
		)...)
	)

	tests := []struct {
		name     string
		reader   index.Reader
		expected [][2]int
	}{
		{
			name:     "largest first",
			reader:   index.NewReader(large, small),
			expected: [][2]int{{0, 1}, {0, 2}, {0, 3}},
		},
		{
			name:     "largest last",
			reader:   index.NewReader(small, large),
			expected: [][2]int{{1, 1}, {1, 2}, {1, 3}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := NewPrefixFilter("body", []byte("br"))
			f.Selector = SelectByFieldSize
			f.ScoredTermsLimit = 1

			hits := run(t, test.reader, f, scoring)
			require.Len(t, hits, 5)
			var scored [][2]int
			for _, h := range hits {
				if h.score > 0 {
					scored = append(scored, [2]int{h.seg, int(h.id)})
				}
			}
			require.Equal(t, test.expected, scored)
		})
	}
}

func TestSelectorBySegmentLiveDocs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var (
		small = newMockSegment(ctrl, 10)
		large = newMockSegment(ctrl, 20)
		field = newMockField(ctrl, "body", 5)
		s     = newTermSelector(SelectBySegmentLiveDocs, 1)
	)
	s.insert(candidate{segIdx: 0, seg: small, field: field, term: []byte("a")})
	s.insert(candidate{segIdx: 0, seg: small, field: field, term: []byte("b")})
	s.insert(candidate{segIdx: 1, seg: large, field: field, term: []byte("a")})

	require.Equal(t, []uint64{20}, sortedKeys(s))
	require.Equal(t, []bool{false, false, true}, retainedOf(s))
}

func TestSelectorUnbounded(t *testing.T) {
	for _, kind := range []SelectorKind{SelectByFieldSize, SelectByPostingsLength, SelectBySegmentLiveDocs} {
		s := newTermSelector(kind, 0)
		require.Equal(t, SelectAll, s.kind)
		for i := 0; i < 3; i++ {
			s.insert(candidate{term: []byte{byte(i)}})
		}
		require.Equal(t, []bool{true, true, true}, retainedOf(s))
	}
}

func TestSelectorBuild(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var (
		seg0  = newMockSegment(ctrl, 10)
		seg1  = newMockSegment(ctrl, 10)
		field = newMockField(ctrl, "body", 5)
		s     = newTermSelector(SelectByPostingsLength, 2)
	)
	s.insert(candidate{segIdx: 0, seg: seg0, field: field, term: []byte("a"), meta: index.TermMeta{DocsCount: 4}})
	s.insert(candidate{segIdx: 1, seg: seg1, field: field, term: []byte("a"), meta: index.TermMeta{DocsCount: 3}})
	s.insert(candidate{segIdx: 1, seg: seg1, field: field, term: []byte("b"), meta: index.TermMeta{DocsCount: 1}})

	states := search.NewStatesCache[multiTermState](2)
	stats := s.build(scoring, scoring.NewFieldCollectors(), states)

	// Both retained candidates share the statistics of their term.
	require.Len(t, stats, 1)
	require.Equal(t, uint64(7), binary.LittleEndian.Uint64(stats[0]))

	st0, ok := states.Find(seg0)
	require.True(t, ok)
	require.Len(t, st0.scored, 1)
	require.Empty(t, st0.unscored)

	st1, ok := states.Find(seg1)
	require.True(t, ok)
	require.Len(t, st1.scored, 1)
	require.Len(t, st1.unscored, 1)

	// Nothing is scored without an order.
	states = search.NewStatesCache[multiTermState](2)
	require.Empty(t, s.build(search.Order{}, search.Order{}.NewFieldCollectors(), states))
	st1, ok = states.Find(seg1)
	require.True(t, ok)
	require.Len(t, st1.unscored, 2)
}

func TestSelectorLimitScores(t *testing.T) {
	r := newTestReader(t)

	f := NewPrefixFilter("body", []byte("br"))
	f.ScoredTermsLimit = 1
	var scored [][2]int
	hits := run(t, r, f, scoring)
	require.Len(t, hits, 5)
	for _, h := range hits {
		if h.score > 0 {
			scored = append(scored, [2]int{h.seg, int(h.id)})
		}
	}
	// Only the first segment's brown is retained.
	require.Equal(t, [][2]int{{0, 1}, {0, 2}}, scored)

	f.ScoredTermsLimit = 0
	for _, h := range run(t, r, f, scoring) {
		require.True(t, h.score > 0)
	}
}

func TestSelectorKindYAML(t *testing.T) {
	var cfg struct {
		Selector SelectorKind `yaml:"selector"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("selector: field_size"), &cfg))
	require.Equal(t, SelectByFieldSize, cfg.Selector)

	require.NoError(t, yaml.Unmarshal([]byte("selector: ''"), &cfg))
	require.Equal(t, SelectByPostingsLength, cfg.Selector)

	require.Error(t, yaml.Unmarshal([]byte("selector: largest"), &cfg))

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	require.Equal(t, "selector: postings_length\n", string(out))
}

func retainedOf(s *termSelector) []bool {
	out := make([]bool, len(s.candidates))
	for i := range s.candidates {
		out[i] = s.retained(i)
	}
	return out
}
