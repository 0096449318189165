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

package fst

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/m3db/m3ninx/doc"
	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/index/segment"
	"github.com/m3db/m3ninx/postings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/couchbase/vellum"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

var (
	errDocumentNotFound = errors.New("document not found")
	errEmptyTerms       = errors.New("field has no terms")
	errSegmentClosed    = errors.New("segment is closed")

	// Every field dictionary gets its own generation so that cookies minted by
	// one dictionary are rejected by every other.
	generations = atomic.NewUint64(0)
)

// Posting is the occurrence of a term in a document.
type Posting struct {
	ID        postings.ID
	Positions []uint32
}

// TermData is a term with its postings sorted by document ID.
type TermData struct {
	Term     []byte
	Postings []Posting
}

// FieldData is the inverted data of a single field.
type FieldData struct {
	Name     string
	Features index.Features
	Terms    []TermData
	// Norms maps each document containing the field to its token count.
	Norms map[postings.ID]uint32
}

// SegmentData is the input of NewSegment. Docs[i] has the document ID i+1.
type SegmentData struct {
	ID     segment.ID
	Docs   []doc.Document
	Fields []FieldData
}

var _ segment.Segment = (*Segment)(nil)

// Segment is an immutable segment whose term dictionaries are FSTs and whose
// postings are roaring bitmaps.
type Segment struct {
	id      segment.ID
	opts    Options
	docs    []doc.Document
	fields  map[string]*fieldDict
	deleted *roaring.Bitmap
	closed  *atomic.Bool
}

// NewSegment builds an immutable segment from the given data.
func NewSegment(data SegmentData, opts Options) (*Segment, error) {
	s := &Segment{
		id:      data.ID,
		opts:    opts,
		docs:    data.Docs,
		fields:  make(map[string]*fieldDict, len(data.Fields)),
		deleted: roaring.New(),
		closed:  atomic.NewBool(false),
	}

	w := newFSTWriter()
	var fstBytes uint64
	for _, fd := range data.Fields {
		if _, ok := s.fields[fd.Name]; ok {
			return nil, fmt.Errorf("duplicate field: %s", fd.Name)
		}
		dict, n, err := newFieldDict(w, fd, len(data.Docs))
		if err != nil {
			return nil, fmt.Errorf("could not build field %s: %v", fd.Name, err)
		}
		s.fields[fd.Name] = dict
		fstBytes += n
	}

	opts.InstrumentOptions().Logger().Debug("built fst segment",
		zap.Uint64("id", uint64(s.id)),
		zap.Int("docs", len(s.docs)),
		zap.Int("fields", len(s.fields)),
		zap.Uint64("fstBytes", fstBytes),
	)
	return s, nil
}

// WithDeletes returns a view of the segment in which the given documents are
// deleted in addition to the ones already deleted. The receiver is unchanged.
func (s *Segment) WithDeletes(ids ...postings.ID) *Segment {
	view := *s
	view.deleted = s.deleted.Clone()
	for _, id := range ids {
		if id >= postings.MinID && int(id) <= len(s.docs) {
			view.deleted.Add(uint32(id))
		}
	}
	return &view
}

func (s *Segment) ID() segment.ID {
	return s.id
}

func (s *Segment) Field(name string) (index.FieldReader, bool) {
	dict, ok := s.fields[name]
	if !ok {
		return nil, false
	}
	return dict, true
}

// Fields returns the sorted names of the fields of the segment.
func (s *Segment) Fields() []string {
	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Segment) DocsCount() uint32 {
	return uint32(len(s.docs))
}

func (s *Segment) LiveDocsCount() uint32 {
	return uint32(len(s.docs)) - uint32(s.deleted.GetCardinality())
}

func (s *Segment) IsLive(id postings.ID) bool {
	if id < postings.MinID || int(id) > len(s.docs) {
		return false
	}
	return !s.deleted.Contains(uint32(id))
}

func (s *Segment) Document(id postings.ID) (doc.Document, error) {
	if s.closed.Load() {
		return doc.Document{}, errSegmentClosed
	}
	if id < postings.MinID || int(id) > len(s.docs) {
		return doc.Document{}, errDocumentNotFound
	}
	return s.docs[id-1], nil
}

func (s *Segment) Close() error {
	if !s.closed.CAS(false, true) {
		return errSegmentClosed
	}
	var err error
	for _, dict := range s.fields {
		if cerr := dict.fst.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

type fieldDict struct {
	name        string
	generation  uint64
	features    index.Features
	fst         *vellum.FST
	terms       [][]byte
	meta        []index.TermMeta
	postings    []*roaring.Bitmap
	payloads    []termPayload
	norms       []uint32
	docsCount   uint32
	totalLength uint64
}

func newFieldDict(w *fstWriter, fd FieldData, numDocs int) (*fieldDict, uint64, error) {
	if len(fd.Terms) == 0 {
		return nil, 0, errEmptyTerms
	}

	terms := append([]TermData(nil), fd.Terms...)
	sort.Slice(terms, func(i, j int) bool {
		return bytes.Compare(terms[i].Term, terms[j].Term) < 0
	})

	if err := w.Reset(); err != nil {
		return nil, 0, err
	}

	d := &fieldDict{
		name:       fd.Name,
		generation: generations.Inc(),
		features:   fd.Features,
		terms:      make([][]byte, 0, len(terms)),
		meta:       make([]index.TermMeta, 0, len(terms)),
		postings:   make([]*roaring.Bitmap, 0, len(terms)),
		norms:      make([]uint32, numDocs+1),
	}

	for i, t := range terms {
		if i > 0 && bytes.Equal(t.Term, terms[i-1].Term) {
			return nil, 0, fmt.Errorf("duplicate term: %s", t.Term)
		}
		if err := w.Add(t.Term, uint64(i)); err != nil {
			return nil, 0, err
		}

		var (
			bm      = roaring.New()
			payload termPayload
			meta    index.TermMeta
		)
		for j, p := range t.Postings {
			if j > 0 && p.ID <= t.Postings[j-1].ID {
				return nil, 0, fmt.Errorf("postings of term %s not sorted", t.Term)
			}
			bm.Add(uint32(p.ID))
			freq := uint32(len(p.Positions))
			if freq == 0 {
				freq = 1
			}
			meta.Frequency += uint64(freq)
			payload.freqs = append(payload.freqs, freq)
			if fd.Features.Has(index.FeaturePositions) {
				payload.positions = append(payload.positions, p.Positions)
			}
		}
		bm.RunOptimize()
		meta.DocsCount = uint32(bm.GetCardinality())

		d.terms = append(d.terms, append([]byte(nil), t.Term...))
		d.meta = append(d.meta, meta)
		d.postings = append(d.postings, bm)
		d.payloads = append(d.payloads, payload)
	}

	fst, n, err := w.Close()
	if err != nil {
		return nil, 0, err
	}
	d.fst = fst

	for id, norm := range fd.Norms {
		if int(id) > numDocs || id < postings.MinID {
			return nil, 0, fmt.Errorf("norm for unknown document %d", id)
		}
		d.norms[id] = norm
		d.totalLength += uint64(norm)
		d.docsCount++
	}
	return d, n, nil
}

func (d *fieldDict) Name() string {
	return d.name
}

func (d *fieldDict) Features() index.Features {
	return d.features
}

func (d *fieldDict) DocsCount() uint32 {
	return d.docsCount
}

func (d *fieldDict) TermsCount() uint64 {
	return uint64(len(d.terms))
}

func (d *fieldDict) TotalLength() uint64 {
	return d.totalLength
}

func (d *fieldDict) Norm(id postings.ID) uint32 {
	if int(id) >= len(d.norms) {
		return 0
	}
	return d.norms[id]
}

type termPayload struct {
	freqs     []uint32
	positions [][]uint32
}

func (p termPayload) Frequency(rank int) uint32 {
	return p.freqs[rank]
}

func (p termPayload) Positions(rank int) []uint32 {
	if p.positions == nil {
		return nil
	}
	return p.positions[rank]
}
