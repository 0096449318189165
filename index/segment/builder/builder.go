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

package builder

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/m3db/m3ninx/doc"
	"github.com/m3db/m3ninx/index/segment"
	"github.com/m3db/m3ninx/index/segment/fst"
	"github.com/m3db/m3ninx/postings"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

const maxDocsPerSegment = int(postings.EOFID - 1)

var (
	errClosed      = errors.New("builder closed")
	errTooManyDocs = errors.New("too many documents for a single segment")
)

// Builder accumulates documents and seals them into immutable segments.
// It is not safe for concurrent use.
type Builder struct {
	opts   Options
	docs   []doc.Document
	shards []*shard
	closed bool
}

type indexJobEntry struct {
	id    postings.ID
	field doc.Field
}

type shard struct {
	fields map[string]*fieldPostings
}

type fieldPostings struct {
	terms map[string][]fst.Posting
	norms map[postings.ID]uint32
}

// NewBuilder returns a new segment builder.
func NewBuilder(opts Options) *Builder {
	n := opts.Concurrency()
	if n < 1 {
		n = 1
	}
	b := &Builder{opts: opts}
	b.shards = make([]*shard, n)
	b.Reset()
	return b
}

// Reset drops every inserted document.
func (b *Builder) Reset() {
	b.docs = nil
	for i := range b.shards {
		b.shards[i] = &shard{fields: make(map[string]*fieldPostings)}
	}
}

// Insert indexes a single document and returns its ID within the segment.
func (b *Builder) Insert(d doc.Document) (postings.ID, error) {
	if err := b.InsertBatch([]doc.Document{d}); err != nil {
		return postings.InvalidID, err
	}
	return postings.ID(len(b.docs)), nil
}

// InsertBatch indexes the documents in order. Either every document is
// indexed or none is.
func (b *Builder) InsertBatch(docs []doc.Document) error {
	if b.closed {
		return errClosed
	}
	if len(b.docs)+len(docs) > maxDocsPerSegment {
		return errTooManyDocs
	}
	for i, d := range docs {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("document %d invalid: %v", i, err)
		}
	}

	jobs := make([][]indexJobEntry, len(b.shards))
	for i, d := range docs {
		id := postings.ID(len(b.docs) + i + 1)
		for _, f := range d.Fields {
			s := b.shardFor(f.Name)
			jobs[s] = append(jobs[s], indexJobEntry{id: id, field: f})
		}
	}

	var wg sync.WaitGroup
	for i, entries := range jobs {
		if len(entries) == 0 {
			continue
		}
		wg.Add(1)
		go func(s *shard, entries []indexJobEntry) {
			defer wg.Done()
			s.index(b.opts, entries)
		}(b.shards[i], entries)
	}
	wg.Wait()

	b.docs = append(b.docs, docs...)
	return nil
}

func (b *Builder) shardFor(field []byte) int {
	return int(xxhash.Sum64(field) % uint64(len(b.shards)))
}

func (s *shard) index(opts Options, entries []indexJobEntry) {
	for _, entry := range entries {
		name := string(entry.field.Name)
		fp, ok := s.fields[name]
		if !ok {
			fp = &fieldPostings{
				terms: make(map[string][]fst.Posting),
				norms: make(map[postings.ID]uint32),
			}
			s.fields[name] = fp
		}

		// Repeated values of a field in a document continue its positions.
		base := fp.norms[entry.id]
		tokens := analyzerFor(opts, name).Analyze(entry.field.Value)
		var last uint32
		for _, tok := range tokens {
			pos := base + tok.Position
			last = tok.Position + 1
			list := fp.terms[string(tok.Term)]
			if n := len(list); n > 0 && list[n-1].ID == entry.id {
				list[n-1].Positions = append(list[n-1].Positions, pos)
			} else {
				list = append(list, fst.Posting{ID: entry.id, Positions: []uint32{pos}})
			}
			fp.terms[string(tok.Term)] = list
		}
		if len(tokens) > 0 {
			fp.norms[entry.id] = base + last
		}
	}
}

// Docs returns the number of documents inserted.
func (b *Builder) Docs() int {
	return len(b.docs)
}

// Seal builds an immutable segment from the inserted documents and resets
// the builder.
func (b *Builder) Seal(id segment.ID) (*fst.Segment, error) {
	if b.closed {
		return nil, errClosed
	}

	data := fst.SegmentData{
		ID:   id,
		Docs: b.docs,
	}
	for _, s := range b.shards {
		for name, fp := range s.fields {
			if len(fp.terms) == 0 {
				continue
			}
			fd := fst.FieldData{
				Name:     name,
				Features: b.opts.Features(),
				Terms:    make([]fst.TermData, 0, len(fp.terms)),
				Norms:    fp.norms,
			}
			for term, list := range fp.terms {
				fd.Terms = append(fd.Terms, fst.TermData{Term: []byte(term), Postings: list})
			}
			sort.Slice(fd.Terms, func(i, j int) bool {
				return bytes.Compare(fd.Terms[i].Term, fd.Terms[j].Term) < 0
			})
			data.Fields = append(data.Fields, fd)
		}
	}
	sort.Slice(data.Fields, func(i, j int) bool {
		return data.Fields[i].Name < data.Fields[j].Name
	})

	seg, err := fst.NewSegment(data, b.opts.FSTOptions())
	if err != nil {
		return nil, err
	}
	b.opts.InstrumentOptions().Logger().Debug("sealed segment",
		zap.Uint64("id", uint64(id)),
		zap.Int("docs", len(data.Docs)),
		zap.Int("fields", len(data.Fields)),
	)
	b.Reset()
	return seg, nil
}

// Close closes the builder, further inserts fail.
func (b *Builder) Close() error {
	if b.closed {
		return errClosed
	}
	b.closed = true
	b.docs = nil
	b.shards = nil
	return nil
}
