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

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/m3db/m3ninx/doc"
	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/index/segment"
	"github.com/m3db/m3ninx/index/segment/builder"
	"github.com/m3db/m3ninx/index/segment/fst"
	"github.com/m3db/m3ninx/postings"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

const maxLineSize = 16 << 20

// jsonDocument is a line of a documents file. A field value is either a
// string or a list of strings.
type jsonDocument struct {
	ID     string                 `json:"id"`
	Fields map[string]interface{} `json:"fields"`
}

func (d jsonDocument) toDocument() (doc.Document, error) {
	names := make([]string, 0, len(d.Fields))
	for name := range d.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	out := doc.Document{ID: []byte(d.ID)}
	for _, name := range names {
		switch v := d.Fields[name].(type) {
		case string:
			out.Fields = append(out.Fields, doc.Field{Name: []byte(name), Value: []byte(v)})
		case []interface{}:
			for _, elem := range v {
				s, ok := elem.(string)
				if !ok {
					return doc.Document{}, fmt.Errorf("field %s of %s: expected a string, got %T", name, d.ID, elem)
				}
				out.Fields = append(out.Fields, doc.Field{Name: []byte(name), Value: []byte(s)})
			}
		default:
			return doc.Document{}, fmt.Errorf("field %s of %s: expected a string, got %T", name, d.ID, v)
		}
	}
	return out, nil
}

// loadOptions controls how documents are split into segments.
type loadOptions struct {
	builderOpts builder.Options
	segmentSize int
	deleted     map[string]struct{}
}

// loadSegments indexes the documents of r, one per line, into segments of
// at most segmentSize documents. Documents with a deleted ID are indexed
// then masked.
func loadSegments(r io.Reader, opts loadOptions) ([]index.SegmentReader, error) {
	var (
		json    = jsoniter.ConfigCompatibleWithStandardLibrary
		logger  = opts.builderOpts.InstrumentOptions().Logger()
		b       = builder.NewBuilder(opts.builderOpts)
		scanner = bufio.NewScanner(r)
		segs    []index.SegmentReader
		batch   []doc.Document
		line    int
	)
	defer b.Close()

	seal := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := b.InsertBatch(batch); err != nil {
			return err
		}
		seg, err := b.Seal(segment.ID(len(segs) + 1))
		if err != nil {
			return err
		}
		segs = append(segs, withDeletes(seg, batch, opts.deleted))
		batch = batch[:0]
		return nil
	}

	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var jd jsonDocument
		if err := json.Unmarshal(scanner.Bytes(), &jd); err != nil {
			return nil, fmt.Errorf("line %d: %v", line, err)
		}
		d, err := jd.toDocument()
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", line, err)
		}
		batch = append(batch, d)
		if opts.segmentSize > 0 && len(batch) >= opts.segmentSize {
			if err := seal(); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := seal(); err != nil {
		return nil, err
	}

	logger.Info("loaded documents",
		zap.Int("lines", line),
		zap.Int("segments", len(segs)),
	)
	return segs, nil
}

func withDeletes(seg *fst.Segment, docs []doc.Document, deleted map[string]struct{}) *fst.Segment {
	if len(deleted) == 0 {
		return seg
	}
	var ids []postings.ID
	for i, d := range docs {
		if _, ok := deleted[string(d.ID)]; ok {
			ids = append(ids, postings.ID(i+1))
		}
	}
	if len(ids) == 0 {
		return seg
	}
	return seg.WithDeletes(ids...)
}
