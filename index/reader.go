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

package index

type reader struct {
	segments []SegmentReader
}

// NewReader returns a snapshot over the given segments.
func NewReader(segments ...SegmentReader) Reader {
	return &reader{segments: segments}
}

func (r *reader) Segments() []SegmentReader {
	return r.segments
}

func (r *reader) DocsCount() uint64 {
	var n uint64
	for _, s := range r.segments {
		n += uint64(s.DocsCount())
	}
	return n
}

func (r *reader) LiveDocsCount() uint64 {
	var n uint64
	for _, s := range r.segments {
		n += uint64(s.LiveDocsCount())
	}
	return n
}
