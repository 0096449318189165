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

import (
	"strings"

	"github.com/m3db/m3ninx/doc"
	"github.com/m3db/m3ninx/postings"

	"github.com/couchbase/vellum"
)

// Features is a set of optional postings data a field may store.
type Features uint8

const (
	// FeatureFrequency is the per document occurrence count of a term.
	FeatureFrequency Features = 1 << iota
	// FeaturePositions is the per document list of term positions.
	FeaturePositions

	// NoFeatures requests document IDs only.
	NoFeatures Features = 0
	// AllFeatures requests every optional postings data.
	AllFeatures = FeatureFrequency | FeaturePositions
)

// Has reports whether f contains every feature of other.
func (f Features) Has(other Features) bool {
	return f&other == other
}

func (f Features) String() string {
	var parts []string
	if f.Has(FeatureFrequency) {
		parts = append(parts, "frequency")
	}
	if f.Has(FeaturePositions) {
		parts = append(parts, "positions")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Cookie is an opaque handle to a term found in a field's term dictionary. It
// lets a TermIterator of the same field resume at the term without searching
// by bytes. A cookie is only honoured by the dictionary that produced it.
type Cookie struct {
	generation uint64
	ordinal    uint64
}

// NewCookie is used by term dictionary implementations to mint cookies.
// Generation must be non-zero and unique per dictionary.
func NewCookie(generation, ordinal uint64) Cookie {
	return Cookie{generation: generation, ordinal: ordinal}
}

// Generation returns the generation of the dictionary that minted the cookie.
func (c Cookie) Generation() uint64 { return c.generation }

// Ordinal returns the dictionary specific ordinal of the term.
func (c Cookie) Ordinal() uint64 { return c.ordinal }

// Valid reports whether the cookie was minted by a dictionary.
func (c Cookie) Valid() bool { return c.generation != 0 }

// TermMeta is the statistics of a term within a single field of a segment.
type TermMeta struct {
	// DocsCount is the number of documents containing the term.
	DocsCount uint32
	// Frequency is the total number of occurrences of the term.
	Frequency uint64
}

// SeekResult is the result of positioning a TermIterator.
type SeekResult uint8

const (
	// SeekFound means the iterator is positioned at the requested term.
	SeekFound SeekResult = iota
	// SeekNotFound means the iterator is positioned at the first greater term.
	SeekNotFound
	// SeekEnd means there is no term greater than or equal to the request.
	SeekEnd
)

// Reader is a point in time snapshot of an index made of segments.
type Reader interface {
	// Segments returns the segments of the snapshot in a stable order.
	Segments() []SegmentReader

	// DocsCount returns the number of documents across all segments.
	DocsCount() uint64

	// LiveDocsCount returns the number of non deleted documents across all segments.
	LiveDocsCount() uint64
}

// SegmentReader provides read access to an immutable segment.
type SegmentReader interface {
	// Field returns the reader of the named field if the segment contains it.
	Field(name string) (FieldReader, bool)

	// DocsCount returns the number of documents in the segment.
	DocsCount() uint32

	// LiveDocsCount returns the number of non deleted documents in the segment.
	LiveDocsCount() uint32

	// IsLive reports whether the document has not been deleted.
	IsLive(id postings.ID) bool

	// Document returns the document with the given ID.
	Document(id postings.ID) (doc.Document, error)
}

// FieldReader provides access to the term dictionary of a single field.
type FieldReader interface {
	// Name returns the name of the field.
	Name() string

	// Features returns the postings data stored for the field.
	Features() Features

	// DocsCount returns the number of documents with the field.
	DocsCount() uint32

	// TermsCount returns the number of distinct terms of the field.
	TermsCount() uint64

	// TotalLength returns the sum of the norms of all documents with the field.
	TotalLength() uint64

	// Norm returns the number of tokens of the field in the given document.
	Norm(id postings.ID) uint32

	// Terms returns an unpositioned iterator over every term of the field.
	Terms() TermIterator

	// Search returns an unpositioned iterator over the terms accepted by the automaton.
	Search(a vellum.Automaton) TermIterator
}

// TermIterator is a cursor over the sorted terms of a field.
type TermIterator interface {
	// Next advances to the next term.
	Next() bool

	// Current returns the current term. The returned bytes are only valid
	// until the iterator is advanced.
	Current() []byte

	// Seek positions the iterator at exactly term and reports whether it exists.
	Seek(term []byte) bool

	// SeekGE positions the iterator at the first term greater than or equal to term.
	SeekGE(term []byte) SeekResult

	// Cookie returns a handle to the current term.
	Cookie() Cookie

	// SeekCookie positions the iterator at the term the cookie refers to and
	// reports whether the cookie belongs to this dictionary.
	SeekCookie(c Cookie) bool

	// Meta returns the statistics of the current term.
	Meta() TermMeta

	// Postings returns the documents of the current term with the requested
	// features when the field stores them.
	Postings(features Features) (postings.Iterator, error)

	// Err returns any error encountered during iteration.
	Err() error

	// Close releases resources held by the iterator.
	Close() error
}
