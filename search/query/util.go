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

	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/postings"
	"github.com/m3db/m3ninx/search"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

// hasher computes the structural hash of filters.
type hasher struct {
	digest *xxhash.Digest
	buf    [binary.MaxVarintLen64]byte
}

func newHasher(k search.Kind) *hasher {
	h := &hasher{digest: xxhash.New()}
	h.uint64(uint64(k))
	return h
}

func (h *hasher) uint64(v uint64) {
	n := binary.PutUvarint(h.buf[:], v)
	_, _ = h.digest.Write(h.buf[:n])
}

// bytes writes b prefixed by its length so that adjacent values never
// collide.
func (h *hasher) bytes(b []byte) {
	h.uint64(uint64(len(b)))
	_, _ = h.digest.Write(b)
}

func (h *hasher) string(s string) {
	h.uint64(uint64(len(s)))
	_, _ = h.digest.WriteString(s)
}

func (h *hasher) bool(v bool) {
	if v {
		h.uint64(1)
	} else {
		h.uint64(0)
	}
}

func (h *hasher) sum() uint64 {
	return h.digest.Sum64()
}

// closeTerms closes the iterator and returns the first of its errors.
func closeTerms(it index.TermIterator, field string) error {
	err := it.Err()
	if cerr := it.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrapf(err, "could not iterate terms of field %s", field)
	}
	return nil
}

// termsReader opens the postings of terms of a field by cookie.
type termsReader struct {
	field index.FieldReader
	iter  index.TermIterator
}

func newTermsReader(field index.FieldReader) *termsReader {
	return &termsReader{field: field, iter: field.Terms()}
}

// postings returns the postings of the term the cookie refers to, false if
// the cookie is not honoured by the field.
func (r *termsReader) postings(c index.Cookie, features index.Features) (postings.Iterator, bool, error) {
	if !r.iter.SeekCookie(c) {
		return nil, false, nil
	}
	pl, err := r.iter.Postings(features)
	if err != nil {
		return nil, false, errors.Wrapf(err, "could not read postings of field %s", r.field.Name())
	}
	return pl, true, nil
}

// positions returns the positional postings of the term the cookie refers to.
func (r *termsReader) positions(c index.Cookie, features index.Features) (postings.PositionsIterator, bool, error) {
	pl, ok, err := r.postings(c, features|index.FeaturePositions)
	if err != nil || !ok {
		return nil, false, err
	}
	positional, ok := pl.(postings.PositionsIterator)
	return positional, ok, nil
}

func (r *termsReader) close() error {
	return closeTerms(r.iter, r.field.Name())
}
