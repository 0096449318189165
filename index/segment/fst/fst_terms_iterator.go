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

	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/postings"
	proaring "github.com/m3db/m3ninx/postings/roaring"

	"github.com/couchbase/vellum"
)

var _ index.TermIterator = (*fstTermsIter)(nil)

func (d *fieldDict) Terms() index.TermIterator {
	return newFSTTermsIter(d, nil)
}

func (d *fieldDict) Search(a vellum.Automaton) index.TermIterator {
	return newFSTTermsIter(d, a)
}

type fstTermsIter struct {
	dict      *fieldDict
	automaton vellum.Automaton
	iter      *vellum.FSTIterator

	err     error
	done    bool
	current []byte
	ordinal uint64
	// positioned is set once the iterator refers to a term.
	positioned bool
	// resync is set when the iterator was positioned without the FST
	// iterator, which must be repositioned before advancing.
	resync bool
}

func newFSTTermsIter(d *fieldDict, a vellum.Automaton) *fstTermsIter {
	return &fstTermsIter{dict: d, automaton: a}
}

func (f *fstTermsIter) handleIterErr(err error) {
	if err == vellum.ErrIteratorDone {
		f.done = true
	} else {
		f.err = err
	}
	f.positioned = false
	f.current = nil
}

// start creates the FST iterator positioned at the first accepted term.
func (f *fstTermsIter) start() bool {
	var err error
	if f.automaton != nil {
		f.iter, err = f.dict.fst.Search(f.automaton, nil, nil)
	} else {
		f.iter, err = f.dict.fst.Iterator(nil, nil)
	}
	if err != nil {
		f.handleIterErr(err)
		return false
	}
	return true
}

func (f *fstTermsIter) setCurrent() {
	_, ord := f.iter.Current()
	f.ordinal = ord
	f.current = f.dict.terms[ord]
	f.positioned = true
}

func (f *fstTermsIter) Next() bool {
	if f.done || f.err != nil {
		return false
	}

	if f.iter == nil {
		if !f.start() {
			return false
		}
		if !f.resync {
			f.setCurrent()
			return true
		}
	}

	if f.resync {
		f.resync = false
		prev := f.current
		if err := f.iter.Seek(prev); err != nil {
			f.handleIterErr(err)
			return false
		}
		if key, _ := f.iter.Current(); !bytes.Equal(key, prev) {
			// Already beyond the previous term.
			f.setCurrent()
			return true
		}
	}

	if err := f.iter.Next(); err != nil {
		f.handleIterErr(err)
		return false
	}
	f.setCurrent()
	return true
}

func (f *fstTermsIter) Current() []byte {
	return f.current
}

func (f *fstTermsIter) Seek(term []byte) bool {
	return f.SeekGE(term) == index.SeekFound
}

func (f *fstTermsIter) SeekGE(term []byte) index.SeekResult {
	if f.err != nil {
		return index.SeekEnd
	}
	f.done = false
	f.resync = false
	if f.iter == nil && !f.start() {
		return index.SeekEnd
	}
	if err := f.iter.Seek(term); err != nil {
		f.handleIterErr(err)
		return index.SeekEnd
	}
	f.setCurrent()
	if bytes.Equal(f.current, term) {
		return index.SeekFound
	}
	return index.SeekNotFound
}

func (f *fstTermsIter) Cookie() index.Cookie {
	if !f.positioned {
		return index.Cookie{}
	}
	return index.NewCookie(f.dict.generation, f.ordinal)
}

func (f *fstTermsIter) SeekCookie(c index.Cookie) bool {
	if c.Generation() != f.dict.generation || c.Ordinal() >= uint64(len(f.dict.terms)) {
		return false
	}
	term := f.dict.terms[c.Ordinal()]
	if f.automaton != nil && !accepts(f.automaton, term) {
		return false
	}
	f.done = false
	f.ordinal = c.Ordinal()
	f.current = term
	f.positioned = true
	f.resync = true
	return true
}

func (f *fstTermsIter) Meta() index.TermMeta {
	if !f.positioned {
		return index.TermMeta{}
	}
	return f.dict.meta[f.ordinal]
}

func (f *fstTermsIter) Postings(features index.Features) (postings.Iterator, error) {
	if !f.positioned {
		return postings.EmptyIterator(), nil
	}
	bm := f.dict.postings[f.ordinal]
	if features == index.NoFeatures || f.dict.features == index.NoFeatures {
		return proaring.NewIterator(bm, nil), nil
	}
	return proaring.NewIterator(bm, f.dict.payloads[f.ordinal]), nil
}

func (f *fstTermsIter) Err() error {
	return f.err
}

func (f *fstTermsIter) Close() error {
	var err error
	if f.iter != nil {
		err = f.iter.Close()
	}
	f.iter = nil
	f.positioned = false
	f.current = nil
	return err
}

// accepts reports whether the automaton matches the whole term.
func accepts(a vellum.Automaton, term []byte) bool {
	state := a.Start()
	for _, b := range term {
		state = a.Accept(state, b)
		if !a.CanMatch(state) {
			return false
		}
	}
	return a.IsMatch(state)
}
