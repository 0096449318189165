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

package searcher

import (
	"sort"

	"github.com/m3db/m3ninx/postings"
)

// Conjunction is an iterator over the documents present in every one of its
// sub iterators. It is not safe for concurrent use.
type Conjunction[T postings.Iterator] struct {
	its  []T
	curr postings.ID
}

// NewConjunction returns the intersection of the iterators, which must not
// be empty. Iterators are advanced in order of increasing cost.
func NewConjunction[T postings.Iterator](its []T) *Conjunction[T] {
	sorted := append([]T(nil), its...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Cost() < sorted[j].Cost()
	})
	return &Conjunction[T]{its: sorted, curr: postings.InvalidID}
}

// Len returns the number of sub iterators.
func (c *Conjunction[T]) Len() int {
	return len(c.its)
}

func (c *Conjunction[T]) Current() postings.ID {
	return c.curr
}

func (c *Conjunction[T]) Next() bool {
	if c.curr == postings.EOFID {
		return false
	}
	if !c.its[0].Next() {
		c.curr = postings.EOFID
		return false
	}
	return c.align(c.its[0].Current()) != postings.EOFID
}

func (c *Conjunction[T]) Seek(target postings.ID) postings.ID {
	if c.curr == postings.EOFID || (c.curr != postings.InvalidID && target <= c.curr) {
		return c.curr
	}
	return c.align(c.its[0].Seek(target))
}

// align leapfrogs the sub iterators until they agree on a document not less
// than target, which the lead iterator is positioned at.
func (c *Conjunction[T]) align(target postings.ID) postings.ID {
	for target != postings.EOFID {
		agreed := true
		for _, it := range c.its[1:] {
			doc := it.Current()
			if doc == postings.InvalidID || doc < target {
				doc = it.Seek(target)
			}
			if doc != target {
				agreed = false
				target = c.its[0].Seek(doc)
				break
			}
		}
		if agreed {
			c.curr = target
			return target
		}
	}
	c.curr = postings.EOFID
	return c.curr
}

func (c *Conjunction[T]) Cost() uint64 {
	return c.its[0].Cost()
}

// Visit calls fn with every sub iterator, which are all positioned at the
// current document. Iteration stops when fn returns false.
func (c *Conjunction[T]) Visit(fn func(T) bool) {
	for _, it := range c.its {
		if !fn(it) {
			return
		}
	}
}
