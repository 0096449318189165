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
	"container/heap"

	"github.com/m3db/m3ninx/postings"
)

// Disjunction is an iterator over the documents present in any of its sub
// iterators, emitting each document once. It is not safe for concurrent use.
type Disjunction[T postings.Iterator] struct {
	heap disjunctionHeap[T]
	cost uint64
	curr postings.ID
}

// NewDisjunction returns the union of the iterators.
func NewDisjunction[T postings.Iterator](its []T) *Disjunction[T] {
	d := &Disjunction[T]{curr: postings.InvalidID}
	d.heap = make(disjunctionHeap[T], 0, len(its))
	for _, it := range its {
		d.cost += it.Cost()
		d.heap = append(d.heap, it)
	}
	return d
}

func (d *Disjunction[T]) Current() postings.ID {
	return d.curr
}

func (d *Disjunction[T]) Next() bool {
	switch d.curr {
	case postings.EOFID:
		return false
	case postings.InvalidID:
		live := d.heap[:0]
		for _, it := range d.heap {
			if it.Next() {
				live = append(live, it)
			}
		}
		d.heap = live
		heap.Init(&d.heap)
	default:
		for len(d.heap) > 0 && d.heap[0].Current() == d.curr {
			if d.heap[0].Next() {
				heap.Fix(&d.heap, 0)
			} else {
				heap.Pop(&d.heap)
			}
		}
	}
	return d.advance()
}

func (d *Disjunction[T]) Seek(target postings.ID) postings.ID {
	if d.curr == postings.EOFID || (d.curr != postings.InvalidID && target <= d.curr) {
		return d.curr
	}
	if d.curr == postings.InvalidID {
		live := d.heap[:0]
		for _, it := range d.heap {
			if it.Seek(target) != postings.EOFID {
				live = append(live, it)
			}
		}
		d.heap = live
		heap.Init(&d.heap)
	} else {
		for len(d.heap) > 0 && d.heap[0].Current() < target {
			if d.heap[0].Seek(target) != postings.EOFID {
				heap.Fix(&d.heap, 0)
			} else {
				heap.Pop(&d.heap)
			}
		}
	}
	d.advance()
	return d.curr
}

func (d *Disjunction[T]) advance() bool {
	if len(d.heap) == 0 {
		d.curr = postings.EOFID
		return false
	}
	d.curr = d.heap[0].Current()
	return true
}

func (d *Disjunction[T]) Cost() uint64 {
	return d.cost
}

// Visit calls fn with every sub iterator positioned at the current document.
// Iteration stops when fn returns false.
func (d *Disjunction[T]) Visit(fn func(T) bool) {
	if d.curr == postings.InvalidID || d.curr == postings.EOFID {
		return
	}
	d.visit(0, fn)
}

func (d *Disjunction[T]) visit(i int, fn func(T) bool) bool {
	if i >= len(d.heap) || d.heap[i].Current() != d.curr {
		return true
	}
	if !fn(d.heap[i]) {
		return false
	}
	return d.visit(2*i+1, fn) && d.visit(2*i+2, fn)
}

type disjunctionHeap[T postings.Iterator] []T

func (h disjunctionHeap[T]) Len() int           { return len(h) }
func (h disjunctionHeap[T]) Less(i, j int) bool { return h[i].Current() < h[j].Current() }
func (h disjunctionHeap[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *disjunctionHeap[T]) Push(x any) {
	*h = append(*h, x.(T))
}

func (h *disjunctionHeap[T]) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
