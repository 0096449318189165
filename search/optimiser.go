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

package search

import (
	"context"
	"sync"

	"github.com/m3db/m3ninx/index"
)

// RewriteFn prepares a filter, possibly rewriting it first.
type RewriteFn func(
	ctx context.Context,
	r index.Reader,
	f Filter,
	ord Order,
	boost float64,
) (Prepared, error)

// DefaultRewrite prepares the filter as is.
func DefaultRewrite(
	ctx context.Context,
	r index.Reader,
	f Filter,
	ord Order,
	boost float64,
) (Prepared, error) {
	return f.Prepare(ctx, r, ord, boost)
}

// Optimiser is a registry of rewrite rules per filter kind. It is safe for
// concurrent use.
type Optimiser struct {
	sync.RWMutex

	rules map[Kind]RewriteFn
}

// NewOptimiser returns an optimiser with no rules.
func NewOptimiser() *Optimiser {
	return &Optimiser{rules: make(map[Kind]RewriteFn)}
}

// Find returns the rule of the kind or DefaultRewrite.
func (o *Optimiser) Find(k Kind) RewriteFn {
	o.RLock()
	fn, ok := o.rules[k]
	o.RUnlock()
	if !ok {
		return DefaultRewrite
	}
	return fn
}

// Clone returns an optimiser with the rules of o.
func (o *Optimiser) Clone() *Optimiser {
	o.RLock()
	defer o.RUnlock()
	rules := make(map[Kind]RewriteFn, len(o.rules))
	for k, fn := range o.rules {
		rules[k] = fn
	}
	return &Optimiser{rules: rules}
}

// Insert registers the rule of the kind, replacing any previous one.
func (o *Optimiser) Insert(k Kind, fn RewriteFn) {
	o.Lock()
	o.rules[k] = fn
	o.Unlock()
}

// Erase removes the rule of the kind and reports whether one existed.
func (o *Optimiser) Erase(k Kind) bool {
	o.Lock()
	defer o.Unlock()
	_, ok := o.rules[k]
	delete(o.rules, k)
	return ok
}

// Prepare prepares the filter with the rule registered for its kind.
func (o *Optimiser) Prepare(
	ctx context.Context,
	r index.Reader,
	f Filter,
	ord Order,
) (Prepared, error) {
	return o.Find(f.Kind())(ctx, r, f, ord, 1)
}
