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
	"container/list"
	"context"
	"sync"

	"github.com/m3db/m3ninx/index"
)

// PreparedCache is a fixed size LRU of prepared queries keyed by snapshot and
// filter. Lookups hash the filter and confirm candidates with Equal. A cache
// must only be used with a single Order since prepared statistics depend on
// it. It is safe for concurrent use.
//
// Entries are grouped per snapshot so that every query prepared against a
// snapshot can be purged when the snapshot is released.
//
// The cache keeps the filters it is given, which must not be mutated once
// added. An entry whose filter no longer hashes to its key is dropped when
// next looked up.
type PreparedCache struct {
	sync.Mutex

	size      int
	evictList *list.List
	items     map[index.Reader]map[uint64][]*list.Element
}

type preparedEntry struct {
	reader   index.Reader
	hash     uint64
	filter   Filter
	boost    float64
	prepared Prepared
}

// NewPreparedCache returns a cache holding at most size queries.
func NewPreparedCache(size int) *PreparedCache {
	if size < 1 {
		size = 1
	}
	return &PreparedCache{
		size:      size,
		evictList: list.New(),
		items:     make(map[index.Reader]map[uint64][]*list.Element),
	}
}

// Get returns the cached query prepared from an equal filter with the same
// effective boost.
func (c *PreparedCache) Get(r index.Reader, f Filter, boost float64) (Prepared, bool) {
	boost *= f.Boost()

	c.Lock()
	defer c.Unlock()

	if e, ok := c.find(r, f.Hash(), f, boost); ok {
		c.evictList.MoveToFront(e)
		return e.Value.(*preparedEntry).prepared, true
	}
	return nil, false
}

// Add caches the query prepared from the filter and boost.
func (c *PreparedCache) Add(r index.Reader, f Filter, boost float64, p Prepared) {
	boost *= f.Boost()

	c.Lock()
	defer c.Unlock()

	hash := f.Hash()
	if e, ok := c.find(r, hash, f, boost); ok {
		c.evictList.MoveToFront(e)
		e.Value.(*preparedEntry).prepared = p
		return
	}

	e := c.evictList.PushFront(&preparedEntry{
		reader:   r,
		hash:     hash,
		filter:   f,
		boost:    boost,
		prepared: p,
	})
	byHash, ok := c.items[r]
	if !ok {
		byHash = make(map[uint64][]*list.Element)
		c.items[r] = byHash
	}
	byHash[hash] = append(byHash[hash], e)

	if c.evictList.Len() > c.size {
		c.removeElement(c.evictList.Back())
	}
}

// PurgeReader drops every query prepared against the snapshot.
func (c *PreparedCache) PurgeReader(r index.Reader) {
	c.Lock()
	defer c.Unlock()

	for _, elems := range c.items[r] {
		for _, e := range elems {
			c.evictList.Remove(e)
		}
	}
	delete(c.items, r)
}

// Len returns the number of cached queries.
func (c *PreparedCache) Len() int {
	c.Lock()
	defer c.Unlock()
	return c.evictList.Len()
}

func (c *PreparedCache) find(r index.Reader, hash uint64, f Filter, boost float64) (*list.Element, bool) {
	var (
		found *list.Element
		stale []*list.Element
	)
	for _, e := range c.items[r][hash] {
		entry := e.Value.(*preparedEntry)
		if entry.filter.Hash() != entry.hash {
			stale = append(stale, e)
			continue
		}
		if found == nil && entry.boost == boost && entry.filter.Equal(f) {
			found = e
		}
	}
	for _, e := range stale {
		c.removeElement(e)
	}
	return found, found != nil
}

func (c *PreparedCache) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	entry := e.Value.(*preparedEntry)
	byHash := c.items[entry.reader]
	elems := byHash[entry.hash]
	for i, other := range elems {
		if other == e {
			elems = append(elems[:i], elems[i+1:]...)
			break
		}
	}
	if len(elems) == 0 {
		delete(byHash, entry.hash)
	} else {
		byHash[entry.hash] = elems
	}
	if len(byHash) == 0 {
		delete(c.items, entry.reader)
	}
}

// CachingRewrite returns a rule serving prepared queries from the cache and
// preparing misses with next.
func CachingRewrite(cache *PreparedCache, next RewriteFn) RewriteFn {
	return func(
		ctx context.Context,
		r index.Reader,
		f Filter,
		ord Order,
		boost float64,
	) (Prepared, error) {
		if p, ok := cache.Get(r, f, boost); ok {
			return p, nil
		}
		p, err := next(ctx, r, f, ord, boost)
		if err != nil {
			return nil, err
		}
		cache.Add(r, f, boost, p)
		return p, nil
	}
}
