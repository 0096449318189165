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

package executor

import (
	"errors"
	"runtime"
	"time"

	"github.com/m3db/m3ninx/search"
	"github.com/m3db/m3ninx/x/instrument"
)

const (
	defaultSlowQueryThreshold = time.Second
)

var (
	errOptimiserNotSet    = errors.New("optimiser not set")
	errInvalidConcurrency = errors.New("concurrency must be positive")
	errInvalidLimit       = errors.New("limit must not be negative")
)

// Options is a set of options for executors.
type Options interface {
	// Validate validates the options.
	Validate() error

	// SetInstrumentOptions sets the instrument options.
	SetInstrumentOptions(value instrument.Options) Options

	// InstrumentOptions returns the instrument options.
	InstrumentOptions() instrument.Options

	// SetOptimiser sets the optimiser preparing filters.
	SetOptimiser(value *search.Optimiser) Options

	// Optimiser returns the optimiser preparing filters.
	Optimiser() *search.Optimiser

	// SetPreparedCache sets the cache of prepared queries, nil disables
	// caching. A cache must only be shared by executors of the same order.
	SetPreparedCache(value *search.PreparedCache) Options

	// PreparedCache returns the cache of prepared queries.
	PreparedCache() *search.PreparedCache

	// SetOrder sets the scoring order, the empty order disables scoring.
	SetOrder(value search.Order) Options

	// Order returns the scoring order.
	Order() search.Order

	// SetConcurrency sets the number of segments executed concurrently.
	SetConcurrency(value int) Options

	// Concurrency returns the number of segments executed concurrently.
	Concurrency() int

	// SetLimit sets the number of hits returned, 0 returns every hit.
	SetLimit(value int) Options

	// Limit returns the number of hits returned.
	Limit() int

	// SetSlowQueryThreshold sets the duration above which queries are logged.
	SetSlowQueryThreshold(value time.Duration) Options

	// SlowQueryThreshold returns the duration above which queries are logged.
	SlowQueryThreshold() time.Duration
}

type options struct {
	iopts              instrument.Options
	optimiser          *search.Optimiser
	cache              *search.PreparedCache
	order              search.Order
	concurrency        int
	limit              int
	slowQueryThreshold time.Duration
}

// NewOptions returns new options.
func NewOptions() Options {
	return &options{
		iopts:              instrument.NewOptions(),
		optimiser:          search.NewOptimiser(),
		concurrency:        runtime.NumCPU(),
		slowQueryThreshold: defaultSlowQueryThreshold,
	}
}

func (o *options) Validate() error {
	if o.optimiser == nil {
		return errOptimiserNotSet
	}
	if o.concurrency <= 0 {
		return errInvalidConcurrency
	}
	if o.limit < 0 {
		return errInvalidLimit
	}
	return nil
}

func (o *options) SetInstrumentOptions(value instrument.Options) Options {
	opts := *o
	opts.iopts = value
	return &opts
}

func (o *options) InstrumentOptions() instrument.Options {
	return o.iopts
}

func (o *options) SetOptimiser(value *search.Optimiser) Options {
	opts := *o
	opts.optimiser = value
	return &opts
}

func (o *options) Optimiser() *search.Optimiser {
	return o.optimiser
}

func (o *options) SetPreparedCache(value *search.PreparedCache) Options {
	opts := *o
	opts.cache = value
	return &opts
}

func (o *options) PreparedCache() *search.PreparedCache {
	return o.cache
}

func (o *options) SetOrder(value search.Order) Options {
	opts := *o
	opts.order = value
	return &opts
}

func (o *options) Order() search.Order {
	return o.order
}

func (o *options) SetConcurrency(value int) Options {
	opts := *o
	opts.concurrency = value
	return &opts
}

func (o *options) Concurrency() int {
	return o.concurrency
}

func (o *options) SetLimit(value int) Options {
	opts := *o
	opts.limit = value
	return &opts
}

func (o *options) Limit() int {
	return o.limit
}

func (o *options) SetSlowQueryThreshold(value time.Duration) Options {
	opts := *o
	opts.slowQueryThreshold = value
	return &opts
}

func (o *options) SlowQueryThreshold() time.Duration {
	return o.slowQueryThreshold
}
