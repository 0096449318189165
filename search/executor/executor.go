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

// Package executor runs filters against index snapshots.
package executor

import (
	"context"
	"sort"
	"time"

	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/postings"
	"github.com/m3db/m3ninx/search"
	"github.com/m3db/m3ninx/x/instrument"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"github.com/uber-go/tally"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	prepareSpanName = "search.prepare"
	executeSpanName = "search.execute"
)

// Hit is a live document matching a filter.
type Hit struct {
	Segment int
	ID      postings.ID
	Score   float64
}

// Result is the result of executing a filter.
type Result struct {
	// Hits are ordered by descending score, then by segment and ID.
	Hits []Hit
	// Total is the number of live documents matched, before the limit.
	Total int
}

type metrics struct {
	prepare  instrument.MethodMetrics
	execute  instrument.MethodMetrics
	segments tally.Counter
	hits     tally.Counter
	deleted  tally.Counter
	slow     tally.Counter
}

func newMetrics(scope tally.Scope, opts instrument.TimerOptions) metrics {
	return metrics{
		prepare:  instrument.NewMethodMetrics(scope, "prepare", opts),
		execute:  instrument.NewMethodMetrics(scope, "execute", opts),
		segments: scope.Counter("segments.executed"),
		hits:     scope.Counter("hits"),
		deleted:  scope.Counter("hits.deleted"),
		slow:     scope.Counter("slow-queries"),
	}
}

// Executor prepares filters and executes them on every segment of a snapshot.
// It is safe for concurrent use.
type Executor struct {
	opts    Options
	logger  *zap.Logger
	tracer  opentracing.Tracer
	metrics metrics
}

// NewExecutor returns a new executor. When a prepared cache is set, it serves
// every filter kind through a copy of the optimiser, leaving the optimiser
// of opts untouched.
func NewExecutor(opts Options) (*Executor, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if cache := opts.PreparedCache(); cache != nil {
		optimiser := opts.Optimiser().Clone()
		for _, k := range cachedKinds {
			optimiser.Insert(k, search.CachingRewrite(cache, optimiser.Find(k)))
		}
		opts = opts.SetOptimiser(optimiser)
	}

	iopts := opts.InstrumentOptions()
	return &Executor{
		opts:    opts,
		logger:  iopts.Logger(),
		tracer:  iopts.Tracer(),
		metrics: newMetrics(iopts.MetricsScope().SubScope("executor"), iopts.TimerOptions()),
	}, nil
}

var cachedKinds = []search.Kind{
	search.KindTerm,
	search.KindTerms,
	search.KindPrefix,
	search.KindWildcard,
	search.KindLevenshtein,
	search.KindRange,
	search.KindPhrase,
	search.KindSamePosition,
}

// Execute prepares the filter against the snapshot and returns its live
// matching documents.
func (e *Executor) Execute(ctx context.Context, r index.Reader, f search.Filter) (Result, error) {
	start := time.Now()

	p, err := e.prepare(ctx, r, f)
	if err != nil {
		return Result{}, err
	}

	execStart := time.Now()
	result, err := e.execute(ctx, r, p)
	e.metrics.execute.ReportSuccessOrError(err, time.Since(execStart))
	if err != nil {
		return Result{}, err
	}

	if took := time.Since(start); took > e.opts.SlowQueryThreshold() {
		e.metrics.slow.Inc(1)
		e.logger.Warn("slow query",
			zap.Stringer("filter", f),
			zap.Duration("took", took),
			zap.Int("segments", len(r.Segments())),
			zap.Int("hits", result.Total),
		)
	}
	return result, nil
}

func (e *Executor) prepare(ctx context.Context, r index.Reader, f search.Filter) (search.Prepared, error) {
	sp, ctx := opentracing.StartSpanFromContextWithTracer(ctx, e.tracer, prepareSpanName)
	sp.SetTag("filter", f.String())
	defer sp.Finish()

	start := time.Now()
	p, err := e.opts.Optimiser().Prepare(ctx, r, f, e.opts.Order())
	e.metrics.prepare.ReportSuccessOrError(err, time.Since(start))
	if err != nil {
		ext.Error.Set(sp, true)
		sp.LogKV("error", err.Error())
		return nil, errors.Wrapf(err, "could not prepare %s", f)
	}
	if search.IsEmpty(p) {
		sp.SetTag("empty", true)
	}
	return p, nil
}

func (e *Executor) execute(ctx context.Context, r index.Reader, p search.Prepared) (Result, error) {
	var (
		segs    = r.Segments()
		results = make([][]Hit, len(segs))
		totals  = make([]int, len(segs))
	)
	if search.IsEmpty(p) {
		return Result{}, nil
	}

	sem := semaphore.NewWeighted(int64(e.opts.Concurrency()))
	g, gctx := errgroup.WithContext(ctx)
	for i, seg := range segs {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		i, seg := i, seg
		g.Go(func() error {
			defer sem.Release(1)
			hits, total, err := e.executeSegment(gctx, i, seg, p)
			if err != nil {
				e.logger.Error("could not execute segment",
					zap.Int("segment", i),
					zap.Error(err),
				)
				return err
			}
			results[i], totals[i] = hits, total
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	var res Result
	for i := range results {
		res.Hits = append(res.Hits, results[i]...)
		res.Total += totals[i]
	}
	res.Hits = topK(res.Hits, e.opts.Limit())
	return res, nil
}

func (e *Executor) executeSegment(
	ctx context.Context,
	idx int,
	seg index.SegmentReader,
	p search.Prepared,
) ([]Hit, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	sp, ctx := opentracing.StartSpanFromContextWithTracer(ctx, e.tracer, executeSpanName)
	sp.SetTag("segment", idx)
	defer sp.Finish()

	it, err := p.Execute(ctx, seg, e.opts.Order())
	if err != nil {
		ext.Error.Set(sp, true)
		return nil, 0, errors.Wrapf(err, "could not execute segment %d", idx)
	}

	var (
		hits    []Hit
		total   int
		deleted int64
		limit   = e.opts.Limit()
	)
	for it.Next() {
		id := it.Current()
		if !seg.IsLive(id) {
			deleted++
			continue
		}
		total++
		hits = append(hits, Hit{Segment: idx, ID: id, Score: it.Score()})
		if limit > 0 && len(hits) >= 2*limit {
			hits = topK(hits, limit)
		}
	}

	e.metrics.segments.Inc(1)
	e.metrics.hits.Inc(int64(total))
	e.metrics.deleted.Inc(deleted)
	sp.SetTag("hits", total)
	return topK(hits, limit), total, nil
}

// topK sorts the hits by descending score, then by segment and ID, and
// returns the first k, every hit when k is 0.
func topK(hits []Hit, k int) []Hit {
	sort.Slice(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Segment != b.Segment {
			return a.Segment < b.Segment
		}
		return a.ID < b.ID
	})
	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits
}
