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
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m3db/m3ninx/doc"
	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/index/segment"
	"github.com/m3db/m3ninx/index/segment/builder"
	"github.com/m3db/m3ninx/index/segment/fst"
	"github.com/m3db/m3ninx/postings"
	"github.com/m3db/m3ninx/search"
	"github.com/m3db/m3ninx/search/query"
	"github.com/m3db/m3ninx/search/scorer"
	"github.com/m3db/m3ninx/x/instrument"

	"github.com/golang/mock/gomock"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var errSegment = errors.New("segment failure")

func newSegment(t *testing.T, id segment.ID, bodies ...string) *fst.Segment {
	b := builder.NewBuilder(builder.NewOptions().SetConcurrency(1))
	for _, body := range bodies {
		_, err := b.Insert(doc.Document{
			ID:     []byte(body),
			Fields: doc.Fields{{Name: []byte("body"), Value: []byte(body)}},
		})
		require.NoError(t, err)
	}
	seg, err := b.Seal(id)
	require.NoError(t, err)
	return seg
}

func newTestReader(t *testing.T) index.Reader {
	return index.NewReader(
		newSegment(t, 1, "fox", "dog", "fox fox fox"),
		newSegment(t, 2, "the quick brown fox jumps over the lazy dog", "fox dog"),
	)
}

func newTestOptions(scope tally.Scope) Options {
	iopts := instrument.NewOptions().SetMetricsScope(scope)
	return NewOptions().
		SetInstrumentOptions(iopts).
		SetOrder(search.NewOrder(scorer.NewBM25(scorer.DefaultK1, scorer.DefaultB))).
		SetConcurrency(2)
}

func TestExecutorRanksAcrossSegments(t *testing.T) {
	r := newTestReader(t)
	e, err := NewExecutor(newTestOptions(tally.NoopScope).SetLimit(2))
	require.NoError(t, err)

	res, err := e.Execute(context.Background(), r, query.NewTermFilter("body", []byte("fox")))
	require.NoError(t, err)
	require.Equal(t, 4, res.Total)
	require.Len(t, res.Hits, 2)
	require.Equal(t, Hit{Segment: 0, ID: 3, Score: res.Hits[0].Score}, res.Hits[0])
	require.True(t, res.Hits[0].Score >= res.Hits[1].Score)
}

func TestExecutorUnscored(t *testing.T) {
	r := newTestReader(t)
	e, err := NewExecutor(newTestOptions(tally.NoopScope).SetOrder(search.Order{}))
	require.NoError(t, err)

	res, err := e.Execute(context.Background(), r, query.NewPrefixFilter("body", []byte("d")))
	require.NoError(t, err)
	require.Equal(t, []Hit{
		{Segment: 0, ID: 2},
		{Segment: 1, ID: 1},
		{Segment: 1, ID: 2},
	}, res.Hits)
}

func TestExecutorMasksDeletedDocuments(t *testing.T) {
	seg := newSegment(t, 1, "fox", "dog", "fox fox fox")
	r := index.NewReader(seg.WithDeletes(3))

	scope := tally.NewTestScope("", nil)
	e, err := NewExecutor(newTestOptions(scope))
	require.NoError(t, err)

	res, err := e.Execute(context.Background(), r, query.NewTermFilter("body", []byte("fox")))
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	require.Len(t, res.Hits, 1)
	require.Equal(t, postings.ID(1), res.Hits[0].ID)

	counters := scope.Snapshot().Counters()
	require.Equal(t, int64(1), counters["executor.hits.deleted+"].Value())
	require.Equal(t, int64(1), counters["executor.segments.executed+"].Value())
}

func TestExecutorEmptyFilter(t *testing.T) {
	r := newTestReader(t)
	e, err := NewExecutor(newTestOptions(tally.NoopScope))
	require.NoError(t, err)

	res, err := e.Execute(context.Background(), r, query.NewTermFilter("body", []byte("cat")))
	require.NoError(t, err)
	require.Equal(t, Result{}, res)
}

func TestExecutorPreparedCache(t *testing.T) {
	r := newTestReader(t)
	scope := tally.NewTestScope("", nil)
	cache := search.NewPreparedCache(8)
	e, err := NewExecutor(newTestOptions(scope).
		SetOptimiser(search.NewOptimiser()).
		SetPreparedCache(cache))
	require.NoError(t, err)

	f := query.NewTermFilter("body", []byte("dog"))
	first, err := e.Execute(context.Background(), r, f)
	require.NoError(t, err)
	require.Equal(t, 1, cache.Len())

	second, err := e.Execute(context.Background(), r, query.NewTermFilter("body", []byte("dog")))
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, cache.Len())
	require.Equal(t, int64(2), scope.Snapshot().Counters()["executor.prepare.success+"].Value())
}

func TestExecutorsShareOptimiser(t *testing.T) {
	var (
		r         = newTestReader(t)
		ctx       = context.Background()
		prepares  = 0
		optimiser = search.NewOptimiser()
	)
	optimiser.Insert(search.KindTerm, func(
		ctx context.Context, r index.Reader, f search.Filter, ord search.Order, boost float64,
	) (search.Prepared, error) {
		prepares++
		return search.DefaultRewrite(ctx, r, f, ord, boost)
	})
	opts := newTestOptions(tally.NoopScope).
		SetOptimiser(optimiser).
		SetPreparedCache(search.NewPreparedCache(8)).
		SetConcurrency(1)

	first, err := NewExecutor(opts)
	require.NoError(t, err)
	second, err := NewExecutor(opts)
	require.NoError(t, err)

	f := query.NewTermFilter("body", []byte("dog"))
	for _, e := range []*Executor{first, second, first} {
		_, err := e.Execute(ctx, r, f)
		require.NoError(t, err)
	}
	require.Equal(t, 1, prepares)

	// The optimiser of the options still prepares without the cache.
	for i := 0; i < 2; i++ {
		_, err := optimiser.Prepare(ctx, r, f, search.Order{})
		require.NoError(t, err)
	}
	require.Equal(t, 3, prepares)
}

func TestExecutorPrepareError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	scope := tally.NewTestScope("", nil)
	e, err := NewExecutor(newTestOptions(scope))
	require.NoError(t, err)

	f := search.NewMockFilter(ctrl)
	f.EXPECT().Kind().Return(search.KindTerm).AnyTimes()
	f.EXPECT().String().Return("mock").AnyTimes()
	f.EXPECT().Prepare(gomock.Any(), gomock.Any(), gomock.Any(), 1.0).Return(nil, errSegment)

	_, err = e.Execute(context.Background(), newTestReader(t), f)
	require.Error(t, err)
	require.Equal(t, int64(1), scope.Snapshot().Counters()["executor.prepare.errors+"].Value())
}

func TestExecutorSegmentError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := search.NewMockPrepared(ctrl)
	p.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errSegment).MinTimes(1)

	optimiser := search.NewOptimiser()
	optimiser.Insert(search.KindTerm, func(
		context.Context, index.Reader, search.Filter, search.Order, float64,
	) (search.Prepared, error) {
		return p, nil
	})
	e, err := NewExecutor(newTestOptions(tally.NoopScope).SetOptimiser(optimiser).SetConcurrency(1))
	require.NoError(t, err)

	_, err = e.Execute(context.Background(), newTestReader(t), query.NewTermFilter("body", []byte("fox")))
	require.Error(t, err)
	require.True(t, errors.Is(err, errSegment))
}

func TestExecutorCanceled(t *testing.T) {
	e, err := NewExecutor(newTestOptions(tally.NoopScope))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Execute(ctx, newTestReader(t), query.NewTermFilter("body", []byte("fox")))
	require.Equal(t, context.Canceled, err)
}

func TestExecutorTracing(t *testing.T) {
	tracer := mocktracer.New()
	opts := newTestOptions(tally.NoopScope)
	e, err := NewExecutor(opts.SetInstrumentOptions(opts.InstrumentOptions().SetTracer(tracer)))
	require.NoError(t, err)

	_, err = e.Execute(context.Background(), newTestReader(t), query.NewTermFilter("body", []byte("fox")))
	require.NoError(t, err)

	var names []string
	for _, sp := range tracer.FinishedSpans() {
		names = append(names, sp.OperationName)
	}
	require.ElementsMatch(t, []string{prepareSpanName, executeSpanName, executeSpanName}, names)
}

func TestExecutorSlowQuery(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	e, err := NewExecutor(newTestOptions(scope).SetSlowQueryThreshold(-time.Second))
	require.NoError(t, err)

	_, err = e.Execute(context.Background(), newTestReader(t), query.NewTermFilter("body", []byte("fox")))
	require.NoError(t, err)
	require.Equal(t, int64(1), scope.Snapshot().Counters()["executor.slow-queries+"].Value())
}

func TestOptionsValidate(t *testing.T) {
	require.NoError(t, NewOptions().Validate())
	require.Equal(t, errOptimiserNotSet, NewOptions().SetOptimiser(nil).Validate())
	require.Equal(t, errInvalidConcurrency, NewOptions().SetConcurrency(0).Validate())
	require.Equal(t, errInvalidLimit, NewOptions().SetLimit(-1).Validate())

	_, err := NewExecutor(NewOptions().SetConcurrency(0))
	require.Error(t, err)
}
