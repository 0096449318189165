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

// Package instrument provides the logging, metrics and tracing options shared
// by every component.
package instrument

import (
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/uber-go/tally"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Options represents the options for instrumentation.
type Options interface {
	// SetLogger sets the zap logger.
	SetLogger(value *zap.Logger) Options

	// Logger returns the zap logger.
	Logger() *zap.Logger

	// SetMetricsScope sets the metrics scope.
	SetMetricsScope(value tally.Scope) Options

	// MetricsScope returns the metrics scope.
	MetricsScope() tally.Scope

	// SetTracer sets the tracer.
	SetTracer(value opentracing.Tracer) Options

	// Tracer returns the tracer.
	Tracer() opentracing.Tracer

	// SetTimerOptions sets the metrics timer options.
	SetTimerOptions(value TimerOptions) Options

	// TimerOptions returns the metrics timer options.
	TimerOptions() TimerOptions
}

// TimerOptions controls how method timers are sampled.
type TimerOptions struct {
	// SampleRate is the fraction of calls that record a latency, in (0, 1].
	SampleRate float64
}

type options struct {
	logger       *zap.Logger
	scope        tally.Scope
	tracer       opentracing.Tracer
	timerOptions TimerOptions
}

// NewOptions creates new instrument options.
func NewOptions() Options {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	return &options{
		logger:       logger,
		scope:        tally.NoopScope,
		tracer:       opentracing.NoopTracer{},
		timerOptions: TimerOptions{SampleRate: 1.0},
	}
}

func (o *options) SetLogger(value *zap.Logger) Options {
	opts := *o
	opts.logger = value
	return &opts
}

func (o *options) Logger() *zap.Logger {
	return o.logger
}

func (o *options) SetMetricsScope(value tally.Scope) Options {
	opts := *o
	opts.scope = value
	return &opts
}

func (o *options) MetricsScope() tally.Scope {
	return o.scope
}

func (o *options) SetTracer(value opentracing.Tracer) Options {
	opts := *o
	opts.tracer = value
	return &opts
}

func (o *options) Tracer() opentracing.Tracer {
	return o.tracer
}

func (o *options) SetTimerOptions(value TimerOptions) Options {
	opts := *o
	opts.timerOptions = value
	return &opts
}

func (o *options) TimerOptions() TimerOptions {
	return o.timerOptions
}

// MethodMetrics is a bundle of common metrics with a uniform naming scheme.
type MethodMetrics struct {
	Errors  tally.Counter
	Success tally.Counter
	Latency tally.Timer

	sampleRate float64
	calls      *atomic.Uint64
}

// NewMethodMetrics returns a new MethodMetrics for the given method name.
func NewMethodMetrics(scope tally.Scope, methodName string, opts TimerOptions) MethodMetrics {
	sampleRate := opts.SampleRate
	if sampleRate <= 0 || sampleRate > 1 {
		sampleRate = 1
	}
	return MethodMetrics{
		Errors:     scope.Counter(methodName + ".errors"),
		Success:    scope.Counter(methodName + ".success"),
		Latency:    scope.Timer(methodName + ".latency"),
		sampleRate: sampleRate,
		calls:      atomic.NewUint64(0),
	}
}

// ReportSuccess reports a success with the given duration.
func (m *MethodMetrics) ReportSuccess(d time.Duration) {
	m.Success.Inc(1)
	m.reportLatency(d)
}

// ReportError reports an error with the given duration.
func (m *MethodMetrics) ReportError(d time.Duration) {
	m.Errors.Inc(1)
	m.reportLatency(d)
}

// ReportSuccessOrError reports a success or error depending on err.
func (m *MethodMetrics) ReportSuccessOrError(err error, d time.Duration) {
	if err != nil {
		m.ReportError(d)
		return
	}
	m.ReportSuccess(d)
}

func (m *MethodMetrics) reportLatency(d time.Duration) {
	n := m.calls.Inc()
	every := uint64(1 / m.sampleRate)
	if every <= 1 || n%every == 0 {
		m.Latency.Record(d)
	}
}
