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

// Package config contains the YAML configuration of a search process and
// builds the options of each component from it.
package config

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/index/segment/builder"
	"github.com/m3db/m3ninx/search"
	"github.com/m3db/m3ninx/search/executor"
	"github.com/m3db/m3ninx/search/query"
	"github.com/m3db/m3ninx/search/scorer"
	"github.com/m3db/m3ninx/x/instrument"

	"github.com/uber-go/tally"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Configuration is the configuration of a search process.
type Configuration struct {
	// Logging configures the logger.
	Logging LoggingConfiguration `yaml:"logging"`

	// Metrics configures the metrics scope.
	Metrics MetricsConfiguration `yaml:"metrics"`

	// Builder configures the segment builder.
	Builder BuilderConfiguration `yaml:"builder"`

	// Query configures the defaults of multi term filters.
	Query QueryConfiguration `yaml:"query"`

	// Scorer configures how matches are scored.
	Scorer ScorerConfiguration `yaml:"scorer"`

	// Executor configures the executor.
	Executor ExecutorConfiguration `yaml:"executor"`
}

// LoggingConfiguration configures the zap logger.
type LoggingConfiguration struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// BuildLogger builds a production logger at the configured level.
func (c LoggingConfiguration) BuildLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if c.Level != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(c.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %s: %v", c.Level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}
	if c.File != "" {
		cfg.OutputPaths = []string{c.File}
	}
	return cfg.Build()
}

// MetricsConfiguration configures the root metrics scope.
type MetricsConfiguration struct {
	Prefix         string            `yaml:"prefix"`
	Tags           map[string]string `yaml:"tags"`
	ReportInterval time.Duration     `yaml:"reportInterval"`
	SampleRate     float64           `yaml:"sampleRate" validate:"min=0,max=1"`
}

// NewRootScope returns a root scope, closing it stops reporting.
func (c MetricsConfiguration) NewRootScope() (tally.Scope, io.Closer) {
	return tally.NewRootScope(tally.ScopeOptions{
		Prefix:   c.Prefix,
		Tags:     c.Tags,
		Reporter: tally.NullStatsReporter,
	}, c.ReportInterval)
}

// TimerOptions returns the method timer options.
func (c MetricsConfiguration) TimerOptions() instrument.TimerOptions {
	rate := c.SampleRate
	if rate == 0 {
		rate = 1
	}
	return instrument.TimerOptions{SampleRate: rate}
}

// BuilderConfiguration configures the segment builder.
type BuilderConfiguration struct {
	Concurrency      int      `yaml:"concurrency" validate:"min=0"`
	KeywordFields    []string `yaml:"keywordFields"`
	DisablePositions bool     `yaml:"disablePositions"`
}

// NewOptions returns the builder options.
func (c BuilderConfiguration) NewOptions(iopts instrument.Options) builder.Options {
	opts := builder.NewOptions().SetInstrumentOptions(iopts)
	if c.Concurrency > 0 {
		opts = opts.SetConcurrency(c.Concurrency)
	}
	if len(c.KeywordFields) > 0 {
		analyzers := make(map[string]builder.Analyzer, len(c.KeywordFields))
		for _, f := range c.KeywordFields {
			analyzers[f] = builder.NewKeywordAnalyzer()
		}
		opts = opts.SetFieldAnalyzers(analyzers)
	}
	if c.DisablePositions {
		opts = opts.SetFeatures(index.FeatureFrequency)
	}
	return opts
}

// QueryConfiguration configures how multi term filters select the terms
// they score.
type QueryConfiguration struct {
	Selector         *query.SelectorKind `yaml:"selector"`
	ScoredTermsLimit *int                `yaml:"scoredTermsLimit"`
}

// SelectorOrDefault returns the selector kind, by postings length when
// unset.
func (c QueryConfiguration) SelectorOrDefault() query.SelectorKind {
	if c.Selector == nil {
		return query.SelectByPostingsLength
	}
	return *c.Selector
}

// ScoredTermsLimitOrDefault returns the scored terms limit.
func (c QueryConfiguration) ScoredTermsLimitOrDefault() int {
	if c.ScoredTermsLimit == nil {
		return query.DefaultScoredTermsLimit
	}
	return *c.ScoredTermsLimit
}

// ScorerType is the name of a scoring model.
type ScorerType string

const (
	// NoScorer disables scoring.
	NoScorer ScorerType = "none"
	// BM25Scorer scores with Okapi BM25.
	BM25Scorer ScorerType = "bm25"
	// TFIDFScorer scores with TF-IDF.
	TFIDFScorer ScorerType = "tfidf"
)

// ScorerConfiguration configures the order matches are scored with.
type ScorerConfiguration struct {
	Type  ScorerType `yaml:"type" validate:"regexp=^(none|bm25|tfidf)?$"`
	K1    *float64   `yaml:"k1"`
	B     *float64   `yaml:"b"`
	Norms bool       `yaml:"norms"`
}

// NewOrder returns the order of the scorer, BM25 when unset.
func (c ScorerConfiguration) NewOrder() (search.Order, error) {
	switch c.Type {
	case NoScorer:
		return search.NewOrder(), nil
	case "", BM25Scorer:
		k1, b := scorer.DefaultK1, scorer.DefaultB
		if c.K1 != nil {
			k1 = *c.K1
		}
		if c.B != nil {
			b = *c.B
		}
		if k1 < 0 || b < 0 || b > 1 {
			return search.Order{}, fmt.Errorf("invalid bm25 parameters: k1=%v, b=%v", k1, b)
		}
		return search.NewOrder(scorer.NewBM25(k1, b)), nil
	case TFIDFScorer:
		return search.NewOrder(scorer.NewTFIDF(c.Norms)), nil
	default:
		return search.Order{}, fmt.Errorf("unknown scorer type: %s", c.Type)
	}
}

// ExecutorConfiguration configures the executor.
type ExecutorConfiguration struct {
	Concurrency        int           `yaml:"concurrency" validate:"min=0"`
	Limit              int           `yaml:"limit" validate:"min=0"`
	PreparedCacheSize  int           `yaml:"preparedCacheSize" validate:"min=0"`
	SlowQueryThreshold time.Duration `yaml:"slowQueryThreshold"`
}

// NewOptions returns the executor options.
func (c ExecutorConfiguration) NewOptions(
	iopts instrument.Options,
	order search.Order,
) executor.Options {
	concurrency := c.Concurrency
	if concurrency == 0 {
		concurrency = runtime.NumCPU()
	}
	opts := executor.NewOptions().
		SetInstrumentOptions(iopts).
		SetOrder(order).
		SetConcurrency(concurrency).
		SetLimit(c.Limit)
	if c.PreparedCacheSize > 0 {
		opts = opts.SetPreparedCache(search.NewPreparedCache(c.PreparedCacheSize))
	}
	if c.SlowQueryThreshold > 0 {
		opts = opts.SetSlowQueryThreshold(c.SlowQueryThreshold)
	}
	return opts
}

// Components are the options built from a configuration.
type Components struct {
	InstrumentOptions instrument.Options
	BuilderOptions    builder.Options
	ExecutorOptions   executor.Options

	closer io.Closer
}

// Close stops reporting metrics and flushes the logger.
func (c Components) Close() error {
	_ = c.InstrumentOptions.Logger().Sync()
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// NewComponents builds the options of every component.
func (c Configuration) NewComponents() (Components, error) {
	logger, err := c.Logging.BuildLogger()
	if err != nil {
		return Components{}, err
	}
	order, err := c.Scorer.NewOrder()
	if err != nil {
		return Components{}, err
	}

	scope, closer := c.Metrics.NewRootScope()
	iopts := instrument.NewOptions().
		SetLogger(logger).
		SetMetricsScope(scope).
		SetTimerOptions(c.Metrics.TimerOptions())

	execOpts := c.Executor.NewOptions(iopts, order)
	if err := execOpts.Validate(); err != nil {
		closer.Close()
		return Components{}, err
	}
	return Components{
		InstrumentOptions: iopts,
		BuilderOptions:    c.Builder.NewOptions(iopts),
		ExecutorOptions:   execOpts,
		closer:            closer,
	}, nil
}
