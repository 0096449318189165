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

package builder

import (
	"runtime"

	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/index/segment/fst"
	"github.com/m3db/m3ninx/x/instrument"
)

// Options is a set of options for the segment builder.
type Options interface {
	// SetInstrumentOptions sets the instrument options.
	SetInstrumentOptions(value instrument.Options) Options

	// InstrumentOptions returns the instrument options.
	InstrumentOptions() instrument.Options

	// SetAnalyzer sets the analyzer used for fields without a dedicated one.
	SetAnalyzer(value Analyzer) Options

	// Analyzer returns the default analyzer.
	Analyzer() Analyzer

	// SetFieldAnalyzers sets analyzers for specific fields.
	SetFieldAnalyzers(value map[string]Analyzer) Options

	// FieldAnalyzers returns the analyzers of specific fields.
	FieldAnalyzers() map[string]Analyzer

	// SetFeatures sets the postings data stored for every field.
	SetFeatures(value index.Features) Options

	// Features returns the postings data stored for every field.
	Features() index.Features

	// SetConcurrency sets the number of workers indexing fields.
	SetConcurrency(value int) Options

	// Concurrency returns the number of workers indexing fields.
	Concurrency() int

	// SetFSTOptions sets the options of sealed segments.
	SetFSTOptions(value fst.Options) Options

	// FSTOptions returns the options of sealed segments.
	FSTOptions() fst.Options
}

type opts struct {
	iopts          instrument.Options
	analyzer       Analyzer
	fieldAnalyzers map[string]Analyzer
	features       index.Features
	concurrency    int
	fstOpts        fst.Options
}

// NewOptions returns new options.
func NewOptions() Options {
	iopts := instrument.NewOptions()
	return &opts{
		iopts:       iopts,
		analyzer:    NewStandardAnalyzer(),
		features:    index.AllFeatures,
		concurrency: runtime.NumCPU(),
		fstOpts:     fst.NewOptions().SetInstrumentOptions(iopts),
	}
}

func (o *opts) SetInstrumentOptions(v instrument.Options) Options {
	opts := *o
	opts.iopts = v
	opts.fstOpts = o.fstOpts.SetInstrumentOptions(v)
	return &opts
}

func (o *opts) InstrumentOptions() instrument.Options {
	return o.iopts
}

func (o *opts) SetAnalyzer(v Analyzer) Options {
	opts := *o
	opts.analyzer = v
	return &opts
}

func (o *opts) Analyzer() Analyzer {
	return o.analyzer
}

func (o *opts) SetFieldAnalyzers(v map[string]Analyzer) Options {
	opts := *o
	opts.fieldAnalyzers = v
	return &opts
}

func (o *opts) FieldAnalyzers() map[string]Analyzer {
	return o.fieldAnalyzers
}

func (o *opts) SetFeatures(v index.Features) Options {
	opts := *o
	opts.features = v
	return &opts
}

func (o *opts) Features() index.Features {
	return o.features
}

func (o *opts) SetConcurrency(v int) Options {
	opts := *o
	opts.concurrency = v
	return &opts
}

func (o *opts) Concurrency() int {
	return o.concurrency
}

func (o *opts) SetFSTOptions(v fst.Options) Options {
	opts := *o
	opts.fstOpts = v
	return &opts
}

func (o *opts) FSTOptions() fst.Options {
	return o.fstOpts
}

func analyzerFor(o Options, field string) Analyzer {
	if a, ok := o.FieldAnalyzers()[field]; ok {
		return a
	}
	return o.Analyzer()
}
