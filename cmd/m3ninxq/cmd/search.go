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

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/search/executor"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type searchOptions struct {
	docs        string
	segmentSize int
	limit       int
	deleted     []string
}

type hitOutput struct {
	ID      string  `json:"id"`
	Score   float64 `json:"score"`
	Segment int     `json:"segment"`
}

func newSearchCommand(root *rootOptions) *cobra.Command {
	var opts searchOptions
	cmd := &cobra.Command{
		Use:   "search [flags] FILTER",
		Short: "run a filter against a documents file",
		Long:  "Search indexes the documents file, one JSON document per line, then prints the matches of the filter by descending score",
		Args:  cobra.MinimumNArgs(1),
		Example: `# Documents with a term starting with "qu" followed by "fox":
m3ninxq search --docs docs.jsonl 'body:"qu* fox"'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if !cmd.Flags().Changed("limit") {
				opts.limit = -1
			}
			return runSearch(ctx, cmd, root, opts, strings.Join(args, " "))
		},
	}
	cmd.Flags().StringVar(&opts.docs, "docs", "-", "documents file, - for stdin")
	cmd.Flags().IntVar(&opts.segmentSize, "segment-size", 10000, "documents per segment, 0 for a single segment")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "maximum number of matches to print, 0 for all")
	cmd.Flags().StringSliceVar(&opts.deleted, "delete", nil, "IDs of documents to mask as deleted")
	return cmd
}

func runSearch(
	ctx context.Context,
	cmd *cobra.Command,
	root *rootOptions,
	opts searchOptions,
	expr string,
) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return fmt.Errorf("unable to load config: %v", err)
	}
	if opts.limit >= 0 {
		cfg.Executor.Limit = opts.limit
	}
	components, err := cfg.NewComponents()
	if err != nil {
		return err
	}
	defer components.Close()

	p := parser{
		selector: cfg.Query.SelectorOrDefault(),
		limit:    cfg.Query.ScoredTermsLimitOrDefault(),
	}
	f, err := p.parse(expr)
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	if opts.docs != "-" {
		file, err := os.Open(opts.docs)
		if err != nil {
			return err
		}
		defer file.Close()
		in = file
	}
	deleted := make(map[string]struct{}, len(opts.deleted))
	for _, id := range opts.deleted {
		deleted[id] = struct{}{}
	}
	segs, err := loadSegments(in, loadOptions{
		builderOpts: components.BuilderOptions,
		segmentSize: opts.segmentSize,
		deleted:     deleted,
	})
	if err != nil {
		return err
	}

	e, err := executor.NewExecutor(components.ExecutorOptions)
	if err != nil {
		return err
	}
	res, err := e.Execute(ctx, index.NewReader(segs...), f)
	if err != nil {
		return err
	}
	components.InstrumentOptions.Logger().Debug("executed filter",
		zap.Stringer("filter", f),
		zap.Int("total", res.Total),
	)
	return writeHits(cmd.OutOrStdout(), segs, res)
}

func writeHits(w io.Writer, segs []index.SegmentReader, res executor.Result) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	for _, h := range res.Hits {
		d, err := segs[h.Segment].Document(h.ID)
		if err != nil {
			return err
		}
		if err := enc.Encode(hitOutput{ID: string(d.ID), Score: h.Score, Segment: h.Segment}); err != nil {
			return err
		}
	}
	return nil
}
