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
	"fmt"

	"github.com/m3db/m3ninx/search/query"
	xconfig "github.com/m3db/m3ninx/x/config"

	"github.com/spf13/cobra"
)

func newClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify PATTERN",
		Short: "classify a wildcard pattern",
		Long:  "Classify prints how a wildcard pattern is evaluated and the literal it reduces to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, literal := query.ClassifyWildcard([]byte(args[0]))
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", typ, literal)
			return err
		},
	}
}

func newConfigCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "inspect the configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "print the merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return fmt.Errorf("unable to load config: %v", err)
			}
			return xconfig.Dump(cfg, cmd.OutOrStdout())
		},
	})
	return cmd
}
