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

// Package cmd implements the m3ninxq commands.
package cmd

import (
	"github.com/m3db/m3ninx/config"
	xconfig "github.com/m3db/m3ninx/x/config"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFiles []string
}

func (o *rootOptions) loadConfig() (config.Configuration, error) {
	var cfg config.Configuration
	if len(o.configFiles) == 0 {
		return cfg, nil
	}
	err := xconfig.LoadFiles(&cfg, o.configFiles, xconfig.Options{})
	return cfg, err
}

// NewRootCommand returns the m3ninxq command.
func NewRootCommand() *cobra.Command {
	var opts rootOptions
	root := &cobra.Command{
		Use:          "m3ninxq",
		Short:        "index documents and search them",
		Long:         "m3ninxq indexes a file of JSON documents into in memory segments and runs filters against them",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringSliceVarP(&opts.configFiles, "config", "f", nil, "configuration files to load, later files override earlier ones")
	root.AddCommand(
		newSearchCommand(&opts),
		newClassifyCommand(),
		newConfigCommand(&opts),
	)
	return root
}
