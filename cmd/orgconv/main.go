// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Command orgconv converts Org documents and inspects their parse trees.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/samber/oops"
	"github.com/urfave/cli/v3"
	"zombiezen.com/go/org/internal/config"
)

func main() {
	if err := run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, newStyles().red.Sprint("error:"), err)
		os.Exit(1)
	}
}

func run(args []string) error {
	return newRootCommand().Run(context.Background(), args)
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "orgconv",
		Usage: "Convert Org documents to HTML and inspect them",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Path to config file"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Trace parsing and conversion"},
			&cli.BoolFlag{Name: "no-color", Usage: "Disable colored output"},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("no-color") {
				color.NoColor = true
			}
			return ctx, setupTracing(cmd.Bool("verbose"))
		},
		Commands: []*cli.Command{
			newExportCommand(),
			newTreeCommand(),
			newStatsCommand(),
			newFindCommand(),
		},
	}
}

func setupTracing(verbose bool) error {
	level := "Info"
	if verbose {
		level = "Debug"
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":   "go",
		"trace.org.parse":   level,
		"trace.org.convert": level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return oops.Wrapf(err, "configuring tracing")
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	return config.Load(cmd.String("config"))
}

func requireArgs(cmd *cli.Command, n int, usage string) error {
	if cmd.Args().Len() < n {
		return oops.
			Code("INVALID_ARGS").
			Hint("Usage: orgconv " + cmd.Name + " " + usage).
			Errorf("expected at least %d argument(s), got %d", n, cmd.Args().Len())
	}
	return nil
}
