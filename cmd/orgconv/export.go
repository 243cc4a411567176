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

package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"
	"zombiezen.com/go/org/internal/config"
	"zombiezen.com/go/org/internal/convert"
)

func newExportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Convert an Org file or a directory of Org files",
		ArgsUsage: "<file-or-directory>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "backend", Aliases: []string{"b"}, Usage: "Output format: html or org"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file or directory (default: stdout for files)"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"p"}, Usage: "Maximum files converted in parallel"},
			&cli.StringSliceFlag{Name: "include", Usage: "Include glob pattern for directories (repeatable)"},
			&cli.StringSliceFlag{Name: "exclude", Usage: "Exclude glob pattern for directories (repeatable)"},
			&cli.BoolFlag{Name: "toc", Usage: "Write a table of contents"},
			&cli.BoolFlag{Name: "standalone", Usage: "Wrap HTML output in a complete page"},
			&cli.BoolFlag{Name: "ignore-raw", Usage: "Skip export snippets and export blocks"},
			&cli.StringFlag{Name: "soft-break", Usage: "Soft break rendering: preserve, space or harden"},
		},
		Action: exportAction,
	}
}

func exportAction(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 1, "<file-or-directory>"); err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyExportFlags(cmd, cfg); err != nil {
		return err
	}
	conv, err := convert.New(cfg)
	if err != nil {
		return err
	}

	src := cmd.Args().First()
	info, err := os.Stat(src)
	if err != nil {
		return oops.
			Code("READ_FAILED").
			With("path", src).
			Wrapf(err, "reading %s", src)
	}
	if !info.IsDir() {
		return exportFile(cmd, conv, src)
	}

	dst := cfg.Output
	if dst == "" {
		return oops.
			Code("INVALID_ARGS").
			With("path", src).
			Hint("Pass --output or set output in orgconv.toml").
			Errorf("no output directory for %s", src)
	}
	printer := newExportPrinter(cmd.Root().ErrWriter)
	conv.OnEvent = printer.handleEvent
	result, err := conv.ConvertDir(ctx, src, dst)
	printer.printSummary(result)
	return err
}

func exportFile(cmd *cli.Command, conv *convert.Converter, src string) error {
	dst := cmd.String("output")
	if dst == "" {
		source, err := os.ReadFile(src)
		if err != nil {
			return oops.
				Code("READ_FAILED").
				With("path", src).
				Wrapf(err, "reading %s", src)
		}
		out, err := conv.Convert(src, source)
		if err != nil {
			return err
		}
		if _, err := cmd.Root().Writer.Write(out); err != nil {
			return oops.Wrapf(err, "writing output")
		}
		return nil
	}
	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		base := filepath.Base(src)
		dst = filepath.Join(dst, base[:len(base)-len(filepath.Ext(base))]+conv.Ext())
	}
	n, err := conv.ConvertFile(src, dst)
	newExportPrinter(cmd.Root().ErrWriter).handleEvent(convert.Event{Source: src, Dest: dst, Bytes: n, Err: err})
	return err
}

// applyExportFlags overrides config file values with flags that were set.
func applyExportFlags(cmd *cli.Command, cfg *config.Config) error {
	if cmd.IsSet("backend") {
		cfg.Backend = cmd.String("backend")
	}
	if cmd.IsSet("output") {
		cfg.Output = cmd.String("output")
	}
	if cmd.IsSet("workers") {
		cfg.Workers = int(cmd.Int("workers"))
	}
	if cmd.IsSet("include") {
		cfg.Include = cmd.StringSlice("include")
	}
	if cmd.IsSet("exclude") {
		cfg.Exclude = cmd.StringSlice("exclude")
	}
	if cmd.IsSet("toc") {
		cfg.HTML.TableOfContents = cmd.Bool("toc")
	}
	if cmd.IsSet("standalone") {
		cfg.HTML.Standalone = cmd.Bool("standalone")
	}
	if cmd.IsSet("ignore-raw") {
		cfg.HTML.IgnoreRaw = cmd.Bool("ignore-raw")
	}
	if cmd.IsSet("soft-break") {
		cfg.HTML.SoftBreak = cmd.String("soft-break")
	}
	cfg.ApplyDefaults()
	return cfg.Validate()
}
