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
	"io"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
	"zombiezen.com/go/org"
)

func newStatsCommand() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "Count the nodes of each kind in Org files",
		ArgsUsage: "<file>...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 1, "<file>..."); err != nil {
				return err
			}
			var st docStats
			for _, path := range cmd.Args().Slice() {
				doc, err := parseFile(path)
				if err != nil {
					return err
				}
				st.add(doc)
			}
			st.render(cmd.Root().Writer)
			return nil
		},
	}
}

type docStats struct {
	files int
	bytes int
	nodes int
	kinds map[org.Kind]int
}

func (st *docStats) add(doc *org.Document) {
	if st.kinds == nil {
		st.kinds = make(map[org.Kind]int)
	}
	st.files++
	st.bytes += len(doc.Source)
	org.Walk(doc, doc.Root(), &org.WalkOptions{
		Pre: func(c *org.Cursor) bool {
			st.nodes++
			st.kinds[c.Node().Kind()]++
			return true
		},
	})
}

func (st *docStats) render(w io.Writer) {
	kinds := make([]org.Kind, 0, len(st.kinds))
	for k := range st.kinds {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Kind", "Type", "Count"})
	for _, k := range kinds {
		typ := "object"
		if k.IsElement() {
			typ = "element"
		}
		t.AppendRow(table.Row{k.String(), typ, humanize.Comma(int64(st.kinds[k]))})
	}
	t.AppendFooter(table.Row{
		humanize.Comma(int64(st.files)) + " file(s)",
		humanize.Bytes(uint64(st.bytes)),
		humanize.Comma(int64(st.nodes)),
	})
	t.Render()
}
