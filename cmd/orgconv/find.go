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
	"fmt"
	"io"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/urfave/cli/v3"
	"zombiezen.com/go/org"
)

func newFindCommand() *cli.Command {
	return &cli.Command{
		Name:      "find",
		Usage:     "Fuzzy-search heading titles in Org files",
		ArgsUsage: "<query> <file>...",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 10, Usage: "Maximum number of matches"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 2, "<query> <file>..."); err != nil {
				return err
			}
			args := cmd.Args().Slice()
			var idx headingIndex
			for _, path := range args[1:] {
				doc, err := parseFile(path)
				if err != nil {
					return err
				}
				idx.add(path, doc)
			}
			return printMatches(cmd.Root().Writer, idx.find(args[0], int(cmd.Int("limit"))))
		},
	}
}

type headingEntry struct {
	path  string
	line  int
	level int
	title string
	tags  []string
}

// headingIndex is a [fuzzy.Source] over heading titles.
type headingIndex []headingEntry

func (idx headingIndex) String(i int) string { return idx[i].title }
func (idx headingIndex) Len() int            { return len(idx) }

func (idx *headingIndex) add(path string, doc *org.Document) {
	org.Walk(doc, doc.Root(), &org.WalkOptions{
		Pre: func(c *org.Cursor) bool {
			n := c.Node()
			h, ok := n.Expr.(*org.Heading)
			if !ok {
				return n.Kind() == org.RootKind
			}
			*idx = append(*idx, headingEntry{
				path:  path,
				line:  lineNumber(doc, n.Start),
				level: h.Level,
				title: h.Title,
				tags:  doc.HeadingTags(c.ID()),
			})
			return true
		},
		Children: func(d *org.Document, id org.NodeID) []org.NodeID {
			if h, ok := d.Node(id).Expr.(*org.Heading); ok {
				return h.Children
			}
			return d.Children(id)
		},
	})
}

type headingMatch struct {
	headingEntry
	matched []int
}

func (idx headingIndex) find(query string, limit int) []headingMatch {
	matches := fuzzy.FindFrom(query, idx)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	result := make([]headingMatch, 0, len(matches))
	for _, m := range matches {
		result = append(result, headingMatch{headingEntry: idx[m.Index], matched: m.MatchedIndexes})
	}
	return result
}

func printMatches(w io.Writer, matches []headingMatch) error {
	s := newStyles()
	if len(matches) == 0 {
		_, err := fmt.Fprintln(w, s.dim.Sprint("no matches"))
		return err
	}
	for _, m := range matches {
		var title strings.Builder
		next := 0
		for i, r := range m.title {
			if next < len(m.matched) && m.matched[next] == i {
				title.WriteString(s.bold.Sprint(string(r)))
				next++
				continue
			}
			title.WriteRune(r)
		}
		tags := ""
		if len(m.tags) > 0 {
			tags = " " + s.dim.Sprintf(":%s:", strings.Join(m.tags, ":"))
		}
		_, err := fmt.Fprintf(w, "%s %s%s\n",
			s.green.Sprintf("%s:%d:", m.path, m.line),
			strings.Repeat("*", m.level)+" "+title.String(),
			tags,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
