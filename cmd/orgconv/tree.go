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

	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	"github.com/urfave/cli/v3"
	"zombiezen.com/go/org"
)

func newTreeCommand() *cli.Command {
	return &cli.Command{
		Name:      "tree",
		Usage:     "Print the parse tree of an Org file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "raw", Usage: "Dump every node's fields"},
			&cli.BoolFlag{Name: "elements", Aliases: []string{"e"}, Usage: "Only print elements"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 1, "<file>"); err != nil {
				return err
			}
			doc, err := parseFile(cmd.Args().First())
			if err != nil {
				return err
			}
			w := cmd.Root().Writer
			if cmd.Bool("raw") {
				return dumpNodes(w, doc)
			}
			return printTree(w, doc, cmd.Bool("elements"))
		},
	}
}

func printTree(w io.Writer, doc *org.Document, elementsOnly bool) error {
	s := newStyles()
	var err error
	org.Walk(doc, doc.Root(), &org.WalkOptions{
		Pre: func(c *org.Cursor) bool {
			n := c.Node()
			if elementsOnly && !n.Kind().IsElement() {
				return false
			}
			_, err = fmt.Fprintf(w, "%s%s %s%s\n",
				strings.Repeat("  ", c.Depth()),
				s.bold.Sprint(n.Kind()),
				s.dim.Sprintf("[%d,%d)", n.Start, n.End),
				nodeSummary(n),
			)
			return err == nil
		},
	})
	return err
}

// nodeSummary returns a short description of a leaf-ish node's content.
func nodeSummary(n *org.Node) string {
	switch e := n.Expr.(type) {
	case *org.Heading:
		return fmt.Sprintf(" %q", e.Title)
	case *org.Plain:
		return fmt.Sprintf(" %q", e.Text)
	case *org.Keyword:
		return fmt.Sprintf(" %s=%q", e.Key, e.Value)
	case *org.Block:
		return " " + e.Name
	case *org.Code:
		return fmt.Sprintf(" %q", e.Text)
	case *org.Verbatim:
		return fmt.Sprintf(" %q", e.Text)
	case *org.RegularLink:
		return " " + e.Path.String()
	case *org.Drawer:
		return " " + e.Name
	}
	return ""
}

func dumpNodes(w io.Writer, doc *org.Document) error {
	pp.ColoringEnabled = !color.NoColor
	for i := 0; i < doc.Len(); i++ {
		id := org.NodeID(i)
		n := doc.Node(id)
		if n == nil || n.Expr == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "#%d ", id); err != nil {
			return err
		}
		if _, err := pp.Fprintln(w, n); err != nil {
			return err
		}
	}
	return nil
}
