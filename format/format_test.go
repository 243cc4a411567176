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

package format

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"zombiezen.com/go/org"
	"zombiezen.com/go/org/internal/normhtml"
	"zombiezen.com/go/org/internal/testsuite"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Paragraph",
			input: "Hello,   *World*!\n",
			want:  "Hello,   *World*!\n",
		},
		{
			name:  "MissingFinalNewline",
			input: "Hello",
			want:  "Hello",
		},
		{
			name:  "BulletShapedLastLine",
			input: "0)",
			want:  "0)",
		},
		{
			name:  "BulletShapedContinuation",
			input: "text\n-",
			want:  "text\n-",
		},
		{
			name:  "UnterminatedItem",
			input: "- a\n- b",
			want:  "- a\n- b",
		},
		{
			name:  "Heading",
			input: "* TODO [#A] Title :a:b:\n:PROPERTIES:\n:ID:   x\n:END:\nBody\n",
			want:  "* TODO [#A] Title :a:b:\n:PROPERTIES:\n:ID: x\n:END:\nBody\n",
		},
		{
			name:  "ListIndent",
			input: "- a\n    - b\n",
			want:  "- a\n  - b\n",
		},
		{
			name:  "OrderedList",
			input: "1. a\n   - b\n2. c\n",
			want:  "1. a\n   - b\n2. c\n",
		},
		{
			name:  "Table",
			input: "| a | bb |\n|-+-|\n| ccc | d |\n",
			want:  "| a   | bb |\n|-----+----|\n| ccc | d  |\n",
		},
		{
			name:  "Block",
			input: "#+begin_src go :exports code\nx := 1\n#+end_src\n",
			want:  "#+begin_src go :exports code\nx := 1\n#+end_src\n",
		},
		{
			name:  "Keywords",
			input: "#+TITLE:   Doc\n# note\n\n[fn:1]   Text.\n",
			want:  "#+TITLE: Doc\n# note\n\n[fn:1] Text.\n",
		},
		{
			name:  "Macro",
			input: "#+macro: greet Hello $1!\n{{{greet(*world*)}}}\n",
			want:  "#+macro: greet Hello $1!\n{{{greet(*world*)}}}\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc, err := org.Parse([]byte(test.input))
			if err != nil {
				t.Fatal(err)
			}
			got := new(strings.Builder)
			if err := Format(got, doc); err != nil {
				t.Error("Format:", err)
			}
			if diff := cmp.Diff(test.want, got.String()); diff != "" {
				t.Errorf("Input:\n%s\nOutput (-want +got):\n%s", test.input, diff)
			}
		})
	}
}

func TestFormatWriteError(t *testing.T) {
	doc, err := org.Parse([]byte("* A\nB\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := errors.New("bork")
	if err := Format(failWriter{want}, doc); !errors.Is(err, want) {
		t.Errorf("Format(...) = %v; want %v", err, want)
	}
}

type failWriter struct {
	err error
}

func (w failWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"αβ", 2},
		{"日本", 4},
	}
	for _, test := range tests {
		if got := displayWidth(test.s); got != test.want {
			t.Errorf("displayWidth(%q) = %d; want %d", test.s, got, test.want)
		}
	}
}

func FuzzFormat(f *testing.F) {
	examples, err := testsuite.Load()
	if err != nil {
		f.Fatal(err)
	}
	for _, ex := range examples {
		f.Add(ex.Org)
	}
	f.Add("0)")
	f.Add("a.")
	f.Add("-")
	f.Add("text\n-")

	f.Fuzz(func(t *testing.T, source string) {
		doc, err := org.Parse([]byte(source))
		if err != nil {
			t.Skip(err)
		}
		originalHTML := new(bytes.Buffer)
		if err := org.RenderHTML(originalHTML, doc); err != nil {
			t.Fatal("Render original HTML:", err)
		}

		got := new(bytes.Buffer)
		if err := Format(got, doc); err != nil {
			t.Error("Format #1:", err)
		}

		formatted, err := org.Parse(got.Bytes())
		if err != nil {
			t.Fatal("Parse formatted:", err)
		}
		formattedHTML := new(bytes.Buffer)
		if err := org.RenderHTML(formattedHTML, formatted); err != nil {
			t.Error("Render formatted HTML:", err)
		} else {
			diff := cmp.Diff(string(normhtml.NormalizeHTML(originalHTML.Bytes())), string(normhtml.NormalizeHTML(formattedHTML.Bytes())))
			if diff != "" {
				t.Errorf("Reformatting changed semantics. Original:\n%s\nReformatting:\n%s\nHTML diff (-want +got):\n%s", source, got, diff)
			}
		}

		reformatted := new(bytes.Buffer)
		if err := Format(reformatted, formatted); err != nil {
			t.Error("Format #2:", err)
		}
		if diff := cmp.Diff(got.String(), reformatted.String()); diff != "" {
			t.Errorf("Format not idempotent (-first +second):\n%s", diff)
		}
	})
}
