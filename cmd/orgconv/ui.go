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
	"fmt"
	"io"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"zombiezen.com/go/org/internal/convert"
)

type styles struct {
	green *color.Color
	red   *color.Color
	dim   *color.Color
	bold  *color.Color
}

func newStyles() styles {
	return styles{
		green: color.New(color.FgGreen),
		red:   color.New(color.FgRed),
		dim:   color.New(color.Faint),
		bold:  color.New(color.Bold),
	}
}

// exportPrinter writes one status line per converted file.
type exportPrinter struct {
	w  io.Writer
	mu sync.Mutex
	s  styles
}

func newExportPrinter(w io.Writer) *exportPrinter {
	return &exportPrinter{w: w, s: newStyles()}
}

func (p *exportPrinter) handleEvent(e convert.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if e.Err != nil {
		fmt.Fprintf(p.w, "%s %s: %v\n",
			p.s.red.Sprint("✗"),
			p.s.bold.Sprint(e.Source),
			e.Err,
		)
		return
	}
	fmt.Fprintf(p.w, "%s %s %s\n",
		p.s.green.Sprint("✓"),
		p.s.bold.Sprint(e.Dest),
		p.s.dim.Sprintf("(%s)", humanize.Bytes(uint64(e.Bytes))),
	)
}

func (p *exportPrinter) printSummary(r *convert.Result) {
	if r == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.w, "\nexport complete: %s file(s), %s failed, %s written\n",
		humanize.Comma(int64(r.Files)),
		humanize.Comma(int64(r.Failed)),
		humanize.Bytes(uint64(r.Bytes)),
	)
}
