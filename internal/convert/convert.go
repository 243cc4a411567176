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

// Package convert exports Org files and directory trees
// to HTML or canonical Org.
package convert

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/npillmayer/schuko/tracing"
	"github.com/samber/oops"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
	"zombiezen.com/go/org"
	"zombiezen.com/go/org/format"
	"zombiezen.com/go/org/internal/config"
)

func tracer() tracing.Trace {
	return tracing.Select("org.convert")
}

// Converter turns Org sources into the configured backend's output.
type Converter struct {
	Backend  string
	Renderer *org.HTMLRenderer
	// Standalone wraps HTML output in a complete page.
	Standalone bool
	Workers    int
	Include    []string
	Exclude    []string
	// OnEvent, if not nil, is called after each file in a directory conversion.
	// Calls are serialized.
	OnEvent func(Event)
}

// Event reports the outcome of converting one file.
type Event struct {
	Source string
	Dest   string
	Bytes  int
	Err    error
}

// Result summarizes a directory conversion.
type Result struct {
	Files  int
	Failed int
	Bytes  int64
}

// New returns a Converter for the given settings.
func New(cfg *config.Config) (*Converter, error) {
	soft, err := org.ParseSoftBreakBehavior(cfg.HTML.SoftBreak)
	if err != nil {
		return nil, oops.
			Code("CONFIG_INVALID").
			With("soft_break", cfg.HTML.SoftBreak).
			Wrapf(err, "configuring html renderer")
	}
	c := &Converter{
		Backend:    cfg.Backend,
		Standalone: cfg.HTML.Standalone,
		Workers:    cfg.Workers,
		Include:    cfg.Include,
		Exclude:    cfg.Exclude,
	}
	c.Renderer = &org.HTMLRenderer{
		SoftBreakBehavior: soft,
		IgnoreRaw:         cfg.HTML.IgnoreRaw,
		TableOfContents:   cfg.HTML.TableOfContents,
		RewriteFileLink:   c.rewriteLink,
	}
	return c, nil
}

// Ext returns the file extension of the converter's output.
func (c *Converter) Ext() string {
	if c.Backend == "org" {
		return ".org"
	}
	return ".html"
}

// rewriteLink points links to other Org files at their converted output.
func (c *Converter) rewriteLink(dest string) string {
	path, search, hasSearch := strings.Cut(dest, "::")
	base, ok := strings.CutSuffix(path, ".org")
	if !ok {
		return dest
	}
	dest = base + c.Ext()
	if hasSearch && strings.HasPrefix(search, "#") {
		dest += search
	}
	return dest
}

// Convert converts a single Org source.
// name is used in error messages and, for standalone pages,
// as the title if the document has none.
func (c *Converter) Convert(name string, source []byte) ([]byte, error) {
	doc, err := org.Parse(source)
	if err != nil {
		return nil, oops.
			Code("PARSE_FAILED").
			With("file", name).
			Wrapf(err, "parsing %s", name)
	}
	if c.Backend == "org" {
		buf := new(bytes.Buffer)
		if err := format.Format(buf, doc); err != nil {
			return nil, oops.Wrapf(err, "formatting %s", name)
		}
		return buf.Bytes(), nil
	}

	renderer := c.Renderer
	if renderer == nil {
		renderer = new(org.HTMLRenderer)
	}
	if !c.Standalone {
		return renderer.AppendDocument(nil, doc), nil
	}
	title := doc.Keywords["title"]
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	var out []byte
	out = append(out, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>"...)
	out = append(out, html.EscapeString(title)...)
	out = append(out, "</title>\n</head>\n<body>\n"...)
	out = renderer.AppendDocument(out, doc)
	out = append(out, "</body>\n</html>\n"...)
	return out, nil
}

// ConvertFile converts the file at src and writes the result to dst.
func (c *Converter) ConvertFile(src, dst string) (int, error) {
	source, err := os.ReadFile(src)
	if err != nil {
		return 0, oops.
			Code("READ_FAILED").
			With("path", src).
			Wrapf(err, "reading %s", src)
	}
	out, err := c.Convert(src, source)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, oops.
			Code("WRITE_FAILED").
			With("path", dst).
			Wrapf(err, "creating output directory")
	}
	if err := os.WriteFile(dst, out, 0o644); err != nil {
		return 0, oops.
			Code("WRITE_FAILED").
			With("path", dst).
			Wrapf(err, "writing %s", dst)
	}
	tracer().Debugf("converted %s to %s (%d bytes)", src, dst, len(out))
	return len(out), nil
}

// Files returns the paths under root, relative to root,
// that match an include pattern and no exclude pattern.
func (c *Converter) Files(root string) ([]string, error) {
	include := c.Include
	if len(include) == 0 {
		include = config.DefaultInclude()
	}
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		ok, err := shouldIncludeFile(rel, include, c.Exclude)
		if err != nil {
			return err
		}
		if ok {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, oops.
			With("path", root).
			Wrapf(err, "listing %s", root)
	}
	slices.Sort(files)
	return files, nil
}

// ConvertDir converts every matching file under srcDir
// into the same relative location under dstDir,
// using at most c.Workers files at a time.
// Conversion continues past failed files;
// the returned error reports how many failed.
func (c *Converter) ConvertDir(ctx context.Context, srcDir, dstDir string) (*Result, error) {
	files, err := c.Files(srcDir)
	if err != nil {
		return nil, err
	}

	workers := c.Workers
	if workers <= 0 {
		workers = config.DefaultWorkers
	}
	result := new(Result)
	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for _, rel := range files {
		src := filepath.Join(srcDir, rel)
		dst := filepath.Join(dstDir, strings.TrimSuffix(rel, filepath.Ext(rel))+c.Ext())
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			n, err := c.ConvertFile(src, dst)

			mu.Lock()
			defer mu.Unlock()
			result.Files++
			if err != nil {
				result.Failed++
			} else {
				result.Bytes += int64(n)
			}
			if c.OnEvent != nil {
				c.OnEvent(Event{Source: src, Dest: dst, Bytes: n, Err: err})
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return result, oops.Wrapf(err, "waiting for conversion workers")
	}
	if result.Failed > 0 {
		return result, oops.
			Code("CONVERT_FAILED").
			With("failed_files", result.Failed).
			Errorf("%d file(s) failed to convert", result.Failed)
	}
	return result, nil
}

func shouldIncludeFile(relativePath string, patterns []string, exclude []string) (bool, error) {
	included, err := matchesAny(patterns, relativePath)
	if err != nil || !included {
		return false, err
	}
	excluded, err := matchesAny(exclude, relativePath)
	if err != nil {
		return false, err
	}
	return !excluded, nil
}

func matchesAny(patterns []string, candidate string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := doublestar.PathMatch(pattern, candidate)
		if err != nil {
			return false, oops.
				Code("CONFIG_INVALID").
				With("pattern", pattern).
				With("path", candidate).
				Wrapf(err, "invalid glob pattern")
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}
