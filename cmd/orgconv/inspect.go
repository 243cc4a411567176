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
	"bytes"
	"os"

	"github.com/samber/oops"
	"zombiezen.com/go/org"
)

func parseFile(path string) (*org.Document, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.
			Code("READ_FAILED").
			With("path", path).
			Wrapf(err, "reading %s", path)
	}
	doc, err := org.Parse(source)
	if err != nil {
		return nil, oops.
			Code("PARSE_FAILED").
			With("path", path).
			Wrapf(err, "parsing %s", path)
	}
	return doc, nil
}

// lineNumber returns the 1-based line of a byte offset in doc.
func lineNumber(doc *org.Document, offset int) int {
	return bytes.Count(doc.Source[:offset], []byte("\n")) + 1
}
