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

package org

import "bytes"

// A cursor is a read-only position within a source buffer.
// The buffer may be truncated to bound a sub-parse,
// but positions are always offsets into the full document.
type cursor struct {
	src []byte
	pos int
}

// at returns the byte at offset i.
// ok is false if i is outside the visible buffer.
func (c cursor) at(i int) (b byte, ok bool) {
	if i < 0 || i >= len(c.src) {
		return 0, false
	}
	return c.src[i], true
}

func (c cursor) curr() (byte, bool) {
	return c.at(c.pos)
}

// peek returns the byte n bytes after the cursor.
func (c cursor) peek(n int) (byte, bool) {
	return c.at(c.pos + n)
}

// peekBack returns the byte n bytes before the cursor.
func (c cursor) peekBack(n int) (byte, bool) {
	return c.at(c.pos - n)
}

// is reports whether the current byte is b.
func (c cursor) is(b byte) bool {
	got, ok := c.curr()
	return ok && got == b
}

func (c cursor) eof() bool {
	return c.pos >= len(c.src)
}

func (c *cursor) next() {
	c.pos++
}

func (c *cursor) advance(n int) {
	c.pos += n
}

// word advances past s if the buffer has s at the cursor.
func (c *cursor) word(s string) bool {
	if c.pos > len(c.src) || !bytes.HasPrefix(c.src[c.pos:], []byte(s)) {
		return false
	}
	c.pos += len(s)
	return true
}

// wordFold is like word but ignores ASCII case.
func (c *cursor) wordFold(s string) bool {
	if c.pos+len(s) > len(c.src) || !bytes.EqualFold(c.src[c.pos:c.pos+len(s)], []byte(s)) {
		return false
	}
	c.pos += len(s)
	return true
}

// skipSpaces advances past spaces and tabs.
func (c *cursor) skipSpaces() {
	for c.pos < len(c.src) && (c.src[c.pos] == ' ' || c.src[c.pos] == '\t') {
		c.pos++
	}
}

// until returns the offset of the first byte at or after the cursor
// for which f returns true.
// ok is false if the end of the buffer is reached first.
func (c cursor) until(f func(byte) bool) (end int, ok bool) {
	for i := c.pos; i < len(c.src); i++ {
		if f(c.src[i]) {
			return i, true
		}
	}
	return len(c.src), false
}

// while returns the offset of the first byte at or after the cursor
// for which f returns false.
// ok is false if the end of the buffer is reached first.
func (c cursor) while(f func(byte) bool) (end int, ok bool) {
	return c.until(func(b byte) bool { return !f(b) })
}

// skipTo moves the cursor to the next occurrence of b
// or the end of the buffer.
func (c *cursor) skipTo(b byte) {
	if c.pos >= len(c.src) {
		c.pos = len(c.src)
		return
	}
	i := bytes.IndexByte(c.src[c.pos:], b)
	if i < 0 {
		c.pos = len(c.src)
		return
	}
	c.pos += i
}

// slice returns the text between two offsets.
func (c cursor) slice(start, end int) string {
	return string(c.src[start:end])
}

// rest returns the visible bytes from the cursor onward.
func (c cursor) rest() []byte {
	if c.pos >= len(c.src) {
		return nil
	}
	return c.src[c.pos:]
}

// cutOff returns a copy of the cursor
// that cannot see any bytes at or after end.
func (c cursor) cutOff(end int) cursor {
	if end < len(c.src) {
		c.src = c.src[:end]
	}
	return c
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func isAlpha(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

func isAlnum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

func isHex(c byte) bool {
	return 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F' || isDigit(c)
}

func isPunct(b byte) bool {
	return '!' <= b && b <= '/' ||
		':' <= b && b <= '@' ||
		'[' <= b && b <= '`' ||
		'{' <= b && b <= '~'
}

// lineEnd returns the offset of the next newline at or after the cursor
// or the end of the buffer.
func (c cursor) lineEnd() int {
	if c.pos >= len(c.src) {
		return len(c.src)
	}
	if i := bytes.IndexByte(c.src[c.pos:], '\n'); i >= 0 {
		return c.pos + i
	}
	return len(c.src)
}

// after returns the offset just past the newline at end,
// clamped to the visible buffer.
func (c cursor) after(end int) int {
	return min(end+1, len(c.src))
}

// asciiLower returns a copy of b with ASCII letters lowercased.
// Offsets into the copy match offsets into b.
func asciiLower(b []byte) []byte {
	lower := make([]byte, len(b))
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		lower[i] = c
	}
	return lower
}
