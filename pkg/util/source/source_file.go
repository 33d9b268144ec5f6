// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package source

import (
	"fmt"
	"strings"
)

// Line provides information about a given line within a source file.
type Line struct {
	// Original text
	text []rune
	// Span within original text of this line.
	span Span
	// Line number of this line (counting from 1).
	number int
}

func (p *Line) String() string {
	return string(p.text[p.span.start:p.span.end])
}

// Number gets the line number of this line, where the first line in a string
// has line number 1.
func (p *Line) Number() int {
	return p.number
}

// Start returns the starting index of this line in the original text.
func (p *Line) Start() int {
	return p.span.start
}

// Length returns the number of characters in this line.
func (p *Line) Length() int {
	return p.span.Length()
}

// File represents a named piece of text being read, such as a formula typed
// at the terminal.
type File struct {
	// Name used when reporting errors.
	name string
	// Contents of this file.
	contents []rune
}

// NewSourceFile constructs a new source file from a given string.
func NewSourceFile(name string, text string) *File {
	return &File{name, []rune(text)}
}

// Name returns the name of this source file.
func (s *File) Name() string {
	return s.name
}

// Contents returns the contents of this source file.
func (s *File) Contents() []rune {
	return s.contents
}

// Text returns the text covered by a given span of this file.
func (s *File) Text(span Span) string {
	return string(s.contents[span.start:min(span.end, len(s.contents))])
}

// SyntaxError constructs a syntax error over a given span of this file.
func (s *File) SyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{s, span, msg}
}

// FindFirstEnclosingLine determines the first line which encloses the start of
// a span.
func (s *File) FindFirstEnclosingLine(span Span) Line {
	var (
		num   = 1
		start = 0
	)
	//
	for i := 0; i < len(s.contents); i++ {
		if i == span.start {
			return Line{s.contents, Span{start, findEndOfLine(i, s.contents)}, num}
		} else if s.contents[i] == '\n' {
			num++
			start = i + 1
		}
	}
	//
	return Line{s.contents, Span{start, len(s.contents)}, num}
}

// SyntaxError is a structured error which retains the span of text where the
// error arose.
type SyntaxError struct {
	srcfile *File
	// Span of text where error arose.
	span Span
	// Error message being reported
	msg string
}

// SourceFile returns the file in which this error arose.
func (p *SyntaxError) SourceFile() *File {
	return p.srcfile
}

// Span returns the span of text where this error arose.
func (p *SyntaxError) Span() Span {
	return p.span
}

// Message returns the message to be reported.
func (p *SyntaxError) Message() string {
	return p.msg
}

func (p *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", p.srcfile.name, p.span.Start(), p.span.End(), p.Message())
}

// FirstEnclosingLine determines the first line in the source file which
// encloses the start of this error.
func (p *SyntaxError) FirstEnclosingLine() Line {
	return p.srcfile.FindFirstEnclosingLine(p.span)
}

// Highlight returns the enclosing line followed by a line of carets marking
// the span of this error.
func (p *SyntaxError) Highlight() string {
	var (
		line   = p.FirstEnclosingLine()
		offset = p.span.Start() - line.Start()
		length = max(1, min(p.span.Length(), line.Length()-offset))
	)
	//
	return fmt.Sprintf("%s\n%s%s", line.String(), strings.Repeat(" ", offset), strings.Repeat("^", length))
}

func findEndOfLine(index int, text []rune) int {
	for i := index; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}
	// No end in sight!
	return len(text)
}
