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
package lex

import "github.com/consensys/go-deduce/pkg/util/source"

// Token associates a kind with a span of the original text.
type Token struct {
	// Kind of this token.
	Kind uint
	// Span of text covered by this token.
	Span source.Span
}

// LexRule pairs a scanner with the kind of token it produces.
type LexRule[T any] struct {
	scanner Scanner[T]
	tag     uint
}

// Rule constructs a new lexing rule.
func Rule[T any](scanner Scanner[T], tag uint) LexRule[T] {
	return LexRule[T]{scanner, tag}
}

// Lexer splits a sequence of items into tokens, by repeatedly applying the
// first rule whose scanner matches at the current position.  A rule for the
// end of input (see Eof) should be included, so that a final token marks it.
type Lexer[T any] struct {
	items []T
	index int
	rules []LexRule[T]
	// Whether the end of input has been reached.
	done bool
}

// NewLexer constructs a new lexer for a given input and set of rules.
func NewLexer[T any](input []T, rules ...LexRule[T]) *Lexer[T] {
	return &Lexer[T]{input, 0, rules, false}
}

// Index returns the position of the next item to be lexed.
func (p *Lexer[T]) Index() uint {
	return uint(min(p.index, len(p.items)))
}

// Remaining returns the number of items not yet lexed.
func (p *Lexer[T]) Remaining() uint {
	return uint(max(0, len(p.items)-p.index))
}

// Next lexes the next token, returning false when no rule matches (or the end
// of input has already been lexed).
func (p *Lexer[T]) Next() (Token, bool) {
	if p.done {
		return Token{}, false
	}
	//
	for _, r := range p.rules {
		if n := r.scanner(p.items[p.index:]); n > 0 {
			start := p.index
			end := min(len(p.items), start+int(n))
			// Check for end of input
			p.done = start == len(p.items)
			p.index = end
			//
			return Token{r.tag, source.NewSpan(start, end)}, true
		}
	}
	//
	return Token{}, false
}

// Collect lexes as many tokens as possible.
func (p *Lexer[T]) Collect() []Token {
	var tokens []Token
	//
	for token, ok := p.Next(); ok; token, ok = p.Next() {
		tokens = append(tokens, token)
	}
	//
	return tokens
}
