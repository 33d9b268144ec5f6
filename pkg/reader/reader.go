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
package reader

import (
	"slices"

	"github.com/consensys/go-deduce/pkg/logic"
	"github.com/consensys/go-deduce/pkg/util/source"
	"github.com/consensys/go-deduce/pkg/util/source/lex"
)

// Parse a formula from its textual representation.  The syntax accepted is
// that produced by logic.Show, with plain ASCII alternatives for each symbol:
//
//	¬ ~ !      ∧ & /\      ∨ | \/      → ->      ↔ <->      ≠ !=
//	⊤ true     ⊥ false     ∀x[..] forall x[..]    ∃x[..] exists x[..]
//
// Negation binds most tightly, followed by ∧, ∨, → and, finally, ↔.
// Implication associates to the right, whilst the other connectives associate
// to the left.  A bare identifier is a propositional atom, and an identifier
// applied to arguments is a predicate.  Arguments are terms, being either
// variables or function applications.
func Parse(name string, input string) (logic.Formula, *source.SyntaxError) {
	var (
		srcfile = source.NewSourceFile(name, input)
		lexer   = lex.NewLexer(srcfile.Contents(), rules...)
		// Lex as many tokens as possible
		tokens = lexer.Collect()
	)
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		start, end := lexer.Index(), lexer.Index()+lexer.Remaining()
		return nil, srcfile.SyntaxError(source.NewSpan(int(start), int(end)), "unknown text encountered")
	}
	// Remove any whitespace
	tokens = slices.DeleteFunc(tokens, func(t lex.Token) bool { return t.Kind == WHITESPACE })
	//
	parser := &Parser{srcfile, tokens, 0}
	//
	formula, err := parser.parseFormula()
	// Check all parsed
	if err == nil && !parser.follows(END_OF) {
		return nil, parser.syntaxError(parser.lookahead(), "unexpected text")
	}
	//
	return formula, err
}

// MustParse parses a formula, panicking on failure.
func MustParse(input string) logic.Formula {
	formula, err := Parse("formula", input)
	//
	if err != nil {
		panic(err.Error())
	}
	//
	return formula
}

// Token kinds
const (
	END_OF uint = iota
	WHITESPACE
	LBRACE
	RBRACE
	LSQUARE
	RSQUARE
	COMMA
	IDENTIFIER
	NOT
	AND
	OR
	IMPLIES
	IFF
	EQUALS
	NOT_EQUALS
	TOP
	BOTTOM
	FORALL
	EXISTS
)

// Binary connectives, from loosest to tightest.
var connectives = []struct {
	token uint
	op    logic.Connective
}{
	{IFF, logic.IFF},
	{IMPLIES, logic.IMPLIES},
	{OR, logic.OR},
	{AND, logic.AND},
}

var whitespace = lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\n')))

var identifier = lex.And(lex.Letter(), lex.Many(lex.Or(lex.Letter(), lex.Within('0', '9'), lex.Unit('_'))))

// Keyword matching only when not a prefix of some longer identifier.
func keyword(word string) lex.Scanner[rune] {
	match := lex.String(word)
	//
	return func(items []rune) uint {
		if n := match(items); n > 0 && identifier(items) == n {
			return n
		}
		//
		return 0
	}
}

// Longer operators must come before any of their prefixes.
var rules = []lex.LexRule[rune]{
	lex.Rule(lex.Unit('('), LBRACE),
	lex.Rule(lex.Unit(')'), RBRACE),
	lex.Rule(lex.Unit('['), LSQUARE),
	lex.Rule(lex.Unit(']'), RSQUARE),
	lex.Rule(lex.Unit(','), COMMA),
	lex.Rule(lex.Or(lex.String("↔"), lex.String("<->")), IFF),
	lex.Rule(lex.Or(lex.String("→"), lex.String("->")), IMPLIES),
	lex.Rule(lex.Or(lex.String("≠"), lex.String("!=")), NOT_EQUALS),
	lex.Rule(lex.Or(lex.String("¬"), lex.String("~"), lex.String("!")), NOT),
	lex.Rule(lex.Or(lex.String("∧"), lex.String("⋀"), lex.String("&"), lex.String("/\\")), AND),
	lex.Rule(lex.Or(lex.String("∨"), lex.String("⋁"), lex.String("|"), lex.String("\\/")), OR),
	lex.Rule(lex.String("="), EQUALS),
	lex.Rule(lex.Or(lex.String("⊤"), keyword("true")), TOP),
	lex.Rule(lex.Or(lex.String("⊥"), keyword("false")), BOTTOM),
	lex.Rule(lex.Or(lex.String("∀"), keyword("forall")), FORALL),
	lex.Rule(lex.Or(lex.String("∃"), keyword("exists")), EXISTS),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(lex.Eof[rune](), END_OF),
}

// Parser is a recursive descent parser for formulas, operating over a
// sequence of tokens.
type Parser struct {
	srcfile *source.File
	tokens  []lex.Token
	// Position within the tokens
	index int
}

func (p *Parser) parseFormula() (logic.Formula, *source.SyntaxError) {
	return p.parseBinary(0)
}

// Parse a binary formula whose connective is at a given level (or tighter).
func (p *Parser) parseBinary(level int) (logic.Formula, *source.SyntaxError) {
	if level == len(connectives) {
		return p.parseUnary()
	}
	//
	var (
		token    = connectives[level].token
		op       = connectives[level].op
		lhs, err = p.parseBinary(level + 1)
	)
	//
	for err == nil && p.match(token) {
		var rhs logic.Formula
		// Implication is right associative
		if op == logic.IMPLIES {
			rhs, err = p.parseBinary(level)
		} else {
			rhs, err = p.parseBinary(level + 1)
		}
		//
		lhs = logic.Binary{Op: op, Left: lhs, Right: rhs}
	}
	//
	if err != nil {
		return nil, err
	}
	//
	return lhs, nil
}

func (p *Parser) parseUnary() (logic.Formula, *source.SyntaxError) {
	token := p.lookahead()
	//
	switch token.Kind {
	case NOT:
		p.expect(NOT)
		//
		body, err := p.parseUnary()
		//
		if err != nil {
			return nil, err
		}
		//
		return logic.Negate(body), nil
	case FORALL:
		return p.parseQuantifier(FORALL, logic.FORALL)
	case EXISTS:
		return p.parseQuantifier(EXISTS, logic.EXISTS)
	case TOP:
		p.expect(TOP)
		return logic.Top(), nil
	case BOTTOM:
		p.expect(BOTTOM)
		return logic.Bottom(), nil
	case LBRACE:
		return p.parseBracketedFormula()
	case IDENTIFIER:
		return p.parseApplication()
	}
	//
	return nil, p.syntaxError(token, "expected formula")
}

func (p *Parser) parseBracketedFormula() (logic.Formula, *source.SyntaxError) {
	p.expect(LBRACE)
	//
	formula, err := p.parseFormula()
	//
	if err == nil && !p.match(RBRACE) {
		return nil, p.syntaxError(p.lookahead(), "expected ')'")
	}
	//
	return formula, err
}

// Parse a quantified formula such as "∀x[P(x)]".
func (p *Parser) parseQuantifier(token uint, kind logic.Binder) (logic.Formula, *source.SyntaxError) {
	p.expect(token)
	//
	if !p.follows(IDENTIFIER) {
		return nil, p.syntaxError(p.lookahead(), "expected variable")
	}
	//
	v := logic.Var(p.string(p.expect(IDENTIFIER)))
	//
	if !p.match(LSQUARE) {
		return nil, p.syntaxError(p.lookahead(), "expected '['")
	}
	//
	body, err := p.parseFormula()
	//
	if err != nil {
		return nil, err
	} else if !p.match(RSQUARE) {
		return nil, p.syntaxError(p.lookahead(), "expected ']'")
	}
	//
	return logic.Quantifier{Kind: kind, Var: v, Body: body}, nil
}

// Parse an identifier, possibly applied to arguments.  This is either an atom
// or predicate, or the left-hand side of an (in)equality.
func (p *Parser) parseApplication() (logic.Formula, *source.SyntaxError) {
	var (
		start           = p.lookahead()
		name, args, err = p.parseNameAndArgs()
	)
	//
	if err != nil {
		return nil, err
	} else if p.follows(EQUALS, NOT_EQUALS) {
		lhs := term(name, args)
		negated := p.expect(p.lookahead().Kind).Kind == NOT_EQUALS
		//
		if !p.follows(IDENTIFIER) {
			return nil, p.syntaxError(p.lookahead(), "expected term")
		}
		//
		rhs, err := p.parseTerm()
		//
		if err != nil {
			return nil, err
		} else if negated {
			return logic.NotEquals(lhs, rhs), nil
		}
		//
		return logic.Equals(lhs, rhs), nil
	} else if args == nil {
		return logic.Prop(name), nil
	} else if len(args) == 0 {
		return nil, p.syntaxError(start, "predicate requires arguments")
	}
	//
	return logic.Pred(name, args...), nil
}

func (p *Parser) parseTerm() (logic.Term, *source.SyntaxError) {
	start := p.lookahead()
	//
	if !p.follows(IDENTIFIER) {
		return nil, p.syntaxError(start, "expected term")
	}
	//
	name, args, err := p.parseNameAndArgs()
	//
	if err != nil {
		return nil, err
	} else if args != nil && len(args) == 0 {
		return nil, p.syntaxError(start, "function requires arguments")
	}
	//
	return term(name, args), nil
}

// Parse an identifier followed by an optional bracketed list of terms.  The
// returned arguments are nil when there is no list, and empty when the list
// is.
func (p *Parser) parseNameAndArgs() (string, []logic.Term, *source.SyntaxError) {
	var (
		name = p.string(p.expect(IDENTIFIER))
		args = []logic.Term{}
	)
	//
	if !p.match(LBRACE) {
		return name, nil, nil
	} else if p.match(RBRACE) {
		return name, args, nil
	}
	//
	for {
		arg, err := p.parseTerm()
		//
		if err != nil {
			return name, nil, err
		}
		//
		args = append(args, arg)
		//
		if p.match(RBRACE) {
			return name, args, nil
		} else if !p.match(COMMA) {
			return name, nil, p.syntaxError(p.lookahead(), "expected ',' or ')'")
		}
	}
}

func term(name string, args []logic.Term) logic.Term {
	if args == nil {
		return logic.Var(name)
	}
	//
	return logic.Func(name, args...)
}

func (p *Parser) string(token lex.Token) string {
	return p.srcfile.Text(token.Span)
}

func (p *Parser) follows(options ...uint) bool {
	return slices.Contains(options, p.lookahead().Kind)
}

func (p *Parser) lookahead() lex.Token {
	return p.tokens[min(p.index, len(p.tokens)-1)]
}

func (p *Parser) expect(kind uint) lex.Token {
	if p.lookahead().Kind != kind {
		panic("internal failure")
	}
	//
	token := p.tokens[p.index]
	p.index++
	//
	return token
}

func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

func (p *Parser) syntaxError(token lex.Token, msg string) *source.SyntaxError {
	return p.srcfile.SyntaxError(token.Span, msg)
}
