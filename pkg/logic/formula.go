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
package logic

import "github.com/consensys/go-deduce/pkg/util/collection/set"

// Formula represents a formula (or term) of first-order logic with equality.
// Formulas are immutable tree values: every operation in this package returns
// a new tree rather than modifying an existing one.  The set of variants is
// closed, and every operation dispatches over it exhaustively.
type Formula interface {
	// String returns the display text of this formula (see Show).
	String() string
	// Marks the closed set of variants.
	isFormula()
}

// Term represents the subset of formulas which denote objects rather than
// truth values, namely variables and function applications.
type Term interface {
	Formula
	// Marks the closed set of terms.
	isTerm()
}

// VarSet is a set of variable names.
type VarSet = set.SortedSet[string]

// NewVarSet constructs a set of variable names.
func NewVarSet(names ...string) *VarSet {
	return set.NewSortedSet(names...)
}

// Connective identifies a binary logical connective.
type Connective uint8

// AND represents logical conjunction.
const AND Connective = 0

// OR represents logical disjunction.
const OR Connective = 1

// IMPLIES represents logical implication.
const IMPLIES Connective = 2

// IFF represents logical equivalence.
const IFF Connective = 3

// Symbol returns the symbol used to display this connective.
func (c Connective) Symbol() string {
	switch c {
	case AND:
		return "∧"
	case OR:
		return "∨"
	case IMPLIES:
		return "→"
	case IFF:
		return "↔"
	}
	//
	panic("unknown connective")
}

// Binder identifies a quantifier.
type Binder uint8

// FORALL represents universal quantification.
const FORALL Binder = 0

// EXISTS represents existential quantification.
const EXISTS Binder = 1

// Symbol returns the symbol used to display this quantifier.
func (b Binder) Symbol() string {
	if b == FORALL {
		return "∀"
	}
	//
	return "∃"
}

// EQUALS is the name of the binary predicate used to represent equality.
const EQUALS = "="

// ============================================================================
// Variants
// ============================================================================

// Blank is a placeholder for a formula which has yet to be entered.  A blank
// is never equal to anything, not even another blank.
type Blank struct{}

// Variable is a named variable (or constant).
type Variable struct {
	Name string
}

// Function is the application of a named function to zero or more terms.
type Function struct {
	Name string
	Args []Term
}

// Atom is a propositional atom, such as P or Q.
type Atom struct {
	Name string
}

// Predicate is the application of a named predicate to zero or more terms.
// Equality is represented as the binary predicate named "=".
type Predicate struct {
	Name string
	Args []Term
}

// Constant is logical truth (⊤) or falsehood (⊥).
type Constant struct {
	Value bool
}

// Not is logical negation.
type Not struct {
	Body Formula
}

// Binary is a binary connective applied to two formulas.
type Binary struct {
	Op    Connective
	Left  Formula
	Right Formula
}

// Quantifier binds a variable within a body formula.
type Quantifier struct {
	Kind Binder
	Var  Variable
	Body Formula
}

func (Blank) isFormula()      {}
func (Variable) isFormula()   {}
func (Function) isFormula()   {}
func (Atom) isFormula()       {}
func (Predicate) isFormula()  {}
func (Constant) isFormula()   {}
func (Not) isFormula()        {}
func (Binary) isFormula()     {}
func (Quantifier) isFormula() {}

func (Variable) isTerm() {}
func (Function) isTerm() {}

func (p Blank) String() string      { return Show(p) }
func (p Variable) String() string   { return Show(p) }
func (p Function) String() string   { return Show(p) }
func (p Atom) String() string       { return Show(p) }
func (p Predicate) String() string  { return Show(p) }
func (p Constant) String() string   { return Show(p) }
func (p Not) String() string        { return Show(p) }
func (p Binary) String() string     { return Show(p) }
func (p Quantifier) String() string { return Show(p) }

// ============================================================================
// Constructors
// ============================================================================

// Var constructs a variable with the given name.
func Var(name string) Variable {
	return Variable{name}
}

// Func constructs a function application.
func Func(name string, args ...Term) Function {
	return Function{name, args}
}

// Prop constructs a propositional atom.
func Prop(name string) Atom {
	return Atom{name}
}

// Pred constructs a predicate application.
func Pred(name string, args ...Term) Predicate {
	return Predicate{name, args}
}

// Top constructs logical truth.
func Top() Constant {
	return Constant{true}
}

// Bottom constructs logical falsehood.
func Bottom() Constant {
	return Constant{false}
}

// Negate constructs the negation of a formula.
func Negate(f Formula) Not {
	return Not{f}
}

// And constructs a conjunction.
func And(l Formula, r Formula) Binary {
	return Binary{AND, l, r}
}

// Or constructs a disjunction.
func Or(l Formula, r Formula) Binary {
	return Binary{OR, l, r}
}

// Implies constructs an implication.
func Implies(l Formula, r Formula) Binary {
	return Binary{IMPLIES, l, r}
}

// Iff constructs an equivalence.
func Iff(l Formula, r Formula) Binary {
	return Binary{IFF, l, r}
}

// All constructs a universally quantified formula.
func All(v Variable, body Formula) Quantifier {
	return Quantifier{FORALL, v, body}
}

// Exists constructs an existentially quantified formula.
func Exists(v Variable, body Formula) Quantifier {
	return Quantifier{EXISTS, v, body}
}

// Equals constructs the equality l = r.
func Equals(l Term, r Term) Predicate {
	return Predicate{EQUALS, []Term{l, r}}
}

// NotEquals constructs the inequality l ≠ r, which is simply sugar for
// ¬(l = r).
func NotEquals(l Term, r Term) Not {
	return Not{Equals(l, r)}
}

// ============================================================================
// Destructors
// ============================================================================

// AsBinary checks whether a formula is a binary formula using the given
// connective.
func AsBinary(f Formula, op Connective) (Binary, bool) {
	if b, ok := f.(Binary); ok && b.Op == op {
		return b, true
	}
	//
	return Binary{}, false
}

// AsNot checks whether a formula is a negation.
func AsNot(f Formula) (Not, bool) {
	n, ok := f.(Not)
	//
	return n, ok
}

// AsQuantifier checks whether a formula is a quantifier of the given kind.
func AsQuantifier(f Formula, kind Binder) (Quantifier, bool) {
	if q, ok := f.(Quantifier); ok && q.Kind == kind {
		return q, true
	}
	//
	return Quantifier{}, false
}

// AsEquality checks whether a formula is an equality, returning its two sides.
func AsEquality(f Formula) (Term, Term, bool) {
	if p, ok := f.(Predicate); ok && p.Name == EQUALS && len(p.Args) == 2 {
		return p.Args[0], p.Args[1], true
	}
	//
	return nil, nil, false
}

// IsConstant checks whether a formula is the given truth constant.
func IsConstant(f Formula, value bool) bool {
	c, ok := f.(Constant)
	//
	return ok && c.Value == value
}

// IsBlank checks whether a formula is missing or a blank placeholder.
func IsBlank(f Formula) bool {
	if f == nil {
		return true
	}
	//
	_, ok := f.(Blank)
	//
	return ok
}
