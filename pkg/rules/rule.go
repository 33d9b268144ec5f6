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
package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/consensys/go-deduce/pkg/logic"
	"github.com/consensys/go-deduce/pkg/proof"
)

// Shape is a predicate on the formula of a candidate premise, checked before
// consistency with the other matched steps.
type Shape func(logic.Formula) bool

// Rule describes the schema of a natural deduction rule.  The premises
// determine which steps can be cited, whilst the consistency check relates
// matched premises and (when it is a goal) the destination.  Box-introducing
// rules conclude a step whose child boxes are synthesized upon insertion.
type Rule struct {
	kind   proof.Kind
	alias  string
	schema string
	// Shapes of each premise, in the order they are cited.
	premises []Shape
	// Whether the destination must be a goal, for rules whose conclusion is
	// not determined by their premises.
	goalOnly bool
	// Checks matched premises and destination are mutually consistent.  Any
	// unmatched premise is nil, as is the goal when the destination is an
	// empty slot or unmatched.
	consistent func(*Matcher) bool
	// Constructs the concluding step of a fully matched rule.
	conclude func(*Matcher) (Outcome, error)
}

// Kind returns the kind of step concluded by this rule.
func (r *Rule) Kind() proof.Kind {
	return r.kind
}

// Name returns the symbolic name of this rule, such as "→E".
func (r *Rule) Name() string {
	return r.kind.Symbol()
}

// Alias returns a plain ASCII name for this rule, such as "impe".
func (r *Rule) Alias() string {
	return r.alias
}

// Schema returns a textual description of this rule.
func (r *Rule) Schema() string {
	return r.schema
}

// Arity returns the number of premises of this rule.
func (r *Rule) Arity() int {
	return len(r.premises)
}

// RequiresGoal determines whether this rule can only conclude a goal.
func (r *Rule) RequiresGoal() bool {
	return r.goalOnly
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s (%s)", r.Name(), r.alias)
}

// Rules returns every rule, in the order they are listed.
func Rules() []*Rule {
	return slices.Clone(table)
}

// Lookup a rule by its symbolic name or its alias (ignoring case).  The
// connectives ∧ and ∨ are accepted in place of ⋀ and ⋁.
func Lookup(name string) (*Rule, error) {
	name = strings.NewReplacer("∧", "⋀", "∨", "⋁").Replace(strings.TrimSpace(name))
	//
	for _, rule := range table {
		if rule.Name() == name || strings.EqualFold(rule.alias, name) {
			return rule, nil
		}
	}
	//
	return nil, fmt.Errorf("%w \"%s\"", ErrUnknownRule, name)
}

// ============================================================================
// Shapes
// ============================================================================

func anything(logic.Formula) bool {
	return true
}

func connective(op logic.Connective) Shape {
	return func(f logic.Formula) bool {
		_, ok := logic.AsBinary(f, op)
		return ok
	}
}

func quantifier(kind logic.Binder) Shape {
	return func(f logic.Formula) bool {
		_, ok := logic.AsQuantifier(f, kind)
		return ok
	}
}

func negation(f logic.Formula) bool {
	_, ok := logic.AsNot(f)
	return ok
}

func doubleNegation(f logic.Formula) bool {
	n, ok := logic.AsNot(f)
	return ok && negation(n.Body)
}

func bottom(f logic.Formula) bool {
	return logic.IsConstant(f, false)
}

func equality(f logic.Formula) bool {
	_, _, ok := logic.AsEquality(f)
	return ok
}

// An equality between two variables
func variableEquality(f logic.Formula) bool {
	_, _, ok := variables(f)
	return ok
}

// A universally quantified implication
func universalImplication(f logic.Formula) bool {
	q, ok := logic.AsQuantifier(f, logic.FORALL)
	return ok && connective(logic.IMPLIES)(q.Body)
}

// ============================================================================
// Helpers
// ============================================================================

// Destructure a formula already known to be binary.
func binary(f logic.Formula, op logic.Connective) logic.Binary {
	b, _ := logic.AsBinary(f, op)
	return b
}

// Destructure a formula already known to be a quantifier.
func quantified(f logic.Formula, kind logic.Binder) logic.Quantifier {
	q, _ := logic.AsQuantifier(f, kind)
	return q
}

// Destructure an equality between two variables.
func variables(f logic.Formula) (logic.Variable, logic.Variable, bool) {
	if l, r, ok := logic.AsEquality(f); ok {
		lv, lok := l.(logic.Variable)
		rv, rok := r.(logic.Variable)
		//
		return lv, rv, lok && rok
	}
	//
	return logic.Variable{}, logic.Variable{}, false
}

// Either formula is equal to f.
func either(f logic.Formula, l logic.Formula, r logic.Formula) bool {
	return logic.Equal(f, l) || logic.Equal(f, r)
}

// Check a name can be used for a variable.
func validName(name string) bool {
	if name == "" {
		return false
	}
	//
	for i, c := range name {
		switch {
		case c == '_' && i > 0:
		case c >= '0' && c <= '9' && i > 0:
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		default:
			return false
		}
	}
	//
	return true
}
