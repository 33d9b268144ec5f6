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
	"strings"

	"github.com/consensys/go-deduce/pkg/logic"
	"github.com/consensys/go-deduce/pkg/proof"
)

var table = []*Rule{
	{proof.AndIntro, "andi", "A, B ⊢ A∧B",
		[]Shape{anything, anything}, false, andIntroConsistent, andIntroConclude},
	{proof.AndElim, "ande", "A∧B ⊢ A (or B)",
		[]Shape{connective(logic.AND)}, false, andElimConsistent, andElimConclude},
	{proof.OrIntro, "ori", "A ⊢ A∨B (or B∨A)",
		[]Shape{anything}, true, orIntroConsistent, concludeGoal},
	{proof.OrElim, "ore", "A∨B, [A … C], [B … C] ⊢ C",
		[]Shape{connective(logic.OR)}, true, nil, concludeGoal},
	{proof.ImpliesIntro, "impi", "[A … B] ⊢ A→B",
		nil, true, goalIs(connective(logic.IMPLIES)), concludeGoal},
	{proof.ImpliesElim, "impe", "A→B, A ⊢ B",
		[]Shape{connective(logic.IMPLIES), anything}, false, impliesElimConsistent, impliesElimConclude},
	{proof.IffIntro, "iffi", "A→B, B→A ⊢ A↔B",
		[]Shape{connective(logic.IMPLIES), connective(logic.IMPLIES)}, false, iffIntroConsistent, iffIntroConclude},
	{proof.IffElim, "iffe", "A↔B, A (or B) ⊢ B (or A)",
		[]Shape{connective(logic.IFF), anything}, false, iffElimConsistent, iffElimConclude},
	{proof.NotIntro, "noti", "[A … ⊥] ⊢ ¬A",
		nil, true, goalIs(negation), concludeGoal},
	{proof.NotElim, "note", "¬A, A ⊢ C",
		[]Shape{negation, anything}, true, notElimConsistent, concludeGoal},
	{proof.NotNotElim, "notnote", "¬¬A ⊢ A",
		[]Shape{doubleNegation}, false, notNotElimConsistent, notNotElimConclude},
	{proof.TopIntro, "topi", "⊢ ⊤",
		nil, false, goalIs(func(f logic.Formula) bool { return logic.IsConstant(f, true) }), topIntroConclude},
	{proof.BottomIntro, "boti", "A, ¬A ⊢ ⊥",
		[]Shape{anything, negation}, false, bottomIntroConsistent, bottomIntroConclude},
	{proof.BottomElim, "bote", "⊥ ⊢ C",
		[]Shape{bottom}, true, nil, concludeGoal},
	{proof.Lem, "lem", "⊢ A∨¬A",
		nil, true, goalIs(excludedMiddle), concludeGoal},
	{proof.ProofByContradiction, "pc", "[¬A … ⊥] ⊢ A",
		nil, true, nil, concludeGoal},
	{proof.EqualsReflex, "eqr", "⊢ t=t",
		nil, true, goalIs(reflexive), concludeGoal},
	{proof.EqualsSym, "eqsym", "a=b ⊢ b=a",
		[]Shape{equality}, false, equalsSymConsistent, equalsSymConclude},
	{proof.EqualsSub, "eqsub", "a=b, φ ⊢ φ[a:=b] (or φ[b:=a])",
		[]Shape{variableEquality, anything}, false, equalsSubConsistent, equalsSubConclude},
	{proof.AllIntro, "alli", "[sk … φ[x:=sk]] ⊢ ∀x[φ]",
		nil, true, goalIs(quantifier(logic.FORALL)), concludeGoal},
	{proof.AllElim, "alle", "∀x[φ] ⊢ φ[x:=t]",
		[]Shape{quantifier(logic.FORALL)}, false, allElimConsistent, allElimConclude},
	{proof.ExistsIntro, "exi", "φ[x:=a] ⊢ ∃x[φ]",
		[]Shape{anything}, false, existsIntroConsistent, existsIntroConclude},
	{proof.ExistsElim, "exe", "∃x[φ], [φ[x:=sk] … C] ⊢ C",
		[]Shape{quantifier(logic.EXISTS)}, true, nil, concludeGoal},
	{proof.AllImpliesElim, "allimpe", "∀x[A→B], A[x:=t] ⊢ B[x:=t]",
		[]Shape{universalImplication, anything}, false, allImpliesElimConsistent, allImpliesElimConclude},
}

// Conclude exactly the goal formula.
func concludeGoal(m *Matcher) (Outcome, error) {
	return m.conclude(m.goal())
}

// Consistent when the goal (if any) has a given shape.
func goalIs(shape Shape) func(*Matcher) bool {
	return func(m *Matcher) bool {
		g := m.goal()
		return g == nil || shape(g)
	}
}

func excludedMiddle(f logic.Formula) bool {
	or, ok := logic.AsBinary(f, logic.OR)
	return ok && logic.Equal(or.Right, logic.Negate(or.Left))
}

func reflexive(f logic.Formula) bool {
	l, r, ok := logic.AsEquality(f)
	return ok && logic.Equal(l, r)
}

// ============================================================================
// Conjunction
// ============================================================================

func andIntroConsistent(m *Matcher) bool {
	var (
		l, r = m.formula(0), m.formula(1)
		g    = m.goal()
	)
	//
	if g == nil {
		return true
	} else if !connective(logic.AND)(g) {
		return false
	}
	//
	and := binary(g, logic.AND)
	//
	switch {
	case l != nil && r != nil:
		return (logic.Equal(l, and.Left) && logic.Equal(r, and.Right)) ||
			(logic.Equal(l, and.Right) && logic.Equal(r, and.Left))
	case l != nil:
		return either(l, and.Left, and.Right)
	case r != nil:
		return either(r, and.Left, and.Right)
	}
	//
	return true
}

func andIntroConclude(m *Matcher) (Outcome, error) {
	var (
		l, r = m.formula(0), m.formula(1)
		g    = m.goal()
	)
	//
	if g == nil {
		return m.conclude(logic.And(l, r))
	} else if and := binary(g, logic.AND); logic.Equal(l, and.Left) && logic.Equal(r, and.Right) {
		return m.conclude(g)
	}
	// Premises were selected in the opposite order
	return m.concludeFrom(g, m.Premise(1), m.Premise(0))
}

func andElimConsistent(m *Matcher) bool {
	f, g := m.formula(0), m.goal()
	//
	if f == nil || g == nil {
		return true
	}
	//
	and := binary(f, logic.AND)
	//
	return either(g, and.Left, and.Right)
}

func andElimConclude(m *Matcher) (Outcome, error) {
	var (
		f   = m.formula(0)
		and = binary(f, logic.AND)
	)
	//
	if g := m.goal(); g != nil {
		return m.conclude(g)
	} else if logic.Equal(and.Left, and.Right) {
		return m.conclude(and.Left)
	}
	//
	request := Request{SideRequest, f, "Side to keep", []string{Left.String(), Right.String()}}
	//
	return Pending{request, func(choice string) (Outcome, error) {
		switch strings.ToLower(strings.TrimSpace(choice)) {
		case Left.String():
			return m.conclude(and.Left)
		case Right.String():
			return m.conclude(and.Right)
		}
		//
		return nil, fmt.Errorf("%w: side must be left or right (was \"%s\")", ErrInvalidChoice, choice)
	}}, nil
}

// ============================================================================
// Disjunction
// ============================================================================

func orIntroConsistent(m *Matcher) bool {
	f, g := m.formula(0), m.goal()
	//
	if g == nil {
		return true
	} else if !connective(logic.OR)(g) {
		return false
	} else if f == nil {
		return true
	}
	//
	or := binary(g, logic.OR)
	//
	return either(f, or.Left, or.Right)
}

// ============================================================================
// Implication and equivalence
// ============================================================================

func impliesElimConsistent(m *Matcher) bool {
	var (
		f, a = m.formula(0), m.formula(1)
		g    = m.goal()
	)
	//
	if f == nil {
		return true
	}
	//
	imp := binary(f, logic.IMPLIES)
	//
	if a != nil && !logic.Equal(a, imp.Left) {
		return false
	}
	//
	return g == nil || logic.Equal(g, imp.Right)
}

func impliesElimConclude(m *Matcher) (Outcome, error) {
	return m.conclude(binary(m.formula(0), logic.IMPLIES).Right)
}

func iffIntroConsistent(m *Matcher) bool {
	var (
		f1, f2 = m.formula(0), m.formula(1)
		g      = m.goal()
		iff    logic.Binary
	)
	//
	if f1 != nil && f2 != nil {
		l, r := binary(f1, logic.IMPLIES), binary(f2, logic.IMPLIES)
		//
		if !logic.Equal(l.Left, r.Right) || !logic.Equal(l.Right, r.Left) {
			return false
		}
	}
	//
	if g == nil {
		return true
	} else if !connective(logic.IFF)(g) {
		return false
	}
	//
	iff = binary(g, logic.IFF)
	//
	if f1 != nil {
		imp := binary(f1, logic.IMPLIES)
		//
		if !logic.Equal(iff.Left, imp.Left) || !logic.Equal(iff.Right, imp.Right) {
			return false
		}
	}
	//
	if f2 != nil {
		imp := binary(f2, logic.IMPLIES)
		//
		if !logic.Equal(iff.Left, imp.Right) || !logic.Equal(iff.Right, imp.Left) {
			return false
		}
	}
	//
	return true
}

func iffIntroConclude(m *Matcher) (Outcome, error) {
	imp := binary(m.formula(0), logic.IMPLIES)
	//
	return m.conclude(logic.Iff(imp.Left, imp.Right))
}

func iffElimConsistent(m *Matcher) bool {
	var (
		f, a = m.formula(0), m.formula(1)
		g    = m.goal()
	)
	//
	if f == nil {
		return true
	}
	//
	iff := binary(f, logic.IFF)
	//
	switch {
	case a != nil && g != nil:
		return (logic.Equal(a, iff.Left) && logic.Equal(g, iff.Right)) ||
			(logic.Equal(a, iff.Right) && logic.Equal(g, iff.Left))
	case a != nil:
		return either(a, iff.Left, iff.Right)
	case g != nil:
		return either(g, iff.Left, iff.Right)
	}
	//
	return true
}

func iffElimConclude(m *Matcher) (Outcome, error) {
	iff := binary(m.formula(0), logic.IFF)
	//
	if logic.Equal(m.formula(1), iff.Left) {
		return m.conclude(iff.Right)
	}
	//
	return m.conclude(iff.Left)
}

// ============================================================================
// Negation, truth and falsehood
// ============================================================================

func notElimConsistent(m *Matcher) bool {
	f, a := m.formula(0), m.formula(1)
	//
	if f == nil || a == nil {
		return true
	}
	//
	not, _ := logic.AsNot(f)
	//
	return logic.Equal(a, not.Body)
}

func notNotElimConsistent(m *Matcher) bool {
	f, g := m.formula(0), m.goal()
	//
	return f == nil || g == nil || logic.Equal(g, doubleNegated(f))
}

func notNotElimConclude(m *Matcher) (Outcome, error) {
	return m.conclude(doubleNegated(m.formula(0)))
}

func doubleNegated(f logic.Formula) logic.Formula {
	outer, _ := logic.AsNot(f)
	inner, _ := logic.AsNot(outer.Body)
	//
	return inner.Body
}

func topIntroConclude(m *Matcher) (Outcome, error) {
	return m.conclude(logic.Top())
}

func bottomIntroConsistent(m *Matcher) bool {
	var (
		a, f = m.formula(0), m.formula(1)
		g    = m.goal()
	)
	//
	if g != nil && !bottom(g) {
		return false
	} else if a == nil || f == nil {
		return true
	}
	//
	not, _ := logic.AsNot(f)
	//
	return logic.Equal(a, not.Body)
}

func bottomIntroConclude(m *Matcher) (Outcome, error) {
	return m.conclude(logic.Bottom())
}

// ============================================================================
// Equality
// ============================================================================

func equalsSymConsistent(m *Matcher) bool {
	f, g := m.formula(0), m.goal()
	//
	if f == nil || g == nil {
		return true
	}
	//
	l, r, _ := logic.AsEquality(f)
	gl, gr, ok := logic.AsEquality(g)
	//
	return ok && logic.Equal(gl, r) && logic.Equal(gr, l)
}

func equalsSymConclude(m *Matcher) (Outcome, error) {
	l, r, _ := logic.AsEquality(m.formula(0))
	//
	return m.conclude(logic.Equals(r, l))
}

// Substitution of one side of an equality by the other within some formula.
type substitution struct {
	// Variable being replaced
	from logic.Variable
	// Variable replacing it
	to logic.Variable
}

func (s substitution) apply(f logic.Formula) logic.Formula {
	return logic.ReplaceVar(f, s.from, s.to, nil)
}

// Determine the substitutions which can be applied to f using an equality.
// Those which would be captured by a quantifier within f are excluded.
func substitutions(eq logic.Formula, f logic.Formula) []substitution {
	var subs []substitution
	//
	a, b, _ := variables(eq)
	bound := logic.Bound(f)
	//
	for _, s := range []substitution{{a, b}, {b, a}} {
		if !bound.Contains(s.to.Name) && (len(subs) == 0 || subs[0].from != s.from) {
			subs = append(subs, s)
		}
	}
	//
	return subs
}

func equalsSubConsistent(m *Matcher) bool {
	var (
		eq, f = m.formula(0), m.formula(1)
		g     = m.goal()
	)
	//
	if eq == nil || f == nil {
		return true
	}
	//
	subs := substitutions(eq, f)
	//
	if g == nil {
		return len(subs) > 0
	}
	//
	for _, s := range subs {
		if logic.Equal(s.apply(f), g) {
			return true
		}
	}
	//
	return false
}

func equalsSubConclude(m *Matcher) (Outcome, error) {
	var (
		eq, f   = m.formula(0), m.formula(1)
		subs    = substitutions(eq, f)
		free    = logic.FreeVars(f, nil)
		options []string
	)
	//
	if g := m.goal(); g != nil {
		return m.conclude(g)
	}
	// Only directions which actually change something are worth asking about.
	for _, s := range subs {
		if free.Contains(s.from.Name) {
			options = append(options, s.from.Name)
		}
	}
	//
	switch len(options) {
	case 0:
		return m.conclude(f)
	case 1:
		return m.conclude(find(subs, options[0]).apply(f))
	}
	//
	request := Request{DirectionRequest, eq, "Variable to replace", options}
	//
	return Pending{request, func(choice string) (Outcome, error) {
		choice = strings.TrimSpace(choice)
		//
		for _, option := range options {
			if option == choice {
				return m.conclude(find(subs, choice).apply(f))
			}
		}
		//
		return nil, fmt.Errorf("%w: expected one of %v (was \"%s\")", ErrInvalidChoice, options, choice)
	}}, nil
}

func find(subs []substitution, from string) substitution {
	for _, s := range subs {
		if s.from.Name == from {
			return s
		}
	}
	//
	panic("unknown substitution")
}

// ============================================================================
// Quantifiers
// ============================================================================

func allElimConsistent(m *Matcher) bool {
	f, g := m.formula(0), m.goal()
	//
	if f == nil || g == nil {
		return true
	}
	//
	q := quantified(f, logic.FORALL)
	_, _, ok := logic.FindInstance(q, q.Body, g)
	//
	return ok
}

func allElimConclude(m *Matcher) (Outcome, error) {
	if g := m.goal(); g != nil {
		return m.conclude(g)
	}
	//
	q := quantified(m.formula(0), logic.FORALL)
	//
	return instantiate(m, q, q.Body)
}

func existsIntroConsistent(m *Matcher) bool {
	f, g := m.formula(0), m.goal()
	//
	if g == nil {
		return true
	} else if q, ok := logic.AsQuantifier(g, logic.EXISTS); !ok {
		return false
	} else if f != nil {
		_, _, ok = logic.FindInstance(q, q.Body, f)
		return ok
	}
	//
	return true
}

func existsIntroConclude(m *Matcher) (Outcome, error) {
	var (
		f    = m.formula(0)
		free = logic.FreeVars(f, nil)
	)
	//
	if g := m.goal(); g != nil {
		return m.conclude(g)
	}
	//
	request := Request{VariableRequest, f, "Variable to generalize", *free}
	//
	return Pending{request, func(old string) (Outcome, error) {
		old = strings.TrimSpace(old)
		//
		if !free.Contains(old) {
			return nil, fmt.Errorf("%w: %s is not free in %s", ErrInvalidChoice, old, logic.Show(f))
		}
		//
		request := Request{VariableRequest, f, fmt.Sprintf("Bound variable replacing %s", old), nil}
		//
		return Pending{request, func(name string) (Outcome, error) {
			name = strings.TrimSpace(name)
			//
			switch {
			case !validName(name):
				return nil, fmt.Errorf("%w: \"%s\" is not a variable name", ErrInvalidChoice, name)
			case name != old && free.Contains(name):
				return nil, fmt.Errorf("%w: %s is already free in %s", ErrInvalidChoice, name, logic.Show(f))
			case name != old && logic.Bound(f).Contains(name):
				return nil, fmt.Errorf("%w: %s would be captured in %s", ErrInvalidChoice, name, logic.Show(f))
			}
			//
			v := logic.Var(name)
			//
			return m.conclude(logic.Exists(v, logic.ReplaceVar(f, logic.Var(old), v, nil)))
		}}, nil
	}}, nil
}

func allImpliesElimConsistent(m *Matcher) bool {
	var (
		f, a   = m.formula(0), m.formula(1)
		g      = m.goal()
		v1, v2 logic.Variable
		p1, p2 bool
		ok     bool
	)
	//
	if f == nil {
		return true
	}
	//
	q := quantified(f, logic.FORALL)
	imp := binary(q.Body, logic.IMPLIES)
	//
	if a != nil {
		if v1, p1, ok = logic.FindInstance(q, imp.Left, a); !ok {
			return false
		} else if g == nil && p1 && v1 != q.Var && logic.Bound(imp.Right).Contains(v1.Name) {
			// Conclusion would capture the instantiating variable
			return false
		}
	}
	//
	if g != nil {
		if v2, p2, ok = logic.FindInstance(q, imp.Right, g); !ok {
			return false
		}
	}
	// Both premise and goal must agree on the instantiating variable
	return !p1 || !p2 || v1 == v2
}

func allImpliesElimConclude(m *Matcher) (Outcome, error) {
	if g := m.goal(); g != nil {
		return m.conclude(g)
	}
	//
	q := quantified(m.formula(0), logic.FORALL)
	imp := binary(q.Body, logic.IMPLIES)
	//
	if v, pinned, _ := logic.FindInstance(q, imp.Left, m.formula(1)); pinned {
		return m.conclude(logic.ReplaceVar(imp.Right, q.Var, v, nil))
	}
	// Premise does not determine the instantiation
	return instantiate(m, q, imp.Right)
}

// Conclude pattern with the bound variable of q instantiated, asking which
// variable to use if it matters.
func instantiate(m *Matcher, q logic.Quantifier, pattern logic.Formula) (Outcome, error) {
	if !logic.FreeVars(pattern, nil).Contains(q.Var.Name) {
		return m.conclude(pattern)
	}
	//
	request := Request{VariableRequest, q, fmt.Sprintf("Variable to instantiate %s with", q.Var.Name), nil}
	//
	return Pending{request, func(name string) (Outcome, error) {
		name = strings.TrimSpace(name)
		//
		if !validName(name) {
			return nil, fmt.Errorf("%w: \"%s\" is not a variable name", ErrInvalidChoice, name)
		} else if name != q.Var.Name && logic.Bound(pattern).Contains(name) {
			return nil, fmt.Errorf("%w: %s would be captured in %s", ErrInvalidChoice, name, logic.Show(pattern))
		}
		//
		return m.conclude(logic.ReplaceVar(pattern, q.Var, logic.Var(name), nil))
	}}, nil
}
