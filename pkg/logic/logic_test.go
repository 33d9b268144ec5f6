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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	x = Var("x")
	y = Var("y")
	z = Var("z")
	a = Var("a")
	P = Prop("P")
	Q = Prop("Q")
	R = Prop("R")
)

// ============================================================================
// Show
// ============================================================================

func Test_Show_01(t *testing.T) {
	checkShow(t, And(P, Q), "P∧Q")
}

func Test_Show_02(t *testing.T) {
	checkShow(t, And(P, Or(Q, R)), "P∧(Q∨R)")
}

func Test_Show_03(t *testing.T) {
	checkShow(t, Or(And(P, Q), R), "P∧Q∨R")
}

func Test_Show_04(t *testing.T) {
	checkShow(t, Implies(Implies(P, Q), R), "(P→Q)→R")
}

func Test_Show_05(t *testing.T) {
	checkShow(t, Implies(P, Implies(Q, R)), "P→(Q→R)")
}

func Test_Show_06(t *testing.T) {
	checkShow(t, Negate(And(P, Q)), "¬(P∧Q)")
}

func Test_Show_07(t *testing.T) {
	checkShow(t, Negate(Negate(P)), "¬¬P")
}

func Test_Show_08(t *testing.T) {
	checkShow(t, All(x, Pred("P", x)), "∀x[P(x)]")
}

func Test_Show_09(t *testing.T) {
	checkShow(t, Exists(x, And(Pred("P", x), Pred("Q", x, y))), "∃x[P(x)∧Q(x, y)]")
}

func Test_Show_10(t *testing.T) {
	checkShow(t, Equals(x, y), "x=y")
	checkShow(t, NotEquals(x, y), "x≠y")
	checkShow(t, And(Equals(x, y), NotEquals(y, z)), "x=y∧y≠z")
}

func Test_Show_11(t *testing.T) {
	checkShow(t, Iff(Top(), Bottom()), "⊤↔⊥")
	checkShow(t, Pred("P", Func("f", x, y)), "P(f(x, y))")
	checkShow(t, Blank{}, "")
}

func Test_Show_12(t *testing.T) {
	checkShow(t, Iff(Implies(P, Q), Or(Q, P)), "P→Q↔Q∨P")
	checkShow(t, Negate(All(x, Pred("P", x))), "¬∀x[P(x)]")
}

// ============================================================================
// Equality
// ============================================================================

func Test_Equal_01(t *testing.T) {
	formulas := []Formula{x, P, Top(), Bottom(), And(P, Q), Pred("P", x), Func("f", x),
		All(x, Pred("P", x)), Exists(y, Equals(x, y)), Negate(Q)}
	//
	for _, f := range formulas {
		assert.True(t, Equal(f, f), "%s should equal itself", f)
	}
}

func Test_Equal_02(t *testing.T) {
	assert.False(t, Equal(Blank{}, Blank{}))
	assert.False(t, Equal(And(P, Blank{}), And(P, Blank{})))
	assert.False(t, Equal(P, Blank{}))
	assert.False(t, Equal(nil, nil))
}

func Test_Equal_03(t *testing.T) {
	assert.False(t, Equal(And(P, Q), Or(P, Q)))
	assert.False(t, Equal(And(P, Q), And(Q, P)))
	assert.False(t, Equal(Prop("x"), x))
	assert.False(t, Equal(Pred("P", x), Pred("P", x, x)))
	assert.False(t, Equal(Func("P", x), Pred("P", x)))
	assert.False(t, Equal(All(x, Pred("P", x)), Exists(x, Pred("P", x))))
	assert.False(t, Equal(All(x, Pred("P", x)), All(y, Pred("P", y))))
}

// ============================================================================
// Substitution
// ============================================================================

func Test_ReplaceVar_01(t *testing.T) {
	f := And(Pred("P", x), Pred("Q", x, y))
	g := ReplaceVar(f, x, z, nil)
	//
	checkShow(t, g, "P(z)∧Q(z, y)")
	// Original is untouched
	checkShow(t, f, "P(x)∧Q(x, y)")
}

func Test_ReplaceVar_02(t *testing.T) {
	// Bound occurrence is shadowed
	f := All(x, Pred("P", x))
	assert.True(t, Equal(f, ReplaceVar(f, x, y, nil)))
}

func Test_ReplaceVar_03(t *testing.T) {
	// Substituting for a different free variable never touches the binder.
	f := All(x, Pred("P", x, z))
	checkShow(t, ReplaceVar(f, z, y, nil), "∀x[P(x, y)]")
}

func Test_ReplaceVar_04(t *testing.T) {
	// Only the free occurrence is rewritten
	f := And(Pred("P", x), Exists(x, Pred("Q", x)))
	checkShow(t, ReplaceVar(f, x, a, nil), "P(a)∧∃x[Q(x)]")
}

func Test_ReplaceVar_05(t *testing.T) {
	f := Pred("P", Func("f", x, y), x)
	checkShow(t, ReplaceVar(f, x, z, nil), "P(f(z, y), z)")
}

func Test_ReplaceVar_06(t *testing.T) {
	// An explicitly bound variable is not rewritten
	checkShow(t, ReplaceVar(Pred("P", x), x, y, NewVarSet("x")), "P(x)")
}

func Test_ReplaceVar_07(t *testing.T) {
	formulas := []Formula{Pred("P", x), And(Pred("P", x), Pred("Q", y)),
		Implies(Equals(x, y), Exists(z, Pred("R", z, x)))}
	//
	for _, f := range formulas {
		g := ReplaceVar(f, x, a, nil)
		assert.False(t, FreeVars(g, nil).Contains("x"), "%s still contains x", g)
	}
}

// ============================================================================
// Free variables
// ============================================================================

func Test_FreeVars_01(t *testing.T) {
	checkFreeVars(t, Pred("P", x, y), "x", "y")
}

func Test_FreeVars_02(t *testing.T) {
	checkFreeVars(t, All(x, Pred("P", x, y)), "y")
}

func Test_FreeVars_03(t *testing.T) {
	checkFreeVars(t, And(Pred("P", x), Exists(x, Pred("Q", x))), "x")
}

func Test_FreeVars_04(t *testing.T) {
	checkFreeVars(t, And(P, Top()))
}

func Test_FreeVars_05(t *testing.T) {
	checkFreeVars(t, Equals(Func("f", z), a), "a", "z")
}

func Test_Names_01(t *testing.T) {
	names := Names(And(Pred("P", a), All(x, Exists(y, Pred("R", x, y)))))
	assert.Equal(t, "{a,x,y}", names.String())
}

// ============================================================================
// Find substitution
// ============================================================================

func Test_FindSubstitution_01(t *testing.T) {
	q := Exists(x, Pred("P", x))
	v, ok := FindSubstitution(q, q.Body, Pred("P", a))
	//
	assert.True(t, ok)
	assert.Equal(t, a, v)
}

func Test_FindSubstitution_02(t *testing.T) {
	// a is already free in the quantified formula
	q := All(x, Pred("R", x, a))
	_, ok := FindSubstitution(q, q.Body, Pred("R", a, a))
	assert.False(t, ok)
}

func Test_FindSubstitution_03(t *testing.T) {
	// two candidates
	q := All(x, Pred("P", x))
	_, ok := FindSubstitution(q, q.Body, And(Pred("P", a), Pred("P", y)))
	assert.False(t, ok)
}

func Test_FindSubstitution_04(t *testing.T) {
	// unique candidate, but wrong shape
	q := All(x, Pred("P", x))
	_, ok := FindSubstitution(q, q.Body, Pred("Q", a))
	assert.False(t, ok)
}

func Test_FindSubstitution_05(t *testing.T) {
	// instantiating part of the body
	q := All(x, Implies(Pred("P", x), Pred("Q", x)))
	body := q.Body.(Binary)
	v, ok := FindSubstitution(q, body.Right, Pred("Q", a))
	//
	assert.True(t, ok)
	assert.Equal(t, a, v)
}

func Test_FindInstance_01(t *testing.T) {
	// Instantiation by a variable already free in the quantifier
	q := All(x, Pred("R", x, a))
	v, pinned, ok := FindInstance(q, q.Body, Pred("R", a, a))
	//
	assert.True(t, ok)
	assert.True(t, pinned)
	assert.Equal(t, a, v)
}

func Test_FindInstance_02(t *testing.T) {
	// Bound variable does not occur in the pattern
	q := All(x, Implies(P, Pred("Q", x)))
	body := q.Body.(Binary)
	_, pinned, ok := FindInstance(q, body.Left, P)
	//
	assert.True(t, ok)
	assert.False(t, pinned)
	//
	_, _, ok = FindInstance(q, body.Left, Q)
	assert.False(t, ok)
}

func Test_FindInstance_03(t *testing.T) {
	// Instantiating with the bound variable itself
	q := All(x, Pred("P", x))
	v, pinned, ok := FindInstance(q, q.Body, Pred("P", x))
	//
	assert.True(t, ok && pinned)
	assert.Equal(t, x, v)
}

func Test_FindInstance_04(t *testing.T) {
	// y would be captured by the inner quantifier
	q := All(x, And(Pred("R", x), Exists(y, Pred("S", x, y))))
	_, _, ok := FindInstance(q, q.Body, And(Pred("R", y), Exists(y, Pred("S", y, y))))
	assert.False(t, ok)
}

func Test_Bound_01(t *testing.T) {
	bound := Bound(And(Pred("P", a), All(x, Exists(y, Pred("R", x, z)))))
	assert.Equal(t, "{x,y}", bound.String())
}

// ============================================================================
// Framework
// ============================================================================

func checkShow(t *testing.T, f Formula, expected string) {
	t.Helper()
	assert.Equal(t, expected, Show(f))
	assert.Equal(t, expected, f.String())
}

func checkFreeVars(t *testing.T, f Formula, expected ...string) {
	t.Helper()
	assert.True(t, NewVarSet(expected...).Equals(FreeVars(f, nil)), "free variables of %s are %s", f,
		FreeVars(f, nil).String())
}
