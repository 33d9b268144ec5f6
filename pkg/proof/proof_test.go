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
package proof

import (
	"testing"

	"github.com/consensys/go-deduce/pkg/logic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	x = logic.Var("x")
	P = logic.Prop("P")
	Q = logic.Prop("Q")
	R = logic.Prop("R")
)

func Test_Proof_01(t *testing.T) {
	p := New([]logic.Formula{P, Q}, logic.And(P, Q))
	//
	checkLayout(t, p,
		"1 P given",
		"2 Q given",
		"3 [ Empty ] ",
		"4 P∧Q <goal>")
	require.NoError(t, p.Validate())
	assert.False(t, p.Complete())
}

func Test_Proof_02(t *testing.T) {
	// Reaching the goal replaces it, and discards the empty slot.
	p := New([]logic.Formula{P, Q}, logic.And(P, Q))
	g1, g2, goal := p.StepAt(1), p.StepAt(2), p.Root().Goal()
	step := NewInference(AndIntro, logic.And(P, Q), g1, g2)
	//
	require.True(t, p.Root().InsertTo(goal, step))
	checkLayout(t, p,
		"1 P given",
		"2 Q given",
		"3 P∧Q ⋀I(1, 2)")
	require.NoError(t, p.Validate())
	assert.True(t, p.Complete())
	assert.Nil(t, goal.Box())
}

func Test_Proof_03(t *testing.T) {
	// Inserting into an empty slot keeps a fresh empty slot after the new step.
	p := New([]logic.Formula{logic.And(P, Q)}, logic.And(Q, P))
	empty := p.Root().Empty()
	step := NewInference(AndElim, Q, p.StepAt(1))
	//
	require.True(t, p.Root().InsertTo(empty, step))
	checkLayout(t, p,
		"1 P∧Q given",
		"2 Q ⋀E(1)",
		"3 [ Empty ] ",
		"4 Q∧P <goal>")
	require.NoError(t, p.Validate())
	assert.NotSame(t, empty, p.Root().Empty())
}

func Test_Proof_04(t *testing.T) {
	// An empty slot directly before an equal goal is closed automatically.
	p := New([]logic.Formula{P, Q}, logic.And(P, Q))
	step := NewInference(AndIntro, logic.And(P, Q), p.StepAt(1), p.StepAt(2))
	//
	require.True(t, p.Root().InsertTo(p.Root().Empty(), step))
	checkLayout(t, p,
		"1 P given",
		"2 Q given",
		"3 P∧Q ⋀I(1, 2)")
	assert.True(t, p.Complete())
}

func Test_Proof_05(t *testing.T) {
	// Structural preconditions
	p := New([]logic.Formula{P, Q}, logic.And(P, Q))
	root := p.Root()
	given := p.StepAt(1)
	wrong := NewInference(AndIntro, logic.And(Q, P), p.StepAt(2), p.StepAt(1))
	//
	assert.False(t, root.InsertTo(given, NewInference(TopIntro, logic.Top())))
	assert.False(t, root.InsertTo(root.Empty(), newStep(Empty, nil)))
	assert.False(t, root.InsertTo(root.Goal(), wrong))
	assert.False(t, root.InsertTo(nil, wrong))
	// Nothing changed
	checkLayout(t, p,
		"1 P given",
		"2 Q given",
		"3 [ Empty ] ",
		"4 P∧Q <goal>")
}

func Test_Proof_06(t *testing.T) {
	// A step cannot be inserted twice
	p := New(nil, logic.And(logic.Top(), logic.Top()))
	top := NewInference(TopIntro, logic.Top())
	//
	require.True(t, p.Root().InsertTo(p.Root().Empty(), top))
	assert.False(t, p.Root().InsertTo(p.Root().Empty(), top))
}

// ============================================================================
// Box-introducing steps
// ============================================================================

func Test_Proof_10(t *testing.T) {
	// Universal introduction opens a box with a fresh constant.
	goal := logic.All(x, logic.Pred("P", x))
	p := New(nil, goal)
	step := NewInference(AllIntro, goal)
	//
	require.True(t, p.Root().InsertTo(p.Root().Goal(), step))
	require.Len(t, step.Boxes(), 1)
	//
	child := step.Boxes()[0]
	assert.Equal(t, AssumptionConst, child.Steps()[0].Kind())
	assert.Equal(t, "sk1", child.Steps()[0].FormulaText())
	assert.Equal(t, "P(sk1)", child.Goal().FormulaText())
	checkLayout(t, p,
		"1 sk1 ∀I const",
		"2 [ Empty ] ",
		"3 P(sk1) <goal>",
		"4 ∀x[P(x)] ∀I(1-3)")
	require.NoError(t, p.Validate())
}

func Test_Proof_11(t *testing.T) {
	// Implication introduction
	p := New([]logic.Formula{Q}, logic.Implies(P, Q))
	step := NewInference(ImpliesIntro, logic.Implies(P, Q))
	//
	require.True(t, p.Root().InsertTo(p.Root().Empty(), step))
	checkLayout(t, p,
		"1 Q given",
		"2 P ass",
		"3 [ Empty ] ",
		"4 Q <goal>",
		"5 P→Q →I(2-4)")
	// Close the inner box by citing the outer given
	child := step.Boxes()[0]
	copied := NewInference(AndElim, Q, p.StepAt(1))
	require.True(t, child.InsertTo(child.Goal(), copied))
	checkLayout(t, p,
		"1 Q given",
		"2 P ass",
		"3 Q ⋀E(1)",
		"4 P→Q →I(2-3)")
	require.NoError(t, p.Validate())
	assert.True(t, p.Complete())
}

func Test_Proof_12(t *testing.T) {
	// Disjunction elimination opens two boxes
	or := logic.Or(P, Q)
	p := New([]logic.Formula{or}, R)
	step := NewInference(OrElim, R, p.StepAt(1))
	//
	require.True(t, p.Root().InsertTo(p.Root().Goal(), step))
	checkLayout(t, p,
		"1 P∨Q given",
		"2 P ass",
		"3 [ Empty ] ",
		"4 R <goal>",
		"5 Q ass",
		"6 [ Empty ] ",
		"7 R <goal>",
		"8 R ⋁E(1, 2-4, 5-7)")
	require.NoError(t, p.Validate())
}

func Test_Proof_13(t *testing.T) {
	// Sibling boxes at the same depth never share a fresh constant.
	px := logic.Pred("P", x)
	goal := logic.And(logic.All(x, px), logic.All(x, px))
	p := New(nil, goal)
	left := NewInference(AllIntro, logic.All(x, px))
	right := NewInference(AllIntro, logic.All(x, px))
	//
	require.True(t, p.Root().InsertTo(p.Root().Empty(), left))
	require.True(t, p.Root().InsertTo(p.Root().Empty(), right))
	//
	assert.Equal(t, "sk1", left.Boxes()[0].Steps()[0].FormulaText())
	assert.Equal(t, "sk1_2", right.Boxes()[0].Steps()[0].FormulaText())
}

func Test_Proof_14(t *testing.T) {
	// Existential elimination assumes an instance with a fresh constant; the
	// fresh prefix is configurable.
	exists := logic.Exists(x, logic.Pred("P", x))
	p := New([]logic.Formula{exists}, Q, WithFreshPrefix("c"))
	step := NewInference(ExistsElim, Q, p.StepAt(1))
	//
	require.True(t, p.Root().InsertTo(p.Root().Goal(), step))
	//
	child := step.Boxes()[0]
	assert.Equal(t, Assumption, child.Steps()[0].Kind())
	assert.Equal(t, "P(c1)", child.Steps()[0].FormulaText())
	assert.Equal(t, "Q", child.Goal().FormulaText())
	assert.Equal(t, "∃E(1, 2-4)", step.RuleLabel())
}

func Test_Proof_15(t *testing.T) {
	// Negation introduction and proof by contradiction
	p := New(nil, logic.And(logic.Negate(P), Q))
	not := NewInference(NotIntro, logic.Negate(P))
	pc := NewInference(ProofByContradiction, Q)
	//
	require.True(t, p.Root().InsertTo(p.Root().Empty(), not))
	require.True(t, p.Root().InsertTo(p.Root().Empty(), pc))
	//
	assert.Equal(t, "P", not.Boxes()[0].Steps()[0].FormulaText())
	assert.Equal(t, "⊥", not.Boxes()[0].Goal().FormulaText())
	assert.Equal(t, "¬Q", pc.Boxes()[0].Steps()[0].FormulaText())
	assert.Equal(t, "⊥", pc.Boxes()[0].Goal().FormulaText())
	require.NoError(t, p.Validate())
}

// ============================================================================
// Removal
// ============================================================================

func Test_Proof_20(t *testing.T) {
	// Removing the step which reached the goal restores it.
	p := New([]logic.Formula{P, Q}, logic.And(P, Q))
	step := NewInference(AndIntro, logic.And(P, Q), p.StepAt(1), p.StepAt(2))
	//
	require.True(t, p.Root().InsertTo(p.Root().Goal(), step))
	require.True(t, p.Root().RemoveStep(step))
	checkLayout(t, p,
		"1 P given",
		"2 Q given",
		"3 [ Empty ] ",
		"4 P∧Q <goal>")
	require.NoError(t, p.Validate())
	// Undo by re-insertion
	again := NewInference(AndIntro, logic.And(P, Q), p.StepAt(1), p.StepAt(2))
	require.True(t, p.Root().InsertTo(p.Root().Goal(), again))
	assert.Equal(t, 3, p.Root().Len())
}

func Test_Proof_21(t *testing.T) {
	// Removing a non-last step with no trailing empty slot inserts one in its
	// place and shifts no other formula.
	p := New([]logic.Formula{logic.And(P, Q)}, Q)
	first := NewInference(AndElim, P, p.StepAt(1))
	second := NewInference(AndElim, Q, p.StepAt(1))
	//
	require.True(t, p.Root().InsertTo(p.Root().Empty(), first))
	require.True(t, p.Root().InsertTo(p.Root().Goal(), second))
	checkLayout(t, p,
		"1 P∧Q given",
		"2 P ⋀E(1)",
		"3 Q ⋀E(1)")
	//
	require.True(t, p.Root().RemoveStep(first))
	checkLayout(t, p,
		"1 P∧Q given",
		"2 [ Empty ] ",
		"3 Q ⋀E(1)")
	require.NoError(t, p.Validate())
}

func Test_Proof_22(t *testing.T) {
	// Removing a step followed by the empty slot simply drops it.
	p := New([]logic.Formula{logic.And(P, Q)}, Q)
	step := NewInference(AndElim, P, p.StepAt(1))
	//
	require.True(t, p.Root().InsertTo(p.Root().Empty(), step))
	require.True(t, p.Root().RemoveStep(step))
	checkLayout(t, p,
		"1 P∧Q given",
		"2 [ Empty ] ",
		"3 Q <goal>")
}

func Test_Proof_23(t *testing.T) {
	// Removing a step above the empty slot moves the slot, so there is never
	// more than one.
	p := New([]logic.Formula{logic.And(P, Q)}, R)
	first := NewInference(AndElim, P, p.StepAt(1))
	second := NewInference(AndElim, Q, p.StepAt(1))
	//
	require.True(t, p.Root().InsertTo(p.Root().Empty(), first))
	require.True(t, p.Root().InsertTo(p.Root().Empty(), second))
	require.True(t, p.Root().RemoveStep(first))
	checkLayout(t, p,
		"1 P∧Q given",
		"2 [ Empty ] ",
		"3 Q ⋀E(1)",
		"4 R <goal>")
	require.NoError(t, p.Validate())
}

func Test_Proof_24(t *testing.T) {
	// Administrative and cited steps cannot be removed.
	p := New([]logic.Formula{logic.And(P, Q)}, logic.And(Q, P))
	first := NewInference(AndElim, Q, p.StepAt(1))
	require.True(t, p.Root().InsertTo(p.Root().Empty(), first))
	second := NewInference(AndIntro, logic.And(Q, Q), first, first)
	require.True(t, p.Root().InsertTo(p.Root().Empty(), second))
	//
	assert.False(t, p.Root().RemoveStep(p.StepAt(1)))
	assert.False(t, p.Root().RemoveStep(p.Root().Goal()))
	assert.False(t, p.Root().RemoveStep(first))
	assert.True(t, p.Root().RemoveStep(second))
	assert.True(t, p.Root().RemoveStep(first))
}

func Test_Proof_25(t *testing.T) {
	// Removing a box-introducing step destroys its box.
	p := New([]logic.Formula{Q}, logic.Implies(P, Q))
	step := NewInference(ImpliesIntro, logic.Implies(P, Q))
	require.True(t, p.Root().InsertTo(p.Root().Goal(), step))
	child := step.Boxes()[0]
	assumption := child.Steps()[0]
	// Steps within the box cite its assumption, which is fine.
	inner := NewInference(AndIntro, logic.And(P, P), assumption, assumption)
	require.True(t, child.InsertTo(child.Empty(), inner))
	//
	require.True(t, p.Root().RemoveStep(step))
	assert.Nil(t, child.Proof())
	assert.Nil(t, assumption.Box())
	assert.Nil(t, p.Lookup(inner.ID()))
	checkLayout(t, p,
		"1 Q given",
		"2 [ Empty ] ",
		"3 P→Q <goal>")
}

// ============================================================================
// Handles, visibility and notification
// ============================================================================

func Test_Proof_30(t *testing.T) {
	p := New([]logic.Formula{P}, Q)
	given := p.StepAt(1)
	//
	assert.Same(t, given, p.Lookup(given.ID()))
	assert.Nil(t, p.StepAt(99))
}

func Test_Proof_31(t *testing.T) {
	p := New([]logic.Formula{P}, logic.And(logic.Implies(Q, R), P))
	step := NewInference(ImpliesIntro, logic.Implies(Q, R))
	require.True(t, p.Root().InsertTo(p.Root().Empty(), step))
	//
	var (
		given      = p.StepAt(1)
		child      = step.Boxes()[0]
		assumption = child.Steps()[0]
		empty      = child.Empty()
	)
	// Outer steps are visible from inside the box
	assert.True(t, given.VisibleFrom(empty))
	assert.True(t, assumption.VisibleFrom(empty))
	// Inner steps are not visible from outside
	assert.False(t, assumption.VisibleFrom(p.Root().Empty()))
	// A step is not visible from earlier positions
	assert.False(t, step.VisibleFrom(given))
	assert.True(t, given.VisibleFrom(p.Root().Goal()))
}

func Test_Proof_32(t *testing.T) {
	var count int
	//
	p := New([]logic.Formula{P}, logic.Top())
	p.OnChange(func(*Proof) { count++ })
	//
	require.True(t, p.Root().InsertTo(p.Root().Goal(), NewInference(TopIntro, logic.Top())))
	assert.False(t, p.Root().InsertTo(p.Root().Goal(), NewInference(TopIntro, logic.Top())))
	assert.Equal(t, 1, count)
}

func Test_Proof_33(t *testing.T) {
	assert.Panics(t, func() { NewInference(Goal, P) })
	assert.Equal(t, "∀→E", AllImpliesElim.Symbol())
	assert.True(t, OrElim.IsBoxIntroducing())
	assert.False(t, AllImpliesElim.IsBoxIntroducing())
	assert.Len(t, Kinds(), 24)
}

// ============================================================================
// Framework
// ============================================================================

func checkLayout(t *testing.T, p *Proof, expected ...string) {
	t.Helper()
	//
	var actual []string
	//
	for _, s := range p.Steps() {
		actual = append(actual, s.String())
	}
	//
	assert.Equal(t, expected, actual)
}
