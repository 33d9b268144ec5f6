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
	"testing"

	"github.com/consensys/go-deduce/pkg/logic"
	"github.com/consensys/go-deduce/pkg/proof"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Session_01(t *testing.T) {
	p := proof.New([]logic.Formula{logic.And(P, Q)}, R)
	s := NewSession(p)
	//
	require.NoError(t, s.Begin("⋀E"))
	require.NoError(t, s.Select(p.StepAt(1)))
	require.NoError(t, s.Select(p.StepAt(2)))
	//
	outcome, err := s.Finalize()
	require.NoError(t, err)
	require.IsType(t, Pending{}, outcome)
	//
	request, ok := s.Pending()
	require.True(t, ok)
	assert.Equal(t, SideRequest, request.Kind)
	assert.Equal(t, []string{"left", "right"}, request.Options)
	// Selection is frozen whilst a request is outstanding
	assert.ErrorIs(t, s.Select(p.StepAt(1)), ErrBusy)
	assert.ErrorIs(t, s.Begin("⋀I"), ErrBusy)
	assert.ErrorIs(t, s.Remove(p.StepAt(1)), ErrBusy)
	_, err = s.Finalize()
	assert.ErrorIs(t, err, ErrBusy)
	// Invalid choices can be corrected
	_, err = s.Resume("middle")
	assert.ErrorIs(t, err, ErrInvalidChoice)
	_, ok = s.Pending()
	assert.True(t, ok)
	//
	outcome, err = s.Resume("right")
	require.NoError(t, err)
	require.IsType(t, Ready{}, outcome)
	assert.Equal(t, []string{
		"1 P∧Q given",
		"2 Q ⋀E(1)",
		"3 [ Empty ] ",
		"4 R <goal>"}, layout(p))
	assert.Nil(t, s.Matcher())
}

func Test_Session_02(t *testing.T) {
	var changes int
	//
	p := proof.New([]logic.Formula{logic.And(P, Q)}, R)
	p.OnChange(func(*proof.Proof) { changes++ })
	before := layout(p)
	s := NewSession(p)
	//
	require.NoError(t, s.Begin("⋀E"))
	require.NoError(t, s.Select(p.StepAt(1)))
	require.NoError(t, s.Select(p.StepAt(2)))
	_, err := s.Finalize()
	require.NoError(t, err)
	// Cancelling leaves the proof unchanged
	s.Cancel()
	//
	_, ok := s.Pending()
	assert.False(t, ok)
	assert.Nil(t, s.Matcher())
	assert.Equal(t, before, layout(p))
	assert.Zero(t, changes)
}

func Test_Session_03(t *testing.T) {
	var changes int
	//
	p := proof.New([]logic.Formula{logic.And(P, Q)}, R)
	p.OnChange(func(*proof.Proof) { changes++ })
	before := layout(p)
	s := NewSession(p)
	//
	require.NoError(t, s.Begin("⋀E"))
	require.NoError(t, s.Select(p.StepAt(1)))
	require.NoError(t, s.Select(p.StepAt(2)))
	// Resolver cancels
	_, err := s.Apply(&scripted{})
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, before, layout(p))
	assert.Zero(t, changes)
	// Selection is retained, so can try again
	require.NotNil(t, s.Matcher())
	step, err := s.Apply(&scripted{choices: []string{"left"}})
	require.NoError(t, err)
	assert.Equal(t, "P", step.FormulaText())
	assert.Equal(t, 1, changes)
}

func Test_Session_04(t *testing.T) {
	p := proof.New([]logic.Formula{logic.And(P, Q)}, Q)
	s := NewSession(p)
	//
	assert.ErrorIs(t, s.Select(p.StepAt(1)), ErrRejected)
	_, err := s.Finalize()
	assert.ErrorIs(t, err, ErrIncomplete)
	_, err = s.Resume("left")
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.ErrorIs(t, s.Begin("xyz"), ErrUnknownRule)
	// Givens cannot be removed
	assert.ErrorIs(t, s.Remove(p.StepAt(1)), ErrRejected)
	// Steps from other proofs cannot be selected
	other := proof.New([]logic.Formula{P}, Q)
	require.NoError(t, s.Begin("⋀E"))
	assert.ErrorIs(t, s.Select(other.StepAt(1)), ErrRejected)
}

func Test_Session_05(t *testing.T) {
	p := proof.New([]logic.Formula{logic.And(P, Q)}, Q)
	s := NewSession(p)
	//
	require.NoError(t, s.Begin("⋀E"))
	require.NoError(t, s.Select(p.StepAt(1)))
	require.NoError(t, s.Select(p.StepAt(3)))
	step, err := s.Apply(&scripted{})
	require.NoError(t, err)
	assert.True(t, p.Complete())
	// Removing restores the goal
	require.NoError(t, s.Remove(step))
	assert.Equal(t, []string{
		"1 P∧Q given",
		"2 [ Empty ] ",
		"3 Q <goal>"}, layout(p))
}

func Test_Session_06(t *testing.T) {
	// A complete proof of (P∧Q)→(Q∧P)
	p := proof.New(nil, logic.Implies(logic.And(P, Q), logic.And(Q, P)))
	//
	checkApply(t, p, "→I", nil, 2)
	checkApplyWith(t, p, "⋀E", []uint{1}, 2, &scripted{choices: []string{"right"}})
	checkApplyWith(t, p, "⋀E", []uint{1}, 3, &scripted{choices: []string{"left"}})
	checkApply(t, p, "⋀I", []uint{2, 3}, 5)
	//
	assert.Equal(t, []string{
		"1 P∧Q ass",
		"2 Q ⋀E(1)",
		"3 P ⋀E(1)",
		"4 Q∧P ⋀I(2, 3)",
		"5 P∧Q→Q∧P →I(1-4)"}, layout(p))
	assert.True(t, p.Complete())
}
