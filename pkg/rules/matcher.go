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
	"errors"
	"fmt"
	"slices"

	"github.com/consensys/go-deduce/pkg/logic"
	"github.com/consensys/go-deduce/pkg/proof"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrRejected indicates a step offered to a matcher fits no open slot, or
	// is inconsistent with the steps already matched.
	ErrRejected = errors.New("step rejected")
	// ErrIncomplete indicates a matcher was finalized before every slot was
	// filled.
	ErrIncomplete = errors.New("rule not fully matched")
	// ErrFinalized indicates a matcher was used after producing its step.
	ErrFinalized = errors.New("rule already finalized")
	// ErrCancelled indicates a disambiguation request was abandoned.
	ErrCancelled = errors.New("rule application cancelled")
	// ErrInvalidChoice indicates an answer to a disambiguation request which
	// does not make sense.
	ErrInvalidChoice = errors.New("invalid choice")
	// ErrBusy indicates an attempt to change the selection whilst a
	// disambiguation request is outstanding.
	ErrBusy = errors.New("disambiguation pending")
	// ErrUnknownRule indicates a rule name which does not exist.
	ErrUnknownRule = errors.New("unknown rule")
)

// Matcher incrementally matches steps against the premises and destination of
// a given rule.  Steps can be offered in any order, and each is accepted only
// when it is consistent with those already matched.  Once every slot is
// filled, the matcher can be finalized to construct the concluding step.  A
// matcher never mutates the proof, and is single use.
type Matcher struct {
	rule *Rule
	// Matched premises, in declared order (nil if not yet matched).
	premises []*proof.Step
	// Matched destination (either a goal or an empty slot).
	destination *proof.Step
	// Set once the concluding step has been constructed.
	done bool
}

// NewMatcher constructs a fresh matcher for a given rule.
func NewMatcher(rule *Rule) *Matcher {
	return &Matcher{rule, make([]*proof.Step, len(rule.premises)), nil, false}
}

// Rule returns the rule being matched.
func (m *Matcher) Rule() *Rule {
	return m.rule
}

// Premise returns the step matched against the ith premise, or nil.
func (m *Matcher) Premise(i int) *proof.Step {
	return m.premises[i]
}

// Destination returns the matched destination, or nil.
func (m *Matcher) Destination() *proof.Step {
	return m.destination
}

// FullyMatched determines whether every premise and the destination have been
// matched.
func (m *Matcher) FullyMatched() bool {
	return m.destination != nil && !slices.Contains(m.premises, nil)
}

// AddStep offers a step to this matcher.  A goal or empty slot can only be the
// destination, whilst any other step can only be a premise, in which case
// unfilled premises are tried in declared order.  An error wrapping
// ErrRejected is returned when the step cannot be matched.
func (m *Matcher) AddStep(step *proof.Step) error {
	var err error
	//
	if m.done {
		return ErrFinalized
	} else if step == nil || step.Box() == nil {
		return fmt.Errorf("%w: step is not part of a proof", ErrRejected)
	} else if step.IsSlot() {
		err = m.addDestination(step)
	} else {
		err = m.addPremise(step)
	}
	//
	if err != nil {
		log.Debugf("%s rejected line %d: %s", m.rule.Name(), step.LineNumber(), err)
	} else {
		log.Debugf("%s accepted line %d", m.rule.Name(), step.LineNumber())
	}
	//
	return err
}

// Finalize constructs the concluding step of a fully matched rule.  For rules
// with more than one valid conclusion the outcome may be Pending, in which
// case the step is only constructed once the request has been answered.
// Abandoning a pending outcome leaves the matcher as it was, so it can be
// finalized again.
func (m *Matcher) Finalize() (Outcome, error) {
	if m.done {
		return nil, ErrFinalized
	} else if !m.FullyMatched() {
		return nil, ErrIncomplete
	}
	//
	outcome, err := m.rule.conclude(m)
	//
	if err != nil {
		return nil, err
	}
	//
	return m.settle(outcome), nil
}

func (m *Matcher) addDestination(step *proof.Step) error {
	if m.destination != nil {
		return fmt.Errorf("%w: destination already matched", ErrRejected)
	} else if step.Kind() == proof.Empty && m.rule.goalOnly {
		return fmt.Errorf("%w: %s must conclude a goal", ErrRejected, m.rule.Name())
	} else if m.owner() != nil && m.owner() != step.Box().Proof() {
		return fmt.Errorf("%w: step belongs to another proof", ErrRejected)
	}
	//
	for _, premise := range m.premises {
		if premise != nil && !premise.VisibleFrom(step) {
			return fmt.Errorf("%w: line %d is not in scope", ErrRejected, premise.LineNumber())
		}
	}
	//
	m.destination = step
	//
	if !m.consistent() && !m.trySwap() {
		m.destination = nil
		return fmt.Errorf("%w: %s cannot be concluded by %s", ErrRejected, step.FormulaText(), m.rule.Name())
	}
	//
	return nil
}

func (m *Matcher) addPremise(step *proof.Step) error {
	if m.destination != nil && !step.VisibleFrom(m.destination) {
		return fmt.Errorf("%w: line %d is not in scope", ErrRejected, step.LineNumber())
	} else if m.owner() != nil && m.owner() != step.Box().Proof() {
		return fmt.Errorf("%w: step belongs to another proof", ErrRejected)
	}
	// Try unfilled premises in declared order
	for i, premise := range m.premises {
		if premise == nil && m.tryPremise(i, step, -1) {
			return nil
		}
	}
	// Try displacing a matched premise into an unfilled one
	for i, premise := range m.premises {
		for j := range m.premises {
			if premise != nil && m.premises[j] == nil && m.tryPremise(i, step, j) {
				return nil
			}
		}
	}
	//
	return fmt.Errorf("%w: %s does not fit %s", ErrRejected, step.FormulaText(), m.rule.Name())
}

// Attempt to match a step against the ith premise, moving whatever was
// matched there into the jth premise (unless j is negative).
func (m *Matcher) tryPremise(i int, step *proof.Step, j int) bool {
	displaced := m.premises[i]
	//
	if !m.rule.premises[i](step.Formula()) {
		return false
	} else if j >= 0 && !m.rule.premises[j](displaced.Formula()) {
		return false
	}
	//
	m.premises[i] = step
	//
	if j >= 0 {
		m.premises[j] = displaced
	}
	//
	if m.consistent() {
		return true
	}
	// Undo
	m.premises[i] = displaced
	//
	if j >= 0 {
		m.premises[j] = nil
	}
	//
	return false
}

// Attempt to restore consistency by exchanging the premises of a rule with
// exactly two premises.
func (m *Matcher) trySwap() bool {
	if len(m.premises) != 2 || m.premises[0] == nil || m.premises[1] == nil {
		return false
	}
	//
	p, q := m.premises[0], m.premises[1]
	//
	if !m.rule.premises[0](q.Formula()) || !m.rule.premises[1](p.Formula()) {
		return false
	}
	//
	m.premises[0], m.premises[1] = q, p
	//
	if m.consistent() {
		return true
	}
	//
	m.premises[0], m.premises[1] = p, q
	//
	return false
}

func (m *Matcher) consistent() bool {
	return m.rule.consistent == nil || m.rule.consistent(m)
}

// Proof containing the steps matched so far (or nil if none).
func (m *Matcher) owner() *proof.Proof {
	if m.destination != nil {
		return m.destination.Box().Proof()
	}
	//
	for _, premise := range m.premises {
		if premise != nil {
			return premise.Box().Proof()
		}
	}
	//
	return nil
}

// Wrap a pending outcome so that the matcher is marked as done once the step
// is finally constructed.
func (m *Matcher) settle(outcome Outcome) Outcome {
	switch o := outcome.(type) {
	case Ready:
		m.done = true
		log.Debugf("%s concluded %s", m.rule.Name(), o.Step.FormulaText())
	case Pending:
		resume := o.resume
		o.resume = func(choice string) (Outcome, error) {
			if m.done {
				return nil, ErrFinalized
			}
			//
			next, err := resume(choice)
			//
			if err != nil {
				return nil, err
			}
			//
			return m.settle(next), nil
		}
		//
		log.Debugf("%s pending on %s", m.rule.Name(), o.Request)
		//
		return o
	}
	//
	return outcome
}

// ============================================================================
// Helpers used by rule definitions
// ============================================================================

// Formula of the ith premise, or nil if unmatched.
func (m *Matcher) formula(i int) logic.Formula {
	if m.premises[i] == nil {
		return nil
	}
	//
	return m.premises[i].Formula()
}

// Formula of the destination, provided it is a goal (otherwise nil).
func (m *Matcher) goal() logic.Formula {
	if m.destination == nil || m.destination.Kind() != proof.Goal {
		return nil
	}
	//
	return m.destination.Formula()
}

// Construct the concluding step, citing the premises in declared order.
func (m *Matcher) conclude(formula logic.Formula) (Outcome, error) {
	return m.concludeFrom(formula, m.premises...)
}

// Construct the concluding step, citing the given sources.
func (m *Matcher) concludeFrom(formula logic.Formula, sources ...*proof.Step) (Outcome, error) {
	return Ready{proof.NewInference(m.rule.kind, formula, sources...)}, nil
}
