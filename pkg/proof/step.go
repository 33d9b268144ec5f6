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
	"fmt"
	"slices"
	"strings"

	"github.com/consensys/go-deduce/pkg/logic"
	"github.com/google/uuid"
)

// Step is one line of a derivation: a given, an assumption, a goal, an empty
// working slot or the conclusion of a rule.  Every step carries a stable
// identifier which callers can use as a selection handle, along with derived
// display state (its line number and rule label) which is recomputed whenever
// the enclosing proof changes shape.
type Step struct {
	id      uuid.UUID
	kind    Kind
	formula logic.Formula
	// Box containing this step (or nil if the step is detached).
	box *Box
	// Steps cited by this step, in the order they are displayed.
	sources []*Step
	// Child boxes opened by this step (if any).
	boxes []*Box
	// Derived display state
	line  uint
	label string
}

// NewGiven constructs a given premise.  Unlike other steps, the line number of
// a given is fixed when it is created.
func NewGiven(formula logic.Formula, line uint) *Step {
	step := newStep(Given, formula)
	step.line = line
	//
	return step
}

// NewInference constructs the conclusion of a rule which cites zero or more
// source steps.  For box-introducing rules, the child boxes are synthesized
// when the step is inserted into a box.
func NewInference(kind Kind, formula logic.Formula, sources ...*Step) *Step {
	if kind.IsAdministrative() {
		panic(fmt.Sprintf("cannot construct inference of kind %s", kind))
	}
	//
	step := newStep(kind, formula)
	step.sources = sources
	//
	return step
}

func newStep(kind Kind, formula logic.Formula) *Step {
	return &Step{id: uuid.New(), kind: kind, formula: formula}
}

// ID returns the stable identifier of this step.
func (s *Step) ID() uuid.UUID {
	return s.id
}

// Kind returns the variant of this step.
func (s *Step) Kind() Kind {
	return s.kind
}

// Formula returns the formula of this step.  This is nil for empty slots.
func (s *Step) Formula() logic.Formula {
	return s.formula
}

// Box returns the box containing this step, or nil if the step has not been
// inserted (or has since been removed).
func (s *Step) Box() *Box {
	return s.box
}

// Sources returns the steps cited by this step.
func (s *Step) Sources() []*Step {
	return slices.Clone(s.sources)
}

// Boxes returns the child boxes opened by this step.
func (s *Step) Boxes() []*Box {
	return slices.Clone(s.boxes)
}

// LineNumber returns the line number of this step.
func (s *Step) LineNumber() uint {
	return s.line
}

// RuleLabel returns the label describing how this step was obtained, such as
// "→E(1, 2)".
func (s *Step) RuleLabel() string {
	return s.label
}

// FormulaText returns the display text of this step's formula.
func (s *Step) FormulaText() string {
	if s.kind == Empty {
		return "[ Empty ]"
	}
	//
	return logic.Show(s.formula)
}

// IsSlot determines whether this step is a goal or empty slot.
func (s *Step) IsSlot() bool {
	return s.kind.IsSlot()
}

// IsAdministrative determines whether this step is a given, assumption, goal or
// empty slot.
func (s *Step) IsAdministrative() bool {
	return s.kind.IsAdministrative()
}

// VisibleFrom determines whether this step can be cited by a step placed at
// the given position.  That is, this step must either reside in the same box
// and come before the position, or be visible from the step which opened an
// enclosing box.
func (s *Step) VisibleFrom(position *Step) bool {
	if s.box == nil || position.box == nil || s.box.proof != position.box.proof {
		return false
	}
	//
	for at := position; at != nil && at.box != nil; at = at.box.opener {
		if at.box == s.box {
			return s.box.indexOf(s) < s.box.indexOf(at)
		}
	}
	//
	return false
}

func (s *Step) String() string {
	return fmt.Sprintf("%d %s %s", s.line, s.FormulaText(), s.label)
}

// Recompute the label of this step, assuming all line numbers are up-to-date.
func (s *Step) relabel() {
	var refs []string
	//
	if s.kind.IsAdministrative() {
		s.label = s.kind.Symbol()
		return
	}
	//
	for _, src := range s.sources {
		refs = append(refs, fmt.Sprintf("%d", src.line))
	}
	//
	for _, box := range s.boxes {
		if first, last, ok := box.span(); ok {
			refs = append(refs, fmt.Sprintf("%d-%d", first, last))
		}
	}
	//
	if len(refs) == 0 {
		s.label = s.kind.Symbol()
	} else {
		s.label = fmt.Sprintf("%s(%s)", s.kind.Symbol(), strings.Join(refs, ", "))
	}
}
