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
	"errors"
	"fmt"
	"slices"

	"github.com/consensys/go-deduce/pkg/logic"
	log "github.com/sirupsen/logrus"
)

// Box is an ordered sequence of steps forming one lexical scope of a proof.
// The outermost box holds the givens and the overall goal, whilst nested boxes
// are opened by box-introducing steps (e.g. →I) and begin with an assumption.
// A box which still has work outstanding either ends in a single goal, or
// contains a single empty slot (or both).  Once its goal has been reached, a
// box contains neither.
type Box struct {
	proof *Proof
	// Step which opened this box, or nil for the outermost box.
	opener *Step
	// Nesting depth, where the outermost box has depth 0.
	depth uint
	steps []*Step
}

func newBox(proof *Proof, opener *Step, depth uint, steps ...*Step) *Box {
	box := &Box{proof, opener, depth, nil}
	//
	for _, step := range steps {
		box.push(step)
	}
	//
	return box
}

// Proof returns the proof to which this box belongs, or nil if this box has
// been destroyed.
func (b *Box) Proof() *Proof {
	return b.proof
}

// Opener returns the step which opened this box, or nil for the outermost box.
func (b *Box) Opener() *Step {
	return b.opener
}

// Depth returns the nesting depth of this box.
func (b *Box) Depth() uint {
	return b.depth
}

// Steps returns the steps of this box in order.
func (b *Box) Steps() []*Step {
	return slices.Clone(b.steps)
}

// Len returns the number of steps in this box.
func (b *Box) Len() int {
	return len(b.steps)
}

// Goal returns the goal of this box, or nil if it has been reached.
func (b *Box) Goal() *Step {
	if n := len(b.steps); n > 0 && b.steps[n-1].kind == Goal {
		return b.steps[n-1]
	}
	//
	return nil
}

// Empty returns the empty slot of this box, or nil if there is none.
func (b *Box) Empty() *Step {
	for _, s := range b.steps {
		if s.kind == Empty {
			return s
		}
	}
	//
	return nil
}

// InsertTo places a new step in the position of an existing slot (i.e. a goal
// or empty step) of this box.  This fails, leaving the box untouched, if the
// slot is not a goal or empty step of this box, if the new step is itself a
// slot or has already been inserted, or if the slot is a goal whose formula
// differs from that of the new step.
//
// When inserting into an empty slot which is immediately followed by a goal
// with the same formula, the goal is reached directly.  Otherwise, the new
// step is placed just before the empty slot.  When a goal is reached, every
// remaining empty slot in the box is discarded.  Finally, if the new step
// introduces boxes then these are synthesized and the proof is renumbered.
func (b *Box) InsertTo(slot *Step, step *Step) bool {
	if !b.insertTo(slot, step) {
		return false
	}
	//
	b.proof.changed()
	//
	return true
}

func (b *Box) insertTo(slot *Step, step *Step) bool {
	if slot == nil || step == nil || b.proof == nil {
		return false
	} else if !slot.IsSlot() || step.IsSlot() || step.IsAdministrative() || step.box != nil {
		log.Debugf("cannot insert %s step into %s slot", step.kind, slot.kind)
		return false
	}
	//
	index := b.indexOf(slot)
	//
	if index < 0 {
		log.Debugf("slot %s does not belong to box", slot)
		return false
	}
	//
	switch slot.kind {
	case Empty:
		if index+1 < len(b.steps) {
			next := b.steps[index+1]
			// Check whether the goal can be reached directly.
			if next.kind == Goal && logic.Equal(next.formula, step.formula) {
				b.steps = slices.Delete(b.steps, index, index+1)
				slot.box = nil
				//
				return b.insertTo(next, step)
			}
		}
		// Replace empty slot with step, followed by a fresh empty slot.
		slot.box = nil
		b.steps[index] = step
		b.steps = slices.Insert(b.steps, index+1, newStep(Empty, nil))
		b.steps[index+1].box = b
	case Goal:
		if !logic.Equal(slot.formula, step.formula) {
			log.Debugf("formula %s does not reach goal %s", step.formula, slot.formula)
			return false
		}
		//
		slot.box = nil
		b.steps[index] = step
		b.purgeEmpty()
	}
	//
	step.box = b
	log.Debugf("inserted %s (%s) into box at depth %d", step.FormulaText(), step.kind, b.depth)
	//
	if step.kind.IsBoxIntroducing() {
		b.open(step)
	}
	//
	return true
}

// RemoveStep removes a step concluded by a rule from this box, restoring
// whatever slots are needed for the box to remain workable.  If the step is
// not immediately followed by an empty slot, then an empty slot is placed where
// the step was (and any other empty slot in the box is discarded).  If the
// step was the last in the box (i.e. it reached the goal), the goal is
// restored.  Any child boxes opened by the step are destroyed.  This fails,
// leaving the box untouched, if the step is administrative, does not belong to
// this box, or is still cited by some other step of the proof.
func (b *Box) RemoveStep(step *Step) bool {
	if step == nil || b.proof == nil || step.IsAdministrative() {
		return false
	}
	//
	index := b.indexOf(step)
	//
	if index < 0 {
		return false
	} else if citer := b.proof.citerOf(step); citer != nil {
		log.Debugf("cannot remove line %d, as it is cited by line %d", step.line, citer.line)
		return false
	}
	// If no empty slot follows, add one before this step
	if index+1 >= len(b.steps) || b.steps[index+1].kind != Empty {
		b.purgeEmpty()
		index = b.indexOf(step)
		b.steps = slices.Insert(b.steps, index, newStep(Empty, nil))
		b.steps[index].box = b
		index++
	}
	// If this was the last step, restore the goal.
	if index == len(b.steps)-1 {
		b.push(newStep(Goal, step.formula))
	}
	//
	b.steps = slices.Delete(b.steps, index, index+1)
	step.box = nil
	//
	for _, child := range step.boxes {
		child.destroy()
	}
	//
	step.boxes = nil
	log.Debugf("removed %s (%s) from box at depth %d", step.FormulaText(), step.kind, b.depth)
	b.proof.changed()
	//
	return true
}

// Validate checks the structural invariants of this box and, recursively, of
// any boxes nested within it.
func (b *Box) Validate() error {
	var empties, goals int
	//
	if b.proof == nil {
		return errors.New("box has been destroyed")
	}
	//
	for i, s := range b.steps {
		switch {
		case s.box != b:
			return fmt.Errorf("step %d (%s) has inconsistent box", i, s)
		case s.kind == Empty:
			empties++
		case s.kind == Goal:
			goals++
			//
			if i != len(b.steps)-1 {
				return fmt.Errorf("goal %s is not the last step", s)
			}
		case s.kind == Given && b.opener != nil:
			return fmt.Errorf("given %s within nested box", s)
		case (s.kind == Assumption || s.kind == AssumptionConst) && i != 0:
			return fmt.Errorf("assumption %s is not the first step", s)
		}
		//
		if err := validateChildren(b, s); err != nil {
			return err
		}
	}
	//
	if empties > 1 {
		return fmt.Errorf("box has %d empty slots", empties)
	} else if goals > 1 {
		return fmt.Errorf("box has %d goals", goals)
	}
	//
	return nil
}

func validateChildren(b *Box, s *Step) error {
	var expected = 0
	//
	switch {
	case s.kind == OrElim:
		expected = 2
	case s.kind.IsBoxIntroducing():
		expected = 1
	}
	//
	if len(s.boxes) != expected {
		return fmt.Errorf("step %s has %d boxes (expected %d)", s, len(s.boxes), expected)
	}
	//
	for _, child := range s.boxes {
		if child.opener != s || child.depth != b.depth+1 {
			return fmt.Errorf("box opened by %s is malformed", s)
		} else if len(child.steps) == 0 || (child.steps[0].kind != Assumption && child.steps[0].kind != AssumptionConst) {
			return fmt.Errorf("box opened by %s does not begin with an assumption", s)
		} else if err := child.Validate(); err != nil {
			return err
		}
	}
	//
	return nil
}

// Synthesize the child box(es) for a box-introducing step.  The assumption and
// goal of each box follows from the rule's definition.
func (b *Box) open(step *Step) {
	var depth = b.depth + 1
	//
	switch step.kind {
	case ImpliesIntro:
		if imp, ok := logic.AsBinary(step.formula, logic.IMPLIES); ok {
			b.openChild(step, newStep(Assumption, imp.Left), imp.Right)
		}
	case NotIntro:
		if not, ok := logic.AsNot(step.formula); ok {
			b.openChild(step, newStep(Assumption, not.Body), logic.Bottom())
		}
	case ProofByContradiction:
		b.openChild(step, newStep(Assumption, logic.Negate(step.formula)), logic.Bottom())
	case AllIntro:
		if all, ok := logic.AsQuantifier(step.formula, logic.FORALL); ok {
			sk := logic.Var(b.proof.freshName(depth))
			b.openChild(step, newStep(AssumptionConst, sk), logic.Instantiate(all, sk))
		}
	case ExistsElim:
		if exists, ok := logic.AsQuantifier(step.sources[0].formula, logic.EXISTS); ok {
			sk := logic.Var(b.proof.freshName(depth))
			b.openChild(step, newStep(Assumption, logic.Instantiate(exists, sk)), step.formula)
		}
	case OrElim:
		if or, ok := logic.AsBinary(step.sources[0].formula, logic.OR); ok {
			b.openChild(step, newStep(Assumption, or.Left), step.formula)
			b.openChild(step, newStep(Assumption, or.Right), step.formula)
		}
	}
}

func (b *Box) openChild(step *Step, assumption *Step, goal logic.Formula) {
	child := newBox(b.proof, step, b.depth+1, assumption, newStep(Empty, nil), newStep(Goal, goal))
	step.boxes = append(step.boxes, child)
	//
	log.Debugf("opened box at depth %d assuming %s with goal %s", child.depth, assumption.FormulaText(),
		logic.Show(goal))
}

// Destroy this box and everything nested within it.
func (b *Box) destroy() {
	for _, s := range b.steps {
		for _, child := range s.boxes {
			child.destroy()
		}
		//
		s.box = nil
	}
	//
	b.proof = nil
}

func (b *Box) push(step *Step) {
	step.box = b
	b.steps = append(b.steps, step)
}

func (b *Box) purgeEmpty() {
	b.steps = slices.DeleteFunc(b.steps, func(s *Step) bool {
		if s.kind == Empty {
			s.box = nil
			return true
		}
		//
		return false
	})
}

func (b *Box) indexOf(step *Step) int {
	return slices.Index(b.steps, step)
}

// Determine the line numbers of the first and last steps of this box.
func (b *Box) span() (uint, uint, bool) {
	if len(b.steps) == 0 {
		return 0, 0, false
	}
	//
	return b.steps[0].line, b.steps[len(b.steps)-1].line, true
}

// Assign line numbers to every step in this box (and any nested boxes) in
// display order, where the steps of a child box are displayed immediately
// before the step which opened it.  Givens retain their fixed line.
func (b *Box) number(line *uint) {
	for _, s := range b.steps {
		for _, child := range s.boxes {
			child.number(line)
		}
		//
		if s.kind == Given {
			*line = s.line
		} else {
			*line = *line + 1
			s.line = *line
		}
	}
}

// Visit every step of this box (and any nested boxes) in display order.
func (b *Box) walk(fn func(*Step) bool) bool {
	for _, s := range b.steps {
		for _, child := range s.boxes {
			if !child.walk(fn) {
				return false
			}
		}
		//
		if !fn(s) {
			return false
		}
	}
	//
	return true
}
