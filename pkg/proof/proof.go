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

	"github.com/consensys/go-deduce/pkg/logic"
	"github.com/consensys/go-deduce/pkg/util/collection/set"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// DefaultFreshPrefix is the prefix used when minting fresh constants.
const DefaultFreshPrefix = "sk"

// Proof is a natural deduction proof under construction.  It owns the outermost
// box, and notifies listeners whenever its shape changes so that any external
// rendering can be brought up to date.  A proof is not safe for concurrent use.
type Proof struct {
	root      *Box
	prefix    string
	listeners []func(*Proof)
}

// Option configures a proof.
type Option func(*Proof)

// WithFreshPrefix sets the prefix used when minting fresh constants (e.g. for
// ∀I and ∃E).
func WithFreshPrefix(prefix string) Option {
	return func(p *Proof) {
		if prefix != "" {
			p.prefix = prefix
		}
	}
}

// New constructs a proof of a goal from zero or more givens.  The outermost box
// initially holds the givens (on lines 1, 2, ...), an empty slot and the goal.
func New(givens []logic.Formula, goal logic.Formula, options ...Option) *Proof {
	p := &Proof{prefix: DefaultFreshPrefix}
	//
	for _, option := range options {
		option(p)
	}
	//
	p.root = newBox(p, nil, 0)
	//
	for i, given := range givens {
		p.root.push(NewGiven(given, uint(i+1)))
	}
	//
	p.root.push(newStep(Empty, nil))
	p.root.push(newStep(Goal, goal))
	p.renumber()
	//
	return p
}

// Root returns the outermost box of this proof.
func (p *Proof) Root() *Box {
	return p.root
}

// OnChange registers a listener which is called after every change to the
// shape of this proof.
func (p *Proof) OnChange(listener func(*Proof)) {
	p.listeners = append(p.listeners, listener)
}

// Steps returns every step of this proof in display order.
func (p *Proof) Steps() []*Step {
	var steps []*Step
	//
	p.root.walk(func(s *Step) bool {
		steps = append(steps, s)
		return true
	})
	//
	return steps
}

// Lookup finds the step with the given identifier, or returns nil if no such
// step remains in this proof.
func (p *Proof) Lookup(id uuid.UUID) *Step {
	var found *Step
	//
	p.root.walk(func(s *Step) bool {
		if s.id == id {
			found = s
		}
		//
		return found == nil
	})
	//
	return found
}

// StepAt finds the step on a given line, or returns nil if there is none.
func (p *Proof) StepAt(line uint) *Step {
	var found *Step
	//
	p.root.walk(func(s *Step) bool {
		if s.line == line {
			found = s
		}
		//
		return found == nil
	})
	//
	return found
}

// Complete determines whether every goal of this proof has been reached.
func (p *Proof) Complete() bool {
	return p.root.walk(func(s *Step) bool {
		return !s.IsSlot()
	})
}

// Validate checks the structural invariants of every box in this proof.
func (p *Proof) Validate() error {
	return p.root.Validate()
}

// Notify listeners of a change, after bringing the display state up-to-date.
func (p *Proof) changed() {
	p.renumber()
	//
	for _, listener := range p.listeners {
		listener(p)
	}
}

// Recompute line numbers and labels for every step.  Labels cite line
// numbers, hence this requires two passes.
func (p *Proof) renumber() {
	var line uint
	//
	p.root.number(&line)
	p.root.walk(func(s *Step) bool {
		s.relabel()
		return true
	})
}

// Find a step which cites the given step, ignoring those steps nested within
// the given step's own boxes (since they are destroyed along with it).
func (p *Proof) citerOf(step *Step) *Step {
	var (
		found  *Step
		nested = make(map[*Step]bool)
	)
	//
	for _, child := range step.boxes {
		child.walk(func(s *Step) bool {
			nested[s] = true
			return true
		})
	}
	//
	p.root.walk(func(s *Step) bool {
		if !nested[s] {
			for _, src := range s.sources {
				if src == step {
					found = s
				}
			}
		}
		//
		return found == nil
	})
	//
	return found
}

// Mint a constant for a box at the given depth.  The name is derived from the
// depth, but is suffixed as necessary to ensure it occurs nowhere else in the
// proof (e.g. in a sibling branch at the same depth).
func (p *Proof) freshName(depth uint) string {
	var (
		used = set.UnionSortedSets(p.Steps(), func(s *Step) *logic.VarSet { return logic.Names(s.formula) })
		base = fmt.Sprintf("%s%d", p.prefix, depth)
		name = base
	)
	//
	for k := 2; used.Contains(name); k++ {
		name = fmt.Sprintf("%s_%d", base, k)
	}
	//
	log.Debugf("minted fresh constant %s at depth %d", name, depth)
	//
	return name
}
