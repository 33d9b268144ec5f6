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

	"github.com/consensys/go-deduce/pkg/logic"
	"github.com/consensys/go-deduce/pkg/proof"
	log "github.com/sirupsen/logrus"
)

// Outcome is the result of finalizing a matcher.  This is either Ready, in
// which case the new step is available, or Pending, in which case some choice
// must first be made by an external resolver.
type Outcome interface {
	isOutcome()
}

// Ready is an outcome where the concluding step has been constructed, and is
// ready to be inserted into the destination's box.
type Ready struct {
	Step *proof.Step
}

// Pending is an outcome suspended on a disambiguation request.  The request
// is answered by calling Resume with the chosen value, which produces the next
// outcome.  Abandoning a pending outcome leaves everything unchanged.
type Pending struct {
	Request Request
	resume  func(choice string) (Outcome, error)
}

func (Ready) isOutcome()   {}
func (Pending) isOutcome() {}

// Resume continues a suspended finalization with the given choice.  An invalid
// choice is reported as ErrInvalidChoice, in which case the request can be
// answered again.
func (p Pending) Resume(choice string) (Outcome, error) {
	log.Debugf("resuming %s request with \"%s\"", p.Request.Kind, choice)
	//
	return p.resume(choice)
}

// RequestKind identifies the kind of choice being requested.
type RequestKind uint8

const (
	// SideRequest asks which side of a conjunction to eliminate.
	SideRequest RequestKind = iota
	// VariableRequest asks for the name of a variable.
	VariableRequest
	// DirectionRequest asks which variable of an equality to substitute.
	DirectionRequest
)

func (k RequestKind) String() string {
	switch k {
	case SideRequest:
		return "side"
	case VariableRequest:
		return "variable"
	case DirectionRequest:
		return "direction"
	}
	//
	return "unknown"
}

// Request describes a disambiguating choice required to complete a rule.
type Request struct {
	Kind RequestKind
	// Formula about which the choice is made.
	Formula logic.Formula
	// Prompt describing the choice.
	Prompt string
	// Options available (empty when any variable name is acceptable).
	Options []string
}

func (r Request) String() string {
	if len(r.Options) == 0 {
		return fmt.Sprintf("%s for %s", r.Prompt, logic.Show(r.Formula))
	}
	//
	return fmt.Sprintf("%s for %s %v", r.Prompt, logic.Show(r.Formula), r.Options)
}

// Side of a binary formula.
type Side uint8

const (
	// Left side
	Left Side = iota
	// Right side
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	//
	return "right"
}

// Resolver is the external collaborator which answers disambiguation
// requests, typically by asking a human.  Any method may return an error
// (usually ErrCancelled) to abandon the rule application.
type Resolver interface {
	// ChooseSide selects which side of a conjunction to keep.
	ChooseSide(formula logic.Formula) (Side, error)
	// ChooseVariable provides the name of a variable.
	ChooseVariable(formula logic.Formula, prompt string) (string, error)
	// ChooseDirection selects the variable of an equality to be substituted.
	ChooseDirection(formula logic.Formula, options []string) (string, error)
}

// Resolve drives an outcome to completion by answering every request using
// the given resolver.  If the resolver fails, the application is abandoned and
// an error wrapping ErrCancelled is returned.  Nothing is mutated either way.
func Resolve(outcome Outcome, resolver Resolver) (*proof.Step, error) {
	var err error
	//
	for {
		switch o := outcome.(type) {
		case Ready:
			return o.Step, nil
		case Pending:
			var choice string
			//
			if choice, err = ask(resolver, o.Request); err != nil {
				log.Debugf("%s request abandoned: %s", o.Request.Kind, err)
				//
				if errors.Is(err, ErrCancelled) {
					return nil, err
				}
				//
				return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
			} else if outcome, err = o.Resume(choice); err != nil {
				return nil, err
			}
		default:
			panic("unknown outcome")
		}
	}
}

func ask(resolver Resolver, request Request) (string, error) {
	switch request.Kind {
	case SideRequest:
		side, err := resolver.ChooseSide(request.Formula)
		return side.String(), err
	case VariableRequest:
		return resolver.ChooseVariable(request.Formula, request.Prompt)
	case DirectionRequest:
		return resolver.ChooseDirection(request.Formula, request.Options)
	}
	//
	panic("unknown request kind")
}
