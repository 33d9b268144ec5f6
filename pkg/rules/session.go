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

	"github.com/consensys/go-deduce/pkg/proof"
	log "github.com/sirupsen/logrus"
)

// Session holds the selection state of an interactive proof: the rule being
// applied, the steps matched against it so far and any outstanding
// disambiguation request.  Whilst a request is outstanding, the selection is
// frozen and the proof cannot be modified through the session.
type Session struct {
	proof   *proof.Proof
	matcher *Matcher
	pending *Pending
}

// NewSession constructs an empty session for a given proof.
func NewSession(p *proof.Proof) *Session {
	return &Session{p, nil, nil}
}

// Proof returns the proof being edited.
func (s *Session) Proof() *proof.Proof {
	return s.proof
}

// Matcher returns the matcher for the rule being applied, or nil.
func (s *Session) Matcher() *Matcher {
	return s.matcher
}

// Pending returns the outstanding disambiguation request, if any.
func (s *Session) Pending() (Request, bool) {
	if s.pending == nil {
		return Request{}, false
	}
	//
	return s.pending.Request, true
}

// Begin applying the rule with the given name, discarding any previous
// selection.
func (s *Session) Begin(name string) error {
	if s.pending != nil {
		return ErrBusy
	}
	//
	rule, err := Lookup(name)
	//
	if err != nil {
		return err
	}
	//
	s.matcher = NewMatcher(rule)
	//
	return nil
}

// Select offers a step to the rule being applied.
func (s *Session) Select(step *proof.Step) error {
	if s.pending != nil {
		return ErrBusy
	} else if s.matcher == nil {
		return fmt.Errorf("%w: no rule being applied", ErrRejected)
	} else if step == nil || step.Box() == nil || step.Box().Proof() != s.proof {
		return fmt.Errorf("%w: step does not belong to this proof", ErrRejected)
	}
	//
	return s.matcher.AddStep(step)
}

// Finalize the rule being applied.  When the outcome is Ready, its step has
// already been inserted into the proof.  Otherwise, the outcome is Pending and
// the session waits for the request to be answered via Resume (or abandoned
// via Cancel).
func (s *Session) Finalize() (Outcome, error) {
	if s.pending != nil {
		return nil, ErrBusy
	} else if s.matcher == nil {
		return nil, fmt.Errorf("%w: no rule being applied", ErrIncomplete)
	}
	//
	outcome, err := s.matcher.Finalize()
	//
	if err != nil {
		return nil, err
	}
	//
	return s.advance(outcome)
}

// Resume answers the outstanding disambiguation request.  An invalid choice
// leaves the request outstanding, whilst any other failure abandons it.
func (s *Session) Resume(choice string) (Outcome, error) {
	if s.pending == nil {
		return nil, fmt.Errorf("%w: no request outstanding", ErrIncomplete)
	}
	//
	outcome, err := s.pending.Resume(choice)
	//
	if err != nil {
		if !errors.Is(err, ErrInvalidChoice) {
			s.pending = nil
		}
		//
		return nil, err
	}
	//
	return s.advance(outcome)
}

// Apply finalizes the rule being applied, answering any requests using the
// given resolver, and inserts the resulting step into the proof.  If the
// resolver cancels, the proof is left untouched and the selection is kept.
func (s *Session) Apply(resolver Resolver) (*proof.Step, error) {
	if s.pending != nil {
		return nil, ErrBusy
	} else if s.matcher == nil {
		return nil, fmt.Errorf("%w: no rule being applied", ErrIncomplete)
	}
	//
	outcome, err := s.matcher.Finalize()
	//
	if err != nil {
		return nil, err
	}
	//
	step, err := Resolve(outcome, resolver)
	//
	if err != nil {
		return nil, err
	} else if err = s.commit(step); err != nil {
		return nil, err
	}
	//
	return step, nil
}

// Cancel abandons any outstanding request and discards the selection.
func (s *Session) Cancel() {
	if s.pending != nil {
		log.Debugf("abandoned %s request", s.pending.Request.Kind)
	}
	//
	s.pending = nil
	s.matcher = nil
}

// Remove a step from the proof, discarding the selection.
func (s *Session) Remove(step *proof.Step) error {
	if s.pending != nil {
		return ErrBusy
	} else if step == nil || step.Box() == nil || step.Box().Proof() != s.proof {
		return fmt.Errorf("%w: step does not belong to this proof", ErrRejected)
	} else if !step.Box().RemoveStep(step) {
		return fmt.Errorf("%w: line %d cannot be removed", ErrRejected, step.LineNumber())
	}
	//
	s.matcher = nil
	//
	return nil
}

func (s *Session) advance(outcome Outcome) (Outcome, error) {
	switch o := outcome.(type) {
	case Ready:
		s.pending = nil
		//
		if err := s.commit(o.Step); err != nil {
			return nil, err
		}
	case Pending:
		s.pending = &o
	}
	//
	return outcome, nil
}

// Insert a concluded step at the matched destination, and discard the
// selection.
func (s *Session) commit(step *proof.Step) error {
	dest := s.matcher.Destination()
	s.matcher = nil
	//
	if dest.Box() == nil || !dest.Box().InsertTo(dest, step) {
		return fmt.Errorf("%w: line %d is no longer available", ErrRejected, dest.LineNumber())
	}
	//
	return nil
}
