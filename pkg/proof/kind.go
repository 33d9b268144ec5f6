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

// Kind identifies the variant of a step.  Administrative kinds record the
// structure of a proof (its givens, assumptions, goals and working slots),
// whilst every other kind is the conclusion of a natural deduction rule.
type Kind uint8

// Administrative kinds.
const (
	// Given is a premise of the overall proof.
	Given Kind = iota
	// Assumption opens a box by assuming a formula.
	Assumption
	// AssumptionConst opens a box by introducing a fresh constant.
	AssumptionConst
	// Goal is a formula still to be proven.
	Goal
	// Empty is a working slot into which new steps are inserted.
	Empty
)

// Immediate rules, which conclude directly from their premises.
const (
	AndIntro Kind = iota + Empty + 1
	AndElim
	OrIntro
	ImpliesElim
	IffIntro
	IffElim
	NotElim
	NotNotElim
	TopIntro
	BottomIntro
	BottomElim
	Lem
	EqualsReflex
	EqualsSym
	EqualsSub
	AllElim
	ExistsIntro
	AllImpliesElim
)

// Box-introducing rules, which open one (or, for OrElim, two) child boxes.
const (
	ImpliesIntro Kind = iota + AllImpliesElim + 1
	NotIntro
	ProofByContradiction
	AllIntro
	ExistsElim
	OrElim
)

var symbols = map[Kind]string{
	Given:                "given",
	Assumption:           "ass",
	AssumptionConst:      "∀I const",
	Goal:                 "<goal>",
	Empty:                "",
	AndIntro:             "⋀I",
	AndElim:              "⋀E",
	OrIntro:              "⋁I",
	OrElim:               "⋁E",
	ImpliesIntro:         "→I",
	ImpliesElim:          "→E",
	IffIntro:             "↔I",
	IffElim:              "↔E",
	NotIntro:             "¬I",
	NotElim:              "¬E",
	NotNotElim:           "¬¬E",
	TopIntro:             "⊤I",
	BottomIntro:          "⊥I",
	BottomElim:           "⊥E",
	Lem:                  "LEM",
	ProofByContradiction: "PC",
	EqualsReflex:         "=R",
	EqualsSym:            "=Sym",
	EqualsSub:            "=Sub",
	AllIntro:             "∀I",
	AllElim:              "∀E",
	ExistsIntro:          "∃I",
	ExistsElim:           "∃E",
	AllImpliesElim:       "∀→E",
}

// Symbol returns the symbol used when labelling steps of this kind.
func (k Kind) Symbol() string {
	if s, ok := symbols[k]; ok {
		return s
	}
	//
	panic("unknown step kind")
}

func (k Kind) String() string {
	return k.Symbol()
}

// IsAdministrative determines whether this kind records the structure of a
// proof, rather than the conclusion of a rule.
func (k Kind) IsAdministrative() bool {
	return k <= Empty
}

// IsSlot determines whether steps of this kind are slot-terminal, i.e. can be
// the target of an insertion.
func (k Kind) IsSlot() bool {
	return k == Goal || k == Empty
}

// IsBoxIntroducing determines whether steps of this kind open child boxes.
func (k Kind) IsBoxIntroducing() bool {
	return k >= ImpliesIntro && k <= OrElim
}

// Kinds returns every kind of step which is the conclusion of a rule, in
// declaration order.
func Kinds() []Kind {
	var kinds []Kind
	//
	for k := AndIntro; k <= OrElim; k++ {
		kinds = append(kinds, k)
	}
	//
	return kinds
}
