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
	"fmt"
	"strings"
)

// Precedence levels.  A higher level binds more tightly.
const (
	loosest    uint = 0
	iffLevel   uint = 1
	impLevel   uint = 2
	orLevel    uint = 3
	andLevel   uint = 4
	notLevel   uint = 10
	infixLevel uint = 15
	tightest   uint = 20
)

// Precedence returns the display precedence of a formula.  This is used only
// to determine where parentheses are required when showing a formula.
func Precedence(f Formula) uint {
	switch f := f.(type) {
	case nil, Blank, Variable, Function, Atom, Constant, Quantifier:
		return tightest
	case Predicate:
		if f.Name == EQUALS && len(f.Args) == 2 {
			return infixLevel
		}
		//
		return tightest
	case Not:
		if _, _, ok := AsEquality(f.Body); ok {
			// Shown as an infix inequality
			return infixLevel
		}
		//
		return notLevel
	case Binary:
		switch f.Op {
		case AND:
			return andLevel
		case OR:
			return orLevel
		case IMPLIES:
			return impLevel
		default:
			return iffLevel
		}
	}
	//
	return loosest
}

// Show returns the display text of a formula.  Negation binds most tightly,
// followed by ∧, ∨, → and, finally, ↔.  A child is parenthesised when it binds
// more loosely than its parent, or when it is a binary formula at the same
// level as a binary parent (e.g. "(P∧Q)∧R").  Quantifiers are shown as
// "∀x[body]", and (in)equalities infix as "x=y" and "x≠y".
func Show(f Formula) string {
	switch f := f.(type) {
	case nil, Blank:
		return ""
	case Variable:
		return f.Name
	case Atom:
		return f.Name
	case Function:
		return showApplication(f.Name, f.Args)
	case Predicate:
		if f.Name == EQUALS && len(f.Args) == 2 {
			return fmt.Sprintf("%s=%s", Show(f.Args[0]), Show(f.Args[1]))
		}
		//
		return showApplication(f.Name, f.Args)
	case Constant:
		if f.Value {
			return "⊤"
		}
		//
		return "⊥"
	case Not:
		if l, r, ok := AsEquality(f.Body); ok {
			return fmt.Sprintf("%s≠%s", Show(l), Show(r))
		}
		//
		return "¬" + showChild(f.Body, notLevel, false)
	case Binary:
		level := Precedence(f)
		//
		return showChild(f.Left, level, true) + f.Op.Symbol() + showChild(f.Right, level, true)
	case Quantifier:
		return fmt.Sprintf("%s%s[%s]", f.Kind.Symbol(), f.Var.Name, Show(f.Body))
	}
	//
	panic(fmt.Sprintf("unknown formula encountered (%T)", f))
}

func showChild(child Formula, parent uint, binaryParent bool) string {
	var (
		text  = Show(child)
		level = Precedence(child)
		_, ok = child.(Binary)
	)
	//
	if level < parent || (binaryParent && ok && level == parent) {
		return "(" + text + ")"
	}
	//
	return text
}

func showApplication(name string, args []Term) string {
	var builder strings.Builder
	//
	if len(args) == 0 {
		return name
	}
	//
	builder.WriteString(name)
	builder.WriteString("(")
	//
	for i, arg := range args {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(Show(arg))
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}
