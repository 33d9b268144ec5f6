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

import "fmt"

// Equal determines whether two formulas are structurally identical, meaning
// they are the same variant with equal contents.  Blank placeholders are never
// equal to anything, including other blanks, so that partially entered
// formulas can never be matched against one another.
//
//nolint:revive
func Equal(lhs Formula, rhs Formula) bool {
	switch l := lhs.(type) {
	case nil, Blank:
		return false
	case Variable:
		r, ok := rhs.(Variable)
		return ok && l.Name == r.Name
	case Atom:
		r, ok := rhs.(Atom)
		return ok && l.Name == r.Name
	case Function:
		r, ok := rhs.(Function)
		return ok && l.Name == r.Name && equalTerms(l.Args, r.Args)
	case Predicate:
		r, ok := rhs.(Predicate)
		return ok && l.Name == r.Name && equalTerms(l.Args, r.Args)
	case Constant:
		r, ok := rhs.(Constant)
		return ok && l.Value == r.Value
	case Not:
		r, ok := rhs.(Not)
		return ok && Equal(l.Body, r.Body)
	case Binary:
		r, ok := rhs.(Binary)
		return ok && l.Op == r.Op && Equal(l.Left, r.Left) && Equal(l.Right, r.Right)
	case Quantifier:
		r, ok := rhs.(Quantifier)
		return ok && l.Kind == r.Kind && l.Var.Name == r.Var.Name && Equal(l.Body, r.Body)
	}
	//
	panic(fmt.Sprintf("unknown formula encountered (%T)", lhs))
}

func equalTerms(lhs []Term, rhs []Term) bool {
	if len(lhs) != len(rhs) {
		return false
	}
	//
	for i := range lhs {
		if !Equal(lhs[i], rhs[i]) {
			return false
		}
	}
	//
	return true
}
