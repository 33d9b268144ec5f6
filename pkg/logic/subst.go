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

	"github.com/consensys/go-deduce/pkg/util/collection/set"
)

// ReplaceVar returns a copy of a formula where every free occurrence of
// variable old is renamed to repl.  The bound set identifies those variables
// bound by quantifiers enclosing the formula.  Whenever a quantifier is
// encountered, its variable is added to the bound set before its body is
// visited, hence occurrences of old which are shadowed by a binder are left
// untouched.  A nil bound set is empty.
func ReplaceVar(f Formula, old Variable, repl Variable, bound *VarSet) Formula {
	switch f := f.(type) {
	case nil, Blank, Atom, Constant:
		return f
	case Variable:
		if f.Name == old.Name && !bound.Contains(old.Name) {
			return repl
		}
		//
		return f
	case Function:
		return Function{f.Name, replaceTerms(f.Args, old, repl, bound)}
	case Predicate:
		return Predicate{f.Name, replaceTerms(f.Args, old, repl, bound)}
	case Not:
		return Not{ReplaceVar(f.Body, old, repl, bound)}
	case Binary:
		return Binary{f.Op, ReplaceVar(f.Left, old, repl, bound), ReplaceVar(f.Right, old, repl, bound)}
	case Quantifier:
		nbound := bound.Clone()
		nbound.Insert(f.Var.Name)
		//
		return Quantifier{f.Kind, f.Var, ReplaceVar(f.Body, old, repl, nbound)}
	}
	//
	panic(fmt.Sprintf("unknown formula encountered (%T)", f))
}

// Instantiate returns the body of a quantifier with every free occurrence of
// its bound variable replaced by v.
func Instantiate(q Quantifier, v Variable) Formula {
	return ReplaceVar(q.Body, q.Var, v, nil)
}

// FreeVars returns the names of all variables occurring in a formula which are
// not shadowed by an enclosing quantifier.  The bound set identifies variables
// bound by quantifiers enclosing the formula (nil is empty).
func FreeVars(f Formula, bound *VarSet) *VarSet {
	vars := set.NewSortedSet[string]()
	freeVars(f, bound, vars)
	//
	return vars
}

func freeVars(f Formula, bound *VarSet, vars *VarSet) {
	switch f := f.(type) {
	case nil, Blank, Atom, Constant:
		return
	case Variable:
		if !bound.Contains(f.Name) {
			vars.Insert(f.Name)
		}
	case Function:
		for _, arg := range f.Args {
			freeVars(arg, bound, vars)
		}
	case Predicate:
		for _, arg := range f.Args {
			freeVars(arg, bound, vars)
		}
	case Not:
		freeVars(f.Body, bound, vars)
	case Binary:
		freeVars(f.Left, bound, vars)
		freeVars(f.Right, bound, vars)
	case Quantifier:
		nbound := bound.Clone()
		nbound.Insert(f.Var.Name)
		freeVars(f.Body, nbound, vars)
	default:
		panic(fmt.Sprintf("unknown formula encountered (%T)", f))
	}
}

// Names returns every variable name used within a formula, whether free or
// bound.  This is useful for generating names which are fresh.
func Names(f Formula) *VarSet {
	names := FreeVars(f, nil)
	names.InsertSorted(Bound(f))
	//
	return names
}

// Bound returns the names of all variables bound by some quantifier within a
// formula.
func Bound(f Formula) *VarSet {
	names := set.NewSortedSet[string]()
	collectBinders(f, names)
	//
	return names
}

func collectBinders(f Formula, names *VarSet) {
	switch f := f.(type) {
	case Not:
		collectBinders(f.Body, names)
	case Binary:
		collectBinders(f.Left, names)
		collectBinders(f.Right, names)
	case Quantifier:
		names.Insert(f.Var.Name)
		collectBinders(f.Body, names)
	}
}

// FindSubstitution determines the variable v with which pattern (typically the
// body of q, or some part of it) must be instantiated to give instance.  The
// candidate is the unique variable free in instance but not free in q.  If
// there is no such variable, or more than one, or the instantiation does not
// actually produce instance, then no substitution exists.
func FindSubstitution(q Quantifier, pattern Formula, instance Formula) (Variable, bool) {
	var (
		outer = FreeVars(q, nil)
		inner = FreeVars(instance, nil)
		diff  = inner.Difference(outer)
	)
	//
	if len(diff) != 1 {
		return Variable{}, false
	}
	//
	v := Variable{diff[0]}
	//
	return v, Equal(ReplaceVar(pattern, q.Var, v, nil), instance)
}

// FindInstance determines the variable v with which pattern (some part of the
// body of q) must be instantiated to give instance.  The free-variable set
// difference is tried first, falling back to the variables free in instance
// (which covers instantiations by a variable already free in q).  When the
// bound variable of q does not occur free in pattern, any variable will do and
// the result is not pinned.  An instantiation which would be captured by a
// binder within pattern is rejected.
func FindInstance(q Quantifier, pattern Formula, instance Formula) (v Variable, pinned bool, ok bool) {
	if !FreeVars(pattern, nil).Contains(q.Var.Name) {
		return Variable{}, false, Equal(pattern, instance)
	}
	//
	v, ok = FindSubstitution(q, pattern, instance)
	//
	for _, name := range *FreeVars(instance, nil) {
		if ok {
			break
		}
		//
		v = Var(name)
		ok = Equal(ReplaceVar(pattern, q.Var, v, nil), instance)
	}
	//
	if !ok || (v != q.Var && Bound(pattern).Contains(v.Name)) {
		return Variable{}, false, false
	}
	//
	return v, true, true
}

func replaceTerms(args []Term, old Variable, repl Variable, bound *VarSet) []Term {
	nargs := make([]Term, len(args))
	//
	for i, arg := range args {
		// Terms only ever rewrite to terms
		nargs[i] = ReplaceVar(arg, old, repl, bound).(Term)
	}
	//
	return nargs
}
