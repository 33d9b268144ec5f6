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
package set

import (
	"cmp"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// SortedSet is an array of unique sorted values (i.e. no duplicates).
type SortedSet[T cmp.Ordered] []T

// NewSortedSet returns a sorted set containing the given elements.
func NewSortedSet[T cmp.Ordered](elements ...T) *SortedSet[T] {
	set := SortedSet[T]{}
	//
	for _, e := range elements {
		set.Insert(e)
	}
	//
	return &set
}

// Len returns the number of elements in this set.  A nil set is empty.
func (p *SortedSet[T]) Len() int {
	if p == nil {
		return 0
	}
	//
	return len(*p)
}

// Contains returns true if a given element is in the set.  A nil set contains
// nothing.
//
//nolint:revive
func (p *SortedSet[T]) Contains(element T) bool {
	if p == nil {
		return false
	}
	//
	data := *p
	// Find index where element either does occur, or should occur.
	i := sort.Search(len(data), func(i int) bool {
		return element <= data[i]
	})
	// Check whether item existed or not.
	return i < len(data) && data[i] == element
}

// Insert an element into this sorted set.
//
//nolint:revive
func (p *SortedSet[T]) Insert(element T) {
	data := *p
	// Find index where element either does occur, or should occur.
	i := sort.Search(len(data), func(i int) bool {
		return element <= data[i]
	})
	// Check whether item existed or not.
	if i >= len(data) || data[i] != element {
		// No, item was not found
		ndata := make([]T, len(data)+1)
		copy(ndata, data[0:i])
		ndata[i] = element
		copy(ndata[i+1:], data[i:])
		*p = ndata
	}
}

// InsertSorted inserts all elements in a given sorted set into this set.
//
//nolint:revive
func (p *SortedSet[T]) InsertSorted(q *SortedSet[T]) {
	if q.Len() == 0 {
		return
	}
	//
	left := *p
	right := *q
	// Check containment
	n := countDuplicates(left, right)
	// Check for total inclusion
	if n == len(right) {
		// Right set completedly included in left, so actually there is nothing
		// to do.
		return
	}
	// Allocate space
	ndata := make([]T, len(left)+len(right)-n)
	// Merge
	mergeSorted(ndata, left, right)
	// Finally copy over new data
	*p = ndata
}

// Difference returns the elements of this set which are not in the other.
// Neither set is modified.
func (p *SortedSet[T]) Difference(q *SortedSet[T]) SortedSet[T] {
	var result SortedSet[T]
	//
	if p == nil {
		return result
	}
	//
	for _, e := range *p {
		if !q.Contains(e) {
			// Elements are visited in order, hence appending preserves
			// sortedness.
			result = append(result, e)
		}
	}
	//
	return result
}

// Clone returns a disjoint copy of this set.
func (p *SortedSet[T]) Clone() *SortedSet[T] {
	if p == nil {
		return NewSortedSet[T]()
	}
	//
	ndata := slices.Clone(*p)
	//
	return &ndata
}

// Equals checks whether two sets hold exactly the same elements.
func (p *SortedSet[T]) Equals(q *SortedSet[T]) bool {
	if p.Len() != q.Len() {
		return false
	} else if p.Len() == 0 {
		return true
	}
	//
	return slices.Equal(*p, *q)
}

// String returns a human-readable representation of this set, such as "{a,b}".
func (p *SortedSet[T]) String() string {
	var builder strings.Builder
	//
	builder.WriteString("{")
	//
	for i := 0; i < p.Len(); i++ {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(fmt.Sprintf("%v", (*p)[i]))
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}

// UnionSortedSets unions together a number of things which can be turn into a
// sorted set using a given mapping function.  At some level, this is a
// map/reduce function.
func UnionSortedSets[S any, T cmp.Ordered](elems []S, fn func(S) *SortedSet[T]) *SortedSet[T] {
	set := NewSortedSet[T]()
	// Map/reduce
	for _, elem := range elems {
		set.InsertSorted(fn(elem))
	}
	//
	return set
}

// Determine number of duplicate elements
func countDuplicates[T cmp.Ordered](left []T, right []T) int {
	// Check containment
	i := 0
	j := 0
	n := 0

	for i < len(left) && j < len(right) {
		if left[i] < right[j] {
			i++
		} else if left[i] > right[j] {
			j++
		} else {
			i++
			j++
			n++ // duplicate detected
		}
	}

	return n
}

// Merge two sets of sorted arrays (left and right) into a target array.  This
// assumes the target array is big enough.
func mergeSorted[T cmp.Ordered](target []T, left []T, right []T) {
	i := 0
	j := 0
	k := 0
	// Merge overlap of both sets
	for ; i < len(left) && j < len(right); k++ {
		if left[i] < right[j] {
			target[k] = left[i]
			i++
		} else if left[i] > right[j] {
			target[k] = right[j]
			j++
		} else {
			target[k] = left[i]
			i++
			j++
		}
	}
	// Handle anything left
	if i < len(left) {
		copy(target[k:], left[i:])
	} else if j < len(right) {
		copy(target[k:], right[j:])
	}
}
