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
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_SortedSet_00(t *testing.T) {
	check_SortedSet_Insert(t, 5, 10)
	check_SortedSet_InsertSorted(t, 5, 10)
}

func Test_SortedSet_01(t *testing.T) {
	for i := 0; i < 1000; i++ {
		check_SortedSet_Insert(t, 10, 32)
		check_SortedSet_InsertSorted(t, 10, 32)
	}
}

func Test_SortedSet_02(t *testing.T) {
	check_SortedSet_Insert(t, 100, 32)
	check_SortedSet_InsertSorted(t, 50, 32)
}

func Test_SortedSet_03(t *testing.T) {
	var (
		lhs = NewSortedSet("x", "y", "z")
		rhs = NewSortedSet("y")
	)
	//
	diff := lhs.Difference(rhs)
	assert.Equal(t, SortedSet[string]{"x", "z"}, diff)
	// Neither operand is modified
	assert.Equal(t, 3, lhs.Len())
	assert.Equal(t, 1, rhs.Len())
}

func Test_SortedSet_04(t *testing.T) {
	var empty *SortedSet[string]
	//
	assert.Equal(t, 0, empty.Len())
	assert.False(t, empty.Contains("x"))
	assert.Equal(t, 0, len(empty.Difference(NewSortedSet("x"))))
	assert.True(t, empty.Equals(NewSortedSet[string]()))
}

func Test_SortedSet_05(t *testing.T) {
	var (
		set   = NewSortedSet("b", "a")
		clone = set.Clone()
	)
	//
	clone.Insert("c")
	assert.Equal(t, "{a,b}", set.String())
	assert.Equal(t, "{a,b,c}", clone.String())
	assert.False(t, set.Equals(clone))
}

func Test_SortedSet_06(t *testing.T) {
	sets := []*SortedSet[string]{NewSortedSet("a"), NewSortedSet("c", "b"), NewSortedSet("a", "c")}
	union := UnionSortedSets(sets, func(s *SortedSet[string]) *SortedSet[string] { return s })
	//
	assert.Equal(t, "{a,b,c}", union.String())
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_SortedSet_Insert(t *testing.T, n uint, m uint) {
	items := randomUints(n, m)
	set := NewSortedSet[uint]()
	// Insert elements one at a time
	for _, item := range items {
		set.Insert(item)
	}
	//
	check_SortedSet(t, set, items)
}

func check_SortedSet_InsertSorted(t *testing.T, n uint, m uint) {
	var (
		left  = NewSortedSet(randomUints(n, m)...)
		right = NewSortedSet(randomUints(n, m)...)
		items = append(slices.Clone(*left), *right...)
	)
	//
	left.InsertSorted(right)
	//
	check_SortedSet(t, left, items)
}

func check_SortedSet(t *testing.T, set *SortedSet[uint], items []uint) {
	// Check set is sorted and unique
	for i := 1; i < set.Len(); i++ {
		if (*set)[i-1] >= (*set)[i] {
			t.Errorf("set not sorted or has duplicates: %v", *set)
		}
	}
	// Check every item is contained
	for _, item := range items {
		if !set.Contains(item) {
			t.Errorf("set missing item %d", item)
		}
	}
	// Check nothing else is contained
	for _, item := range *set {
		if !slices.Contains(items, item) {
			t.Errorf("set has unexpected item %d", item)
		}
	}
}

func randomUints(n uint, m uint) []uint {
	items := make([]uint, n)
	//
	for i := range items {
		items[i] = uint(rand.Intn(int(m)))
	}
	//
	return items
}
