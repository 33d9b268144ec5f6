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
package lex

import (
	"cmp"
	"unicode"
)

// Scanner determines how many items at the start of a given sequence it
// matches, with zero indicating no match.
type Scanner[T any] func(items []T) uint

// Or matches using the first scanner which matches.
func Or[T any](scanners ...Scanner[T]) Scanner[T] {
	return func(items []T) uint {
		for _, scanner := range scanners {
			if n := scanner(items); n > 0 {
				return n
			}
		}
		// fail
		return 0
	}
}

// Unit matches exactly the given items.
func Unit[T comparable](chars ...T) Scanner[T] {
	return func(items []T) uint {
		if len(items) < len(chars) {
			return 0
		}
		//
		for i := range chars {
			if items[i] != chars[i] {
				return 0
			}
		}
		//
		return uint(len(chars))
	}
}

// String matches the runes of a given string, which may include multi-byte
// characters.
func String(s string) Scanner[rune] {
	return Unit([]rune(s)...)
}

// Within matches a single item in a given (inclusive) range.
func Within[T cmp.Ordered](lowest T, highest T) Scanner[T] {
	return func(items []T) uint {
		if len(items) != 0 && lowest <= items[0] && items[0] <= highest {
			return 1
		}
		// fail
		return 0
	}
}

// Letter matches a single unicode letter.
func Letter() Scanner[rune] {
	return func(items []rune) uint {
		if len(items) != 0 && unicode.IsLetter(items[0]) {
			return 1
		}
		//
		return 0
	}
}

// Many matches zero or more repetitions of a given scanner.
func Many[T any](acceptor Scanner[T]) Scanner[T] {
	return func(items []T) uint {
		index := uint(0)
		//
		for index < uint(len(items)) {
			n := acceptor(items[index:])
			//
			if n == 0 {
				break
			}
			//
			index += n
		}
		//
		return index
	}
}

// And matches only when every scanner matches, covering the longest match
// amongst them.  For example, an identifier is a letter followed by any number
// of letters or digits, which is the longest match of a scanner for the first
// letter and one for any number of letters or digits.
func And[T any](scanners ...Scanner[T]) Scanner[T] {
	return func(items []T) uint {
		n := uint(0)
		//
		for _, scanner := range scanners {
			m := scanner(items)
			//
			if m == 0 {
				return 0
			}
			//
			n = max(n, m)
		}
		//
		return n
	}
}

// Eof matches the end of input, which is treated as covering one item.
func Eof[T any]() Scanner[T] {
	return func(items []T) uint {
		if len(items) == 0 {
			return 1
		}
		//
		return 0
	}
}
