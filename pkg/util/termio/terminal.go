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
package termio

import (
	"io"
	"os"

	"golang.org/x/term"
)

// DEFAULT_WIDTH is assumed for outputs whose width cannot be determined.
const DEFAULT_WIDTH = uint(80)

// IsTerminal determines whether a given writer is attached to a terminal, and
// hence whether ANSI escapes should be emitted by default.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	//
	return false
}

// Width returns the number of columns available on the terminal attached to a
// given writer, or DEFAULT_WIDTH if it is not a terminal.
func Width(w io.Writer) uint {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return uint(width)
		}
	}
	//
	return DEFAULT_WIDTH
}
