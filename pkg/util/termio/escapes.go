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

import "fmt"

// Colour identifies one of the eight standard ANSI terminal colours.
type Colour uint

// Standard ANSI colours, in escape code order.
const (
	BLACK Colour = iota
	RED
	GREEN
	YELLOW
	BLUE
	MAGENTA
	CYAN
	WHITE
)

// AnsiEscape accumulates the attributes of a single ANSI "select graphic
// rendition" escape sequence.
type AnsiEscape struct {
	escape string
	count  uint
}

// NewAnsiEscape constructs an empty escape with no attributes.
func NewAnsiEscape() AnsiEscape {
	return AnsiEscape{"\033", 0}
}

// ResetAnsiEscape constructs an escape which clears all attributes.
func ResetAnsiEscape() AnsiEscape {
	return AnsiEscape{"\033[0", 1}
}

// BoldAnsiEscape constructs an escape which enables bold text.
func BoldAnsiEscape() AnsiEscape {
	return AnsiEscape{"\033[1", 1}
}

// FaintAnsiEscape constructs an escape which enables dim text.
func FaintAnsiEscape() AnsiEscape {
	return AnsiEscape{"\033[2", 1}
}

// FgColour adds a foreground colour to this escape.
func (p AnsiEscape) FgColour(col Colour) AnsiEscape {
	return p.with(uint(col) + 30)
}

// BgColour adds a background colour to this escape.
func (p AnsiEscape) BgColour(col Colour) AnsiEscape {
	return p.with(uint(col) + 40)
}

// Build the escape sequence as a string ready to be written to a terminal.
func (p AnsiEscape) Build() string {
	if p.count == 0 {
		return ""
	}
	//
	return fmt.Sprintf("%sm", p.escape)
}

func (p AnsiEscape) with(code uint) AnsiEscape {
	if p.count > 0 {
		return AnsiEscape{fmt.Sprintf("%s;%d", p.escape, code), p.count + 1}
	}
	//
	return AnsiEscape{fmt.Sprintf("%s[%d", p.escape, code), p.count + 1}
}
