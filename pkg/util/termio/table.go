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
	"strings"

	"github.com/mattn/go-runewidth"
)

// Alignment determines how the contents of a column are padded.
type Alignment uint8

const (
	// LEFT aligned columns are padded on the right.
	LEFT Alignment = iota
	// RIGHT aligned columns are padded on the left.
	RIGHT
)

// TablePrinter lays out rows of text in aligned columns.  Widths are measured
// in terminal cells, so that wide or combining characters do not disturb the
// layout.
type TablePrinter struct {
	widths        []uint
	limits        []uint
	aligns        []Alignment
	rows          [][]string
	escapes       [][]string
	separator     string
	enableEscapes bool
}

// NewTablePrinter constructs a new table with a given number of columns and
// initially no rows.
func NewTablePrinter(width uint) *TablePrinter {
	return &TablePrinter{
		widths:        make([]uint, width),
		limits:        make([]uint, width),
		aligns:        make([]Alignment, width),
		separator:     " ",
		enableEscapes: true,
	}
}

// Width returns the number of columns in this table.
func (p *TablePrinter) Width() uint {
	return uint(len(p.widths))
}

// Height returns the number of rows in this table.
func (p *TablePrinter) Height() uint {
	return uint(len(p.rows))
}

// AddRow appends a row to this table, returning its index.
func (p *TablePrinter) AddRow(vals ...string) uint {
	if len(vals) != len(p.widths) {
		panic("incorrect number of columns")
	}
	//
	for i, val := range vals {
		p.widths[i] = max(p.widths[i], uint(runewidth.StringWidth(val)))
	}
	//
	p.rows = append(p.rows, vals)
	p.escapes = append(p.escapes, make([]string, len(vals)))
	//
	return uint(len(p.rows) - 1)
}

// Get the contents of a given cell in this table.
func (p *TablePrinter) Get(col uint, row uint) string {
	return p.rows[row][col]
}

// SetEscape sets the escape used when printing a given cell.
func (p *TablePrinter) SetEscape(col uint, row uint, escape AnsiEscape) {
	p.escapes[row][col] = escape.Build()
}

// SetRowEscape sets the escape used when printing every cell of a given row.
func (p *TablePrinter) SetRowEscape(row uint, escape AnsiEscape) {
	for col := range p.escapes[row] {
		p.escapes[row][col] = escape.Build()
	}
}

// SetAlignment determines how a given column is padded.
func (p *TablePrinter) SetAlignment(col uint, align Alignment) {
	p.aligns[col] = align
}

// SetSeparator sets the text printed between adjacent columns.
func (p *TablePrinter) SetSeparator(separator string) {
	p.separator = separator
}

// AnsiEscapes enables or disables the printing of escapes.
func (p *TablePrinter) AnsiEscapes(enable bool) {
	p.enableEscapes = enable
}

// SetMaxWidth puts an upper bound on the width of a given column, where zero
// means unbounded.  Longer cells are truncated with a trailing ellipsis.
func (p *TablePrinter) SetMaxWidth(col uint, width uint) {
	p.limits[col] = width
}

// ColumnWidth returns the width with which a given column will be printed.
func (p *TablePrinter) ColumnWidth(col uint) uint {
	if p.limits[col] != 0 {
		return min(p.widths[col], p.limits[col])
	}
	//
	return p.widths[col]
}

// Print this table to a given writer.
func (p *TablePrinter) Print(w io.Writer) error {
	var builder strings.Builder
	//
	for i, row := range p.rows {
		for j, col := range row {
			var (
				width  = p.ColumnWidth(uint(j))
				escape = p.escapes[i][j]
			)
			//
			if j != 0 {
				builder.WriteString(p.separator)
			}
			// Print colour (if applicable)
			if p.enableEscapes && escape != "" {
				builder.WriteString(escape)
			}
			//
			builder.WriteString(p.pad(col, width, p.aligns[j], j == len(row)-1))
			// Cancel colour (if applicable)
			if p.enableEscapes && escape != "" {
				builder.WriteString(ResetAnsiEscape().Build())
			}
		}
		//
		builder.WriteString("\n")
	}
	//
	_, err := io.WriteString(w, builder.String())
	//
	return err
}

// Pad (or truncate) a cell to exactly the given width.  Trailing padding is
// omitted on the last column.
func (p *TablePrinter) pad(val string, width uint, align Alignment, last bool) string {
	n := uint(runewidth.StringWidth(val))
	//
	switch {
	case n > width:
		return runewidth.Truncate(val, int(width), "..")
	case align == RIGHT:
		return strings.Repeat(" ", int(width-n)) + val
	case last:
		return val
	default:
		return val + strings.Repeat(" ", int(width-n))
	}
}
