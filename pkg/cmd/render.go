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
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/consensys/go-deduce/pkg/proof"
	"github.com/consensys/go-deduce/pkg/rules"
	"github.com/consensys/go-deduce/pkg/util/termio"
)

// Formula columns are never squeezed below this width.
const minFormulaWidth = uint(12)

// Render a proof as a table of numbered lines, where the steps of nested boxes
// are marked by a vertical bar for each level of nesting.
func renderProof(w io.Writer, p *proof.Proof, colour bool, width uint) error {
	table := termio.NewTablePrinter(3)
	table.SetAlignment(0, termio.RIGHT)
	table.AnsiEscapes(colour)
	//
	for _, step := range p.Steps() {
		indent := strings.Repeat("│ ", int(step.Box().Depth()))
		row := table.AddRow(fmt.Sprintf("%d", step.LineNumber()), indent+step.FormulaText(), step.RuleLabel())
		//
		if escape, ok := stepEscape(step); ok {
			table.SetRowEscape(row, escape)
		}
	}
	// Bound formulas so that rows fit the available width
	used := table.ColumnWidth(0) + table.ColumnWidth(2) + 2
	//
	if width > used+minFormulaWidth {
		table.SetMaxWidth(1, width-used)
	} else {
		table.SetMaxWidth(1, minFormulaWidth)
	}
	//
	return table.Print(w)
}

func stepEscape(step *proof.Step) (termio.AnsiEscape, bool) {
	switch step.Kind() {
	case proof.Goal:
		return termio.BoldAnsiEscape().FgColour(termio.YELLOW), true
	case proof.Empty:
		return termio.FaintAnsiEscape(), true
	case proof.Given, proof.Assumption, proof.AssumptionConst:
		return termio.NewAnsiEscape().FgColour(termio.CYAN), true
	}
	//
	return termio.AnsiEscape{}, false
}

// Render the table of available rules.
func renderRules(w io.Writer, colour bool) error {
	table := termio.NewTablePrinter(4)
	table.AnsiEscapes(colour)
	//
	for _, rule := range rules.Rules() {
		var goal string
		//
		if rule.RequiresGoal() {
			goal = "(goal)"
		}
		//
		row := table.AddRow(rule.Name(), rule.Alias(), rule.Schema(), goal)
		table.SetEscape(0, row, termio.BoldAnsiEscape())
	}
	//
	return table.Print(w)
}
