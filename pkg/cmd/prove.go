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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/consensys/go-deduce/pkg/logic"
	"github.com/consensys/go-deduce/pkg/proof"
	"github.com/consensys/go-deduce/pkg/reader"
	"github.com/consensys/go-deduce/pkg/rules"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var proveCmd = &cobra.Command{
	Use:   "prove [flags] goal",
	Short: "interactively prove a goal.",
	Long: `Start an interactive session proving a goal from zero or more givens.  Lines
	are selected by number and rules are applied to them, for example "apply ⋀E 1 2"
	or "apply ande 1 2".  Type "help" in the session for a list of commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			config = getConfig(cmd)
			givens []logic.Formula
		)
		//
		for i, text := range GetStringArray(cmd, "given") {
			givens = append(givens, readFormula(fmt.Sprintf("given#%d", i+1), text))
		}
		//
		goal := readFormula("goal", args[0])
		p := proof.New(givens, goal, proof.WithFreshPrefix(config.FreshPrefix))
		//
		if err := NewProver(p, os.Stdin, os.Stdout, config).Run(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

// Parse a formula given on the command line, or exit with a highlighted
// syntax error.
func readFormula(name string, text string) logic.Formula {
	formula, err := reader.Parse(name, text)
	//
	if err != nil {
		fmt.Println(err.Error())
		fmt.Println(err.Highlight())
		os.Exit(2)
	}
	//
	return formula
}

const helpText = `commands:
  show                     display the proof
  apply <rule> <line>...   apply a rule to the given lines (premises and destination)
  remove <line>            remove a line from the proof
  rules                    list the available rules
  help                     display this message
  quit                     leave the session
an empty answer to a question cancels the rule being applied.
`

// Prover runs an interactive proof session over a pair of streams.  It renders
// the proof after each change, and answers disambiguation requests by asking
// on the same streams.
type Prover struct {
	session *rules.Session
	input   *bufio.Scanner
	out     io.Writer
	config  Config
	colour  bool
}

// NewProver constructs a prover for a given proof.
func NewProver(p *proof.Proof, in io.Reader, out io.Writer, config Config) *Prover {
	return &Prover{rules.NewSession(p), bufio.NewScanner(in), out, config, config.UseColour(out)}
}

// Proof returns the proof being edited.
func (p *Prover) Proof() *proof.Proof {
	return p.session.Proof()
}

// Run the session until the input is exhausted or the user quits.
func (p *Prover) Run() error {
	if err := p.show(); err != nil {
		return err
	}
	//
	for {
		fmt.Fprint(p.out, p.config.Prompt)
		//
		line, ok := p.readLine()
		if !ok {
			fmt.Fprintln(p.out)
			return p.input.Err()
		}
		//
		quit, err := p.Execute(line)
		if err != nil {
			fmt.Fprintf(p.out, "error: %s\n", err)
		}
		//
		if quit {
			return nil
		}
	}
}

// Execute a single command, returning true if the session should end.
func (p *Prover) Execute(line string) (bool, error) {
	fields := strings.Fields(line)
	//
	if len(fields) == 0 {
		return false, nil
	}
	//
	switch fields[0] {
	case "show":
		return false, p.show()
	case "apply":
		return false, p.apply(fields[1:])
	case "remove":
		return false, p.remove(fields[1:])
	case "rules":
		return false, renderRules(p.out, p.colour)
	case "help":
		_, err := fmt.Fprint(p.out, helpText)
		return false, err
	case "quit", "exit":
		return true, nil
	}
	//
	return false, fmt.Errorf("unknown command \"%s\" (try \"help\")", fields[0])
}

func (p *Prover) apply(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: apply <rule> <line>...")
	} else if err := p.session.Begin(args[0]); err != nil {
		return err
	}
	//
	for _, arg := range args[1:] {
		step, err := p.stepAt(arg)
		//
		if err == nil {
			err = p.session.Select(step)
		}
		//
		if err != nil {
			p.session.Cancel()
			return err
		}
	}
	//
	if err := p.finalize(); errors.Is(err, rules.ErrCancelled) {
		_, err = fmt.Fprintln(p.out, "cancelled")
		return err
	} else if err != nil {
		return err
	}
	//
	if err := p.show(); err != nil {
		return err
	} else if p.Proof().Complete() {
		_, err = fmt.Fprintln(p.out, "proof complete")
		return err
	}
	//
	return nil
}

// Finalize the rule being applied, asking until every request has been
// answered.  A nonsensical answer is reported and the question asked again.
func (p *Prover) finalize() error {
	_, err := p.session.Finalize()
	//
	for err == nil {
		request, ok := p.session.Pending()
		//
		if !ok {
			break
		}
		//
		var choice string
		//
		if choice, err = p.answer(request); err != nil {
			break
		} else if _, err = p.session.Resume(choice); errors.Is(err, rules.ErrInvalidChoice) {
			fmt.Fprintf(p.out, "%s\n", err)
			err = nil
		}
	}
	//
	if err != nil {
		log.Debugf("rule application failed: %s", err)
		p.session.Cancel()
	}
	//
	return err
}

func (p *Prover) remove(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: remove <line>")
	}
	//
	step, err := p.stepAt(args[0])
	//
	if err != nil {
		return err
	} else if err = p.session.Remove(step); err != nil {
		return err
	}
	//
	return p.show()
}

func (p *Prover) show() error {
	return renderProof(p.out, p.Proof(), p.colour, p.config.Width(p.out))
}

func (p *Prover) stepAt(arg string) (*proof.Step, error) {
	line, err := strconv.ParseUint(arg, 10, 0)
	//
	if err != nil {
		return nil, fmt.Errorf("invalid line \"%s\"", arg)
	} else if step := p.Proof().StepAt(uint(line)); step != nil {
		return step, nil
	}
	//
	return nil, fmt.Errorf("no line %d", line)
}

// Answer a disambiguation request using this prover as the resolver.
func (p *Prover) answer(request rules.Request) (string, error) {
	switch request.Kind {
	case rules.SideRequest:
		side, err := p.ChooseSide(request.Formula)
		return side.String(), err
	case rules.VariableRequest:
		return p.ChooseVariable(request.Formula, request.Prompt)
	case rules.DirectionRequest:
		return p.ChooseDirection(request.Formula, request.Options)
	}
	//
	panic("unknown request")
}

// ChooseSide asks which side of a conjunction to keep.
func (p *Prover) ChooseSide(formula logic.Formula) (rules.Side, error) {
	for {
		answer, err := p.ask(fmt.Sprintf("keep which side of %s? [left/right]", logic.Show(formula)))
		//
		if err != nil {
			return rules.Left, err
		}
		//
		switch strings.ToLower(answer) {
		case "l", "left":
			return rules.Left, nil
		case "r", "right":
			return rules.Right, nil
		}
		//
		fmt.Fprintln(p.out, "please answer left or right")
	}
}

// ChooseVariable asks for the name of a variable.
func (p *Prover) ChooseVariable(formula logic.Formula, prompt string) (string, error) {
	return p.ask(fmt.Sprintf("%s in %s?", prompt, logic.Show(formula)))
}

// ChooseDirection asks which variable of an equality should be replaced.
func (p *Prover) ChooseDirection(formula logic.Formula, options []string) (string, error) {
	for {
		answer, err := p.ask(fmt.Sprintf("replace which variable of %s? [%s]", logic.Show(formula),
			strings.Join(options, "/")))
		//
		if err != nil || slices.Contains(options, answer) {
			return answer, err
		}
		//
		fmt.Fprintf(p.out, "please answer one of %s\n", strings.Join(options, ", "))
	}
}

// Ask a question, where an empty answer (or the end of input) cancels.
func (p *Prover) ask(question string) (string, error) {
	fmt.Fprintf(p.out, "%s ", question)
	//
	if answer, ok := p.readLine(); ok && answer != "" {
		return answer, nil
	}
	//
	return "", rules.ErrCancelled
}

func (p *Prover) readLine() (string, bool) {
	if !p.input.Scan() {
		return "", false
	}
	//
	return strings.TrimSpace(p.input.Text()), true
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(proveCmd)
	proveCmd.Flags().StringArrayP("given", "g", []string{}, "add a given formula.")
	proveCmd.Flags().String("fresh-prefix", proof.DefaultFreshPrefix, "prefix of fresh constants.")
	proveCmd.Flags().Uint("max-width", 0, "maximum width of the rendered proof (0 for terminal width).")
}
