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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/consensys/go-deduce/pkg/proof"
	"github.com/consensys/go-deduce/pkg/util/termio"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the command-line front end, as read from an
// (optional) YAML configuration file and then overridden by flags.
type Config struct {
	// Colour is one of "auto", "always" or "never".
	Colour string `yaml:"colour"`
	// FreshPrefix is the prefix used when minting fresh constants.
	FreshPrefix string `yaml:"fresh_prefix"`
	// MaxWidth bounds the width of a rendered proof, where zero means the
	// width of the terminal.
	MaxWidth uint `yaml:"max_width"`
	// Prompt is printed before each command is read.
	Prompt string `yaml:"prompt"`
}

// DefaultConfig returns the settings used when none are given.
func DefaultConfig() Config {
	return Config{
		Colour:      "auto",
		FreshPrefix: proof.DefaultFreshPrefix,
		MaxWidth:    0,
		Prompt:      "> ",
	}
}

// ParseConfig reads settings from YAML text, starting from the defaults.
// Unknown keys are rejected.
func ParseConfig(text []byte) (Config, error) {
	config := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(text))
	decoder.KnownFields(true)
	//
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, err
	}
	//
	return config, config.Validate()
}

// ReadConfigFile reads settings from a YAML file.
func ReadConfigFile(filename string) (Config, error) {
	text, err := os.ReadFile(filename)
	if err != nil {
		return DefaultConfig(), err
	}
	//
	config, err := ParseConfig(text)
	if err != nil {
		return config, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return config, nil
}

// Validate checks these settings are sensible.
func (c Config) Validate() error {
	switch c.Colour {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid colour setting \"%s\"", c.Colour)
	}
	//
	if c.FreshPrefix == "" {
		return errors.New("fresh prefix cannot be empty")
	}
	//
	return nil
}

// UseColour determines whether ANSI escapes should be written to a given
// output.
func (c Config) UseColour(w io.Writer) bool {
	switch c.Colour {
	case "always":
		return true
	case "never":
		return false
	default:
		return termio.IsTerminal(w)
	}
}

// Width determines the width available for rendering on a given output.
func (c Config) Width(w io.Writer) uint {
	if c.MaxWidth != 0 {
		return c.MaxWidth
	}
	//
	return termio.Width(w)
}

// Determine the configuration for a given command, by reading the config file
// (if given) and then applying any flags which were explicitly set.
func getConfig(cmd *cobra.Command) Config {
	var (
		config   = DefaultConfig()
		filename = GetString(cmd, "config")
		err      error
	)
	//
	if filename != "" {
		if config, err = ReadConfigFile(filename); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	//
	if cmd.Flags().Changed("colour") {
		config.Colour = GetString(cmd, "colour")
	}
	//
	if cmd.Flags().Lookup("fresh-prefix") != nil && cmd.Flags().Changed("fresh-prefix") {
		config.FreshPrefix = GetString(cmd, "fresh-prefix")
	}
	//
	if cmd.Flags().Lookup("max-width") != nil && cmd.Flags().Changed("max-width") {
		config.MaxWidth = GetUint(cmd, "max-width")
	}
	//
	if err = config.Validate(); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return config
}
