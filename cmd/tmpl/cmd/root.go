// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd implements the tmpl command line tool: compile and render
// logic-less templates, dump their instruction streams, and patch
// JSON data fixtures used while developing a template.
package cmd

import (
	"fmt"

	"github.com/mohae/tmpl/schema"
	"github.com/spf13/cobra"

	"github.com/mohae/tmpl/internal/schemaconfig"
)

var (
	// Version is set by build flags; it has no effect on compilation or
	// rendering, only on `tmpl version` and `tmpl --version`.
	Version = "0.1.0-dev"

	schemaFile string
)

var rootCmd = &cobra.Command{
	Use:   "tmpl",
	Short: "Compile and render logic-less, Mustache-style templates",
	Long: `tmpl compiles and renders logic-less templates: {{name}} and
{{{name}}} variables, {{#name}}...{{/name}} iteration, {{^#name}}...{{/name}}
negated iteration, {{name?}}...{{/name?}} non-empty blocks, {{>name}}
partials, and {{! ... }} comments.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&schemaFile, "schema", "", "YAML file describing the template's variables (required unless the template has none)")
}

// loadSchema returns the schema named by the --schema flag, or an empty
// schema if it was not given.
func loadSchema() (schema.Schema, error) {
	if schemaFile == "" {
		return nil, nil
	}
	sc, err := schemaconfig.Load(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("loading --schema: %w", err)
	}
	return sc, nil
}
