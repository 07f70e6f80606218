// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mohae/tmpl"
	"github.com/mohae/tmpl/internal/bind"
)

var renderDataFile string

var renderCmd = &cobra.Command{
	Use:   "render <template>",
	Short: "Render a template against a JSON data fixture",
	Long: `render compiles the template file and applies it to the document
named by --data (a JSON fixture, loaded with gjson so partial or malformed
fixtures used during development don't abort the whole render). Partials
referenced with {{>name}} are resolved relative to the template's directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVar(&renderDataFile, "data", "", "JSON data fixture to render against (required)")
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderDataFile == "" {
		return fmt.Errorf("render: --data is required")
	}

	sc, err := loadSchema()
	if err != nil {
		return err
	}

	tpl, err := tmpl.CompileFile(args[0], sc)
	if err != nil {
		return err
	}

	data, err := bind.LoadJSONFile(renderDataFile)
	if err != nil {
		return fmt.Errorf("render: loading --data: %w", err)
	}

	out, err := tpl.Apply(data)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, out)
	return nil
}
