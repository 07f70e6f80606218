// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/mohae/tmpl/internal/bind"
)

var inspectSets []string

var inspectCmd = &cobra.Command{
	Use:   "inspect <data.json>",
	Short: "Patch a JSON data fixture and print the result",
	Long: `inspect reads a JSON data fixture, applies zero or more --set
path=value patches (sjson path syntax), and prints the patched document.
It's meant for poking at a fixture while developing a template's schema,
without hand-editing the file.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringArrayVar(&inspectSets, "set", nil, "path=value patch to apply, may be repeated")
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	for _, set := range inspectSets {
		data, err = bind.Patch(data, set)
		if err != nil {
			return err
		}
	}

	os.Stdout.Write(pretty.Color(pretty.Pretty(data), nil))
	return nil
}
