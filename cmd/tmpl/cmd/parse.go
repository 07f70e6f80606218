// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/mohae/tmpl"
	"github.com/mohae/tmpl/parse"
)

var parseCmd = &cobra.Command{
	Use:   "parse <template>",
	Short: "Compile a template and dump its instruction stream",
	Long: `parse compiles the template file and prints its instruction array
as pretty-printed JSON, the Go equivalent of the C original's
TEMPLATE_DEBUG/dump_program diagnostic.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

type instrDump struct {
	Index int    `json:"index"`
	Op    string `json:"op"`
	Flags string `json:"flags,omitempty"`
	Text  string `json:"text,omitempty"`
	Char  string `json:"char,omitempty"`
	Var   string `json:"var,omitempty"`
	End   int    `json:"end,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	sc, err := loadSchema()
	if err != nil {
		return err
	}

	tpl, err := tmpl.CompileFile(args[0], sc)
	if err != nil {
		return err
	}

	prog := tpl.Program()
	dump := make([]instrDump, len(prog.Instructions))
	for i, in := range prog.Instructions {
		d := instrDump{Index: i, Op: in.Op.String(), Flags: flagString(in.Flags)}
		if in.Descriptor != nil {
			d.Var = in.Descriptor.Name
		}
		if in.Block != nil {
			d.End = in.Block.End
		}
		if in.Op == parse.OpAppend {
			d.Text = in.Text
		}
		if in.Op == parse.OpAppendChar {
			d.Char = string(in.Char)
		}
		dump[i] = d
	}

	out, err := json.Marshal(dump)
	if err != nil {
		return err
	}
	os.Stdout.Write(pretty.Color(pretty.Pretty(out), nil))
	return nil
}

func flagString(f parse.Flags) string {
	var parts []string
	if f&parse.FlagNegate != 0 {
		parts = append(parts, "negate")
	}
	if f&parse.FlagQuote != 0 {
		parts = append(parts, "quote")
	}
	if f&parse.FlagNoFree != 0 {
		parts = append(parts, "nofree")
	}
	return strings.Join(parts, "|")
}
