// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tmpl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tmpl version %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
