package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumisim/macswitch/switching/table"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the registered backend search strategies",
	Run: func(cmd *cobra.Command, _ []string) {
		for _, name := range table.Strategies() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}
