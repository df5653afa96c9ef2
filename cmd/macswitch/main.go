// Command macswitch runs traffic simulations against the switch
// forwarding-table model.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var rootCmd = &cobra.Command{
	Use:   "macswitch",
	Short: "Cycle-level model of an Ethernet switch forwarding table",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Optional .env file provides flag defaults through the
		// environment.
		_ = godotenv.Load()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
