package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "contractd",
	Short: "contractd is a contract-driven mock server with provider-state routing",
	Long: `contractd serves recorded Pact interactions as a mock HTTP backend.

It loads a directory of contract files (one subdirectory per provider, one
file per consumer), builds a multi-variant route table, and selects which
recorded response to serve based on an operator-controlled provider-state
selection. Test suites drive the selection through two control endpoints:

  POST /api/mock-server/state   set active provider state(s)
  POST /api/mock-server/reset   reset to default behavior`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
