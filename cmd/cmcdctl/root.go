package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "cmcdctl",
	Short: "CMCD policy and header tooling",
	Long: `Cmcdctl inspects and exercises Common Media Client Data (CMCD) policy
documents, the YAML files that decide which CMCD keys a media player may
attach to its outgoing requests.

It provides:
  - Policy file validation with per-field diagnostics
  - Offline rendering of the request headers a player would send
  - A reference listing of the supported key vocabulary
  - Header assembly throughput measurement

CMCD is defined by CTA-5004.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Disable default completion command (we'll add our own)
	rootCmd.CompletionOptions.DisableDefaultCmd = false
}
