package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version    = "dev"
	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "viewstats",
	Short: "viewstats - Per-user viewing-coverage reports for a video platform",
	Long: `viewstats generates a per-user viewing-coverage report for every session
hosted on a video platform. For each session it determines, per viewer,
what fraction of the session's timeline was watched and when the viewer
last watched it, by aggregating detailed usage records pulled from the
platform's reporting services.`,
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to report command when no subcommand is provided
		return runReport(cmd, args)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "/etc/viewstats/config.yaml", "Path to configuration file")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
