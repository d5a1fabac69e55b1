package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/goodtune/viewstats/internal/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long:  `Validate the viewstats configuration file for syntax and semantic errors.`,
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		red := color.New(color.FgRed, color.Bold)
		red.Fprintf(os.Stderr, "Configuration validation failed: %v\n", err)
		return err
	}

	green := color.New(color.FgGreen, color.Bold)
	green.Printf("Configuration is valid: %s\n", configPath)

	// Credentials are allowed to be empty here; the report run itself
	// refuses to start without them
	if cfg.Auth.UserKey == "" || cfg.Auth.Password == "" {
		yellow := color.New(color.FgYellow, color.Bold)
		yellow.Println("Warning: auth.user_key and auth.password are not both set; report runs will refuse to start")
	}

	fmt.Printf("  Server:      %s\n", cfg.Server.BaseURL)
	fmt.Printf("  Page size:   %d\n", cfg.Report.PageSize)
	fmt.Printf("  Session cap: %d\n", cfg.Report.SessionCap)
	fmt.Printf("  Window:      %d days\n", cfg.Report.WindowDays)
	fmt.Printf("  Name cache:  %s\n", cfg.Cache.Backend)

	return nil
}
