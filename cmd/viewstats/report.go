package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/goodtune/viewstats/internal/config"
	"github.com/goodtune/viewstats/internal/metrics"
	"github.com/goodtune/viewstats/internal/namecache"
	"github.com/goodtune/viewstats/internal/panopto"
	"github.com/goodtune/viewstats/internal/report"
	"github.com/spf13/cobra"
)

var reportOutputPath string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the viewing-coverage report",
	Long: `Generate the full viewing-coverage report and write it to a CSV file.
One row is emitted per (session, user) pair; sessions without viewing
activity in the report window get a single placeholder row.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutputPath, "output", "o", "", "Output file path (default Stats_<timestamp>.csv in report.output_dir)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := setupLogger(cfg.Logging)

	logger.Info().
		Str("version", version).
		Str("config", configPath).
		Str("server", cfg.Server.BaseURL).
		Msg("Starting report run")

	// Optionally expose metrics for scheduler-driven runs
	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(cfg.Metrics.ListenAddr, logger)
		if err := metricsServer.Start(); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() {
			if err := metricsServer.Stop(); err != nil {
				logger.Error().Err(err).Msg("Failed to stop metrics server")
			}
		}()
	}

	// Open the username cache
	cache, err := openNameCache(cfg.Cache)
	if err != nil {
		return fmt.Errorf("failed to open name cache: %w", err)
	}
	defer func() {
		if err := cache.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close name cache")
		}
	}()

	// Build the API client
	timeout, err := cfg.Server.ParsedHTTPTimeout()
	if err != nil {
		return fmt.Errorf("invalid HTTP timeout: %w", err)
	}
	client, err := panopto.NewClient(panopto.Config{
		BaseURL: cfg.Server.BaseURL,
		Credentials: panopto.Credentials{
			UserKey:  cfg.Auth.UserKey,
			Password: cfg.Auth.Password,
		},
		Timeout: timeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	// Run the report
	driver := report.NewDriver(client, client.Credentials(), cache, report.Config{
		PageSize:           cfg.Report.PageSize,
		SessionCap:         cfg.Report.SessionCap,
		WindowDays:         cfg.Report.WindowDays,
		CacheFailedLookups: cfg.Report.CacheFailedLookups,
	}, logger)

	result := driver.Run(context.Background())

	// The partial report is still worth keeping on failure
	outputPath, writeErr := writeReport(cfg.Report.OutputDir, result.Text)
	if writeErr != nil {
		logger.Error().Err(writeErr).Msg("Failed to write report file")
	}

	printSummary(result, outputPath)

	if result.Err != nil {
		return result.Err
	}
	return writeErr
}

// openNameCache opens the configured username cache backend
func openNameCache(cfg config.CacheConfig) (namecache.Cache, error) {
	if cfg.Backend == "redis" {
		return namecache.OpenRedis(cfg.Redis)
	}
	return namecache.NewMemory(cfg.MemorySize)
}

// writeReport writes the report text to its output file
func writeReport(outputDir, text string) (string, error) {
	path := reportOutputPath
	if path == "" {
		path = filepath.Join(outputDir, fmt.Sprintf("Stats_%s.csv", time.Now().UTC().Format("2006-01-02-15-04")))
	}

	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

// printSummary prints a human-readable run summary to stdout
func printSummary(result *report.Result, outputPath string) {
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	red := color.New(color.FgRed, color.Bold)

	if result.Err != nil {
		red.Printf("Report failed: %s\n", result.Status)
	} else {
		green.Printf("%s\n", result.Status)
	}

	fmt.Printf("  Sessions reported:   %d\n", result.SessionsProcessed)
	fmt.Printf("  Sessions without activity: %d\n", result.SessionsNoActivity)
	if result.SessionsSkipped > 0 {
		yellow.Printf("  Sessions skipped:    %d (usage fetch failed)\n", result.SessionsSkipped)
	}
	if outputPath != "" {
		fmt.Printf("  Wrote %s\n", outputPath)
	}
}
