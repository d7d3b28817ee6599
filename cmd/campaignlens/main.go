// Command campaignlens extracts a structured campaign record from a Korean
// campaign guideline.
//
// Usage:
//
//	campaignlens analyze guideline.txt --platform 레뷰 --user u1
//	campaignlens analyze --url https://example.com/campaign/123
//	cat guideline.html | campaignlens analyze
//	campaignlens schema
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leofalp/campaignlens/core/campaign"
)

// Exit codes, one per failure kind.
const (
	exitOK = iota
	exitError
	exitInvalidInput
	exitQuotaExceeded
	exitUpstreamUnavailable
	exitSchemaViolation
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "campaignlens",
	Short:         "Extract structured data from campaign guidelines",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment is read")
	rootCmd.AddCommand(analyzeCmd, schemaCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, campaign.ErrInvalidInput):
		return exitInvalidInput
	case errors.Is(err, campaign.ErrQuotaExceeded):
		return exitQuotaExceeded
	case errors.Is(err, campaign.ErrUpstreamUnavailable):
		return exitUpstreamUnavailable
	case errors.Is(err, campaign.ErrSchemaViolation):
		return exitSchemaViolation
	default:
		return exitError
	}
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
