package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/leofalp/campaignlens/core/analyzer"
	"github.com/leofalp/campaignlens/core/client"
	"github.com/leofalp/campaignlens/core/client/middleware"
	"github.com/leofalp/campaignlens/core/cost"
	"github.com/leofalp/campaignlens/core/parse"
	"github.com/leofalp/campaignlens/internal/config"
	"github.com/leofalp/campaignlens/internal/quota"
	"github.com/leofalp/campaignlens/internal/utils"
	"github.com/leofalp/campaignlens/providers/ai/openai"
	"github.com/leofalp/campaignlens/providers/guideline"
)

var (
	analyzeURL       string
	analyzePlatforms []string
	analyzeUser      string
	analyzePretty    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a guideline from a file, a URL or stdin",
	Long: `Reads a campaign guideline (plain text or HTML), asks the language model for a
structured record, repairs and normalizes the answer, and prints the result as JSON.

Without a file argument or --url the guideline is read from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the campaign record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), parse.Schema())
		return err
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "fetch the guideline from this URL")
	analyzeCmd.Flags().StringSliceVarP(&analyzePlatforms, "platform", "p", nil, "candidate platform (repeatable); defaults to the catalog")
	analyzeCmd.Flags().StringVarP(&analyzeUser, "user", "u", "", "user id charged against the daily quota")
	analyzeCmd.Flags().BoolVar(&analyzePretty, "pretty", false, "indent the JSON output")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	text, err := readGuideline(ctx, args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	a, closeFn, err := newAnalyzer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := a.Analyze(ctx, analyzer.Request{
		Guideline: text,
		Platforms: trimmedPlatforms(analyzePlatforms),
		UserID:    analyzeUser,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), utils.JSONToString(result, analyzePretty))
	return err
}

// readGuideline returns the guideline from --url, the file argument ("-"
// for stdin) or stdin.
func readGuideline(ctx context.Context, args []string, stdin io.Reader) (string, error) {
	if analyzeURL != "" {
		if len(args) > 0 {
			return "", fmt.Errorf("give either a file or --url, not both")
		}
		return guideline.Fetch(ctx, analyzeURL)
	}

	var data []byte
	var err error
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("reading guideline: %w", err)
	}
	return string(data), nil
}

// newAnalyzer wires the provider, client, quota gate and cache from cfg. The
// returned function releases the Redis connection, if any.
func newAnalyzer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*analyzer.Analyzer, func(), error) {
	provider := openai.New().
		WithAPIKey(cfg.APIKey).
		WithBaseURL(cfg.BaseURL)

	c, err := client.New(provider,
		client.WithModel(cfg.Model),
		client.WithSystemPrompt(analyzer.SystemPrompt()),
		client.WithJSONMode(),
		client.WithTemperature(0),
		client.WithMiddleware(
			middleware.NewTimeoutMiddleware(cfg.Timeout),
			middleware.NewLoggingMiddleware(logger, logLevelFor(cfg)),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	opts := []func(*analyzer.Options){
		analyzer.WithLogger(logger),
		analyzer.WithCache(cfg.CacheTTL, cfg.CacheSize),
		analyzer.WithPlatforms(cfg.Platforms...),
	}
	if price, ok := cost.For(cfg.Model); ok {
		opts = append(opts, analyzer.WithModelCost(price))
	} else {
		logger.Debug("no price known for model", "model", cfg.Model)
	}
	closeFn := func() {}

	if cfg.DailyQuota > 0 {
		if cfg.RedisAddr != "" {
			rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			if err := rdb.Ping(pingCtx).Err(); err != nil {
				_ = rdb.Close()
				return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.RedisAddr, err)
			}
			opts = append(opts, analyzer.WithQuota(quota.NewRedisGate(rdb, cfg.DailyQuota)))
			closeFn = func() {
				if err := rdb.Close(); err != nil {
					logger.Warn("failed to close redis client", "error", err.Error())
				}
			}
		} else {
			opts = append(opts, analyzer.WithQuota(quota.NewMemoryGate(cfg.DailyQuota)))
		}
	}

	a, err := analyzer.New(c, opts...)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return a, closeFn, nil
}

// logLevelFor maps the slog level onto the model-call logging detail.
func logLevelFor(cfg *config.Config) middleware.LogLevel {
	switch {
	case cfg.LogLevel <= slog.LevelDebug:
		return middleware.LogLevelStandard
	default:
		return middleware.LogLevelMinimal
	}
}

func trimmedPlatforms(platforms []string) []string {
	out := make([]string, 0, len(platforms))
	for _, p := range platforms {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
