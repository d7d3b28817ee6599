package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/leofalp/campaignlens/core/campaign"
	"github.com/leofalp/campaignlens/core/cost"
	"github.com/leofalp/campaignlens/providers/ai"
	"github.com/leofalp/campaignlens/providers/guideline"
)

// ErrNilCompleter is returned by [New] when no model client is given.
var ErrNilCompleter = errors.New("analyzer: completer is nil")

// Completer sends one prompt to a language model. *client.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, prompt string) (*ai.ChatResponse, error)
}

// QuotaGate decides whether user may spend one more request today.
// A true result means the slot has been consumed.
type QuotaGate interface {
	Consume(ctx context.Context, user string, now time.Time) (bool, error)
}

// Options configures an [Analyzer]. Use the With* functions to set them.
type Options struct {
	Logger    *slog.Logger
	Quota     QuotaGate
	CacheTTL  time.Duration
	CacheSize int
	Platforms []string
	Cost      cost.ModelCost
	Now       func() time.Time
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) func(*Options) {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithQuota makes every uncached analysis consume one slot from gate before
// the model is called.
func WithQuota(gate QuotaGate) func(*Options) {
	return func(o *Options) {
		o.Quota = gate
	}
}

// WithCache keeps up to size results for ttl, keyed by guideline and
// platform list. A non-positive ttl disables the cache.
func WithCache(ttl time.Duration, size int) func(*Options) {
	return func(o *Options) {
		o.CacheTTL = ttl
		o.CacheSize = size
	}
}

// WithPlatforms sets the candidate platforms used when a request has none.
func WithPlatforms(platforms ...string) func(*Options) {
	return func(o *Options) {
		o.Platforms = platforms
	}
}

// WithModelCost prices each model call; the estimate is reported in
// Result.CostUSD.
func WithModelCost(price cost.ModelCost) func(*Options) {
	return func(o *Options) {
		o.Cost = price
	}
}

// WithClock replaces time.Now for quota windows and cache expiry.
func WithClock(now func() time.Time) func(*Options) {
	return func(o *Options) {
		o.Now = now
	}
}

// Request is one guideline to analyze.
type Request struct {
	Guideline string
	Platforms []string
	UserID    string
}

// Analyzer is the boundary around [Reconcile]: it rejects blank input,
// charges the quota, makes exactly one model call and caches the result.
// It is safe for concurrent use; identical concurrent requests share one
// model call.
type Analyzer struct {
	client  Completer
	options Options
	cache   *resultCache
	group   singleflight.Group
}

// New builds an Analyzer over completer.
func New(completer Completer, opts ...func(*Options)) (*Analyzer, error) {
	if completer == nil {
		return nil, ErrNilCompleter
	}

	options := Options{
		Logger: slog.Default(),
		Now:    time.Now,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	a := &Analyzer{client: completer, options: options}
	if options.CacheTTL > 0 {
		a.cache = newResultCache(options.CacheSize, options.CacheTTL, options.Now)
	}
	return a, nil
}

// Analyze produces the campaign record for req.
//
// It fails with campaign.ErrInvalidInput for blank guideline text,
// campaign.ErrQuotaExceeded when the quota gate denies the user,
// campaign.ErrUpstreamUnavailable when the model call fails or returns
// nothing, and a *campaign.SchemaViolationError when no record can be
// recovered from the response. The returned Result must be treated as
// read-only; cached and coalesced callers share its slices.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Result, error) {
	requestID := uuid.NewString()
	logger := a.options.Logger.With(slog.String("request_id", requestID))
	start := a.options.Now()

	text := guideline.Prepare(req.Guideline)
	if strings.TrimSpace(text) == "" {
		return nil, a.fail(ctx, logger, campaign.ErrInvalidInput)
	}

	platforms := req.Platforms
	if len(platforms) == 0 {
		platforms = a.options.Platforms
	}

	key := cacheKey(text, platforms)
	if a.cache != nil {
		if cached, ok := a.cache.get(key); ok {
			logger.InfoContext(ctx, "analysis cache hit", slog.String("title", cached.Analysis.Title))
			cached.RequestID = requestID
			cached.Cached = true
			cached.CostUSD = 0
			return &cached, nil
		}
	}

	if a.options.Quota != nil {
		allowed, err := a.options.Quota.Consume(ctx, req.UserID, start)
		if err != nil {
			return nil, a.fail(ctx, logger, fmt.Errorf("analyzer: quota check: %w", err))
		}
		if !allowed {
			return nil, a.fail(ctx, logger, campaign.ErrQuotaExceeded)
		}
	}

	v, err, shared := a.group.Do(key, func() (any, error) {
		return a.run(ctx, logger, key, text, platforms)
	})
	if err != nil {
		return nil, a.fail(ctx, logger, err)
	}

	result := *v.(*Result)
	result.RequestID = requestID

	logger.InfoContext(ctx, "analysis completed",
		slog.String("status", result.Status.String()),
		slog.Int("corrections", len(result.Corrections)),
		slog.Int("dropped", len(result.Dropped)),
		slog.Float64("cost_usd", result.CostUSD),
		slog.Bool("shared", shared),
		slog.Duration("duration", a.options.Now().Sub(start)))
	return &result, nil
}

// run makes the single model call for text and reconciles its response.
func (a *Analyzer) run(ctx context.Context, logger *slog.Logger, key, text string, platforms []string) (*Result, error) {
	response, err := a.client.Complete(ctx, BuildPrompt(text, platforms))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", campaign.ErrUpstreamUnavailable, err)
	}
	if response == nil || strings.TrimSpace(response.Content) == "" {
		return nil, fmt.Errorf("%w: empty response", campaign.ErrUpstreamUnavailable)
	}

	result, err := reconcile(ctx, logger, text, platforms, response.Content)
	if err != nil {
		return nil, err
	}
	result.Usage = response.Usage
	result.CostUSD = a.options.Cost.Estimate(response.Usage)

	if result.Repaired() {
		logger.WarnContext(ctx, "analysis repaired",
			slog.String("model", response.Model),
			slog.Int("dropped", len(result.Dropped)))
	}

	if a.cache != nil {
		a.cache.put(key, *result)
	}
	return result, nil
}

// fail logs err with its failure kind and returns it unchanged.
func (a *Analyzer) fail(ctx context.Context, logger *slog.Logger, err error) error {
	attrs := []any{
		slog.String("kind", failureKind(err)),
		slog.String("error", err.Error()),
	}
	var violation *campaign.SchemaViolationError
	if errors.As(err, &violation) {
		attrs = append(attrs, slog.Int("violations", len(violation.Violations)))
	}
	logger.ErrorContext(ctx, "analysis failed", attrs...)
	return err
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, campaign.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, campaign.ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, campaign.ErrUpstreamUnavailable):
		return "upstream_unavailable"
	case errors.Is(err, campaign.ErrSchemaViolation):
		return "schema_violation"
	default:
		return "internal"
	}
}
