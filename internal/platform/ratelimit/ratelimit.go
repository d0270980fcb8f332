package ratelimit

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const storePrefix = "easyledger_limiter"

// NewLimiter builds a limiter for the given formatted rate (e.g. "30-M").
// With an empty redisURL counters live in process memory; otherwise they are
// shared through Redis so several API instances enforce one budget.
func NewLimiter(logger *slog.Logger, rateFormat, redisURL string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(rateFormat)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", rateFormat, err)
	}

	if redisURL == "" {
		logger.Info("Using in-memory rate limit store", slog.String("rate", rateFormat))
		return limiter.New(memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: storePrefix}), rate), nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: storePrefix})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis rate limit store: %w", err)
	}
	logger.Info("Using redis rate limit store", slog.String("rate", rateFormat), slog.String("addr", opts.Addr))
	return limiter.New(store, rate), nil
}
