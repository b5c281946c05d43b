package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/aretw0/simchain"
	"github.com/aretw0/simchain/internal/config"
	"github.com/aretw0/simchain/internal/validator"
	"github.com/aretw0/simchain/pkg/adapters/file"
	"github.com/aretw0/simchain/pkg/adapters/redis"
	"github.com/aretw0/simchain/pkg/observability"
	"github.com/aretw0/simchain/pkg/ports"
)

// RunOptions holds the per-command settings layered over the environment config.
type RunOptions struct {
	Path           string
	RecordsPath    string // file store path, ignored when Redis is configured
	Debug          bool
	SkipValidation bool // load definitions that fail the structural checks
}

// createMonitor picks where arrival records go: Redis when configured, then a
// file, then memory (nil store). The returned closer is never nil.
func createMonitor(cfg *config.Config, opts RunOptions) (ports.MonitorStore, func() error, error) {
	noop := func() error { return nil }
	switch {
	case cfg.Redis.Addr != "":
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, redis.WithPrefix(cfg.Redis.Prefix))
		if err := pingRedis(store, cfg.Redis.Attempts); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("redis %s unreachable: %w", cfg.Redis.Addr, err)
		}
		return store, store.Close, nil
	case opts.RecordsPath != "":
		return file.NewStore(opts.RecordsPath), noop, nil
	}
	return nil, noop, nil
}

func pingRedis(store *redis.Store, attempts uint) error {
	if attempts == 0 {
		attempts = 1
	}
	return retry.Do(
		func() error {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			return store.Ping(ctx)
		},
		retry.Attempts(attempts),
		retry.Delay(50*time.Millisecond),
		retry.LastErrorOnly(true),
	)
}

func validateEngine(engine *simchain.Engine) error {
	if err := validator.ValidateTrajectory(engine.Definition()); err != nil {
		return fmt.Errorf("invalid trajectory: %w", err)
	}
	return nil
}

// CreateEngine initializes an engine with standard CLI conventions.
func CreateEngine(cfg *config.Config, opts RunOptions, logger *slog.Logger, extra ...simchain.Option) (*simchain.Engine, func() error, error) {
	store, closer, err := createMonitor(cfg, opts)
	if err != nil {
		return nil, nil, err
	}

	engineOpts := []simchain.Option{
		simchain.WithLogger(logger),
		simchain.WithUntil(cfg.Until),
	}
	if cfg.Seed != nil {
		engineOpts = append(engineOpts, simchain.WithSeed(*cfg.Seed))
	}
	if store != nil {
		engineOpts = append(engineOpts, simchain.WithMonitor(store))
	}
	if opts.Debug {
		engineOpts = append(engineOpts, simchain.WithLifecycleHooks(observability.LogHooks(logger)))
	}
	engineOpts = append(engineOpts, extra...)

	engine, err := simchain.Load(opts.Path, engineOpts...)
	if err == nil && !opts.SkipValidation {
		err = validateEngine(engine)
	}
	if err != nil {
		_ = closer()
		return nil, nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, closer, nil
}
