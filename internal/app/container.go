package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/kapu/reeltalk-go/internal/adapter"
	"github.com/kapu/reeltalk-go/internal/backend"
	"github.com/kapu/reeltalk-go/internal/catalog"
	"github.com/kapu/reeltalk-go/internal/command"
	"github.com/kapu/reeltalk-go/internal/config"
	"github.com/kapu/reeltalk-go/internal/constants"
	"github.com/kapu/reeltalk-go/internal/recommend"
	"github.com/kapu/reeltalk-go/internal/service/cache"
)

// ErrReported marks a failure whose message was already written to the error
// output.
var ErrReported = errors.New("command failed")

// Output receives rendered command results.
type Output struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Container bundles assembled services and the command registry.
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Registry *command.Registry

	closers []func()
}

// Build assembles the cache, backend client, catalog and recommendation
// services and registers every command. Redis is optional; when it is
// disabled or unreachable the catalog reads straight from the backend.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger, out Output) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if out.Stdout == nil || out.Stderr == nil {
		return nil, fmt.Errorf("output writers must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	var movieCache catalog.MovieCache
	if cfg.Redis.Enabled {
		cacheSvc, cacheErr := cache.NewCacheService(cache.CacheConfig{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if cacheErr != nil {
			logger.Warn("Redis unavailable, continuing without cache", zap.Error(cacheErr))
		} else {
			movieCache = cacheSvc
			closers = append(closers, func() {
				_ = cacheSvc.Close()
			})
		}
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	apiClient := backend.NewClient(backend.ClientConfig{
		BaseURL:       cfg.API.BaseURL,
		Token:         cfg.API.Token,
		Timeout:       cfg.API.Timeout,
		RatePerSecond: cfg.API.RatePerSecond,
		Burst:         cfg.API.Burst,
		Jitter:        constants.RetryConfig.Jitter,
	}, logger)

	catalogSvc := catalog.NewService(apiClient, movieCache, logger)
	batch := recommend.NewBatchFetcher(catalogSvc, cfg.Fetch.Concurrency, logger)

	deps := &command.Dependencies{
		Recommender: recommend.NewRanker(batch, logger),
		Onboarding:  recommend.NewOnboarding(batch, logger),
		Catalog:     catalogSvc,
		Users:       apiClient,
		Formatter:   adapter.NewResponseFormatter(true),
		PageSize:    cfg.Onboarding.PageSize,
		SendMessage: func(message string) error {
			_, err := fmt.Fprintln(out.Stdout, message)
			return err
		},
		SendError: func(message string) error {
			if _, err := fmt.Fprintln(out.Stderr, "❌ "+message); err != nil {
				return err
			}
			return ErrReported
		},
		Logger: logger,
	}

	registry := command.NewRegistry()
	registry.Register(command.NewForYouCommand(deps))
	registry.Register(command.NewTrendingCommand(deps))
	registry.Register(command.NewOnboardCommand(deps))
	registry.Register(command.NewCompleteCommand(deps))
	registry.Register(command.NewSearchCommand(deps))
	registry.Register(command.NewGenresCommand(deps))

	logger.Debug("Commands registered", zap.Strings("commands", registry.Names()))

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Registry: registry,
		closers:  closers,
	}, nil
}

// Execute runs the named command.
func (c *Container) Execute(ctx context.Context, name string, params map[string]any) error {
	if c == nil || c.Registry == nil {
		return fmt.Errorf("container not initialized")
	}
	return c.Registry.Execute(ctx, name, params)
}

// Close releases resources acquired by Build.
func (c *Container) Close() {
	if c == nil {
		return
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
