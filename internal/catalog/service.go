package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/reeltalk-go/internal/constants"
	"github.com/kapu/reeltalk-go/internal/domain"
	"github.com/kapu/reeltalk-go/internal/util"
	"github.com/kapu/reeltalk-go/pkg/errors"
)

// MovieAPI is the backend surface the catalog reads from.
type MovieAPI interface {
	Discover(ctx context.Context, language, genre string, page int) ([]domain.Movie, error)
	Popular(ctx context.Context, page int) ([]domain.Movie, error)
	Trending(ctx context.Context) ([]domain.Movie, error)
	Search(ctx context.Context, query string, page int) ([]domain.Movie, error)
}

// MovieCache stores movie lists by key.
type MovieCache interface {
	GetMovies(ctx context.Context, key string) ([]domain.Movie, bool)
	SetMovies(ctx context.Context, key string, movies []domain.Movie, ttl time.Duration)
	DelPattern(ctx context.Context, pattern string) (int64, error)
}

// Service is the catalog client used by the recommendation flows. Results are
// read through an optional cache.
type Service struct {
	api    MovieAPI
	cache  MovieCache
	logger *zap.Logger
}

// NewService builds a catalog service. cache may be nil.
func NewService(api MovieAPI, cache MovieCache, logger *zap.Logger) *Service {
	return &Service{
		api:    api,
		cache:  cache,
		logger: logger,
	}
}

// FetchPage returns one discover page for language and genre id. An empty
// genreID means no genre constraint; a page past the end is an empty slice.
func (s *Service) FetchPage(ctx context.Context, language, genreID string, page int) ([]domain.Movie, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	language = strings.TrimSpace(language)
	if language == "" {
		return nil, errors.NewValidationError("language is required", "language", language)
	}

	key := discoverKey(language, genreID, page)
	return s.readThrough(ctx, key, constants.CacheTTL.DiscoverPage, func() ([]domain.Movie, error) {
		return s.api.Discover(ctx, language, genreID, page)
	})
}

func (s *Service) FetchPopular(ctx context.Context, page int) ([]domain.Movie, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s:popular:%d", constants.CacheKeys.Prefix, page)
	return s.readThrough(ctx, key, constants.CacheTTL.PopularPage, func() ([]domain.Movie, error) {
		return s.api.Popular(ctx, page)
	})
}

func (s *Service) FetchTrending(ctx context.Context) ([]domain.Movie, error) {
	key := constants.CacheKeys.Prefix + ":trending"
	return s.readThrough(ctx, key, constants.CacheTTL.Trending, func() ([]domain.Movie, error) {
		return s.api.Trending(ctx)
	})
}

func (s *Service) Search(ctx context.Context, query string, page int) ([]domain.Movie, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	normalized := util.Normalize(query)
	if normalized == "" {
		return nil, errors.NewValidationError("search query is required", "query", query)
	}
	key := fmt.Sprintf("%s:search:%s:%d", constants.CacheKeys.Prefix, normalized, page)
	return s.readThrough(ctx, key, constants.CacheTTL.Search, func() ([]domain.Movie, error) {
		return s.api.Search(ctx, query, page)
	})
}

// Invalidate drops every cached catalog page.
func (s *Service) Invalidate(ctx context.Context) (int64, error) {
	if s.cache == nil {
		return 0, nil
	}
	deleted, err := s.cache.DelPattern(ctx, constants.CacheKeys.Prefix+":*")
	if err != nil {
		return deleted, err
	}
	s.logger.Info("Catalog cache invalidated", zap.Int64("keys", deleted))
	return deleted, nil
}

func (s *Service) readThrough(ctx context.Context, key string, ttl time.Duration, fetch func() ([]domain.Movie, error)) ([]domain.Movie, error) {
	if s.cache != nil {
		if movies, ok := s.cache.GetMovies(ctx, key); ok {
			return movies, nil
		}
	}

	movies, err := fetch()
	if err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []domain.Movie{}
	}

	if s.cache != nil {
		s.cache.SetMovies(ctx, key, movies, ttl)
	}
	return movies, nil
}

func discoverKey(language, genreID string, page int) string {
	genre := strings.TrimSpace(genreID)
	if genre == "" {
		genre = "all"
	}
	return fmt.Sprintf("%s:discover:%s:%s:%d", constants.CacheKeys.Prefix, language, genre, page)
}

func validatePage(page int) error {
	if page < 1 || page > constants.APIConfig.MaxPage {
		return errors.NewValidationError(
			fmt.Sprintf("page must be between 1 and %d", constants.APIConfig.MaxPage), "page", page)
	}
	return nil
}
