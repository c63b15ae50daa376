package recommend

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/kapu/reeltalk-go/internal/constants"
	"github.com/kapu/reeltalk-go/internal/domain"
)

// PageFetcher is the catalog capability for discover pages. An empty genreID
// means no genre constraint.
type PageFetcher interface {
	FetchPage(ctx context.Context, language, genreID string, page int) ([]domain.Movie, error)
}

// PopularFetcher returns one page of the generic popular list.
type PopularFetcher interface {
	FetchPopular(ctx context.Context, page int) ([]domain.Movie, error)
}

// CatalogSource is everything a batch can ask the catalog for.
type CatalogSource interface {
	PageFetcher
	PopularFetcher
}

type RequestKind int

const (
	KindDiscover RequestKind = iota
	KindPopular
)

// PageRequest is one catalog query in a batch.
type PageRequest struct {
	Kind     RequestKind
	Language string
	GenreID  string
	Page     int
}

func DiscoverRequest(language, genreID string, page int) PageRequest {
	return PageRequest{Kind: KindDiscover, Language: language, GenreID: genreID, Page: page}
}

func PopularRequest(page int) PageRequest {
	return PageRequest{Kind: KindPopular, Page: page}
}

func (r PageRequest) String() string {
	if r.Kind == KindPopular {
		return fmt.Sprintf("popular/p%d", r.Page)
	}
	genre := r.GenreID
	if genre == "" {
		genre = "any"
	}
	return fmt.Sprintf("discover/%s/%s/p%d", r.Language, genre, r.Page)
}

// PageResult holds the outcome of one request. Err is set when the request
// failed; Movies is then empty.
type PageResult struct {
	Request PageRequest
	Movies  []domain.Movie
	Err     error
}

// BatchFetcher issues many independent catalog requests concurrently and
// waits for all of them to settle. Failures never abort the batch.
type BatchFetcher struct {
	source      CatalogSource
	concurrency int
	logger      *zap.Logger
}

func NewBatchFetcher(source CatalogSource, concurrency int, logger *zap.Logger) *BatchFetcher {
	if concurrency < 1 {
		concurrency = constants.FetchConfig.Concurrency
	}
	return &BatchFetcher{
		source:      source,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Fetch runs every request and returns results in request order.
func (b *BatchFetcher) Fetch(ctx context.Context, requests []PageRequest) []PageResult {
	results := make([]PageResult, len(requests))
	if len(requests) == 0 {
		return results
	}

	p := pool.New().WithMaxGoroutines(b.concurrency)
	for idx, req := range requests {
		p.Go(func() {
			movies, err := b.fetchOne(ctx, req)
			if err != nil {
				movies = nil
			}
			// each task owns its slot; Wait publishes them to the caller
			results[idx] = PageResult{Request: req, Movies: movies, Err: err}
		})
	}
	p.Wait()

	failed := 0
	for _, res := range results {
		if res.Err == nil {
			continue
		}
		failed++
		b.logger.Warn("Catalog request failed",
			zap.String("request", res.Request.String()),
			zap.Error(res.Err),
		)
	}
	if failed > 0 {
		b.logger.Info("Catalog batch settled with failures",
			zap.Int("requests", len(requests)),
			zap.Int("failed", failed),
		)
	}

	return results
}

func (b *BatchFetcher) fetchOne(ctx context.Context, req PageRequest) ([]domain.Movie, error) {
	switch req.Kind {
	case KindPopular:
		return b.source.FetchPopular(ctx, req.Page)
	default:
		return b.source.FetchPage(ctx, req.Language, req.GenreID, req.Page)
	}
}

// MergeResults concatenates the movies of successful results in order.
func MergeResults(results []PageResult) []domain.Movie {
	total := 0
	for _, res := range results {
		total += len(res.Movies)
	}
	merged := make([]domain.Movie, 0, total)
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		merged = append(merged, res.Movies...)
	}
	return merged
}

// CountFailures returns how many results carry an error.
func CountFailures(results []PageResult) int {
	n := 0
	for _, res := range results {
		if res.Err != nil {
			n++
		}
	}
	return n
}
