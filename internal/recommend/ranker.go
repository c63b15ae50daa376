package recommend

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/kapu/reeltalk-go/internal/constants"
	"github.com/kapu/reeltalk-go/internal/domain"
)

// ErrNoPersonalizedResult means the preference-based queries produced nothing;
// callers fall back to the trending list.
var ErrNoPersonalizedResult = errors.New("no personalized recommendations")

// Ranker builds the short "recommended for you" list from stored preferences.
type Ranker struct {
	batch        *BatchFetcher
	logger       *zap.Logger
	maxLanguages int
	maxGenres    int
	limit        int
}

func NewRanker(batch *BatchFetcher, logger *zap.Logger) *Ranker {
	return &Ranker{
		batch:        batch,
		logger:       logger,
		maxLanguages: constants.Recommendation.MaxLanguages,
		maxGenres:    constants.Recommendation.MaxGenres,
		limit:        constants.Recommendation.Limit,
	}
}

// PersonalizedRequests returns one page-1 discover query per (language, genre)
// pair, using at most the first two languages and first three mapped genres.
func (r *Ranker) PersonalizedRequests(pref domain.UserPreference) []PageRequest {
	langs := pref.Normalized().Languages
	langs = langs[:min(len(langs), r.maxLanguages)]

	genreIDs := domain.GenreIDs(pref.Genres)
	genreIDs = genreIDs[:min(len(genreIDs), r.maxGenres)]

	requests := make([]PageRequest, 0, len(langs)*len(genreIDs))
	for _, lang := range langs {
		for _, id := range genreIDs {
			requests = append(requests, DiscoverRequest(lang, strconv.Itoa(id), 1))
		}
	}
	return requests
}

// Recommend queries the catalog for pref and returns at most six movies ranked
// by popularity. Failed queries contribute nothing. ErrNoPersonalizedResult is
// returned when nothing usable came back.
func (r *Ranker) Recommend(ctx context.Context, pref domain.UserPreference) ([]domain.Movie, error) {
	requests := r.PersonalizedRequests(pref)
	if len(requests) == 0 {
		r.logger.Debug("No genre preferences, skipping personalized ranking")
		return nil, ErrNoPersonalizedResult
	}

	results := r.batch.Fetch(ctx, requests)
	ranked := RankPool(MergeResults(results), r.limit)

	r.logger.Debug("Personalized ranking done",
		zap.Int("queries", len(requests)),
		zap.Int("failed", CountFailures(results)),
		zap.Int("results", len(ranked)),
	)

	if len(ranked) == 0 {
		return nil, ErrNoPersonalizedResult
	}
	return ranked, nil
}

// RankPool dedupes pool by id (first seen wins), sorts by popularity and keeps
// the first limit entries. A non-positive limit keeps everything.
func RankPool(pool []domain.Movie, limit int) []domain.Movie {
	ranked := SortByPopularity(UniqueWithPosters(pool))
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
