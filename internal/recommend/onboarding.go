package recommend

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/kapu/reeltalk-go/internal/constants"
	"github.com/kapu/reeltalk-go/internal/domain"
)

// ErrEmptyPool means every onboarding request failed or returned nothing.
var ErrEmptyPool = errors.New("onboarding candidate pool is empty")

type languagePages struct {
	code  string
	pages int
}

// Discover pages fetched per language without a genre constraint.
var onboardingLanguagePages = []languagePages{
	{code: "hi", pages: 20},
	{code: "en", pages: 10},
	{code: "es", pages: 8},
	{code: "fr", pages: 8},
	{code: "de", pages: 5},
	{code: "it", pages: 5},
	{code: "ja", pages: 8},
	{code: "ko", pages: 8},
	{code: "zh", pages: 8},
	{code: "pt", pages: 5},
}

var (
	comboLanguages = []string{"hi", "en", "es", "ko", "ja"}
	comboGenres    = []string{"Comedy", "Action", "Drama", "Romance", "Thriller", "Adventure"}
)

// OnboardingPlan lists the requests that build the onboarding pool: the first
// popular pages, per-language discover pages, and language x genre pages for
// the most selected combinations.
func OnboardingPlan() []PageRequest {
	plan := make([]PageRequest, 0, 256)

	for page := 1; page <= constants.Onboarding.PopularPages; page++ {
		plan = append(plan, PopularRequest(page))
	}

	for _, lp := range onboardingLanguagePages {
		for page := 1; page <= lp.pages; page++ {
			plan = append(plan, DiscoverRequest(lp.code, "", page))
		}
	}

	for _, lang := range comboLanguages {
		for _, name := range comboGenres {
			id, ok := domain.GenreID(name)
			if !ok {
				continue
			}
			for page := 1; page <= constants.Onboarding.ComboPages; page++ {
				plan = append(plan, DiscoverRequest(lang, strconv.Itoa(id), page))
			}
		}
	}

	return plan
}

// PoolStats summarises one onboarding pool load.
type PoolStats struct {
	Requests   int
	Failed     int
	Candidates int
	Unique     int
	ByLanguage map[string]int
}

// Onboarding loads the candidate pool shown while a new user picks favorites.
type Onboarding struct {
	batch  *BatchFetcher
	plan   []PageRequest
	logger *zap.Logger
}

func NewOnboarding(batch *BatchFetcher, logger *zap.Logger) *Onboarding {
	return &Onboarding{
		batch:  batch,
		plan:   OnboardingPlan(),
		logger: logger,
	}
}

// LoadPool runs the whole plan and returns the raw merged pool in plan order.
func (o *Onboarding) LoadPool(ctx context.Context) ([]domain.Movie, PoolStats) {
	results := o.batch.Fetch(ctx, o.plan)
	pool := MergeResults(results)

	unique := UniqueWithPosters(pool)
	stats := PoolStats{
		Requests:   len(o.plan),
		Failed:     CountFailures(results),
		Candidates: len(pool),
		Unique:     len(unique),
		ByLanguage: make(map[string]int),
	}
	for _, m := range unique {
		stats.ByLanguage[m.OriginalLanguage]++
	}

	o.logger.Info("Onboarding pool loaded",
		zap.Int("requests", stats.Requests),
		zap.Int("failed", stats.Failed),
		zap.Int("candidates", stats.Candidates),
		zap.Int("unique_with_posters", stats.Unique),
		zap.Any("languages", stats.ByLanguage),
	)

	return pool, stats
}

// Candidates loads a fresh pool and orders it for pref. At least one genre must
// be selected before movies are offered.
func (o *Onboarding) Candidates(ctx context.Context, pref domain.UserPreference) ([]domain.Movie, PoolStats, error) {
	if len(pref.Genres) == 0 {
		return nil, PoolStats{}, ErrNoGenres
	}

	pool, stats := o.LoadPool(ctx)
	if stats.Unique == 0 {
		return nil, stats, ErrEmptyPool
	}

	return FilterByPreferences(pool, pref.Languages, pref.Genres), stats, nil
}
