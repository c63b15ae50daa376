package command

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kapu/reeltalk-go/internal/constants"
	"github.com/kapu/reeltalk-go/internal/domain"
	"github.com/kapu/reeltalk-go/internal/recommend"
)

// ForYouCommand renders the home feed: personalized picks when a genre
// preference exists, trending otherwise.
type ForYouCommand struct {
	deps *Dependencies
}

func NewForYouCommand(deps *Dependencies) *ForYouCommand {
	return &ForYouCommand{deps: deps}
}

func (c *ForYouCommand) Name() string {
	return "foryou"
}

func (c *ForYouCommand) Description() string {
	return "Personalized recommendations, trending as fallback"
}

func (c *ForYouCommand) Execute(ctx context.Context, params map[string]any) error {
	if err := c.ensureDeps(); err != nil {
		return err
	}

	if boolParam(params, ParamRefresh) {
		if _, err := c.deps.Catalog.Invalidate(ctx); err != nil {
			c.deps.Logger.Warn("Cache invalidation failed", zap.Error(err))
		}
	}

	pref, explicit := preferenceParam(params)
	if !explicit {
		user, err := c.deps.Users.Me(ctx)
		if err != nil {
			c.deps.Logger.Warn("Failed to load user preference", zap.Error(err))
			return c.showTrending(ctx)
		}
		if !user.HasGenrePreference() {
			return c.showTrending(ctx)
		}
		pref = user.Preference()
	}

	if len(pref.Genres) == 0 {
		return c.showTrending(ctx)
	}

	movies, err := c.deps.Recommender.Recommend(ctx, pref)
	if err != nil {
		if errors.Is(err, recommend.ErrNoPersonalizedResult) {
			c.deps.Logger.Info("No personalized result, showing trending",
				zap.Strings("languages", pref.Languages),
				zap.Strings("genres", pref.Genres),
			)
			return c.showTrending(ctx)
		}
		return c.deps.SendError(fmt.Sprintf("Recommendation failed: %v", err))
	}

	return c.deps.SendMessage(c.deps.Formatter.FormatRecommendations(movies, true))
}

func (c *ForYouCommand) showTrending(ctx context.Context) error {
	movies, err := trendingMovies(ctx, c.deps.Catalog)
	if err != nil {
		return c.deps.SendError("Failed to load trending movies")
	}
	return c.deps.SendMessage(c.deps.Formatter.FormatRecommendations(movies, false))
}

func (c *ForYouCommand) ensureDeps() error {
	if c == nil || c.deps == nil {
		return fmt.Errorf("foryou command dependencies not configured")
	}

	if c.deps.SendMessage == nil || c.deps.SendError == nil {
		return fmt.Errorf("message callbacks not configured")
	}

	if c.deps.Recommender == nil || c.deps.Catalog == nil || c.deps.Users == nil || c.deps.Formatter == nil {
		return fmt.Errorf("foryou command services not configured")
	}

	if c.deps.Logger == nil {
		c.deps.Logger = zap.NewNop()
	}

	return nil
}

// trendingMovies keeps the first poster-bearing entries of the trending list.
func trendingMovies(ctx context.Context, catalog Catalog) ([]domain.Movie, error) {
	movies, err := catalog.FetchTrending(ctx)
	if err != nil {
		return nil, err
	}
	movies = recommend.UniqueWithPosters(movies)
	if len(movies) > constants.Recommendation.TrendingLimit {
		movies = movies[:constants.Recommendation.TrendingLimit]
	}
	return movies, nil
}
