package command

import (
	"context"
	"fmt"
)

type TrendingCommand struct {
	deps *Dependencies
}

func NewTrendingCommand(deps *Dependencies) *TrendingCommand {
	return &TrendingCommand{deps: deps}
}

func (c *TrendingCommand) Name() string {
	return "trending"
}

func (c *TrendingCommand) Description() string {
	return "Trending movies"
}

func (c *TrendingCommand) Execute(ctx context.Context, params map[string]any) error {
	if c == nil || c.deps == nil || c.deps.Catalog == nil || c.deps.Formatter == nil {
		return fmt.Errorf("trending command services not configured")
	}
	if c.deps.SendMessage == nil || c.deps.SendError == nil {
		return fmt.Errorf("message callbacks not configured")
	}

	movies, err := trendingMovies(ctx, c.deps.Catalog)
	if err != nil {
		return c.deps.SendError("Failed to load trending movies")
	}
	return c.deps.SendMessage(c.deps.Formatter.FormatRecommendations(movies, false))
}
