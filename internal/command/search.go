package command

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kapu/reeltalk-go/internal/recommend"
)

type SearchCommand struct {
	deps *Dependencies
}

func NewSearchCommand(deps *Dependencies) *SearchCommand {
	return &SearchCommand{deps: deps}
}

func (c *SearchCommand) Name() string {
	return "search"
}

func (c *SearchCommand) Description() string {
	return "Search the catalog by title"
}

func (c *SearchCommand) Execute(ctx context.Context, params map[string]any) error {
	if c == nil || c.deps == nil || c.deps.Catalog == nil || c.deps.Formatter == nil {
		return fmt.Errorf("search command services not configured")
	}
	if c.deps.SendMessage == nil || c.deps.SendError == nil {
		return fmt.Errorf("message callbacks not configured")
	}

	query := stringParam(params, ParamQuery)
	if query == "" {
		return c.deps.SendError("Search query is empty")
	}

	page := max(intParam(params, ParamPage, 1), 1)

	movies, err := c.deps.Catalog.Search(ctx, query, page)
	if err != nil {
		if c.deps.Logger != nil {
			c.deps.Logger.Warn("Search failed", zap.String("query", query), zap.Error(err))
		}
		return c.deps.SendError(fmt.Sprintf("Search failed for %q", query))
	}

	return c.deps.SendMessage(c.deps.Formatter.FormatSearchResults(query, recommend.UniqueWithPosters(movies), page))
}
