package command

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kapu/reeltalk-go/internal/constants"
	"github.com/kapu/reeltalk-go/internal/recommend"
)

// OnboardCommand shows one page of onboarding candidates for the selected
// languages and genres.
type OnboardCommand struct {
	deps *Dependencies
}

func NewOnboardCommand(deps *Dependencies) *OnboardCommand {
	return &OnboardCommand{deps: deps}
}

func (c *OnboardCommand) Name() string {
	return "onboard"
}

func (c *OnboardCommand) Description() string {
	return "Browse onboarding candidates for a language/genre selection"
}

func (c *OnboardCommand) Execute(ctx context.Context, params map[string]any) error {
	if err := ensureOnboardingDeps(c.deps); err != nil {
		return err
	}

	if boolParam(params, ParamRefresh) {
		if _, err := c.deps.Catalog.Invalidate(ctx); err != nil {
			c.deps.Logger.Warn("Cache invalidation failed", zap.Error(err))
		}
	}

	pref, _ := preferenceParam(params)
	movies, stats, err := c.deps.Onboarding.Candidates(ctx, pref)
	if err != nil {
		return c.deps.SendError(onboardingErrorMessage(err))
	}

	perPage := c.deps.PageSize
	if perPage < 1 {
		perPage = constants.Onboarding.MoviesPerPage
	}
	page := recommend.Paginate(movies, intParam(params, ParamPage, 1), perPage)

	return c.deps.SendMessage(c.deps.Formatter.FormatOnboardingPage(page, pref, stats))
}

func ensureOnboardingDeps(deps *Dependencies) error {
	if deps == nil {
		return fmt.Errorf("onboarding command dependencies not configured")
	}
	if deps.SendMessage == nil || deps.SendError == nil {
		return fmt.Errorf("message callbacks not configured")
	}
	if deps.Onboarding == nil || deps.Catalog == nil || deps.Formatter == nil {
		return fmt.Errorf("onboarding services not configured")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return nil
}

func onboardingErrorMessage(err error) string {
	switch {
	case errors.Is(err, recommend.ErrNoGenres):
		return "Select at least one genre (--genre)"
	case errors.Is(err, recommend.ErrEmptyPool):
		return "Could not load any movies from the catalog, try again later"
	case errors.Is(err, recommend.ErrNoPicks):
		return "Pick at least one movie (--pick)"
	case errors.Is(err, recommend.ErrSelectionFull):
		return fmt.Sprintf("You can pick at most %d movies", constants.Onboarding.MaxPicks)
	default:
		return fmt.Sprintf("Onboarding failed: %v", err)
	}
}
