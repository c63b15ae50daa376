package command

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kapu/reeltalk-go/internal/domain"
	"github.com/kapu/reeltalk-go/internal/recommend"
	"github.com/kapu/reeltalk-go/internal/util"
)

// CompleteCommand finishes onboarding with movies picked from the candidate
// list of the same selection.
type CompleteCommand struct {
	deps *Dependencies
}

func NewCompleteCommand(deps *Dependencies) *CompleteCommand {
	return &CompleteCommand{deps: deps}
}

func (c *CompleteCommand) Name() string {
	return "complete"
}

func (c *CompleteCommand) Description() string {
	return "Complete onboarding with picked favorites"
}

func (c *CompleteCommand) Execute(ctx context.Context, params map[string]any) error {
	if err := ensureOnboardingDeps(c.deps); err != nil {
		return err
	}
	if c.deps.Users == nil {
		return fmt.Errorf("user api not configured")
	}

	picks := util.UniqueInts(intsParam(params, ParamPicks))
	if len(picks) == 0 {
		return c.deps.SendError(onboardingErrorMessage(recommend.ErrNoPicks))
	}

	pref, _ := preferenceParam(params)
	movies, _, err := c.deps.Onboarding.Candidates(ctx, pref)
	if err != nil {
		return c.deps.SendError(onboardingErrorMessage(err))
	}

	byID := make(map[int]domain.Movie, len(movies))
	for _, m := range movies {
		byID[m.ID] = m
	}

	selection := recommend.NewSelection()
	for _, id := range picks {
		m, ok := byID[id]
		if !ok {
			return c.deps.SendError(fmt.Sprintf("Movie %d is not among the candidates for this selection", id))
		}
		if _, err := selection.Toggle(m); err != nil {
			return c.deps.SendError(onboardingErrorMessage(err))
		}
	}

	req, err := selection.OnboardingRequest(pref)
	if err != nil {
		return c.deps.SendError(onboardingErrorMessage(err))
	}

	user, err := c.deps.Users.CompleteOnboarding(ctx, req)
	if err != nil {
		c.deps.Logger.Error("Failed to complete onboarding", zap.Error(err))
		return c.deps.SendError("Failed to save onboarding, please try again")
	}

	c.deps.Logger.Info("Onboarding completed",
		zap.Int("favorites", len(req.FavoriteMovies)),
		zap.Strings("genres", req.PreferredGenres),
		zap.Strings("languages", req.PreferredLanguages),
	)

	return c.deps.SendMessage(c.deps.Formatter.FormatOnboardingComplete(req, user))
}
