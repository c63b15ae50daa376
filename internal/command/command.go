package command

import (
	"context"

	"go.uber.org/zap"

	"github.com/kapu/reeltalk-go/internal/adapter"
	"github.com/kapu/reeltalk-go/internal/domain"
	"github.com/kapu/reeltalk-go/internal/recommend"
)

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, params map[string]any) error
}

// Recommender produces the personalized home feed.
type Recommender interface {
	Recommend(ctx context.Context, pref domain.UserPreference) ([]domain.Movie, error)
}

// CandidateLoader builds the filtered onboarding candidate list.
type CandidateLoader interface {
	Candidates(ctx context.Context, pref domain.UserPreference) ([]domain.Movie, recommend.PoolStats, error)
}

type Catalog interface {
	FetchTrending(ctx context.Context) ([]domain.Movie, error)
	Search(ctx context.Context, query string, page int) ([]domain.Movie, error)
	Invalidate(ctx context.Context) (int64, error)
}

// UserAPI is the authenticated profile surface of the backend.
type UserAPI interface {
	Me(ctx context.Context) (*domain.User, error)
	CompleteOnboarding(ctx context.Context, req domain.OnboardingRequest) (*domain.User, error)
}

type Dependencies struct {
	Recommender Recommender
	Onboarding  CandidateLoader
	Catalog     Catalog
	Users       UserAPI
	Formatter   *adapter.ResponseFormatter
	PageSize    int
	SendMessage func(message string) error
	SendError   func(message string) error
	Logger      *zap.Logger
}
