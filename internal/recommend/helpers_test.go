package recommend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/kapu/reeltalk-go/internal/domain"
)

func movie(id int, lang string, pop float64, genres ...int) domain.Movie {
	poster := fmt.Sprintf("/poster-%d.jpg", id)
	return domain.Movie{
		ID:               id,
		Title:            fmt.Sprintf("Movie %d", id),
		PosterPath:       &poster,
		OriginalLanguage: lang,
		GenreIDs:         genres,
		Popularity:       &pop,
	}
}

func noPoster(m domain.Movie) domain.Movie {
	m.PosterPath = nil
	return m
}

func ids(movies []domain.Movie) []int {
	out := make([]int, len(movies))
	for i, m := range movies {
		out[i] = m.ID
	}
	return out
}

// fakeCatalog answers batch requests from a table keyed by PageRequest.String.
type fakeCatalog struct {
	mu       sync.Mutex
	pages    map[string][]domain.Movie
	failures map[string]error
	failAll  error
	calls    atomic.Int32
	seen     []PageRequest
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		pages:    make(map[string][]domain.Movie),
		failures: make(map[string]error),
	}
}

func (f *fakeCatalog) FetchPage(_ context.Context, language, genreID string, page int) ([]domain.Movie, error) {
	return f.answer(DiscoverRequest(language, genreID, page))
}

func (f *fakeCatalog) FetchPopular(_ context.Context, page int) ([]domain.Movie, error) {
	return f.answer(PopularRequest(page))
}

func (f *fakeCatalog) answer(req PageRequest) ([]domain.Movie, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, req)

	if f.failAll != nil {
		return nil, f.failAll
	}
	if err, ok := f.failures[req.String()]; ok {
		return nil, err
	}
	return f.pages[req.String()], nil
}
