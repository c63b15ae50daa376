package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kapu/reeltalk-go/internal/adapter"
	"github.com/kapu/reeltalk-go/internal/domain"
	"github.com/kapu/reeltalk-go/internal/recommend"
)

func testMovie(id int, lang string, pop float64, genres ...int) domain.Movie {
	poster := fmt.Sprintf("/%d.jpg", id)
	return domain.Movie{
		ID:               id,
		Title:            fmt.Sprintf("Movie %d", id),
		PosterPath:       &poster,
		OriginalLanguage: lang,
		GenreIDs:         genres,
		Popularity:       &pop,
	}
}

type stubRecommender struct {
	movies []domain.Movie
	err    error
	got    *domain.UserPreference
}

func (s *stubRecommender) Recommend(_ context.Context, pref domain.UserPreference) ([]domain.Movie, error) {
	s.got = &pref
	return s.movies, s.err
}

type stubCandidates struct {
	movies []domain.Movie
	err    error
}

func (s *stubCandidates) Candidates(_ context.Context, pref domain.UserPreference) ([]domain.Movie, recommend.PoolStats, error) {
	if s.err != nil {
		return nil, recommend.PoolStats{}, s.err
	}
	if len(pref.Genres) == 0 {
		return nil, recommend.PoolStats{}, recommend.ErrNoGenres
	}
	return s.movies, recommend.PoolStats{Requests: 240}, nil
}

type stubCatalog struct {
	trending    []domain.Movie
	searched    string
	invalidated bool
}

func (s *stubCatalog) FetchTrending(context.Context) ([]domain.Movie, error) {
	return s.trending, nil
}

func (s *stubCatalog) Search(_ context.Context, query string, _ int) ([]domain.Movie, error) {
	s.searched = query
	return s.trending, nil
}

func (s *stubCatalog) Invalidate(context.Context) (int64, error) {
	s.invalidated = true
	return 3, nil
}

type stubUsers struct {
	me        *domain.User
	meErr     error
	completed *domain.OnboardingRequest
}

func (s *stubUsers) Me(context.Context) (*domain.User, error) {
	return s.me, s.meErr
}

func (s *stubUsers) CompleteOnboarding(_ context.Context, req domain.OnboardingRequest) (*domain.User, error) {
	s.completed = &req
	return &domain.User{Username: "tester", HasCompletedOnboarding: true}, nil
}

type harness struct {
	deps     *Dependencies
	rec      *stubRecommender
	cands    *stubCandidates
	catalog  *stubCatalog
	users    *stubUsers
	messages []string
	errs     []string
}

var errSent = errors.New("error sent")

func newHarness() *harness {
	h := &harness{
		rec:     &stubRecommender{},
		cands:   &stubCandidates{},
		catalog: &stubCatalog{},
		users:   &stubUsers{me: &domain.User{}},
	}
	h.deps = &Dependencies{
		Recommender: h.rec,
		Onboarding:  h.cands,
		Catalog:     h.catalog,
		Users:       h.users,
		Formatter:   adapter.NewResponseFormatter(false),
		PageSize:    2,
		SendMessage: func(message string) error {
			h.messages = append(h.messages, message)
			return nil
		},
		SendError: func(message string) error {
			h.errs = append(h.errs, message)
			return errSent
		},
		Logger: zap.NewNop(),
	}
	return h
}

func (h *harness) registry() *Registry {
	r := NewRegistry()
	r.Register(NewForYouCommand(h.deps))
	r.Register(NewTrendingCommand(h.deps))
	r.Register(NewOnboardCommand(h.deps))
	r.Register(NewCompleteCommand(h.deps))
	r.Register(NewSearchCommand(h.deps))
	r.Register(NewGenresCommand(h.deps))
	return r
}

func TestRegistry(t *testing.T) {
	r := newHarness().registry()

	if r.Count() != 6 {
		t.Fatalf("Count() = %d, want 6", r.Count())
	}
	want := "complete,foryou,genres,onboard,search,trending"
	if got := strings.Join(r.Names(), ","); got != want {
		t.Fatalf("Names() = %s", got)
	}
	if _, ok := r.Lookup("FORYOU"); !ok {
		t.Fatalf("lookup should be case-insensitive")
	}

	err := r.Execute(context.Background(), "nope", nil)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestForYouUsesExplicitPreference(t *testing.T) {
	h := newHarness()
	h.rec.movies = []domain.Movie{testMovie(1, "ko", 9, 18)}

	err := h.registry().Execute(context.Background(), "foryou", map[string]any{
		ParamLanguages: []string{"ko"},
		ParamGenres:    []string{"Drama"},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if h.rec.got == nil || h.rec.got.Genres[0] != "Drama" {
		t.Fatalf("recommender not called with explicit preference: %+v", h.rec.got)
	}
	if len(h.messages) != 1 || !strings.Contains(h.messages[0], "Recommended For You") {
		t.Fatalf("unexpected output: %v", h.messages)
	}
}

func TestForYouFallsBackToTrending(t *testing.T) {
	h := newHarness()
	h.rec.err = recommend.ErrNoPersonalizedResult
	for i := 1; i <= 9; i++ {
		h.catalog.trending = append(h.catalog.trending, testMovie(i, "en", float64(i)))
	}
	h.users.me = &domain.User{PreferredGenres: []string{"Drama"}}

	if err := h.registry().Execute(context.Background(), "foryou", map[string]any{}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	out := h.messages[0]
	if !strings.Contains(out, "Trending Movies") {
		t.Fatalf("expected trending header: %s", out)
	}
	if !strings.Contains(out, "6. Movie 6") || strings.Contains(out, "Movie 7") {
		t.Fatalf("trending should keep the first six entries: %s", out)
	}
}

func TestForYouWithoutGenresSkipsRanking(t *testing.T) {
	h := newHarness()
	h.catalog.trending = []domain.Movie{testMovie(1, "en", 1)}

	if err := h.registry().Execute(context.Background(), "foryou", nil); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if h.rec.got != nil {
		t.Fatalf("recommender should not run without genre preference")
	}
}

func TestForYouRefreshInvalidatesCache(t *testing.T) {
	h := newHarness()
	_ = h.registry().Execute(context.Background(), "foryou", map[string]any{ParamRefresh: true})
	if !h.catalog.invalidated {
		t.Fatalf("expected cache invalidation")
	}
}

func TestOnboardPaginates(t *testing.T) {
	h := newHarness()
	h.cands.movies = []domain.Movie{testMovie(1, "ko", 3, 18), testMovie(2, "ko", 2, 18), testMovie(3, "ko", 1, 18)}

	err := h.registry().Execute(context.Background(), "onboard", map[string]any{
		ParamLanguages: "ko",
		ParamGenres:    "Drama",
		ParamPage:      float64(2),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	out := h.messages[0]
	if !strings.Contains(out, "3. Movie 3") || strings.Contains(out, "Movie 1\n") {
		t.Fatalf("unexpected page: %s", out)
	}
	if !strings.Contains(out, "Page 2 of 2") {
		t.Fatalf("missing footer: %s", out)
	}
}

func TestOnboardRequiresGenre(t *testing.T) {
	h := newHarness()

	err := h.registry().Execute(context.Background(), "onboard", map[string]any{ParamLanguages: []string{"ko"}})
	if !errors.Is(err, errSent) {
		t.Fatalf("expected error message, got %v", err)
	}
	if len(h.errs) != 1 || !strings.Contains(h.errs[0], "genre") {
		t.Fatalf("unexpected error output: %v", h.errs)
	}
}

func TestCompleteSendsPicks(t *testing.T) {
	h := newHarness()
	h.cands.movies = []domain.Movie{testMovie(10, "ko", 3, 18), testMovie(11, "ko", 2, 35)}

	err := h.registry().Execute(context.Background(), "complete", map[string]any{
		ParamLanguages: []string{"ko"},
		ParamGenres:    []string{"Drama"},
		ParamPicks:     []int{11, 10, 11},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	req := h.users.completed
	if req == nil || len(req.FavoriteMovies) != 2 {
		t.Fatalf("unexpected onboarding request: %+v", req)
	}
	if req.FavoriteMovies[0].TMDBID != 11 || req.FavoriteMovies[1].TMDBID != 10 {
		t.Fatalf("picks must keep order: %+v", req.FavoriteMovies)
	}
	if !strings.Contains(h.messages[0], "@tester") {
		t.Fatalf("unexpected output: %v", h.messages)
	}
}

func TestCompleteRejectsUnknownAndTooManyPicks(t *testing.T) {
	h := newHarness()
	for i := 1; i <= 6; i++ {
		h.cands.movies = append(h.cands.movies, testMovie(i, "en", 1, 18))
	}
	params := func(picks ...int) map[string]any {
		return map[string]any{ParamGenres: []string{"Drama"}, ParamPicks: picks}
	}

	if err := h.registry().Execute(context.Background(), "complete", params(99)); !errors.Is(err, errSent) {
		t.Fatalf("unknown pick should fail, got %v", err)
	}
	if err := h.registry().Execute(context.Background(), "complete", params(1, 2, 3, 4, 5, 6)); !errors.Is(err, errSent) {
		t.Fatalf("six picks should fail, got %v", err)
	}
	if err := h.registry().Execute(context.Background(), "complete", params()); !errors.Is(err, errSent) {
		t.Fatalf("no picks should fail, got %v", err)
	}
	if h.users.completed != nil {
		t.Fatalf("nothing should have been submitted")
	}
}

func TestSearchJoinsQuery(t *testing.T) {
	h := newHarness()
	h.catalog.trending = []domain.Movie{testMovie(1, "en", 1)}

	err := h.registry().Execute(context.Background(), "search", map[string]any{ParamQuery: "the matrix"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if h.catalog.searched != "the matrix" {
		t.Fatalf("searched %q", h.catalog.searched)
	}

	if err := h.registry().Execute(context.Background(), "search", nil); !errors.Is(err, errSent) {
		t.Fatalf("empty query should fail, got %v", err)
	}
}

func TestParams(t *testing.T) {
	params := map[string]any{
		"a": []any{"ko", " en ", ""},
		"b": "Drama, Comedy",
		"c": []any{float64(3), 4},
		"d": "5,x,6",
		"e": "7",
	}

	if got := strings.Join(stringsParam(params, "a"), "|"); got != "ko|en" {
		t.Errorf("stringsParam(a) = %s", got)
	}
	if got := strings.Join(stringsParam(params, "b"), "|"); got != "Drama|Comedy" {
		t.Errorf("stringsParam(b) = %s", got)
	}
	if got := fmt.Sprint(intsParam(params, "c")); got != "[3 4]" {
		t.Errorf("intsParam(c) = %s", got)
	}
	if got := fmt.Sprint(intsParam(params, "d")); got != "[5 6]" {
		t.Errorf("intsParam(d) = %s", got)
	}
	if got := intParam(params, "e", 1); got != 7 {
		t.Errorf("intParam(e) = %d", got)
	}
	if got := intParam(params, "missing", 1); got != 1 {
		t.Errorf("intParam(missing) = %d", got)
	}
}
