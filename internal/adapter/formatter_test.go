package adapter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kapu/reeltalk-go/internal/domain"
	"github.com/kapu/reeltalk-go/internal/recommend"
)

func testMovie(id int, title string) domain.Movie {
	poster := "/poster.jpg"
	pop := 42.0
	vote := 8.1
	return domain.Movie{
		ID:               id,
		Title:            title,
		PosterPath:       &poster,
		OriginalLanguage: "ko",
		GenreIDs:         []int{18, 53},
		Popularity:       &pop,
		VoteAverage:      &vote,
		ReleaseDate:      "2019-05-30",
	}
}

func TestFormatRecommendations(t *testing.T) {
	f := NewResponseFormatter(true)

	out := f.FormatRecommendations([]domain.Movie{testMovie(496243, "Parasite")}, true)

	assert.True(t, strings.HasPrefix(out, "🎯 Recommended For You"))
	assert.Contains(t, out, "1. Parasite (2019) [ko]")
	assert.Contains(t, out, "★ 8.1 · popularity 42.0 · Drama, Thriller")
	assert.Contains(t, out, "id 496243 · https://image.tmdb.org/t/p/w500/poster.jpg")

	trending := f.FormatRecommendations(nil, false)
	assert.Contains(t, trending, "Trending Movies")
	assert.Contains(t, trending, "No movies to show")
}

func TestFormatOnboardingPageNumbersFromStart(t *testing.T) {
	movies := make([]domain.Movie, 30)
	for i := range movies {
		movies[i] = testMovie(i+1, "Movie")
	}
	page := recommend.Paginate(movies, 2, 24)

	out := NewResponseFormatter(false).FormatOnboardingPage(page,
		domain.NewUserPreference([]string{"ko", "en"}, []string{"Drama"}),
		recommend.PoolStats{Requests: 240, Failed: 3})

	assert.Contains(t, out, "Korean, English")
	assert.Contains(t, out, "\n25. Movie")
	assert.Contains(t, out, "\n30. Movie")
	assert.NotContains(t, out, "https://")
	assert.Contains(t, out, "Page 2 of 2 · 30 movies · 237/240 catalog requests ok")
}

func TestFormatTruncatesLongTitles(t *testing.T) {
	long := strings.Repeat("가", 80)
	out := NewResponseFormatter(false).FormatRecommendations([]domain.Movie{testMovie(1, long)}, true)

	assert.Contains(t, out, strings.Repeat("가", 60)+"...")
	assert.NotContains(t, out, strings.Repeat("가", 61))
}

func TestFormatGenres(t *testing.T) {
	out := NewResponseFormatter(false).FormatGenres()

	assert.Contains(t, out, "Science Fiction")
	assert.Contains(t, out, "10770")
	assert.Contains(t, out, "hi   Hindi")
}

func TestFormatOnboardingComplete(t *testing.T) {
	req := domain.OnboardingRequest{
		FavoriteMovies:     []domain.FavoriteMovie{{TMDBID: 1, Title: "Parasite"}},
		PreferredGenres:    []string{"Thriller", "Drama"},
		PreferredLanguages: []string{"ko"},
	}

	out := NewResponseFormatter(false).FormatOnboardingComplete(req, &domain.User{Username: "mina"})

	assert.Contains(t, out, "1 favorite(s)")
	assert.Contains(t, out, "• Parasite")
	assert.Contains(t, out, "Genres: Drama, Thriller")
	assert.Contains(t, out, "Languages: Korean")
	assert.Contains(t, out, "@mina")
}
