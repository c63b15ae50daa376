package adapter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kapu/reeltalk-go/internal/constants"
	"github.com/kapu/reeltalk-go/internal/domain"
	"github.com/kapu/reeltalk-go/internal/recommend"
	"github.com/kapu/reeltalk-go/internal/util"
)

type movieView struct {
	ID         int
	Title      string
	Year       string
	Language   string
	Rating     string
	Popularity string
	Genres     string
	Poster     string
}

type movieListView struct {
	Header string
	Footer string
	Offset int
	Movies []movieView
}

// ResponseFormatter renders recommendation results as plain text.
type ResponseFormatter struct {
	showPosters bool
}

func NewResponseFormatter(showPosters bool) *ResponseFormatter {
	return &ResponseFormatter{showPosters: showPosters}
}

// FormatRecommendations renders the home feed list. personalized selects the
// "Recommended For You" header over "Trending Movies".
func (f *ResponseFormatter) FormatRecommendations(movies []domain.Movie, personalized bool) string {
	header := "🔥 Trending Movies"
	if personalized {
		header = "🎯 Recommended For You"
	}
	if len(movies) == 0 {
		return header + "\nNo movies to show right now."
	}
	return f.renderList(movieListView{
		Header: header,
		Offset: 1,
		Movies: f.views(movies),
	})
}

// FormatOnboardingPage renders one page of the onboarding picker.
func (f *ResponseFormatter) FormatOnboardingPage(page recommend.Page, pref domain.UserPreference, stats recommend.PoolStats) string {
	header := fmt.Sprintf("🎬 Pick up to %d favorites · %s · %s",
		constants.Onboarding.MaxPicks,
		f.languageLabel(pref.Languages),
		f.genreLabel(pref.Genres),
	)
	if page.Total == 0 {
		return header + "\nNo movies match your selection."
	}

	footer := fmt.Sprintf("Page %d of %d · %d movies", page.Number, page.TotalPages, page.Total)
	if stats.Requests > 0 {
		footer += fmt.Sprintf(" · %d/%d catalog requests ok", stats.Requests-stats.Failed, stats.Requests)
	}
	return f.renderList(movieListView{
		Header: header,
		Footer: footer,
		Offset: page.Start + 1,
		Movies: f.views(page.Movies),
	})
}

// FormatSearchResults renders a catalog search page.
func (f *ResponseFormatter) FormatSearchResults(query string, movies []domain.Movie, page int) string {
	header := fmt.Sprintf("🔎 Results for %q (page %d)", query, page)
	if len(movies) == 0 {
		return fmt.Sprintf("🔎 No movies found for %q.", query)
	}
	return f.renderList(movieListView{
		Header: header,
		Offset: 1,
		Movies: f.views(movies),
	})
}

// FormatOnboardingComplete confirms a finished onboarding.
func (f *ResponseFormatter) FormatOnboardingComplete(req domain.OnboardingRequest, user *domain.User) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("✅ Onboarding complete with %d favorite(s)\n", len(req.FavoriteMovies)))
	for _, fav := range req.FavoriteMovies {
		sb.WriteString(fmt.Sprintf("   • %s\n", util.TruncateString(fav.Title, constants.StringLimits.MovieTitle)))
	}
	sb.WriteString(fmt.Sprintf("Genres: %s\n", f.genreLabel(req.PreferredGenres)))
	sb.WriteString(fmt.Sprintf("Languages: %s", f.languageLabel(req.PreferredLanguages)))
	if user != nil && user.Username != "" {
		sb.WriteString(fmt.Sprintf("\nSaved for @%s", user.Username))
	}
	return sb.String()
}

// FormatGenres lists the selectable genres and languages.
func (f *ResponseFormatter) FormatGenres() string {
	out, err := executeFormatterTemplate("genres", map[string]any{
		"Genres":    domain.Genres(),
		"Languages": domain.Languages(),
	})
	if err != nil {
		return "❌ failed to render genre list: " + err.Error()
	}
	return out
}

func (f *ResponseFormatter) renderList(view movieListView) string {
	out, err := executeFormatterTemplate("movie_list", view)
	if err != nil {
		return "❌ failed to render movie list: " + err.Error()
	}
	return out
}

func (f *ResponseFormatter) views(movies []domain.Movie) []movieView {
	views := make([]movieView, 0, len(movies))
	for _, m := range movies {
		view := movieView{
			ID:         m.ID,
			Title:      util.TruncateString(m.Title, constants.StringLimits.MovieTitle),
			Year:       m.ReleaseYear(),
			Language:   m.OriginalLanguage,
			Rating:     m.RatingLabel(),
			Popularity: fmt.Sprintf("%.1f", m.PopularityScore()),
			Genres:     strings.Join(domain.GenreNames(m.GenreIDs), ", "),
		}
		if f.showPosters {
			view.Poster = m.PosterURL()
		}
		views = append(views, view)
	}
	return views
}

func (f *ResponseFormatter) languageLabel(codes []string) string {
	if len(codes) == 0 {
		return "any language"
	}
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		names = append(names, domain.LanguageName(code))
	}
	return strings.Join(names, ", ")
}

func (f *ResponseFormatter) genreLabel(genres []string) string {
	if len(genres) == 0 {
		return "any genre"
	}
	sorted := append([]string(nil), genres...)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}
