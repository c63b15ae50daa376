package domain

import (
	"fmt"
	"strings"
)

// PosterBaseURL is the image CDN prefix for catalog poster paths.
const PosterBaseURL = "https://image.tmdb.org/t/p/w500"

// Movie is a catalog record as returned by the movie discover/search endpoints.
// Optional fields are pointers so that "absent" and "zero" stay distinguishable.
type Movie struct {
	ID               int      `json:"id"`
	Title            string   `json:"title"`
	PosterPath       *string  `json:"poster_path,omitempty"`
	OriginalLanguage string   `json:"original_language"`
	GenreIDs         []int    `json:"genre_ids,omitempty"`
	Popularity       *float64 `json:"popularity,omitempty"`
	VoteAverage      *float64 `json:"vote_average,omitempty"`
	ReleaseDate      string   `json:"release_date,omitempty"`
	Overview         string   `json:"overview,omitempty"`
}

// HasPoster reports whether the movie can be shown in a result list.
func (m Movie) HasPoster() bool {
	return m.PosterPath != nil && strings.TrimSpace(*m.PosterPath) != ""
}

// PopularityScore returns the ranking key; absent popularity ranks as 0.
func (m Movie) PopularityScore() float64 {
	if m.Popularity == nil {
		return 0
	}
	return *m.Popularity
}

// RatingLabel formats the vote average for display.
func (m Movie) RatingLabel() string {
	if m.VoteAverage == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", *m.VoteAverage)
}

func (m Movie) PosterURL() string {
	if !m.HasPoster() {
		return ""
	}
	return PosterBaseURL + *m.PosterPath
}

// ReleaseYear returns the first four characters of the release date, if any.
func (m Movie) ReleaseYear() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

// HasAnyGenre reports whether the movie carries at least one of ids.
func (m Movie) HasAnyGenre(ids map[int]struct{}) bool {
	for _, id := range m.GenreIDs {
		if _, ok := ids[id]; ok {
			return true
		}
	}
	return false
}

// MoviePage is the envelope returned by the movie list endpoints.
type MoviePage struct {
	Page         int     `json:"page,omitempty"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages,omitempty"`
	TotalResults int     `json:"total_results,omitempty"`
}
