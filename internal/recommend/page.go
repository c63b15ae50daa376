package recommend

import (
	"github.com/kapu/reeltalk-go/internal/constants"
	"github.com/kapu/reeltalk-go/internal/domain"
)

// Page is one client-side page of an ordered result list.
type Page struct {
	Number     int
	TotalPages int
	Total      int
	// Start is the 0-based index of Movies[0] in the full list.
	Start  int
	Movies []domain.Movie
}

// Paginate slices movies into 1-based pages of perPage entries. Page numbers
// outside 1..TotalPages are clamped; an empty list yields page 1 of 0.
func Paginate(movies []domain.Movie, page, perPage int) Page {
	if perPage < 1 {
		perPage = constants.Onboarding.MoviesPerPage
	}

	total := len(movies)
	totalPages := (total + perPage - 1) / perPage

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := min((page-1)*perPage, total)
	end := min(start+perPage, total)

	return Page{
		Number:     page,
		TotalPages: totalPages,
		Total:      total,
		Start:      start,
		Movies:     movies[start:end],
	}
}
