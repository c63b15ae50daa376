package recommend

import (
	"errors"

	"github.com/kapu/reeltalk-go/internal/constants"
	"github.com/kapu/reeltalk-go/internal/domain"
)

var (
	ErrSelectionFull = errors.New("favorite selection is full")
	ErrNoPicks       = errors.New("pick at least one movie")
	ErrNoGenres      = errors.New("select at least one genre")
)

// Selection tracks the favorites picked during onboarding, in pick order.
type Selection struct {
	picks []domain.Movie
	max   int
}

func NewSelection() *Selection {
	return &Selection{max: constants.Onboarding.MaxPicks}
}

// Toggle adds m, or removes it if it was already picked. It reports whether m
// is selected afterwards.
func (s *Selection) Toggle(m domain.Movie) (bool, error) {
	for i, p := range s.picks {
		if p.ID == m.ID {
			s.picks = append(s.picks[:i], s.picks[i+1:]...)
			return false, nil
		}
	}
	if len(s.picks) >= s.max {
		return false, ErrSelectionFull
	}
	s.picks = append(s.picks, m)
	return true, nil
}

func (s *Selection) Contains(id int) bool {
	for _, p := range s.picks {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (s *Selection) Len() int {
	return len(s.picks)
}

func (s *Selection) Movies() []domain.Movie {
	out := make([]domain.Movie, len(s.picks))
	copy(out, s.picks)
	return out
}

// OnboardingRequest builds the completion payload. Without selected genres the
// genres of the picked movies are sent instead.
func (s *Selection) OnboardingRequest(pref domain.UserPreference) (domain.OnboardingRequest, error) {
	if len(s.picks) == 0 {
		return domain.OnboardingRequest{}, ErrNoPicks
	}

	favorites := make([]domain.FavoriteMovie, 0, len(s.picks))
	for _, m := range s.picks {
		favorites = append(favorites, domain.FavoriteMovie{
			TMDBID:     m.ID,
			Title:      m.Title,
			PosterPath: m.PosterPath,
		})
	}

	genres := append([]string(nil), pref.Genres...)
	if len(genres) == 0 {
		genres = pickedGenres(s.picks)
	}

	return domain.OnboardingRequest{
		FavoriteMovies:     favorites,
		PreferredGenres:    genres,
		PreferredLanguages: domain.UniqueLanguages(pref.Languages),
	}, nil
}

func pickedGenres(movies []domain.Movie) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, m := range movies {
		for _, name := range domain.GenreNames(m.GenreIDs) {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}
