package domain

// User is the subset of the backend user profile the recommendation flows read.
type User struct {
	ID                     string   `json:"_id"`
	Username               string   `json:"username"`
	Role                   string   `json:"role,omitempty"`
	PreferredGenres        []string `json:"preferredGenres,omitempty"`
	PreferredLanguages     []string `json:"preferredLanguages,omitempty"`
	HasCompletedOnboarding bool     `json:"hasCompletedOnboarding"`
}

// Preference extracts the stored recommendation preference.
func (u *User) Preference() UserPreference {
	if u == nil {
		return UserPreference{}
	}
	return NewUserPreference(u.PreferredLanguages, u.PreferredGenres)
}

// HasGenrePreference mirrors the home feed rule: personalization needs genres.
func (u *User) HasGenrePreference() bool {
	return u != nil && len(u.PreferredGenres) > 0
}

// FavoriteMovie is a movie picked during onboarding.
type FavoriteMovie struct {
	TMDBID     int     `json:"tmdbId"`
	Title      string  `json:"title"`
	PosterPath *string `json:"posterPath,omitempty"`
}

// OnboardingRequest is the payload that completes onboarding.
type OnboardingRequest struct {
	FavoriteMovies     []FavoriteMovie `json:"favoriteMovies"`
	PreferredGenres    []string        `json:"preferredGenres"`
	PreferredLanguages []string        `json:"preferredLanguages"`
}
