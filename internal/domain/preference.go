package domain

import "strings"

// UserPreference is the language/genre selection a recommendation runs against.
type UserPreference struct {
	Languages []string `json:"preferredLanguages"`
	Genres    []string `json:"preferredGenres"`
}

// NewUserPreference copies languages and genres into a preference.
func NewUserPreference(languages, genres []string) UserPreference {
	return UserPreference{
		Languages: append([]string(nil), languages...),
		Genres:    append([]string(nil), genres...),
	}
}

// Normalized trims language codes, drops blanks and repeats (first occurrence
// wins) and falls back to DefaultLanguages when nothing is left.
func (p UserPreference) Normalized() UserPreference {
	langs := UniqueLanguages(p.Languages)
	if len(langs) == 0 {
		langs = append([]string(nil), DefaultLanguages...)
	}
	return UserPreference{
		Languages: langs,
		Genres:    append([]string(nil), p.Genres...),
	}
}

// UniqueLanguages keeps selection order and drops blank or repeated codes.
func UniqueLanguages(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}
