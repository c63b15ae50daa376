package recommend

import (
	"cmp"
	"slices"

	"github.com/kapu/reeltalk-go/internal/domain"
)

// FilterByPreferences orders a candidate pool for the onboarding picker.
//
// Candidates without a poster are dropped and the pool is deduplicated by id
// (first occurrence wins). The language filter is a membership test over the
// selected codes; the genre filter keeps movies sharing at least one selected
// genre. A single selected language sorts by popularity; several languages are
// interleaved round-robin in selection order. When the filters leave nothing,
// the deduplicated poster pool is returned unfiltered.
func FilterByPreferences(candidates []domain.Movie, languages, genres []string) []domain.Movie {
	pool := UniqueWithPosters(candidates)
	langs := domain.UniqueLanguages(languages)

	filtered := pool
	if len(langs) > 0 {
		filtered = filterByLanguage(filtered, langs)
	}
	if ids := genreSet(genres); len(ids) > 0 {
		filtered = filterByGenre(filtered, ids)
	}

	var ranked []domain.Movie
	if len(langs) > 1 {
		ranked = interleaveByLanguage(filtered, langs)
	} else {
		ranked = SortByPopularity(filtered)
	}

	if len(ranked) == 0 {
		return pool
	}
	return ranked
}

// UniqueWithPosters drops poster-less movies, then keeps the first movie seen
// for each id. Input order is preserved and the input is not modified.
func UniqueWithPosters(movies []domain.Movie) []domain.Movie {
	seen := make(map[int]struct{}, len(movies))
	out := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if !m.HasPoster() {
			continue
		}
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	return out
}

// SortByPopularity returns a copy sorted by popularity, highest first. Ties
// keep their input order.
func SortByPopularity(movies []domain.Movie) []domain.Movie {
	out := slices.Clone(movies)
	slices.SortStableFunc(out, func(a, b domain.Movie) int {
		return cmp.Compare(b.PopularityScore(), a.PopularityScore())
	})
	return out
}

func filterByLanguage(movies []domain.Movie, langs []string) []domain.Movie {
	out := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if slices.Contains(langs, m.OriginalLanguage) {
			out = append(out, m)
		}
	}
	return out
}

func filterByGenre(movies []domain.Movie, ids map[int]struct{}) []domain.Movie {
	out := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if m.HasAnyGenre(ids) {
			out = append(out, m)
		}
	}
	return out
}

func genreSet(names []string) map[int]struct{} {
	ids := domain.GenreIDs(names)
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// interleaveByLanguage partitions movies per language, sorts each partition
// by popularity and merges them round-robin in langs order. Exhausted
// partitions are skipped, so nothing is dropped when partitions differ in size.
func interleaveByLanguage(movies []domain.Movie, langs []string) []domain.Movie {
	slot := make(map[string]int, len(langs))
	for i, lang := range langs {
		slot[lang] = i
	}

	partitions := make([][]domain.Movie, len(langs))
	for _, m := range movies {
		if i, ok := slot[m.OriginalLanguage]; ok {
			partitions[i] = append(partitions[i], m)
		}
	}

	longest := 0
	for i := range partitions {
		partitions[i] = SortByPopularity(partitions[i])
		longest = max(longest, len(partitions[i]))
	}

	out := make([]domain.Movie, 0, len(movies))
	for row := 0; row < longest; row++ {
		for _, part := range partitions {
			if row < len(part) {
				out = append(out, part[row])
			}
		}
	}
	return out
}
