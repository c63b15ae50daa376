package domain

// Genre is one entry of the catalog genre table.
type Genre struct {
	ID   int
	Name string
}

var genres = [...]Genre{
	{ID: 28, Name: "Action"},
	{ID: 12, Name: "Adventure"},
	{ID: 16, Name: "Animation"},
	{ID: 35, Name: "Comedy"},
	{ID: 80, Name: "Crime"},
	{ID: 99, Name: "Documentary"},
	{ID: 18, Name: "Drama"},
	{ID: 10751, Name: "Family"},
	{ID: 14, Name: "Fantasy"},
	{ID: 36, Name: "History"},
	{ID: 27, Name: "Horror"},
	{ID: 10402, Name: "Music"},
	{ID: 9648, Name: "Mystery"},
	{ID: 10749, Name: "Romance"},
	{ID: 878, Name: "Science Fiction"},
	{ID: 10770, Name: "TV Movie"},
	{ID: 53, Name: "Thriller"},
	{ID: 10752, Name: "War"},
	{ID: 37, Name: "Western"},
}

var (
	genreIDByName map[string]int
	genreNameByID map[int]string
)

func init() {
	genreIDByName = make(map[string]int, len(genres))
	genreNameByID = make(map[int]string, len(genres))
	for _, g := range genres {
		genreIDByName[g.Name] = g.ID
		genreNameByID[g.ID] = g.Name
	}
}

// Genres returns a copy of the genre table in display order.
func Genres() []Genre {
	out := make([]Genre, len(genres))
	copy(out, genres[:])
	return out
}

// GenreID maps a display name to its catalog id. Matching is exact.
func GenreID(name string) (int, bool) {
	id, ok := genreIDByName[name]
	return id, ok
}

func GenreName(id int) (string, bool) {
	name, ok := genreNameByID[id]
	return name, ok
}

// GenreIDs maps names to ids in input order, silently dropping unknown names.
func GenreIDs(names []string) []int {
	ids := make([]int, 0, len(names))
	for _, name := range names {
		if id, ok := GenreID(name); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// GenreNames maps ids to names in input order, dropping unknown ids.
func GenreNames(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := GenreName(id); ok {
			names = append(names, name)
		}
	}
	return names
}
