package domain

// Language is a selectable original-language filter.
type Language struct {
	Code string
	Name string
}

var languages = [...]Language{
	{Code: "en", Name: "English"},
	{Code: "es", Name: "Spanish"},
	{Code: "fr", Name: "French"},
	{Code: "de", Name: "German"},
	{Code: "it", Name: "Italian"},
	{Code: "ja", Name: "Japanese"},
	{Code: "ko", Name: "Korean"},
	{Code: "zh", Name: "Chinese"},
	{Code: "hi", Name: "Hindi"},
	{Code: "pt", Name: "Portuguese"},
}

// DefaultLanguages is used when a user has no language preference.
var DefaultLanguages = []string{"en"}

func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages[:])
	return out
}

// LanguageName returns the display name for code, or code itself when unknown.
func LanguageName(code string) string {
	for _, l := range languages {
		if l.Code == code {
			return l.Name
		}
	}
	return code
}
