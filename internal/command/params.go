package command

import (
	"strconv"
	"strings"

	"github.com/kapu/reeltalk-go/internal/domain"
)

// Parameter keys shared by the CLI driver and the handlers.
const (
	ParamLanguages = "languages"
	ParamGenres    = "genres"
	ParamPage      = "page"
	ParamPicks     = "picks"
	ParamQuery     = "query"
	ParamRefresh   = "refresh"
)

func stringParam(params map[string]any, key string) string {
	switch v := params[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case []string:
		return strings.TrimSpace(strings.Join(v, " "))
	}
	return ""
}

func intParam(params map[string]any, key string, defaultValue int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return defaultValue
}

func boolParam(params map[string]any, key string) bool {
	v, ok := params[key].(bool)
	return ok && v
}

// stringsParam accepts a slice or a comma separated string.
func stringsParam(params map[string]any, key string) []string {
	var raw []string
	switch v := params[key].(type) {
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	case string:
		raw = strings.Split(v, ",")
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func intsParam(params map[string]any, key string) []int {
	switch v := params[key].(type) {
	case []int:
		return append([]int(nil), v...)
	case []any:
		out := make([]int, 0, len(v))
		for _, item := range v {
			switch n := item.(type) {
			case float64:
				out = append(out, int(n))
			case int:
				out = append(out, n)
			}
		}
		return out
	}

	out := make([]int, 0)
	for _, s := range stringsParam(params, key) {
		if n, err := strconv.Atoi(s); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// preferenceParam reports whether the caller passed an explicit selection.
func preferenceParam(params map[string]any) (domain.UserPreference, bool) {
	langs := stringsParam(params, ParamLanguages)
	genres := stringsParam(params, ParamGenres)
	if len(langs) == 0 && len(genres) == 0 {
		return domain.UserPreference{}, false
	}
	return domain.NewUserPreference(langs, genres), true
}
