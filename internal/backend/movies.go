package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/kapu/reeltalk-go/internal/domain"
	"github.com/kapu/reeltalk-go/pkg/errors"
)

// Discover lists movies by original language and optional genre id.
// An empty genre means no genre constraint.
func (c *Client) Discover(ctx context.Context, language, genre string, page int) ([]domain.Movie, error) {
	params := url.Values{}
	params.Set("language", language)
	params.Set("genre", genre)
	params.Set("page", strconv.Itoa(page))
	return c.getMovies(ctx, "/movies/discover", params)
}

func (c *Client) Popular(ctx context.Context, page int) ([]domain.Movie, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return c.getMovies(ctx, "/movies/popular", params)
}

func (c *Client) Trending(ctx context.Context) ([]domain.Movie, error) {
	return c.getMovies(ctx, "/movies/trending", nil)
}

func (c *Client) Search(ctx context.Context, query string, page int) ([]domain.Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.NewValidationError("search query is required", "query", query)
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return c.getMovies(ctx, "/movies/search/"+url.PathEscape(query), params)
}

func (c *Client) getMovies(ctx context.Context, path string, params url.Values) ([]domain.Movie, error) {
	body, err := c.DoRequest(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return nil, err
	}
	return decodeMovies(body, path)
}

func decodeMovies(body []byte, path string) ([]domain.Movie, error) {
	var page domain.MoviePage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, errors.NewAPIError("failed to decode movie list", 502, map[string]any{
			"path": path,
		}).WithCause(err)
	}
	if page.Results == nil {
		return []domain.Movie{}, nil
	}
	return page.Results, nil
}
