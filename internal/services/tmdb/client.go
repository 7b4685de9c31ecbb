package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/amaumene/moviedeck/internal/config"
	"github.com/amaumene/moviedeck/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Client performs direct HTTP calls against the TMDB v3 API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewClient creates a new TMDB client
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	limit := rate.Inf
	burst := 1
	if cfg.TMDBRateLimit > 0 {
		limit = rate.Limit(cfg.TMDBRateLimit)
		burst = max(1, int(cfg.TMDBRateLimit))
	}

	return &Client{
		baseURL: cfg.TMDBBaseURL,
		apiKey:  cfg.TMDBAPIKey,
		httpClient: &http.Client{
			Timeout: cfg.TMDBTimeout,
		},
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

// Popular fetches one page of /movie/popular
func (c *Client) Popular(ctx context.Context, page int) (*models.PageResult, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var result models.PageResult
	if err := c.doRequest(ctx, "/movie/popular", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Search fetches one page of /search/movie
func (c *Client) Search(ctx context.Context, query string, page int) (*models.PageResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))

	var result models.PageResult
	if err := c.doRequest(ctx, "/search/movie", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Details fetches /movie/{id}
func (c *Client) Details(ctx context.Context, id int) (*models.MovieDetails, error) {
	var result models.MovieDetails
	if err := c.doRequest(ctx, "/movie/"+strconv.Itoa(id), url.Values{}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// doRequest performs a GET request and decodes the JSON body into result.
// The API key travels as the api_key query parameter.
func (c *Client) doRequest(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	params.Set("api_key", c.apiKey)
	fullURL := c.baseURL + path + "?" + params.Encode()

	c.logger.WithFields(logrus.Fields{
		"path":  path,
		"query": params.Get("query"),
		"page":  params.Get("page"),
	}).Debug("Making TMDB API request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "moviedeck/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("TMDB request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
