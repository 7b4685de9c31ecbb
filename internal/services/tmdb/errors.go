package tmdb

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a movie exists in neither the live API nor the fallback dataset
	ErrNotFound = errors.New("movie not found")
	// ErrInvalidPage is returned for page numbers below 1
	ErrInvalidPage = errors.New("page must be a positive integer")
)

// APIError is a non-2xx response from the TMDB API
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("TMDB API request failed with status %d: %s", e.StatusCode, e.Body)
}
