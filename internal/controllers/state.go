// Package controllers holds the per-view state of the catalog: the popular
// and search listing, a single movie's details and the favorites page.
//
// Every controller follows the same cycle, idle -> loading -> ready|error,
// and re-enters loading whenever its parameters change. A fetch is stamped
// with a generation number when it starts; when the response arrives the
// stamp is compared to the controller's current generation and a mismatch
// means the response is dropped.
package controllers

import (
	"context"
	"errors"

	"github.com/amaumene/moviedeck/internal/models"
	"github.com/amaumene/moviedeck/internal/services/tmdb"
)

// State of a controller
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// ErrSuperseded is returned by a fetch whose response arrived after a newer
// fetch was started on the same controller. The response was not applied.
var ErrSuperseded = errors.New("superseded by a newer request")

// NotFoundMessage is shown by the detail and favorites views when a movie
// cannot be resolved
const NotFoundMessage = "Movie not found"

// Catalog is the part of the metadata gateway the controllers use
type Catalog interface {
	ListPopular(ctx context.Context, page int) (tmdb.Result[models.PageResult], error)
	Search(ctx context.Context, query string, page int) (tmdb.Result[models.PageResult], error)
	GetDetails(ctx context.Context, id int) (tmdb.Result[models.MovieDetails], error)
	ImageURL(path *string, size string) string
	Suggest(query string, limit int) []tmdb.Suggestion
}

// Favorites is the part of the favorites store the controllers use
type Favorites interface {
	Load() []int
	Contains(id int) bool
	Toggle(id int) []int
	Remove(id int) []int
}

// MovieCard is a listed movie merged with its favorite flag
type MovieCard struct {
	models.Movie
	Favorite  bool   `json:"favorite"`
	PosterURL string `json:"poster_url"`
}

func newCards(catalog Catalog, movies []models.Movie, favorites []int) []MovieCard {
	set := make(map[int]struct{}, len(favorites))
	for _, id := range favorites {
		set[id] = struct{}{}
	}

	cards := make([]MovieCard, 0, len(movies))
	for _, movie := range movies {
		_, favorite := set[movie.ID]
		cards = append(cards, MovieCard{
			Movie:     movie,
			Favorite:  favorite,
			PosterURL: catalog.ImageURL(movie.PosterPath, tmdb.DefaultImageSize),
		})
	}
	return cards
}
