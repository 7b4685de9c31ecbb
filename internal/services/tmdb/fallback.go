package tmdb

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/amaumene/moviedeck/internal/models"
	"golang.org/x/text/cases"
)

// PageSize is the number of movies per fallback page
const PageSize = 20

// Fallback serves listings and details from an in-memory dataset
type Fallback struct {
	movies  []models.Movie
	details map[int]models.MovieDetails
}

// NewFallback creates a fallback over the given dataset
func NewFallback(movies []models.Movie, details map[int]models.MovieDetails) *Fallback {
	if details == nil {
		details = map[int]models.MovieDetails{}
	}
	return &Fallback{movies: movies, details: details}
}

// DefaultFallback returns the fallback backed by the seeded dataset
func DefaultFallback() *Fallback {
	return NewFallback(seedMovies, seedDetails)
}

// Size returns the number of movies in the dataset
func (f *Fallback) Size() int {
	return len(f.movies)
}

// Popular returns one page of the whole dataset
func (f *Fallback) Popular(page int) models.PageResult {
	return paginate(f.movies, page)
}

// Search returns one page of the movies whose title or overview contains query,
// compared case-insensitively
func (f *Fallback) Search(query string, page int) models.PageResult {
	return paginate(f.filter(query), page)
}

func (f *Fallback) filter(query string) []models.Movie {
	folder := cases.Fold()
	needle := folder.String(query)

	var matches []models.Movie
	for _, movie := range f.movies {
		if strings.Contains(folder.String(movie.Title), needle) ||
			strings.Contains(folder.String(movie.Overview), needle) {
			matches = append(matches, movie)
		}
	}
	return matches
}

// Details returns the curated record for id, or one synthesized from the summary
func (f *Fallback) Details(id int) (models.MovieDetails, error) {
	if details, ok := f.details[id]; ok {
		return details, nil
	}

	for _, movie := range f.movies {
		if movie.ID == id {
			return synthesizeDetails(movie), nil
		}
	}

	return models.MovieDetails{}, ErrNotFound
}

// Has reports whether id is part of the dataset
func (f *Fallback) Has(id int) bool {
	_, err := f.Details(id)
	return err == nil
}

func synthesizeDetails(movie models.Movie) models.MovieDetails {
	movie.GenreIDs = append([]int(nil), movie.GenreIDs...)
	return models.MovieDetails{
		Movie:               movie,
		Genres:              []models.Genre{{ID: 18, Name: "Drama"}},
		Runtime:             120,
		Status:              "Released",
		Tagline:             "A great movie experience",
		Homepage:            "",
		ProductionCompanies: []models.ProductionCompany{},
		ProductionCountries: []models.ProductionCountry{},
		SpokenLanguages: []models.SpokenLanguage{
			{EnglishName: "English", ISO6391: "en", Name: "English"},
		},
	}
}

// paginate slices movies into fixed windows of PageSize.
// total_pages is ceil(len/PageSize), so an empty dataset has zero pages.
func paginate(movies []models.Movie, page int) models.PageResult {
	total := len(movies)
	results := []models.Movie{}

	start := (page - 1) * PageSize
	if page >= 1 && start < total {
		end := min(start+PageSize, total)
		results = append(results, movies[start:end]...)
	}

	return models.PageResult{
		Page:         page,
		Results:      results,
		TotalPages:   (total + PageSize - 1) / PageSize,
		TotalResults: total,
	}
}

// Suggestion is a fallback title close to a query
type Suggestion struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Distance int    `json:"distance"`
}

// Suggest returns up to limit titles within a small edit distance of query.
// Each title word is compared as well, so "matrx" still finds "The Matrix".
func (f *Fallback) Suggest(query string, limit int) []Suggestion {
	folder := cases.Fold()
	needle := folder.String(strings.TrimSpace(query))
	if needle == "" || limit <= 0 {
		return []Suggestion{}
	}

	maxDistance := max(2, utf8.RuneCountInString(needle)/3)
	popularity := make(map[int]float64, len(f.movies))

	suggestions := []Suggestion{}
	for _, movie := range f.movies {
		title := folder.String(movie.Title)
		best := levenshtein.ComputeDistance(needle, title)
		for _, word := range strings.Fields(title) {
			if d := levenshtein.ComputeDistance(needle, word); d < best {
				best = d
			}
		}
		if best > maxDistance {
			continue
		}
		popularity[movie.ID] = movie.Popularity
		suggestions = append(suggestions, Suggestion{ID: movie.ID, Title: movie.Title, Distance: best})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Distance != suggestions[j].Distance {
			return suggestions[i].Distance < suggestions[j].Distance
		}
		return popularity[suggestions[i].ID] > popularity[suggestions[j].ID]
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}
