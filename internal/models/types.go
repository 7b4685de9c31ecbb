package models

// Source tells which path served a gateway call
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// Movie is a movie summary as returned by list and search endpoints
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	PosterPath       *string `json:"poster_path"`
	BackdropPath     *string `json:"backdrop_path"`
	Overview         string  `json:"overview"`
	VoteAverage      float64 `json:"vote_average"` // 0-10
	VoteCount        int     `json:"vote_count"`
	ReleaseDate      string  `json:"release_date"` // YYYY-MM-DD, may be empty
	GenreIDs         []int   `json:"genre_ids"`
	Popularity       float64 `json:"popularity"`
	Adult            bool    `json:"adult"`
	OriginalLanguage string  `json:"original_language"`
	OriginalTitle    string  `json:"original_title"`
}

// Genre is a TMDB genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductionCompany is a company credited on a movie
type ProductionCompany struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	LogoPath      *string `json:"logo_path"`
	OriginCountry string  `json:"origin_country"`
}

// ProductionCountry is identified by its ISO 3166-1 code
type ProductionCountry struct {
	ISO31661 string `json:"iso_3166_1"`
	Name     string `json:"name"`
}

// SpokenLanguage is identified by its ISO 639-1 code
type SpokenLanguage struct {
	EnglishName string `json:"english_name"`
	ISO6391     string `json:"iso_639_1"`
	Name        string `json:"name"`
}

// MovieDetails is the full record for a single movie
type MovieDetails struct {
	Movie
	Runtime             int                 `json:"runtime"` // minutes
	Status              string              `json:"status"`  // e.g. "Released"
	Tagline             string              `json:"tagline"`
	Homepage            string              `json:"homepage"`
	Genres              []Genre             `json:"genres"`
	ProductionCompanies []ProductionCompany `json:"production_companies"`
	ProductionCountries []ProductionCountry `json:"production_countries"`
	SpokenLanguages     []SpokenLanguage    `json:"spoken_languages"`
}

// PageResult is one page of a paginated listing
type PageResult struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}
