package tmdb

import "github.com/amaumene/moviedeck/internal/models"

// seedMovies is the fallback catalog served when the live API is unavailable
var seedMovies = []models.Movie{
	{
		ID:               1,
		Title:            "The Shawshank Redemption",
		Overview:         "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
		VoteAverage:      9.3,
		VoteCount:        2800000,
		ReleaseDate:      "1994-09-23",
		GenreIDs:         []int{18},
		Popularity:       150.5,
		OriginalLanguage: "en",
		OriginalTitle:    "The Shawshank Redemption",
	},
	{
		ID:               2,
		Title:            "The Godfather",
		Overview:         "The aging patriarch of an organized crime dynasty transfers control of his clandestine empire to his reluctant son.",
		VoteAverage:      9.2,
		VoteCount:        1900000,
		ReleaseDate:      "1972-03-24",
		GenreIDs:         []int{18, 80},
		Popularity:       120.3,
		OriginalLanguage: "en",
		OriginalTitle:    "The Godfather",
	},
	{
		ID:               3,
		Title:            "The Dark Knight",
		Overview:         "When the menace known as the Joker wreaks havoc and chaos on the people of Gotham, Batman must accept one of the greatest psychological and physical tests of his ability to fight injustice.",
		VoteAverage:      9.0,
		VoteCount:        2700000,
		ReleaseDate:      "2008-07-18",
		GenreIDs:         []int{28, 80, 18},
		Popularity:       140.7,
		OriginalLanguage: "en",
		OriginalTitle:    "The Dark Knight",
	},
	{
		ID:               4,
		Title:            "Pulp Fiction",
		Overview:         "The lives of two mob hitmen, a boxer, a gangster and his wife, and a pair of diner bandits intertwine in four tales of violence and redemption.",
		VoteAverage:      8.9,
		VoteCount:        2100000,
		ReleaseDate:      "1994-10-14",
		GenreIDs:         []int{18, 80},
		Popularity:       110.2,
		OriginalLanguage: "en",
		OriginalTitle:    "Pulp Fiction",
	},
	{
		ID:               5,
		Title:            "Forrest Gump",
		Overview:         "The presidencies of Kennedy and Johnson, the Vietnam War, the Watergate scandal and other historical events unfold from the perspective of an Alabama man with an IQ of 75.",
		VoteAverage:      8.8,
		VoteCount:        2300000,
		ReleaseDate:      "1994-07-06",
		GenreIDs:         []int{18, 10749},
		Popularity:       100.8,
		OriginalLanguage: "en",
		OriginalTitle:    "Forrest Gump",
	},
	{
		ID:               6,
		Title:            "Inception",
		Overview:         "A thief who steals corporate secrets through the use of dream-sharing technology is given the inverse task of planting an idea into the mind of a C.E.O.",
		VoteAverage:      8.8,
		VoteCount:        2400000,
		ReleaseDate:      "2010-07-16",
		GenreIDs:         []int{28, 80, 18, 53},
		Popularity:       130.4,
		OriginalLanguage: "en",
		OriginalTitle:    "Inception",
	},
	{
		ID:               7,
		Title:            "The Matrix",
		Overview:         "A computer hacker learns from mysterious rebels about the true nature of his reality and his role in the war against its controllers.",
		VoteAverage:      8.7,
		VoteCount:        2000000,
		ReleaseDate:      "1999-03-31",
		GenreIDs:         []int{28, 80},
		Popularity:       90.6,
		OriginalLanguage: "en",
		OriginalTitle:    "The Matrix",
	},
	{
		ID:               8,
		Title:            "Goodfellas",
		Overview:         "The story of Henry Hill and his life in the mob, covering his relationship with his wife Karen Hill and his mob partners.",
		VoteAverage:      8.7,
		VoteCount:        1300000,
		ReleaseDate:      "1990-09-21",
		GenreIDs:         []int{18, 80},
		Popularity:       85.3,
		OriginalLanguage: "en",
		OriginalTitle:    "Goodfellas",
	},
	{
		ID:               9,
		Title:            "The Silence of the Lambs",
		Overview:         "A young F.B.I. cadet must receive the help of an incarcerated and manipulative cannibal killer to help catch another serial killer.",
		VoteAverage:      8.6,
		VoteCount:        1600000,
		ReleaseDate:      "1991-02-14",
		GenreIDs:         []int{18, 80, 53, 9648},
		Popularity:       95.7,
		OriginalLanguage: "en",
		OriginalTitle:    "The Silence of the Lambs",
	},
	{
		ID:               10,
		Title:            "Schindler's List",
		Overview:         "In German-occupied Poland during World War II, industrialist Oskar Schindler gradually becomes concerned for his Jewish workforce after witnessing their persecution by the Nazis.",
		VoteAverage:      8.9,
		VoteCount:        1400000,
		ReleaseDate:      "1993-12-15",
		GenreIDs:         []int{18, 36, 10752},
		Popularity:       80.4,
		OriginalLanguage: "en",
		OriginalTitle:    "Schindler's List",
	},
	{
		ID:               11,
		Title:            "Fight Club",
		Overview:         "An insomniac office worker and a devil-may-care soap maker form an underground fight club that evolves into much more.",
		VoteAverage:      8.8,
		VoteCount:        2100000,
		ReleaseDate:      "1999-10-15",
		GenreIDs:         []int{18, 80},
		Popularity:       105.9,
		OriginalLanguage: "en",
		OriginalTitle:    "Fight Club",
	},
	{
		ID:               12,
		Title:            "The Lord of the Rings: The Return of the King",
		Overview:         "Gandalf and Aragorn lead the World of Men against Sauron's army to draw his gaze from Frodo and Sam as they approach Mount Doom with the One Ring.",
		VoteAverage:      8.9,
		VoteCount:        1800000,
		ReleaseDate:      "2003-12-17",
		GenreIDs:         []int{18, 12, 14},
		Popularity:       115.2,
		OriginalLanguage: "en",
		OriginalTitle:    "The Lord of the Rings: The Return of the King",
	},
	{
		ID:               13,
		Title:            "The Empire Strikes Back",
		Overview:         "After the Rebels are overpowered by the Empire, Luke Skywalker begins his Jedi training with Yoda, while his friends are pursued by Darth Vader.",
		VoteAverage:      8.7,
		VoteCount:        1300000,
		ReleaseDate:      "1980-05-21",
		GenreIDs:         []int{18, 12, 878},
		Popularity:       75.8,
		OriginalLanguage: "en",
		OriginalTitle:    "The Empire Strikes Back",
	},
	{
		ID:               14,
		Title:            "The Lord of the Rings: The Fellowship of the Ring",
		Overview:         "A meek Hobbit from the Shire and eight companions set out on a journey to destroy the powerful One Ring and save Middle-earth from the Dark Lord Sauron.",
		VoteAverage:      8.8,
		VoteCount:        1900000,
		ReleaseDate:      "2001-12-19",
		GenreIDs:         []int{18, 12, 14},
		Popularity:       110.6,
		OriginalLanguage: "en",
		OriginalTitle:    "The Lord of the Rings: The Fellowship of the Ring",
	},
	{
		ID:               15,
		Title:            "Interstellar",
		Overview:         "A team of explorers travel through a wormhole in space in an attempt to ensure humanity's survival.",
		VoteAverage:      8.6,
		VoteCount:        1900000,
		ReleaseDate:      "2014-11-07",
		GenreIDs:         []int{18, 12, 878},
		Popularity:       125.3,
		OriginalLanguage: "en",
		OriginalTitle:    "Interstellar",
	},
	{
		ID:               16,
		Title:            "Parasite",
		Overview:         "Greed and class discrimination threaten the newly formed symbiotic relationship between the wealthy Park family and the destitute Kim clan.",
		VoteAverage:      8.5,
		VoteCount:        800000,
		ReleaseDate:      "2019-05-30",
		GenreIDs:         []int{18, 53, 35},
		Popularity:       95.1,
		OriginalLanguage: "ko",
		OriginalTitle:    "기생충",
	},
	{
		ID:               17,
		Title:            "The Green Mile",
		Overview:         "The lives of guards on Death Row are affected by one of their charges: a black man accused of child murder and rape, yet who has a mysterious gift.",
		VoteAverage:      8.6,
		VoteCount:        1200000,
		ReleaseDate:      "1999-12-10",
		GenreIDs:         []int{18, 14},
		Popularity:       85.7,
		OriginalLanguage: "en",
		OriginalTitle:    "The Green Mile",
	},
	{
		ID:               18,
		Title:            "Se7en",
		Overview:         "Two detectives, a rookie and a veteran, hunt a serial killer who uses the seven deadly sins as his motives.",
		VoteAverage:      8.6,
		VoteCount:        1800000,
		ReleaseDate:      "1995-09-22",
		GenreIDs:         []int{18, 53, 80},
		Popularity:       90.4,
		OriginalLanguage: "en",
		OriginalTitle:    "Se7en",
	},
	{
		ID:               19,
		Title:            "The Departed",
		Overview:         "An undercover cop and a mole in the police attempt to identify each other while infiltrating an Irish gang in South Boston.",
		VoteAverage:      8.5,
		VoteCount:        1200000,
		ReleaseDate:      "2006-09-26",
		GenreIDs:         []int{18, 53, 80},
		Popularity:       88.9,
		OriginalLanguage: "en",
		OriginalTitle:    "The Departed",
	},
	{
		ID:               20,
		Title:            "Whiplash",
		Overview:         "A promising young drummer enrolls at a cut-throat music conservatory where his dreams of greatness are mentored by an instructor who will stop at nothing to realize a student's potential.",
		VoteAverage:      8.5,
		VoteCount:        900000,
		ReleaseDate:      "2014-10-10",
		GenreIDs:         []int{18},
		Popularity:       70.2,
		OriginalLanguage: "en",
		OriginalTitle:    "Whiplash",
	},
}

// seedDetails holds the hand-written detail records. Other seeded movies get
// a synthesized record.
var seedDetails = map[int]models.MovieDetails{
	1: {
		Movie:    seedMovies[0],
		Genres:   []models.Genre{{ID: 18, Name: "Drama"}},
		Runtime:  142,
		Status:   "Released",
		Tagline:  "Fear can hold you prisoner. Hope can set you free.",
		Homepage: "https://www.warnerbros.com/movies/shawshank-redemption",
		ProductionCompanies: []models.ProductionCompany{
			{ID: 1, Name: "Castle Rock Entertainment", OriginCountry: "US"},
		},
		ProductionCountries: []models.ProductionCountry{
			{ISO31661: "US", Name: "United States"},
		},
		SpokenLanguages: []models.SpokenLanguage{
			{EnglishName: "English", ISO6391: "en", Name: "English"},
		},
	},
	2: {
		Movie: seedMovies[1],
		Genres: []models.Genre{
			{ID: 18, Name: "Drama"},
			{ID: 80, Name: "Crime"},
		},
		Runtime:  175,
		Status:   "Released",
		Tagline:  "An offer you can't refuse.",
		Homepage: "https://www.paramount.com/movies/the-godfather",
		ProductionCompanies: []models.ProductionCompany{
			{ID: 2, Name: "Paramount Pictures", OriginCountry: "US"},
		},
		ProductionCountries: []models.ProductionCountry{
			{ISO31661: "US", Name: "United States"},
		},
		SpokenLanguages: []models.SpokenLanguage{
			{EnglishName: "English", ISO6391: "en", Name: "English"},
			{EnglishName: "Italian", ISO6391: "it", Name: "Italiano"},
		},
	},
}
