package response

type BestMovieResponse struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	AverageRating float64 `json:"average_rating"`
	RoundedRating int     `json:"rounded_rating"`
	ReviewCount   int     `json:"review_count"`
}

type StatsResponse struct {
	TotalMovies  int                `json:"total_movies"`
	TotalReviews int                `json:"total_reviews"`
	BestMovie    *BestMovieResponse `json:"best_movie,omitempty"`
}
