package response

import (
	"time"

	"movie-portal/internal/data/entity"
)

type MovieResponse struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Director    string        `json:"director"`
	ReleaseDate string        `json:"release_date"`
	GenreID     int64         `json:"genre_id"`
	Genre       string        `json:"genre"`
	Rating      float64       `json:"rating"`
	ReviewCount int           `json:"review_count"`
	Stars       StarsResponse `json:"stars"`
	IsNew       bool          `json:"is_new"`
	CreatedAt   time.Time     `json:"created_at"`
}

type MovieDetailResponse struct {
	MovieResponse
	Reviews      []ReviewResponse `json:"reviews"`
	ViewerReview *ReviewResponse  `json:"viewer_review,omitempty"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func MovieToResponse(movie *entity.Movie, rating float64, reviewCount int, now time.Time) MovieResponse {
	full, half, empty := StarBreakdown(rating)

	return MovieResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		Director:    movie.Director,
		ReleaseDate: movie.ReleaseDate.Format("2006-01-02"),
		GenreID:     movie.GenreID,
		Genre:       movie.GenreName,
		Rating:      rating,
		ReviewCount: reviewCount,
		Stars:       StarsResponse{Full: full, Half: half, Empty: empty},
		IsNew:       IsNewRelease(movie.ReleaseDate, now),
		CreatedAt:   movie.CreatedAt,
	}
}

func MovieToDetailResponse(movie *entity.Movie, rating float64, reviews []*entity.Review, viewerReview *entity.Review, now time.Time) MovieDetailResponse {
	detail := MovieDetailResponse{
		MovieResponse: MovieToResponse(movie, rating, len(reviews), now),
		Reviews:       ReviewsToResponse(reviews),
		UpdatedAt:     movie.UpdatedAt,
	}

	if viewerReview != nil {
		resp := ReviewToResponse(viewerReview)
		detail.ViewerReview = &resp
	}

	return detail
}
