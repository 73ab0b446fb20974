package request

import "movie-portal/internal/data/entity"

type MovieRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=100"`
	Director    string `json:"director" validate:"required,min=1,max=100"`
	ReleaseDate string `json:"release_date" validate:"required,datetime=2006-01-02"`
	GenreID     int64  `json:"genre_id" validate:"required,min=1"`
}

type MovieUpdateRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=2,max=100"`
	Director    *string `json:"director,omitempty" validate:"omitempty,min=1,max=100"`
	ReleaseDate *string `json:"release_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	GenreID     *int64  `json:"genre_id,omitempty" validate:"omitempty,min=1"`
}

type MovieSearchRequest struct {
	Query   string `json:"query"`
	GenreID *int64 `json:"genre_id,omitempty" validate:"omitempty,min=1"`
	Sort    string `json:"sort" validate:"omitempty,oneof=newest date_desc title"`
}

// SortOrder maps the query parameter onto the catalog sort, defaulting to
// newest-first when absent.
func (r MovieSearchRequest) SortOrder() entity.SortOrder {
	switch r.Sort {
	case string(entity.SortDateDesc):
		return entity.SortDateDesc
	case string(entity.SortTitle):
		return entity.SortTitle
	default:
		return entity.SortNewest
	}
}
