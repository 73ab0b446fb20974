package request

type ReviewRequest struct {
	MovieID int64   `json:"movie_id" validate:"required,min=1"`
	Rating  int     `json:"rating" validate:"required,min=1,max=10"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=500"`
}

type ReviewUpdateRequest struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=10"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=500"`
}
