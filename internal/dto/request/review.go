package request

type CreateReviewRequest struct {
	Text  string `json:"text" validate:"required,max=6000"`
	Score *int   `json:"score,omitempty" validate:"omitempty,min=1,max=10"`
}

type UpdateReviewRequest struct {
	Text  *string `json:"text,omitempty" validate:"omitempty,max=6000"`
	Score *int    `json:"score,omitempty" validate:"omitempty,min=1,max=10"`
}
