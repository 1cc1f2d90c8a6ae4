package request

type CreateTitleRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Year        int      `json:"year" validate:"required"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=50"`
	Genre       []string `json:"genre,omitempty" validate:"omitempty,dive,max=50"`
}

type UpdateTitleRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Year        *int     `json:"year,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=50"`
	Genre       []string `json:"genre,omitempty" validate:"omitempty,dive,max=50"`
}

// TitleListFilter carries the supported query parameters for title listings.
type TitleListFilter struct {
	Category string
	Genre    string
	Name     string
	Year     *int
}
