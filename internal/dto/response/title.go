package response

import (
	"github.com/gras5/api-yamdb/internal/data/entity"
)

// TitleResponse carries the derived rating: nil means the title has no scored
// reviews yet and serializes as JSON null.
type TitleResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *int              `json:"rating"`
	Description *string           `json:"description,omitempty"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

// Helper converter
func TitleToResponse(title *entity.Title, rating *int, genres []*entity.Genre, category *entity.Category) TitleResponse {
	resp := TitleResponse{
		ID:          title.ID.String(),
		Name:        title.Name,
		Year:        title.Year,
		Rating:      rating,
		Description: title.Description,
		Genre:       make([]GenreResponse, 0, len(genres)),
	}

	for _, genre := range genres {
		resp.Genre = append(resp.Genre, GenreToResponse(genre))
	}

	if category != nil {
		c := CategoryToResponse(category)
		resp.Category = &c
	}

	return resp
}
