package response

import (
	"time"

	"github.com/gras5/api-yamdb/internal/data/entity"
)

type ReviewResponse struct {
	ID      string    `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   *int      `json:"score,omitempty"`
	PubDate time.Time `json:"pub_date"`
}

// Helper converter
func ReviewToResponse(review *entity.Review, authorUsername string) ReviewResponse {
	return ReviewResponse{
		ID:      review.ID.String(),
		Text:    review.Text,
		Author:  authorUsername,
		Score:   review.Score,
		PubDate: review.CreatedAt,
	}
}
