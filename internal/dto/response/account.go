package response

import (
	"time"

	"github.com/gras5/api-yamdb/internal/data/entity"
)

type AccountResponse struct {
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FirstName *string     `json:"first_name,omitempty"`
	LastName  *string     `json:"last_name,omitempty"`
	Bio       *string     `json:"bio,omitempty"`
	Role      entity.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// Helper converter
func AccountToResponse(account *entity.Account) AccountResponse {
	return AccountResponse{
		Username:  account.Username,
		Email:     account.Email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Bio:       account.Bio,
		Role:      account.Role,
		CreatedAt: account.CreatedAt,
	}
}
