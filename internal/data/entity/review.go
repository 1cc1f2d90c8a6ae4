package entity

import (
	"github.com/google/uuid"
)

// Review is an account's opinion on a title. Score is optional; at most one
// review may exist per (author, title), enforced by a database constraint.
type Review struct {
	BaseSimple
	TitleID  uuid.UUID `db:"title_id"`
	AuthorID uuid.UUID `db:"author_id"`
	Text     string    `db:"text"`
	Score    *int      `db:"score"` // 1-10 when present
}
