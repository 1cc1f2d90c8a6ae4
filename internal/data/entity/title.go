package entity

import (
	"github.com/google/uuid"
)

// Title is a catalogued creative work. Its rating is always derived from
// review scores on read and never stored here.
type Title struct {
	Base
	Name        string     `db:"name"`
	Year        int        `db:"year"`
	Description *string    `db:"description"`
	CategoryID  *uuid.UUID `db:"category_id"`
}
