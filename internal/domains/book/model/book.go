package model

import (
	"github.com/google/uuid"
)

// Book is read-only from the catalog's author pages. Only the columns those
// pages display are loaded.
type Book struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Title    string    `json:"title" db:"title"`
	Summary  string    `json:"summary" db:"summary"`
	AuthorID uuid.UUID `json:"author_id" db:"author_id"`
}

// URL is the canonical detail path of the book.
func (b Book) URL() string {
	return "/books/" + b.ID.String()
}
