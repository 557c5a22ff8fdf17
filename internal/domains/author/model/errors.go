package model

import (
	"fmt"

	bookModel "library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared"
)

var (
	// Business Rule Errors
	ErrAuthorNotFound = fmt.Errorf("author %w", shared.ErrNotFound)
	ErrAuthorHasBooks = fmt.Errorf("cannot delete author with linked books: %w", shared.ErrConflict)
)

// DeleteBlockedError is returned when a delete is refused because books
// still reference the author. It carries what the confirmation page needs.
type DeleteBlockedError struct {
	Author *Author
	Books  []bookModel.Book
}

func (e *DeleteBlockedError) Error() string {
	return fmt.Sprintf("author %s has %d linked books", e.Author.ID, len(e.Books))
}

func (e *DeleteBlockedError) Unwrap() error {
	return ErrAuthorHasBooks
}
