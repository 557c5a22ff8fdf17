package repository

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/book/model"
)

// RepositoryInterface is the book reader used by other domains.
type RepositoryInterface interface {
	// FindByAuthor returns every book referencing authorID, projected to
	// id, title and summary. An author without books yields an empty slice.
	FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Book, error)
}
