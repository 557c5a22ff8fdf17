package repository

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/author/model"
)

// RepositoryInterface defines data access for authors.
type RepositoryInterface interface {
	// Create inserts a new author and returns it with id and timestamps set.
	Create(ctx context.Context, author *model.Author) (*model.Author, error)

	// GetByID returns model.ErrAuthorNotFound when no row matches.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)

	// List returns every author ordered by family name, then first name.
	List(ctx context.Context) ([]model.Author, error)

	// Update replaces all editable fields of the author with author.ID.
	// Returns model.ErrAuthorNotFound when the row is gone.
	Update(ctx context.Context, author *model.Author) (*model.Author, error)

	// Delete removes the author only if no book references it. The check
	// and the delete share one transaction holding the author row lock.
	// Returns model.ErrAuthorHasBooks when books exist and
	// model.ErrAuthorNotFound when the row is gone.
	Delete(ctx context.Context, id uuid.UUID) error
}
