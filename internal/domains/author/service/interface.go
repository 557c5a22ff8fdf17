package service

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/author/model"
	bookModel "library-catalog/internal/domains/book/model"
)

// ServiceInterface defines the author use cases behind the catalog pages.
type ServiceInterface interface {
	// List returns all authors ordered by family name.
	List(ctx context.Context) ([]model.Author, error)

	// GetByID returns model.ErrAuthorNotFound for unknown or nil ids.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)

	// GetWithBooks loads the author and the books referencing it
	// concurrently.
	GetWithBooks(ctx context.Context, id uuid.UUID) (*model.Author, []bookModel.Book, error)

	Create(ctx context.Context, author *model.Author) (*model.Author, error)

	// Update replaces every editable field of the author with author.ID.
	Update(ctx context.Context, author *model.Author) (*model.Author, error)

	// Delete removes an author with no books. A refused delete returns
	// *model.DeleteBlockedError.
	Delete(ctx context.Context, id uuid.UUID) error
}
