package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/repository"
	bookModel "library-catalog/internal/domains/book/model"
	bookRepo "library-catalog/internal/domains/book/repository"
)

type authorService struct {
	repo  repository.RepositoryInterface
	books bookRepo.RepositoryInterface
}

func NewAuthorService(repo repository.RepositoryInterface, books bookRepo.RepositoryInterface) ServiceInterface {
	return &authorService{
		repo:  repo,
		books: books,
	}
}

func (s *authorService) List(ctx context.Context) ([]model.Author, error) {
	return s.repo.List(ctx)
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	if id == uuid.Nil {
		return nil, model.ErrAuthorNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) GetWithBooks(ctx context.Context, id uuid.UUID) (*model.Author, []bookModel.Book, error) {
	if id == uuid.Nil {
		return nil, nil, model.ErrAuthorNotFound
	}

	var (
		author *model.Author
		books  []bookModel.Book
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := s.repo.GetByID(gctx, id)
		if err != nil {
			return err
		}
		author = a
		return nil
	})
	g.Go(func() error {
		b, err := s.books.FindByAuthor(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to load books for author: %w", err)
		}
		books = b
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return author, books, nil
}

func (s *authorService) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, err
	}

	log.Info().Str("author_id", created.ID.String()).Msg("Author created")
	return created, nil
}

func (s *authorService) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	if a.ID == uuid.Nil {
		return nil, model.ErrAuthorNotFound
	}

	updated, err := s.repo.Update(ctx, a)
	if err != nil {
		return nil, err
	}

	log.Info().Str("author_id", updated.ID.String()).Msg("Author updated")
	return updated, nil
}

func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	a, books, err := s.GetWithBooks(ctx, id)
	if err != nil {
		return err
	}
	if len(books) > 0 {
		return &model.DeleteBlockedError{Author: a, Books: books}
	}

	err = s.repo.Delete(ctx, id)
	if errors.Is(err, model.ErrAuthorHasBooks) {
		// A book was linked after the check above; reload for the
		// confirmation page.
		a, books, ferr := s.GetWithBooks(ctx, id)
		if ferr != nil {
			return ferr
		}
		return &model.DeleteBlockedError{Author: a, Books: books}
	}
	if err != nil {
		return err
	}

	log.Info().Str("author_id", id.String()).Msg("Author deleted")
	return nil
}
