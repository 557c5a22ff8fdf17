package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/author/model"
	"library-catalog/pkg/database"
)

const foreignKeyViolation = "23503"

// postgresRepository implements RepositoryInterface over pgxpool.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const authorColumns = `id, first_name, family_name, date_of_birth, date_of_death, created_at, updated_at`

func scanAuthor(row pgx.Row, a *model.Author) error {
	return row.Scan(
		&a.ID,
		&a.FirstName,
		&a.FamilyName,
		&a.DateOfBirth,
		&a.DateOfDeath,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
		INSERT INTO authors (first_name, family_name, date_of_birth, date_of_death)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + authorColumns

	var created model.Author
	err := scanAuthor(r.pool.QueryRow(ctx, query,
		a.FirstName,
		a.FamilyName,
		a.DateOfBirth,
		a.DateOfDeath,
	), &created)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	var a model.Author
	if err := scanAuthor(r.pool.QueryRow(ctx, query, id), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	return &a, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors ORDER BY family_name ASC, first_name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	authors := []model.Author{}
	for rows.Next() {
		var a model.Author
		if err := scanAuthor(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
		UPDATE authors
		SET
			first_name = $1,
			family_name = $2,
			date_of_birth = $3,
			date_of_death = $4,
			updated_at = NOW()
		WHERE id = $5
		RETURNING ` + authorColumns

	var updated model.Author
	err := scanAuthor(r.pool.QueryRow(ctx, query,
		a.FirstName,
		a.FamilyName,
		a.DateOfBirth,
		a.DateOfDeath,
		a.ID,
	), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Lock order: author row first, then the books check. Inserting or
	// re-pointing a book takes FOR KEY SHARE on the referenced author
	// through the foreign key, which conflicts with FOR UPDATE. So once
	// the lock is held no book can be linked until commit, and a book
	// insert that is already in flight makes this query wait for it. The
	// EXISTS check runs after the wait and sees the committed book.
	// ON DELETE RESTRICT (23503) stays as the last guard.
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var locked uuid.UUID
		err := tx.QueryRow(ctx, `SELECT id FROM authors WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrAuthorNotFound
			}
			return fmt.Errorf("failed to lock author: %w", err)
		}

		var hasBooks bool
		err = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE author_id = $1)`, id).Scan(&hasBooks)
		if err != nil {
			return fmt.Errorf("failed to check linked books: %w", err)
		}
		if hasBooks {
			return model.ErrAuthorHasBooks
		}

		if _, err := tx.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
				return model.ErrAuthorHasBooks
			}
			return fmt.Errorf("failed to delete author: %w", err)
		}
		return nil
	})
}
