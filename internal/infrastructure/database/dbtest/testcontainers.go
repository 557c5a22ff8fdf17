// Package dbtest starts a throwaway PostgreSQL for repository tests.
package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	tclog "github.com/testcontainers/testcontainers-go/log"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"library-catalog/internal/infrastructure/database"
)

type nopLogger struct{}

func (*nopLogger) Printf(_ string, _ ...any) {}

var _ tclog.Logger = (*nopLogger)(nil)

var (
	dbName = "library_test"
	dbUser = "testuser"
	dbPass = "testpass"
)

// SetupTestDB starts a Postgres container, connects a pool to it and applies
// the catalog schema. Skipped with -short since it needs Docker.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping PostgreSQL test in short mode")
	}

	ctx := context.Background()

	postgresContainer, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPass),
		postgres.BasicWaitStrategies(),
		tc.WithLogger(&nopLogger{}),
	)
	tc.CleanupContainer(t, postgresContainer)
	require.NoError(t, err)

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg, err := pgxpool.ParseConfig(connStr)
	require.NoError(t, err)

	db := database.NewPostgresDB(&database.DBConfig{ConnectTimeout: 10 * time.Second})
	db.Pool, err = pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.HealthCheck(ctx))
	require.NoError(t, db.EnsureSchema(ctx))

	// The schema uses IF NOT EXISTS, applying it twice must be harmless.
	require.NoError(t, db.EnsureSchema(ctx))

	return db.Pool
}

// Truncate empties the catalog tables between subtests sharing one container.
func Truncate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `TRUNCATE books, authors`)
	require.NoError(t, err)
}

// InsertBook links a book to an author. The author pages never
// create books.
func InsertBook(t *testing.T, pool *pgxpool.Pool, authorID uuid.UUID, title, summary string) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO books (title, summary, author_id) VALUES ($1, $2, $3)`,
		title, summary, authorID)
	require.NoError(t, err)
}
