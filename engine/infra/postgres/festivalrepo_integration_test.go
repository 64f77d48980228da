//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/artofest/artofest/engine/festival"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func createTestDatabase(ctx context.Context, t *testing.T) (*pgxpool.Pool, string) {
	t.Helper()
	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("artofest"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		terminateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := pgContainer.Terminate(terminateCtx); err != nil {
			t.Logf("Warning: failed to terminate container: %s", err)
		}
	})
	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool, dsn
}

func TestFestivalRepo_Integration(t *testing.T) {
	ctx := context.Background()
	pool, dsn := createTestDatabase(ctx, t)
	require.NoError(t, ApplyMigrationsWithLock(ctx, dsn))
	_, err := NewSeeder(pool).Seed(ctx, []festival.Festival{
		{Name: "Jazz à Vienne", Country: "France", Place: "Vienne", Genre: "Music / Jazz / Blues"},
		{Name: "Avignon Festival", Country: "France", Place: "Avignon", Genre: "Theatre"},
		{Name: "Sziget", Country: "Hungary", Place: "Budapest", Genre: "Music, Rock"},
		{Name: "100% Dance", Country: "Belgium", Place: "Ghent", Genre: "Dance"},
	})
	require.NoError(t, err)
	repo := NewFestivalRepo(pool)

	names := func(rows []festival.Row) []string {
		out := make([]string, 0, len(rows))
		for _, r := range rows {
			out = append(out, r.Name)
		}
		return out
	}

	t.Run("Should return each festival once when several genres match", func(t *testing.T) {
		rows, err := repo.List(ctx, festival.Filter{Genre: "u"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Jazz à Vienne", "Sziget"}, names(rows))
	})

	t.Run("Should combine genre and art form without duplicates", func(t *testing.T) {
		rows, err := repo.List(ctx, festival.Filter{Genre: "a", ArtForm: "music"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Jazz à Vienne"}, names(rows))
	})

	t.Run("Should search name or city", func(t *testing.T) {
		rows, err := repo.List(ctx, festival.Filter{Search: "budapest"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Sziget"}, names(rows))
	})

	t.Run("Should treat wildcards literally", func(t *testing.T) {
		rows, err := repo.List(ctx, festival.Filter{Search: "100%"})
		require.NoError(t, err)
		assert.Equal(t, []string{"100% Dance"}, names(rows))

		rows, err = repo.List(ctx, festival.Filter{Search: "_"})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("Should join the art form name", func(t *testing.T) {
		rows, err := repo.List(ctx, festival.Filter{Country: "hungary"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.NotNil(t, rows[0].ArtForm)
		assert.Equal(t, "Music", *rows[0].ArtForm)
	})
}
