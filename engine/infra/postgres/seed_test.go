package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/artofest/artofest/engine/festival"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitGenres(t *testing.T) {
	t.Run("Should split on every separator and trim tokens", func(t *testing.T) {
		assert.Equal(t, []string{"Music", "Jazz", "Blues", "Soul", "Funk"}, SplitGenres("Music / Jazz, Blues;Soul | Funk"))
	})

	t.Run("Should drop blanks and case-insensitive duplicates", func(t *testing.T) {
		assert.Equal(t, []string{"Theatre", "Dance"}, SplitGenres("Theatre / / Dance, theatre"))
		assert.Empty(t, SplitGenres("  "))
	})
}

func TestSeeder_Seed(t *testing.T) {
	ctx := context.Background()

	t.Run("Should import festivals with art form and genres in one transaction", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		mockPool.ExpectBegin()
		mockPool.ExpectQuery("INSERT INTO art_forms").
			WithArgs("Music").
			WillReturnRows(mockPool.NewRows([]string{"id"}).AddRow(int64(1)))
		mockPool.ExpectQuery("INSERT INTO festivals").
			WithArgs("Sziget", strPtr("Hungary"), strPtr("Budapest"), strPtr("August"), (*string)(nil), int64Ptr(1)).
			WillReturnRows(mockPool.NewRows([]string{"id"}).AddRow(int64(10)))
		mockPool.ExpectQuery("INSERT INTO genres").
			WithArgs("Music").
			WillReturnRows(mockPool.NewRows([]string{"id"}).AddRow(int64(100)))
		mockPool.ExpectExec("INSERT INTO festival_genres").
			WithArgs(int64(10), int64(100)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mockPool.ExpectQuery("INSERT INTO genres").
			WithArgs("Rock").
			WillReturnRows(mockPool.NewRows([]string{"id"}).AddRow(int64(101)))
		mockPool.ExpectExec("INSERT INTO festival_genres").
			WithArgs(int64(10), int64(101)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mockPool.ExpectCommit()

		result, err := NewSeeder(mockPool).Seed(ctx, []festival.Festival{{
			Name:    "Sziget",
			Country: "Hungary",
			Place:   "Budapest",
			Time:    festival.TimeFromText("August"),
			Genre:   "Music / Rock",
		}})
		require.NoError(t, err)
		assert.Equal(t, SeedResult{Festivals: 1, ArtForms: 1, Genres: 2}, result)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should insert festivals without genre and truncate when asked", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		mockPool.ExpectBegin()
		mockPool.ExpectExec("TRUNCATE festival_genres, festivals, genres, art_forms").
			WillReturnResult(pgxmock.NewResult("TRUNCATE", 0))
		mockPool.ExpectQuery("INSERT INTO festivals").
			WithArgs("Unlabelled", (*string)(nil), (*string)(nil), (*string)(nil), strPtr("example.org"), (*int64)(nil)).
			WillReturnRows(mockPool.NewRows([]string{"id"}).AddRow(int64(1)))
		mockPool.ExpectCommit()

		result, err := NewSeeder(mockPool, WithTruncate()).Seed(ctx, []festival.Festival{{
			Name: "Unlabelled",
			Web:  "example.org",
		}})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Festivals)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should roll back when an insert fails", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		mockPool.ExpectBegin()
		mockPool.ExpectQuery("INSERT INTO festivals").
			WillReturnError(errors.New("disk full"))
		mockPool.ExpectRollback()

		_, err = NewSeeder(mockPool).Seed(ctx, []festival.Festival{{Name: "Broken"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `seeding festival "Broken"`)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
