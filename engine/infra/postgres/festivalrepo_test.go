package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/artofest/artofest/engine/festival"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var festivalRowColumns = []string{"id", "name", "country", "city", "time", "website", "art_form_id", "art_form"}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func TestBuildListQuery(t *testing.T) {
	t.Run("Should select distinct festivals with the three joins", func(t *testing.T) {
		sql, args, err := buildListQuery(festival.Filter{})
		require.NoError(t, err)
		assert.Contains(t, sql, "SELECT DISTINCT f.id, f.name, f.country, f.city, f.time, f.website, "+
			"f.art_form_id, af.name AS art_form FROM festivals f")
		assert.Contains(t, sql, "LEFT JOIN art_forms af ON f.art_form_id = af.id")
		assert.Contains(t, sql, "LEFT JOIN festival_genres fg ON f.id = fg.festival_id")
		assert.Contains(t, sql, "LEFT JOIN genres g ON fg.genre_id = g.id")
		assert.Contains(t, sql, "ORDER BY f.id")
		assert.NotContains(t, sql, "WHERE")
		assert.Empty(t, args)
	})

	t.Run("Should add one ILIKE per parameter in a fixed order", func(t *testing.T) {
		sql, args, err := buildListQuery(festival.Filter{
			Search:  "paris",
			ArtForm: "music",
			Genre:   "jazz",
			Country: "France",
		})
		require.NoError(t, err)
		assert.Contains(t, sql, "WHERE f.country ILIKE $1 AND g.name ILIKE $2 AND af.name ILIKE $3 "+
			"AND (f.name ILIKE $4 OR f.city ILIKE $5)")
		assert.Equal(t, []any{"%France%", "%jazz%", "%music%", "%paris%", "%paris%"}, args)
	})

	t.Run("Should ignore whitespace-only parameters", func(t *testing.T) {
		sql, args, err := buildListQuery(festival.Filter{Country: "   ", Genre: " rock "})
		require.NoError(t, err)
		assert.Contains(t, sql, "WHERE g.name ILIKE $1")
		assert.NotContains(t, sql, "f.country ILIKE")
		assert.Equal(t, []any{"%rock%"}, args)
	})

	t.Run("Should escape LIKE wildcards in user input", func(t *testing.T) {
		_, args, err := buildListQuery(festival.Filter{Search: `100%_\`})
		require.NoError(t, err)
		assert.Equal(t, `%100\%\_\\%`, args[0])
	})
}

func TestFestivalRepo_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Should scan joined rows", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := NewFestivalRepo(mockPool)
		var nilStr *string
		var nilID *int64
		rows := mockPool.NewRows(festivalRowColumns).
			AddRow(int64(1), "Jazz à Vienne", strPtr("France"), strPtr("Vienne"), strPtr("July"),
				strPtr("jazzavienne.com"), int64Ptr(2), strPtr("Music")).
			AddRow(int64(4), "Nuits de Fourvière", strPtr("France"), strPtr("Lyon"), nilStr, nilStr, nilID, nilStr)
		mockPool.ExpectQuery(regexp.QuoteMeta("WHERE f.country ILIKE $1")).
			WithArgs("%France%").
			WillReturnRows(rows)

		got, err := repo.List(ctx, festival.Filter{Country: "France"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int64(1), got[0].ID)
		assert.Equal(t, "Music", *got[0].ArtForm)
		assert.Equal(t, int64(2), *got[0].ArtFormID)
		assert.Equal(t, "Lyon", *got[1].City)
		assert.Nil(t, got[1].ArtForm)
		assert.Nil(t, got[1].Website)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should return an empty slice when nothing matches", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		mockPool.ExpectQuery("SELECT DISTINCT (.+) FROM festivals f").
			WithArgs("%nowhere%", "%nowhere%").
			WillReturnRows(mockPool.NewRows(festivalRowColumns))

		got, err := NewFestivalRepo(mockPool).List(ctx, festival.Filter{Search: "nowhere"})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should wrap query errors", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		pgErr := &pgconn.PgError{Code: pgerrcode.UndefinedTable, Message: `relation "festivals" does not exist`}
		mockPool.ExpectQuery("SELECT DISTINCT (.+) FROM festivals f").
			WillReturnError(pgErr)

		got, err := NewFestivalRepo(mockPool).List(ctx, festival.Filter{})
		require.Error(t, err)
		assert.Nil(t, got)
		var target *pgconn.PgError
		assert.True(t, errors.As(err, &target))
		assert.Contains(t, err.Error(), "scanning festivals")
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
