package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/artofest/artofest/engine/festival"
	"github.com/artofest/artofest/pkg/logger"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var festivalColumns = []string{
	"f.id",
	"f.name",
	"f.country",
	"f.city",
	"f.time",
	"f.website",
	"f.art_form_id",
	"af.name AS art_form",
}

// DB is the minimal database interface the repositories depend on (pgxpool or pgxmock).
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// FestivalRepo implements festival.Repository backed by a pgx-compatible pool.
type FestivalRepo struct {
	db DB
}

var _ festival.Repository = (*FestivalRepo)(nil)

func NewFestivalRepo(db DB) *FestivalRepo {
	return &FestivalRepo{db: db}
}

// selectFestivalsBuilder joins every festival with its art form and genres.
// DISTINCT collapses the rows the genre join multiplies.
func selectFestivalsBuilder() squirrel.SelectBuilder {
	return squirrel.Select(festivalColumns...).
		Distinct().
		From("festivals f").
		LeftJoin("art_forms af ON f.art_form_id = af.id").
		LeftJoin("festival_genres fg ON f.id = fg.festival_id").
		LeftJoin("genres g ON fg.genre_id = g.id").
		OrderBy("f.id").
		PlaceholderFormat(squirrel.Dollar)
}

func applyFestivalFilter(sb squirrel.SelectBuilder, filter festival.Filter) squirrel.SelectBuilder {
	filter = filter.Trimmed()
	if filter.Country != "" {
		sb = sb.Where(squirrel.ILike{"f.country": containsPattern(filter.Country)})
	}
	if filter.Genre != "" {
		sb = sb.Where(squirrel.ILike{"g.name": containsPattern(filter.Genre)})
	}
	if filter.ArtForm != "" {
		sb = sb.Where(squirrel.ILike{"af.name": containsPattern(filter.ArtForm)})
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		sb = sb.Where(squirrel.Or{
			squirrel.ILike{"f.name": pattern},
			squirrel.ILike{"f.city": pattern},
		})
	}
	return sb
}

func buildListQuery(filter festival.Filter) (string, []any, error) {
	return applyFestivalFilter(selectFestivalsBuilder(), filter).ToSql()
}

// List returns every festival matching the filter, each at most once,
// ordered by id.
func (r *FestivalRepo) List(ctx context.Context, filter festival.Filter) ([]festival.Row, error) {
	sql, args, err := buildListQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	rows := make([]festival.Row, 0)
	if err := pgxscan.Select(ctx, r.db, &rows, sql, args...); err != nil {
		logQueryFailure(ctx, err)
		return nil, fmt.Errorf("scanning festivals: %w", err)
	}
	return rows, nil
}

func logQueryFailure(ctx context.Context, err error) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return
	}
	log := logger.FromContext(ctx).With("pg_code", pgErr.Code)
	switch pgErr.Code {
	case pgerrcode.UndefinedTable, pgerrcode.UndefinedColumn:
		log.Warn("Festival schema is missing or outdated; run migrations", "error", pgErr.Message)
	case pgerrcode.QueryCanceled:
		log.Warn("Festival query canceled", "error", pgErr.Message)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching value as a literal
// substring.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}
