package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/artofest/artofest/engine/festival"
	"github.com/artofest/artofest/pkg/logger"
	"github.com/jackc/pgx/v5"
)

const truncateFestivalsSQL = "TRUNCATE festival_genres, festivals, genres, art_forms RESTART IDENTITY CASCADE"

// SeedResult counts what a seed run wrote.
type SeedResult struct {
	Festivals int
	ArtForms  int
	Genres    int
}

// Seeder imports normalized festival records into the relational schema.
type Seeder struct {
	db       DB
	truncate bool
}

type SeederOption func(*Seeder)

// WithTruncate empties every festival table before importing.
func WithTruncate() SeederOption {
	return func(s *Seeder) { s.truncate = true }
}

func NewSeeder(db DB, opts ...SeederOption) *Seeder {
	s := &Seeder{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed writes the festivals in a single transaction. The genre text is split
// into tokens: the first names the art form and every token becomes a genre.
func (s *Seeder) Seed(ctx context.Context, festivals []festival.Festival) (result SeedResult, err error) {
	log := logger.FromContext(ctx)
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return SeedResult{}, fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Error("Failed to rollback seed transaction", "error", rbErr)
		}
	}()
	if s.truncate {
		if _, err = tx.Exec(ctx, truncateFestivalsSQL); err != nil {
			return SeedResult{}, fmt.Errorf("truncating festivals: %w", err)
		}
	}
	w := &seedWriter{
		tx:       tx,
		artForms: make(map[string]int64),
		genres:   make(map[string]int64),
	}
	for i := range festivals {
		if err = w.writeFestival(ctx, &festivals[i]); err != nil {
			return SeedResult{}, fmt.Errorf("seeding festival %q: %w", festivals[i].Name, err)
		}
	}
	if err = tx.Commit(ctx); err != nil {
		return SeedResult{}, fmt.Errorf("commit seed transaction: %w", err)
	}
	result = SeedResult{Festivals: len(festivals), ArtForms: len(w.artForms), Genres: len(w.genres)}
	log.Info("Festivals seeded",
		"festivals", result.Festivals,
		"art_forms", result.ArtForms,
		"genres", result.Genres,
	)
	return result, nil
}

type seedWriter struct {
	tx       pgx.Tx
	artForms map[string]int64
	genres   map[string]int64
}

func (w *seedWriter) writeFestival(ctx context.Context, f *festival.Festival) error {
	tokens := SplitGenres(f.Genre)
	var artFormID *int64
	if len(tokens) > 0 {
		id, err := w.upsertName(ctx, "art_forms", tokens[0], w.artForms)
		if err != nil {
			return err
		}
		artFormID = &id
	}
	query, args, err := squirrel.Insert("festivals").
		Columns("name", "country", "city", "time", "website", "art_form_id").
		Values(f.Name, nullIfEmpty(f.Country), nullIfEmpty(f.Place), nullIfEmpty(f.Time.String()),
			nullIfEmpty(f.Web), artFormID).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("building festival insert: %w", err)
	}
	var festivalID int64
	if err := w.tx.QueryRow(ctx, query, args...).Scan(&festivalID); err != nil {
		return fmt.Errorf("inserting festival: %w", err)
	}
	for _, token := range tokens {
		genreID, err := w.upsertName(ctx, "genres", token, w.genres)
		if err != nil {
			return err
		}
		if err := w.linkGenre(ctx, festivalID, genreID); err != nil {
			return err
		}
	}
	return nil
}

func (w *seedWriter) upsertName(ctx context.Context, table, name string, seen map[string]int64) (int64, error) {
	if id, ok := seen[name]; ok {
		return id, nil
	}
	query, args, err := squirrel.Insert(table).
		Columns("name").
		Values(name).
		Suffix("ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("building %s upsert: %w", table, err)
	}
	var id int64
	if err := w.tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("upserting %s %q: %w", table, name, err)
	}
	seen[name] = id
	return id, nil
}

func (w *seedWriter) linkGenre(ctx context.Context, festivalID, genreID int64) error {
	query, args, err := squirrel.Insert("festival_genres").
		Columns("festival_id", "genre_id").
		Values(festivalID, genreID).
		Suffix("ON CONFLICT DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("building genre link: %w", err)
	}
	if _, err := w.tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("linking genre: %w", err)
	}
	return nil
}

// SplitGenres splits an ART/GENRE value on '/', ',', ';' and '|'. Tokens are
// trimmed, blanks dropped and case-insensitive duplicates removed, keeping
// the first spelling.
func SplitGenres(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		switch r {
		case '/', ',', ';', '|':
			return true
		default:
			return false
		}
	})
	out := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		token := strings.TrimSpace(field)
		if token == "" {
			continue
		}
		key := strings.ToLower(token)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, token)
	}
	return out
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
