package precedentdb

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
	"godilemma/internal/errors"
	"godilemma/internal/precedent"
)

const schema = `
CREATE TABLE IF NOT EXISTS precedent_cases (
	id                 TEXT PRIMARY KEY,
	title              TEXT NOT NULL,
	resolution_summary TEXT NOT NULL,
	recommended_action TEXT NOT NULL DEFAULT '',
	keywords           TEXT NOT NULL DEFAULT '',
	dimensions         TEXT NOT NULL DEFAULT ''
)`

// caseRow is the stored form of a precedent case. Keyword and dimension sets
// are kept as comma separated text so one schema serves both drivers.
type caseRow struct {
	ID                string `db:"id"`
	Title             string `db:"title"`
	ResolutionSummary string `db:"resolution_summary"`
	RecommendedAction string `db:"recommended_action"`
	Keywords          string `db:"keywords"`
	Dimensions        string `db:"dimensions"`
}

func (r caseRow) toCase() verdict.PrecedentCase {
	return verdict.PrecedentCase{
		ID:                r.ID,
		Title:             r.Title,
		ResolutionSummary: r.ResolutionSummary,
		RecommendedAction: r.RecommendedAction,
		Keywords:          splitSet(r.Keywords),
		Dimensions:        splitSet(r.Dimensions),
	}
}

// Store is a SQL backed precedent finder. It is read-only once seeded.
type Store struct {
	db     *sqlx.DB
	topK   int
	budget int
}

// Open connects to dsn. DSNs starting with postgres:// or postgresql:// use
// lib/pq; anything else is treated as a SQLite path.
func Open(dsn string) (*sqlx.DB, error) {
	driver := "sqlite3"
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver = "postgres"
	}
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "connect precedent database (%s)", driver)
	}
	if driver == "sqlite3" {
		// a private in-memory database exists per connection
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// NewStore creates a store over db. topK caps results; budget caps the rows
// scanned per lookup.
func NewStore(db *sqlx.DB, topK, budget int) *Store {
	return &Store{db: db, topK: topK, budget: budget}
}

// Migrate creates the precedent table when missing.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "create precedent_cases table")
	}
	return nil
}

// Seed upserts cases in a single transaction.
func (s *Store) Seed(ctx context.Context, cases []verdict.PrecedentCase) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin seed transaction")
	}
	defer tx.Rollback()

	query := tx.Rebind(`
		INSERT INTO precedent_cases (id, title, resolution_summary, recommended_action, keywords, dimensions)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			resolution_summary = excluded.resolution_summary,
			recommended_action = excluded.recommended_action,
			keywords = excluded.keywords,
			dimensions = excluded.dimensions
	`)
	for _, c := range cases {
		_, err := tx.ExecContext(ctx, query,
			c.ID, c.Title, c.ResolutionSummary, c.RecommendedAction,
			strings.Join(c.Keywords, ","), strings.Join(c.Dimensions, ","))
		if err != nil {
			return errors.Wrapf(err, "seed precedent %s", c.ID)
		}
	}
	return tx.Commit()
}

// Count returns the number of stored cases.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM precedent_cases`)
	return n, err
}

// FindSimilar scans at most budget cases in id order and ranks them against d.
func (s *Store) FindSimilar(ctx context.Context, d *dilemma.Dilemma, minSimilarity float64) ([]verdict.PrecedentCase, error) {
	var rows []caseRow
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(`
		SELECT id, title, resolution_summary, recommended_action, keywords, dimensions
		FROM precedent_cases
		ORDER BY id
		LIMIT ?
	`), s.budget)
	if err != nil {
		return nil, errors.Wrap(err, "query precedent cases")
	}

	cases := make([]verdict.PrecedentCase, len(rows))
	for i, r := range rows {
		cases[i] = r.toCase()
	}
	return precedent.Rank(precedent.NewProfile(d), cases, minSimilarity, s.topK, s.budget), nil
}

func splitSet(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
