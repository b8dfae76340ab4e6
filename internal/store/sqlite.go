package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/placepulse/place-audit/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS reports (
	id          TEXT PRIMARY KEY,
	place_id    TEXT NOT NULL,
	name        TEXT NOT NULL,
	total_score INTEGER NOT NULL,
	payload     TEXT NOT NULL,
	created_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reports_place_id ON reports(place_id);
CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveReport(ctx context.Context, report *model.Report) error {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal report")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (id, place_id, name, total_score, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		report.ID, report.PlaceID, report.Name, report.TotalScore, string(payload), report.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: insert report")
}

func (s *SQLiteStore) GetReport(ctx context.Context, id string) (*model.Report, error) {
	return s.scanReport(s.db.QueryRowContext(ctx,
		`SELECT payload FROM reports WHERE id = ?`, id))
}

func (s *SQLiteStore) LatestReport(ctx context.Context, placeID string) (*model.Report, error) {
	return s.scanReport(s.db.QueryRowContext(ctx,
		`SELECT payload FROM reports WHERE place_id = ? ORDER BY created_at DESC LIMIT 1`,
		placeID))
}

func (s *SQLiteStore) scanReport(row *sql.Row) (*model.Report, error) {
	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "sqlite: scan report")
	}
	var report model.Report
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal report")
	}
	return &report, nil
}

func (s *SQLiteStore) ListReports(ctx context.Context, filter ReportFilter) ([]ReportSummary, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `SELECT id, place_id, name, total_score, created_at FROM reports`
	args := []any{}
	if filter.PlaceID != "" {
		query += ` WHERE place_id = ?`
		args = append(args, filter.PlaceID)
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list reports")
	}
	defer rows.Close()

	var summaries []ReportSummary
	for rows.Next() {
		var sum ReportSummary
		if err := rows.Scan(&sum.ID, &sum.PlaceID, &sum.Name, &sum.TotalScore, &sum.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan report summary")
		}
		summaries = append(summaries, sum)
	}
	return summaries, eris.Wrap(rows.Err(), "sqlite: list reports")
}

func (s *SQLiteStore) DeleteReport(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete report %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("report not found: %s", id)
	}
	return nil
}
