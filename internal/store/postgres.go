package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/placepulse/place-audit/internal/model"
)

// Pool is the pgxpool surface the store uses; pgxmock satisfies it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"insert_report": `INSERT INTO reports (id, place_id, name, total_score, payload, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
	"get_report":    `SELECT payload FROM reports WHERE id = $1`,
	"latest_report": `SELECT payload FROM reports WHERE place_id = $1 ORDER BY created_at DESC LIMIT 1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresFromPool wraps an existing pool. Used by tests.
func NewPostgresFromPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS reports (
	id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	place_id    TEXT NOT NULL,
	name        TEXT NOT NULL,
	total_score INTEGER NOT NULL,
	payload     JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_reports_place_id ON reports(place_id);
CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at);
CREATE INDEX IF NOT EXISTS idx_reports_place_created ON reports(place_id, created_at DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveReport(ctx context.Context, report *model.Report) error {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal report")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO reports (id, place_id, name, total_score, payload, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		report.ID, report.PlaceID, report.Name, report.TotalScore, payload, report.CreatedAt,
	)
	return eris.Wrap(err, "postgres: insert report")
}

func (s *PostgresStore) GetReport(ctx context.Context, id string) (*model.Report, error) {
	return s.scanReport(s.pool.QueryRow(ctx,
		`SELECT payload FROM reports WHERE id = $1`, id))
}

func (s *PostgresStore) LatestReport(ctx context.Context, placeID string) (*model.Report, error) {
	return s.scanReport(s.pool.QueryRow(ctx,
		`SELECT payload FROM reports WHERE place_id = $1 ORDER BY created_at DESC LIMIT 1`,
		placeID))
}

func (s *PostgresStore) scanReport(row pgx.Row) (*model.Report, error) {
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "postgres: scan report")
	}
	var report model.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal report")
	}
	return &report, nil
}

func (s *PostgresStore) ListReports(ctx context.Context, filter ReportFilter) ([]ReportSummary, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `SELECT id, place_id, name, total_score, created_at FROM reports`
	args := []any{}
	if filter.PlaceID != "" {
		query += ` WHERE place_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, filter.PlaceID, limit, filter.Offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list reports")
	}
	defer rows.Close()

	var summaries []ReportSummary
	for rows.Next() {
		var sum ReportSummary
		if err := rows.Scan(&sum.ID, &sum.PlaceID, &sum.Name, &sum.TotalScore, &sum.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan report summary")
		}
		summaries = append(summaries, sum)
	}
	return summaries, eris.Wrap(rows.Err(), "postgres: list reports")
}

func (s *PostgresStore) DeleteReport(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete report %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("report not found: %s", id)
	}
	return nil
}
