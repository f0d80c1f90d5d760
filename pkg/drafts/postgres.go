package drafts

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

const upsertDraft = `
INSERT INTO form_drafts (id, form_id, step, visited, data, touched, submitted, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
    form_id = EXCLUDED.form_id,
    step = EXCLUDED.step,
    visited = EXCLUDED.visited,
    data = EXCLUDED.data,
    touched = EXCLUDED.touched,
    submitted = EXCLUDED.submitted,
    updated_at = EXCLUDED.updated_at`

const selectDraft = `
SELECT id, form_id, step, visited, data, touched, submitted, updated_at
FROM form_drafts WHERE id = $1`

// PostgresStore keeps drafts in the form_drafts table; form data is JSONB.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Save(ctx context.Context, d Draft) error {
	if err := validateDraft(d); err != nil {
		return err
	}
	data, err := json.Marshal(d.Data)
	if err != nil {
		return errors.Join(ErrFailedToSaveDraft, err)
	}

	_, err = s.pool.Exec(ctx, upsertDraft,
		d.ID, d.FormID, d.Step, nonNil(d.Visited), data, nonNil(d.Touched), d.Submitted, d.UpdatedAt,
	)
	if err != nil {
		return errors.Join(ErrFailedToSaveDraft, err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, id string) (Draft, error) {
	var (
		d    Draft
		data []byte
	)
	err := s.pool.QueryRow(ctx, selectDraft, id).Scan(
		&d.ID, &d.FormID, &d.Step, &d.Visited, &data, &d.Touched, &d.Submitted, &d.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Draft{}, ErrDraftNotFound
	}
	if err != nil {
		return Draft{}, errors.Join(ErrFailedToLoadDraft, err)
	}
	if err := json.Unmarshal(data, &d.Data); err != nil {
		return Draft{}, errors.Join(ErrCorruptedDraft, err)
	}
	return d, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM form_drafts WHERE id = $1`, id)
	if err != nil {
		return errors.Join(ErrFailedToDeleteDraft, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDraftNotFound
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// ConnectPostgres opens a pool, retrying with a linearly growing wait.
func ConnectPostgres(ctx context.Context, cfg PostgresConfig) (*pgxpool.Pool, error) {
	connConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParsePGConfig, err)
	}
	connConfig.MaxConns = cfg.MaxOpenConns
	connConfig.MinConns = cfg.MaxIdleConns
	connConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	connConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	connConfig.MaxConnLifetime = cfg.MaxConnLifetime

	var lastErr error
	for i := range max(cfg.RetryAttempts, 1) {
		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToConnectPG, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}
	return nil, errors.Join(ErrFailedToConnectPG, lastErr)
}

// Migrate applies the embedded goose migrations through a database/sql view
// of the pool. goose keeps its settings in package globals, so migrations
// must not run concurrently.
func Migrate(ctx context.Context, pool *pgxpool.Pool, table string, log *slog.Logger) error {
	if log == nil {
		log = logger.Discard()
	}
	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			log.ErrorContext(ctx, "failed to close migration connection", "error", err)
		}
	}()

	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{log: log})
	goose.SetTableName(table)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrFailedToApplyMigration, err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return errors.Join(ErrFailedToApplyMigration, err)
	}
	return nil
}

// gooseLogger routes goose output to slog.
type gooseLogger struct {
	log *slog.Logger
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...))
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Info(fmt.Sprintf(format, v...))
}

// PostgresHealthcheck pings the pool.
func PostgresHealthcheck(pool *pgxpool.Pool) Healthcheck {
	return func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
