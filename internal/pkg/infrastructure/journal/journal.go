package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/diwise/object-importer/internal/pkg/application/importer"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("object-importer/journal")

// Run is the journal entry of a single import or preview
type Run struct {
	ID        string
	ParentID  string
	DryRun    bool
	Started   time.Time
	Duration  time.Duration
	TotalRows int
	Created   int
	Failed    int
	Outcome   string
	Errors    []importer.RowError
}

func RunFromResult(r *importer.ImportResult) Run {
	return Run{
		ID:        r.RunID,
		ParentID:  r.ParentID,
		Started:   r.Started,
		Duration:  r.Duration,
		TotalRows: r.TotalRows,
		Created:   r.TotalCreated,
		Failed:    len(r.Errors),
		Outcome:   string(r.Outcome()),
		Errors:    r.Errors,
	}
}

func RunFromPreview(runID string, started time.Time, p *importer.Preview) Run {
	return Run{
		ID:        runID,
		ParentID:  p.ParentID,
		DryRun:    true,
		Started:   started,
		Duration:  time.Since(started),
		TotalRows: p.TotalRows,
		Created:   len(p.Planned),
		Failed:    len(p.Errors),
		Outcome:   "preview",
		Errors:    p.Errors,
	}
}

type Journal interface {
	Record(ctx context.Context, run Run) error
	Close()
}

type Config struct {
	host     string
	user     string
	password string
	port     string
	dbname   string
	sslmode  string
}

func LoadConfiguration(ctx context.Context) Config {
	return Config{
		host:     env.GetVariableOrDefault(ctx, "POSTGRES_HOST", ""),
		user:     env.GetVariableOrDefault(ctx, "POSTGRES_USER", ""),
		password: env.GetVariableOrDefault(ctx, "POSTGRES_PASSWORD", ""),
		port:     env.GetVariableOrDefault(ctx, "POSTGRES_PORT", "5432"),
		dbname:   env.GetVariableOrDefault(ctx, "POSTGRES_DBNAME", "diwise"),
		sslmode:  env.GetVariableOrDefault(ctx, "POSTGRES_SSLMODE", "disable"),
	}
}

// Enabled reports whether a database host has been configured
func (c Config) Enabled() bool {
	return c.host != ""
}

func (c Config) ConnStr() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.user, c.password, c.host, c.port, c.dbname, c.sslmode)
}

// Open connects to the database when one is configured and returns a journal
// that discards every run otherwise.
func Open(ctx context.Context, cfg Config) (Journal, error) {
	if !cfg.Enabled() {
		logging.GetFromContext(ctx).Info("no database configured, import runs will not be journaled")
		return Discard(), nil
	}

	return Connect(ctx, cfg)
}

func Connect(ctx context.Context, cfg Config) (Journal, error) {
	pool, err := pgxpool.New(ctx, cfg.ConnStr())
	if err != nil {
		return nil, err
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, err
	}

	j := &pgJournal{pool: pool}

	err = j.initialize(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize journal tables: %w", err)
	}

	return j, nil
}

type pgJournal struct {
	pool *pgxpool.Pool
}

func (j *pgJournal) initialize(ctx context.Context) error {
	_, err := j.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS import_runs (
			run_id      TEXT PRIMARY KEY,
			parent_id   TEXT NOT NULL,
			dry_run     BOOLEAN NOT NULL DEFAULT FALSE,
			started     TIMESTAMPTZ NOT NULL,
			duration_ms BIGINT NOT NULL,
			total_rows  INTEGER NOT NULL,
			created     INTEGER NOT NULL,
			failed      INTEGER NOT NULL,
			outcome     TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS import_row_errors (
			run_id  TEXT NOT NULL REFERENCES import_runs(run_id) ON DELETE CASCADE,
			row_no  INTEGER NOT NULL,
			level   INTEGER NOT NULL,
			name    TEXT NOT NULL,
			reason  TEXT NOT NULL
		);`)

	return err
}

func (j *pgJournal) Record(ctx context.Context, run Run) error {
	var err error

	ctx, span := tracer.Start(ctx, "record-run")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	tx, err := j.pool.Begin(ctx)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO import_runs (run_id, parent_id, dry_run, started, duration_ms, total_rows, created, failed, outcome)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		run.ID, run.ParentID, run.DryRun, run.Started, run.Duration.Milliseconds(),
		run.TotalRows, run.Created, run.Failed, run.Outcome,
	)
	if err != nil {
		tx.Rollback(ctx)
		return err
	}

	for _, e := range run.Errors {
		_, err = tx.Exec(ctx,
			`INSERT INTO import_row_errors (run_id, row_no, level, name, reason) VALUES ($1, $2, $3, $4, $5)`,
			run.ID, e.Row, e.Level, e.Name, e.Reason,
		)
		if err != nil {
			tx.Rollback(ctx)
			return err
		}
	}

	err = tx.Commit(ctx)
	return err
}

func (j *pgJournal) Close() {
	j.pool.Close()
}

type discard struct{}

// Discard returns a journal that records nothing
func Discard() Journal {
	return discard{}
}

func (discard) Record(context.Context, Run) error { return nil }
func (discard) Close()                            {}
