package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diwise/object-importer/internal/pkg/application/importer"
	"github.com/matryer/is"
)

func TestConnStr(t *testing.T) {
	is := is.New(t)

	cfg := Config{host: "db", user: "u", password: "p", port: "5432", dbname: "imports", sslmode: "disable"}

	is.True(cfg.Enabled())
	is.Equal(cfg.ConnStr(), "postgres://u:p@db:5432/imports?sslmode=disable")
}

func TestOpenWithoutHostDiscardsRuns(t *testing.T) {
	is := is.New(t)

	j, err := Open(context.Background(), Config{})
	is.NoErr(err)
	defer j.Close()

	is.NoErr(j.Record(context.Background(), Run{ID: "r1"}))
}

func TestRunFromResult(t *testing.T) {
	is := is.New(t)

	started := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)
	run := RunFromResult(&importer.ImportResult{
		RunID:        "r1",
		ParentID:     "root",
		TotalRows:    3,
		TotalCreated: 2,
		Errors:       []importer.RowError{{Row: 3, Level: 2, Name: "C", Reason: "boom", Err: errors.New("boom")}},
		Started:      started,
		Duration:     2 * time.Second,
	})

	is.Equal(run.ID, "r1")
	is.Equal(run.Created, 2)
	is.Equal(run.Failed, 1)
	is.Equal(run.Outcome, string(importer.PartiallyCreated))
	is.True(!run.DryRun)
}

func TestRunFromPreview(t *testing.T) {
	is := is.New(t)

	run := RunFromPreview("r2", time.Now(), &importer.Preview{
		ParentID:  "root",
		TotalRows: 2,
		Planned:   []importer.PlannedObject{{Row: 1}},
		Errors:    []importer.RowError{{Row: 2}},
	})

	is.True(run.DryRun)
	is.Equal(run.Created, 1)
	is.Equal(run.Failed, 1)
}
