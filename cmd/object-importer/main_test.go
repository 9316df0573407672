package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/diwise/object-importer/internal/pkg/application/objectimporter"
	"github.com/diwise/object-importer/internal/pkg/infrastructure/journal"
	"github.com/matryer/is"
)

func DefaultTestFlags() FlagMap {
	flags := DefaultFlags()
	flags[servicePort] = "0"
	return flags
}

func TestLoadConfigurationFromFile(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	is.NoErr(os.WriteFile(path, []byte("store:\n  url: http://store.local\nimport:\n  concurrency: 2\n"), 0o600))

	flags := DefaultTestFlags()
	flags[configPath] = path

	cfg, err := loadConfiguration(context.Background(), flags)
	is.NoErr(err)
	is.Equal(cfg.Store.URL, "http://store.local")
	is.Equal(cfg.Import.Concurrency, 2)
}

func TestEnvironmentOverridesStoreURL(t *testing.T) {
	is := is.New(t)
	t.Setenv("OBJECTSTORE_URL", "http://other.local")

	cfg, err := loadConfiguration(context.Background(), DefaultTestFlags())
	is.NoErr(err)
	is.Equal(cfg.Store.URL, "http://other.local")
}

func TestAnalyzeWritesStructureAsJSON(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "objects.csv")
	is.NoErr(os.WriteFile(path, []byte("Level;Class;Name\n1;Folder;A\n2;Site;B\n2;Site;C\n"), 0o600))

	flags := DefaultTestFlags()
	flags[runMode] = modeAnalyze
	flags[inputFile] = path

	app, err := newApp(ctx, objectimporter.DefaultConfig(), journal.Discard())
	is.NoErr(err)

	out := &bytes.Buffer{}
	is.NoErr(runBatch(ctx, flags, app, out))

	analysis := objectimporter.Analysis{}
	is.NoErr(json.Unmarshal(out.Bytes(), &analysis))
	is.Equal(analysis.TotalRows, 3)
	is.Equal(analysis.MaxLevel, 2)
	is.Equal(analysis.Classes, []string{"Folder", "Site"})
}

func TestImportRequiresParent(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "objects.csv")
	is.NoErr(os.WriteFile(path, []byte("1;Folder;A\n"), 0o600))

	flags := DefaultTestFlags()
	flags[runMode] = modeImport
	flags[inputFile] = path

	app, err := newApp(ctx, objectimporter.DefaultConfig(), journal.Discard())
	is.NoErr(err)

	err = runBatch(ctx, flags, app, &bytes.Buffer{})
	is.True(err != nil) // a parent id should be required
}
