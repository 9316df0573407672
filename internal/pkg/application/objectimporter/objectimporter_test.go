package objectimporter

import (
	"context"
	"strings"
	"testing"

	"github.com/diwise/object-importer/internal/pkg/application/blueprint"
	"github.com/diwise/object-importer/internal/pkg/application/importer"
	"github.com/diwise/object-importer/internal/pkg/infrastructure/journal"
	objecterrors "github.com/diwise/object-importer/pkg/objectstore/errors"
	"github.com/diwise/object-importer/pkg/objectstore/test"
	"github.com/diwise/object-importer/pkg/objectstore/types"
	"github.com/matryer/is"
)

type journalSpy struct {
	runs []journal.Run
}

func (j *journalSpy) Record(_ context.Context, run journal.Run) error {
	j.runs = append(j.runs, run)
	return nil
}

func (j *journalSpy) Close() {}

var siteAttributes = []types.AttributeDef{
	{ID: "a1", Name: "MVZ", Type: types.String},
	{ID: "a2", Name: "Количество", Type: types.Integer},
}

func newTestStore() *test.ClientMock {
	classes := map[string]*types.ClassMetadata{
		"Folder": {ID: "c1", Name: "Folder"},
		"Site":   {ID: "c3", Name: "Site"},
	}

	return &test.ClientMock{
		FetchClassByNameFunc: func(ctx context.Context, name string) (*types.ClassMetadata, error) {
			if c, ok := classes[name]; ok {
				return c, nil
			}
			return nil, objecterrors.NewClassNotFoundError(name)
		},
		FetchClassByIDFunc: func(ctx context.Context, classID string) (*types.ClassMetadata, error) {
			for _, c := range classes {
				if c.ID == classID {
					return c, nil
				}
			}
			return nil, objecterrors.NewClassNotFoundError(classID)
		},
		FetchAttributeDefsFunc: func(ctx context.Context, classID string) ([]types.AttributeDef, error) {
			if classID == "c3" {
				return siteAttributes, nil
			}
			return []types.AttributeDef{}, nil
		},
		CreateObjectFunc: func(ctx context.Context, name, classID, parentID string) (string, error) {
			return "id-" + name, nil
		},
		SetAttributesFunc: func(ctx context.Context, objectID string, attributes []types.WireAttribute) error {
			return nil
		},
		RenameObjectFunc: func(ctx context.Context, objectID, name string) error {
			return nil
		},
		GetObjectFunc: func(ctx context.Context, objectID string) (*types.RawObject, error) {
			return &types.RawObject{
				ID:       objectID,
				Name:     "Site 1",
				ClassID:  "c3",
				ParentID: "root",
				Attributes: map[string]types.WireValue{
					"a1": {Value: "X", Type: 2},
					"a2": {Value: float64(3), Type: 1},
				},
			}, nil
		},
		DeleteObjectFunc: func(ctx context.Context, objectID string) error {
			return nil
		},
	}
}

func setupTest(t *testing.T, cfg *Config) (*is.I, ObjectImporter, *test.ClientMock, *journalSpy) {
	is := is.New(t)
	store := newTestStore()
	spy := &journalSpy{}

	app, err := New(context.Background(), cfg, store, spy)
	is.NoErr(err)

	return is, app, store, spy
}

const importFile string = "Уровень;Класс;Имя объекта;MVZ;Количество\n" +
	"1;Folder;A;;\n" +
	"2;Site;B;X;12\n"

func TestImportFromDelimitedText(t *testing.T) {
	is, app, store, spy := setupTest(t, nil)

	result, err := app.Import(context.Background(), strings.NewReader(importFile), "root")
	is.NoErr(err)

	is.Equal(result.Outcome(), importer.AllCreated)
	is.Equal(result.Created[1].ParentID, "id-A")

	attrs := store.SetAttributesCalls()
	is.Equal(len(attrs), 1)
	is.Equal(attrs[0].Attributes[1].Value, int64(12))

	is.Equal(len(spy.runs), 1) // the run should be journaled
	is.Equal(spy.runs[0].ID, result.RunID)
}

func TestPreviewIsJournaledAsDryRun(t *testing.T) {
	is, app, store, spy := setupTest(t, nil)

	preview, err := app.Preview(context.Background(), strings.NewReader(importFile), "root")
	is.NoErr(err)

	is.Equal(len(preview.Planned), 2)
	is.Equal(len(store.CreateObjectCalls()), 0)
	is.True(spy.runs[0].DryRun)
}

func TestAnalyzeDoesNotContactTheStore(t *testing.T) {
	is, app, store, _ := setupTest(t, nil)

	analysis, err := app.Analyze(context.Background(), strings.NewReader(importFile))
	is.NoErr(err)

	is.True(analysis.Layout.HasHeader)
	is.Equal(analysis.ObjectsByLevel, map[int]int{1: 1, 2: 1})
	is.Equal(len(store.FetchClassByNameCalls()), 0)
}

func TestConfiguredDelimiterIsUsed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Import.Delimiter = "|"
	is, app, _, _ := setupTest(t, cfg)

	analysis, err := app.Analyze(context.Background(), strings.NewReader("Level|Class|Name\n1|Folder|A;B\n"))
	is.NoErr(err)
	is.Equal(analysis.TotalRows, 1)
}

func TestReadObjectUsesAttributeNames(t *testing.T) {
	is, app, _, _ := setupTest(t, nil)

	obj, err := app.ReadObject(context.Background(), "o1")
	is.NoErr(err)

	is.Equal(obj.ClassName, "Site")
	is.Equal(obj.Values, map[string]any{"MVZ": "X", "Количество": int64(3)})
}

func TestUpdateObjectKeepsCurrentClassAndName(t *testing.T) {
	is, app, store, _ := setupTest(t, nil)

	updated, err := app.UpdateObject(context.Background(), "o1", blueprint.Fields{"Количество": 4})
	is.NoErr(err)
	is.True(updated)

	is.Equal(len(store.RenameObjectCalls()), 0)

	calls := store.SetAttributesCalls()
	is.Equal(len(calls), 1)
	is.Equal(len(calls[0].Attributes), 1)
	is.Equal(calls[0].Attributes[0].Name, "Количество")
}

func TestCreateObjectFromRecord(t *testing.T) {
	is, app, store, _ := setupTest(t, nil)

	obj, err := app.CreateObject(context.Background(), "root", blueprint.Fields{"Class": "Site", "Name": "S", "mvz": "Y"})
	is.NoErr(err)

	is.Equal(obj.ID, "id-S")
	is.Equal(obj.Values, map[string]any{"MVZ": "Y"})
	is.Equal(store.CreateObjectCalls()[0].ParentID, "root")
}

func TestStringCellsReachTheStoreAsWritten(t *testing.T) {
	is, app, store, _ := setupTest(t, nil)

	input := "Уровень;Класс;Имя объекта;MVZ\n" +
		"1;Site;A;+79161234567\n" +
		"1;Site;B;1.50\n" +
		"1;Site;C;31.01.2024\n" +
		"1;Site;D;Да\n"

	result, err := app.Import(context.Background(), strings.NewReader(input), "root")
	is.NoErr(err)
	is.Equal(result.Outcome(), importer.AllCreated)

	sent := map[string]any{}
	for _, c := range store.SetAttributesCalls() {
		sent[c.ObjectID] = c.Attributes[0].Value
	}

	is.Equal(sent, map[string]any{
		"id-A": "+79161234567",
		"id-B": "1.50",
		"id-C": "31.01.2024",
		"id-D": "Да",
	})
}
