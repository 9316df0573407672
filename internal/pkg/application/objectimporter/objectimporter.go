package objectimporter

//go:generate moq -rm -out objectimporter_mock.go . ObjectImporter

import (
	"context"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/diwise/object-importer/internal/pkg/application/blueprint"
	"github.com/diwise/object-importer/internal/pkg/application/importer"
	"github.com/diwise/object-importer/internal/pkg/application/metadata"
	"github.com/diwise/object-importer/internal/pkg/application/objects"
	"github.com/diwise/object-importer/internal/pkg/infrastructure/journal"
	"github.com/diwise/object-importer/internal/pkg/infrastructure/tabular"
	"github.com/diwise/object-importer/pkg/objectstore/client"
	"github.com/diwise/object-importer/pkg/objectstore/errors"
	"github.com/diwise/object-importer/pkg/objectstore/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
)

type ObjectImporter interface {
	Import(ctx context.Context, input io.Reader, parentID string) (*importer.ImportResult, error)
	Preview(ctx context.Context, input io.Reader, parentID string) (*importer.Preview, error)
	Analyze(ctx context.Context, input io.Reader) (*Analysis, error)

	CreateObject(ctx context.Context, parentID string, record blueprint.Fields) (*Object, error)
	ReadObject(ctx context.Context, objectID string) (*Object, error)
	UpdateObject(ctx context.Context, objectID string, record blueprint.Fields) (bool, error)
	DeleteObject(ctx context.Context, objectID string) (bool, error)

	Close()
}

// Object is a stored object with its attribute values keyed by attribute name
type Object struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	ClassID   string         `json:"classId"`
	ClassName string         `json:"className,omitempty"`
	ParentID  string         `json:"parentId,omitempty"`
	Values    map[string]any `json:"values"`
}

// Analysis describes the structure of an input file without contacting the store
type Analysis struct {
	Layout         tabular.Layout `json:"layout"`
	TotalRows      int            `json:"totalRows"`
	MaxLevel       int            `json:"maxLevel"`
	ObjectsByLevel map[int]int    `json:"objectsByLevel"`
	Classes        []string       `json:"classes"`
}

type app struct {
	cfg      *Config
	registry *metadata.Registry
	resolver *blueprint.Resolver
	objects  *objects.Service
	importer *importer.Importer
	journal  journal.Journal
}

func New(ctx context.Context, cfg *Config, store client.Client, j journal.Journal) (ObjectImporter, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if j == nil {
		j = journal.Discard()
	}

	registry, err := metadata.NewRegistry(store, cfg.Metadata.TTL(), cfg.Metadata.MaxEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata registry: %w", err)
	}

	resolver := blueprint.NewResolver(registry, cfg.Aliases)
	svc := objects.NewService(store, registry, objects.ClearMissingAttributes(cfg.Import.ClearMissingAttributes))

	a := &app{
		cfg:      cfg,
		registry: registry,
		resolver: resolver,
		objects:  svc,
		importer: importer.New(resolver, svc, registry,
			importer.Concurrency(cfg.Import.Concurrency),
			importer.LinkedObjects(registry),
		),
		journal:  j,
	}

	logging.GetFromContext(ctx).Debug("object importer created",
		"concurrency", cfg.Import.Concurrency,
		"cache_ttl", cfg.Metadata.TTL().String(),
		"clear_missing_attributes", cfg.Import.ClearMissingAttributes,
	)

	return a, nil
}

func (a *app) reader(input io.Reader) *tabular.Reader {
	options := []func(*tabular.Reader){}

	if d, size := utf8.DecodeRuneInString(a.cfg.Import.Delimiter); size > 0 && d != utf8.RuneError {
		options = append(options, tabular.Delimiter(d))
	}

	return tabular.NewReader(input, a.resolver.Aliases(), options...)
}

func (a *app) Import(ctx context.Context, input io.Reader, parentID string) (*importer.ImportResult, error) {
	result, err := a.importer.ImportFromSource(ctx, a.reader(input), parentID)
	if err != nil {
		return nil, err
	}

	a.record(ctx, journal.RunFromResult(result))

	return result, nil
}

func (a *app) Preview(ctx context.Context, input io.Reader, parentID string) (*importer.Preview, error) {
	started := time.Now()

	preview, err := a.importer.PreviewImport(ctx, a.reader(input), parentID)
	if err != nil {
		return nil, err
	}

	a.record(ctx, journal.RunFromPreview(uuid.NewString(), started, preview))

	return preview, nil
}

func (a *app) record(ctx context.Context, run journal.Run) {
	if err := a.journal.Record(ctx, run); err != nil {
		logging.GetFromContext(ctx).Warn("failed to journal import run", "run_id", run.ID, "err", err.Error())
	}
}

func (a *app) Analyze(ctx context.Context, input io.Reader) (*Analysis, error) {
	r := a.reader(input)

	rows, err := r.ReadRows(ctx)
	if err != nil {
		return nil, err
	}

	structure, err := importer.AnalyzeStructure(rows)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Layout:         r.Layout(),
		TotalRows:      len(structure.Nodes),
		MaxLevel:       structure.MaxLevel,
		ObjectsByLevel: structure.CountByLevel(),
		Classes:        structure.Classes,
	}, nil
}

func (a *app) CreateObject(ctx context.Context, parentID string, record blueprint.Fields) (*Object, error) {
	bp, err := a.resolver.Resolve(ctx, record)
	if err != nil {
		return nil, err
	}

	obj, err := a.objects.Create(ctx, bp, parentID)
	if err != nil {
		return nil, err
	}

	return &Object{
		ID:        obj.ID,
		Name:      obj.Name,
		ClassID:   obj.ClassID,
		ClassName: bp.ClassName,
		ParentID:  obj.ParentID,
		Values:    bp.Values,
	}, nil
}

func (a *app) ReadObject(ctx context.Context, objectID string) (*Object, error) {
	obj, err := a.objects.Read(ctx, objectID, "")
	if err != nil {
		return nil, err
	}

	return a.toObject(ctx, obj)
}

func (a *app) toObject(ctx context.Context, obj *types.RemoteObject) (*Object, error) {
	defs, err := a.registry.Attributes(ctx, obj.ClassID)
	if err != nil {
		return nil, err
	}

	o := &Object{
		ID:       obj.ID,
		Name:     obj.Name,
		ClassID:  obj.ClassID,
		ParentID: obj.ParentID,
		Values:   obj.ValuesByName(defs),
	}

	if cls, err := a.registry.ClassByID(ctx, obj.ClassID); err == nil {
		o.ClassName = cls.Name
	}

	return o, nil
}

// UpdateObject brings the object in line with the record. A record without a
// class or a name keeps the class and name the object already has.
func (a *app) UpdateObject(ctx context.Context, objectID string, record blueprint.Fields) (bool, error) {
	bp, err := a.resolver.Resolve(ctx, record)

	if errors.Is(err, errors.ErrClassNotSpecified) || errors.Is(err, errors.ErrObjectNameNotSpecified) {
		bp, err = a.resolveWithCurrent(ctx, objectID, record)
	}

	if err != nil {
		return false, err
	}

	return a.objects.Update(ctx, objectID, bp)
}

func (a *app) resolveWithCurrent(ctx context.Context, objectID string, record blueprint.Fields) (*blueprint.Blueprint, error) {
	current, err := a.ReadObject(ctx, objectID)
	if err != nil {
		return nil, err
	}

	aliases := a.resolver.Aliases()
	fields := blueprint.Fields{}
	for k, v := range record {
		fields[k] = v
	}

	bp, err := a.resolver.Resolve(ctx, fields)
	if errors.Is(err, errors.ErrClassNotSpecified) {
		if current.ClassName == "" {
			return nil, err
		}
		fields[aliases.Class[0]] = current.ClassName
		bp, err = a.resolver.Resolve(ctx, fields)
	}

	if errors.Is(err, errors.ErrObjectNameNotSpecified) {
		fields[aliases.Name[0]] = current.Name
		bp, err = a.resolver.Resolve(ctx, fields)
	}

	return bp, err
}

func (a *app) DeleteObject(ctx context.Context, objectID string) (bool, error) {
	return a.objects.Delete(ctx, objectID)
}

func (a *app) Close() {
	a.journal.Close()
}
