package importer

import (
	"context"
	"errors"
	"time"

	"github.com/diwise/object-importer/internal/pkg/application/blueprint"
	"github.com/diwise/object-importer/pkg/objectstore/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency int = 8

var tracer = otel.Tracer("object-importer/importer")

// Source yields the rows of an import in document order
type Source interface {
	ReadRows(ctx context.Context) ([]blueprint.Row, error)
}

// Rows is a Source over rows that have already been read
type Rows []blueprint.Row

func (r Rows) ReadRows(context.Context) ([]blueprint.Row, error) {
	return r, nil
}

type Resolver interface {
	Resolve(ctx context.Context, record blueprint.Record) (*blueprint.Blueprint, error)
}

type Creator interface {
	Create(ctx context.Context, bp *blueprint.Blueprint, parentID string) (*types.RemoteObject, error)
}

type ClassLookup interface {
	Class(ctx context.Context, name string) (types.ClassMetadata, error)
}

type Importer struct {
	resolver    Resolver
	creator     Creator
	classes     ClassLookup
	links       LinkLookup
	concurrency int
}

// Concurrency sets how many objects of one level are created at the same time
func Concurrency(limit int) func(*Importer) {
	return func(i *Importer) {
		if limit > 0 {
			i.concurrency = limit
		}
	}
}

func New(resolver Resolver, creator Creator, classes ClassLookup, options ...func(*Importer)) *Importer {
	i := &Importer{
		resolver:    resolver,
		creator:     creator,
		classes:     classes,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range options {
		opt(i)
	}

	return i
}

// ImportFromSource creates every row of the source below parentID, one level at
// a time. Failures of single rows are reported in the result. An error is only
// returned when the source cannot be read or its rows do not form a hierarchy,
// in which case nothing has been created.
func (i *Importer) ImportFromSource(ctx context.Context, src Source, parentID string) (*ImportResult, error) {
	var err error

	ctx, span := tracer.Start(ctx, "import",
		trace.WithAttributes(attribute.String("parent-id", parentID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	started := time.Now()

	rows, err := src.ReadRows(ctx)
	if err != nil {
		return nil, err
	}

	structure, err := AnalyzeStructure(rows)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		RunID:          uuid.NewString(),
		ParentID:       parentID,
		TotalRows:      len(structure.Nodes),
		CreatedByLevel: map[int]int{},
		Created:        []CreatedObject{},
		Errors:         []RowError{},
		Started:        started,
	}

	ctx = logging.NewContextWithLogger(ctx, logging.GetFromContext(ctx), "run_id", result.RunID)
	log := logging.GetFromContext(ctx)

	log.Info("starting import", "rows", result.TotalRows, "levels", structure.MaxLevel, "parent_id", parentID)

	i.prefetch(ctx, structure.Classes)

	i.run(ctx, structure, parentID, false)

	for level, nodes := range structure.Levels {
		for _, n := range nodes {
			if len(n.ignored) > 0 {
				result.Warnings = append(result.Warnings, RowWarning{Row: n.RowIndex(), Ignored: n.ignored})
			}

			if !n.created {
				result.Errors = append(result.Errors, rowError(n))
				continue
			}

			result.TotalCreated++
			result.CreatedByLevel[level+1]++
			result.Created = append(result.Created, CreatedObject{
				Row:       n.RowIndex(),
				Level:     level + 1,
				ClassName: n.Row.ClassName,
				Name:      n.Row.ObjectName,
				ID:        n.ID,
				ParentID:  parentOf(n, parentID),
			})
		}
	}

	result.Duration = time.Since(started)

	span.SetAttributes(
		attribute.Int("created", result.TotalCreated),
		attribute.Int("failed", len(result.Errors)),
	)

	log.Info("import finished",
		"outcome", string(result.Outcome()),
		"created", result.TotalCreated,
		"failed", len(result.Errors),
		"created_by_level", result.CreatedByLevel,
		"duration", result.Duration.String(),
	)

	return result, nil
}

// PreviewImport validates the structure and resolves every row against the store
// schema, reporting what ImportFromSource would create. No object is created.
func (i *Importer) PreviewImport(ctx context.Context, src Source, parentID string) (*Preview, error) {
	var err error

	ctx, span := tracer.Start(ctx, "preview-import",
		trace.WithAttributes(attribute.String("parent-id", parentID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	rows, err := src.ReadRows(ctx)
	if err != nil {
		return nil, err
	}

	structure, err := AnalyzeStructure(rows)
	if err != nil {
		return nil, err
	}

	i.prefetch(ctx, structure.Classes)

	blueprints := i.run(ctx, structure, parentID, true)

	preview := &Preview{
		ParentID:       parentID,
		TotalRows:      len(structure.Nodes),
		MaxLevel:       structure.MaxLevel,
		ObjectsByLevel: structure.CountByLevel(),
		Classes:        structure.Classes,
		Planned:        []PlannedObject{},
		Errors:         []RowError{},
	}

	for level, nodes := range structure.Levels {
		for _, n := range nodes {
			if !n.created {
				preview.Errors = append(preview.Errors, rowError(n))
				continue
			}

			bp := blueprints[n]
			planned := PlannedObject{
				Row:        n.RowIndex(),
				Level:      level + 1,
				ClassID:    bp.ClassID,
				ClassName:  bp.ClassName,
				ObjectName: bp.ObjectName,
				Values:     bp.Values,
				Ignored:    bp.Ignored,
			}
			if n.Parent != nil {
				planned.ParentRow = n.Parent.RowIndex()
			}
			preview.Planned = append(preview.Planned, planned)
		}
	}

	return preview, nil
}

// run processes the levels in ascending order. A level is finished, with every
// node either created or failed, before the next one is started.
func (i *Importer) run(ctx context.Context, structure *Structure, parentID string, dryRun bool) map[*Node]*blueprint.Blueprint {
	log := logging.GetFromContext(ctx)
	resolved := make([]*blueprint.Blueprint, len(structure.Nodes))
	index := make(map[*Node]int, len(structure.Nodes))
	for idx, n := range structure.Nodes {
		index[n] = idx
	}

	for level, nodes := range structure.Levels {
		g := errgroup.Group{}
		g.SetLimit(i.concurrency)

		for _, n := range nodes {
			if ctx.Err() != nil {
				n.reason = ReasonCancelled
				n.err = ctx.Err()
				continue
			}

			if n.Parent != nil && !n.Parent.created {
				n.reason = ReasonParentFailed
				continue
			}

			g.Go(func() error {
				if ctx.Err() != nil {
					n.reason = ReasonCancelled
					n.err = ctx.Err()
					return nil
				}

				bp, err := i.resolver.Resolve(ctx, n.Row)
				if err == nil {
					n.ignored = bp.Ignored
					err = i.bindReferences(ctx, bp)
				}
				if err == nil {
					if dryRun {
						_, err = bp.WireAttributes()
					} else {
						var obj *types.RemoteObject
						obj, err = i.creator.Create(ctx, bp, parentOf(n, parentID))
						if err == nil {
							n.ID = obj.ID
						}
					}
				}

				if err != nil {
					n.err = err
					n.reason = err.Error()
					if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
						n.reason = ReasonCancelled
					}
					log.Warn("failed to import row",
						"row", n.RowIndex(), "level", level+1, "class", n.Row.ClassName, "err", err.Error())
					return nil
				}

				resolved[index[n]] = bp
				n.created = true
				return nil
			})
		}

		g.Wait()

		log.Debug("level done", "level", level+1, "objects", len(nodes))
	}

	blueprints := make(map[*Node]*blueprint.Blueprint, len(resolved))
	for idx, bp := range resolved {
		if bp != nil {
			blueprints[structure.Nodes[idx]] = bp
		}
	}

	return blueprints
}

// prefetch warms the metadata of every class used by the import. Failures are
// left to surface on the rows that use the class.
func (i *Importer) prefetch(ctx context.Context, classes []string) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.concurrency)

	for _, name := range classes {
		g.Go(func() error {
			if _, err := i.classes.Class(gctx, name); err != nil {
				logging.GetFromContext(ctx).Debug("failed to prefetch class", "class", name, "err", err.Error())
			}
			return nil
		})
	}

	g.Wait()
}

func parentOf(n *Node, rootID string) string {
	if n.Parent == nil {
		return rootID
	}
	return n.Parent.ID
}

func rowError(n *Node) RowError {
	return RowError{
		Row:    n.RowIndex(),
		Level:  n.Row.Level,
		Name:   n.Row.ObjectName,
		Reason: n.reason,
		Err:    n.err,
	}
}
