package objects

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/diwise/object-importer/internal/pkg/application/blueprint"
	"github.com/diwise/object-importer/pkg/objectstore/client"
	"github.com/diwise/object-importer/pkg/objectstore/errors"
	"github.com/diwise/object-importer/pkg/objectstore/types"
	"github.com/diwise/object-importer/pkg/objectstore/types/values"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("object-importer/objects")

type AttributeSource interface {
	Attributes(ctx context.Context, classID string) ([]types.AttributeDef, error)
	InvalidateAttributes(classID string)
}

type Service struct {
	store        client.Client
	attributes   AttributeSource
	clearMissing bool
}

// ClearMissingAttributes makes Update send null for attributes that are set on
// the object but absent from the desired blueprint.
func ClearMissingAttributes(enabled bool) func(*Service) {
	return func(s *Service) {
		s.clearMissing = enabled
	}
}

func NewService(store client.Client, attributes AttributeSource, options ...func(*Service)) *Service {
	s := &Service{
		store:      store,
		attributes: attributes,
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// Create creates the bare object and then, if the blueprint carries any values,
// sets all attributes in one call.
func (s *Service) Create(ctx context.Context, bp *blueprint.Blueprint, parentID string) (*types.RemoteObject, error) {
	var err error

	ctx, span := tracer.Start(ctx, "create",
		trace.WithAttributes(attribute.String("class-id", bp.ClassID)),
		trace.WithAttributes(attribute.String("parent-id", parentID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	attrs, err := bp.WireAttributes()
	if err != nil {
		return nil, err
	}

	id, err := s.store.CreateObject(ctx, bp.ObjectName, bp.ClassID, parentID)
	if err != nil {
		return nil, err
	}

	if len(attrs) > 0 {
		err = s.store.SetAttributes(ctx, id, attrs)
		if err != nil {
			err = fmt.Errorf("object %s was created but its attributes could not be set: %w", id, err)
			return nil, err
		}
	}

	obj := &types.RemoteObject{
		ID:         id,
		Name:       bp.ObjectName,
		ClassID:    bp.ClassID,
		ParentID:   parentID,
		Attributes: make(map[string]any, len(attrs)),
	}

	for _, a := range attrs {
		obj.Attributes[a.ID], err = values.FromWire(bp.Attributes[a.Name], a.Value)
		if err != nil {
			return nil, err
		}
	}

	return obj, nil
}

// Read fetches an object and converts its attributes to native values. The class
// hint is used when the store does not report the class of the object.
func (s *Service) Read(ctx context.Context, objectID, classHint string) (*types.RemoteObject, error) {
	var err error

	ctx, span := tracer.Start(ctx, "read",
		trace.WithAttributes(attribute.String("object-id", objectID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	obj, _, err := s.read(ctx, objectID, classHint)
	return obj, err
}

func (s *Service) read(ctx context.Context, objectID, classHint string) (*types.RemoteObject, []types.AttributeDef, error) {
	raw, err := s.store.GetObject(ctx, objectID)
	if err != nil {
		return nil, nil, err
	}

	classID := raw.ClassID
	if classID == "" {
		classID = classHint
	}

	if classID == "" {
		return nil, nil, errors.NewClassNotFoundError(fmt.Sprintf("<class of object %s>", objectID))
	}

	defs, err := s.attributes.Attributes(ctx, classID)
	if err != nil {
		return nil, nil, err
	}

	byID := make(map[string]types.AttributeDef, len(defs))
	for _, d := range defs {
		byID[d.ID] = d
	}

	obj := &types.RemoteObject{
		ID:         raw.ID,
		Name:       raw.Name,
		ClassID:    classID,
		ParentID:   raw.ParentID,
		Attributes: make(map[string]any, len(raw.Attributes)),
	}

	for attrID, wv := range raw.Attributes {
		def, ok := byID[attrID]
		if !ok {
			def = types.AttributeDef{ID: attrID, Name: attrID, Type: types.AttributeTypeFromCode(wv.Type)}
		}

		obj.Attributes[attrID], err = values.FromWire(def, wv.Value)
		if err != nil {
			return nil, nil, err
		}
	}

	return obj, defs, nil
}

// Update brings the object in line with the desired blueprint. Only attributes
// whose native value differs from the stored one are sent, and nothing is sent
// when there is no difference. The object is renamed if the names differ.
func (s *Service) Update(ctx context.Context, objectID string, desired *blueprint.Blueprint) (bool, error) {
	var err error

	ctx, span := tracer.Start(ctx, "update",
		trace.WithAttributes(attribute.String("object-id", objectID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	current, defs, err := s.read(ctx, objectID, desired.ClassID)
	if err != nil {
		return false, err
	}

	changes, err := s.diff(current, defs, desired)
	if err != nil {
		if errors.Is(err, errors.ErrAttributeNotFound) {
			s.attributes.InvalidateAttributes(current.ClassID)
		}
		return false, err
	}

	log := logging.GetFromContext(ctx)

	if desired.ObjectName != "" && desired.ObjectName != current.Name {
		err = s.store.RenameObject(ctx, objectID, desired.ObjectName)
		if err != nil {
			return false, err
		}
		log.Debug("renamed object", "object_id", objectID, "from", current.Name, "to", desired.ObjectName)
	}

	if len(changes) == 0 {
		return true, nil
	}

	span.SetAttributes(attribute.Int("changed", len(changes)))

	err = s.store.SetAttributes(ctx, objectID, changes)
	if err != nil {
		return false, err
	}

	log.Debug("updated object attributes", "object_id", objectID, "changed", len(changes))

	return true, nil
}

func (s *Service) diff(current *types.RemoteObject, defs []types.AttributeDef, desired *blueprint.Blueprint) ([]types.WireAttribute, error) {
	have := current.ValuesByName(defs)
	changes := []types.WireAttribute{}
	wanted := map[string]bool{}

	for _, name := range slices.Sorted(maps.Keys(desired.Values)) {
		def, ok := types.FindAttribute(defs, name)
		if !ok {
			return nil, errors.NewAttributeNotFoundError(desired.ClassName, name)
		}
		wanted[def.Name] = true

		want, err := values.Canonical(def, desired.Values[name])
		if err != nil {
			return nil, err
		}

		if values.Equal(want, have[def.Name]) {
			continue
		}

		w, err := values.ToWire(def, want)
		if err != nil {
			return nil, err
		}

		changes = append(changes, wireAttribute(def, w))
	}

	if s.clearMissing {
		for _, def := range defs {
			if wanted[def.Name] || have[def.Name] == nil {
				continue
			}
			changes = append(changes, wireAttribute(def, nil))
		}
	}

	return changes, nil
}

func wireAttribute(def types.AttributeDef, value any) types.WireAttribute {
	return types.WireAttribute{
		ID:    def.ID,
		Name:  def.Name,
		Type:  def.Type.Code(),
		Value: value,
	}
}

// Delete removes the object. Errors from the store, including not found for an
// object that is already gone, are returned as is.
func (s *Service) Delete(ctx context.Context, objectID string) (bool, error) {
	var err error

	ctx, span := tracer.Start(ctx, "delete",
		trace.WithAttributes(attribute.String("object-id", objectID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	err = s.store.DeleteObject(ctx, objectID)
	if err != nil {
		return false, err
	}

	return true, nil
}
