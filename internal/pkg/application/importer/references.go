package importer

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/diwise/object-importer/internal/pkg/application/blueprint"
	"github.com/diwise/object-importer/pkg/objectstore/errors"
	"github.com/diwise/object-importer/pkg/objectstore/types"
	"github.com/google/uuid"
)

type LinkLookup interface {
	LinkedObjects(ctx context.Context, classID, rootID string) ([]types.ObjectRef, error)
}

// LinkedObjects enables lookup of reference values that name an object instead
// of giving its id
func LinkedObjects(links LinkLookup) func(*Importer) {
	return func(i *Importer) {
		i.links = links
	}
}

// bindReferences replaces every reference value that is not an id with the id
// of the object it names. Candidates are limited by the constraints of the
// attribute and names are compared without regard to case.
func (i *Importer) bindReferences(ctx context.Context, bp *blueprint.Blueprint) error {
	if i.links == nil {
		return nil
	}

	for _, name := range slices.Sorted(maps.Keys(bp.Values)) {
		def, ok := bp.Attributes[name]
		if !ok || def.Type != types.Reference {
			continue
		}

		value, ok := bp.Values[name].(string)
		if !ok || isObjectID(value) {
			continue
		}

		id, err := i.findLinked(ctx, def, value)
		if err != nil {
			return err
		}

		bp.Values[name] = id
	}

	return nil
}

func (i *Importer) findLinked(ctx context.Context, def types.AttributeDef, value string) (string, error) {
	if def.LinkClassID == "" {
		return "", errors.NewReferenceNotFoundError(def.Name, value, "attribute does not name the class of the objects it refers to")
	}

	candidates, err := i.links.LinkedObjects(ctx, def.LinkClassID, def.LinkRootID)
	if err != nil {
		return "", err
	}

	value = strings.TrimSpace(value)
	for _, c := range candidates {
		if strings.EqualFold(strings.TrimSpace(c.Name), value) {
			return c.ID, nil
		}
	}

	return "", errors.NewReferenceNotFoundError(def.Name, value, "no object of the referenced class has that name")
}

func isObjectID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
