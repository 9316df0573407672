package metadata

import (
	"context"
	"strings"
	"time"

	"github.com/diwise/object-importer/pkg/objectstore/client"
	"github.com/diwise/object-importer/pkg/objectstore/errors"
	"github.com/diwise/object-importer/pkg/objectstore/types"
)

// Registry answers class and attribute questions about the store, backed by one
// cache per kind of lookup. Every Registry owns its caches.
type Registry struct {
	byName     *Cache[*types.ClassMetadata]
	byID       *Cache[*types.ClassMetadata]
	attributes *Cache[[]types.AttributeDef]
	linked     *Cache[[]types.ObjectRef]
}

func NewRegistry(c client.Client, ttl time.Duration, maxEntries int, options ...CacheOption) (*Registry, error) {
	byName, err := NewCache[*types.ClassMetadata](ttl, maxEntries, c.FetchClassByName, options...)
	if err != nil {
		return nil, err
	}

	byID, err := NewCache[*types.ClassMetadata](ttl, maxEntries, c.FetchClassByID, options...)
	if err != nil {
		return nil, err
	}

	attributes, err := NewCache[[]types.AttributeDef](ttl, maxEntries, c.FetchAttributeDefs, options...)
	if err != nil {
		return nil, err
	}

	linked, err := NewCache[[]types.ObjectRef](ttl, maxEntries, func(ctx context.Context, key string) ([]types.ObjectRef, error) {
		classID, rootID, _ := strings.Cut(key, "/")
		return c.FindObjectsByClass(ctx, classID, rootID)
	}, options...)
	if err != nil {
		return nil, err
	}

	return &Registry{
		byName:     byName,
		byID:       byID,
		attributes: attributes,
		linked:     linked,
	}, nil
}

func (r *Registry) ClassByName(ctx context.Context, name string) (*types.ClassMetadata, error) {
	return r.byName.Get(ctx, name)
}

func (r *Registry) ClassByID(ctx context.Context, classID string) (*types.ClassMetadata, error) {
	return r.byID.Get(ctx, classID)
}

func (r *Registry) Attributes(ctx context.Context, classID string) ([]types.AttributeDef, error) {
	return r.attributes.Get(ctx, classID)
}

// Class returns the named class together with its attribute definitions
func (r *Registry) Class(ctx context.Context, name string) (types.ClassMetadata, error) {
	cls, err := r.ClassByName(ctx, name)
	if err != nil {
		return types.ClassMetadata{}, err
	}

	attrs, err := r.Attributes(ctx, cls.ID)
	if err != nil {
		return types.ClassMetadata{}, err
	}

	return types.ClassMetadata{
		ID:         cls.ID,
		Name:       cls.Name,
		Attributes: attrs,
	}, nil
}

func (r *Registry) Attribute(ctx context.Context, classID, name string) (types.AttributeDef, error) {
	attrs, err := r.Attributes(ctx, classID)
	if err != nil {
		return types.AttributeDef{}, err
	}

	def, ok := types.FindAttribute(attrs, name)
	if !ok {
		return types.AttributeDef{}, errors.NewAttributeNotFoundError(classID, name)
	}

	return def, nil
}

// LinkedObjects returns the objects a reference constrained to the class and
// root may point to. An empty rootID searches the whole store.
func (r *Registry) LinkedObjects(ctx context.Context, classID, rootID string) ([]types.ObjectRef, error) {
	return r.linked.Get(ctx, classID+"/"+rootID)
}

func (r *Registry) InvalidateLinkedObjects(classID, rootID string) {
	r.linked.Invalidate(classID + "/" + rootID)
}

func (r *Registry) InvalidateClass(name string) {
	r.byName.Invalidate(name)
}

func (r *Registry) InvalidateClassByID(classID string) {
	r.byID.Invalidate(classID)
}

func (r *Registry) InvalidateAttributes(classID string) {
	r.attributes.Invalidate(classID)
}
