package blueprint

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/diwise/object-importer/pkg/objectstore/errors"
	"github.com/diwise/object-importer/pkg/objectstore/types"
	"github.com/diwise/object-importer/pkg/objectstore/types/values"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

type Aliases struct {
	Level []string `yaml:"level"`
	Class []string `yaml:"class"`
	Name  []string `yaml:"name"`
}

func DefaultAliases() Aliases {
	return Aliases{
		Level: []string{"Уровень", "Level", "Вложенность"},
		Class: []string{"Класс", "Class", "Тип объекта"},
		Name:  []string{"Имя объекта", "Name", "Название объекта", "Наименование"},
	}
}

// WithDefaults fills any empty alias list with the default one
func (a Aliases) WithDefaults() Aliases {
	d := DefaultAliases()
	if len(a.Level) == 0 {
		a.Level = d.Level
	}
	if len(a.Class) == 0 {
		a.Class = d.Class
	}
	if len(a.Name) == 0 {
		a.Name = d.Name
	}
	return a
}

// Blueprint binds a record to a class of the store. Values hold native values
// keyed by the attribute name as the class defines it.
type Blueprint struct {
	ClassID    string                        `json:"classId"`
	ClassName  string                        `json:"className"`
	ObjectName string                        `json:"objectName"`
	Attributes map[string]types.AttributeDef `json:"-"`
	Values     map[string]any                `json:"values"`
	Ignored    []string                      `json:"ignored,omitempty"`
}

// WireAttributes converts every value of the blueprint into its wire form
func (b Blueprint) WireAttributes() ([]types.WireAttribute, error) {
	return b.wireAttributes(slices.Sorted(maps.Keys(b.Values)))
}

func (b Blueprint) wireAttributes(names []string) ([]types.WireAttribute, error) {
	attrs := make([]types.WireAttribute, 0, len(names))

	for _, name := range names {
		def, ok := b.Attributes[name]
		if !ok {
			return nil, errors.NewAttributeNotFoundError(b.ClassName, name)
		}

		w, err := values.ToWire(def, b.Values[name])
		if err != nil {
			return nil, err
		}

		attrs = append(attrs, types.WireAttribute{
			ID:    def.ID,
			Name:  def.Name,
			Type:  def.Type.Code(),
			Value: w,
		})
	}

	return attrs, nil
}

// WireAttributesFor converts the named values only
func (b Blueprint) WireAttributesFor(names []string) ([]types.WireAttribute, error) {
	return b.wireAttributes(names)
}

type ClassLookup interface {
	Class(ctx context.Context, name string) (types.ClassMetadata, error)
}

type Resolver struct {
	classes ClassLookup
	aliases Aliases
}

func NewResolver(classes ClassLookup, aliases Aliases) *Resolver {
	return &Resolver{
		classes: classes,
		aliases: aliases.WithDefaults(),
	}
}

func (r *Resolver) Aliases() Aliases {
	return r.aliases
}

// Resolve binds a record to its class. Fields that the class does not define are
// dropped and listed in Ignored. Cell text of a Row is parsed into the type of
// its attribute here, other values are kept as given and type errors surface
// when the blueprint is converted to wire attributes.
func (r *Resolver) Resolve(ctx context.Context, record Record) (*Blueprint, error) {
	n := record.normalize(r.aliases)

	if n.className == "" {
		return nil, errors.NewClassNotSpecifiedError()
	}

	class, err := r.classes.Class(ctx, n.className)
	if err != nil {
		return nil, err
	}

	if n.objectName == "" {
		return nil, errors.NewObjectNameNotSpecifiedError()
	}

	bp := &Blueprint{
		ClassID:    class.ID,
		ClassName:  class.Name,
		ObjectName: n.objectName,
		Attributes: class.AttributesByName(),
		Values:     map[string]any{},
	}

	keys := slices.Sorted(maps.Keys(n.fields))
	matched := map[string]bool{}

	for _, key := range keys {
		if def, ok := bp.Attributes[key]; ok {
			v, err := n.value(def, key)
			if err != nil {
				return nil, err
			}
			bp.Values[def.Name] = v
			matched[key] = true
		}
	}

	for _, key := range keys {
		if matched[key] {
			continue
		}

		def, ok := findFold(class.Attributes, key)
		if !ok {
			bp.Ignored = append(bp.Ignored, key)
			continue
		}

		if _, taken := bp.Values[def.Name]; taken {
			bp.Ignored = append(bp.Ignored, key)
			continue
		}

		v, err := n.value(def, key)
		if err != nil {
			return nil, err
		}
		bp.Values[def.Name] = v
	}

	if len(bp.Ignored) > 0 {
		logging.GetFromContext(ctx).Warn("ignoring fields not defined by class",
			"class", class.Name, "object", bp.ObjectName, "fields", strings.Join(bp.Ignored, ", "))
	}

	return bp, nil
}

func findFold(defs []types.AttributeDef, name string) (types.AttributeDef, bool) {
	name = strings.TrimSpace(name)
	for _, d := range defs {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return types.AttributeDef{}, false
}

func (n normalized) value(def types.AttributeDef, key string) (any, error) {
	v := n.fields[key]

	if s, ok := v.(string); ok && n.cellText {
		return values.FromText(def, s)
	}

	return v, nil
}
