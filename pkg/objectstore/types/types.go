package types

import (
	"strings"
)

type AttributeType string

const (
	String      AttributeType = "STRING"
	Integer     AttributeType = "INTEGER"
	Float       AttributeType = "FLOAT"
	Boolean     AttributeType = "BOOLEAN"
	DateTime    AttributeType = "DATETIME"
	Reference   AttributeType = "REFERENCE"
	Unsupported AttributeType = "UNSUPPORTED"
)

// store type codes as used on the wire
const (
	codeInteger   int = 1
	codeString    int = 2
	codeFloat     int = 3
	codeBoolean   int = 4
	codeDateTime  int = 5
	codeText      int = 6
	codeReference int = 8
)

// AttributeTypeFromCode maps a store type code to an AttributeType. Long text
// attributes are treated as strings.
func AttributeTypeFromCode(code int) AttributeType {
	switch code {
	case codeInteger:
		return Integer
	case codeString, codeText:
		return String
	case codeFloat:
		return Float
	case codeBoolean:
		return Boolean
	case codeDateTime:
		return DateTime
	case codeReference:
		return Reference
	}

	return Unsupported
}

func (t AttributeType) Code() int {
	switch t {
	case Integer:
		return codeInteger
	case String:
		return codeString
	case Float:
		return codeFloat
	case Boolean:
		return codeBoolean
	case DateTime:
		return codeDateTime
	case Reference:
		return codeReference
	}

	return 0
}

type AttributeDef struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Type     AttributeType `json:"type"`
	Required bool          `json:"required"`

	// LinkClassID and LinkRootID constrain the objects a reference may point
	// to. They are only set for references.
	LinkClassID string `json:"linkClassId,omitempty"`
	LinkRootID  string `json:"linkRootId,omitempty"`
}

type ClassMetadata struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Attributes []AttributeDef `json:"attributes,omitempty"`
}

// AttributesByName returns the class attributes keyed by their exact name
func (c ClassMetadata) AttributesByName() map[string]AttributeDef {
	m := make(map[string]AttributeDef, len(c.Attributes))
	for _, a := range c.Attributes {
		m[a.Name] = a
	}
	return m
}

// FindAttribute looks for an attribute by exact name first, and then by a case
// insensitive comparison.
func FindAttribute(defs []AttributeDef, name string) (AttributeDef, bool) {
	for _, a := range defs {
		if a.Name == name {
			return a, true
		}
	}

	for _, a := range defs {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}

	return AttributeDef{}, false
}

// ObjectRef names an object found by a search
type ObjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RemoteObject is the store side state of an object. Attribute values are keyed
// by attribute id and hold native values.
type RemoteObject struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	ClassID    string         `json:"classId"`
	ParentID   string         `json:"parentId,omitempty"`
	Attributes map[string]any `json:"attributes"`
}

// ValuesByName rekeys the attribute values of the object by attribute name.
// Values for attributes not present in defs are left out.
func (o RemoteObject) ValuesByName(defs []AttributeDef) map[string]any {
	values := make(map[string]any, len(o.Attributes))
	for _, d := range defs {
		if v, ok := o.Attributes[d.ID]; ok {
			values[d.Name] = v
		}
	}
	return values
}

// WireValue is an attribute value as it is stored on a raw object
type WireValue struct {
	Value any `json:"Value"`
	Type  int `json:"Type"`
}

type RawObject struct {
	ID         string               `json:"Id"`
	Name       string               `json:"Name"`
	ClassID    string               `json:"EntityId"`
	ParentID   string               `json:"-"`
	Attributes map[string]WireValue `json:"Attributes"`
}

// WireAttribute is one entry in a batched attribute set call
type WireAttribute struct {
	ID          string `json:"Id"`
	Name        string `json:"Name"`
	Type        int    `json:"Type"`
	Value       any    `json:"Value"`
	Constraints []any  `json:"Constraints"`
}
