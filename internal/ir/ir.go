// Package ir defines the in-memory node model produced by the schema loader
// and consumed by the validation engine.
package ir

// NodeKind identifies an IR node type.
type NodeKind int

const (
	NodePrimitive NodeKind = iota
	NodeArray
	NodeObject
	NodeOneOf
	NodeEnum
	NodeRef
)

// Schema is the root IR node interface.
type Schema interface {
	Kind() NodeKind
}

// Primitive represents string/number/boolean/null primitives.
type Primitive struct {
	Name string // "string"|"number"|"boolean"|"null" (JSON compatible names)
}

func (p *Primitive) Kind() NodeKind { return NodePrimitive }

// Array represents an array whose elements all satisfy Item.
type Array struct {
	Item Schema
}

func (a *Array) Kind() NodeKind { return NodeArray }

// Field maps a JSON name to a Schema.
type Field struct {
	Name   string
	Schema Schema
}

// Object represents an object with declared fields and an unknown-key policy.
// Fields are kept in name-sorted order for deterministic iteration.
type Object struct {
	Fields   []Field
	Required map[string]struct{}
	Closed   bool // additionalProperties: false
}

func (o *Object) Kind() NodeKind { return NodeObject }

// Field returns the schema for a declared field name.
func (o *Object) Field(name string) (Schema, bool) {
	for i := range o.Fields {
		if o.Fields[i].Name == name {
			return o.Fields[i].Schema, true
		}
	}
	return nil, false
}

// OneOf represents a union. When Discriminator is set, Mapping dispatches on
// the discriminator value (built once at load time); otherwise Variants are
// tried in order.
type OneOf struct {
	Discriminator string
	Variants      []Schema
	Mapping       map[string]Schema // discriminator value -> variant schema
}

func (u *OneOf) Kind() NodeKind { return NodeOneOf }

// Enum represents a fixed set of allowed literals compared by value equality.
type Enum struct {
	Values []any
}

func (e *Enum) Kind() NodeKind { return NodeEnum }

// Ref references a named schema in the same document. Targets are checked
// eagerly at load time; the engine resolves them through a name index.
type Ref struct {
	Name string
}

func (r *Ref) Kind() NodeKind { return NodeRef }
