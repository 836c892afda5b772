package shapecheck

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/shapecheck/shapecheck/internal/ir"
	"github.com/shapecheck/shapecheck/jsonschema"
)

const defsPrefix = "#/$defs/"

// LoadBytes parses a declarative schema document and compiles it into a
// Document. It fails with *SchemaParseError on malformed or unsupported
// schema text and *SchemaReferenceError on dangling or cyclic references.
// All references are checked here so validation never discovers one mid-walk.
func LoadBytes(b []byte) (*Document, error) {
	var ws jsonschema.Schema
	if err := json.Unmarshal(b, &ws); err != nil {
		return nil, &SchemaParseError{Err: err}
	}
	return Compile(&ws)
}

// LoadReader reads the full stream and delegates to LoadBytes.
func LoadReader(r io.Reader) (*Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, &SchemaParseError{Err: err}
	}
	return LoadBytes(b)
}

// LoadFile reads a schema document from disk and delegates to LoadBytes.
func LoadFile(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &SchemaParseError{Err: err}
	}
	return LoadBytes(b)
}

// Compile turns an already-unmarshaled wire schema into a Document.
func Compile(ws *jsonschema.Schema) (*Document, error) {
	c := &compiler{
		defs:       map[string]ir.Schema{},
		unionPaths: map[*ir.OneOf]string{},
	}

	names := make([]string, 0, len(ws.Defs))
	for name := range ws.Defs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		node, err := c.convert(defsPrefix[1:]+name, ws.Defs[name])
		if err != nil {
			return nil, err
		}
		c.defs[name] = node
	}

	root, err := c.convert("", ws)
	if err != nil {
		return nil, err
	}

	if err := c.checkRefs(); err != nil {
		return nil, err
	}
	if err := c.checkCycles(); err != nil {
		return nil, err
	}
	if err := c.buildUnionMappings(); err != nil {
		return nil, err
	}

	return &Document{root: root, defs: c.defs, defNames: names}, nil
}

type compiler struct {
	defs       map[string]ir.Schema
	refs       []refSite
	unionPaths map[*ir.OneOf]string // discriminated unions pending mapping, by schema path
}

type refSite struct {
	name string
	path string
}

func (c *compiler) convert(path string, ws *jsonschema.Schema) (ir.Schema, error) {
	if ws == nil {
		return nil, &SchemaParseError{Path: orRootPath(path), Err: fmt.Errorf("null schema node")}
	}
	switch {
	case ws.Ref != "":
		if !strings.HasPrefix(ws.Ref, defsPrefix) {
			return nil, &SchemaParseError{Path: orRootPath(path), Err: fmt.Errorf("unsupported $ref %q (only %s<name> is supported)", ws.Ref, defsPrefix)}
		}
		name := strings.TrimPrefix(ws.Ref, defsPrefix)
		c.refs = append(c.refs, refSite{name: name, path: orRootPath(path)})
		return &ir.Ref{Name: name}, nil
	case len(ws.Enum) > 0:
		vals := make([]any, len(ws.Enum))
		copy(vals, ws.Enum)
		return &ir.Enum{Values: vals}, nil
	case len(ws.OneOf) > 0:
		u := &ir.OneOf{Discriminator: ws.Discriminator}
		for i, vw := range ws.OneOf {
			variant, err := c.convert(fmt.Sprintf("%s/oneOf/%d", path, i), vw)
			if err != nil {
				return nil, err
			}
			u.Variants = append(u.Variants, variant)
		}
		if u.Discriminator != "" {
			c.unionPaths[u] = orRootPath(path)
		}
		return u, nil
	}

	switch ws.Type {
	case "object":
		return c.convertObject(path, ws)
	case "array":
		if ws.Items == nil {
			return nil, &SchemaParseError{Path: orRootPath(path), Err: fmt.Errorf("array schema requires items")}
		}
		item, err := c.convert(path+"/items", ws.Items)
		if err != nil {
			return nil, err
		}
		return &ir.Array{Item: item}, nil
	case "string", "number", "boolean", "null":
		return &ir.Primitive{Name: ws.Type}, nil
	case "":
		return nil, &SchemaParseError{Path: orRootPath(path), Err: fmt.Errorf("schema node declares no type, enum, oneOf, or $ref")}
	default:
		return nil, &SchemaParseError{Path: orRootPath(path), Err: fmt.Errorf("unsupported type %q", ws.Type)}
	}
}

func (c *compiler) convertObject(path string, ws *jsonschema.Schema) (ir.Schema, error) {
	names := make([]string, 0, len(ws.Properties))
	for name := range ws.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	o := &ir.Object{Required: map[string]struct{}{}}
	for _, name := range names {
		node, err := c.convert(path+"/properties/"+name, ws.Properties[name])
		if err != nil {
			return nil, err
		}
		o.Fields = append(o.Fields, ir.Field{Name: name, Schema: node})
	}
	for _, req := range ws.Required {
		if _, ok := ws.Properties[req]; !ok {
			return nil, &SchemaParseError{Path: orRootPath(path), Err: fmt.Errorf("required field %q is not declared in properties", req)}
		}
		o.Required[req] = struct{}{}
	}
	if ws.AdditionalProperties != nil && !*ws.AdditionalProperties {
		o.Closed = true
	}
	return o, nil
}

func (c *compiler) checkRefs() error {
	for _, site := range c.refs {
		if _, ok := c.defs[site.name]; !ok {
			return &SchemaReferenceError{Ref: site.name, Path: site.path}
		}
	}
	return nil
}

// checkCycles walks the def-to-def reference graph. The model requires the
// graph to be acyclic so validation depth stays bounded.
func (c *compiler) checkCycles() error {
	const (
		white = iota
		grey
		black
	)
	color := map[string]int{}
	var chain []string

	var visit func(name string) *SchemaReferenceError
	visit = func(name string) *SchemaReferenceError {
		color[name] = grey
		chain = append(chain, name)
		for _, dep := range collectRefs(c.defs[name], nil) {
			switch color[dep] {
			case grey:
				cycle := append(append([]string{}, chain...), dep)
				return &SchemaReferenceError{Cycle: cycle}
			case white:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		chain = chain[:len(chain)-1]
		color[name] = black
		return nil
	}

	names := make([]string, 0, len(c.defs))
	for name := range c.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if color[name] == white {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

func collectRefs(s ir.Schema, out []string) []string {
	switch n := s.(type) {
	case *ir.Ref:
		out = append(out, n.Name)
	case *ir.Array:
		out = collectRefs(n.Item, out)
	case *ir.Object:
		for _, f := range n.Fields {
			out = collectRefs(f.Schema, out)
		}
	case *ir.OneOf:
		for _, v := range n.Variants {
			out = collectRefs(v, out)
		}
	}
	return out
}

// buildUnionMappings turns every discriminated union into a tagged-variant
// dispatch table. Each variant must pin the discriminator field to a
// single-value string enum; anything else makes dispatch ambiguous and is
// rejected at load time.
func (c *compiler) buildUnionMappings() error {
	for u, path := range c.unionPaths {
		u.Mapping = make(map[string]ir.Schema, len(u.Variants))
		for i, variant := range u.Variants {
			tag, err := c.variantTag(path, i, u.Discriminator, variant)
			if err != nil {
				return err
			}
			if _, dup := u.Mapping[tag]; dup {
				return &SchemaParseError{Path: path, Err: fmt.Errorf("duplicate discriminator value %q", tag)}
			}
			u.Mapping[tag] = variant
		}
	}
	return nil
}

func (c *compiler) variantTag(path string, idx int, disc string, variant ir.Schema) (string, error) {
	vpath := fmt.Sprintf("%s/oneOf/%d", strings.TrimSuffix(path, "/"), idx)
	obj, ok := c.deref(variant).(*ir.Object)
	if !ok {
		return "", &SchemaParseError{Path: vpath, Err: fmt.Errorf("discriminated union variant must be an object")}
	}
	fs, ok := obj.Field(disc)
	if !ok {
		return "", &SchemaParseError{Path: vpath, Err: fmt.Errorf("variant does not declare discriminator field %q", disc)}
	}
	en, ok := c.deref(fs).(*ir.Enum)
	if !ok || len(en.Values) != 1 {
		return "", &SchemaParseError{Path: vpath, Err: fmt.Errorf("discriminator field %q must be a single-value enum", disc)}
	}
	tag, ok := en.Values[0].(string)
	if !ok {
		return "", &SchemaParseError{Path: vpath, Err: fmt.Errorf("discriminator value must be a string")}
	}
	return tag, nil
}

// deref follows Ref chains; cycle checking has already run by the time
// mappings are built, so this terminates.
func (c *compiler) deref(s ir.Schema) ir.Schema {
	for {
		r, ok := s.(*ir.Ref)
		if !ok {
			return s
		}
		target, ok := c.defs[r.Name]
		if !ok {
			return s
		}
		s = target
	}
}

func orRootPath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
