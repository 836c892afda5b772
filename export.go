package shapecheck

import (
	"sort"

	"github.com/goccy/go-json"

	"github.com/shapecheck/shapecheck/internal/ir"
	"github.com/shapecheck/shapecheck/jsonschema"
)

// Export projects the compiled model back into the declarative wire form.
// Reloading the result yields a document that validates every candidate
// identically (round-trip property).
func (d *Document) Export() *jsonschema.Schema {
	out := exportNode(d.root)
	if len(d.defNames) > 0 {
		out.Defs = make(map[string]*jsonschema.Schema, len(d.defNames))
		for _, name := range d.defNames {
			out.Defs[name] = exportNode(d.defs[name])
		}
	}
	return out
}

// ExportBytes renders Export as indented JSON.
func (d *Document) ExportBytes() ([]byte, error) {
	return json.MarshalIndent(d.Export(), "", "  ")
}

func exportNode(s ir.Schema) *jsonschema.Schema {
	switch n := s.(type) {
	case *ir.Primitive:
		return &jsonschema.Schema{Type: n.Name}
	case *ir.Array:
		return &jsonschema.Schema{Type: "array", Items: exportNode(n.Item)}
	case *ir.Object:
		out := &jsonschema.Schema{Type: "object"}
		if len(n.Fields) > 0 {
			out.Properties = make(map[string]*jsonschema.Schema, len(n.Fields))
			for _, f := range n.Fields {
				out.Properties[f.Name] = exportNode(f.Schema)
			}
		}
		if len(n.Required) > 0 {
			req := make([]string, 0, len(n.Required))
			for name := range n.Required {
				req = append(req, name)
			}
			sort.Strings(req)
			out.Required = req
		}
		if n.Closed {
			closed := false
			out.AdditionalProperties = &closed
		}
		return out
	case *ir.OneOf:
		out := &jsonschema.Schema{Discriminator: n.Discriminator}
		out.OneOf = make([]*jsonschema.Schema, 0, len(n.Variants))
		for _, v := range n.Variants {
			out.OneOf = append(out.OneOf, exportNode(v))
		}
		return out
	case *ir.Enum:
		vals := make([]any, len(n.Values))
		copy(vals, n.Values)
		return &jsonschema.Schema{Enum: vals}
	case *ir.Ref:
		return &jsonschema.Schema{Ref: defsPrefix + n.Name}
	default:
		return &jsonschema.Schema{}
	}
}
