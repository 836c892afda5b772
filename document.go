package shapecheck

import (
	"github.com/shapecheck/shapecheck/internal/ir"
)

// Document is a compiled schema document: one root node plus the named
// sub-schemas it may reference. Documents are immutable after load and safe to
// reuse across arbitrarily many validation calls, including concurrently.
type Document struct {
	root     ir.Schema
	defs     map[string]ir.Schema
	defNames []string // sorted, for deterministic export
}

// DefNames returns the names of the document's named sub-schemas in sorted
// order.
func (d *Document) DefNames() []string {
	out := make([]string, len(d.defNames))
	copy(out, d.defNames)
	return out
}
