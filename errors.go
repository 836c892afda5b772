package shapecheck

import (
	"fmt"
	"strings"
)

// Load-phase and candidate-phase failures are typed errors, distinct from
// Violations: they abort a run instead of accumulating.

// SchemaParseError reports a schema document that could not be parsed or uses
// a construct the model does not support. Path locates the offending node in
// the schema document when known.
type SchemaParseError struct {
	Path string
	Err  error
}

func (e *SchemaParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("shapecheck: parse schema at %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("shapecheck: parse schema: %v", e.Err)
}

func (e *SchemaParseError) Unwrap() error { return e.Err }

// SchemaReferenceError reports a $ref with no matching $defs entry, or a
// reference cycle. References are checked eagerly so validation never
// discovers a dangling or cyclic reference mid-walk.
type SchemaReferenceError struct {
	Ref   string   // the unresolved target name (dangling case)
	Path  string   // where the reference appears in the schema document
	Cycle []string // the reference chain, when the failure is a cycle
}

func (e *SchemaReferenceError) Error() string {
	if len(e.Cycle) > 0 {
		return fmt.Sprintf("shapecheck: reference cycle: %s", strings.Join(e.Cycle, " -> "))
	}
	return fmt.Sprintf("shapecheck: unresolved $ref %q at %s", e.Ref, e.Path)
}

// CandidateParseError reports a candidate document that is not parseable at
// all. Malformed-but-parseable candidates produce Violations instead.
type CandidateParseError struct {
	Err error
}

func (e *CandidateParseError) Error() string {
	return fmt.Sprintf("shapecheck: parse candidate: %v", e.Err)
}

func (e *CandidateParseError) Unwrap() error { return e.Err }
