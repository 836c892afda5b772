// Package shapecheck validates configuration documents against declarative
// schema documents.
//
// A schema document is written in a JSON Schema shaped dialect (type,
// properties, required, additionalProperties, items, enum, oneOf with an
// optional discriminator, $ref/$defs). LoadBytes compiles it once into an
// immutable Document; Validate walks a candidate value in lock-step with the
// schema and returns every mismatch as a Violation with a JSON Pointer path.
//
// Design policy:
//   - Keep only public APIs in the root package; put the node model and the
//     walk under internal/.
//   - Place the wire form under jsonschema/, candidate decoding under decode/,
//     output formatting under report/, and the CLI under cmd/shapecheck.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	doc, err := shapecheck.LoadFile("plugin.schema.json")
//	violations, err := doc.ValidateBytes(raw)
//	if len(violations) > 0 { ... }
package shapecheck
