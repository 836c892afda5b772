package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/shapecheck/shapecheck/internal/ir"
)

// Violation is the engine-level mismatch record. The public package converts
// these into shapecheck.Violation so the engine stays free of public types.
type Violation struct {
	Path     string // JSON Pointer into the candidate document
	Code     string
	Expected string
	Actual   string
}

// Codes emitted by the walk. The public package re-exports matching consts.
const (
	CodeInvalidType          = "invalid_type"
	CodeRequired             = "required"
	CodeUnknownKey           = "unknown_key"
	CodeInvalidEnum          = "invalid_enum"
	CodeDiscriminatorMissing = "discriminator_missing"
	CodeDiscriminatorUnknown = "discriminator_unknown"
	CodeNoVariant            = "no_variant"
)

// Options controls walk behavior.
type Options struct {
	FailFast      bool
	MaxViolations int // 0 = unlimited
}

// Validate walks value in lock-step with root, resolving references through
// defs, and returns every mismatch found. It never panics on malformed
// candidate trees; anything unexpected surfaces as a violation.
func Validate(root ir.Schema, defs map[string]ir.Schema, value any, opt Options) []Violation {
	w := &walker{defs: defs, opt: opt}
	w.walk("", root, value)
	return w.out
}

type walker struct {
	defs map[string]ir.Schema
	opt  Options
	out  []Violation
	full bool
}

// add records a violation and reports whether the walk should stop.
func (w *walker) add(v Violation) bool {
	w.out = append(w.out, v)
	if w.opt.FailFast {
		w.full = true
	}
	if w.opt.MaxViolations > 0 && len(w.out) >= w.opt.MaxViolations {
		w.full = true
	}
	return w.full
}

func (w *walker) walk(path string, s ir.Schema, v any) {
	if w.full {
		return
	}
	switch n := s.(type) {
	case *ir.Ref:
		target, ok := w.defs[n.Name]
		if !ok {
			// load-time resolution makes this unreachable; guard anyway
			w.add(Violation{Path: orRoot(path), Code: CodeInvalidType, Expected: "schema " + strconv.Quote(n.Name), Actual: Summarize(v)})
			return
		}
		w.walk(path, target, v)
	case *ir.Primitive:
		w.walkPrimitive(path, n, v)
	case *ir.Object:
		w.walkObject(path, n, v)
	case *ir.Array:
		w.walkArray(path, n, v)
	case *ir.OneOf:
		w.walkOneOf(path, n, v)
	case *ir.Enum:
		w.walkEnum(path, n, v)
	}
}

func (w *walker) walkPrimitive(path string, p *ir.Primitive, v any) {
	if ValueKind(v) != p.Name {
		w.add(Violation{Path: orRoot(path), Code: CodeInvalidType, Expected: p.Name, Actual: Summarize(v)})
	}
}

func (w *walker) walkObject(path string, o *ir.Object, v any) {
	m, ok := v.(map[string]any)
	if !ok {
		w.add(Violation{Path: orRoot(path), Code: CodeInvalidType, Expected: "object", Actual: Summarize(v)})
		return
	}
	for _, f := range o.Fields {
		child := path + "/" + EscapeToken(f.Name)
		val, exists := m[f.Name]
		if !exists {
			if _, req := o.Required[f.Name]; req {
				if w.add(Violation{Path: child, Code: CodeRequired, Expected: "required field " + strconv.Quote(f.Name), Actual: "missing"}) {
					return
				}
			}
			continue
		}
		w.walk(child, f.Schema, val)
		if w.full {
			return
		}
	}
	if !o.Closed {
		return
	}
	// unknown keys in sorted order for deterministic output
	var unknown []string
	for k := range m {
		if _, known := o.Field(k); !known {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		if w.add(Violation{Path: path + "/" + EscapeToken(k), Code: CodeUnknownKey, Expected: "no undeclared properties", Actual: "unknown property " + strconv.Quote(k)}) {
			return
		}
	}
}

func (w *walker) walkArray(path string, a *ir.Array, v any) {
	arr, ok := v.([]any)
	if !ok {
		w.add(Violation{Path: orRoot(path), Code: CodeInvalidType, Expected: "array", Actual: Summarize(v)})
		return
	}
	for i, el := range arr {
		w.walk(path+"/"+strconv.Itoa(i), a.Item, el)
		if w.full {
			return
		}
	}
}

func (w *walker) walkOneOf(path string, u *ir.OneOf, v any) {
	if u.Discriminator != "" {
		m, ok := v.(map[string]any)
		if !ok {
			w.add(Violation{Path: orRoot(path), Code: CodeInvalidType, Expected: "object", Actual: Summarize(v)})
			return
		}
		dpath := path + "/" + EscapeToken(u.Discriminator)
		tag, _ := m[u.Discriminator].(string)
		if tag == "" {
			w.add(Violation{Path: dpath, Code: CodeDiscriminatorMissing, Expected: "discriminator field " + strconv.Quote(u.Discriminator), Actual: Summarize(m[u.Discriminator])})
			return
		}
		variant, ok := u.Mapping[tag]
		if !ok {
			w.add(Violation{Path: dpath, Code: CodeDiscriminatorUnknown, Expected: "one of " + mappingKeys(u.Mapping), Actual: strconv.Quote(tag)})
			return
		}
		// report only the selected branch
		w.walk(path, variant, v)
		return
	}
	for _, variant := range u.Variants {
		sub := &walker{defs: w.defs, opt: Options{FailFast: true}}
		sub.walk(path, variant, v)
		if len(sub.out) == 0 {
			return
		}
	}
	w.add(Violation{Path: orRoot(path), Code: CodeNoVariant, Expected: "one of: " + describeVariants(u.Variants), Actual: Summarize(v)})
}

func (w *walker) walkEnum(path string, e *ir.Enum, v any) {
	for _, allowed := range e.Values {
		if literalEqual(allowed, v) {
			return
		}
	}
	w.add(Violation{Path: orRoot(path), Code: CodeInvalidEnum, Expected: "one of " + describeLiterals(e.Values), Actual: Summarize(v)})
}

// ValueKind reports the JSON kind name of a decoded value. Number types cover
// the shapes produced by the JSON, YAML, and TOML decoders.
func ValueKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, json.Number:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return "unknown"
	}
}

// Summarize renders a short description of a candidate value for messages.
func Summarize(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(t)
	case string:
		return quoteShort(t)
	case json.Number:
		return t.String()
	case map[string]any:
		return "object"
	case []any:
		return fmt.Sprintf("array(%d)", len(t))
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

const maxSummaryLen = 40

func quoteShort(s string) string {
	if len(s) > maxSummaryLen {
		s = s[:maxSummaryLen] + "..."
	}
	return strconv.Quote(s)
}

// EscapeToken escapes a JSON Pointer reference token (RFC 6901).
func EscapeToken(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

func orRoot(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

// literalEqual compares enum literals by value, normalizing numeric
// representations so 1, 1.0, and json.Number("1") compare equal.
func literalEqual(a, b any) bool {
	if af, aok := toFloat(a); aok {
		bf, bok := toFloat(b)
		return bok && af == bf
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func mappingKeys(m map[string]ir.Schema) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, strconv.Quote(k))
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

func describeVariants(vs []ir.Schema) string {
	parts := make([]string, 0, len(vs))
	for _, s := range vs {
		parts = append(parts, Describe(s))
	}
	return strings.Join(parts, ", ")
}

// Describe renders a one-word description of a schema node for messages.
func Describe(s ir.Schema) string {
	switch n := s.(type) {
	case *ir.Primitive:
		return n.Name
	case *ir.Object:
		return "object"
	case *ir.Array:
		return "array"
	case *ir.Enum:
		return "enum(" + describeLiterals(n.Values) + ")"
	case *ir.OneOf:
		return "oneOf"
	case *ir.Ref:
		return "$" + n.Name
	default:
		return "schema"
	}
}

func describeLiterals(vals []any) string {
	parts := make([]string, 0, len(vals))
	for _, v := range vals {
		parts = append(parts, Summarize(v))
	}
	return strings.Join(parts, ", ")
}
