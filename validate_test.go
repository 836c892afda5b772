package shapecheck_test

import (
	"errors"
	"testing"

	shapecheck "github.com/shapecheck/shapecheck"
)

const pluginEntrySchema = `{
  "type": "object",
  "additionalProperties": false,
  "required": ["name", "source"],
  "properties": {
    "name": { "type": "string" },
    "source": {
      "type": "object",
      "additionalProperties": false,
      "required": ["type", "repo"],
      "properties": {
        "type": { "enum": ["github"] },
        "repo": { "type": "string" }
      }
    }
  }
}`

func mustLoad(t *testing.T, src string) *shapecheck.Document {
	t.Helper()
	doc, err := shapecheck.LoadBytes([]byte(src))
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return doc
}

func TestValidate_ExactMatch_NoViolations(t *testing.T) {
	doc := mustLoad(t, pluginEntrySchema)
	vs := doc.Validate(map[string]any{
		"name":   "claudash",
		"source": map[string]any{"type": "github", "repo": "x/y"},
	})
	if len(vs) != 0 {
		t.Fatalf("expected no violations, got: %v", vs)
	}
}

func TestValidate_MissingRequiredField(t *testing.T) {
	doc := mustLoad(t, pluginEntrySchema)
	vs := doc.Validate(map[string]any{"name": "claudash"})
	if len(vs) != 1 {
		t.Fatalf("expected exactly one violation, got: %v", vs)
	}
	if vs[0].Path != "/source" || vs[0].Code != shapecheck.CodeRequired {
		t.Fatalf("expected required at /source, got: %+v", vs[0])
	}
	if vs[0].Message != "missing required field" {
		t.Fatalf("unexpected message: %q", vs[0].Message)
	}
}

func TestValidate_StrictObject_UnknownProperty(t *testing.T) {
	doc := mustLoad(t, pluginEntrySchema)
	vs := doc.Validate(map[string]any{
		"name":   "claudash",
		"source": map[string]any{"type": "github", "repo": "x/y"},
		"extra":  float64(1),
	})
	if len(vs) != 1 {
		t.Fatalf("expected exactly one violation, got: %v", vs)
	}
	if vs[0].Path != "/extra" || vs[0].Code != shapecheck.CodeUnknownKey {
		t.Fatalf("expected unknown_key at /extra, got: %+v", vs[0])
	}
}

func TestValidate_PrimitiveKinds_NoCoercion(t *testing.T) {
	doc := mustLoad(t, `{
	  "type": "object",
	  "properties": {
	    "count":   { "type": "number" },
	    "enabled": { "type": "boolean" },
	    "note":    { "type": "null" }
	  }
	}`)
	vs := doc.Validate(map[string]any{
		"count":   true,
		"enabled": float64(1),
		"note":    "set",
	})
	if len(vs) != 3 {
		t.Fatalf("expected 3 violations, got: %v", vs)
	}
	for _, v := range vs {
		if v.Code != shapecheck.CodeInvalidType {
			t.Fatalf("expected invalid_type, got: %+v", v)
		}
	}
}

func TestValidate_ArrayIndexPaths(t *testing.T) {
	doc := mustLoad(t, `{
	  "type": "object",
	  "properties": {
	    "tags": { "type": "array", "items": { "type": "string" } }
	  }
	}`)
	vs := doc.Validate(map[string]any{
		"tags": []any{"ok", float64(2), "ok", nil},
	})
	if len(vs) != 2 {
		t.Fatalf("expected 2 violations, got: %v", vs)
	}
	if vs[0].Path != "/tags/1" || vs[1].Path != "/tags/3" {
		t.Fatalf("expected element paths /tags/1 and /tags/3, got: %v", vs)
	}
}

func TestValidate_Enum(t *testing.T) {
	doc := mustLoad(t, `{
	  "type": "object",
	  "properties": { "category": { "enum": ["productivity", "workflow"] } }
	}`)
	if vs := doc.Validate(map[string]any{"category": "workflow"}); len(vs) != 0 {
		t.Fatalf("expected no violations, got: %v", vs)
	}
	vs := doc.Validate(map[string]any{"category": "games"})
	if len(vs) != 1 || vs[0].Code != shapecheck.CodeInvalidEnum {
		t.Fatalf("expected invalid_enum, got: %v", vs)
	}
}

const sourceUnionSchema = `{
  "discriminator": "type",
  "oneOf": [
    {
      "type": "object",
      "additionalProperties": false,
      "required": ["type", "repo"],
      "properties": {
        "type": { "enum": ["github"] },
        "repo": { "type": "string" }
      }
    },
    {
      "type": "object",
      "additionalProperties": false,
      "required": ["type", "url"],
      "properties": {
        "type": { "enum": ["url"] },
        "url": { "type": "string" }
      }
    }
  ]
}`

func TestValidate_Union_DiscriminatorScopesViolations(t *testing.T) {
	doc := mustLoad(t, sourceUnionSchema)

	// discriminator matches the github variant; the repo error must be
	// reported against that branch only.
	vs := doc.Validate(map[string]any{"type": "github", "repo": float64(7)})
	if len(vs) != 1 {
		t.Fatalf("expected 1 violation, got: %v", vs)
	}
	if vs[0].Path != "/repo" || vs[0].Code != shapecheck.CodeInvalidType {
		t.Fatalf("expected invalid_type at /repo, got: %+v", vs[0])
	}
	for _, v := range vs {
		if v.Code == shapecheck.CodeNoVariant {
			t.Fatalf("discriminated union must never report no_variant: %+v", v)
		}
	}
}

func TestValidate_Union_DiscriminatorMissing(t *testing.T) {
	doc := mustLoad(t, sourceUnionSchema)
	vs := doc.Validate(map[string]any{"repo": "x/y"})
	if len(vs) != 1 || vs[0].Code != shapecheck.CodeDiscriminatorMissing {
		t.Fatalf("expected discriminator_missing, got: %v", vs)
	}
	if vs[0].Path != "/type" {
		t.Fatalf("expected path /type, got: %+v", vs[0])
	}
}

func TestValidate_Union_DiscriminatorUnknown(t *testing.T) {
	doc := mustLoad(t, sourceUnionSchema)
	vs := doc.Validate(map[string]any{"type": "gitlab", "repo": "x/y"})
	if len(vs) != 1 || vs[0].Code != shapecheck.CodeDiscriminatorUnknown {
		t.Fatalf("expected discriminator_unknown, got: %v", vs)
	}
}

func TestValidate_Union_WithoutDiscriminator(t *testing.T) {
	doc := mustLoad(t, `{
	  "oneOf": [ { "type": "string" }, { "type": "number" } ]
	}`)
	if vs := doc.Validate("hello"); len(vs) != 0 {
		t.Fatalf("expected no violations, got: %v", vs)
	}
	if vs := doc.Validate(float64(3)); len(vs) != 0 {
		t.Fatalf("expected no violations, got: %v", vs)
	}
	vs := doc.Validate(true)
	if len(vs) != 1 || vs[0].Code != shapecheck.CodeNoVariant {
		t.Fatalf("expected a single no_variant violation, got: %v", vs)
	}
}

func TestValidate_References(t *testing.T) {
	doc := mustLoad(t, `{
	  "type": "object",
	  "required": ["author"],
	  "properties": { "author": { "$ref": "#/$defs/author" } },
	  "$defs": {
	    "author": {
	      "type": "object",
	      "required": ["name"],
	      "properties": { "name": { "type": "string" } }
	    }
	  }
	}`)
	vs := doc.Validate(map[string]any{"author": map[string]any{}})
	if len(vs) != 1 || vs[0].Path != "/author/name" || vs[0].Code != shapecheck.CodeRequired {
		t.Fatalf("expected required at /author/name, got: %v", vs)
	}
}

func TestValidate_FailFast(t *testing.T) {
	doc := mustLoad(t, pluginEntrySchema)
	vs := doc.Validate(map[string]any{}, shapecheck.Options{FailFast: true})
	if len(vs) != 1 {
		t.Fatalf("fail-fast should stop after the first violation, got: %v", vs)
	}
}

func TestValidate_MaxViolations(t *testing.T) {
	doc := mustLoad(t, `{
	  "type": "array", "items": { "type": "string" }
	}`)
	cand := []any{float64(1), float64(2), float64(3), float64(4)}
	vs := doc.Validate(cand, shapecheck.Options{MaxViolations: 2})
	if len(vs) != 2 {
		t.Fatalf("expected cap of 2 violations, got: %v", vs)
	}
}

func TestValidateBytes_CandidateParseError(t *testing.T) {
	doc := mustLoad(t, pluginEntrySchema)
	_, err := doc.ValidateBytes([]byte("{not json"))
	var cpe *shapecheck.CandidateParseError
	if !errors.As(err, &cpe) {
		t.Fatalf("expected CandidateParseError, got: %v", err)
	}
}

func TestValidateBytes_ReportsViolations(t *testing.T) {
	doc := mustLoad(t, pluginEntrySchema)
	vs, err := doc.ValidateBytes([]byte(`{"name":"claudash"}`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(vs) != 1 || vs[0].Path != "/source" {
		t.Fatalf("expected one violation at /source, got: %v", vs)
	}
}

func TestIs(t *testing.T) {
	doc := mustLoad(t, pluginEntrySchema)
	ok := map[string]any{"name": "claudash", "source": map[string]any{"type": "github", "repo": "x/y"}}
	if !shapecheck.Is(doc, ok) {
		t.Fatalf("expected conforming value")
	}
	if shapecheck.Is(doc, map[string]any{"name": "claudash"}) {
		t.Fatalf("expected non-conforming value")
	}
}

func TestViolations_ErrorSummary(t *testing.T) {
	vs := shapecheck.Violations{
		{Path: "/a", Code: shapecheck.CodeRequired},
		{Path: "/b", Code: shapecheck.CodeInvalidType},
		{Path: "/c", Code: shapecheck.CodeUnknownKey},
		{Path: "/d", Code: shapecheck.CodeInvalidEnum},
	}
	got := vs.Error()
	want := "required at /a; invalid_type at /b; unknown_key at /c; ... (total 4)"
	if got != want {
		t.Fatalf("unexpected summary:\n got: %s\nwant: %s", got, want)
	}
}
