package shapecheck

import (
	"github.com/goccy/go-json"

	"github.com/shapecheck/shapecheck/i18n"
	"github.com/shapecheck/shapecheck/internal/engine"
)

// Validate walks a decoded candidate value in lock-step with the schema and
// returns every mismatch found (nil means valid). It never panics on
// malformed candidate trees.
func (d *Document) Validate(v any, opts ...Options) Violations {
	var opt Options
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	evs := engine.Validate(d.root, d.defs, v, engine.Options{
		FailFast:      opt.FailFast,
		MaxViolations: opt.MaxViolations,
	})
	if len(evs) == 0 {
		return nil
	}
	out := make(Violations, 0, len(evs))
	for _, ev := range evs {
		out = append(out, Violation{
			Path:     ev.Path,
			Code:     ev.Code,
			Message:  i18n.T(ev.Code, nil),
			Expected: ev.Expected,
			Actual:   ev.Actual,
		})
	}
	return out
}

// ValidateBytes parses a JSON candidate document and validates it. A candidate
// that is not parseable at all fails with *CandidateParseError; shape
// mismatches come back as Violations.
func (d *Document) ValidateBytes(raw []byte, opts ...Options) (Violations, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, &CandidateParseError{Err: err}
	}
	return d.Validate(v, opts...), nil
}

// Is reports whether v conforms to the document's schema.
func Is(d *Document, v any) bool {
	return len(d.Validate(v, Options{FailFast: true})) == 0
}
