package shapecheck

// Options bundles validation options. The zero value collects every violation.
type Options struct {
	// FailFast stops the walk at the first violation.
	FailFast bool
	// MaxViolations caps the number of collected violations (0 = unlimited).
	MaxViolations int
}
