// Package report formats violation lists for people and for tooling. It is
// pure formatting; callers decide where the output goes.
package report

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	shapecheck "github.com/shapecheck/shapecheck"
)

// Entry is the structured form of a single violation.
type Entry struct {
	Path     string `json:"path"`
	Code     string `json:"code"`
	Message  string `json:"message,omitempty"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// Entries converts violations into their structured form.
func Entries(vs shapecheck.Violations) []Entry {
	out := make([]Entry, 0, len(vs))
	for _, v := range vs {
		out = append(out, Entry{
			Path:     v.Path,
			Code:     v.Code,
			Message:  v.Message,
			Expected: v.Expected,
			Actual:   v.Actual,
		})
	}
	return out
}

// WriteHuman renders one line per violation:
//
//	<path>: expected <expected>, got <actual>
func WriteHuman(w io.Writer, vs shapecheck.Violations) error {
	for _, v := range vs {
		if _, err := fmt.Fprintf(w, "%s: expected %s, got %s\n", v.Path, v.Expected, v.Actual); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON renders the structured form as indented JSON.
func WriteJSON(w io.Writer, vs shapecheck.Violations) error {
	b, err := json.MarshalIndent(Entries(vs), "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
