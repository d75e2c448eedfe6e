// Package output provides styling helpers for terminal output.
//
// Styles degrade to plain text when the writer is not a terminal, so the
// same rendering code serves interactive use, pipes and tests.
package output

import (
	"io"

	"github.com/muesli/termenv"
)

// Styles provides styled output helpers for the CLI.
type Styles struct {
	output *termenv.Output
}

// NewStyles creates a new Styles instance for the given writer.
func NewStyles(w io.Writer) *Styles {
	return &Styles{
		output: termenv.NewOutput(w),
	}
}

// Success returns a styled success string (green + bold).
func (s *Styles) Success(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("2")).
		Bold().
		String()
}

// Error returns a styled error string (red + bold).
func (s *Styles) Error(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("1")).
		Bold().
		String()
}

// Keyword returns a styled clause keyword or heading (bold).
func (s *Styles) Keyword(text string) string {
	return s.output.String(text).
		Bold().
		String()
}

// Identifier returns a styled identifier (yellow).
func (s *Styles) Identifier(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("3")).
		String()
}

// Literal returns a styled number or string literal (magenta).
func (s *Styles) Literal(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("5")).
		String()
}

// Operator returns a styled operator or punctuation (cyan).
func (s *Styles) Operator(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("6")).
		String()
}

// Dim returns dimmed text (for secondary information).
func (s *Styles) Dim(text string) string {
	return s.output.String(text).
		Faint().
		String()
}

// Timing returns a styled timing string. Slow operations are red, the rest
// are dimmed.
func (s *Styles) Timing(text string, isSlowOperation bool) string {
	if isSlowOperation {
		return s.output.String(text).
			Foreground(s.output.Color("1")).
			String()
	}
	return s.Dim(text)
}
