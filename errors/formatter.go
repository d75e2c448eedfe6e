// Package errors renders query errors for different consumers.
//
// Error types stay in the package that raises them (the parser); this package
// only handles presentation. Two implementations of Formatter are provided:
//   - TextFormatter: message plus the offending source line and a caret
//   - JSONFormatter: structured JSON for tools and editors
package errors

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/cosmosql/ast"
	"github.com/robinvdvleuten/cosmosql/parser"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// positioned is implemented by errors that know where they happened.
type positioned interface {
	GetPosition() ast.Position
	Error() string
}

// TextFormatter formats errors for command-line output.
type TextFormatter struct {
	source string // Optional query text for source context
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the query text used to show the offending line.
func WithSource(source string) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.source = source
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error. Positioned errors get source context when
// source text is available.
func (tf *TextFormatter) Format(err error) string {
	var e positioned
	if stdErrors.As(err, &e) && tf.source != "" {
		return tf.formatWithSourceContext(e.GetPosition(), err.Error())
	}
	return err.Error()
}

// FormatAll formats multiple errors, separating them with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, tf.Format(err))
	}
	return strings.Join(parts, "\n\n")
}

// formatWithSourceContext writes the message followed by up to two lines
// before the error line, the error line with a caret, and one line after.
func (tf *TextFormatter) formatWithSourceContext(pos ast.Position, message string) string {
	var buf strings.Builder

	buf.WriteString(message)
	buf.WriteString("\n\n")

	for _, line := range ContextLines(tf.source, pos) {
		buf.WriteString("   ")
		buf.WriteString(line.Text)
		buf.WriteByte('\n')

		if line.IsError {
			buf.WriteString("   ")
			buf.WriteString(CaretPadding(line.Text, pos.Column))
			buf.WriteString("^\n")
		}
	}

	return buf.String()
}

// SourceLine is one line of query text shown around an error.
type SourceLine struct {
	Number  int // 1-indexed
	Text    string
	IsError bool // The line the error points at
}

// ContextLines returns the lines around pos: two before and one after.
func ContextLines(source string, pos ast.Position) []SourceLine {
	lines := strings.Split(source, "\n")

	start := pos.Line - 3
	end := pos.Line

	if start < 0 {
		start = 0
	}
	if end >= len(lines) {
		end = len(lines) - 1
	}
	if start > end {
		return nil
	}

	result := make([]SourceLine, 0, end-start+1)
	for i := start; i <= end; i++ {
		result = append(result, SourceLine{
			Number:  i + 1,
			Text:    lines[i],
			IsError: i == pos.Line-1,
		})
	}
	return result
}

// CaretPadding returns the whitespace that puts a caret under the given
// 1-indexed byte column of line. Tabs are kept as tabs and wide characters
// count by their display width.
func CaretPadding(line string, column int) string {
	if column <= 1 {
		return ""
	}

	prefix := line
	if column-1 < len(line) {
		prefix = line[:column-1]
	}

	var buf strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			buf.WriteByte('\t')
			continue
		}
		buf.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}

	// Columns past the end of the line (end of input) sit after the text.
	if extra := column - 1 - len(prefix); extra > 0 {
		buf.WriteString(strings.Repeat(" ", extra))
	}

	return buf.String()
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string            `json:"type"`
	Message  string            `json:"message"`
	Position *PositionJSON     `json:"position,omitempty"`
	Details  map[string]string `json:"details,omitempty"`
}

// PositionJSON represents a source position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename,omitempty"`
	Offset   int    `json:"offset"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.ToJSON(err))
	return string(data)
}

// FormatAll formats multiple errors as a JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.ToJSON(err))
	}
	data, _ := json.MarshalIndent(result, "", "  ")
	return string(data)
}

// ToJSON converts an error to ErrorJSON.
func (jf *JSONFormatter) ToJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    "error",
		Message: err.Error(),
	}

	var p positioned
	if stdErrors.As(err, &p) {
		pos := p.GetPosition()
		errJSON.Position = &PositionJSON{
			Filename: pos.Filename,
			Offset:   pos.Offset,
			Line:     pos.Line,
			Column:   pos.Column,
		}
	}

	var parseErr *parser.ParseError
	var strErr *parser.UnterminatedStringError

	switch {
	case stdErrors.As(err, &parseErr):
		errJSON.Type = "parse_error"
		errJSON.Details = map[string]string{
			"expected": parseErr.Expected,
			"got":      parseErr.Got,
		}
	case stdErrors.As(err, &strErr):
		errJSON.Type = "unterminated_string"
		errJSON.Details = map[string]string{
			"quote": fmt.Sprintf("%c", strErr.Quote),
		}
	}

	return errJSON
}
