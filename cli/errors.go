package cli

import (
	stdErrors "errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robinvdvleuten/cosmosql/ast"
	"github.com/robinvdvleuten/cosmosql/errors"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	// Tabs are kept so the caret padding lines up with the source line.
	errContextStyle = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"}).
		TabWidth(lipgloss.NoTabConversion)
)

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	source string
}

// NewErrorRenderer creates a renderer with the query text for context.
func NewErrorRenderer(source string) *ErrorRenderer {
	return &ErrorRenderer{source: source}
}

// Render formats a single error with styling and context.
func (r *ErrorRenderer) Render(err error) string {
	var e interface {
		GetPosition() ast.Position
		Error() string
	}
	if stdErrors.As(err, &e) && r.source != "" {
		return r.renderWithSourceContext(e.GetPosition(), err.Error())
	}

	return errorStyle.Render(err.Error())
}

// RenderAll formats multiple errors, separating them with blank lines.
func (r *ErrorRenderer) RenderAll(errs []error) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, r.Render(err))
	}
	return strings.Join(parts, "\n\n")
}

func (r *ErrorRenderer) renderWithSourceContext(pos ast.Position, message string) string {
	var buf strings.Builder

	buf.WriteString(errorStyle.Render(message))
	buf.WriteString("\n\n")

	for _, line := range errors.ContextLines(r.source, pos) {
		buf.WriteString("   ")
		buf.WriteString(errContextStyle.Render(line.Text))
		buf.WriteByte('\n')

		if line.IsError && pos.Column > 0 {
			buf.WriteString("   ")
			buf.WriteString(errors.CaretPadding(line.Text, pos.Column))
			buf.WriteString(errCaretStyle.Render("^"))
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}
