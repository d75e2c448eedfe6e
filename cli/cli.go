// Package cli implements the cosmosql command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/robinvdvleuten/cosmosql/telemetry"
)

var (
	successSymbol = "✓"
	errorSymbol   = "✗"
	infoSymbol    = "→"

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D7D7", Dark: "#00D7D7"})
)

func printSuccess(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		successStyle.Render(successSymbol),
		message,
	)
}

func printError(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		errorStyle.Render(errorSymbol),
		errorStyle.Render(message),
	)
}

func printInfof(w io.Writer, format string, args ...interface{}) {
	formatted := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(w, "%s %s\n",
		infoStyle.Render(infoSymbol),
		formatted,
	)
}

// promptQuery asks for a query on the terminal.
func promptQuery() (string, error) {
	var query string

	err := huh.NewText().
		Title("Query").
		Placeholder("SELECT * FROM c").
		Value(&query).
		Run()
	if err != nil {
		return "", fmt.Errorf("failed to read query: %w", err)
	}

	return query, nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// QueryInput accepts query text directly, "@path" to read it from a file, or
// "-" for stdin. When the argument is omitted the query is read from stdin,
// or prompted for when stdin is a terminal.
type QueryInput struct {
	Filename string // "<stdin>", a file path, or empty for inline text
	Text     string

	loaded bool
}

// Decode implements kong.MapperValue.
func (q *QueryInput) Decode(ctx *kong.DecodeContext) error {
	var value string
	if err := ctx.Scan.PopValueInto("query", &value); err != nil {
		return err
	}

	switch {
	case value == "-":
		return q.readStdin(os.Stdin)

	case strings.HasPrefix(value, "@"):
		filename := strings.TrimPrefix(value, "@")
		contents, err := os.ReadFile(filename)
		if err != nil {
			return err
		}
		q.Filename = filename
		q.Text = string(contents)

	default:
		q.Filename = ""
		q.Text = value
	}

	q.loaded = true
	return nil
}

// EnsureContents fills in the query when no argument was given.
func (q *QueryInput) EnsureContents() error {
	return q.ensureContents(os.Stdin, isTerminal(), promptQuery)
}

func (q *QueryInput) ensureContents(stdin io.Reader, interactive bool, prompt func() (string, error)) error {
	if q.loaded {
		return nil
	}

	if !interactive {
		return q.readStdin(stdin)
	}

	query, err := prompt()
	if err != nil {
		return err
	}
	q.Filename = ""
	q.Text = query
	q.loaded = true
	return nil
}

func (q *QueryInput) readStdin(r io.Reader) error {
	contents, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read from stdin: %w", err)
	}
	q.Filename = "<stdin>"
	q.Text = string(contents)
	q.loaded = true
	return nil
}

// IsFile reports whether the query was read from a file on disk.
func (q *QueryInput) IsFile() bool {
	return q.Filename != "" && q.Filename != "<stdin>"
}

// Name returns a short label for the query used in telemetry and messages.
func (q *QueryInput) Name() string {
	if q.Filename == "" {
		return "<query>"
	}
	return filepath.Base(q.Filename)
}

// startTelemetry installs a timing collector on the returned context when
// enabled. The returned function ends the root timer and writes the report.
func startTelemetry(globals *Globals, w io.Writer, name string) (context.Context, func()) {
	ctx := context.Background()
	if globals == nil || !globals.Telemetry {
		return ctx, func() {}
	}

	collector := telemetry.NewTimingCollector()
	ctx = telemetry.WithCollector(ctx, collector)

	root := collector.Start(name)
	ctx = telemetry.WithRootTimer(ctx, root)

	return ctx, func() {
		root.End()
		_, _ = fmt.Fprintln(w)
		collector.Report(w)
	}
}
