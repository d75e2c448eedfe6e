package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/cosmosql/formatter"
	"github.com/robinvdvleuten/cosmosql/parser"
)

// FormatCmd prints a query in canonical layout.
type FormatCmd struct {
	Query       QueryInput `help:"Query text, @file, or '-' for stdin (prompted for on a terminal when omitted)." arg:"" optional:""`
	Indentation int        `help:"Projection indentation in the multi-line layout." default:"2"`
	LineWidth   int        `help:"Split the query over multiple lines when wider than this (0 always splits)." default:"80"`
	Lowercase   bool       `help:"Write keywords in lower case."`
}

// Run executes the format command.
func (cmd *FormatCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.Query.EnsureContents(); err != nil {
		return err
	}

	runCtx, report := startTelemetry(globals, ctx.Stderr, fmt.Sprintf("format %s", cmd.Query.Name()))
	defer report()

	sel, rest, err := parser.ParseSelectPartial(runCtx, cmd.Query.Filename, cmd.Query.Text)
	if err != nil {
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(cmd.Query.Text).Render(err))
		printError(ctx.Stderr, "parse error")
		return NewCommandError(1)
	}

	// Formatting would silently drop clauses the parser does not understand.
	if len(rest) > 0 {
		printError(ctx.Stderr, fmt.Sprintf("cannot format %q at %d:%d, only SELECT ... FROM is supported",
			rest[0].Text, rest[0].Line, rest[0].Column))
		return NewCommandError(1)
	}

	opts := []formatter.Option{
		formatter.WithIndentation(cmd.Indentation),
		formatter.WithLineWidth(cmd.LineWidth),
	}
	if cmd.Lowercase {
		opts = append(opts, formatter.WithKeywordCase(formatter.LowerCase))
	}

	return formatter.New(opts...).Format(runCtx, sel, ctx.Stdout)
}
