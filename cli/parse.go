package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/cosmosql/errors"
	"github.com/robinvdvleuten/cosmosql/parser"
)

// ParseCmd parses a query and prints its syntax tree.
type ParseCmd struct {
	Query  QueryInput `help:"Query text, @file, or '-' for stdin (prompted for on a terminal when omitted)." arg:"" optional:""`
	Format string     `help:"Output format." enum:"text,json,repr" default:"text" short:"f"`
	Watch  bool       `help:"Re-parse the query file whenever it changes (requires @file)." short:"w"`
}

// Run executes the parse command.
func (cmd *ParseCmd) Run(ctx *kong.Context, globals *Globals) error {
	if cmd.Watch && !cmd.Query.IsFile() {
		return fmt.Errorf("--watch requires a query file, pass it as @path")
	}

	if err := cmd.Query.EnsureContents(); err != nil {
		return err
	}

	runCtx, report := startTelemetry(globals, ctx.Stderr, fmt.Sprintf("parse %s", cmd.Query.Name()))
	defer report()

	if cmd.Watch {
		runCtx, stop := signal.NotifyContext(runCtx, os.Interrupt)
		defer stop()
		return cmd.watch(runCtx, ctx.Stdout, ctx.Stderr)
	}

	if err := cmd.parse(runCtx, ctx.Stdout, ctx.Stderr, cmd.Query.Text); err != nil {
		return NewCommandError(1)
	}
	return nil
}

// parse parses text and writes the result in the selected format. Errors are
// rendered to errW and returned.
func (cmd *ParseCmd) parse(ctx context.Context, w, errW io.Writer, text string) error {
	sel, rest, err := parser.ParseSelectPartial(ctx, cmd.Query.Filename, text)
	if err != nil {
		if cmd.Format == "json" {
			_, _ = fmt.Fprintln(errW, errors.NewJSONFormatter().Format(err))
			return err
		}
		_, _ = fmt.Fprintln(errW, NewErrorRenderer(text).Render(err))
		printError(errW, "parse error")
		return err
	}

	switch cmd.Format {
	case "json":
		data, err := json.MarshalIndent(sel, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode query: %w", err)
		}
		_, _ = fmt.Fprintln(w, string(data))
	case "repr":
		repr.New(w).Println(sel)
	default:
		printSuccess(w, sel.String())
	}

	if len(rest) > 0 {
		printInfof(errW, "%d trailing token(s) ignored, starting at %d:%d %q",
			len(rest), rest[0].Line, rest[0].Column, rest[0].Text)
	}

	return nil
}
