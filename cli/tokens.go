package cli

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/cosmosql/ast"
	"github.com/robinvdvleuten/cosmosql/output"
	"github.com/robinvdvleuten/cosmosql/parser"
	"github.com/robinvdvleuten/cosmosql/telemetry"
)

// TokensCmd shows the lexical tokens of a query.
type TokensCmd struct {
	Query QueryInput `help:"Query text, @file, or '-' for stdin (prompted for on a terminal when omitted)." arg:"" optional:""`
}

// Run executes the tokens command.
func (cmd *TokensCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.Query.EnsureContents(); err != nil {
		return err
	}

	runCtx, report := startTelemetry(globals, ctx.Stderr, fmt.Sprintf("tokens %s", cmd.Query.Name()))
	defer report()

	timer := telemetry.StartTimer(runCtx, "tokenize")
	tokens, err := parser.NewLexer(cmd.Query.Text, cmd.Query.Filename).ScanAll()
	timer.End()
	if err != nil {
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(cmd.Query.Text).Render(err))
		printError(ctx.Stderr, "lex error")
		return NewCommandError(1)
	}

	writeTokens(ctx.Stdout, tokens)
	return nil
}

// writeTokens prints one token per line: KIND line:col "text". Numbers are
// followed by their exact decimal value.
func writeTokens(w io.Writer, tokens []parser.Token) {
	styles := output.NewStyles(w)

	for _, tok := range tokens {
		kind := styleKind(styles, tok.Kind, fmt.Sprintf("%-12s", tok.Kind))

		_, _ = fmt.Fprintf(w, "%s %d:%d    %q", kind, tok.Line, tok.Column, tok.Text)
		if tok.Kind == parser.NUMBER {
			value := ast.NewNumberWithRaw(tok.Value, tok.Text).Decimal()
			_, _ = fmt.Fprintf(w, "  %s", styles.Dim("= "+value.String()))
		}
		_, _ = fmt.Fprintln(w)
	}
}

func styleKind(styles *output.Styles, kind parser.TokenKind, text string) string {
	switch {
	case kind.IsKeyword():
		return styles.Keyword(text)
	case kind == parser.IDENTIFIER:
		return styles.Identifier(text)
	case kind == parser.NUMBER, kind == parser.STRING:
		return styles.Literal(text)
	case kind == parser.UNKNOWN:
		return styles.Error(text)
	default:
		return styles.Operator(text)
	}
}

// KeywordsCmd lists the reserved keywords.
type KeywordsCmd struct{}

// Run executes the keywords command.
func (cmd *KeywordsCmd) Run(ctx *kong.Context) error {
	styles := output.NewStyles(ctx.Stdout)
	for _, kw := range parser.Keywords() {
		_, _ = fmt.Fprintln(ctx.Stdout, styles.Keyword(kw))
	}
	return nil
}
