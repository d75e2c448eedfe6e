package cli

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Tokens   TokensCmd   `cmd:"" help:"Show the lexical tokens of a query."`
	Parse    ParseCmd    `cmd:"" help:"Parse a query and print its syntax tree."`
	Format   FormatCmd   `cmd:"" help:"Print a query in canonical layout."`
	Keywords KeywordsCmd `cmd:"" help:"List the reserved keywords."`
}
