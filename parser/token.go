package parser

// TokenKind represents the type of token scanned from the input.
type TokenKind uint8

const (
	// Clause keywords
	SELECT TokenKind = iota
	FROM
	WHERE
	ORDER
	GROUP
	OFFSET
	LIMIT
	JOIN
	IN

	OPERATOR // < <= > >= ! != = == + - /

	// Single-character tokens.
	// STAR can act as an operator in arithmetic expressions.
	STAR        // *
	LEFT_BRACE  // {
	RIGHT_BRACE // }
	LEFT_PAREN  // (
	RIGHT_PAREN // )
	DOT         // .
	COMMA       // ,
	SEMICOLON   // ;

	// Literals
	NUMBER     // 42, 1.5, .5, 1e4, 0x1A
	STRING     // "quoted" or 'quoted'
	IDENTIFIER // c, _id, person2

	UNKNOWN
)

var tokenNames = [...]string{
	SELECT: "SELECT",
	FROM:   "FROM",
	WHERE:  "WHERE",
	ORDER:  "ORDER",
	GROUP:  "GROUP",
	OFFSET: "OFFSET",
	LIMIT:  "LIMIT",
	JOIN:   "JOIN",
	IN:     "IN",

	OPERATOR: "OPERATOR",

	STAR:        "STAR",
	LEFT_BRACE:  "LEFT_BRACE",
	RIGHT_BRACE: "RIGHT_BRACE",
	LEFT_PAREN:  "LEFT_PAREN",
	RIGHT_PAREN: "RIGHT_PAREN",
	DOT:         "DOT",
	COMMA:       "COMMA",
	SEMICOLON:   "SEMICOLON",

	NUMBER:     "NUMBER",
	STRING:     "STRING",
	IDENTIFIER: "IDENTIFIER",

	UNKNOWN: "UNKNOWN",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return "UNKNOWN"
}

// IsKeyword reports whether k is one of the clause keywords.
func (k TokenKind) IsKeyword() bool {
	return k <= IN
}

// keywords maps the upper-cased spelling of each clause keyword to its kind.
// Keyword matching is case-insensitive.
var keywords = map[string]TokenKind{
	"SELECT": SELECT,
	"FROM":   FROM,
	"WHERE":  WHERE,
	"ORDER":  ORDER,
	"GROUP":  GROUP,
	"OFFSET": OFFSET,
	"LIMIT":  LIMIT,
	"JOIN":   JOIN,
	"IN":     IN,
}

// singleCharTokens maps punctuation that always forms a one-byte token.
var singleCharTokens = map[byte]TokenKind{
	'*': STAR,
	'{': LEFT_BRACE,
	'}': RIGHT_BRACE,
	'(': LEFT_PAREN,
	')': RIGHT_PAREN,
	'.': DOT,
	',': COMMA,
	';': SEMICOLON,
}

// Token represents a lexical token.
type Token struct {
	Kind   TokenKind
	Text   string  // Exact source text; strings keep their quotes
	Value  float64 // Parsed value, NUMBER only
	Start  int     // Byte offset into source
	End    int     // End offset (exclusive)
	Line   int     // Line number (1-indexed)
	Column int     // Column number (1-indexed)
}

// Len returns the length of the token in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}
