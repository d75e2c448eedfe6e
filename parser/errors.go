package parser

import (
	"errors"
	"fmt"

	"github.com/robinvdvleuten/cosmosql/ast"
)

var (
	// ErrUnterminatedString matches any *UnterminatedStringError via errors.Is.
	ErrUnterminatedString = errors.New("unterminated string literal")

	// ErrParse matches any *ParseError via errors.Is.
	ErrParse = errors.New("parse error")
)

// EndOfInput is the Got text of a ParseError raised after the last token.
const EndOfInput = "<end of input>"

// UnterminatedStringError is returned by the lexer when a string literal
// reaches the end of input before its closing quote.
type UnterminatedStringError struct {
	Pos   ast.Position // Position of the opening quote
	Quote byte
}

func (e *UnterminatedStringError) Error() string {
	return fmt.Sprintf("%s: unterminated string literal, missing closing %c", e.Pos, e.Quote)
}

func (e *UnterminatedStringError) GetPosition() ast.Position {
	return e.Pos
}

func (e *UnterminatedStringError) Is(target error) bool {
	return target == ErrUnterminatedString
}

// ParseError represents the first grammar violation found by the parser.
type ParseError struct {
	Pos      ast.Position
	Expected string // Token kind(s) legal at this position
	Got      string // Offending token text, or EndOfInput
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Pos, e.Expected, e.gotDescription())
}

func (e *ParseError) gotDescription() string {
	if e.Got == EndOfInput {
		return e.Got
	}
	return fmt.Sprintf("%q", e.Got)
}

func (e *ParseError) GetPosition() ast.Position {
	return e.Pos
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
