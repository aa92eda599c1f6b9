package board

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrTooManyRows    = errors.New("too many rows")
	ErrTooManyColumns = errors.New("too many columns")
	ErrInvalidPiece   = errors.New("invalid piece")
)

// ParseError reports where a board text was rejected.
type ParseError struct {
	Row, Col int
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse board: row %d col %d: %v", e.Row, e.Col, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// splitRows splits text on newlines. A trailing newline does not start
// another row.
func splitRows(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// ParseBoard reads a board in the text format: one line per row, '○' for
// black, '●' for white and '·' for empty. Missing rows and columns are
// empty.
func ParseBoard[B Board[B]](s string) (B, error) {
	var b B
	for row, line := range splitRows(s) {
		col := 0
		for _, ch := range line {
			p, ok := PieceFromChar(ch)
			if !ok {
				return b, &ParseError{Row: row, Col: col, Err: ErrInvalidPiece}
			}
			if row >= Size {
				return b, &ParseError{Row: row, Col: col, Err: ErrTooManyRows}
			}
			if col >= Size {
				return b, &ParseError{Row: row, Col: col, Err: ErrTooManyColumns}
			}
			b = b.Set(row, col, p)
			col++
		}
	}
	return b, nil
}

// ParseGame reads a board in the text format, with Black to move.
func ParseGame[B Board[B]](s string) (Game[B], error) {
	b, err := ParseBoard[B](s)
	if err != nil {
		return Game[B]{}, err
	}
	return Game[B]{Board: b, NextTurn: Black}, nil
}

// ParsePosition is ParseGame on the compact encoding.
func ParsePosition(s string) (Position, error) {
	return ParseGame[BitBoard](s)
}

// MustParseGame is like ParseGame but panics on error. Intended for
// fixtures.
func MustParseGame[B Board[B]](s string) Game[B] {
	g, err := ParseGame[B](s)
	if err != nil {
		panic(err)
	}
	return g
}
