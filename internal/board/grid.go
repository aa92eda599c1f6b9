package board

import (
	"fmt"
	"iter"
)

// Grid is the dense encoding: one Piece per cell. It scans cell by cell
// and is kept as a simple reference for BitBoard.
type Grid [Size][Size]Piece

var _ Board[Grid] = Grid{}

// runLength counts the opponent discs from (row, col) in direction (dr, dc)
// that are closed off by one of player's discs. It returns 0 if the run
// reaches an empty cell or the edge first.
func (g *Grid) runLength(player Colour, row, col, dr, dc int) int {
	n := 0
	for {
		row, col = row+dr, col+dc
		if outOfRange(row, col) {
			return 0
		}
		p := g[row][col]
		if p == Empty {
			return 0
		}
		if p.Is(player) {
			return n
		}
		n++
	}
}

// IsValidMove reports whether m is legal on this grid.
func (g Grid) IsValidMove(m Move) bool {
	if outOfRange(m.Row, m.Col) || g[m.Row][m.Col] != Empty {
		return false
	}
	for _, d := range Directions {
		dr, dc := d.Delta()
		if g.runLength(m.Player, m.Row, m.Col, dr, dc) > 0 {
			return true
		}
	}
	return false
}

// Moves yields the legal moves for player in row-major order.
func (g Grid) Moves(player Colour) iter.Seq[Move] {
	return func(yield func(Move) bool) {
		for row := range Size {
			for col := range Size {
				m := NewMove(player, row, col)
				if g.IsValidMove(m) && !yield(m) {
					return
				}
			}
		}
	}
}

// Apply places the disc and flips every captured run. It panics if m is
// not legal.
func (g Grid) Apply(m Move) Grid {
	if !g.IsValidMove(m) {
		panic(fmt.Sprintf("board: illegal move %v for %v", m, m.Player))
	}

	disc := Disc(m.Player)
	for _, d := range Directions {
		dr, dc := d.Delta()
		n := g.runLength(m.Player, m.Row, m.Col, dr, dc)
		row, col := m.Row, m.Col
		for range n {
			row, col = row+dr, col+dc
			g[row][col] = disc
		}
	}
	g[m.Row][m.Col] = disc
	return g
}

// Get returns the piece on (row, col).
func (g Grid) Get(row, col int) Piece {
	return g[row][col]
}

// Set returns the grid with (row, col) replaced by p.
func (g Grid) Set(row, col int, p Piece) Grid {
	g[row][col] = p
	return g
}

// Scores returns the disc counts of both colours.
func (g Grid) Scores() (black, white int) {
	for row := range Size {
		for col := range Size {
			switch g[row][col] {
			case BlackDisc:
				black++
			case WhiteDisc:
				white++
			}
		}
	}
	return black, white
}
