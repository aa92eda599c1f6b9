package board

// Colour represents the colour of a disc or player.
type Colour uint8

const (
	Black Colour = iota
	White
)

// Opponent returns the opposite colour.
func (c Colour) Opponent() Colour {
	return c ^ 1
}

// Sign returns +1 for Black and -1 for White.
func (c Colour) Sign() int {
	if c == Black {
		return 1
	}
	return -1
}

// String returns the colour name.
func (c Colour) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "NoColour"
	}
}

// ParseColour parses a colour name ("black", "b", "white", "w").
func ParseColour(s string) (Colour, bool) {
	switch s {
	case "black", "Black", "b", "B":
		return Black, true
	case "white", "White", "w", "W":
		return White, true
	}
	return Black, false
}

// Piece is the content of a single cell: empty or a disc of one colour.
type Piece uint8

const (
	Empty Piece = iota
	BlackDisc
	WhiteDisc
)

// Disc returns the piece for a disc of the given colour.
func Disc(c Colour) Piece {
	return Piece(c) + 1
}

// Colour returns the colour of the disc, and false for an empty cell.
func (p Piece) Colour() (Colour, bool) {
	if p == Empty {
		return Black, false
	}
	return Colour(p - 1), true
}

// Is reports whether p is a disc of colour c.
func (p Piece) Is(c Colour) bool {
	return p == Disc(c)
}

// Char returns the character used for the piece in the text format.
func (p Piece) Char() rune {
	switch p {
	case BlackDisc:
		return '○'
	case WhiteDisc:
		return '●'
	default:
		return '·'
	}
}

// PieceFromChar parses a text format character.
func PieceFromChar(ch rune) (Piece, bool) {
	switch ch {
	case '○':
		return BlackDisc, true
	case '●':
		return WhiteDisc, true
	case '·':
		return Empty, true
	}
	return Empty, false
}
