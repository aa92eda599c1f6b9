package board

import (
	"slices"
	"testing"
)

func TestInitialLayout(t *testing.T) {
	g := NewPosition()

	tests := []struct {
		row, col int
		want     Piece
	}{
		{0, 0, Empty},
		{3, 3, BlackDisc},
		{3, 4, WhiteDisc},
		{4, 3, WhiteDisc},
		{4, 4, BlackDisc},
	}
	for _, tc := range tests {
		if got := g.Get(tc.row, tc.col); got != tc.want {
			t.Errorf("Get(%d,%d) = %v, want %v", tc.row, tc.col, got, tc.want)
		}
	}
	if g.NextTurn != Black {
		t.Errorf("NextTurn = %v, want Black", g.NextTurn)
	}
}

func TestInitialRender(t *testing.T) {
	want := "········\n········\n········\n" +
		"···○●···\n" +
		"···●○···\n" +
		"········\n········\n········\n"
	if got := NewPosition().String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestInitialValidMoves(t *testing.T) {
	g := NewPosition()

	want := []Move{
		NewMove(Black, 2, 4),
		NewMove(Black, 3, 5),
		NewMove(Black, 4, 2),
		NewMove(Black, 5, 3),
	}
	if got := g.ValidMoves(Black); !slices.Equal(got, want) {
		t.Errorf("ValidMoves(Black) = %v, want %v", got, want)
	}
}

func TestApply(t *testing.T) {
	g := NewPosition()
	g2 := g.Apply(NewMove(Black, 2, 4))

	if g2.NextTurn != White {
		t.Errorf("NextTurn = %v, want White", g2.NextTurn)
	}

	want := "········\n········\n" +
		"····○···\n" +
		"···○○···\n" +
		"···●○···\n" +
		"········\n········\n········\n"
	if got := g2.String(); got != want {
		t.Errorf("after E3:\n%s\nwant\n%s", got, want)
	}

	if g.NextTurn != Black || g.Get(2, 4) != Empty {
		t.Error("Apply modified the original game")
	}
}

func TestApplyInPlace(t *testing.T) {
	g := NewPosition()
	m := NewMove(Black, 2, 4)
	want := g.Apply(m)

	g.ApplyInPlace(m)
	if g != want {
		t.Errorf("ApplyInPlace =\n%s\nwant\n%s", g, want)
	}
}

func TestNoMoves(t *testing.T) {
	g, err := ParsePosition("○●●●●●●●\n")
	if err != nil {
		t.Fatal(err)
	}
	if moves := g.ValidMoves(Black); len(moves) != 0 {
		t.Errorf("ValidMoves(Black) = %v, want none", moves)
	}
	if !g.IsTerminal() {
		t.Error("game should be terminal with Black to move")
	}
}

// Every cell is white except one empty corner: Black has no disc to
// bracket with, so there is no move.
func TestUnreachableCorner(t *testing.T) {
	g := EmptyGame[BitBoard]()
	for row := range Size {
		for col := range Size {
			if row != 7 || col != 7 {
				g.Board = g.Board.Set(row, col, WhiteDisc)
			}
		}
	}

	if n := CountMoves(g.Board, Black); n != 0 {
		t.Errorf("Black has %d moves, want 0", n)
	}
	if n := CountMoves(g.Board, White); n != 0 {
		t.Errorf("White has %d moves, want 0", n)
	}
	if !g.IsOver() {
		t.Error("game should be over")
	}
	if w, ok := g.Winner(); !ok || w != White {
		t.Errorf("Winner() = %v, %v; want White", w, ok)
	}
}

func TestPass(t *testing.T) {
	g := NewPosition()
	p := g.Pass()
	if p.NextTurn != White || p.Board != g.Board {
		t.Errorf("Pass() = %+v", p)
	}
}

func TestWinnerTie(t *testing.T) {
	if _, ok := NewPosition().Winner(); ok {
		t.Error("starting position should be a tie")
	}
}

func TestConvertGame(t *testing.T) {
	g := NewPosition().Apply(NewMove(Black, 2, 4))
	ref := ConvertGame[BitBoard, Grid](g)
	if ref.NextTurn != g.NextTurn || !Equal(ref.Board, g.Board) {
		t.Errorf("ConvertGame =\n%s\nwant\n%s", ref, g)
	}
}
