package board

import (
	"testing"

	"lukechampine.com/frand"
)

const equivalencePositions = 1000

func testRNG(seed byte) *frand.RNG {
	key := make([]byte, 32)
	key[0] = seed
	return frand.NewCustom(key, 1024, 12)
}

// checkEquivalent compares move generation and move application between two
// encodings of the same position, for both colours.
func checkEquivalent[B1 Board[B1], B2 Board[B2]](t *testing.T, a B1, b B2) {
	t.Helper()

	for _, player := range []Colour{Black, White} {
		movesA := MovesMask(a.Moves(player))
		movesB := MovesMask(b.Moves(player))
		if movesA != movesB {
			t.Errorf("%v moves differ on\n%s%T:\n%v\n%T:\n%v",
				player, Render(a), a, movesA, b, movesB)
			continue
		}

		for m := range a.Moves(player) {
			if !b.IsValidMove(m) {
				t.Errorf("%T rejects %v for %v on\n%s", b, m, player, Render(a))
				continue
			}
			afterA := a.Apply(m)
			afterB := b.Apply(m)
			if !Equal(afterA, afterB) {
				t.Errorf("%v by %v differs on\n%s%T:\n%s%T:\n%s",
					m, player, Render(a), afterA, Render(afterA), afterB, Render(afterB))
			}
		}
	}
}

func TestRandomBoardsEquivalent(t *testing.T) {
	rng := testRNG(1)
	for range equivalencePositions {
		bb := RandomBoard[BitBoard](rng)
		grid := Convert[BitBoard, Grid](bb)
		checkEquivalent(t, bb, grid)
		if t.Failed() {
			return
		}
	}
}

// Random boards are dense; positions reached by random play exercise
// sparser, more realistic layouts.
func TestPlayedPositionsEquivalent(t *testing.T) {
	rng := testRNG(2)
	positions := 0
	for positions < equivalencePositions {
		g := NewGame[BitBoard]()
		for !g.IsOver() && positions < equivalencePositions {
			checkEquivalent(t, g.Board, Convert[BitBoard, Grid](g.Board))
			if t.Failed() {
				return
			}
			positions++

			moves := g.ValidMoves(g.NextTurn)
			if len(moves) == 0 {
				g = g.Pass()
				continue
			}
			g = g.Apply(moves[rng.Intn(len(moves))])
		}
	}
}

func TestConvertRoundTrip(t *testing.T) {
	rng := testRNG(3)
	for range 100 {
		bb := RandomBoard[BitBoard](rng)
		back := Convert[Grid, BitBoard](Convert[BitBoard, Grid](bb))
		if back != bb {
			t.Fatalf("round trip changed board:\n%s\nto\n%s", Render(bb), Render(back))
		}
		if bb.Blacks&bb.Whites != 0 {
			t.Fatalf("random board has overlapping masks")
		}
	}
}
