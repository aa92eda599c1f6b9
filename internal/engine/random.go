package engine

import (
	"encoding/binary"

	"lukechampine.com/frand"

	"github.com/ejrh/othello/internal/board"
)

// Random picks uniformly among the legal moves.
type Random struct {
	rng *frand.RNG
}

// NewRandom creates a random player. A zero seed draws one from the
// system entropy source; any other seed gives a reproducible sequence.
func NewRandom(seed uint64) *Random {
	return &Random{rng: NewRNG(seed)}
}

// NewRNG returns a ChaCha generator keyed by seed, or one drawn from the
// system entropy source when seed is zero.
func NewRNG(seed uint64) *frand.RNG {
	if seed == 0 {
		return frand.New()
	}
	key := make([]byte, 32)
	binary.LittleEndian.PutUint64(key, seed)
	return frand.NewCustom(key, 1024, 12)
}

// ChooseMove returns a uniformly random legal move.
func (r *Random) ChooseMove(g board.Position) (board.Move, bool) {
	moves := g.ValidMoves(g.NextTurn)
	if len(moves) == 0 {
		return board.Move{}, false
	}
	return moves[r.rng.Intn(len(moves))], true
}

// Info returns an empty snapshot: random play searches nothing.
func (r *Random) Info() SearchInfo {
	return SearchInfo{}
}

// Clone returns a player with its own generator, seeded from this one.
func (r *Random) Clone() AI {
	return &Random{rng: frand.NewCustom(r.rng.Bytes(32), 1024, 12)}
}
