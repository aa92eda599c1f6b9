package board

// fillSteps is the longest slide on an 8-wide board.
const fillSteps = 7

// Fill propagates gen through pro in direction d, one cell per step, and
// returns the seed together with every cell reached.
// See https://www.chessprogramming.org/Dumb7Fill.
func Fill(gen, pro BitMask, d Direction) BitMask {
	flood := gen
	for range fillSteps {
		gen = gen.Shift(d) & pro
		flood |= gen
	}
	return flood
}

// FillOccluded is Fill without the seed: only cells strictly beyond gen are
// returned, up to and including the last propagator cell of each run.
func FillOccluded(gen, pro BitMask, d Direction) BitMask {
	var flood BitMask
	for range fillSteps {
		gen = gen.Shift(d) & pro
		flood |= gen
	}
	return flood
}
