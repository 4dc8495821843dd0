package tournament

import "math"

// Elo constants: the classic K=32 update over a 400-point logistic scale.
const (
	kFactor  = 32.0
	eloScale = 400.0
)

// Game scores from white's perspective.
const (
	WhiteWin = 1.0
	BlackWin = 0.0
	DrawGame = 0.5
)

// UpdateElo returns both players' new ratings after a game scoring
// whiteScore for white (1 win, 0.5 draw, 0 loss). The exchange is
// zero-sum: white gains exactly what black loses.
func UpdateElo(whiteElo, blackElo, whiteScore float64) (float64, float64) {
	expected := 1.0 / (1.0 + math.Pow(10, (blackElo-whiteElo)/eloScale))
	delta := kFactor * (whiteScore - expected)
	return whiteElo + delta, blackElo - delta
}
