package bot

import (
	"math"

	"github.com/mcoot/octiline/internal/dependencies/random"
	"github.com/mcoot/octiline/internal/model"
)

// GreedyStrategy looks one move ahead: it plays the move that leaves the
// opponent the fewest replies, so a move that ends the game is always taken.
// Ties are broken randomly.
type GreedyStrategy struct {
	random random.Random
}

// NewGreedyStrategy creates a new GreedyStrategy
func NewGreedyStrategy(rnd random.Random) *GreedyStrategy {
	return &GreedyStrategy{random: rnd}
}

// ChooseMove returns the legal move minimizing the opponent's replies
func (s *GreedyStrategy) ChooseMove(game *model.Game) (model.Move, bool) {
	moves := LegalMoves(game)
	if len(moves) == 0 {
		return model.Move{}, false
	}

	fewest := math.MaxInt
	var best []model.Move
	for _, move := range moves {
		next := game.Clone()
		if err := play(next, move); err != nil {
			continue
		}

		replies := len(LegalMoves(next))
		switch {
		case replies < fewest:
			fewest = replies
			best = []model.Move{move}
		case replies == fewest:
			best = append(best, move)
		}
	}

	if len(best) == 0 {
		return model.Move{}, false
	}
	return best[s.random.Intn(len(best))], true
}
