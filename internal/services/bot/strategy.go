package bot

import "github.com/mcoot/octiline/internal/model"

// Strategy defines how a bot chooses its next line
type Strategy interface {
	// ChooseMove selects a legal move, or returns false if there is none
	ChooseMove(game *model.Game) (model.Move, bool)
}

// LegalMoves returns every line the current player may draw, ordered by start
// node then end node. If a start node is already selected only moves from it
// are returned. Finished games have no moves.
func LegalMoves(game *model.Game) []model.Move {
	if game.IsTerminal() {
		return nil
	}

	var starts []model.Point
	if start, ok := game.PendingStart(); ok {
		starts = []model.Point{start}
	} else {
		starts = game.ValidStartNodes().Sorted()
	}

	var moves []model.Move
	for _, start := range starts {
		for _, end := range game.ValidEndNodes(start).Sorted() {
			moves = append(moves, model.Move{Start: start, End: end})
		}
	}
	return moves
}

// play applies move to game, skipping the start node if it is already selected
func play(game *model.Game, move model.Move) error {
	if start, ok := game.PendingStart(); !ok || start != move.Start {
		if err := game.Submit(move.Start); err != nil {
			return err
		}
	}
	return game.Submit(move.End)
}
