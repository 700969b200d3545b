package gamemaster

import "othello/game"

// Strategy picks a move for a computer-controlled player. The second result
// is false when the strategy has no move to offer.
type Strategy interface {
	SelectMove(player string, rules game.Rules, board game.Board) (game.Coordinates, bool)
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(player string, rules game.Rules, board game.Board) (game.Coordinates, bool)

func (f StrategyFunc) SelectMove(player string, rules game.Rules, board game.Board) (game.Coordinates, bool) {
	return f(player, rules, board)
}

// View is an externally observed, mutable copy of the board. It receives the
// changed nodes after every move and the full board after a start or undo.
type View interface {
	ApplyChangedNodes(nodes []game.Node)
}

// Listener is notified synchronously after accepted moves. OnGameFinished is
// always delivered after the OnMove of the final move.
type Listener interface {
	OnMove(changes []game.Node)
	OnGameFinished()
}

// ListenerFuncs adapts optional callbacks to the Listener interface.
type ListenerFuncs struct {
	Move     func(changes []game.Node)
	Finished func()
}

func (l ListenerFuncs) OnMove(changes []game.Node) {
	if l.Move != nil {
		l.Move(changes)
	}
}

func (l ListenerFuncs) OnGameFinished() {
	if l.Finished != nil {
		l.Finished()
	}
}

type noView struct{}

func (noView) ApplyChangedNodes([]game.Node) {}
