package game

// GameState is an immutable snapshot of a board and the player in turn.
// An empty PlayerInTurn means the game is over, or has not been started.
type GameState struct {
	Board        Board
	PlayerInTurn string

	turns *TurnCalculator
	rules Rules
}

// NewGameState starts from board b. desired gets the first turn if it can
// move, otherwise the next eligible player after desired does. An empty
// desired player gives a pre-game state with nobody in turn.
func NewGameState(b Board, turns *TurnCalculator, rules Rules, desired string) GameState {
	gs := GameState{Board: b, turns: turns, rules: rules}
	if desired == "" {
		return gs
	}
	if turns.Contains(desired) && rules.HasValidMove(b, desired) {
		gs.PlayerInTurn = desired
		return gs
	}
	if next, ok := turns.NextPlayer(desired, b, rules); ok {
		gs.PlayerInTurn = next
	}
	return gs
}

func (gs GameState) Rules() Rules {
	return gs.rules
}

func (gs GameState) Turns() *TurnCalculator {
	return gs.turns
}

// IsOver reports whether nobody is in turn.
func (gs GameState) IsOver() bool {
	return gs.PlayerInTurn == ""
}

// TryMove plays player at c. It returns false, leaving gs untouched, unless
// player is in turn and the move captures at least one node.
func (gs GameState) TryMove(player string, c Coordinates) (GameState, bool) {
	if gs.PlayerInTurn == "" || player != gs.PlayerInTurn {
		return GameState{}, false
	}
	if !gs.rules.IsValidMove(gs.Board, c, player) {
		return GameState{}, false
	}

	captured := append(gs.rules.CapturedNodes(gs.Board, c, player), c)
	board, err := gs.Board.ApplyCaptures(captured, player)
	if err != nil {
		return GameState{}, false
	}

	next, _ := gs.turns.NextPlayer(player, board, gs.rules)
	return GameState{
		Board:        board,
		PlayerInTurn: next,
		turns:        gs.turns,
		rules:        gs.rules,
	}, true
}
