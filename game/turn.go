package game

import (
	"fmt"

	"othello/utils"
)

// TurnCalculator cycles through a fixed player order, skipping players
// without a valid move.
type TurnCalculator struct {
	players []string
}

func NewTurnCalculator(players []string) (*TurnCalculator, error) {
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: no players", ErrInvalidPlayerList)
	}
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if p == "" {
			return nil, fmt.Errorf("%w: empty player id", ErrInvalidPlayerList)
		}
		if seen[p] {
			return nil, fmt.Errorf("%w: duplicate player %q", ErrInvalidPlayerList, p)
		}
		seen[p] = true
	}

	ordered := make([]string, len(players))
	copy(ordered, players)
	return &TurnCalculator{players: ordered}, nil
}

// Players returns a copy of the player order.
func (tc *TurnCalculator) Players() []string {
	players := make([]string, len(tc.players))
	copy(players, tc.players)
	return players
}

func (tc *TurnCalculator) Contains(player string) bool {
	return utils.FindIndex(tc.players, player) >= 0
}

// NextPlayer returns the first player after previous, in cyclic order, that
// has a valid move on b. previous itself is considered last. The second
// result is false when the game is over or previous is not registered.
func (tc *TurnCalculator) NextPlayer(previous string, b Board, rules Rules) (string, bool) {
	if rules.IsGameOver(b, tc.players) {
		return "", false
	}

	i := utils.FindIndex(tc.players, previous)
	if i < 0 {
		return "", false
	}

	n := len(tc.players)
	for step := 1; step <= n; step++ {
		candidate := tc.players[(i+step)%n]
		if rules.HasValidMove(b, candidate) {
			return candidate, true
		}
	}
	return "", false
}
