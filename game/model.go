package game

import "fmt"

// GameModel holds the current state and the stack of states it replaced.
type GameModel struct {
	current GameState
	history []GameState
}

func NewGameModel(initial GameState) *GameModel {
	return &GameModel{current: initial}
}

func (m *GameModel) Current() GameState {
	return m.current
}

func (m *GameModel) HistoryLen() int {
	return len(m.history)
}

// Move plays player at c, pushing the replaced state onto the history.
func (m *GameModel) Move(player string, c Coordinates) error {
	next, ok := m.current.TryMove(player, c)
	if !ok {
		return fmt.Errorf("%w: player %q at %v", ErrInvalidMove, player, c)
	}
	m.history = append(m.history, m.current)
	m.current = next
	return nil
}

// Undo restores the previous state. It returns false and changes nothing
// when there is no history.
func (m *GameModel) Undo() (GameState, bool) {
	if len(m.history) == 0 {
		return m.current, false
	}
	last := len(m.history) - 1
	m.current = m.history[last]
	m.history[last] = GameState{}
	m.history = m.history[:last]
	return m.current, true
}

// Reset replaces the current state and drops the history.
func (m *GameModel) Reset(state GameState) {
	m.current = state
	m.history = nil
}
