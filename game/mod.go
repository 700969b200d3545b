package game

type StateHash uint64

// State is what a searcher needs from a position. It should be immutable:
// Play always returns a new State.
type State interface {
	Player() string
	LegalMoves() []Coordinates
	Play(Coordinates) State
	Hash() StateHash
	Winner() string
}

// Evaluates the game state to a score between -1 and 1 indicating how
// favorable the current player's position is to a winning (positive) outcome.
type Evaluate func(State) float64
