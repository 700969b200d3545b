package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// Player returns the player in turn, "" when the game is over.
func (gs GameState) Player() string {
	return gs.PlayerInTurn
}

// Players returns the registered player order.
func (gs GameState) Players() []string {
	if gs.turns == nil {
		return nil
	}
	return gs.turns.Players()
}

func (gs GameState) LegalMoves() []Coordinates {
	if gs.PlayerInTurn == "" {
		return nil
	}
	return gs.rules.ValidMoves(gs.Board, gs.PlayerInTurn)
}

// Play applies a legal move for the player in turn. Searchers only play moves
// taken from LegalMoves, so an illegal move is a programming error.
func (gs GameState) Play(c Coordinates) State {
	next, ok := gs.TryMove(gs.PlayerInTurn, c)
	if !ok {
		panic(fmt.Sprintf("illegal move %v for player %q", c, gs.PlayerInTurn))
	}
	return next
}

func (gs GameState) Hash() StateHash {
	hasher := fnv.New64a()

	// Hash player in turn
	hasher.Write([]byte(gs.PlayerInTurn))
	hasher.Write([]byte{0})

	// Hash nodes in row order
	for _, n := range gs.Board.Nodes() {
		binary.Write(hasher, binary.LittleEndian, int64(n.Coordinates.X))
		binary.Write(hasher, binary.LittleEndian, int64(n.Coordinates.Y))
		hasher.Write([]byte(n.Occupant))
		hasher.Write([]byte{0})
	}

	return StateHash(hasher.Sum64())
}

// Winner returns the player with most nodes once the game is over, "" while
// the game goes on or on a tie.
func (gs GameState) Winner() string {
	if gs.PlayerInTurn != "" {
		return ""
	}
	players := gs.Players()
	if players == nil {
		players = gs.Board.OccupantsPresent()
	}
	return Winner(gs.Board, players)
}
