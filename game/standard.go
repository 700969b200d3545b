package game

// StandardRules are the outflanking rules of Othello/Reversi on an arbitrary
// board shape.
type StandardRules struct{}

func NewStandardRules() *StandardRules {
	return &StandardRules{}
}

func (sr *StandardRules) IsValidMove(b Board, c Coordinates, player string) bool {
	node, err := b.NodeAt(c)
	if err != nil || node.Marked() {
		return false
	}
	return len(sr.CapturedNodes(b, c, player)) > 0
}

// CapturedNodes returns the opponent nodes outflanked by player placing at c.
// The played position itself is not included.
func (sr *StandardRules) CapturedNodes(b Board, c Coordinates, player string) []Coordinates {
	start, err := b.NodeAt(c)
	if err != nil {
		return nil
	}

	var captured []Coordinates
	for _, d := range Directions {
		captured = append(captured, capturedInDirection(b, start, d, player)...)
	}
	sortCoordinates(captured)
	return captured
}

func capturedInDirection(b Board, start Node, d Direction, player string) []Coordinates {
	var candidates []Coordinates
	node := start
	for {
		next, onBoard := b.Neighbor(node, d)
		if !onBoard { // Walked off the board
			return nil
		}
		if !next.Marked() { // Gap before reaching an own node
			return nil
		}
		if next.Occupant == player {
			return candidates
		}
		candidates = append(candidates, next.Coordinates)
		node = next
	}
}

func (sr *StandardRules) HasValidMove(b Board, player string) bool {
	for _, c := range b.Coordinates() {
		if sr.IsValidMove(b, c, player) {
			return true
		}
	}
	return false
}

// ValidMoves returns every valid position for player in row order.
func (sr *StandardRules) ValidMoves(b Board, player string) []Coordinates {
	var moves []Coordinates
	for _, c := range b.Coordinates() {
		if sr.IsValidMove(b, c, player) {
			moves = append(moves, c)
		}
	}
	return moves
}

func (sr *StandardRules) IsGameOver(b Board, players []string) bool {
	if players == nil {
		players = b.OccupantsPresent()
	}
	for _, p := range players {
		if sr.HasValidMove(b, p) {
			return false
		}
	}
	return true
}
