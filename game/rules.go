package game

// Rules decides move validity and captures. Implementations must be pure:
// they read the board and never keep state between calls.
type Rules interface {
	IsValidMove(b Board, c Coordinates, player string) bool
	CapturedNodes(b Board, c Coordinates, player string) []Coordinates
	HasValidMove(b Board, player string) bool
	ValidMoves(b Board, player string) []Coordinates
	// IsGameOver reports whether none of players can move. A nil player
	// list means the players currently occupying the board.
	IsGameOver(b Board, players []string) bool
}
