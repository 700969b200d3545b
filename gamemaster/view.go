package gamemaster

import (
	"strings"

	"othello/game"
)

// BoardView is a mutable mirror of a board, fed through ApplyChangedNodes.
type BoardView struct {
	occupants map[game.Coordinates]string
	updates   int
}

func NewBoardView() *BoardView {
	return &BoardView{occupants: make(map[game.Coordinates]string)}
}

func (v *BoardView) ApplyChangedNodes(nodes []game.Node) {
	for _, n := range nodes {
		v.occupants[n.Coordinates] = n.Occupant
	}
	v.updates++
}

// Occupant returns the occupant at c, "" if unmarked. The second result is
// false when c has never been reported.
func (v *BoardView) Occupant(c game.Coordinates) (string, bool) {
	occupant, ok := v.occupants[c]
	return occupant, ok
}

// Updates counts the ApplyChangedNodes calls received.
func (v *BoardView) Updates() int {
	return v.updates
}

// Matches reports whether the view holds exactly the nodes of b.
func (v *BoardView) Matches(b game.Board) bool {
	if len(v.occupants) != b.Len() {
		return false
	}
	for _, n := range b.Nodes() {
		if occupant, ok := v.occupants[n.Coordinates]; !ok || occupant != n.Occupant {
			return false
		}
	}
	return true
}

// Render draws the view row by row inside its bounding box: ' ' for holes,
// '.' for unmarked nodes, the player's symbol otherwise ('?' if unknown).
func (v *BoardView) Render(symbols map[string]rune) []string {
	if len(v.occupants) == 0 {
		return nil
	}
	first := true
	var minX, minY, maxX, maxY int
	for c := range v.occupants {
		if first {
			minX, maxX, minY, maxY = c.X, c.X, c.Y, c.Y
			first = false
			continue
		}
		minX, maxX = min(minX, c.X), max(maxX, c.X)
		minY, maxY = min(minY, c.Y), max(maxY, c.Y)
	}

	rows := make([]string, 0, maxY-minY+1)
	for y := minY; y <= maxY; y++ {
		var sb strings.Builder
		for x := minX; x <= maxX; x++ {
			occupant, ok := v.occupants[game.Coordinates{X: x, Y: y}]
			switch {
			case !ok:
				sb.WriteRune(' ')
			case occupant == "":
				sb.WriteRune('.')
			default:
				symbol, known := symbols[occupant]
				if !known {
					symbol = '?'
				}
				sb.WriteRune(symbol)
			}
		}
		rows = append(rows, sb.String())
	}
	return rows
}
