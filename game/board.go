package game

import (
	"fmt"
	"sort"
)

// Node is a playable position and its occupant. An empty Occupant means unmarked.
type Node struct {
	Coordinates Coordinates `json:"coordinates"`
	Occupant    string      `json:"occupant,omitempty"`
}

func (n Node) Marked() bool {
	return n.Occupant != ""
}

// Board is an immutable set of nodes keyed by their coordinates. Operations
// that change occupants return a new Board and leave the receiver untouched.
type Board struct {
	nodes map[Coordinates]Node
}

// NewBoard builds a board from nodes, rejecting duplicate coordinates.
func NewBoard(nodes []Node) (Board, error) {
	m := make(map[Coordinates]Node, len(nodes))
	for _, n := range nodes {
		if _, ok := m[n.Coordinates]; ok {
			return Board{}, fmt.Errorf("%w: %v", ErrDuplicateNode, n.Coordinates)
		}
		m[n.Coordinates] = n
	}
	return Board{nodes: m}, nil
}

// NewBoardFromShape builds the starting board of a shape.
func NewBoardFromShape(s Shape) (Board, error) {
	return NewBoard(s.Nodes())
}

// NodeAt returns the node at c, or ErrOutOfBounds if c is not on the board.
func (b Board) NodeAt(c Coordinates) (Node, error) {
	n, ok := b.nodes[c]
	if !ok {
		return Node{}, fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	return n, nil
}

func (b Board) Contains(c Coordinates) bool {
	_, ok := b.nodes[c]
	return ok
}

// Neighbor returns the node next to n in direction d. The second result is
// false when that position is not part of the board.
func (b Board) Neighbor(n Node, d Direction) (Node, bool) {
	next, ok := b.nodes[n.Coordinates.Step(d)]
	return next, ok
}

// OccupantsPresent returns the sorted ids of all players occupying a node.
func (b Board) OccupantsPresent() []string {
	seen := make(map[string]struct{})
	for _, n := range b.nodes {
		if n.Marked() {
			seen[n.Occupant] = struct{}{}
		}
	}
	players := make([]string, 0, len(seen))
	for p := range seen {
		players = append(players, p)
	}
	sort.Strings(players)
	return players
}

// ApplyCaptures returns a copy of the board with every coordinate in coords
// occupied by player. Coordinates that are not on the board are rejected
// with ErrOutOfBounds and no board is produced.
func (b Board) ApplyCaptures(coords []Coordinates, player string) (Board, error) {
	if player == "" {
		return Board{}, fmt.Errorf("%w: empty player id", ErrNoSuchPlayer)
	}
	for _, c := range coords {
		if !b.Contains(c) {
			return Board{}, fmt.Errorf("cannot capture %v: %w", c, ErrOutOfBounds)
		}
	}

	nodes := make(map[Coordinates]Node, len(b.nodes))
	for c, n := range b.nodes {
		nodes[c] = n
	}
	for _, c := range coords {
		nodes[c] = Node{Coordinates: c, Occupant: player}
	}
	return Board{nodes: nodes}, nil
}

// Diff returns the sorted coordinates whose node differs between two boards,
// including coordinates that exist on only one of them.
func Diff(before, after Board) []Coordinates {
	changed := []Coordinates{}
	for c, n := range before.nodes {
		if other, ok := after.nodes[c]; !ok || other != n {
			changed = append(changed, c)
		}
	}
	for c := range after.nodes {
		if _, ok := before.nodes[c]; !ok {
			changed = append(changed, c)
		}
	}
	sortCoordinates(changed)
	return changed
}

// Equal reports whether both boards hold the same nodes.
func (b Board) Equal(other Board) bool {
	return len(Diff(b, other)) == 0
}

// Coordinates returns every position on the board in row order.
func (b Board) Coordinates() []Coordinates {
	coords := make([]Coordinates, 0, len(b.nodes))
	for c := range b.nodes {
		coords = append(coords, c)
	}
	sortCoordinates(coords)
	return coords
}

// Nodes returns every node on the board in row order.
func (b Board) Nodes() []Node {
	coords := b.Coordinates()
	nodes := make([]Node, len(coords))
	for i, c := range coords {
		nodes[i] = b.nodes[c]
	}
	return nodes
}

func (b Board) Len() int {
	return len(b.nodes)
}

// Count returns the number of nodes occupied by player.
func (b Board) Count(player string) int {
	count := 0
	for _, n := range b.nodes {
		if n.Marked() && n.Occupant == player {
			count++
		}
	}
	return count
}
