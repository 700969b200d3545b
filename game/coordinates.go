package game

import (
	"fmt"
	"sort"
)

// Coordinates identify a position. Whether a position exists is decided by the board.
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Step returns the coordinates one step away in direction d.
func (c Coordinates) Step(d Direction) Coordinates {
	return Coordinates{X: c.X + d.DX, Y: c.Y + d.DY}
}

// Less orders coordinates row by row (y first, then x).
func (c Coordinates) Less(other Coordinates) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

func sortCoordinates(coords []Coordinates) {
	sort.Slice(coords, func(i, j int) bool {
		return coords[i].Less(coords[j])
	})
}

// Direction is a unit offset. Y grows southwards.
type Direction struct {
	DX int
	DY int
}

var (
	North     = Direction{DX: 0, DY: -1}
	NorthEast = Direction{DX: 1, DY: -1}
	East      = Direction{DX: 1, DY: 0}
	SouthEast = Direction{DX: 1, DY: 1}
	South     = Direction{DX: 0, DY: 1}
	SouthWest = Direction{DX: -1, DY: 1}
	West      = Direction{DX: -1, DY: 0}
	NorthWest = Direction{DX: -1, DY: -1}
)

// Directions lists the 8 compass directions clockwise from north.
var Directions = []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}
