package game

import "fmt"

// Shape supplies the playable positions of a board and their starting marks.
type Shape interface {
	Nodes() []Node
}

// ShapeFunc adapts a function to the Shape interface.
type ShapeFunc func() []Node

func (f ShapeFunc) Nodes() []Node {
	return f()
}

// Square returns a size x size board with the classic four-node start: second
// on the two diagonal centre nodes, first on the two anti-diagonal ones.
func Square(size int, first, second string) Shape {
	return ShapeFunc(func() []Node {
		nodes := make([]Node, 0, size*size)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				c := Coordinates{X: x, Y: y}
				nodes = append(nodes, Node{Coordinates: c, Occupant: centreMark(c, size/2, first, second)})
			}
		}
		return nodes
	})
}

// Diamond returns the positions within manhattan distance radius of the centre
// (radius, radius), started like Square around the centre.
func Diamond(radius int, first, second string) Shape {
	return ShapeFunc(func() []Node {
		var nodes []Node
		for y := 0; y <= 2*radius; y++ {
			for x := 0; x <= 2*radius; x++ {
				if abs(x-radius)+abs(y-radius) > radius {
					continue
				}
				c := Coordinates{X: x, Y: y}
				nodes = append(nodes, Node{Coordinates: c, Occupant: centreMark(c, radius, first, second)})
			}
		}
		return nodes
	})
}

func centreMark(c Coordinates, centre int, first, second string) string {
	switch c {
	case Coordinates{X: centre - 1, Y: centre - 1}, Coordinates{X: centre, Y: centre}:
		return second
	case Coordinates{X: centre, Y: centre - 1}, Coordinates{X: centre - 1, Y: centre}:
		return first
	}
	return ""
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ParseRows reads a shape from text rows. Row i holds y = i and column j holds
// x = j. '.' and '-' are empty nodes, ' ' is a hole, any other rune is looked
// up in marks.
func ParseRows(rows []string, marks map[rune]string) (Shape, error) {
	var nodes []Node
	for y, row := range rows {
		for x, r := range []rune(row) {
			c := Coordinates{X: x, Y: y}
			switch r {
			case ' ':
				continue
			case '.', '-':
				nodes = append(nodes, Node{Coordinates: c})
			default:
				player, ok := marks[r]
				if !ok {
					return nil, fmt.Errorf("unknown mark %q at %v", r, c)
				}
				nodes = append(nodes, Node{Coordinates: c, Occupant: player})
			}
		}
	}
	return ShapeFunc(func() []Node {
		out := make([]Node, len(nodes))
		copy(out, nodes)
		return out
	}), nil
}
