package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var marks = map[rune]string{'a': "a", 'b': "b", 'c': "c"}

func mustBoard(t *testing.T, rows ...string) Board {
	t.Helper()
	shape, err := ParseRows(rows, marks)
	require.NoError(t, err)
	b, err := NewBoardFromShape(shape)
	require.NoError(t, err)
	return b
}

func mustTurns(t *testing.T, players ...string) *TurnCalculator {
	t.Helper()
	tc, err := NewTurnCalculator(players)
	require.NoError(t, err)
	return tc
}

func at(x, y int) Coordinates {
	return Coordinates{X: x, Y: y}
}
