package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	players := []string{"white", "black", "white"}

	require.Equal(t, 0, FindIndex(players, "white"), "First occurrence should win")
	require.Equal(t, 1, FindIndex(players, "black"))
	require.Equal(t, -1, FindIndex(players, "red"))
	require.Equal(t, -1, FindIndex([]int(nil), 3))
}
