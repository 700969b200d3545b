package player

import (
	"testing"
	"time"

	"othello/config"
	"othello/game"
	"othello/gamemaster"
	"othello/searcher"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

var players = []string{"white", "black"}

func opening(t *testing.T) game.Board {
	t.Helper()
	board, err := game.NewBoardFromShape(game.Square(8, "white", "black"))
	require.NoError(t, err)
	return board
}

func mustBoard(t *testing.T, rows ...string) game.Board {
	t.Helper()
	shape, err := game.ParseRows(rows, map[rune]string{'w': "white", 'b': "black"})
	require.NoError(t, err)
	board, err := game.NewBoardFromShape(shape)
	require.NoError(t, err)
	return board
}

func TestNew(t *testing.T) {
	t.Run("known kinds", func(t *testing.T) {
		for _, cfg := range []config.Agent{
			{Name: "r", Kind: KindRandom},
			{Name: "g", Kind: KindGreedy},
			{Name: "m", Kind: KindMCTS, Episodes: 10, Evaluation: "mobility"},
		} {
			strategy, err := New(cfg, players)
			require.NoError(t, err, "Agent %q should be built", cfg.Name)
			require.Implements(t, (*gamemaster.Strategy)(nil), strategy)
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := New(config.Agent{Name: "x", Kind: "alphabeta"}, players)

		require.Error(t, err)
	})

	t.Run("unknown evaluation", func(t *testing.T) {
		_, err := New(config.Agent{Name: "m", Kind: KindMCTS, Episodes: 10, Evaluation: "parity"}, players)

		require.Error(t, err)
	})

	t.Run("search without a budget", func(t *testing.T) {
		_, err := New(config.Agent{Name: "m", Kind: KindMCTS}, players)

		require.Error(t, err, "Search should need episodes or a duration")
	})
}

func TestRandom(t *testing.T) {
	t.Run("plays a valid move", func(t *testing.T) {
		rules := game.NewStandardRules()
		board := opening(t)
		r := NewRandom(rand.New(rand.NewSource(7)))

		for i := 0; i < 20; i++ {
			at, ok := r.SelectMove("black", rules, board)
			require.True(t, ok)
			require.True(t, rules.IsValidMove(board, at, "black"), "Move %v should be valid", at)
		}
	})

	t.Run("same seed, same moves", func(t *testing.T) {
		rules := game.NewStandardRules()
		board := opening(t)
		r1 := NewRandom(rand.New(rand.NewSource(3)))
		r2 := NewRandom(rand.New(rand.NewSource(3)))

		for i := 0; i < 10; i++ {
			at1, _ := r1.SelectMove("black", rules, board)
			at2, _ := r2.SelectMove("black", rules, board)
			require.Equal(t, at1, at2)
		}
	})

	t.Run("no valid move", func(t *testing.T) {
		_, ok := NewRandom(nil).SelectMove("black", game.NewStandardRules(), mustBoard(t, "ww-"))

		require.False(t, ok)
	})
}

func TestGreedy(t *testing.T) {
	t.Run("maximises captures", func(t *testing.T) {
		// (0,0) captures one node, (8,0) captures two
		board := mustBoard(t, "-wb--bww-")

		at, ok := NewGreedy().SelectMove("black", game.NewStandardRules(), board)

		require.True(t, ok)
		require.Equal(t, game.Coordinates{X: 8, Y: 0}, at)
	})

	t.Run("first move in row order on ties", func(t *testing.T) {
		at, ok := NewGreedy().SelectMove("black", game.NewStandardRules(), opening(t))

		require.True(t, ok)
		require.Equal(t, game.Coordinates{X: 4, Y: 2}, at)
	})

	t.Run("no valid move", func(t *testing.T) {
		_, ok := NewGreedy().SelectMove("black", game.NewStandardRules(), mustBoard(t, "ww-"))

		require.False(t, ok)
	})
}

func TestSearch(t *testing.T) {
	t.Run("plays a valid move and records metrics", func(t *testing.T) {
		rules := game.NewStandardRules()
		board := opening(t)
		s, err := NewSearch(players, searcher.NewMCTS(2, searcher.WithEpisodes(40), searcher.WithMetrics()))
		require.NoError(t, err)

		at, ok := s.SelectMove("black", rules, board)

		require.True(t, ok)
		require.True(t, rules.IsValidMove(board, at, "black"))
		require.Equal(t, 40, s.LastMetric().Episodes)
	})

	t.Run("single valid move", func(t *testing.T) {
		board := mustBoard(t, "bww-")
		s, err := NewSearch(players, searcher.NewMCTS(2, searcher.WithDuration(20*time.Millisecond)))
		require.NoError(t, err)

		at, ok := s.SelectMove("black", game.NewStandardRules(), board)

		require.True(t, ok)
		require.Equal(t, game.Coordinates{X: 3, Y: 0}, at, "The only valid move should be played")
	})

	t.Run("player not able to move", func(t *testing.T) {
		s, err := NewSearch(players, searcher.NewMCTS(1, searcher.WithEpisodes(5)))
		require.NoError(t, err)

		_, ok := s.SelectMove("black", game.NewStandardRules(), mustBoard(t, "ww-"))

		require.False(t, ok)
	})

	t.Run("temperature sampling stays within the policy", func(t *testing.T) {
		rules := game.NewStandardRules()
		board := opening(t)
		s, err := NewSearch(players, searcher.NewMCTS(1, searcher.WithEpisodes(20)),
			WithTemperature(1.0), WithRand(rand.New(rand.NewSource(1))))
		require.NoError(t, err)

		at, ok := s.SelectMove("black", rules, board)

		require.True(t, ok)
		require.True(t, rules.IsValidMove(board, at, "black"))
	})

	t.Run("invalid players", func(t *testing.T) {
		_, err := NewSearch([]string{"white", "white"}, searcher.NewMCTS(1, searcher.WithEpisodes(1)))

		require.ErrorIs(t, err, game.ErrInvalidPlayerList)
	})
}

func TestAdjustTemperature(t *testing.T) {
	visits := map[game.Coordinates]float64{{X: 0}: 1, {X: 1}: 3}

	t.Run("unit temperature is proportional to visits", func(t *testing.T) {
		policy := adjustTemperature(visits, 1.0)

		require.InDelta(t, 0.25, policy[game.Coordinates{X: 0}], 1e-9)
		require.InDelta(t, 0.75, policy[game.Coordinates{X: 1}], 1e-9)
	})

	t.Run("low temperature sharpens", func(t *testing.T) {
		policy := adjustTemperature(visits, 0.5)

		require.InDelta(t, 0.1, policy[game.Coordinates{X: 0}], 1e-9)
		require.InDelta(t, 0.9, policy[game.Coordinates{X: 1}], 1e-9)
	})
}

func TestFindMax(t *testing.T) {
	t.Run("most visited", func(t *testing.T) {
		require.Equal(t, game.Coordinates{X: 1}, findMax(map[game.Coordinates]float64{{X: 0}: 1, {X: 1}: 3}))
	})

	t.Run("first in row order on ties", func(t *testing.T) {
		got := findMax(map[game.Coordinates]float64{{X: 5, Y: 0}: 2, {X: 1, Y: 1}: 2, {X: 3, Y: 0}: 2})

		require.Equal(t, game.Coordinates{X: 3, Y: 0}, got)
	})
}
