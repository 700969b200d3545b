package searcher

import (
	"testing"
	"time"

	"othello/experiments/metrics"
	"othello/game"

	"github.com/stretchr/testify/require"
)

// forkState lets a choose between winning and losing at once.
func forkState() mockState {
	return mockState{
		player: "a",
		moves:  []game.Coordinates{move(0), move(1)},
		next: map[game.Coordinates]game.State{
			move(0): terminal("b"),
			move(1): terminal("a"),
		},
	}
}

func TestNewMCTS(t *testing.T) {
	t.Run("requires a budget", func(t *testing.T) {
		require.Panics(t, func() {
			NewMCTS(1)
		}, "Should panic without episodes or duration")
	})

	t.Run("defaults", func(t *testing.T) {
		m := NewMCTS(0, WithEpisodes(10))

		require.Equal(t, 1, m.goroutines, "Should run at least one goroutine")
		require.Equal(t, MaxCutoff, m.cutoff)
		require.NotNil(t, m.evaluate)
	})

	t.Run("ignores non-positive options", func(t *testing.T) {
		m := NewMCTS(2, WithEpisodes(10), WithCutoff(0), WithDuration(-time.Second))

		require.Equal(t, MaxCutoff, m.cutoff)
		require.Zero(t, m.duration)
	})
}

func TestMCTSSimulate(t *testing.T) {
	t.Run("prefers the winning move", func(t *testing.T) {
		m := NewMCTS(4, WithEpisodes(200))

		policy, _ := m.Simulate(forkState())

		require.Len(t, policy, 2, "Both moves should be explored")
		require.Greater(t, policy[move(1)], policy[move(0)], "Winning move should be visited most")
	})

	t.Run("counts every episode", func(t *testing.T) {
		m := NewMCTS(4, WithEpisodes(100), WithMetrics())

		policy, metric := m.Simulate(forkState())

		total := 0.0
		for _, visits := range policy {
			total += visits
		}
		require.Equal(t, 100.0, total, "Every episode should visit one root child")
		require.Equal(t, 100, metric.Episodes)
		require.Equal(t, 100, metric.FullPlayouts, "Every playout of a terminal child is full")
		require.Equal(t, 4, metric.Goroutines)
	})

	t.Run("searches for a duration", func(t *testing.T) {
		m := NewMCTS(2, WithDuration(20*time.Millisecond), WithMetrics())

		policy, metric := m.Simulate(forkState())

		require.NotEmpty(t, policy)
		require.Positive(t, metric.Episodes)
		require.GreaterOrEqual(t, metric.Duration, 20*time.Millisecond)
	})

	t.Run("terminal state", func(t *testing.T) {
		m := NewMCTS(2, WithEpisodes(10))

		policy, _ := m.Simulate(terminal("a"))

		require.Empty(t, policy, "No move should be suggested once the game is over")
	})

	t.Run("plays othello", func(t *testing.T) {
		turns, err := game.NewTurnCalculator([]string{"white", "black"})
		require.NoError(t, err)
		board, err := game.NewBoardFromShape(game.Square(8, "white", "black"))
		require.NoError(t, err)
		state := game.NewGameState(board, turns, game.NewStandardRules(), "black")
		m := NewMCTS(2, WithEpisodes(50), WithCutoff(8), WithEvaluationFn(game.EvaluateMobility))

		policy, _ := m.Simulate(state)

		require.Len(t, policy, 4, "Every opening move should be explored")
		for c := range policy {
			require.True(t, state.Rules().IsValidMove(state.Board, c, "black"), "Move %v should be legal", c)
		}
	})
}

func TestRollout(t *testing.T) {
	t.Run("full playout", func(t *testing.T) {
		collector := metrics.NewCollector()
		collector.Start(1, 10)

		player, score := rollout(chain(3, "a", "b", "b"), 10, nil, collector)

		require.Equal(t, "b", player, "Should return the winner")
		require.Equal(t, Win, score)
		require.Equal(t, 1, collector.Complete().FullPlayouts)
	})

	t.Run("cutoff", func(t *testing.T) {
		collector := metrics.NewCollector()
		collector.Start(1, 2)
		evaluate := func(s game.State) float64 { return 0.5 }

		player, score := rollout(chain(5, "a", "b", "b"), 2, evaluate, collector)

		require.Equal(t, "a", player, "Should evaluate for the player in turn at the cutoff")
		require.Equal(t, 0.5, score)
		require.Zero(t, collector.Complete().FullPlayouts)
	})

	t.Run("terminal state", func(t *testing.T) {
		player, score := rollout(terminal(""), 10, nil, metrics.NewDummyCollector())

		require.Empty(t, player, "A drawn game has no winner")
		require.Equal(t, Win, score)
	})
}

func TestBackup(t *testing.T) {
	root := &decision{visits: 1}
	child := &decision{parent: root, mover: "a", rewards: Loss, visits: 1}
	grandchild := &decision{parent: child, mover: "b", rewards: Loss, visits: 1}

	backup(grandchild, "a", Win)

	require.Equal(t, Loss, grandchild.rewards, "b lost")
	require.Equal(t, Win, child.rewards, "a won")
	require.Equal(t, 2.0, root.visits)
}
