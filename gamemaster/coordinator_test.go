package gamemaster

import (
	"testing"

	"othello/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

var marks = map[rune]string{'a': "a", 'b': "b"}

type recorder struct {
	events []Event
}

func (r *recorder) OnMove(changes []game.Node) {
	r.events = append(r.events, Event{Kind: MoveMade, Changes: changes})
}

func (r *recorder) OnGameFinished() {
	r.events = append(r.events, Event{Kind: GameFinished})
}

// firstMove plays the first valid move in row order.
var firstMove = StrategyFunc(func(player string, rules game.Rules, board game.Board) (game.Coordinates, bool) {
	moves := rules.ValidMoves(board, player)
	if len(moves) == 0 {
		return game.Coordinates{}, false
	}
	return moves[0], true
})

var noMove = StrategyFunc(func(string, game.Rules, game.Board) (game.Coordinates, bool) {
	return game.Coordinates{}, false
})

func mustShape(t *testing.T, rows ...string) game.Shape {
	t.Helper()
	shape, err := game.ParseRows(rows, marks)
	require.NoError(t, err)
	return shape
}

func newOpening(t *testing.T, strategies map[string]Strategy) (*Coordinator, *BoardView, *recorder) {
	t.Helper()
	view := NewBoardView()
	rec := &recorder{}
	c, err := NewCoordinator(game.Square(8, "white", "black"), []string{"white", "black"}, strategies, view,
		WithListener(rec), WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	return c, view, rec
}

func TestNewCoordinator(t *testing.T) {
	t.Run("rejects strategies for unknown players", func(t *testing.T) {
		_, err := NewCoordinator(game.Square(8, "white", "black"), []string{"white", "black"},
			map[string]Strategy{"red": firstMove}, nil)

		require.ErrorIs(t, err, game.ErrNoSuchPlayer)
	})

	t.Run("rejects invalid player lists", func(t *testing.T) {
		_, err := NewCoordinator(game.Square(8, "white", "black"), []string{"white", "white"}, nil, nil)

		require.ErrorIs(t, err, game.ErrInvalidPlayerList)
	})

	t.Run("starts in the pre-game state", func(t *testing.T) {
		c, view, _ := newOpening(t, nil)

		require.Empty(t, c.PlayerInTurn())
		require.True(t, view.Matches(c.State().Board), "View should mirror the initial board")
	})
}

func TestCoordinatorStart(t *testing.T) {
	t.Run("random start is reproducible with the same source", func(t *testing.T) {
		c1, _, _ := newOpening(t, nil)
		c2, _, _ := newOpening(t, nil)

		c1.Start()
		c2.Start()

		require.Contains(t, []string{"white", "black"}, c1.PlayerInTurn())
		require.Equal(t, c1.PlayerInTurn(), c2.PlayerInTurn())
	})

	t.Run("random start reaches every player", func(t *testing.T) {
		c, _, _ := newOpening(t, nil)
		seen := map[string]bool{}
		for i := 0; i < 50; i++ {
			c.Start()
			seen[c.PlayerInTurn()] = true
		}

		require.Len(t, seen, 2, "Both players should eventually start")
	})

	t.Run("requested player", func(t *testing.T) {
		c, view, _ := newOpening(t, nil)

		require.NoError(t, c.StartWith("black"))

		require.Equal(t, "black", c.PlayerInTurn())
		require.True(t, view.Matches(c.State().Board))
	})

	t.Run("unknown player", func(t *testing.T) {
		c, _, _ := newOpening(t, nil)

		err := c.StartWith("red")

		require.ErrorIs(t, err, game.ErrNoSuchPlayer)
		require.Empty(t, c.PlayerInTurn())
	})

	t.Run("restart resets the view and history", func(t *testing.T) {
		c, view, _ := newOpening(t, nil)
		require.NoError(t, c.StartWith("black"))
		require.NoError(t, c.Move("black", game.Coordinates{X: 5, Y: 3}))

		require.NoError(t, c.StartWith("white"))

		require.Equal(t, 0, c.HistoryLen())
		require.Equal(t, "white", c.PlayerInTurn())
		require.True(t, view.Matches(c.State().Board), "View should be reset in full")
	})
}

func TestCoordinatorMove(t *testing.T) {
	t.Run("accepted move updates view and notifies", func(t *testing.T) {
		c, view, rec := newOpening(t, nil)
		require.NoError(t, c.StartWith("black"))

		err := c.Move("black", game.Coordinates{X: 5, Y: 3})

		require.NoError(t, err)
		require.True(t, view.Matches(c.State().Board), "View should follow the model")
		require.Equal(t, []Event{{Kind: MoveMade, Changes: []game.Node{
			{Coordinates: game.Coordinates{X: 4, Y: 3}, Occupant: "black"},
			{Coordinates: game.Coordinates{X: 5, Y: 3}, Occupant: "black"},
		}}}, rec.events, "Move event should carry the changed nodes with the played node last")
		require.Equal(t, map[string]int{"black": 4, "white": 1}, c.Scores())
		require.Equal(t, "white", c.PlayerInTurn())
	})

	t.Run("final move also finishes the game", func(t *testing.T) {
		view := NewBoardView()
		rec := &recorder{}
		c, err := NewCoordinator(mustShape(t, "ab-"), []string{"a", "b"}, nil, view, WithListener(rec))
		require.NoError(t, err)
		require.NoError(t, c.StartWith("a"))

		require.NoError(t, c.Move("a", game.Coordinates{X: 2, Y: 0}))

		require.Len(t, rec.events, 2)
		require.Equal(t, MoveMade, rec.events[0].Kind, "Move event should come first")
		require.Equal(t, GameFinished, rec.events[1].Kind)
		require.Empty(t, c.PlayerInTurn())
		require.Equal(t, "a", c.Winner())
		require.Equal(t, []string{"aaa"}, view.Render(map[string]rune{"a": 'a', "b": 'b'}))
	})

	t.Run("rejected moves change nothing", func(t *testing.T) {
		c, view, rec := newOpening(t, nil)
		require.NoError(t, c.StartWith("black"))
		before := c.State()
		updates := view.Updates()

		for _, attempt := range []struct {
			player string
			at     game.Coordinates
		}{
			{"white", game.Coordinates{X: 5, Y: 3}}, // out of turn
			{"black", game.Coordinates{X: 0, Y: 0}}, // no captures
			{"black", game.Coordinates{X: 3, Y: 3}}, // occupied
			{"black", game.Coordinates{X: 9, Y: 9}}, // off the board
			{"red", game.Coordinates{X: 5, Y: 3}},   // unknown player
		} {
			err := c.Move(attempt.player, attempt.at)
			require.ErrorIs(t, err, game.ErrInvalidMove, "Move %+v should be rejected", attempt)
		}

		require.Equal(t, before, c.State(), "Model should not change")
		require.Equal(t, updates, view.Updates(), "View should not change")
		require.Empty(t, rec.events, "No notification should be sent")
	})

	t.Run("moves before the start are rejected", func(t *testing.T) {
		c, _, _ := newOpening(t, nil)

		err := c.Move("black", game.Coordinates{X: 5, Y: 3})

		require.ErrorIs(t, err, game.ErrInvalidMove)
	})
}

func TestCoordinatorComputerMove(t *testing.T) {
	t.Run("human in turn", func(t *testing.T) {
		c, view, rec := newOpening(t, map[string]Strategy{"white": firstMove})
		require.NoError(t, c.StartWith("black"))
		before := c.State()
		updates := view.Updates()

		_, err := c.ComputerMove()

		require.ErrorIs(t, err, game.ErrNoComputerInTurn)
		require.Equal(t, before, c.State())
		require.Equal(t, updates, view.Updates())
		require.Empty(t, rec.events)
	})

	t.Run("nobody in turn", func(t *testing.T) {
		c, _, _ := newOpening(t, map[string]Strategy{"white": firstMove, "black": firstMove})

		_, err := c.ComputerMove()

		require.ErrorIs(t, err, game.ErrNoComputerInTurn)
	})

	t.Run("computer in turn plays its strategy", func(t *testing.T) {
		c, view, rec := newOpening(t, map[string]Strategy{"black": firstMove})
		require.NoError(t, c.StartWith("black"))

		at, err := c.ComputerMove()

		require.NoError(t, err)
		require.Equal(t, game.Coordinates{X: 4, Y: 2}, at, "First valid move in row order should be played")
		require.True(t, view.Matches(c.State().Board))
		require.Len(t, rec.events, 1)
	})

	t.Run("strategy without a move", func(t *testing.T) {
		c, _, _ := newOpening(t, map[string]Strategy{"black": noMove})
		require.NoError(t, c.StartWith("black"))

		_, err := c.ComputerMove()

		require.ErrorIs(t, err, game.ErrInvalidMove)
		require.Equal(t, 0, c.HistoryLen())
	})

	t.Run("computers play a full game", func(t *testing.T) {
		c, view, rec := newOpening(t, map[string]Strategy{"white": firstMove, "black": firstMove})
		c.Start()

		moves := 0
		for c.PlayerInTurn() != "" {
			_, err := c.ComputerMove()
			require.NoError(t, err)
			moves++
		}

		require.LessOrEqual(t, moves, 60, "Every move fills one node")
		require.Equal(t, GameFinished, rec.events[len(rec.events)-1].Kind)
		require.True(t, view.Matches(c.State().Board))
	})
}

func TestCoordinatorUndo(t *testing.T) {
	t.Run("restores the previous board in full", func(t *testing.T) {
		c, view, _ := newOpening(t, nil)
		require.NoError(t, c.StartWith("black"))
		before := c.State()
		require.NoError(t, c.Move("black", game.Coordinates{X: 5, Y: 3}))

		ok := c.Undo()

		require.True(t, ok)
		require.Equal(t, before, c.State())
		require.True(t, view.Matches(before.Board))
	})

	t.Run("no-op without history", func(t *testing.T) {
		c, view, _ := newOpening(t, nil)
		require.NoError(t, c.StartWith("black"))
		updates := view.Updates()

		ok := c.Undo()

		require.False(t, ok)
		require.Equal(t, updates, view.Updates(), "View should not change")
	})
}

func TestCoordinatorIsComputer(t *testing.T) {
	c, _, _ := newOpening(t, map[string]Strategy{"white": firstMove})

	computer, err := c.IsComputer("white")
	require.NoError(t, err)
	require.True(t, computer)

	computer, err = c.IsComputer("black")
	require.NoError(t, err)
	require.False(t, computer)

	_, err = c.IsComputer("red")
	require.ErrorIs(t, err, game.ErrNoSuchPlayer)
}

func TestChannelListener(t *testing.T) {
	l := NewChannelListener(4)
	c, err := NewCoordinator(mustShape(t, "ab-"), []string{"a", "b"}, nil, nil, WithListener(l))
	require.NoError(t, err)
	require.NoError(t, c.StartWith("a"))

	require.NoError(t, c.Move("a", game.Coordinates{X: 2, Y: 0}))
	l.Close()

	var kinds []EventKind
	for e := range l.Events() {
		kinds = append(kinds, e.Kind)
	}
	require.Equal(t, []EventKind{MoveMade, GameFinished}, kinds)
}
