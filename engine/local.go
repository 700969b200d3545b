package engine

import (
	"errors"
	"fmt"
	"time"

	"othello/experiments/metrics"
	"othello/game"
	"othello/gamemaster"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var ErrMissingStrategy = errors.New("every player needs a strategy")

type Option func(e *LocalEngine)

// WithStarter requests player to move first. A random player starts by
// default.
func WithStarter(player string) Option {
	return func(e *LocalEngine) {
		e.starter = player
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(e *LocalEngine) {
		e.rng = rng
	}
}

// WithListener forwards the coordinator events of every game to l.
func WithListener(l gamemaster.Listener) Option {
	return func(e *LocalEngine) {
		e.listeners = append(e.listeners, l)
	}
}

// LocalEngine plays computer-only games in process.
type LocalEngine struct {
	shape      game.Shape
	players    []string
	strategies map[string]gamemaster.Strategy
	starter    string
	rng        *rand.Rand
	listeners  []gamemaster.Listener
}

func NewLocalEngine(shape game.Shape, players []string, strategies map[string]gamemaster.Strategy, options ...Option) (*LocalEngine, error) {
	for _, p := range players {
		if _, ok := strategies[p]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingStrategy, p)
		}
	}

	e := &LocalEngine{
		shape:      shape,
		players:    players,
		strategies: strategies,
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

// moveTracker remembers how many nodes the last move changed.
type moveTracker struct {
	changed  int
	finished bool
}

func (t *moveTracker) OnMove(changes []game.Node) {
	t.changed = len(changes)
}

func (t *moveTracker) OnGameFinished() {
	t.finished = true
}

// Run executes the entire game loop until the game is over.
func (e *LocalEngine) Run() (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	tracker := &moveTracker{}
	options := []gamemaster.Option{gamemaster.WithListener(tracker), gamemaster.WithRand(e.rng)}
	for _, l := range e.listeners {
		options = append(options, gamemaster.WithListener(l))
	}
	c, err := gamemaster.NewCoordinator(e.shape, e.players, e.strategies, nil, options...)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}

	if e.starter == "" {
		c.Start()
	} else if err := c.StartWith(e.starter); err != nil {
		return "", metrics.GameMetric{}, nil, err
	}

	gameMetric := metrics.GameMetric{
		StartingPlayer: c.PlayerInTurn(),
		StartTime:      time.Now(),
	}
	log.Info().Msgf("player %s is starting", gameMetric.StartingPlayer)

	// Loop until nobody can move
	var moveMetrics []metrics.MoveMetric
	step := 1
	for c.PlayerInTurn() != "" && step <= MaxMoves {
		player := c.PlayerInTurn()

		at, err := c.ComputerMove()
		if err != nil {
			return "", gameMetric, moveMetrics, fmt.Errorf("move %d by %s: %w", step, player, err)
		}

		moveMetric := metrics.MoveMetric{
			Step:     step,
			Player:   player,
			Move:     at.String(),
			Captured: tracker.changed - 1,
			Hash:     uint64(c.State().Hash()),
		}
		if r, ok := e.strategies[player].(Reporter); ok {
			moveMetric.SearchMetric = r.LastMetric()
		}
		moveMetrics = append(moveMetrics, moveMetric)
		step++
	}

	if !tracker.finished {
		log.Warn().Msgf("stopped after %d moves without a finished game", MaxMoves)
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Winner = c.Winner()
	gameMetric.Scores = c.Scores()

	log.Info().Msgf("game over after %d moves, winner: %q, scores: %v", gameMetric.TotalMoves, gameMetric.Winner, gameMetric.Scores)
	return gameMetric.Winner, gameMetric, moveMetrics, nil
}
