package engine

import "othello/experiments/metrics"

// MaxMoves guards against strategies that never finish a game.
const MaxMoves = 10000

type Engine interface {
	// Run plays a game till it is over or a max number of moves is reached
	Run() (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

// Reporter is implemented by strategies that collect search metrics.
type Reporter interface {
	LastMetric() metrics.SearchMetric
}
