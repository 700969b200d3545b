package player

import (
	"math"
	"slices"
	"sync"

	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type SearchOption func(s *Search)

// WithTemperature samples moves in proportion to visits^(1/temperature)
// instead of always playing the most visited move.
func WithTemperature(temperature float64) SearchOption {
	return func(s *Search) {
		if temperature > 0 {
			s.temperature = temperature
		}
	}
}

func WithRand(rng *rand.Rand) SearchOption {
	return func(s *Search) {
		s.rng = rng
	}
}

// Search selects moves with Monte Carlo tree search.
type Search struct {
	turns       *game.TurnCalculator
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand

	mu   sync.Mutex
	last metrics.SearchMetric
}

func NewSearch(players []string, mcts *searcher.MCTS, options ...SearchOption) (*Search, error) {
	turns, err := game.NewTurnCalculator(players)
	if err != nil {
		return nil, err
	}
	s := &Search{turns: turns, mcts: mcts}
	for _, option := range options {
		option(s)
	}
	return s, nil
}

func (s *Search) SelectMove(player string, rules game.Rules, board game.Board) (game.Coordinates, bool) {
	state := game.NewGameState(board, s.turns, rules, player)
	if state.PlayerInTurn != player {
		return game.Coordinates{}, false
	}

	visits, metric := s.mcts.Simulate(state)
	s.mu.Lock()
	s.last = metric
	s.mu.Unlock()

	if len(visits) == 0 {
		return game.Coordinates{}, false
	}

	log.Debug().Msgf("%s searched %d episodes in %v", player, metric.Episodes, metric.Duration)
	if s.temperature > 0 {
		return s.sample(adjustTemperature(visits, s.temperature)), true
	}
	return findMax(visits), true
}

// LastMetric returns the metrics of the most recent search.
func (s *Search) LastMetric() metrics.SearchMetric {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func adjustTemperature(visits map[game.Coordinates]float64, temperature float64) map[game.Coordinates]float64 {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	policy := make(map[game.Coordinates]float64, len(visits))
	for move, visit := range visits {
		prob := math.Pow(visit, exponent)
		sum += prob
		policy[move] = prob
	}
	if sum == 0 {
		return policy
	}
	// Normalize
	for move := range policy {
		policy[move] /= sum
	}
	return policy
}

// sample walks the moves in row order so a seeded source gives repeatable
// picks.
func (s *Search) sample(policy map[game.Coordinates]float64) game.Coordinates {
	moves := sortedMoves(policy)
	var sampled float64
	if s.rng != nil {
		s.mu.Lock()
		sampled = s.rng.Float64()
		s.mu.Unlock()
	} else {
		sampled = rand.Float64()
	}

	cumulative := 0.0
	for _, move := range moves {
		cumulative += policy[move]
		if sampled < cumulative {
			return move
		}
	}
	return moves[len(moves)-1] // Fallback in case of rounding errors
}

// findMax returns the most visited move, the first in row order on ties.
func findMax(visits map[game.Coordinates]float64) game.Coordinates {
	var maxMove game.Coordinates
	maxVisits := -1.0
	for _, move := range sortedMoves(visits) {
		if visits[move] > maxVisits {
			maxVisits = visits[move]
			maxMove = move
		}
	}
	return maxMove
}

func sortedMoves(policy map[game.Coordinates]float64) []game.Coordinates {
	moves := make([]game.Coordinates, 0, len(policy))
	for move := range policy {
		moves = append(moves, move)
	}
	slices.SortFunc(moves, func(a, b game.Coordinates) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	return moves
}
