package searcher

import (
	"sync"
	"time"

	"othello/experiments/metrics"
	"othello/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	evaluate   game.Evaluate
	metrics    metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(u *MCTS) {
		if duration > 0 {
			u.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(u *MCTS) {
		if episodes > 0 {
			u.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(u *MCTS) {
		if depth > 0 {
			u.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

// NewMCTS returns a searcher running goroutines parallel episodes on a shared
// tree. Either episodes or a duration must be given.
func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: goroutines,
		cutoff:     MaxCutoff,
		evaluate:   game.EvaluateDiscs,
		metrics:    metrics.NewDummyCollector(),
	}
	if m.goroutines < 1 {
		m.goroutines = 1
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Simulate searches from state and returns the visit count of every explored
// move together with the search metrics.
func (m *MCTS) Simulate(state game.State) (map[game.Coordinates]float64, metrics.SearchMetric) {
	root := newDecision(nil, "", state)

	// Run simulations to collect statistics
	m.metrics.Start(m.goroutines, m.cutoff)
	if len(root.moves) > 0 {
		if m.episodes > 0 {
			m.iterate(root, state)
		} else {
			m.countdown(root, state)
		}
	} else {
		log.Warn().Msg("searching a terminal state")
	}
	metric := m.metrics.Complete()

	// Output move policy and move finding metrics
	return root.Policy(), metric
}

func (m *MCTS) iterate(root *decision, state game.State) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for range task {
				m.simulate(root, state)
				m.metrics.AddEpisode()
			}
		}()
	}

	wg.Wait()
}

func (m *MCTS) countdown(root *decision, state game.State) {
	done := make(chan any)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for {
				select {
				case <-done:
					return
				default:
					m.simulate(root, state)
					m.metrics.AddEpisode()
				}
			}
		}()
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

func (m *MCTS) simulate(root *decision, state game.State) {
	newNode, newState := selectThenExpand(root, state)
	player, score := rollout(newState, m.cutoff, m.evaluate, m.metrics)
	backup(newNode, player, score)
}

func selectThenExpand(root *decision, state game.State) (*decision, game.State) {
	node := root
	for {
		child, childState, selected := node.SelectOrExpand(state)
		node, state = child, childState
		if !selected {
			return node, state
		}
	}
}

func rollout(state game.State, cutoff int, evaluate game.Evaluate, metrics metrics.Collector) (string, float64) {
	depth := 0
	moves := state.LegalMoves()
	// Rollout till game over or for cutoff number of moves
	for len(moves) > 0 && (depth < cutoff) {
		move := moves[rand.Intn(len(moves))] // Random rollout policy
		state = state.Play(move)
		moves = state.LegalMoves()
		depth++
	}

	if len(moves) == 0 { // Game over before cutoff
		metrics.AddFullPlayout()
		return state.Winner(), Win
	}

	// At cutoff state, return an evaluation score from current player's perspective
	return state.Player(), evaluate(state)
}

func backup(newNode *decision, player string, score float64) {
	node := newNode
	for node != nil {
		node = node.Backup(player, score)
	}
}
