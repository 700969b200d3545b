package player

import (
	"fmt"
	"sync"

	"othello/config"
	"othello/game"
	"othello/gamemaster"
	"othello/searcher"

	"golang.org/x/exp/rand"
)

const (
	KindRandom = "random"
	KindGreedy = "greedy"
	KindMCTS   = "mcts"
)

// New builds the strategy described by cfg for a game between players.
func New(cfg config.Agent, players []string) (gamemaster.Strategy, error) {
	switch cfg.Kind {
	case KindRandom:
		return NewRandom(nil), nil
	case KindGreedy:
		return NewGreedy(), nil
	case KindMCTS:
		evaluate, err := evaluation(cfg.Evaluation)
		if err != nil {
			return nil, err
		}
		if cfg.Episodes <= 0 && cfg.Duration <= 0 {
			return nil, fmt.Errorf("agent %q: must specify search episodes or duration", cfg.Name)
		}
		mcts := searcher.NewMCTS(cfg.Goroutines,
			searcher.WithEpisodes(cfg.Episodes),
			searcher.WithDuration(cfg.Duration),
			searcher.WithCutoff(cfg.Cutoff),
			searcher.WithEvaluationFn(evaluate),
			searcher.WithMetrics(),
		)
		return NewSearch(players, mcts, WithTemperature(cfg.Temperature))
	default:
		return nil, fmt.Errorf("agent %q: unknown kind %q", cfg.Name, cfg.Kind)
	}
}

func evaluation(name string) (game.Evaluate, error) {
	switch name {
	case "", "discs":
		return game.EvaluateDiscs, nil
	case "mobility":
		return game.EvaluateMobility, nil
	case "corners":
		return game.EvaluateCorners, nil
	default:
		return nil, fmt.Errorf("unknown evaluation %q", name)
	}
}

// Random plays a uniformly random valid move.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom uses rng, or the global source when rng is nil.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (r *Random) SelectMove(player string, rules game.Rules, board game.Board) (game.Coordinates, bool) {
	moves := rules.ValidMoves(board, player)
	if len(moves) == 0 {
		return game.Coordinates{}, false
	}
	return moves[r.intn(len(moves))], true
}

func (r *Random) intn(n int) int {
	if r.rng == nil {
		return rand.Intn(n)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// Greedy plays the move capturing most nodes. Ties go to the first move in
// row order.
type Greedy struct{}

func NewGreedy() Greedy {
	return Greedy{}
}

func (Greedy) SelectMove(player string, rules game.Rules, board game.Board) (game.Coordinates, bool) {
	var best game.Coordinates
	most := 0
	for _, c := range rules.ValidMoves(board, player) {
		if captured := len(rules.CapturedNodes(board, c, player)); captured > most {
			best, most = c, captured
		}
	}
	return best, most > 0
}
