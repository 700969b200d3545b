package experiments

import (
	"context"
	"errors"
	"fmt"

	"othello/config"
	"othello/engine"
	"othello/experiments/metrics"
	"othello/game"
	"othello/gamemaster"
	"othello/player"
	"othello/repository"

	"github.com/rs/zerolog/log"
)

var ErrTournamentPlayers = errors.New("tournaments need exactly two players")

// Matchup pairs the agents playing the first and second player.
type Matchup [2]config.Agent

type Experiment struct {
	Name     string
	Agents   []config.Agent
	Matchups []Matchup
}

// RoundRobin pairs every agent with every other agent once.
func RoundRobin(name string, agents []config.Agent) Experiment {
	matchUps := []Matchup{}
	for i := range agents {
		for j := i + 1; j < len(agents); j++ {
			matchUps = append(matchUps, Matchup{agents[i], agents[j]})
		}
	}
	return Experiment{Name: name, Agents: agents, Matchups: matchUps}
}

// RecordWriter stores the results of an experiment.
type RecordWriter interface {
	WriteAgentConfigs(configs []config.Agent) error
	WriteGameRecords(records []metrics.GameRecord) error
	WriteMoveRecords(records []metrics.MoveRecord) error
}

// Standing is the record of one agent across an experiment.
type Standing struct {
	Wins   int
	Losses int
	Draws  int
}

type Runner struct {
	shape    game.Shape
	players  []string
	numGames int
	writer   RecordWriter
	archive  repository.GameRepository
}

// NewRunner plays games on a square board of cfg.BoardSize. archive may be
// nil.
func NewRunner(cfg *config.Config, writer RecordWriter, archive repository.GameRepository) (*Runner, error) {
	if len(cfg.Players) != 2 {
		return nil, fmt.Errorf("%w: got %v", ErrTournamentPlayers, cfg.Players)
	}
	if cfg.BoardSize < 4 || cfg.BoardSize%2 != 0 {
		return nil, fmt.Errorf("board size must be even and at least 4, got %d", cfg.BoardSize)
	}
	if cfg.Tournament.NumGames < 1 {
		return nil, fmt.Errorf("number of games must be positive, got %d", cfg.Tournament.NumGames)
	}

	return &Runner{
		shape:    game.Square(cfg.BoardSize, cfg.Players[0], cfg.Players[1]),
		players:  cfg.Players,
		numGames: cfg.Tournament.NumGames,
		writer:   writer,
		archive:  archive,
	}, nil
}

// Run plays every matchup numGames times, alternating the starting player,
// and stores the records.
func (r *Runner) Run(ctx context.Context, exp Experiment) (map[string]Standing, error) {
	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	standings := make(map[string]Standing, len(exp.Agents))

	log.Info().Msgf("starting %s experiment...", exp.Name)

	for mi, matchup := range exp.Matchups {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%s and agent2=%s...", mi+1, len(exp.Matchups), config1.Name, config2.Name)

		for i := 0; i < r.numGames; i++ {
			if err := ctx.Err(); err != nil {
				return standings, err
			}

			starter := r.players[i%2]
			log.Info().Msgf("starting matchup %d of %d game %d of %d...", mi+1, len(exp.Matchups), i+1, r.numGames)

			winner, gameMetric, moveMetrics, err := r.runGame(matchup, starter)
			if err != nil {
				return standings, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.Name,
				Agent2:     config2.Name,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}
			r.tally(standings, matchup, winner)
			r.store(ctx, exp.Name, matchup, gameMetric, moveMetrics)

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %q", mi+1, len(exp.Matchups), i+1, winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(exp.Matchups))
	}

	log.Info().Msgf("completed %s experiment", exp.Name)
	if eps := EpisodesPerSecond(moveRecords); eps > 0 {
		log.Info().Msgf("search throughput: %.0f episodes/s", eps)
	}

	if err := r.writeRecords(exp, gameRecords, moveRecords); err != nil {
		return standings, err
	}
	return standings, nil
}

// runGame executes a single game between two agents and returns the winner
func (r *Runner) runGame(matchup Matchup, starter string) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	strategies := make(map[string]gamemaster.Strategy, len(r.players))
	for i, p := range r.players {
		strategy, err := player.New(matchup[i], r.players)
		if err != nil {
			return "", metrics.GameMetric{}, nil, err
		}
		strategies[p] = strategy
	}

	e, err := engine.NewLocalEngine(r.shape, r.players, strategies, engine.WithStarter(starter))
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	return e.Run()
}

// tally skips mirror matchups, where one agent would take both the win and
// the loss.
func (r *Runner) tally(standings map[string]Standing, matchup Matchup, winner string) {
	if matchup[0].Name == matchup[1].Name {
		return
	}
	for i, p := range r.players {
		name := matchup[i].Name
		s := standings[name]
		switch winner {
		case "":
			s.Draws++
		case p:
			s.Wins++
		default:
			s.Losses++
		}
		standings[name] = s
	}
}

func (r *Runner) store(ctx context.Context, source string, matchup Matchup, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric) {
	if r.archive == nil {
		return
	}

	agents := make(map[string]string, len(r.players))
	for i, p := range r.players {
		agents[p] = matchup[i].Name
	}
	record := &repository.GameRecord{
		Source: source,
		Agents: agents,
		Game:   gameMetric,
		Moves:  moveMetrics,
	}
	if err := r.archive.Save(ctx, record); err != nil {
		log.Warn().Err(err).Msg("failed to archive game")
		return
	}
	log.Debug().Msgf("archived game %s", record.ID)
}

func (r *Runner) writeRecords(exp Experiment, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) error {
	if r.writer == nil {
		return nil
	}

	// Store experiment metadata
	if err := r.writer.WriteAgentConfigs(exp.Agents); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	if err := r.writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := r.writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return nil
}
