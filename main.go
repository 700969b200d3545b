package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"othello/communication/server"
	"othello/config"
	"othello/experiments"
	"othello/experiments/metrics"
	"othello/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

func main() {
	configPath := flag.String("config", "config.yml", "Path to the config file")
	mode := flag.String("mode", "tournament", "One of tournament, throughput or serve")
	goroutines := flag.String("goroutines", "1,2,4,8", "Goroutine counts for the throughput experiment")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	setupLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Tournament.Seed != 0 {
		rand.Seed(cfg.Tournament.Seed)
	}

	var archive repository.GameRepository
	if cfg.Tournament.Archive || *mode == "serve" {
		archive = connectArchive(ctx, cfg)
	}

	switch *mode {
	case "tournament":
		runExperiment(ctx, cfg, archive, experiments.RoundRobin("round_robin", cfg.Tournament.Agents))
	case "throughput":
		base := config.Agent{Name: "mcts", Kind: "mcts", Duration: 10 * time.Millisecond}
		for _, agent := range cfg.Tournament.Agents {
			if agent.Kind == "mcts" {
				base = agent
				break
			}
		}
		runExperiment(ctx, cfg, archive, experiments.Throughput(base, parseInts(*goroutines)))
	case "serve":
		if err := server.NewServerCommunicator(cfg, archive).Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}

func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
}

// connectArchive returns nil when redis is unreachable, games are then only
// written to CSV or kept in memory.
func connectArchive(ctx context.Context, cfg *config.Config) repository.GameRepository {
	connCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	client, err := repository.NewRedisClient(connCtx, cfg.Redis.GetRedisAddr())
	if err != nil {
		log.Warn().Err(err).Msg("game archive disabled")
		return nil
	}
	log.Info().Msgf("archiving games to redis at %s", cfg.Redis.GetRedisAddr())
	return repository.NewGameRepository(client)
}

func runExperiment(ctx context.Context, cfg *config.Config, archive repository.GameRepository, exp experiments.Experiment) {
	writer, err := metrics.NewWriter(cfg.Tournament.OutputDir, exp.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create experiment writer")
	}

	runner, err := experiments.NewRunner(cfg, writer, archive)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid tournament config")
	}

	standings, err := runner.Run(ctx, exp)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}

	for _, agent := range exp.Agents {
		s := standings[agent.Name]
		log.Info().Msgf("%-16s wins=%d losses=%d draws=%d", agent.Name, s.Wins, s.Losses, s.Draws)
	}
	log.Info().Msgf("results written to %s", writer.Dir())
}

func parseInts(list string) []int {
	var values []int
	for _, part := range strings.Split(list, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v < 1 {
			log.Fatal().Msgf("invalid goroutine count %q", part)
		}
		values = append(values, v)
	}
	return values
}
