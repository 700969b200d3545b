package experiments

import (
	"fmt"

	"othello/config"
	"othello/experiments/metrics"
)

// Throughput pits a search agent against itself for each goroutine count,
// for the same playing strength and similar game length.
func Throughput(base config.Agent, goroutines []int) Experiment {
	configs := make([]config.Agent, 0, len(goroutines))
	matchUps := make([]Matchup, 0, len(goroutines))
	for _, n := range goroutines {
		agent := base
		agent.Goroutines = n
		agent.Name = fmt.Sprintf("%s-g%d", base.Name, n)
		configs = append(configs, agent)
		matchUps = append(matchUps, Matchup{agent, agent})
	}
	return Experiment{Name: "throughput", Agents: configs, Matchups: matchUps}
}

// EpisodesPerSecond averages search throughput over every searched move.
func EpisodesPerSecond(records []metrics.MoveRecord) float64 {
	episodes := 0
	seconds := 0.0
	for _, r := range records {
		if r.Episodes == 0 {
			continue
		}
		episodes += r.Episodes
		seconds += r.Duration.Seconds()
	}
	if seconds == 0 {
		return 0
	}
	return float64(episodes) / seconds
}
