package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric describes one move search.
type SearchMetric struct {
	Goroutines   int           `json:"goroutines"`
	Duration     time.Duration `json:"duration"`
	Episodes     int           `json:"episodes"`
	Cutoff       int           `json:"cutoff"`
	FullPlayouts int           `json:"full_playouts"`
}

type MoveMetric struct {
	Step     int    `json:"step"`
	Player   string `json:"player"`
	Move     string `json:"move"`        // Coordinates played, e.g. "(5,3)"
	Captured int    `json:"captured"`    // Nodes captured, the played node excluded
	Hash     uint64 `json:"hash,string"` // State hash after the move
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string         `json:"starting_player"`
	Winner         string         `json:"winner"` // "" on a tie
	Scores         map[string]int `json:"scores"`
	StartTime      time.Time      `json:"start_time"`
	EndTime        time.Time      `json:"end_time"`
	Duration       time.Duration  `json:"duration"`
	TotalMoves     int            `json:"total_moves"`
}

type Collector interface {
	Start(goroutines, cutoff int)
	AddFullPlayout()
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	cutoff       int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, cutoff int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.cutoff = cutoff
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Cutoff:       m.cutoff,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, cutoff int) {}
func (m *dummyCollector) AddFullPlayout()              {}
func (m *dummyCollector) AddEpisode()                  {}
func (m *dummyCollector) Complete() SearchMetric       { return SearchMetric{} }
