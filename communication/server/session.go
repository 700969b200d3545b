package server

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"othello/communication"
	"othello/config"
	"othello/engine"
	"othello/experiments/metrics"
	"othello/game"
	"othello/gamemaster"
	"othello/player"
	"othello/repository"

	"github.com/google/uuid"
)

const (
	ShapeSquare  = "square"
	ShapeDiamond = "diamond"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrNoHistory    = errors.New("no move to undo")
	ErrBadRequest   = errors.New("bad request")
)

// session is one game hosted by the server. mu serialises every access to
// the coordinator.
type session struct {
	mu          sync.Mutex
	id          string
	coordinator *gamemaster.Coordinator
	view        *gamemaster.BoardView
	symbols     map[string]rune
	agents      map[string]string
	strategies  map[string]gamemaster.Strategy
	started     time.Time
	lastChanges []game.Node
	finished    bool
	moves       []metrics.MoveMetric
}

func (s *session) OnMove(changes []game.Node) {
	s.lastChanges = changes
}

func (s *session) OnGameFinished() {
	s.finished = true
}

func newSession(req communication.CreateGameRequest, cfg *config.Config) (*session, error) {
	players := req.Players
	if len(players) == 0 {
		players = cfg.Players
	}

	shape, symbols, err := shapeFor(req, players, cfg.BoardSize)
	if err != nil {
		return nil, err
	}

	strategies := make(map[string]gamemaster.Strategy, len(req.Computers))
	agents := make(map[string]string, len(req.Computers))
	for p, agent := range req.Computers {
		strategy, err := player.New(agent, players)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
		strategies[p] = strategy
		agents[p] = agent.Name
		if agents[p] == "" {
			agents[p] = agent.Kind
		}
	}

	s := &session{
		id:         uuid.NewString(),
		view:       gamemaster.NewBoardView(),
		symbols:    symbols,
		agents:     agents,
		strategies: strategies,
		started:    time.Now(),
	}
	s.coordinator, err = gamemaster.NewCoordinator(shape, players, strategies, s.view, gamemaster.WithListener(s))
	if err != nil {
		return nil, err
	}

	if req.Starter == "" {
		s.coordinator.Start()
	} else if err := s.coordinator.StartWith(req.Starter); err != nil {
		return nil, err
	}
	return s, nil
}

func shapeFor(req communication.CreateGameRequest, players []string, defaultSize int) (game.Shape, map[string]rune, error) {
	if len(req.Rows) > 0 {
		marks := make(map[rune]string, len(req.Marks))
		symbols := make(map[string]rune, len(req.Marks))
		for mark, p := range req.Marks {
			runes := []rune(mark)
			if len(runes) != 1 {
				return nil, nil, fmt.Errorf("%w: mark %q must be a single character", ErrBadRequest, mark)
			}
			marks[runes[0]] = p
			symbols[p] = runes[0]
		}
		shape, err := game.ParseRows(req.Rows, marks)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
		return shape, symbols, nil
	}

	if len(players) != 2 {
		return nil, nil, fmt.Errorf("%w: generated boards need two players, use rows for %d", ErrBadRequest, len(players))
	}
	size := req.BoardSize
	if size == 0 {
		size = defaultSize
	}
	if size < 4 || size%2 != 0 {
		return nil, nil, fmt.Errorf("%w: board size must be even and at least 4, got %d", ErrBadRequest, size)
	}

	switch req.Shape {
	case "", ShapeSquare:
		return game.Square(size, players[0], players[1]), defaultSymbols(players), nil
	case ShapeDiamond:
		// A diamond of radius size/2 spans size+1 nodes across
		return game.Diamond(size/2, players[0], players[1]), defaultSymbols(players), nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown shape %q", ErrBadRequest, req.Shape)
	}
}

// defaultSymbols uses the first letter of each player, or digits when two
// players share a letter.
func defaultSymbols(players []string) map[string]rune {
	symbols := make(map[string]rune, len(players))
	used := make(map[rune]bool, len(players))
	for _, p := range players {
		if p == "" {
			continue
		}
		r := []rune(p)[0]
		if used[r] {
			symbols = make(map[string]rune, len(players))
			for i, p := range players {
				symbols[p] = rune('1' + i%9)
			}
			return symbols
		}
		used[r] = true
		symbols[p] = r
	}
	return symbols
}

// move plays for player, or for the computer in turn when computer is set,
// and records the move metric.
func (s *session) move(player string, at game.Coordinates, computer bool) (communication.MoveResponse, error) {
	step := s.coordinator.HistoryLen() + 1
	if computer {
		player = s.coordinator.PlayerInTurn()
		var err error
		if at, err = s.coordinator.ComputerMove(); err != nil {
			return communication.MoveResponse{}, err
		}
	} else if err := s.coordinator.Move(player, at); err != nil {
		return communication.MoveResponse{}, err
	}

	moveMetric := metrics.MoveMetric{
		Step:     step,
		Player:   player,
		Move:     at.String(),
		Captured: len(s.lastChanges) - 1,
		Hash:     uint64(s.coordinator.State().Hash()),
	}
	if r, ok := s.strategies[player].(engine.Reporter); ok && computer {
		moveMetric.SearchMetric = r.LastMetric()
	}
	s.moves = append(s.moves[:step-1], moveMetric)

	return communication.MoveResponse{
		At:      at,
		Changes: s.lastChanges,
		Game:    s.snapshot(),
	}, nil
}

func (s *session) undo() (communication.GameView, error) {
	if !s.coordinator.Undo() {
		return communication.GameView{}, ErrNoHistory
	}
	s.moves = s.moves[:s.coordinator.HistoryLen()]
	s.finished = false
	return s.snapshot(), nil
}

func (s *session) snapshot() communication.GameView {
	state := s.coordinator.State()
	symbols := make(map[string]string, len(s.symbols))
	for p, r := range s.symbols {
		symbols[p] = string(r)
	}
	computers := make([]string, 0, len(s.strategies))
	for p := range s.strategies {
		computers = append(computers, p)
	}
	sort.Strings(computers)

	view := communication.GameView{
		ID:           s.id,
		Players:      s.coordinator.Players(),
		Computers:    computers,
		PlayerInTurn: state.PlayerInTurn,
		Board:        s.view.Render(s.symbols),
		Symbols:      symbols,
		ValidMoves:   []game.Coordinates{},
		Scores:       s.coordinator.Scores(),
		Over:         state.IsOver(),
		History:      s.coordinator.HistoryLen(),
	}
	if state.PlayerInTurn != "" {
		view.ValidMoves = append(view.ValidMoves, s.coordinator.Rules().ValidMoves(state.Board, state.PlayerInTurn)...)
	} else {
		view.Winner = s.coordinator.Winner()
	}
	return view
}

// record describes the finished game for the archive.
func (s *session) record() *repository.GameRecord {
	scores := s.coordinator.Scores()
	end := time.Now()
	starting := ""
	if len(s.moves) > 0 {
		starting = s.moves[0].Player
	}
	return &repository.GameRecord{
		ID:     s.id,
		Source: "http",
		Agents: s.agents,
		Game: metrics.GameMetric{
			StartingPlayer: starting,
			Winner:         s.coordinator.Winner(),
			Scores:         scores,
			StartTime:      s.started,
			EndTime:        end,
			Duration:       end.Sub(s.started),
			TotalMoves:     len(s.moves),
		},
		Moves: s.moves,
	}
}
