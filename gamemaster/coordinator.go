package gamemaster

import (
	"fmt"
	"time"

	"othello/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(c *Coordinator)

func WithRules(rules game.Rules) Option {
	return func(c *Coordinator) {
		if rules != nil {
			c.rules = rules
		}
	}
}

// WithRand sets the source used to pick a random starting player.
func WithRand(rng *rand.Rand) Option {
	return func(c *Coordinator) {
		if rng != nil {
			c.rng = rng
		}
	}
}

func WithListener(l Listener) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.listeners = append(c.listeners, l)
		}
	}
}

// Coordinator drives a GameModel and keeps a View and Listeners in sync with
// it. It is not safe for concurrent use.
type Coordinator struct {
	initial    game.Board
	turns      *game.TurnCalculator
	rules      game.Rules
	strategies map[string]Strategy
	view       View
	listeners  []Listener
	rng        *rand.Rand
	model      *game.GameModel
}

// NewCoordinator builds a coordinator for players in turn order. Players
// without an entry in strategies are human. The game is in its pre-game
// state until Start or StartWith is called.
func NewCoordinator(shape game.Shape, players []string, strategies map[string]Strategy, view View, options ...Option) (*Coordinator, error) {
	turns, err := game.NewTurnCalculator(players)
	if err != nil {
		return nil, fmt.Errorf("cannot create coordinator: %w", err)
	}
	for player := range strategies {
		if !turns.Contains(player) {
			return nil, fmt.Errorf("cannot assign strategy: %w: %q", game.ErrNoSuchPlayer, player)
		}
	}
	board, err := game.NewBoardFromShape(shape)
	if err != nil {
		return nil, fmt.Errorf("cannot create board: %w", err)
	}
	if view == nil {
		view = noView{}
	}

	c := &Coordinator{
		initial:    board,
		turns:      turns,
		rules:      game.NewStandardRules(),
		strategies: make(map[string]Strategy, len(strategies)),
		view:       view,
		rng:        rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for player, strategy := range strategies {
		if strategy != nil {
			c.strategies[player] = strategy
		}
	}
	for _, option := range options {
		option(c)
	}

	c.model = game.NewGameModel(game.NewGameState(board, turns, c.rules, ""))
	c.view.ApplyChangedNodes(board.Nodes())
	return c, nil
}

// Start begins a new game with a uniformly random starting player.
func (c *Coordinator) Start() {
	players := c.turns.Players()
	player := players[c.rng.Intn(len(players))]
	if err := c.StartWith(player); err != nil {
		panic(err) // player comes from the registered list
	}
}

// StartWith begins a new game requesting player as the first to move. If
// player cannot move, the next eligible player starts.
func (c *Coordinator) StartWith(player string) error {
	if !c.turns.Contains(player) {
		return fmt.Errorf("cannot start: %w: %q", game.ErrNoSuchPlayer, player)
	}

	state := game.NewGameState(c.initial, c.turns, c.rules, player)
	c.model.Reset(state)
	c.view.ApplyChangedNodes(state.Board.Nodes())

	log.Debug().Str("requested", player).Str("player", state.PlayerInTurn).Msg("game started")
	return nil
}

// Move plays player at at. It fails with game.ErrInvalidMove, changing
// nothing, unless player is in turn and the move is valid.
func (c *Coordinator) Move(player string, at game.Coordinates) error {
	before := c.model.Current()
	if before.PlayerInTurn == "" || player != before.PlayerInTurn {
		return fmt.Errorf("%w: %q is not in turn", game.ErrInvalidMove, player)
	}
	if !c.rules.IsValidMove(before.Board, at, player) {
		return fmt.Errorf("%w: %q cannot play %v", game.ErrInvalidMove, player, at)
	}
	if err := c.model.Move(player, at); err != nil {
		return err
	}

	after := c.model.Current()
	changes := changedNodes(before.Board, after.Board, at)
	c.view.ApplyChangedNodes(changes)

	log.Debug().Str("player", player).Stringer("at", at).Int("changed", len(changes)).Str("next", after.PlayerInTurn).Msg("move accepted")

	for _, l := range c.listeners {
		l.OnMove(changes)
	}
	if after.IsOver() {
		log.Debug().Interface("scores", c.Scores()).Msg("game finished")
		for _, l := range c.listeners {
			l.OnGameFinished()
		}
	}
	return nil
}

// ComputerMove asks the strategy of the player in turn for a move and plays
// it. It fails with game.ErrNoComputerInTurn when nobody or a human is in turn.
func (c *Coordinator) ComputerMove() (game.Coordinates, error) {
	state := c.model.Current()
	player := state.PlayerInTurn
	if player == "" {
		return game.Coordinates{}, fmt.Errorf("%w: nobody is in turn", game.ErrNoComputerInTurn)
	}
	strategy, ok := c.strategies[player]
	if !ok {
		return game.Coordinates{}, fmt.Errorf("%w: %q is human", game.ErrNoComputerInTurn, player)
	}

	at, ok := strategy.SelectMove(player, c.rules, state.Board)
	if !ok {
		return game.Coordinates{}, fmt.Errorf("%w: strategy for %q returned no move", game.ErrInvalidMove, player)
	}
	if err := c.Move(player, at); err != nil {
		return game.Coordinates{}, err
	}
	return at, nil
}

// Undo restores the state before the last move and pushes the restored board
// to the view. It returns false, changing nothing, when there is no history.
func (c *Coordinator) Undo() bool {
	state, ok := c.model.Undo()
	if !ok {
		return false
	}
	c.view.ApplyChangedNodes(state.Board.Nodes())

	log.Debug().Str("player", state.PlayerInTurn).Msg("move undone")
	return true
}

func (c *Coordinator) State() game.GameState {
	return c.model.Current()
}

func (c *Coordinator) PlayerInTurn() string {
	return c.model.Current().PlayerInTurn
}

func (c *Coordinator) Players() []string {
	return c.turns.Players()
}

func (c *Coordinator) Rules() game.Rules {
	return c.rules
}

func (c *Coordinator) HistoryLen() int {
	return c.model.HistoryLen()
}

// IsComputer reports whether player is controlled by a strategy.
func (c *Coordinator) IsComputer(player string) (bool, error) {
	if !c.turns.Contains(player) {
		return false, fmt.Errorf("%w: %q", game.ErrNoSuchPlayer, player)
	}
	_, ok := c.strategies[player]
	return ok, nil
}

func (c *Coordinator) Scores() map[string]int {
	return game.Score(c.model.Current().Board, c.turns.Players())
}

// Winner returns the winner once the game is over, "" otherwise or on a tie.
func (c *Coordinator) Winner() string {
	return c.model.Current().Winner()
}

// changedNodes returns the nodes of after that differ from before, with the
// played node last.
func changedNodes(before, after game.Board, played game.Coordinates) []game.Node {
	var changes []game.Node
	for _, at := range game.Diff(before, after) {
		if at == played {
			continue
		}
		n, err := after.NodeAt(at)
		if err != nil {
			continue
		}
		changes = append(changes, n)
	}
	if n, err := after.NodeAt(played); err == nil {
		changes = append(changes, n)
	}
	return changes
}
