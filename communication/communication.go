package communication

import (
	"context"

	"othello/config"
	"othello/game"
)

// CreateGameRequest starts a game. Players default to the configured ones.
// Rows, when given, describe the starting board with Marks mapping single
// runes to players; otherwise a square board of BoardSize is used. Players
// listed in Computers are played by the server.
type CreateGameRequest struct {
	Players   []string                `json:"players,omitempty"`
	Shape     string                  `json:"shape,omitempty"` // "square" (default) or "diamond"
	BoardSize int                     `json:"board_size,omitempty"`
	Rows      []string                `json:"rows,omitempty"`
	Marks     map[string]string       `json:"marks,omitempty"`
	Computers map[string]config.Agent `json:"computers,omitempty"`
	Starter   string                  `json:"starter,omitempty"`
}

type MoveRequest struct {
	Player string           `json:"player"`
	At     game.Coordinates `json:"at"`
}

// GameView is the public state of a game.
type GameView struct {
	ID           string             `json:"id"`
	Players      []string           `json:"players"`
	Computers    []string           `json:"computers,omitempty"`
	PlayerInTurn string             `json:"player_in_turn"`
	Board        []string           `json:"board"`
	Symbols      map[string]string  `json:"symbols"`
	ValidMoves   []game.Coordinates `json:"valid_moves"`
	Scores       map[string]int     `json:"scores"`
	Winner       string             `json:"winner,omitempty"`
	Over         bool               `json:"over"`
	History      int                `json:"history"`
}

type MoveResponse struct {
	At      game.Coordinates `json:"at"`
	Changes []game.Node      `json:"changes"`
	Game    GameView         `json:"game"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Communicator abstracts how a front end talks to the game server.
type Communicator interface {
	CreateGame(ctx context.Context, req CreateGameRequest) (GameView, error)
	GetGame(ctx context.Context, id string) (GameView, error)
	Move(ctx context.Context, id, player string, at game.Coordinates) (MoveResponse, error)
	ComputerMove(ctx context.Context, id string) (MoveResponse, error)
	Undo(ctx context.Context, id string) (GameView, error)
}
