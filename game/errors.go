package game

import "errors"

var (
	ErrOutOfBounds       = errors.New("coordinates out of bounds")
	ErrInvalidMove       = errors.New("invalid move")
	ErrNoComputerInTurn  = errors.New("no computer player in turn")
	ErrNoSuchPlayer      = errors.New("no such player")
	ErrDuplicateNode     = errors.New("duplicate coordinates")
	ErrInvalidPlayerList = errors.New("invalid player list")
)
