package gamemaster

import "othello/game"

type EventKind int

const (
	MoveMade EventKind = iota
	GameFinished
)

func (k EventKind) String() string {
	switch k {
	case MoveMade:
		return "move"
	case GameFinished:
		return "finished"
	}
	return "unknown"
}

// Event is a notification written by a ChannelListener. Changes is empty for
// GameFinished.
type Event struct {
	Kind    EventKind
	Changes []game.Node
}

// ChannelListener forwards notifications to a channel. Sends block when the
// buffer is full, so delivery stays in order and in line with the move.
type ChannelListener struct {
	events chan Event
}

func NewChannelListener(buffer int) *ChannelListener {
	return &ChannelListener{events: make(chan Event, buffer)}
}

func (l *ChannelListener) Events() <-chan Event {
	return l.events
}

func (l *ChannelListener) OnMove(changes []game.Node) {
	copied := make([]game.Node, len(changes))
	copy(copied, changes)
	l.events <- Event{Kind: MoveMade, Changes: copied}
}

func (l *ChannelListener) OnGameFinished() {
	l.events <- Event{Kind: GameFinished}
}

// Close closes the channel. The listener must not be notified afterwards.
func (l *ChannelListener) Close() {
	close(l.events)
}
