package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"othello/experiments/metrics"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrGameNotFound = errors.New("game not found")

const gamesKey = "games"

// GameRecord is a finished game kept in the archive.
type GameRecord struct {
	ID        string               `json:"id"`
	Source    string               `json:"source"`           // Tournament name or "http"
	Agents    map[string]string    `json:"agents,omitempty"` // Player to agent name, humans absent
	Game      metrics.GameMetric   `json:"game"`
	Moves     []metrics.MoveMetric `json:"moves"`
	CreatedAt time.Time            `json:"created_at"`
}

type GameRepository interface {
	Save(ctx context.Context, record *GameRecord) error
	GetByID(ctx context.Context, id string) (*GameRecord, error)
	ListIDs(ctx context.Context) ([]string, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func gameKey(id string) string {
	return "game:" + id
}

// Save stores record, assigning an id and creation time when missing.
func (that *dbGame) Save(ctx context.Context, record *GameRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	gameJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, gameKey(record.ID), gameJSON, 0)
		pipe.SAdd(ctx, gamesKey, record.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*GameRecord, error) {
	response, err := that.client.Get(ctx, gameKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return &GameRecord{}, ErrGameNotFound
	}

	if err != nil {
		return &GameRecord{}, fmt.Errorf("%w by id", err)
	}

	var record GameRecord
	if err = json.Unmarshal([]byte(response), &record); err != nil {
		return &GameRecord{}, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &record, nil
}

func (that *dbGame) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := that.client.SMembers(ctx, gamesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	return ids, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	var deleted *redis.IntCmd
	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, gameKey(id))
		pipe.SRem(ctx, gamesKey, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete game by ID: %w", err)
	}

	if deleted.Val() == 0 {
		return ErrGameNotFound
	}

	return nil
}
