package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"othello/communication"
	"othello/game"
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

type ClientCommunicator struct {
	serverURL  string
	httpClient *http.Client
}

var _ communication.Communicator = (*ClientCommunicator)(nil)

// NewClientCommunicator initializes and returns a new ClientCommunicator.
func NewClientCommunicator(serverURL string, httpClient *http.Client) *ClientCommunicator {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Minute}
	}
	return &ClientCommunicator{
		serverURL:  serverURL,
		httpClient: httpClient,
	}
}

func (cc *ClientCommunicator) CreateGame(ctx context.Context, req communication.CreateGameRequest) (communication.GameView, error) {
	var view communication.GameView
	err := cc.do(ctx, http.MethodPost, "/games", req, &view)
	return view, err
}

func (cc *ClientCommunicator) GetGame(ctx context.Context, id string) (communication.GameView, error) {
	var view communication.GameView
	err := cc.do(ctx, http.MethodGet, gamePath(id, ""), nil, &view)
	return view, err
}

func (cc *ClientCommunicator) Move(ctx context.Context, id, player string, at game.Coordinates) (communication.MoveResponse, error) {
	var resp communication.MoveResponse
	err := cc.do(ctx, http.MethodPost, gamePath(id, "/moves"), communication.MoveRequest{Player: player, At: at}, &resp)
	return resp, err
}

func (cc *ClientCommunicator) ComputerMove(ctx context.Context, id string) (communication.MoveResponse, error) {
	var resp communication.MoveResponse
	err := cc.do(ctx, http.MethodPost, gamePath(id, "/computer-move"), nil, &resp)
	return resp, err
}

func (cc *ClientCommunicator) Undo(ctx context.Context, id string) (communication.GameView, error) {
	var view communication.GameView
	err := cc.do(ctx, http.MethodPost, gamePath(id, "/undo"), nil, &view)
	return view, err
}

func gamePath(id, suffix string) string {
	return "/games/" + url.PathEscape(id) + suffix
}

func (cc *ClientCommunicator) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, cc.serverURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := cc.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp communication.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			errResp.Error = http.StatusText(resp.StatusCode)
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// IsStatus reports whether err is a StatusError with code.
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == code
}
