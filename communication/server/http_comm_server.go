package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"othello/communication"
	"othello/config"
	"othello/game"
	"othello/repository"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type ServerCommunicator struct {
	cfg      *config.Config
	archive  repository.GameRepository
	sessions map[string]*session
	mutex    sync.RWMutex
}

// NewServerCommunicator hosts games over HTTP. Finished games are saved to
// archive unless it is nil.
func NewServerCommunicator(cfg *config.Config, archive repository.GameRepository) *ServerCommunicator {
	return &ServerCommunicator{
		cfg:      cfg,
		archive:  archive,
		sessions: make(map[string]*session),
	}
}

// Routes wires the endpoints and returns an http.Handler.
func (sc *ServerCommunicator) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Post("/games", sc.handleCreateGame)
	r.Route("/games/{id}", func(r chi.Router) {
		r.Get("/", sc.handleGetGame)
		r.Post("/moves", sc.handleMove)
		r.Post("/computer-move", sc.handleComputerMove)
		r.Post("/undo", sc.handleUndo)
	})
	r.Get("/archive", sc.handleListArchive)
	r.Get("/archive/{id}", sc.handleGetArchive)
	return r
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (sc *ServerCommunicator) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         sc.cfg.HTTP.GetAddr(),
		Handler:      sc.Routes(),
		ReadTimeout:  sc.cfg.HTTP.ReadTimeout,
		WriteTimeout: sc.cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (sc *ServerCommunicator) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req communication.CreateGameRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	s, err := newSession(req, sc.cfg)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	sc.mutex.Lock()
	sc.sessions[s.id] = s
	sc.mutex.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	log.Info().Msgf("created game %s for players %v", s.id, s.coordinator.Players())
	writeJSON(w, http.StatusCreated, s.snapshot())
}

func (sc *ServerCommunicator) handleGetGame(w http.ResponseWriter, r *http.Request) {
	s, ok := sc.session(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.snapshot())
}

func (sc *ServerCommunicator) handleMove(w http.ResponseWriter, r *http.Request) {
	s, ok := sc.session(w, r)
	if !ok {
		return
	}
	var req communication.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	resp, err := s.move(req.Player, req.At, false)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	sc.archiveIfFinished(r.Context(), s)
	writeJSON(w, http.StatusOK, resp)
}

func (sc *ServerCommunicator) handleComputerMove(w http.ResponseWriter, r *http.Request) {
	s, ok := sc.session(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	resp, err := s.move("", game.Coordinates{}, true)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	sc.archiveIfFinished(r.Context(), s)
	writeJSON(w, http.StatusOK, resp)
}

func (sc *ServerCommunicator) handleUndo(w http.ResponseWriter, r *http.Request) {
	s, ok := sc.session(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	view, err := s.undo()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (sc *ServerCommunicator) handleListArchive(w http.ResponseWriter, r *http.Request) {
	if sc.archive == nil {
		writeError(w, http.StatusNotFound, errors.New("archive disabled"))
		return
	}
	ids, err := sc.archive.ListIDs(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

func (sc *ServerCommunicator) handleGetArchive(w http.ResponseWriter, r *http.Request) {
	if sc.archive == nil {
		writeError(w, http.StatusNotFound, errors.New("archive disabled"))
		return
	}
	record, err := sc.archive.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (sc *ServerCommunicator) session(w http.ResponseWriter, r *http.Request) (*session, bool) {
	id := chi.URLParam(r, "id")
	sc.mutex.RLock()
	s, ok := sc.sessions[id]
	sc.mutex.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, ErrGameNotFound)
	}
	return s, ok
}

// archiveIfFinished saves a game the last move finished. s.mu must be held.
func (sc *ServerCommunicator) archiveIfFinished(ctx context.Context, s *session) {
	if sc.archive == nil || !s.finished {
		return
	}
	if err := sc.archive.Save(ctx, s.record()); err != nil {
		log.Warn().Err(err).Msgf("failed to archive game %s", s.id)
		return
	}
	log.Info().Msgf("archived game %s", s.id)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrGameNotFound), errors.Is(err, repository.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest), errors.Is(err, game.ErrInvalidPlayerList),
		errors.Is(err, game.ErrNoSuchPlayer), errors.Is(err, game.ErrDuplicateNode):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrNoComputerInTurn), errors.Is(err, ErrNoHistory):
		return http.StatusConflict
	case errors.Is(err, game.ErrInvalidMove), errors.Is(err, game.ErrOutOfBounds):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, communication.ErrorResponse{Error: err.Error()})
}
