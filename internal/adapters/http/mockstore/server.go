package mockstore

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/timmybird/fogis-reporter/internal/adapters/http/swagger"
	"github.com/timmybird/fogis-reporter/internal/domain/model"
	"github.com/timmybird/fogis-reporter/pkg/logger"
	"github.com/timmybird/fogis-reporter/pkg/metrics"
)

// SessionCookie is the name of the cookie set by /login.
const SessionCookie = "FogisSession"

const (
	defaultUsername = "referee"
	defaultPassword = "secret"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Server exposes a Memory store over HTTP.
type Server struct {
	store    *Memory
	username string
	password string
	logger   logger.Logger

	mu       sync.RWMutex
	sessions map[string]struct{}
}

// NewServer creates a server over store.
func NewServer(store *Memory, opts ...Option) *Server {
	s := &Server{
		store:    store,
		username: defaultUsername,
		password: defaultPassword,
		logger:   logger.Nop(),
		sessions: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(metricsMiddleware)

	r.Get("/healthz", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}).ServeHTTP)
	r.Post("/login", s.handleLogin)
	swagger.Register(context.Background(), r)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/matches", s.handleListMatches)
		r.Route("/matches/{matchID}", func(r chi.Router) {
			r.Get("/", s.handleGetMatch)
			r.Get("/teams/{teamID}/players", s.handleGetRoster)
			r.Get("/events", s.handleListEvents)
			r.Post("/events", s.handleUpsertEvent)
			r.Delete("/events", s.handleClearEvents)
			r.Get("/results", s.handleListResults)
			r.Get("/official-actions", s.handleListOfficialActions)
			r.Post("/official-actions", s.handleAddOfficialAction)
		})
		r.Post("/results", s.handleSetResults)
	})
	return r
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Username != s.username || req.Password != s.password {
		s.logger.Warn(r.Context(), "login rejected", logger.String("username", req.Username))
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = struct{}{}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: token, Path: "/", HttpOnly: true})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(SessionCookie)
		if err == nil {
			s.mu.RLock()
			_, ok := s.sessions[c.Value]
			s.mu.RUnlock()
			if ok {
				next.ServeHTTP(w, r)
				return
			}
		}
		writeError(w, http.StatusUnauthorized, "login required")
	})
}

func (s *Server) handleListMatches(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Matches())
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "matchID")
	if !ok {
		return
	}
	match, err := s.store.Match(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (s *Server) handleGetRoster(w http.ResponseWriter, r *http.Request) {
	matchID, ok := intParam(w, r, "matchID")
	if !ok {
		return
	}
	teamID, ok := intParam(w, r, "teamID")
	if !ok {
		return
	}
	roster, err := s.store.Roster(matchID, teamID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roster)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "matchID")
	if !ok {
		return
	}
	events, err := s.store.Events(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleUpsertEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "matchID")
	if !ok {
		return
	}
	var e model.MatchEvent
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if e.MatchID != id {
		writeError(w, http.StatusBadRequest, "matchid does not match path")
		return
	}

	events, err := s.store.Upsert(e)
	if err != nil {
		s.logger.Warn(r.Context(), "event write failed",
			logger.Int("match_id", id),
			logger.Int("event_id", e.ID),
			logger.Error(err))
		writeStoreError(w, err)
		return
	}
	s.logger.Debug(r.Context(), "event written",
		logger.Int("match_id", id),
		logger.String("event_type", e.TypeID.String()),
		logger.Int("events", len(events)))
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleClearEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "matchID")
	if !ok {
		return
	}
	if err := s.store.Clear(id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "matchID")
	if !ok {
		return
	}
	records, err := s.store.Results(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleSetResults(w http.ResponseWriter, r *http.Request) {
	var p model.ResultPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := s.store.SetResults(p); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListOfficialActions(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "matchID")
	if !ok {
		return
	}
	actions, err := s.store.OfficialActions(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, actions)
}

func (s *Server) handleAddOfficialAction(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "matchID")
	if !ok {
		return
	}
	var a model.OfficialAction
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if a.MatchID != id {
		writeError(w, http.StatusBadRequest, "matchid does not match path")
		return
	}
	if err := s.store.AddOfficialAction(a); err != nil {
		s.logger.Warn(r.Context(), "official action rejected",
			logger.Int("match_id", id),
			logger.Int("official_id", a.OfficialID),
			logger.Error(err))
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return v, true
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMatchNotFound), errors.Is(err, ErrEventNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidAction):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
