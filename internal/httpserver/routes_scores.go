// internal/httpserver/routes_scores.go
//
// HTTP routes for the daily leaderboard:
//   - GET  /scores   → top scores for today, highest first (max 10, ?limit=n)
//   - POST /scores   → submit {nickname, score, date}; 201 with the created entry
//   - GET  /settings → board settings ({lastReset})
//
// Errors are always {"error": "..."}: 400 carries the validation message,
// 500 a generic message (the cause is logged, never returned).

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/associa/internal/leaderboard"
)

const (
	maxBodyBytes    = 16 << 10
	internalMessage = "Internal server error"
)

type errorBody struct {
	Error string `json:"error"`
}

// mountScores registers the leaderboard routes.
func (s *Server) mountScores(r chi.Router) {
	r.Get("/scores", s.handleListScores)
	r.Post("/scores", s.handleSubmitScore)
	r.Get("/settings", s.handleSettings)
}

// handleListScores returns today's top scores.
func (s *Server) handleListScores(w http.ResponseWriter, r *http.Request) {
	limit := leaderboard.TopSize
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	top, err := s.core.ListTop(r.Context(), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, top)
}

// handleSubmitScore validates and stores one score.
func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var p leaderboard.Payload
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&p); err != nil {
		// A body that is not a JSON object is missing every field.
		p = nil
	}
	entry, err := s.core.Submit(r.Context(), p)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// handleSettings returns the board settings.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	st, err := s.core.Settings(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// fail maps Core errors to HTTP responses.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var ve *leaderboard.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: ve.Message})
		return
	}
	log.Error().Err(err).Str("requestId", chimw.GetReqID(r.Context())).Str("path", r.URL.Path).Msg("leaderboard failure")
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: internalMessage})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
