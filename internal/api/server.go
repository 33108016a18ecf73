// Package api exposes the turn engine over HTTP for the operator, report,
// and chart screens. GET endpoints are read-only; POST endpoints mutate
// the session and require a bearer token when one is configured.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/talgya/fishbanks/internal/engine"
	"github.com/talgya/fishbanks/internal/game"
	"github.com/talgya/fishbanks/internal/persistence"
)

// Server serves one game session over HTTP.
type Server struct {
	Session  *engine.Session
	DB       *persistence.DB
	Scenario game.Config
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	// Public endpoints (GET, read-only).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/state", s.handleState)
	mux.HandleFunc("/api/v1/teams", s.handleTeams)
	mux.HandleFunc("/api/v1/indices", s.handleIndices)
	mux.HandleFunc("/api/v1/years", s.handleYears)

	// Operator endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/game", s.adminOnly(s.handleNewGame))
	mux.HandleFunc("/api/v1/decisions", s.adminOnly(s.handleDecisions))
	mux.HandleFunc("/api/v1/resume", s.adminOnly(s.handleResume))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins. Set
// FISHBANKS_CORS_ORIGINS to a comma-separated list; localhost dev servers
// are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("FISHBANKS_CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// adminOnly wraps POST handlers with bearer-token auth.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			httpError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		if s.AdminKey == "" {
			httpError(w, http.StatusForbidden, "operator endpoints disabled")
			return
		}
		auth := r.Header.Get("Authorization")
		if auth != "Bearer "+s.AdminKey {
			httpError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status": s.Session.Status().String(),
		"teams":  s.Session.Teams(),
	}
	if st := s.Session.State; st != nil {
		resp["session_id"] = st.SessionID
		resp["year"] = st.Year
		resp["fishery_fund"] = st.FisheryFund
		resp["salvage_value"] = st.SalvageValue
		resp["weather"] = engine.WeatherShown(st.Year)
	}
	writeJSON(w, resp)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st := s.Session.State
	if st == nil {
		httpError(w, http.StatusNotFound, "no game configured")
		return
	}
	writeJSON(w, st)
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]int{"teams": s.Session.Teams()})
}

func (s *Server) handleIndices(w http.ResponseWriter, r *http.Request) {
	st := s.Session.State
	if st == nil {
		httpError(w, http.StatusNotFound, "no game configured")
		return
	}
	assets := make(map[int]int, st.Teams)
	for t := 1; t <= st.Teams; t++ {
		assets[t] = st.TeamAssets(t)
	}
	writeJSON(w, map[string]any{
		"ship_index":  st.ShipIndex(),
		"catch_index": st.CatchIndex(),
		"fish_index":  st.FishIndex(),
		"team_assets": assets,
	})
}

func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	years, err := s.DB.Years()
	if err != nil {
		httpError(w, http.StatusInternalServerError, "list years: "+err.Error())
		return
	}
	writeJSON(w, map[string]any{"years": years})
}

type newGameRequest struct {
	Teams int `json:"teams"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}
	if err := s.Session.SetTeams(req.Teams, s.Scenario); err != nil {
		if errors.Is(err, game.ErrTeamCount) {
			httpError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.Session.InitializeGame(); err != nil {
		httpError(w, http.StatusInternalServerError, "initialize: "+err.Error())
		return
	}
	writeJSON(w, s.Session.State)
}

func (s *Server) handleDecisions(w http.ResponseWriter, r *http.Request) {
	var sheet game.DecisionSheet
	if err := json.NewDecoder(r.Body).Decode(&sheet); err != nil {
		httpError(w, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}
	result, err := s.Session.ValidateDecisions(&sheet)
	if err != nil {
		httpError(w, http.StatusConflict, err.Error())
		return
	}
	if !result.OK {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"ok":      false,
			"check":   result.Check.String(),
			"team":    result.Team,
			"message": result.String(),
		})
		return
	}
	if err := s.Session.CommitDecisions(&sheet); err != nil {
		httpError(w, http.StatusConflict, err.Error())
		return
	}
	if err := s.Session.RunYears(sheet.ContinuousYears); err != nil {
		httpError(w, http.StatusInternalServerError, "run years: "+err.Error())
		return
	}
	writeJSON(w, s.Session.State)
}

type resumeRequest struct {
	// Year to resume to; -1 (or any negative value) means the most
	// recent archived year.
	Year int `json:"year"`
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	var req resumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}
	st, err := s.Session.ResumeGameToYear(req.Year)
	if err != nil {
		if errors.Is(err, persistence.ErrNoArchive) {
			httpError(w, http.StatusNotFound, err.Error())
			return
		}
		httpError(w, http.StatusInternalServerError, "resume: "+err.Error())
		return
	}
	writeJSON(w, st)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "error", err)
	}
}

func httpError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
