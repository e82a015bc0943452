// ringside
// (C) 2024, Deutsche Telekom IT GmbH
//
// Deutsche Telekom IT GmbH and all other contributors /
// copyright owners license this file to you under the Apache
// License, Version 2.0 (the "License"); you may not use this
// file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package apimock provides an in-memory imitation of the gym API.
// It exists so smoke plans can be developed and the runner can be
// tested end to end without a live gym service; the production
// service stays external.
package apimock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/caas-team/ringside/internal/logger"
	"github.com/caas-team/ringside/pkg/gym"
)

const (
	readHeaderTimeout = time.Second * 5
	shutdownTimeout   = time.Second * 10
	ringCapacity      = 2
)

// boxersResponse is the wire shape of the collection endpoints. The
// original service serializes an empty collection as [], which the
// envelope's omitempty would swallow, so the mock writes these shapes
// instead of a plain envelope.
type boxersResponse struct {
	Status gym.Status  `json:"status"`
	Boxers []gym.Boxer `json:"boxers"`
}

// leaderboardResponse is the wire shape of the leaderboard endpoint
type leaderboardResponse struct {
	Status      gym.Status             `json:"status"`
	Leaderboard []gym.LeaderboardEntry `json:"leaderboard"`
}

// record is a boxer together with their fight history
type record struct {
	gym.Boxer
	Fights int
	Wins   int
}

// Server is the in-memory gym service. All state lives behind a single
// mutex; the service is small enough that finer locking buys nothing.
type Server struct {
	mu     sync.Mutex
	nextID int
	boxers []*record
	ring   []*record
	// randFn decides fights; tests replace it for deterministic outcomes
	randFn func() float64
}

// New creates a new mock gym service with an empty roster
func New() *Server {
	return &Server{
		nextID: 1,
		randFn: rand.Float64,
	}
}

// Router builds the http handler serving the gym API under /api
func (s *Server) Router(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(logger.Middleware(ctx))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/db-check", s.handleHealth)
		r.Post("/add-boxer", s.handleAddBoxer)
		r.Get("/get-boxer-by-name/{name}", s.handleGetBoxerByName)
		r.Get("/get-boxer-by-id/{id}", s.handleGetBoxerByID)
		r.Delete("/delete-boxer/{id}", s.handleDeleteBoxer)
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Post("/clear-boxers", s.handleClearBoxers)
		r.Get("/get-boxers", s.handleGetBoxers)
		r.Post("/enter-ring", s.handleEnterRing)
		r.Post("/fight", s.handleFight)
		r.Post("/clear-ring", s.handleClearRing)
		r.Get("/get-boxers-in-ring", s.handleGetRing)
	})
	return r
}

// Serve runs the mock service on the given address until the context
// is canceled, then shuts it down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	log := logger.FromContext(ctx)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(ctx),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	cErr := make(chan error, 1)
	go func(cErr chan error) {
		defer close(cErr)
		log.Info("Serving mock gym API", "addr", addr)
		if err := srv.ListenAndServe(); err != nil {
			cErr <- err
		}
	}(cErr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Failed to shutdown mock gym API", "error", err)
			return fmt.Errorf("failed shutting down mock gym API: %w", err)
		}
		return nil
	case err := <-cErr:
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		log.Error("Failed to serve mock gym API", "error", err)
		return fmt.Errorf("failed serving mock gym API: %w", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(r.Context(), w, http.StatusOK, &gym.Envelope{Status: gym.StatusSuccess})
}

func (s *Server) handleAddBoxer(w http.ResponseWriter, r *http.Request) {
	var payload gym.NewBoxer
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "invalid request payload")
		return
	}

	class, err := gym.WeightClassFor(payload.Weight)
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest,
			fmt.Sprintf("Invalid weight: %d. Must be at least 125.", payload.Weight))
		return
	}
	if payload.Height <= 0 {
		writeError(r.Context(), w, http.StatusBadRequest,
			fmt.Sprintf("Invalid height: %d. Must be greater than 0.", payload.Height))
		return
	}
	if payload.Reach <= 0 {
		writeError(r.Context(), w, http.StatusBadRequest,
			fmt.Sprintf("Invalid reach: %v. Must be greater than 0.", payload.Reach))
		return
	}
	if payload.Age < 18 || payload.Age > 40 {
		writeError(r.Context(), w, http.StatusBadRequest,
			fmt.Sprintf("Invalid age: %d. Must be between 18 and 40.", payload.Age))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findByName(payload.Name) != nil {
		writeError(r.Context(), w, http.StatusBadRequest,
			fmt.Sprintf("Boxer with name '%s' already exists", payload.Name))
		return
	}

	rec := &record{
		Boxer: gym.Boxer{
			ID:          s.nextID,
			Name:        payload.Name,
			Weight:      payload.Weight,
			Height:      payload.Height,
			Reach:       payload.Reach,
			Age:         payload.Age,
			WeightClass: class,
		},
	}
	s.nextID++
	s.boxers = append(s.boxers, rec)

	writeEnvelope(r.Context(), w, http.StatusCreated, &gym.Envelope{
		Status:  gym.StatusSuccess,
		Message: fmt.Sprintf("Boxer '%s' added successfully", payload.Name),
	})
}

func (s *Server) handleGetBoxerByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.findByName(name)
	if rec == nil {
		writeError(r.Context(), w, http.StatusNotFound, fmt.Sprintf("Boxer '%s' not found.", name))
		return
	}
	boxer := rec.Boxer
	writeEnvelope(r.Context(), w, http.StatusOK, &gym.Envelope{Status: gym.StatusSuccess, Boxer: &boxer})
}

func (s *Server) handleGetBoxerByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "invalid boxer id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.findByID(id)
	if rec == nil {
		writeError(r.Context(), w, http.StatusNotFound, fmt.Sprintf("Boxer with ID %d not found.", id))
		return
	}
	boxer := rec.Boxer
	writeEnvelope(r.Context(), w, http.StatusOK, &gym.Envelope{Status: gym.StatusSuccess, Boxer: &boxer})
}

func (s *Server) handleDeleteBoxer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "invalid boxer id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.boxers {
		if rec.ID == id {
			s.boxers = append(s.boxers[:i], s.boxers[i+1:]...)
			writeEnvelope(r.Context(), w, http.StatusOK, &gym.Envelope{
				Status:  gym.StatusSuccess,
				Message: fmt.Sprintf("Boxer with ID %d deleted.", id),
			})
			return
		}
	}
	writeError(r.Context(), w, http.StatusNotFound, fmt.Sprintf("Boxer with ID %d not found.", id))
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	sortBy := r.URL.Query().Get("sort")
	if sortBy == "" {
		sortBy = string(gym.SortByWins)
	}
	if sortBy != string(gym.SortByWins) && sortBy != string(gym.SortByWinPct) {
		writeError(r.Context(), w, http.StatusBadRequest, fmt.Sprintf("Invalid sort parameter: %s", sortBy))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// An empty leaderboard is a valid result.
	entries := []gym.LeaderboardEntry{}
	for _, rec := range s.boxers {
		if rec.Fights == 0 {
			continue
		}
		entries = append(entries, gym.LeaderboardEntry{
			Boxer:  rec.Boxer,
			Fights: rec.Fights,
			Wins:   rec.Wins,
			WinPct: math.Round(float64(rec.Wins)/float64(rec.Fights)*1000) / 10,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if sortBy == string(gym.SortByWinPct) {
			return entries[i].WinPct > entries[j].WinPct
		}
		return entries[i].Wins > entries[j].Wins
	})

	writeJSON(r.Context(), w, http.StatusOK, &leaderboardResponse{Status: gym.StatusSuccess, Leaderboard: entries})
}

func (s *Server) handleClearBoxers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boxers = nil
	s.ring = nil

	writeEnvelope(r.Context(), w, http.StatusOK, &gym.Envelope{
		Status:  gym.StatusSuccess,
		Message: "All boxers cleared.",
	})
}

func (s *Server) handleGetBoxers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	boxers := []gym.Boxer{}
	for _, rec := range s.boxers {
		boxers = append(boxers, rec.Boxer)
	}
	writeJSON(r.Context(), w, http.StatusOK, &boxersResponse{Status: gym.StatusSuccess, Boxers: boxers})
}

func (s *Server) handleEnterRing(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "invalid request payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.findByName(payload.Name)
	if rec == nil {
		writeError(r.Context(), w, http.StatusNotFound, fmt.Sprintf("Boxer '%s' not found.", payload.Name))
		return
	}
	if len(s.ring) >= ringCapacity {
		writeError(r.Context(), w, http.StatusBadRequest, "Ring is full, cannot add more boxers.")
		return
	}

	s.ring = append(s.ring, rec)
	writeEnvelope(r.Context(), w, http.StatusOK, &gym.Envelope{
		Status:  gym.StatusSuccess,
		Message: fmt.Sprintf("Boxer '%s' entered the ring.", payload.Name),
	})
}

func (s *Server) handleFight(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ring) < ringCapacity {
		writeError(r.Context(), w, http.StatusBadRequest, "There must be two boxers to start a fight.")
		return
	}

	one, two := s.ring[0], s.ring[1]
	delta := math.Abs(fightingSkill(&one.Boxer) - fightingSkill(&two.Boxer))
	normalizedDelta := 1 / (1 + math.Exp(-delta))

	winner, loser := two, one
	if s.randFn() < normalizedDelta {
		winner, loser = one, two
	}

	winner.Fights++
	winner.Wins++
	loser.Fights++
	s.ring = nil

	writeEnvelope(r.Context(), w, http.StatusOK, &gym.Envelope{
		Status: gym.StatusSuccess,
		Winner: winner.Name,
	})
}

func (s *Server) handleClearRing(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ring = nil
	writeEnvelope(r.Context(), w, http.StatusOK, &gym.Envelope{
		Status:  gym.StatusSuccess,
		Message: "Ring cleared.",
	})
}

func (s *Server) handleGetRing(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	boxers := []gym.Boxer{}
	for _, rec := range s.ring {
		boxers = append(boxers, rec.Boxer)
	}
	writeJSON(r.Context(), w, http.StatusOK, &boxersResponse{Status: gym.StatusSuccess, Boxers: boxers})
}

// findByName returns the boxer with the given name; callers hold the lock
func (s *Server) findByName(name string) *record {
	for _, rec := range s.boxers {
		if rec.Name == name {
			return rec
		}
	}
	return nil
}

// findByID returns the boxer with the given id; callers hold the lock
func (s *Server) findByID(id int) *record {
	for _, rec := range s.boxers {
		if rec.ID == id {
			return rec
		}
	}
	return nil
}

// fightingSkill rates a boxer. Arbitrary, but it keeps fights between
// unequal boxers from being a coin flip.
func fightingSkill(b *gym.Boxer) float64 {
	ageModifier := 0.0
	switch {
	case b.Age < 25:
		ageModifier = -1
	case b.Age > 35:
		ageModifier = -2
	}
	return float64(b.Weight*len(b.Name)) + b.Reach/10 + ageModifier
}

func writeJSON(ctx context.Context, w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(ctx).Error("Could not write response", "error", err.Error())
	}
}

func writeEnvelope(ctx context.Context, w http.ResponseWriter, code int, env *gym.Envelope) {
	writeJSON(ctx, w, code, env)
}

func writeError(ctx context.Context, w http.ResponseWriter, code int, message string) {
	writeEnvelope(ctx, w, code, &gym.Envelope{Status: gym.StatusError, Message: message})
}
