/*
Copyright (C) 2026 Polaris Observatory Collaboration

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package api exposes the scheduling HTTP handlers. The handlers are a thin
// boundary: parse and validate the request, run the selected policy's
// pipeline for the window, compile and render the result. All scheduling
// state lives inside the single request.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/polarisobs/meridian/internal/command"
	"github.com/polarisobs/meridian/internal/policy"
	"github.com/polarisobs/meridian/internal/rules"
	"github.com/polarisobs/meridian/internal/telemetry"
)

// timeLayout is the wire format for window bounds, e.g. "2026-03-01 21:00".
const timeLayout = "2006-01-02 15:04"

// API exposes HTTP handlers.
type API struct {
	tuning policy.Tuning
	logger zerolog.Logger
}

// New creates the API handler set.
func New(tuning policy.Tuning, logger zerolog.Logger) *API {
	return &API{
		tuning: tuning,
		logger: logger.With().Str("component", "api").Logger(),
	}
}

// Routes mounts the scheduling endpoints on r.
func (a *API) Routes(r chi.Router) {
	r.Post("/api/v1/schedule/", a.handleSchedule)
}

type scheduleRequest struct {
	T0     *string `json:"t0"`
	T1     *string `json:"t1"`
	Policy *string `json:"policy"`
}

type scheduleResponse struct {
	Status   string `json:"status"`
	Commands string `json:"commands,omitempty"`
	Message  string `json:"message"`
}

func (a *API) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	for _, field := range []struct {
		name  string
		value *string
	}{
		{"t0", req.T0},
		{"t1", req.T1},
		{"policy", req.Policy},
	} {
		if field.value == nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Missing %s field", field.name))
			return
		}
	}

	supported := policy.Supported()
	if !contains(supported, *req.Policy) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid policy. Supported policies are: %v", supported))
		return
	}

	t0, err0 := time.Parse(timeLayout, *req.T0)
	t1, err1 := time.Parse(timeLayout, *req.T1)
	if err0 != nil || err1 != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format")
		return
	}

	scheduleID := uuid.NewString()
	logger := a.logger.With().
		Str("schedule_id", scheduleID).
		Str("policy", *req.Policy).
		Time("t0", t0).
		Time("t1", t1).
		Logger()

	start := time.Now()
	p, err := policy.New(*req.Policy, t0, t1, a.tuning)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	blocks, err := rules.Run(p)
	if err != nil {
		logger.Error().Err(err).Msg("policy run failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	cmd, err := command.Compile(blocks)
	if err != nil {
		logger.Error().Err(err).Msg("schedule compile failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	telemetry.ScheduleBuildDuration.WithLabelValues(*req.Policy).Observe(time.Since(start).Seconds())
	telemetry.ScheduleBlocksTotal.WithLabelValues(*req.Policy).Add(float64(len(blocks)))
	logger.Info().Int("blocks", len(blocks)).Msg("schedule built")

	writeJSON(w, http.StatusOK, scheduleResponse{
		Status:   "ok",
		Commands: command.Render(cmd),
		Message:  "Success",
	})
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, scheduleResponse{Status: "error", Message: message})
}
