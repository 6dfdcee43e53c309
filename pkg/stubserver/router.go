/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package stubserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	srHttp "github.com/carverauto/topic-console/pkg/http"
	"github.com/carverauto/topic-console/pkg/logger"
	"github.com/carverauto/topic-console/pkg/models"
)

var errEmptyRequest = errors.New("request names no topics")

// ErrorResponse is the body of every non-200 answer.
type ErrorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type handlers struct {
	store  *Store
	logger logger.Logger
}

// NewRouter serves the configuration server protocol from store.
func NewRouter(store *Store, log logger.Logger) *mux.Router {
	h := &handlers{store: store, logger: log}

	router := mux.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return srHttp.CommonMiddleware(next, log)
	})

	router.HandleFunc(models.PathDevices, h.getDevices).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc(models.PathTopics, h.getTopics).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc(models.PathAddProxy, h.proxy(true)).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc(models.PathDeleteProxy, h.proxy(false)).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc(models.PathAddInterest, h.interest(true)).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc(models.PathCancelInterest, h.interest(false)).Methods(http.MethodPost, http.MethodOptions)

	return router
}

func (h *handlers) getDevices(w http.ResponseWriter, _ *http.Request) {
	names := h.store.Devices()

	writeJSON(w, models.DevicesResponse{Host: &names})
}

func (h *handlers) getTopics(w http.ResponseWriter, r *http.Request) {
	var req models.TopicsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, h.store.Topics(req.Hosts))
}

func (h *handlers) proxy(enable bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var entries []models.ProxyEntry
		if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
			writeError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}

		if len(entries) == 0 {
			writeError(w, errEmptyRequest.Error(), http.StatusBadRequest)
			return
		}

		changes := make([]Change, 0, len(entries))
		for _, e := range entries {
			changes = append(changes, Change{
				Device:  e.HostName,
				Address: e.API.Address,
				Apply:   func(rec *models.TopicRecord) { rec.Proxy = enable },
			})
		}

		h.apply(w, r, changes)
	}
}

func (h *handlers) interest(enable bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.InterestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}

		changes, err := interestChanges(&req, enable)
		if err != nil {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}

		h.apply(w, r, changes)
	}
}

func interestChanges(req *models.InterestRequest, enable bool) ([]Change, error) {
	var changes []Change

	for _, entry := range req.Interest {
		for _, topic := range entry.InterestTopic {
			change := Change{Device: entry.HostName, Address: topic.API.Address}

			switch {
			case !enable:
				change.Apply = func(rec *models.TopicRecord) {
					rec.Interested = false
					rec.Cycle = models.DefaultCycle
				}
			case topic.Cycle == nil || *topic.Cycle <= 0:
				return nil, fmt.Errorf("%w: %s/%s", errBadCycle, entry.HostName, topic.API.Address)
			default:
				cycle := *topic.Cycle
				change.Apply = func(rec *models.TopicRecord) {
					rec.Interested = true
					rec.Cycle = cycle
				}
			}

			changes = append(changes, change)
		}
	}

	if len(changes) == 0 {
		return nil, errEmptyRequest
	}

	return changes, nil
}

func (h *handlers) apply(w http.ResponseWriter, r *http.Request, changes []Change) {
	if err := h.store.Update(changes); err != nil {
		h.logger.Warn().Err(err).Str("path", r.URL.Path).Msg("Rejected update")
		writeError(w, err.Error(), http.StatusNotFound)

		return
	}

	h.logger.Info().Str("path", r.URL.Path).Int("topics", len(changes)).Msg("Applied update")

	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(statusCode)

	errResponse := ErrorResponse{
		Message: message,
		Status:  statusCode,
	}

	if err := json.NewEncoder(w).Encode(errResponse); err != nil {
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
