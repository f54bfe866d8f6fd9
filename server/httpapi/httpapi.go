/*
 * Copyright 2026 The Inkwell Authors. All rights reserved.
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

// Package httpapi provides the REST surface of Inkwell. It operates on the
// same backend as the realtime endpoint; REST writes are reconciled with
// live edits through the same services.
package httpapi

import (
	"encoding/json"
	goerrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/inkwell-team/inkwell/internal/validation"
	"github.com/inkwell-team/inkwell/pkg/errors"
	"github.com/inkwell-team/inkwell/server/backend"
	"github.com/inkwell-team/inkwell/server/logging"
)

// Server handles the REST API requests.
type Server struct {
	backend *backend.Backend
}

// NewServer creates a new instance of Server.
func NewServer(be *backend.Backend) *Server {
	return &Server{backend: be}
}

// RegisterRoutes mounts the REST routes on the given router.
func (s *Server) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/users", s.handleCreateUser).Methods(http.MethodPost)
	router.HandleFunc("/users/{id:[0-9]+}", s.handleGetUser).Methods(http.MethodGet)
	router.HandleFunc("/login", s.handleLogIn).Methods(http.MethodPost)

	router.HandleFunc("/documents", s.handleCreateDocument).Methods(http.MethodPost)
	router.HandleFunc("/documents", s.handleListDocuments).Methods(http.MethodGet)
	router.HandleFunc("/documents/{id:[0-9]+}", s.handleGetDocument).Methods(http.MethodGet)
	router.HandleFunc("/documents/{id:[0-9]+}", s.handleUpdateDocument).Methods(http.MethodPatch)
	router.HandleFunc("/documents/{id:[0-9]+}", s.handleDeleteDocument).Methods(http.MethodDelete)

	router.HandleFunc(
		"/documents/{id:[0-9]+}/collaborators",
		s.handleListCollaborators,
	).Methods(http.MethodGet)
	router.HandleFunc(
		"/documents/{id:[0-9]+}/collaborators",
		s.handleAddCollaborator,
	).Methods(http.MethodPost)
	router.HandleFunc(
		"/documents/{id:[0-9]+}/collaborators/{userId:[0-9]+}",
		s.handleRemoveCollaborator,
	).Methods(http.MethodDelete)

	router.HandleFunc(
		"/documents/{id:[0-9]+}/suggestions",
		s.handleListSuggestions,
	).Methods(http.MethodGet)
	router.HandleFunc(
		"/documents/{id:[0-9]+}/suggestions/generate",
		s.handleGenerateSuggestions,
	).Methods(http.MethodPost)
	router.HandleFunc(
		"/suggestions/{id:[0-9]+}",
		s.handleUpdateSuggestionStatus,
	).Methods(http.MethodPatch)
}

// pathID parses the named int64 path variable of the request.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, errors.InvalidArgument("invalid " + name)
	}
	return id, nil
}

// decodeBody decodes the JSON request body. An empty body decodes to the
// zero value; field-level validation is left to the services.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && err != io.EOF {
		return errors.InvalidArgument("invalid request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logging.DefaultLogger().Warnf("response encoding failed: %v", err)
		}
	}
}

// writeError maps a service error onto an HTTP status with a JSON body.
func writeError(w http.ResponseWriter, err error) {
	var formErr *validation.FormError
	if goerrors.As(err, &formErr) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":      formErr.Error(),
			"violations": formErr.Violations,
		})
		return
	}

	writeJSON(w, httpStatusOf(err), map[string]string{"error": err.Error()})
}

func httpStatusOf(err error) int {
	switch errors.StatusOf(err) {
	case errors.ErrCodeInvalidArgument:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeAlreadyExists, errors.ErrCodeFailedPrecondition:
		return http.StatusConflict
	case errors.ErrCodeUnauthenticated:
		return http.StatusUnauthorized
	case errors.ErrCodePermissionDenied:
		return http.StatusForbidden
	case errors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
