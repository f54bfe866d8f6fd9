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

package httpapi

import (
	"net/http"
	"strconv"

	"github.com/inkwell-team/inkwell/api/types"
	"github.com/inkwell-team/inkwell/pkg/delta"
	"github.com/inkwell-team/inkwell/pkg/errors"
	"github.com/inkwell-team/inkwell/server/backend/database"
	"github.com/inkwell-team/inkwell/server/documents"
	"github.com/inkwell-team/inkwell/server/suggestions"
	"github.com/inkwell-team/inkwell/server/users"
)

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
		Avatar   string `json:"avatar"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	user, err := users.SignUp(r.Context(), s.backend, database.CreateUserFields{
		Username: body.Username,
		Password: body.Password,
		Email:    body.Email,
		Avatar:   body.Avatar,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := users.GetUser(r.Context(), s.backend, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleLogIn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	user, err := users.LogIn(r.Context(), s.backend, body.Username, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title   string       `json:"title"`
		OwnerID int64        `json:"ownerId"`
		Content *delta.Delta `json:"content"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.Title == "" {
		writeError(w, errors.InvalidArgument("title is required"))
		return
	}
	if _, err := users.GetUser(r.Context(), s.backend, body.OwnerID); err != nil {
		writeError(w, err)
		return
	}

	content := delta.New()
	if body.Content != nil {
		content = body.Content.DeepCopy()
	}

	doc, err := documents.CreateDocument(r.Context(), s.backend, body.Title, body.OwnerID, content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil {
		writeError(w, errors.InvalidArgument("userId query parameter is required"))
		return
	}

	docs, err := documents.ListDocuments(r.Context(), s.backend, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	doc, err := documents.FindDocument(r.Context(), s.backend, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var body struct {
		Title   *string      `json:"title"`
		Content *delta.Delta `json:"content"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	doc, err := documents.UpdateDocument(r.Context(), s.backend, id, database.UpdatableDocumentFields{
		Title:   body.Title,
		Content: body.Content,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := documents.RemoveDocument(r.Context(), s.backend, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListCollaborators(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	collaborators, err := documents.ListCollaborators(r.Context(), s.backend, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, collaborators)
}

func (s *Server) handleAddCollaborator(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var body struct {
		UserID     int64            `json:"userId"`
		Permission types.Permission `json:"permission"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if !body.Permission.Valid() {
		writeError(w, errors.InvalidArgument("invalid permission"))
		return
	}

	collaborator, err := documents.AddCollaborator(
		r.Context(), s.backend, id, body.UserID, body.Permission,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, collaborator)
}

func (s *Server) handleRemoveCollaborator(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := documents.RemoveCollaborator(r.Context(), s.backend, id, userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListSuggestions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := documents.FindDocument(r.Context(), s.backend, id); err != nil {
		writeError(w, err)
		return
	}

	list, err := suggestions.ListSuggestions(r.Context(), s.backend, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleGenerateSuggestions generates suggestions from the stored document
// content, unlike the realtime path which receives the content in the frame.
func (s *Server) handleGenerateSuggestions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var body struct {
		Mode types.SuggestionMode `json:"mode"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	doc, err := documents.FindDocument(r.Context(), s.backend, id)
	if err != nil {
		writeError(w, err)
		return
	}

	created, err := suggestions.Generate(r.Context(), s.backend, id, doc.Content, body.Mode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleUpdateSuggestionStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var body struct {
		Status types.SuggestionStatus `json:"status"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	suggestion, err := suggestions.UpdateStatus(r.Context(), s.backend, id, body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestion)
}
