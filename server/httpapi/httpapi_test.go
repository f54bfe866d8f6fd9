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

package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-team/inkwell/api/types"
	"github.com/inkwell-team/inkwell/pkg/locker"
	"github.com/inkwell-team/inkwell/server/backend"
	"github.com/inkwell-team/inkwell/server/backend/ai"
	"github.com/inkwell-team/inkwell/server/backend/database/memory"
	"github.com/inkwell-team/inkwell/server/backend/pubsub"
	"github.com/inkwell-team/inkwell/server/httpapi"
)

type fakeGenerator struct {
	results []ai.Result
}

func (g *fakeGenerator) Generate(
	_ context.Context,
	_ string,
	_ types.SuggestionMode,
) ([]ai.Result, error) {
	return g.results, nil
}

func setupTestAPI(t *testing.T, gen *fakeGenerator) *httptest.Server {
	t.Helper()

	db, err := memory.New()
	require.NoError(t, err)
	be := &backend.Backend{
		DB:      db,
		PubSub:  pubsub.New(),
		Lockers: locker.New[int64](),
		AI:      gen,
	}

	router := mux.NewRouter()
	httpapi.NewServer(be).RegisterRoutes(router.PathPrefix("/api").Subrouter())

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var parsed map[string]any
	if resp.StatusCode != http.StatusNoContent {
		_ = json.NewDecoder(resp.Body).Decode(&parsed)
	}
	return resp, parsed
}

func TestUserRoutes(t *testing.T) {
	t.Run("signup and login test", func(t *testing.T) {
		srv := setupTestAPI(t, &fakeGenerator{})

		resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/users", map[string]string{
			"username": "alice",
			"password": "secret",
			"email":    "alice@example.com",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "alice", body["username"])
		assert.NotContains(t, body, "password")

		resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/login", map[string]string{
			"username": "alice",
			"password": "secret",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "alice", body["username"])

		resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/login", map[string]string{
			"username": "alice",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "invalid credentials", body["error"])
	})

	t.Run("signup validation test", func(t *testing.T) {
		srv := setupTestAPI(t, &fakeGenerator{})

		resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/users", map[string]string{
			"username": "a",
			"password": "secret",
			"email":    "not-an-email",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.NotEmpty(t, body["violations"])
	})
}

func TestDocumentRoutes(t *testing.T) {
	t.Run("document crud test", func(t *testing.T) {
		srv := setupTestAPI(t, &fakeGenerator{})

		resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/documents", map[string]any{
			"title":   "Notes",
			"ownerId": 1,
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "Notes", body["title"])
		docID := int64(body["id"].(float64))

		resp, body = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/documents/%d", srv.URL, docID), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Notes", body["title"])

		resp, body = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/api/documents/%d", srv.URL, docID), map[string]any{
			"title": "Meeting Notes",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Meeting Notes", body["title"])

		resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/documents/%d", srv.URL, docID), nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, _ = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/documents/%d", srv.URL, docID), nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("collaborator routes test", func(t *testing.T) {
		srv := setupTestAPI(t, &fakeGenerator{})

		_, user := doJSON(t, http.MethodPost, srv.URL+"/api/users", map[string]string{
			"username": "alice",
			"password": "secret",
			"email":    "alice@example.com",
		})
		userID := int64(user["id"].(float64))

		_, doc := doJSON(t, http.MethodPost, srv.URL+"/api/documents", map[string]any{
			"title":   "Shared",
			"ownerId": 1,
		})
		docID := int64(doc["id"].(float64))

		resp, body := doJSON(
			t, http.MethodPost,
			fmt.Sprintf("%s/api/documents/%d/collaborators", srv.URL, docID),
			map[string]any{"userId": userID, "permission": "write"},
		)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "write", body["permission"])

		resp, body = doJSON(
			t, http.MethodPost,
			fmt.Sprintf("%s/api/documents/%d/collaborators", srv.URL, docID),
			map[string]any{"userId": userID, "permission": "owner"},
		)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid permission", body["error"])

		resp, _ = doJSON(
			t, http.MethodDelete,
			fmt.Sprintf("%s/api/documents/%d/collaborators/%d", srv.URL, docID, userID),
			nil,
		)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}

func TestSuggestionRoutes(t *testing.T) {
	t.Run("generate and review test", func(t *testing.T) {
		gen := &fakeGenerator{results: []ai.Result{
			{Type: "grammar", OriginalText: "teh", SuggestedText: "the"},
		}}
		srv := setupTestAPI(t, gen)

		_, doc := doJSON(t, http.MethodPost, srv.URL+"/api/documents", map[string]any{
			"title":   "Notes",
			"ownerId": 1,
			"content": map[string]any{"ops": []map[string]any{{"insert": "teh quick fox"}}},
		})
		docID := int64(doc["id"].(float64))

		resp, _ := doJSON(
			t, http.MethodPost,
			fmt.Sprintf("%s/api/documents/%d/suggestions/generate", srv.URL, docID),
			map[string]string{"mode": "grammar"},
		)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		req, err := http.NewRequest(
			http.MethodGet,
			fmt.Sprintf("%s/api/documents/%d/suggestions", srv.URL, docID),
			nil,
		)
		require.NoError(t, err)
		listResp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer func() { _ = listResp.Body.Close() }()

		var listed []map[string]any
		require.NoError(t, json.NewDecoder(listResp.Body).Decode(&listed))
		require.Len(t, listed, 1)
		assert.Equal(t, "pending", listed[0]["status"])
		suggestionID := int64(listed[0]["id"].(float64))

		resp, body := doJSON(
			t, http.MethodPatch,
			fmt.Sprintf("%s/api/suggestions/%d", srv.URL, suggestionID),
			map[string]string{"status": "accepted"},
		)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "accepted", body["status"])

		resp, body = doJSON(
			t, http.MethodPatch,
			fmt.Sprintf("%s/api/suggestions/%d", srv.URL, suggestionID),
			map[string]string{"status": "rejected"},
		)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "suggestion already reviewed", body["error"])
	})
}
