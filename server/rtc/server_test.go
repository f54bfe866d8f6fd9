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

package rtc_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-team/inkwell/api/protocol"
	"github.com/inkwell-team/inkwell/api/types"
	"github.com/inkwell-team/inkwell/pkg/delta"
	"github.com/inkwell-team/inkwell/pkg/locker"
	"github.com/inkwell-team/inkwell/server/backend"
	"github.com/inkwell-team/inkwell/server/backend/ai"
	"github.com/inkwell-team/inkwell/server/backend/database"
	"github.com/inkwell-team/inkwell/server/backend/database/memory"
	"github.com/inkwell-team/inkwell/server/backend/pubsub"
	"github.com/inkwell-team/inkwell/server/rtc"
)

const readTimeout = 2 * time.Second

type fakeGenerator struct {
	calls   int
	results []ai.Result
}

func (g *fakeGenerator) Generate(
	_ context.Context,
	_ string,
	_ types.SuggestionMode,
) ([]ai.Result, error) {
	g.calls++
	return g.results, nil
}

type fixture struct {
	backend *backend.Backend
	gen     *fakeGenerator
	wsURL   string
}

func setupTestServer(t *testing.T) *fixture {
	t.Helper()

	db, err := memory.New()
	require.NoError(t, err)

	gen := &fakeGenerator{}
	be := &backend.Backend{
		DB:      db,
		PubSub:  pubsub.New(),
		Lockers: locker.New[int64](),
		AI:      gen,
	}

	srv := httptest.NewServer(rtc.NewServer(be))
	t.Cleanup(srv.Close)

	return &fixture{
		backend: be,
		gen:     gen,
		wsURL:   "ws" + strings.TrimPrefix(srv.URL, "http"),
	}
}

func (f *fixture) createUser(t *testing.T, username string) *database.UserInfo {
	t.Helper()
	info, err := f.backend.DB.CreateUserInfo(context.Background(), database.CreateUserFields{
		Username: username,
		Password: "secret",
		Email:    username + "@example.com",
	})
	require.NoError(t, err)
	return info
}

func (f *fixture) createDocument(t *testing.T, title string, ownerID int64) *database.DocumentInfo {
	t.Helper()
	info, err := f.backend.DB.CreateDocumentInfo(context.Background(), title, ownerID, delta.New())
	require.NoError(t, err)
	return info
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		require.NoError(t, resp.Body.Close())
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func writeFrame(t *testing.T, conn *websocket.Conn, frame any) {
	t.Helper()
	data, err := json.Marshal(frame)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
}

func readFrame(t *testing.T, conn *websocket.Conn) any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(readTimeout)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	msg, err := protocol.DecodeServerMessage(data)
	require.NoError(t, err)
	return msg
}

// expectSilence asserts that no frame arrives within a short window. The
// read deadline corrupts the connection, so this must be the last use of it.
func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

// authAndJoin authenticates the connection and joins the given document,
// consuming the auth_success and document_data frames.
func authAndJoin(t *testing.T, conn *websocket.Conn, userID, documentID int64) *protocol.DocumentData {
	t.Helper()

	writeFrame(t, conn, &protocol.AuthRequest{Type: protocol.TypeAuth, UserID: userID})
	success, ok := readFrame(t, conn).(*protocol.AuthSuccess)
	require.True(t, ok)
	require.Equal(t, userID, success.UserID)

	writeFrame(t, conn, &protocol.JoinDocumentRequest{
		Type:       protocol.TypeJoinDocument,
		DocumentID: documentID,
	})
	data, ok := readFrame(t, conn).(*protocol.DocumentData)
	require.True(t, ok)
	return data
}

func TestAuth(t *testing.T) {
	t.Run("unknown user is rejected in-band test", func(t *testing.T) {
		f := setupTestServer(t)
		conn := dial(t, f.wsURL)

		writeFrame(t, conn, &protocol.AuthRequest{Type: protocol.TypeAuth, UserID: 999})
		authErr, ok := readFrame(t, conn).(*protocol.AuthError)
		require.True(t, ok)
		assert.Equal(t, "Invalid user", authErr.Message)

		// The connection survives and can authenticate with a valid user.
		writeFrame(t, conn, &protocol.AuthRequest{Type: protocol.TypeAuth, UserID: 1})
		success, ok := readFrame(t, conn).(*protocol.AuthSuccess)
		require.True(t, ok)
		assert.Equal(t, int64(1), success.UserID)
	})

	t.Run("actions before auth are rejected test", func(t *testing.T) {
		f := setupTestServer(t)
		conn := dial(t, f.wsURL)

		writeFrame(t, conn, &protocol.CursorPositionRequest{
			Type:   protocol.TypeCursorPosition,
			Cursor: &types.CursorPosition{Index: 1},
		})
		errFrame, ok := readFrame(t, conn).(*protocol.Error)
		require.True(t, ok)
		assert.Equal(t, "Not authenticated", errFrame.Message)
	})

	t.Run("unknown frame type is rejected test", func(t *testing.T) {
		f := setupTestServer(t)
		conn := dial(t, f.wsURL)

		writeFrame(t, conn, map[string]string{"type": "bogus"})
		errFrame, ok := readFrame(t, conn).(*protocol.Error)
		require.True(t, ok)
		assert.Equal(t, "Unknown message type", errFrame.Message)
	})
}

func TestJoinDocument(t *testing.T) {
	t.Run("join snapshot test", func(t *testing.T) {
		f := setupTestServer(t)
		doc := f.createDocument(t, "Notes", 1)
		conn := dial(t, f.wsURL)

		data := authAndJoin(t, conn, 1, doc.ID)
		assert.Equal(t, doc.ID, data.Document.ID)
		assert.Equal(t, "Notes", data.Document.Title)
		require.Len(t, data.ActiveUsers, 1)
		assert.Equal(t, int64(1), data.ActiveUsers[0].UserID)
		assert.Empty(t, data.Suggestions)
	})

	t.Run("join missing document test", func(t *testing.T) {
		f := setupTestServer(t)
		conn := dial(t, f.wsURL)

		writeFrame(t, conn, &protocol.AuthRequest{Type: protocol.TypeAuth, UserID: 1})
		_, ok := readFrame(t, conn).(*protocol.AuthSuccess)
		require.True(t, ok)

		writeFrame(t, conn, &protocol.JoinDocumentRequest{
			Type:       protocol.TypeJoinDocument,
			DocumentID: 999,
		})
		errFrame, ok := readFrame(t, conn).(*protocol.Error)
		require.True(t, ok)
		assert.Equal(t, "Document not found", errFrame.Message)
	})

	t.Run("failed document switch keeps the session test", func(t *testing.T) {
		f := setupTestServer(t)
		user2 := f.createUser(t, "alice")
		doc := f.createDocument(t, "Notes", 1)

		conn1 := dial(t, f.wsURL)
		authAndJoin(t, conn1, 1, doc.ID)
		conn2 := dial(t, f.wsURL)
		authAndJoin(t, conn2, user2.ID, doc.ID)
		readFrame(t, conn1) // user_joined of user2

		writeFrame(t, conn2, &protocol.JoinDocumentRequest{
			Type:       protocol.TypeJoinDocument,
			DocumentID: 999,
		})
		errFrame, ok := readFrame(t, conn2).(*protocol.Error)
		require.True(t, ok)
		assert.Equal(t, "Document not found", errFrame.Message)

		presences, err := f.backend.DB.FindPresences(context.Background(), doc.ID)
		require.NoError(t, err)
		assert.Len(t, presences, 2)

		// user2 is still joined: the next cursor update reaches the peer,
		// and no user_left precedes it.
		writeFrame(t, conn2, &protocol.CursorPositionRequest{
			Type:   protocol.TypeCursorPosition,
			Cursor: &types.CursorPosition{Index: 3},
		})
		update, ok := readFrame(t, conn1).(*protocol.CursorUpdate)
		require.True(t, ok)
		assert.Equal(t, user2.ID, update.UserID)
	})

	t.Run("join announces the user to others test", func(t *testing.T) {
		f := setupTestServer(t)
		user2 := f.createUser(t, "alice")
		doc := f.createDocument(t, "Notes", 1)

		conn1 := dial(t, f.wsURL)
		authAndJoin(t, conn1, 1, doc.ID)

		conn2 := dial(t, f.wsURL)
		data := authAndJoin(t, conn2, user2.ID, doc.ID)
		assert.Len(t, data.ActiveUsers, 2)

		joined, ok := readFrame(t, conn1).(*protocol.UserJoined)
		require.True(t, ok)
		assert.Equal(t, user2.ID, joined.Presence.UserID)

		// The joiner itself gets no user_joined echo.
		expectSilence(t, conn2)
	})
}

func TestBroadcast(t *testing.T) {
	t.Run("cursor update excludes the sender test", func(t *testing.T) {
		f := setupTestServer(t)
		user2 := f.createUser(t, "alice")
		doc := f.createDocument(t, "Notes", 1)

		conn1 := dial(t, f.wsURL)
		authAndJoin(t, conn1, 1, doc.ID)
		conn2 := dial(t, f.wsURL)
		authAndJoin(t, conn2, user2.ID, doc.ID)
		readFrame(t, conn1) // user_joined of user2

		writeFrame(t, conn1, &protocol.CursorPositionRequest{
			Type:   protocol.TypeCursorPosition,
			Cursor: &types.CursorPosition{Index: 4, Length: 2},
		})

		update, ok := readFrame(t, conn2).(*protocol.CursorUpdate)
		require.True(t, ok)
		assert.Equal(t, int64(1), update.UserID)
		assert.Equal(t, 4, update.Cursor.Index)

		expectSilence(t, conn1)
	})

	t.Run("document update is applied and broadcast test", func(t *testing.T) {
		f := setupTestServer(t)
		user2 := f.createUser(t, "alice")
		doc := f.createDocument(t, "Notes", 1)

		conn1 := dial(t, f.wsURL)
		authAndJoin(t, conn1, 1, doc.ID)
		conn2 := dial(t, f.wsURL)
		authAndJoin(t, conn2, user2.ID, doc.ID)
		readFrame(t, conn1) // user_joined of user2

		writeFrame(t, conn1, &protocol.DocumentUpdateRequest{
			Type:       protocol.TypeDocumentUpdate,
			Operations: []delta.Operation{{Insert: "Hello"}},
			Version:    7,
		})

		updated, ok := readFrame(t, conn2).(*protocol.DocumentUpdated)
		require.True(t, ok)
		assert.Equal(t, int64(1), updated.UserID)
		assert.Equal(t, int64(7), updated.Version)
		assert.Equal(t, int64(1), updated.ServerSeq)
		require.Len(t, updated.Operations, 1)
		assert.Equal(t, "Hello", updated.Operations[0].Insert)

		info, err := f.backend.DB.FindDocumentInfo(context.Background(), doc.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hello", info.Content.PlainText())

		expectSilence(t, conn1)
	})
}

func TestLeave(t *testing.T) {
	t.Run("leave removes presence and announces once test", func(t *testing.T) {
		f := setupTestServer(t)
		user2 := f.createUser(t, "alice")
		doc := f.createDocument(t, "Notes", 1)

		conn1 := dial(t, f.wsURL)
		authAndJoin(t, conn1, 1, doc.ID)
		conn2 := dial(t, f.wsURL)
		authAndJoin(t, conn2, user2.ID, doc.ID)
		readFrame(t, conn1) // user_joined of user2

		writeFrame(t, conn2, &protocol.LeaveDocumentRequest{Type: protocol.TypeLeaveDocument})

		left, ok := readFrame(t, conn1).(*protocol.UserLeft)
		require.True(t, ok)
		assert.Equal(t, user2.ID, left.UserID)

		require.Eventually(t, func() bool {
			presences, err := f.backend.DB.FindPresences(context.Background(), doc.ID)
			return err == nil && len(presences) == 1
		}, readTimeout, 10*time.Millisecond)

		expectSilence(t, conn1)
	})

	t.Run("disconnect acts as leave test", func(t *testing.T) {
		f := setupTestServer(t)
		user2 := f.createUser(t, "alice")
		doc := f.createDocument(t, "Notes", 1)

		conn1 := dial(t, f.wsURL)
		authAndJoin(t, conn1, 1, doc.ID)
		conn2 := dial(t, f.wsURL)
		authAndJoin(t, conn2, user2.ID, doc.ID)
		readFrame(t, conn1) // user_joined of user2

		require.NoError(t, conn2.Close())

		left, ok := readFrame(t, conn1).(*protocol.UserLeft)
		require.True(t, ok)
		assert.Equal(t, user2.ID, left.UserID)

		require.Eventually(t, func() bool {
			presences, err := f.backend.DB.FindPresences(context.Background(), doc.ID)
			return err == nil && len(presences) == 1
		}, readTimeout, 10*time.Millisecond)

		expectSilence(t, conn1)
	})
}

func TestSuggestionFlow(t *testing.T) {
	t.Run("requester gets suggestions and others a count test", func(t *testing.T) {
		f := setupTestServer(t)
		f.gen.results = []ai.Result{
			{Type: "grammar", OriginalText: "teh", SuggestedText: "the", Explanation: "typo"},
		}
		user2 := f.createUser(t, "alice")
		doc := f.createDocument(t, "Notes", 1)

		conn1 := dial(t, f.wsURL)
		authAndJoin(t, conn1, 1, doc.ID)
		conn2 := dial(t, f.wsURL)
		authAndJoin(t, conn2, user2.ID, doc.ID)
		readFrame(t, conn1) // user_joined of user2

		content := delta.New()
		content.Append([]delta.Operation{{Insert: "teh quick fox"}})
		writeFrame(t, conn1, &protocol.RequestAISuggestionsRequest{
			Type:    protocol.TypeRequestAISuggestions,
			Content: content,
			Mode:    types.SuggestionModeGrammar,
		})

		suggestionsFrame, ok := readFrame(t, conn1).(*protocol.AISuggestions)
		require.True(t, ok)
		require.Len(t, suggestionsFrame.Suggestions, 1)
		assert.Equal(t, types.SuggestionStatusPending, suggestionsFrame.Suggestions[0].Status)

		available, ok := readFrame(t, conn2).(*protocol.NewSuggestionsAvailable)
		require.True(t, ok)
		assert.Equal(t, 1, available.Count)
	})

	t.Run("blank content yields empty without generator call test", func(t *testing.T) {
		f := setupTestServer(t)
		f.gen.results = []ai.Result{{Type: "grammar", SuggestedText: "x"}}
		user2 := f.createUser(t, "alice")
		doc := f.createDocument(t, "Notes", 1)

		conn1 := dial(t, f.wsURL)
		authAndJoin(t, conn1, 1, doc.ID)
		conn2 := dial(t, f.wsURL)
		authAndJoin(t, conn2, user2.ID, doc.ID)
		readFrame(t, conn1) // user_joined of user2

		writeFrame(t, conn1, &protocol.RequestAISuggestionsRequest{
			Type:    protocol.TypeRequestAISuggestions,
			Content: delta.New(),
		})

		suggestionsFrame, ok := readFrame(t, conn1).(*protocol.AISuggestions)
		require.True(t, ok)
		assert.Empty(t, suggestionsFrame.Suggestions)
		assert.Equal(t, 0, f.gen.calls)

		// Others are still told, with a zero count.
		available, ok := readFrame(t, conn2).(*protocol.NewSuggestionsAvailable)
		require.True(t, ok)
		assert.Equal(t, 0, available.Count)
	})

	t.Run("review is broadcast to everyone test", func(t *testing.T) {
		f := setupTestServer(t)
		f.gen.results = []ai.Result{{Type: "grammar", SuggestedText: "x"}}
		user2 := f.createUser(t, "alice")
		doc := f.createDocument(t, "Notes", 1)

		conn1 := dial(t, f.wsURL)
		authAndJoin(t, conn1, 1, doc.ID)
		conn2 := dial(t, f.wsURL)
		authAndJoin(t, conn2, user2.ID, doc.ID)
		readFrame(t, conn1) // user_joined of user2

		content := delta.New()
		content.Append([]delta.Operation{{Insert: "hello"}})
		writeFrame(t, conn1, &protocol.RequestAISuggestionsRequest{
			Type:    protocol.TypeRequestAISuggestions,
			Content: content,
		})
		suggestionsFrame, ok := readFrame(t, conn1).(*protocol.AISuggestions)
		require.True(t, ok)
		require.Len(t, suggestionsFrame.Suggestions, 1)
		suggestionID := suggestionsFrame.Suggestions[0].ID
		readFrame(t, conn2) // new_suggestions_available

		writeFrame(t, conn2, &protocol.UpdateSuggestionStatusRequest{
			Type:         protocol.TypeUpdateSuggestionStatus,
			SuggestionID: suggestionID,
			Status:       types.SuggestionStatusAccepted,
		})

		for _, conn := range []*websocket.Conn{conn1, conn2} {
			reviewed, ok := readFrame(t, conn).(*protocol.SuggestionStatusUpdated)
			require.True(t, ok)
			assert.Equal(t, types.SuggestionStatusAccepted, reviewed.Suggestion.Status)
		}

		// Repeating the same review is a no-op broadcast, not an error.
		writeFrame(t, conn2, &protocol.UpdateSuggestionStatusRequest{
			Type:         protocol.TypeUpdateSuggestionStatus,
			SuggestionID: suggestionID,
			Status:       types.SuggestionStatusAccepted,
		})
		reviewed, ok := readFrame(t, conn2).(*protocol.SuggestionStatusUpdated)
		require.True(t, ok)
		assert.Equal(t, types.SuggestionStatusAccepted, reviewed.Suggestion.Status)

		// Flipping a reviewed suggestion fails in-band for the sender only.
		writeFrame(t, conn2, &protocol.UpdateSuggestionStatusRequest{
			Type:         protocol.TypeUpdateSuggestionStatus,
			SuggestionID: suggestionID,
			Status:       types.SuggestionStatusRejected,
		})
		errFrame, ok := readFrame(t, conn2).(*protocol.Error)
		require.True(t, ok)
		assert.Equal(t, "Suggestion already reviewed", errFrame.Message)
	})

	t.Run("review reaches the suggestion's document test", func(t *testing.T) {
		f := setupTestServer(t)
		f.gen.results = []ai.Result{{Type: "grammar", SuggestedText: "x"}}
		user2 := f.createUser(t, "alice")
		doc1 := f.createDocument(t, "Notes", 1)
		doc2 := f.createDocument(t, "Drafts", user2.ID)

		conn1 := dial(t, f.wsURL)
		authAndJoin(t, conn1, 1, doc1.ID)
		conn2 := dial(t, f.wsURL)
		authAndJoin(t, conn2, user2.ID, doc2.ID)

		content := delta.New()
		content.Append([]delta.Operation{{Insert: "hello"}})
		writeFrame(t, conn1, &protocol.RequestAISuggestionsRequest{
			Type:    protocol.TypeRequestAISuggestions,
			Content: content,
		})
		suggestionsFrame, ok := readFrame(t, conn1).(*protocol.AISuggestions)
		require.True(t, ok)
		require.Len(t, suggestionsFrame.Suggestions, 1)
		suggestionID := suggestionsFrame.Suggestions[0].ID

		// Reviewed from another document, the update lands where the
		// suggestion lives, not where the reviewer sits.
		writeFrame(t, conn2, &protocol.UpdateSuggestionStatusRequest{
			Type:         protocol.TypeUpdateSuggestionStatus,
			SuggestionID: suggestionID,
			Status:       types.SuggestionStatusAccepted,
		})
		reviewed, ok := readFrame(t, conn1).(*protocol.SuggestionStatusUpdated)
		require.True(t, ok)
		assert.Equal(t, doc1.ID, reviewed.Suggestion.DocumentID)
		assert.Equal(t, types.SuggestionStatusAccepted, reviewed.Suggestion.Status)

		expectSilence(t, conn2)
	})
}
