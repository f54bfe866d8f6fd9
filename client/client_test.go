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

package client_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-team/inkwell/api/protocol"
	"github.com/inkwell-team/inkwell/client"
	"github.com/inkwell-team/inkwell/pkg/delta"
	"github.com/inkwell-team/inkwell/pkg/locker"
	"github.com/inkwell-team/inkwell/server/backend"
	"github.com/inkwell-team/inkwell/server/backend/database/memory"
	"github.com/inkwell-team/inkwell/server/backend/pubsub"
	"github.com/inkwell-team/inkwell/server/rtc"
)

func setupTestServer(t *testing.T) (*backend.Backend, string, *httptest.Server) {
	t.Helper()

	db, err := memory.New()
	require.NoError(t, err)
	be := &backend.Backend{
		DB:      db,
		PubSub:  pubsub.New(),
		Lockers: locker.New[int64](),
	}

	srv := httptest.NewServer(rtc.NewServer(be))
	t.Cleanup(srv.Close)
	return be, "ws" + strings.TrimPrefix(srv.URL, "http"), srv
}

func waitFrame(t *testing.T, cli *client.Client) any {
	t.Helper()
	select {
	case msg, ok := <-cli.Events():
		require.True(t, ok)
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no frame received")
		return nil
	}
}

func TestClient(t *testing.T) {
	t.Run("session flow test", func(t *testing.T) {
		be, wsURL, _ := setupTestServer(t)
		doc, err := be.DB.CreateDocumentInfo(context.Background(), "Notes", 1, delta.New())
		require.NoError(t, err)

		cli, err := client.Dial(wsURL)
		require.NoError(t, err)
		defer func() { _ = cli.Close() }()

		require.NoError(t, cli.Authenticate(1))
		success, ok := waitFrame(t, cli).(*protocol.AuthSuccess)
		require.True(t, ok)
		assert.Equal(t, int64(1), success.UserID)

		require.NoError(t, cli.JoinDocument(doc.ID, nil))
		data, ok := waitFrame(t, cli).(*protocol.DocumentData)
		require.True(t, ok)
		assert.Equal(t, doc.ID, data.Document.ID)

		require.NoError(t, cli.SendUpdate([]delta.Operation{{Insert: "Hi"}}, 1))
		require.Eventually(t, func() bool {
			info, err := be.DB.FindDocumentInfo(context.Background(), doc.ID)
			return err == nil && info.Content.PlainText() == "Hi"
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("reconnection gives up and closes events test", func(t *testing.T) {
		_, wsURL, srv := setupTestServer(t)

		cli, err := client.Dial(
			wsURL,
			client.WithMaxReconnectAttempts(2),
			client.WithReconnectBaseInterval(10*time.Millisecond),
		)
		require.NoError(t, err)
		defer func() { _ = cli.Close() }()

		srv.Close()

		select {
		case _, ok := <-cli.Events():
			assert.False(t, ok)
		case <-time.After(2 * time.Second):
			t.Fatal("events channel did not close")
		}
	})
}
