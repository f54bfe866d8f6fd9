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

package documents_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-team/inkwell/api/types"
	"github.com/inkwell-team/inkwell/pkg/delta"
	"github.com/inkwell-team/inkwell/pkg/locker"
	"github.com/inkwell-team/inkwell/server/backend"
	"github.com/inkwell-team/inkwell/server/backend/database"
	"github.com/inkwell-team/inkwell/server/backend/database/memory"
	"github.com/inkwell-team/inkwell/server/backend/pubsub"
	"github.com/inkwell-team/inkwell/server/documents"
)

func setupTestBackend(t *testing.T) *backend.Backend {
	t.Helper()
	db, err := memory.New()
	require.NoError(t, err)
	return &backend.Backend{
		DB:      db,
		PubSub:  pubsub.New(),
		Lockers: locker.New[int64](),
	}
}

func TestDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("apply update appends in submitted order test", func(t *testing.T) {
		be := setupTestBackend(t)

		doc, err := documents.CreateDocument(ctx, be, "Notes", 1, delta.New())
		require.NoError(t, err)

		updated, err := documents.ApplyUpdate(ctx, be, types.DocumentUpdate{
			DocumentID: doc.ID,
			UserID:     1,
			Operations: []delta.Operation{{Insert: "Hello"}, {Insert: " world"}},
		})
		assert.NoError(t, err)
		assert.Equal(t, "Hello world", updated.Content.PlainText())
		assert.Equal(t, int64(1), updated.ServerSeq)

		updated, err = documents.ApplyUpdate(ctx, be, types.DocumentUpdate{
			DocumentID: doc.ID,
			UserID:     2,
			Operations: []delta.Operation{{Insert: "!"}},
		})
		assert.NoError(t, err)
		assert.Equal(t, "Hello world!", updated.Content.PlainText())
		assert.Equal(t, int64(2), updated.ServerSeq)
	})

	t.Run("apply update on missing document test", func(t *testing.T) {
		be := setupTestBackend(t)

		_, err := documents.ApplyUpdate(ctx, be, types.DocumentUpdate{
			DocumentID: 999,
			UserID:     1,
			Operations: []delta.Operation{{Insert: "x"}},
		})
		assert.ErrorIs(t, err, database.ErrDocumentNotFound)
	})

	t.Run("concurrent updates apply batches whole test", func(t *testing.T) {
		be := setupTestBackend(t)

		doc, err := documents.CreateDocument(ctx, be, "Notes", 1, delta.New())
		require.NoError(t, err)

		const writers = 16
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				_, err := documents.ApplyUpdate(ctx, be, types.DocumentUpdate{
					DocumentID: doc.ID,
					UserID:     int64(n),
					Operations: []delta.Operation{{Insert: fmt.Sprintf("w%d", n)}},
				})
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		final, err := documents.FindDocument(ctx, be, doc.ID)
		assert.NoError(t, err)
		assert.Len(t, final.Content.Ops, writers)
		assert.Equal(t, int64(writers), final.ServerSeq)
	})

	t.Run("list documents includes collaborations test", func(t *testing.T) {
		be := setupTestBackend(t)

		owned, err := documents.CreateDocument(ctx, be, "Owned", 1, delta.New())
		require.NoError(t, err)
		shared, err := documents.CreateDocument(ctx, be, "Shared", 2, delta.New())
		require.NoError(t, err)

		_, err = documents.AddCollaborator(ctx, be, shared.ID, 1, types.PermissionWrite)
		require.NoError(t, err)

		docs, err := documents.ListDocuments(ctx, be, 1)
		assert.NoError(t, err)
		require.Len(t, docs, 2)

		ids := []int64{docs[0].ID, docs[1].ID}
		assert.Contains(t, ids, owned.ID)
		assert.Contains(t, ids, shared.ID)
	})

	t.Run("add collaborator requires document and user test", func(t *testing.T) {
		be := setupTestBackend(t)

		doc, err := documents.CreateDocument(ctx, be, "Doc", 1, delta.New())
		require.NoError(t, err)

		_, err = documents.AddCollaborator(ctx, be, 999, 1, types.PermissionRead)
		assert.ErrorIs(t, err, database.ErrDocumentNotFound)

		_, err = documents.AddCollaborator(ctx, be, doc.ID, 999, types.PermissionRead)
		assert.ErrorIs(t, err, database.ErrUserNotFound)
	})

	t.Run("update and remove document test", func(t *testing.T) {
		be := setupTestBackend(t)

		doc, err := documents.CreateDocument(ctx, be, "Draft", 1, delta.New())
		require.NoError(t, err)

		title := "Final"
		updated, err := documents.UpdateDocument(ctx, be, doc.ID, database.UpdatableDocumentFields{
			Title: &title,
		})
		assert.NoError(t, err)
		assert.Equal(t, "Final", updated.Title)

		assert.NoError(t, documents.RemoveDocument(ctx, be, doc.ID))
		_, err = documents.FindDocument(ctx, be, doc.ID)
		assert.ErrorIs(t, err, database.ErrDocumentNotFound)
	})
}
