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

// Package documents provides the document-facing services, including the
// reconciler that folds incoming operation batches into canonical content.
package documents

import (
	"context"

	"github.com/inkwell-team/inkwell/api/types"
	"github.com/inkwell-team/inkwell/pkg/delta"
	"github.com/inkwell-team/inkwell/server/backend"
	"github.com/inkwell-team/inkwell/server/backend/database"
)

// CreateDocument creates a new document owned by the given user.
func CreateDocument(
	ctx context.Context,
	be *backend.Backend,
	title string,
	ownerID int64,
	content delta.Delta,
) (*types.Document, error) {
	info, err := be.DB.CreateDocumentInfo(ctx, title, ownerID, content)
	if err != nil {
		return nil, err
	}
	return info.ToDocument(), nil
}

// FindDocument returns the document of the given ID.
func FindDocument(
	ctx context.Context,
	be *backend.Backend,
	documentID int64,
) (*types.Document, error) {
	info, err := be.DB.FindDocumentInfo(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return info.ToDocument(), nil
}

// ListDocuments returns the documents the given user owns or collaborates on.
func ListDocuments(
	ctx context.Context,
	be *backend.Backend,
	userID int64,
) ([]*types.Document, error) {
	infos, err := be.DB.FindDocumentInfosByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	docs := make([]*types.Document, 0, len(infos))
	for _, info := range infos {
		docs = append(docs, info.ToDocument())
	}
	return docs, nil
}

// UpdateDocument updates the metadata or content of the given document.
func UpdateDocument(
	ctx context.Context,
	be *backend.Backend,
	documentID int64,
	fields database.UpdatableDocumentFields,
) (*types.Document, error) {
	be.Lockers.Lock(documentID)
	defer func() { _ = be.Lockers.Unlock(documentID) }()

	info, err := be.DB.UpdateDocumentInfo(ctx, documentID, fields)
	if err != nil {
		return nil, err
	}
	return info.ToDocument(), nil
}

// RemoveDocument removes the given document.
func RemoveDocument(
	ctx context.Context,
	be *backend.Backend,
	documentID int64,
) error {
	return be.DB.DeleteDocumentInfo(ctx, documentID)
}

// ApplyUpdate folds the given batch of operations into the document content.
// Batches are applied whole, in server-arrival order; operations inside a
// batch keep their submitted order and are never transformed against
// concurrent edits. The lock ensures two batches never interleave.
func ApplyUpdate(
	ctx context.Context,
	be *backend.Backend,
	update types.DocumentUpdate,
) (*types.Document, error) {
	be.Lockers.Lock(update.DocumentID)
	defer func() { _ = be.Lockers.Unlock(update.DocumentID) }()

	info, err := be.DB.FindDocumentInfo(ctx, update.DocumentID)
	if err != nil {
		return nil, err
	}

	content := info.Content.DeepCopy()
	content.Append(update.Operations)

	info, err = be.DB.UpdateDocumentContent(ctx, update.DocumentID, content)
	if err != nil {
		return nil, err
	}
	return info.ToDocument(), nil
}

// ListCollaborators returns the collaborators of the given document.
func ListCollaborators(
	ctx context.Context,
	be *backend.Backend,
	documentID int64,
) ([]*types.Collaborator, error) {
	infos, err := be.DB.FindCollaboratorInfos(ctx, documentID)
	if err != nil {
		return nil, err
	}

	collaborators := make([]*types.Collaborator, 0, len(infos))
	for _, info := range infos {
		collaborators = append(collaborators, info.ToCollaborator())
	}
	return collaborators, nil
}

// AddCollaborator grants the given user access to the given document.
func AddCollaborator(
	ctx context.Context,
	be *backend.Backend,
	documentID int64,
	userID int64,
	permission types.Permission,
) (*types.Collaborator, error) {
	if _, err := be.DB.FindDocumentInfo(ctx, documentID); err != nil {
		return nil, err
	}
	if _, err := be.DB.FindUserInfo(ctx, userID); err != nil {
		return nil, err
	}

	info, err := be.DB.CreateCollaboratorInfo(ctx, documentID, userID, permission)
	if err != nil {
		return nil, err
	}
	return info.ToCollaborator(), nil
}

// RemoveCollaborator revokes the given user's access to the given document.
func RemoveCollaborator(
	ctx context.Context,
	be *backend.Backend,
	documentID int64,
	userID int64,
) error {
	return be.DB.DeleteCollaboratorInfo(ctx, documentID, userID)
}
