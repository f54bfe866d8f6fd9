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

// Package memory implements the database interface using an in-memory
// database.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	gotime "time"

	"github.com/hashicorp/go-memdb"

	"github.com/inkwell-team/inkwell/api/types"
	"github.com/inkwell-team/inkwell/pkg/delta"
	"github.com/inkwell-team/inkwell/server/backend/database"
)

// userRecord wraps UserInfo with a lowercased username for case-insensitive
// lookup.
type userRecord struct {
	UsernameLower string
	*database.UserInfo
}

type documentRecord struct {
	*database.DocumentInfo
}

type collaboratorRecord struct {
	*database.CollaboratorInfo
}

type suggestionRecord struct {
	*database.SuggestionInfo
}

// presenceRecord wraps Presence with its (user, document) key.
type presenceRecord struct {
	Key string
	*types.Presence
}

func presenceKey(userID, documentID int64) string {
	return fmt.Sprintf("%d:%d", userID, documentID)
}

// DB is an in-memory database for a single server process.
type DB struct {
	db *memdb.MemDB

	nextUserID         int64
	nextDocumentID     int64
	nextCollaboratorID int64
	nextSuggestionID   int64
}

// New returns a new in-memory database seeded with the demo user.
func New() (*DB, error) {
	memDB, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("new memdb: %w", err)
	}

	d := &DB{db: memDB}

	// The demo account mirrors the seed data of the original system so a
	// fresh server is immediately usable.
	if _, err := d.CreateUserInfo(context.Background(), database.CreateUserFields{
		Username: "demo",
		Password: "demo123",
		Email:    "demo@example.com",
	}); err != nil {
		return nil, err
	}

	return d, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return nil
}

// FindUserInfo returns a user by its ID.
func (d *DB) FindUserInfo(_ context.Context, id int64) (*database.UserInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tblUsers, "id", id)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	if raw == nil {
		return nil, database.ErrUserNotFound
	}
	return raw.(*userRecord).UserInfo.DeepCopy(), nil
}

// FindUserInfoByUsername returns a user by its username.
func (d *DB) FindUserInfoByUsername(_ context.Context, username string) (*database.UserInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tblUsers, "username", strings.ToLower(username))
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", username, err)
	}
	if raw == nil {
		return nil, database.ErrUserNotFound
	}
	return raw.(*userRecord).UserInfo.DeepCopy(), nil
}

// CreateUserInfo creates a new user.
func (d *DB) CreateUserInfo(_ context.Context, fields database.CreateUserFields) (*database.UserInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	existing, err := txn.First(tblUsers, "username", strings.ToLower(fields.Username))
	if err != nil {
		return nil, fmt.Errorf("create user %s: %w", fields.Username, err)
	}
	if existing != nil {
		return nil, database.ErrUserAlreadyExists
	}

	info := &database.UserInfo{
		ID:        atomic.AddInt64(&d.nextUserID, 1),
		Username:  fields.Username,
		Password:  fields.Password,
		Email:     fields.Email,
		Avatar:    fields.Avatar,
		CreatedAt: gotime.Now(),
	}
	if err := txn.Insert(tblUsers, &userRecord{
		UsernameLower: strings.ToLower(info.Username),
		UserInfo:      info,
	}); err != nil {
		return nil, fmt.Errorf("create user %s: %w", fields.Username, err)
	}

	txn.Commit()
	return info.DeepCopy(), nil
}

// FindDocumentInfo returns a document by its ID.
func (d *DB) FindDocumentInfo(_ context.Context, id int64) (*database.DocumentInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	return d.findDocumentInfo(txn, id)
}

func (d *DB) findDocumentInfo(txn *memdb.Txn, id int64) (*database.DocumentInfo, error) {
	raw, err := txn.First(tblDocuments, "id", id)
	if err != nil {
		return nil, fmt.Errorf("find document %d: %w", id, err)
	}
	if raw == nil {
		return nil, database.ErrDocumentNotFound
	}
	return raw.(*documentRecord).DocumentInfo.DeepCopy(), nil
}

// FindDocumentInfosByUserID returns the documents the user owns or
// collaborates on.
func (d *DB) FindDocumentInfosByUserID(_ context.Context, userID int64) ([]*database.DocumentInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	seen := make(map[int64]bool)
	var infos []*database.DocumentInfo

	iter, err := txn.Get(tblDocuments, "owner_id", userID)
	if err != nil {
		return nil, fmt.Errorf("find documents of user %d: %w", userID, err)
	}
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		info := raw.(*documentRecord).DocumentInfo
		seen[info.ID] = true
		infos = append(infos, info.DeepCopy())
	}

	iter, err = txn.Get(tblCollaborators, "user_id", userID)
	if err != nil {
		return nil, fmt.Errorf("find collaborations of user %d: %w", userID, err)
	}
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		grant := raw.(*collaboratorRecord).CollaboratorInfo
		if seen[grant.DocumentID] {
			continue
		}
		info, err := d.findDocumentInfo(txn, grant.DocumentID)
		if err != nil {
			continue
		}
		seen[info.ID] = true
		infos = append(infos, info)
	}

	return infos, nil
}

// CreateDocumentInfo creates a new document.
func (d *DB) CreateDocumentInfo(
	_ context.Context,
	title string,
	ownerID int64,
	content delta.Delta,
) (*database.DocumentInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	now := gotime.Now()
	info := &database.DocumentInfo{
		ID:        atomic.AddInt64(&d.nextDocumentID, 1),
		Title:     title,
		OwnerID:   ownerID,
		Content:   content.DeepCopy(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := txn.Insert(tblDocuments, &documentRecord{DocumentInfo: info}); err != nil {
		return nil, fmt.Errorf("create document %s: %w", title, err)
	}

	txn.Commit()
	return info.DeepCopy(), nil
}

// UpdateDocumentInfo patches the given fields of a document.
func (d *DB) UpdateDocumentInfo(
	_ context.Context,
	id int64,
	fields database.UpdatableDocumentFields,
) (*database.DocumentInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	info, err := d.findDocumentInfo(txn, id)
	if err != nil {
		return nil, err
	}

	if fields.Title != nil {
		info.Title = *fields.Title
	}
	if fields.Content != nil {
		info.Content = fields.Content.DeepCopy()
	}
	info.UpdatedAt = gotime.Now()

	if err := txn.Insert(tblDocuments, &documentRecord{DocumentInfo: info}); err != nil {
		return nil, fmt.Errorf("update document %d: %w", id, err)
	}

	txn.Commit()
	return info.DeepCopy(), nil
}

// UpdateDocumentContent replaces the content of a document and bumps its
// server sequence number.
func (d *DB) UpdateDocumentContent(
	_ context.Context,
	id int64,
	content delta.Delta,
) (*database.DocumentInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	info, err := d.findDocumentInfo(txn, id)
	if err != nil {
		return nil, err
	}

	info.Content = content.DeepCopy()
	info.ServerSeq++
	info.UpdatedAt = gotime.Now()

	if err := txn.Insert(tblDocuments, &documentRecord{DocumentInfo: info}); err != nil {
		return nil, fmt.Errorf("update document %d content: %w", id, err)
	}

	txn.Commit()
	return info.DeepCopy(), nil
}

// DeleteDocumentInfo deletes a document.
func (d *DB) DeleteDocumentInfo(_ context.Context, id int64) error {
	txn := d.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tblDocuments, "id", id)
	if err != nil {
		return fmt.Errorf("delete document %d: %w", id, err)
	}
	if raw == nil {
		return database.ErrDocumentNotFound
	}
	if err := txn.Delete(tblDocuments, raw); err != nil {
		return fmt.Errorf("delete document %d: %w", id, err)
	}

	txn.Commit()
	return nil
}

// FindCollaboratorInfos returns the access grants of a document.
func (d *DB) FindCollaboratorInfos(_ context.Context, documentID int64) ([]*database.CollaboratorInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	iter, err := txn.Get(tblCollaborators, "document_id", documentID)
	if err != nil {
		return nil, fmt.Errorf("find collaborators of document %d: %w", documentID, err)
	}

	var infos []*database.CollaboratorInfo
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		infos = append(infos, raw.(*collaboratorRecord).CollaboratorInfo.DeepCopy())
	}
	return infos, nil
}

// CreateCollaboratorInfo creates an access grant on a document.
func (d *DB) CreateCollaboratorInfo(
	_ context.Context,
	documentID int64,
	userID int64,
	permission types.Permission,
) (*database.CollaboratorInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	info := &database.CollaboratorInfo{
		ID:         atomic.AddInt64(&d.nextCollaboratorID, 1),
		DocumentID: documentID,
		UserID:     userID,
		Permission: permission,
		AddedAt:    gotime.Now(),
	}
	if err := txn.Insert(tblCollaborators, &collaboratorRecord{CollaboratorInfo: info}); err != nil {
		return nil, fmt.Errorf("add collaborator %d to document %d: %w", userID, documentID, err)
	}

	txn.Commit()
	return info.DeepCopy(), nil
}

// DeleteCollaboratorInfo removes the access grant of a user on a document.
func (d *DB) DeleteCollaboratorInfo(_ context.Context, documentID int64, userID int64) error {
	txn := d.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tblCollaborators, "document_id_user_id", documentID, userID)
	if err != nil {
		return fmt.Errorf("remove collaborator %d from document %d: %w", userID, documentID, err)
	}
	if raw == nil {
		return database.ErrCollaboratorNotFound
	}
	if err := txn.Delete(tblCollaborators, raw); err != nil {
		return fmt.Errorf("remove collaborator %d from document %d: %w", userID, documentID, err)
	}

	txn.Commit()
	return nil
}

// FindSuggestionInfos returns the suggestions of a document.
func (d *DB) FindSuggestionInfos(_ context.Context, documentID int64) ([]*database.SuggestionInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	iter, err := txn.Get(tblSuggestions, "document_id", documentID)
	if err != nil {
		return nil, fmt.Errorf("find suggestions of document %d: %w", documentID, err)
	}

	var infos []*database.SuggestionInfo
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		infos = append(infos, raw.(*suggestionRecord).SuggestionInfo.DeepCopy())
	}
	return infos, nil
}

// CreateSuggestionInfo creates a suggestion in pending status.
func (d *DB) CreateSuggestionInfo(
	_ context.Context,
	documentID int64,
	suggestionType types.SuggestionType,
	originalText string,
	suggestedText string,
) (*database.SuggestionInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	info := &database.SuggestionInfo{
		ID:            atomic.AddInt64(&d.nextSuggestionID, 1),
		DocumentID:    documentID,
		Type:          suggestionType,
		OriginalText:  originalText,
		SuggestedText: suggestedText,
		Status:        types.SuggestionStatusPending,
		CreatedAt:     gotime.Now(),
	}
	if err := txn.Insert(tblSuggestions, &suggestionRecord{SuggestionInfo: info}); err != nil {
		return nil, fmt.Errorf("create suggestion for document %d: %w", documentID, err)
	}

	txn.Commit()
	return info.DeepCopy(), nil
}

// FindSuggestionInfo returns a suggestion by its ID.
func (d *DB) FindSuggestionInfo(_ context.Context, id int64) (*database.SuggestionInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tblSuggestions, "id", id)
	if err != nil {
		return nil, fmt.Errorf("find suggestion %d: %w", id, err)
	}
	if raw == nil {
		return nil, database.ErrSuggestionNotFound
	}
	return raw.(*suggestionRecord).SuggestionInfo.DeepCopy(), nil
}

// UpdateSuggestionStatus sets the review status of a suggestion.
func (d *DB) UpdateSuggestionStatus(
	_ context.Context,
	id int64,
	status types.SuggestionStatus,
) (*database.SuggestionInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tblSuggestions, "id", id)
	if err != nil {
		return nil, fmt.Errorf("update suggestion %d: %w", id, err)
	}
	if raw == nil {
		return nil, database.ErrSuggestionNotFound
	}

	info := raw.(*suggestionRecord).SuggestionInfo.DeepCopy()
	info.Status = status
	if err := txn.Insert(tblSuggestions, &suggestionRecord{SuggestionInfo: info}); err != nil {
		return nil, fmt.Errorf("update suggestion %d: %w", id, err)
	}

	txn.Commit()
	return info.DeepCopy(), nil
}

// FindPresences returns all live presence records of a document.
func (d *DB) FindPresences(_ context.Context, documentID int64) ([]*types.Presence, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	iter, err := txn.Get(tblPresences, "document_id", documentID)
	if err != nil {
		return nil, fmt.Errorf("find presences of document %d: %w", documentID, err)
	}

	var presences []*types.Presence
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		copied := *raw.(*presenceRecord).Presence
		presences = append(presences, &copied)
	}
	return presences, nil
}

// UpdatePresence upserts the presence record keyed by (user ID, document
// ID).
func (d *DB) UpdatePresence(_ context.Context, presence *types.Presence) error {
	txn := d.db.Txn(true)
	defer txn.Abort()

	copied := *presence
	if err := txn.Insert(tblPresences, &presenceRecord{
		Key:      presenceKey(presence.UserID, presence.DocumentID),
		Presence: &copied,
	}); err != nil {
		return fmt.Errorf("update presence of user %d: %w", presence.UserID, err)
	}

	txn.Commit()
	return nil
}

// RemovePresence deletes the presence record of the user on the document.
func (d *DB) RemovePresence(_ context.Context, userID int64, documentID int64) error {
	txn := d.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tblPresences, "id", presenceKey(userID, documentID))
	if err != nil {
		return fmt.Errorf("remove presence of user %d: %w", userID, err)
	}
	if raw == nil {
		return nil
	}
	if err := txn.Delete(tblPresences, raw); err != nil {
		return fmt.Errorf("remove presence of user %d: %w", userID, err)
	}

	txn.Commit()
	return nil
}
