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

// Package database provides the storage interface for the Inkwell backend.
package database

import (
	"context"

	"github.com/inkwell-team/inkwell/api/types"
	"github.com/inkwell-team/inkwell/pkg/delta"
	"github.com/inkwell-team/inkwell/pkg/errors"
)

var (
	// ErrUserNotFound is returned when the user could not be found.
	ErrUserNotFound = errors.NotFound("user not found")

	// ErrUserAlreadyExists is returned when a user with the same username
	// already exists.
	ErrUserAlreadyExists = errors.AlreadyExists("user already exists")

	// ErrDocumentNotFound is returned when the document could not be found.
	ErrDocumentNotFound = errors.NotFound("document not found")

	// ErrCollaboratorNotFound is returned when the collaborator grant could
	// not be found.
	ErrCollaboratorNotFound = errors.NotFound("collaborator not found")

	// ErrSuggestionNotFound is returned when the suggestion could not be
	// found.
	ErrSuggestionNotFound = errors.NotFound("suggestion not found")
)

// UpdatableDocumentFields is the set of document fields a client may patch.
// Nil fields are left untouched.
type UpdatableDocumentFields struct {
	Title   *string      `json:"title,omitempty"`
	Content *delta.Delta `json:"content,omitempty"`
}

// Database reads and saves Inkwell data.
type Database interface {
	// Close closes all resources of this database.
	Close() error

	// FindUserInfo returns a user by its ID.
	FindUserInfo(ctx context.Context, id int64) (*UserInfo, error)

	// FindUserInfoByUsername returns a user by its username. The lookup is
	// case-insensitive.
	FindUserInfoByUsername(ctx context.Context, username string) (*UserInfo, error)

	// CreateUserInfo creates a new user.
	CreateUserInfo(ctx context.Context, fields CreateUserFields) (*UserInfo, error)

	// FindDocumentInfo returns a document by its ID.
	FindDocumentInfo(ctx context.Context, id int64) (*DocumentInfo, error)

	// FindDocumentInfosByUserID returns the documents the user owns or
	// collaborates on.
	FindDocumentInfosByUserID(ctx context.Context, userID int64) ([]*DocumentInfo, error)

	// CreateDocumentInfo creates a new document.
	CreateDocumentInfo(
		ctx context.Context,
		title string,
		ownerID int64,
		content delta.Delta,
	) (*DocumentInfo, error)

	// UpdateDocumentInfo patches the given fields of a document.
	UpdateDocumentInfo(
		ctx context.Context,
		id int64,
		fields UpdatableDocumentFields,
	) (*DocumentInfo, error)

	// UpdateDocumentContent replaces the content of a document and bumps its
	// server sequence number.
	UpdateDocumentContent(ctx context.Context, id int64, content delta.Delta) (*DocumentInfo, error)

	// DeleteDocumentInfo deletes a document.
	DeleteDocumentInfo(ctx context.Context, id int64) error

	// FindCollaboratorInfos returns the access grants of a document.
	FindCollaboratorInfos(ctx context.Context, documentID int64) ([]*CollaboratorInfo, error)

	// CreateCollaboratorInfo creates an access grant on a document.
	CreateCollaboratorInfo(
		ctx context.Context,
		documentID int64,
		userID int64,
		permission types.Permission,
	) (*CollaboratorInfo, error)

	// DeleteCollaboratorInfo removes the access grant of a user on a
	// document.
	DeleteCollaboratorInfo(ctx context.Context, documentID int64, userID int64) error

	// FindSuggestionInfos returns the suggestions of a document.
	FindSuggestionInfos(ctx context.Context, documentID int64) ([]*SuggestionInfo, error)

	// CreateSuggestionInfo creates a suggestion in pending status.
	CreateSuggestionInfo(
		ctx context.Context,
		documentID int64,
		suggestionType types.SuggestionType,
		originalText string,
		suggestedText string,
	) (*SuggestionInfo, error)

	// FindSuggestionInfo returns a suggestion by its ID.
	FindSuggestionInfo(ctx context.Context, id int64) (*SuggestionInfo, error)

	// UpdateSuggestionStatus sets the review status of a suggestion.
	UpdateSuggestionStatus(
		ctx context.Context,
		id int64,
		status types.SuggestionStatus,
	) (*SuggestionInfo, error)

	// FindPresences returns all live presence records of a document.
	FindPresences(ctx context.Context, documentID int64) ([]*types.Presence, error)

	// UpdatePresence upserts the presence record keyed by
	// (user ID, document ID). Last write wins.
	UpdatePresence(ctx context.Context, presence *types.Presence) error

	// RemovePresence deletes the presence record of the user on the
	// document. It is a no-op when the record is absent.
	RemovePresence(ctx context.Context, userID int64, documentID int64) error
}
