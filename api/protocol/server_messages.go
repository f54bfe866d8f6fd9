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

package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/inkwell-team/inkwell/api/types"
	"github.com/inkwell-team/inkwell/pkg/delta"
)

// AuthSuccess confirms a successful authentication.
type AuthSuccess struct {
	Type   string `json:"type"`
	UserID int64  `json:"userId"`
}

// AuthError reports a failed authentication; the connection stays open.
type AuthError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// DocumentData is the snapshot sent to a connection that just joined a
// document.
type DocumentData struct {
	Type          string                `json:"type"`
	Document      *types.Document       `json:"document"`
	Collaborators []*types.Collaborator `json:"collaborators"`
	Suggestions   []*types.Suggestion   `json:"suggestions"`
	ActiveUsers   []*types.Presence     `json:"activeUsers"`
}

// UserJoined announces a new participant to the document's audience.
type UserJoined struct {
	Type     string          `json:"type"`
	Presence *types.Presence `json:"presence"`
}

// UserLeft announces that a participant left or disconnected.
type UserLeft struct {
	Type   string `json:"type"`
	UserID int64  `json:"userId"`
}

// CursorUpdate propagates a participant's cursor position.
type CursorUpdate struct {
	Type   string                `json:"type"`
	UserID int64                 `json:"userId"`
	Cursor *types.CursorPosition `json:"cursorPosition"`
}

// DocumentUpdated propagates applied edit operations to the other
// participants. ServerSeq is the server-assigned sequence number of the
// update; Version echoes the client-supplied marker.
type DocumentUpdated struct {
	Type       string            `json:"type"`
	Operations []delta.Operation `json:"operations"`
	UserID     int64             `json:"userId"`
	Version    int64             `json:"version"`
	ServerSeq  int64             `json:"serverSeq"`
}

// AISuggestions delivers generated suggestions to the requester.
type AISuggestions struct {
	Type        string              `json:"type"`
	Suggestions []*types.Suggestion `json:"suggestions"`
}

// NewSuggestionsAvailable tells other participants that suggestions exist,
// by count only, so they can re-fetch.
type NewSuggestionsAvailable struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// SuggestionStatusUpdated propagates a suggestion review to every
// participant, the sender included.
type SuggestionStatusUpdated struct {
	Type       string            `json:"type"`
	Suggestion *types.Suggestion `json:"suggestion"`
}

// Error reports a protocol-level failure in-band; the connection stays open.
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewAuthSuccess creates an auth_success frame.
func NewAuthSuccess(userID int64) *AuthSuccess {
	return &AuthSuccess{Type: TypeAuthSuccess, UserID: userID}
}

// NewAuthError creates an auth_error frame.
func NewAuthError(message string) *AuthError {
	return &AuthError{Type: TypeAuthError, Message: message}
}

// NewDocumentData creates a document_data frame.
func NewDocumentData(
	doc *types.Document,
	collaborators []*types.Collaborator,
	suggestions []*types.Suggestion,
	activeUsers []*types.Presence,
) *DocumentData {
	return &DocumentData{
		Type:          TypeDocumentData,
		Document:      doc,
		Collaborators: collaborators,
		Suggestions:   suggestions,
		ActiveUsers:   activeUsers,
	}
}

// NewUserJoined creates a user_joined frame.
func NewUserJoined(presence *types.Presence) *UserJoined {
	return &UserJoined{Type: TypeUserJoined, Presence: presence}
}

// NewUserLeft creates a user_left frame.
func NewUserLeft(userID int64) *UserLeft {
	return &UserLeft{Type: TypeUserLeft, UserID: userID}
}

// NewCursorUpdate creates a cursor_update frame.
func NewCursorUpdate(userID int64, cursor *types.CursorPosition) *CursorUpdate {
	return &CursorUpdate{Type: TypeCursorUpdate, UserID: userID, Cursor: cursor}
}

// NewDocumentUpdated creates a document_updated frame.
func NewDocumentUpdated(
	operations []delta.Operation,
	userID int64,
	version int64,
	serverSeq int64,
) *DocumentUpdated {
	return &DocumentUpdated{
		Type:       TypeDocumentUpdated,
		Operations: operations,
		UserID:     userID,
		Version:    version,
		ServerSeq:  serverSeq,
	}
}

// NewAISuggestions creates an ai_suggestions frame.
func NewAISuggestions(suggestions []*types.Suggestion) *AISuggestions {
	if suggestions == nil {
		suggestions = []*types.Suggestion{}
	}
	return &AISuggestions{Type: TypeAISuggestions, Suggestions: suggestions}
}

// NewSuggestionsAvailableMessage creates a new_suggestions_available frame.
func NewSuggestionsAvailableMessage(count int) *NewSuggestionsAvailable {
	return &NewSuggestionsAvailable{Type: TypeNewSuggestionsAvailable, Count: count}
}

// NewSuggestionStatusUpdated creates a suggestion_status_updated frame.
func NewSuggestionStatusUpdated(suggestion *types.Suggestion) *SuggestionStatusUpdated {
	return &SuggestionStatusUpdated{Type: TypeSuggestionStatusUpdated, Suggestion: suggestion}
}

// NewError creates an error frame.
func NewError(message string) *Error {
	return &Error{Type: TypeError, Message: message}
}

// DecodeServerMessage parses a server frame into its concrete message. It is
// used by the client side of the protocol.
func DecodeServerMessage(data []byte) (any, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode frame envelope: %w", err)
	}

	var msg any
	switch envelope.Type {
	case TypeAuthSuccess:
		msg = &AuthSuccess{}
	case TypeAuthError:
		msg = &AuthError{}
	case TypeDocumentData:
		msg = &DocumentData{}
	case TypeUserJoined:
		msg = &UserJoined{}
	case TypeUserLeft:
		msg = &UserLeft{}
	case TypeCursorUpdate:
		msg = &CursorUpdate{}
	case TypeDocumentUpdated:
		msg = &DocumentUpdated{}
	case TypeAISuggestions:
		msg = &AISuggestions{}
	case TypeNewSuggestionsAvailable:
		msg = &NewSuggestionsAvailable{}
	case TypeSuggestionStatusUpdated:
		msg = &SuggestionStatusUpdated{}
	case TypeError:
		msg = &Error{}
	default:
		return nil, ErrUnknownType{Type: envelope.Type}
	}

	if err := json.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("decode %s frame: %w", envelope.Type, err)
	}
	return msg, nil
}
