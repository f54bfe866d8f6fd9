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

// Package protocol defines the JSON text frames exchanged over the realtime
// connection. Every frame carries a `type` tag; client frames are decoded
// into a tagged union so the dispatcher can match exhaustively and reject
// unknown tags explicitly.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/inkwell-team/inkwell/api/types"
	"github.com/inkwell-team/inkwell/pkg/delta"
)

// Below are the frame type tags of the protocol.
const (
	TypeAuth                    = "auth"
	TypeAuthSuccess             = "auth_success"
	TypeAuthError               = "auth_error"
	TypeJoinDocument            = "join_document"
	TypeDocumentData            = "document_data"
	TypeUserJoined              = "user_joined"
	TypeLeaveDocument           = "leave_document"
	TypeUserLeft                = "user_left"
	TypeCursorPosition          = "cursor_position"
	TypeCursorUpdate            = "cursor_update"
	TypeDocumentUpdate          = "document_update"
	TypeDocumentUpdated         = "document_updated"
	TypeRequestAISuggestions    = "request_ai_suggestions"
	TypeAISuggestions           = "ai_suggestions"
	TypeNewSuggestionsAvailable = "new_suggestions_available"
	TypeUpdateSuggestionStatus  = "update_suggestion_status"
	TypeSuggestionStatusUpdated = "suggestion_status_updated"
	TypeError                   = "error"
)

// ClientMessage is a message sent by a client. It is one of the *Request
// types below.
type ClientMessage interface {
	messageType() string
}

// AuthRequest claims a user identity for the connection.
type AuthRequest struct {
	Type   string `json:"type"`
	UserID int64  `json:"userId"`
}

// JoinDocumentRequest joins the connection to a document.
type JoinDocumentRequest struct {
	Type       string                `json:"type"`
	DocumentID int64                 `json:"documentId"`
	Cursor     *types.CursorPosition `json:"cursorPosition,omitempty"`
}

// LeaveDocumentRequest leaves the currently joined document.
type LeaveDocumentRequest struct {
	Type string `json:"type"`
}

// CursorPositionRequest reports the sender's cursor position.
type CursorPositionRequest struct {
	Type   string                `json:"type"`
	Cursor *types.CursorPosition `json:"cursorPosition"`
}

// DocumentUpdateRequest submits one batch of edit operations.
type DocumentUpdateRequest struct {
	Type       string            `json:"type"`
	Operations []delta.Operation `json:"operations"`
	Version    int64             `json:"version"`
}

// RequestAISuggestionsRequest asks for AI writing suggestions on the given
// content.
type RequestAISuggestionsRequest struct {
	Type    string               `json:"type"`
	Content delta.Delta          `json:"content"`
	Mode    types.SuggestionMode `json:"mode"`
}

// UpdateSuggestionStatusRequest accepts or rejects a suggestion.
type UpdateSuggestionStatusRequest struct {
	Type         string                 `json:"type"`
	SuggestionID int64                  `json:"suggestionId"`
	Status       types.SuggestionStatus `json:"status"`
}

func (m *AuthRequest) messageType() string                   { return TypeAuth }
func (m *JoinDocumentRequest) messageType() string           { return TypeJoinDocument }
func (m *LeaveDocumentRequest) messageType() string          { return TypeLeaveDocument }
func (m *CursorPositionRequest) messageType() string         { return TypeCursorPosition }
func (m *DocumentUpdateRequest) messageType() string         { return TypeDocumentUpdate }
func (m *RequestAISuggestionsRequest) messageType() string   { return TypeRequestAISuggestions }
func (m *UpdateSuggestionStatusRequest) messageType() string { return TypeUpdateSuggestionStatus }

// TypeOf returns the type tag of the given client message.
func TypeOf(msg ClientMessage) string {
	return msg.messageType()
}

// ErrUnknownType is returned by Decode for a frame whose type tag is not
// part of the protocol.
type ErrUnknownType struct {
	Type string
}

// Error returns the error message.
func (e ErrUnknownType) Error() string {
	return fmt.Sprintf("unknown message type: %q", e.Type)
}

// Decode parses a client frame into its concrete message.
func Decode(data []byte) (ClientMessage, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode frame envelope: %w", err)
	}

	var msg ClientMessage
	switch envelope.Type {
	case TypeAuth:
		msg = &AuthRequest{}
	case TypeJoinDocument:
		msg = &JoinDocumentRequest{}
	case TypeLeaveDocument:
		msg = &LeaveDocumentRequest{}
	case TypeCursorPosition:
		msg = &CursorPositionRequest{}
	case TypeDocumentUpdate:
		msg = &DocumentUpdateRequest{}
	case TypeRequestAISuggestions:
		msg = &RequestAISuggestionsRequest{}
	case TypeUpdateSuggestionStatus:
		msg = &UpdateSuggestionStatusRequest{}
	default:
		return nil, ErrUnknownType{Type: envelope.Type}
	}

	if err := json.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("decode %s frame: %w", envelope.Type, err)
	}
	return msg, nil
}
