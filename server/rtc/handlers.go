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

package rtc

import (
	"context"
	"errors"
	"time"

	"github.com/inkwell-team/inkwell/api/protocol"
	"github.com/inkwell-team/inkwell/api/types"
	"github.com/inkwell-team/inkwell/server/backend/database"
	"github.com/inkwell-team/inkwell/server/backend/pubsub"
	"github.com/inkwell-team/inkwell/server/documents"
	"github.com/inkwell-team/inkwell/server/logging"
	"github.com/inkwell-team/inkwell/server/suggestions"
	"github.com/inkwell-team/inkwell/server/users"
)

// Below are the error messages sent in-band to clients.
const (
	msgInvalidUser          = "Invalid user"
	msgAlreadyAuthenticated = "Already authenticated"
	msgNotAuthenticated     = "Not authenticated"
	msgNotInDocument        = "Not in a document"
	msgDocumentNotFound     = "Document not found"
	msgSuggestionNotFound   = "Suggestion not found"
	msgInvalidStatus        = "Invalid status"
	msgAlreadyReviewed      = "Suggestion already reviewed"
	msgInternalError        = "Internal error"
)

// requireJoined rejects frames that are only valid on a joined connection.
func (s *Server) requireJoined(conn *Connection) bool {
	switch conn.state {
	case StateJoined:
		return true
	case StateUnauthenticated:
		s.sendError(conn, msgNotAuthenticated)
	default:
		s.sendError(conn, msgNotInDocument)
	}
	return false
}

func (s *Server) handleAuth(ctx context.Context, conn *Connection, msg *protocol.AuthRequest) {
	if conn.state != StateUnauthenticated {
		s.sendError(conn, msgAlreadyAuthenticated)
		return
	}

	user, err := users.GetUser(ctx, s.backend, msg.UserID)
	if err != nil {
		if err := conn.Send(protocol.NewAuthError(msgInvalidUser)); err != nil {
			logging.From(ctx).Debugf("auth_error write failed: %v", err)
		}
		return
	}

	conn.userID = user.ID
	conn.username = user.Username
	conn.avatar = user.Avatar
	conn.state = StateAuthenticated

	if err := conn.Send(protocol.NewAuthSuccess(user.ID)); err != nil {
		logging.From(ctx).Debugf("auth_success write failed: %v", err)
	}
	logging.From(ctx).Infof("user %d authenticated", user.ID)
}

func (s *Server) handleJoinDocument(
	ctx context.Context,
	conn *Connection,
	msg *protocol.JoinDocumentRequest,
) {
	if conn.state == StateUnauthenticated {
		s.sendError(conn, msgNotAuthenticated)
		return
	}

	doc, err := documents.FindDocument(ctx, s.backend, msg.DocumentID)
	if err != nil {
		s.sendError(conn, msgDocumentNotFound)
		return
	}

	// Joining while joined switches documents. The current session is left
	// only once the target is known to exist, so a bad id changes nothing.
	if conn.state == StateJoined {
		s.leaveDocument(ctx, conn)
		conn.state = StateAuthenticated
	}

	conn.documentID = doc.ID
	conn.cursor = msg.Cursor

	presence := conn.presence(time.Now())
	if err := s.backend.DB.UpdatePresence(ctx, presence); err != nil {
		logging.From(ctx).Warnf("presence update failed: %v", err)
		conn.documentID = 0
		s.sendError(conn, msgInternalError)
		return
	}

	conn.sub = s.backend.PubSub.Subscribe(ctx, conn.userID, doc.ID)
	conn.state = StateJoined

	if err := s.sendDocumentData(ctx, conn, doc); err != nil {
		logging.From(ctx).Warnf("document snapshot failed: %v", err)
		s.leaveDocument(ctx, conn)
		conn.state = StateAuthenticated
		s.sendError(conn, msgInternalError)
		return
	}

	go conn.drainEvents(conn.sub)

	s.publish(ctx, pubsub.Event{
		DocumentID:       doc.ID,
		Publisher:        conn.userID,
		ExcludePublisher: true,
		Payload:          protocol.NewUserJoined(presence),
	}, protocol.TypeUserJoined)

	logging.From(ctx).Infof("user %d joined document %d", conn.userID, doc.ID)
}

// sendDocumentData sends the join snapshot: the document, its collaborators
// and suggestions, and the active users including the joiner itself.
func (s *Server) sendDocumentData(
	ctx context.Context,
	conn *Connection,
	doc *types.Document,
) error {
	collaborators, err := documents.ListCollaborators(ctx, s.backend, doc.ID)
	if err != nil {
		return err
	}
	suggestionList, err := suggestions.ListSuggestions(ctx, s.backend, doc.ID)
	if err != nil {
		return err
	}
	activeUsers, err := s.backend.DB.FindPresences(ctx, doc.ID)
	if err != nil {
		return err
	}

	return conn.Send(protocol.NewDocumentData(doc, collaborators, suggestionList, activeUsers))
}

func (s *Server) handleLeaveDocument(ctx context.Context, conn *Connection) {
	if !s.requireJoined(conn) {
		return
	}

	s.leaveDocument(ctx, conn)
	conn.state = StateAuthenticated
}

// leaveDocument removes the presence, announces the departure and tears the
// subscription down. The caller owns the state transition.
func (s *Server) leaveDocument(ctx context.Context, conn *Connection) {
	documentID := conn.documentID

	if err := s.backend.DB.RemovePresence(ctx, conn.userID, documentID); err != nil {
		logging.From(ctx).Warnf("presence removal failed: %v", err)
	}

	s.publish(ctx, pubsub.Event{
		DocumentID:       documentID,
		Publisher:        conn.userID,
		ExcludePublisher: true,
		Payload:          protocol.NewUserLeft(conn.userID),
	}, protocol.TypeUserLeft)

	s.backend.PubSub.Unsubscribe(ctx, documentID, conn.sub)
	conn.sub = nil
	conn.documentID = 0
	conn.cursor = nil

	logging.From(ctx).Infof("user %d left document %d", conn.userID, documentID)
}

func (s *Server) handleCursorPosition(
	ctx context.Context,
	conn *Connection,
	msg *protocol.CursorPositionRequest,
) {
	if !s.requireJoined(conn) {
		return
	}

	conn.cursor = msg.Cursor
	if err := s.backend.DB.UpdatePresence(ctx, conn.presence(time.Now())); err != nil {
		logging.From(ctx).Warnf("presence update failed: %v", err)
	}

	s.publish(ctx, pubsub.Event{
		DocumentID:       conn.documentID,
		Publisher:        conn.userID,
		ExcludePublisher: true,
		Payload:          protocol.NewCursorUpdate(conn.userID, msg.Cursor),
	}, protocol.TypeCursorUpdate)
}

func (s *Server) handleDocumentUpdate(
	ctx context.Context,
	conn *Connection,
	msg *protocol.DocumentUpdateRequest,
) {
	if !s.requireJoined(conn) {
		return
	}

	doc, err := documents.ApplyUpdate(ctx, s.backend, types.DocumentUpdate{
		DocumentID: conn.documentID,
		UserID:     conn.userID,
		Operations: msg.Operations,
		Version:    msg.Version,
	})
	if err != nil {
		if errors.Is(err, database.ErrDocumentNotFound) {
			s.sendError(conn, msgDocumentNotFound)
			return
		}
		logging.From(ctx).Warnf("document update failed: %v", err)
		s.sendError(conn, msgInternalError)
		return
	}

	if err := s.backend.DB.UpdatePresence(ctx, conn.presence(time.Now())); err != nil {
		logging.From(ctx).Warnf("presence update failed: %v", err)
	}

	s.publish(ctx, pubsub.Event{
		DocumentID:       conn.documentID,
		Publisher:        conn.userID,
		ExcludePublisher: true,
		Payload: protocol.NewDocumentUpdated(
			msg.Operations,
			conn.userID,
			msg.Version,
			doc.ServerSeq,
		),
	}, protocol.TypeDocumentUpdated)
}

func (s *Server) handleRequestAISuggestions(
	ctx context.Context,
	conn *Connection,
	msg *protocol.RequestAISuggestionsRequest,
) {
	if !s.requireJoined(conn) {
		return
	}

	created, err := suggestions.Generate(ctx, s.backend, conn.documentID, msg.Content, msg.Mode)
	if err != nil {
		logging.From(ctx).Warnf("suggestion persistence failed: %v", err)
		s.sendError(conn, msgInternalError)
		return
	}

	if err := conn.Send(protocol.NewAISuggestions(created)); err != nil {
		logging.From(ctx).Debugf("ai_suggestions write failed: %v", err)
		return
	}

	// The count is announced even when it is zero.
	s.publish(ctx, pubsub.Event{
		DocumentID:       conn.documentID,
		Publisher:        conn.userID,
		ExcludePublisher: true,
		Payload:          protocol.NewSuggestionsAvailableMessage(len(created)),
	}, protocol.TypeNewSuggestionsAvailable)
}

func (s *Server) handleUpdateSuggestionStatus(
	ctx context.Context,
	conn *Connection,
	msg *protocol.UpdateSuggestionStatusRequest,
) {
	if !s.requireJoined(conn) {
		return
	}

	suggestion, err := suggestions.UpdateStatus(ctx, s.backend, msg.SuggestionID, msg.Status)
	if err != nil {
		switch {
		case errors.Is(err, suggestions.ErrInvalidStatus):
			s.sendError(conn, msgInvalidStatus)
		case errors.Is(err, suggestions.ErrAlreadyReviewed):
			s.sendError(conn, msgAlreadyReviewed)
		case errors.Is(err, database.ErrSuggestionNotFound):
			s.sendError(conn, msgSuggestionNotFound)
		default:
			logging.From(ctx).Warnf("suggestion review failed: %v", err)
			s.sendError(conn, msgInternalError)
		}
		return
	}

	// Reviews are broadcast to everyone joined to the suggestion's document,
	// the reviewer included.
	s.publish(ctx, pubsub.Event{
		DocumentID: suggestion.DocumentID,
		Publisher:  conn.userID,
		Payload:    protocol.NewSuggestionStatusUpdated(suggestion),
	}, protocol.TypeSuggestionStatusUpdated)
}

// publish fans the event out and counts it.
func (s *Server) publish(ctx context.Context, event pubsub.Event, eventType string) {
	s.backend.PubSub.Publish(ctx, event)
	if s.backend.Metrics != nil {
		s.backend.Metrics.AddPublishedEvent(eventType)
	}
}
