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

// Package rtc provides the realtime collaboration endpoint: the websocket
// session protocol, presence tracking and the broadcast of edits within a
// document.
package rtc

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/inkwell-team/inkwell/api/protocol"
	"github.com/inkwell-team/inkwell/server/backend"
	"github.com/inkwell-team/inkwell/server/logging"
)

// Server handles websocket connections for realtime collaboration.
type Server struct {
	backend  *backend.Backend
	registry *Registry
	upgrader websocket.Upgrader
}

// NewServer creates a new instance of Server.
func NewServer(be *backend.Backend) *Server {
	return &Server{
		backend:  be,
		registry: NewRegistry(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The browser client connects cross-origin in development.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Registry returns the connection registry of this server.
func (s *Server) Registry() *Registry {
	return s.registry
}

// ServeHTTP upgrades the request to a websocket connection and serves it
// until the peer disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.DefaultLogger().Warnf("websocket upgrade failed: %v", err)
		return
	}

	connection := NewConnection(conn)
	s.registry.Add(connection)
	if s.backend.Metrics != nil {
		s.backend.Metrics.AddConnection()
	}

	ctx := logging.With(
		r.Context(),
		logging.New("rtc", logging.NewField("conn", connection.ID())),
	)
	logging.From(ctx).Debugf("connection opened")

	s.readLoop(ctx, connection)
}

// readLoop processes incoming frames one at a time, which keeps each
// connection's messages in arrival order.
func (s *Server) readLoop(ctx context.Context, conn *Connection) {
	defer s.closeConnection(ctx, conn)

	for {
		_, data, err := conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
			) {
				logging.From(ctx).Debugf("connection read failed: %v", err)
			}
			return
		}

		s.dispatch(ctx, conn, data)
	}
}

// closeConnection releases everything held by the connection. A connection
// that disconnects while joined leaves its document as if it had sent
// leave_document.
func (s *Server) closeConnection(ctx context.Context, conn *Connection) {
	if conn.state == StateJoined {
		s.leaveDocument(ctx, conn)
	}
	conn.state = StateTerminated

	s.registry.Remove(conn)
	if s.backend.Metrics != nil {
		s.backend.Metrics.RemoveConnection()
	}

	if err := conn.conn.Close(); err != nil {
		logging.From(ctx).Debugf("connection close failed: %v", err)
	}
	logging.From(ctx).Debugf("connection closed")
}

// dispatch decodes and handles one client frame. Failures are reported
// in-band; only a broken websocket terminates the connection.
func (s *Server) dispatch(ctx context.Context, conn *Connection, data []byte) {
	msg, err := protocol.Decode(data)
	if err != nil {
		logging.From(ctx).Debugf("frame rejected: %v", err)
		var unknown protocol.ErrUnknownType
		if errors.As(err, &unknown) {
			s.sendError(conn, "Unknown message type")
		} else {
			s.sendError(conn, "Invalid message")
		}
		return
	}

	if s.backend.Metrics != nil {
		s.backend.Metrics.AddReceivedMessage(protocol.TypeOf(msg))
	}

	switch m := msg.(type) {
	case *protocol.AuthRequest:
		s.handleAuth(ctx, conn, m)
	case *protocol.JoinDocumentRequest:
		s.handleJoinDocument(ctx, conn, m)
	case *protocol.LeaveDocumentRequest:
		s.handleLeaveDocument(ctx, conn)
	case *protocol.CursorPositionRequest:
		s.handleCursorPosition(ctx, conn, m)
	case *protocol.DocumentUpdateRequest:
		s.handleDocumentUpdate(ctx, conn, m)
	case *protocol.RequestAISuggestionsRequest:
		s.handleRequestAISuggestions(ctx, conn, m)
	case *protocol.UpdateSuggestionStatusRequest:
		s.handleUpdateSuggestionStatus(ctx, conn, m)
	}
}

func (s *Server) sendError(conn *Connection, message string) {
	if err := conn.Send(protocol.NewError(message)); err != nil {
		logging.DefaultLogger().Debugf("error frame write failed: %v", err)
	}
}
