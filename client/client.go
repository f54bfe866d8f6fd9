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

// Package client provides the Go client of the Inkwell realtime protocol.
// The client keeps enough session state to restore its identity and joined
// document after a reconnection.
package client

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/inkwell-team/inkwell/api/protocol"
	"github.com/inkwell-team/inkwell/api/types"
	"github.com/inkwell-team/inkwell/pkg/delta"
)

// Client is a client of the Inkwell realtime protocol.
type Client struct {
	url     string
	options Options
	logger  *zap.SugaredLogger

	connMu sync.Mutex
	conn   *websocket.Conn

	stateMu    sync.Mutex
	userID     int64
	documentID int64
	cursor     *types.CursorPosition
	closed     bool

	events chan any
}

// Dial creates an instance of Client and connects to the given URL.
func Dial(url string, opts ...Option) (*Client, error) {
	options := Options{
		MaxReconnectAttempts:  DefaultMaxReconnectAttempts,
		ReconnectBaseInterval: DefaultReconnectBaseInterval,
	}
	for _, opt := range opts {
		opt(&options)
	}

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	cli := &Client{
		url:     url,
		options: options,
		logger:  logger.Sugar(),
		events:  make(chan any, 16),
	}

	if err := cli.connect(); err != nil {
		return nil, err
	}
	go cli.readLoop()

	return cli, nil
}

// Events returns the channel the server frames are delivered on. The channel
// is closed when the connection is closed or reconnection gives up.
func (c *Client) Events() <-chan any {
	return c.events
}

// Authenticate claims the given user identity for the connection.
func (c *Client) Authenticate(userID int64) error {
	c.stateMu.Lock()
	c.userID = userID
	c.stateMu.Unlock()

	return c.send(&protocol.AuthRequest{Type: protocol.TypeAuth, UserID: userID})
}

// JoinDocument joins the given document.
func (c *Client) JoinDocument(documentID int64, cursor *types.CursorPosition) error {
	c.stateMu.Lock()
	c.documentID = documentID
	c.cursor = cursor
	c.stateMu.Unlock()

	return c.send(&protocol.JoinDocumentRequest{
		Type:       protocol.TypeJoinDocument,
		DocumentID: documentID,
		Cursor:     cursor,
	})
}

// LeaveDocument leaves the currently joined document.
func (c *Client) LeaveDocument() error {
	c.stateMu.Lock()
	c.documentID = 0
	c.cursor = nil
	c.stateMu.Unlock()

	return c.send(&protocol.LeaveDocumentRequest{Type: protocol.TypeLeaveDocument})
}

// SendCursor reports the cursor position to the other participants.
func (c *Client) SendCursor(cursor *types.CursorPosition) error {
	c.stateMu.Lock()
	c.cursor = cursor
	c.stateMu.Unlock()

	return c.send(&protocol.CursorPositionRequest{
		Type:   protocol.TypeCursorPosition,
		Cursor: cursor,
	})
}

// SendUpdate submits one batch of edit operations.
func (c *Client) SendUpdate(operations []delta.Operation, version int64) error {
	return c.send(&protocol.DocumentUpdateRequest{
		Type:       protocol.TypeDocumentUpdate,
		Operations: operations,
		Version:    version,
	})
}

// RequestSuggestions asks for AI writing suggestions on the given content.
func (c *Client) RequestSuggestions(content delta.Delta, mode types.SuggestionMode) error {
	return c.send(&protocol.RequestAISuggestionsRequest{
		Type:    protocol.TypeRequestAISuggestions,
		Content: content,
		Mode:    mode,
	})
}

// ReviewSuggestion accepts or rejects the given suggestion.
func (c *Client) ReviewSuggestion(suggestionID int64, status types.SuggestionStatus) error {
	return c.send(&protocol.UpdateSuggestionStatusRequest{
		Type:         protocol.TypeUpdateSuggestionStatus,
		SuggestionID: suggestionID,
		Status:       status,
	})
}

// Close closes the connection.
func (c *Client) Close() error {
	c.stateMu.Lock()
	if c.closed {
		c.stateMu.Unlock()
		return nil
	}
	c.closed = true
	c.stateMu.Unlock()

	c.connMu.Lock()
	defer c.connMu.Unlock()
	return c.conn.Close()
}

func (c *Client) connect() error {
	conn, resp, err := websocket.DefaultDialer.Dial(c.url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.url, err)
	}

	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()
	return nil
}

func (c *Client) send(frame any) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}

	c.connMu.Lock()
	defer c.connMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// readLoop delivers decoded server frames until the connection is closed and
// cannot be restored.
func (c *Client) readLoop() {
	defer close(c.events)

	for {
		c.connMu.Lock()
		conn := c.conn
		c.connMu.Unlock()

		_, data, err := conn.ReadMessage()
		if err != nil {
			if c.isClosed() || !c.reconnect() {
				return
			}
			continue
		}

		msg, err := protocol.DecodeServerMessage(data)
		if err != nil {
			c.logger.Debugf("frame dropped: %v", err)
			continue
		}
		c.events <- msg
	}
}

// reconnect tries to restore the connection with exponential backoff and
// replays the session: the identity claim first, then the document join.
func (c *Client) reconnect() bool {
	interval := c.options.ReconnectBaseInterval

	for attempt := 0; attempt < c.options.MaxReconnectAttempts; attempt++ {
		time.Sleep(interval)
		interval *= 2

		if c.isClosed() {
			return false
		}

		if err := c.connect(); err != nil {
			c.logger.Debugf("reconnect attempt %d failed: %v", attempt+1, err)
			continue
		}

		c.stateMu.Lock()
		userID, documentID, cursor := c.userID, c.documentID, c.cursor
		c.stateMu.Unlock()

		if userID != 0 {
			if err := c.Authenticate(userID); err != nil {
				continue
			}
		}
		if documentID != 0 {
			if err := c.JoinDocument(documentID, cursor); err != nil {
				continue
			}
		}
		return true
	}

	c.logger.Warnf("reconnection gave up after %d attempts", c.options.MaxReconnectAttempts)
	return false
}

func (c *Client) isClosed() bool {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.closed
}
