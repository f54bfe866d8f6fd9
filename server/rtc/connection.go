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
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/xid"

	"github.com/inkwell-team/inkwell/api/types"
	"github.com/inkwell-team/inkwell/server/backend/pubsub"
)

// State is the lifecycle state of a connection. Frames valid only in a later
// state are rejected in-band without closing the connection.
type State int

// Below are the connection states.
const (
	StateUnauthenticated State = iota
	StateAuthenticated
	StateJoined
	StateTerminated
)

// Connection is one websocket connection. All state transitions happen on
// the connection's single reader goroutine; writes are serialized by the
// write mutex because the event drain goroutine writes concurrently.
type Connection struct {
	id   string
	conn *websocket.Conn

	writeMu sync.Mutex

	// Fields below are owned by the reader goroutine.
	state    State
	userID   int64
	username string
	avatar   string

	documentID int64
	cursor     *types.CursorPosition
	sub        *pubsub.Subscription
}

// NewConnection creates a Connection over the given websocket.
func NewConnection(conn *websocket.Conn) *Connection {
	return &Connection{
		id:   xid.New().String(),
		conn: conn,
	}
}

// ID returns the ID of this connection.
func (c *Connection) ID() string {
	return c.id
}

// UserID returns the authenticated user ID, zero before authentication.
func (c *Connection) UserID() int64 {
	return c.userID
}

// DocumentID returns the joined document ID, zero when not joined.
func (c *Connection) DocumentID() int64 {
	return c.documentID
}

// State returns the lifecycle state of this connection.
func (c *Connection) State() State {
	return c.state
}

// presence builds the user's current presence within the joined document.
func (c *Connection) presence(now time.Time) *types.Presence {
	return &types.Presence{
		UserID:       c.userID,
		Username:     c.username,
		Avatar:       c.avatar,
		Cursor:       c.cursor,
		LastActivity: now,
		DocumentID:   c.documentID,
	}
}

// Send marshals the given frame and writes it to the websocket.
func (c *Connection) Send(frame any) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// drainEvents forwards published events to the websocket until the
// subscription is closed. Write failures stop the drain; the reader
// goroutine notices the broken connection on its next read.
func (c *Connection) drainEvents(sub *pubsub.Subscription) {
	for event := range sub.Events() {
		if err := c.Send(event.Payload); err != nil {
			return
		}
	}
}
