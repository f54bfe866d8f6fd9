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

package types

import "time"

// CursorPosition is a cursor location within a document: an index and the
// length of the selection from it. Out-of-range values are accepted and
// rendered best-effort by clients.
type CursorPosition struct {
	Index  int `json:"index"`
	Length int `json:"length"`
}

// Presence is one user's live editing state within one document. There is at
// most one record per (user, document) pair; it exists exactly while the
// user's connection is joined to the document.
type Presence struct {
	// UserID is the ID of the user.
	UserID int64 `json:"userId"`

	// Username is the display name of the user.
	Username string `json:"username"`

	// Avatar is an optional URL of the user's avatar image.
	Avatar string `json:"avatar,omitempty"`

	// Cursor is the user's last-known cursor position, if any.
	Cursor *CursorPosition `json:"cursorPosition,omitempty"`

	// LastActivity is the time of the user's last cursor or content event.
	LastActivity time.Time `json:"lastActivity"`

	// DocumentID is the ID of the document the user is editing.
	DocumentID int64 `json:"documentId"`
}
