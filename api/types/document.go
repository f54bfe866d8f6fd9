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

import (
	"time"

	"github.com/inkwell-team/inkwell/pkg/delta"
)

// Document is the canonical shared content edited by collaborators. Edits
// are serialized by server-arrival order per document.
type Document struct {
	// ID is the unique ID of the document.
	ID int64 `json:"id"`

	// Title is the title of the document.
	Title string `json:"title"`

	// OwnerID is the ID of the user who owns the document.
	OwnerID int64 `json:"ownerId"`

	// Content is the rich-text delta of the document.
	Content delta.Delta `json:"content"`

	// ServerSeq is a monotonic sequence number assigned by the server on
	// every applied update. Clients can use it to detect missed or
	// divergent updates; it is not used for conflict resolution.
	ServerSeq int64 `json:"serverSeq"`

	// CreatedAt is the time when the document was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the time when the document was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}

// DocumentUpdate is one batch of operations submitted by one connection. It
// is consumed immediately by the reconciler and never persisted on its own.
type DocumentUpdate struct {
	DocumentID int64             `json:"documentId"`
	UserID     int64             `json:"userId"`
	Operations []delta.Operation `json:"operations"`

	// Version is a client-supplied marker. It is echoed on broadcasts but
	// not conflict-checked.
	Version int64 `json:"version"`
}
