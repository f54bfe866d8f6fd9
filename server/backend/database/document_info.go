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

package database

import (
	"time"

	"github.com/inkwell-team/inkwell/api/types"
	"github.com/inkwell-team/inkwell/pkg/delta"
)

// DocumentInfo is a structure representing information of a document.
type DocumentInfo struct {
	ID      int64       `json:"id"`
	Title   string      `json:"title"`
	OwnerID int64       `json:"owner_id"`
	Content delta.Delta `json:"content"`

	// ServerSeq increases by one on every applied content update.
	ServerSeq int64     `json:"server_seq"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeepCopy returns a copy of this DocumentInfo.
func (i *DocumentInfo) DeepCopy() *DocumentInfo {
	if i == nil {
		return nil
	}
	copied := *i
	copied.Content = i.Content.DeepCopy()
	return &copied
}

// ToDocument converts the info to a Document.
func (i *DocumentInfo) ToDocument() *types.Document {
	return &types.Document{
		ID:        i.ID,
		Title:     i.Title,
		OwnerID:   i.OwnerID,
		Content:   i.Content.DeepCopy(),
		ServerSeq: i.ServerSeq,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}
