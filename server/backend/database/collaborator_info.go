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
)

// CollaboratorInfo is a structure representing an access grant of a user on
// a document.
type CollaboratorInfo struct {
	ID         int64            `json:"id"`
	DocumentID int64            `json:"document_id"`
	UserID     int64            `json:"user_id"`
	Permission types.Permission `json:"permission"`
	AddedAt    time.Time        `json:"added_at"`
}

// DeepCopy returns a copy of this CollaboratorInfo.
func (i *CollaboratorInfo) DeepCopy() *CollaboratorInfo {
	if i == nil {
		return nil
	}
	copied := *i
	return &copied
}

// ToCollaborator converts the info to a Collaborator.
func (i *CollaboratorInfo) ToCollaborator() *types.Collaborator {
	return &types.Collaborator{
		ID:         i.ID,
		DocumentID: i.DocumentID,
		UserID:     i.UserID,
		Permission: i.Permission,
		AddedAt:    i.AddedAt,
	}
}
