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

// Permission is the access level of a collaborator on a document.
type Permission string

// Below are the permissions a collaborator can hold.
const (
	PermissionRead  Permission = "read"
	PermissionWrite Permission = "write"
	PermissionAdmin Permission = "admin"
)

// Valid reports whether the permission is one of the known levels.
func (p Permission) Valid() bool {
	switch p {
	case PermissionRead, PermissionWrite, PermissionAdmin:
		return true
	}
	return false
}

// Collaborator is a per-document access grant for a user.
type Collaborator struct {
	// ID is the unique ID of the grant.
	ID int64 `json:"id"`

	// DocumentID is the ID of the document the grant applies to.
	DocumentID int64 `json:"documentId"`

	// UserID is the ID of the granted user.
	UserID int64 `json:"userId"`

	// Permission is the access level of the grant.
	Permission Permission `json:"permission"`

	// AddedAt is the time when the grant was created.
	AddedAt time.Time `json:"addedAt"`
}
