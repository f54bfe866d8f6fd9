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

// Package types provides the data model shared by the realtime protocol and
// the REST surface.
package types

import "time"

// User is an account that can own and edit documents. The password never
// leaves the storage layer.
type User struct {
	// ID is the unique ID of the user.
	ID int64 `json:"id"`

	// Username is the unique username of the user.
	Username string `json:"username"`

	// Email is the email address of the user.
	Email string `json:"email"`

	// Avatar is an optional URL of the user's avatar image.
	Avatar string `json:"avatar,omitempty"`

	// CreatedAt is the time when the user was created.
	CreatedAt time.Time `json:"createdAt"`
}
