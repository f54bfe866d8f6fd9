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
	"github.com/inkwell-team/inkwell/internal/validation"
)

// CreateUserFields is the input of CreateUserInfo.
type CreateUserFields struct {
	Username string `validate:"required,min=2,max=30"`
	Password string `validate:"required,min=4"`
	Email    string `validate:"required,email"`
	Avatar   string
}

// Validate validates the fields.
func (f CreateUserFields) Validate() error {
	return validation.ValidateStruct(f)
}

// UserInfo is a structure representing information of a user.
type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`

	// Password is stored as given. Credential hardening belongs to the
	// external auth layer.
	Password  string    `json:"password"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// DeepCopy returns a copy of this UserInfo.
func (i *UserInfo) DeepCopy() *UserInfo {
	if i == nil {
		return nil
	}
	copied := *i
	return &copied
}

// ToUser converts the info to a User, dropping the password.
func (i *UserInfo) ToUser() *types.User {
	return &types.User{
		ID:        i.ID,
		Username:  i.Username,
		Email:     i.Email,
		Avatar:    i.Avatar,
		CreatedAt: i.CreatedAt,
	}
}
