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

// Package users provides the user related business logic.
package users

import (
	"context"

	"github.com/inkwell-team/inkwell/api/types"
	"github.com/inkwell-team/inkwell/pkg/errors"
	"github.com/inkwell-team/inkwell/server/backend"
	"github.com/inkwell-team/inkwell/server/backend/database"
)

// ErrInvalidCredentials occurs when the username or the password does not
// match a registered user.
var ErrInvalidCredentials = errors.Unauthenticated("invalid credentials")

// SignUp signs up a new user.
func SignUp(
	ctx context.Context,
	be *backend.Backend,
	fields database.CreateUserFields,
) (*types.User, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	info, err := be.DB.CreateUserInfo(ctx, fields)
	if err != nil {
		return nil, err
	}
	return info.ToUser(), nil
}

// LogIn checks the given credentials and returns the matching user.
func LogIn(
	ctx context.Context,
	be *backend.Backend,
	username,
	password string,
) (*types.User, error) {
	info, err := be.DB.FindUserInfoByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if info.Password != password {
		return nil, ErrInvalidCredentials
	}

	return info.ToUser(), nil
}

// GetUser returns the user of the given ID.
func GetUser(
	ctx context.Context,
	be *backend.Backend,
	userID int64,
) (*types.User, error) {
	info, err := be.DB.FindUserInfo(ctx, userID)
	if err != nil {
		return nil, err
	}
	return info.ToUser(), nil
}
