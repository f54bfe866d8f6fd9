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

package errors

// StatusCode represents the category of an error.
type StatusCode int

// Below are the status codes that classify errors in Inkwell.
const (
	// ErrCodeInvalidArgument means the client supplied an invalid input.
	ErrCodeInvalidArgument StatusCode = iota + 1

	// ErrCodeNotFound means a requested resource does not exist.
	ErrCodeNotFound

	// ErrCodeAlreadyExists means a resource the client tried to create
	// already exists.
	ErrCodeAlreadyExists

	// ErrCodeFailedPrecondition means the system is not in the state
	// required for the operation.
	ErrCodeFailedPrecondition

	// ErrCodeUnauthenticated means the operation requires authentication
	// that was not provided or is invalid.
	ErrCodeUnauthenticated

	// ErrCodePermissionDenied means the caller lacks the necessary
	// permission.
	ErrCodePermissionDenied

	// ErrCodeUnavailable means the service or a dependency is temporarily
	// unavailable.
	ErrCodeUnavailable

	// ErrCodeInternal means an unexpected server-side failure occurred.
	ErrCodeInternal
)

// String returns the string representation of the status code.
func (c StatusCode) String() string {
	switch c {
	case ErrCodeInvalidArgument:
		return "InvalidArgument"
	case ErrCodeNotFound:
		return "NotFound"
	case ErrCodeAlreadyExists:
		return "AlreadyExists"
	case ErrCodeFailedPrecondition:
		return "FailedPrecondition"
	case ErrCodeUnauthenticated:
		return "Unauthenticated"
	case ErrCodePermissionDenied:
		return "PermissionDenied"
	case ErrCodeUnavailable:
		return "Unavailable"
	case ErrCodeInternal:
		return "Internal"
	default:
		return "Unknown"
	}
}
