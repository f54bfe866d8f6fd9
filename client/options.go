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

package client

import (
	"time"

	"go.uber.org/zap"
)

// Below are the default values of the client options.
const (
	DefaultMaxReconnectAttempts  = 5
	DefaultReconnectBaseInterval = time.Second
)

// Options configures how we set up the client.
type Options struct {
	// MaxReconnectAttempts is the number of reconnection attempts made
	// after a broken connection before the client gives up.
	MaxReconnectAttempts int

	// ReconnectBaseInterval is the wait before the first reconnection
	// attempt; it doubles on every further attempt.
	ReconnectBaseInterval time.Duration

	// Logger is the Logger of the client.
	Logger *zap.Logger
}

// Option configures Options.
type Option func(*Options)

// WithMaxReconnectAttempts configures the number of reconnection attempts.
func WithMaxReconnectAttempts(attempts int) Option {
	return func(o *Options) { o.MaxReconnectAttempts = attempts }
}

// WithReconnectBaseInterval configures the initial reconnection wait.
func WithReconnectBaseInterval(interval time.Duration) Option {
	return func(o *Options) { o.ReconnectBaseInterval = interval }
}

// WithLogger configures the logger of the client.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}
