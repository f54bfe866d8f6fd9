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

// Package ai provides the client for generating writing suggestions with an
// external language model.
package ai

import (
	"context"

	"github.com/inkwell-team/inkwell/api/types"
)

// Result is one suggestion returned by the model. Explanation is shown to
// the requester but not persisted.
type Result struct {
	Type          string `json:"type"`
	OriginalText  string `json:"original_text"`
	SuggestedText string `json:"suggested_text"`
	Explanation   string `json:"explanation"`
}

// Generator generates writing suggestions for plain text. Implementations
// may fail with transport or parse errors; callers are expected to degrade
// to an empty result rather than surfacing the failure.
type Generator interface {
	Generate(ctx context.Context, plainText string, mode types.SuggestionMode) ([]Result, error)
}

// Config is the configuration for the suggestion generation client.
type Config struct {
	// APIKey is the API key of the model provider.
	APIKey string `yaml:"APIKey"`

	// Model is the model used for generation.
	Model string `yaml:"Model"`
}

// Validate validates this config.
func (c *Config) Validate() error {
	return nil
}
