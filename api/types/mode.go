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

// SuggestionMode selects the generation policy for AI suggestions.
type SuggestionMode string

// Below are the suggestion modes. An empty or unknown mode falls back to
// balanced.
const (
	SuggestionModeBalanced  SuggestionMode = "balanced"
	SuggestionModeGrammar   SuggestionMode = "grammar"
	SuggestionModeContent   SuggestionMode = "content"
	SuggestionModeStructure SuggestionMode = "structure"
)

// OrBalanced returns the mode itself when known, balanced otherwise.
func (m SuggestionMode) OrBalanced() SuggestionMode {
	switch m {
	case SuggestionModeGrammar, SuggestionModeContent, SuggestionModeStructure, SuggestionModeBalanced:
		return m
	}
	return SuggestionModeBalanced
}
