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

// SuggestionType classifies what aspect of the document a suggestion
// addresses.
type SuggestionType string

// Below are the known suggestion types. Unknown types coming back from the
// model are stored as-is.
const (
	SuggestionTypeGrammar   SuggestionType = "grammar"
	SuggestionTypeContent   SuggestionType = "content"
	SuggestionTypeStructure SuggestionType = "structure"
)

// SuggestionStatus is the review state of a suggestion. Accepted and
// rejected are terminal; suggestions are never deleted.
type SuggestionStatus string

// Below are the suggestion statuses.
const (
	SuggestionStatusPending  SuggestionStatus = "pending"
	SuggestionStatusAccepted SuggestionStatus = "accepted"
	SuggestionStatusRejected SuggestionStatus = "rejected"
)

// Terminal reports whether the status is a terminal review state.
func (s SuggestionStatus) Terminal() bool {
	return s == SuggestionStatusAccepted || s == SuggestionStatusRejected
}

// Suggestion is an AI-proposed edit to a document.
type Suggestion struct {
	// ID is the unique ID of the suggestion.
	ID int64 `json:"id"`

	// DocumentID is the ID of the document the suggestion applies to.
	DocumentID int64 `json:"documentId"`

	// Type classifies the suggestion.
	Type SuggestionType `json:"type"`

	// OriginalText is the text the suggestion replaces, when applicable.
	OriginalText string `json:"originalText,omitempty"`

	// SuggestedText is the proposed text.
	SuggestedText string `json:"suggestedText"`

	// Status is the review state of the suggestion.
	Status SuggestionStatus `json:"status"`

	// CreatedAt is the time when the suggestion was created.
	CreatedAt time.Time `json:"createdAt"`
}
