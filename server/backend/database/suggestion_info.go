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

// SuggestionInfo is a structure representing information of an AI
// suggestion. Suggestions are never deleted; accepted and rejected are
// terminal states retained for history.
type SuggestionInfo struct {
	ID            int64                  `json:"id"`
	DocumentID    int64                  `json:"document_id"`
	Type          types.SuggestionType   `json:"type"`
	OriginalText  string                 `json:"original_text"`
	SuggestedText string                 `json:"suggested_text"`
	Status        types.SuggestionStatus `json:"status"`
	CreatedAt     time.Time              `json:"created_at"`
}

// DeepCopy returns a copy of this SuggestionInfo.
func (i *SuggestionInfo) DeepCopy() *SuggestionInfo {
	if i == nil {
		return nil
	}
	copied := *i
	return &copied
}

// ToSuggestion converts the info to a Suggestion.
func (i *SuggestionInfo) ToSuggestion() *types.Suggestion {
	return &types.Suggestion{
		ID:            i.ID,
		DocumentID:    i.DocumentID,
		Type:          i.Type,
		OriginalText:  i.OriginalText,
		SuggestedText: i.SuggestedText,
		Status:        i.Status,
		CreatedAt:     i.CreatedAt,
	}
}
