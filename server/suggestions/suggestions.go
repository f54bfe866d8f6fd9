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

// Package suggestions provides the bridge between documents and the
// suggestion generator. Generation degrades to an empty result on any
// generator failure; the editing session is never disturbed by it.
package suggestions

import (
	"context"

	"github.com/inkwell-team/inkwell/api/types"
	"github.com/inkwell-team/inkwell/pkg/delta"
	"github.com/inkwell-team/inkwell/pkg/errors"
	"github.com/inkwell-team/inkwell/server/backend"
	"github.com/inkwell-team/inkwell/server/logging"
)

var (
	// ErrInvalidStatus occurs when a review is requested with a status that
	// is not a terminal one.
	ErrInvalidStatus = errors.InvalidArgument("status must be accepted or rejected")

	// ErrAlreadyReviewed occurs when a suggestion is moved to a terminal
	// status different from the one it already has.
	ErrAlreadyReviewed = errors.FailedPrecond("suggestion already reviewed")
)

// Generate asks the generator for suggestions on the given content and
// persists each returned suggestion as pending. Blank content short-circuits
// without calling the generator, and generator failures are logged and
// reported as an empty result.
func Generate(
	ctx context.Context,
	be *backend.Backend,
	documentID int64,
	content delta.Delta,
	mode types.SuggestionMode,
) ([]*types.Suggestion, error) {
	if content.IsBlank() {
		return []*types.Suggestion{}, nil
	}

	results, err := be.AI.Generate(ctx, content.PlainText(), mode.OrBalanced())
	if err != nil {
		logging.From(ctx).Warnf(
			"suggestion generation failed for document %d: %v", documentID, err,
		)
		if be.Metrics != nil {
			be.Metrics.AddSuggestionGeneration("failed")
		}
		return []*types.Suggestion{}, nil
	}
	if be.Metrics != nil {
		be.Metrics.AddSuggestionGeneration("ok")
	}

	created := make([]*types.Suggestion, 0, len(results))
	for _, result := range results {
		info, err := be.DB.CreateSuggestionInfo(
			ctx,
			documentID,
			types.SuggestionType(result.Type),
			result.OriginalText,
			result.SuggestedText,
		)
		if err != nil {
			return nil, err
		}
		created = append(created, info.ToSuggestion())
	}
	return created, nil
}

// ListSuggestions returns the suggestions of the given document, every
// status included.
func ListSuggestions(
	ctx context.Context,
	be *backend.Backend,
	documentID int64,
) ([]*types.Suggestion, error) {
	infos, err := be.DB.FindSuggestionInfos(ctx, documentID)
	if err != nil {
		return nil, err
	}

	suggestions := make([]*types.Suggestion, 0, len(infos))
	for _, info := range infos {
		suggestions = append(suggestions, info.ToSuggestion())
	}
	return suggestions, nil
}

// UpdateStatus moves the given suggestion to a terminal review status.
// Repeating the review with the same status is a no-op that returns the
// suggestion as-is; any other transition away from a terminal status fails.
func UpdateStatus(
	ctx context.Context,
	be *backend.Backend,
	suggestionID int64,
	status types.SuggestionStatus,
) (*types.Suggestion, error) {
	if !status.Terminal() {
		return nil, ErrInvalidStatus
	}

	info, err := be.DB.FindSuggestionInfo(ctx, suggestionID)
	if err != nil {
		return nil, err
	}
	if info.Status == status {
		return info.ToSuggestion(), nil
	}
	if info.Status.Terminal() {
		return nil, ErrAlreadyReviewed
	}

	info, err = be.DB.UpdateSuggestionStatus(ctx, suggestionID, status)
	if err != nil {
		return nil, err
	}
	return info.ToSuggestion(), nil
}
