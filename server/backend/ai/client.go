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

package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/inkwell-team/inkwell/api/types"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gpt-4o"

const (
	generationTemperature = 0.7
	generationMaxTokens   = 1000
)

const basePrompt = "You are an AI writing assistant tasked with improving a document. "

// Client generates suggestions using the OpenAI chat completion API.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new generation client with the given config.
func NewClient(conf *Config) *Client {
	model := conf.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		client: openai.NewClient(conf.APIKey),
		model:  model,
	}
}

// Generate asks the model for suggestions on the given plain text.
func (c *Client) Generate(
	ctx context.Context,
	plainText string,
	mode types.SuggestionMode,
) ([]Result, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(mode)},
			{Role: openai.ChatMessageRoleUser, Content: plainText},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: generationTemperature,
		MaxTokens:   generationMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	return ParseResults(resp.Choices[0].Message.Content)
}

// ParseResults parses the model output, a JSON object of the form
// {"suggestions": [...]}.
func ParseResults(content string) ([]Result, error) {
	var parsed struct {
		Suggestions []Result `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}
	return parsed.Suggestions, nil
}

// systemPrompt returns the generation policy prompt for the given mode.
func systemPrompt(mode types.SuggestionMode) string {
	switch mode.OrBalanced() {
	case types.SuggestionModeGrammar:
		return basePrompt + "Focus on grammar, spelling, and punctuation issues. " +
			"Provide specific suggestions to improve these aspects. " +
			"Respond with JSON in the following format: " +
			`{ 'suggestions': [{ 'type': 'grammar', 'original_text': 'text with error', ` +
			`'suggested_text': 'corrected text', 'explanation': 'explanation of the change' }] }`
	case types.SuggestionModeContent:
		return basePrompt + "Focus on content improvements like clarity, persuasiveness, " +
			"and information completeness. Suggest additional points, examples, or evidence " +
			"that could strengthen the document. " +
			"Respond with JSON in the following format: " +
			`{ 'suggestions': [{ 'type': 'content', 'suggested_text': 'suggested addition or modification', ` +
			`'explanation': 'explanation of why this would improve the document' }] }`
	case types.SuggestionModeStructure:
		return basePrompt + "Focus on document structure, organization, and flow. " +
			"Suggest improvements to paragraph structure, section organization, or logical flow. " +
			"Respond with JSON in the following format: " +
			`{ 'suggestions': [{ 'type': 'structure', 'suggested_text': 'suggestion for restructuring', ` +
			`'explanation': 'explanation of why this would improve the document' }] }`
	default:
		return basePrompt + "Provide a balanced set of suggestions covering grammar, content, " +
			"and structure. Limit to 3-5 most important suggestions. " +
			"Respond with JSON in the following format: " +
			`{ 'suggestions': [{ 'type': 'grammar|content|structure', 'original_text': 'original text if applicable', ` +
			`'suggested_text': 'suggested text', 'explanation': 'explanation of the suggestion' }] }`
	}
}
