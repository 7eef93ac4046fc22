// Copyright 2025 Alan Matykiewicz
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell copies of the
// Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.

package llm

import (
	"context"
	"strings"
)

// CompletionRequest is a conversation submitted to a provider
// for a single, non-streamed completion.
type CompletionRequest struct {
	Model    string
	Messages []Message
}

// Completer is implemented by every provider bridge.
// Complete returns the text content of the first choice, unmodified.
// Failures are reported as [RequestFailedError].
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// NewPromptRequest builds a single-turn request holding exactly one
// user message with the trimmed prompt as its content.
// It returns [ErrEmptyPrompt] if the prompt is blank.
func NewPromptRequest(model, prompt string) (CompletionRequest, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return CompletionRequest{}, ErrEmptyPrompt
	}

	return CompletionRequest{
		Model: model,
		Messages: []Message{
			TextMessage(MessageRoleUser, prompt),
		},
	}, nil
}

// Complete sends prompt to the provider behind c as a single-turn
// conversation and returns the completion text. No request is issued
// for a blank prompt or a nil Completer.
func Complete(ctx context.Context, c Completer, model, prompt string) (string, error) {
	req, err := NewPromptRequest(model, prompt)
	if err != nil {
		return "", err
	}

	if c == nil {
		return "", ErrMissingCredential
	}

	return c.Complete(ctx, req)
}
