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

package provider

import (
	"context"

	"github.com/alan-mat/chatbridge/internal/llm"
	"github.com/sashabaranov/go-openai"
)

// GroqBaseURL is the OpenAI compatible endpoint of the Groq API.
const GroqBaseURL = "https://api.groq.com/openai/v1"

// chatCompleter is the subset of [openai.Client] used by the provider.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider talks to any OpenAI compatible chat completions
// endpoint, Groq included.
type OpenAIProvider struct {
	name   string
	client chatCompleter
}

func NewOpenAIProvider(name string, conf Config) *OpenAIProvider {
	oc := openai.DefaultConfig(conf.APIKey)
	if conf.BaseURL != "" {
		oc.BaseURL = conf.BaseURL
	}
	if conf.HTTPClient != nil {
		oc.HTTPClient = conf.HTTPClient
	}

	return &OpenAIProvider{
		name:   name,
		client: openai.NewClientWithConfig(oc),
	}
}

func (p OpenAIProvider) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	openaiReq := openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: p.parseMessages(req.Messages),
	}

	res, err := p.client.CreateChatCompletion(ctx, openaiReq)
	if err != nil {
		return "", llm.RequestFailedError{Provider: p.name, Err: err}
	}

	if len(res.Choices) == 0 {
		return "", llm.RequestFailedError{Provider: p.name, Err: llm.ErrNoChoices}
	}

	return res.Choices[0].Message.Content, nil
}

func (p OpenAIProvider) parseMessages(msgs []llm.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(msgs))
	for i, m := range msgs {
		role := openai.ChatMessageRoleUser
		if m.Role == llm.MessageRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		out[i] = openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		}
	}
	return out
}
