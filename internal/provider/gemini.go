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
	"strings"

	"github.com/alan-mat/chatbridge/internal/llm"
	"google.golang.org/genai"
)

// contentGenerator is the subset of [genai.Models] used by the provider.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiProvider struct {
	models contentGenerator
}

func NewGeminiProvider(ctx context.Context, conf Config) (*GeminiProvider, error) {
	cc := &genai.ClientConfig{
		APIKey:  conf.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if conf.HTTPClient != nil {
		cc.HTTPClient = conf.HTTPClient
	}
	if conf.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: conf.BaseURL}
	}

	c, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}

	return &GeminiProvider{
		models: c.Models,
	}, nil
}

func (p GeminiProvider) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	contents := parseMessages(req.Messages)

	res, err := p.models.GenerateContent(ctx, req.Model, contents, nil)
	if err != nil {
		return "", llm.RequestFailedError{Provider: string(TypeGemini), Err: err}
	}

	if res == nil || len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", llm.RequestFailedError{Provider: string(TypeGemini), Err: llm.ErrNoChoices}
	}

	var sb strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}

func parseMessages(msgs []llm.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		var role genai.Role = genai.RoleUser
		if m.Role == llm.MessageRoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return contents
}
