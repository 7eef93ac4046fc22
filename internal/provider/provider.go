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
	"errors"
	"fmt"
	"log/slog"
	gohttp "net/http"
	"slices"
	"strings"

	"github.com/alan-mat/chatbridge/internal/llm"
	"github.com/alan-mat/chatbridge/internal/registry"
)

var (
	ErrInvalidProviderType = errors.New("no provider found for given type")
)

type Type string

const (
	TypeGroq   Type = "groq"
	TypeOpenAI Type = "openai"
	TypeGemini Type = "gemini"
)

// Config holds everything needed to construct a provider bridge.
type Config struct {
	Type   Type
	APIKey string

	// BaseURL overrides the default endpoint of the provider.
	BaseURL string

	// HTTPClient is used for all outbound requests. If nil,
	// the SDK default client is used.
	HTTPClient *gohttp.Client
}

type defaults struct {
	model     string
	apiKeyEnv string
	models    []string
}

var providerDefaults = map[Type]defaults{
	TypeGroq: {
		model:     "openai/gpt-oss-20b",
		apiKeyEnv: "GROQ_API_KEY",
		models: []string{
			"openai/gpt-oss-20b",
			"openai/gpt-oss-120b",
			"llama-3.1-8b-instant",
			"llama-3.3-70b-versatile",
		},
	},
	TypeOpenAI: {
		model:     "gpt-4.1-mini",
		apiKeyEnv: "OPENAI_API_KEY",
		models: []string{
			"gpt-4.1-mini",
			"gpt-4.1-nano",
			"gpt-4o",
			"gpt-4o-mini",
		},
	},
	TypeGemini: {
		model:     "gemini-2.0-flash",
		apiKeyEnv: "GEMINI_API_KEY",
		models: []string{
			"gemini-2.0-flash",
			"gemini-2.0-flash-lite",
		},
	},
}

// models maps a supported model identifier to the qualified provider type.
var models = registry.New[string, []Type]()

func init() {
	for t, d := range providerDefaults {
		for _, m := range d.models {
			RegisterModel(t, m)
		}
	}
}

// RegisterModel marks model as a supported identifier for provider type t.
func RegisterModel(t Type, model string) {
	models.Update(model, func(types []Type, _ bool) []Type {
		if slices.Contains(types, t) {
			return types
		}
		return append(slices.Clone(types), t)
	})
	slog.Debug("registering model", "provider", t, "model", model)
}

// SupportedModel reports whether model is registered for provider type t.
func SupportedModel(t Type, model string) bool {
	types, ok := models.Get(model)
	if !ok {
		return false
	}
	return slices.Contains(types, t)
}

// Models returns the sorted list of supported models for provider type t.
func Models(t Type) []string {
	out := make([]string, 0)
	for _, m := range models.List() {
		if SupportedModel(t, m) {
			out = append(out, m)
		}
	}
	slices.Sort(out)
	return out
}

// ParseType parses a provider name, case insensitive.
// An empty name resolves to [TypeGroq].
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return TypeGroq, nil
	}

	t := Type(name)
	if _, ok := providerDefaults[t]; !ok {
		return "", fmt.Errorf("%w: '%s'", ErrInvalidProviderType, name)
	}
	return t, nil
}

func DefaultModel(t Type) string {
	return providerDefaults[t].model
}

// DefaultAPIKeyEnv returns the name of the environment variable that
// holds the api key for provider type t.
func DefaultAPIKeyEnv(t Type) string {
	return providerDefaults[t].apiKeyEnv
}

// New returns the completion bridge for the configured provider type.
// It returns [llm.ErrMissingCredential] if no api key is set.
func New(ctx context.Context, conf Config) (llm.Completer, error) {
	if strings.TrimSpace(conf.APIKey) == "" {
		return nil, llm.ErrMissingCredential
	}

	switch conf.Type {
	case TypeGroq:
		if conf.BaseURL == "" {
			conf.BaseURL = GroqBaseURL
		}
		return NewOpenAIProvider(string(TypeGroq), conf), nil
	case TypeOpenAI:
		return NewOpenAIProvider(string(TypeOpenAI), conf), nil
	case TypeGemini:
		p, err := NewGeminiProvider(ctx, conf)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidProviderType, conf.Type)
	}
}
