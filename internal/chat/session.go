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

package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alan-mat/chatbridge/internal/llm"
)

const (
	emptyPromptText       = "Please enter a prompt before requesting a response."
	missingCredentialText = "Missing %s. Add it to your environment or .env file."
)

type NoticeLevel string

const (
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is an inline message shown to the user after an action.
// Err holds the condition it reports.
type Notice struct {
	Level NoticeLevel
	Text  string
	Err   error
}

// View is the view-model rendered by the presentation layer
// after each user action.
type View struct {
	Title    string
	Caption  string
	Model    string
	Prompt   string
	Response string
	Notice   *Notice

	History        History
	HistoryEnabled bool
}

type SessionConfig struct {
	Title string
	Model string

	// APIKeyEnv names the variable holding the key, used in the
	// missing credential notice.
	APIKeyEnv string

	HistoryEnabled bool
}

// Session handles the user actions of the chat page. It holds no
// per-user state, history is passed in and returned by every action.
type Session struct {
	config    SessionConfig
	completer llm.Completer
}

// NewSession returns a Session sending prompts through c.
// A nil Completer means no api key is available, every submission
// is then answered with a missing credential notice.
func NewSession(config SessionConfig, c llm.Completer) *Session {
	return &Session{
		config:    config,
		completer: c,
	}
}

// Ready reports whether a provider is configured.
func (s *Session) Ready() bool {
	return s.completer != nil
}

// Index returns the view of the initial page.
func (s *Session) Index(h History) View {
	v := s.view(h)
	if !s.Ready() {
		v.Notice = s.missingCredential()
	}
	return v
}

// Submit handles a single submission of prompt. The returned history
// has the new turn in front when the request succeeded and history
// is enabled, otherwise it is h unchanged.
func (s *Session) Submit(ctx context.Context, h History, prompt string) (View, History) {
	v := s.view(h)
	v.Prompt = prompt

	if strings.TrimSpace(prompt) == "" {
		v.Notice = &Notice{Level: NoticeWarning, Text: emptyPromptText, Err: llm.ErrEmptyPrompt}
		return v, h
	}

	if !s.Ready() {
		v.Notice = s.missingCredential()
		return v, h
	}

	slog.Debug("submitting prompt", "model", s.config.Model, "prompt", prompt)
	text, err := llm.Complete(ctx, s.completer, s.config.Model, prompt)
	if err != nil {
		slog.Warn("completion request failed", "model", s.config.Model, "err", err)
		v.Notice = &Notice{Level: NoticeError, Text: err.Error(), Err: err}
		return v, h
	}

	v.Response = text
	if s.config.HistoryEnabled {
		h = Record(h, Turn{Prompt: strings.TrimSpace(prompt), Completion: text})
		v.History = h
	}
	return v, h
}

// Clear handles the clear action, dropping the prompt, the latest
// response and all recorded turns.
func (s *Session) Clear(h History) (View, History) {
	h = Clear(h)
	v := s.Index(h)
	return v, h
}

func (s *Session) view(h History) View {
	v := View{
		Title:          s.config.Title,
		Caption:        fmt.Sprintf("Ask anything and get a response powered by %s.", s.config.Model),
		Model:          s.config.Model,
		HistoryEnabled: s.config.HistoryEnabled,
	}
	if s.config.HistoryEnabled {
		v.History = h
	}
	return v
}

func (s *Session) missingCredential() *Notice {
	return &Notice{
		Level: NoticeError,
		Text:  fmt.Sprintf(missingCredentialText, s.config.APIKeyEnv),
		Err:   llm.ErrMissingCredential,
	}
}
