package chat_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alan-mat/chatbridge/internal/chat"
	"github.com/alan-mat/chatbridge/internal/llm"
)

type mockCompleter struct {
	calls   int
	prompts []string
	replies []string
	err     error
}

func (m *mockCompleter) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	m.calls += 1
	m.prompts = append(m.prompts, req.Messages[0].Content)
	if m.err != nil {
		return "", m.err
	}
	if len(m.replies) == 0 {
		return "", nil
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return reply, nil
}

func newSession(c llm.Completer, history bool) *chat.Session {
	return chat.NewSession(chat.SessionConfig{
		Title:          "Groq Chat Playground",
		Model:          "openai/gpt-oss-20b",
		APIKeyEnv:      "GROQ_API_KEY",
		HistoryEnabled: history,
	}, c)
}

func TestSubmitEmptyPrompt(t *testing.T) {
	m := &mockCompleter{}
	s := newSession(m, true)

	for _, prompt := range []string{"", "   ", "\n\t "} {
		v, h := s.Submit(context.Background(), nil, prompt)
		if v.Notice == nil || !errors.Is(v.Notice.Err, llm.ErrEmptyPrompt) {
			t.Errorf("prompt '%q', expected EmptyPrompt notice, got '%+v'", prompt, v.Notice)
		}
		if v.Notice != nil && v.Notice.Level != chat.NoticeWarning {
			t.Errorf("expected warning level, got '%s'", v.Notice.Level)
		}
		if len(h) != 0 {
			t.Errorf("history must stay empty, got %d turns", len(h))
		}
	}
	if m.calls != 0 {
		t.Errorf("expected no requests, got %d", m.calls)
	}
}

func TestSubmitMissingCredential(t *testing.T) {
	s := newSession(nil, true)

	v, _ := s.Submit(context.Background(), nil, "What is 2+2?")
	if v.Notice == nil || !errors.Is(v.Notice.Err, llm.ErrMissingCredential) {
		t.Fatalf("expected MissingCredential notice, got '%+v'", v.Notice)
	}
	expected := "Missing GROQ_API_KEY. Add it to your environment or .env file."
	if v.Notice.Text != expected {
		t.Errorf("expected notice '%s', got '%s'", expected, v.Notice.Text)
	}

	index := s.Index(nil)
	if index.Notice == nil || !errors.Is(index.Notice.Err, llm.ErrMissingCredential) {
		t.Errorf("index must report the missing credential, got '%+v'", index.Notice)
	}
}

func TestSubmitSuccess(t *testing.T) {
	m := &mockCompleter{replies: []string{"4"}}
	s := newSession(m, false)

	v, h := s.Submit(context.Background(), nil, "What is 2+2?")
	if v.Notice != nil {
		t.Fatalf("expected no notice, got '%+v'", v.Notice)
	}
	if v.Response != "4" {
		t.Errorf("expected response '4', got '%s'", v.Response)
	}
	if v.Prompt != "What is 2+2?" {
		t.Errorf("expected prompt to be kept in the view, got '%s'", v.Prompt)
	}
	if v.Caption != "Ask anything and get a response powered by openai/gpt-oss-20b." {
		t.Errorf("unexpected caption '%s'", v.Caption)
	}
	if len(h) != 0 || len(v.History) != 0 {
		t.Error("history must not be recorded when disabled")
	}
	if m.calls != 1 {
		t.Errorf("expected exactly one request, got %d", m.calls)
	}
}

func TestSubmitRequestFailed(t *testing.T) {
	m := &mockCompleter{err: llm.RequestFailedError{Provider: "groq", Err: errors.New("401 Unauthorized")}}
	s := newSession(m, true)

	prior := chat.History{{Prompt: "old", Completion: "answer"}}
	v, h := s.Submit(context.Background(), prior, "hello")

	if v.Notice == nil || v.Notice.Level != chat.NoticeError {
		t.Fatalf("expected error notice, got '%+v'", v.Notice)
	}
	if !errors.As(v.Notice.Err, new(llm.RequestFailedError)) {
		t.Errorf("expected RequestFailedError, got '%v'", v.Notice.Err)
	}
	if v.Notice.Text != "groq request failed: 401 Unauthorized" {
		t.Errorf("unexpected notice text '%s'", v.Notice.Text)
	}
	if len(h) != 1 {
		t.Errorf("failed request must not change the history, got %d turns", len(h))
	}
	if m.calls != 1 {
		t.Errorf("expected a single attempt, got %d", m.calls)
	}
}

func TestSubmitRecordsHistory(t *testing.T) {
	m := &mockCompleter{replies: []string{"4", "6"}}
	s := newSession(m, true)

	var h chat.History
	_, h = s.Submit(context.Background(), h, "What is 2+2?")
	v, h := s.Submit(context.Background(), h, " What is 3+3? ")

	if len(h) != 2 {
		t.Fatalf("expected two turns, got %d", len(h))
	}
	if h[0].Prompt != "What is 3+3?" || h[0].Completion != "6" {
		t.Errorf("expected most recent turn first, got '%+v'", h[0])
	}
	if h[1].Prompt != "What is 2+2?" || h[1].Completion != "4" {
		t.Errorf("unexpected older turn '%+v'", h[1])
	}
	if len(v.History) != 2 {
		t.Errorf("view must carry the history, got %d turns", len(v.History))
	}
}

func TestClearAction(t *testing.T) {
	m := &mockCompleter{replies: []string{"a", "b", "c"}}
	s := newSession(m, true)

	var h chat.History
	for _, p := range []string{"one", "two", "three"} {
		_, h = s.Submit(context.Background(), h, p)
	}

	v, h := s.Clear(h)
	if len(h) != 0 || len(v.History) != 0 {
		t.Errorf("expected empty history after clear, got %d turns", len(h))
	}
	if v.Prompt != "" || v.Response != "" || v.Notice != nil {
		t.Errorf("expected a blank view after clear, got '%+v'", v)
	}
}
