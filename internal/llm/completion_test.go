package llm_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/alan-mat/chatbridge/internal/llm"
)

type mockCompleter struct {
	calls    int
	requests []llm.CompletionRequest
	reply    string
	err      error
}

func (m *mockCompleter) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	m.calls += 1
	m.requests = append(m.requests, req)
	return m.reply, m.err
}

func TestNewPromptRequest(t *testing.T) {
	req, err := llm.NewPromptRequest("openai/gpt-oss-20b", "  What is 2+2?\n")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	expected := llm.CompletionRequest{
		Model: "openai/gpt-oss-20b",
		Messages: []llm.Message{
			{Role: llm.MessageRoleUser, Content: "What is 2+2?"},
		},
	}
	if !reflect.DeepEqual(req, expected) {
		t.Errorf("invalid request, expected '%+v', got '%+v'", expected, req)
	}
}

func TestNewPromptRequestBlank(t *testing.T) {
	for _, prompt := range []string{"", " ", "\t\n", "   \r\n  "} {
		_, err := llm.NewPromptRequest("model", prompt)
		if !errors.Is(err, llm.ErrEmptyPrompt) {
			t.Errorf("prompt '%q', expected ErrEmptyPrompt, got %v", prompt, err)
		}
	}
}

func TestCompleteBlankPromptSkipsRequest(t *testing.T) {
	m := &mockCompleter{reply: "unused"}
	for _, prompt := range []string{"", "  ", "\n\t"} {
		_, err := llm.Complete(context.Background(), m, "model", prompt)
		if !errors.Is(err, llm.ErrEmptyPrompt) {
			t.Errorf("expected ErrEmptyPrompt, got %v", err)
		}
	}
	if m.calls != 0 {
		t.Errorf("expected no calls to the completer, got %d", m.calls)
	}
}

func TestCompleteNilCompleter(t *testing.T) {
	_, err := llm.Complete(context.Background(), nil, "model", "hello")
	if !errors.Is(err, llm.ErrMissingCredential) {
		t.Errorf("expected ErrMissingCredential, got %v", err)
	}
}

func TestCompleteReturnsVerbatim(t *testing.T) {
	reply := "  2 + 2 = **4**\n\n"
	m := &mockCompleter{reply: reply}

	got, err := llm.Complete(context.Background(), m, "openai/gpt-oss-120b", "What is 2+2?")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got != reply {
		t.Errorf("expected reply '%q', got '%q'", reply, got)
	}
	if m.calls != 1 {
		t.Fatalf("expected exactly one call, got %d", m.calls)
	}
	if len(m.requests[0].Messages) != 1 {
		t.Fatalf("expected a single message, got %d", len(m.requests[0].Messages))
	}
	if m.requests[0].Model != "openai/gpt-oss-120b" {
		t.Errorf("expected model 'openai/gpt-oss-120b', got '%s'", m.requests[0].Model)
	}
}

func TestCompleteFailure(t *testing.T) {
	cause := errors.New("connection refused")
	m := &mockCompleter{err: llm.RequestFailedError{Provider: "groq", Err: cause}}

	_, err := llm.Complete(context.Background(), m, "model", "hello")

	var rf llm.RequestFailedError
	if !errors.As(err, &rf) {
		t.Fatalf("expected RequestFailedError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected error to wrap '%v'", cause)
	}
	if err.Error() != "groq request failed: connection refused" {
		t.Errorf("unexpected error message '%s'", err.Error())
	}
	if m.calls != 1 {
		t.Errorf("expected a single attempt, got %d", m.calls)
	}
}
