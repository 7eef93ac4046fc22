package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/alan-mat/chatbridge/internal/llm"
	"google.golang.org/genai"
)

type mockGenerator struct {
	calls    int
	model    string
	contents []*genai.Content
	res      *genai.GenerateContentResponse
	err      error
}

func (m *mockGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.calls += 1
	m.model = model
	m.contents = contents
	return m.res, m.err
}

func TestGeminiProviderComplete(t *testing.T) {
	m := &mockGenerator{
		res: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []*genai.Part{{Text: "2 + 2 "}, {Text: "= 4\n"}}}},
				{Content: &genai.Content{Parts: []*genai.Part{{Text: "ignored"}}}},
			},
		},
	}
	p := GeminiProvider{models: m}

	got, err := llm.Complete(context.Background(), p, "gemini-2.0-flash", " What is 2+2? ")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got != "2 + 2 = 4\n" {
		t.Errorf("expected first candidate text, got '%q'", got)
	}
	if m.calls != 1 {
		t.Errorf("expected exactly one call, got %d", m.calls)
	}
	if m.model != "gemini-2.0-flash" {
		t.Errorf("expected model 'gemini-2.0-flash', got '%s'", m.model)
	}
	if len(m.contents) != 1 || m.contents[0].Role != string(genai.RoleUser) {
		t.Fatalf("expected a single user content, got %+v", m.contents)
	}
	if m.contents[0].Parts[0].Text != "What is 2+2?" {
		t.Errorf("expected trimmed prompt, got '%q'", m.contents[0].Parts[0].Text)
	}
}

func TestGeminiProviderNoCandidates(t *testing.T) {
	for _, res := range []*genai.GenerateContentResponse{
		nil,
		{},
		{Candidates: []*genai.Candidate{{}}},
	} {
		p := GeminiProvider{models: &mockGenerator{res: res}}
		_, err := p.Complete(context.Background(), llm.CompletionRequest{Model: "gemini-2.0-flash"})
		if !errors.Is(err, llm.ErrNoChoices) {
			t.Errorf("expected ErrNoChoices, got %v", err)
		}
	}
}

func TestGeminiProviderFailure(t *testing.T) {
	cause := errors.New("quota exceeded")
	m := &mockGenerator{err: cause}
	p := GeminiProvider{models: m}

	_, err := llm.Complete(context.Background(), p, "gemini-2.0-flash", "hello")

	var rf llm.RequestFailedError
	if !errors.As(err, &rf) {
		t.Fatalf("expected RequestFailedError, got %v", err)
	}
	if rf.Provider != "gemini" || !errors.Is(err, cause) {
		t.Errorf("unexpected error '%v'", err)
	}
	if m.calls != 1 {
		t.Errorf("expected a single attempt, got %d", m.calls)
	}
}

func TestParseMessagesRoles(t *testing.T) {
	contents := parseMessages([]llm.Message{
		llm.TextMessage(llm.MessageRoleUser, "Hello"),
		llm.TextMessage(llm.MessageRoleAssistant, "Hi there"),
	})
	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}
	if contents[0].Role != string(genai.RoleUser) || contents[1].Role != string(genai.RoleModel) {
		t.Errorf("unexpected roles '%s', '%s'", contents[0].Role, contents[1].Role)
	}
}
