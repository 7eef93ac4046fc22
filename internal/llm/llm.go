package llm

// Message contains a single chat message sent to a provider.
type Message struct {
	Role    MessageRole
	Content string
}

// TextMessage is a helper function that returns a Message
// with the given role and text content.
func TextMessage(role MessageRole, text string) Message {
	return Message{
		Role:    role,
		Content: text,
	}
}

// MessageRole defines the source of the message.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

func (r MessageRole) String() string {
	return string(r)
}
