// Package chat holds the message types exchanged with LLM backends.
package chat

const (
	RoleUser      = "user"      // player
	RoleAssistant = "assistant" // game master
	RoleSystem    = "system"    // instructions and state context
)

// Message is a single chat message in an LLM conversation. The shape follows
// the chat-completions convention shared by every supported backend.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// System returns a system-role message.
func System(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// User returns a user-role message.
func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Assistant returns an assistant-role message.
func Assistant(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}
