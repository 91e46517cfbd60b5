package models

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message captures a single role-tagged entry in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
