package domain

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message es un mensaje con rol enviado al backend de generacion.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}
