package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role is a closed set. Clients never supply roles; every value originates
// from the orchestrator itself.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is immutable once appended to a session.
type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          Role
	Content       string
	CreatedAt     time.Time
}
