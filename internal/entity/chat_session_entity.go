package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession snapshots the document name and extracted text at creation
// time, so later changes to the document record never shift the context of
// an ongoing conversation.
type ChatSession struct {
	Id           uuid.UUID
	DocumentId   uuid.UUID
	DocumentName string
	DocumentText string
	Messages     []ChatMessage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LastMessage returns the newest message, or nil for an empty history.
func (s *ChatSession) LastMessage() *ChatMessage {
	if len(s.Messages) == 0 {
		return nil
	}
	return &s.Messages[len(s.Messages)-1]
}
