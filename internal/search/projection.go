package search

import (
	"time"

	"docqa-be/internal/entity"
	"docqa-be/pkg/utils"
)

const lastMessageSnippetLen = 160

// SessionProjection is the denormalized, disposable search record for one
// chat session. It is never authoritative; the session rows in Postgres can
// rebuild it at any time.
type SessionProjection struct {
	Id                string    `json:"id"`
	DocumentName      string    `json:"documentName"`
	DocumentId        string    `json:"documentId"`
	CreatedAt         time.Time `json:"createdAt"`
	LastInteractionAt time.Time `json:"lastInteractionAt"`
	MessageCount      int       `json:"messageCount"`
	LastMessage       string    `json:"lastMessage"`
}

func ProjectSession(session *entity.ChatSession) SessionProjection {
	lastMessage := ""
	if last := session.LastMessage(); last != nil {
		lastMessage = utils.Snippet(last.Content, lastMessageSnippetLen)
	}

	return SessionProjection{
		Id:                session.Id.String(),
		DocumentName:      session.DocumentName,
		DocumentId:        session.DocumentId.String(),
		CreatedAt:         session.CreatedAt,
		LastInteractionAt: session.UpdatedAt,
		MessageCount:      len(session.Messages),
		LastMessage:       lastMessage,
	}
}
