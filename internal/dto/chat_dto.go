package dto

import (
	"time"

	"docqa-be/internal/entity"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Question  string    `json:"question"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatSessionResponse carries the full persisted history plus the response
// produced by the current turn, if any.
type ChatSessionResponse struct {
	Id              uuid.UUID             `json:"id"`
	DocumentId      uuid.UUID             `json:"document_id"`
	DocumentName    string                `json:"document_name"`
	Messages        []ChatMessageResponse `json:"messages"`
	CurrentResponse string                `json:"current_response,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// ChatSessionMetadataResponse is the list-view shape: no document text, no
// message bodies.
type ChatSessionMetadataResponse struct {
	Id           uuid.UUID `json:"id"`
	DocumentId   uuid.UUID `json:"document_id"`
	DocumentName string    `json:"document_name"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToChatMessageResponse(message *entity.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		Id:        message.Id,
		Role:      string(message.Role),
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
	}
}

func ToChatSessionResponse(session *entity.ChatSession, currentResponse string) ChatSessionResponse {
	messages := make([]ChatMessageResponse, 0, len(session.Messages))
	for i := range session.Messages {
		messages = append(messages, ToChatMessageResponse(&session.Messages[i]))
	}

	return ChatSessionResponse{
		Id:              session.Id,
		DocumentId:      session.DocumentId,
		DocumentName:    session.DocumentName,
		Messages:        messages,
		CurrentResponse: currentResponse,
		CreatedAt:       session.CreatedAt,
		UpdatedAt:       session.UpdatedAt,
	}
}

func ToChatSessionMetadataResponse(session *entity.ChatSession) ChatSessionMetadataResponse {
	return ChatSessionMetadataResponse{
		Id:           session.Id,
		DocumentId:   session.DocumentId,
		DocumentName: session.DocumentName,
		MessageCount: len(session.Messages),
		CreatedAt:    session.CreatedAt,
		UpdatedAt:    session.UpdatedAt,
	}
}
