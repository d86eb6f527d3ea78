package search

import (
	"strings"
	"testing"
	"time"

	"docqa-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestProjectSession(t *testing.T) {
	now := time.Now()
	session := &entity.ChatSession{
		Id:           uuid.New(),
		DocumentId:   uuid.New(),
		DocumentName: "manual.pdf",
		CreatedAt:    now.Add(-time.Hour),
		UpdatedAt:    now,
		Messages: []entity.ChatMessage{
			{Role: entity.RoleUser, Content: "q"},
			{Role: entity.RoleAssistant, Content: "the final answer"},
		},
	}

	projection := ProjectSession(session)

	assert.Equal(t, session.Id.String(), projection.Id)
	assert.Equal(t, session.DocumentId.String(), projection.DocumentId)
	assert.Equal(t, "manual.pdf", projection.DocumentName)
	assert.Equal(t, 2, projection.MessageCount)
	assert.Equal(t, "the final answer", projection.LastMessage)
	assert.Equal(t, session.UpdatedAt, projection.LastInteractionAt)
}

func TestProjectSessionEmptyHistory(t *testing.T) {
	session := &entity.ChatSession{Id: uuid.New(), DocumentId: uuid.New()}

	projection := ProjectSession(session)

	assert.Equal(t, 0, projection.MessageCount)
	assert.Empty(t, projection.LastMessage)
}

func TestProjectSessionSnipsLongLastMessage(t *testing.T) {
	session := &entity.ChatSession{
		Id:         uuid.New(),
		DocumentId: uuid.New(),
		Messages: []entity.ChatMessage{
			{Role: entity.RoleAssistant, Content: strings.Repeat("x", 500)},
		},
	}

	projection := ProjectSession(session)

	assert.LessOrEqual(t, len([]rune(projection.LastMessage)), lastMessageSnippetLen)
	assert.True(t, strings.HasSuffix(projection.LastMessage, "..."))
}
