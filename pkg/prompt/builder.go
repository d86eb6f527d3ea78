package prompt

import (
	"strings"

	"docqa-be/internal/entity"
)

// HistoryWindow bounds how many prior messages enter the prompt. Fixed on
// purpose: the generation context stays bounded no matter how long the
// conversation runs.
const HistoryWindow = 10

const (
	documentStartMarker = "---DOCUMENT START---"
	documentEndMarker   = "---DOCUMENT END---"
)

// ContextualBuilder builds the generation prompt for one chat turn: the
// document snapshot between sentinel markers, a bounded slice of prior
// conversation, then the current question.
type ContextualBuilder struct {
	session  *entity.ChatSession
	question string
}

// NewContextualBuilder expects session.Messages to already contain the
// current user turn as its last element; that turn is excluded from the
// history section and carried by question instead.
func NewContextualBuilder(session *entity.ChatSession, question string) *ContextualBuilder {
	return &ContextualBuilder{
		session:  session,
		question: question,
	}
}

func (b *ContextualBuilder) Build() string {
	var prompt strings.Builder

	b.writeDocument(&prompt)
	b.writeHistory(&prompt)
	b.writeQuestion(&prompt)

	return prompt.String()
}

func (b *ContextualBuilder) writeDocument(prompt *strings.Builder) {
	prompt.WriteString("You are a helpful assistant analyzing the following document:\n\n")
	prompt.WriteString(documentStartMarker)
	prompt.WriteString("\n")
	prompt.WriteString(b.session.DocumentText)
	prompt.WriteString("\n")
	prompt.WriteString(documentEndMarker)
	prompt.WriteString("\n\n")
}

func (b *ContextualBuilder) writeHistory(prompt *strings.Builder) {
	messages := b.session.Messages
	if len(messages) <= 1 {
		return
	}

	// Drop the trailing current turn, then keep the last HistoryWindow.
	history := messages[:len(messages)-1]
	if len(history) > HistoryWindow {
		history = history[len(history)-HistoryWindow:]
	}

	prompt.WriteString("Previous conversation:\n")
	for _, msg := range history {
		if msg.Role == entity.RoleUser {
			prompt.WriteString("User: ")
		} else {
			prompt.WriteString("Assistant: ")
		}
		prompt.WriteString(msg.Content)
		prompt.WriteString("\n")
	}
	prompt.WriteString("\n")
}

func (b *ContextualBuilder) writeQuestion(prompt *strings.Builder) {
	prompt.WriteString("Current question:\n")
	prompt.WriteString(b.question)
	prompt.WriteString("\n\n")
	prompt.WriteString("Please provide a detailed answer based on the document and conversation history.")
}
