package entity

import "testing"

func TestLastMessage(t *testing.T) {
	var s ChatSession
	if s.LastMessage() != nil {
		t.Error("empty session must have no last message")
	}

	s.Messages = []ChatMessage{
		{Role: RoleUser, Content: "q"},
		{Role: RoleAssistant, Content: "a"},
	}
	last := s.LastMessage()
	if last == nil || last.Content != "a" {
		t.Errorf("LastMessage = %+v, want the assistant turn", last)
	}
}
