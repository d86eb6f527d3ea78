package dto

import (
	"time"

	"docqa-be/internal/search"
)

type SearchSessionsRequest struct {
	Query string `json:"query"`
}

type SessionSearchResult struct {
	Id                string    `json:"id"`
	DocumentName      string    `json:"document_name"`
	DocumentId        string    `json:"document_id"`
	CreatedAt         time.Time `json:"created_at"`
	LastInteractionAt time.Time `json:"last_interaction_at"`
	MessageCount      int       `json:"message_count"`
	LastMessage       string    `json:"last_message"`
}

func ToSessionSearchResults(projections []search.SessionProjection) []SessionSearchResult {
	results := make([]SessionSearchResult, 0, len(projections))
	for _, p := range projections {
		results = append(results, SessionSearchResult{
			Id:                p.Id,
			DocumentName:      p.DocumentName,
			DocumentId:        p.DocumentId,
			CreatedAt:         p.CreatedAt,
			LastInteractionAt: p.LastInteractionAt,
			MessageCount:      p.MessageCount,
			LastMessage:       p.LastMessage,
		})
	}
	return results
}
