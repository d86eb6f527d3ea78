package dto

import "github.com/google/uuid"

// Payloads carried on the in-process sync topics. Only ids travel; the
// consumer re-reads authoritative state before touching the index.
type SyncSessionMessage struct {
	SessionId uuid.UUID `json:"session_id"`
}

type DeleteSessionMessage struct {
	SessionId uuid.UUID `json:"session_id"`
}
