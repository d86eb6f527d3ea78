package dto

import "github.com/google/uuid"

// UploadDocumentResponse is returned by the upload endpoint. Response holds
// either the answer to the initial question or the canned greeting when no
// question accompanied the upload.
type UploadDocumentResponse struct {
	Query      string    `json:"query"`
	Response   string    `json:"response"`
	SessionId  uuid.UUID `json:"session_id"`
	DocumentId uuid.UUID `json:"document_id"`
}
