package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is a content-addressed record of one distinct uploaded file.
// ExtractedText is derived exactly once; re-uploads of identical bytes only
// refresh UpdatedAt.
type Document struct {
	Id            uuid.UUID
	ContentHash   string
	FileName      string
	MimeType      string
	SizeBytes     int64
	ExtractedText string
	UploadedAt    time.Time
	UpdatedAt     time.Time
}
