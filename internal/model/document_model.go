package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ContentHash   string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	FileName      string    `gorm:"type:varchar(255);not null"`
	MimeType      string    `gorm:"type:varchar(100);not null"`
	SizeBytes     int64     `gorm:"not null"`
	ExtractedText string    `gorm:"type:text;not null"`
	UploadedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}
