package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySessionID filters messages belonging to one chat session
type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.SessionID)
}
