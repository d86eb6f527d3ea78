package specification

import "gorm.io/gorm"

// ByContentHash is the dedupe lookup: at most one document exists per hash,
// enforced by the unique index on content_hash.
type ByContentHash struct {
	Hash string
}

func (s ByContentHash) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("content_hash = ?", s.Hash)
}
