package mapper

import (
	"docqa-be/internal/entity"
	"docqa-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:            d.Id,
		ContentHash:   d.ContentHash,
		FileName:      d.FileName,
		MimeType:      d.MimeType,
		SizeBytes:     d.SizeBytes,
		ExtractedText: d.ExtractedText,
		UploadedAt:    d.UploadedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:            d.Id,
		ContentHash:   d.ContentHash,
		FileName:      d.FileName,
		MimeType:      d.MimeType,
		SizeBytes:     d.SizeBytes,
		ExtractedText: d.ExtractedText,
		UploadedAt:    d.UploadedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
