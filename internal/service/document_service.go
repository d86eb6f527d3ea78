package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"docqa-be/internal/entity"
	"docqa-be/internal/pkg/logger"
	"docqa-be/internal/pkg/serverutils"
	"docqa-be/internal/repository/specification"
	"docqa-be/internal/repository/unitofwork"
	"docqa-be/pkg/extract"
	"docqa-be/pkg/utils"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

type IDocumentService interface {
	Upload(ctx context.Context, data []byte, fileName, mimeType string) (*entity.Document, error)
}

type DocumentService struct {
	uowFactory unitofwork.RepositoryFactory
	extractor  extract.TextExtractor
	cache      *gocache.Cache
	logger     logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	extractor extract.TextExtractor,
	cache *gocache.Cache,
	log logger.ILogger,
) IDocumentService {
	return &DocumentService{
		uowFactory: uowFactory,
		extractor:  extractor,
		cache:      cache,
		logger:     log,
	}
}

// Upload stores a document content-addressed by the SHA-256 of its bytes.
// Re-uploading identical bytes under any file name returns the existing
// record (with UpdatedAt refreshed) and never re-extracts text.
func (s *DocumentService) Upload(ctx context.Context, data []byte, fileName, mimeType string) (*entity.Document, error) {
	hash := utils.HashBytes(data)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The cache holds values, not pointers: every hit works on its own copy,
	// so concurrent uploads of the same content never mutate a shared struct.
	if cached, found := s.cache.Get(hash); found {
		document := cached.(entity.Document)
		return s.refresh(ctx, uow, &document)
	}

	existing, err := uow.DocumentRepository().FindOne(ctx, specification.ByContentHash{Hash: hash})
	if err != nil {
		return nil, fmt.Errorf("lookup document by hash: %w", err)
	}
	if existing != nil {
		return s.refresh(ctx, uow, existing)
	}

	text, err := s.extractor.ExtractText(data)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedDocument) {
			return nil, serverutils.NewUnsupportedDocumentError("document could not be parsed as a PDF", err)
		}
		return nil, fmt.Errorf("extract text: %w", err)
	}

	document := &entity.Document{
		ContentHash:   hash,
		FileName:      fileName,
		MimeType:      mimeType,
		SizeBytes:     int64(len(data)),
		ExtractedText: text,
	}

	if err := uow.DocumentRepository().Create(ctx, document); err != nil {
		// Another upload of the same bytes won the insert race; adopt its
		// record instead of failing.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, findErr := uow.DocumentRepository().FindOne(ctx, specification.ByContentHash{Hash: hash})
			if findErr != nil {
				return nil, fmt.Errorf("lookup winner after duplicate insert: %w", findErr)
			}
			if winner == nil {
				return nil, fmt.Errorf("duplicate insert for hash %s but no winner found", hash)
			}
			return s.refresh(ctx, uow, winner)
		}
		return nil, fmt.Errorf("create document: %w", err)
	}

	s.cache.Set(hash, *document, gocache.DefaultExpiration)

	s.logger.Info("DocumentService", "New document stored", map[string]interface{}{
		"document_id": document.Id,
		"file_name":   fileName,
		"size_bytes":  document.SizeBytes,
	})
	return document, nil
}

// refresh touches UpdatedAt on a caller-local record and re-caches the
// result. document must not be shared with any other goroutine.
func (s *DocumentService) refresh(ctx context.Context, uow unitofwork.UnitOfWork, document *entity.Document) (*entity.Document, error) {
	document.UpdatedAt = time.Now()
	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		return nil, fmt.Errorf("refresh document %s: %w", document.Id, err)
	}
	s.cache.Set(document.ContentHash, *document, gocache.DefaultExpiration)

	s.logger.Info("DocumentService", "Duplicate upload deduplicated", map[string]interface{}{
		"document_id": document.Id,
		"file_name":   document.FileName,
	})
	return document, nil
}
