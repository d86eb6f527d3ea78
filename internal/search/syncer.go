package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"docqa-be/internal/entity"
	"docqa-be/internal/pkg/logger"
	"docqa-be/internal/repository/specification"
	"docqa-be/internal/repository/unitofwork"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
)

// SessionIndexer is the write side of the search index. Implementations are
// best-effort: callers treat every error as log-and-continue.
type SessionIndexer interface {
	SyncSession(ctx context.Context, session *entity.ChatSession) error
	DeleteSession(ctx context.Context, sessionId uuid.UUID) error
	SyncAll(ctx context.Context) error
}

type Syncer struct {
	es         *elasticsearch.Client
	index      string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

var _ SessionIndexer = &Syncer{}

func NewSyncer(es *elasticsearch.Client, index string, uowFactory unitofwork.RepositoryFactory, log logger.ILogger) *Syncer {
	return &Syncer{
		es:         es,
		index:      index,
		uowFactory: uowFactory,
		logger:     log,
	}
}

// SyncSession upserts one session projection keyed by session id.
func (s *Syncer) SyncSession(ctx context.Context, session *entity.ChatSession) error {
	projection := ProjectSession(session)

	body, err := json.Marshal(projection)
	if err != nil {
		return fmt.Errorf("marshal projection %s: %w", projection.Id, err)
	}

	res, err := s.es.Index(
		s.index,
		bytes.NewReader(body),
		s.es.Index.WithDocumentID(projection.Id),
		s.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index session %s: %w", projection.Id, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index session %s: %s", projection.Id, res.String())
	}

	s.logger.Debug("SearchSyncer", "Session synced to index", map[string]interface{}{
		"session_id":    projection.Id,
		"message_count": projection.MessageCount,
	})
	return nil
}

// DeleteSession removes a projection. A 404 is fine: the projection may
// never have been written.
func (s *Syncer) DeleteSession(ctx context.Context, sessionId uuid.UUID) error {
	res, err := s.es.Delete(
		s.index,
		sessionId.String(),
		s.es.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete session %s from index: %w", sessionId, err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete session %s from index: %s", sessionId, res.String())
	}
	return nil
}

// SyncAll bulk-rebuilds every projection from the authoritative session
// store. Used once at startup to reconcile an index that drifted or was
// wiped.
func (s *Syncer) SyncAll(ctx context.Context) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load sessions for full sync: %w", err)
	}
	if len(sessions) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, session := range sessions {
		messages, err := uow.ChatMessageRepository().FindAll(ctx,
			specification.BySessionID{SessionID: session.Id},
			specification.OrderBy{Field: "created_at"},
		)
		if err != nil {
			return fmt.Errorf("load messages for session %s: %w", session.Id, err)
		}
		for _, msg := range messages {
			session.Messages = append(session.Messages, *msg)
		}

		projection := ProjectSession(session)

		action, err := json.Marshal(map[string]map[string]string{
			"index": {"_index": s.index, "_id": projection.Id},
		})
		if err != nil {
			return fmt.Errorf("marshal bulk action: %w", err)
		}
		doc, err := json.Marshal(projection)
		if err != nil {
			return fmt.Errorf("marshal projection %s: %w", projection.Id, err)
		}

		buf.Write(action)
		buf.WriteByte('\n')
		buf.Write(doc)
		buf.WriteByte('\n')
	}

	res, err := s.es.Bulk(bytes.NewReader(buf.Bytes()), s.es.Bulk.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("bulk sync: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk sync: %s", res.String())
	}

	s.logger.Info("SearchSyncer", "Full index sync completed", map[string]interface{}{
		"session_count": len(sessions),
	})
	return nil
}
