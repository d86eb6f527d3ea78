package service

import (
	"context"
	"encoding/json"

	"docqa-be/internal/dto"
	"docqa-be/internal/pkg/logger"
	"docqa-be/internal/repository/specification"
	"docqa-be/internal/repository/unitofwork"
	"docqa-be/internal/search"

	"github.com/ThreeDotsLabs/watermill/message"
)

// ISyncConsumerService drains the session sync topics and applies each
// change to the search index. The index is advisory, so every message is
// Acked even when applying it fails: retrying against a dead index would
// just loop forever, and the startup reconcile heals any gap.
type ISyncConsumerService interface {
	Consume(ctx context.Context) error
}

type SyncConsumerService struct {
	subscriber  message.Subscriber
	syncTopic   string
	deleteTopic string
	uowFactory  unitofwork.RepositoryFactory
	indexer     search.SessionIndexer
	logger      logger.ILogger
}

func NewSyncConsumerService(
	subscriber message.Subscriber,
	syncTopic, deleteTopic string,
	uowFactory unitofwork.RepositoryFactory,
	indexer search.SessionIndexer,
	log logger.ILogger,
) ISyncConsumerService {
	return &SyncConsumerService{
		subscriber:  subscriber,
		syncTopic:   syncTopic,
		deleteTopic: deleteTopic,
		uowFactory:  uowFactory,
		indexer:     indexer,
		logger:      log,
	}
}

func (s *SyncConsumerService) Consume(ctx context.Context) error {
	syncMessages, err := s.subscriber.Subscribe(ctx, s.syncTopic)
	if err != nil {
		return err
	}
	deleteMessages, err := s.subscriber.Subscribe(ctx, s.deleteTopic)
	if err != nil {
		return err
	}

	s.logger.Info("SyncConsumerService", "Consumer started", map[string]interface{}{
		"sync_topic":   s.syncTopic,
		"delete_topic": s.deleteTopic,
	})

	go s.drain(ctx, syncMessages, s.handleSync)
	go s.drain(ctx, deleteMessages, s.handleDelete)

	return nil
}

func (s *SyncConsumerService) drain(ctx context.Context, messages <-chan *message.Message, handle func(ctx context.Context, msg *message.Message)) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			handle(ctx, msg)
			msg.Ack()
		}
	}
}

func (s *SyncConsumerService) handleSync(ctx context.Context, msg *message.Message) {
	var payload dto.SyncSessionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("SyncConsumerService", "Failed to decode sync message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: payload.SessionId})
	if err != nil {
		s.logger.Error("SyncConsumerService", "Failed to load session for sync", map[string]interface{}{
			"session_id": payload.SessionId,
			"error":      err.Error(),
		})
		return
	}
	if session == nil {
		// Deleted between publish and consume; nothing to index.
		return
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: session.Id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		s.logger.Error("SyncConsumerService", "Failed to load messages for sync", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
		return
	}
	for _, m := range messages {
		session.Messages = append(session.Messages, *m)
	}

	if err := s.indexer.SyncSession(ctx, session); err != nil {
		s.logger.Error("SyncConsumerService", "Index sync failed", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
	}
}

func (s *SyncConsumerService) handleDelete(ctx context.Context, msg *message.Message) {
	var payload dto.DeleteSessionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("SyncConsumerService", "Failed to decode delete message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	if err := s.indexer.DeleteSession(ctx, payload.SessionId); err != nil {
		s.logger.Error("SyncConsumerService", "Index delete failed", map[string]interface{}{
			"session_id": payload.SessionId,
			"error":      err.Error(),
		})
	}
}
