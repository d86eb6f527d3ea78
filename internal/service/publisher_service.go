package service

import (
	"encoding/json"
	"fmt"

	"docqa-be/internal/dto"
	"docqa-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// IPublisherService fans session change notifications out to the async sync
// pipeline. Publish failures are the caller's to swallow: a missed index
// update never fails the chat turn that caused it.
type IPublisherService interface {
	PublishSessionSync(sessionId uuid.UUID) error
	PublishSessionDelete(sessionId uuid.UUID) error
}

type PublisherService struct {
	publisher   message.Publisher
	syncTopic   string
	deleteTopic string
	logger      logger.ILogger
}

func NewPublisherService(publisher message.Publisher, syncTopic, deleteTopic string, log logger.ILogger) IPublisherService {
	return &PublisherService{
		publisher:   publisher,
		syncTopic:   syncTopic,
		deleteTopic: deleteTopic,
		logger:      log,
	}
}

func (s *PublisherService) PublishSessionSync(sessionId uuid.UUID) error {
	return s.publish(s.syncTopic, dto.SyncSessionMessage{SessionId: sessionId})
}

func (s *PublisherService) PublishSessionDelete(sessionId uuid.UUID) error {
	return s.publish(s.deleteTopic, dto.DeleteSessionMessage{SessionId: sessionId})
}

func (s *PublisherService) publish(topic string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload for %s: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	if err := s.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}

	s.logger.Debug("PublisherService", "Message published", map[string]interface{}{
		"topic":      topic,
		"message_id": msg.UUID,
	})
	return nil
}
