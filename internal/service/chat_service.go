package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"docqa-be/internal/constant"
	"docqa-be/internal/entity"
	"docqa-be/internal/pkg/logger"
	"docqa-be/internal/pkg/serverutils"
	"docqa-be/internal/repository/specification"
	"docqa-be/internal/repository/unitofwork"
	"docqa-be/pkg/llm"
	"docqa-be/pkg/prompt"

	"github.com/google/uuid"
)

type IChatService interface {
	StartSession(ctx context.Context, document *entity.Document) (*entity.ChatSession, error)
	GetSession(ctx context.Context, sessionId uuid.UUID) (*entity.ChatSession, error)
	GetAllSessions(ctx context.Context) ([]*entity.ChatSession, error)
	DeleteSession(ctx context.Context, sessionId uuid.UUID) error

	// SendChat runs one blocking turn and returns the session (with the new
	// turn appended) plus the assistant answer.
	SendChat(ctx context.Context, sessionId uuid.UUID, question string) (*entity.ChatSession, string, error)

	// SendChatStream runs one streaming turn. The user message is persisted
	// before generation starts; the assistant message is persisted only when
	// the stream completes. Exactly one of onComplete or onError fires.
	SendChatStream(ctx context.Context, sessionId uuid.UUID, question string, onChunk func(chunk string), onComplete func(full string), onError func(err error))
}

// sessionListLimit bounds the list endpoint; the search index is the way to
// reach anything older.
const sessionListLimit = 100

type ChatService struct {
	uowFactory unitofwork.RepositoryFactory
	provider   llm.LLMProvider
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.LLMProvider,
	publisher IPublisherService,
	log logger.ILogger,
) IChatService {
	return &ChatService{
		uowFactory: uowFactory,
		provider:   provider,
		publisher:  publisher,
		logger:     log,
	}
}

// StartSession snapshots the document into a fresh session. Every upload
// gets its own session, even for a deduplicated document.
func (s *ChatService) StartSession(ctx context.Context, document *entity.Document) (*entity.ChatSession, error) {
	session := &entity.ChatSession{
		DocumentId:   document.Id,
		DocumentName: document.FileName,
		DocumentText: document.ExtractedText,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create chat session: %w", err)
	}

	s.notifySync(session.Id)

	s.logger.Info("ChatService", "Chat session started", map[string]interface{}{
		"session_id":  session.Id,
		"document_id": document.Id,
	})
	return session, nil
}

func (s *ChatService) GetSession(ctx context.Context, sessionId uuid.UUID) (*entity.ChatSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.loadSession(ctx, uow, sessionId)
}

func (s *ChatService) GetAllSessions(ctx context.Context) ([]*entity.ChatSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Limit{N: sessionListLimit},
	)
	if err != nil {
		return nil, fmt.Errorf("list chat sessions: %w", err)
	}

	for _, session := range sessions {
		messages, err := uow.ChatMessageRepository().FindAll(ctx,
			specification.BySessionID{SessionID: session.Id},
			specification.OrderBy{Field: "created_at"},
		)
		if err != nil {
			return nil, fmt.Errorf("load messages for session %s: %w", session.Id, err)
		}
		for _, m := range messages {
			session.Messages = append(session.Messages, *m)
		}
	}
	return sessions, nil
}

func (s *ChatService) DeleteSession(ctx context.Context, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.loadSession(ctx, uow, sessionId)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin delete transaction: %w", err)
	}
	if err := uow.ChatMessageRepository().DeleteBySessionId(ctx, session.Id); err != nil {
		_ = uow.Rollback()
		return fmt.Errorf("delete session messages: %w", err)
	}
	if err := uow.ChatSessionRepository().Delete(ctx, session.Id); err != nil {
		_ = uow.Rollback()
		return fmt.Errorf("delete session: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return fmt.Errorf("commit delete transaction: %w", err)
	}

	if err := s.publisher.PublishSessionDelete(sessionId); err != nil {
		s.logger.Warn("ChatService", "Failed to publish session delete", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}

	s.logger.Info("ChatService", "Chat session deleted", map[string]interface{}{
		"session_id": sessionId,
	})
	return nil
}

func (s *ChatService) SendChat(ctx context.Context, sessionId uuid.UUID, question string) (*entity.ChatSession, string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.loadSession(ctx, uow, sessionId)
	if err != nil {
		return nil, "", err
	}

	// A blank question acknowledges the upload without consuming a turn.
	if strings.TrimSpace(question) == "" {
		return session, constant.DocumentLoadedGreeting, nil
	}

	userMessage := entity.ChatMessage{
		ChatSessionId: session.Id,
		Role:          entity.RoleUser,
		Content:       question,
	}
	session.Messages = append(session.Messages, userMessage)

	generationPrompt := prompt.NewContextualBuilder(session, question).Build()

	answer, err := s.provider.Generate(ctx, generationPrompt)
	if err != nil {
		// Nothing persisted yet; the failed turn leaves no trace.
		return nil, "", serverutils.NewGenerationError("answer generation failed", err)
	}

	assistantMessage := entity.ChatMessage{
		ChatSessionId: session.Id,
		Role:          entity.RoleAssistant,
		Content:       answer,
	}

	if err := s.persistTurn(ctx, uow, session, &userMessage, &assistantMessage); err != nil {
		return nil, "", err
	}
	session.Messages[len(session.Messages)-1] = userMessage
	session.Messages = append(session.Messages, assistantMessage)

	s.notifySync(session.Id)
	return session, answer, nil
}

func (s *ChatService) SendChatStream(ctx context.Context, sessionId uuid.UUID, question string, onChunk func(chunk string), onComplete func(full string), onError func(err error)) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.loadSession(ctx, uow, sessionId)
	if err != nil {
		onError(err)
		return
	}

	if strings.TrimSpace(question) == "" {
		onComplete(constant.DocumentLoadedGreeting)
		return
	}

	// The user turn is durable before generation starts, so a failed stream
	// still shows what was asked.
	userMessage := entity.ChatMessage{
		ChatSessionId: session.Id,
		Role:          entity.RoleUser,
		Content:       question,
	}
	if err := uow.ChatMessageRepository().Create(ctx, &userMessage); err != nil {
		onError(fmt.Errorf("persist user message: %w", err))
		return
	}
	session.Messages = append(session.Messages, userMessage)

	generationPrompt := prompt.NewContextualBuilder(session, question).Build()

	s.provider.GenerateStream(ctx, generationPrompt,
		onChunk,
		func(full string) {
			assistantMessage := entity.ChatMessage{
				ChatSessionId: session.Id,
				Role:          entity.RoleAssistant,
				Content:       full,
			}
			if err := uow.ChatMessageRepository().Create(ctx, &assistantMessage); err != nil {
				onError(fmt.Errorf("persist assistant message: %w", err))
				return
			}

			session.UpdatedAt = time.Now()
			if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
				s.logger.Error("ChatService", "Failed to touch session after stream", map[string]interface{}{
					"session_id": session.Id,
					"error":      err.Error(),
				})
			}

			s.notifySync(session.Id)
			onComplete(full)
		},
		func(err error) {
			s.notifySync(session.Id)
			onError(serverutils.NewGenerationError("answer generation failed", err))
		},
	)
}

func (s *ChatService) loadSession(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionId, err)
	}
	if session == nil {
		return nil, serverutils.NewNotFoundError("chat session not found")
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: session.Id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, fmt.Errorf("load messages for session %s: %w", session.Id, err)
	}
	for _, m := range messages {
		session.Messages = append(session.Messages, *m)
	}
	return session, nil
}

func (s *ChatService) persistTurn(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.ChatSession, userMessage, assistantMessage *entity.ChatMessage) error {
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin turn transaction: %w", err)
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMessage); err != nil {
		_ = uow.Rollback()
		return fmt.Errorf("persist user message: %w", err)
	}
	if err := uow.ChatMessageRepository().Create(ctx, assistantMessage); err != nil {
		_ = uow.Rollback()
		return fmt.Errorf("persist assistant message: %w", err)
	}

	session.UpdatedAt = time.Now()
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		_ = uow.Rollback()
		return fmt.Errorf("touch session: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("commit turn transaction: %w", err)
	}
	return nil
}

func (s *ChatService) notifySync(sessionId uuid.UUID) {
	if err := s.publisher.PublishSessionSync(sessionId); err != nil {
		s.logger.Warn("ChatService", "Failed to publish session sync", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}
}
