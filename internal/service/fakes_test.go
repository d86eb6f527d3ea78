package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"docqa-be/internal/entity"
	"docqa-be/internal/repository/contract"
	"docqa-be/internal/repository/specification"
	"docqa-be/internal/repository/unitofwork"
	"docqa-be/pkg/llm"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- Logger ---

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// --- In-memory store shared by the fake repositories ---

type memoryStore struct {
	mu        sync.Mutex
	documents map[uuid.UUID]entity.Document
	sessions  map[uuid.UUID]entity.ChatSession
	messages  []entity.ChatMessage
	clock     time.Time

	// missFirstDocumentFind makes the first hash lookup return nothing, to
	// drive the insert path into the duplicate-key branch.
	missFirstDocumentFind bool
}

func newMemoryStore() *memoryStore {
	// The clock starts in the past so ticked timestamps never outrun
	// time.Now() used by the code under test.
	return &memoryStore{
		documents: make(map[uuid.UUID]entity.Document),
		sessions:  make(map[uuid.UUID]entity.ChatSession),
		clock:     time.Now().Add(-time.Minute),
	}
}

// tick hands out strictly increasing timestamps so created_at ordering is
// deterministic even within one test.
func (s *memoryStore) tick() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

type fakeFactory struct {
	store *memoryStore
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: f.store}
}

type fakeUnitOfWork struct {
	store *memoryStore
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository {
	return &fakeDocumentRepository{store: u.store}
}

func (u *fakeUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository {
	return &fakeChatSessionRepository{store: u.store}
}

func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeChatMessageRepository{store: u.store}
}

// --- Document repository ---

type fakeDocumentRepository struct {
	store *memoryStore
}

func (r *fakeDocumentRepository) Create(ctx context.Context, document *entity.Document) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.documents {
		if existing.ContentHash == document.ContentHash {
			return gorm.ErrDuplicatedKey
		}
	}

	document.Id = uuid.New()
	document.UploadedAt = r.store.tick()
	document.UpdatedAt = document.UploadedAt
	r.store.documents[document.Id] = *document
	return nil
}

func (r *fakeDocumentRepository) Update(ctx context.Context, document *entity.Document) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.documents[document.Id]; !ok {
		return errors.New("document not found")
	}
	r.store.documents[document.Id] = *document
	return nil
}

func (r *fakeDocumentRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByContentHash:
			if r.store.missFirstDocumentFind {
				r.store.missFirstDocumentFind = false
				return nil, nil
			}
			for _, doc := range r.store.documents {
				if doc.ContentHash == s.Hash {
					found := doc
					return &found, nil
				}
			}
			return nil, nil
		case specification.ByID:
			if doc, ok := r.store.documents[s.ID]; ok {
				found := doc
				return &found, nil
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.documents)), nil
}

// --- Chat session repository ---

type fakeChatSessionRepository struct {
	store *memoryStore
}

func (r *fakeChatSessionRepository) Create(ctx context.Context, session *entity.ChatSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	session.Id = uuid.New()
	session.CreatedAt = r.store.tick()
	session.UpdatedAt = session.CreatedAt

	stored := *session
	stored.Messages = nil
	r.store.sessions[session.Id] = stored
	return nil
}

func (r *fakeChatSessionRepository) Update(ctx context.Context, session *entity.ChatSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.sessions[session.Id]; !ok {
		return errors.New("session not found")
	}
	stored := *session
	stored.Messages = nil
	r.store.sessions[session.Id] = stored
	return nil
}

func (r *fakeChatSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.sessions, id)
	return nil
}

func (r *fakeChatSessionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, spec := range specs {
		if s, ok := spec.(specification.ByID); ok {
			if session, found := r.store.sessions[s.ID]; found {
				result := session
				return &result, nil
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *fakeChatSessionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	limit := -1
	for _, spec := range specs {
		if s, ok := spec.(specification.Limit); ok {
			limit = s.N
		}
	}

	sessions := make([]*entity.ChatSession, 0, len(r.store.sessions))
	for _, session := range r.store.sessions {
		if limit >= 0 && len(sessions) == limit {
			break
		}
		result := session
		sessions = append(sessions, &result)
	}
	return sessions, nil
}

func (r *fakeChatSessionRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.sessions)), nil
}

// --- Chat message repository ---

type fakeChatMessageRepository struct {
	store *memoryStore
}

func (r *fakeChatMessageRepository) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	message.Id = uuid.New()
	message.CreatedAt = r.store.tick()
	r.store.messages = append(r.store.messages, *message)
	return nil
}

func (r *fakeChatMessageRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var sessionId uuid.UUID
	for _, spec := range specs {
		if s, ok := spec.(specification.BySessionID); ok {
			sessionId = s.SessionID
		}
	}

	// Append order already matches created_at order thanks to tick().
	messages := make([]*entity.ChatMessage, 0)
	for _, message := range r.store.messages {
		if message.ChatSessionId == sessionId {
			result := message
			messages = append(messages, &result)
		}
	}
	return messages, nil
}

func (r *fakeChatMessageRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	messages, err := r.FindAll(ctx, specs...)
	return int64(len(messages)), err
}

func (r *fakeChatMessageRepository) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	kept := r.store.messages[:0]
	for _, message := range r.store.messages {
		if message.ChatSessionId != sessionId {
			kept = append(kept, message)
		}
	}
	r.store.messages = kept
	return nil
}

// --- LLM provider ---

type fakeProvider struct {
	answer       string
	chunks       []string
	generateErr  error
	streamErr    error
	promptsSeen  []string
	generateHits int
}

func (p *fakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return p.answer, p.generateErr
}

func (p *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	p.generateHits++
	p.promptsSeen = append(p.promptsSeen, prompt)
	if p.generateErr != nil {
		return "", p.generateErr
	}
	return p.answer, nil
}

func (p *fakeProvider) GenerateStream(ctx context.Context, prompt string, onChunk func(chunk string), onComplete func(full string), onError func(err error)) {
	p.promptsSeen = append(p.promptsSeen, prompt)
	if p.streamErr != nil {
		onError(p.streamErr)
		return
	}
	full := ""
	for _, chunk := range p.chunks {
		full += chunk
		onChunk(chunk)
	}
	onComplete(full)
}

// --- Publisher ---

type fakePublisher struct {
	mu          sync.Mutex
	syncCalls   []uuid.UUID
	deleteCalls []uuid.UUID
	err         error
}

func (p *fakePublisher) PublishSessionSync(sessionId uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.syncCalls = append(p.syncCalls, sessionId)
	return p.err
}

func (p *fakePublisher) PublishSessionDelete(sessionId uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleteCalls = append(p.deleteCalls, sessionId)
	return p.err
}

// --- Extractor ---

type countingExtractor struct {
	text string
	err  error
	hits int
}

func (e *countingExtractor) ExtractText(data []byte) (string, error) {
	e.hits++
	if e.err != nil {
		return "", e.err
	}
	return e.text, nil
}
