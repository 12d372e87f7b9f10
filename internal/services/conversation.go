package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"heroic/ats-platform/internal/models"
	"heroic/ats-platform/internal/repositories"
)

// ConversationStore keeps per-session history. Implementations are safe
// for concurrent use.
type ConversationStore interface {
	History(ctx context.Context, sessionID string) ([]models.ConversationTurn, error)
	Append(ctx context.Context, sessionID string, turn models.ConversationTurn) error
	Clear(ctx context.Context, sessionID string) error
	ClearAll(ctx context.Context) error
}

type memoryConversationStore struct {
	mu       sync.RWMutex
	sessions map[string][]models.ConversationTurn
	maxTurns int
}

// NewMemoryConversationStore keeps history in process. maxTurns <= 0 means
// unbounded.
func NewMemoryConversationStore(maxTurns int) ConversationStore {
	return &memoryConversationStore{
		sessions: make(map[string][]models.ConversationTurn),
		maxTurns: maxTurns,
	}
}

func (s *memoryConversationStore) History(ctx context.Context, sessionID string) ([]models.ConversationTurn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.sessions[sessionID]
	out := make([]models.ConversationTurn, len(turns))
	copy(out, turns)
	return out, nil
}

func (s *memoryConversationStore) Append(ctx context.Context, sessionID string, turn models.ConversationTurn) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	turn = stampTurn(sessionID, turn)

	s.mu.Lock()
	defer s.mu.Unlock()

	turns := append(s.sessions[sessionID], turn)
	if s.maxTurns > 0 && len(turns) > s.maxTurns {
		turns = append([]models.ConversationTurn(nil), turns[len(turns)-s.maxTurns:]...)
	}
	s.sessions[sessionID] = turns
	return nil
}

func (s *memoryConversationStore) Clear(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *memoryConversationStore) ClearAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string][]models.ConversationTurn)
	return nil
}

type persistentConversationStore struct {
	repo     repositories.ConversationRepository
	maxTurns int
}

// NewPersistentConversationStore backs history with the conversation
// repository so it survives restarts.
func NewPersistentConversationStore(repo repositories.ConversationRepository, maxTurns int) ConversationStore {
	return &persistentConversationStore{
		repo:     repo,
		maxTurns: maxTurns,
	}
}

func (s *persistentConversationStore) History(ctx context.Context, sessionID string) ([]models.ConversationTurn, error) {
	return s.repo.FindBySession(ctx, sessionID)
}

func (s *persistentConversationStore) Append(ctx context.Context, sessionID string, turn models.ConversationTurn) error {
	turn = stampTurn(sessionID, turn)

	if err := s.repo.Create(ctx, &turn); err != nil {
		return err
	}

	if s.maxTurns > 0 {
		if err := s.repo.TrimSession(ctx, sessionID, s.maxTurns); err != nil {
			return fmt.Errorf("append turn: %w", err)
		}
	}
	return nil
}

func (s *persistentConversationStore) Clear(ctx context.Context, sessionID string) error {
	return s.repo.DeleteBySession(ctx, sessionID)
}

func (s *persistentConversationStore) ClearAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

func stampTurn(sessionID string, turn models.ConversationTurn) models.ConversationTurn {
	if turn.ID == uuid.Nil {
		turn.ID = uuid.New()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}
	turn.SessionID = sessionID
	return turn
}
