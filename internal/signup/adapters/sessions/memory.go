// Package sessions хранит сессии мастера регистрации в памяти процесса.
package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"signupflow/internal/signup/domain/entities"
	"signupflow/internal/signup/ports/sessions"
	"signupflow/pkg/logger"
)

const (
	msgWrongType = "wrong type stored for session"

	errFailedToCreate = "failed to create session"
)

// MemoryStore - хранилище сессий с истечением по бездействию.
// Каждое сохранение продлевает срок жизни сессии.
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore создает хранилище. ttl - время жизни сессии без обращений.
func NewMemoryStore(ttl, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{cache: gocache.New(ttl, cleanupInterval)}
}

var (
	_ sessions.Store            = (*MemoryStore)(nil)
	_ sessions.EvictionNotifier = (*MemoryStore)(nil)
)

// Create сохраняет новую сессию и возвращает ее идентификатор.
func (s *MemoryStore) Create(_ context.Context, state entities.WizardState) (string, error) {
	id := uuid.NewString()
	if err := s.cache.Add(id, state, gocache.DefaultExpiration); err != nil {
		return "", fmt.Errorf("%s: %w", errFailedToCreate, err)
	}
	return id, nil
}

// Get возвращает состояние сессии.
func (s *MemoryStore) Get(ctx context.Context, id string) (entities.WizardState, error) {
	value, found := s.cache.Get(id)
	if !found {
		return entities.WizardState{}, sessions.ErrSessionNotFound
	}

	state, ok := value.(entities.WizardState)
	if !ok {
		logger.Log(ctx).Error(ctx, msgWrongType, zap.String("sessionID", id))
		return entities.WizardState{}, sessions.ErrSessionNotFound
	}
	return state, nil
}

// Save заменяет состояние существующей сессии.
func (s *MemoryStore) Save(_ context.Context, id string, state entities.WizardState) error {
	if err := s.cache.Replace(id, state, gocache.DefaultExpiration); err != nil {
		return sessions.ErrSessionNotFound
	}
	return nil
}

// Delete удаляет сессию. Отсутствующая сессия не считается ошибкой.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}

// OnEvicted регистрирует fn, вызываемую после удаления сессии
// явным Delete или очисткой истекших записей.
func (s *MemoryStore) OnEvicted(fn func(id string)) {
	s.cache.OnEvicted(func(id string, _ any) {
		fn(id)
	})
}

// Count возвращает число живых сессий.
func (s *MemoryStore) Count() int {
	return s.cache.ItemCount()
}
