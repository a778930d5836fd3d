// Package sessions определяет хранилище сессий мастера.
package sessions

import (
	"context"
	"errors"

	"signupflow/internal/signup/domain/entities"
)

// ErrSessionNotFound - сессия отсутствует или истекла.
var ErrSessionNotFound = errors.New("signup session not found")

// Store хранит состояния мастера по идентификатору сессии.
type Store interface {
	Create(ctx context.Context, state entities.WizardState) (string, error)

	Get(ctx context.Context, id string) (entities.WizardState, error)

	Save(ctx context.Context, id string, state entities.WizardState) error

	Delete(ctx context.Context, id string) error
}

// EvictionNotifier сообщает об удалении сессий из хранилища, в том числе по истечении срока.
type EvictionNotifier interface {
	OnEvicted(fn func(id string))
}
