// Package repositories определяет порты хранения для сервиса учетных записей.
package repositories

import (
	"context"

	"signupflow/internal/accounts/domain/entities"
)

// AccountRepository определяет операции хранения учетных записей.
type AccountRepository interface {
	Create(ctx context.Context, account *entities.Account) (*entities.Account, error)

	FindByID(ctx context.Context, id string) (*entities.Account, error)

	FindByEmail(ctx context.Context, email string) (*entities.Account, error)
}
