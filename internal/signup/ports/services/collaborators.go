// Package services определяет внешние сервисы, которые использует мастер регистрации.
package services

import (
	"context"

	"signupflow/internal/signup/domain/entities"
)

// AccountService создает учетные записи.
type AccountService interface {
	Create(ctx context.Context, fields entities.AccountFields) (string, error)
}

// TagCatalogService отдает каталог тегов.
type TagCatalogService interface {
	List(ctx context.Context) ([]entities.TagCatalogEntry, error)
}

// TagAssignmentService назначает тег учетной записи.
type TagAssignmentService interface {
	Assign(ctx context.Context, accountID, tagID string) error
}
