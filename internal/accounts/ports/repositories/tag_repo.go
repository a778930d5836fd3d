package repositories

import (
	"context"

	"signupflow/internal/accounts/domain/entities"
)

// TagRepository определяет операции с каталогом тегов.
type TagRepository interface {
	Create(ctx context.Context, name string) (*entities.Tag, error)

	List(ctx context.Context, skip, limit int) (*entities.TagPage, error)

	FindByID(ctx context.Context, id string) (*entities.Tag, error)

	Update(ctx context.Context, id, name string) (*entities.Tag, error)

	Delete(ctx context.Context, id string) error
}

// AccountTagRepository хранит связи пользователь-тег.
type AccountTagRepository interface {
	// Assign создает связь; повторное назначение не является ошибкой.
	Assign(ctx context.Context, accountID, tagID string) error

	Unassign(ctx context.Context, accountID, tagID string) error

	ListByAccount(ctx context.Context, accountID string) ([]*entities.Tag, error)
}
