// Package api определяет входящие порты сервиса учетных записей.
package api

import (
	"context"

	"signupflow/internal/accounts/domain/entities"
)

// AccountUseCase - регистрация пользователей.
type AccountUseCase interface {
	Register(ctx context.Context, in *entities.NewAccount) (*entities.Account, error)

	GetAccount(ctx context.Context, id string) (*entities.Account, error)
}

// TagUseCase - каталог тегов и назначение тегов пользователям.
type TagUseCase interface {
	ListTags(ctx context.Context, skip, limit int) (*entities.TagPage, error)

	CreateTag(ctx context.Context, name string) (*entities.Tag, error)

	GetTag(ctx context.Context, id string) (*entities.Tag, error)

	UpdateTag(ctx context.Context, id, name string) (*entities.Tag, error)

	DeleteTag(ctx context.Context, id string) error

	AssignTag(ctx context.Context, accountID, tagID string) error

	UnassignTag(ctx context.Context, accountID, tagID string) error

	ListAccountTags(ctx context.Context, accountID string) ([]*entities.Tag, error)
}
