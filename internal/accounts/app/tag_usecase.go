package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"signupflow/internal/accounts/domain/entities"
	"signupflow/internal/accounts/ports/api"
	"signupflow/internal/accounts/ports/repositories"
	"signupflow/pkg/logger"
)

const (
	msgTagAssigned   = "tag assigned to account"
	msgTagUnassigned = "tag removed from account"
	msgTagDeleted    = "tag deleted"

	errCtxListingTags    = "listing tags"
	errCtxCreatingTag    = "creating tag"
	errCtxGettingTag     = "getting tag"
	errCtxUpdatingTag    = "updating tag"
	errCtxDeletingTag    = "deleting tag"
	errCtxAssigningTag   = "assigning tag"
	errCtxUnassigningTag = "unassigning tag"
	errCtxAccountTags    = "listing account tags"
)

// TagUseCaseImpl реализует api.TagUseCase.
type TagUseCaseImpl struct {
	tagRepo        repositories.TagRepository
	accountTagRepo repositories.AccountTagRepository
}

// NewTagUseCase создает сценарии работы с тегами.
func NewTagUseCase(tagRepo repositories.TagRepository, accountTagRepo repositories.AccountTagRepository) api.TagUseCase {
	return &TagUseCaseImpl{
		tagRepo:        tagRepo,
		accountTagRepo: accountTagRepo,
	}
}

// ListTags возвращает страницу каталога. Нулевой limit означает значение по умолчанию.
func (t *TagUseCaseImpl) ListTags(ctx context.Context, skip, limit int) (*entities.TagPage, error) {
	if limit == 0 {
		limit = entities.DefaultTagLimit
	}
	if skip < 0 || limit < 0 || limit > entities.MaxTagLimit {
		return nil, fmt.Errorf("%s: %w", errCtxListingTags, entities.ErrInvalidPage)
	}

	page, err := t.tagRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingTags, err)
	}
	return page, nil
}

// CreateTag добавляет тег в каталог.
func (t *TagUseCaseImpl) CreateTag(ctx context.Context, name string) (*entities.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingTag, entities.ErrEmptyTagName)
	}

	tag, err := t.tagRepo.Create(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingTag, err)
	}
	return tag, nil
}

// GetTag возвращает тег каталога.
func (t *TagUseCaseImpl) GetTag(ctx context.Context, id string) (*entities.Tag, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxGettingTag, entities.ErrTagNotFound)
	}

	tag, err := t.tagRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxGettingTag, err)
	}
	return tag, nil
}

// UpdateTag переименовывает тег.
func (t *TagUseCaseImpl) UpdateTag(ctx context.Context, id, name string) (*entities.Tag, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingTag, entities.ErrTagNotFound)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingTag, entities.ErrEmptyTagName)
	}

	tag, err := t.tagRepo.Update(ctx, id, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingTag, err)
	}
	return tag, nil
}

// DeleteTag удаляет тег из каталога. Назначения тега пользователям удаляются вместе с ним.
func (t *TagUseCaseImpl) DeleteTag(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingTag, entities.ErrTagNotFound)
	}

	if err := t.tagRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingTag, err)
	}

	logger.Log(ctx).Info(ctx, msgTagDeleted, zap.String("tagID", id))
	return nil
}

// AssignTag привязывает тег к пользователю. Операция идемпотентна.
func (t *TagUseCaseImpl) AssignTag(ctx context.Context, accountID, tagID string) error {
	if err := checkIDs(accountID, tagID); err != nil {
		return fmt.Errorf("%s: %w", errCtxAssigningTag, err)
	}

	if err := t.accountTagRepo.Assign(ctx, accountID, tagID); err != nil {
		return fmt.Errorf("%s: %w", errCtxAssigningTag, err)
	}

	logger.Log(ctx).Debug(ctx, msgTagAssigned, zap.String("accountID", accountID), zap.String("tagID", tagID))
	return nil
}

// UnassignTag отвязывает тег от пользователя.
func (t *TagUseCaseImpl) UnassignTag(ctx context.Context, accountID, tagID string) error {
	if err := checkIDs(accountID, tagID); err != nil {
		return fmt.Errorf("%s: %w", errCtxUnassigningTag, err)
	}

	if err := t.accountTagRepo.Unassign(ctx, accountID, tagID); err != nil {
		return fmt.Errorf("%s: %w", errCtxUnassigningTag, err)
	}

	logger.Log(ctx).Debug(ctx, msgTagUnassigned, zap.String("accountID", accountID), zap.String("tagID", tagID))
	return nil
}

// ListAccountTags возвращает теги пользователя.
func (t *TagUseCaseImpl) ListAccountTags(ctx context.Context, accountID string) ([]*entities.Tag, error) {
	if _, err := uuid.Parse(accountID); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxAccountTags, entities.ErrAccountNotFound)
	}

	tags, err := t.accountTagRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxAccountTags, err)
	}
	return tags, nil
}

func checkIDs(accountID, tagID string) error {
	if _, err := uuid.Parse(accountID); err != nil {
		return entities.ErrAccountNotFound
	}
	if _, err := uuid.Parse(tagID); err != nil {
		return entities.ErrTagNotFound
	}
	return nil
}
