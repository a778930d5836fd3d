package postgres

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"signupflow/internal/accounts/domain/entities"
	"signupflow/internal/accounts/ports/repositories"
	"signupflow/pkg/logger"
)

// AccountTagRepository реализует repositories.AccountTagRepository.
type AccountTagRepository struct {
	pool PgxPoolInterface
}

// NewAccountTagRepository создает репозиторий связей пользователь-тег.
func NewAccountTagRepository(pool PgxPoolInterface) repositories.AccountTagRepository {
	return &AccountTagRepository{pool: pool}
}

// Assign связывает тег с пользователем. Повторная связь игнорируется.
func (r *AccountTagRepository) Assign(ctx context.Context, accountID, tagID string) error {
	log := logger.Log(ctx).With(
		zap.String("repository", "account_tag"),
		zap.String("method", "Assign"),
		zap.String("accountID", accountID),
		zap.String("tagID", tagID),
	)

	_, err := r.pool.Exec(ctx,
		`INSERT INTO account_tags (account_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		accountID, tagID,
	)
	if err != nil {
		if code, constraint := pgErrorCode(err); code == pgForeignKeyViolation {
			if strings.Contains(constraint, "account_id") {
				return entities.ErrAccountNotFound
			}
			return entities.ErrTagNotFound
		}
		log.Error(ctx, "failed to assign tag", zap.Error(err))
		return fmt.Errorf("failed to assign tag: %w", err)
	}

	log.Debug(ctx, "tag assigned")
	return nil
}

// Unassign удаляет связь тега с пользователем.
func (r *AccountTagRepository) Unassign(ctx context.Context, accountID, tagID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "account_tag"), zap.String("method", "Unassign"))

	if _, err := r.pool.Exec(ctx,
		`DELETE FROM account_tags WHERE account_id = $1 AND tag_id = $2`,
		accountID, tagID,
	); err != nil {
		log.Error(ctx, "failed to unassign tag", zap.Error(err))
		return fmt.Errorf("failed to unassign tag: %w", err)
	}
	return nil
}

// ListByAccount возвращает теги пользователя.
func (r *AccountTagRepository) ListByAccount(ctx context.Context, accountID string) ([]*entities.Tag, error) {
	log := logger.Log(ctx).With(zap.String("repository", "account_tag"), zap.String("method", "ListByAccount"))

	rows, err := r.pool.Query(ctx,
		`SELECT t.id, t.name, t.created_at
         FROM tags t
         JOIN account_tags at ON at.tag_id = t.id
         WHERE at.account_id = $1
         ORDER BY t.name`,
		accountID,
	)
	if err != nil {
		log.Error(ctx, "failed to list account tags", zap.Error(err))
		return nil, fmt.Errorf("failed to list account tags: %w", err)
	}
	defer rows.Close()

	tags, err := scanTags(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan account tags: %w", err)
	}
	return tags, nil
}
