package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"signupflow/internal/accounts/domain/entities"
	"signupflow/internal/accounts/ports/repositories"
	"signupflow/pkg/logger"
)

// TagRepository реализует repositories.TagRepository.
type TagRepository struct {
	pool PgxPoolInterface
}

// NewTagRepository создает репозиторий каталога тегов.
func NewTagRepository(pool PgxPoolInterface) repositories.TagRepository {
	return &TagRepository{pool: pool}
}

// Create добавляет тег в каталог.
func (r *TagRepository) Create(ctx context.Context, name string) (*entities.Tag, error) {
	log := logger.Log(ctx).With(zap.String("repository", "tag"), zap.String("method", "Create"))

	var tag entities.Tag
	err := r.pool.QueryRow(ctx,
		`INSERT INTO tags (name) VALUES ($1) RETURNING id, name, created_at`,
		name,
	).Scan(&tag.ID, &tag.Name, &tag.CreatedAt)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgUniqueViolation {
			return nil, entities.ErrTagAlreadyExists
		}
		log.Error(ctx, "failed to create tag", zap.Error(err))
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return &tag, nil
}

// List возвращает страницу каталога, отсортированную по имени.
func (r *TagRepository) List(ctx context.Context, skip, limit int) (*entities.TagPage, error) {
	log := logger.Log(ctx).With(zap.String("repository", "tag"), zap.String("method", "List"))
	log.Debug(ctx, "listing tags", zap.Int("skip", skip), zap.Int("limit", limit))

	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tags`).Scan(&count); err != nil {
		log.Error(ctx, "failed to count tags", zap.Error(err))
		return nil, fmt.Errorf("failed to count tags: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, created_at FROM tags ORDER BY name OFFSET $1 LIMIT $2`,
		skip, limit,
	)
	if err != nil {
		log.Error(ctx, "failed to list tags", zap.Error(err))
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags, err := scanTags(rows)
	if err != nil {
		log.Error(ctx, "failed to scan tags", zap.Error(err))
		return nil, fmt.Errorf("failed to scan tags: %w", err)
	}

	return &entities.TagPage{Tags: tags, Count: count}, nil
}

// FindByID находит тег по id.
func (r *TagRepository) FindByID(ctx context.Context, id string) (*entities.Tag, error) {
	var tag entities.Tag
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, created_at FROM tags WHERE id = $1`,
		id,
	).Scan(&tag.ID, &tag.Name, &tag.CreatedAt)
	if err != nil {
		if missingRow(err) {
			return nil, entities.ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return &tag, nil
}

// Update переименовывает тег.
func (r *TagRepository) Update(ctx context.Context, id, name string) (*entities.Tag, error) {
	log := logger.Log(ctx).With(zap.String("repository", "tag"), zap.String("method", "Update"), zap.String("tagID", id))

	var tag entities.Tag
	err := r.pool.QueryRow(ctx,
		`UPDATE tags SET name = $2 WHERE id = $1 RETURNING id, name, created_at`,
		id, name,
	).Scan(&tag.ID, &tag.Name, &tag.CreatedAt)
	if err != nil {
		if missingRow(err) {
			return nil, entities.ErrTagNotFound
		}
		if code, _ := pgErrorCode(err); code == pgUniqueViolation {
			return nil, entities.ErrTagAlreadyExists
		}
		log.Error(ctx, "failed to update tag", zap.Error(err))
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	return &tag, nil
}

// Delete удаляет тег из каталога вместе со связями с пользователями.
func (r *TagRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "tag"), zap.String("method", "Delete"), zap.String("tagID", id))

	result, err := r.pool.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		if missingRow(err) {
			return entities.ErrTagNotFound
		}
		log.Error(ctx, "failed to delete tag", zap.Error(err))
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrTagNotFound
	}

	log.Debug(ctx, "tag deleted")
	return nil
}

func scanTags(rows pgx.Rows) ([]*entities.Tag, error) {
	tags := make([]*entities.Tag, 0)
	for rows.Next() {
		var tag entities.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}
	return tags, rows.Err()
}
