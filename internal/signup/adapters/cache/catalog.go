// Package cache кэширует каталог тегов в Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"signupflow/internal/signup/domain/entities"
	"signupflow/internal/signup/ports/services"
	"signupflow/pkg/db/redis"
	"signupflow/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodList = "list"

	LogCacheHit        = "tag catalog served from cache"
	LogCacheReadFailed = "failed to read tag catalog from cache"
	LogCacheSetFailed  = "failed to store tag catalog in cache"
	LogCacheCorrupted  = "cached tag catalog is corrupted"

	errFailedToFetch = "failed to fetch tag catalog"
)

// CatalogKey - ключ каталога в Redis.
const CatalogKey = "signup:tag_catalog"

// KV - хранилище значений с TTL.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CatalogCache - TagCatalogService, который сначала смотрит в кэш.
// Ошибки кэша не мешают загрузке каталога из источника.
type CatalogCache struct {
	origin services.TagCatalogService
	kv     KV
	ttl    time.Duration
}

// NewCatalogCache оборачивает источник каталога кэшем.
func NewCatalogCache(origin services.TagCatalogService, kv KV, ttl time.Duration) services.TagCatalogService {
	return &CatalogCache{origin: origin, kv: kv, ttl: ttl}
}

// List возвращает каталог из кэша или источника.
func (c *CatalogCache) List(ctx context.Context) ([]entities.TagCatalogEntry, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodList), zap.String("key", CatalogKey))

	raw, err := c.kv.Get(ctx, CatalogKey)
	switch {
	case err == nil:
		var entries []entities.TagCatalogEntry
		if jsonErr := json.Unmarshal(raw, &entries); jsonErr == nil {
			log.Debug(ctx, LogCacheHit, zap.Int("count", len(entries)))
			return entries, nil
		}
		log.Warn(ctx, LogCacheCorrupted)
	case !errors.Is(err, redis.ErrNotFound):
		log.Warn(ctx, LogCacheReadFailed, zap.Error(err))
	}

	entries, err := c.origin.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errFailedToFetch, err)
	}

	if payload, jsonErr := json.Marshal(entries); jsonErr == nil {
		if setErr := c.kv.Set(ctx, CatalogKey, payload, c.ttl); setErr != nil {
			log.Warn(ctx, LogCacheSetFailed, zap.Error(setErr))
		}
	}

	return entries, nil
}
