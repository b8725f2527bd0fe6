package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/domain/resume"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const resumeCacheKey = "portfolio:resume:raw"

type cachedResumeRepo struct {
	inner  resume.Repository
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewCachedResumeRepo keeps the raw resume bytes in Redis for ttl. Redis
// failures are logged and the inner repository is used instead.
func NewCachedResumeRepo(inner resume.Repository, rdb *redis.Client, ttl time.Duration, log logger.Logger) resume.Repository {
	return &cachedResumeRepo{inner: inner, rdb: rdb, ttl: ttl, logger: log}
}

func (r *cachedResumeRepo) Load(ctx context.Context) (*resume.Document, error) {
	raw, err := r.rdb.Get(ctx, resumeCacheKey).Bytes()
	switch {
	case err == nil:
		doc, parseErr := resume.Parse(raw)
		if parseErr == nil {
			return doc, nil
		}
		// corrupt entry: drop it and reload
		r.logger.Warn("Discarding corrupt cached resume", zap.Error(parseErr))
		_ = r.rdb.Del(ctx, resumeCacheKey).Err()
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("Resume cache unavailable", zap.Error(err))
	}

	doc, err := r.inner.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.rdb.Set(ctx, resumeCacheKey, doc.Raw, r.ttl).Err(); err != nil {
		r.logger.Warn("Failed to cache resume", zap.Error(err))
	}
	return doc, nil
}
