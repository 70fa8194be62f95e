package service

import (
	"context"
	"encoding/json"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/directorylabs/user-directory/internal/api/metrics"
	"github.com/directorylabs/user-directory/internal/core/domain"
	"github.com/directorylabs/user-directory/internal/core/ports"
)

const cacheKeyPrefix = "user:"

// idPattern matches the canonical 36-character identifier surface syntax
// (hexadecimal digits and hyphen separators). Anything else is treated as a
// name when routing the store query.
var idPattern = regexp.MustCompile(`^[0-9a-fA-F-]{36}$`)

// Resolver performs cache-aside lookups by id or name. The cache is a hint:
// missing, unreachable, or corrupted entries all degrade to a single
// authoritative store round trip, and the repaired record is written back
// under both keys.
type Resolver struct {
	repo  ports.UserRepository
	cache ports.UserCache
	ttl   time.Duration
	log   zerolog.Logger
}

func NewResolver(repo ports.UserRepository, cache ports.UserCache, ttl time.Duration, log zerolog.Logger) *Resolver {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Resolver{repo: repo, cache: cache, ttl: ttl, log: log}
}

// CacheKey builds the cache key for an identifier probe. Both the id and the
// name of a record live in the same namespace, so the caller's idOrName maps
// onto a single key shape.
func CacheKey(idOrName string) string {
	return cacheKeyPrefix + idOrName
}

// Resolve returns the record matching idOrName, consulting the cache first.
// The only error surfaced to callers is domain.ErrUserNotFound (or a store
// failure); every cache-level problem is swallowed and logged.
func (r *Resolver) Resolve(ctx context.Context, idOrName string) (*domain.User, error) {
	key := CacheKey(idOrName)

	if user := r.fromCache(ctx, key); user != nil {
		return user, nil
	}

	var user *domain.User
	var err error
	if idPattern.MatchString(idOrName) {
		user, err = r.repo.FindByID(ctx, idOrName)
	} else {
		user, err = r.repo.FindByName(ctx, idOrName)
	}
	if err != nil {
		return nil, err
	}

	r.Refresh(ctx, user)
	return user, nil
}

// fromCache attempts the fast path. A well-formed hit returns the decoded
// record; a corrupted entry is deleted best-effort and nil is returned so the
// caller falls through to the store.
func (r *Resolver) fromCache(ctx context.Context, key string) *domain.User {
	raw, found, err := r.cache.Get(ctx, key)
	if err != nil {
		metrics.CacheMissesTotal.WithLabelValues("error").Inc()
		r.log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return nil
	}
	if !found {
		metrics.CacheMissesTotal.WithLabelValues("miss").Inc()
		return nil
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == "" {
		metrics.CacheMissesTotal.WithLabelValues("corrupted").Inc()
		r.log.Warn().Str("key", key).Msg("corrupted cache entry, deleting it")
		if delErr := r.cache.Delete(ctx, key); delErr != nil {
			r.log.Warn().Err(delErr).Str("key", key).Msg("failed to delete corrupted cache entry")
		}
		return nil
	}

	metrics.CacheHitsTotal.Inc()
	r.log.Debug().Str("key", key).Msg("user fetched from cache")
	return &user
}

// Refresh serializes user and writes it under both keys with the configured
// TTL as one batched operation. Failure is non-fatal: the store already holds
// the truth and the next resolve repairs the cache.
func (r *Resolver) Refresh(ctx context.Context, user *domain.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		metrics.CacheWriteErrorsTotal.Inc()
		r.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to serialize user for cache")
		return
	}

	entries := map[string]string{
		CacheKey(user.ID):   string(raw),
		CacheKey(user.Name): string(raw),
	}
	if err := r.cache.SetMulti(ctx, entries, r.ttl); err != nil {
		metrics.CacheWriteErrorsTotal.Inc()
		r.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to refresh user cache")
		return
	}

	r.log.Debug().Str("user_id", user.ID).Str("name", user.Name).Msg("user cache refreshed")
}

// Invalidate removes both keys for a record as one batched operation.
// Best-effort: entries expire on their own within the TTL anyway.
func (r *Resolver) Invalidate(ctx context.Context, user *domain.User) {
	keys := []string{CacheKey(user.ID), CacheKey(user.Name)}
	if err := r.cache.DeleteMulti(ctx, keys); err != nil {
		r.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to invalidate user cache")
		return
	}
	r.log.Debug().Str("user_id", user.ID).Str("name", user.Name).Msg("user cache invalidated")
}
