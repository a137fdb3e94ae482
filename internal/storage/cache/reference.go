// Package cache adds a Redis read-through layer in front of the reference
// lookups. The data is seeded once and never written at runtime, so entries
// simply expire after the configured TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"vagas-rmc/internal/models"
	"vagas-rmc/internal/storage"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "vagas-rmc:ref:"

// ReferenceRepo caches the list lookups of a storage.ReferenceRepository.
// Existence checks go straight to the inner repository.
type ReferenceRepo struct {
	storage.ReferenceRepository
	client *redis.Client
	ttl    time.Duration
}

// NewReferenceRepo wraps inner. A nil client returns inner unchanged.
func NewReferenceRepo(inner storage.ReferenceRepository, client *redis.Client, ttl time.Duration) storage.ReferenceRepository {
	if client == nil {
		return inner
	}
	return &ReferenceRepo{ReferenceRepository: inner, client: client, ttl: ttl}
}

// ListCities returns the cached city list.
func (r *ReferenceRepo) ListCities(ctx context.Context) ([]models.City, error) {
	return readThrough(ctx, r.client, r.ttl, "cities", r.ReferenceRepository.ListCities)
}

// ListAreas returns the cached job area list.
func (r *ReferenceRepo) ListAreas(ctx context.Context) ([]models.JobArea, error) {
	return readThrough(ctx, r.client, r.ttl, "areas", r.ReferenceRepository.ListAreas)
}

// ListSegments returns the cached segment list.
func (r *ReferenceRepo) ListSegments(ctx context.Context) ([]models.Segment, error) {
	return readThrough(ctx, r.client, r.ttl, "segments", r.ReferenceRepository.ListSegments)
}

// PlanRepo caches the plan catalog listing of a storage.PlanRepository.
type PlanRepo struct {
	storage.PlanRepository
	client *redis.Client
	ttl    time.Duration
}

// NewPlanRepo wraps inner. A nil client returns inner unchanged.
func NewPlanRepo(inner storage.PlanRepository, client *redis.Client, ttl time.Duration) storage.PlanRepository {
	if client == nil {
		return inner
	}
	return &PlanRepo{PlanRepository: inner, client: client, ttl: ttl}
}

// List returns the cached plan catalog.
func (r *PlanRepo) List(ctx context.Context) ([]models.Plan, error) {
	return readThrough(ctx, r.client, r.ttl, "plans", r.PlanRepository.List)
}

// readThrough serves key from Redis, falling back to load on a miss or any
// Redis error. Redis failures never fail the request.
func readThrough[T any](ctx context.Context, client *redis.Client, ttl time.Duration, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	fullKey := keyPrefix + key

	raw, err := client.Get(ctx, fullKey).Bytes()
	if err == nil {
		var items []T
		if jsonErr := json.Unmarshal(raw, &items); jsonErr == nil {
			return items, nil
		}
		log.Printf("Cache: discarding undecodable entry %s", fullKey)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("Cache: GET %s failed: %v", fullKey, err)
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(items); err == nil {
		if err := client.Set(ctx, fullKey, payload, ttl).Err(); err != nil {
			log.Printf("Cache: SET %s failed: %v", fullKey, err)
		}
	}
	return items, nil
}
