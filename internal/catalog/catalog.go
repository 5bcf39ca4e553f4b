// ABOUTME: Read-only exercise catalog with an expiring LRU in front of storage.
// ABOUTME: Callers resolve definitions here before handing them to a session.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"

	"github.com/harperreed/liftlog/internal/models"
)

// ErrNotFound is returned when no definition matches a lookup.
var ErrNotFound = errors.New("exercise not found")

// Source supplies exercise definitions. storage.Repository implements it.
type Source interface {
	ListExerciseDefinitions(ctx context.Context) ([]models.ExerciseDefinition, error)
	ListRecentExerciseDefinitions(ctx context.Context, workoutTypeID int64, limit int) ([]models.ExerciseDefinition, error)
}

const (
	defaultSize = 64
	allKey      = "all"
)

// Cache decorates a Source with an expiring LRU. It is safe for concurrent
// use.
type Cache struct {
	src    Source
	lru    *expirable.LRU[string, []models.ExerciseDefinition]
	logger zerolog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache wraps src. A ttl of zero keeps entries until Invalidate.
func NewCache(src Source, ttl time.Duration, logger zerolog.Logger) *Cache {
	return &Cache{
		src:    src,
		lru:    expirable.NewLRU[string, []models.ExerciseDefinition](defaultSize, nil, ttl),
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// ListExerciseDefinitions returns every definition, ordered by name.
func (c *Cache) ListExerciseDefinitions(ctx context.Context) ([]models.ExerciseDefinition, error) {
	return c.load(allKey, func() ([]models.ExerciseDefinition, error) {
		return c.src.ListExerciseDefinitions(ctx)
	})
}

// ListRecentExerciseDefinitions returns definitions recently used in
// workouts of the given type, most recent first.
func (c *Cache) ListRecentExerciseDefinitions(ctx context.Context, workoutTypeID int64, limit int) ([]models.ExerciseDefinition, error) {
	key := fmt.Sprintf("recent:%d:%d", workoutTypeID, limit)
	return c.load(key, func() ([]models.ExerciseDefinition, error) {
		return c.src.ListRecentExerciseDefinitions(ctx, workoutTypeID, limit)
	})
}

// Find resolves a definition by numeric ID or case-insensitive name.
func (c *Cache) Find(ctx context.Context, nameOrID string) (*models.ExerciseDefinition, error) {
	nameOrID = strings.TrimSpace(nameOrID)
	defs, err := c.ListExerciseDefinitions(ctx)
	if err != nil {
		return nil, err
	}
	if id, err := strconv.ParseInt(nameOrID, 10, 64); err == nil {
		for i := range defs {
			if defs[i].ID == id {
				return &defs[i], nil
			}
		}
	}
	for i := range defs {
		if strings.EqualFold(defs[i].Name, nameOrID) {
			return &defs[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, nameOrID)
}

// Invalidate drops every cached lookup. Call after catalog writes.
func (c *Cache) Invalidate() {
	c.lru.Purge()
	c.logger.Debug().Msg("catalog cache cleared")
}

// Stats reports cache hits and misses since creation.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *Cache) load(key string, fetch func() ([]models.ExerciseDefinition, error)) ([]models.ExerciseDefinition, error) {
	if defs, ok := c.lru.Get(key); ok {
		c.hits.Add(1)
		c.logger.Debug().Str("key", key).Msg("catalog cache hit")
		return clone(defs), nil
	}
	c.misses.Add(1)

	defs, err := fetch()
	if err != nil {
		return nil, fmt.Errorf("failed to load exercise catalog: %w", err)
	}
	c.lru.Add(key, clone(defs))
	return defs, nil
}

func clone(defs []models.ExerciseDefinition) []models.ExerciseDefinition {
	out := make([]models.ExerciseDefinition, len(defs))
	copy(out, defs)
	return out
}
