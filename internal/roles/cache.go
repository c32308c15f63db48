package roles

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
	"github.com/rangerclubhouse/clubhouse/internal/platform/cache"
)

const (
	cacheKeyPrefix      = "roles:person:"
	invalidationChannel = "roles.invalidate"
)

// Loader reads a person's granted roles from the source of truth.
type Loader interface {
	RolesForPerson(ctx context.Context, personID int64) ([]filters.Role, error)
}

type localEntry struct {
	roles   filters.RoleSet
	expires time.Time
}

// Cache resolves effective roles per person. Lookups go through an
// in-process map, then Redis, then the Loader; concurrent misses for one
// person share a single load. Entries are dropped explicitly through
// Invalidate whenever grants change.
type Cache struct {
	loader Loader
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu    sync.RWMutex
	local map[int64]localEntry
	// gen is bumped on every invalidation; loads that started under an
	// older generation must not publish what they read.
	gen   map[int64]uint64
	group singleflight.Group
}

// NewCache builds a Cache. client may be nil, in which case only the
// in-process layer is used.
func NewCache(loader Loader, client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		loader: loader,
		client: client,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
		local:  make(map[int64]localEntry),
		gen:    make(map[int64]uint64),
	}
}

func cacheKey(personID int64) string {
	return cacheKeyPrefix + strconv.FormatInt(personID, 10)
}

// Roles returns the role set granted to personID.
func (c *Cache) Roles(ctx context.Context, personID int64) (filters.RoleSet, error) {
	if set, ok := c.fromLocal(personID); ok {
		return set, nil
	}
	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(cacheKey(personID), func() (any, error) {
		return c.load(flightCtx, personID)
	})
	if err != nil {
		return filters.RoleSet{}, err
	}
	return v.(filters.RoleSet), nil
}

func (c *Cache) fromLocal(personID int64) (filters.RoleSet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.local[personID]
	if !ok || c.now().After(entry.expires) {
		return filters.RoleSet{}, false
	}
	return entry.roles, true
}

func (c *Cache) generation(personID int64) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen[personID]
}

// store keeps set locally unless personID was invalidated after gen was
// observed. It reports whether the entry was stored.
func (c *Cache) store(personID int64, gen uint64, set filters.RoleSet) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen[personID] != gen {
		return false
	}
	c.local[personID] = localEntry{roles: set, expires: c.now().Add(c.ttl)}
	return true
}

func (c *Cache) load(ctx context.Context, personID int64) (filters.RoleSet, error) {
	key := cacheKey(personID)
	gen := c.generation(personID)
	if c.client != nil {
		var ids []filters.Role
		found, err := cache.GetJSON(ctx, c.client, key, &ids)
		if err != nil {
			c.logger.Warn("role cache read", slog.Int64("person_id", personID), slog.Any("error", err))
		}
		if found {
			set := filters.NewRoleSet(ids...)
			c.store(personID, gen, set)
			return set, nil
		}
	}

	ids, err := c.loader.RolesForPerson(ctx, personID)
	if err != nil {
		return filters.RoleSet{}, fmt.Errorf("roles: load person %d: %w", personID, err)
	}
	set := filters.NewRoleSet(ids...)
	if !c.store(personID, gen, set) || c.client == nil {
		return set, nil
	}
	if err := cache.SetJSON(ctx, c.client, key, set.Roles(), c.ttl); err != nil {
		c.logger.Warn("role cache write", slog.Int64("person_id", personID), slog.Any("error", err))
		return set, nil
	}
	// An invalidation may have landed while the write was in flight.
	if c.generation(personID) != gen {
		if err := c.client.Del(ctx, key).Err(); err != nil {
			c.logger.Warn("role cache retract", slog.Int64("person_id", personID), slog.Any("error", err))
		}
	}
	return set, nil
}

// Invalidate forgets personID's roles here, in Redis and, through the
// invalidation channel, in every other instance.
func (c *Cache) Invalidate(ctx context.Context, personID int64) error {
	c.forget(personID)
	if c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, cacheKey(personID)).Err(); err != nil {
		return fmt.Errorf("roles: invalidate %d: %w", personID, err)
	}
	return c.client.Publish(ctx, invalidationChannel, strconv.FormatInt(personID, 10)).Err()
}

func (c *Cache) forget(personID int64) {
	c.mu.Lock()
	delete(c.local, personID)
	c.gen[personID]++
	c.mu.Unlock()
	c.group.Forget(cacheKey(personID))
}

// ListenForInvalidation subscribes to invalidations published by other
// instances until ctx is done.
func (c *Cache) ListenForInvalidation(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	pubsub := c.client.Subscribe(ctx, invalidationChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("roles: subscribe: %w", err)
	}
	go func() {
		defer func() { _ = pubsub.Close() }()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				personID, err := strconv.ParseInt(msg.Payload, 10, 64)
				if err != nil {
					c.logger.Warn("role cache invalidation payload", slog.String("payload", msg.Payload))
					continue
				}
				c.forget(personID)
			}
		}
	}()
	return nil
}
