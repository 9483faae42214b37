package cache

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Tag labels a group of cached queries that share a lifetime. Mutations
// invalidate tags rather than individual keys, so a mutation does not
// need to know which queries exist.
type Tag string

const (
	TagCurrentUser              Tag = "CurrentUser"
	TagDashboard                Tag = "Dashboard"
	TagItems                    Tag = "Items"
	TagReceipts                 Tag = "Receipts"
	TagPendingReceipts          Tag = "PendingReceipts"
	TagSuperAdminStats          Tag = "SuperAdminStats"
	TagSuperAdminUsers          Tag = "SuperAdminUsers"
	TagSuperAdminUsersWithItems Tag = "SuperAdminUsersWithItems"
	TagPricing                  Tag = "Pricing"
	TagPublicRequests           Tag = "PublicRequests"
	TagCatalog                  Tag = "Catalog"
)

// FetchFunc produces a fresh value for a cache key.
type FetchFunc func(ctx context.Context) (any, error)

type entry struct {
	value any
	valid bool
	tags  []Tag
}

type flight struct {
	done  chan struct{}
	value any
	err   error
}

// Store is a read-through cache keyed by query string. Each entry
// carries the tags it was stored under; invalidating a tag marks every
// matching entry stale so the next read refetches. Concurrent reads of
// a missing or stale key share a single fetch.
type Store struct {
	mu          sync.Mutex
	entries     map[string]*entry
	inflight    map[string]*flight
	subscribers map[int]func([]Tag)
	nextSubID   int
	logger      *zap.Logger
}

// NewStore returns an empty cache. The logger may be nil.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		entries:     make(map[string]*entry),
		inflight:    make(map[string]*flight),
		subscribers: make(map[int]func([]Tag)),
		logger:      logger,
	}
}

// Get returns the cached value for key, fetching it when the entry is
// missing or stale. A failed fetch leaves any stale value in place and
// caches nothing.
func (s *Store) Get(ctx context.Context, key string, tags []Tag, fetch FetchFunc) (any, error) {
	s.mu.Lock()
	if cached, ok := s.entries[key]; ok && cached.valid {
		value := cached.value
		s.mu.Unlock()
		return value, nil
	}
	if pending, ok := s.inflight[key]; ok {
		s.mu.Unlock()
		select {
		case <-pending.done:
			return pending.value, pending.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	pending := &flight{done: make(chan struct{})}
	s.inflight[key] = pending
	s.mu.Unlock()

	value, err := fetch(ctx)

	s.mu.Lock()
	delete(s.inflight, key)
	if err == nil {
		s.entries[key] = &entry{value: value, valid: true, tags: tags}
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Debug("cache fetch failed", zap.String("key", key), zap.Error(err))
	}

	pending.value = value
	pending.err = err
	close(pending.done)
	return value, err
}

// Peek returns the cached value for key without fetching. The second
// result reports whether a fresh entry was present.
func (s *Store) Peek(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cached, ok := s.entries[key]
	if !ok || !cached.valid {
		return nil, false
	}
	return cached.value, true
}

// Invalidate marks every entry carrying one of the given tags stale and
// notifies subscribers. Entries keep their last value so callers that
// tolerate staleness can still Peek it.
func (s *Store) Invalidate(tags ...Tag) {
	if len(tags) == 0 {
		return
	}
	tagSet := make(map[Tag]struct{}, len(tags))
	for _, tag := range tags {
		tagSet[tag] = struct{}{}
	}

	s.mu.Lock()
	for key, cached := range s.entries {
		if !cached.valid {
			continue
		}
		for _, tag := range cached.tags {
			if _, hit := tagSet[tag]; hit {
				cached.valid = false
				s.logger.Debug("cache entry invalidated", zap.String("key", key), zap.String("tag", string(tag)))
				break
			}
		}
	}
	notify := make([]func([]Tag), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		notify = append(notify, fn)
	}
	s.mu.Unlock()

	for _, fn := range notify {
		fn(tags)
	}
}

// Clear drops every entry. Used on logout so the next session never
// sees the previous user's data.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]*entry)
	s.mu.Unlock()
}

// Subscribe registers a callback invoked after each invalidation with
// the tags that were invalidated. The returned function cancels the
// subscription.
func (s *Store) Subscribe(fn func(tags []Tag)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Fetch is the typed front of Store.Get.
func Fetch[T any](ctx context.Context, s *Store, key string, tags []Tag, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	value, err := s.Get(ctx, key, tags, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("cache: key %q holds %T", key, value)
	}
	return typed, nil
}
