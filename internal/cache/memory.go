package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"menteazul/internal/model"
	"sync"
	"time"
)

// memoryStore is a TTL map of JSON documents used when Redis is not configured
type memoryStore struct {
	mu    sync.Mutex
	items map[string]memoryItem
	ttl   time.Duration
	now   func() time.Time
}

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

func newMemoryStore(ttl time.Duration) *memoryStore {
	return &memoryStore{items: make(map[string]memoryItem), ttl: ttl, now: time.Now}
}

func (s *memoryStore) set(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = memoryItem{data: data, expiresAt: s.now().Add(s.ttl)}
	return nil
}

// get decodes key into v and reports whether a live entry existed
func (s *memoryStore) get(key string, v interface{}) (bool, error) {
	s.mu.Lock()
	item, ok := s.items[key]
	if ok && s.ttl > 0 && !s.now().Before(item.expiresAt) {
		delete(s.items, key)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(item.data, v)
}

func (s *memoryStore) del(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

type memorySessionCache struct{ store *memoryStore }

// NewMemorySessionCache creates an in-process session cache
func NewMemorySessionCache(ttl time.Duration) SessionCache {
	return &memorySessionCache{store: newMemoryStore(ttl)}
}

func (c *memorySessionCache) Set(ctx context.Context, session *model.Session) error {
	return c.store.set(session.ID, session)
}

func (c *memorySessionCache) Get(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session
	ok, err := c.store.get(id, &session)
	if !ok || err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *memorySessionCache) Delete(ctx context.Context, id string) error {
	c.store.del(id)
	return nil
}

type memoryDashboardCache struct {
	store *memoryStore

	mu       sync.Mutex
	versions map[string]int64
}

// NewMemoryDashboardCache creates an in-process dashboard cache
func NewMemoryDashboardCache(ttl time.Duration) DashboardCache {
	return &memoryDashboardCache{store: newMemoryStore(ttl), versions: make(map[string]int64)}
}

func (c *memoryDashboardCache) version(userID string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[userID]
}

func (c *memoryDashboardCache) Get(ctx context.Context, userID string) (*model.Dashboard, int64, error) {
	version := c.version(userID)
	var d model.Dashboard
	ok, err := c.store.get(fmt.Sprintf("%s:%d", userID, version), &d)
	if !ok || err != nil {
		return nil, version, err
	}
	return &d, version, nil
}

func (c *memoryDashboardCache) Set(ctx context.Context, dashboard *model.Dashboard, version int64) error {
	return c.store.set(fmt.Sprintf("%s:%d", dashboard.UserID, version), dashboard)
}

func (c *memoryDashboardCache) Invalidate(ctx context.Context, userID string) error {
	c.mu.Lock()
	old := c.versions[userID]
	c.versions[userID] = old + 1
	c.mu.Unlock()
	c.store.del(fmt.Sprintf("%s:%d", userID, old))
	return nil
}

type memoryTokenDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryTokenDenylist creates an in-process token denylist
func NewMemoryTokenDenylist() TokenDenylist {
	return &memoryTokenDenylist{revoked: make(map[string]time.Time), now: time.Now}
}

func (c *memoryTokenDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for id, exp := range c.revoked {
		if !now.Before(exp) {
			delete(c.revoked, id)
		}
	}
	if now.Before(expiresAt) {
		c.revoked[tokenID] = expiresAt
	}
	return nil
}

func (c *memoryTokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	exp, ok := c.revoked[tokenID]
	return ok && c.now().Before(exp), nil
}
