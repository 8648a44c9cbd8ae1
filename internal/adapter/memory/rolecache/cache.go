// Package rolecache keeps profile roles in process memory with a per-entry TTL
package rolecache

import (
	"context"
	"sync"
	"time"

	"gitlab.com/codeprep.net/internal/core/ports/secondary"
)

var _ secondary.RoleCache = (*Cache)(nil)

type entry struct {
	role      string
	expiresAt time.Time
}

type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// New creates an empty cache. A nil clock falls back to time.Now.
func New(now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		entries: make(map[string]entry),
		now:     now,
	}
}

func (c *Cache) Get(ctx context.Context, userID string) (string, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[userID]
	c.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		if cur, ok := c.entries[userID]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.entries, userID)
		}
		c.mu.Unlock()
		return "", false, nil
	}
	return e.role, true, nil
}

func (c *Cache) Set(ctx context.Context, userID, role string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = entry{role: role, expiresAt: c.now().Add(ttl)}
	return nil
}

func (c *Cache) Invalidate(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
	return nil
}

// Sweep drops every expired entry and reports how many were removed
func (c *Cache) Sweep(ctx context.Context) (int, error) {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for userID, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, userID)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of entries, expired ones included
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
