// Package notify caches the logged-in user's notifications and the derived
// unread count.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/futofind/futofind/internal/model"
)

// Source fetches and acknowledges notifications on the backend.
type Source interface {
	Notifications(ctx context.Context) ([]model.Notification, error)
	MarkNotificationsRead(ctx context.Context) error
}

// Snapshot is a point-in-time copy of the cache.
type Snapshot struct {
	Notifications []model.Notification
	Unread        int
}

// Cache holds the notification list. Unread always equals the number of
// entries with IsRead false.
type Cache struct {
	src Source

	mu     sync.RWMutex
	items  []model.Notification
	unread int
	// gen is bumped by Reset; fetches started under an older gen are dropped.
	gen uint64
}

// New returns an empty cache backed by src.
func New(src Source) *Cache {
	return &Cache{src: src}
}

// Refresh replaces the cache with the backend list. Failures are logged and
// the previous contents are kept. A list that arrives after Reset is
// discarded.
func (c *Cache) Refresh(ctx context.Context) {
	gen := c.generation()
	items, err := c.src.Notifications(ctx)
	if err != nil {
		slog.Error("failed to fetch notifications", "error", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		slog.Debug("dropping notifications fetched before reset")
		return
	}
	c.items = items
	c.unread = model.CountUnread(items)
}

// MarkAllRead acknowledges every notification. It makes no backend call
// when nothing is unread. On failure the cache is left untouched. Only the
// entries cached when the call started are marked; anything a concurrent
// Refresh brought in keeps its backend state.
func (c *Cache) MarkAllRead(ctx context.Context) error {
	c.mu.RLock()
	gen := c.gen
	marked := make(map[string]bool, len(c.items))
	for _, n := range c.items {
		marked[n.ID] = true
	}
	unread := c.unread
	c.mu.RUnlock()

	if unread == 0 {
		return nil
	}
	if err := c.src.MarkNotificationsRead(ctx); err != nil {
		slog.Error("failed to mark notifications as read", "error", err)
		return fmt.Errorf("marking notifications read: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return nil
	}
	items := make([]model.Notification, len(c.items))
	for i, n := range c.items {
		if marked[n.ID] {
			n.IsRead = true
		}
		items[i] = n
	}
	c.items = items
	c.unread = model.CountUnread(items)
	return nil
}

// Reset empties the cache and invalidates fetches still in flight.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.items = nil
	c.unread = 0
	c.gen++
	c.mu.Unlock()
}

func (c *Cache) generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// UnreadCount returns the number of unread notifications.
func (c *Cache) UnreadCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.unread
}

// Snapshot returns a copy of the cached list and unread count.
func (c *Cache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		Notifications: append([]model.Notification(nil), c.items...),
		Unread:        c.unread,
	}
}
