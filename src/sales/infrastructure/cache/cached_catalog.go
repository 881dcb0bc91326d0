package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"

	"golang.org/x/sync/singleflight"
)

type cachedItem struct {
	item      entity.ItemInfo
	expiresAt time.Time
}

// CachedCatalog aplica cache-aside sobre otro catálogo (normalmente PIM).
// Lookups concurrentes del mismo item comparten una sola llamada al origen.
// Solo se cachean respuestas exitosas
type CachedCatalog struct {
	origin port.ItemCatalog
	ttl    time.Duration
	now    func() time.Time

	mu    sync.RWMutex
	items map[int]cachedItem
	group singleflight.Group
}

// NewCachedCatalog crea el decorador con el TTL dado
func NewCachedCatalog(origin port.ItemCatalog, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{
		origin: origin,
		ttl:    ttl,
		now:    time.Now,
		items:  make(map[int]cachedItem),
	}
}

// LookupItem retorna el item cacheado o lo busca en el origen
func (c *CachedCatalog) LookupItem(ctx context.Context, itemID int) (*entity.ItemInfo, error) {
	if item, ok := c.get(itemID); ok {
		return &item, nil
	}

	v, err, _ := c.group.Do(strconv.Itoa(itemID), func() (interface{}, error) {
		if item, ok := c.get(itemID); ok {
			return item, nil
		}
		found, err := c.origin.LookupItem(ctx, itemID)
		if err != nil {
			return nil, err
		}
		c.set(*found)
		return *found, nil
	})
	if err != nil {
		return nil, err
	}

	item := v.(entity.ItemInfo)
	return &item, nil
}

// Invalidate descarta un item del cache (por ejemplo, ante un cambio de precio)
func (c *CachedCatalog) Invalidate(itemID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, itemID)
}

func (c *CachedCatalog) get(itemID int) (entity.ItemInfo, bool) {
	c.mu.RLock()
	entry, ok := c.items[itemID]
	c.mu.RUnlock()
	if !ok {
		return entity.ItemInfo{}, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.items, itemID)
		c.mu.Unlock()
		return entity.ItemInfo{}, false
	}
	return entry.item, true
}

func (c *CachedCatalog) set(item entity.ItemInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[item.ItemID] = cachedItem{item: item, expiresAt: c.now().Add(c.ttl)}
}
