package quest

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/HabitQuest_Go/internal/domain"
)

const (
	catalogCacheKey  = "active"
	catalogCacheSize = 8
	catalogCacheTTL  = 5 * time.Minute
)

// catalogCache keeps the active quest catalog in memory. The catalog changes
// rarely (seed migrations, admin edits), so a short TTL is enough to pick up
// changes without hitting the database on every assignment.
type catalogCache struct {
	lru *expirable.LRU[string, []domain.Quest]
}

func newCatalogCache() *catalogCache {
	return &catalogCache{
		lru: expirable.NewLRU[string, []domain.Quest](catalogCacheSize, nil, catalogCacheTTL),
	}
}

func (c *catalogCache) Get() ([]domain.Quest, bool) {
	return c.lru.Get(catalogCacheKey)
}

func (c *catalogCache) Set(quests []domain.Quest) {
	c.lru.Add(catalogCacheKey, quests)
}

func (c *catalogCache) Clear() {
	c.lru.Purge()
}
