// Package relcache keeps recent parse results behind a TTL so feed
// rescans and batch reruns do not hit the engine for names seen
// moments ago.
package relcache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/bitzorro/relstring/internal/match"
	"github.com/bitzorro/relstring/internal/parser"
)

const (
	// DefaultTTL is how long a parse result stays valid. Parsing is
	// deterministic, so the TTL only bounds memory, not staleness.
	DefaultTTL = 30 * time.Minute
	// DefaultCleanup is the sweep interval for expired entries.
	DefaultCleanup = 10 * time.Minute
)

// Cache wraps a Parser with an expiring result store.
type Cache struct {
	parser *parser.Parser
	items  *gocache.Cache
}

// New builds a cache in front of p. Non-positive durations fall back
// to the defaults.
func New(p *parser.Parser, ttl, cleanup time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if cleanup <= 0 {
		cleanup = DefaultCleanup
	}
	return &Cache{
		parser: p,
		items:  gocache.New(ttl, cleanup),
	}
}

func key(name string, showType match.ShowType) string {
	return showType.String() + "|" + name
}

// Parse returns the cached result for name, parsing on a miss.
func (c *Cache) Parse(name string, showType match.ShowType) parser.Result {
	k := key(name, showType)
	if v, ok := c.items.Get(k); ok {
		return v.(parser.Result)
	}
	result := c.parser.Parse(name, showType)
	c.items.Set(k, result, gocache.DefaultExpiration)
	return result
}

// Lookup returns a cached result without parsing on a miss.
func (c *Cache) Lookup(name string, showType match.ShowType) (parser.Result, bool) {
	if v, ok := c.items.Get(key(name, showType)); ok {
		return v.(parser.Result), true
	}
	return parser.Result{}, false
}

// Flush drops every cached result.
func (c *Cache) Flush() {
	c.items.Flush()
}

// Len returns the number of cached results, expired entries included
// until the next sweep.
func (c *Cache) Len() int {
	return c.items.ItemCount()
}
