package lint

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/xxh3"
)

// DefaultCacheSize is the number of file results kept by NewResultCache(0).
const DefaultCacheSize = 1000

// ResultCache keeps recent per-file results keyed by a hash of the path
// and the file contents, so unchanged files are not re-linted in watch
// mode or by repeated MCP calls. It is safe for concurrent use.
type ResultCache struct {
	cache *lru.Cache[uint64, *FileResult]

	hits   atomic.Int64
	misses atomic.Int64
}

// NewResultCache returns a cache holding up to size results.
func NewResultCache(size int) (*ResultCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[uint64, *FileResult](size)
	if err != nil {
		return nil, err
	}
	return &ResultCache{cache: cache}, nil
}

// Get returns the cached result for filePath with the given contents.
func (c *ResultCache) Get(filePath string, source []byte) (*FileResult, bool) {
	result, ok := c.cache.Get(cacheKey(filePath, source))
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return result, ok
}

// Put stores result for filePath with the given contents.
func (c *ResultCache) Put(filePath string, source []byte, result *FileResult) {
	c.cache.Add(cacheKey(filePath, source), result)
}

// Purge drops every entry.
func (c *ResultCache) Purge() {
	c.cache.Purge()
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Entries int
	Hits    int64
	Misses  int64
}

// Stats returns current counters.
func (c *ResultCache) Stats() CacheStats {
	return CacheStats{
		Entries: c.cache.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}

func cacheKey(filePath string, source []byte) uint64 {
	h := xxh3.New()
	_, _ = h.WriteString(filePath)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(source)
	return h.Sum64()
}
