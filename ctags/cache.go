package ctags

import (
	"sync"

	"github.com/minio/highwayhash"
)

// hashKey is a fixed 32-byte HighwayHash key; content fingerprints only
// need to be stable within one process, not cryptographically keyed.
// Adapted from inspector/graph/hash.go's Document.Hash.
var hashKey = []byte("0123456789ABCDEF0123456789ABCDEF")

// Hash fingerprints file content for ContentCache lookups.
func Hash(data []byte) (uint64, error) {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0, err
	}
	if _, err := h.Write(data); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

// cacheKey is (filename, content-hash): BuildTags bakes the request's
// filename into every TagReply.Path, so a cache hit keyed on hash alone
// would hand back tag replies naming the wrong file whenever identical
// content is submitted under a different filename.
type cacheKey struct {
	filename string
	hash     uint64
}

// ContentCache memoizes the tag list produced for a given (filename,
// content-hash) pair, so re-indexing identical file content (vendored
// copies, repeated builds) skips re-parsing and re-walking the scope tree.
type ContentCache struct {
	mu      sync.Mutex
	entries map[cacheKey][]TagReply
}

// NewContentCache builds an empty cache.
func NewContentCache() *ContentCache {
	return &ContentCache{entries: map[cacheKey][]TagReply{}}
}

// Get returns the cached tag list for (filename, hash), if any.
func (c *ContentCache) Get(filename string, hash uint64) ([]TagReply, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tags, ok := c.entries[cacheKey{filename: filename, hash: hash}]
	return tags, ok
}

// Put stores the tag list computed for (filename, hash).
func (c *ContentCache) Put(filename string, hash uint64, tags []TagReply) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{filename: filename, hash: hash}] = tags
}
