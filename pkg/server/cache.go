package server

import (
	"math"
	"sync"

	"github.com/bastiangx/wordchain/pkg/chain"
	"github.com/charmbracelet/log"
)

// resultCache keeps recent chain results keyed by start word and limit.
// The least recently used entry is evicted once maxEntries is reached.
type resultCache struct {
	results     map[cacheKey]*chain.Result
	accessTime  map[cacheKey]int64
	accessCount int64
	hits        int64
	maxEntries  int
	mu          sync.Mutex
}

type cacheKey struct {
	word  string
	limit int
}

// newResultCache returns nil for a non-positive size; a nil cache never hits.
func newResultCache(maxEntries int) *resultCache {
	if maxEntries <= 0 {
		return nil
	}
	return &resultCache{
		results:    make(map[cacheKey]*chain.Result, maxEntries),
		accessTime: make(map[cacheKey]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

func (rc *resultCache) get(word string, limit int) (*chain.Result, bool) {
	if rc == nil {
		return nil, false
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()

	k := cacheKey{word, limit}
	res, ok := rc.results[k]
	if ok {
		rc.hits++
		rc.accessTime[k] = rc.nextAccessTime()
	}
	return res, ok
}

func (rc *resultCache) put(word string, limit int, res *chain.Result) {
	if rc == nil {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()

	k := cacheKey{word, limit}
	if _, ok := rc.results[k]; !ok && len(rc.results) >= rc.maxEntries {
		rc.evictLRU()
	}
	rc.results[k] = res
	rc.accessTime[k] = rc.nextAccessTime()
}

func (rc *resultCache) len() int {
	if rc == nil {
		return 0
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.results)
}

func (rc *resultCache) nextAccessTime() int64 {
	rc.accessCount++
	return rc.accessCount
}

func (rc *resultCache) evictLRU() {
	var oldest cacheKey
	var oldestTime int64 = math.MaxInt64
	found := false

	for k, t := range rc.accessTime {
		if t < oldestTime {
			oldestTime = t
			oldest = k
			found = true
		}
	}

	if found {
		delete(rc.results, oldest)
		delete(rc.accessTime, oldest)
		log.Debugf("Evicted '%s' (limit %d) from result cache", oldest.word, oldest.limit)
	}
}
