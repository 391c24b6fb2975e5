package boardstate

// CacheEntry is one transposition-cache record: the retained state info and
// legal-move set recorded for a zkey, plus an optional cached static
// evaluation (nil when not yet scored).
type CacheEntry struct {
	Info  RetainedStateInfo
	Moves *MotionSet
	Eval  *int32
}

// TranspositionCache is an advisory, last-write-wins map from zkey to
// CacheEntry. It is never authoritative: a cache miss, or a stale hit from
// a zkey collision, must never change search or move-generation results —
// only save work recomputing them (spec.md §4.6).
type TranspositionCache struct {
	entries map[uint64]CacheEntry
}

// NewTranspositionCache builds an empty cache.
func NewTranspositionCache() *TranspositionCache {
	return &TranspositionCache{entries: make(map[uint64]CacheEntry)}
}

// Get returns the entry for key and whether one was present.
func (c *TranspositionCache) Get(key uint64) (CacheEntry, bool) {
	e, ok := c.entries[key]
	return e, ok
}

// Put stores (overwriting any prior entry) the record for key.
func (c *TranspositionCache) Put(key uint64, e CacheEntry) {
	c.entries[key] = e
}

// StoreEval attaches an evaluation to whatever entry (if any) is already
// stored for key, without disturbing Info/Moves. A miss is a no-op: the
// cache never manufactures an entry out of an evaluation alone.
func (c *TranspositionCache) StoreEval(key uint64, eval int32) {
	e, ok := c.entries[key]
	if !ok {
		return
	}
	v := eval
	e.Eval = &v
	c.entries[key] = e
}

// Len returns the number of entries currently cached.
func (c *TranspositionCache) Len() int { return len(c.entries) }
