package repeatfor

import (
	"context"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// MemoryStore is an in-memory ExpansionStore with a TTL and an entry limit.
// When full, the oldest entry is evicted first. All data is lost when the
// process terminates.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]*memoryStoreEntry
	config    MemoryStoreConfig
	stats     MemoryStoreStats
	evictList []string // insertion order
	closed    bool
}

// memoryStoreEntry holds a stored expansion with its expiry
type memoryStoreEntry struct {
	exp       *StoredExpansion
	expiresAt time.Time
}

// MemoryStoreConfig configures a MemoryStore.
type MemoryStoreConfig struct {
	// TTL is how long expansions are kept. Default: 24 hours.
	TTL time.Duration

	// MaxEntries is the maximum number of stored expansions. Default: 1000.
	MaxEntries int
}

// MemoryStoreStats tracks store performance metrics.
type MemoryStoreStats struct {
	Hits       int64
	Misses     int64
	Evictions  int64
	EntryCount int
}

// MemoryStoreDriver is the driver for creating MemoryStore instances.
// The DSN is an optional query string: "ttl=1h&max_entries=100".
type MemoryStoreDriver struct{}

func init() {
	RegisterStoreDriver(StoreDriverNameMemory, &MemoryStoreDriver{})
}

// Open creates a new MemoryStore instance.
func (d *MemoryStoreDriver) Open(dsn string) (ExpansionStore, error) {
	config := MemoryStoreConfig{}
	if dsn == "" {
		return NewMemoryStore(config), nil
	}

	values, err := url.ParseQuery(dsn)
	if err != nil {
		return nil, &StoreError{Message: ErrMsgInvalidStoreSpec, Key: dsn, Cause: err}
	}
	if raw := values.Get(MemoryStoreParamTTL); raw != "" {
		if config.TTL, err = time.ParseDuration(raw); err != nil {
			return nil, &StoreError{Message: ErrMsgInvalidStoreSpec, Key: dsn, Cause: err}
		}
	}
	if raw := values.Get(MemoryStoreParamMaxEntries); raw != "" {
		if config.MaxEntries, err = strconv.Atoi(raw); err != nil {
			return nil, &StoreError{Message: ErrMsgInvalidStoreSpec, Key: dsn, Cause: err}
		}
	}
	return NewMemoryStore(config), nil
}

// NewMemoryStore creates a new in-memory expansion store.
func NewMemoryStore(config MemoryStoreConfig) *MemoryStore {
	if config.TTL <= 0 {
		config.TTL = MemoryStoreDefaultTTL
	}
	if config.MaxEntries <= 0 {
		config.MaxEntries = MemoryStoreDefaultMaxEntries
	}

	return &MemoryStore{
		entries:   make(map[string]*memoryStoreEntry),
		config:    config,
		evictList: make([]string, 0, min(config.MaxEntries, MemoryStoreDefaultMaxEntries)),
	}
}

// Get retrieves an expansion if present and not expired.
func (s *MemoryStore) Get(ctx context.Context, key string) (*StoredExpansion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	entry, ok := s.entries[key]
	if !ok {
		s.stats.Misses++
		return nil, NewStoreNotFoundError(key)
	}
	if time.Now().After(entry.expiresAt) {
		s.removeLocked(key)
		s.stats.Misses++
		return nil, NewStoreNotFoundError(key)
	}

	s.stats.Hits++
	return copyExpansion(entry.exp), nil
}

// Put stores an expansion, evicting the oldest entry when full.
func (s *MemoryStore) Put(ctx context.Context, exp *StoredExpansion) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateExpansion(exp); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}

	if _, exists := s.entries[exp.Key]; exists {
		s.removeLocked(exp.Key)
	}
	for len(s.entries) >= s.config.MaxEntries {
		s.evictOldestLocked()
	}

	stored := copyExpansion(exp)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	s.entries[exp.Key] = &memoryStoreEntry{
		exp:       stored,
		expiresAt: time.Now().Add(s.config.TTL),
	}
	s.evictList = append(s.evictList, exp.Key)
	s.stats.EntryCount = len(s.entries)
	return nil
}

// Delete removes an expansion.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}
	s.removeLocked(key)
	return nil
}

// Close releases the stored data.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.entries = nil
	s.evictList = nil
	return nil
}

// Stats returns current store statistics.
func (s *MemoryStore) Stats() MemoryStoreStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// HitRate returns the hit rate (0.0 to 1.0).
func (s *MemoryStore) HitRate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := s.stats.Hits + s.stats.Misses
	if total == 0 {
		return 0
	}
	return float64(s.stats.Hits) / float64(total)
}

// Cleanup removes expired entries and returns how many were removed.
func (s *MemoryStore) Cleanup() int {
	now := time.Now()
	removed := 0

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			s.removeLocked(key)
			removed++
		}
	}
	return removed
}

// removeLocked deletes key from the map and the eviction order
func (s *MemoryStore) removeLocked(key string) {
	if _, ok := s.entries[key]; !ok {
		return
	}
	delete(s.entries, key)
	for i, k := range s.evictList {
		if k == key {
			s.evictList = append(s.evictList[:i], s.evictList[i+1:]...)
			break
		}
	}
	s.stats.EntryCount = len(s.entries)
}

// evictOldestLocked removes the entry that was stored first
func (s *MemoryStore) evictOldestLocked() {
	if len(s.evictList) == 0 {
		return
	}
	oldest := s.evictList[0]
	s.evictList = s.evictList[1:]
	delete(s.entries, oldest)
	s.stats.Evictions++
	s.stats.EntryCount = len(s.entries)
}
