package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ogarmory/backend/internal/domain"
)

// SnapshotStore is a thread-safe in-memory catalog snapshot with TTL.
// A stale snapshot reads as a miss, which sends the reconcile path back
// to the upstream store instead of merging against old data.
type SnapshotStore struct {
	data    []byte
	expiry  time.Time
	savedAt time.Time
	ttl     time.Duration
	mutex   sync.RWMutex
}

// Compile-time check that SnapshotStore satisfies the engine contract
var _ domain.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a new in-memory snapshot store
func NewSnapshotStore(ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{ttl: ttl}
}

// Load returns the last saved catalog, or ErrSnapshotMiss when nothing
// was saved or the snapshot has expired
func (s *SnapshotStore) Load(ctx context.Context) ([]domain.CanonicalProduct, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.data == nil {
		return nil, domain.ErrSnapshotMiss
	}

	if time.Now().After(s.expiry) {
		return nil, domain.ErrSnapshotMiss
	}

	var products []domain.CanonicalProduct
	if err := json.Unmarshal(s.data, &products); err != nil {
		return nil, err
	}

	return products, nil
}

// Save replaces the stored catalog and resets the TTL clock.
// The snapshot is serialized so later mutations of the caller's slice
// cannot leak into stored state.
func (s *SnapshotStore) Save(ctx context.Context, products []domain.CanonicalProduct) error {
	jsonData, err := json.Marshal(products)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now()
	s.data = jsonData
	s.savedAt = now
	s.expiry = now.Add(s.ttl)

	return nil
}

// SavedAt reports when the current snapshot was stored (for monitoring)
func (s *SnapshotStore) SavedAt() time.Time {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.savedAt
}

// Clear drops the stored snapshot
func (s *SnapshotStore) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data = nil
	s.expiry = time.Time{}
	s.savedAt = time.Time{}
}
