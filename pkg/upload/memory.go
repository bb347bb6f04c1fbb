package upload

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/circuit"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/errors"
)

// MemoryStore is a mutex-guarded in-memory upload store. It is the only
// backend: uploads are per-instance and vanish on restart.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	uploads map[string]*Upload
	now     func() time.Time // test seam
}

// NewMemoryStore creates an in-memory store. A ttl of 0 means [DefaultTTL].
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		uploads: make(map[string]*Upload),
		now:     time.Now,
	}
}

// Put stores a parsed upload under a fresh uuid. Expired entries are swept
// lazily on every write, so the map cannot grow unbounded without a
// background goroutine.
func (s *MemoryStore) Put(ctx context.Context, name string, edges []circuit.Edge) (*Upload, error) {
	if err := ValidateFilename(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()

	now := s.now()
	u := &Upload{
		ID:        uuid.NewString(),
		Name:      name,
		Edges:     edges,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.uploads[u.ID] = u
	return u, nil
}

// Get retrieves an upload by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Upload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.uploads[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeUploadNotFound, "upload %q not found", id)
	}
	if u.Expired(s.now()) {
		delete(s.uploads, id)
		return nil, errors.New(errors.ErrCodeUploadNotFound, "upload %q has expired", id)
	}
	return u, nil
}

// Delete removes an upload.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.uploads, id)
	return nil
}

// Cleanup removes all expired uploads.
func (s *MemoryStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	return nil
}

// Len reports the number of stored uploads, expired entries included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.uploads)
}

func (s *MemoryStore) sweepLocked() {
	now := s.now()
	for id, u := range s.uploads {
		if u.Expired(now) {
			delete(s.uploads, id)
		}
	}
}
