package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/noah-isme/adminui-api/internal/table"
	appErrors "github.com/noah-isme/adminui-api/pkg/errors"
)

// MemorySessionRepository keeps table session snapshots in process memory.
// Entries idle for longer than the TTL are treated as gone.
type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	ttl      time.Duration
	now      func() time.Time
}

type memorySession struct {
	snapshot  table.Snapshot
	expiresAt time.Time
}

// NewMemorySessionRepository builds an in-memory store. A non-positive ttl
// disables expiry.
func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]memorySession), ttl: ttl, now: time.Now}
}

// Get returns the snapshot and refreshes its idle deadline.
func (r *MemorySessionRepository) Get(ctx context.Context, id string) (table.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[id]
	if !ok || r.expired(entry) {
		delete(r.sessions, id)
		return table.Snapshot{}, appErrors.ErrSessionNotFound
	}
	entry.expiresAt = r.deadline()
	r.sessions[id] = entry
	return entry.snapshot, nil
}

// Save stores the snapshot, replacing any previous one.
func (r *MemorySessionRepository) Save(ctx context.Context, id string, snap table.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = memorySession{snapshot: snap, expiresAt: r.deadline()}
	return nil
}

// Delete forgets a session. Unknown ids are ignored.
func (r *MemorySessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// IDs lists live sessions and sweeps expired ones.
func (r *MemorySessionRepository) IDs(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.sessions))
	for id, entry := range r.sessions {
		if r.expired(entry) {
			delete(r.sessions, id)
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *MemorySessionRepository) deadline() time.Time {
	if r.ttl <= 0 {
		return time.Time{}
	}
	return r.now().Add(r.ttl)
}

func (r *MemorySessionRepository) expired(entry memorySession) bool {
	return !entry.expiresAt.IsZero() && r.now().After(entry.expiresAt)
}
