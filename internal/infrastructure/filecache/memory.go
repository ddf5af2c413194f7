package filecache

import (
	"context"
	"sort"
	"sync"
	"time"

	"forsign-esign/internal/domain/entity"
)

type memoryEntry struct {
	ref       entity.FileReference
	expiresAt time.Time // zero when the entry never expires
}

// Memory keeps references in process. Entries are lost on restart.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *Memory) Set(_ context.Context, ref entity.FileReference) error {
	if err := validateRef(ref); err != nil {
		return err
	}

	entry := memoryEntry{ref: ref}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	m.entries[ref.ID] = entry
	m.mu.Unlock()
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (entity.FileReference, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[id]
	m.mu.RUnlock()

	if !ok || m.expired(entry) {
		return entity.FileReference{}, false, nil
	}
	return entry.ref, true, nil
}

// All returns the live references sorted by id.
func (m *Memory) All(_ context.Context) ([]entity.FileReference, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	refs := make([]entity.FileReference, 0, len(m.entries))
	for _, entry := range m.entries {
		if !m.expired(entry) {
			refs = append(refs, entry.ref)
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs, nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}

func (m *Memory) expired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt)
}
