package rbac

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var errBackendDown = errors.New("backend unavailable")

// memoryBackend is an in-memory Backend with failure injection for tests.
type memoryBackend struct {
	mu        sync.Mutex
	records   map[string][]byte
	failRead  bool
	failWrite bool
	deletes   int
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{records: make(map[string][]byte)}
}

func (b *memoryBackend) ReadOverrides(_ context.Context) ([]StoredOverride, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failRead {
		return nil, errBackendDown
	}

	keys := make([]string, 0, len(b.records))
	for k := range b.records {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	out := make([]StoredOverride, 0, len(keys))
	for _, k := range keys {
		out = append(out, StoredOverride{Role: k, Payload: b.records[k]})
	}

	return out, nil
}

func (b *memoryBackend) WriteOverride(_ context.Context, o StoredOverride) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failWrite {
		return errBackendDown
	}

	b.records[o.Role] = o.Payload

	return nil
}

func (b *memoryBackend) DeleteOverride(_ context.Context, role Role) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failWrite {
		return errBackendDown
	}

	b.deletes++
	delete(b.records, string(role))

	return nil
}
