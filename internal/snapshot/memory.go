package snapshot

import (
	"context"
	"sync"

	"github.com/xenking/pizzeria/internal/pkg/errs"
)

// Memory is an in-process Storage. It keeps a copy of every write.
type Memory struct {
	mu   sync.Mutex
	docs map[string][]byte
}

var _ Storage = (*Memory)(nil)

// NewMemory returns an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

// Write stores a copy of content under key.
func (m *Memory) Write(_ context.Context, key string, content []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.docs[key] = append([]byte(nil), content...)
	return nil
}

// Read returns a copy of the content stored under key.
func (m *Memory) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[key]
	if !ok {
		return nil, errs.NewNotFoundError("snapshot", key)
	}
	return append([]byte(nil), doc...), nil
}
