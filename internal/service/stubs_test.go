package service

import (
	"context"
	"sync"

	"github.com/noah-isme/sma-console-gateway/internal/repository"
)

type memoryBlobs struct {
	mu      sync.Mutex
	data    map[string][]byte
	getErr  error
	puts    int
	deletes int
}

func newMemoryBlobs() *memoryBlobs {
	return &memoryBlobs{data: make(map[string][]byte)}
}

func (m *memoryBlobs) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, repository.ErrBlobNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *memoryBlobs) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memoryBlobs) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	delete(m.data, key)
	return nil
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }
