package kvstore

import (
	"context"
	"slices"
	"sync"
)

type memoryKey struct {
	userId int
	key    string
}

type MemoryStore struct {
	mu   sync.RWMutex
	data map[memoryKey][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[memoryKey][]byte{}}
}

func (s *MemoryStore) Get(_ context.Context, userId int, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[memoryKey{userId, key}]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(value), nil
}

func (s *MemoryStore) Put(_ context.Context, userId int, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[memoryKey{userId, key}] = slices.Clone(value)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userId int, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, memoryKey{userId, key})
	return nil
}

func (s *MemoryStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = map[memoryKey][]byte{}
}
