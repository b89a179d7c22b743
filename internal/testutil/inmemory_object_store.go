package testutil

import (
	"context"
	"fmt"
	"sync"

	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/s3"
)

var _ s3.Service = (*InMemoryObjectStore)(nil)

// InMemoryObjectStore implements s3.Service against a map, keeping
// document tests free of real object storage.
type InMemoryObjectStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewInMemoryObjectStore creates a new in-memory object store
func NewInMemoryObjectStore() *InMemoryObjectStore {
	return &InMemoryObjectStore{
		objects: make(map[string][]byte),
	}
}

func (s *InMemoryObjectStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[key] = buf
	return nil
}

func (s *InMemoryObjectStore) Download(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, ierr.NewError("object not found").
			WithHint("The requested resource was not found").
			Mark(ierr.ErrNotFound)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

func (s *InMemoryObjectStore) GetPresignedURL(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.objects[key]; !ok {
		return "", ierr.NewError("object not found").
			WithHint("The requested resource was not found").
			Mark(ierr.ErrNotFound)
	}
	return fmt.Sprintf("https://storage.test/%s?signed=1", key), nil
}

func (s *InMemoryObjectStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *InMemoryObjectStore) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}

// Clear removes all stored objects
func (s *InMemoryObjectStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = make(map[string][]byte)
}
