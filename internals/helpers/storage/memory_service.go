package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

const memoryBaseURL = "mem://sponsorku/"

// MemoryBlobService: penyimpanan in-process untuk test & dev lokal.
type MemoryBlobService struct {
	mu      sync.Mutex
	objects map[string][]byte
	trashed map[string][]byte
	// FailPut: kalau diisi, Put selalu gagal (simulasi provider down)
	FailPut error
}

func NewMemoryBlobService() *MemoryBlobService {
	return &MemoryBlobService{
		objects: map[string][]byte{},
		trashed: map[string][]byte{},
	}
}

func (m *MemoryBlobService) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	if m.FailPut != nil {
		return "", m.FailPut
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = append([]byte(nil), data...)
	return memoryBaseURL + key, nil
}

func (m *MemoryBlobService) DeleteByURL(_ context.Context, publicURL string) error {
	key, ok := strings.CutPrefix(publicURL, memoryBaseURL)
	if !ok {
		return fmt.Errorf("unknown url %q", publicURL)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *MemoryBlobService) MoveToTrash(_ context.Context, publicURL string) error {
	key, ok := strings.CutPrefix(publicURL, memoryBaseURL)
	if !ok {
		return fmt.Errorf("unknown url %q", publicURL)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if data, exists := m.objects[key]; exists {
		m.trashed[key] = data
		delete(m.objects, key)
	}
	return nil
}

func (m *MemoryBlobService) Has(publicURL string) bool {
	key, ok := strings.CutPrefix(publicURL, memoryBaseURL)
	if !ok {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.objects[key]
	return exists
}

func (m *MemoryBlobService) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

func (m *MemoryBlobService) TrashedLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.trashed)
}
