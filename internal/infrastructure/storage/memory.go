package storage

import (
	"context"
	"net/url"
	"sync"
	"time"
)

// MemoryArchive keeps objects in process. Development and tests use it in place of S3Archive.
type MemoryArchive struct {
	// BaseURL prefixes generated download links
	BaseURL string

	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	data        []byte
	contentType string
}

// NewMemoryArchive creates an empty archive
func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{
		BaseURL: "memory://archive",
		objects: make(map[string]memoryObject),
	}
}

// Put stores a copy of data under key
func (m *MemoryArchive) Put(_ context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errKeyRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{data: append([]byte(nil), data...), contentType: contentType}
	return nil
}

// DownloadURL returns a fake link that stays valid for fifteen minutes
func (m *MemoryArchive) DownloadURL(_ context.Context, key string) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errKeyRequired
	}
	link, err := url.JoinPath(m.BaseURL, key)
	if err != nil {
		return "", time.Time{}, err
	}
	return link, time.Now().Add(defaultPresignExpiration), nil
}

// Get returns the stored bytes and content type
func (m *MemoryArchive) Get(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj.data, obj.contentType, ok
}

// Keys lists every stored key
func (m *MemoryArchive) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	return keys
}
