// Package storage provides the blob storage capability used for photo
// uploads: store bytes, get a stable locator URL back.
package storage

import (
	"context"
	"fmt"
	"strings"
)

// Storage stores uploaded blobs and returns a stable locator URL.
type Storage interface {
	Store(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Mock is a storage backend that returns deterministic placeholder
// locators without persisting anything. It is the default backend and
// keeps the core testable without real object storage.
type Mock struct {
	BaseURL string
}

// NewMock creates a mock storage backend rooted at baseURL.
func NewMock(baseURL string) *Mock {
	return &Mock{BaseURL: strings.TrimRight(baseURL, "/")}
}

// Store returns a placeholder locator for the given key.
func (m *Mock) Store(_ context.Context, key, _ string, _ []byte) (string, error) {
	return fmt.Sprintf("%s/uploads/%s", m.BaseURL, key), nil
}
