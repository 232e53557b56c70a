package profile

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/storage"
)

// BlobStore uploads document images and hands back their public URL.
// Uploads to the same path overwrite in place.
type BlobStore interface {
	Put(ctx context.Context, path string, data []byte, contentType string) (url string, err error)
}

// BucketStore implements BlobStore on a GCS bucket (the Firebase Storage
// default bucket in production).
type BucketStore struct {
	bucket *storage.BucketHandle
}

// NewBucketStore creates a blob store over the given bucket.
func NewBucketStore(bucket *storage.BucketHandle) *BucketStore {
	return &BucketStore{bucket: bucket}
}

// Put writes the object and returns its media link. The writer is closed
// before the URL is resolved, so a returned URL always refers to committed
// bytes.
func (b *BucketStore) Put(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	obj := b.bucket.Object(path)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("commit object %s: %w", path, err)
	}

	attrs, err := obj.Attrs(ctx)
	if err != nil {
		return "", fmt.Errorf("stat object %s: %w", path, err)
	}
	return attrs.MediaLink, nil
}

// MockBlobStore is an in-memory BlobStore for tests. FailPaths lets a test
// reject specific uploads.
type MockBlobStore struct {
	mu        sync.Mutex
	Objects   map[string][]byte
	FailPaths map[string]error
}

// NewMockBlobStore creates an empty mock store.
func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{
		Objects:   make(map[string][]byte),
		FailPaths: make(map[string]error),
	}
}

// Put stores the object in memory and returns a synthetic URL.
func (m *MockBlobStore) Put(_ context.Context, path string, data []byte, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.FailPaths[path]; ok {
		return "", err
	}
	m.Objects[path] = append([]byte(nil), data...)
	return "https://storage.example.com/" + path, nil
}

// Compile-time interface checks
var (
	_ BlobStore = (*BucketStore)(nil)
	_ BlobStore = (*MockBlobStore)(nil)
)
