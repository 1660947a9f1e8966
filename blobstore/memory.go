package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps score blobs in process memory. It is used by tests and
// by pipelines that hand scores between stages without touching disk.
// It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	blobs   map[string][]byte
	maxSize int64
}

// NewMemoryStore returns an empty, unbounded store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// NewBoundedMemoryStore returns a store that rejects blobs larger than
// maxBlobSize bytes with ErrTooLarge.
func NewBoundedMemoryStore(maxBlobSize int64) *MemoryStore {
	m := NewMemoryStore()
	m.maxSize = maxBlobSize
	return m
}

// ErrTooLarge is returned when a blob exceeds a store's size limit.
var ErrTooLarge = errors.New("blobstore: blob too large")

func (m *MemoryStore) commit(name string, data []byte) error {
	if m.maxSize > 0 && int64(len(data)) > m.maxSize {
		return fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTooLarge, name, len(data), m.maxSize)
	}
	m.mu.Lock()
	m.blobs[name] = data
	m.mu.Unlock()
	return nil
}

// Open returns a snapshot of the blob; later writes do not affect it.
func (m *MemoryStore) Open(_ context.Context, name string) (Blob, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	m.mu.RLock()
	data, ok := m.blobs[name]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	// Stored slices are never mutated, so the snapshot can share them.
	return &memoryBlob{r: bytes.NewReader(data)}, nil
}

// Create buffers writes and stores them on Close.
func (m *MemoryStore) Create(_ context.Context, name string) (WritableBlob, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return &memoryUpload{store: m, name: name}, nil
}

// Put stores a copy of data.
func (m *MemoryStore) Put(_ context.Context, name string, data []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	return m.commit(name, bytes.Clone(data))
}

// Delete removes a blob. Missing blobs are ignored.
func (m *MemoryStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	delete(m.blobs, name)
	m.mu.Unlock()
	return nil
}

// List returns the sorted names starting with prefix.
func (m *MemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	names := make([]string, 0, len(m.blobs))
	for name := range m.blobs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	m.mu.RUnlock()

	sort.Strings(names)
	return names, nil
}

type memoryBlob struct {
	r *bytes.Reader
}

func (b *memoryBlob) Size() int64 { return b.r.Size() }

func (b *memoryBlob) Close() error { return nil }

func (b *memoryBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	return b.r.ReadAt(p, off)
}

func (b *memoryBlob) ReadRange(_ context.Context, off, length int64) (io.ReadCloser, error) {
	if off < 0 || length < 0 {
		return nil, fmt.Errorf("blobstore: invalid range %d+%d", off, length)
	}
	return io.NopCloser(io.NewSectionReader(b.r, off, length)), nil
}

type memoryUpload struct {
	store *MemoryStore
	name  string
	buf   bytes.Buffer
	done  bool
}

func (w *memoryUpload) Write(p []byte) (int, error) {
	if w.done {
		return 0, io.ErrClosedPipe
	}
	if w.store.maxSize > 0 && int64(w.buf.Len()+len(p)) > w.store.maxSize {
		return 0, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, w.name, w.store.maxSize)
	}
	return w.buf.Write(p)
}

func (w *memoryUpload) Sync() error { return nil }

func (w *memoryUpload) Close() error {
	if w.done {
		return io.ErrClosedPipe
	}
	w.done = true
	return w.store.commit(w.name, bytes.Clone(w.buf.Bytes()))
}

// Abort drops the buffered bytes without storing them.
func (w *memoryUpload) Abort() error {
	w.done = true
	w.buf.Reset()
	return nil
}
