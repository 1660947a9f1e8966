package mertio

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/mertio/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlob_RoundTrip(t *testing.T) {
	ctx := context.Background()
	stores := map[string]blobstore.BlobStore{
		"memory": blobstore.NewMemoryStore(),
		"local":  blobstore.NewLocalStore(t.TempDir()),
	}

	for storeName, store := range stores {
		for _, name := range []string{"7.scores", "7.scores.gz", "nested/7.scores.zst", "7.scores.lz4"} {
			t.Run(storeName+"/"+name, func(t *testing.T) {
				src := sampleArray()
				require.NoError(t, src.SaveBlob(ctx, store, name, "BLEU", true))

				dst := NewScoreArray()
				require.NoError(t, dst.LoadBlob(ctx, store, name))
				assert.Equal(t, "BLEU", dst.MetricType())
				assertSameRecords(t, src, dst)
			})
		}
	}
}

func TestBlob_Empty(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	require.NoError(t, NewScoreArray().SaveBlob(ctx, store, "empty.scores.gz", "BLEU", false))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"empty.scores.gz"}, names)

	a := NewScoreArray()
	require.NoError(t, a.LoadBlob(ctx, store, "empty.scores.gz"))
	assert.Equal(t, 0, a.Size())
}

func TestBlob_LoadMissing(t *testing.T) {
	a := NewScoreArray()
	err := a.LoadBlob(context.Background(), blobstore.NewMemoryStore(), "nope")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

// brokenStore hands out writers that fail on the first write.
type brokenStore struct {
	*blobstore.MemoryStore
	aborted bool
}

func (s *brokenStore) Create(_ context.Context, _ string) (blobstore.WritableBlob, error) {
	return &brokenBlob{store: s}, nil
}

type brokenBlob struct {
	store *brokenStore
}

func (b *brokenBlob) Write([]byte) (int, error) { return 0, errors.New("connection reset") }
func (b *brokenBlob) Sync() error               { return nil }
func (b *brokenBlob) Close() error              { return errors.New("close after failed write") }
func (b *brokenBlob) Abort() error {
	b.store.aborted = true
	return nil
}

func TestBlob_SaveAbortsOnError(t *testing.T) {
	store := &brokenStore{MemoryStore: blobstore.NewMemoryStore()}

	err := sampleArray().SaveBlob(context.Background(), store, "x.scores", "BLEU", false)
	require.EqualError(t, err, "connection reset")
	assert.True(t, store.aborted)

	_, err = store.Open(context.Background(), "x.scores")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestBlob_SaveRejectsHeaderBeforeCreate(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	a := sampleArray()
	require.ErrorIs(t, a.SaveBlob(ctx, store, "7.scores", "", false), ErrHeaderField)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, names)
}
