package mertio

import (
	"context"
	"io"

	"github.com/hupe1980/mertio/blobstore"
	"github.com/hupe1980/mertio/internal/compress"
)

// LoadBlob loads one block from a blob. Compression follows the blob name
// suffix, as for LoadFile.
func (a *ScoreArray) LoadBlob(ctx context.Context, store blobstore.BlobStore, name string) (err error) {
	log := a.opts.logger.WithPath(name)
	log.InfoContext(ctx, "loading scores")

	blob, err := store.Open(ctx, name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := blob.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	body, err := blobstore.NewReader(ctx, blob)
	if err != nil {
		return err
	}
	defer body.Close()

	rc, empty, err := openDecompressed(body, compress.Resolve(a.opts.compression, name))
	if err != nil || empty {
		return err
	}
	defer rc.Close()

	return a.loadWith(ctx, rc, log)
}

// SaveBlob writes the array to a blob. An empty array creates an empty blob.
// A header field Save would reject fails before the blob is created.
func (a *ScoreArray) SaveBlob(ctx context.Context, store blobstore.BlobStore, name, metricType string, binary bool) error {
	if a.Size() <= 0 {
		return store.Put(ctx, name, nil)
	}
	if _, err := a.header(metricType, binary); err != nil {
		return err
	}
	log := a.opts.logger.WithPath(name)

	w, err := store.Create(ctx, name)
	if err != nil {
		return err
	}

	err = writeCompressed(w, compress.Resolve(a.opts.compression, name), func(cw io.Writer) error {
		return a.saveWith(ctx, cw, metricType, binary, log)
	})
	if err != nil {
		if ab, ok := w.(blobstore.Aborter); ok {
			_ = ab.Abort()
		} else {
			_ = w.Close()
		}
		return err
	}
	return w.Close()
}
