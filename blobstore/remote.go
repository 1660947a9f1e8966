package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
)

// RangeGetter fetches the inclusive byte range [first, last] of an object.
type RangeGetter func(ctx context.Context, first, last int64) (io.ReadCloser, error)

// NewRangeBlob adapts a ranged GET to Blob. Object-store backends serve score
// files this way: a stat on Open, then one request per streamed range.
func NewRangeBlob(size int64, get RangeGetter) Blob {
	return &rangeBlob{size: size, get: get}
}

type rangeBlob struct {
	size int64
	get  RangeGetter
}

func (b *rangeBlob) Size() int64 { return b.size }

func (b *rangeBlob) Close() error { return nil }

func (b *rangeBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	if off < 0 || off >= b.size || length <= 0 {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
	last := min(off+length, b.size) - 1
	return b.get(ctx, off, last)
}

func (b *rangeBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if off >= b.size {
		return 0, io.EOF
	}
	rc, err := b.ReadRange(ctx, off, int64(len(p)))
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	n, err := io.ReadFull(rc, p)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return n, io.EOF
	}
	return n, err
}

// Uploader consumes body until EOF and commits the object.
type Uploader func(ctx context.Context, body io.Reader) error

// NewUpload streams writes into upload, which runs on its own goroutine.
// Close waits for the commit; Abort cancels the upload so nothing is stored.
func NewUpload(ctx context.Context, upload Uploader) WritableBlob {
	ctx, cancel := context.WithCancel(ctx)
	pr, pw := io.Pipe()
	u := &pipeUpload{pw: pw, cancel: cancel, done: make(chan error, 1)}

	go func() {
		err := upload(ctx, pr)
		_ = pr.CloseWithError(err)
		u.done <- err
	}()
	return u
}

var errAborted = errors.New("blobstore: upload aborted")

type pipeUpload struct {
	pw     *io.PipeWriter
	cancel context.CancelFunc
	done   chan error

	once sync.Once
}

func (u *pipeUpload) Write(p []byte) (int, error) { return u.pw.Write(p) }

// Sync is a no-op; the object is committed on Close.
func (u *pipeUpload) Sync() error { return nil }

func (u *pipeUpload) finish(fn func()) bool {
	first := false
	u.once.Do(func() {
		first = true
		fn()
	})
	return first
}

func (u *pipeUpload) Close() error {
	var err error
	if !u.finish(func() {
		defer u.cancel()
		if err = u.pw.Close(); err != nil {
			return
		}
		err = <-u.done
	}) {
		return io.ErrClosedPipe
	}
	return err
}

func (u *pipeUpload) Abort() error {
	u.finish(func() {
		_ = u.pw.CloseWithError(errAborted)
		u.cancel()
		<-u.done
	})
	return nil
}
