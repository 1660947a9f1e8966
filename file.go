package mertio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/mertio/internal/compress"
	"github.com/hupe1980/mertio/internal/fs"
)

// LoadFile opens path, loads one block from it and closes it.
//
// Files ending in .gz, .zst or .lz4 are decompressed transparently unless
// WithCompression says otherwise. An empty file loads nothing. Errors from
// opening or reading the file are returned as reported by the filesystem.
func (a *ScoreArray) LoadFile(path string) error {
	return a.LoadFileContext(context.Background(), path)
}

// LoadFileContext is LoadFile with a context for logging and IO limits.
func (a *ScoreArray) LoadFileContext(ctx context.Context, path string) error {
	log := a.opts.logger.WithPath(path)
	log.InfoContext(ctx, "loading scores")
	return a.opts.readFile(ctx, path, func(r io.Reader) error {
		return a.loadWith(ctx, r, log)
	})
}

// SaveFile creates (or truncates) path and writes the array to it.
//
// Like Save, an empty array writes no bytes, but the file is still created
// and truncated. A header field Save would reject fails before the file is
// touched. Missing parent directories are created. The file is closed on every return path; a close error is
// reported when nothing else failed first.
func (a *ScoreArray) SaveFile(path, metricType string, binary bool) error {
	return a.SaveFileContext(context.Background(), path, metricType, binary)
}

// SaveFileContext is SaveFile with a context for logging.
func (a *ScoreArray) SaveFileContext(ctx context.Context, path, metricType string, binary bool) error {
	if a.Size() > 0 {
		if _, err := a.header(metricType, binary); err != nil {
			return err
		}
	}
	log := a.opts.logger.WithPath(path)
	return a.opts.writeFile(path, a.Size() <= 0, func(w io.Writer) error {
		return a.saveWith(ctx, w, metricType, binary, log)
	})
}

// readFile opens path, applies the IO limit and decompression, and hands
// the stream to fn. The file is closed on every return path.
func (o *options) readFile(ctx context.Context, path string, fn func(io.Reader) error) (err error) {
	f, err := o.fs.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	rc, empty, err := openDecompressed(o.controller.Reader(ctx, f), compress.Resolve(o.compression, path))
	if err != nil || empty {
		return err
	}
	defer rc.Close()

	return fn(rc)
}

// writeFile creates path and, unless empty is set, streams fn's output
// through the configured compressor.
func (o *options) writeFile(path string, empty bool, fn func(io.Writer) error) (err error) {
	f, err := fs.CreateAll(o.fs, path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if empty {
		return nil
	}
	return writeCompressed(f, compress.Resolve(o.compression, path), fn)
}

// openDecompressed peeks at r so that an empty input is reported as empty
// instead of as a broken compressed stream.
func openDecompressed(r io.Reader, typ compress.Type) (io.ReadCloser, bool, error) {
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, true, nil
		}
		return nil, false, err
	}

	if typ == compress.None {
		return io.NopCloser(br), false, nil
	}
	rc, err := compress.NewReader(br, typ)
	if err != nil {
		return nil, false, fmt.Errorf("mertio: open %s stream: %w", typ, err)
	}
	return rc, false, nil
}

func writeCompressed(w io.Writer, typ compress.Type, fn func(io.Writer) error) error {
	cw, err := compress.NewWriter(w, typ)
	if err != nil {
		return err
	}
	if err := fn(cw); err != nil {
		_ = cw.Close()
		return err
	}
	return cw.Close()
}
