// Package compress wraps score file streams in a compression codec chosen by
// file suffix.
package compress

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type identifies a stream compression codec.
type Type uint8

const (
	// None stores the stream as is.
	None Type = iota
	// Gzip is compatible with the gzipped files the legacy toolkit reads.
	Gzip
	// Zstd trades a little speed for a better ratio.
	Zstd
	// LZ4 is the fastest option for hot intermediate files.
	LZ4
	// Auto picks the codec from the file suffix.
	Auto
)

// ErrUnknown is returned for an unsupported Type.
var ErrUnknown = errors.New("compress: unknown compression type")

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	case Auto:
		return "auto"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Ext returns the file suffix written for t, or "" for None and Auto.
func (t Type) Ext() string {
	switch t {
	case Gzip:
		return ".gz"
	case Zstd:
		return ".zst"
	case LZ4:
		return ".lz4"
	default:
		return ""
	}
}

// FromPath maps a file suffix to a codec: .gz, .zst and .lz4 are recognized.
func FromPath(path string) Type {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

// Resolve turns Auto into a concrete type for path.
func Resolve(t Type, path string) Type {
	if t == Auto {
		return FromPath(path)
	}
	return t
}

// NewReader wraps r in a decompressor. Closing the returned reader does not
// close r.
func NewReader(r io.Reader, t Type) (io.ReadCloser, error) {
	switch t {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr, nil
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknown, t)
	}
}

// NewWriter wraps w in a compressor. Close flushes the compressor but does
// not close w.
func NewWriter(w io.Writer, t Type) (io.WriteCloser, error) {
	switch t {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		return enc, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknown, t)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
