package mertio

import (
	"github.com/hupe1980/mertio/codec"
	"github.com/hupe1980/mertio/internal/compress"
	"github.com/hupe1980/mertio/internal/fs"
	"github.com/hupe1980/mertio/resource"
	"github.com/hupe1980/mertio/stats"
)

type options struct {
	logger      *Logger
	fs          fs.FileSystem
	factory     stats.Factory
	metrics     MetricsCollector
	compression compress.Type
	controller  *resource.Controller
	codec       codec.Codec
}

func defaultOptions() options {
	return options{
		logger:      NoopLogger(),
		fs:          fs.Default,
		factory:     stats.DefaultFactory,
		metrics:     NoopMetricsCollector{},
		compression: compress.Auto,
		codec:       codec.Default,
	}
}

// Option configures a ScoreArray or ScoreData.
type Option func(*options)

// WithLogger sets the logger that receives header/footer diagnostics.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithFileSystem replaces the filesystem used by LoadFile and SaveFile.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys == nil {
			fsys = fs.Default
		}
		o.fs = fsys
	}
}

// WithRecordFactory sets the constructor for loaded records.
// The default builds stats.ScoreStats.
func WithRecordFactory(f stats.Factory) Option {
	return func(o *options) {
		o.factory = f
	}
}

// WithMetrics sets the collector notified after every load and save.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// Compression selects the stream codec for path-based load and save.
type Compression = compress.Type

const (
	// CompressionAuto picks the codec from the file suffix (.gz, .zst, .lz4).
	CompressionAuto = compress.Auto
	// CompressionNone disables compression regardless of suffix.
	CompressionNone = compress.None
	// CompressionGzip forces gzip.
	CompressionGzip = compress.Gzip
	// CompressionZstd forces zstd.
	CompressionZstd = compress.Zstd
	// CompressionLZ4 forces lz4.
	CompressionLZ4 = compress.LZ4
)

// WithCompression sets the codec for path and blob based load and save.
// The default is CompressionAuto.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithResourceController bounds ScoreData.LoadFiles. Without one, LoadFiles
// reads one file at a time.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithCodec sets the codec for blob catalogs written by ScoreData.SaveBlob.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}
