package mertio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/mertio/internal/fs"
	"github.com/hupe1980/mertio/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		binary bool
	}{
		{"plain text", "scores.dat", false},
		{"plain binary", "scores.bin", true},
		{"gzip text", "scores.dat.gz", false},
		{"zstd binary", "scores.dat.zst", true},
		{"lz4 text", "scores.dat.lz4", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			src := sampleArray()
			require.NoError(t, src.SaveFile(path, "BLEU", tt.binary))

			dst := NewScoreArray()
			require.NoError(t, dst.LoadFile(path))
			assert.Equal(t, "BLEU", dst.MetricType())
			assert.Equal(t, src.GroupIndex(), dst.GroupIndex())
			assertSameRecords(t, src, dst)
		})
	}
}

func TestFile_CompressedOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.dat.gz")
	require.NoError(t, sampleArray().SaveFile(path, "BLEU", false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(data), 2)
	assert.Equal(t, []byte{0x1f, 0x8b}, data[:2])
}

func TestFile_ExplicitCompression(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.dat")
	src := NewScoreArray(WithCompression(CompressionZstd))
	src.SetGroupIndex("1")
	src.SetNumberOfScores(1)
	src.Add(stats.FromValues(42))
	require.NoError(t, src.SaveFile(path, "BLEU", false))

	// Without the option the zstd stream is read as plain text.
	plain := NewScoreArray()
	assert.ErrorIs(t, plain.LoadFile(path), ErrHeaderFormat)

	dst := NewScoreArray(WithCompression(CompressionZstd))
	require.NoError(t, dst.LoadFile(path))
	assert.Equal(t, 1, dst.Size())
}

func TestFile_SaveEmptyTruncates(t *testing.T) {
	for _, name := range []string{"empty.dat", "empty.dat.gz"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, os.WriteFile(path, []byte("stale contents"), 0o644))

		require.NoError(t, NewScoreArray().SaveFile(path, "BLEU", true))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Zero(t, info.Size())

		a := NewScoreArray()
		require.NoError(t, a.LoadFile(path))
		assert.Equal(t, 0, a.Size())
	}
}

func TestFile_LoadMissing(t *testing.T) {
	a := NewScoreArray()
	err := a.LoadFile(filepath.Join(t.TempDir(), "nope.dat"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFile_HandlesClosedOnErrors(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.dat")
	bad := filepath.Join(dir, "bad.dat")
	require.NoError(t, os.WriteFile(bad, []byte("not a header\n"), 0o644))

	ffs := fs.NewFaultyFS(nil)
	opt := WithFileSystem(ffs)

	src := sampleArray()
	src.opts.fs = ffs
	require.NoError(t, src.SaveFile(good, "BLEU", false))
	assert.Zero(t, ffs.OpenHandles())

	a := NewScoreArray(opt)
	require.ErrorIs(t, a.LoadFile(bad), ErrHeaderFormat)
	assert.Zero(t, ffs.OpenHandles())

	fault := fs.NoFault()
	fault.FailAfterRead = 10
	ffs.AddRule("good", fault)
	require.ErrorIs(t, NewScoreArray(opt).LoadFile(good), fs.ErrInjected)
	assert.Zero(t, ffs.OpenHandles())
}

func TestFile_WriteFaults(t *testing.T) {
	dir := t.TempDir()
	ffs := fs.NewFaultyFS(nil)

	t.Run("open", func(t *testing.T) {
		ffs.AddRule("open-fail", fs.Fault{FailOnOpen: true, FailAfterBytes: -1, FailAfterRead: -1})
		a := sampleArray()
		a.opts.fs = ffs
		assert.ErrorIs(t, a.SaveFile(filepath.Join(dir, "open-fail.dat"), "BLEU", false), fs.ErrInjected)
	})

	t.Run("write", func(t *testing.T) {
		fault := fs.NoFault()
		fault.FailAfterBytes = 8
		ffs.AddRule("short", fault)
		a := sampleArray()
		a.opts.fs = ffs
		assert.ErrorIs(t, a.SaveFile(filepath.Join(dir, "short.dat"), "BLEU", false), fs.ErrInjected)
		assert.Zero(t, ffs.OpenHandles())
	})

	t.Run("close", func(t *testing.T) {
		fault := fs.NoFault()
		fault.FailOnClose = true
		ffs.AddRule("closing", fault)
		a := sampleArray()
		a.opts.fs = ffs
		assert.ErrorIs(t, a.SaveFile(filepath.Join(dir, "closing.dat"), "BLEU", false), fs.ErrInjected)
	})
}

func TestFile_SaveRejectsHeaderBeforeTruncating(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keep.dat")
	require.NoError(t, os.WriteFile(path, []byte("previous run"), 0o644))

	a := newTestArray("a b", 1, []stats.Value{1})
	require.ErrorIs(t, a.SaveFile(path, "BLEU", false), ErrHeaderField)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous run", string(data))

	missing := filepath.Join(t.TempDir(), "never.dat")
	require.ErrorIs(t, a.SaveFile(missing, "BLEU", false), ErrHeaderField)
	_, err = os.Stat(missing)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFile_SaveCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "iter1", "scores.dat.gz")

	src := sampleArray()
	require.NoError(t, src.SaveFile(path, "BLEU", false))

	dst := NewScoreArray()
	require.NoError(t, dst.LoadFile(path))
	assertSameRecords(t, src, dst)
}
