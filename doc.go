// Package mertio persists the per-candidate score statistics used by minimum
// error rate training.
//
// A ScoreArray holds the records of one group (typically one sentence of an
// n-best list). Each record is a fixed-arity row of numbers; the container
// only frames them. A ScoreData holds the arrays of a whole tuning set.
//
// # File Format
//
// Text blocks:
//
//	SCORES_TXT_BEGIN_0 <group> <count> <arity> <metric>
//	<record 1>
//	...
//	SCORES_TXT_END_0
//
// Binary blocks carry the same header and footer lines with SCORES_BIN_*
// tags; the records are written back-to-back without separators. See package
// format for the exact header rules.
//
// # Quick Start
//
//	logger := mertio.NewLogger(slog.NewTextHandler(os.Stderr, nil))
//	a := mertio.NewScoreArray(mertio.WithLogger(logger))
//	a.SetGroupIndex("0")
//	a.SetNumberOfScores(3)
//	a.Add(stats.FromValues(1, 2, 3))
//
//	if err := a.SaveFile("scores.dat.gz", "BLEU", false); err != nil { ... }
//
//	b := mertio.NewScoreArray()
//	if err := b.LoadFile("scores.dat.gz"); err != nil { ... }
//
// # Errors
//
// Malformed header and footer lines are logged and returned as *FormatError,
// which matches ErrHeaderFormat or ErrFooterFormat with errors.Is. Records
// read before the error stay in the array. Non-numeric count and arity
// tokens are not errors: they read as 0, which legacy inputs rely on.
//
// # Storage
//
// Path-based operations go through a filesystem seam and compress by suffix
// (.gz, .zst, .lz4). Blob-based operations work with any blobstore.BlobStore:
// local directories, memory, S3 or MinIO.
package mertio
