package stats

import (
	"bufio"
	"io"
)

// Record is a fixed-arity numeric row of a score array.
//
// The container never looks inside a record; it only constructs one with the
// declared arity and delegates both encodings to it.
type Record interface {
	// Size returns the number of fields the record currently holds.
	Size() int

	// LoadText reads one text-encoded record, including its line break.
	LoadText(r *bufio.Reader) error
	// LoadBinary reads one binary-encoded record.
	LoadBinary(r io.Reader) error

	// SaveText writes the text encoding without a trailing line break.
	SaveText(w io.Writer) error
	// SaveBinary writes the binary encoding.
	SaveBinary(w io.Writer) error

	// Clone returns an independent copy.
	Clone() Record
}

// Factory constructs an empty record with the given arity.
type Factory func(arity int) Record

// DefaultFactory builds ScoreStats records.
func DefaultFactory(arity int) Record { return New(arity) }

var _ Record = (*ScoreStats)(nil)
