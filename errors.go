package mertio

import (
	"errors"
	"fmt"

	"github.com/hupe1980/mertio/format"
	"github.com/hupe1980/mertio/internal/compress"
)

var (
	// ErrHeaderFormat is returned when the first non-empty line does not start
	// with a begin tag or lacks header fields.
	ErrHeaderFormat = format.ErrHeaderFormat

	// ErrFooterFormat is returned when the terminating non-empty line does not
	// start with an end tag.
	ErrFooterFormat = format.ErrFooterFormat

	// ErrUnknownCompression is returned for an unsupported compression type.
	ErrUnknownCompression = compress.ErrUnknown

	// ErrHeaderField is returned by Save when the group index or metric type
	// would not read back as a single header field.
	ErrHeaderField = format.ErrHeaderField

	// ErrDuplicateBlob is returned when two groups map to the same blob or a
	// catalog lists a group or blob twice.
	ErrDuplicateBlob = errors.New("mertio: duplicate blob")

	// ErrMissingRecordFactory is returned when a load runs with a nil factory.
	ErrMissingRecordFactory = errors.New("mertio: record factory is nil")
)

// Section names the framing line a FormatError refers to.
type Section uint8

const (
	// SectionHeader is the begin line of a block.
	SectionHeader Section = iota
	// SectionFooter is the end line of a block.
	SectionFooter
)

func (s Section) String() string {
	if s == SectionFooter {
		return "footer"
	}
	return "header"
}

// FormatError reports a malformed framing line.
//
// Records read before the error stay in the array; a load is never rolled
// back. errors.Is matches ErrHeaderFormat or ErrFooterFormat.
type FormatError struct {
	Section Section
	Line    string
	Err     error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("mertio: wrong %s: %v", e.Section, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// IsFormatError reports whether err is a header or footer error.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
