package mertio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hupe1980/mertio/format"
)

// Load reads one block from r and appends its records.
//
// Load runs the framing state machine:
//
//   - header: no data at all yields an empty array and a nil error. A
//     non-empty line must start with a begin tag at position 0; group index,
//     arity and metric type are taken from it. Count and arity tokens that are
//     not numbers become 0. An empty header line reads no records.
//   - body: exactly count records are built with the header arity and loaded
//     in the header's mode.
//   - footer: an empty or missing line is accepted; otherwise it must start
//     with an end tag. The footer mode is not compared with the header mode.
//
// Malformed framing lines are logged and returned as *FormatError. Records
// already appended are kept, so load into a fresh array.
//
// When r is a *bufio.Reader it is used directly, which lets callers read
// several consecutive blocks from one stream.
func (a *ScoreArray) Load(r io.Reader) error {
	return a.LoadContext(context.Background(), r)
}

// LoadContext is Load with a context for logging.
func (a *ScoreArray) LoadContext(ctx context.Context, r io.Reader) error {
	return a.loadWith(ctx, r, a.opts.logger)
}

func (a *ScoreArray) loadWith(ctx context.Context, r io.Reader, log *Logger) error {
	start := time.Now()
	before := a.Size()
	err := a.load(ctx, bufferedReader(r), log)
	a.opts.metrics.RecordLoad(a.Size()-before, time.Since(start), err)
	if !IsFormatError(err) {
		// Format errors were already reported with the offending line.
		log.WithGroupIndex(a.groupIndex).LogLoad(ctx, a.Size()-before, a.arity, err)
	}
	return err
}

func (a *ScoreArray) load(ctx context.Context, br *bufio.Reader, log *Logger) error {
	if a.opts.factory == nil {
		return ErrMissingRecordFactory
	}

	line, ok, err := readLine(br)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	mode := format.Text
	count := 0
	if line != "" {
		h, err := format.ParseHeader(line)
		if err != nil {
			return formatError(ctx, log, SectionHeader, line, err)
		}
		a.groupIndex = h.GroupIndex
		a.arity = h.Arity
		a.metricType = h.MetricType
		mode = h.Mode
		count = h.Count
	}

	for i := 0; i < count; i++ {
		rec := a.opts.factory(a.arity)
		if mode == format.Binary {
			err = rec.LoadBinary(br)
		} else {
			err = rec.LoadText(br)
		}
		if err != nil {
			return fmt.Errorf("mertio: %s record %d of %d: %w", mode, i+1, count, err)
		}
		a.Add(rec)
	}

	line, _, err = readLine(br)
	if err != nil {
		return err
	}
	if _, _, err := format.CheckFooter(line); err != nil {
		return formatError(ctx, log, SectionFooter, line, err)
	}
	return nil
}

func formatError(ctx context.Context, log *Logger, section Section, line string, err error) error {
	fe := &FormatError{Section: section, Line: line, Err: err}
	log.LogFormatError(ctx, fe)
	return fe
}

func bufferedReader(r io.Reader) *bufio.Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(r)
}

// readLine returns the next line without its terminator. ok is false when
// the stream was already exhausted.
func readLine(br *bufio.Reader) (line string, ok bool, err error) {
	line, err = br.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", false, err
		}
		if line == "" {
			return "", false, nil
		}
	}
	return strings.TrimRight(line, "\r\n"), true, nil
}
