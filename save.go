package mertio

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/hupe1980/mertio/format"
)

// Save writes the array as one block. metricType is written to the header;
// the array's own metric type is not changed.
//
// An empty array writes nothing at all, not even the framing lines. A group
// index or metric type that would not read back as a single header token
// (empty, or containing a space or line break) fails with ErrHeaderField
// before anything is written.
func (a *ScoreArray) Save(w io.Writer, metricType string, binary bool) error {
	return a.SaveContext(context.Background(), w, metricType, binary)
}

// SaveContext is Save with a context for logging.
func (a *ScoreArray) SaveContext(ctx context.Context, w io.Writer, metricType string, binary bool) error {
	return a.saveWith(ctx, w, metricType, binary, a.opts.logger)
}

// header builds and validates the header Save would write.
func (a *ScoreArray) header(metricType string, binary bool) (format.Header, error) {
	h := format.Header{
		Mode:       format.ModeOf(binary),
		GroupIndex: a.groupIndex,
		Count:      a.Size(),
		Arity:      a.arity,
		MetricType: metricType,
	}
	return h, h.Validate()
}

func (a *ScoreArray) saveWith(ctx context.Context, w io.Writer, metricType string, binary bool, log *Logger) error {
	if a.Size() <= 0 {
		return nil
	}

	start := time.Now()
	h, err := a.header(metricType, binary)
	if err == nil {
		err = a.save(w, h)
	}
	a.opts.metrics.RecordSave(a.Size(), time.Since(start), err)
	log.WithGroupIndex(a.groupIndex).LogSave(ctx, a.Size(), binary, err)
	return err
}

func (a *ScoreArray) save(w io.Writer, h format.Header) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(h.String() + "\n"); err != nil {
		return err
	}

	for _, r := range a.records {
		if h.Mode == format.Binary {
			if err := r.SaveBinary(bw); err != nil {
				return err
			}
			continue
		}
		if err := r.SaveText(bw); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	if _, err := bw.WriteString(h.Mode.EndTag() + "\n"); err != nil {
		return err
	}
	return bw.Flush()
}
