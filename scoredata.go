package mertio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"
)

// ScoreData holds the score arrays of a whole tuning set, one per group
// index, in the order groups were first seen.
//
// A ScoreData is not safe for concurrent use; LoadFiles parallelizes reads
// internally and merges on the calling goroutine.
type ScoreData struct {
	metricType string
	arrays     []*ScoreArray
	index      map[string]int

	opts   options
	optFns []Option
}

// NewScoreData returns an empty collection for metricType. Options are
// passed on to every ScoreArray it creates.
func NewScoreData(metricType string, optFns ...Option) *ScoreData {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	return &ScoreData{
		metricType: metricType,
		index:      make(map[string]int),
		opts:       o,
		optFns:     optFns,
	}
}

// MetricType returns the metric label written by Save.
func (d *ScoreData) MetricType() string { return d.metricType }

// Size returns the number of groups.
func (d *ScoreData) Size() int { return len(d.arrays) }

// Get returns the i-th array.
func (d *ScoreData) Get(i int) *ScoreArray { return d.arrays[i] }

// Find returns the array for group.
func (d *ScoreData) Find(group string) (*ScoreArray, bool) {
	i, ok := d.index[group]
	if !ok {
		return nil, false
	}
	return d.arrays[i], true
}

// NumberOfScores returns the arity of the first array, or 0 when empty.
func (d *ScoreData) NumberOfScores() int {
	if len(d.arrays) == 0 {
		return 0
	}
	return d.arrays[0].NumberOfScores()
}

// Add stores a. If an array for the same group exists, a's records are merged
// into it; otherwise a is appended. An empty metric type is taken from a.
func (d *ScoreData) Add(a *ScoreArray) {
	if d.metricType == "" {
		d.metricType = a.MetricType()
	}
	if i, ok := d.index[a.GroupIndex()]; ok {
		d.arrays[i].Merge(a)
		return
	}
	d.index[a.GroupIndex()] = len(d.arrays)
	d.arrays = append(d.arrays, a)
}

// CheckConsistency reports whether every array is consistent and all arrays
// share one arity.
func (d *ScoreData) CheckConsistency() bool {
	arity := d.NumberOfScores()
	for _, a := range d.arrays {
		if a.NumberOfScores() != arity || !a.CheckConsistency() {
			return false
		}
	}
	return true
}

// Load reads consecutive blocks from r until it is exhausted. Blank lines
// between blocks are skipped.
func (d *ScoreData) Load(ctx context.Context, r io.Reader) error {
	return d.load(ctx, r, d.opts.logger)
}

func (d *ScoreData) load(ctx context.Context, r io.Reader, log *Logger) error {
	br := bufferedReader(r)
	for {
		next, err := br.Peek(1)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if next[0] == '\n' || next[0] == '\r' {
			if _, _, err := readLine(br); err != nil {
				return err
			}
			continue
		}

		a := NewScoreArray(d.optFns...)
		err = a.loadWith(ctx, br, log)
		if a.Size() > 0 || a.GroupIndex() != "" {
			d.Add(a)
		}
		if err != nil {
			return err
		}
	}
}

// Save writes every array as its own block, using the collection's metric type.
// Header fields are checked for every array before anything is written.
func (d *ScoreData) Save(ctx context.Context, w io.Writer, binary bool) error {
	if err := d.validate(binary); err != nil {
		return err
	}
	return d.save(ctx, w, binary, d.opts.logger)
}

func (d *ScoreData) save(ctx context.Context, w io.Writer, binary bool, log *Logger) error {
	bw := bufio.NewWriter(w)
	for _, a := range d.arrays {
		if err := a.saveWith(ctx, bw, d.metricType, binary, log); err != nil {
			return fmt.Errorf("mertio: save group %q: %w", a.GroupIndex(), err)
		}
	}
	return bw.Flush()
}

// validate reports the first non-empty array whose header Save would reject.
func (d *ScoreData) validate(binary bool) error {
	for _, a := range d.arrays {
		if a.Size() <= 0 {
			continue
		}
		if _, err := a.header(d.metricType, binary); err != nil {
			return fmt.Errorf("mertio: save group %q: %w", a.GroupIndex(), err)
		}
	}
	return nil
}

// LoadFile loads every block of one file.
func (d *ScoreData) LoadFile(ctx context.Context, path string) error {
	log := d.opts.logger.WithPath(path)
	log.InfoContext(ctx, "loading score data")
	return d.opts.readFile(ctx, path, func(r io.Reader) error {
		return d.load(ctx, r, log)
	})
}

// SaveFile writes every array to path. Header fields are checked before the
// file is created.
func (d *ScoreData) SaveFile(ctx context.Context, path string, binary bool) error {
	if err := d.validate(binary); err != nil {
		return err
	}
	log := d.opts.logger.WithPath(path)
	return d.opts.writeFile(path, d.Size() == 0, func(w io.Writer) error {
		return d.save(ctx, w, binary, log)
	})
}

// LoadFiles loads several files in parallel and adds their arrays in path
// order, so the result does not depend on scheduling. Parallelism and read
// throughput are bounded by the resource controller; without one, files are
// read one at a time.
func (d *ScoreData) LoadFiles(ctx context.Context, paths []string) error {
	parts := make([]*ScoreData, len(paths))

	rc := d.opts.controller
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(int(rc.Config().MaxConcurrentLoads))
	for i, path := range paths {
		g.Go(func() error {
			if err := rc.AcquireLoad(gctx); err != nil {
				return err
			}
			defer rc.ReleaseLoad()
			d.opts.logger.DebugContext(gctx, "load slot acquired",
				"path", path,
				"active", rc.ActiveLoads(),
			)

			part := NewScoreData(d.metricType, d.optFns...)
			if err := part.LoadFile(gctx, path); err != nil {
				return fmt.Errorf("mertio: load %s: %w", path, err)
			}
			parts[i] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	d.opts.logger.InfoContext(ctx, "score files loaded",
		"files", len(paths),
		"bytes", rc.BytesRead(),
	)

	for _, part := range parts {
		for _, a := range part.arrays {
			d.Add(a)
		}
	}
	return nil
}

// Coverage returns the set of numeric group indices. Non-numeric indices are
// not represented.
func (d *ScoreData) Coverage() *roaring.Bitmap {
	bm := roaring.New()
	for _, a := range d.arrays {
		if id, err := strconv.ParseUint(a.GroupIndex(), 10, 32); err == nil {
			bm.Add(uint32(id))
		}
	}
	return bm
}

// Missing returns the group ids in [0, n) without an array, in ascending order.
func (d *ScoreData) Missing(n uint32) []uint32 {
	want := roaring.New()
	want.AddRange(0, uint64(n))
	want.AndNot(d.Coverage())
	return want.ToArray()
}
