package stats

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/hupe1980/mertio/format"
)

// Value is the numeric type of a single statistic.
type Value = float32

const valueSize = 4

// binaryChunk is the number of values LoadBinary decodes per read. Memory
// grows with the bytes actually present, not with the declared arity.
const binaryChunk = 1024

// ScoreStats is a record of sufficient statistics for one candidate.
type ScoreStats struct {
	arity  int
	values []Value
}

// New returns an empty record declaring the given arity. Values are
// allocated as they are loaded or added.
func New(arity int) *ScoreStats {
	if arity < 0 {
		arity = 0
	}
	return &ScoreStats{arity: arity}
}

// FromValues returns a record holding a copy of values.
func FromValues(values ...Value) *ScoreStats {
	s := &ScoreStats{arity: len(values), values: make([]Value, len(values))}
	copy(s.values, values)
	return s
}

// Size returns the number of values currently held.
func (s *ScoreStats) Size() int { return len(s.values) }

// Arity returns the declared width used for binary reads.
func (s *ScoreStats) Arity() int { return s.arity }

// Get returns the i-th value.
func (s *ScoreStats) Get(i int) Value { return s.values[i] }

// Set replaces the i-th value.
func (s *ScoreStats) Set(i int, v Value) { s.values[i] = v }

// Add appends a value, growing the record past its declared arity.
func (s *ScoreStats) Add(v Value) { s.values = append(s.values, v) }

// Values returns the underlying slice. Callers must not retain it across loads.
func (s *ScoreStats) Values() []Value { return s.values }

// Reset drops all values.
func (s *ScoreStats) Reset() { s.values = s.values[:0] }

// Equal reports whether both records hold the same values.
func (s *ScoreStats) Equal(other *ScoreStats) bool {
	if other == nil || len(s.values) != len(other.values) {
		return false
	}
	for i, v := range s.values {
		if v != other.values[i] {
			return false
		}
	}
	return true
}

// Copy returns a deep copy.
func (s *ScoreStats) Copy() *ScoreStats {
	c := &ScoreStats{arity: s.arity, values: make([]Value, len(s.values))}
	copy(c.values, s.values)
	return c
}

// Clone implements Record.
func (s *ScoreStats) Clone() Record { return s.Copy() }

// LoadText reads one line and replaces the values with its tokens. The record
// takes the width of the line, whatever its declared arity.
func (s *ScoreStats) LoadText(r *bufio.Reader) error {
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if line == "" && errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	line = strings.TrimRight(line, "\r\n")

	s.Reset()
	for _, tok := range format.Tokenize(line) {
		v, perr := strconv.ParseFloat(tok, 32)
		if perr != nil {
			// Mirrors the lenient atof of the legacy reader.
			v = 0
		}
		s.Add(Value(v))
	}
	return nil
}

// LoadBinary reads exactly Arity() values. A stream that ends early fails
// with io.ErrUnexpectedEOF; values read so far are dropped.
func (s *ScoreStats) LoadBinary(r io.Reader) error {
	buf := make([]byte, min(s.arity, binaryChunk)*valueSize)

	s.values = s.values[:0]
	for left := s.arity; left > 0; {
		n := min(left, binaryChunk)
		if _, err := io.ReadFull(r, buf[:n*valueSize]); err != nil {
			s.values = s.values[:0]
			if errors.Is(err, io.EOF) {
				return io.ErrUnexpectedEOF
			}
			return err
		}
		for i := 0; i < n; i++ {
			bits := binary.LittleEndian.Uint32(buf[i*valueSize:])
			s.values = append(s.values, math.Float32frombits(bits))
		}
		left -= n
	}
	return nil
}

// SaveText writes the values separated by format.Delimiter, without a newline.
func (s *ScoreStats) SaveText(w io.Writer) error {
	var sb strings.Builder
	for i, v := range s.values {
		if i > 0 {
			sb.WriteString(format.Delimiter)
		}
		sb.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// SaveBinary writes the values as little-endian float32s.
func (s *ScoreStats) SaveBinary(w io.Writer) error {
	buf := make([]byte, len(s.values)*valueSize)
	for i, v := range s.values {
		binary.LittleEndian.PutUint32(buf[i*valueSize:], math.Float32bits(v))
	}
	_, err := w.Write(buf)
	return err
}

// String returns the text encoding.
func (s *ScoreStats) String() string {
	var sb strings.Builder
	_ = s.SaveText(&sb)
	return sb.String()
}
