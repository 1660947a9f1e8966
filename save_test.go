package mertio

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/hupe1980/mertio/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleArray() *ScoreArray {
	a := newTestArray("7", 4,
		[]stats.Value{1, 2, 3, 4},
		[]stats.Value{0.5, -1.25, 1e6, 0},
		[]stats.Value{10, 20, 30, 40},
	)
	a.SetMetricType("ignored")
	return a
}

func assertSameRecords(t *testing.T, want, got *ScoreArray) {
	t.Helper()
	require.Equal(t, want.Size(), got.Size())
	for i := 0; i < want.Size(); i++ {
		w := want.Get(i).(*stats.ScoreStats)
		g := got.Get(i).(*stats.ScoreStats)
		assert.Truef(t, w.Equal(g), "record %d: want %s, got %s", i, w, g)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	for _, binary := range []bool{false, true} {
		name := "text"
		if binary {
			name = "binary"
		}
		t.Run(name, func(t *testing.T) {
			src := sampleArray()

			var buf bytes.Buffer
			require.NoError(t, src.Save(&buf, "BLEU", binary))

			dst := NewScoreArray()
			require.NoError(t, dst.Load(&buf))

			assert.Equal(t, src.GroupIndex(), dst.GroupIndex())
			assert.Equal(t, src.NumberOfScores(), dst.NumberOfScores())
			assert.Equal(t, "BLEU", dst.MetricType())
			assert.True(t, dst.CheckConsistency())
			assertSameRecords(t, src, dst)

			// Save does not touch the array's own metric type.
			assert.Equal(t, "ignored", src.MetricType())
		})
	}
}

func TestSave_TextLayout(t *testing.T) {
	a := newTestArray("x", 3, []stats.Value{1, 2, 3}, []stats.Value{4, 5, 6})

	var buf bytes.Buffer
	require.NoError(t, a.Save(&buf, "BLEU", false))

	want := "SCORES_TXT_BEGIN_0 x 2 3 BLEU\n1 2 3\n4 5 6\nSCORES_TXT_END_0\n"
	assert.Equal(t, want, buf.String())
}

func TestSave_BinaryLayout(t *testing.T) {
	a := newTestArray("x", 2, []stats.Value{1, 2})

	var buf bytes.Buffer
	require.NoError(t, a.Save(&buf, "TER", true))

	out := buf.String()
	header := "SCORES_BIN_BEGIN_0 x 1 2 TER\n"
	footer := "SCORES_BIN_END_0\n"
	require.True(t, strings.HasPrefix(out, header))
	require.True(t, strings.HasSuffix(out, footer))
	assert.Len(t, out, len(header)+2*4+len(footer))
}

func TestSave_EmptyWritesNothing(t *testing.T) {
	for _, binary := range []bool{false, true} {
		a := NewScoreArray()
		a.SetGroupIndex("3")
		a.SetNumberOfScores(9)

		var buf bytes.Buffer
		require.NoError(t, a.Save(&buf, "BLEU", binary))
		assert.Zero(t, buf.Len())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSave_WriteError(t *testing.T) {
	m := &BasicMetricsCollector{}
	a := newTestArray("x", 1, []stats.Value{1})
	a.opts.metrics = m

	err := a.Save(failingWriter{}, "BLEU", false)
	require.EqualError(t, err, "disk full")

	s := m.GetStats()
	assert.Equal(t, int64(1), s.SaveCount)
	assert.Equal(t, int64(1), s.SaveErrors)
}

func TestSave_ArityZeroRoundTrip(t *testing.T) {
	// Add never sets the arity, so a binary block declares 0 fields per
	// record and reads back as empty records.
	a := NewScoreArray()
	a.SetGroupIndex("z")
	a.Add(stats.FromValues(1, 2))

	var buf bytes.Buffer
	require.NoError(t, a.Save(&buf, "BLEU", true))

	b := NewScoreArray()
	err := b.Load(&buf)
	require.ErrorIs(t, err, ErrFooterFormat)
	assert.Equal(t, 1, b.Size())
	assert.Equal(t, 0, b.Get(0).Size())
}

func TestSave_RejectsUnwritableHeader(t *testing.T) {
	tests := []struct {
		name       string
		group      string
		metricType string
	}{
		{"empty group", "", "BLEU"},
		{"empty metric", "7", ""},
		{"group with space", "a b", "BLEU"},
		{"metric with space", "7", "BLEU 4"},
		{"group with newline", "7\n", "BLEU"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, binary := range []bool{false, true} {
				m := &BasicMetricsCollector{}
				a := newTestArray(tt.group, 2, []stats.Value{1, 2})
				a.opts.metrics = m

				var buf bytes.Buffer
				err := a.Save(&buf, tt.metricType, binary)
				require.ErrorIs(t, err, ErrHeaderField)
				assert.Zero(t, buf.Len())
				assert.Equal(t, int64(1), m.GetStats().SaveErrors)
			}
		})
	}
}

func TestSave_EmptyArraySkipsHeaderCheck(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewScoreArray().Save(&buf, "", false))
	assert.Zero(t, buf.Len())
}
