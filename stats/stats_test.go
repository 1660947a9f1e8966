package stats

import (
	"bufio"
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreStats_Text(t *testing.T) {
	s := FromValues(1, 2.5, 0, 17)

	var buf bytes.Buffer
	require.NoError(t, s.SaveText(&buf))
	assert.Equal(t, "1 2.5 0 17", buf.String())

	buf.WriteString("\n")
	loaded := New(4)
	require.NoError(t, loaded.LoadText(bufio.NewReader(&buf)))
	assert.True(t, s.Equal(loaded))
}

func TestScoreStats_LoadTextTakesLineWidth(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("1 2\n3  4 5 x\n"))

	s := New(3)
	require.NoError(t, s.LoadText(r))
	assert.Equal(t, 2, s.Size())
	assert.Equal(t, 3, s.Arity())

	require.NoError(t, s.LoadText(r))
	assert.Equal(t, []Value{3, 4, 5, 0}, s.Values())

	err := s.LoadText(r)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestScoreStats_LoadTextWithoutTrailingNewline(t *testing.T) {
	s := New(2)
	require.NoError(t, s.LoadText(bufio.NewReader(strings.NewReader("4 5"))))
	assert.Equal(t, []Value{4, 5}, s.Values())
}

func TestScoreStats_Binary(t *testing.T) {
	s := FromValues(-1, 3.25, 1e6)

	var buf bytes.Buffer
	require.NoError(t, s.SaveBinary(&buf))
	assert.Equal(t, 12, buf.Len())

	loaded := New(3)
	require.NoError(t, loaded.LoadBinary(&buf))
	assert.True(t, s.Equal(loaded))
}

func TestScoreStats_LoadBinaryShortRead(t *testing.T) {
	s := New(3)
	err := s.LoadBinary(bytes.NewReader([]byte{1, 2, 3, 4, 5}))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	err = s.LoadBinary(bytes.NewReader(nil))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestScoreStats_Clone(t *testing.T) {
	s := FromValues(1, 2)
	c := s.Clone().(*ScoreStats)
	c.Set(0, 9)

	assert.Equal(t, Value(1), s.Get(0))
	assert.Equal(t, Value(9), c.Get(0))
	assert.False(t, s.Equal(c))
	assert.False(t, s.Equal(nil))
}

func TestScoreStats_Mutators(t *testing.T) {
	s := New(-2)
	assert.Equal(t, 0, s.Size())

	s.Add(1)
	s.Add(2)
	assert.Equal(t, 2, s.Size())
	assert.Equal(t, "1 2", s.String())

	s.Reset()
	assert.Equal(t, 0, s.Size())
}

func TestScoreStats_LoadBinaryLargeArity(t *testing.T) {
	payload := make([]byte, (binaryChunk+3)*valueSize)
	for i := range binaryChunk + 3 {
		payload[i*valueSize+3] = 0x3f // 0.5
	}

	s := New(binaryChunk + 3)
	require.NoError(t, s.LoadBinary(bytes.NewReader(payload)))
	require.Equal(t, binaryChunk+3, s.Size())
	assert.Equal(t, Value(0.5), s.Get(binaryChunk+2))
}

func TestScoreStats_LoadBinaryHugeArityShortStream(t *testing.T) {
	s := New(math.MaxInt32)
	err := s.LoadBinary(bytes.NewReader(make([]byte, 8)))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, 0, s.Size())
}

func TestDefaultFactory(t *testing.T) {
	r := DefaultFactory(5)
	assert.Equal(t, 0, r.Size())
	assert.Equal(t, 5, r.(*ScoreStats).Arity())

	huge := DefaultFactory(math.MaxInt32)
	assert.Equal(t, 0, huge.Size())
}
