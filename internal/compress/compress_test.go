package compress

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Type
	}{
		{"scores.dat", None},
		{"scores.dat.gz", Gzip},
		{"scores.dat.GZ", Gzip},
		{"scores.dat.zst", Zstd},
		{"scores.dat.lz4", LZ4},
		{"scores", None},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FromPath(tt.path))
		})
	}

	for _, typ := range []Type{Gzip, Zstd, LZ4} {
		assert.Equal(t, typ, FromPath("x"+typ.Ext()))
	}
	assert.Empty(t, Auto.Ext())

	assert.Equal(t, Zstd, Resolve(Auto, "a.zst"))
	assert.Equal(t, LZ4, Resolve(LZ4, "a.zst"))
}

func TestRoundTrip(t *testing.T) {
	payload := strings.Repeat("SCORES_TXT_BEGIN_0 0 2 3 BLEU\n1 2 3\n4 5 6\nSCORES_TXT_END_0\n", 50)

	for _, typ := range []Type{None, Gzip, Zstd, LZ4} {
		t.Run(typ.String(), func(t *testing.T) {
			var buf bytes.Buffer

			w, err := NewWriter(&buf, typ)
			require.NoError(t, err)
			_, err = io.WriteString(w, payload)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			if typ != None {
				assert.Less(t, buf.Len(), len(payload))
			}

			r, err := NewReader(&buf, typ)
			require.NoError(t, err)
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			require.NoError(t, r.Close())

			assert.Equal(t, payload, string(got))
		})
	}
}

func TestUnknownType(t *testing.T) {
	_, err := NewReader(bytes.NewReader(nil), Type(42))
	assert.ErrorIs(t, err, ErrUnknown)

	_, err = NewWriter(io.Discard, Auto)
	assert.ErrorIs(t, err, ErrUnknown)
}
