package compress

import (
	"bytes"
	"testing"

	"github.com/noxer/bytewriter"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"

	"github.com/arloliu/lossless/errs"
	"github.com/arloliu/lossless/format"
	"github.com/arloliu/lossless/lz77"
)

func TestStats_Ratio(t *testing.T) {
	tests := []struct {
		name    string
		stats   Stats
		ratio   float64
		savings float64
	}{
		{"halved", Stats{OriginalSize: 100, CompressedSize: 50}, 0.5, 50.0},
		{"grew", Stats{OriginalSize: 50, CompressedSize: 100}, 2.0, -100.0},
		{"empty artifact", Stats{OriginalSize: 10, CompressedSize: 0}, 0.0, 100.0},
		{"empty input", Stats{OriginalSize: 0, CompressedSize: 4}, 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.ratio, tt.stats.Ratio(), 1e-9)
			require.InDelta(t, tt.savings, tt.stats.SpaceSavings(), 1e-9)
		})
	}
}

func TestCompressWithStats(t *testing.T) {
	data := bytes.Repeat([]byte{7}, 600)

	out, stats, err := CompressWithStats(format.CodecRLE, format.VariantRaw, data)
	require.NoError(t, err)
	require.Equal(t, []byte{255, 7, 255, 7, 90, 7}, out)
	require.Equal(t, format.CodecRLE, stats.Codec)
	require.Equal(t, format.VariantRaw, stats.Variant)
	require.Equal(t, 600, stats.OriginalSize)
	require.Equal(t, 6, stats.CompressedSize)
	require.Zero(t, stats.DecompressedSize)
	require.GreaterOrEqual(t, stats.Duration.Nanoseconds(), int64(0))
	require.InDelta(t, 0.01, stats.Ratio(), 1e-9)

	decoded, dstats, err := DecompressWithStats(format.CodecRLE, format.VariantRaw, out)
	require.NoError(t, err)
	require.Equal(t, data, decoded)
	require.Equal(t, 600, dstats.DecompressedSize)
	require.Equal(t, 6, dstats.CompressedSize)
}

func TestCompressWithStats_Settings(t *testing.T) {
	_, _, err := CompressWithStats(format.CodecLZ77, format.VariantText, []byte("abc"),
		WithLZ77Options(lz77.WithLookaheadSize(0)))
	require.ErrorIs(t, err, errs.ErrInvalidOption)

	_, _, err = CompressWithStats(format.CodecHuffman, format.VariantText, []byte{0xff})
	require.ErrorIs(t, err, errs.ErrFormat)

	_, _, err = DecompressWithStats(format.CodecRLE, format.VariantRaw, []byte{1})
	require.ErrorIs(t, err, errs.ErrFormat)
}

func TestCompressStream_RoundTrip(t *testing.T) {
	payload := []byte("stream me, stream me, stream me again")
	codec, err := GetCodec(format.CodecLZ77, format.VariantText)
	require.NoError(t, err)

	compressed := make([]byte, 1024)
	read, written, err := CompressStream(codec, bytes.NewReader(payload), bytewriter.New(compressed))
	require.NoError(t, err)
	require.EqualValues(t, len(payload), read)

	source := bytesextra.NewReadWriteSeeker(append([]byte{}, compressed[:written]...))
	decompressed := make([]byte, len(payload))
	read2, written2, err := DecompressStream(codec, source, bytewriter.New(decompressed))
	require.NoError(t, err)
	require.Equal(t, written, read2)
	require.EqualValues(t, len(payload), written2)
	require.Equal(t, payload, decompressed)
}

func TestDecompressStream_CodecError(t *testing.T) {
	codec, err := GetCodec(format.CodecLZ77, format.VariantRaw)
	require.NoError(t, err)

	var out bytes.Buffer
	_, written, err := DecompressStream(codec, bytes.NewReader([]byte{1, 2, 3}), &out)
	require.ErrorIs(t, err, errs.ErrFormat)
	require.Zero(t, written)
	require.Zero(t, out.Len())
}
