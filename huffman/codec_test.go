package huffman

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/arloliu/lossless/errs"
	"github.com/stretchr/testify/require"
)

func artifactBytes(header string, data ...byte) []byte {
	out := binary.BigEndian.AppendUint32(nil, uint32(len(header)))
	out = append(out, header...)

	return append(out, data...)
}

func TestRawCodec_CompressLayout(t *testing.T) {
	codec, err := NewRawCodec()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    []byte
		expected []byte
	}{
		{"empty", []byte{}, artifactBytes(`{"padding":0,"codes":{}}`)},
		{"two symbols", []byte("ab"), artifactBytes(`{"padding":6,"codes":{"97":"0","98":"1"}}`, 0x40)},
		{"single symbol", []byte("aaa"), artifactBytes(`{"padding":5,"codes":{"97":"0"}}`, 0x00)},
		{"full byte", []byte("abababab"), artifactBytes(`{"padding":0,"codes":{"97":"0","98":"1"}}`, 0x55)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := codec.Compress(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestRawCodec_Deterministic(t *testing.T) {
	codec, err := NewRawCodec()
	require.NoError(t, err)

	input := []byte("deterministic output for equal weights: abcdefgh")
	first, err := codec.Compress(input)
	require.NoError(t, err)
	for range 5 {
		again, err := codec.Compress(input)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestRawCodec_RoundTrip(t *testing.T) {
	random := make([]byte, 4096)
	_, _ = rand.Read(random)

	inputs := map[string][]byte{
		"empty":    {},
		"single":   {0},
		"repeated": bytes.Repeat([]byte{0xff}, 1000),
		"two":      []byte("ab"),
		"all":      allBytes(),
		"random":   random,
		"text":     []byte(strings.Repeat("hello huffman ", 50)),
	}

	codec, err := NewRawCodec()
	require.NoError(t, err)

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			encoded, err := codec.Compress(input)
			require.NoError(t, err)

			decoded, err := codec.Decompress(encoded)
			require.NoError(t, err)
			require.Equal(t, input, decoded)
		})
	}
}

func TestRawCodec_StrictAlphabet(t *testing.T) {
	codec, err := NewRawCodec(WithStrictAlphabet(true))
	require.NoError(t, err)

	_, err = codec.Compress([]byte("aaaa"))
	require.ErrorIs(t, err, errs.ErrDegenerateInput)

	encoded, err := codec.Compress([]byte{})
	require.NoError(t, err)
	decoded, err := codec.Decompress(encoded)
	require.NoError(t, err)
	require.Empty(t, decoded)

	encoded, err = codec.Compress([]byte("ab"))
	require.NoError(t, err)
	decoded, err = codec.Decompress(encoded)
	require.NoError(t, err)
	require.Equal(t, []byte("ab"), decoded)
}

func TestRawCodec_DecompressErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"short", []byte{0, 0, 1}},
		{"header overrun", []byte{0, 0, 0, 50, '{', '}'}},
		{"bad json", artifactBytes(`{"padding":`)},
		{"bad padding", artifactBytes(`{"padding":9,"codes":{"97":"0"}}`, 0x00)},
		{"padding beyond data", artifactBytes(`{"padding":3,"codes":{"97":"0"}}`)},
		{"symbol out of range", artifactBytes(`{"padding":7,"codes":{"300":"0"}}`, 0x00)},
		{"non binary code", artifactBytes(`{"padding":7,"codes":{"97":"2"}}`, 0x00)},
		{"not prefix free", artifactBytes(`{"padding":6,"codes":{"97":"0","98":"01"}}`, 0x00)},
		{"dead path", artifactBytes(`{"padding":7,"codes":{"97":"0"}}`, 0x80)},
		{"truncated codeword", artifactBytes(`{"padding":7,"codes":{"97":"00","98":"01"}}`, 0x00)},
		{"bits without codes", artifactBytes(`{"padding":0,"codes":{}}`, 0x00)},
	}

	codec, err := NewRawCodec()
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decompress(tt.input)
			require.ErrorIs(t, err, errs.ErrFormat)
		})
	}
}

func TestTextCodec_RoundTrip(t *testing.T) {
	inputs := map[string]string{
		"empty":   "",
		"single":  "zzzzzz",
		"ascii":   "the quick brown fox jumps over the lazy dog",
		"unicode": "héllo wörld, こんにちは 😀😀",
		"newline": "line one\nline two\r\n\ttabbed",
	}

	codec, err := NewTextCodec()
	require.NoError(t, err)

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			encoded, err := codec.Compress([]byte(input))
			require.NoError(t, err)

			decoded, err := codec.Decompress(encoded)
			require.NoError(t, err)
			require.Equal(t, input, string(decoded))
		})
	}
}

func TestTextCodec_CodePointKeys(t *testing.T) {
	codec, err := NewTextCodec()
	require.NoError(t, err)

	encoded, err := codec.Compress([]byte("€€"))
	require.NoError(t, err)

	artifact, err := ParseArtifact[rune](encoded)
	require.NoError(t, err)
	require.Equal(t, CodeTable[rune]{'€': "0"}, artifact.Codes)
	require.Equal(t, uint8(6), artifact.Padding)
	require.Equal(t, []byte{0x00}, artifact.Data)
	require.Contains(t, string(encoded), `"8364":"0"`)
}

func TestTextCodec_Errors(t *testing.T) {
	codec, err := NewTextCodec()
	require.NoError(t, err)

	_, err = codec.Compress([]byte{0xff, 0xfe})
	require.ErrorIs(t, err, errs.ErrFormat)

	// 0xD800 is a surrogate and cannot be encoded as UTF-8.
	_, err = codec.Decompress(artifactBytes(`{"padding":7,"codes":{"55296":"0"}}`, 0x00))
	require.ErrorIs(t, err, errs.ErrFormat)

	strict, err := NewTextCodec(WithStrictAlphabet(true))
	require.NoError(t, err)
	_, err = strict.Compress([]byte("ééé"))
	require.ErrorIs(t, err, errs.ErrDegenerateInput)
}

func TestArtifact_MarshalBinary(t *testing.T) {
	artifact := &Artifact[byte]{Padding: 4, Data: []byte{0xa0}}

	got, err := artifact.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, artifactBytes(`{"padding":4,"codes":{}}`, 0xa0), got)

	parsed, err := ParseArtifact[byte](got)
	require.NoError(t, err)
	require.Empty(t, parsed.Codes)
	require.Equal(t, uint8(4), parsed.Padding)
	require.Equal(t, []byte{0xa0}, parsed.Data)
}

func TestCompress_SmallerForSkewedInput(t *testing.T) {
	input := bytes.Repeat([]byte("aaaaaaab"), 512)

	codec, err := NewRawCodec()
	require.NoError(t, err)

	encoded, err := codec.Compress(input)
	require.NoError(t, err)
	require.Less(t, len(encoded), len(input)/4)
}

func allBytes() []byte {
	out := make([]byte, 256)
	for i := range out {
		out[i] = byte(i)
	}

	return out
}

func BenchmarkRawCodec_Compress(b *testing.B) {
	input := []byte(strings.Repeat("benchmark input with some repetition ", 256))
	codec, _ := NewRawCodec()

	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	for b.Loop() {
		_, _ = codec.Compress(input)
	}
}

func BenchmarkRawCodec_Decompress(b *testing.B) {
	input := []byte(strings.Repeat("benchmark input with some repetition ", 256))
	codec, _ := NewRawCodec()
	encoded, _ := codec.Compress(input)

	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	for b.Loop() {
		_, _ = codec.Decompress(encoded)
	}
}
