package huffman

import (
	"encoding/json"
	"fmt"

	"github.com/arloliu/lossless/endian"
	"github.com/arloliu/lossless/errs"
	"github.com/arloliu/lossless/internal/bitstream"
	"github.com/arloliu/lossless/internal/pool"
)

// HeaderLengthSize is the size of the big-endian header length prefix.
const HeaderLengthSize = 4

// Artifact is the decoded form of a Huffman artifact.
type Artifact[S Symbol] struct {
	// Codes is the code table needed to decode Data.
	Codes CodeTable[S]
	// Padding is the number of zero bits appended to the last byte of Data.
	Padding uint8
	// Data holds the packed codewords.
	Data []byte
}

type artifactHeader[S Symbol] struct {
	Padding uint8        `json:"padding"`
	Codes   CodeTable[S] `json:"codes"`
}

// MarshalBinary serializes the artifact as
// [4-byte BE header length][JSON header][packed data].
//
// Returns errs.ErrRange if the header does not fit the length prefix.
func (a *Artifact[S]) MarshalBinary() ([]byte, error) {
	codes := a.Codes
	if codes == nil {
		codes = CodeTable[S]{}
	}

	header, err := json.Marshal(artifactHeader[S]{Padding: a.Padding, Codes: codes})
	if err != nil {
		return nil, fmt.Errorf("failed to encode huffman header: %w", err)
	}

	buf := pool.GetArtifactBuffer()
	defer pool.PutArtifactBuffer(buf)

	buf.Grow(HeaderLengthSize + len(header) + len(a.Data))
	buf.B, err = endian.AppendUint32(endian.GetArtifactEngine(), buf.B, len(header))
	if err != nil {
		return nil, fmt.Errorf("huffman header length: %w", err)
	}
	_, _ = buf.Write(header)
	_, _ = buf.Write(a.Data)

	return buf.Clone(), nil
}

// ParseArtifact splits a Huffman artifact into its code table, padding and
// packed data. The code table itself is not validated here.
//
// Returns errs.ErrFormat if the length prefix is missing, the header overruns
// the artifact, or the header is not valid JSON.
func ParseArtifact[S Symbol](data []byte) (*Artifact[S], error) {
	if len(data) < HeaderLengthSize {
		return nil, fmt.Errorf("%w: huffman artifact of %d bytes has no header length", errs.ErrFormat, len(data))
	}

	headerLen := uint64(endian.GetArtifactEngine().Uint32(data[:HeaderLengthSize]))
	if headerLen > uint64(len(data)-HeaderLengthSize) {
		return nil, fmt.Errorf("%w: huffman header length %d overruns %d-byte artifact",
			errs.ErrFormat, headerLen, len(data))
	}

	end := HeaderLengthSize + int(headerLen)
	var header artifactHeader[S]
	if err := json.Unmarshal(data[HeaderLengthSize:end], &header); err != nil {
		return nil, fmt.Errorf("%w: huffman header: %w", errs.ErrFormat, err)
	}
	if header.Padding > bitstream.MaxPadding {
		return nil, fmt.Errorf("%w: huffman padding %d exceeds %d", errs.ErrFormat, header.Padding, bitstream.MaxPadding)
	}

	return &Artifact[S]{
		Codes:   header.Codes,
		Padding: header.Padding,
		Data:    data[end:],
	}, nil
}

// encodeSymbols builds the artifact for input using the frequencies in ft.
func encodeSymbols[S Symbol](input []S, ft *FrequencyTable[S], cfg *Config) ([]byte, error) {
	if cfg.StrictAlphabet && ft.Len() == 1 {
		return nil, fmt.Errorf("%w: input has a single distinct symbol", errs.ErrDegenerateInput)
	}

	codes := BuildCodeTable(BuildTree(ft))

	w := bitstream.NewWriter(codes.BitLength(ft))
	for _, s := range input {
		if err := w.WriteCode(codes[s]); err != nil {
			return nil, err
		}
	}
	data, padding := w.Finish()

	artifact := &Artifact[S]{Codes: codes, Padding: padding, Data: data}

	return artifact.MarshalBinary()
}

// decodeSymbols reverses encodeSymbols. validSymbol rejects code table keys
// that cannot occur in the variant's output.
func decodeSymbols[S Symbol](data []byte, validSymbol func(S) bool) ([]S, error) {
	artifact, err := ParseArtifact[S](data)
	if err != nil {
		return nil, err
	}

	trie, err := newDecodeTrie(artifact.Codes, validSymbol)
	if err != nil {
		return nil, err
	}

	bits, err := bitstream.Unpack(artifact.Data, artifact.Padding)
	if err != nil {
		return nil, err
	}

	return trie.decode(bits, len(bits)/8)
}
