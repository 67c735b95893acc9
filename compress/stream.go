package compress

import (
	"fmt"
	"io"
)

// CompressStream reads all of r, compresses it with codec and writes the
// artifact to w.
//
// Returns:
//   - int64: Number of bytes read from r
//   - int64: Number of bytes written to w
//   - error: Read, codec or write error
func CompressStream(codec Compressor, r io.Reader, w io.Writer) (int64, int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return int64(len(data)), 0, fmt.Errorf("failed to read payload: %w", err)
	}

	out, err := codec.Compress(data)
	if err != nil {
		return int64(len(data)), 0, err
	}

	n, err := w.Write(out)
	if err != nil {
		return int64(len(data)), int64(n), fmt.Errorf("failed to write artifact: %w", err)
	}

	return int64(len(data)), int64(n), nil
}

// DecompressStream reads an artifact from r, decompresses it with codec and
// writes the payload to w.
func DecompressStream(codec Decompressor, r io.Reader, w io.Writer) (int64, int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return int64(len(data)), 0, fmt.Errorf("failed to read artifact: %w", err)
	}

	out, err := codec.Decompress(data)
	if err != nil {
		return int64(len(data)), 0, err
	}

	n, err := w.Write(out)
	if err != nil {
		return int64(len(data)), int64(n), fmt.Errorf("failed to write payload: %w", err)
	}

	return int64(len(data)), int64(n), nil
}
