package compress

// NoOpCodec passes data through unchanged. It is the baseline row of a
// benchmark report.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// NewNoOpCodec creates a pass-through codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress returns a copy of data.
func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return append([]byte{}, data...), nil
}

// Decompress returns a copy of data.
func (c NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return append([]byte{}, data...), nil
}
