package compress

// ZstdCodec wraps Zstandard frame compression.
//
// The backend is chosen at build time, see the package documentation.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec creates a Zstd codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
