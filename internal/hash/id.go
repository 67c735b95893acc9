package hash

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Checksum computes the xxHash64 of data.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// ChecksumHex returns Checksum formatted as 16 lower-case hex digits.
func ChecksumHex(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// NewDigest returns a streaming xxHash64 digest for content that is copied
// rather than held in memory.
func NewDigest() *xxhash.Digest {
	return xxhash.New()
}
