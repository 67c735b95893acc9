// Package endian provides the byte order used by lossless artifacts.
//
// All fixed-width integer fields in lossless artifacts (the Huffman header
// length prefix, the LZ77 raw offset and length fields) are big-endian. The
// package combines binary.ByteOrder and binary.AppendByteOrder into a single
// EndianEngine and adds range-checked appenders that fail with errs.ErrRange
// instead of silently truncating a value.
//
//	engine := endian.GetArtifactEngine()
//	buf, err := endian.AppendUint16(engine, buf, offset)
//	if err != nil {
//	    return nil, err
//	}
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned
// engines are immutable and stateless.
package endian

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/lossless/errs"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetArtifactEngine returns the engine every lossless artifact is written with.
func GetArtifactEngine() EndianEngine {
	return binary.BigEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// AppendUint16 appends v as a 2-byte unsigned integer.
//
// Parameters:
//   - engine: Byte order to write with
//   - buf: Destination buffer
//   - v: Value to append, must be in [0, 65535]
//
// Returns:
//   - []byte: The extended buffer
//   - error: errs.ErrRange if v does not fit in 16 bits
func AppendUint16(engine EndianEngine, buf []byte, v int) ([]byte, error) {
	if v < 0 || v > math.MaxUint16 {
		return buf, fmt.Errorf("%w: %d does not fit in 16 bits", errs.ErrRange, v)
	}

	return engine.AppendUint16(buf, uint16(v)), nil
}

// AppendUint32 appends v as a 4-byte unsigned integer.
//
// Returns errs.ErrRange if v does not fit in 32 bits.
func AppendUint32(engine EndianEngine, buf []byte, v int) ([]byte, error) {
	if v < 0 || uint64(v) > math.MaxUint32 {
		return buf, fmt.Errorf("%w: %d does not fit in 32 bits", errs.ErrRange, v)
	}

	return engine.AppendUint32(buf, uint32(v)), nil
}
