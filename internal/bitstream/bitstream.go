// Package bitstream packs binary codewords into bytes and back.
//
// Codewords are strings of '0' and '1' characters. Bits are packed MSB-first:
// the first emitted bit is the most significant bit of the first byte. The
// final byte is right-padded with zero bits and the number of pad bits (0-7)
// is returned so the unpacker can discard them.
package bitstream

import (
	"fmt"
	"strings"

	"github.com/arloliu/lossless/errs"
)

// MaxPadding is the largest valid padding bit count.
const MaxPadding = 7

// Writer accumulates codewords into a packed byte slice.
//
// The zero value is ready to use.
type Writer struct {
	buf     []byte
	cur     byte
	nbits   uint8 // bits held in cur
	written int
}

// NewWriter returns a Writer whose buffer is pre-sized for sizeHint bits.
func NewWriter(sizeHint int) *Writer {
	return &Writer{buf: make([]byte, 0, (sizeHint+7)/8)}
}

// WriteBit appends a single bit.
func (w *Writer) WriteBit(bit bool) {
	w.cur <<= 1
	if bit {
		w.cur |= 1
	}
	w.nbits++
	w.written++

	if w.nbits == 8 {
		w.buf = append(w.buf, w.cur)
		w.cur = 0
		w.nbits = 0
	}
}

// WriteCode appends every bit of code.
//
// Returns errs.ErrFormat if code contains anything other than '0' and '1';
// bits before the offending character have already been written.
func (w *Writer) WriteCode(code string) error {
	for i := 0; i < len(code); i++ {
		switch code[i] {
		case '0':
			w.WriteBit(false)
		case '1':
			w.WriteBit(true)
		default:
			return fmt.Errorf("%w: codeword %q is not binary", errs.ErrFormat, code)
		}
	}

	return nil
}

// BitLen returns the number of bits written so far.
func (w *Writer) BitLen() int {
	return w.written
}

// Finish flushes the partial byte and returns the packed data with its
// padding bit count. The Writer must not be used afterwards.
func (w *Writer) Finish() ([]byte, uint8) {
	if w.nbits == 0 {
		return w.buf, 0
	}

	padding := 8 - w.nbits
	w.buf = append(w.buf, w.cur<<padding)
	w.cur = 0
	w.nbits = 0

	return w.buf, padding
}

// Pack concatenates codewords, pads to a byte boundary and returns the packed
// bytes together with the padding bit count.
//
// Returns errs.ErrFormat if a codeword is not binary.
func Pack(codewords []string) ([]byte, uint8, error) {
	total := 0
	for _, c := range codewords {
		total += len(c)
	}

	w := NewWriter(total)
	for _, c := range codewords {
		if err := w.WriteCode(c); err != nil {
			return nil, 0, err
		}
	}
	data, padding := w.Finish()

	return data, padding, nil
}

// Unpack expands data to its bit string and drops the trailing padding bits.
//
// Returns errs.ErrFormat if padding is greater than MaxPadding or longer than
// the data itself.
func Unpack(data []byte, padding uint8) (string, error) {
	if padding > MaxPadding {
		return "", fmt.Errorf("%w: padding %d exceeds %d bits", errs.ErrFormat, padding, MaxPadding)
	}

	total := len(data) * 8
	if int(padding) > total {
		return "", fmt.Errorf("%w: padding %d exceeds %d data bits", errs.ErrFormat, padding, total)
	}

	var sb strings.Builder
	sb.Grow(total)
	for _, b := range data {
		for shift := 7; shift >= 0; shift-- {
			if b>>uint(shift)&1 == 1 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
	}

	bits := sb.String()

	return bits[:total-int(padding)], nil
}
