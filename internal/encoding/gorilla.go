package encoding

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/arloliu/polypi/internal/pool"
)

// GorillaEncoder compresses a float64 column with Gorilla XOR encoding.
//
// The first value is stored verbatim. Every later value is XORed with its
// predecessor and written as:
//   - '0' when the value is unchanged
//   - '10' + meaningful bits when they fit the previous block window
//   - '11' + 5 bits leading zeros + 6 bits block size - 1 + meaningful bits otherwise
//
// The encoder writes into a pooled buffer; call Finish once the bytes have
// been copied out.
type GorillaEncoder struct {
	w             bitWriter
	prevValue     uint64
	prevLeading   int
	prevTrailing  int
	prevBlockSize int
	count         int
}

// NewGorillaEncoder creates an encoder backed by a buffer from the archive pool.
func NewGorillaEncoder() *GorillaEncoder {
	return &GorillaEncoder{w: bitWriter{buf: pool.GetArchiveBuffer()}}
}

// Write encodes a single value.
func (e *GorillaEncoder) Write(val float64) {
	if e.w.buf == nil {
		panic("encoder already finished - cannot write values after Finish()")
	}

	valBits := math.Float64bits(val)
	e.count++

	if e.count == 1 {
		e.prevValue = valBits
		e.w.writeBits(valBits, 64)

		return
	}

	e.writeValue(valBits)
}

// WriteSlice encodes values in order.
func (e *GorillaEncoder) WriteSlice(values []float64) {
	for _, v := range values {
		e.Write(v)
	}
}

// Len returns the number of encoded values.
func (e *GorillaEncoder) Len() int {
	return e.count
}

// Bytes flushes pending bits and returns the encoded stream with its last byte
// zero-padded. Call it after the last Write; the slice is valid until Finish.
func (e *GorillaEncoder) Bytes() []byte {
	if e.w.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}
	e.w.flush()

	return e.w.buf.Bytes()
}

// Finish returns the buffer to the pool. The encoder is unusable afterwards.
func (e *GorillaEncoder) Finish() {
	if e.w.buf == nil {
		return
	}

	pool.PutArchiveBuffer(e.w.buf)
	e.w.buf = nil
}

func (e *GorillaEncoder) writeValue(valBits uint64) {
	xor := valBits ^ e.prevValue
	e.prevValue = valBits

	if xor == 0 {
		e.w.writeBits(0, 1)
		return
	}
	e.w.writeBits(1, 1)

	// Leading zeros are stored in 5 bits; extra zeros become part of the block.
	leading := min(bits.LeadingZeros64(xor), 31)
	trailing := bits.TrailingZeros64(xor)

	if e.prevBlockSize > 0 && leading >= e.prevLeading && trailing >= e.prevTrailing {
		e.w.writeBits(0, 1)
		e.w.writeBits(xor>>e.prevTrailing, e.prevBlockSize)

		return
	}

	blockSize := 64 - leading - trailing
	e.w.writeBits(1, 1)
	e.w.writeBits(uint64(leading), 5)     //nolint:gosec // G115: leading is 0-31
	e.w.writeBits(uint64(blockSize-1), 6) //nolint:gosec // G115: blockSize-1 is 0-63
	e.w.writeBits(xor>>trailing, blockSize)

	e.prevLeading = leading
	e.prevTrailing = trailing
	e.prevBlockSize = blockSize
}

// DecodeGorilla decodes len(out) values from a stream written by
// GorillaEncoder and returns the number of bytes consumed.
func DecodeGorilla(data []byte, out []float64) (int, error) {
	if len(out) == 0 {
		return 0, nil
	}

	br := bitReader{data: data}

	first, ok := br.readBits(64)
	if !ok {
		return 0, fmt.Errorf("%w: gorilla stream shorter than first value", ErrCorrupted)
	}
	prev := first
	out[0] = math.Float64frombits(prev)

	var trailing, blockSize int
	for i := 1; i < len(out); i++ {
		changed, ok := br.readBits(1)
		if !ok {
			return 0, fmt.Errorf("%w: gorilla stream ends at value %d", ErrCorrupted, i)
		}

		if changed == 1 {
			newBlock, ok := br.readBits(1)
			if !ok {
				return 0, fmt.Errorf("%w: gorilla stream ends at value %d", ErrCorrupted, i)
			}

			if newBlock == 1 {
				header, ok := br.readBits(11)
				if !ok {
					return 0, fmt.Errorf("%w: gorilla block header truncated at value %d", ErrCorrupted, i)
				}
				leading := int(header >> 6)
				blockSize = int(header&0x3F) + 1
				trailing = 64 - leading - blockSize
				if trailing < 0 {
					return 0, fmt.Errorf("%w: gorilla block at value %d exceeds 64 bits", ErrCorrupted, i)
				}
			} else if blockSize == 0 {
				return 0, fmt.Errorf("%w: gorilla value %d reuses a missing block", ErrCorrupted, i)
			}

			meaningful, ok := br.readBits(blockSize)
			if !ok {
				return 0, fmt.Errorf("%w: gorilla value %d truncated", ErrCorrupted, i)
			}
			prev ^= meaningful << trailing
		}

		out[i] = math.Float64frombits(prev)
	}

	return (br.pos + 7) / 8, nil
}

// bitWriter accumulates bits MSB-first and flushes them to buf in big-endian order.
type bitWriter struct {
	buf   *pool.ByteBuffer
	acc   uint64
	nbits int
}

func (w *bitWriter) writeBits(value uint64, n int) {
	if n == 0 {
		return
	}
	if n < 64 {
		value &= (1 << n) - 1
	}

	free := 64 - w.nbits
	if n < free {
		w.acc = w.acc<<n | value
		w.nbits += n

		return
	}

	// Fill the accumulator, flush it, keep the low bits that did not fit.
	rest := n - free
	if free == 64 {
		w.acc = value
	} else {
		w.acc = w.acc<<free | value>>rest
	}
	w.nbits = 64
	w.flush()

	if rest > 0 {
		w.acc = value & ((1 << rest) - 1)
		w.nbits = rest
	}
}

// flush writes the pending bits, zero-padding a trailing partial byte.
func (w *bitWriter) flush() {
	if w.nbits == 0 {
		return
	}

	aligned := w.acc << (64 - w.nbits)
	numBytes := (w.nbits + 7) / 8
	w.buf.Grow(numBytes)
	for i := range numBytes {
		_ = w.buf.WriteByte(byte(aligned >> (56 - 8*i)))
	}

	w.acc = 0
	w.nbits = 0
}

// bitReader reads bits MSB-first from data.
type bitReader struct {
	data []byte
	pos  int
}

func (br *bitReader) readBits(n int) (uint64, bool) {
	if br.pos+n > len(br.data)*8 {
		return 0, false
	}

	var v uint64
	for n > 0 {
		offset := br.pos % 8
		avail := 8 - offset
		take := min(avail, n)
		chunk := uint64(br.data[br.pos/8]>>(avail-take)) & ((1 << take) - 1)
		v = v<<take | chunk
		br.pos += take
		n -= take
	}

	return v, true
}
