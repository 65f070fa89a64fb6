package encoding

import (
	"encoding/binary"
	"fmt"
)

// AppendSideDeltas appends values to dst as zigzag varint deltas, starting
// from an implicit previous value of 0.
//
// Doubling sequences such as 3, 6, 12, ... need one or two bytes per entry.
func AppendSideDeltas(dst []byte, values []int) []byte {
	prev := 0
	for _, v := range values {
		dst = binary.AppendVarint(dst, int64(v-prev))
		prev = v
	}

	return dst
}

// DecodeSideDeltas decodes count values written by AppendSideDeltas into out
// and returns the number of bytes consumed.
//
// out must have length count.
func DecodeSideDeltas(data []byte, out []int) (int, error) {
	offset := 0
	prev := 0
	for i := range out {
		delta, n := binary.Varint(data[offset:])
		if n <= 0 {
			return 0, fmt.Errorf("%w: side delta %d unreadable at offset %d", ErrCorrupted, i, offset)
		}
		offset += n
		prev += int(delta)
		out[i] = prev
	}

	return offset, nil
}
