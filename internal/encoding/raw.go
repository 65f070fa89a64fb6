package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/polypi/internal/endian"
)

var engine = endian.GetLittleEndianEngine()

// AppendRawFloats appends the IEEE 754 bits of values to dst, 8 bytes each.
func AppendRawFloats(dst []byte, values []float64) []byte {
	for _, v := range values {
		dst = engine.AppendUint64(dst, math.Float64bits(v))
	}

	return dst
}

// DecodeRawFloats decodes len(out) values written by AppendRawFloats and
// returns the number of bytes consumed.
func DecodeRawFloats(data []byte, out []float64) (int, error) {
	need := len(out) * 8
	if len(data) < need {
		return 0, fmt.Errorf("%w: raw floats need %d bytes, have %d", ErrCorrupted, need, len(data))
	}

	for i := range out {
		out[i] = math.Float64frombits(engine.Uint64(data[i*8:]))
	}

	return need, nil
}
