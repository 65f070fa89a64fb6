package compress

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/arloliu/polypi/format"
	"github.com/stretchr/testify/require"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

// estimatesPayload mimics a raw estimates column: float64 bits of n·sin(π/n).
func estimatesPayload(count int) []byte {
	buf := make([]byte, 0, count*8)
	for n := 3; n < count+3; n++ {
		v := float64(n) * math.Sin(math.Pi/float64(n))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}

	return buf
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := CreateCodec(ct, "archive")
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := CreateCodec(format.CompressionType(0x7), "archive")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid archive compression")
}

func TestGetCodec(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err, ct.String())
		require.NotNil(t, codec)
	}

	_, err := GetCodec(format.CompressionType(0))
	require.Error(t, err)
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"single byte":   {0x42},
		"short":         []byte("3,6,12,24,48,96,192,384"),
		"estimates 8":   estimatesPayload(8),
		"estimates 382": estimatesPayload(382),
		"repetitive":    bytes.Repeat([]byte{0x01, 0x02}, 4096),
	}

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for name, data := range payloads {
			t.Run(fmt.Sprintf("%s/%s", ct, name), func(t *testing.T) {
				compressed, err := codec.Compress(data)
				require.NoError(t, err)

				restored, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, data, restored)
			})
		}
	}
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)
		require.Empty(t, compressed)

		restored, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Empty(t, restored)
	}
}

func TestAllCodecs_CompressRepetitiveData(t *testing.T) {
	data := bytes.Repeat([]byte("polygon"), 2048)

	for _, ct := range allTypes[1:] {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(data)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(data)/4, ct.String())
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	garbage := []byte{0xFF, 0xFE, 0xFD, 0xFC, 0xFB, 0xFA, 0x00, 0x11}

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage)
		require.Error(t, err, ct.String())
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	data := estimatesPayload(256)

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		var wg sync.WaitGroup
		errs := make(chan error, 16)
		for range 16 {
			wg.Go(func() {
				compressed, err := codec.Compress(data)
				if err != nil {
					errs <- err
					return
				}
				restored, err := codec.Decompress(compressed)
				if err != nil {
					errs <- err
					return
				}
				if !bytes.Equal(data, restored) {
					errs <- fmt.Errorf("%s: round trip mismatch", ct)
				}
			})
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			require.NoError(t, err)
		}
	}
}

func TestLZ4LiteralBlock(t *testing.T) {
	codec := NewLZ4Compressor()

	for _, n := range []int{1, 14, 15, 16, 269, 270, 600} {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i*131 + 7)
		}

		restored, err := codec.Decompress(literalLZ4Block(data))
		require.NoError(t, err, "length %d", n)
		require.Equal(t, data, restored)
	}
}

func TestStats(t *testing.T) {
	s := Stats{Algorithm: format.CompressionZstd, OriginalSize: 200, CompressedSize: 50}
	require.InDelta(t, 0.25, s.Ratio(), 1e-12)
	require.InDelta(t, 75.0, s.SpaceSavings(), 1e-12)

	grown := Stats{Algorithm: format.CompressionLZ4, OriginalSize: 10, CompressedSize: 12}
	require.InDelta(t, -20.0, grown.SpaceSavings(), 1e-12)

	empty := Stats{}
	require.Zero(t, empty.Ratio())
	require.Zero(t, empty.SpaceSavings())
}
