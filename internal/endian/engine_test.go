package endian

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()

	buf := engine.AppendUint32(nil, 0x31495050)
	require.Equal(t, []byte("PPI1"), buf)
	require.Equal(t, uint32(0x31495050), engine.Uint32(buf))

	buf = engine.AppendUint16(buf[:0], 0x0102)
	require.Equal(t, []byte{0x02, 0x01}, buf)
}
