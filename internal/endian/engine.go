// Package endian provides the byte order used by the archive format.
//
// Archives are always little-endian regardless of the host. The engine
// combines binary.ByteOrder and binary.AppendByteOrder so encoders can append
// fixed-width fields directly to their output buffer.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine used by archives.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
