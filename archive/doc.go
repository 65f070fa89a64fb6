// Package archive stores a series.Series as a compact, checksummed binary snapshot.
//
// # Layout
//
// An archive is a fixed 36-byte little-endian header followed by the stored
// payload:
//
//	offset  size  field
//	0       4     magic "PPI1"
//	4       1     format version (1)
//	5       1     series mode
//	6       1     compression (format.CompressionType)
//	7       1     estimate encoding (format.EncodingType)
//	8       4     result count
//	12      4     payload size before compression
//	16      4     stored payload size
//	20      8     π reference (float64 bits)
//	28      8     xxHash64 of header bytes 0-27 and the stored payload
//
// The payload holds three columns, one entry per result in series order:
// side counts as zigzag varint deltas, one method byte per result, and the
// estimates (Gorilla XOR or raw float64). The payload is compressed as a
// single block.
//
// Error fields are not stored; Decode recomputes them against the stored
// reference, so a decoded series equals the encoded one.
//
// # Usage
//
//	data, err := archive.Encode(s, archive.WithCompression(format.CompressionZstd))
//	...
//	restored, err := archive.Decode(data)
package archive
