package archive

import (
	"fmt"
	"math"

	"github.com/arloliu/polypi/compress"
	"github.com/arloliu/polypi/format"
	"github.com/arloliu/polypi/internal/endian"
	"github.com/arloliu/polypi/series"
)

const (
	// HeaderSize is the fixed size of the archive header in bytes.
	HeaderSize = 36
	// Version is the format version written by Encode.
	Version = 1

	checksumOffset = 28
)

var magic = [4]byte{'P', 'P', 'I', '1'}

var engine = endian.GetLittleEndianEngine()

// Header describes an archive without decoding its payload.
type Header struct {
	Version          uint8
	Mode             series.Mode
	Compression      format.CompressionType
	EstimateEncoding format.EncodingType
	// Count is the number of results.
	Count uint32
	// RawSize is the payload size before compression.
	RawSize uint32
	// StoredSize is the size of the payload following the header.
	StoredSize uint32
	Reference  float64
	Checksum   uint64
}

// Stats reports the compression effect recorded in the header.
func (h Header) Stats() compress.Stats {
	return compress.Stats{
		Algorithm:      h.Compression,
		OriginalSize:   int(h.RawSize),
		CompressedSize: int(h.StoredSize),
	}
}

// Size returns the total archive size in bytes.
func (h Header) Size() int {
	return HeaderSize + int(h.StoredSize)
}

// appendTo appends the header fields up to, not including, the checksum.
func (h Header) appendTo(dst []byte) []byte {
	dst = append(dst, magic[:]...)
	dst = append(dst, h.Version, uint8(h.Mode), uint8(h.Compression), uint8(h.EstimateEncoding))
	dst = engine.AppendUint32(dst, h.Count)
	dst = engine.AppendUint32(dst, h.RawSize)
	dst = engine.AppendUint32(dst, h.StoredSize)

	return engine.AppendUint64(dst, math.Float64bits(h.Reference))
}

// parseHeader reads and validates the fixed header fields of data.
func parseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes, header needs %d", ErrTruncated, len(data), HeaderSize)
	}
	if [4]byte(data[0:4]) != magic {
		return Header{}, fmt.Errorf("%w: %q", ErrInvalidMagic, data[0:4])
	}

	h := Header{
		Version:          data[4],
		Mode:             series.Mode(data[5]),
		Compression:      format.CompressionType(data[6]),
		EstimateEncoding: format.EncodingType(data[7]),
		Count:            engine.Uint32(data[8:12]),
		RawSize:          engine.Uint32(data[12:16]),
		StoredSize:       engine.Uint32(data[16:20]),
		Reference:        math.Float64frombits(engine.Uint64(data[20:28])),
		Checksum:         engine.Uint64(data[checksumOffset:HeaderSize]),
	}

	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}

	return h, nil
}

// Inspect parses the header of an archive and verifies its checksum without
// decoding the payload.
func Inspect(data []byte) (Header, error) {
	h, err := parseHeader(data)
	if err != nil {
		return Header{}, err
	}

	if err := verify(h, data); err != nil {
		return Header{}, err
	}

	return h, nil
}
