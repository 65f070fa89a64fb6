package archive

import (
	"errors"
	"fmt"
	"math"

	"github.com/arloliu/polypi/compress"
	"github.com/arloliu/polypi/estimator"
	"github.com/arloliu/polypi/format"
	"github.com/arloliu/polypi/internal/encoding"
	"github.com/arloliu/polypi/internal/hash"
	"github.com/arloliu/polypi/internal/options"
	"github.com/arloliu/polypi/internal/pool"
	"github.com/arloliu/polypi/series"
)

var (
	// ErrInvalidMagic indicates data that does not start with the archive magic.
	ErrInvalidMagic = errors.New("archive: invalid magic")
	// ErrUnsupportedVersion indicates an archive written by an unknown format version.
	ErrUnsupportedVersion = errors.New("archive: unsupported version")
	// ErrChecksumMismatch indicates an archive whose content does not match its checksum.
	ErrChecksumMismatch = errors.New("archive: checksum mismatch")
	// ErrTruncated indicates an archive shorter than its header declares.
	ErrTruncated = errors.New("archive: truncated data")
	// ErrCorrupted indicates a payload that passed the checksum but cannot be decoded.
	ErrCorrupted = errors.New("archive: corrupted payload")
)

// Encode serializes s into a new archive.
//
// Parameters:
//   - s: the series to store
//   - opts: WithCompression, WithEstimateEncoding
//
// Returns:
//   - []byte: the archive, owned by the caller
//   - error: invalid option or compression failure
func Encode(s *series.Series, opts ...Option) ([]byte, error) {
	if s == nil {
		return nil, errors.New("archive: nil series")
	}

	cfg := defaultEncodeConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	if uint64(s.Len()) > math.MaxUint32 {
		return nil, fmt.Errorf("archive: %d results exceed the format limit", s.Len())
	}

	payload := pool.GetArchiveBuffer()
	defer pool.PutArchiveBuffer(payload)

	if err := appendColumns(payload, s, cfg.EstimateEncoding); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.Compression)
	if err != nil {
		return nil, err
	}

	stored, err := codec.Compress(payload.Bytes())
	if err != nil {
		return nil, fmt.Errorf("archive: compress payload: %w", err)
	}
	if uint64(len(payload.Bytes())) > math.MaxUint32 || uint64(len(stored)) > math.MaxUint32 {
		return nil, errors.New("archive: payload exceeds the format limit")
	}

	h := Header{
		Version:          Version,
		Mode:             s.Mode(),
		Compression:      cfg.Compression,
		EstimateEncoding: cfg.EstimateEncoding,
		Count:            uint32(s.Len()),       //nolint:gosec // G115: checked above
		RawSize:          uint32(payload.Len()), //nolint:gosec // G115: checked above
		StoredSize:       uint32(len(stored)),   //nolint:gosec // G115: checked above
		Reference:        s.Reference(),
	}

	out := make([]byte, 0, HeaderSize+len(stored))
	out = h.appendTo(out)
	h.Checksum = hash.Fingerprint(out, stored)
	out = engine.AppendUint64(out, h.Checksum)
	out = append(out, stored...)

	return out, nil
}

// appendColumns writes the sides, methods and estimates columns to payload.
func appendColumns(payload *pool.ByteBuffer, s *series.Series, enc format.EncodingType) error {
	results := s.Results()

	sides := make([]int, len(results))
	estimates := make([]float64, len(results))
	for i, r := range results {
		sides[i] = r.Sides
		estimates[i] = r.Estimate
	}

	payload.B = encoding.AppendSideDeltas(payload.B, sides)
	for _, r := range results {
		_ = payload.WriteByte(uint8(r.Method)) //nolint:gosec // G115: methods are small enum values
	}

	switch enc {
	case format.TypeGorilla:
		ge := encoding.NewGorillaEncoder()
		defer ge.Finish()

		ge.WriteSlice(estimates)
		_, _ = payload.Write(ge.Bytes())
	case format.TypeRaw:
		payload.B = encoding.AppendRawFloats(payload.B, estimates)
	default:
		return fmt.Errorf("archive: invalid estimate encoding %s", enc)
	}

	return nil
}

// Decode restores the series stored in data.
//
// Decode verifies the magic, version and checksum before touching the payload
// and recomputes every result's error fields from the stored reference.
func Decode(data []byte) (*series.Series, error) {
	h, err := Inspect(data)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}

	raw, err := codec.Decompress(data[HeaderSize:h.Size()])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}
	if len(raw) != int(h.RawSize) {
		return nil, fmt.Errorf("%w: payload is %d bytes, header declares %d", ErrCorrupted, len(raw), h.RawSize)
	}

	return decodeColumns(h, raw)
}

func decodeColumns(h Header, raw []byte) (*series.Series, error) {
	count := int(h.Count)
	// Every result needs at least one side byte and one method byte.
	if count > len(raw)/2 {
		return nil, fmt.Errorf("%w: %d results cannot fit %d payload bytes", ErrCorrupted, count, len(raw))
	}

	sides, releaseSides := pool.GetIntSlice(count)
	defer releaseSides()
	estimates, releaseEstimates := pool.GetFloat64Slice(count)
	defer releaseEstimates()

	offset, err := encoding.DecodeSideDeltas(raw, sides)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}

	if len(raw)-offset < count {
		return nil, fmt.Errorf("%w: method column truncated", ErrCorrupted)
	}
	methods := make([]estimator.Method, count)
	for i := range methods {
		methods[i] = estimator.Method(raw[offset+i])
	}
	offset += count

	var n int
	switch h.EstimateEncoding {
	case format.TypeGorilla:
		n, err = encoding.DecodeGorilla(raw[offset:], estimates)
	case format.TypeRaw:
		n, err = encoding.DecodeRawFloats(raw[offset:], estimates)
	default:
		return nil, fmt.Errorf("%w: unknown estimate encoding 0x%02x", ErrCorrupted, uint8(h.EstimateEncoding))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}
	if offset+n != len(raw) {
		return nil, fmt.Errorf("%w: %d trailing payload bytes", ErrCorrupted, len(raw)-offset-n)
	}

	s, err := series.Restore(h.Mode, h.Reference, sides, methods, estimates)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}

	return s, nil
}

// verify checks the declared payload size and the checksum.
func verify(h Header, data []byte) error {
	if len(data) < h.Size() {
		return fmt.Errorf("%w: %d bytes, archive declares %d", ErrTruncated, len(data), h.Size())
	}
	if len(data) > h.Size() {
		return fmt.Errorf("%w: %d trailing bytes after payload", ErrCorrupted, len(data)-h.Size())
	}

	sum := hash.Fingerprint(data[:checksumOffset], data[HeaderSize:h.Size()])
	if sum != h.Checksum {
		return fmt.Errorf("%w: stored %016x, computed %016x", ErrChecksumMismatch, h.Checksum, sum)
	}

	return nil
}
