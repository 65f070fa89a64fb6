// Package encoding implements the column encodings of the series archive.
//
// An archive stores three columns for n results:
//
//   - side counts: zigzag varint deltas (AppendSideDeltas / DecodeSideDeltas)
//   - methods: one byte per result (stored verbatim by the archive)
//   - estimates: Gorilla XOR bit stream (GorillaEncoder / DecodeGorilla) or
//     raw little-endian float64 bits (AppendRawFloats / DecodeRawFloats)
//
// Estimates of consecutive side counts agree in sign, exponent and their
// leading mantissa bits, so the Gorilla stream stores most of them in well
// under 64 bits. See https://www.vldb.org/pvldb/vol8/p1816-teller.pdf for the
// algorithm.
package encoding

import "errors"

// ErrCorrupted indicates a column that ends early or holds impossible values.
var ErrCorrupted = errors.New("encoding: corrupted column data")
