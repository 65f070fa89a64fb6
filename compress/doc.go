// Package compress provides the block codecs applied to series archive payloads.
//
// An archive payload is the concatenation of its encoded columns (side counts,
// methods and estimates). After encoding, the payload is compressed as a single
// block by one of the codecs below, selected with a format.CompressionType:
//
//   - None: the payload is stored as-is
//   - Zstd: best ratio; pure Go (klauspost/compress) or cgo (valyala/gozstd) build
//   - S2: fast Snappy-compatible compression (klauspost/compress/s2)
//   - LZ4: fastest decompression (pierrec/lz4)
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(payload)
//
// The built-in codecs are stateless values and safe for concurrent use; the
// zstd and lz4 implementations pool their internal encoders.
//
// Empty input compresses to an empty (nil) block for every codec except None,
// which returns its input unchanged.
package compress
