package compress

// ZstdCompressor provides Zstandard block compression.
//
// The implementation depends on the build: with cgo enabled it uses
// valyala/gozstd (the C reference library), otherwise the pure Go
// klauspost/compress/zstd encoder. Both produce standard zstd frames, so
// archives written by one build decode with the other.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
//
// Example:
//
//	codec := NewZstdCompressor()
//	compressed, err := codec.Compress(payload)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// zstdLevel is the compression level used by both zstd builds.
const zstdLevel = 3
