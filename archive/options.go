package archive

import (
	"fmt"

	"github.com/arloliu/polypi/format"
	"github.com/arloliu/polypi/internal/options"
)

// EncodeConfig holds the settings applied by Encode.
type EncodeConfig struct {
	// Compression is the codec applied to the payload. Default: Zstd.
	Compression format.CompressionType
	// EstimateEncoding is the encoding of the estimates column. Default: Gorilla.
	EstimateEncoding format.EncodingType
}

func defaultEncodeConfig() EncodeConfig {
	return EncodeConfig{
		Compression:      format.CompressionZstd,
		EstimateEncoding: format.TypeGorilla,
	}
}

// Option is a functional option for EncodeConfig.
type Option = options.Option[*EncodeConfig]

// WithCompression selects the payload compression.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *EncodeConfig) error {
		if !c.Valid() {
			return fmt.Errorf("archive: invalid compression type 0x%02x", uint8(c))
		}
		cfg.Compression = c

		return nil
	})
}

// WithEstimateEncoding selects the encoding of the estimates column.
func WithEstimateEncoding(e format.EncodingType) Option {
	return options.New(func(cfg *EncodeConfig) error {
		if !e.Valid() {
			return fmt.Errorf("archive: invalid estimate encoding 0x%02x", uint8(e))
		}
		cfg.EstimateEncoding = e

		return nil
	})
}
