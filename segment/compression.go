package segment

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the block codec of stored fields.
type Compression uint8

const (
	// CompressionNone stores blocks as is.
	CompressionNone Compression = 0
	// CompressionLZ4 is fast block compression, the default.
	CompressionLZ4 Compression = 1
	// CompressionZSTD trades speed for a better ratio.
	CompressionZSTD Compression = 2
)

// String returns the string representation of the Compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Block layout: [raw size uint32][packed size uint32][data...].
// A packed size of 0 marks a block kept uncompressed.
const blockHeaderSize = 8

var errCorruptBlock = errors.New("corrupt stored block")

func packBlock(raw []byte, c Compression) ([]byte, error) {
	var packed []byte
	switch c {
	case CompressionNone:
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(raw)))
		n, err := lz4.CompressBlock(raw, buf, nil)
		if err != nil {
			return nil, err
		}
		packed = buf[:n]
	case CompressionZSTD:
		enc := getZstdEncoder()
		packed = enc.EncodeAll(raw, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("unknown compression %s", c)
	}

	// Keep raw bytes when compression saves less than 10%.
	if len(packed) == 0 || len(packed)*10 > len(raw)*9 {
		packed = nil
	}

	out := make([]byte, blockHeaderSize, blockHeaderSize+max(len(packed), len(raw)))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(raw)))
	binary.LittleEndian.PutUint32(out[4:], uint32(len(packed)))
	if packed == nil {
		return append(out, raw...), nil
	}
	return append(out, packed...), nil
}

func unpackBlock(block []byte, c Compression) ([]byte, error) {
	if len(block) < blockHeaderSize {
		return nil, errCorruptBlock
	}
	rawSize := binary.LittleEndian.Uint32(block[0:])
	packedSize := binary.LittleEndian.Uint32(block[4:])
	data := block[blockHeaderSize:]

	if packedSize == 0 {
		if uint32(len(data)) != rawSize {
			return nil, errCorruptBlock
		}
		return data, nil
	}
	if uint32(len(data)) != packedSize {
		return nil, errCorruptBlock
	}

	raw := make([]byte, rawSize)
	switch c {
	case CompressionLZ4:
		n, err := lz4.UncompressBlock(data, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errCorruptBlock, err)
		}
		raw = raw[:n]
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		var err error
		raw, err = dec.DecodeAll(data, raw[:0])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errCorruptBlock, err)
		}
	default:
		return nil, fmt.Errorf("%w: compressed with %s", errCorruptBlock, c)
	}
	if uint32(len(raw)) != rawSize {
		return nil, fmt.Errorf("%w: size mismatch", errCorruptBlock)
	}
	return raw, nil
}
