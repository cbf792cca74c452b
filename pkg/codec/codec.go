// Package codec packs decoded TRI files for out-of-process caches.
//
// A packed payload is zstd-compressed CBOR using Core Deterministic Encoding,
// so the same TriFile always produces identical bytes.
package codec

import (
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"

	"github.com/aretw0/bodygen/pkg/domain"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode

	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}

	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("codec: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("codec: zstd decoder initialization failed: " + err.Error())
	}
}

// Pack encodes tri as a compressed payload.
func Pack(tri *domain.TriFile) ([]byte, error) {
	if tri == nil {
		return nil, fmt.Errorf("codec: nil tri file")
	}
	raw, err := encMode.Marshal(tri)
	if err != nil {
		return nil, fmt.Errorf("codec: cbor encode: %w", err)
	}
	return zstdEncoder.EncodeAll(raw, nil), nil
}

// Unpack decodes a payload produced by Pack.
func Unpack(data []byte) (*domain.TriFile, error) {
	raw, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("codec: zstd decompress: %w", err)
	}
	var tri domain.TriFile
	if err := decMode.Unmarshal(raw, &tri); err != nil {
		return nil, fmt.Errorf("codec: cbor decode: %w", err)
	}
	return &tri, nil
}

// ContentKey returns the hex BLAKE3-256 digest of data. It is used as the
// cache key for TRI files so renamed or copied assets share one entry.
func ContentKey(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
