package api

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"

	"github.com/voxelsplace/voxview/vox"
)

// MaxInputSize caps how much a compressed input may expand to.
const MaxInputSize = 256 << 20

// Compression names a wrapper recognised around a .vox payload.
type Compression uint8

const (
	CompNone Compression = iota
	CompGzip
	CompZlib
	CompZstd
)

func (c Compression) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompGzip:
		return "gzip"
	case CompZlib:
		return "zlib"
	case CompZstd:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// DetectCompression sniffs the first bytes of data.
func DetectCompression(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return CompZstd
	case len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b:
		return CompGzip
	case len(data) >= 2 && data[0]&0x0f == 8 && (uint16(data[0])<<8|uint16(data[1]))%31 == 0:
		return CompZlib
	default:
		return CompNone
	}
}

// Unwrap returns the raw .vox bytes, decompressing gzip, zlib or zstd
// wrapped inputs. Uncompressed data is returned as is. Input that only
// looks compressed fails with a vox.ErrSignature decode error.
func Unwrap(data []byte) ([]byte, Compression, error) {
	comp := DetectCompression(data)
	var (
		r   io.Reader
		err error
	)
	switch comp {
	case CompNone:
		return data, comp, nil
	case CompGzip:
		var zr *gzip.Reader
		zr, err = gzip.NewReader(bytes.NewReader(data))
		if err == nil {
			defer zr.Close()
			r = zr
		}
	case CompZlib:
		var zr io.ReadCloser
		zr, err = zlib.NewReader(bytes.NewReader(data))
		if err == nil {
			defer zr.Close()
			r = zr
		}
	case CompZstd:
		var dec *zstd.Decoder
		dec, err = zstd.NewReader(bytes.NewReader(data), zstd.WithDecoderMaxMemory(MaxInputSize))
		if err == nil {
			defer dec.Close()
			r = dec
		}
	}
	if err != nil {
		return nil, comp, notWrapped(comp, err)
	}
	out, err := io.ReadAll(io.LimitReader(r, MaxInputSize+1))
	if err != nil {
		return nil, comp, notWrapped(comp, err)
	}
	if len(out) > MaxInputSize {
		return nil, comp, fmt.Errorf("%s input expands past %d bytes", comp, MaxInputSize)
	}
	return out, comp, nil
}

func notWrapped(comp Compression, err error) error {
	return &vox.DecodeError{Kind: vox.ErrSignature, Msg: fmt.Sprintf("not a vox file and not valid %s: %v", comp, err)}
}
