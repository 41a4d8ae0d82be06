package vox

import "encoding/binary"

const (
	Magic = "VOX "
	// HeaderSize is the magic plus the version word; the MAIN chunk starts here.
	HeaderSize = 8
	// ChunkHeaderSize is id + content length + children length.
	ChunkHeaderSize = 12
)

// Header holds the fixed fields in front of the chunk tree.
// Version is read but not validated.
type Header struct {
	Magic   string
	Version uint32
}

// ParseHeader checks the signature and returns the header.
func ParseHeader(data []byte) (Header, error) {
	var hdr Header
	if len(data) < 4 || string(data[:4]) != Magic {
		return hdr, newError(ErrSignature, "", 0, "expected %q", Magic)
	}
	if len(data) < HeaderSize {
		return hdr, newError(ErrStructure, "", 4, "truncated version field")
	}
	hdr.Magic = Magic
	hdr.Version = binary.LittleEndian.Uint32(data[4:8])
	return hdr, nil
}

// IsVOX reports whether data starts with the vox signature.
func IsVOX(data []byte) bool {
	return len(data) >= 4 && string(data[:4]) == Magic
}
