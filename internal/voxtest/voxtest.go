// Package voxtest writes small .vox byte fixtures for tests.
package voxtest

import "encoding/binary"

const Version = 150

// Chunk encodes one chunk; children must already be encoded.
func Chunk(id string, content []byte, children ...[]byte) []byte {
	var kids []byte
	for _, c := range children {
		kids = append(kids, c...)
	}
	out := make([]byte, 0, 12+len(content)+len(kids))
	out = append(out, id...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(content)))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(kids)))
	out = append(out, content...)
	return append(out, kids...)
}

// File wraps children in a MAIN chunk behind the VOX signature.
func File(children ...[]byte) []byte {
	out := []byte("VOX ")
	out = binary.LittleEndian.AppendUint32(out, Version)
	return append(out, Chunk("MAIN", nil, children...)...)
}

func Size(x, y, z uint32) []byte {
	var b []byte
	b = binary.LittleEndian.AppendUint32(b, x)
	b = binary.LittleEndian.AppendUint32(b, y)
	b = binary.LittleEndian.AppendUint32(b, z)
	return Chunk("SIZE", b)
}

// RGBA encodes a palette chunk; missing entries are opaque black.
func RGBA(colors ...[4]byte) []byte {
	b := make([]byte, 256*4)
	for i, c := range colors {
		copy(b[i*4:], c[:])
	}
	for i := len(colors); i < 256; i++ {
		b[i*4+3] = 255
	}
	return Chunk("RGBA", b)
}

// XYZI encodes a voxel list of (x, y, z, colorIndex) records.
func XYZI(voxels ...[4]byte) []byte {
	b := binary.LittleEndian.AppendUint32(nil, uint32(len(voxels)))
	for _, v := range voxels {
		b = append(b, v[:]...)
	}
	return Chunk("XYZI", b)
}

// Nested builds a file whose MAIN chunk wraps depth-1 empty chunks, each
// the only child of the previous one.
func Nested(depth int) []byte {
	out := []byte("VOX ")
	out = binary.LittleEndian.AppendUint32(out, Version)
	for k := 0; k < depth; k++ {
		id := "NEST"
		if k == 0 {
			id = "MAIN"
		}
		out = append(out, id...)
		out = binary.LittleEndian.AppendUint32(out, 0)
		out = binary.LittleEndian.AppendUint32(out, uint32(12*(depth-1-k)))
	}
	return out
}

// Cube returns a file with an n*n*n solid cube, one-based color 1 red.
func Cube(n uint8) []byte {
	var voxels [][4]byte
	for x := uint8(0); x < n; x++ {
		for y := uint8(0); y < n; y++ {
			for z := uint8(0); z < n; z++ {
				voxels = append(voxels, [4]byte{x, y, z, 1})
			}
		}
	}
	return File(Size(uint32(n), uint32(n), uint32(n)), RGBA([4]byte{255, 0, 0, 255}), XYZI(voxels...))
}
