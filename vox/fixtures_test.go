package vox

import "github.com/voxelsplace/voxview/internal/voxtest"

var (
	chunkBytes = voxtest.Chunk
	fileBytes  = voxtest.File
	sizeChunk  = voxtest.Size
	nestedFile = voxtest.Nested
)

func rgbaChunk(p Palette) []byte {
	colors := make([][4]byte, len(p))
	for i, c := range p {
		colors[i] = c
	}
	return voxtest.RGBA(colors...)
}

func xyziChunk(voxels ...Voxel) []byte {
	records := make([][4]byte, len(voxels))
	for i, v := range voxels {
		records[i] = [4]byte{v.X, v.Y, v.Z, v.ColorIndex}
	}
	return voxtest.XYZI(records...)
}

func redPalette() Palette {
	p := GrayPalette()
	p[0] = Color{255, 0, 0, 255}
	p[1] = Color{0, 255, 0, 128}
	p[255] = Color{0, 0, 255, 255}
	return p
}
